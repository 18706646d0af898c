package jsondata

import (
	"errors"
	"testing"
)

var personSchema = []byte(`{
	"type": "object",
	"properties": {
		"name":  {"type": "string", "minLength": 1},
		"level": {"type": "string", "enum": ["entry", "mid", "senior"]}
	},
	"required": ["name"],
	"additionalProperties": false
}`)

type person struct {
	Name  string `json:"name"`
	Level string `json:"level"`
}

func TestDecode_Valid(t *testing.T) {
	var p person
	if err := Decode("person", personSchema, []byte(`{"name":"Ada","level":"mid"}`), &p); err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if p.Name != "Ada" || p.Level != "mid" {
		t.Errorf("decoded %+v", p)
	}
}

func TestDecode_SchemaViolation(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"missing required", `{"level":"mid"}`},
		{"bad enum", `{"name":"Ada","level":"intern"}`},
		{"extra field", `{"name":"Ada","age":3}`},
		{"empty name", `{"name":""}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var p person
			err := Decode("person", personSchema, []byte(tt.raw), &p)
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected *ValidationError, got %T: %v", err, err)
			}
			if verr.Name != "person" {
				t.Errorf("name = %q, want person", verr.Name)
			}
		})
	}
}

func TestValidate_InvalidJSON(t *testing.T) {
	err := Validate("person", personSchema, []byte(`{not json`))
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *ValidationError, got %T", err)
	}
}

func TestCompiledSchemaCached(t *testing.T) {
	a, err := compiledSchema("cache-check", personSchema)
	if err != nil {
		t.Fatal(err)
	}
	b, err := compiledSchema("cache-check", []byte(`{"type":"number"}`))
	if err != nil {
		t.Fatal(err)
	}
	if a != b {
		t.Error("expected cached schema to be reused for the same name")
	}
}
