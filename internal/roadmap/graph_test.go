package roadmap

import (
	"strings"
	"testing"
)

func TestDefault_SeedGraphPasses(t *testing.T) {
	g, err := Default()
	if err != nil {
		t.Fatalf("seed graph failed to load: %v", err)
	}
	if err := Validate(g); err != nil {
		t.Fatalf("seed graph validation failed: %v", err)
	}
	if g.Start() != "start" {
		t.Errorf("start = %q, want start", g.Start())
	}
}

func TestDefault_OriginalNodesPresent(t *testing.T) {
	g := MustDefault()
	for _, key := range []string{
		"start", "entry-focus", "entry-technical", "entry-business",
		"technical-specialization", "ai-expert",
	} {
		if !g.Has(key) {
			t.Errorf("missing node %q", key)
		}
	}
}

func TestDefault_NodeVariants(t *testing.T) {
	g := MustDefault()

	n, _ := g.Node("start")
	d, ok := n.(*Decision)
	if !ok {
		t.Fatalf("start is %T, want *Decision", n)
	}
	if len(d.Options) != 3 || d.Options[0].ID != "entry" || d.Options[0].Next != "entry-focus" {
		t.Errorf("unexpected start options: %+v", d.Options)
	}

	n, _ = g.Node("ai-expert")
	m, ok := n.(*Milestone)
	if !ok {
		t.Fatalf("ai-expert is %T, want *Milestone", n)
	}
	if m.Details.Timeline != "24-36 months" {
		t.Errorf("timeline = %q", m.Details.Timeline)
	}
	if len(m.Details.NextSteps) != 2 {
		t.Errorf("next steps = %v", m.Details.NextSteps)
	}
	if m.Kind() != KindMilestone || d.Kind() != KindDecision {
		t.Error("kind mismatch")
	}
}

func TestParse_SchemaRejectsMixedVariant(t *testing.T) {
	doc := `{"start":"a","nodes":[{"key":"a","type":"decision","title":"A","description":"",
		"options":[{"id":"x","label":"X","next":"a"}],
		"details":{"timeline":"t","keySkills":[],"milestones":[]}}]}`
	if _, err := Parse([]byte(doc)); err == nil {
		t.Fatal("expected schema error for node with both options and details")
	}
}

func TestParse_SchemaRejectsDecisionWithoutOptions(t *testing.T) {
	doc := `{"start":"a","nodes":[{"key":"a","type":"decision","title":"A","description":""}]}`
	if _, err := Parse([]byte(doc)); err == nil {
		t.Fatal("expected schema error for decision without options")
	}
}

func TestValidateNodes(t *testing.T) {
	leaf := func(key string, next ...string) Node {
		return &Milestone{Key: key, Title: key, Details: Details{Timeline: "t", NextSteps: next}}
	}
	choice := func(key string, opts ...Option) Node {
		return &Decision{Key: key, Title: key, Options: opts}
	}

	tests := []struct {
		name    string
		start   string
		nodes   []Node
		wantErr string
	}{
		{
			name:  "valid",
			start: "s",
			nodes: []Node{choice("s", Option{ID: "a", Next: "a"}), leaf("a")},
		},
		{
			name:    "missing start",
			start:   "nope",
			nodes:   []Node{leaf("a")},
			wantErr: "start node",
		},
		{
			name:    "duplicate key",
			start:   "s",
			nodes:   []Node{choice("s", Option{ID: "a", Next: "a"}), leaf("a"), leaf("a")},
			wantErr: "duplicate node key",
		},
		{
			name:    "dangling option",
			start:   "s",
			nodes:   []Node{choice("s", Option{ID: "a", Next: "ghost"})},
			wantErr: "nonexistent node \"ghost\"",
		},
		{
			name:    "dangling next step",
			start:   "s",
			nodes:   []Node{choice("s", Option{ID: "a", Next: "a"}), leaf("a", "ghost")},
			wantErr: "nonexistent node \"ghost\"",
		},
		{
			name:    "empty decision",
			start:   "s",
			nodes:   []Node{choice("s")},
			wantErr: "has no options",
		},
		{
			name:  "duplicate option",
			start: "s",
			nodes: []Node{
				choice("s", Option{ID: "a", Next: "a"}, Option{ID: "a", Next: "b"}),
				leaf("a"), leaf("b"),
			},
			wantErr: "duplicate option id",
		},
		{
			name:    "back edge to start",
			start:   "s",
			nodes:   []Node{choice("s", Option{ID: "a", Next: "a"}), leaf("a", "s")},
			wantErr: "links back to start",
		},
		{
			name:    "unreachable",
			start:   "s",
			nodes:   []Node{choice("s", Option{ID: "a", Next: "a"}), leaf("a"), leaf("island")},
			wantErr: "\"island\" is unreachable",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateNodes(tt.start, tt.nodes)
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("expected no error, got: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("expected error containing %q, got nil", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error should contain %q, got: %v", tt.wantErr, err)
			}
		})
	}
}

func TestValidateNodes_ReportsAllProblems(t *testing.T) {
	nodes := []Node{
		&Decision{Key: "s", Options: []Option{{ID: "a", Next: "ghost"}}},
		&Decision{Key: "empty"},
	}
	err := validateNodes("s", nodes)
	if err == nil {
		t.Fatal("expected error")
	}
	for _, want := range []string{"ghost", "has no options", "unreachable"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error should mention %q, got: %v", want, err)
		}
	}
}

func TestStepLabel(t *testing.T) {
	tests := map[string]string{
		"technical-specialization": "Technical specialization",
		"ai-research":              "Ai research",
		"":                         "",
		"start":                    "Start",
	}
	for in, want := range tests {
		if got := StepLabel(in); got != want {
			t.Errorf("StepLabel(%q) = %q, want %q", in, got, want)
		}
	}
}
