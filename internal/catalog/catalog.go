// Package catalog holds the static demo content behind the guidance pages.
// Nothing here is computed; every figure is hand-authored in catalog.json.
package catalog

import (
	_ "embed"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/abhisek/careerpilot/internal/jsondata"
)

//go:embed catalog.json
var seedCatalog []byte

//go:embed catalog.schema.json
var catalogSchema []byte

// SkillStatus is the assessed level of a skill.
type SkillStatus string

const (
	StatusStrong     SkillStatus = "strong"
	StatusDeveloping SkillStatus = "developing"
	StatusMissing    SkillStatus = "missing"
	StatusUnassessed SkillStatus = "unassessed"
)

// Catalog is the full set of page content.
type Catalog struct {
	Careers    Careers    `json:"careers"`
	Skills     Skills     `json:"skills"`
	Market     Market     `json:"market"`
	MultiPath  MultiPath  `json:"multiPath"`
	Resilience Resilience `json:"resilience"`
}

// Parse decodes and validates a catalog document.
func Parse(doc []byte) (*Catalog, error) {
	var c Catalog
	if err := jsondata.Decode("catalog", catalogSchema, doc, &c); err != nil {
		return nil, err
	}
	if err := c.check(); err != nil {
		return nil, err
	}
	return &c, nil
}

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
	defaultErr     error
)

// Default returns the catalog shipped with the binary.
func Default() (*Catalog, error) {
	defaultOnce.Do(func() {
		defaultCatalog, defaultErr = Parse(seedCatalog)
	})
	return defaultCatalog, defaultErr
}

// MustDefault is Default for callers that cannot continue without a catalog.
func MustDefault() *Catalog {
	c, err := Default()
	if err != nil {
		panic(fmt.Sprintf("catalog: seed catalog: %v", err))
	}
	return c
}

// check verifies cross references the schema cannot express.
func (c *Catalog) check() error {
	var errs []string

	skillIDs := make(map[string]bool, len(c.Skills.Available))
	for _, s := range c.Skills.Available {
		skillIDs[s.ID] = true
	}
	for _, group := range [][]string{c.Skills.Gap.Strong, c.Skills.Gap.Developing, c.Skills.Gap.Missing} {
		for _, id := range group {
			if !skillIDs[id] {
				errs = append(errs, fmt.Sprintf("gap references unknown skill %q", id))
			}
		}
	}

	interestIDs := make(map[string]bool, len(c.MultiPath.Interests))
	for _, in := range c.MultiPath.Interests {
		interestIDs[in.ID] = true
	}
	for _, h := range c.MultiPath.Hybrids {
		for _, id := range h.Interests {
			if !interestIDs[id] {
				errs = append(errs, fmt.Sprintf("hybrid %q references unknown interest %q", h.Title, id))
			}
		}
	}

	scenarioIDs := make(map[string]bool, len(c.Resilience.Scenarios))
	for _, s := range c.Resilience.Scenarios {
		scenarioIDs[s.ID] = true
	}
	for _, p := range c.Resilience.Plans {
		if !scenarioIDs[p.Scenario] {
			errs = append(errs, fmt.Sprintf("plan references unknown scenario %q", p.Scenario))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("catalog validation failed:\n  %s", strings.Join(errs, "\n  "))
	}
	return nil
}

// Track returns the career track with the given id.
func (c *Catalog) Track(id string) (Track, bool) {
	for _, t := range c.Careers.Tracks {
		if t.ID == id {
			return t, true
		}
	}
	return Track{}, false
}

// Skill returns the skill with the given id.
func (c *Catalog) Skill(id string) (Skill, bool) {
	for _, s := range c.Skills.Available {
		if s.ID == id {
			return s, true
		}
	}
	return Skill{}, false
}

// SkillStatus reports how the fixed assessment rates a skill.
func (c *Catalog) SkillStatus(id string) SkillStatus {
	switch {
	case slices.Contains(c.Skills.Gap.Strong, id):
		return StatusStrong
	case slices.Contains(c.Skills.Gap.Developing, id):
		return StatusDeveloping
	case slices.Contains(c.Skills.Gap.Missing, id):
		return StatusMissing
	default:
		return StatusUnassessed
	}
}

// Analysis groups selected skills by status.
type Analysis map[SkillStatus][]Skill

// Analyze rates each selected skill. Unknown ids are ignored and the
// selection order is kept within each group.
func (c *Catalog) Analyze(selected []string) Analysis {
	out := make(Analysis)
	for _, id := range selected {
		s, ok := c.Skill(id)
		if !ok {
			continue
		}
		st := c.SkillStatus(id)
		out[st] = append(out[st], s)
	}
	return out
}

// HybridPath returns the hybrid career for the first two selected
// interests, or nil when fewer than two are selected or none matches.
func (c *Catalog) HybridPath(selected []string) *Hybrid {
	if len(selected) < 2 {
		return nil
	}
	want := pairKey(selected[0], selected[1])
	for i := range c.MultiPath.Hybrids {
		h := &c.MultiPath.Hybrids[i]
		if pairKey(h.Interests[0], h.Interests[1]) == want {
			return h
		}
	}
	return nil
}

func pairKey(a, b string) string {
	if b < a {
		a, b = b, a
	}
	return a + "," + b
}

// Scenario returns the scenario with the given id.
func (c *Catalog) Scenario(id string) (Scenario, bool) {
	for _, s := range c.Resilience.Scenarios {
		if s.ID == id {
			return s, true
		}
	}
	return Scenario{}, false
}

// Plan returns the fallback plans for a scenario, or nil when none are
// authored.
func (c *Catalog) Plan(scenarioID string) *Plan {
	for i := range c.Resilience.Plans {
		if c.Resilience.Plans[i].Scenario == scenarioID {
			return &c.Resilience.Plans[i]
		}
	}
	return nil
}
