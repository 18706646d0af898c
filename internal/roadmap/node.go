package roadmap

// Kind distinguishes the two node variants.
type Kind string

const (
	KindDecision  Kind = "decision"
	KindMilestone Kind = "milestone"
)

// Node is a point in the roadmap flowchart. It is either a *Decision or a
// *Milestone; callers switch on the concrete type.
type Node interface {
	NodeKey() string
	NodeTitle() string
	NodeDescription() string
	Kind() Kind

	// Edges returns the keys this node can move to, in display order.
	Edges() []string

	sealed()
}

// Option is one choice offered by a decision node.
type Option struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Next  string `json:"next"`
}

// Details is the payload of a milestone node.
type Details struct {
	Timeline   string   `json:"timeline"`
	KeySkills  []string `json:"keySkills"`
	Milestones []string `json:"milestones"`
	NextSteps  []string `json:"nextSteps,omitempty"`
}

// Decision asks the user to pick one of several options.
type Decision struct {
	Key         string
	Title       string
	Description string
	Options     []Option
}

// Milestone describes a destination: timeline, skills and milestones, plus
// optional next steps. A milestone without next steps is a dead end.
type Milestone struct {
	Key         string
	Title       string
	Description string
	Details     Details
}

var (
	_ Node = (*Decision)(nil)
	_ Node = (*Milestone)(nil)
)

func (d *Decision) NodeKey() string         { return d.Key }
func (d *Decision) NodeTitle() string       { return d.Title }
func (d *Decision) NodeDescription() string { return d.Description }
func (d *Decision) Kind() Kind              { return KindDecision }
func (d *Decision) sealed()                 {}

func (d *Decision) Edges() []string {
	out := make([]string, 0, len(d.Options))
	for _, o := range d.Options {
		out = append(out, o.Next)
	}
	return out
}

// Option returns the option with the given id.
func (d *Decision) Option(id string) (Option, bool) {
	for _, o := range d.Options {
		if o.ID == id {
			return o, true
		}
	}
	return Option{}, false
}

func (m *Milestone) NodeKey() string         { return m.Key }
func (m *Milestone) NodeTitle() string       { return m.Title }
func (m *Milestone) NodeDescription() string { return m.Description }
func (m *Milestone) Kind() Kind              { return KindMilestone }
func (m *Milestone) sealed()                 {}

func (m *Milestone) Edges() []string {
	out := make([]string, len(m.Details.NextSteps))
	copy(out, m.Details.NextSteps)
	return out
}

// DeadEnd reports whether the milestone has nowhere further to go.
func (m *Milestone) DeadEnd() bool {
	return len(m.Details.NextSteps) == 0
}

// StepLabel turns a node key like "technical-specialization" into
// "Technical specialization" for display.
func StepLabel(key string) string {
	if key == "" {
		return ""
	}
	b := []byte(key)
	for i, c := range b {
		if c == '-' {
			b[i] = ' '
		}
	}
	if b[0] >= 'a' && b[0] <= 'z' {
		b[0] -= 'a' - 'A'
	}
	return string(b)
}
