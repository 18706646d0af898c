package roadmap

import (
	"fmt"
	"slices"
)

// Step is one move in the navigation history. OptionID is empty for moves
// made through a milestone's next steps.
type Step struct {
	From     string `json:"from"`
	OptionID string `json:"option_id,omitempty"`
}

// State is the serialisable navigation state.
type State struct {
	CurrentKey string   `json:"current_key"`
	Choices    []string `json:"choices"`
	History    []Step   `json:"history"`
}

// Navigator walks a Graph. The current key always resolves to a node.
type Navigator struct {
	graph   *Graph
	current string
	choices []string
	history []Step
}

// NewNavigator returns a navigator positioned at the graph's start node.
func NewNavigator(g *Graph) *Navigator {
	return &Navigator{graph: g, current: g.Start()}
}

// Current returns the node at the current position.
func (n *Navigator) Current() Node {
	node, _ := n.graph.Node(n.current)
	return node
}

// CurrentKey returns the key of the current node.
func (n *Navigator) CurrentKey() string { return n.current }

// Choices returns the option ids chosen so far, oldest first.
func (n *Navigator) Choices() []string { return slices.Clone(n.choices) }

// Depth returns how many moves separate the current node from the start.
func (n *Navigator) Depth() int { return len(n.history) }

// CanGoBack reports whether GoBack would move.
func (n *Navigator) CanGoBack() bool { return len(n.history) > 0 }

// AtStart reports whether the navigator sits on the start node.
func (n *Navigator) AtStart() bool { return n.current == n.graph.Start() }

// SelectOption records optionID and moves to nextKey. nextKey is not checked
// against the current node's options; it only has to exist.
func (n *Navigator) SelectOption(optionID, nextKey string) error {
	if !n.graph.Has(nextKey) {
		return fmt.Errorf("select %q: %w: %q", optionID, ErrUnknownNode, nextKey)
	}
	n.history = append(n.history, Step{From: n.current, OptionID: optionID})
	n.choices = append(n.choices, optionID)
	n.current = nextKey
	return nil
}

// Choose selects the option with the given id on the current decision node.
func (n *Navigator) Choose(optionID string) error {
	d, ok := n.Current().(*Decision)
	if !ok {
		return fmt.Errorf("choose %q: node %q is not a decision", optionID, n.current)
	}
	opt, ok := d.Option(optionID)
	if !ok {
		return fmt.Errorf("choose %q: no such option on %q", optionID, n.current)
	}
	return n.SelectOption(opt.ID, opt.Next)
}

// FollowNextStep moves along a milestone's next step without adding to the
// choice log.
func (n *Navigator) FollowNextStep(nextKey string) error {
	if !n.graph.Has(nextKey) {
		return fmt.Errorf("follow: %w: %q", ErrUnknownNode, nextKey)
	}
	n.history = append(n.history, Step{From: n.current})
	n.current = nextKey
	return nil
}

// GoBack undoes the last move. It returns false when there is nothing to
// undo.
func (n *Navigator) GoBack() bool {
	if len(n.history) == 0 {
		return false
	}
	last := n.history[len(n.history)-1]
	n.history = n.history[:len(n.history)-1]
	if last.OptionID != "" && len(n.choices) > 0 {
		n.choices = n.choices[:len(n.choices)-1]
	}
	n.current = last.From
	return true
}

// Reset returns to the start node and forgets every choice.
func (n *Navigator) Reset() {
	n.current = n.graph.Start()
	n.choices = nil
	n.history = nil
}

// State returns a copy of the navigation state.
func (n *Navigator) State() State {
	return State{
		CurrentKey: n.current,
		Choices:    slices.Clone(n.choices),
		History:    slices.Clone(n.history),
	}
}

// Restore replaces the navigation state. Every key in s must resolve and
// the choice log must match the option moves recorded in the history.
func (n *Navigator) Restore(s State) error {
	if !n.graph.Has(s.CurrentKey) {
		return fmt.Errorf("restore: %w: %q", ErrUnknownNode, s.CurrentKey)
	}
	var optionMoves []string
	for _, st := range s.History {
		if !n.graph.Has(st.From) {
			return fmt.Errorf("restore: %w: %q", ErrUnknownNode, st.From)
		}
		if st.OptionID != "" {
			optionMoves = append(optionMoves, st.OptionID)
		}
	}
	if !slices.Equal(optionMoves, s.Choices) {
		return fmt.Errorf("restore: choice log %v does not match history", s.Choices)
	}

	n.current = s.CurrentKey
	n.choices = slices.Clone(s.Choices)
	n.history = slices.Clone(s.History)
	return nil
}
