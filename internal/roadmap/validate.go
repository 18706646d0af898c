package roadmap

import (
	"fmt"
	"strings"
)

// Validate re-checks the structure of an already built graph.
func Validate(g *Graph) error {
	nodes := make([]Node, 0, len(g.order))
	for _, k := range g.order {
		nodes = append(nodes, g.nodes[k])
	}
	return validateNodes(g.start, nodes)
}

// validateNodes performs all structural checks on the given node set.
// Returns a combined error describing all problems found, or nil if valid.
func validateNodes(start string, nodes []Node) error {
	var errs []string

	byKey := make(map[string]Node, len(nodes))
	for _, n := range nodes {
		if _, dup := byKey[n.NodeKey()]; dup {
			errs = append(errs, fmt.Sprintf("duplicate node key: %q", n.NodeKey()))
		}
		byKey[n.NodeKey()] = n
	}

	if _, ok := byKey[start]; !ok {
		errs = append(errs, fmt.Sprintf("start node %q does not exist", start))
	}

	for _, n := range nodes {
		switch n := n.(type) {
		case *Decision:
			if len(n.Options) == 0 {
				errs = append(errs, fmt.Sprintf("decision %q has no options", n.Key))
			}
			seen := make(map[string]bool, len(n.Options))
			for _, o := range n.Options {
				if seen[o.ID] {
					errs = append(errs, fmt.Sprintf("decision %q has duplicate option id %q", n.Key, o.ID))
				}
				seen[o.ID] = true
			}
		case *Milestone:
			// Dead ends are allowed.
		}

		for _, next := range n.Edges() {
			if _, ok := byKey[next]; !ok {
				errs = append(errs, fmt.Sprintf("node %q references nonexistent node %q", n.NodeKey(), next))
			}
			if next == start {
				errs = append(errs, fmt.Sprintf("node %q links back to start %q", n.NodeKey(), start))
			}
		}
	}

	if _, ok := byKey[start]; ok {
		reached := map[string]bool{start: true}
		queue := []string{start}
		for len(queue) > 0 {
			key := queue[0]
			queue = queue[1:]
			for _, next := range byKey[key].Edges() {
				if _, ok := byKey[next]; ok && !reached[next] {
					reached[next] = true
					queue = append(queue, next)
				}
			}
		}
		for _, n := range nodes {
			if !reached[n.NodeKey()] {
				errs = append(errs, fmt.Sprintf("node %q is unreachable from start", n.NodeKey()))
			}
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("roadmap validation failed:\n  %s", strings.Join(errs, "\n  "))
	}
	return nil
}
