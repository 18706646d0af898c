package roadmap

import (
	_ "embed"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/abhisek/careerpilot/internal/jsondata"
)

//go:embed graph.json
var seedGraph []byte

//go:embed graph.schema.json
var graphSchema []byte

// ErrUnknownNode is returned when a key does not resolve to a node.
var ErrUnknownNode = errors.New("unknown roadmap node")

// Graph is a static, read-only flowchart.
type Graph struct {
	start string
	order []string
	nodes map[string]Node
}

// Start returns the designated start key.
func (g *Graph) Start() string { return g.start }

// Node looks up a node by key.
func (g *Graph) Node(key string) (Node, bool) {
	n, ok := g.nodes[key]
	return n, ok
}

// Has reports whether key names a node.
func (g *Graph) Has(key string) bool {
	_, ok := g.nodes[key]
	return ok
}

// Keys returns all node keys in sorted order.
func (g *Graph) Keys() []string {
	keys := make([]string, 0, len(g.nodes))
	for k := range g.nodes {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Len returns the number of nodes.
func (g *Graph) Len() int { return len(g.nodes) }

type rawNode struct {
	Key         string   `json:"key"`
	Type        Kind     `json:"type"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Options     []Option `json:"options"`
	Details     *Details `json:"details"`
}

type rawGraph struct {
	Start string    `json:"start"`
	Nodes []rawNode `json:"nodes"`
}

// Parse decodes a graph document, checks it against the graph schema and
// validates its structure.
func Parse(doc []byte) (*Graph, error) {
	var raw rawGraph
	if err := jsondata.Decode("roadmap-graph", graphSchema, doc, &raw); err != nil {
		return nil, err
	}

	nodes := make([]Node, 0, len(raw.Nodes))
	for _, rn := range raw.Nodes {
		switch rn.Type {
		case KindDecision:
			nodes = append(nodes, &Decision{
				Key:         rn.Key,
				Title:       rn.Title,
				Description: rn.Description,
				Options:     rn.Options,
			})
		case KindMilestone:
			var d Details
			if rn.Details != nil {
				d = *rn.Details
			}
			nodes = append(nodes, &Milestone{
				Key:         rn.Key,
				Title:       rn.Title,
				Description: rn.Description,
				Details:     d,
			})
		default:
			return nil, fmt.Errorf("node %q: unknown type %q", rn.Key, rn.Type)
		}
	}

	return New(raw.Start, nodes)
}

// New builds a graph from nodes and validates it.
func New(start string, nodes []Node) (*Graph, error) {
	if err := validateNodes(start, nodes); err != nil {
		return nil, err
	}
	g := &Graph{
		start: start,
		order: make([]string, 0, len(nodes)),
		nodes: make(map[string]Node, len(nodes)),
	}
	for _, n := range nodes {
		g.order = append(g.order, n.NodeKey())
		g.nodes[n.NodeKey()] = n
	}
	return g, nil
}

var (
	defaultOnce  sync.Once
	defaultGraph *Graph
	defaultErr   error
)

// Default returns the roadmap shipped with the binary.
func Default() (*Graph, error) {
	defaultOnce.Do(func() {
		defaultGraph, defaultErr = Parse(seedGraph)
	})
	return defaultGraph, defaultErr
}

// MustDefault is Default for callers that cannot continue without a graph.
func MustDefault() *Graph {
	g, err := Default()
	if err != nil {
		panic(fmt.Sprintf("roadmap: seed graph: %v", err))
	}
	return g
}
