package diagram

import "fmt"

// Edge is a directed connection between two nodes.
type Edge struct {
	From  *Node
	To    *Node
	Label string
}

// Endpoint is one side of a connection: a single [*Node] or a [Group].
type Endpoint interface {
	endpointNodes() []*Node
}

// Group is an ordered collection of nodes usable as an edge endpoint.
type Group []*Node

func (g Group) endpointNodes() []*Node { return g }

// Connect adds one edge from every node of from to every node of to.
func (d *Diagram) Connect(from, to Endpoint) {
	d.connect(from, to, "")
}

// ConnectLabeled is like Connect but labels each added edge.
func (d *Diagram) ConnectLabeled(from, to Endpoint, label string) {
	d.connect(from, to, label)
}

// Chain connects each endpoint to the next: Chain(a, b, c) adds a → b and b → c.
func (d *Diagram) Chain(endpoints ...Endpoint) {
	for i := 1; i < len(endpoints); i++ {
		d.connect(endpoints[i-1], endpoints[i], "")
	}
}

func (d *Diagram) connect(from, to Endpoint, label string) {
	srcs, err := d.resolve(from)
	if err != nil {
		d.fail(err)
		return
	}
	dsts, err := d.resolve(to)
	if err != nil {
		d.fail(err)
		return
	}
	for _, s := range srcs {
		for _, t := range dsts {
			d.edges = append(d.edges, Edge{From: s, To: t, Label: label})
		}
	}
}

func (d *Diagram) resolve(ep Endpoint) ([]*Node, error) {
	if ep == nil {
		return nil, ErrEmptyEndpoint
	}
	nodes := ep.endpointNodes()
	if len(nodes) == 0 {
		return nil, ErrEmptyEndpoint
	}
	for _, n := range nodes {
		if n == nil {
			return nil, ErrEmptyEndpoint
		}
		if n.diagram != d {
			return nil, fmt.Errorf("%w: %q", ErrForeignNode, n.label)
		}
	}
	return nodes, nil
}
