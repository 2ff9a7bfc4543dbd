package diagram

import "fmt"

// Validate checks the finished diagram.
//
// It returns the recorded declaration error if there is one, then verifies
// that node IDs are unique, that every edge connects nodes of this diagram,
// and that the edges form no cycle. Cycles are found by depth-first search
// with white/gray/black coloring.
func (d *Diagram) Validate() error {
	if d.err != nil {
		return d.err
	}

	known := make(map[*Node]bool, len(d.nodes))
	ids := make(map[string]bool, len(d.nodes))
	for _, n := range d.nodes {
		if ids[n.id] {
			return fmt.Errorf("%w: %s", ErrDuplicateID, n.id)
		}
		ids[n.id] = true
		known[n] = true
	}

	out := make(map[*Node][]*Node)
	for _, e := range d.edges {
		if !known[e.From] || !known[e.To] {
			return ErrUnknownNode
		}
		out[e.From] = append(out[e.From], e.To)
	}

	const (
		white = iota
		gray
		black
	)
	color := make(map[*Node]int, len(d.nodes))

	var visit func(n *Node) error
	visit = func(n *Node) error {
		color[n] = gray
		for _, next := range out[n] {
			switch color[next] {
			case gray:
				return fmt.Errorf("%w: %q -> %q", ErrGraphHasCycle, n.label, next.label)
			case white:
				if err := visit(next); err != nil {
					return err
				}
			}
		}
		color[n] = black
		return nil
	}

	for _, n := range d.nodes {
		if color[n] == white {
			if err := visit(n); err != nil {
				return err
			}
		}
	}
	return nil
}
