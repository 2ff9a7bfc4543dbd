package diagram

import (
	"errors"
	"slices"
	"strconv"
	"strings"

	"github.com/thetiptop/archdiagram/pkg/diagram/kind"
	aerrors "github.com/thetiptop/archdiagram/pkg/errors"
)

var (
	// ErrForeignNode is recorded when an edge endpoint was declared on a
	// different diagram.
	ErrForeignNode = errors.New("node belongs to another diagram")

	// ErrEmptyEndpoint is recorded when an edge endpoint is nil or an empty group.
	ErrEmptyEndpoint = errors.New("edge endpoint has no nodes")

	// ErrUnknownNode is returned by [Diagram.Validate] when an edge references
	// a node that is not part of the diagram.
	ErrUnknownNode = errors.New("edge references undeclared node")

	// ErrGraphHasCycle is returned by [Diagram.Validate] when the edges form a cycle.
	ErrGraphHasCycle = errors.New("graph contains a cycle")

	// ErrDuplicateID is returned by [Diagram.Validate] when two nodes share an ID.
	ErrDuplicateID = errors.New("duplicate node ID")
)

// Direction is the Graphviz rank direction of the rendered diagram.
type Direction string

const (
	LeftToRight Direction = "LR"
	TopToBottom Direction = "TB"
	BottomToTop Direction = "BT"
	RightToLeft Direction = "RL"
)

// ParseDirection converts "LR", "TB", "BT" or "RL" (case-insensitive) to a Direction.
func ParseDirection(s string) (Direction, error) {
	d := Direction(strings.ToUpper(s))
	switch d {
	case LeftToRight, TopToBottom, BottomToTop, RightToLeft:
		return d, nil
	}
	return "", aerrors.New(aerrors.ErrCodeInvalidDirection, "invalid direction %q (must be LR, TB, BT or RL)", s)
}

// Diagram is a declared topology: nodes, nested clusters, and edges.
//
// The zero value is not usable; create diagrams with [New].
// A Diagram is not safe for concurrent use.
type Diagram struct {
	name      string
	filename  string
	direction Direction

	nodes    []*Node    // all nodes in declaration order
	clusters []*Cluster // all clusters in declaration order
	edges    []Edge

	nextNode    int
	nextCluster int
	err         error
}

// Option configures a Diagram.
type Option func(*Diagram)

// WithFilename sets the output base name (without extension).
func WithFilename(name string) Option {
	return func(d *Diagram) { d.filename = name }
}

// WithDirection sets the rank direction. The default is [LeftToRight].
func WithDirection(dir Direction) Option {
	return func(d *Diagram) { d.direction = dir }
}

// New creates an empty diagram.
// The default filename is the name lowercased with spaces replaced by
// underscores, so "TheTipTop - Workflow" becomes "thetiptop_-_workflow".
func New(name string, opts ...Option) *Diagram {
	d := &Diagram{
		name:      name,
		filename:  defaultFilename(name),
		direction: LeftToRight,
	}
	for _, opt := range opts {
		opt(d)
	}
	if err := aerrors.ValidateLabel(name); err != nil {
		d.fail(err)
	}
	if err := aerrors.ValidateFilename(d.filename); err != nil {
		d.fail(err)
	}
	if dir, err := ParseDirection(string(d.direction)); err != nil {
		d.fail(err)
	} else {
		d.direction = dir
	}
	return d
}

func defaultFilename(name string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), " ", "_")
}

// Name returns the diagram title.
func (d *Diagram) Name() string { return d.name }

// Filename returns the output base name.
func (d *Diagram) Filename() string { return d.filename }

// Direction returns the rank direction.
func (d *Diagram) Direction() Direction { return d.direction }

// Err returns the first declaration error, or nil.
func (d *Diagram) Err() error { return d.err }

func (d *Diagram) fail(err error) {
	if d.err == nil {
		d.err = err
	}
}

// Node declares a node of kind k at the top level of the diagram.
func (d *Diagram) Node(k kind.Kind, label string) *Node {
	return d.newNode(nil, k, label, "")
}

// Custom declares a top-level node drawn from the icon file at iconPath.
// The file must exist; otherwise a FILE_NOT_FOUND error is recorded.
func (d *Diagram) Custom(label, iconPath string) *Node {
	return d.newNode(nil, kind.Custom, label, iconPath)
}

// Cluster declares a top-level cluster.
func (d *Diagram) Cluster(label string) *Cluster {
	return d.newCluster(nil, label)
}

func (d *Diagram) newNode(parent *Cluster, k kind.Kind, label, icon string) *Node {
	d.nextNode++
	n := &Node{
		id:      "n" + strconv.Itoa(d.nextNode),
		label:   label,
		kind:    k,
		icon:    icon,
		cluster: parent,
		diagram: d,
	}
	if err := aerrors.ValidateLabel(label); err != nil {
		d.fail(err)
	}
	if k.IsCustom() {
		if err := checkIcon(icon); err != nil {
			d.fail(err)
		}
	}
	d.nodes = append(d.nodes, n)
	if parent != nil {
		parent.nodes = append(parent.nodes, n)
	}
	return n
}

func (d *Diagram) newCluster(parent *Cluster, label string) *Cluster {
	d.nextCluster++
	c := &Cluster{
		id:      "c" + strconv.Itoa(d.nextCluster),
		label:   label,
		parent:  parent,
		diagram: d,
	}
	if parent != nil {
		c.depth = parent.depth + 1
		parent.children = append(parent.children, c)
	}
	if err := aerrors.ValidateLabel(label); err != nil {
		d.fail(err)
	}
	d.clusters = append(d.clusters, c)
	return c
}

// Nodes returns all nodes in declaration order.
func (d *Diagram) Nodes() []*Node { return slices.Clone(d.nodes) }

// TopLevelNodes returns the nodes that are not inside any cluster.
func (d *Diagram) TopLevelNodes() []*Node {
	var out []*Node
	for _, n := range d.nodes {
		if n.cluster == nil {
			out = append(out, n)
		}
	}
	return out
}

// Clusters returns all clusters, at every depth, in declaration order.
func (d *Diagram) Clusters() []*Cluster { return slices.Clone(d.clusters) }

// RootClusters returns the clusters declared at the top level.
func (d *Diagram) RootClusters() []*Cluster {
	var out []*Cluster
	for _, c := range d.clusters {
		if c.parent == nil {
			out = append(out, c)
		}
	}
	return out
}

// Edges returns all edges in declaration order.
func (d *Diagram) Edges() []Edge { return slices.Clone(d.edges) }

// NodeCount returns the number of declared nodes.
func (d *Diagram) NodeCount() int { return len(d.nodes) }

// EdgeCount returns the number of declared edges.
func (d *Diagram) EdgeCount() int { return len(d.edges) }

// NodeByID returns the node with the given ID.
func (d *Diagram) NodeByID(id string) (*Node, bool) {
	for _, n := range d.nodes {
		if n.id == id {
			return n, true
		}
	}
	return nil, false
}

// NodesOfKind returns the nodes whose kind equals k, in declaration order.
func (d *Diagram) NodesOfKind(k kind.Kind) []*Node {
	var out []*Node
	for _, n := range d.nodes {
		if n.kind == k {
			out = append(out, n)
		}
	}
	return out
}

// HasEdge reports whether an edge from → to was declared.
func (d *Diagram) HasEdge(from, to *Node) bool {
	return slices.ContainsFunc(d.edges, func(e Edge) bool { return e.From == from && e.To == to })
}
