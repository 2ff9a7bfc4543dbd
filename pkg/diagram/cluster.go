package diagram

import (
	"slices"

	"github.com/thetiptop/archdiagram/pkg/diagram/kind"
)

// Cluster is a labeled group drawn as a box around its nodes and sub-clusters.
// It only affects the picture; edges always connect nodes.
type Cluster struct {
	id       string
	label    string
	depth    int
	parent   *Cluster
	diagram  *Diagram
	nodes    []*Node
	children []*Cluster
}

// ID returns the cluster's diagram-unique identifier ("c1", "c2", ...).
func (c *Cluster) ID() string { return c.id }

// Label returns the cluster title.
func (c *Cluster) Label() string { return c.label }

// Depth returns 0 for top-level clusters and parent depth + 1 otherwise.
func (c *Cluster) Depth() int { return c.depth }

// Parent returns the enclosing cluster, or nil at the top level.
func (c *Cluster) Parent() *Cluster { return c.parent }

// Nodes returns the nodes declared directly in this cluster.
func (c *Cluster) Nodes() []*Node { return slices.Clone(c.nodes) }

// Clusters returns the clusters declared directly in this cluster.
func (c *Cluster) Clusters() []*Cluster { return slices.Clone(c.children) }

// Node declares a node of kind k inside the cluster.
func (c *Cluster) Node(k kind.Kind, label string) *Node {
	return c.diagram.newNode(c, k, label, "")
}

// Custom declares a node inside the cluster drawn from the icon at iconPath.
func (c *Cluster) Custom(label, iconPath string) *Node {
	return c.diagram.newNode(c, kind.Custom, label, iconPath)
}

// Cluster declares a nested cluster.
func (c *Cluster) Cluster(label string) *Cluster {
	return c.diagram.newCluster(c, label)
}

// Path returns the labels from the outermost cluster down to c.
func (c *Cluster) Path() []string {
	var path []string
	for cur := c; cur != nil; cur = cur.parent {
		path = append(path, cur.label)
	}
	slices.Reverse(path)
	return path
}
