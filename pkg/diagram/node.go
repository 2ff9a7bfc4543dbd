package diagram

import (
	"os"

	"github.com/thetiptop/archdiagram/pkg/diagram/kind"
	aerrors "github.com/thetiptop/archdiagram/pkg/errors"
)

// Node is a labeled vertex of a diagram. Nodes are created through
// [Diagram.Node], [Diagram.Custom] or the [Cluster] equivalents and are
// immutable afterwards.
type Node struct {
	id      string
	label   string
	kind    kind.Kind
	icon    string
	cluster *Cluster
	diagram *Diagram
}

// ID returns the node's diagram-unique identifier ("n1", "n2", ...).
func (n *Node) ID() string { return n.id }

// Label returns the human-readable label.
func (n *Node) Label() string { return n.label }

// Kind returns the node's visual kind.
func (n *Node) Kind() kind.Kind { return n.kind }

// Icon returns the icon path of a custom node, or "" for built-in kinds.
func (n *Node) Icon() string { return n.icon }

// Cluster returns the innermost cluster containing the node, or nil.
func (n *Node) Cluster() *Cluster { return n.cluster }

func (n *Node) endpointNodes() []*Node { return []*Node{n} }

func checkIcon(path string) error {
	if path == "" {
		return aerrors.New(aerrors.ErrCodeInvalidTopology, "custom node requires an icon path")
	}
	info, err := os.Stat(path)
	if err != nil {
		return aerrors.Wrap(aerrors.ErrCodeFileNotFound, err, "icon %s", path)
	}
	if info.IsDir() {
		return aerrors.New(aerrors.ErrCodeFileNotFound, "icon %s is a directory", path)
	}
	return nil
}
