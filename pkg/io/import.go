package io

import (
	"encoding/json"
	"io"
	"os"

	"github.com/thetiptop/archdiagram/pkg/diagram"
	"github.com/thetiptop/archdiagram/pkg/diagram/kind"
	aerrors "github.com/thetiptop/archdiagram/pkg/errors"
)

// ReadJSON decodes a JSON document from r and rebuilds the diagram.
//
// ReadJSON returns an INVALID_TOPOLOGY error if a cluster references a
// parent that was not listed before it, a node references an unknown
// cluster or kind, an edge references an unknown node, or the rebuilt
// diagram fails [diagram.Diagram.Validate]. ReadJSON does not close r.
func ReadJSON(r io.Reader) (*diagram.Diagram, error) {
	var doc document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, aerrors.Wrap(aerrors.ErrCodeInvalidInput, err, "decode diagram JSON")
	}

	var opts []diagram.Option
	if doc.Filename != "" {
		opts = append(opts, diagram.WithFilename(doc.Filename))
	}
	if doc.Direction != "" {
		dir, err := diagram.ParseDirection(doc.Direction)
		if err != nil {
			return nil, err
		}
		opts = append(opts, diagram.WithDirection(dir))
	}
	d := diagram.New(doc.Name, opts...)

	clusters := make(map[string]*diagram.Cluster, len(doc.Clusters))
	for _, c := range doc.Clusters {
		if _, dup := clusters[c.ID]; dup {
			return nil, invalid("duplicate cluster %q", c.ID)
		}
		if c.Parent == "" {
			clusters[c.ID] = d.Cluster(c.Label)
			continue
		}
		parent, ok := clusters[c.Parent]
		if !ok {
			return nil, invalid("cluster %q: unknown parent %q", c.ID, c.Parent)
		}
		clusters[c.ID] = parent.Cluster(c.Label)
	}

	nodes := make(map[string]*diagram.Node, len(doc.Nodes))
	for _, n := range doc.Nodes {
		if _, dup := nodes[n.ID]; dup {
			return nil, invalid("duplicate node %q", n.ID)
		}
		k, ok := kind.Lookup(n.Kind)
		if !ok {
			return nil, invalid("node %q: unknown kind %q", n.ID, n.Kind)
		}
		var parent *diagram.Cluster
		if n.Cluster != "" {
			if parent, ok = clusters[n.Cluster]; !ok {
				return nil, invalid("node %q: unknown cluster %q", n.ID, n.Cluster)
			}
		}
		nodes[n.ID] = declare(d, parent, k, n.Label, n.Icon)
	}

	for _, e := range doc.Edges {
		from, ok := nodes[e.From]
		if !ok {
			return nil, invalid("edge %s->%s: unknown source", e.From, e.To)
		}
		to, ok := nodes[e.To]
		if !ok {
			return nil, invalid("edge %s->%s: unknown target", e.From, e.To)
		}
		d.ConnectLabeled(from, to, e.Label)
	}

	if err := d.Validate(); err != nil {
		return nil, aerrors.Wrap(aerrors.ErrCodeInvalidTopology, err, "rebuild %s", doc.Name)
	}
	return d, nil
}

func declare(d *diagram.Diagram, parent *diagram.Cluster, k kind.Kind, label, icon string) *diagram.Node {
	switch {
	case parent == nil && k.IsCustom():
		return d.Custom(label, icon)
	case parent == nil:
		return d.Node(k, label)
	case k.IsCustom():
		return parent.Custom(label, icon)
	default:
		return parent.Node(k, label)
	}
}

func invalid(format string, args ...any) error {
	return aerrors.New(aerrors.ErrCodeInvalidTopology, format, args...)
}

// ImportJSON reads the JSON file at path and rebuilds the diagram.
func ImportJSON(path string) (*diagram.Diagram, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, aerrors.Wrap(aerrors.ErrCodeFileNotFound, err, "open %s", path)
	}
	defer f.Close()
	return ReadJSON(f)
}
