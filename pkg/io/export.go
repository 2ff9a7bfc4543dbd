package io

import (
	"encoding/json"
	"fmt"

	"github.com/thetiptop/archdiagram/pkg/diagram"
)

type document struct {
	Name      string    `json:"name"`
	Filename  string    `json:"filename"`
	Direction string    `json:"direction"`
	Clusters  []cluster `json:"clusters,omitempty"`
	Nodes     []node    `json:"nodes"`
	Edges     []edge    `json:"edges"`
}

type cluster struct {
	ID     string `json:"id"`
	Label  string `json:"label"`
	Parent string `json:"parent,omitempty"`
}

type node struct {
	ID      string `json:"id"`
	Label   string `json:"label"`
	Kind    string `json:"kind"`
	Icon    string `json:"icon,omitempty"`
	Cluster string `json:"cluster,omitempty"`
}

type edge struct {
	From  string `json:"from"`
	To    string `json:"to"`
	Label string `json:"label,omitempty"`
}

// MarshalJSON encodes a diagram as indented JSON.
func MarshalJSON(d *diagram.Diagram) ([]byte, error) {
	out := document{
		Name:      d.Name(),
		Filename:  d.Filename(),
		Direction: string(d.Direction()),
		Nodes:     make([]node, 0, d.NodeCount()),
		Edges:     make([]edge, 0, d.EdgeCount()),
	}

	for _, c := range d.Clusters() {
		cl := cluster{ID: c.ID(), Label: c.Label()}
		if p := c.Parent(); p != nil {
			cl.Parent = p.ID()
		}
		out.Clusters = append(out.Clusters, cl)
	}
	for _, n := range d.Nodes() {
		nd := node{ID: n.ID(), Label: n.Label(), Kind: n.Kind().Name(), Icon: n.Icon()}
		if c := n.Cluster(); c != nil {
			nd.Cluster = c.ID()
		}
		out.Nodes = append(out.Nodes, nd)
	}
	for _, e := range d.Edges() {
		out.Edges = append(out.Edges, edge{From: e.From.ID(), To: e.To.ID(), Label: e.Label})
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode: %w", err)
	}
	return append(data, '\n'), nil
}
