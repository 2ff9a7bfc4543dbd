package io

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/thetiptop/archdiagram/pkg/diagram"
)

// ToMermaid converts a diagram to a Mermaid flowchart.
//
// Clusters become nested subgraphs and custom nodes use Mermaid's image
// node syntax with the label below the icon.
func ToMermaid(d *diagram.Diagram) string {
	var b bytes.Buffer
	fmt.Fprintf(&b, "---\ntitle: %s\n---\n", d.Name())
	fmt.Fprintf(&b, "flowchart %s\n", d.Direction())

	for _, n := range d.TopLevelNodes() {
		mermaidNode(&b, n, 1)
	}
	for _, c := range d.RootClusters() {
		mermaidCluster(&b, c, 1)
	}
	for _, e := range d.Edges() {
		if e.Label != "" {
			fmt.Fprintf(&b, "  %s -- \"%s\" --> %s\n", e.From.ID(), mermaidText(e.Label), e.To.ID())
			continue
		}
		fmt.Fprintf(&b, "  %s --> %s\n", e.From.ID(), e.To.ID())
	}
	return b.String()
}

func mermaidNode(b *bytes.Buffer, n *diagram.Node, indent int) {
	pad := strings.Repeat("  ", indent)
	if n.Kind().IsCustom() {
		fmt.Fprintf(b, "%s%s@{ img: \"%s\", label: \"%s\", pos: \"b\", h: 60, constraint: \"on\" }\n",
			pad, n.ID(), mermaidText(n.Icon()), mermaidText(n.Label()))
		return
	}
	left, right := mermaidShape(n.Kind().Shape)
	fmt.Fprintf(b, "%s%s%s\"%s\"%s\n", pad, n.ID(), left, mermaidText(n.Label()), right)
}

func mermaidCluster(b *bytes.Buffer, c *diagram.Cluster, indent int) {
	pad := strings.Repeat("  ", indent)
	fmt.Fprintf(b, "%ssubgraph %s [\"%s\"]\n", pad, c.ID(), mermaidText(c.Label()))
	for _, n := range c.Nodes() {
		mermaidNode(b, n, indent+1)
	}
	for _, child := range c.Clusters() {
		mermaidCluster(b, child, indent+1)
	}
	fmt.Fprintf(b, "%send\n", pad)
}

// mermaidShape maps Graphviz shapes onto the closest flowchart brackets.
func mermaidShape(shape string) (string, string) {
	switch shape {
	case "cylinder":
		return "[(", ")]"
	case "diamond":
		return "{", "}"
	case "hexagon", "octagon":
		return "{{", "}}"
	default:
		return "(", ")"
	}
}

var mermaidEscaper = strings.NewReplacer(`"`, "#quot;", "\n", "<br/>")

func mermaidText(s string) string { return mermaidEscaper.Replace(s) }
