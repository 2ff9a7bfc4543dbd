package render

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/thetiptop/archdiagram/pkg/diagram"
)

// Options configures DOT generation.
type Options struct {
	// Detailed appends the node kind's service name to each label.
	Detailed bool
}

const (
	fontName      = "Sans-Serif"
	fontColor     = "#2D3436"
	edgeColor     = "#7B8894"
	clusterBorder = "#AEB6BE"

	// Custom node size in inches. The icon fills the box above the label.
	customWidth  = 1.4
	customHeight = 1.9
)

// clusterColors cycles by nesting depth.
var clusterColors = []string{"#E5F5FD", "#EBF3E7", "#ECE8F6", "#FDF7E3"}

// ToDOT converts a diagram to Graphviz DOT source.
func ToDOT(d *diagram.Diagram, opts Options) string {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "digraph %q {\n", d.Name())
	fmt.Fprintf(&buf, "  graph [label=%q, rankdir=%s, pad=\"2.0\", splines=ortho, nodesep=\"0.60\", ranksep=\"0.75\", fontname=%q, fontsize=15, fontcolor=%q];\n",
		d.Name(), d.Direction(), fontName, fontColor)
	fmt.Fprintf(&buf, "  node [shape=box, style=\"rounded,filled\", fixedsize=true, width=1.4, height=1.4, labelloc=c, fontname=%q, fontsize=13, fontcolor=%q];\n",
		fontName, fontColor)
	fmt.Fprintf(&buf, "  edge [color=%q];\n", edgeColor)

	w := &dotWriter{buf: &buf, opts: opts}
	for _, n := range d.TopLevelNodes() {
		w.node(n, 1)
	}
	for _, c := range d.RootClusters() {
		w.cluster(c, 1)
	}

	if d.EdgeCount() > 0 {
		buf.WriteString("\n")
	}
	for _, e := range d.Edges() {
		if e.Label != "" {
			fmt.Fprintf(&buf, "  %q -> %q [label=%q];\n", e.From.ID(), e.To.ID(), e.Label)
			continue
		}
		fmt.Fprintf(&buf, "  %q -> %q;\n", e.From.ID(), e.To.ID())
	}

	buf.WriteString("}\n")
	return buf.String()
}

type dotWriter struct {
	buf  *bytes.Buffer
	opts Options
}

func (w *dotWriter) node(n *diagram.Node, indent int) {
	pad := strings.Repeat("  ", indent)
	fmt.Fprintf(w.buf, "%s%q [%s];\n", pad, n.ID(), strings.Join(nodeAttrs(n, w.opts.Detailed), ", "))
}

func (w *dotWriter) cluster(c *diagram.Cluster, indent int) {
	pad := strings.Repeat("  ", indent)
	fmt.Fprintf(w.buf, "%ssubgraph %q {\n", pad, "cluster_"+c.ID())
	fmt.Fprintf(w.buf, "%s  graph [label=%q, labeljust=l, style=rounded, pencolor=%q, bgcolor=%q, fontname=%q, fontsize=12];\n",
		pad, c.Label(), clusterBorder, clusterColors[c.Depth()%len(clusterColors)], fontName)
	for _, n := range c.Nodes() {
		w.node(n, indent+1)
	}
	for _, child := range c.Clusters() {
		w.cluster(child, indent+1)
	}
	fmt.Fprintf(w.buf, "%s}\n", pad)
}

func fmtLabel(n *diagram.Node, detailed bool) string {
	if !detailed || n.Kind().IsCustom() {
		return n.Label()
	}
	return n.Label() + "\n(" + n.Kind().Service + ")"
}

func nodeAttrs(n *diagram.Node, detailed bool) []string {
	k := n.Kind()
	attrs := []string{fmt.Sprintf("label=%q", fmtLabel(n, detailed))}
	if k.IsCustom() {
		return append(attrs,
			fmt.Sprintf("shape=%s", k.Shape),
			"style=\"\"",
			"color=transparent",
			fmt.Sprintf("image=%q", n.Icon()),
			"imagescale=true",
			"labelloc=b",
			fmt.Sprintf("width=%.1f", customWidth),
			fmt.Sprintf("height=%.1f", customHeight),
		)
	}
	return append(attrs,
		fmt.Sprintf("shape=%s", k.Shape),
		fmt.Sprintf("fillcolor=%q", k.Color()),
		"fontcolor=white",
		fmt.Sprintf("tooltip=%q", k.Name()),
	)
}
