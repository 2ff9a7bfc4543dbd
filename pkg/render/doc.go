// Package render turns declared diagrams into Graphviz DOT and images.
//
// # Overview
//
// Rendering happens in two steps. [ToDOT] converts a [diagram.Diagram] into
// DOT source: clusters become nested "cluster_" subgraphs, nodes are styled
// by their kind, and edges follow declaration order. [Render] then lays the
// DOT out and rasterizes or vectorizes it in-process:
//
//	dot := render.ToDOT(d, render.Options{})
//	icons, err := render.LoadIcons(d)
//	png, err := render.Render(ctx, dot, render.PNG, icons)
//	svg, err := render.Render(ctx, dot, render.SVG, icons)
//
// # Styling
//
// Graph, cluster, node, and edge defaults mirror the look of the diagrams
// the project has always shipped: left-to-right ranks, orthogonal splines,
// rounded clusters whose background cycles by nesting depth, and a muted
// edge color. Custom-kind nodes have no border and show their icon file
// with the label underneath.
//
// # Determinism
//
// ToDOT output depends only on the diagram, so identical declarations
// produce byte-identical DOT. Pixel output may still vary across Graphviz
// versions.
//
// # Icons
//
// Custom nodes keep their icon path in the DOT image attribute for use with a
// system Graphviz, but the embedded Graphviz cannot open host files. Render
// therefore places the icon bytes from [LoadIcons] into each custom node of
// the SVG as a data URI, using the node outline Graphviz laid out. Raster
// formats with icons are produced from that SVG by rsvg-convert.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz], which runs Graphviz as a
// WebAssembly module, so no system Graphviz installation is needed.
// JPG conversion of icon diagrams uses [github.com/disintegration/imaging].
package render
