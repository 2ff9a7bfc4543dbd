// Package diagram provides the declaration API for architecture diagrams.
//
// # Overview
//
// A [Diagram] is a static description of nodes, nested clusters, and
// directed edges. It has no runtime behavior: declarators build one, and
// the render package turns it into Graphviz DOT and then into images.
//
// # Declaring
//
// Nodes are created inside the scope they belong to, either at the top level
// of the diagram or inside a [Cluster]. Clusters nest:
//
//	d := diagram.New("TheTipTop - Architecture", diagram.WithFilename("architecture"))
//	dns := d.Node(kind.Route53, "DNS")
//	vpc := d.Cluster("VPC")
//	lb := vpc.Cluster("Private subnet").Node(kind.NLB, "LoadBalancer")
//
// # Edges
//
// [Diagram.Connect] and [Diagram.Chain] accept any [Endpoint]: a single
// [*Node] or a [Group] of nodes. Connecting two endpoints adds one edge per
// (source, destination) pair, so a node connected to a group of five fans
// out into five edges:
//
//	workers := diagram.Group{w1, w2, w3, w4, w5}
//	d.Chain(dns, cdn, lb, workers, dbWrite)
//
// # Errors
//
// Declaration methods do not return errors. The first problem (an empty
// label, a node from another diagram, a missing icon file) is recorded and
// reported by [Diagram.Err]; later declarations still succeed so the caller
// can check once at the end. [Diagram.Validate] additionally checks edge
// endpoints and rejects cycles.
//
// # Determinism
//
// Node and cluster IDs are assigned from per-diagram counters in declaration
// order ("n1", "n2", ... and "c1", "c2", ...). Declaring the same topology
// twice yields identical IDs and therefore identical DOT output.
package diagram
