// Package io provides JSON import/export and Mermaid export for diagrams.
//
// # JSON Format
//
// The JSON document records the full declared structure, in declaration
// order, so a diagram can be inspected, diffed, or rebuilt later:
//
//	{
//	  "name": "TheTipTop - Workflow",
//	  "filename": "workflow",
//	  "direction": "LR",
//	  "clusters": [{"id": "c1", "label": "VPC"}],
//	  "nodes": [
//	    {"id": "n1", "label": "Git", "kind": "custom", "icon": "assets/github.svg"}
//	  ],
//	  "edges": [{"from": "n1", "to": "n2"}]
//	}
//
// Clusters list their parent by ID and must appear after it. Nodes name
// their innermost cluster, a kind from the kind registry, and (for custom
// nodes) an icon path. [ReadJSON] rebuilds the diagram through the normal
// declaration API, so every declaration rule applies: icons must exist,
// labels must be valid, and edges must not form a cycle.
//
// # Mermaid
//
// [ToMermaid] emits a Mermaid flowchart with nested subgraphs, suitable
// for embedding in Markdown documentation.
package io
