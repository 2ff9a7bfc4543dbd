// Package kind defines the visual kinds a diagram node can have.
//
// A [Kind] names a cloud service ("aws.compute.EC2") and carries the styling
// hints the renderer needs: the Graphviz shape and the category color. Kinds
// are values; the predefined ones below are what topologies declare with.
//
// Custom nodes use [Custom], whose picture comes from an icon file supplied
// at declaration time instead of a built-in shape.
package kind

import (
	"maps"
	"slices"
)

// Category groups services that share a color in the rendered picture.
type Category string

const (
	CategoryCompute  Category = "compute"
	CategoryDatabase Category = "database"
	CategoryNetwork  Category = "network"
	CategoryCustom   Category = "custom"
)

// Kind describes how a node is drawn.
type Kind struct {
	Provider string   // cloud provider, e.g. "aws"; empty for custom
	Category Category // service category, selects the fill color
	Service  string   // service name shown in detailed labels, e.g. "EC2"
	Shape    string   // Graphviz node shape
}

// Name returns the fully qualified kind name, e.g. "aws.compute.EC2".
// The custom kind is named "custom".
func (k Kind) Name() string {
	if k.Category == CategoryCustom {
		return string(CategoryCustom)
	}
	return k.Provider + "." + string(k.Category) + "." + k.Service
}

// IsCustom reports whether nodes of this kind take their picture from an icon file.
func (k Kind) IsCustom() bool { return k.Category == CategoryCustom }

// Color returns the fill color for the kind's category.
func (k Kind) Color() string {
	if c, ok := categoryColors[k.Category]; ok {
		return c
	}
	return "#FFFFFF"
}

var categoryColors = map[Category]string{
	CategoryCompute:  "#ED7100",
	CategoryDatabase: "#C925D1",
	CategoryNetwork:  "#8C4FFF",
}

// AWS compute.
var EC2 = Kind{Provider: "aws", Category: CategoryCompute, Service: "EC2", Shape: "box"}

// AWS database.
var RDS = Kind{Provider: "aws", Category: CategoryDatabase, Service: "RDS", Shape: "cylinder"}

// AWS network.
var (
	NLB        = Kind{Provider: "aws", Category: CategoryNetwork, Service: "NLB", Shape: "diamond"}
	Route53    = Kind{Provider: "aws", Category: CategoryNetwork, Service: "Route53", Shape: "hexagon"}
	CloudFront = Kind{Provider: "aws", Category: CategoryNetwork, Service: "CloudFront", Shape: "octagon"}
)

// Custom is the kind of nodes drawn from a user-supplied icon.
var Custom = Kind{Category: CategoryCustom, Shape: "box"}

var registry = func() map[string]Kind {
	m := make(map[string]Kind)
	for _, k := range []Kind{EC2, RDS, NLB, Route53, CloudFront, Custom} {
		m[k.Name()] = k
	}
	return m
}()

// Lookup returns the predefined kind with the given fully qualified name.
func Lookup(name string) (Kind, bool) {
	k, ok := registry[name]
	return k, ok
}

// Names returns the names of all predefined kinds in sorted order.
func Names() []string {
	return slices.Sorted(maps.Keys(registry))
}
