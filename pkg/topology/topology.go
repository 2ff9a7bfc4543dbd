// Package topology declares the TheTipTop diagrams.
//
// Each declarator is a plain function that builds a [diagram.Diagram] from
// fixed literals. The only input is [Env], which tells declarators where
// icon assets live. Declarators are registered by name so the CLI can
// render them individually or all at once.
package topology

import (
	"path/filepath"
	"slices"

	"github.com/thetiptop/archdiagram/pkg/diagram"
	aerrors "github.com/thetiptop/archdiagram/pkg/errors"
)

// DefaultAssetsDir is where icon assets are looked up when Env.AssetsDir is empty.
const DefaultAssetsDir = "./assets"

// Env carries the inputs declarators may depend on.
type Env struct {
	AssetsDir string
}

// Asset returns the path of the named asset file.
func (e Env) Asset(name string) string {
	dir := e.AssetsDir
	if dir == "" {
		dir = DefaultAssetsDir
	}
	return filepath.Join(dir, name)
}

// DeclareFunc builds a diagram. It returns the diagram's first declaration
// or validation error.
type DeclareFunc func(Env) (*diagram.Diagram, error)

// Declarator is a registered, named topology.
type Declarator struct {
	Name           string
	Description    string
	DefaultFormats []string
	Declare        DeclareFunc
}

var declarators = []Declarator{
	{
		Name:           "architecture",
		Description:    "DNS, CDN, load balancer, autoscaled workers, read/write database cluster",
		DefaultFormats: []string{"png", "svg"},
		Declare:        Architecture,
	},
	{
		Name:           "workflow",
		Description:    "single custom-icon Git node",
		DefaultFormats: []string{"png"},
		Declare:        Workflow,
	},
}

// Names returns the registered topology names in registration order.
func Names() []string {
	names := make([]string, len(declarators))
	for i, d := range declarators {
		names[i] = d.Name
	}
	return names
}

// All returns every registered declarator.
func All() []Declarator {
	return slices.Clone(declarators)
}

// Lookup returns the declarator registered under name.
func Lookup(name string) (Declarator, error) {
	for _, d := range declarators {
		if d.Name == name {
			return d, nil
		}
	}
	return Declarator{}, aerrors.New(aerrors.ErrCodeDiagramNotFound, "unknown diagram %q (available: %v)", name, Names())
}

// finish validates d and returns it, or the validation error.
func finish(d *diagram.Diagram) (*diagram.Diagram, error) {
	if err := d.Validate(); err != nil {
		return nil, aerrors.Wrap(aerrors.ErrCodeInvalidTopology, err, "declare %s", d.Name())
	}
	return d, nil
}
