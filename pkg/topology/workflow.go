package topology

import (
	"github.com/thetiptop/archdiagram/pkg/diagram"
)

// GitIcon is the asset file used for the workflow's Git node.
const GitIcon = "github.svg"

// Workflow declares the CI workflow diagram: a single Git node drawn from
// the github.svg asset. It fails if the asset is missing.
func Workflow(env Env) (*diagram.Diagram, error) {
	d := diagram.New("TheTipTop - Workflow", diagram.WithFilename("workflow"))

	d.Custom("Git", env.Asset(GitIcon))

	return finish(d)
}
