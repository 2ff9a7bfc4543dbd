package cli

import (
	"github.com/spf13/cobra"

	aerrors "github.com/thetiptop/archdiagram/pkg/errors"
	"github.com/thetiptop/archdiagram/pkg/pipeline"
	"github.com/thetiptop/archdiagram/pkg/render"
	"github.com/thetiptop/archdiagram/pkg/topology"
)

// inspectCommand creates the inspect command, which prints a diagram's
// structure in a text format instead of rendering an image.
func (c *CLI) inspectCommand() *cobra.Command {
	var (
		format   string
		assets   string
		detailed bool
	)

	cmd := &cobra.Command{
		Use:               "inspect <diagram>",
		Short:             "Print a diagram as JSON, DOT, or Mermaid",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeDiagramNames,
		RunE: func(cmd *cobra.Command, args []string) error {
			if render.IsImageFormat(format) {
				return aerrors.New(aerrors.ErrCodeInvalidFormat, "inspect prints text formats only (json, dot, mmd); use render for %s", format)
			}
			if err := pipeline.ValidateFormat(format); err != nil {
				return err
			}

			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			decl, err := topology.Lookup(args[0])
			if err != nil {
				return err
			}
			d, err := decl.Declare(topology.Env{AssetsDir: firstNonEmpty(assets, cfg.AssetsDir)})
			if err != nil {
				return err
			}

			runner := pipeline.NewRunner(nil, c.Logger)
			data, _, err := runner.Generate(cmd.Context(), d, format, pipeline.Options{Detailed: detailed || cfg.Detailed})
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", pipeline.FormatJSON, "output format: json, dot, mmd")
	cmd.Flags().StringVar(&assets, "assets", "", "icon asset directory (default from config, else ./assets)")
	cmd.Flags().BoolVar(&detailed, "detailed", false, "show node kinds in labels (dot)")

	return cmd
}
