package cli

import (
	"context"
	"os"
	"slices"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/thetiptop/archdiagram/pkg/config"
	"github.com/thetiptop/archdiagram/pkg/diagram"
	aerrors "github.com/thetiptop/archdiagram/pkg/errors"
	dio "github.com/thetiptop/archdiagram/pkg/io"
	"github.com/thetiptop/archdiagram/pkg/pipeline"
	"github.com/thetiptop/archdiagram/pkg/topology"
)

// targetAll selects every registered diagram.
const targetAll = "all"

// renderOpts holds the command-line flags for the render command.
// Empty strings and false values mean "use the config file".
type renderOpts struct {
	formats  string // comma-separated output formats
	output   string // output directory
	assets   string // icon asset directory
	detailed bool   // append kind names to node labels
	noCache  bool   // render without reading or writing the cache
	refresh  bool   // re-render and overwrite cached artifacts
	fromJSON string // render a diagram exported with --format json
}

// job is one diagram to render with its resolved formats.
type job struct {
	name    string
	formats []string
	declare func() (*diagram.Diagram, error)
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render [diagram...|all]",
		Short: "Render diagrams to image files",
		Long: `Render one or more registered diagrams. With no arguments, or with "all",
every diagram is rendered in its configured formats.

Files are written as <output>/<filename>.<format>, for example
architecture.png and workflow.png.`,
		Example: `  archdiagram render
  archdiagram render architecture -f svg -o docs/
  archdiagram render --from-json architecture.json -f png`,
		ValidArgsFunction: completeDiagramNames,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			return c.runRender(cmd.Context(), cfg, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.formats, "format", "f", "", "output format(s): png, svg, jpg, dot, json, mmd (comma-separated; default per diagram)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output directory (default from config, else .)")
	cmd.Flags().StringVar(&opts.assets, "assets", "", "icon asset directory (default from config, else ./assets)")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "show node kinds in labels")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the render cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "ignore cached artifacts and re-render")
	cmd.Flags().StringVar(&opts.fromJSON, "from-json", "", "render a diagram from an exported JSON file")

	return cmd
}

// runRender resolves the requested diagrams and renders them in order.
// The first failure aborts the run.
func (c *CLI) runRender(ctx context.Context, cfg config.Config, args []string, opts renderOpts) error {
	jobs, err := resolveJobs(cfg, args, opts)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(opts.noCache || cfg.NoCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	pipeOpts := mergeOptions(cfg, opts)
	for _, j := range jobs {
		d, err := j.declare()
		if err != nil {
			return err
		}

		pipeOpts.Formats = j.formats
		prog := newProgress(c.Logger)
		res, err := c.renderOne(ctx, runner, d, pipeOpts)
		if err != nil {
			return err
		}
		prog.done("Rendered " + j.name)

		cached := len(res.Artifacts) > 0
		for _, a := range res.Artifacts {
			cached = cached && a.Cached
		}
		printSuccess("%s", d.Name())
		for _, a := range res.Artifacts {
			printFile(a.Path)
		}
		printStats(res.NodeCount, res.EdgeCount, cached)
	}
	return nil
}

// renderOne runs the pipeline for d behind a spinner, unless debug logging
// is on and the log lines already show progress.
func (c *CLI) renderOne(ctx context.Context, runner *pipeline.Runner, d *diagram.Diagram, opts pipeline.Options) (*pipeline.Result, error) {
	if c.Logger.GetLevel() > log.DebugLevel {
		s := newSpinner(ctx, os.Stderr, "Rendering "+d.Name())
		s.Start()
		defer s.release()
	}
	return runner.Run(ctx, d, opts)
}

// resolveJobs turns the command arguments into render jobs.
func resolveJobs(cfg config.Config, args []string, opts renderOpts) ([]job, error) {
	flagFormats := pipeline.ParseFormats(opts.formats)
	if opts.formats != "" {
		if err := pipeline.ValidateFormats(flagFormats); err != nil {
			return nil, err
		}
	}

	if opts.fromJSON != "" {
		if len(args) > 0 {
			return nil, aerrors.New(aerrors.ErrCodeInvalidInput, "--from-json cannot be combined with diagram names")
		}
		formats := flagFormats
		if len(formats) == 0 {
			formats = []string{pipeline.FormatPNG}
		}
		path := opts.fromJSON
		return []job{{
			name:    path,
			formats: formats,
			declare: func() (*diagram.Diagram, error) { return dio.ImportJSON(path) },
		}}, nil
	}

	names, err := targetNames(args)
	if err != nil {
		return nil, err
	}

	env := topology.Env{AssetsDir: firstNonEmpty(opts.assets, cfg.AssetsDir)}
	jobs := make([]job, 0, len(names))
	for _, name := range names {
		decl, err := topology.Lookup(name)
		if err != nil {
			return nil, err
		}
		formats := flagFormats
		if len(formats) == 0 {
			formats = cfg.FormatsFor(name, decl.DefaultFormats)
		}
		jobs = append(jobs, job{
			name:    name,
			formats: formats,
			declare: func() (*diagram.Diagram, error) { return decl.Declare(env) },
		})
	}
	return jobs, nil
}

// targetNames expands "all" (or no arguments) to every registered diagram
// and drops duplicates while keeping argument order.
func targetNames(args []string) ([]string, error) {
	if len(args) == 0 || slices.Contains(args, targetAll) {
		if len(args) > 1 {
			return nil, aerrors.New(aerrors.ErrCodeInvalidInput, "%q cannot be combined with diagram names", targetAll)
		}
		return topology.Names(), nil
	}

	var names []string
	for _, a := range args {
		if !slices.Contains(names, a) {
			names = append(names, a)
		}
	}
	return names, nil
}

// mergeOptions applies flags on top of config values.
func mergeOptions(cfg config.Config, opts renderOpts) pipeline.Options {
	return pipeline.Options{
		OutputDir: firstNonEmpty(opts.output, cfg.OutputDir),
		Detailed:  opts.detailed || cfg.Detailed,
		Refresh:   opts.refresh,
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// completeDiagramNames offers registered diagram names for shell completion.
func completeDiagramNames(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
	candidates := append(topology.Names(), targetAll)
	var out []string
	for _, n := range candidates {
		if !slices.Contains(args, n) {
			out = append(out, n)
		}
	}
	return out, cobra.ShellCompDirectiveNoFileComp
}
