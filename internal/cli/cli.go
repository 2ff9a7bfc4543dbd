// Package cli implements the archdiagram command-line interface.
//
// The CLI renders the registered topologies to image files, prints their
// structure for inspection, and manages the render cache. It is built on
// cobra; logging goes through charmbracelet/log on stderr while status
// lines are styled with lipgloss on stdout.
//
// # Commands
//
//   - render: Render one, several, or all diagrams
//   - list: Show the registered diagrams and their default formats
//   - inspect: Print a diagram as JSON, DOT, or Mermaid
//   - cache: Clear or locate the render cache
//   - completion: Generate shell completion scripts
package cli

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/thetiptop/archdiagram/pkg/buildinfo"
	"github.com/thetiptop/archdiagram/pkg/cache"
	"github.com/thetiptop/archdiagram/pkg/config"
	"github.com/thetiptop/archdiagram/pkg/observability"
	"github.com/thetiptop/archdiagram/pkg/pipeline"
	"github.com/thetiptop/archdiagram/pkg/topology"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "archdiagram"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger     *log.Logger
	configPath string
}

// New creates a new CLI instance and routes pipeline events to its logger.
func New(w io.Writer, level log.Level) *CLI {
	c := &CLI{Logger: newLogger(w, level)}
	hooks := logHooks{logger: c.Logger}
	observability.SetRenderHooks(hooks)
	observability.SetCacheHooks(hooks)
	return c
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "archdiagram renders the TheTipTop architecture diagrams",
		Long:         `archdiagram declares the TheTipTop infrastructure and CI workflow topologies in code and renders them to PNG, SVG, and other formats with Graphviz.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default ./"+config.DefaultFile+" if present)")

	root.AddCommand(c.renderCommand())
	root.AddCommand(c.listCommand())
	root.AddCommand(c.inspectCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// loadConfig reads the config file selected by --config.
func (c *CLI) loadConfig() (config.Config, error) {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return config.Config{}, err
	}
	if err := cfg.Validate(topology.Names()); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(noCache bool) (*pipeline.Runner, error) {
	cache, err := c.newCache(noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(cache, c.Logger), nil
}

// newCache opens the file cache, falling back to no caching when the
// cache directory cannot be determined.
func (c *CLI) newCache(noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.Discard, nil
	}
	dir, err := cacheDir()
	if err != nil {
		c.Logger.Debug("cache disabled", "error", err)
		return cache.Discard, nil
	}
	return cache.NewFileCache(dir)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/archdiagram/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}
