package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"

	"github.com/thetiptop/archdiagram/pkg/cache"
	"github.com/thetiptop/archdiagram/pkg/diagram"
	aerrors "github.com/thetiptop/archdiagram/pkg/errors"
	dio "github.com/thetiptop/archdiagram/pkg/io"
	"github.com/thetiptop/archdiagram/pkg/observability"
	"github.com/thetiptop/archdiagram/pkg/render"
)

// Runner renders diagrams with caching.
//
// The Runner holds no per-run state, only the cache and logger, so one
// Runner can render several diagrams in sequence.
type Runner struct {
	Cache  cache.Cache
	Logger *log.Logger
}

// NewRunner creates a runner. A nil cache disables caching; a nil logger
// uses log.Default().
func NewRunner(c cache.Cache, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.Discard
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Cache: c, Logger: logger}
}

// Close releases the cache.
func (r *Runner) Close() error {
	return r.Cache.Close()
}

// Run validates d, renders every requested format, and writes the files.
// It stops at the first failure; files written before it are left in place.
func (r *Runner) Run(ctx context.Context, d *diagram.Diagram, opts Options) (*Result, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if err := d.Validate(); err != nil {
		return nil, aerrors.Wrap(aerrors.ErrCodeInvalidTopology, err, "diagram %s", d.Name())
	}
	if err := os.MkdirAll(opts.OutputDir, 0o755); err != nil {
		return nil, aerrors.Wrap(aerrors.ErrCodeWriteOutput, err, "create output dir %s", opts.OutputDir)
	}

	result := &Result{
		Diagram:   d.Name(),
		NodeCount: d.NodeCount(),
		EdgeCount: d.EdgeCount(),
	}

	for _, format := range opts.Formats {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		start := time.Now()
		data, cached, err := r.Generate(ctx, d, format, opts)
		if err != nil {
			return nil, err
		}

		path := filepath.Join(opts.OutputDir, d.Filename()+"."+format)
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return nil, aerrors.Wrap(aerrors.ErrCodeWriteOutput, err, "write %s", path)
		}

		r.Logger.Debug("wrote artifact",
			"diagram", d.Filename(),
			"format", format,
			"path", path,
			"bytes", len(data),
			"cached", cached,
			"duration", time.Since(start).Round(time.Millisecond))

		result.Artifacts = append(result.Artifacts, Artifact{
			Format: format,
			Path:   path,
			Size:   len(data),
			Cached: cached,
		})
	}

	return result, nil
}

// Generate produces the bytes of a single format without writing a file.
// The boolean result reports whether the bytes came from the cache.
func (r *Runner) Generate(ctx context.Context, d *diagram.Diagram, format string, opts Options) ([]byte, bool, error) {
	if err := ValidateFormat(format); err != nil {
		return nil, false, err
	}

	switch format {
	case FormatJSON:
		data, err := dio.MarshalJSON(d)
		if err != nil {
			return nil, false, aerrors.Wrap(aerrors.ErrCodeInternal, err, "export %s", d.Filename())
		}
		return data, false, nil
	case FormatMermaid:
		return []byte(dio.ToMermaid(d)), false, nil
	}

	dot := render.ToDOT(d, render.Options{Detailed: opts.Detailed})
	if format == FormatDOT {
		return []byte(dot), false, nil
	}
	return r.renderImage(ctx, d, dot, format, opts.Refresh)
}

func (r *Runner) renderImage(ctx context.Context, d *diagram.Diagram, dot, format string, refresh bool) ([]byte, bool, error) {
	icons, err := render.LoadIcons(d)
	if err != nil {
		return nil, false, aerrors.Wrap(aerrors.ErrCodeFileNotFound, err, "read icons of %s", d.Filename())
	}
	iconsHash, err := cache.HashFiles(iconPaths(d))
	if err != nil {
		return nil, false, aerrors.Wrap(aerrors.ErrCodeFileNotFound, err, "read icons of %s", d.Filename())
	}
	key := cache.ArtifactKey(dot, cache.ArtifactKeyOpts{Format: format, IconsHash: iconsHash})

	if !refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			observability.Cache().OnCacheHit(ctx, "artifact")
			return data, true, nil
		} else if err != nil {
			r.Logger.Warn("cache read failed", "error", err)
		}
		observability.Cache().OnCacheMiss(ctx, "artifact")
	}

	hooks := observability.Render()
	hooks.OnRenderStart(ctx, d.Filename(), format)
	start := time.Now()
	data, err := render.Render(ctx, dot, render.Format(format), icons)
	hooks.OnRenderComplete(ctx, d.Filename(), format, len(data), time.Since(start), err)
	if err != nil {
		return nil, false, aerrors.Wrap(aerrors.ErrCodeRender, err, "render %s as %s", d.Filename(), format)
	}

	if err := r.Cache.Set(ctx, key, data, 0); err != nil {
		r.Logger.Warn("cache write failed", "error", err)
	} else {
		observability.Cache().OnCacheSet(ctx, "artifact", len(data))
	}
	return data, false, nil
}

// iconPaths returns the icon paths referenced by custom nodes.
func iconPaths(d *diagram.Diagram) []string {
	var paths []string
	for _, n := range d.Nodes() {
		if n.Kind().IsCustom() {
			paths = append(paths, n.Icon())
		}
	}
	return paths
}

// String formats an artifact for log output.
func (a Artifact) String() string {
	src := "fresh"
	if a.Cached {
		src = "cached"
	}
	return fmt.Sprintf("%s (%s, %d bytes, %s)", a.Path, a.Format, a.Size, src)
}
