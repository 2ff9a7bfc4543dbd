package render

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"

	"github.com/goccy/go-graphviz"
)

// Format is an image format Graphviz can produce.
type Format string

const (
	SVG Format = "svg"
	PNG Format = "png"
	JPG Format = "jpg"
)

var graphvizFormats = map[Format]graphviz.Format{
	SVG: graphviz.SVG,
	PNG: graphviz.PNG,
	JPG: graphviz.JPG,
}

// IsImageFormat reports whether f is rendered through Graphviz.
func IsImageFormat(f string) bool {
	_, ok := graphvizFormats[Format(f)]
	return ok
}

// Render lays out the DOT graph and encodes it in the given format.
//
// Icons are drawn into the custom nodes they belong to. Graphviz runs
// sandboxed and cannot read icon files, so the icons are embedded into the
// SVG output. PNG and JPG output with icons is rasterized from that SVG,
// which requires rsvg-convert; without it Render returns [ErrNoRasterizer]
// rather than an image with empty nodes.
//
// SVG output has its root element normalized to a zero-origin viewBox.
func Render(ctx context.Context, dot string, format Format, icons Icons) ([]byte, error) {
	gvFormat, ok := graphvizFormats[format]
	if !ok {
		return nil, fmt.Errorf("unsupported image format: %s", format)
	}

	if len(icons) == 0 {
		data, err := graphvizRender(ctx, dot, gvFormat)
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		if format == SVG {
			return normalizeViewBox(data), nil
		}
		return data, nil
	}

	svg, err := graphvizRender(ctx, dot, graphviz.SVG)
	if err != nil {
		return nil, fmt.Errorf("render svg: %w", err)
	}
	svg, err = embedIcons(normalizeViewBox(svg), icons)
	if err != nil {
		return nil, fmt.Errorf("embed icons: %w", err)
	}

	switch format {
	case SVG:
		return svg, nil
	case PNG:
		return toPNG(ctx, svg, rasterScale)
	default:
		png, err := toPNG(ctx, svg, rasterScale)
		if err != nil {
			return nil, err
		}
		return toJPG(png)
	}
}

func graphvizRender(ctx context.Context, dot string, format graphviz.Format) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.-]+)\s+([0-9.-]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	root := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" xmlns:xlink="http://www.w3.org/1999/xlink" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	loc := svgTagRe.FindIndex(svg)
	if loc == nil {
		return svg
	}
	out := make([]byte, 0, len(svg))
	out = append(out, svg[:loc[0]]...)
	out = append(out, root...)
	return append(out, svg[loc[1]:]...)
}
