package render

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"os/exec"

	"github.com/disintegration/imaging"
)

// ErrNoRasterizer is returned when a diagram with custom icons is rendered
// to PNG or JPG and rsvg-convert is not installed.
var ErrNoRasterizer = errors.New("rsvg-convert not found")

// rasterScale matches Graphviz's own 96 dpi PNG output for point-sized SVG.
const rasterScale = 96.0 / 72.0

// toPNG rasterizes SVG bytes with rsvg-convert at the given scale.
func toPNG(ctx context.Context, svg []byte, scale float64) ([]byte, error) {
	if _, err := exec.LookPath("rsvg-convert"); err != nil {
		return nil, fmt.Errorf("%w: drawing icons into raster images requires librsvg. Install with:\n  macOS:  brew install librsvg\n  Linux:  apt install librsvg2-bin", ErrNoRasterizer)
	}

	cmd := exec.CommandContext(ctx, "rsvg-convert", "-f", "png", "-z", fmt.Sprintf("%.4f", scale))
	cmd.Stdin = bytes.NewReader(svg)

	var out, errBuf bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &errBuf

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("rsvg-convert: %v: %s", err, errBuf.String())
	}
	return out.Bytes(), nil
}

// toJPG flattens a PNG onto white and encodes it as JPEG.
func toJPG(png []byte) ([]byte, error) {
	img, err := imaging.Decode(bytes.NewReader(png))
	if err != nil {
		return nil, fmt.Errorf("decode png: %w", err)
	}
	bounds := img.Bounds()
	flat := imaging.Overlay(imaging.New(bounds.Dx(), bounds.Dy(), color.White), img, image.Pt(0, 0), 1.0)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, flat, imaging.JPEG, imaging.JPEGQuality(90)); err != nil {
		return nil, fmt.Errorf("encode jpg: %w", err)
	}
	return buf.Bytes(), nil
}
