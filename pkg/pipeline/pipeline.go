// Package pipeline renders declared diagrams to files.
//
// A [Runner] takes a validated [diagram.Diagram], converts it to DOT once,
// and produces one artifact per requested format, writing each to
// <OutputDir>/<Filename>.<format>. Image formats go through Graphviz and
// are cached by content; text formats (dot, json, mmd) are generated
// directly.
package pipeline

import (
	"slices"
	"strings"

	aerrors "github.com/thetiptop/archdiagram/pkg/errors"
)

// Output formats.
const (
	FormatPNG     = "png"
	FormatSVG     = "svg"
	FormatJPG     = "jpg"
	FormatDOT     = "dot"
	FormatJSON    = "json"
	FormatMermaid = "mmd"
)

// ValidFormats lists every supported output format.
var ValidFormats = []string{FormatPNG, FormatSVG, FormatJPG, FormatDOT, FormatJSON, FormatMermaid}

// ValidateFormat checks that format is supported. Formats are case-sensitive.
func ValidateFormat(format string) error {
	if !slices.Contains(ValidFormats, format) {
		return aerrors.New(aerrors.ErrCodeInvalidFormat, "invalid format: %q (must be one of %s)", format, strings.Join(ValidFormats, ", "))
	}
	return nil
}

// ValidateFormats checks every format in formats.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ParseFormats splits a comma-separated format list, trimming blanks and
// dropping duplicates. An empty string yields nil.
func ParseFormats(s string) []string {
	var out []string
	for _, f := range strings.Split(s, ",") {
		f = strings.TrimSpace(f)
		if f != "" && !slices.Contains(out, f) {
			out = append(out, f)
		}
	}
	return out
}

// Options controls a pipeline run.
type Options struct {
	Formats   []string // output formats, see ValidFormats
	OutputDir string   // directory for output files, created if missing
	Detailed  bool     // include service names in node labels
	Refresh   bool     // ignore cached artifacts (still writes the cache)
}

// Validate checks the options and applies defaults.
func (o *Options) Validate() error {
	if len(o.Formats) == 0 {
		return aerrors.New(aerrors.ErrCodeInvalidFormat, "no output formats requested")
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if o.OutputDir == "" {
		o.OutputDir = "."
	}
	return nil
}

// Artifact describes one written output file.
type Artifact struct {
	Format string
	Path   string
	Size   int
	Cached bool
}

// Result is the outcome of rendering one diagram.
type Result struct {
	Diagram   string
	NodeCount int
	EdgeCount int
	Artifacts []Artifact
}
