package render

import (
	"encoding/base64"
	"fmt"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/thetiptop/archdiagram/pkg/diagram"
)

// Icon is the picture drawn inside a custom node.
type Icon struct {
	Data      []byte
	MediaType string // e.g. "image/svg+xml"
}

// Icons maps node IDs to the pictures drawn inside them.
type Icons map[string]Icon

// LoadIcons reads the icon file of every custom node in d.
// The returned map is empty when d has no custom nodes.
func LoadIcons(d *diagram.Diagram) (Icons, error) {
	icons := Icons{}
	for _, n := range d.Nodes() {
		if !n.Kind().IsCustom() {
			continue
		}
		data, err := os.ReadFile(n.Icon())
		if err != nil {
			return nil, fmt.Errorf("icon of %q: %w", n.Label(), err)
		}
		icons[n.ID()] = Icon{Data: data, MediaType: mediaType(n.Icon(), data)}
	}
	return icons, nil
}

func mediaType(path string, data []byte) string {
	if t := mime.TypeByExtension(strings.ToLower(filepath.Ext(path))); t != "" {
		t, _, _ = strings.Cut(t, ";")
		return t
	}
	t, _, _ := strings.Cut(http.DetectContentType(data), ";")
	return t
}

func (i Icon) dataURI() string {
	return "data:" + i.MediaType + ";base64," + base64.StdEncoding.EncodeToString(i.Data)
}

// Node geometry in the Graphviz SVG. Custom nodes are drawn as a box with a
// transparent pen, so their outline polygon gives the icon area.
var (
	nodeGroupRe = regexp.MustCompile(`(?s)<g id="[^"]*" class="node">\s*<title>([^<]*)</title>(.*?)</g>`)
	polygonRe   = regexp.MustCompile(`<polygon[^>]*\bpoints="([^"]+)"`)
	textPosRe   = regexp.MustCompile(`<text[^>]*\bx="(-?[0-9.]+)" y="(-?[0-9.]+)"`)
)

const (
	iconPad    = 4.0  // gap between node outline and icon
	iconLabelH = 20.0 // space kept free for the label under the icon
)

type box struct{ x, y, w, h float64 }

// embedIcons draws each icon into the node group whose title is its node ID.
// Nodes that already contain an <image> (a Graphviz build that could read the
// file itself) are left alone. Every icon must find its node.
func embedIcons(svg []byte, icons Icons) ([]byte, error) {
	if len(icons) == 0 {
		return svg, nil
	}

	placed := make(map[string]bool, len(icons))
	var out []byte
	last := 0
	for _, m := range nodeGroupRe.FindAllSubmatchIndex(svg, -1) {
		id := string(svg[m[2]:m[3]])
		icon, ok := icons[id]
		if !ok {
			continue
		}
		body := svg[m[4]:m[5]]
		placed[id] = true
		if strings.Contains(string(body), "<image") {
			continue
		}

		b, err := nodeBox(body)
		if err != nil {
			return nil, fmt.Errorf("node %s: %w", id, err)
		}
		at := m[3] + len("</title>")
		out = append(out, svg[last:at]...)
		out = append(out, '\n')
		out = append(out, imageTag(b, icon)...)
		last = at
	}
	out = append(out, svg[last:]...)

	for id := range icons {
		if !placed[id] {
			return nil, fmt.Errorf("node %s not found in rendered SVG", id)
		}
	}
	return out, nil
}

// nodeBox returns the node outline, falling back to the fixed custom node
// size centered on the label when Graphviz drew no outline.
func nodeBox(body []byte) (box, error) {
	if m := polygonRe.FindSubmatch(body); m != nil {
		return polygonBox(string(m[1]))
	}
	m := textPosRe.FindSubmatch(body)
	if m == nil {
		return box{}, fmt.Errorf("no outline or label to place the icon")
	}
	tx, _ := strconv.ParseFloat(string(m[1]), 64)
	ty, _ := strconv.ParseFloat(string(m[2]), 64)
	w, h := customWidth*72, customHeight*72
	bottom := ty + 6
	return box{x: tx - w/2, y: bottom - h, w: w, h: h}, nil
}

func polygonBox(points string) (box, error) {
	var minX, minY, maxX, maxY float64
	for i, p := range strings.Fields(points) {
		xs, ys, ok := strings.Cut(p, ",")
		if !ok {
			return box{}, fmt.Errorf("bad polygon point %q", p)
		}
		x, err := strconv.ParseFloat(xs, 64)
		if err != nil {
			return box{}, fmt.Errorf("bad polygon point %q", p)
		}
		y, err := strconv.ParseFloat(ys, 64)
		if err != nil {
			return box{}, fmt.Errorf("bad polygon point %q", p)
		}
		if i == 0 {
			minX, maxX, minY, maxY = x, x, y, y
			continue
		}
		minX, maxX = min(minX, x), max(maxX, x)
		minY, maxY = min(minY, y), max(maxY, y)
	}
	if maxX <= minX || maxY <= minY {
		return box{}, fmt.Errorf("empty node outline %q", points)
	}
	return box{x: minX, y: minY, w: maxX - minX, h: maxY - minY}, nil
}

func imageTag(b box, icon Icon) string {
	x, y := b.x+iconPad, b.y+iconPad
	w, h := b.w-2*iconPad, b.h-2*iconPad-iconLabelH
	if w <= 0 || h <= 0 {
		x, y, w, h = b.x, b.y, b.w, b.h
	}
	uri := icon.dataURI()
	return fmt.Sprintf(`<image x="%.2f" y="%.2f" width="%.2f" height="%.2f" preserveAspectRatio="xMidYMid meet" href="%s" xlink:href="%s"/>`,
		x, y, w, h, uri, uri)
}
