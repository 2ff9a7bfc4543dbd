package render

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/thetiptop/archdiagram/pkg/diagram"
	"github.com/thetiptop/archdiagram/pkg/diagram/kind"
	"github.com/thetiptop/archdiagram/pkg/topology"
)

const shippedAssets = "../../assets"

var testIcon = Icon{Data: []byte(`<svg xmlns="http://www.w3.org/2000/svg"/>`), MediaType: "image/svg+xml"}

// nodeGroup returns the body of the SVG group drawn for node id.
func nodeGroup(t *testing.T, svg []byte, id string) string {
	t.Helper()
	for _, m := range nodeGroupRe.FindAllSubmatch(svg, -1) {
		if string(m[1]) == id {
			return string(m[2])
		}
	}
	t.Fatalf("no node group for %s in:\n%s", id, svg)
	return ""
}

func TestEmbedIcons_FromOutline(t *testing.T) {
	svg := []byte(`<svg xmlns="http://www.w3.org/2000/svg" xmlns:xlink="http://www.w3.org/1999/xlink">
<g id="node1" class="node">
<title>n1</title>
<polygon fill="none" stroke="transparent" points="100.8,-136.8 0,-136.8 0,0 100.8,0 100.8,-136.8"/>
<text text-anchor="middle" x="50.4" y="-7.8" font-size="13.00">Git</text>
</g>
</svg>`)

	out, err := embedIcons(svg, Icons{"n1": testIcon})
	if err != nil {
		t.Fatalf("embedIcons() error = %v", err)
	}

	body := nodeGroup(t, out, "n1")
	if !strings.Contains(body, `<image x="4.00" y="-132.80" width="92.80" height="108.80"`) {
		t.Errorf("icon not placed inside node outline:\n%s", body)
	}
	if !strings.Contains(body, "data:image/svg+xml;base64,") {
		t.Error("icon should be embedded as a data URI")
	}
	if !strings.Contains(body, ">Git</text>") {
		t.Error("label should be kept")
	}
}

func TestEmbedIcons_FromLabel(t *testing.T) {
	svg := []byte(`<svg><g id="node1" class="node">
<title>n1</title>
<text text-anchor="middle" x="50.4" y="-7.8">Git</text>
</g></svg>`)

	out, err := embedIcons(svg, Icons{"n1": testIcon})
	if err != nil {
		t.Fatalf("embedIcons() error = %v", err)
	}
	if !strings.Contains(nodeGroup(t, out, "n1"), "<image") {
		t.Error("icon should be placed from the label position")
	}
}

func TestEmbedIcons_LeavesOtherNodes(t *testing.T) {
	svg := []byte(`<svg><g id="node1" class="node">
<title>n1</title>
<polygon points="0,-10 10,-10 10,0 0,0"/>
</g>
<g id="node2" class="node">
<title>n2</title>
<polygon points="0,-100 100,-100 100,0 0,0"/>
</g></svg>`)

	out, err := embedIcons(svg, Icons{"n2": testIcon})
	if err != nil {
		t.Fatalf("embedIcons() error = %v", err)
	}
	if strings.Contains(nodeGroup(t, out, "n1"), "<image") {
		t.Error("node without icon should not get an image")
	}
	if strings.Count(string(out), "<image") != 1 {
		t.Errorf("want exactly one image:\n%s", out)
	}
}

func TestEmbedIcons_KeepsExistingImage(t *testing.T) {
	svg := []byte(`<svg><g id="node1" class="node">
<title>n1</title>
<image xlink:href="github.svg" width="90px" height="90px"/>
</g></svg>`)

	out, err := embedIcons(svg, Icons{"n1": testIcon})
	if err != nil {
		t.Fatalf("embedIcons() error = %v", err)
	}
	if !bytes.Equal(out, svg) {
		t.Errorf("node that already shows its icon was changed:\n%s", out)
	}
}

func TestEmbedIcons_MissingNode(t *testing.T) {
	svg := []byte(`<svg><g id="node1" class="node">
<title>n1</title>
<text x="1" y="2">a</text>
</g></svg>`)

	if _, err := embedIcons(svg, Icons{"n7": testIcon}); err == nil {
		t.Error("embedIcons() should fail when an icon's node is missing")
	}
}

func TestEmbedIcons_NoGeometry(t *testing.T) {
	svg := []byte(`<svg><g id="node1" class="node">
<title>n1</title>
</g></svg>`)

	if _, err := embedIcons(svg, Icons{"n1": testIcon}); err == nil {
		t.Error("embedIcons() should fail when the node has no geometry")
	}
}

func TestMediaType(t *testing.T) {
	tests := []struct {
		path string
		data []byte
		want string
	}{
		{"github.svg", nil, "image/svg+xml"},
		{"logo.PNG", nil, "image/png"},
		{"logo", []byte("\x89PNG\r\n\x1a\n0000"), "image/png"},
	}

	for _, tt := range tests {
		if got := mediaType(tt.path, tt.data); got != tt.want {
			t.Errorf("mediaType(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestLoadIcons(t *testing.T) {
	icon := filepath.Join(t.TempDir(), "github.svg")
	if err := os.WriteFile(icon, testIcon.Data, 0o644); err != nil {
		t.Fatal(err)
	}
	d := diagram.New("icons")
	d.Node(kind.EC2, "worker")
	git := d.Custom("Git", icon)

	icons, err := LoadIcons(d)
	if err != nil {
		t.Fatalf("LoadIcons() error = %v", err)
	}
	if len(icons) != 1 {
		t.Fatalf("len(icons) = %d, want 1", len(icons))
	}
	if got := icons[git.ID()]; !bytes.Equal(got.Data, testIcon.Data) || got.MediaType != "image/svg+xml" {
		t.Errorf("icons[%s] = %+v", git.ID(), got)
	}

	os.Remove(icon)
	if _, err := LoadIcons(d); err == nil {
		t.Error("LoadIcons() should fail when the icon file is gone")
	}
}

func renderWorkflow(t *testing.T, format Format, withIcons bool) ([]byte, error) {
	t.Helper()
	d, err := topology.Workflow(topology.Env{AssetsDir: shippedAssets})
	if err != nil {
		t.Fatal(err)
	}
	var icons Icons
	if withIcons {
		if icons, err = LoadIcons(d); err != nil {
			t.Fatal(err)
		}
	}
	return Render(context.Background(), ToDOT(d, Options{}), format, icons)
}

func TestRender_WorkflowSVGShowsIcon(t *testing.T) {
	if testing.Short() {
		t.Skip("graphviz render is slow")
	}
	svg, err := renderWorkflow(t, SVG, true)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	body := nodeGroup(t, svg, "n1")
	if !strings.Contains(body, "<image") {
		t.Fatalf("Git node has no image:\n%s", body)
	}
	if !strings.Contains(body, "data:image/svg+xml;base64,") {
		t.Error("Git icon should be embedded, not referenced by path")
	}
	if !strings.Contains(body, ">Git</text>") {
		t.Error("Git label missing")
	}
}

func TestRender_WorkflowRasterShowsIcon(t *testing.T) {
	if testing.Short() {
		t.Skip("graphviz render is slow")
	}
	if _, err := exec.LookPath("rsvg-convert"); err != nil {
		t.Skip("rsvg-convert not installed")
	}

	bare, err := renderWorkflow(t, PNG, false)
	if err != nil {
		t.Fatalf("Render() without icons error = %v", err)
	}
	png, err := renderWorkflow(t, PNG, true)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if !bytes.HasPrefix(png, []byte("\x89PNG")) {
		t.Fatal("output is not PNG")
	}
	if bytes.Equal(png, bare) {
		t.Error("PNG with icon is identical to the label-only render")
	}

	jpg, err := renderWorkflow(t, JPG, true)
	if err != nil {
		t.Fatalf("Render() jpg error = %v", err)
	}
	if !bytes.HasPrefix(jpg, []byte{0xFF, 0xD8}) {
		t.Error("output is not JPEG")
	}
}

func TestRender_IconsWithoutRasterizer(t *testing.T) {
	if testing.Short() {
		t.Skip("graphviz render is slow")
	}
	t.Setenv("PATH", t.TempDir())

	for _, f := range []Format{PNG, JPG} {
		if _, err := renderWorkflow(t, f, true); !errors.Is(err, ErrNoRasterizer) {
			t.Errorf("Render(%s) error = %v, want ErrNoRasterizer", f, err)
		}
	}
}
