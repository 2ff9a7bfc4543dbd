package topology

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/thetiptop/archdiagram/pkg/diagram"
	"github.com/thetiptop/archdiagram/pkg/diagram/kind"
	aerrors "github.com/thetiptop/archdiagram/pkg/errors"
)

func labels(nodes []*diagram.Node) []string {
	out := make([]string, len(nodes))
	for i, n := range nodes {
		out[i] = n.Label()
	}
	return out
}

func nodeByLabel(t *testing.T, d *diagram.Diagram, label string) *diagram.Node {
	t.Helper()
	for _, n := range d.Nodes() {
		if n.Label() == label {
			return n
		}
	}
	t.Fatalf("node %q not declared", label)
	return nil
}

func TestArchitecture_Nodes(t *testing.T) {
	d, err := Architecture(Env{})
	if err != nil {
		t.Fatalf("Architecture() error = %v", err)
	}

	tests := []struct {
		kind kind.Kind
		want int
	}{
		{kind.Route53, 1},
		{kind.CloudFront, 1},
		{kind.NLB, 1},
		{kind.EC2, WorkerCount},
		{kind.RDS, 2},
	}
	for _, tt := range tests {
		if got := len(d.NodesOfKind(tt.kind)); got != tt.want {
			t.Errorf("%s nodes = %d, want %d", tt.kind.Name(), got, tt.want)
		}
	}
	if d.NodeCount() != 10 {
		t.Errorf("NodeCount() = %d, want 10 (%v)", d.NodeCount(), labels(d.Nodes()))
	}
	if d.Filename() != "architecture" {
		t.Errorf("Filename() = %q, want architecture", d.Filename())
	}
}

func TestArchitecture_Edges(t *testing.T) {
	d, err := Architecture(Env{})
	if err != nil {
		t.Fatalf("Architecture() error = %v", err)
	}

	dns := nodeByLabel(t, d, "DNS")
	cdn := nodeByLabel(t, d, "CDN")
	lb := nodeByLabel(t, d, "LoadBalancer")
	write := nodeByLabel(t, d, "Databases Write")
	read := nodeByLabel(t, d, "Databases Read")
	workers := d.NodesOfKind(kind.EC2)

	want := [][2]*diagram.Node{{dns, cdn}, {cdn, lb}, {write, read}}
	for _, w := range workers {
		want = append(want, [2]*diagram.Node{lb, w}, [2]*diagram.Node{w, write})
	}

	if d.EdgeCount() != len(want) {
		t.Errorf("EdgeCount() = %d, want %d", d.EdgeCount(), len(want))
	}
	for _, e := range want {
		if !d.HasEdge(e[0], e[1]) {
			t.Errorf("missing edge %s -> %s", e[0].Label(), e[1].Label())
		}
	}
}

func TestArchitecture_Clusters(t *testing.T) {
	d, err := Architecture(Env{})
	if err != nil {
		t.Fatalf("Architecture() error = %v", err)
	}

	tests := []struct {
		label string
		path  []string
	}{
		{"LoadBalancer", []string{"VPC", "Private subnet"}},
		{"worker3", []string{"VPC", "Private subnet", "AutoScalingGroup"}},
		{"Databases Write", []string{"VPC", "Isolated subnet", "DBCluster"}},
		{"Databases Read", []string{"VPC", "Isolated subnet", "DBCluster"}},
		{"DNS", nil},
		{"CDN", nil},
	}

	for _, tt := range tests {
		n := nodeByLabel(t, d, tt.label)
		var got []string
		if c := n.Cluster(); c != nil {
			got = c.Path()
		}
		if len(got) != len(tt.path) {
			t.Errorf("%s cluster path = %v, want %v", tt.label, got, tt.path)
			continue
		}
		for i := range got {
			if got[i] != tt.path[i] {
				t.Errorf("%s cluster path = %v, want %v", tt.label, got, tt.path)
				break
			}
		}
	}

	if roots := d.RootClusters(); len(roots) != 1 || roots[0].Label() != "VPC" {
		t.Errorf("RootClusters() = %v, want [VPC]", roots)
	}
}

func TestArchitecture_Deterministic(t *testing.T) {
	a, err := Architecture(Env{})
	if err != nil {
		t.Fatal(err)
	}
	b, err := Architecture(Env{})
	if err != nil {
		t.Fatal(err)
	}

	an, bn := a.Nodes(), b.Nodes()
	for i := range an {
		if an[i].ID() != bn[i].ID() || an[i].Label() != bn[i].Label() {
			t.Errorf("node %d differs: %s/%s vs %s/%s", i, an[i].ID(), an[i].Label(), bn[i].ID(), bn[i].Label())
		}
	}
	ae, be := a.Edges(), b.Edges()
	for i := range ae {
		if ae[i].From.ID() != be[i].From.ID() || ae[i].To.ID() != be[i].To.ID() {
			t.Errorf("edge %d differs", i)
		}
	}
}

func writeIcon(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, GitIcon), []byte("<svg/>"), 0o644); err != nil {
		t.Fatal(err)
	}
	return dir
}

func TestWorkflow(t *testing.T) {
	dir := writeIcon(t)

	d, err := Workflow(Env{AssetsDir: dir})
	if err != nil {
		t.Fatalf("Workflow() error = %v", err)
	}
	if d.NodeCount() != 1 {
		t.Errorf("NodeCount() = %d, want 1", d.NodeCount())
	}
	if d.EdgeCount() != 0 {
		t.Errorf("EdgeCount() = %d, want 0", d.EdgeCount())
	}
	if len(d.Clusters()) != 0 {
		t.Errorf("Clusters() = %d, want 0", len(d.Clusters()))
	}

	n := d.Nodes()[0]
	if n.Label() != "Git" || !n.Kind().IsCustom() {
		t.Errorf("node = %q (%s), want custom Git", n.Label(), n.Kind().Name())
	}
	if n.Icon() != filepath.Join(dir, GitIcon) {
		t.Errorf("Icon() = %q", n.Icon())
	}
}

func TestWorkflow_MissingIcon(t *testing.T) {
	_, err := Workflow(Env{AssetsDir: t.TempDir()})
	if err == nil {
		t.Fatal("Workflow() with missing icon should fail")
	}
	if !aerrors.Is(err, aerrors.ErrCodeInvalidTopology) {
		t.Errorf("error code = %v, want INVALID_TOPOLOGY", aerrors.GetCode(err))
	}
	var inner *aerrors.Error
	if !asCode(err, aerrors.ErrCodeFileNotFound, &inner) {
		t.Errorf("error chain should contain FILE_NOT_FOUND: %v", err)
	}
}

// asCode walks the chain looking for an *Error with the given code.
func asCode(err error, code aerrors.Code, target **aerrors.Error) bool {
	for err != nil {
		if e, ok := err.(*aerrors.Error); ok {
			if e.Code == code {
				*target = e
				return true
			}
			err = e.Cause
			continue
		}
		return false
	}
	return false
}

func TestEnvAsset(t *testing.T) {
	if got := (Env{}).Asset("github.svg"); got != filepath.Join("assets", "github.svg") {
		t.Errorf("default Asset() = %q", got)
	}
	if got := (Env{AssetsDir: "/icons"}).Asset("x.svg"); got != filepath.Join("/icons", "x.svg") {
		t.Errorf("Asset() = %q", got)
	}
}

func TestLookup(t *testing.T) {
	for _, name := range Names() {
		d, err := Lookup(name)
		if err != nil {
			t.Errorf("Lookup(%q) error = %v", name, err)
		}
		if d.Name != name || d.Declare == nil || len(d.DefaultFormats) == 0 {
			t.Errorf("Lookup(%q) = %+v", name, d)
		}
	}

	_, err := Lookup("network")
	if !aerrors.Is(err, aerrors.ErrCodeDiagramNotFound) {
		t.Errorf("Lookup(network) error = %v, want DIAGRAM_NOT_FOUND", err)
	}
}

func TestAllDefaultFormats(t *testing.T) {
	want := map[string][]string{
		"architecture": {"png", "svg"},
		"workflow":     {"png"},
	}
	for _, d := range All() {
		w := want[d.Name]
		if len(d.DefaultFormats) != len(w) {
			t.Errorf("%s formats = %v, want %v", d.Name, d.DefaultFormats, w)
			continue
		}
		for i := range w {
			if d.DefaultFormats[i] != w[i] {
				t.Errorf("%s formats = %v, want %v", d.Name, d.DefaultFormats, w)
			}
		}
	}
}
