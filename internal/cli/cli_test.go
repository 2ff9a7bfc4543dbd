package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	aerrors "github.com/thetiptop/archdiagram/pkg/errors"
)

func TestCacheDir(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "")

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}

	// Verify the expected structure: $HOME/.cache/archdiagram
	home, _ := os.UserHomeDir()
	expected := filepath.Join(home, ".cache", "archdiagram")
	if dir != expected {
		t.Errorf("cacheDir() = %q, want %q", dir, expected)
	}
}

func TestCacheDirXDG(t *testing.T) {
	xdg := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", xdg)

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}
	if dir != filepath.Join(xdg, "archdiagram") {
		t.Errorf("cacheDir() = %q, want under %q", dir, xdg)
	}
}

func TestRootCommandSubcommands(t *testing.T) {
	root := newTestCLI(t).RootCommand()

	want := []string{"render", "list", "inspect", "cache", "completion"}
	for _, name := range want {
		cmd, _, err := root.Find([]string{name})
		if err != nil || cmd.Name() != name {
			t.Errorf("subcommand %q not registered", name)
		}
	}
	if root.PersistentFlags().Lookup("config") == nil {
		t.Error("--config flag not registered")
	}
}

func TestInspectCommand(t *testing.T) {
	tests := []struct {
		format string
		want   string
	}{
		{"json", `"name": "TheTipTop - Architecture"`},
		{"dot", "digraph"},
		{"mmd", "flowchart LR"},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			root := newTestCLI(t).RootCommand()
			var out bytes.Buffer
			root.SetOut(&out)
			root.SetArgs([]string{"inspect", "architecture", "-f", tt.format})
			if err := root.Execute(); err != nil {
				t.Fatalf("inspect error = %v", err)
			}
			if !strings.Contains(out.String(), tt.want) {
				t.Errorf("inspect -f %s output missing %q", tt.format, tt.want)
			}
		})
	}
}

func TestInspectRejectsImageFormats(t *testing.T) {
	root := newTestCLI(t).RootCommand()
	root.SetOut(&bytes.Buffer{})
	root.SetArgs([]string{"inspect", "architecture", "-f", "png"})

	if err := root.Execute(); !aerrors.Is(err, aerrors.ErrCodeInvalidFormat) {
		t.Errorf("inspect -f png error = %v, want INVALID_FORMAT", err)
	}
}

func TestCachePathCommand(t *testing.T) {
	c := newTestCLI(t)
	root := c.RootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"cache", "path"})
	if err := root.Execute(); err != nil {
		t.Fatalf("cache path error = %v", err)
	}

	dir, _ := cacheDir()
	if strings.TrimSpace(out.String()) != dir {
		t.Errorf("cache path = %q, want %q", out.String(), dir)
	}
}

func TestCacheClearCommand(t *testing.T) {
	c := newTestCLI(t)
	dir, _ := cacheDir()
	shard := filepath.Join(dir, "ab")
	if err := os.MkdirAll(shard, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(shard, "entry.json"), []byte(`{}`), 0o644); err != nil {
		t.Fatal(err)
	}

	root := c.RootCommand()
	root.SetArgs([]string{"cache", "clear"})
	if err := root.Execute(); err != nil {
		t.Fatalf("cache clear error = %v", err)
	}
	if _, err := os.Stat(filepath.Join(shard, "entry.json")); !os.IsNotExist(err) {
		t.Error("cache entry should be removed")
	}
}

func TestCompletionCommand(t *testing.T) {
	root := newTestCLI(t).RootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"completion", "bash"})
	if err := root.Execute(); err != nil {
		t.Fatalf("completion error = %v", err)
	}
	if !strings.Contains(out.String(), "archdiagram") {
		t.Error("bash completion should mention the command name")
	}
}

func TestStatsLine(t *testing.T) {
	line := statsLine(10, 13, true)
	for _, want := range []string{"10 nodes", "13 edges", iconCached} {
		if !strings.Contains(line, want) {
			t.Errorf("statsLine() = %q, missing %q", line, want)
		}
	}
	if !strings.Contains(statsLine(1, 0, false), iconFresh) {
		t.Error("uncached stats should say fresh")
	}
}

func TestListCommand(t *testing.T) {
	root := newTestCLI(t).RootCommand()
	root.SetArgs([]string{"list"})
	if err := root.Execute(); err != nil {
		t.Fatalf("list error = %v", err)
	}
}

func TestListCommandRejectsUnknownConfigDiagram(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "archdiagram.toml")
	if err := os.WriteFile(cfgPath, []byte("[diagrams.network]\nformats = [\"png\"]\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	root := newTestCLI(t).RootCommand()
	root.SetArgs([]string{"list", "--config", cfgPath})
	if err := root.Execute(); !aerrors.Is(err, aerrors.ErrCodeInvalidConfig) {
		t.Errorf("list error = %v, want INVALID_CONFIG", err)
	}
}
