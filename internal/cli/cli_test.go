package cli

import (
	"io"
	"path/filepath"
	"testing"

	"github.com/mlmac-seid/london-train-network/pkg/pipeline"
)

func TestParseFormats(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"Empty", "", nil},
		{"Single", "svg", []string{"svg"}},
		{"Multiple", "svg,png,json", []string{"svg", "png", "json"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseFormats(tt.input)
			if len(got) != len(tt.want) {
				t.Fatalf("parseFormats(%q) = %v, want %v", tt.input, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("parseFormats(%q)[%d] = %q, want %q", tt.input, i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestCacheDirXDG(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "/tmp/xdg-cache")

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir: %v", err)
	}
	want := filepath.Join("/tmp/xdg-cache", appName)
	if dir != want {
		t.Errorf("cacheDir = %q, want %q", dir, want)
	}
}

func TestApplyDelimiter(t *testing.T) {
	var opts pipeline.Options
	if err := applyDelimiter(&opts, ";"); err != nil {
		t.Fatalf("applyDelimiter: %v", err)
	}
	if opts.Delimiter != ';' {
		t.Errorf("Delimiter = %q, want ';'", opts.Delimiter)
	}

	if err := applyDelimiter(&opts, "ab"); err == nil {
		t.Error("Expected error for multi-character delimiter")
	}
	if err := applyDelimiter(&opts, ""); err != nil {
		t.Errorf("Empty delimiter should be a no-op: %v", err)
	}
}

func TestRootCommand(t *testing.T) {
	c := New(io.Discard, LogInfo)
	root := c.RootCommand()

	if root.Use != "railnet" {
		t.Errorf("Use = %q", root.Use)
	}

	want := map[string]bool{
		"analyze": false, "render": false, "inspect": false,
		"cache": false, "completion": false,
	}
	for _, cmd := range root.Commands() {
		if _, ok := want[cmd.Name()]; ok {
			want[cmd.Name()] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Errorf("Missing subcommand %q", name)
		}
	}
}

func TestBaseName(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"stations.csv", "stations"},
		{"data/london_stations.csv", "london_stations"},
		{"plain", "plain"},
	}
	for _, tt := range tests {
		if got := baseName(tt.input); got != tt.want {
			t.Errorf("baseName(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
