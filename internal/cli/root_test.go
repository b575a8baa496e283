package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestRootCommandSubcommands(t *testing.T) {
	c := New(os.Stderr, log.InfoLevel)
	root := c.RootCommand()

	want := []string{"render", "view", "serve", "tree", "completion"}
	for _, name := range want {
		found := false
		for _, sub := range root.Commands() {
			if sub.Name() == name {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("root command missing subcommand %q", name)
		}
	}
}

func TestSetLogLevel(t *testing.T) {
	c := New(os.Stderr, log.InfoLevel)
	c.SetLogLevel(log.DebugLevel)
	if got := c.Logger.GetLevel(); got != log.DebugLevel {
		t.Errorf("log level = %v, want %v", got, log.DebugLevel)
	}
}

func TestRenderCommandWritesDOT(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "fib.json")
	doc := `{
		"function": "fib",
		"blocks": [
			{"id": 0, "name": "entry", "succs": [1]},
			{"id": 1, "name": "loop", "succs": [1, 2]},
			{"id": 2, "name": "exit"}
		],
		"region": {
			"entry": 0,
			"blocks": [0, 2],
			"children": [{"entry": 1, "simple": true, "blocks": [1]}]
		}
	}`
	if err := os.WriteFile(input, []byte(doc), 0644); err != nil {
		t.Fatal(err)
	}
	output := filepath.Join(dir, "fib.dot")

	var logBuf bytes.Buffer
	c := New(&logBuf, log.WarnLevel)
	root := c.RootCommand()
	root.SetArgs([]string{"render", input, "--output", output, "--no-cache"})
	if err := root.Execute(); err != nil {
		t.Fatalf("render: %v", err)
	}

	data, err := os.ReadFile(output)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	text := string(data)
	if !strings.Contains(text, `digraph "Region Graph for 'fib'"`) {
		t.Errorf("output missing graph header:\n%s", text)
	}
	if !strings.Contains(text, "subgraph cluster_1 {") {
		t.Errorf("output missing child cluster:\n%s", text)
	}
	if !strings.Contains(text, "Node1 -> Node1 [constraint=false];") {
		t.Errorf("output missing back edge:\n%s", text)
	}
}

func TestRenderCommandRejectsBadFormat(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "f.json")
	if err := os.WriteFile(input, []byte(`{"function":"f","blocks":[{"id":0}],"region":{"entry":0,"blocks":[0]}}`), 0644); err != nil {
		t.Fatal(err)
	}

	c := New(os.Stderr, log.WarnLevel)
	root := c.RootCommand()
	root.SetArgs([]string{"render", input, "--format", "bmp"})
	if err := root.Execute(); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestRenderCommandMalformedDocument(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "bad.json")
	// Block 1 is not claimed by any region.
	doc := `{
		"function": "bad",
		"blocks": [{"id": 0, "succs": [1]}, {"id": 1}],
		"region": {"entry": 0, "blocks": [0]}
	}`
	if err := os.WriteFile(input, []byte(doc), 0644); err != nil {
		t.Fatal(err)
	}

	c := New(os.Stderr, log.WarnLevel)
	root := c.RootCommand()
	root.SetArgs([]string{"render", input, "--no-cache"})
	if err := root.Execute(); err == nil {
		t.Fatal("expected error for malformed region tree")
	}
}

func TestParseFormats(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty defaults to dot", "", []string{"dot"}},
		{"single", "svg", []string{"svg"}},
		{"multiple", "dot,svg,png", []string{"dot", "svg", "png"}},
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
