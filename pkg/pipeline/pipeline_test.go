package pipeline

import (
	"context"
	"strings"
	"testing"

	"github.com/regionviz/regionviz/pkg/cfg"
	"github.com/regionviz/regionviz/pkg/render/dot"
)

func testDoc() *cfg.Document {
	return &cfg.Document{
		Function: "f",
		Blocks: []cfg.BlockSpec{
			{ID: 0, Name: "entry", Succs: []int{1}},
			{ID: 1, Name: "exit"},
		},
		Region: &cfg.RegionSpec{Entry: 0, Blocks: []int{0, 1}},
	}
}

func TestRunnerRenderDOT(t *testing.T) {
	runner := NewRunner(nil, nil)
	defer runner.Close()

	artifacts, err := runner.Render(context.Background(), testDoc(), Options{
		Formats: []string{FormatDOT},
	})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	out := string(artifacts[FormatDOT])
	if !strings.Contains(out, `digraph "Region Graph for 'f'"`) {
		t.Errorf("missing graph header\n%s", out)
	}
	if !strings.Contains(out, "subgraph cluster_0 {") {
		t.Errorf("missing root cluster\n%s", out)
	}
}

func TestRunnerRenderInvalidFormat(t *testing.T) {
	runner := NewRunner(nil, nil)
	defer runner.Close()

	_, err := runner.Render(context.Background(), testDoc(), Options{
		Formats: []string{"docx"},
	})
	if err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestRunnerRenderMalformedDoc(t *testing.T) {
	runner := NewRunner(nil, nil)
	defer runner.Close()

	doc := testDoc()
	doc.Region = nil

	if _, err := runner.Render(context.Background(), doc, Options{}); err == nil {
		t.Fatal("expected error for document without a region tree")
	}
}

func TestOptionsSetDefaults(t *testing.T) {
	var opts Options
	opts.SetDefaults()

	if opts.LabelMode != LabelModeComplete {
		t.Errorf("LabelMode = %q, want %q", opts.LabelMode, LabelModeComplete)
	}
	if len(opts.Formats) != 1 || opts.Formats[0] != FormatDOT {
		t.Errorf("Formats = %v, want [dot]", opts.Formats)
	}
	if opts.ArtifactTTL != DefaultArtifactTTL {
		t.Errorf("ArtifactTTL = %v, want %v", opts.ArtifactTTL, DefaultArtifactTTL)
	}
}

func TestValidateFormats(t *testing.T) {
	tests := []struct {
		name    string
		formats []string
		wantErr bool
	}{
		{"AllValid", []string{FormatDOT, FormatSVG, FormatPNG, FormatPDF}, false},
		{"Empty", nil, false},
		{"Unknown", []string{"svg", "gif"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateFormats(tt.formats)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateFormats(%v) = %v, wantErr %v", tt.formats, err, tt.wantErr)
			}
		})
	}
}

func TestParseLabelMode(t *testing.T) {
	tests := []struct {
		in      string
		want    dot.LabelMode
		wantErr bool
	}{
		{"complete", dot.LabelComplete, false},
		{"", dot.LabelComplete, false},
		{"simple", dot.LabelSimple, false},
		{"verbose", 0, true},
	}

	for _, tt := range tests {
		got, err := ParseLabelMode(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseLabelMode(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if err == nil && got != tt.want {
			t.Errorf("ParseLabelMode(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
