// Package pipeline ties together the stages shared by the CLI and the
// server: load a CFG document, build its region tree, render the DOT
// description, and convert it to the requested output formats with
// artifact caching.
//
// Usage:
//
//	runner := pipeline.NewRunner(cache, logger)
//	defer runner.Close()
//
//	doc, err := cfg.ReadDocumentFile("fib.json")
//	if err != nil {
//	    return err
//	}
//	opts := pipeline.Options{Formats: []string{pipeline.FormatSVG}}
//	opts.SetDefaults()
//	artifacts, err := runner.Render(ctx, doc, opts)
package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/regionviz/regionviz/pkg/cache"
	"github.com/regionviz/regionviz/pkg/cfg"
	"github.com/regionviz/regionviz/pkg/region"
	"github.com/regionviz/regionviz/pkg/render"
	"github.com/regionviz/regionviz/pkg/render/dot"
)

// Output formats.
const (
	FormatDOT = "dot"
	FormatSVG = "svg"
	FormatPNG = "png"
	FormatPDF = "pdf"
)

// Label modes.
const (
	LabelModeComplete = "complete"
	LabelModeSimple   = "simple"
)

// DefaultArtifactTTL bounds how long converted artifacts stay cached.
// Rendering is deterministic, so the TTL only limits cache growth.
const DefaultArtifactTTL = 7 * 24 * time.Hour

// Options configures one pipeline run.
type Options struct {
	// LabelMode is "complete" (full block contents) or "simple" (block
	// identifiers only).
	LabelMode string

	// OnlySimpleRegions restricts filled cluster styling to simple regions.
	OnlySimpleRegions bool

	// Formats lists the artifacts to produce: dot, svg, png, pdf.
	Formats []string

	// ArtifactTTL overrides DefaultArtifactTTL when positive.
	ArtifactTTL time.Duration
}

// SetDefaults fills unset fields with the standard defaults.
func (o *Options) SetDefaults() {
	if o.LabelMode == "" {
		o.LabelMode = LabelModeComplete
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatDOT}
	}
	if o.ArtifactTTL <= 0 {
		o.ArtifactTTL = DefaultArtifactTTL
	}
}

// ValidateFormats checks that every requested format is supported.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		switch f {
		case FormatDOT, FormatSVG, FormatPNG, FormatPDF:
		default:
			return fmt.Errorf("unsupported format %q (want dot, svg, png, or pdf)", f)
		}
	}
	return nil
}

// ParseLabelMode maps the configuration string onto the renderer's mode.
func ParseLabelMode(s string) (dot.LabelMode, error) {
	switch s {
	case LabelModeComplete, "":
		return dot.LabelComplete, nil
	case LabelModeSimple:
		return dot.LabelSimple, nil
	default:
		return 0, fmt.Errorf("unsupported label mode %q (want complete or simple)", s)
	}
}

// Runner executes pipeline runs against a shared cache and logger.
type Runner struct {
	cache  cache.Cache
	logger *log.Logger
}

// NewRunner creates a Runner. A nil cache disables caching; a nil logger
// falls back to the default logger.
func NewRunner(c cache.Cache, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{cache: c, logger: logger}
}

// Close releases the runner's cache backend.
func (r *Runner) Close() error {
	return r.cache.Close()
}

// BuildTree constructs and checks the region tree described by doc.
func (r *Runner) BuildTree(doc *cfg.Document) (*region.Tree, error) {
	fn, err := doc.BuildFunction()
	if err != nil {
		return nil, fmt.Errorf("build function %q: %w", doc.Function, err)
	}
	tree, err := region.Build(fn, doc.Region)
	if err != nil {
		return nil, fmt.Errorf("build region tree for %q: %w", doc.Function, err)
	}
	return tree, nil
}

// Render runs the full pipeline for doc and returns one artifact per
// requested format, keyed by format name.
//
// The DOT stage always runs - it is cheap and deterministic; conversion
// stages (svg, png, pdf) consult the artifact cache first.
func (r *Runner) Render(ctx context.Context, doc *cfg.Document, opts Options) (map[string][]byte, error) {
	opts.SetDefaults()
	if err := ValidateFormats(opts.Formats); err != nil {
		return nil, err
	}
	mode, err := ParseLabelMode(opts.LabelMode)
	if err != nil {
		return nil, err
	}

	tree, err := r.BuildTree(doc)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	dotText, err := dot.RenderString(tree, dot.Options{
		LabelMode:         mode,
		OnlySimpleRegions: opts.OnlySimpleRegions,
	})
	if err != nil {
		return nil, fmt.Errorf("render %q: %w", doc.Function, err)
	}
	r.logger.Debug("rendered DOT", "function", doc.Function,
		"regions", len(tree.Regions()), "elapsed", time.Since(start).Round(time.Microsecond))

	docHash, err := hashDocument(doc)
	if err != nil {
		return nil, err
	}

	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		if format == FormatDOT {
			artifacts[FormatDOT] = []byte(dotText)
			continue
		}
		data, err := r.convert(ctx, dotText, docHash, format, opts)
		if err != nil {
			return nil, fmt.Errorf("convert %q to %s: %w", doc.Function, format, err)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

func (r *Runner) convert(ctx context.Context, dotText, docHash, format string, opts Options) ([]byte, error) {
	key := cache.ArtifactKey(docHash, format, opts.LabelMode, opts.OnlySimpleRegions)

	if data, ok, err := r.cache.Get(ctx, key); err == nil && ok {
		r.logger.Debug("artifact cache hit", "format", format)
		return data, nil
	} else if err != nil {
		r.logger.Warn("artifact cache read failed", "err", err)
	}

	var (
		data []byte
		err  error
	)
	switch format {
	case FormatSVG:
		data, err = render.SVG(ctx, dotText)
	case FormatPNG:
		data, err = render.PNG(ctx, dotText)
	case FormatPDF:
		data, err = render.PDF(ctx, dotText)
	}
	if err != nil {
		return nil, err
	}

	if err := r.cache.Set(ctx, key, data, opts.ArtifactTTL); err != nil {
		r.logger.Warn("artifact cache write failed", "err", err)
	}
	return data, nil
}

func hashDocument(doc *cfg.Document) (string, error) {
	data, err := json.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("hash document: %w", err)
	}
	return cache.Hash(data), nil
}
