package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/regionviz/regionviz/pkg/cfg"
	"github.com/regionviz/regionviz/pkg/pipeline"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output     string   // output file (single format) or base path
	formats    []string // output formats: dot, svg, png, pdf
	labelMode  string   // block label verbosity: complete, simple
	onlySimple bool     // fill only simple regions
	noCache    bool     // disable artifact caching
	redisAddr  string   // shared redis cache address
}

// renderCommand creates the render command for writing region graph
// artifacts to files.
func (c *CLI) renderCommand() *cobra.Command {
	var opts renderOpts
	var formatsStr string

	cmd := &cobra.Command{
		Use:   "render [document.json]",
		Short: "Render a region tree document to DOT, SVG, PNG, or PDF",
		Long: `Render a region tree document to DOT, SVG, PNG, or PDF.

The document is the JSON serialization of one function's control-flow
graph and the region tree an analysis pass discovered for it. The DOT
output nests one Graphviz cluster per region and tags loop-carried edges
with constraint=false so the layout stays readable.

Converted artifacts are cached locally for faster subsequent runs; pass
--redis-addr to share the cache with a team running 'serve'.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parseFormats(formatsStr)
			if err := applyConfigDefaults(cmd, &opts); err != nil {
				return err
			}
			if err := pipeline.ValidateFormats(opts.formats); err != nil {
				return err
			}
			if _, err := pipeline.ParseLabelMode(opts.labelMode); err != nil {
				return err
			}
			return c.runRender(cmd.Context(), args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): dot (default), svg, png, pdf (comma-separated)")
	cmd.Flags().StringVar(&opts.labelMode, "label-mode", "", "block label verbosity: complete (default), simple")
	cmd.Flags().BoolVar(&opts.onlySimple, "only-simple-regions", false, "fill only simple regions, outline the rest")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable artifact caching")
	cmd.Flags().StringVar(&opts.redisAddr, "redis-addr", "", "redis address for a shared artifact cache")

	return cmd
}

// applyConfigDefaults fills flags the user did not set from the config
// file.
func applyConfigDefaults(cmd *cobra.Command, opts *renderOpts) error {
	conf, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if !cmd.Flags().Changed("label-mode") && conf.Render.LabelMode != "" {
		opts.labelMode = conf.Render.LabelMode
	}
	if !cmd.Flags().Changed("only-simple-regions") {
		opts.onlySimple = opts.onlySimple || conf.Render.OnlySimpleRegions
	}
	if !cmd.Flags().Changed("format") && conf.Render.Format != "" {
		opts.formats = parseFormats(conf.Render.Format)
	}
	return nil
}

func (c *CLI) runRender(ctx context.Context, input string, opts *renderOpts) error {
	doc, err := cfg.ReadDocumentFile(input)
	if err != nil {
		return fmt.Errorf("load document %s: %w", input, err)
	}

	runner, err := c.newRunner(ctx, opts.noCache, opts.redisAddr)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	prog := newProgress(c.Logger)
	artifacts, err := runner.Render(ctx, doc, pipeline.Options{
		LabelMode:         opts.labelMode,
		OnlySimpleRegions: opts.onlySimple,
		Formats:           opts.formats,
	})
	if err != nil {
		printError("Render failed")
		return err
	}
	prog.done(fmt.Sprintf("Rendered %s", doc.Function))

	return writeArtifacts(input, opts.output, opts.formats, artifacts)
}

// writeArtifacts writes one file per requested format. With a single
// format, --output names the file exactly; otherwise the format is
// appended as the extension to the base path.
func writeArtifacts(input, output string, formats []string, artifacts map[string][]byte) error {
	base := output
	if base == "" {
		base = strings.TrimSuffix(input, filepath.Ext(input))
	}

	for _, format := range formats {
		path := base + "." + format
		if output != "" && len(formats) == 1 {
			path = output
		}
		if err := os.WriteFile(path, artifacts[format], 0644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		printSuccess("Wrote %s", path)
	}
	return nil
}

// parseFormats parses a comma-separated format string.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatDOT}
	}
	return strings.Split(s, ",")
}
