package cli

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/regionviz/regionviz/pkg/cfg"
	"github.com/regionviz/regionviz/pkg/pipeline"
)

// viewCommand creates the view command for rendering a document to SVG
// and opening it in the system viewer.
func (c *CLI) viewCommand() *cobra.Command {
	var labelMode string
	var onlySimple bool
	var noCache bool

	cmd := &cobra.Command{
		Use:   "view [document.json]",
		Short: "Render a region graph and open it in the system viewer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runView(cmd.Context(), args[0], labelMode, onlySimple, noCache)
		},
	}

	cmd.Flags().StringVar(&labelMode, "label-mode", "", "block label verbosity: complete (default), simple")
	cmd.Flags().BoolVar(&onlySimple, "only-simple-regions", false, "fill only simple regions, outline the rest")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable artifact caching")

	return cmd
}

func (c *CLI) runView(ctx context.Context, input, labelMode string, onlySimple, noCache bool) error {
	doc, err := cfg.ReadDocumentFile(input)
	if err != nil {
		return fmt.Errorf("load document %s: %w", input, err)
	}

	runner, err := c.newRunner(ctx, noCache, "")
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	artifacts, err := runner.Render(ctx, doc, pipeline.Options{
		LabelMode:         labelMode,
		OnlySimpleRegions: onlySimple,
		Formats:           []string{pipeline.FormatSVG},
	})
	if err != nil {
		return err
	}

	path := filepath.Join(os.TempDir(), fmt.Sprintf("regionviz-%s.svg", doc.Function))
	if err := os.WriteFile(path, artifacts[pipeline.FormatSVG], 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}

	c.Logger.Debug("opening viewer", "path", path)
	if err := openViewer(ctx, path); err != nil {
		// Opening a viewer fails in headless environments; the file is
		// still there for the user.
		printError("Could not open a viewer, rendered file is at %s", path)
		return nil
	}
	printSuccess("Opened %s", path)
	return nil
}

// openViewer opens the given path with the platform's default handler.
func openViewer(ctx context.Context, path string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.CommandContext(ctx, "open", path)
	case "windows":
		cmd = exec.CommandContext(ctx, "cmd", "/c", "start", path)
	default:
		cmd = exec.CommandContext(ctx, "xdg-open", path)
	}
	return cmd.Run()
}
