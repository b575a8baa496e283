package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/regionviz/regionviz/internal/server"
	"github.com/regionviz/regionviz/pkg/pipeline"
)

// serveCommand creates the serve command for browsing a directory of
// region tree documents over HTTP.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string
	var dir string
	var labelMode string
	var onlySimple bool
	var redisAddr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve rendered region graphs for a directory of documents",
		Long: `Serve rendered region graphs for a directory of documents.

Every *.json file in the directory is treated as a region tree document
and exposed under /functions/{name}.dot and /functions/{name}.svg. The
directory is rescanned on each request, so documents can be added while
the server runs.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			runner, err := c.newRunner(cmd.Context(), false, redisAddr)
			if err != nil {
				return fmt.Errorf("initialize runner: %w", err)
			}
			defer runner.Close()

			srv := server.New(dir, runner, c.Logger, pipeline.Options{
				LabelMode:         labelMode,
				OnlySimpleRegions: onlySimple,
			})
			return srv.ListenAndServe(cmd.Context(), addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "localhost:8321", "listen address")
	cmd.Flags().StringVar(&dir, "dir", ".", "directory of region tree documents")
	cmd.Flags().StringVar(&labelMode, "label-mode", "", "block label verbosity: complete (default), simple")
	cmd.Flags().BoolVar(&onlySimple, "only-simple-regions", false, "fill only simple regions, outline the rest")
	cmd.Flags().StringVar(&redisAddr, "redis-addr", "", "redis address for a shared artifact cache")

	return cmd
}
