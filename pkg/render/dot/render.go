package dot

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/regionviz/regionviz/pkg/region"
)

// Options configures one render. The zero value renders complete block
// labels and fills every region's cluster.
type Options struct {
	// LabelMode controls block label verbosity.
	LabelMode LabelMode

	// OnlySimpleRegions restricts filled cluster styling to simple
	// regions; non-simple regions are drawn outlined instead.
	OnlySimpleRegions bool
}

// Render writes the DOT description of the region tree to w.
//
// The tree is validated first and nothing is written on a malformed tree.
// The whole document is assembled in memory and written with a single
// call, so a sink failure is surfaced to the caller without the renderer
// having committed partial cluster structure.
func Render(t *region.Tree, opts Options, w io.Writer) error {
	if err := t.Validate(); err != nil {
		return err
	}

	name := fmt.Sprintf("Region Graph for '%s'", t.Function().Name())
	gw := &graphWriter{
		fn:   t.Function(),
		name: name,
		nodeLabel: func(n Node) string {
			return nodeLabel(n, opts.LabelMode)
		},
		edgeAttrs: func(src, dst Node) string {
			return edgeAttributes(src, dst, t)
		},
		features: func(buf *bytes.Buffer) {
			fmt.Fprintf(buf, "%s%s\n", indent(1), colorScheme)
			writeClusters(buf, t, opts.OnlySimpleRegions, clusterBaseDepth)
		},
	}

	gw.write()
	if _, err := w.Write(gw.buf.Bytes()); err != nil {
		return fmt.Errorf("write graph: %w", err)
	}
	return nil
}

// RenderString renders the region tree to a DOT string.
func RenderString(t *region.Tree, opts Options) (string, error) {
	var sb strings.Builder
	if err := Render(t, opts, &sb); err != nil {
		return "", err
	}
	return sb.String(), nil
}
