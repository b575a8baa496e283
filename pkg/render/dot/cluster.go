package dot

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/regionviz/regionviz/pkg/region"
)

// clusterBaseDepth is the indentation level at which the root cluster is
// emitted, one step below the writer's own statement indentation.
const clusterBaseDepth = 1

// frameKind sequences the three emission phases of one cluster: opening
// declarations, the region's own block references (after all child
// clusters), and the closing brace.
type frameKind int

const (
	frameOpen frameKind = iota
	frameBlocks
	frameClose
)

type clusterFrame struct {
	kind   frameKind
	region *region.Region
	depth  int
}

// writeClusters overlays the nested cluster structure of the region tree
// onto buf. One cluster is opened per region, with an empty label and the
// style and color from styleFor; child regions are emitted inside their
// parent, and each leaf block is referenced once, in the cluster of its
// innermost region.
//
// The traversal uses an explicit work stack so the nesting depth of the
// input tree cannot overflow the native stack.
func writeClusters(buf *bytes.Buffer, t *region.Tree, onlySimple bool, base int) {
	stack := []clusterFrame{{kind: frameOpen, region: t.Root(), depth: base}}

	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		switch f.kind {
		case frameOpen:
			openCluster(buf, f.region, f.depth, onlySimple)

			// Reverse order: the stack pops the close frame last and the
			// first child first.
			stack = append(stack,
				clusterFrame{kind: frameClose, region: f.region, depth: f.depth},
				clusterFrame{kind: frameBlocks, region: f.region, depth: f.depth},
			)
			children := f.region.Children()
			for i := len(children) - 1; i >= 0; i-- {
				stack = append(stack, clusterFrame{kind: frameOpen, region: children[i], depth: f.depth + 1})
			}

		case frameBlocks:
			// Reference only blocks whose innermost region is this one, so
			// no block is declared inside two nested clusters.
			for _, b := range f.region.Blocks() {
				if t.RegionFor(b) != f.region {
					continue
				}
				fmt.Fprintf(buf, "%s%s;\n", indent(f.depth+1), BlockNode{Block: b}.token())
			}

		case frameClose:
			fmt.Fprintf(buf, "%s}\n", indent(f.depth))
		}
	}
}

func openCluster(buf *bytes.Buffer, r *region.Region, depth int, onlySimple bool) {
	style, color := styleFor(r, onlySimple)
	fmt.Fprintf(buf, "%ssubgraph cluster_%d {\n", indent(depth), r.ID())
	fmt.Fprintf(buf, "%slabel = \"\";\n", indent(depth+1))
	fmt.Fprintf(buf, "%sstyle = %s;\n", indent(depth+1), style)
	fmt.Fprintf(buf, "%scolor = %d\n", indent(depth+1), color)
}

func indent(depth int) string {
	return strings.Repeat("  ", depth)
}
