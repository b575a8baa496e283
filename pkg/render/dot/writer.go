package dot

import (
	"bytes"
	"fmt"

	"github.com/regionviz/regionviz/pkg/cfg"
)

// graphWriter emits a DOT digraph for the leaf-level view of a function:
// one node statement per basic block and one edge statement per successor
// relationship. It knows nothing about regions; per-node labels and
// per-edge attributes come from callbacks, and the features hook lets the
// caller append supplementary declarations (the cluster overlay) before
// the graph is closed.
type graphWriter struct {
	buf  bytes.Buffer
	fn   *cfg.Function
	name string

	nodeLabel func(n Node) string
	edgeAttrs func(src, dst Node) string
	features  func(buf *bytes.Buffer)
}

func (w *graphWriter) write() {
	w.writeHeader()
	w.writeNodes()
	w.writeEdges()
	if w.features != nil {
		w.features(&w.buf)
	}
	w.buf.WriteString("}\n")
}

func (w *graphWriter) writeHeader() {
	name := escapeString(w.name)
	fmt.Fprintf(&w.buf, "digraph \"%s\" {\n", name)
	fmt.Fprintf(&w.buf, "%slabel = \"%s\";\n\n", indent(1), name)
}

func (w *graphWriter) writeNodes() {
	for _, b := range w.fn.Blocks() {
		n := BlockNode{Block: b}
		fmt.Fprintf(&w.buf, "%s%s [shape=record,label=\"{%s}\"];\n", indent(1), n.token(), w.nodeLabel(n))
	}
	w.buf.WriteByte('\n')
}

func (w *graphWriter) writeEdges() {
	for _, b := range w.fn.Blocks() {
		src := BlockNode{Block: b}
		for _, s := range w.fn.Succs(b) {
			dst := BlockNode{Block: s}
			if attrs := w.edgeAttrs(src, dst); attrs != "" {
				fmt.Fprintf(&w.buf, "%s%s -> %s [%s];\n", indent(1), src.token(), dst.token(), attrs)
			} else {
				fmt.Fprintf(&w.buf, "%s%s -> %s;\n", indent(1), src.token(), dst.token())
			}
		}
	}
	w.buf.WriteByte('\n')
}
