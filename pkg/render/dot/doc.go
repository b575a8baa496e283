// Package dot renders a region tree to Graphviz DOT.
//
// The output mirrors the region nesting with one subgraph cluster per
// region: children are emitted inside their parent's cluster, each leaf
// block is declared inside the cluster of its innermost region, and every
// cluster gets a deterministic fill color from the paired12 scheme based
// on its nesting depth. Control-flow edges that return to a loop header
// from inside the loop are tagged constraint=false so the layout engine
// does not try to impose an acyclic rank order on them.
//
// Rendering is a single pure pass: the same tree and options always
// produce byte-identical output. The tree is validated before anything is
// written, so a malformed tree never yields partial output.
package dot
