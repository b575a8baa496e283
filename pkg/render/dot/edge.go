package dot

import (
	"github.com/regionviz/regionviz/pkg/region"
)

// backEdgeAttr tells the layout engine to draw the edge without letting it
// constrain the rank order. Loop headers are revisited from inside the
// loop body; treating those edges as ordering constraints would force a
// cyclic rank assignment on a tool that expects an acyclic one.
const backEdgeAttr = "constraint=false"

// edgeAttributes classifies the control-flow edge src -> dst and returns
// the DOT attribute string for it, or "" for an ordinary structural edge.
//
// Classification only applies between two leaf blocks. For a destination
// that heads one or more nested loops, the walk first hoists to the
// outermost region still entered at dst: starting at dst's innermost
// region, it moves to the parent as long as the parent's entry is dst.
// If the region reached is entered at dst and contains src, the edge runs
// from inside the loop back to its header.
func edgeAttributes(src, dst Node, t *region.Tree) string {
	sb, ok := src.(BlockNode)
	if !ok {
		return ""
	}
	db, ok := dst.(BlockNode)
	if !ok {
		return ""
	}

	r := t.RegionFor(db.Block)
	for r.Parent() != nil && r.Parent().Entry() == db.Block {
		r = r.Parent()
	}

	if r.Entry() == db.Block && r.Contains(sb.Block) {
		return backEdgeAttr
	}
	return ""
}
