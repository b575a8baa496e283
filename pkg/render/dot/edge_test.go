package dot

import (
	"testing"

	"github.com/regionviz/regionviz/pkg/cfg"
	"github.com/regionviz/regionviz/pkg/region"
)

// nestedHeaderTree models two nested loops sharing a header:
//
//	entry(0) -> H(1); H -> B(2) -> H; H -> exit(3)
//
// The outer child region and its inner child are both entered at H, so
// the classifier has to hoist past the inner region when deciding whether
// B -> H is loop-carried for the outer one.
func nestedHeaderTree(t *testing.T) (*cfg.Function, *region.Tree) {
	t.Helper()
	doc := &cfg.Document{
		Function: "nested",
		Blocks: []cfg.BlockSpec{
			{ID: 0, Name: "entry", Succs: []int{1}},
			{ID: 1, Name: "H", Succs: []int{2, 3}},
			{ID: 2, Name: "B", Succs: []int{1}},
			{ID: 3, Name: "exit"},
		},
		Region: &cfg.RegionSpec{
			Entry:  0,
			Blocks: []int{0, 3},
			Children: []*cfg.RegionSpec{
				{
					Entry:  1,
					Blocks: []int{2},
					Children: []*cfg.RegionSpec{
						{Entry: 1, Simple: true, Blocks: []int{1}},
					},
				},
			},
		},
	}
	fn, err := doc.BuildFunction()
	if err != nil {
		t.Fatalf("BuildFunction: %v", err)
	}
	tree, err := region.Build(fn, doc.Region)
	if err != nil {
		t.Fatalf("region.Build: %v", err)
	}
	return fn, tree
}

func TestEdgeAttributes(t *testing.T) {
	fn, tree := nestedHeaderTree(t)
	node := func(id cfg.BlockID) Node {
		b, ok := fn.Block(id)
		if !ok {
			t.Fatalf("block %d missing", id)
		}
		return BlockNode{Block: b}
	}

	tests := []struct {
		name string
		src  cfg.BlockID
		dst  cfg.BlockID
		want string
	}{
		// B sits inside the loop headed by H: returning to H must not
		// constrain the layout.
		{"BackEdge", 2, 1, backEdgeAttr},
		// Entering the loop from outside is a structural edge even though
		// the destination is a loop header.
		{"EntryToHeader", 0, 1, ""},
		// Ordinary forward edges.
		{"HeaderToBody", 1, 2, ""},
		{"HeaderToExit", 1, 3, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := edgeAttributes(node(tt.src), node(tt.dst), tree)
			if got != tt.want {
				t.Errorf("edgeAttributes(%d -> %d) = %q, want %q", tt.src, tt.dst, got, tt.want)
			}
		})
	}
}

func TestEdgeAttributesSubregion(t *testing.T) {
	fn, tree := nestedHeaderTree(t)
	b, _ := fn.Block(1)
	blockNode := BlockNode{Block: b}
	regionNode := SubregionNode{Region: tree.Root()}

	if got := edgeAttributes(regionNode, blockNode, tree); got != "" {
		t.Errorf("subregion source classified as %q, want empty", got)
	}
	if got := edgeAttributes(blockNode, regionNode, tree); got != "" {
		t.Errorf("subregion destination classified as %q, want empty", got)
	}
}

func TestEdgeAttributesSiblings(t *testing.T) {
	// Two sibling blocks in the root region: no classification applies.
	doc := &cfg.Document{
		Function: "flat",
		Blocks: []cfg.BlockSpec{
			{ID: 0, Succs: []int{1}},
			{ID: 1, Succs: []int{0}},
		},
		Region: &cfg.RegionSpec{Entry: 0, Blocks: []int{0, 1}},
	}
	fn, err := doc.BuildFunction()
	if err != nil {
		t.Fatalf("BuildFunction: %v", err)
	}
	tree, err := region.Build(fn, doc.Region)
	if err != nil {
		t.Fatalf("region.Build: %v", err)
	}

	b0, _ := fn.Block(0)
	b1, _ := fn.Block(1)

	// 1 -> 0 returns to the root's entry from inside the root region, so
	// it is loop-carried for the whole-function region.
	if got := edgeAttributes(BlockNode{Block: b1}, BlockNode{Block: b0}, tree); got != backEdgeAttr {
		t.Errorf("edge to root entry = %q, want %q", got, backEdgeAttr)
	}
	if got := edgeAttributes(BlockNode{Block: b0}, BlockNode{Block: b1}, tree); got != "" {
		t.Errorf("forward sibling edge = %q, want empty", got)
	}
}
