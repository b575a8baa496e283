// Package region models the hierarchical region decomposition of a
// control-flow graph.
//
// A region is a maximal single-entry subgraph of the CFG. Regions nest:
// each region owns an ordered list of child regions and the set of basic
// blocks that belong to it directly (not to any descendant). The tree is
// built once from the serialized form produced by the upstream analysis
// and is immutable afterwards; every lookup the renderer needs - innermost
// region of a block, containment, depth - is answered from indices built
// at construction time.
package region

import (
	"errors"
	"fmt"

	"github.com/regionviz/regionviz/pkg/cfg"
)

var (
	// ErrMalformedTree is the base error for every structural defect a
	// region tree can have. Specific defects wrap it, so callers can match
	// all of them with errors.Is(err, ErrMalformedTree).
	ErrMalformedTree = errors.New("malformed region tree")

	// ErrUnknownEntry is returned by Build when a region names an entry
	// block that does not exist in the function.
	ErrUnknownEntry = fmt.Errorf("%w: unknown entry block", ErrMalformedTree)

	// ErrBlockClaimedTwice is returned by Build when two regions both list
	// the same block as directly contained. A block belongs to exactly one
	// innermost region.
	ErrBlockClaimedTwice = fmt.Errorf("%w: block claimed by two regions", ErrMalformedTree)

	// ErrBlockUnclaimed is returned by Build when a function block is not
	// contained in any region. The root region must encompass the whole
	// function.
	ErrBlockUnclaimed = fmt.Errorf("%w: block not contained in any region", ErrMalformedTree)

	// ErrEntryOutsideRegion is returned by Build when a region's entry
	// block is not transitively contained in that region.
	ErrEntryOutsideRegion = fmt.Errorf("%w: entry block outside region", ErrMalformedTree)

	// ErrParentCycle is returned by Validate when following parent links
	// from a region never reaches the root.
	ErrParentCycle = fmt.Errorf("%w: cycle in parent chain", ErrMalformedTree)
)

// Region is one node of the nesting hierarchy.
// The only owning references run parent -> children; the parent pointer is
// a back-reference used for lookups during edge classification.
type Region struct {
	tree     *Tree
	entry    *cfg.Block
	parent   *Region
	children []*Region
	blocks   []*cfg.Block // directly contained, insertion order
	depth    int          // root = 0
	simple   bool
	id       int // preorder index, unique and stable within the tree
}

// Entry returns the region's single entry block.
func (r *Region) Entry() *cfg.Block { return r.entry }

// Parent returns the enclosing region, or nil for the root.
func (r *Region) Parent() *Region { return r.parent }

// Children returns the immediate child regions in the order the analysis
// discovered them. The returned slice must not be modified.
func (r *Region) Children() []*Region { return r.children }

// Blocks returns the blocks directly contained in this region, excluding
// blocks owned by descendant regions. The returned slice must not be
// modified.
func (r *Region) Blocks() []*cfg.Block { return r.blocks }

// Depth returns the nesting depth of the region; the root has depth 0.
func (r *Region) Depth() int { return r.depth }

// IsSimple reports whether the region has the canonical single-entry,
// single-exit shape with no irregular edges crossing its boundary.
func (r *Region) IsSimple() bool { return r.simple }

// ID returns the region's preorder index within its tree. IDs are unique
// per tree and stable across renders of the same tree.
func (r *Region) ID() int { return r.id }

// Contains reports whether b belongs to this region or to any of its
// descendants.
func (r *Region) Contains(b *cfg.Block) bool {
	for s := r.tree.RegionFor(b); s != nil; s = s.parent {
		if s == r {
			return true
		}
	}
	return false
}

// Tree is the complete region decomposition of one function: the root
// region plus the indices needed for innermost-region lookups.
type Tree struct {
	fn        *cfg.Function
	root      *Region
	regions   []*Region // preorder
	innermost map[cfg.BlockID]*Region
}

// Build constructs the region tree described by spec over fn.
//
// It checks the structural contract the upstream analysis must uphold:
// every block is listed directly in exactly one region, the root covers
// the whole function, and every region's entry lies inside it. Violations
// return an error wrapping ErrMalformedTree.
func Build(fn *cfg.Function, spec *cfg.RegionSpec) (*Tree, error) {
	if spec == nil {
		return nil, fmt.Errorf("%w: no root region", ErrMalformedTree)
	}

	t := &Tree{
		fn:        fn,
		innermost: make(map[cfg.BlockID]*Region),
	}

	// Iterative preorder build so the nesting depth of the input cannot
	// overflow the native stack.
	type frame struct {
		spec   *cfg.RegionSpec
		parent *Region
	}
	stack := []frame{{spec: spec}}

	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		entry, ok := fn.Block(cfg.BlockID(f.spec.Entry))
		if !ok {
			return nil, fmt.Errorf("%w: %d", ErrUnknownEntry, f.spec.Entry)
		}

		r := &Region{
			tree:   t,
			entry:  entry,
			parent: f.parent,
			simple: f.spec.Simple,
			id:     len(t.regions),
		}
		if f.parent != nil {
			r.depth = f.parent.depth + 1
			f.parent.children = append(f.parent.children, r)
		} else {
			t.root = r
		}
		t.regions = append(t.regions, r)

		for _, id := range f.spec.Blocks {
			b, ok := fn.Block(cfg.BlockID(id))
			if !ok {
				return nil, fmt.Errorf("%w: region %d lists unknown block %d", ErrMalformedTree, r.id, id)
			}
			if prev, claimed := t.innermost[b.ID]; claimed {
				return nil, fmt.Errorf("%w: %s in regions %d and %d", ErrBlockClaimedTwice, b.DisplayName(), prev.id, r.id)
			}
			t.innermost[b.ID] = r
			r.blocks = append(r.blocks, b)
		}

		// Reverse push keeps preorder IDs in child declaration order.
		for i := len(f.spec.Children) - 1; i >= 0; i-- {
			stack = append(stack, frame{spec: f.spec.Children[i], parent: r})
		}
	}

	for _, b := range fn.Blocks() {
		if _, ok := t.innermost[b.ID]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrBlockUnclaimed, b.DisplayName())
		}
	}
	for _, r := range t.regions {
		if !r.Contains(r.entry) {
			return nil, fmt.Errorf("%w: region %d entry %s", ErrEntryOutsideRegion, r.id, r.entry.DisplayName())
		}
	}

	return t, nil
}

// Function returns the function this tree decomposes.
func (t *Tree) Function() *cfg.Function { return t.fn }

// Root returns the top-level region encompassing the whole function.
func (t *Tree) Root() *Region { return t.root }

// Regions returns all regions in preorder. The returned slice must not be
// modified.
func (t *Tree) Regions() []*Region { return t.regions }

// RegionFor returns the innermost region directly containing b, or nil if
// b is not part of this tree.
func (t *Tree) RegionFor(b *cfg.Block) *Region {
	if b == nil {
		return nil
	}
	return t.innermost[b.ID]
}

// Validate re-checks the structural invariants the renderer relies on.
//
// Build already guarantees them for trees it produced, but the renderer
// calls Validate before emitting any output so that a tree corrupted after
// construction fails fast instead of producing partial output. Checks:
// parent chains terminate at the root without cycles, and every block's
// innermost region actually contains it.
func (t *Tree) Validate() error {
	if t.root == nil {
		return fmt.Errorf("%w: no root region", ErrMalformedTree)
	}

	limit := len(t.regions)
	for _, r := range t.regions {
		steps := 0
		s := r
		for s.parent != nil {
			s = s.parent
			if steps++; steps > limit {
				return fmt.Errorf("%w: starting at region %d", ErrParentCycle, r.id)
			}
		}
		if s != t.root {
			return fmt.Errorf("%w: region %d not rooted", ErrMalformedTree, r.id)
		}
	}

	for _, b := range t.fn.Blocks() {
		r := t.innermost[b.ID]
		if r == nil {
			return fmt.Errorf("%w: %s", ErrBlockUnclaimed, b.DisplayName())
		}
		found := false
		for _, owned := range r.blocks {
			if owned == b {
				found = true
				break
			}
		}
		if !found {
			return fmt.Errorf("%w: %s not in its innermost region %d", ErrMalformedTree, b.DisplayName(), r.id)
		}
	}

	return nil
}
