package dot

import (
	"fmt"

	"github.com/regionviz/regionviz/pkg/cfg"
	"github.com/regionviz/regionviz/pkg/region"
)

// Node is the leaf-level view of the graph handed to the writer. Exactly
// two variants exist and every consumer switches on them: BlockNode wraps
// a basic block, SubregionNode wraps a whole region treated as an opaque
// node.
type Node interface {
	// token returns the stable DOT identifier for the node, unique within
	// one function.
	token() string
}

// BlockNode wraps a basic block.
type BlockNode struct {
	Block *cfg.Block
}

func (n BlockNode) token() string {
	return fmt.Sprintf("Node%d", n.Block.ID)
}

// SubregionNode wraps a region rendered as a single opaque node. The
// default driver never produces these, but they are part of the node
// contract and the labeler and classifier handle them.
type SubregionNode struct {
	Region *region.Region
}

func (n SubregionNode) token() string {
	return fmt.Sprintf("Region%d", n.Region.ID())
}
