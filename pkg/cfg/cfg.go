// Package cfg defines the control-flow-graph input model consumed by the
// region renderer.
//
// A Function is a flat collection of basic blocks. Each block carries its
// rendered instruction text and the IDs of its control-flow successors.
// Functions are produced upstream (by a compiler or disassembler pass that
// serializes its CFG) and are read-only once built: the renderer never
// mutates them.
//
// The package also provides the JSON document codec (see Document) used to
// move a function and its region decomposition between the analysis and
// this tool.
package cfg

import (
	"errors"
	"fmt"
)

var (
	// ErrDuplicateBlockID is returned by [Function.AddBlock] when a block
	// with the same ID already exists. Block IDs must be unique within a
	// function.
	ErrDuplicateBlockID = errors.New("duplicate block ID")

	// ErrUnknownSuccessor is returned by [Function.Validate] when a block
	// names a successor that does not exist in the function.
	ErrUnknownSuccessor = errors.New("unknown successor block")
)

// BlockID identifies a basic block within a single function.
// IDs are assigned upstream and are stable for the lifetime of a render.
type BlockID int

// Block is a basic block: a straight-line sequence of instructions with a
// single entry and a single exit. Succs lists the control-flow successors
// in the order the upstream analysis emitted them; that order is preserved
// so repeated renders produce identical output.
type Block struct {
	ID     BlockID  // unique within the function
	Name   string   // optional symbolic name (e.g. "entry", "loop.body")
	Instrs []string // rendered instruction text, one entry per instruction
	Succs  []BlockID
}

// DisplayName returns the short human-readable identifier for the block:
// its symbolic name when set, otherwise "bb<ID>".
func (b *Block) DisplayName() string {
	if b.Name != "" {
		return b.Name
	}
	return fmt.Sprintf("bb%d", b.ID)
}

// Function is an immutable leaf-level control-flow graph.
// Blocks are kept in insertion order; lookups by ID are O(1).
//
// The zero value is not usable - use NewFunction.
type Function struct {
	name   string
	blocks []*Block
	byID   map[BlockID]*Block
}

// NewFunction creates an empty function with the given name.
func NewFunction(name string) *Function {
	return &Function{
		name: name,
		byID: make(map[BlockID]*Block),
	}
}

// Name returns the function name.
func (f *Function) Name() string { return f.name }

// AddBlock adds a basic block to the function.
// Returns ErrDuplicateBlockID if a block with the same ID already exists.
// Successor IDs are not checked here - use Validate after all blocks are
// added.
func (f *Function) AddBlock(b Block) error {
	if _, exists := f.byID[b.ID]; exists {
		return fmt.Errorf("%w: %d", ErrDuplicateBlockID, b.ID)
	}
	blk := &b
	f.blocks = append(f.blocks, blk)
	f.byID[blk.ID] = blk
	return nil
}

// Block returns the block with the given ID and true, or nil and false.
func (f *Function) Block(id BlockID) (*Block, bool) {
	b, ok := f.byID[id]
	return b, ok
}

// Blocks returns all blocks in insertion order.
// The returned slice must not be modified.
func (f *Function) Blocks() []*Block { return f.blocks }

// BlockCount returns the number of blocks in the function.
func (f *Function) BlockCount() int { return len(f.blocks) }

// Succs returns the successor blocks of b in edge order.
// Successors that do not resolve to a block are skipped; Validate reports
// them as errors.
func (f *Function) Succs(b *Block) []*Block {
	succs := make([]*Block, 0, len(b.Succs))
	for _, id := range b.Succs {
		if s, ok := f.byID[id]; ok {
			succs = append(succs, s)
		}
	}
	return succs
}

// Validate checks that every successor reference resolves to a block in
// the function. Returns ErrUnknownSuccessor on the first dangling edge.
func (f *Function) Validate() error {
	for _, b := range f.blocks {
		for _, id := range b.Succs {
			if _, ok := f.byID[id]; !ok {
				return fmt.Errorf("%w: %s -> %d", ErrUnknownSuccessor, b.DisplayName(), id)
			}
		}
	}
	return nil
}
