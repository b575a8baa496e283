package cfg

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// Document is the JSON interchange format between the upstream analysis
// and this tool. It carries one function's control-flow graph together
// with the region tree the analysis discovered for it.
//
// Example:
//
//	{
//	  "function": "fib",
//	  "blocks": [
//	    {"id": 0, "name": "entry", "instrs": ["br label %loop"], "succs": [1]},
//	    {"id": 1, "name": "loop", "succs": [1, 2]},
//	    {"id": 2, "name": "exit"}
//	  ],
//	  "region": {
//	    "entry": 0,
//	    "blocks": [0, 2],
//	    "children": [
//	      {"entry": 1, "simple": true, "blocks": [1]}
//	    ]
//	  }
//	}
type Document struct {
	Function string      `json:"function"`
	Blocks   []BlockSpec `json:"blocks"`
	Region   *RegionSpec `json:"region"`
}

// BlockSpec is the serialized form of a basic block.
type BlockSpec struct {
	ID     int      `json:"id"`
	Name   string   `json:"name,omitempty"`
	Instrs []string `json:"instrs,omitempty"`
	Succs  []int    `json:"succs,omitempty"`
}

// RegionSpec is the serialized form of one region in the nesting
// hierarchy. Blocks lists only the blocks directly contained in this
// region: a block owned by a descendant region must not be repeated in
// an ancestor's list.
type RegionSpec struct {
	Entry    int           `json:"entry"`
	Simple   bool          `json:"simple,omitempty"`
	Blocks   []int         `json:"blocks,omitempty"`
	Children []*RegionSpec `json:"children,omitempty"`
}

// ReadDocument decodes a document from r.
func ReadDocument(r io.Reader) (*Document, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}
	return &doc, nil
}

// ReadDocumentFile reads and decodes a document from a file.
func ReadDocumentFile(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadDocument(f)
}

// WriteDocument encodes the document to w as indented JSON.
func WriteDocument(doc *Document, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

// BuildFunction constructs the Function described by the document's block
// list and validates its successor edges.
func (doc *Document) BuildFunction() (*Function, error) {
	fn := NewFunction(doc.Function)
	for _, bs := range doc.Blocks {
		succs := make([]BlockID, len(bs.Succs))
		for i, s := range bs.Succs {
			succs[i] = BlockID(s)
		}
		b := Block{
			ID:     BlockID(bs.ID),
			Name:   bs.Name,
			Instrs: bs.Instrs,
			Succs:  succs,
		}
		if err := fn.AddBlock(b); err != nil {
			return nil, err
		}
	}
	if err := fn.Validate(); err != nil {
		return nil, err
	}
	return fn, nil
}
