package dot

import (
	"strings"
)

// LabelMode selects how much of a block's content appears in its label.
type LabelMode int

const (
	// LabelComplete renders the block's full instruction listing.
	LabelComplete LabelMode = iota
	// LabelSimple renders only the block's short identifier.
	LabelSimple
)

// subregionLabel is the placeholder emitted when a SubregionNode reaches
// the labeler. Rendering whole regions as opaque nodes has never been
// wired up; the placeholder is kept visible rather than guessed at.
const subregionLabel = "Not implemented"

// maxLabelLines caps the instruction lines of a complete label. Blocks
// longer than this keep their head and tail with an elision marker in
// between, so huge straight-line blocks do not dominate the drawing.
const maxLabelLines = 24

// nodeLabel produces the display label for a node. Pure function of the
// node and the active label mode.
func nodeLabel(n Node, mode LabelMode) string {
	b, ok := n.(BlockNode)
	if !ok {
		return subregionLabel
	}
	if mode == LabelSimple {
		return escapeString(b.Block.DisplayName())
	}

	lines := make([]string, 0, len(b.Block.Instrs)+1)
	lines = append(lines, b.Block.DisplayName()+":")
	lines = append(lines, b.Block.Instrs...)
	lines = truncateLines(lines)

	var sb strings.Builder
	for _, line := range lines {
		sb.WriteString(escapeString(line))
		sb.WriteString("\\l") // left-justified line break
	}
	return sb.String()
}

func truncateLines(lines []string) []string {
	if len(lines) <= maxLabelLines {
		return lines
	}
	const head, tail = maxLabelLines / 2, maxLabelLines/2 - 1
	kept := make([]string, 0, maxLabelLines+1)
	kept = append(kept, lines[:head]...)
	kept = append(kept, "...")
	kept = append(kept, lines[len(lines)-tail:]...)
	return kept
}

// escapeString escapes a label fragment for use inside a double-quoted,
// record-shaped DOT label. Newlines become left-justified breaks.
func escapeString(s string) string {
	var sb strings.Builder
	sb.Grow(len(s))
	for _, r := range s {
		switch r {
		case '\n':
			sb.WriteString("\\l")
		case '"', '\\', '{', '}', '<', '>', '|':
			sb.WriteByte('\\')
			sb.WriteRune(r)
		default:
			sb.WriteRune(r)
		}
	}
	return sb.String()
}
