package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/regionviz/regionviz/pkg/cfg"
	"github.com/regionviz/regionviz/pkg/pipeline"
	"github.com/regionviz/regionviz/pkg/region"
)

// treeCommand creates the tree command for browsing a region tree
// interactively in the terminal.
func (c *CLI) treeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "tree [document.json]",
		Short: "Browse a region tree interactively",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := cfg.ReadDocumentFile(args[0])
			if err != nil {
				return fmt.Errorf("load document %s: %w", args[0], err)
			}

			runner := pipeline.NewRunner(nil, c.Logger)
			tree, err := runner.BuildTree(doc)
			if err != nil {
				return err
			}

			model := newTreeModel(tree)
			p := tea.NewProgram(model)
			_, err = p.Run()
			return err
		},
	}
}

// treeRow is one visible line in the tree browser: either a region
// header or a block belonging to the region above it.
type treeRow struct {
	region  *region.Region
	block   *cfg.Block
	isEntry bool
	depth   int
}

// treeModel is the bubbletea model for the region tree browser.
type treeModel struct {
	tree      *region.Tree
	rows      []treeRow
	collapsed map[int]bool // region ID -> children and blocks hidden
	cursor    int
	height    int
	offset    int
}

func newTreeModel(t *region.Tree) treeModel {
	m := treeModel{
		tree:      t,
		collapsed: make(map[int]bool),
		height:    20,
	}
	m.rebuild()
	return m
}

// rebuild recomputes the visible rows from the collapse state. Rows
// follow the preorder of the tree, blocks listed under the region that
// directly contains them.
func (m *treeModel) rebuild() {
	m.rows = m.rows[:0]

	var walk func(r *region.Region, depth int)
	walk = func(r *region.Region, depth int) {
		m.rows = append(m.rows, treeRow{region: r, depth: depth})
		if m.collapsed[r.ID()] {
			return
		}
		for _, b := range r.Blocks() {
			if m.tree.RegionFor(b) != r {
				continue
			}
			m.rows = append(m.rows, treeRow{
				block:   b,
				isEntry: b == r.Entry(),
				depth:   depth + 1,
			})
		}
		for _, child := range r.Children() {
			walk(child, depth+1)
		}
	}
	walk(m.tree.Root(), 0)

	if m.cursor >= len(m.rows) {
		m.cursor = len(m.rows) - 1
	}
}

func (m treeModel) Init() tea.Cmd {
	return nil
}

func (m treeModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
				if m.cursor < m.offset {
					m.offset = m.cursor
				}
			}
		case "down", "j":
			if m.cursor < len(m.rows)-1 {
				m.cursor++
				if m.cursor >= m.offset+m.height {
					m.offset = m.cursor - m.height + 1
				}
			}
		case "enter", " ":
			row := m.rows[m.cursor]
			if row.region != nil {
				m.collapsed[row.region.ID()] = !m.collapsed[row.region.ID()]
				m.rebuild()
			}
		}
	case tea.WindowSizeMsg:
		m.height = msg.Height - 6
		if m.height < 5 {
			m.height = 5
		}
	}
	return m, nil
}

func (m treeModel) View() string {
	var b strings.Builder

	b.WriteString(styleTitle.Render(fmt.Sprintf("Region Tree for '%s'", m.tree.Function().Name())))
	b.WriteString("\n")
	b.WriteString(styleDim.Render("↑/↓ navigate  ⏎ collapse  q quit"))
	b.WriteString("\n\n")

	end := m.offset + m.height
	if end > len(m.rows) {
		end = len(m.rows)
	}

	for i := m.offset; i < end; i++ {
		row := m.rows[i]

		cursor := "  "
		if i == m.cursor {
			cursor = "▸ "
		}

		line := cursor + strings.Repeat("  ", row.depth) + m.rowLabel(row)
		if i == m.cursor {
			b.WriteString(styleSelected.Render(line))
		} else if row.block != nil {
			b.WriteString(styleValue.Render(line))
		} else {
			b.WriteString(line)
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(styleDim.Render(fmt.Sprintf("  [%d/%d]", m.cursor+1, len(m.rows))))

	return b.String()
}

func (m treeModel) rowLabel(row treeRow) string {
	if row.block != nil {
		label := row.block.DisplayName()
		if row.isEntry {
			label += " " + styleEntryTag.Render("entry")
		}
		return label
	}

	r := row.region
	label := fmt.Sprintf("Region %d (%s, depth %d)", r.ID(), r.Entry().DisplayName(), r.Depth())
	if r.IsSimple() {
		label += " " + styleSimpleTag.Render("simple")
	}
	if m.collapsed[r.ID()] {
		label += " " + styleDim.Render("…")
	}
	return label
}
