package cli

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
)

var (
	colorCyan   = lipgloss.Color("36")  // primary accents
	colorGreen  = lipgloss.Color("35")  // success
	colorRed    = lipgloss.Color("167") // errors
	colorWhite  = lipgloss.Color("255") // values
	colorDim    = lipgloss.Color("240") // muted text
	colorYellow = lipgloss.Color("220") // highlights
)

var (
	// styleTitle for headings.
	styleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)

	// styleValue for data values.
	styleValue = lipgloss.NewStyle().Foreground(colorWhite)

	// styleDim for secondary text.
	styleDim = lipgloss.NewStyle().Foreground(colorDim)

	// styleSelected for the cursor row in interactive views.
	styleSelected = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)

	// styleSimpleTag marks simple regions in the tree browser.
	styleSimpleTag = lipgloss.NewStyle().Foreground(colorGreen)

	// styleEntryTag marks region entry blocks in the tree browser.
	styleEntryTag = lipgloss.NewStyle().Foreground(colorYellow)

	styleSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleError   = lipgloss.NewStyle().Foreground(colorRed)
)

// printSuccess prints a green checkmark message to stderr.
func printSuccess(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "%s %s\n", styleSuccess.Render("✓"), fmt.Sprintf(format, args...))
}

// printError prints a red cross message to stderr.
func printError(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "%s %s\n", styleError.Render("✗"), fmt.Sprintf(format, args...))
}
