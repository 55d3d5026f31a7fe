package ui

import (
	"os"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// Color definitions for consistent styling across the UI.
var (
	// Double lessons: bold cyan, they anchor the week
	colorDouble = color.New(color.FgCyan, color.Bold)

	// Single lessons: plain
	colorSingle = color.New(color.FgWhite)

	// Evening sessions: magenta
	colorEvening = color.New(color.FgMagenta)

	// Conflicts and warnings: red
	colorWarning = color.New(color.FgRed, color.Bold)

	// Insight/results: yellow to make it pop
	colorInsight = color.New(color.FgYellow)

	// Headers: bold
	colorHeader = color.New(color.Bold)

	// Stats: green for positive metrics
	colorStats = color.New(color.FgGreen)

	// Muted: for secondary information
	colorMuted = color.New(color.FgWhite, color.Faint)
)

// termWidth returns the terminal width, or a default if detection fails.
func termWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 80
	}
	return width
}

// DisableColor disables all color output.
func DisableColor() {
	color.NoColor = true
}

func formatHeader(s string) string  { return colorHeader.Sprint(s) }
func formatStats(s string) string   { return colorStats.Sprint(s) }
func formatMuted(s string) string   { return colorMuted.Sprint(s) }
func formatWarning(s string) string { return colorWarning.Sprint(s) }
func formatInsight(s string) string { return colorInsight.Sprint(s) }
