package output

import (
	"github.com/charmbracelet/lipgloss"
)

// Color palette — named constants for all ANSI 256 colors used in the CLI.
// These are the single source of truth; never use inline lipgloss.Color literals.
var (
	// ColorCyan is used for identifiable nouns: module names, task names, paths.
	ColorCyan = lipgloss.Color("14")

	// ColorGreen is used for the "created" status.
	ColorGreen = lipgloss.Color("82")

	// ColorYellow is used for the "updated" and "renamed" statuses.
	ColorYellow = lipgloss.Color("220")

	// ColorRed is used for the "deleted" status.
	ColorRed = lipgloss.Color("196")

	// ColorBoldRed is used for the "failed" status (matches ERROR level).
	ColorBoldRed = lipgloss.Color("204")

	// ColorDimGray is used for borders and other structural chrome.
	ColorDimGray = lipgloss.Color("240")
)

// Semantic styles — map domain concepts to visual presentation.
var (
	// StyleNoun styles identifiable nouns (module names, task names, paths).
	StyleNoun = lipgloss.NewStyle().Foreground(ColorCyan)

	// StyleAction styles action verbs (creating, updating, running, deleting).
	StyleAction = lipgloss.NewStyle().Bold(true)

	// StyleDim styles structural chrome (separators, timestamps).
	StyleDim = lipgloss.NewStyle().Faint(true)

	// StyleSummary styles completion and summary lines.
	StyleSummary = lipgloss.NewStyle().Bold(true)
)

// Task operation status constants.
const (
	StatusCreated   = "created"
	StatusUpdated   = "updated"
	StatusUnchanged = "unchanged"
	StatusDeleted   = "deleted"
	StatusRenamed   = "renamed"
	StatusFailed    = "failed"
)

// StatusStyle returns the lipgloss style for a given status string.
// Unknown statuses return an unstyled default.
func StatusStyle(status string) lipgloss.Style {
	switch status {
	case StatusCreated:
		return lipgloss.NewStyle().Foreground(ColorGreen)
	case StatusUpdated, StatusRenamed:
		return lipgloss.NewStyle().Foreground(ColorYellow)
	case StatusUnchanged:
		return lipgloss.NewStyle().Faint(true)
	case StatusDeleted:
		return lipgloss.NewStyle().Foreground(ColorRed)
	case StatusFailed:
		return lipgloss.NewStyle().Bold(true).Foreground(ColorBoldRed)
	default:
		return lipgloss.NewStyle()
	}
}
