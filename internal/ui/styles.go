package ui

import "github.com/charmbracelet/lipgloss"

// Theme colors used throughout the UI
const (
	ColorAccent    = "86"  // Cyan/green - titles, busy indicator
	ColorHighlight = "205" // Magenta - focus, borders
	ColorDanger    = "196" // Red - errors
	ColorMuted     = "241" // Gray - hints, rules
	ColorText      = "252" // Light gray - normal text
	ColorLabelBg   = "237" // Dark gray - field label background
)

// Styles contains shared style definitions for the card and its fields.
var Styles = struct {
	Card        lipgloss.Style // Rounded outer border of the edit card
	Title       lipgloss.Style // Card header title
	Spinner     lipgloss.Style // Busy indicator
	Rule        lipgloss.Style // Separator between header, body and footer
	Button      lipgloss.Style // Save button
	ButtonFocus lipgloss.Style // Save button with focus

	Label      lipgloss.Style // Field label box
	Input      lipgloss.Style // Field input box
	InputFocus lipgloss.Style // Field input box with focus

	Hint   lipgloss.Style
	Status lipgloss.Style
	Error  lipgloss.Style
}{
	Card: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorHighlight)).
		Padding(0, 1),
	Title: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(ColorAccent)),
	Spinner: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorAccent)),
	Rule: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorMuted)),
	Button: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorText)).
		Background(lipgloss.Color(ColorLabelBg)).
		Padding(0, 3),
	ButtonFocus: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("0")).
		Background(lipgloss.Color(ColorAccent)).
		Padding(0, 3),
	Label: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorMuted)).
		Background(lipgloss.Color(ColorLabelBg)).
		Foreground(lipgloss.Color(ColorText)).
		Padding(0, 1),
	Input: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorMuted)).
		Padding(0, 1),
	InputFocus: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorHighlight)).
		Padding(0, 1),
	Hint: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorMuted)),
	Status: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorAccent)),
	Error: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorDanger)),
}
