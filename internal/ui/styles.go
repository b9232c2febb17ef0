package ui

import "github.com/charmbracelet/lipgloss"

var (
	colorAccent = lipgloss.Color("#7C6F64") // warm brown (gruvbox-ish)
	colorGreen  = lipgloss.Color("#98971A")
	colorYellow = lipgloss.Color("#D79921")
	colorBlue   = lipgloss.Color("#458588")
	colorRed    = lipgloss.Color("#CC241D")
	colorSubtle = lipgloss.Color("#665C54")
	colorFG     = lipgloss.Color("#EBDBB2")
	colorDim    = lipgloss.Color("#504945")

	styleTitle = lipgloss.NewStyle().
			Foreground(colorGreen).
			Bold(true)

	styleSubtitle = lipgloss.NewStyle().
			Foreground(colorSubtle)

	styleDivider = lipgloss.NewStyle().
			Foreground(colorDim)

	styleSelectedItem = lipgloss.NewStyle().
				Foreground(colorYellow).
				Bold(true)

	styleNormalItem = lipgloss.NewStyle().
			Foreground(colorFG)

	styleDimItem = lipgloss.NewStyle().
			Foreground(colorSubtle)

	styleError = lipgloss.NewStyle().
			Foreground(colorRed)

	styleSuccess = lipgloss.NewStyle().
			Foreground(colorGreen)

	styleHint = lipgloss.NewStyle().
			Foreground(colorSubtle)

	styleAILabel = lipgloss.NewStyle().
			Foreground(colorBlue).
			Bold(true)

	styleCursor = lipgloss.NewStyle().
			Reverse(true)

	// Document panes
	stylePane = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorAccent).
			Padding(0, 1)

	stylePaneActive = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorYellow).
			Padding(0, 1)

	stylePaneBusy = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBlue).
			Padding(0, 1)

	styleInputBorder = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(colorAccent).
				Padding(0, 1)

	styleInputActive = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(colorYellow).
				Padding(0, 1)

	// Action button, one per rewrite mode
	styleButton = lipgloss.NewStyle().
			Foreground(colorGreen).
			Bold(true)

	styleButtonStop = lipgloss.NewStyle().
			Foreground(colorRed).
			Bold(true)

	styleButtonRevert = lipgloss.NewStyle().
				Foreground(colorYellow).
				Bold(true)
)
