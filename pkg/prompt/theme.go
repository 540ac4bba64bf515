package prompt

import (
	catppuccin "github.com/catppuccin/go"
	"github.com/charmbracelet/lipgloss"
)

var flavour = catppuccin.Mocha

// Theme styles the text printed around survey prompts: section headers,
// descriptions and validation notices. Survey renders the prompts
// themselves.
type Theme struct {
	Title       lipgloss.Style
	Description lipgloss.Style
	Invalid     lipgloss.Style
	Hint        lipgloss.Style
}

// DefaultTheme styles output with the catppuccin Mocha palette.
func DefaultTheme() Theme {
	return Theme{
		Title:       lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(flavour.Lavender().Hex)),
		Description: lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color(flavour.Subtext0().Hex)),
		Invalid:     lipgloss.NewStyle().Foreground(lipgloss.Color(flavour.Red().Hex)),
		Hint:        lipgloss.NewStyle().Faint(true).Foreground(lipgloss.Color(flavour.Overlay1().Hex)),
	}
}
