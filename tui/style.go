package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles used throughout the TUI.
var (
	styleStatusBar = lipgloss.NewStyle().
			Background(lipgloss.Color("236")).
			Foreground(lipgloss.Color("252")).
			Bold(true)

	styleHelp = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))
)

// ageRamp maps growth age buckets to terminal colors, young wood at the
// bottom of the ramp, mature growth at the top.
var ageRamp = []lipgloss.Style{
	lipgloss.NewStyle().Foreground(lipgloss.Color("94")),  // bark brown
	lipgloss.NewStyle().Foreground(lipgloss.Color("58")),  // olive
	lipgloss.NewStyle().Foreground(lipgloss.Color("64")),  // moss
	lipgloss.NewStyle().Foreground(lipgloss.Color("70")),  // leaf
	lipgloss.NewStyle().Foreground(lipgloss.Color("118")), // new growth
}

// ageStyle picks the ramp style for an age in [0, 1]. Out-of-range ages
// clamp to the ends.
func ageStyle(age float32) lipgloss.Style {
	if age < 0 {
		age = 0
	}
	if age > 1 {
		age = 1
	}
	i := int(age * float32(len(ageRamp)))
	if i >= len(ageRamp) {
		i = len(ageRamp) - 1
	}
	return ageRamp[i]
}
