package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/nmoller/verdant/types"
)

// renderStatusBar produces a full-width inverted status line showing the
// seed, growth interpolation, iteration count, and record count.
func (m Model) renderStatusBar() string {
	lines, circles := 0, 0
	for _, s := range m.shapes {
		switch s.Kind {
		case types.RenderLine:
			lines++
		case types.RenderCircle:
			circles++
		}
	}

	left := fmt.Sprintf(" seed %d | grow %.2f | iter %d", m.seed, m.engine.Interpolation, m.engine.Config.Rules.Iterations)
	right := fmt.Sprintf("%d lines, %d circles ", lines, circles)

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}

	bar := left + strings.Repeat(" ", gap) + right
	return styleStatusBar.Width(m.width).Render(bar)
}
