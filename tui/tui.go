// Package tui is an interactive terminal previewer for generated plants. It
// rasterizes the shape records to a character canvas and lets the user
// reseed, re-roll rule variants, and scrub the growth interpolation.
package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nmoller/verdant/engine"
	"github.com/nmoller/verdant/types"
)

// keyMap defines the previewer key bindings.
type keyMap struct {
	Quit     key.Binding
	Reseed   key.Binding
	Variants key.Binding
	GrowUp   key.Binding
	GrowDown key.Binding
	IterUp   key.Binding
	IterDown key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		Reseed:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reseed")),
		Variants: key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "variants")),
		GrowUp:   key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+/-", "growth")),
		GrowDown: key.NewBinding(key.WithKeys("-", "_")),
		IterUp:   key.NewBinding(key.WithKeys("]"), key.WithHelp("[/]", "iterations")),
		IterDown: key.NewBinding(key.WithKeys("[")),
	}
}

// Model is the Bubble Tea model for the plant previewer.
type Model struct {
	engine *engine.Engine
	keys   keyMap

	shapes []types.RenderShape
	seed   int64

	width    int
	height   int
	ready    bool
	quitting bool
}

// New creates a previewer wired to the given engine.
func New(eng *engine.Engine, seed int64) Model {
	m := Model{
		engine: eng,
		keys:   defaultKeyMap(),
		seed:   seed,
	}
	m.rebuild()
	return m
}

// Run starts the Bubble Tea program.
func Run(eng *engine.Engine, seed int64) error {
	p := tea.NewProgram(New(eng, seed), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// rebuild regenerates the plant from the stored seed so parameter changes
// replay the same random draws.
func (m *Model) rebuild() {
	m.engine.Reseed(m.seed)
	m.shapes = m.engine.Build()
}

func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles key presses and window resizes.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Reseed):
			m.seed = time.Now().UnixNano()
			m.rebuild()

		case key.Matches(msg, m.keys.Variants):
			m.engine.RandomizeRuleSets(-1)
			m.rebuild()

		case key.Matches(msg, m.keys.GrowUp):
			m.engine.Interpolation = clamp(m.engine.Interpolation+0.05, 0, 1)
			m.rebuild()

		case key.Matches(msg, m.keys.GrowDown):
			m.engine.Interpolation = clamp(m.engine.Interpolation-0.05, 0, 1)
			m.rebuild()

		case key.Matches(msg, m.keys.IterUp):
			m.engine.Config.Rules.Iterations++
			m.rebuild()

		case key.Matches(msg, m.keys.IterDown):
			if m.engine.Config.Rules.Iterations > 0 {
				m.engine.Config.Rules.Iterations--
				m.rebuild()
			}
		}
	}

	return m, nil
}

func clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// View renders the canvas, status bar, and help line.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return "Loading..."
	}

	canvasHeight := m.height - 2 // 1 status bar + 1 help line
	if canvasHeight < 1 {
		canvasHeight = 1
	}

	c := newCanvas(m.width, canvasHeight)
	drawShapes(c, m.shapes)

	help := styleHelp.Render(" q quit | r reseed | v variants | +/- growth | [/] iterations")

	return c.render() + "\n" + m.renderStatusBar() + "\n" + help
}
