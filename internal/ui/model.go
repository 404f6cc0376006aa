// Package ui is the terminal star field viewer.
package ui

import (
	"fmt"
	"math"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"galaxy-server/internal/galaxy"
)

const (
	minWidth  = 20
	minHeight = 8

	// header and footer lines around the canvas
	chromeLines = 2
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("135"))
	dimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("60"))
)

// Model owns the galaxy while the viewer runs; it rescales stars in place
// whenever the camera moves.
type Model struct {
	galaxy   *galaxy.Galaxy
	bounds   galaxy.Bounds
	camera   Camera
	showHaze bool
	palette  palette

	width  int
	height int
}

func New(g *galaxy.Galaxy) Model {
	m := Model{
		galaxy:   g,
		bounds:   g.Bounds(),
		camera:   DefaultCamera(),
		showHaze: true,
		palette:  newPalette(),
	}
	g.UpdateScale(m.camera.Eye())
	return m
}

// SetSize is used before the first WindowSizeMsg arrives.
func (m Model) SetSize(width, height int) Model {
	m.width = width
	m.height = height
	return m
}

func (m Model) Camera() Camera {
	return m.camera
}

func (m Model) ShowHaze() bool {
	return m.showHaze
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		step := panCells * m.projection().unitsPerColumn()

		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			m = m.moveCamera(m.camera.pan(0, step*cellAspect))
		case "down", "j":
			m = m.moveCamera(m.camera.pan(0, -step*cellAspect))
		case "left", "h":
			m = m.moveCamera(m.camera.pan(-step, 0))
		case "right", "l":
			m = m.moveCamera(m.camera.pan(step, 0))
		case "+", "=":
			m = m.moveCamera(m.camera.zoomBy(zoomStep))
		case "-", "_":
			m = m.moveCamera(m.camera.zoomBy(1 / zoomStep))
		case "[":
			m = m.moveCamera(m.camera.rotate(-rotateStep))
		case "]":
			m = m.moveCamera(m.camera.rotate(rotateStep))
		case "z":
			m.showHaze = !m.showHaze
		case "r":
			m = m.moveCamera(DefaultCamera())
		}
	}

	return m, nil
}

func (m Model) moveCamera(c Camera) Model {
	m.camera = c
	m.galaxy.UpdateScale(c.Eye())
	return m
}

func (m Model) canvasSize() (int, int) {
	return m.width, m.height - chromeLines
}

func (m Model) projection() Projection {
	width, height := m.canvasSize()
	return Projection{
		Camera: m.camera,
		Width:  width,
		Height: height,
		Scale:  FitScale(m.bounds, width, height),
	}
}

func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Initializing..."
	}
	if m.width < minWidth || m.height < minHeight {
		return "Galaxy view requires a larger terminal"
	}

	grid := plot(m.galaxy, m.projection(), m.showHaze)

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.palette.render(grid))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("arrows/hjkl pan  +/- zoom  [/] rotate  z haze  r reset  q quit"))
	return b.String()
}

func (m Model) renderHeader() string {
	haze := "off"
	if m.showHaze {
		haze = "on"
	}
	degrees := m.camera.Rotation * 180 / math.Pi

	return fmt.Sprintf("%s | seed %d | stars %d | zoom %.2fx | rot %.0f° | haze %s | (%.0f, %.0f)",
		titleStyle.Render("Galaxy"),
		m.galaxy.Config().Seed,
		len(m.galaxy.Stars),
		m.camera.Zoom,
		degrees,
		haze,
		m.camera.Center.X,
		m.camera.Center.Y,
	)
}
