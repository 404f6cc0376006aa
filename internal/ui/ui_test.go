package ui

import (
	"math"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"galaxy-server/internal/galaxy"
	"galaxy-server/internal/procgen"
)

func testGalaxy() *galaxy.Galaxy {
	cfg := galaxy.DefaultConfig()
	cfg.NumStars = 400
	return galaxy.New(cfg)
}

func key(s string) tea.KeyMsg {
	switch s {
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(t *testing.T, m Model, keys ...string) Model {
	t.Helper()
	for _, k := range keys {
		updated, _ := m.Update(key(k))
		var ok bool
		m, ok = updated.(Model)
		require.True(t, ok)
	}
	return m
}

func TestProject_CenterAndOffsets(t *testing.T) {
	p := Projection{Camera: DefaultCamera(), Width: 40, Height: 20, Scale: 10}

	col, row, ok := p.Project(procgen.Vec3{})
	require.True(t, ok)
	assert.Equal(t, 20, col)
	assert.Equal(t, 10, row)

	col, row, ok = p.Project(procgen.Vec3{X: 35, Y: 45})
	require.True(t, ok)
	assert.Equal(t, 23, col)
	assert.Equal(t, 8, row, "positive y is drawn above the centre")

	_, _, ok = p.Project(procgen.Vec3{X: 1000})
	assert.False(t, ok)

	_, _, ok = p.Project(procgen.Vec3{X: math.NaN()})
	assert.False(t, ok)
}

func TestProject_ZoomAndRotation(t *testing.T) {
	p := Projection{Camera: DefaultCamera(), Width: 40, Height: 20, Scale: 10}
	p.Camera.Zoom = 2

	col, _, ok := p.Project(procgen.Vec3{X: 30})
	require.True(t, ok)
	assert.Equal(t, 26, col)

	p.Camera.Zoom = 1
	p.Camera.Rotation = math.Pi
	col, row, ok := p.Project(procgen.Vec3{X: 30})
	require.True(t, ok)
	assert.Equal(t, 17, col)
	assert.Equal(t, 10, row)
}

func TestFitScale(t *testing.T) {
	bounds := galaxy.Bounds{
		Min: procgen.Vec3{X: -300, Y: -200},
		Max: procgen.Vec3{X: 250, Y: 100},
	}

	assert.InDelta(t, 600.0/40, FitScale(bounds, 80, 20), 1e-9)
	assert.InDelta(t, 600.0/60, FitScale(bounds, 60, 40), 1e-9)
	assert.Equal(t, 1.0, FitScale(galaxy.Bounds{}, 80, 20))
	assert.Equal(t, 1.0, FitScale(bounds, 0, 0))
}

func TestPlot_HottestClassWins(t *testing.T) {
	g := &galaxy.Galaxy{
		Stars: []galaxy.Star{
			{Position: procgen.Vec3{X: 1, Y: 1}, Class: 0, Scale: 6},
			{Position: procgen.Vec3{X: 2, Y: 2}, Class: 5, Scale: 1},
			{Position: procgen.Vec3{X: 2, Y: 2}, Class: 2, Scale: 4},
		},
		Haze: []galaxy.Haze{
			{Position: procgen.Vec3{X: 1, Y: 1}, Opacity: 0.2},
			{Position: procgen.Vec3{X: -50, Y: 0}, Opacity: 0.2},
			{Position: procgen.Vec3{X: 50, Y: 0}, Opacity: 0.01},
		},
	}
	p := Projection{Camera: DefaultCamera(), Width: 20, Height: 10, Scale: 10}

	grid := plot(g, p, true)

	col, row, ok := p.Project(procgen.Vec3{X: 1, Y: 1})
	require.True(t, ok)
	assert.Equal(t, 5, grid[row][col].class)
	assert.Equal(t, 1.0, grid[row][col].scale)

	col, row, ok = p.Project(procgen.Vec3{X: -50})
	require.True(t, ok)
	assert.Equal(t, -1, grid[row][col].class)
	assert.True(t, grid[row][col].haze)

	col, row, ok = p.Project(procgen.Vec3{X: 50})
	require.True(t, ok)
	assert.False(t, grid[row][col].haze, "faded haze is skipped")

	hidden := plot(g, p, false)
	col, row, _ = p.Project(procgen.Vec3{X: -50})
	assert.False(t, hidden[row][col].haze)
}

func TestGlyphFor(t *testing.T) {
	assert.Equal(t, '.', glyphFor(0.5))
	assert.Equal(t, '+', glyphFor(2))
	assert.Equal(t, '*', glyphFor(7))
}

func TestModel_Keys(t *testing.T) {
	m := New(testGalaxy()).SetSize(80, 24)

	m = press(t, m, "z")
	assert.False(t, m.ShowHaze())

	m = press(t, m, "+", "+")
	assert.InDelta(t, 1.5625, m.Camera().Zoom, 1e-9)

	m = press(t, m, "]")
	assert.InDelta(t, rotateStep, m.Camera().Rotation, 1e-9)

	m = press(t, m, "right", "up")
	assert.NotEqual(t, procgen.Vec3{}, m.Camera().Center)

	m = press(t, m, "r")
	assert.Equal(t, DefaultCamera(), m.Camera())
	assert.False(t, m.ShowHaze(), "reset leaves the haze toggle alone")
}

func TestModel_PanRightMovesCentreRight(t *testing.T) {
	m := New(testGalaxy()).SetSize(80, 24)

	m = press(t, m, "l")
	assert.Greater(t, m.Camera().Center.X, 0.0)
	assert.InDelta(t, 0, m.Camera().Center.Y, 1e-9)
}

func TestModel_ZoomIsClamped(t *testing.T) {
	m := New(testGalaxy()).SetSize(80, 24)
	for i := 0; i < 40; i++ {
		m = press(t, m, "-")
	}
	assert.Equal(t, minZoom, m.Camera().Zoom)
}

func TestModel_CameraRescalesStars(t *testing.T) {
	g := testGalaxy()
	m := New(g).SetSize(80, 24)
	before := g.Stars[0].Scale

	press(t, m, "+", "+", "+", "+")

	camera := DefaultCamera()
	for i := 0; i < 4; i++ {
		camera = camera.zoomBy(zoomStep)
	}
	assert.Equal(t, galaxy.StarSizeAt(g.Stars[0], camera.Eye()), g.Stars[0].Scale)
	assert.NotEqual(t, before, g.Stars[0].Scale)
}

func TestModel_Quit(t *testing.T) {
	m := New(testGalaxy())

	_, cmd := m.Update(key("q"))
	require.NotNil(t, cmd)
	_, ok := cmd().(tea.QuitMsg)
	assert.True(t, ok)
}

func TestModel_View(t *testing.T) {
	m := New(testGalaxy())
	assert.Equal(t, "Initializing...", m.View())

	updated, _ := m.Update(tea.WindowSizeMsg{Width: 10, Height: 5})
	assert.Contains(t, updated.View(), "larger terminal")

	updated, _ = m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	view := updated.View()
	assert.Contains(t, view, "seed 123456")
	assert.Contains(t, view, "haze on")
	assert.Len(t, strings.Split(view, "\n"), 24)
}
