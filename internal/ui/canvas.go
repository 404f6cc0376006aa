package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"galaxy-server/internal/galaxy"
)

const (
	glyphHaze = '░'

	// hazeVisible is the opacity below which a haze cloud is not drawn.
	hazeVisible = 0.05
	// brightScale is the sprite scale from which a star gets the bold glyph.
	brightScale = 3.0
)

// cell is one character of the canvas. class is -1 when no star landed on it.
type cell struct {
	class int
	scale float64
	haze  bool
}

func emptyCanvas(width, height int) [][]cell {
	grid := make([][]cell, height)
	for y := range grid {
		grid[y] = make([]cell, width)
		for x := range grid[y] {
			grid[y][x].class = -1
		}
	}
	return grid
}

// plot lays haze under stars. Within a cell the hottest class wins, then the
// larger sprite.
func plot(g *galaxy.Galaxy, proj Projection, showHaze bool) [][]cell {
	grid := emptyCanvas(proj.Width, proj.Height)

	if showHaze {
		for _, h := range g.Haze {
			if h.Opacity < hazeVisible {
				continue
			}
			if col, row, ok := proj.Project(h.Position); ok {
				grid[row][col].haze = true
			}
		}
	}

	for _, s := range g.Stars {
		col, row, ok := proj.Project(s.Position)
		if !ok {
			continue
		}
		c := &grid[row][col]
		if s.Class > c.class || (s.Class == c.class && s.Scale > c.scale) {
			c.class = s.Class
			c.scale = s.Scale
		}
	}

	return grid
}

func glyphFor(scale float64) rune {
	switch {
	case scale >= brightScale:
		return '*'
	case scale >= 1.5:
		return '+'
	default:
		return '.'
	}
}

type palette struct {
	classes []lipgloss.Style
	bright  []lipgloss.Style
	haze    lipgloss.Style
}

func newPalette() palette {
	p := palette{
		haze: lipgloss.NewStyle().Foreground(lipgloss.Color(fmt.Sprintf("#%06x", galaxy.HazeColor))),
	}
	for _, class := range galaxy.StarClasses {
		style := lipgloss.NewStyle().Foreground(lipgloss.Color(class.ColorHex()))
		p.classes = append(p.classes, style)
		p.bright = append(p.bright, style.Bold(true))
	}
	return p
}

func (p palette) render(grid [][]cell) string {
	var b strings.Builder
	for y, row := range grid {
		if y > 0 {
			b.WriteByte('\n')
		}
		for _, c := range row {
			switch {
			case c.class >= 0 && c.class < len(p.classes):
				glyph := glyphFor(c.scale)
				style := p.classes[c.class]
				if glyph == '*' {
					style = p.bright[c.class]
				}
				b.WriteString(style.Render(string(glyph)))
			case c.haze:
				b.WriteString(p.haze.Render(string(glyphHaze)))
			default:
				b.WriteByte(' ')
			}
		}
	}
	return b.String()
}
