package ui

import (
	"math"

	"galaxy-server/internal/galaxy"
	"galaxy-server/internal/procgen"
)

const (
	minZoom = 0.1
	maxZoom = 50.0

	zoomStep   = 1.25
	rotateStep = math.Pi / 12
	panCells   = 4

	// eyeHeight is how far above the disc the camera sits at zoom 1.
	eyeHeight = 500.0

	// cellAspect is the height of a terminal cell over its width.
	cellAspect = 2.0
)

// Camera looks straight down the z axis at Center.
type Camera struct {
	Center   procgen.Vec3
	Zoom     float64
	Rotation float64
}

func DefaultCamera() Camera {
	return Camera{Zoom: 1}
}

// Eye is the camera position used for star sizing and haze fading.
func (c Camera) Eye() procgen.Vec3 {
	return procgen.Vec3{X: c.Center.X, Y: c.Center.Y, Z: eyeHeight / c.Zoom}
}

func (c Camera) zoomBy(factor float64) Camera {
	c.Zoom = procgen.Clamp(c.Zoom*factor, minZoom, maxZoom)
	return c
}

func (c Camera) rotate(delta float64) Camera {
	c.Rotation = math.Remainder(c.Rotation+delta, 2*math.Pi)
	return c
}

// pan moves the view by a screen-space offset in world units, so "right"
// stays right on screen whatever the rotation.
func (c Camera) pan(sx, sy float64) Camera {
	sin, cos := math.Sincos(c.Rotation)
	c.Center.X += sx*cos + sy*sin
	c.Center.Y += -sx*sin + sy*cos
	return c
}

// Projection maps galaxy coordinates onto a width x height character grid.
type Projection struct {
	Camera Camera
	Width  int
	Height int
	// Scale is world units per column at zoom 1.
	Scale float64
}

// FitScale picks a scale that shows all of bounds around the origin at zoom 1.
func FitScale(bounds galaxy.Bounds, width, height int) float64 {
	if width <= 0 || height <= 0 {
		return 1
	}
	half := math.Max(
		math.Max(math.Abs(bounds.Min.X), math.Abs(bounds.Max.X)),
		math.Max(math.Abs(bounds.Min.Y), math.Abs(bounds.Max.Y)),
	)
	extent := 2 * half
	cols := math.Min(float64(width), float64(height)*cellAspect)
	if extent <= 0 || cols <= 0 {
		return 1
	}
	return extent / cols
}

func (p Projection) unitsPerColumn() float64 {
	return p.Scale / p.Camera.Zoom
}

// Project returns the cell for point, with y growing upwards on screen.
// ok is false when the point falls outside the grid.
func (p Projection) Project(point procgen.Vec3) (col, row int, ok bool) {
	if !point.IsFinite() {
		return 0, 0, false
	}

	dx := point.X - p.Camera.Center.X
	dy := point.Y - p.Camera.Center.Y

	sin, cos := math.Sincos(p.Camera.Rotation)
	rx := dx*cos - dy*sin
	ry := dx*sin + dy*cos

	units := p.unitsPerColumn()
	col = p.Width/2 + int(math.Floor(rx/units))
	row = p.Height/2 - int(math.Floor(ry/(units*cellAspect)))

	if col < 0 || col >= p.Width || row < 0 || row >= p.Height {
		return 0, 0, false
	}
	return col, row, true
}
