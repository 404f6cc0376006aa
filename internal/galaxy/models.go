package galaxy

import (
	"fmt"

	"galaxy-server/internal/procgen"
)

const (
	// DistanceScale converts scene units to the sizing distance used by
	// StarSizeAt and HazeOpacityAt.
	DistanceScale = 250.0

	StarMin = 0.5
	StarMax = 7.0

	HazeMin     = 40.0
	HazeMax     = 60.0
	HazeOpacity = 0.2
	HazeColor   = 0x0082ff
)

// StarClass is one row of the stellar population table.
type StarClass struct {
	Name       string  `json:"name"`
	Percentage float64 `json:"percentage"`
	Color      uint32  `json:"color"`
	Size       float64 `json:"size"`
}

// ColorHex formats the class color as #rrggbb.
func (c StarClass) ColorHex() string {
	return fmt.Sprintf("#%06x", c.Color)
}

// StarClasses runs from the coolest, most common stars to the hottest.
var StarClasses = []StarClass{
	{Name: "M", Percentage: 76.45, Color: 0xffcc6f, Size: 0.7},
	{Name: "K", Percentage: 12.1, Color: 0xffd2a1, Size: 0.7},
	{Name: "G", Percentage: 7.6, Color: 0xfff4ea, Size: 1.15},
	{Name: "F", Percentage: 3, Color: 0xf8f7ff, Size: 1.48},
	{Name: "A", Percentage: 0.6, Color: 0xcad7ff, Size: 2.0},
	{Name: "B", Percentage: 0.13, Color: 0xaabfff, Size: 2.5},
}

var starClassTable = newStarClassTable()

func newStarClassTable() procgen.WeightedTable {
	percentages := make([]float64, len(StarClasses))
	for i, class := range StarClasses {
		percentages[i] = class.Percentage
	}
	return procgen.NewPercentTable(percentages...)
}

// PickStarClass rolls a class index. Draws past the end of the table land on
// the most common class.
func PickStarClass(rand procgen.Source) int {
	return starClassTable.Pick(rand)
}

// ClassOf returns the class for index, falling back to the first class for
// out-of-range values.
func ClassOf(index int) StarClass {
	if index < 0 || index >= len(StarClasses) {
		return StarClasses[0]
	}
	return StarClasses[index]
}

type Star struct {
	Position procgen.Vec3 `json:"position"`
	Class    int          `json:"class"`
	Scale    float64      `json:"scale"`
}

type Haze struct {
	Position procgen.Vec3 `json:"position"`
	Size     float64      `json:"size"`
	Opacity  float64      `json:"opacity"`
}

// StarSizeAt is the sprite scale of a star seen from camera.
func StarSizeAt(star Star, camera procgen.Vec3) float64 {
	dist := star.Position.DistanceTo(camera) / DistanceScale
	return procgen.Clamp(dist*ClassOf(star.Class).Size, StarMin, StarMax)
}

// HazeOpacityAt fades haze out as the camera approaches it.
func HazeOpacityAt(haze Haze, camera procgen.Vec3) float64 {
	dist := haze.Position.DistanceTo(camera) / DistanceScale
	ratio := dist / 2.5
	return procgen.Clamp(HazeOpacity*ratio*ratio, 0, HazeOpacity)
}

// HazeSize maps a uniform draw to a cloud size in [HazeMin, HazeMax].
func HazeSize(r float64) float64 {
	return procgen.Clamp(HazeMax*r, HazeMin, HazeMax)
}
