package procgen

import "math"

// Shape holds the spread and placement parameters of a generated galaxy.
// Distances are in scene units; spreads are standard deviations.
type Shape struct {
	Arms int `json:"arms"`

	CoreX float64 `json:"core_x"`
	CoreY float64 `json:"core_y"`

	OuterCoreX float64 `json:"outer_core_x"`
	OuterCoreY float64 `json:"outer_core_y"`

	// Thickness is the z spread shared by every cluster.
	Thickness float64 `json:"thickness"`

	ArmXDist float64 `json:"arm_x_dist"`
	ArmYDist float64 `json:"arm_y_dist"`
	ArmXMean float64 `json:"arm_x_mean"`
	ArmYMean float64 `json:"arm_y_mean"`

	// Winding is how many radians an arm turns per ArmXDist of radius.
	Winding float64 `json:"winding"`
}

// DefaultShape returns a two-armed galaxy roughly 600 units across.
func DefaultShape() Shape {
	return Shape{
		Arms:       2,
		CoreX:      33,
		CoreY:      33,
		OuterCoreX: 100,
		OuterCoreY: 100,
		Thickness:  5,
		ArmXDist:   100,
		ArmYDist:   50,
		ArmXMean:   200,
		ArmYMean:   100,
		Winding:    3.0,
	}
}

// ArmOffset is the rotation of arm i around the galactic centre.
func (s Shape) ArmOffset(arm int) float64 {
	if s.Arms <= 0 {
		return 0
	}
	return float64(arm) * 2 * math.Pi / float64(s.Arms)
}

// Spiral places the planar offset (x, y) on a spiral arm rotated by offset
// radians. The further a point lies from the centre the more it is wound
// around it. z passes through untouched, and the origin stays at the origin.
func (s Shape) Spiral(x, y, z, offset float64) Vec3 {
	if x == 0 && y == 0 {
		return Vec3{0, 0, z}
	}

	r := math.Hypot(x, y)
	theta := offset + math.Atan2(y, x)
	theta += (r / s.ArmXDist) * s.Winding

	return Vec3{
		X: r * math.Cos(theta),
		Y: r * math.Sin(theta),
		Z: z,
	}
}
