package procgen

// BlockCounts describes how many points each cluster of a generated field holds.
type BlockCounts struct {
	Core      int `json:"core"`
	OuterCore int `json:"outer_core"`
	PerArm    int `json:"per_arm"`
	Arms      int `json:"arms"`
}

// Total is the length of the slice Generate returns.
func (c BlockCounts) Total() int {
	return c.Core + c.OuterCore + c.PerArm*c.Arms
}

// Counts splits total into blocks. A quarter of total (rounded down) goes to
// the core, a quarter to the outer core and a quarter to every arm, so a
// galaxy with more than two arms holds more than total points.
func Counts(total, arms int) BlockCounts {
	per := total / 4
	if per < 0 {
		per = 0
	}
	if arms < 0 {
		arms = 0
	}
	return BlockCounts{
		Core:      per,
		OuterCore: per,
		PerArm:    per,
		Arms:      arms,
	}
}

// PopulationSize is Counts(total, arms).Total().
func PopulationSize(total, arms int) int {
	return Counts(total, arms).Total()
}

// Generate builds a galaxy-shaped field of entities. factory turns each
// position into whatever the caller wants to keep. All draws come from rand,
// in order, so the output is reproducible for a freshly seeded stream.
func Generate[T any](shape Shape, total int, factory func(Vec3) T, rand Source) []T {
	counts := Counts(total, shape.Arms)
	objects := make([]T, 0, counts.Total())

	for i := 0; i < counts.Core; i++ {
		pos := Vec3{
			X: GaussianRandom(0, shape.CoreX, rand),
			Y: GaussianRandom(0, shape.CoreY, rand),
			Z: GaussianRandom(0, shape.Thickness, rand),
		}
		objects = append(objects, factory(pos))
	}

	for i := 0; i < counts.OuterCore; i++ {
		pos := Vec3{
			X: GaussianRandom(0, shape.OuterCoreX, rand),
			Y: GaussianRandom(0, shape.OuterCoreY, rand),
			Z: GaussianRandom(0, shape.Thickness, rand),
		}
		objects = append(objects, factory(pos))
	}

	for arm := 0; arm < counts.Arms; arm++ {
		offset := shape.ArmOffset(arm)
		for i := 0; i < counts.PerArm; i++ {
			x := GaussianRandom(shape.ArmXMean, shape.ArmXDist, rand)
			y := GaussianRandom(shape.ArmYMean, shape.ArmYDist, rand)
			z := GaussianRandom(0, shape.Thickness, rand)
			objects = append(objects, factory(shape.Spiral(x, y, z, offset)))
		}
	}

	return objects
}
