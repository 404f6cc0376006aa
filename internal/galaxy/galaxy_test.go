package galaxy

import (
	"math"
	"testing"

	"galaxy-server/internal/procgen"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func smallConfig() Config {
	cfg := DefaultConfig()
	cfg.NumStars = 400
	cfg.HazeRatio = 0.5
	return cfg
}

func TestNew_Counts(t *testing.T) {
	g := New(smallConfig())

	assert.Len(t, g.Stars, procgen.PopulationSize(400, 2))
	assert.Len(t, g.Haze, procgen.PopulationSize(200, 2))
}

func TestNew_Deterministic(t *testing.T) {
	a := New(smallConfig())
	b := New(smallConfig())

	assert.Equal(t, a.Stars, b.Stars)
	assert.Equal(t, a.Haze, b.Haze)
}

func TestNew_SeedChangesPositions(t *testing.T) {
	cfg := smallConfig()
	a := New(cfg)
	cfg.Seed = 42
	b := New(cfg)

	assert.NotEqual(t, a.Stars[0].Position, b.Stars[0].Position)
}

func TestNew_StarPositionsMatchPlainGeneration(t *testing.T) {
	cfg := smallConfig()
	g := New(cfg)

	positions := procgen.Generate(cfg.Shape, cfg.NumStars, func(p procgen.Vec3) procgen.Vec3 { return p },
		procgen.NewRand(cfg.Seed).Source())

	require.Len(t, positions, len(g.Stars))
	for i, p := range positions {
		assert.Equal(t, p, g.Stars[i].Position)
	}
}

func TestNew_HazeContinuesSpatialStream(t *testing.T) {
	cfg := smallConfig()
	g := New(cfg)

	rand := procgen.NewRand(cfg.Seed).Source()
	identity := func(p procgen.Vec3) procgen.Vec3 { return p }
	procgen.Generate(cfg.Shape, cfg.NumStars, identity, rand)
	haze := procgen.Generate(cfg.Shape, cfg.HazeCount(), identity, rand)

	require.Len(t, haze, len(g.Haze))
	assert.Equal(t, haze[0], g.Haze[0].Position)
	assert.Equal(t, haze[len(haze)-1], g.Haze[len(haze)-1].Position)
}

func TestNew_AttributesInRange(t *testing.T) {
	g := New(smallConfig())

	for _, s := range g.Stars {
		assert.GreaterOrEqual(t, s.Class, 0)
		assert.Less(t, s.Class, len(StarClasses))
		assert.Equal(t, StarClasses[s.Class].Size, s.Scale)
		assert.True(t, s.Position.IsFinite())
	}
	for _, h := range g.Haze {
		assert.GreaterOrEqual(t, h.Size, HazeMin)
		assert.LessOrEqual(t, h.Size, HazeMax)
		assert.Equal(t, HazeOpacity, h.Opacity)
	}
}

func TestNew_EmptyGalaxy(t *testing.T) {
	cfg := smallConfig()
	cfg.NumStars = 3
	g := New(cfg)

	assert.Empty(t, g.Stars)
	assert.Empty(t, g.Haze)
	assert.Equal(t, Bounds{}, g.Bounds())
}

func TestPickStarClass(t *testing.T) {
	tests := []struct {
		draw float64
		want int
	}{
		{0, 0},
		{0.7644, 0},
		{0.7646, 1},
		{0.8856, 2},
		{0.9616, 3},
		{0.9916, 4},
		{0.9976, 5},
		{0.99995, 0},
	}

	for _, tt := range tests {
		draw := tt.draw
		assert.Equal(t, tt.want, PickStarClass(func() float64 { return draw }), "draw %v", draw)
	}
}

func TestStarSizeAt(t *testing.T) {
	star := Star{Position: procgen.Vec3{}, Class: 5}

	assert.Equal(t, StarMin, StarSizeAt(star, procgen.Vec3{}))
	assert.InDelta(t, 5.0, StarSizeAt(star, procgen.Vec3{Z: 500}), 1e-12)
	assert.Equal(t, StarMax, StarSizeAt(star, procgen.Vec3{Z: 1e6}))
}

func TestHazeOpacityAt(t *testing.T) {
	haze := Haze{}

	assert.Equal(t, 0.0, HazeOpacityAt(haze, procgen.Vec3{}))
	assert.InDelta(t, 0.05, HazeOpacityAt(haze, procgen.Vec3{X: 312.5}), 1e-12)
	assert.Equal(t, HazeOpacity, HazeOpacityAt(haze, procgen.Vec3{X: 1e5}))
}

func TestHazeSize(t *testing.T) {
	assert.Equal(t, HazeMin, HazeSize(0.1))
	assert.Equal(t, 45.0, HazeSize(0.75))
	assert.Equal(t, HazeMax, HazeSize(0.999999999))
}

func TestUpdateScale(t *testing.T) {
	g := New(smallConfig())
	camera := procgen.Vec3{Z: 800}

	g.UpdateScale(camera)

	for _, s := range g.Stars {
		assert.Equal(t, StarSizeAt(s, camera), s.Scale)
	}
	for _, h := range g.Haze {
		assert.Equal(t, HazeOpacityAt(h, camera), h.Opacity)
	}
}

func TestSummary(t *testing.T) {
	g := New(smallConfig())
	s := g.Summary()

	assert.Equal(t, DefaultSeed, s.Seed)
	assert.Equal(t, len(g.Stars), s.StarCount)
	assert.Equal(t, len(g.Haze), s.HazeCount)
	assert.Equal(t, procgen.BlockCounts{Core: 100, OuterCore: 100, PerArm: 100, Arms: 2}, s.StarBlocks)

	total := 0
	for _, c := range s.ClassCounts {
		total += c
	}
	assert.Equal(t, len(g.Stars), total)

	assert.Less(t, s.Bounds.Min.X, s.Bounds.Max.X)
	assert.False(t, math.IsInf(s.Bounds.Min.X, 0))
}

func TestStarClass_ColorHex(t *testing.T) {
	assert.Equal(t, "#ffcc6f", StarClasses[0].ColorHex())
	assert.Equal(t, "#aabfff", StarClasses[5].ColorHex())
	assert.Equal(t, StarClasses[0], ClassOf(99))
}
