package galaxy

import (
	"math"

	"galaxy-server/internal/procgen"
)

// DefaultSeed reproduces the reference galaxy.
const DefaultSeed uint32 = 123456

type Config struct {
	Seed      uint32
	NumStars  int
	HazeRatio float64
	Shape     procgen.Shape
}

func DefaultConfig() Config {
	return Config{
		Seed:      DefaultSeed,
		NumStars:  7000,
		HazeRatio: 0.5,
		Shape:     procgen.DefaultShape(),
	}
}

// HazeCount is the requested haze total before block splitting.
func (c Config) HazeCount() int {
	return int(float64(c.NumStars) * c.HazeRatio)
}

// Galaxy is a generated star field. After New it is only read, except by
// UpdateScale which must not race with other access.
type Galaxy struct {
	config Config
	Stars  []Star
	Haze   []Haze
}

// New generates stars and then haze from one stream seeded with cfg.Seed.
// Star classes and haze sizes come from a separate derived stream so they
// never shift the positions.
func New(cfg Config) *Galaxy {
	spatial := procgen.NewRand(cfg.Seed).Source()
	attributes := procgen.NewRand(procgen.DeriveSeed(cfg.Seed, 1)).Source()

	stars := procgen.Generate(cfg.Shape, cfg.NumStars, func(pos procgen.Vec3) Star {
		class := PickStarClass(attributes)
		return Star{Position: pos, Class: class, Scale: ClassOf(class).Size}
	}, spatial)

	haze := procgen.Generate(cfg.Shape, cfg.HazeCount(), func(pos procgen.Vec3) Haze {
		return Haze{Position: pos, Size: HazeSize(attributes()), Opacity: HazeOpacity}
	}, spatial)

	return &Galaxy{config: cfg, Stars: stars, Haze: haze}
}

func (g *Galaxy) Config() Config {
	return g.config
}

// UpdateScale recomputes every star scale and haze opacity for camera.
func (g *Galaxy) UpdateScale(camera procgen.Vec3) {
	for i := range g.Stars {
		g.Stars[i].Scale = StarSizeAt(g.Stars[i], camera)
	}
	for i := range g.Haze {
		g.Haze[i].Opacity = HazeOpacityAt(g.Haze[i], camera)
	}
}

type Bounds struct {
	Min procgen.Vec3 `json:"min"`
	Max procgen.Vec3 `json:"max"`
}

type Summary struct {
	Seed        uint32              `json:"seed"`
	Shape       procgen.Shape       `json:"shape"`
	StarCount   int                 `json:"star_count"`
	HazeCount   int                 `json:"haze_count"`
	StarBlocks  procgen.BlockCounts `json:"star_blocks"`
	HazeBlocks  procgen.BlockCounts `json:"haze_blocks"`
	ClassCounts []int               `json:"class_counts"`
	Bounds      Bounds              `json:"bounds"`
	StarClasses []StarClass         `json:"star_classes"`
}

func (g *Galaxy) Summary() Summary {
	classCounts := make([]int, len(StarClasses))
	for _, s := range g.Stars {
		if s.Class >= 0 && s.Class < len(classCounts) {
			classCounts[s.Class]++
		}
	}

	return Summary{
		Seed:        g.config.Seed,
		Shape:       g.config.Shape,
		StarCount:   len(g.Stars),
		HazeCount:   len(g.Haze),
		StarBlocks:  procgen.Counts(g.config.NumStars, g.config.Shape.Arms),
		HazeBlocks:  procgen.Counts(g.config.HazeCount(), g.config.Shape.Arms),
		ClassCounts: classCounts,
		Bounds:      g.Bounds(),
		StarClasses: StarClasses,
	}
}

// Bounds is the axis-aligned box around all stars; zero for an empty galaxy.
func (g *Galaxy) Bounds() Bounds {
	if len(g.Stars) == 0 {
		return Bounds{}
	}

	b := Bounds{
		Min: procgen.Vec3{X: math.Inf(1), Y: math.Inf(1), Z: math.Inf(1)},
		Max: procgen.Vec3{X: math.Inf(-1), Y: math.Inf(-1), Z: math.Inf(-1)},
	}
	for _, s := range g.Stars {
		p := s.Position
		b.Min = procgen.Vec3{X: math.Min(b.Min.X, p.X), Y: math.Min(b.Min.Y, p.Y), Z: math.Min(b.Min.Z, p.Z)}
		b.Max = procgen.Vec3{X: math.Max(b.Max.X, p.X), Y: math.Max(b.Max.Y, p.Y), Z: math.Max(b.Max.Z, p.Z)}
	}
	return b
}
