package procgen

// Source yields uniformly distributed values in [0, 1).
type Source func() float64

// Rand is a Mulberry32 pseudo-random generator. It is fast and has a period of
// 2^32, which is plenty for placing sprites; it is not suitable where
// unpredictability matters.
type Rand struct {
	state uint32
	seed  uint32
}

// NewRand creates a generator whose sequence is fully determined by seed.
func NewRand(seed uint32) *Rand {
	return &Rand{
		state: seed,
		seed:  seed,
	}
}

// Seed returns the value the generator was created (or last reset) with.
func (r *Rand) Seed() uint32 {
	return r.seed
}

// Reset rewinds the generator to the start of its sequence.
func (r *Rand) Reset() {
	r.state = r.seed
}

// Uint32 advances the state and returns the next mixed 32-bit word.
func (r *Rand) Uint32() uint32 {
	r.state += 0x6D2B79F5
	t := r.state
	t = (t ^ (t >> 15)) * (t | 1)
	t ^= t + (t^(t>>7))*(t|61)
	return t ^ (t >> 14)
}

// Float64 returns the next value in [0, 1).
func (r *Rand) Float64() float64 {
	return float64(r.Uint32()) / 4294967296.0
}

// Source exposes the generator as an injectable stream.
func (r *Rand) Source() Source {
	return r.Float64
}

// DeriveSeed mixes a base seed with a stream index so that callers can open
// independent sub-streams without advancing the base stream.
func DeriveSeed(base uint32, stream int) uint32 {
	seed := base ^ (uint32(stream) * 2654435761)
	seed = (seed ^ (seed >> 16)) * 0x85ebca6b
	seed = (seed ^ (seed >> 13)) * 0xc2b2ae35
	return seed ^ (seed >> 16)
}
