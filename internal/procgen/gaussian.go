package procgen

import "math"

// GaussianRandom draws a normally distributed value centred on mean with
// standard deviation spread, consuming exactly two values from rand.
//
// The first draw is flipped to 1-u so the logarithm never sees 0.
func GaussianRandom(mean, spread float64, rand Source) float64 {
	u := 1 - rand()
	v := rand()
	z := math.Sqrt(-2.0*math.Log(u)) * math.Cos(2.0*math.Pi*v)
	return z*spread + mean
}
