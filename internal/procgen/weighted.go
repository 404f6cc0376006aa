package procgen

// WeightedTable picks an index with probability proportional to its weight.
type WeightedTable struct {
	weights []float64
	scale   float64
}

// NewWeightedTable builds a table whose weights are read against their own sum.
func NewWeightedTable(weights ...float64) WeightedTable {
	total := 0.0
	for _, w := range weights {
		total += w
	}
	return WeightedTable{weights: weights, scale: total}
}

// NewPercentTable builds a table whose weights are percentages. If they add
// up to less than 100 the leftover mass falls back to index 0.
func NewPercentTable(percentages ...float64) WeightedTable {
	return WeightedTable{weights: percentages, scale: 100.0}
}

// Len is the number of entries.
func (t WeightedTable) Len() int {
	return len(t.weights)
}

// Total returns the sum of all weights.
func (t WeightedTable) Total() float64 {
	total := 0.0
	for _, w := range t.weights {
		total += w
	}
	return total
}

// Pick walks the cumulative weights with a single draw from rand.
func (t WeightedTable) Pick(rand Source) int {
	num := rand() * t.scale
	for i, w := range t.weights {
		num -= w
		if num < 0 {
			return i
		}
	}
	return 0
}
