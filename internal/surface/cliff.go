package surface

import "math"

// CalcCliff returns the largest absolute height difference between column
// (x, z) and its in-chunk 4-neighbours. Neighbours outside the chunk, or
// samples missing from heights, are ignored.
func CalcCliff(x, z int, heights []float64, size int) float64 {
	if size <= 0 || x < 0 || z < 0 || x >= size || z >= size {
		return 0
	}
	at := func(x, z int) (float64, bool) {
		if x < 0 || z < 0 || x >= size || z >= size {
			return 0, false
		}
		i := x*size + z
		if i >= len(heights) || math.IsNaN(heights[i]) {
			return 0, false
		}
		return heights[i], true
	}

	centre, ok := at(x, z)
	if !ok {
		return 0
	}
	cliff := 0.0
	for _, d := range [4][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}} {
		if h, ok := at(x+d[0], z+d[1]); ok {
			cliff = math.Max(cliff, math.Abs(h-centre))
		}
	}
	return cliff
}
