package height

// BlendedHillHeight remaps v in [0, 1] so that everything at or below turnAt
// becomes 0 and the remainder rises along a smoothstep to 1. The result is
// monotone non-decreasing in v.
func BlendedHillHeight(v, turnAt float64) float64 {
	if v <= turnAt {
		return 0
	}
	t := (v - turnAt) / (1 - turnAt)
	if t > 1 {
		t = 1
	}
	return t * t * (3 - 2*t)
}
