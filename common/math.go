package common

func Lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

// Bound clamps value into [min, max].
func Bound(min, value, max float64) float64 {
	if value < min {
		return min
	} else if value > max {
		return max
	}
	return value
}

// Wrap returns max when value underflows min and min when it overflows max.
// Used to cycle path indices: Wrap(0, i+1, len-1).
func Wrap(min, value, max int) int {
	if value < min {
		return max
	} else if value > max {
		return min
	}
	return value
}
