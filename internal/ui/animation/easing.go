package animation

// easeInOut is a quadratic ease over t in [0, 1].
func easeInOut(t float64) float64 {
	if t <= 0 {
		return 0
	}
	if t >= 1 {
		return 1
	}
	if t < 0.5 {
		return 2 * t * t
	}
	u := -2*t + 2
	return 1 - u*u/2
}

func lerp(from, to, t float64) float64 {
	return from + (to-from)*t
}
