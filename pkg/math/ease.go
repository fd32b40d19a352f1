package math

// Clamp01 clamps t to the [0, 1] range.
func Clamp01(t float32) float32 {
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}

// Lerp returns the linear interpolation between a and b at t.
func Lerp(a, b, t float32) float32 {
	return a + t*(b-a)
}

// EaseOutCubic maps t in [0, 1] to an ease-out cubic curve: fast start,
// decelerating toward 1.
func EaseOutCubic(t float32) float32 {
	t = Clamp01(t)
	u := 1 - t
	return 1 - u*u*u
}
