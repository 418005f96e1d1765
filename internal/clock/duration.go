package clock

import (
	"math"
	"time"
)

// Forever is the largest representable Duration. Saturating arithmetic
// clamps to it instead of wrapping.
const Forever = time.Duration(math.MaxInt64)

// Add returns a+b for non-negative durations, saturating at Forever.
func Add(a, b time.Duration) time.Duration {
	if a > Forever-b {
		return Forever
	}
	return a + b
}

// Mul returns d*n for non-negative d and n, saturating at Forever.
func Mul(d time.Duration, n int64) time.Duration {
	if d <= 0 || n <= 0 {
		return 0
	}
	if n > int64(Forever/d) {
		return Forever
	}
	return d * time.Duration(n)
}

// Scale returns d*f rounded toward zero, saturating at Forever. Negative,
// NaN and zero results are zero.
func Scale(d time.Duration, f float64) time.Duration {
	v := float64(d) * f
	switch {
	case math.IsNaN(v) || v <= 0:
		return 0
	case v >= float64(Forever):
		return Forever
	}
	return time.Duration(v)
}
