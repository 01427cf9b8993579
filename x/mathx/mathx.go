// Package mathx holds small integer helpers for firmware maths.
package mathx

import "golang.org/x/exp/constraints"

// Clamp limits v to [lo, hi].
func Clamp[T constraints.Ordered](v, lo, hi T) T {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Abs for signed integers.
func Abs[T ~int | ~int8 | ~int16 | ~int32 | ~int64](x T) T {
	if x < 0 {
		return -x
	}
	return x
}

// Scale maps x through num/den with a 64-bit intermediate, rounding
// toward zero. den==0 returns 0.
func Scale[T ~int | ~int16 | ~int32 | ~int64](x T, num, den int64) T {
	if den == 0 {
		return 0
	}
	return T(int64(x) * num / den)
}

// RoundDiv returns (a + b/2) / b for b > 0, classic rounding.
// Negative a rounds away from zero.
func RoundDiv(a, b int64) int64 {
	if b <= 0 {
		return 0
	}
	if a < 0 {
		return (a - b/2) / b
	}
	return (a + b/2) / b
}
