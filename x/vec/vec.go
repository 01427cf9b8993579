// Package vec implements 3-vector maths for acceleration samples.
//
// Components are signed integers in centi-g (100 = 1 g). Operations are
// pure; results come back by value. Degenerate zero-vector inputs return
// defined sentinels (the zero vector, angle 0) rather than dividing by
// zero, because a stalled or mis-wired sensor feeds exactly that.
package vec

import "math"

// Vec3 is one acceleration sample, components in centi-g.
type Vec3 struct {
	X, Y, Z int32
}

// Zero is the degenerate-input sentinel.
var Zero = Vec3{}

// IsZero reports whether all components are zero.
func (v Vec3) IsZero() bool { return v.X == 0 && v.Y == 0 && v.Z == 0 }

// Dot returns the scalar product. For two gravity-magnitude vectors the
// result is on the order of 10000.
func Dot(a, b Vec3) int64 {
	return int64(a.X)*int64(b.X) + int64(a.Y)*int64(b.Y) + int64(a.Z)*int64(b.Z)
}

// Magnitude returns the Euclidean norm of a non-normalized vector.
// 100 corresponds to 1 g.
func Magnitude(v Vec3) float64 {
	return math.Sqrt(float64(Dot(v, v)))
}

// Normalize scales v to magnitude 100. mag must be Magnitude(v); passing
// it in lets callers reuse an already computed norm. A zero magnitude
// returns Zero.
func Normalize(v Vec3, mag float64) Vec3 {
	if mag <= 0 {
		return Zero
	}
	return Vec3{
		X: int32(math.Round(float64(v.X) * 100 / mag)),
		Y: int32(math.Round(float64(v.Y) * 100 / mag)),
		Z: int32(math.Round(float64(v.Z) * 100 / mag)),
	}
}

// Cross returns the cross product of a and b scaled by angleHint, the
// normalized angle between them (see AngleDifference). The hint shrinks
// near-parallel results toward Zero, where the raw product is all noise.
// The result experiences rotation only, no translation, relative to the
// inputs.
func Cross(a, b Vec3, angleHint float64) Vec3 {
	return Vec3{
		X: int32(float64(int64(a.Y)*int64(b.Z)-int64(a.Z)*int64(b.Y)) * angleHint),
		Y: int32(float64(int64(a.Z)*int64(b.X)-int64(a.X)*int64(b.Z)) * angleHint),
		Z: int32(float64(int64(a.X)*int64(b.Y)-int64(a.Y)*int64(b.X)) * angleHint),
	}
}

// Sum returns a + b component-wise.
func Sum(a, b Vec3) Vec3 {
	return Vec3{X: a.X + b.X, Y: a.Y + b.Y, Z: a.Z + b.Z}
}

// Sub returns a - b component-wise.
func Sub(a, b Vec3) Vec3 {
	return Vec3{X: a.X - b.X, Y: a.Y - b.Y, Z: a.Z - b.Z}
}

// AngleDifference maps the angle between two vectors to [0, 1]:
// 0 = same direction, 1 = opposite, independent of magnitude.
// Takes the precomputed dot product and magnitudes so callers composing
// several comparisons pay for each norm once. A zero magnitude returns 0.
func AngleDifference(dot int64, mag1, mag2 float64) float64 {
	if mag1 <= 0 || mag2 <= 0 {
		return 0
	}
	c := float64(dot) / (mag1 * mag2)
	if c > 1 {
		c = 1
	} else if c < -1 {
		c = -1
	}
	return math.Acos(c) / math.Pi
}
