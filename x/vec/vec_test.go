package vec

import (
	"math"
	"testing"
)

func TestDot(t *testing.T) {
	a := Vec3{X: 1, Y: 2, Z: 3}
	b := Vec3{X: 4, Y: -5, Z: 6}
	if got := Dot(a, b); got != 4-10+18 {
		t.Fatalf("dot = %d, want 12", got)
	}
	if Dot(a, Zero) != 0 {
		t.Fatal("dot against zero vector must be 0")
	}
}

func TestMagnitude(t *testing.T) {
	if got := Magnitude(Vec3{X: 3, Y: 4, Z: 0}); got != 5 {
		t.Fatalf("magnitude = %v, want 5", got)
	}
	if Magnitude(Zero) != 0 {
		t.Fatal("zero vector has magnitude 0")
	}
}

func TestNormalizeRoundTrip(t *testing.T) {
	for _, v := range []Vec3{
		{X: 3, Y: 4, Z: 0},
		{X: -17, Y: 230, Z: 41},
		{X: 0, Y: 0, Z: 1},
		{X: 100, Y: 100, Z: 100},
	} {
		n := Normalize(v, Magnitude(v))
		if m := Magnitude(n); math.Abs(m-100) > 1 {
			t.Fatalf("normalize(%v) magnitude = %v, want 100±1", v, m)
		}
	}
}

func TestNormalizeZeroSentinel(t *testing.T) {
	if got := Normalize(Zero, Magnitude(Zero)); !got.IsZero() {
		t.Fatalf("normalize(zero) = %v, want zero sentinel", got)
	}
}

func TestAngleDifference(t *testing.T) {
	v := Vec3{X: 12, Y: -7, Z: 99}
	m := Magnitude(v)
	if got := AngleDifference(Dot(v, v), m, m); got != 0 {
		t.Fatalf("angle to self = %v, want 0", got)
	}
	neg := Vec3{X: -v.X, Y: -v.Y, Z: -v.Z}
	if got := AngleDifference(Dot(v, neg), m, m); math.Abs(got-1) > 1e-9 {
		t.Fatalf("angle to negation = %v, want 1", got)
	}
	// Orthogonal pair sits in the middle.
	a, b := Vec3{X: 100, Y: 0, Z: 0}, Vec3{X: 0, Y: 100, Z: 0}
	if got := AngleDifference(Dot(a, b), 100, 100); math.Abs(got-0.5) > 1e-9 {
		t.Fatalf("angle right = %v, want 0.5", got)
	}
	// Degenerate magnitudes are the defined sentinel.
	if AngleDifference(0, 0, 100) != 0 {
		t.Fatal("zero magnitude must map to angle 0")
	}
}

func TestCrossOrientation(t *testing.T) {
	a, b := Vec3{X: 100, Y: 0, Z: 0}, Vec3{X: 0, Y: 100, Z: 0}
	c := Cross(a, b, 1)
	if c.X != 0 || c.Y != 0 || c.Z <= 0 {
		t.Fatalf("x cross y = %v, want +z", c)
	}
	// Swapping the operands flips the sign.
	c2 := Cross(b, a, 1)
	if c2.Z != -c.Z {
		t.Fatalf("y cross x = %v, want -z of %v", c2, c)
	}
	// A zero hint collapses the result.
	if got := Cross(a, b, 0); !got.IsZero() {
		t.Fatalf("cross with zero hint = %v, want zero", got)
	}
}

func TestSumSub(t *testing.T) {
	a := Vec3{X: 1, Y: 2, Z: 3}
	b := Vec3{X: 10, Y: 20, Z: 30}
	if got := Sum(a, b); got != (Vec3{X: 11, Y: 22, Z: 33}) {
		t.Fatalf("sum = %v", got)
	}
	if got := Sub(b, a); got != (Vec3{X: 9, Y: 18, Z: 27}) {
		t.Fatalf("sub = %v", got)
	}
	if got := Sub(a, a); !got.IsZero() {
		t.Fatalf("v - v = %v, want zero", got)
	}
}
