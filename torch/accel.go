package torch

import (
	"torchcode-go/errcode"
	"torchcode-go/x/mathx"
	"torchcode-go/x/vec"
)

// Accelerometer is the injected sample source. drivers/mma7660 satisfies
// it; the device must be configured before it is handed to New.
type Accelerometer interface {
	Sample() (vec.Vec3, error)
	ReadRegister(reg uint8) (uint8, error)
}

// Default classifier tolerances in centi-g, used when a caller passes a
// non-positive tolerance.
const (
	DefaultStationaryTolerance = 10
	DefaultMovedTolerance      = 50
)

// historyDepth is the sample ring size. Four samples is enough window to
// reject single-sample noise in the down estimate without making the
// estimate lag a deliberate reorientation.
const historyDepth = 4

// lowMotionTolerance classifies a sample as low-motion for down-estimate
// weighting: its distance to the next-older sample must be under this.
const lowMotionTolerance = DefaultStationaryTolerance

// accelEngine owns the sample history and the down estimate. Nothing
// else writes them.
type accelEngine struct {
	dev    Accelerometer
	hist   [historyDepth]vec.Vec3
	head   int // slot of the most recent sample
	primed int // samples taken, capped at historyDepth
	down   vec.Vec3
}

func newAccelEngine(dev Accelerometer) *accelEngine {
	return &accelEngine{dev: dev}
}

func (e *accelEngine) reset() {
	*e = accelEngine{dev: e.dev}
}

// update pulls one sample, advances the ring and re-estimates down. A
// failed read leaves the history untouched; the injected primitives
// already degrade to last-known values, so there is nothing to retry.
func (e *accelEngine) update() {
	s, err := e.dev.Sample()
	if err != nil {
		return
	}
	e.head = (e.head + 1) % historyDepth
	e.hist[e.head] = s
	if e.primed < historyDepth {
		e.primed++
	}
	e.findDown()
}

// vector returns the nth sample back; 0 = most recent.
func (e *accelEngine) vector(back int) vec.Vec3 {
	if back < 0 || back >= e.primed {
		return vec.Zero
	}
	return e.hist[(e.head-back+historyDepth)%historyDepth]
}

// findDown recomputes the gravity estimate as a normalized windowed
// average, weighting low-motion samples double so one noisy sample
// cannot swing the estimate. After heavy movement the estimate can be
// off, but recomputing harder in that case buys nothing: it would still
// be a guess.
func (e *accelEngine) findDown() {
	var sum vec.Vec3
	for i := 0; i < e.primed; i++ {
		v := e.vector(i)
		w := int32(1)
		if i+1 < e.primed && vec.Magnitude(vec.Sub(v, e.vector(i+1))) < lowMotionTolerance {
			w = 2
		}
		sum = vec.Sum(sum, vec.Vec3{X: v.X * w, Y: v.Y * w, Z: v.Z * w})
	}
	if m := vec.Magnitude(sum); m > 0 {
		e.down = vec.Normalize(sum, m)
	}
	// A degenerate all-zero window keeps the previous estimate, so down
	// is never the zero vector once primed with real samples.
}

// --- public surface; every accessor degrades to a sentinel when the
// engine is absent ---

// ReadAccelerometer reads a raw device register (RegTilt and friends).
func (c *Core) ReadAccelerometer(reg uint8) (uint8, error) {
	if c.accel == nil {
		return 0, errcode.NotEnabled
	}
	return c.accel.dev.ReadRegister(reg)
}

// Vector returns the nth sample back from the ring; 0 = most recent,
// historyDepth-1 = oldest. Out-of-range indexes return the zero vector.
func (c *Core) Vector(back int) vec.Vec3 {
	if c.accel == nil {
		return vec.Zero
	}
	return c.accel.vector(back)
}

// Down returns the current gravity estimate, normalized to magnitude 100.
func (c *Core) Down() vec.Vec3 {
	if c.accel == nil {
		return vec.Zero
	}
	return c.accel.down
}

// AbsoluteVector removes gravity from a sample: the result is near zero
// when no acceleration beyond gravity is occurring.
func (c *Core) AbsoluteVector(sample vec.Vec3) vec.Vec3 {
	if c.accel == nil {
		return vec.Zero
	}
	return vec.Sub(sample, c.accel.down)
}

// Stationary reports whether the last two samples differ by less than
// tolerance (centi-g). Non-positive tolerance selects
// DefaultStationaryTolerance.
func (c *Core) Stationary(tolerance int) bool {
	if c.accel == nil {
		return false
	}
	if tolerance <= 0 {
		tolerance = DefaultStationaryTolerance
	}
	e := c.accel
	return vec.Magnitude(vec.Sub(e.vector(0), e.vector(1))) < float64(tolerance)
}

// Moved reports whether the most recent sample carries non-gravitational
// acceleration beyond tolerance (centi-g). Non-positive tolerance
// selects DefaultMovedTolerance.
func (c *Core) Moved(tolerance int) bool {
	if c.accel == nil {
		return false
	}
	if tolerance <= 0 {
		tolerance = DefaultMovedTolerance
	}
	return vec.Magnitude(c.AbsoluteVector(c.accel.vector(0))) > float64(tolerance)
}

// Spin returns the rotation rate about the down axis in [-100, 100],
// 0 = no rotation. The value is noisy when the device points straight up
// or down: near vertical the samples sit along the rotation axis and
// carry little angular information. Known limitation, works well
// rotated one-handed around the body axis.
func (c *Core) Spin() int {
	if c.accel == nil {
		return 0
	}
	e := c.accel
	v0, v1 := e.vector(0), e.vector(1)
	hint := vec.AngleDifference(vec.Dot(v0, v1), vec.Magnitude(v0), vec.Magnitude(v1))
	cr := vec.Cross(v0, v1, hint)
	return mathx.Clamp(int(vec.Dot(cr, e.down)/10000), -100, 100)
}

// DifferenceFromDown returns the normalized angle between the most
// recent sample and the down estimate: 0 = pointing down, 1 = straight
// up. Expect noise around 0.05.
func (c *Core) DifferenceFromDown() float64 {
	if c.accel == nil {
		return 0
	}
	e := c.accel
	v := e.vector(0)
	return vec.AngleDifference(vec.Dot(v, e.down), vec.Magnitude(v), vec.Magnitude(e.down))
}

// AngleChange returns the normalized angle between the two most recent
// samples. Noise scales with sample rate.
func (c *Core) AngleChange() float64 {
	if c.accel == nil {
		return 0
	}
	e := c.accel
	v0, v1 := e.vector(0), e.vector(1)
	return vec.AngleDifference(vec.Dot(v0, v1), vec.Magnitude(v0), vec.Magnitude(v1))
}
