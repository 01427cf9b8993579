package torch

import (
	"time"

	"torchcode-go/errcode"
	"torchcode-go/x/mathx"
)

// lightRamp is the linear level state machine. currentLevel is the raw
// requested level; the thermal guard clamps it on the way to hardware.
type lightRamp struct {
	current int
	target  int
	start   int
	startMs int64
	durMs   int64
}

// thermalGuard tracks the raw sensor and the resulting level ceiling.
type thermalGuard struct {
	raw     uint16
	ceiling int
}

// SetLight begins a ramp from start to end over the given duration.
// start may be CurrentLevel to ramp from wherever the level is now;
// duration 0 snaps immediately. A new call discards any ramp in flight
// (last-call-wins, no queuing), and a non-zero end cancels a pending
// battery shutdown.
func (c *Core) SetLight(start, end int, duration time.Duration) error {
	if start != CurrentLevel && (start < 0 || start > MaxLevel) {
		return errcode.InvalidParams
	}
	if end < 0 || end > MaxLevel {
		return errcode.InvalidParams
	}
	if start == CurrentLevel {
		start = c.light.current
	}
	c.light = lightRamp{
		current: start,
		target:  end,
		start:   start,
		startMs: c.clock.NowMs(),
		durMs:   int64(duration / time.Millisecond),
	}
	if c.light.durMs <= 0 {
		c.light.current = end
	}
	if end > 0 {
		c.shutdownAtMs = 0 // light back on, keep running
	}
	return nil
}

// LightLevel returns the requested level before thermal clamping.
func (c *Core) LightLevel() int { return c.light.current }

// SafeLightLevel returns the level actually driven to hardware.
// SafeLightLevel() < LightLevel() means the guard is clamping.
func (c *Core) SafeLightLevel() int {
	return mathx.Clamp(c.light.current, 0, c.thermal.ceiling)
}

// adjustLight interpolates the ramp by elapsed time and rewrites the
// output. The write happens every tick regardless of change so the
// thermal clamp keeps being re-applied even if SetLight is never called
// again. It also retires an armed shutdown.
func (c *Core) adjustLight(now int64) {
	if c.shutdownAtMs != 0 && now >= c.shutdownAtMs {
		c.board.LightWrite(0)
		c.board.PowerOff()
		c.shutdownAtMs = 0
		return
	}
	r := &c.light
	if r.durMs > 0 {
		elapsed := now - r.startMs
		if elapsed >= r.durMs {
			r.current = r.target
			r.durMs = 0
		} else {
			r.current = r.start + int(int64(r.target-r.start)*elapsed/r.durMs)
		}
	}
	c.board.LightWrite(uint16(c.SafeLightLevel()))
}

// read refreshes the raw thermal reading and recomputes the ceiling.
// Below the overheat threshold the ceiling has no effect; over it, the
// ceiling drops proportionally to the overshoot. The soft slope avoids
// the visible strobing a single-bit cutoff would produce.
func (g *thermalGuard) read(c *Core) {
	g.raw = c.board.ThermalRead()
	if g.raw < c.cfg.OverheatRaw {
		g.ceiling = MaxLevel
		return
	}
	over := int(g.raw - c.cfg.OverheatRaw)
	g.ceiling = mathx.Clamp(MaxLevel-over*c.cfg.OverheatStep, c.cfg.OverheatFloor, MaxLevel)
}

// ThermalSensor returns the raw sensor reading from the current tick.
func (c *Core) ThermalSensor() int { return int(c.thermal.raw) }

// Celsius converts the raw reading using the calibration constants.
// Calibrate per unit; the stock constants fit the reference sensor.
func (c *Core) Celsius() int {
	return int(int64(c.thermal.raw)*c.cfg.CelsiusNum/c.cfg.CelsiusDen + c.cfg.CelsiusOffset)
}

// Fahrenheit converts the calibrated Celsius value.
func (c *Core) Fahrenheit() int { return c.Celsius()*9/5 + 32 }
