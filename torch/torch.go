// Package torch implements the tick-driven control core of the torch:
// light-level ramping under a thermal ceiling, rear-indicator decay and
// number printing, button and charge tracking, and an optional
// accelerometer engine.
//
// All state lives in one Core owned by the driver loop. There is exactly
// one logical thread of control: every subsystem is mutated inside
// Tick() and is safe to read between ticks without synchronization.
package torch

import (
	"time"

	"torchcode-go/hw"
	"torchcode-go/x/timex"
)

// Key points on the light scale.
const (
	MaxLevel    = 1000
	MaxLowLevel = 500 // top of the low-power driver stage

	// CurrentLevel is the SetLight start sentinel meaning "ramp from
	// wherever the level is now".
	CurrentLevel = -1
)

// Config carries construction-time tuning. The zero value selects the
// stock hardware behaviour; calibration lives here, not in the
// algorithms.
type Config struct {
	Clock timex.Clock // defaults to timex.System{}

	// MinTickInterval is the tick gate's floor. Default 8 ms (~120 Hz,
	// matching the accelerometer's stock sample rate).
	MinTickInterval time.Duration

	// Thermal guard. OverheatRaw is the raw sensor reading at which the
	// ceiling starts to drop (default 320); the ceiling loses
	// OverheatStep level units per raw count over it (default 8), down
	// to OverheatFloor (default 0).
	OverheatRaw   uint16
	OverheatStep  int
	OverheatFloor int

	// Thermal calibration: Celsius() = raw*CelsiusNum/CelsiusDen + CelsiusOffset.
	// Defaults put the overheat threshold at 55 °C.
	CelsiusNum    int64
	CelsiusDen    int64
	CelsiusOffset int64

	// ShutdownGrace is how long Shutdown keeps the core alive on
	// battery before cutting power. Default 500 ms.
	ShutdownGrace time.Duration

	// Accel enables the accelerometer engine when non-nil. The device
	// must already be configured.
	Accel Accelerometer

	// Optional subsystems. Disabling the indicator also disables the
	// printer, which rides on it.
	DisableIndicator bool
	DisablePrinter   bool
}

// Core is the whole control state. Construct with New, bring up with
// Init, then call Tick once per driver-loop iteration.
type Core struct {
	board hw.Board
	clock timex.Clock
	cfg   Config

	intervalMs   int64
	nextTickMs   int64
	shutdownAtMs int64 // 0 = not armed

	light   lightRamp
	thermal thermalGuard
	btn     buttonTracker
	leds    [2]ledChannel
	printer numberPrinter
	accel   *accelEngine
}

// New builds a Core around the injected board. Nothing is written to
// hardware until Init.
func New(board hw.Board, cfg Config) *Core {
	if cfg.Clock == nil {
		cfg.Clock = timex.System{}
	}
	if cfg.MinTickInterval <= 0 {
		cfg.MinTickInterval = 8 * time.Millisecond
	}
	if cfg.OverheatRaw == 0 {
		cfg.OverheatRaw = 320
	}
	if cfg.OverheatStep <= 0 {
		cfg.OverheatStep = 8
	}
	if cfg.OverheatFloor < 0 {
		cfg.OverheatFloor = 0
	}
	if cfg.CelsiusDen == 0 {
		cfg.CelsiusNum, cfg.CelsiusDen, cfg.CelsiusOffset = 5, 8, -145
	}
	if cfg.ShutdownGrace <= 0 {
		cfg.ShutdownGrace = 500 * time.Millisecond
	}
	c := &Core{
		board:      board,
		clock:      cfg.Clock,
		cfg:        cfg,
		intervalMs: int64(cfg.MinTickInterval / time.Millisecond),
	}
	if c.intervalMs < 1 {
		c.intervalMs = 1
	}
	if cfg.Accel != nil {
		c.accel = newAccelEngine(cfg.Accel)
	}
	return c
}

// Init zeroes every output and resets subsystem state. Call once before
// the driver loop, and again after a cancelled shutdown if a clean slate
// is wanted.
func (c *Core) Init() {
	c.nextTickMs = 0
	c.shutdownAtMs = 0
	c.light = lightRamp{}
	c.thermal.ceiling = MaxLevel
	c.btn = buttonTracker{}
	c.leds = [2]ledChannel{}
	c.printer = numberPrinter{}
	if c.accel != nil {
		c.accel.reset()
	}
	c.board.LightWrite(0)
	c.board.RearLEDWrite(uint8(Red), 0)
	c.board.RearLEDWrite(uint8(Green), 0)
	c.thermal.read(c)
}

// Tick blocks until at least MinTickInterval has elapsed since the
// previous tick was accepted, then runs every subsystem once. Inputs
// (button, charge, thermal) are refreshed before the level and indicator
// logic consume them.
func (c *Core) Tick() {
	c.gateWait()
	now := c.clock.NowMs()

	c.btn.read(c, now)
	c.thermal.read(c)
	c.adjustLight(now)
	if !c.cfg.DisableIndicator {
		c.printer.update(c, now)
		c.adjustLeds(now)
	}
	if c.accel != nil {
		c.accel.update()
	}
}

// gateWait enforces the minimum inter-tick interval. It is the only
// blocking point in normal operation.
func (c *Core) gateWait() {
	now := c.clock.NowMs()
	if c.nextTickMs == 0 {
		c.nextTickMs = now
	}
	if wait := c.nextTickMs - now; wait > 0 {
		c.clock.Sleep(time.Duration(wait) * time.Millisecond)
	}
	c.nextTickMs += c.intervalMs
	// If the host loop stalled past a full period, resync rather than
	// burst-catch-up.
	if now := c.clock.NowMs(); c.nextTickMs < now {
		c.nextTickMs = now + c.intervalMs
	}
}

// Shutdown turns the light off immediately. On battery power it arms a
// short grace period, after which the next tick cuts power; a SetLight
// to a non-zero level before then cancels the shutdown. When plugged in
// the core keeps running with the light off (the charger needs the
// controller alive).
func (c *Core) Shutdown() {
	c.light = lightRamp{}
	c.board.LightWrite(0)
	// The debounced read matters here: a transient BATTERY misreport
	// during a charging transition must not cut power to a plugged-in
	// unit.
	if c.DefiniteChargeState() == Battery {
		c.shutdownAtMs = c.clock.NowMs() + int64(c.cfg.ShutdownGrace/time.Millisecond)
	}
}
