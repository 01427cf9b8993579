package torch

import (
	"testing"
	"time"

	"torchcode-go/hw"
)

// testClock advances only when slept on, making every tick deterministic.
type testClock struct{ ms int64 }

func (c *testClock) NowMs() int64 { return c.ms }
func (c *testClock) Sleep(d time.Duration) {
	c.ms += int64(d / time.Millisecond)
}

func newTestCore(t *testing.T, mod func(*Config)) (*Core, *hw.Sim, *testClock) {
	t.Helper()
	sim := hw.NewSim()
	clk := &testClock{ms: 1_000}
	cfg := Config{Clock: clk}
	if mod != nil {
		mod(&cfg)
	}
	c := New(sim, cfg)
	c.Init()
	return c, sim, clk
}

// tickFor runs whole ticks until at least d of clock time has passed.
func tickFor(c *Core, clk *testClock, d time.Duration) {
	end := clk.ms + int64(d/time.Millisecond)
	for clk.ms < end {
		c.Tick()
	}
}

func TestTickGateEnforcesMinimumInterval(t *testing.T) {
	c, _, clk := newTestCore(t, nil)
	c.Tick() // first accepted tick anchors the gate
	before := clk.ms
	c.Tick()
	if got := clk.ms - before; got < 8 {
		t.Fatalf("second tick accepted after %dms, want >= 8ms", got)
	}
}

func TestTickGateResyncsAfterStall(t *testing.T) {
	c, _, clk := newTestCore(t, nil)
	c.Tick()
	clk.ms += 500 // host loop stalled
	before := clk.ms
	c.Tick() // overdue, runs immediately
	if clk.ms != before {
		t.Fatalf("overdue tick slept %dms", clk.ms-before)
	}
	c.Tick() // gate re-anchored, full interval again
	if got := clk.ms - before; got < 8 {
		t.Fatalf("post-stall tick accepted after %dms, want >= 8ms", got)
	}
}

func TestShutdownOnBatteryPowersOffAfterGrace(t *testing.T) {
	c, sim, clk := newTestCore(t, nil)
	c.Shutdown()
	if sim.Light() != 0 {
		t.Fatal("light must drop immediately on shutdown")
	}
	tickFor(c, clk, 600*time.Millisecond)
	if !sim.PoweredOff() {
		t.Fatal("power must be cut after the grace period on battery")
	}
}

func TestShutdownCancelledByRelight(t *testing.T) {
	c, sim, clk := newTestCore(t, nil)
	c.Shutdown()
	tickFor(c, clk, 100*time.Millisecond)
	if err := c.SetLight(0, MaxLevel, 0); err != nil {
		t.Fatalf("set light: %v", err)
	}
	tickFor(c, clk, time.Second)
	if sim.PoweredOff() {
		t.Fatal("relighting within the grace period must cancel shutdown")
	}
	if sim.Light() != MaxLevel {
		t.Fatalf("light = %d, want %d", sim.Light(), MaxLevel)
	}
}

func TestShutdownWhilePluggedKeepsRunning(t *testing.T) {
	c, sim, clk := newTestCore(t, nil)
	sim.SetChargePins(true, false)
	c.Shutdown()
	tickFor(c, clk, time.Second)
	if sim.PoweredOff() {
		t.Fatal("must not power off while plugged in")
	}
	if sim.Light() != 0 {
		t.Fatal("light must stay off after shutdown while charging")
	}
}

func TestInitZeroesOutputs(t *testing.T) {
	c, sim, _ := newTestCore(t, nil)
	_ = c.SetLight(0, MaxLevel, 0)
	c.SetLed(Red, time.Second, 0, 255)
	c.Tick()
	c.Init()
	if sim.Light() != 0 || sim.RearLED(hw.ChannelRed) != 0 {
		t.Fatal("init must zero light and rear LEDs")
	}
	if c.LightLevel() != 0 || c.LedState(Red) != LedOff {
		t.Fatal("init must reset controller state")
	}
}
