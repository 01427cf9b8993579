package torch

import (
	"testing"

	"torchcode-go/errcode"
	"torchcode-go/hw"
)

type blink struct {
	ch    uint8
	durMs int64
	long  bool
}

// collectBlinks ticks the core until the print sequence finishes,
// recording every rear-LED pulse seen on the board.
func collectBlinks(t *testing.T, c *Core, sim *hw.Sim, clk *testClock) []blink {
	t.Helper()
	var out []blink
	var prev [2]uint8
	var startMs [2]int64
	for i := 0; i < 4000 && c.PrintingNumber(); i++ {
		c.Tick()
		for ch := uint8(0); ch < 2; ch++ {
			cur := sim.RearLED(ch)
			if prev[ch] == 0 && cur > 0 {
				startMs[ch] = clk.ms
			}
			if prev[ch] > 0 && cur == 0 {
				d := clk.ms - startMs[ch]
				out = append(out, blink{ch: ch, durMs: d, long: d >= 400})
			}
			prev[ch] = cur
		}
	}
	if c.PrintingNumber() {
		t.Fatal("print sequence never completed")
	}
	return out
}

// groups splits the blink stream into per-digit groups: a long blink
// closes the group it belongs to.
func groups(blinks []blink) []int {
	var gs []int
	shorts := 0
	for _, b := range blinks {
		if b.long {
			gs = append(gs, shorts)
			shorts = 0
		} else {
			shorts++
		}
	}
	return gs
}

func TestPrintNumberDigitDecomposition(t *testing.T) {
	c, sim, clk := newTestCore(t, nil)
	if err := c.PrintNumber(120); err != nil {
		t.Fatalf("print: %v", err)
	}
	if !c.PrintingNumber() {
		t.Fatal("printing must be in flight")
	}
	gs := groups(collectBlinks(t, c, sim, clk))
	want := []int{1, 2, 0}
	if len(gs) != len(want) {
		t.Fatalf("groups = %v, want %v", gs, want)
	}
	for i := range want {
		if gs[i] != want[i] {
			t.Fatalf("groups = %v, want %v", gs, want)
		}
	}
}

func TestPrintNumberColoursAlternatePerDigit(t *testing.T) {
	c, sim, clk := newTestCore(t, nil)
	_ = c.PrintNumber(11)
	blinks := collectBlinks(t, c, sim, clk)
	// 1 short + long in red, then 1 short + long in green.
	if len(blinks) != 4 {
		t.Fatalf("got %d blinks, want 4", len(blinks))
	}
	for i, b := range blinks[:2] {
		if b.ch != hw.ChannelRed {
			t.Fatalf("blink %d on channel %d, want red", i, b.ch)
		}
	}
	for i, b := range blinks[2:] {
		if b.ch != hw.ChannelGreen {
			t.Fatalf("blink %d on channel %d, want green", i+2, b.ch)
		}
	}
}

func TestPrintZeroIsSingleLongBlink(t *testing.T) {
	c, sim, clk := newTestCore(t, nil)
	_ = c.PrintNumber(0)
	blinks := collectBlinks(t, c, sim, clk)
	if len(blinks) != 1 || !blinks[0].long {
		t.Fatalf("blinks = %+v, want exactly one long blink", blinks)
	}
}

func TestNegativeAddsLeadingLongBlink(t *testing.T) {
	c, sim, clk := newTestCore(t, nil)
	_ = c.PrintNumber(5)
	pos := collectBlinks(t, c, sim, clk)

	c2, sim2, clk2 := newTestCore(t, nil)
	_ = c2.PrintNumber(-5)
	neg := collectBlinks(t, c2, sim2, clk2)

	if len(neg) != len(pos)+1 {
		t.Fatalf("negative print has %d blinks, positive %d, want one extra", len(neg), len(pos))
	}
	if !neg[0].long {
		t.Fatal("sign marker must be a long blink")
	}
}

func TestPrintNumberOverflowIsNoOp(t *testing.T) {
	c, _, _ := newTestCore(t, nil)
	if err := c.PrintNumber(MaxPrintable + 1); err != errcode.Overflow {
		t.Fatalf("err = %v, want overflow", err)
	}
	if err := c.PrintNumber(-(MaxPrintable + 1)); err != errcode.Overflow {
		t.Fatalf("err = %v, want overflow", err)
	}
	if c.PrintingNumber() {
		t.Fatal("overflow must leave the printer idle")
	}
}

func TestPrintNumberRejectsConcurrentCall(t *testing.T) {
	c, sim, clk := newTestCore(t, nil)
	if err := c.PrintNumber(7); err != nil {
		t.Fatalf("print: %v", err)
	}
	if err := c.PrintNumber(8); err != errcode.Busy {
		t.Fatalf("err = %v, want busy while printing", err)
	}
	collectBlinks(t, c, sim, clk)
	if err := c.PrintNumber(8); err != nil {
		t.Fatalf("print after completion: %v", err)
	}
}

func TestPrintNumberDisabled(t *testing.T) {
	c, _, _ := newTestCore(t, func(cfg *Config) { cfg.DisablePrinter = true })
	if err := c.PrintNumber(1); err != errcode.NotEnabled {
		t.Fatalf("err = %v, want not_enabled", err)
	}
}
