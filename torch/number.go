package torch

import (
	"time"

	"torchcode-go/errcode"
)

// MaxPrintable bounds PrintNumber; the left-most digit position is
// reserved, so ten-digit magnitudes are rejected.
const MaxPrintable = 999_999_999

// Blink timing for the number code. A digit is that many short blinks
// followed by one long boundary blink (a zero digit is the boundary
// blink alone); colours alternate per digit so adjacent groups read
// apart. A quiet tail separates back-to-back numbers.
const (
	printShortOn  = 120 * time.Millisecond
	printShortGap = 180 * time.Millisecond
	printLongOn   = 500 * time.Millisecond
	printLongGap  = 300 * time.Millisecond
	printTail     = 2 * time.Second
)

// numberPrinter is transient: it exists only while a sequence is in
// flight and zeroes itself on completion. It advances one blink at a
// time, gated on the previous blink's channel reading LedOff.
type numberPrinter struct {
	printing    bool
	digits      [10]uint8 // decimal digits, most significant first
	ndigits     int
	idx         int
	shortsLeft  int
	negPending  bool
	color       Color // colour of the current digit group
	gateColor   Color // channel of the blink in flight
	tailUntilMs int64
}

// PrintNumber starts blinking n through the rear indicator: digits most
// significant first, one extra leading long blink for a negative sign.
// A sequence already in flight is never interrupted; the call fails with
// Busy. Magnitudes over MaxPrintable fail with Overflow and leave the
// printer idle.
func (c *Core) PrintNumber(n int) error {
	if c.cfg.DisableIndicator || c.cfg.DisablePrinter {
		return errcode.NotEnabled
	}
	p := &c.printer
	if p.printing {
		return errcode.Busy
	}
	if n > MaxPrintable || n < -MaxPrintable {
		return errcode.Overflow
	}
	mag := n
	neg := false
	if n < 0 {
		neg = true
		mag = -n
	}

	*p = numberPrinter{printing: true, negPending: neg, color: Red, gateColor: Red}
	if mag == 0 {
		p.ndigits = 1
	} else {
		for v := mag; v > 0; v /= 10 {
			p.ndigits++
		}
		for i, v := p.ndigits-1, mag; v > 0; i, v = i-1, v/10 {
			p.digits[i] = uint8(v % 10)
		}
	}
	p.shortsLeft = int(p.digits[0])
	return nil
}

// PrintingNumber reports whether a print sequence is still in flight
// (including the quiet tail).
func (c *Core) PrintingNumber() bool { return c.printer.printing }

// update issues at most one blink per tick, once the previous blink's
// channel has fully decayed.
func (p *numberPrinter) update(c *Core, now int64) {
	if !p.printing {
		return
	}
	if p.tailUntilMs != 0 {
		if now >= p.tailUntilMs {
			*p = numberPrinter{}
		}
		return
	}
	if c.LedState(p.gateColor) != LedOff {
		return
	}
	switch {
	case p.negPending:
		p.negPending = false
		p.blink(c, printLongOn, printLongGap)
	case p.shortsLeft > 0:
		p.shortsLeft--
		p.blink(c, printShortOn, printShortGap)
	case p.idx < p.ndigits:
		// Digit boundary: long blink, then the next group in the other
		// colour.
		p.blink(c, printLongOn, printLongGap)
		p.idx++
		if p.idx < p.ndigits {
			p.color = FlipColor(p.color)
			p.shortsLeft = int(p.digits[p.idx])
		}
	default:
		p.tailUntilMs = now + int64(printTail/time.Millisecond)
	}
}

func (p *numberPrinter) blink(c *Core, on, gap time.Duration) {
	p.gateColor = p.color
	c.SetLed(p.color, on, gap, 255)
}
