package torch

import (
	"time"

	"torchcode-go/hw"
)

// Color identifies a rear indicator channel.
type Color uint8

const (
	Red   Color = Color(hw.ChannelRed)
	Green Color = Color(hw.ChannelGreen)
)

// LedState is the phase of one indicator channel.
type LedState uint8

const (
	LedOff LedState = iota
	LedWait
	LedOn
)

// DefaultLedWait is the wait phase used when callers pass a negative
// waitTime to SetLed.
const DefaultLedWait = 100 * time.Millisecond

// ledChannel is the per-colour ON -> WAIT -> OFF decay machine. During
// WAIT the LED is dark but the sequence is not finished; the printer
// keys its pacing off that distinction.
type ledChannel struct {
	state      LedState
	onUntilMs  int64
	offUntilMs int64
	brightness uint8
}

// SetLed lights a channel for onTime, then holds a dark WAIT phase for
// waitTime before the channel reads as off. Negative waitTime selects
// DefaultLedWait. Re-calling while ON or WAIT restarts the sequence with
// the new parameters. No-op when the indicator is absent.
func (c *Core) SetLed(color Color, onTime, waitTime time.Duration, brightness uint8) {
	if c.cfg.DisableIndicator || int(color) >= len(c.leds) {
		return
	}
	if waitTime < 0 {
		waitTime = DefaultLedWait
	}
	now := c.clock.NowMs()
	l := &c.leds[color]
	l.state = LedOn
	l.onUntilMs = now + int64(onTime/time.Millisecond)
	l.offUntilMs = l.onUntilMs + int64(waitTime/time.Millisecond)
	l.brightness = brightness
	c.board.RearLEDWrite(uint8(color), brightness)
}

// LedState returns the channel's current phase without side effects.
func (c *Core) LedState(color Color) LedState {
	if int(color) >= len(c.leds) {
		return LedOff
	}
	return c.leds[color].state
}

// FlipColor returns the other channel.
func FlipColor(color Color) Color {
	if color == Red {
		return Green
	}
	return Red
}

// adjustLeds decays each channel independently.
func (c *Core) adjustLeds(now int64) {
	for i := range c.leds {
		l := &c.leds[i]
		switch l.state {
		case LedOn:
			if now >= l.onUntilMs {
				l.state = LedWait
				c.board.RearLEDWrite(uint8(i), 0)
			}
		case LedWait:
			if now >= l.offUntilMs {
				l.state = LedOff
			}
		}
	}
}
