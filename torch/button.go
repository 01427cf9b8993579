package torch

import "time"

// buttonTracker is the debounced edge detector. The tick gate bounds the
// sample rate, so one sample per tick is the debounce window; contact
// chatter shorter than a tick is never observed.
type buttonTracker struct {
	down         bool
	pressStartMs int64
	snapshotMs   int64 // frozen held duration of the last press
	released     bool
}

// read samples the raw input and tracks edges.
func (b *buttonTracker) read(c *Core, now int64) {
	raw := c.board.ButtonRead()
	switch {
	case raw && !b.down:
		b.down = true
		b.pressStartMs = now
		b.snapshotMs = 0
		b.released = false
	case !raw && b.down:
		b.down = false
		b.snapshotMs = now - b.pressStartMs
		b.released = true
	}
}

// ButtonHeld returns how long the button has been down, or, after a
// release, the frozen duration of the just-ended press. The snapshot
// stays readable until the next press, allowing
//
//	if c.ButtonReleased() && c.ButtonHeld() > 500*time.Millisecond { ... }
func (c *Core) ButtonHeld() time.Duration {
	b := &c.btn
	if b.down {
		return time.Duration(c.clock.NowMs()-b.pressStartMs) * time.Millisecond
	}
	return time.Duration(b.snapshotMs) * time.Millisecond
}

// ButtonReleased reports that a release edge has occurred. The flag is
// informational and not auto-clearing: it stays set until the next
// press, so poll it once per release window.
func (c *Core) ButtonReleased() bool { return c.btn.released }
