package torch

import "time"

// ChargeState is the charging-circuit status.
type ChargeState uint8

const (
	Battery ChargeState = iota
	Charging
	Charged
)

func (s ChargeState) String() string {
	switch s {
	case Charging:
		return "charging"
	case Charged:
		return "charged"
	default:
		return "battery"
	}
}

// chargeSettle separates the debounce reads; chargeRetries bounds the
// re-sampling when the status lines keep flapping mid-transition.
const (
	chargeSettle  = 10 * time.Millisecond
	chargeRetries = 5
)

// ChargeState reads the status lines once, without verification. During
// a charging<->charged transition both lines can transiently read low,
// so this may briefly misreport Battery. Use it where an occasional
// wrong answer is harmless (a charging notification light).
func (c *Core) ChargeState() ChargeState {
	charging, charged := c.board.ChargePinsRead()
	switch {
	case charging:
		return Charging
	case charged:
		return Charged
	default:
		return Battery
	}
}

// DefiniteChargeState re-reads the status lines with a short settle
// delay until two consecutive reads agree. Battery is never returned
// while actually plugged in; use this before acting on the state (for
// example powering down when charging stops).
func (c *Core) DefiniteChargeState() ChargeState {
	prev := c.ChargeState()
	for i := 0; i < chargeRetries; i++ {
		c.clock.Sleep(chargeSettle)
		cur := c.ChargeState()
		if cur == prev {
			return cur
		}
		prev = cur
	}
	return prev
}
