// Package timex provides the millisecond time base used by the control
// core. All elapsed-time arithmetic in the core runs on int64 Unix
// milliseconds obtained through a Clock, so tests can substitute a
// deterministic implementation.
package timex

import "time"

// NowMs returns Unix milliseconds as int64.
func NowMs() int64 { return time.Now().UnixMilli() }

// Clock abstracts reading and waiting on wall time.
type Clock interface {
	NowMs() int64
	Sleep(d time.Duration)
}

// System is the Clock backed by the runtime clock.
type System struct{}

func (System) NowMs() int64          { return NowMs() }
func (System) Sleep(d time.Duration) { time.Sleep(d) }
