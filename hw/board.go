// Package hw defines the hardware primitives the control core consumes.
// The core never touches registers itself; it is handed a Board at
// construction and calls these methods once per tick. Implementations:
// Sim (host, in-memory), a Linux GPIO character-device binding, and an
// RP2040 binding over the machine package.
package hw

// Board is the set of injected raw hardware accesses. Implementations
// must not block beyond the duration of the underlying bus transaction,
// and on read failure should return the last known (or zero) value; the
// core does not retry.
type Board interface {
	// LightWrite drives the main emitter with a logical level in
	// [0, 1000]. The implementation maps the level onto its driver
	// (PWM duty, high/low power mode selection).
	LightWrite(level uint16)

	// RearLEDWrite sets one rear indicator channel to the given
	// brightness, 0 = off, 255 = full.
	RearLEDWrite(ch uint8, brightness uint8)

	// ButtonRead returns the debounce-raw logical button level,
	// true = pressed.
	ButtonRead() bool

	// ThermalRead returns the raw thermal sensor reading (10-bit ADC).
	ThermalRead() uint16

	// ChargePinsRead returns the raw charging-circuit status lines.
	// Both false reads as running on battery; during a
	// charging<->charged transition both may transiently read false.
	ChargePinsRead() (charging, charged bool)

	// PowerOff cuts power to the controller. Only meaningful on
	// battery; when externally powered it is a no-op.
	PowerOff()
}

// Rear indicator channels as wired on the reference hardware.
const (
	ChannelRed   uint8 = 0
	ChannelGreen uint8 = 1
)
