package errcode

// Code is a stable error identifier used across the control surface.
// It is a string newtype, comparable, allocation-free, and implements error.
type Code string

func (c Code) Error() string { return string(c) }

// Canonical codes (short, stable).
const (
	OK            Code = "ok"
	Busy          Code = "busy" // a print sequence is still in flight
	InvalidParams Code = "invalid_params"
	Overflow      Code = "overflow"    // magnitude exceeds the reserved digit budget
	NotEnabled    Code = "not_enabled" // optional subsystem absent at construction
	NotReady      Code = "not_ready"   // sensor has no fresh sample yet
	Unsupported   Code = "unsupported"
	BusError      Code = "bus_error" // two-wire transaction failed

	Error Code = "error" // generic fallback
)

// Of extracts a Code from an error, defaulting to Error.
func Of(err error) Code {
	if err == nil {
		return OK
	}
	if c, ok := err.(Code); ok {
		return c
	}
	type coder interface{ Code() Code }
	if x, ok := err.(coder); ok {
		return x.Code()
	}
	return Error
}
