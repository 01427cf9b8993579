package hw

import "sync"

// Sim is an in-memory Board for host demos and tests. Inputs are set by
// the test or demo harness; outputs are recorded for inspection. Safe
// for concurrent use so a harness goroutine can flip inputs while the
// control loop runs.
type Sim struct {
	mu sync.Mutex

	// inputs
	button   bool
	thermal  uint16
	charging bool
	charged  bool

	// outputs
	light    uint16
	rear     [2]uint8
	powerOff bool
}

// NewSim returns a Sim at room temperature with everything idle.
func NewSim() *Sim {
	return &Sim{thermal: 250}
}

func (s *Sim) LightWrite(level uint16) {
	s.mu.Lock()
	s.light = level
	s.mu.Unlock()
}

func (s *Sim) RearLEDWrite(ch uint8, brightness uint8) {
	s.mu.Lock()
	if int(ch) < len(s.rear) {
		s.rear[ch] = brightness
	}
	s.mu.Unlock()
}

func (s *Sim) ButtonRead() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.button
}

func (s *Sim) ThermalRead() uint16 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.thermal
}

func (s *Sim) ChargePinsRead() (bool, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.charging, s.charged
}

func (s *Sim) PowerOff() {
	s.mu.Lock()
	s.powerOff = true
	s.mu.Unlock()
}

// --- harness side ---

// PressButton sets the raw button level.
func (s *Sim) PressButton(down bool) {
	s.mu.Lock()
	s.button = down
	s.mu.Unlock()
}

// SetThermal sets the raw thermal reading.
func (s *Sim) SetThermal(raw uint16) {
	s.mu.Lock()
	s.thermal = raw
	s.mu.Unlock()
}

// SetChargePins sets the raw charge status lines.
func (s *Sim) SetChargePins(charging, charged bool) {
	s.mu.Lock()
	s.charging, s.charged = charging, charged
	s.mu.Unlock()
}

// Light returns the last written light level.
func (s *Sim) Light() uint16 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.light
}

// RearLED returns the last written brightness for a channel.
func (s *Sim) RearLED(ch uint8) uint8 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if int(ch) >= len(s.rear) {
		return 0
	}
	return s.rear[ch]
}

// PoweredOff reports whether PowerOff was called.
func (s *Sim) PoweredOff() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.powerOff
}
