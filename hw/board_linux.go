//go:build linux && !(rp2040 || rp2350)

package hw

import (
	"fmt"
	"os"

	"github.com/warthog618/go-gpiocdev"
)

// LinuxConfig names the lines and PWM channel a Linux host uses to reach
// the torch hardware (development rigs drive the head board from a Pi).
type LinuxConfig struct {
	Chip         string // defaults to "gpiochip0"
	ButtonLine   int
	ChargingLine int
	ChargedLine  int
	RedLine      int
	GreenLine    int
	PowerLine    int    // held high to keep the regulator on
	PWMPath      string // e.g. /sys/class/pwm/pwmchip0/pwm0
	ThermalPath  string // sysfs IIO raw voltage, e.g. in_voltage0_raw
}

// LinuxBoard implements Board over the GPIO character device plus sysfs
// PWM/IIO files. Rear LED brightness collapses to on/off: plain lines
// have no duty cycle, and the indicator state machine only needs edges.
type LinuxBoard struct {
	cfg   LinuxConfig
	chip  *gpiocdev.Chip
	btn   *gpiocdev.Line
	chg   *gpiocdev.Line
	full  *gpiocdev.Line
	rear  [2]*gpiocdev.Line
	power *gpiocdev.Line

	pwmPeriodNs int64
}

// NewLinuxBoard opens the chip and claims every line up front so a
// misconfigured rig fails at startup, not mid-run.
func NewLinuxBoard(cfg LinuxConfig) (*LinuxBoard, error) {
	if cfg.Chip == "" {
		cfg.Chip = "gpiochip0"
	}
	chip, err := gpiocdev.NewChip(cfg.Chip)
	if err != nil {
		return nil, fmt.Errorf("open gpio chip: %w", err)
	}
	b := &LinuxBoard{cfg: cfg, chip: chip, pwmPeriodNs: 1_000_000} // 1 kHz

	claim := func(offset int, opts ...gpiocdev.LineReqOption) (*gpiocdev.Line, error) {
		l, err := chip.RequestLine(offset, opts...)
		if err != nil {
			b.Close()
			return nil, fmt.Errorf("request line %d: %w", offset, err)
		}
		return l, nil
	}

	if b.btn, err = claim(cfg.ButtonLine, gpiocdev.AsInput, gpiocdev.WithPullDown); err != nil {
		return nil, err
	}
	if b.chg, err = claim(cfg.ChargingLine, gpiocdev.AsInput); err != nil {
		return nil, err
	}
	if b.full, err = claim(cfg.ChargedLine, gpiocdev.AsInput); err != nil {
		return nil, err
	}
	if b.rear[ChannelRed], err = claim(cfg.RedLine, gpiocdev.AsOutput(0)); err != nil {
		return nil, err
	}
	if b.rear[ChannelGreen], err = claim(cfg.GreenLine, gpiocdev.AsOutput(0)); err != nil {
		return nil, err
	}
	if b.power, err = claim(cfg.PowerLine, gpiocdev.AsOutput(1)); err != nil {
		return nil, err
	}
	return b, nil
}

func (b *LinuxBoard) LightWrite(level uint16) {
	if level > 1000 {
		level = 1000
	}
	duty := b.pwmPeriodNs * int64(level) / 1000
	// Best effort; a missing pwmchip shows up as a dark emitter, which the
	// caller can see via the level accessors.
	_ = os.WriteFile(b.cfg.PWMPath+"/duty_cycle", []byte(fmt.Sprintf("%d", duty)), 0o644)
}

func (b *LinuxBoard) RearLEDWrite(ch uint8, brightness uint8) {
	if int(ch) >= len(b.rear) || b.rear[ch] == nil {
		return
	}
	v := 0
	if brightness > 0 {
		v = 1
	}
	_ = b.rear[ch].SetValue(v)
}

func (b *LinuxBoard) ButtonRead() bool {
	v, err := b.btn.Value()
	return err == nil && v != 0
}

func (b *LinuxBoard) ThermalRead() uint16 {
	raw, err := os.ReadFile(b.cfg.ThermalPath)
	if err != nil {
		return 0
	}
	var v int
	_, _ = fmt.Sscanf(string(raw), "%d", &v)
	if v < 0 {
		v = 0
	} else if v > 1023 {
		v = 1023
	}
	return uint16(v)
}

func (b *LinuxBoard) ChargePinsRead() (bool, bool) {
	c, err := b.chg.Value()
	charging := err == nil && c != 0
	f, err := b.full.Value()
	charged := err == nil && f != 0
	return charging, charged
}

func (b *LinuxBoard) PowerOff() {
	if b.power != nil {
		_ = b.power.SetValue(0)
	}
}

// Close releases every claimed line.
func (b *LinuxBoard) Close() {
	for _, l := range []*gpiocdev.Line{b.btn, b.chg, b.full, b.rear[0], b.rear[1], b.power} {
		if l != nil {
			_ = l.Close()
		}
	}
	if b.chip != nil {
		_ = b.chip.Close()
	}
}
