//go:build rp2040

package hw

import (
	"machine"

	uartx "github.com/jangala-dev/tinygo-uartx/uartx"
)

// RP2040Config maps the torch head onto Pico pins.
type RP2040Config struct {
	DriverEnablePin machine.Pin // PWM to the emitter driver
	DriverModePin   machine.Pin // high selects the high-power stage
	PowerLatchPin   machine.Pin // held high to keep the regulator on
	RedPin          machine.Pin
	GreenPin        machine.Pin
	ButtonPin       machine.Pin // active high, external pull-down
	ChargingPin     machine.Pin
	ChargedPin      machine.Pin
	ThermalPin      machine.Pin // ADC input

	// Console, optional. Zero ConsoleBaud disables it.
	ConsoleBaud uint32
	ConsoleTX   machine.Pin
	ConsoleRX   machine.Pin
}

// pwmCtrl is the slice controller subset we need; avoids naming the
// unexported concrete type in machine.
type pwmCtrl interface {
	Configure(cfg machine.PWMConfig) error
	Top() uint32
	Set(channel uint8, value uint32)
	Channel(pin machine.Pin) (uint8, error)
}

func pwmForPin(pin machine.Pin) pwmCtrl {
	switch (uint8(pin) >> 1) & 0x7 {
	case 0:
		return machine.PWM0
	case 1:
		return machine.PWM1
	case 2:
		return machine.PWM2
	case 3:
		return machine.PWM3
	case 4:
		return machine.PWM4
	case 5:
		return machine.PWM5
	case 6:
		return machine.PWM6
	default:
		return machine.PWM7
	}
}

// RP2040Board implements Board on the Pico.
type RP2040Board struct {
	cfg RP2040Config

	drv     pwmCtrl
	drvCh   uint8
	rear    [2]machine.Pin
	thermal machine.ADC
	console *uartx.UART
}

// NewRP2040Board configures pins, PWM, ADC and the optional UART
// console. Call once at boot.
func NewRP2040Board(cfg RP2040Config) (*RP2040Board, error) {
	b := &RP2040Board{cfg: cfg}

	cfg.PowerLatchPin.Configure(machine.PinConfig{Mode: machine.PinOutput})
	cfg.PowerLatchPin.High()
	cfg.DriverModePin.Configure(machine.PinConfig{Mode: machine.PinOutput})
	cfg.DriverModePin.Low()
	cfg.ButtonPin.Configure(machine.PinConfig{Mode: machine.PinInputPulldown})
	cfg.ChargingPin.Configure(machine.PinConfig{Mode: machine.PinInput})
	cfg.ChargedPin.Configure(machine.PinConfig{Mode: machine.PinInput})

	b.rear[ChannelRed] = cfg.RedPin
	b.rear[ChannelGreen] = cfg.GreenPin
	for _, p := range b.rear {
		p.Configure(machine.PinConfig{Mode: machine.PinOutput})
		p.Low()
	}

	b.drv = pwmForPin(cfg.DriverEnablePin)
	if err := b.drv.Configure(machine.PWMConfig{Period: 1_000_000}); err != nil { // 1 kHz
		return nil, err
	}
	ch, err := b.drv.Channel(cfg.DriverEnablePin)
	if err != nil {
		return nil, err
	}
	b.drvCh = ch
	b.drv.Set(b.drvCh, 0)

	machine.InitADC()
	b.thermal = machine.ADC{Pin: cfg.ThermalPin}
	b.thermal.Configure(machine.ADCConfig{})

	if cfg.ConsoleBaud != 0 {
		b.console = uartx.UART0
		_ = b.console.Configure(uartx.UARTConfig{
			BaudRate: cfg.ConsoleBaud,
			TX:       cfg.ConsoleTX,
			RX:       cfg.ConsoleRX,
		})
	}
	return b, nil
}

func (b *RP2040Board) LightWrite(level uint16) {
	if level > 1000 {
		level = 1000
	}
	// Below the half-scale checkpoint the low-power stage covers the whole
	// range; above it the high-power stage takes over.
	top := b.drv.Top()
	if level <= 500 {
		b.cfg.DriverModePin.Low()
		b.drv.Set(b.drvCh, top*uint32(level)/500)
	} else {
		b.cfg.DriverModePin.High()
		b.drv.Set(b.drvCh, top*uint32(level-500)/500)
	}
}

func (b *RP2040Board) RearLEDWrite(ch uint8, brightness uint8) {
	if int(ch) >= len(b.rear) {
		return
	}
	b.rear[ch].Set(brightness > 0)
}

func (b *RP2040Board) ButtonRead() bool { return b.cfg.ButtonPin.Get() }

func (b *RP2040Board) ThermalRead() uint16 {
	return b.thermal.Get() >> 6 // 16-bit left-justified -> 10-bit
}

func (b *RP2040Board) ChargePinsRead() (bool, bool) {
	return b.cfg.ChargingPin.Get(), b.cfg.ChargedPin.Get()
}

func (b *RP2040Board) PowerOff() {
	b.drv.Set(b.drvCh, 0)
	b.cfg.PowerLatchPin.Low()
}

// Console returns the UART console writer, or nil when disabled.
func (b *RP2040Board) Console() *uartx.UART { return b.console }
