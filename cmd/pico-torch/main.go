//go:build rp2040

// pico-torch is the firmware entry point for the Pico-based torch head.
// Button semantics: a short press cycles off -> low -> high -> off, a
// hold past one second starts a slow ramp to full. While off and
// charging, the rear indicator breathes the charge state.
package main

import (
	"machine"
	"time"

	"torchcode-go/drivers/mma7660"
	"torchcode-go/hw"
	"torchcode-go/torch"
)

func main() {
	// Allow USB CDC to enumerate before we print.
	time.Sleep(2 * time.Second)
	println("boot")

	board, err := hw.NewRP2040Board(hw.RP2040Config{
		DriverEnablePin: machine.GPIO9,
		DriverModePin:   machine.GPIO8,
		PowerLatchPin:   machine.GPIO7,
		RedPin:          machine.GPIO2,
		GreenPin:        machine.GPIO3,
		ButtonPin:       machine.GPIO4,
		ChargingPin:     machine.GPIO5,
		ChargedPin:      machine.GPIO6,
		ThermalPin:      machine.ADC0,
		ConsoleBaud:     115200,
		ConsoleTX:       machine.GPIO0,
		ConsoleRX:       machine.GPIO1,
	})
	if err != nil {
		println("board init failed:", err.Error())
		return
	}

	cfg := machine.I2CConfig{Frequency: 400_000, SDA: machine.GPIO16, SCL: machine.GPIO17}
	var accel torch.Accelerometer
	if err := machine.I2C0.Configure(cfg); err == nil {
		dev := mma7660.New(machine.I2C0)
		if err := dev.Configure(); err == nil {
			accel = &dev
		} else {
			println("accelerometer disabled:", err.Error())
		}
	}

	core := torch.New(board, torch.Config{Accel: accel})
	core.Init()

	level := 0 // 0 off, 1 low, 2 high
	prevReleased := false
	holdRamp := false
	for {
		core.Tick()

		if held := core.ButtonHeld(); held > time.Second && level != 0 && !holdRamp {
			holdRamp = true
			_ = core.SetLight(torch.CurrentLevel, torch.MaxLevel, 2*time.Second)
		}

		released := core.ButtonReleased()
		if released && !prevReleased {
			holdRamp = false
		}
		if released && !prevReleased && core.ButtonHeld() < time.Second {
			level = (level + 1) % 3
			switch level {
			case 0:
				core.Shutdown()
			case 1:
				_ = core.SetLight(0, torch.MaxLowLevel, 200*time.Millisecond)
			case 2:
				_ = core.SetLight(torch.CurrentLevel, torch.MaxLevel, 200*time.Millisecond)
			}
		}
		prevReleased = released

		if level == 0 && !core.PrintingNumber() {
			switch core.ChargeState() {
			case torch.Charging:
				if core.LedState(torch.Red) == torch.LedOff {
					core.SetLed(torch.Red, 300*time.Millisecond, 700*time.Millisecond, 128)
				}
			case torch.Charged:
				if core.LedState(torch.Green) == torch.LedOff {
					core.SetLed(torch.Green, 300*time.Millisecond, 700*time.Millisecond, 128)
				}
			}
		}
	}
}
