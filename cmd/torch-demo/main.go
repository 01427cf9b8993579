// torch-demo drives the control core against the simulated board on a
// host machine: the terminal stands in for the button and the outputs
// are printed as they change. Useful for exercising mode logic without
// hardware.
package main

import (
	"bufio"
	"fmt"
	"os"
	"time"

	"torchcode-go/hw"
	"torchcode-go/torch"
)

type command struct {
	kind byte // 'b' press, 't' thermal, 'p' print
	arg  int
}

func main() {
	sim := hw.NewSim()
	core := torch.New(sim, torch.Config{})
	core.Init()

	cmds := make(chan command, 4)
	go readStdin(cmds)

	fmt.Println("torch-demo: enter=press, 't RAW'=thermal, 'p N'=print, ctrl-c to quit")

	on := false
	prevReleased := false
	lastLight := uint16(0)
	releaseAt := time.Time{}
	for {
		core.Tick()

		// The core is single-threaded: apply terminal input between
		// ticks, never concurrently with them.
		select {
		case cmd := <-cmds:
			switch cmd.kind {
			case 'b':
				sim.PressButton(true)
				releaseAt = time.Now().Add(150 * time.Millisecond)
			case 't':
				sim.SetThermal(uint16(cmd.arg))
			case 'p':
				if err := core.PrintNumber(cmd.arg); err != nil {
					fmt.Println("print:", err)
				}
			}
		default:
		}
		if !releaseAt.IsZero() && time.Now().After(releaseAt) {
			sim.PressButton(false)
			releaseAt = time.Time{}
		}

		// The released flag stays set until the next press; act on its
		// rising edge only.
		released := core.ButtonReleased()
		if released && !prevReleased {
			if on {
				_ = core.SetLight(torch.CurrentLevel, 0, 300*time.Millisecond)
			} else {
				_ = core.SetLight(0, torch.MaxLowLevel, 300*time.Millisecond)
			}
			on = !on
		}
		prevReleased = released

		if lvl := sim.Light(); lvl != lastLight {
			lastLight = lvl
			clamp := ""
			if core.SafeLightLevel() < core.LightLevel() {
				clamp = fmt.Sprintf(" (clamped from %d, %d°C)", core.LightLevel(), core.Celsius())
			}
			fmt.Printf("light %4d%s\n", lvl, clamp)
		}
	}
}

func readStdin(cmds chan<- command) {
	sc := bufio.NewScanner(os.Stdin)
	for sc.Scan() {
		line := sc.Text()
		switch {
		case line == "":
			cmds <- command{kind: 'b'}
		case len(line) > 2 && line[0] == 't':
			var raw int
			if _, err := fmt.Sscanf(line, "t %d", &raw); err == nil {
				cmds <- command{kind: 't', arg: raw}
			}
		case len(line) > 2 && line[0] == 'p':
			var n int
			if _, err := fmt.Sscanf(line, "p %d", &n); err == nil {
				cmds <- command{kind: 'p', arg: n}
			}
		}
	}
}
