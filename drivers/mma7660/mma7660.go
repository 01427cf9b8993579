// Package mma7660 provides a driver for the MMA7660FC 3-axis
// accelerometer. Output registers are 6-bit signed counts at roughly
// 21 counts per g; Sample() converts to centi-g (100 = 1 g).
//
// NOTE: I2C.Tx MUST perform a write followed by a repeated-start read when
// both w and r are provided, without releasing the bus.
package mma7660

import (
	"errors"

	"tinygo.org/x/drivers"

	"torchcode-go/x/vec"
)

// I2C address (7-bit).
const Address = 0x4C

// Register map (per datasheet).
const (
	RegXOut  = 0x00
	RegYOut  = 0x01
	RegZOut  = 0x02
	RegTilt  = 0x03
	RegSRST  = 0x04
	RegSPCNT = 0x05
	RegIntSU = 0x06
	RegMode  = 0x07
	RegSR    = 0x08
)

// Mode register bits.
const (
	modeStandby = 0x00
	modeActive  = 0x01
)

// Sample-rate codes for RegSR (AMSR field).
const (
	Rate120 = 0x00 // 120 samples/s
	Rate64  = 0x01
	Rate32  = 0x02
	Rate16  = 0x03
	Rate8   = 0x04
	Rate4   = 0x05
	Rate2   = 0x06
	Rate1   = 0x07
)

const (
	alertBit = 0x40 // register was updated mid-read; retry
	signBit  = 0x20
	countMax = 0x3F

	// 1 count ~ 0.047 g; 5 centi-g per count keeps integer maths and puts
	// a resting axis at ~100.
	centiGPerCount = 5

	sampleRetries = 3
)

// Errors returned by the driver.
var (
	ErrAlert    = errors.New("mma7660: sample invalidated mid-read")
	ErrProtocol = errors.New("mma7660: protocol error")
)

// Config controls device setup. All fields are optional.
type Config struct {
	// Address defaults to 0x4C if zero.
	Address uint16
	// SampleRate is one of the Rate* codes. Default Rate120.
	SampleRate uint8
}

// Device wraps an I2C connection to an MMA7660 device.
type Device struct {
	bus     drivers.I2C
	Address uint16

	w [2]byte // reuse buffers to avoid allocations
	r [3]byte
}

// New creates a new MMA7660 connection. The I2C bus must already be
// configured. This function only creates the Device object; it does not
// touch the device.
func New(bus drivers.I2C) Device {
	return Device{bus: bus, Address: Address}
}

// Configure puts the device into active mode at the configured sample
// rate. Mode can only be written in standby, so the sequence is
// standby -> rate -> active.
func (d *Device) Configure(cfgs ...Config) error {
	cfg := Config{SampleRate: Rate120}
	if len(cfgs) > 0 {
		cfg = cfgs[0]
	}
	if cfg.Address != 0 {
		d.Address = cfg.Address
	}
	if err := d.WriteRegister(RegMode, modeStandby); err != nil {
		return err
	}
	if err := d.WriteRegister(RegSR, cfg.SampleRate); err != nil {
		return err
	}
	return d.WriteRegister(RegMode, modeActive)
}

// ReadRegister reads a single register.
func (d *Device) ReadRegister(reg uint8) (uint8, error) {
	d.w[0] = reg
	if err := d.bus.Tx(d.Address, d.w[:1], d.r[:1]); err != nil {
		return 0, err
	}
	return d.r[0], nil
}

// WriteRegister writes a single register.
func (d *Device) WriteRegister(reg, value uint8) error {
	d.w[0] = reg
	d.w[1] = value
	return d.bus.Tx(d.Address, d.w[:2], nil)
}

// Sample reads one acceleration vector in centi-g. A read that lands
// while the device updates its output registers carries the alert bit;
// such reads are retried a few times before giving up with ErrAlert.
func (d *Device) Sample() (vec.Vec3, error) {
	for try := 0; try < sampleRetries; try++ {
		d.w[0] = RegXOut
		if err := d.bus.Tx(d.Address, d.w[:1], d.r[:3]); err != nil {
			return vec.Zero, err
		}
		if d.r[0]&alertBit != 0 || d.r[1]&alertBit != 0 || d.r[2]&alertBit != 0 {
			continue
		}
		return vec.Vec3{
			X: decode(d.r[0]),
			Y: decode(d.r[1]),
			Z: decode(d.r[2]),
		}, nil
	}
	return vec.Zero, ErrAlert
}

// decode sign-extends a 6-bit count and scales it to centi-g.
func decode(raw byte) int32 {
	v := int32(raw & countMax)
	if raw&signBit != 0 {
		v -= countMax + 1
	}
	return v * centiGPerCount
}
