package mma7660

import (
	"testing"

	"torchcode-go/x/vec"
)

// fakeBus records transactions and replays canned read bytes.
type fakeBus struct {
	writes [][]byte
	reads  [][]byte // popped per Tx with a read phase
	err    error
}

func (f *fakeBus) Tx(addr uint16, w, r []byte) error {
	if f.err != nil {
		return f.err
	}
	cp := make([]byte, len(w))
	copy(cp, w)
	f.writes = append(f.writes, cp)
	if len(r) > 0 {
		if len(f.reads) == 0 {
			return ErrProtocol
		}
		copy(r, f.reads[0])
		f.reads = f.reads[1:]
	}
	return nil
}

func TestConfigureSequence(t *testing.T) {
	bus := &fakeBus{}
	d := New(bus)
	if err := d.Configure(Config{SampleRate: Rate64}); err != nil {
		t.Fatalf("configure: %v", err)
	}
	want := [][]byte{
		{RegMode, modeStandby},
		{RegSR, Rate64},
		{RegMode, modeActive},
	}
	if len(bus.writes) != len(want) {
		t.Fatalf("got %d writes, want %d", len(bus.writes), len(want))
	}
	for i, w := range want {
		if bus.writes[i][0] != w[0] || bus.writes[i][1] != w[1] {
			t.Fatalf("write %d = %v, want %v", i, bus.writes[i], w)
		}
	}
}

func TestSampleDecodes(t *testing.T) {
	bus := &fakeBus{reads: [][]byte{{0x00, 0x15, 0x3F}}} // 0, +21, -1 counts
	d := New(bus)
	got, err := d.Sample()
	if err != nil {
		t.Fatalf("sample: %v", err)
	}
	want := vec.Vec3{X: 0, Y: 105, Z: -5}
	if got != want {
		t.Fatalf("sample = %v, want %v", got, want)
	}
}

func TestSampleRetriesOnAlert(t *testing.T) {
	bus := &fakeBus{reads: [][]byte{
		{0x40, 0x00, 0x00}, // alert on X, must retry
		{0x01, 0x02, 0x03},
	}}
	d := New(bus)
	got, err := d.Sample()
	if err != nil {
		t.Fatalf("sample: %v", err)
	}
	if got != (vec.Vec3{X: 5, Y: 10, Z: 15}) {
		t.Fatalf("sample = %v", got)
	}
}

func TestSampleGivesUpAfterRetries(t *testing.T) {
	alert := []byte{0x40, 0x40, 0x40}
	bus := &fakeBus{reads: [][]byte{alert, alert, alert, alert}}
	d := New(bus)
	if _, err := d.Sample(); err != ErrAlert {
		t.Fatalf("err = %v, want ErrAlert", err)
	}
}

func TestReadRegister(t *testing.T) {
	bus := &fakeBus{reads: [][]byte{{0x5A}}}
	d := New(bus)
	v, err := d.ReadRegister(RegTilt)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if v != 0x5A {
		t.Fatalf("value = %#x, want 0x5a", v)
	}
	if bus.writes[0][0] != RegTilt {
		t.Fatalf("register pointer = %#x, want tilt", bus.writes[0][0])
	}
}
