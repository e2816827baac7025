package adapter

import (
	"testing"

	"github.com/davecgh/go-spew/spew"
)

type fixedPort struct {
	v uint8
}

func (p *fixedPort) Input() uint8 {
	return p.v
}

func Setup(ftl func(string, ...interface{}), def *ChipDef) *Chip {
	if def == nil {
		def = &ChipDef{}
	}
	a, err := Init(def)
	if err != nil {
		ftl("Can't initialize adapter - %v", err)
	}
	return a
}

func TestPorts(t *testing.T) {
	a := Setup(t.Fatalf, nil)
	a.Write(0x0, 0x55)
	a.Write(0x1, 0xAA)
	if got, want := a.Read(0x0), uint8(0x55); got != want {
		t.Errorf("port B read wrong, got %.2X want %.2X", got, want)
	}
	if got, want := a.Read(0x1), uint8(0xAA); got != want {
		t.Errorf("port A read wrong, got %.2X want %.2X", got, want)
	}

	// With an input source installed reads sample the pins, not the
	// output latch.
	a = Setup(t.Fatalf, &ChipDef{PortA: &fixedPort{0x11}, PortB: &fixedPort{0x22}})
	a.Write(0x0, 0xFF)
	if got, want := a.Read(0x0), uint8(0x22); got != want {
		t.Errorf("port B didn't sample input, got %.2X want %.2X", got, want)
	}
	if got, want := a.Read(0x1), uint8(0x11); got != want {
		t.Errorf("port A didn't sample input, got %.2X want %.2X", got, want)
	}
}

func TestInputRegisters(t *testing.T) {
	a := Setup(t.Fatalf, nil)
	a.Keyb = 0x41
	a.MouseX = 0x10
	a.MouseY = 0x20
	a.InterruptID = KEYDOWN
	tests := []struct {
		reg  uint16
		want uint8
	}{
		{0x2, 0x41},
		{0x3, 0x10},
		{0x4, 0x20},
		{0xF, KEYDOWN},
	}
	for _, test := range tests {
		if got := a.Read(test.reg); got != test.want {
			t.Errorf("register %X read wrong, got %.2X want %.2X\n%s", test.reg, got, test.want, spew.Sdump(a))
		}
	}
}

func TestCartPointer(t *testing.T) {
	a := Setup(t.Fatalf, nil)
	a.Write(0x5, 0x11)
	a.Write(0x6, 0x22)
	a.Write(0x7, 0x33)
	if got, want := a.CartPtr(), uint32(0x332211); got != want {
		t.Fatalf("pointer assembly wrong, got %.6X want %.6X", got, want)
	}
	// Byte reads give the pointer back a byte at a time.
	if a.Read(0x5) != 0x11 || a.Read(0x6) != 0x22 || a.Read(0x7) != 0x33 {
		t.Errorf("pointer readback wrong: %.6X", a.CartPtr())
	}
	// Partial updates only touch their own byte.
	a.Write(0x6, 0x44)
	if got, want := a.CartPtr(), uint32(0x334411); got != want {
		t.Errorf("mid byte update wrong, got %.6X want %.6X", got, want)
	}
}

func TestCartData(t *testing.T) {
	a := Setup(t.Fatalf, nil)
	image := make([]uint8, 0x1000)
	image[0x123] = 0xAB
	if err := a.LoadCartridge(image); err != nil {
		t.Fatalf("LoadCartridge: %v", err)
	}
	a.Write(0x5, 0x23)
	a.Write(0x6, 0x01)
	if got, want := a.Read(0x8), uint8(0xAB); got != want {
		t.Errorf("cart data read wrong, got %.2X want %.2X", got, want)
	}
	// Beyond the loaded image reads as zero padding.
	a.Write(0x6, 0x10)
	if got, want := a.Read(0x8), uint8(0x00); got != want {
		t.Errorf("cart padding read wrong, got %.2X want %.2X", got, want)
	}
}

func TestCartTooBig(t *testing.T) {
	a := Setup(t.Fatalf, nil)
	if err := a.LoadCartridge(make([]uint8, MAX_CART_SIZE+1)); err == nil {
		t.Error("oversize cartridge accepted")
	}
}

func TestWriteWordPairings(t *testing.T) {
	tests := []struct {
		name  string
		reg   uint16
		val   uint16
		check func(*Chip) bool
	}{
		{"port b+a", 0x0, 0x1122, func(a *Chip) bool { return a.PortB == 0x22 && a.PortA == 0x11 }},
		{"port a+keyb", 0x1, 0x3344, func(a *Chip) bool { return a.PortA == 0x44 && a.Keyb == 0x33 }},
		{"keyb+mousex", 0x2, 0x5566, func(a *Chip) bool { return a.Keyb == 0x66 && a.MouseX == 0x55 }},
		{"mousex+mousey", 0x3, 0x7788, func(a *Chip) bool { return a.MouseX == 0x88 && a.MouseY == 0x77 }},
		{"mousey+cartlow", 0x4, 0x99AA, func(a *Chip) bool { return a.MouseY == 0xAA && a.CartPtr() == 0x99 }},
		{"cart low word", 0x5, 0xBBCC, func(a *Chip) bool { return a.CartPtr() == 0xBBCC }},
		{"cart mid+high", 0x6, 0xDDEE, func(a *Chip) bool { return a.CartPtr() == 0xDDEE00 }},
		{"cart high+intid", 0x7, 0x12FE, func(a *Chip) bool { return a.CartPtr() == 0xFE0000 && a.InterruptID == 0x12 }},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			a := Setup(t.Fatalf, nil)
			if spill := a.WriteWord(test.reg, test.val); spill {
				t.Errorf("unexpected spill for register %X", test.reg)
			}
			if !test.check(a) {
				t.Errorf("state wrong after word write:\n%s", spew.Sdump(a))
			}
		})
	}
}

func TestInterruptLatchWord(t *testing.T) {
	a := Setup(t.Fatalf, nil)
	// The latch is the last register so a word write can only keep the
	// low byte; the spill return tells the bus to place the high byte.
	if spill := a.WriteWord(0xF, 0xABCD); !spill {
		t.Fatal("latch word write didn't request spill")
	}
	if got, want := a.InterruptID, uint8(0xCD); got != want {
		t.Errorf("latch low byte wrong, got %.2X want %.2X", got, want)
	}
	// And the matching read can't produce a word on its own.
	if _, ok := a.ReadWord(0xF); ok {
		t.Error("latch word read claimed a full word")
	}
}

func TestReadWordPairings(t *testing.T) {
	a := Setup(t.Fatalf, nil)
	a.Keyb = 0x42
	a.MouseX = 0x07
	a.MouseY = 0x13
	a.Write(0x5, 0x21)
	a.Write(0x6, 0x43)

	tests := []struct {
		name string
		reg  uint16
		want uint16
	}{
		{"keyb+mousex", 0x2, 0x0742},
		{"mousex+mousey", 0x3, 0x1307},
		{"mousey+cartlow", 0x4, 0x2113},
		{"cart pointer low word", 0x5, 0x4321},
		{"cart pointer high word", 0x6, 0x0043},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got, ok := a.ReadWord(test.reg)
			if !ok {
				t.Fatalf("register %X couldn't produce a word", test.reg)
			}
			if got != test.want {
				t.Errorf("word read wrong, got %.4X want %.4X", got, test.want)
			}
		})
	}
}

func TestRandom(t *testing.T) {
	a := Setup(t.Fatalf, nil)
	// The source draws from [0,255) so 0xFF never appears.
	for i := 0; i < 4096; i++ {
		if got := a.Read(0x9); got == 0xFF {
			t.Fatal("random register produced 0xFF")
		}
	}
}
