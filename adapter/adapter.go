// Package adapter implements the memory mapped interface adapter for
// the platform: a 16 slot register file exposing the output ports,
// keyboard, mouse, the banked cartridge image pointer/data, a random
// byte source and the pending interrupt id latch. The registers double
// as device state and device control so reads and writes both have
// side effects; the exact pairings for word granularity access are
// part of the platform contract and are preserved bit for bit.
package adapter

import (
	"fmt"
	"log"
	"math/rand"

	"github.com/phosphor65/phosphor/io"
)

// MAX_CART_SIZE is the fixed size of the cartridge image. Shorter
// images are zero padded up to this.
const MAX_CART_SIZE = 16 * 1024 * 1024

// Interrupt ids latched for host events before raising an IRQ.
const (
	KEYDOWN      = uint8(0xFF)
	KEYUP        = uint8(0xFE)
	MOUSE_LCLICK = uint8(0xFD)
	MOUSE_RCLICK = uint8(0xFC)
)

const (
	kREG_PORT_B   = uint16(0x0)
	kREG_PORT_A   = uint16(0x1)
	kREG_KEYB     = uint16(0x2)
	kREG_MOUSE_X  = uint16(0x3)
	kREG_MOUSE_Y  = uint16(0x4)
	kREG_CART_LOW = uint16(0x5)
	kREG_CART_MID = uint16(0x6)
	kREG_CART_HI  = uint16(0x7)
	kREG_CART_DAT = uint16(0x8)
	kREG_RANDOM   = uint16(0x9)
	kREG_INT_ID   = uint16(0xF)
)

// Chip implements the adapter register file. The plain data registers
// are exported since the host loop is allowed to poke them directly
// when forwarding hardware events (simulating external pin assertions)
// before raising an interrupt on the CPU.
type Chip struct {
	PortA       uint8
	PortB       uint8
	Keyb        uint8
	MouseX      uint8
	MouseY      uint8
	InterruptID uint8

	cartPtr    uint32
	cart       []uint8
	portAInput io.Port8
	portBInput io.Port8
	debug      bool
}

// ChipDef defines the pieces needed to set up an adapter.
type ChipDef struct {
	// PortA/PortB optionally install input sources sampled whenever the
	// port registers are read. When nil reads return the output latch.
	PortA io.Port8
	PortB io.Port8

	// Debug if true will emit output from Debug() calls.
	Debug bool
}

// Init returns a fully initialized adapter with an all zero cartridge
// image. The adapter lives for the process lifetime; only the bus is
// expected to hold a mutable handle to it.
func Init(def *ChipDef) (*Chip, error) {
	if def == nil {
		return nil, fmt.Errorf("def must be non-nil")
	}
	a := &Chip{
		cart:       make([]uint8, MAX_CART_SIZE),
		portAInput: def.PortA,
		portBInput: def.PortB,
		debug:      def.Debug,
	}
	return a, nil
}

// LoadCartridge replaces the cartridge image. Images shorter than
// MAX_CART_SIZE are zero padded, larger ones rejected.
func (a *Chip) LoadCartridge(image []uint8) error {
	if len(image) > MAX_CART_SIZE {
		return fmt.Errorf("invalid cartridge image: must be <= %d bytes, got %d", MAX_CART_SIZE, len(image))
	}
	a.cart = make([]uint8, MAX_CART_SIZE)
	copy(a.cart, image)
	return nil
}

// CartPtr returns the current 24 bit cartridge image pointer.
func (a *Chip) CartPtr() uint32 {
	return a.cartPtr
}

func (a *Chip) readPortA() uint8 {
	if a.portAInput != nil {
		return a.portAInput.Input()
	}
	return a.PortA
}

func (a *Chip) readPortB() uint8 {
	if a.portBInput != nil {
		return a.portBInput.Input()
	}
	return a.PortB
}

// randByte draws a fresh uniformly distributed byte in [0,255). It is
// deliberately not cached and not deterministically seeded.
func randByte() uint8 {
	return uint8(rand.Intn(0xFF))
}

// Read returns the register at the given index (0x0-0xF). Invalid
// registers are logged and read as 0.
func (a *Chip) Read(reg uint16) uint8 {
	switch reg {
	case kREG_PORT_B:
		return a.readPortB()
	case kREG_PORT_A:
		return a.readPortA()
	case kREG_KEYB:
		return a.Keyb
	case kREG_MOUSE_X:
		return a.MouseX
	case kREG_MOUSE_Y:
		return a.MouseY
	case kREG_CART_LOW:
		return uint8(a.cartPtr)
	case kREG_CART_MID:
		return uint8(a.cartPtr >> 8)
	case kREG_CART_HI:
		return uint8(a.cartPtr >> 16)
	case kREG_CART_DAT:
		return a.cart[a.cartPtr]
	case kREG_RANDOM:
		return randByte()
	case kREG_INT_ID:
		return a.InterruptID
	}
	log.Printf("invalid adapter register read: %.4X", reg)
	return 0
}

// Write stores val into the register at the given index. Writing the
// cartridge data register is the one fatal misuse in the platform and
// aborts the process; everything else degrades gracefully.
func (a *Chip) Write(reg uint16, val uint8) {
	switch reg {
	case kREG_PORT_B:
		a.PortB = val
	case kREG_PORT_A:
		a.PortA = val
	case kREG_KEYB:
		a.Keyb = val
	case kREG_MOUSE_X:
		a.MouseX = val
	case kREG_MOUSE_Y:
		a.MouseY = val
	case kREG_CART_LOW:
		a.cartPtr = (a.cartPtr & 0x00FFFF00) | uint32(val)
	case kREG_CART_MID:
		a.cartPtr = (a.cartPtr & 0x00FF00FF) | uint32(val)<<8
	case kREG_CART_HI:
		a.cartPtr = (a.cartPtr & 0x0000FFFF) | uint32(val)<<16
	case kREG_CART_DAT:
		log.Fatalf("write to read only cartridge data register: %.2X", val)
	case kREG_RANDOM:
		log.Printf("write to random source register ignored: %.2X", val)
	case kREG_INT_ID:
		a.InterruptID = val
	default:
		log.Printf("invalid adapter register write: %.4X", reg)
	}
}

// WriteWord stores a 16 bit value starting at the given register
// index. Most registers pair with their neighbor; the exceptions are
// part of the platform contract. The return value reports whether the
// high byte must spill into the RAM byte adjoining the register window
// (only the interrupt id latch does this) in which case the bus is
// responsible for the RAM write and its framebuffer dirty check.
func (a *Chip) WriteWord(reg uint16, val uint16) bool {
	switch reg {
	case kREG_PORT_B:
		a.PortB = uint8(val)
		a.PortA = uint8(val >> 8)
	case kREG_PORT_A:
		a.PortA = uint8(val)
		a.Keyb = uint8(val >> 8)
	case kREG_KEYB:
		a.Keyb = uint8(val)
		a.MouseX = uint8(val >> 8)
	case kREG_MOUSE_X:
		a.MouseX = uint8(val)
		a.MouseY = uint8(val >> 8)
	case kREG_MOUSE_Y:
		a.MouseY = uint8(val)
		a.cartPtr = (a.cartPtr & 0x00FFFF00) | uint32(val>>8)
	case kREG_CART_LOW:
		a.cartPtr = (a.cartPtr & 0x00FF0000) | uint32(val)
	case kREG_CART_MID:
		a.cartPtr = (a.cartPtr & 0x000000FF) | uint32(val)<<8
	case kREG_CART_HI:
		a.cartPtr = (a.cartPtr & 0x0000FFFF) | uint32(val&0x00FF)<<16
		a.InterruptID = uint8(val >> 8)
	case kREG_CART_DAT:
		log.Printf("word write to cartridge data and random source registers ignored: %.4X", val)
	case kREG_RANDOM:
		log.Printf("word write to random source register and unbound memory ignored: %.4X", val)
	case kREG_INT_ID:
		a.InterruptID = uint8(val)
		return true
	default:
		log.Printf("invalid adapter register write: %.4X", reg)
	}
	return false
}

// ReadWord returns a 16 bit value starting at the given register
// index. The second return is false only for the interrupt id latch
// which cannot represent a word by itself: the bus must synthesize the
// word from the latch's low byte plus the adjoining RAM byte.
func (a *Chip) ReadWord(reg uint16) (uint16, bool) {
	switch reg {
	case kREG_PORT_B:
		return uint16(a.readPortB()) | uint16(a.readPortA())<<8, true
	case kREG_PORT_A:
		return uint16(a.readPortA()) | uint16(a.Keyb)<<8, true
	case kREG_KEYB:
		return uint16(a.Keyb) | uint16(a.MouseX)<<8, true
	case kREG_MOUSE_X:
		return uint16(a.MouseX) | uint16(a.MouseY)<<8, true
	case kREG_MOUSE_Y:
		return uint16(a.MouseY) | uint16(a.cartPtr&0xFF)<<8, true
	case kREG_CART_LOW:
		return uint16(a.cartPtr), true
	case kREG_CART_MID:
		return uint16(a.cartPtr >> 8), true
	case kREG_CART_HI:
		return uint16(a.cartPtr>>16) | uint16(a.cart[a.cartPtr])<<8, true
	case kREG_CART_DAT:
		return uint16(a.cart[a.cartPtr]) | uint16(randByte())<<8, true
	case kREG_RANDOM:
		log.Printf("word read of random source register reaches unbound memory")
		return uint16(randByte()), true
	case kREG_INT_ID:
		return 0, false
	}
	log.Printf("invalid adapter register read: %.4X", reg)
	return 0, true
}

// Debug returns a one line state string for the host status display.
func (a *Chip) Debug() string {
	if !a.debug {
		return ""
	}
	return fmt.Sprintf("PORTA: %.2X PORTB: %.2X KEYB: %.2X MOUSE: %.2X,%.2X CARTPTR: %.6X INTID: %.2X",
		a.PortA, a.PortB, a.Keyb, a.MouseX, a.MouseY, a.cartPtr, a.InterruptID)
}
