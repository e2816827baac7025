// Package mapper implements the address space router for the platform.
// It owns the RAM and ROM backing storage plus the interface adapter
// and decides which region a given address targets:
//
//	0x0000-0x5FFF  general RAM
//	0x6000-0x600F  adapter register window (register = low 4 bits)
//	0x6010-0x7010  framebuffer (RAM, writes set the dirty flag)
//	0x7011-0x7FFF  general RAM
//	0x8000-0xFFFF  ROM, mirrored from a 32KB image, writes rejected
//
// Word accesses that straddle regions dispatch each byte into its own
// region independently.
package mapper

import (
	"fmt"
	"log"

	"github.com/phosphor65/phosphor/adapter"
	"github.com/phosphor65/phosphor/memory"
)

var _ = memory.Bank(&Map{})

const (
	kRAM_SIZE = 32768
	kROM_SIZE = 32768

	kADAPTER_START = uint16(0x6000)
	kADAPTER_END   = uint16(0x600F)
	kFBUF_START    = uint16(0x6010)
	kFBUF_END      = uint16(0x7010)
	kROM_START     = uint16(0x8000)

	kREG_MASK = uint16(0x000F)
	kROM_MASK = uint16(0x7FFF)
)

// Map implements memory.Bank over the platform address space.
type Map struct {
	ram        [kRAM_SIZE]uint8
	rom        [kROM_SIZE]uint8
	adapter    *adapter.Chip
	frameDirty bool
}

// MapDef defines the pieces needed to set up the address space.
type MapDef struct {
	// ROM is the 32KB system image. Shorter images are zero padded,
	// larger ones rejected.
	ROM []uint8

	// Adapter is the interface adapter mapped into the register window.
	Adapter *adapter.Chip
}

// Init returns an initialized and powered on Map.
func Init(def *MapDef) (*Map, error) {
	if def == nil || def.Adapter == nil {
		return nil, fmt.Errorf("adapter must be non-nil")
	}
	if len(def.ROM) > kROM_SIZE {
		return nil, fmt.Errorf("invalid ROM image: must be <= %d bytes, got %d", kROM_SIZE, len(def.ROM))
	}
	m := &Map{
		adapter: def.Adapter,
	}
	copy(m.rom[:], def.ROM)
	m.PowerOn()
	return m, nil
}

// PowerOn implements the memory.Bank interface. RAM is preset to all
// zeros and the framebuffer is marked dirty so the first frame paints.
func (m *Map) PowerOn() {
	for i := range m.ram {
		m.ram[i] = 0
	}
	m.frameDirty = true
}

// Adapter returns the interface adapter mapped into the register window.
func (m *Map) Adapter() *adapter.Chip {
	return m.adapter
}

// FrameDirty reports whether a write landed in the framebuffer window
// since the flag was last cleared.
func (m *Map) FrameDirty() bool {
	return m.frameDirty
}

// ClearFrameDirty resets the dirty flag. The renderer calls this after
// consuming a frame.
func (m *Map) ClearFrameDirty() {
	m.frameDirty = false
}

func inAdapter(addr uint16) bool {
	return addr >= kADAPTER_START && addr <= kADAPTER_END
}

func inFramebuffer(addr uint16) bool {
	return addr >= kFBUF_START && addr <= kFBUF_END
}

// Read implements the memory.Bank interface for Read.
func (m *Map) Read(addr uint16) uint8 {
	if addr >= kROM_START {
		return m.rom[addr&kROM_MASK]
	}
	if inAdapter(addr) {
		return m.adapter.Read(addr & kREG_MASK)
	}
	return m.ram[addr]
}

// Write implements the memory.Bank interface for Write. ROM writes are
// a logged no-op so emulated programs keep running, matching hardware
// where ROM is physically unwritable.
func (m *Map) Write(addr uint16, val uint8) {
	if addr >= kROM_START {
		log.Printf("write to ROM address %.4X ignored", addr)
		return
	}
	if inAdapter(addr) {
		m.adapter.Write(addr&kREG_MASK, val)
		return
	}
	if inFramebuffer(addr) {
		m.frameDirty = true
	}
	m.ram[addr] = val
}

// ReadAddr implements the memory.Bank interface for ReadAddr (little
// endian, low byte first). A word read starting at the interrupt id
// latch cannot be represented by the adapter alone so the word is
// synthesized from the latch's low byte plus the next RAM byte.
func (m *Map) ReadAddr(addr uint16) uint16 {
	if inAdapter(addr) {
		if val, ok := m.adapter.ReadWord(addr & kREG_MASK); ok {
			return val
		}
		return uint16(m.adapter.InterruptID) | uint16(m.Read(addr+1))<<8
	}
	return uint16(m.Read(addr)) | uint16(m.Read(addr+1))<<8
}

// WriteAddr implements the memory.Bank interface for WriteAddr. If the
// adapter cannot represent the write as a single word slot the high
// byte spills into the adjoining RAM byte, with the framebuffer dirty
// check applied through the normal byte path.
func (m *Map) WriteAddr(addr uint16, val uint16) {
	if inAdapter(addr) {
		if m.adapter.WriteWord(addr&kREG_MASK, val) {
			m.Write(addr+1, uint8(val>>8))
		}
		return
	}
	m.Write(addr, uint8(val))
	m.Write(addr+1, uint8(val>>8))
}
