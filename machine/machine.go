// Package machine assembles the chips into a runnable computer: bus,
// register adapter, CPU and (optionally) video. The host drives it by
// calling Tick in a loop and rendering when the framebuffer has been
// written.
package machine

import (
	"fmt"

	"github.com/phosphor65/phosphor/adapter"
	"github.com/phosphor65/phosphor/cpu"
	"github.com/phosphor65/phosphor/io"
	"github.com/phosphor65/phosphor/irq"
	"github.com/phosphor65/phosphor/mapper"
	"github.com/phosphor65/phosphor/ppu"
)

// Machine is a fully wired computer.
type Machine struct {
	cpu     *cpu.Chip
	mapper  *mapper.Map
	adapter *adapter.Chip
	ppu     *ppu.Chip

	irqSender irq.Sender
	nmiSender irq.Sender
	prevIRQ   bool
	prevNMI   bool
}

// Def defines the pieces needed to assemble a machine.
type Def struct {
	// ROM is the boot image, up to 32k, based at 0x8000.
	ROM []uint8
	// Cartridge is optional banked storage accessed through the
	// adapter's pointer registers.
	Cartridge []uint8
	// Charset is the glyph bitmap for the video chip. Leave nil to run
	// headless with no video chip at all.
	Charset []uint8
	// FrameDone is handed to the video chip. Ignored when headless.
	FrameDone ppu.FrameFunc
	// PortA and PortB are optional input sources for the adapter's
	// port registers.
	PortA io.Port8
	PortB io.Port8
	// IRQ and NMI are optional edge sampled interrupt sources, polled
	// once per Tick before the instruction executes.
	IRQ irq.Sender
	NMI irq.Sender
	// Debug enables adapter access logging.
	Debug bool
}

// Init assembles and powers on a machine from the given definition.
func Init(def *Def) (*Machine, error) {
	ad, err := adapter.Init(&adapter.ChipDef{
		PortA: def.PortA,
		PortB: def.PortB,
		Debug: def.Debug,
	})
	if err != nil {
		return nil, fmt.Errorf("adapter: %w", err)
	}
	if def.Cartridge != nil {
		if err := ad.LoadCartridge(def.Cartridge); err != nil {
			return nil, fmt.Errorf("cartridge: %w", err)
		}
	}
	m, err := mapper.Init(&mapper.MapDef{
		ROM:     def.ROM,
		Adapter: ad,
	})
	if err != nil {
		return nil, fmt.Errorf("mapper: %w", err)
	}
	c, err := cpu.Init(&cpu.ChipDef{Ram: m})
	if err != nil {
		return nil, fmt.Errorf("cpu: %w", err)
	}
	mach := &Machine{
		cpu:       c,
		mapper:    m,
		adapter:   ad,
		irqSender: def.IRQ,
		nmiSender: def.NMI,
	}
	if def.Charset != nil {
		p, err := ppu.Init(&ppu.ChipDef{
			Ram:       m,
			Charset:   def.Charset,
			FrameDone: def.FrameDone,
		})
		if err != nil {
			return nil, fmt.Errorf("ppu: %w", err)
		}
		mach.ppu = p
	}
	return mach, nil
}

var _ = irq.Receiver(&Machine{})

// Install implements the irq.Receiver interface: the sender is wired
// to the maskable interrupt line and sampled on every Tick, replacing
// any sender given at Init. Hosts that create their input source after
// machine assembly use this instead of Def.IRQ.
func (m *Machine) Install(s irq.Sender) {
	m.irqSender = s
	m.prevIRQ = false
}

// CPU returns the machine's CPU.
func (m *Machine) CPU() *cpu.Chip {
	return m.cpu
}

// Mapper returns the machine's bus.
func (m *Machine) Mapper() *mapper.Map {
	return m.mapper
}

// Adapter returns the machine's register adapter.
func (m *Machine) Adapter() *adapter.Chip {
	return m.adapter
}

// PPU returns the machine's video chip, or nil when headless.
func (m *Machine) PPU() *ppu.Chip {
	return m.ppu
}

// Reset performs a hardware reset: RAM cleared, CPU back to the reset
// vector. ROM, cartridge and adapter latches keep their contents.
func (m *Machine) Reset() {
	m.mapper.PowerOn()
	m.cpu.Reset()
	m.prevIRQ = false
	m.prevNMI = false
}

// Tick polls the interrupt senders and then executes one instruction.
// Interrupt lines are edge triggered: a sender that stays raised fires
// once, not on every instruction.
func (m *Machine) Tick() {
	if m.nmiSender != nil {
		raised := m.nmiSender.Raised()
		if raised && !m.prevNMI {
			m.cpu.NonMaskableInterrupt()
		}
		m.prevNMI = raised
	}
	if m.irqSender != nil {
		raised := m.irqSender.Raised()
		if raised && !m.prevIRQ {
			m.cpu.InterruptRequest()
		}
		m.prevIRQ = raised
	}
	m.cpu.Tick()
}

// TickN runs n instructions and reports whether the framebuffer was
// written during the batch.
func (m *Machine) TickN(n int) bool {
	for i := 0; i < n; i++ {
		m.Tick()
	}
	return m.mapper.FrameDirty()
}

// RenderIfDirty repaints the video output if the framebuffer changed
// since the last render. Returns whether a repaint happened. Headless
// machines always return false.
func (m *Machine) RenderIfDirty() bool {
	if m.ppu == nil || !m.mapper.FrameDirty() {
		return false
	}
	m.ppu.Render()
	m.mapper.ClearFrameDirty()
	return true
}
