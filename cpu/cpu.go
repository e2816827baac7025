// Package cpu defines the 6502 instruction engine for the platform and
// provides the methods needed to run it and interface with it for
// emulation. Each Tick() executes exactly one instruction as an atomic
// unit; there is no sub-instruction timing model. The ALU reproduces
// the platform's documented semantics which deviate from stock 6502
// hardware in two places: the increment/decrement family also updates
// carry, and the shift/rotate group uses the platform's own bit
// ordering (see the individual helpers).
package cpu

import (
	"fmt"
	"log"

	"github.com/phosphor65/phosphor/memory"
	"github.com/phosphor65/phosphor/opcodes"
)

const (
	NMI_VECTOR   = uint16(0xFFFA)
	RESET_VECTOR = uint16(0xFFFC)
	IRQ_VECTOR   = uint16(0xFFFE)

	P_NEGATIVE  = uint8(0x80)
	P_OVERFLOW  = uint8(0x40)
	P_B         = uint8(0x10)
	P_DECIMAL   = uint8(0x08) // Flag exists but arithmetic never honors it.
	P_INTERRUPT = uint8(0x04)
	P_ZERO      = uint8(0x02)
	P_CARRY     = uint8(0x01)

	// Bits forced high whenever the flags are pushed to the stack and
	// stripped back out whenever they are popped.
	kP_PUSH_FORCED = uint8(0x18)

	kSP_START    = uint8(0xFF)
	kFLAGS_START = uint8(0b00110100)
)

// Chip implements the instruction engine. The registers are exported
// for the host status display; mutation belongs to the engine.
type Chip struct {
	A  uint8  // Accumulator register
	X  uint8  // X register
	Y  uint8  // Y register
	S  uint8  // Stack pointer
	P  uint8  // Processor status register
	PC uint16 // Program counter

	ram memory.Bank
}

// ChipDef defines the pieces needed to set up a CPU.
type ChipDef struct {
	// Ram is the bus every memory access goes through. The CPU holds no
	// memory of its own beyond the registers.
	Ram memory.Bank
}

// Init returns an initialized CPU in reset state.
func Init(def *ChipDef) (*Chip, error) {
	if def == nil || def.Ram == nil {
		return nil, fmt.Errorf("ram must be non-nil")
	}
	c := &Chip{ram: def.Ram}
	c.Reset()
	return c, nil
}

// Reset restores the power on invariant: A/X/Y zero, SP at the top of
// the stack page, the fixed flag pattern, and PC loaded from the reset
// vector. It is idempotent and may be called at any time to simulate a
// hardware reset.
func (c *Chip) Reset() {
	c.PC = c.ram.ReadAddr(RESET_VECTOR)
	c.S = kSP_START
	c.A = 0
	c.X = 0
	c.Y = 0
	c.P = kFLAGS_START
}

// GetFlag returns whether the given flag bit is set.
func (c *Chip) GetFlag(flag uint8) bool {
	return c.P&flag != 0
}

func (c *Chip) setFlagIf(cond bool, flag uint8) {
	if cond {
		c.P |= flag
	} else {
		c.P &^= flag
	}
}

// updateZN recomputes Zero and Negative from an 8 bit result.
func (c *Chip) updateZN(val uint8) {
	c.setFlagIf(val == 0, P_ZERO)
	c.setFlagIf(val&P_NEGATIVE != 0, P_NEGATIVE)
}

func (c *Chip) fetchByte() uint8 {
	val := c.ram.Read(c.PC)
	c.PC++
	return val
}

func (c *Chip) fetchWord() uint16 {
	val := c.ram.ReadAddr(c.PC)
	c.PC += 2
	return val
}

// operandAddr resolves the operand address for every memory addressing
// mode, consuming the mode's trailing bytes. Zero page indexing wraps
// at 8 bits; absolute indexing wraps at 16 bits with no page cross
// penalty modeled.
func (c *Chip) operandAddr(mode opcodes.AddressMode) uint16 {
	switch mode {
	case opcodes.MODE_ZP:
		return uint16(c.fetchByte())
	case opcodes.MODE_ZPX:
		return uint16(c.fetchByte() + c.X)
	case opcodes.MODE_ZPY:
		return uint16(c.fetchByte() + c.Y)
	case opcodes.MODE_ABSOLUTE:
		return c.fetchWord()
	case opcodes.MODE_ABSOLUTEX:
		return c.fetchWord() + uint16(c.X)
	case opcodes.MODE_ABSOLUTEY:
		return c.fetchWord() + uint16(c.Y)
	case opcodes.MODE_INDIRECT:
		return c.ram.ReadAddr(c.fetchWord())
	case opcodes.MODE_INDIRECTX:
		return c.ram.ReadAddr(uint16(c.fetchByte() + c.X))
	case opcodes.MODE_INDIRECTY:
		return c.ram.ReadAddr(uint16(c.fetchByte())) + uint16(c.Y)
	}
	// Impossible: callers only pass memory modes.
	log.Printf("operandAddr on non-memory mode %d", mode)
	return 0
}

// loadOperand resolves and reads the operand value for read class
// instructions.
func (c *Chip) loadOperand(mode opcodes.AddressMode) uint8 {
	if mode == opcodes.MODE_IMMEDIATE {
		return c.fetchByte()
	}
	return c.ram.Read(c.operandAddr(mode))
}

func (c *Chip) spAddr() uint16 {
	return 0x0100 | uint16(c.S)
}

// Stack discipline: push decrements then writes, pop reads then
// increments. SP wraps silently at the 8 bit boundary.
func (c *Chip) pushByte(val uint8) {
	c.S--
	c.ram.Write(c.spAddr(), val)
}

func (c *Chip) pushWord(val uint16) {
	c.S -= 2
	c.ram.WriteAddr(c.spAddr(), val)
}

func (c *Chip) popByte() uint8 {
	val := c.ram.Read(c.spAddr())
	c.S++
	return val
}

func (c *Chip) popWord() uint16 {
	val := c.ram.ReadAddr(c.spAddr())
	c.S += 2
	return val
}

func (c *Chip) pushFlags() {
	// Bits 3/4 always read back high from a pushed status byte.
	c.pushByte(c.P | kP_PUSH_FORCED)
}

func (c *Chip) popFlags() {
	// ...and the same bits get cleared on the way back.
	c.P = c.popByte() &^ kP_PUSH_FORCED
}

// InterruptRequest delivers a maskable interrupt: PC then flags are
// pushed, PC reloads from the IRQ vector and further IRQs are
// disabled. If interrupts are disabled the request is dropped, not
// queued.
func (c *Chip) InterruptRequest() {
	if c.GetFlag(P_INTERRUPT) {
		return
	}
	c.pushWord(c.PC)
	c.pushFlags()
	c.PC = c.ram.ReadAddr(IRQ_VECTOR)
	c.P |= P_INTERRUPT
}

// NonMaskableInterrupt delivers the same push/vector sequence
// unconditionally through the NMI vector. The IRQ disable flag is not
// touched.
func (c *Chip) NonMaskableInterrupt() {
	c.pushWord(c.PC)
	c.pushFlags()
	c.PC = c.ram.ReadAddr(NMI_VECTOR)
}

// adc adds the operand and the carry in as a 9 bit sum. Overflow is
// signed overflow detection via the sign bits before/after: set when
// both inputs share a sign and the result differs from it. Decimal
// mode is never applied regardless of the flag.
func (c *Chip) adc(op uint8) {
	signEq := (c.A^op)&P_NEGATIVE == 0
	var carry uint16
	if c.GetFlag(P_CARRY) {
		carry = 1
	}
	sum := uint16(op) + uint16(c.A) + carry
	c.A = uint8(sum)

	c.updateZN(c.A)
	c.setFlagIf(sum > 0xFF, P_CARRY)
	c.setFlagIf(signEq && (c.A^op)&P_NEGATIVE != 0, P_OVERFLOW)
}

// sbc reuses adc with the operand one's complemented, reproducing the
// 6502 borrow-via-carry convention.
func (c *Chip) sbc(op uint8) {
	c.adc(^op)
}

// cmp computes reg-operand for Z/N with carry meaning unsigned >=.
func (c *Chip) cmp(reg uint8, op uint8) {
	c.updateZN(reg - op)
	c.setFlagIf(reg >= op, P_CARRY)
}

// The shift/rotate group is platform specific, not textbook 6502:
// asl shifts right like lsr but takes its carry out of bit 7, rol
// shifts left inserting the old carry at bit 0, ror shifts right
// inserting the old carry at bit 7.

func (c *Chip) asl(op uint8) uint8 {
	c.setFlagIf(op&P_NEGATIVE != 0, P_CARRY)
	res := op >> 1
	c.updateZN(res)
	return res
}

func (c *Chip) lsr(op uint8) uint8 {
	c.setFlagIf(op&P_CARRY != 0, P_CARRY)
	res := op >> 1
	c.updateZN(res)
	return res
}

func (c *Chip) rol(op uint8) uint8 {
	var carry uint8
	if c.GetFlag(P_CARRY) {
		carry = 1
	}
	c.setFlagIf(op&P_NEGATIVE != 0, P_CARRY)
	res := op<<1 | carry
	c.updateZN(res)
	return res
}

func (c *Chip) ror(op uint8) uint8 {
	var carry uint8
	if c.GetFlag(P_CARRY) {
		carry = 0x80
	}
	c.setFlagIf(op&P_CARRY != 0, P_CARRY)
	res := op>>1 | carry
	c.updateZN(res)
	return res
}

// shift applies a shift/rotate helper to the accumulator or a memory
// operand, writing memory results back through the bus.
func (c *Chip) shift(mode opcodes.AddressMode, f func(uint8) uint8) {
	if mode == opcodes.MODE_ACCUMULATOR {
		c.A = f(c.A)
		return
	}
	addr := c.operandAddr(mode)
	c.ram.Write(addr, f(c.ram.Read(addr)))
}

// incReg increments a register, updating Z/N and (platform specific)
// carry on 8 bit overflow.
func (c *Chip) incReg(reg *uint8) {
	res := uint16(*reg) + 1
	*reg = uint8(res)
	c.updateZN(*reg)
	c.setFlagIf(res > 0xFF, P_CARRY)
}

func (c *Chip) decReg(reg *uint8) {
	res := int16(*reg) - 1
	*reg = uint8(res)
	c.updateZN(*reg)
	c.setFlagIf(res < 0, P_CARRY)
}

// branchIf consumes the relative operand and, when taken, adds it sign
// extended to the PC with 16 bit wraparound.
func (c *Chip) branchIf(cond bool) {
	off := int8(c.fetchByte())
	if cond {
		c.PC += uint16(int16(off))
	}
}

// Tick executes exactly one instruction: fetch the opcode at PC,
// decode via the opcode table, resolve the addressing mode operand,
// perform the operation and update flags. Unknown opcodes are logged
// and treated as a one byte no-op; execution never halts on them.
func (c *Chip) Tick() {
	op := c.fetchByte()
	od := opcodes.Lookup(op)
	if !od.Valid() {
		log.Printf("invalid instruction: %.2X at %.4X", op, c.PC-1)
		return
	}

	switch od.Op {
	case opcodes.OP_LDA:
		c.A = c.loadOperand(od.Mode)
		c.updateZN(c.A)
	case opcodes.OP_LDX:
		c.X = c.loadOperand(od.Mode)
		c.updateZN(c.X)
	case opcodes.OP_LDY:
		c.Y = c.loadOperand(od.Mode)
		c.updateZN(c.Y)

	case opcodes.OP_STA:
		c.ram.Write(c.operandAddr(od.Mode), c.A)
	case opcodes.OP_STX:
		c.ram.Write(c.operandAddr(od.Mode), c.X)
	case opcodes.OP_STY:
		c.ram.Write(c.operandAddr(od.Mode), c.Y)

	case opcodes.OP_JMP:
		c.PC = c.operandAddr(od.Mode)
	case opcodes.OP_JSR:
		addr := c.fetchWord()
		c.pushWord(c.PC)
		c.PC = addr
	case opcodes.OP_RTS:
		c.PC = c.popWord()

	case opcodes.OP_TSX:
		c.X = c.S
		c.updateZN(c.X)
	case opcodes.OP_TXS:
		c.S = c.X
	case opcodes.OP_TAX:
		c.X = c.A
		c.updateZN(c.X)
	case opcodes.OP_TAY:
		c.Y = c.A
		c.updateZN(c.Y)
	case opcodes.OP_TXA:
		c.A = c.X
		c.updateZN(c.A)
	case opcodes.OP_TYA:
		c.A = c.Y
		c.updateZN(c.A)

	case opcodes.OP_INX:
		c.incReg(&c.X)
	case opcodes.OP_INY:
		c.incReg(&c.Y)
	case opcodes.OP_DEX:
		c.decReg(&c.X)
	case opcodes.OP_DEY:
		c.decReg(&c.Y)

	case opcodes.OP_INC:
		addr := c.operandAddr(od.Mode)
		res := uint16(c.ram.Read(addr)) + 1
		c.ram.Write(addr, uint8(res))
		c.updateZN(uint8(res))
		c.setFlagIf(res > 0xFF, P_CARRY)
	case opcodes.OP_DEC:
		addr := c.operandAddr(od.Mode)
		res := int16(c.ram.Read(addr)) - 1
		c.ram.Write(addr, uint8(res))
		c.updateZN(uint8(res))
		c.setFlagIf(res < 0, P_CARRY)

	case opcodes.OP_PHA:
		c.pushByte(c.A)
	case opcodes.OP_PHP:
		c.pushFlags()
	case opcodes.OP_PLA:
		c.A = c.popByte()
	case opcodes.OP_PLP:
		c.popFlags()

	case opcodes.OP_AND:
		c.A &= c.loadOperand(od.Mode)
		c.updateZN(c.A)
	case opcodes.OP_ORA:
		c.A |= c.loadOperand(od.Mode)
		c.updateZN(c.A)
	case opcodes.OP_EOR:
		c.A ^= c.loadOperand(od.Mode)
		c.updateZN(c.A)

	case opcodes.OP_BIT:
		val := c.loadOperand(od.Mode)
		c.setFlagIf(c.A&val == 0, P_ZERO)
		c.setFlagIf(val&P_OVERFLOW != 0, P_OVERFLOW)
		c.setFlagIf(val&P_NEGATIVE != 0, P_NEGATIVE)

	case opcodes.OP_BEQ:
		c.branchIf(c.GetFlag(P_ZERO))
	case opcodes.OP_BNE:
		c.branchIf(!c.GetFlag(P_ZERO))
	case opcodes.OP_BCS:
		c.branchIf(c.GetFlag(P_CARRY))
	case opcodes.OP_BCC:
		c.branchIf(!c.GetFlag(P_CARRY))
	case opcodes.OP_BMI:
		c.branchIf(c.GetFlag(P_NEGATIVE))
	case opcodes.OP_BPL:
		c.branchIf(!c.GetFlag(P_NEGATIVE))
	case opcodes.OP_BVS:
		c.branchIf(c.GetFlag(P_OVERFLOW))
	case opcodes.OP_BVC:
		c.branchIf(!c.GetFlag(P_OVERFLOW))

	case opcodes.OP_CLC:
		c.P &^= P_CARRY
	case opcodes.OP_SEC:
		c.P |= P_CARRY
	case opcodes.OP_CLD:
		c.P &^= P_DECIMAL
	case opcodes.OP_SED:
		c.P |= P_DECIMAL
	case opcodes.OP_CLI:
		c.P &^= P_INTERRUPT
	case opcodes.OP_SEI:
		c.P |= P_INTERRUPT
	case opcodes.OP_CLV:
		c.P &^= P_OVERFLOW

	case opcodes.OP_ADC:
		c.adc(c.loadOperand(od.Mode))
	case opcodes.OP_SBC:
		c.sbc(c.loadOperand(od.Mode))

	case opcodes.OP_CMP:
		c.cmp(c.A, c.loadOperand(od.Mode))
	case opcodes.OP_CPX:
		c.cmp(c.X, c.loadOperand(od.Mode))
	case opcodes.OP_CPY:
		c.cmp(c.Y, c.loadOperand(od.Mode))

	case opcodes.OP_ASL:
		c.shift(od.Mode, c.asl)
	case opcodes.OP_LSR:
		c.shift(od.Mode, c.lsr)
	case opcodes.OP_ROL:
		c.shift(od.Mode, c.rol)
	case opcodes.OP_ROR:
		c.shift(od.Mode, c.ror)

	case opcodes.OP_BRK:
		if !c.GetFlag(P_INTERRUPT) {
			// The hardware skips the padding byte conventionally
			// following BRK, so push PC+1.
			c.pushWord(c.PC + 1)
			c.pushFlags()
			c.PC = c.ram.ReadAddr(IRQ_VECTOR)
			c.P |= P_INTERRUPT | P_B
		}
	case opcodes.OP_RTI:
		c.popFlags()
		c.PC = c.popWord()

	case opcodes.OP_NOP:
	}
}

// Debug returns a one line state string for tracing.
func (c *Chip) Debug() string {
	return fmt.Sprintf("PC: %.4X SP: %.2X A: %.2X X: %.2X Y: %.2X P: %.2X", c.PC, c.S, c.A, c.X, c.Y, c.P)
}
