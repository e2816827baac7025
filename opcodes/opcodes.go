// Package opcodes defines the documented 6502 opcode space used by
// this platform as a dense lookup table. The table maps every opcode
// byte to an operation/addressing mode descriptor so dispatch is O(1)
// and the whole instruction set can be tested exhaustively as data.
// Opcode bytes not present in the table decode as invalid and the
// CPU treats them as a logged one byte no-op.
package opcodes

// AddressMode is an enumeration of the valid addressing modes.
type AddressMode int

const (
	MODE_UNIMPLEMENTED AddressMode = iota // Start of valid mode enumerations.
	MODE_IMPLIED
	MODE_ACCUMULATOR
	MODE_IMMEDIATE
	MODE_ZP
	MODE_ZPX
	MODE_ZPY
	MODE_ABSOLUTE
	MODE_ABSOLUTEX
	MODE_ABSOLUTEY
	MODE_INDIRECT
	MODE_INDIRECTX
	MODE_INDIRECTY
	MODE_RELATIVE
	MODE_MAX // End of mode enumerations.
)

// Operation is an enumeration of the valid operations.
type Operation int

const (
	OP_UNIMPLEMENTED Operation = iota // Start of valid operation enumerations.
	OP_ADC
	OP_AND
	OP_ASL
	OP_BCC
	OP_BCS
	OP_BEQ
	OP_BIT
	OP_BMI
	OP_BNE
	OP_BPL
	OP_BRK
	OP_BVC
	OP_BVS
	OP_CLC
	OP_CLD
	OP_CLI
	OP_CLV
	OP_CMP
	OP_CPX
	OP_CPY
	OP_DEC
	OP_DEX
	OP_DEY
	OP_EOR
	OP_INC
	OP_INX
	OP_INY
	OP_JMP
	OP_JSR
	OP_LDA
	OP_LDX
	OP_LDY
	OP_LSR
	OP_NOP
	OP_ORA
	OP_PHA
	OP_PHP
	OP_PLA
	OP_PLP
	OP_ROL
	OP_ROR
	OP_RTI
	OP_RTS
	OP_SBC
	OP_SEC
	OP_SED
	OP_SEI
	OP_STA
	OP_STX
	OP_STY
	OP_TAX
	OP_TAY
	OP_TSX
	OP_TXA
	OP_TXS
	OP_TYA
	OP_MAX // End of operation enumerations.
)

var opNames = [...]string{
	OP_UNIMPLEMENTED: "???",
	OP_ADC:           "ADC",
	OP_AND:           "AND",
	OP_ASL:           "ASL",
	OP_BCC:           "BCC",
	OP_BCS:           "BCS",
	OP_BEQ:           "BEQ",
	OP_BIT:           "BIT",
	OP_BMI:           "BMI",
	OP_BNE:           "BNE",
	OP_BPL:           "BPL",
	OP_BRK:           "BRK",
	OP_BVC:           "BVC",
	OP_BVS:           "BVS",
	OP_CLC:           "CLC",
	OP_CLD:           "CLD",
	OP_CLI:           "CLI",
	OP_CLV:           "CLV",
	OP_CMP:           "CMP",
	OP_CPX:           "CPX",
	OP_CPY:           "CPY",
	OP_DEC:           "DEC",
	OP_DEX:           "DEX",
	OP_DEY:           "DEY",
	OP_EOR:           "EOR",
	OP_INC:           "INC",
	OP_INX:           "INX",
	OP_INY:           "INY",
	OP_JMP:           "JMP",
	OP_JSR:           "JSR",
	OP_LDA:           "LDA",
	OP_LDX:           "LDX",
	OP_LDY:           "LDY",
	OP_LSR:           "LSR",
	OP_NOP:           "NOP",
	OP_ORA:           "ORA",
	OP_PHA:           "PHA",
	OP_PHP:           "PHP",
	OP_PLA:           "PLA",
	OP_PLP:           "PLP",
	OP_ROL:           "ROL",
	OP_ROR:           "ROR",
	OP_RTI:           "RTI",
	OP_RTS:           "RTS",
	OP_SBC:           "SBC",
	OP_SEC:           "SEC",
	OP_SED:           "SED",
	OP_SEI:           "SEI",
	OP_STA:           "STA",
	OP_STX:           "STX",
	OP_STY:           "STY",
	OP_TAX:           "TAX",
	OP_TAY:           "TAY",
	OP_TSX:           "TSX",
	OP_TXA:           "TXA",
	OP_TXS:           "TXS",
	OP_TYA:           "TYA",
}

// String returns the assembler mnemonic for the operation.
func (o Operation) String() string {
	if o <= OP_UNIMPLEMENTED || o >= OP_MAX {
		return opNames[OP_UNIMPLEMENTED]
	}
	return opNames[o]
}

// Opcode describes a single opcode byte: the operation to
// perform and the addressing mode used to compute its operand.
type Opcode struct {
	Op   Operation
	Mode AddressMode
}

// Valid reports whether the descriptor decodes to a documented opcode.
func (o Opcode) Valid() bool {
	return o.Op != OP_UNIMPLEMENTED
}

// OperandBytes returns the number of trailing bytes the mode consumes
// after the opcode byte.
func OperandBytes(m AddressMode) uint16 {
	switch m {
	case MODE_IMMEDIATE, MODE_ZP, MODE_ZPX, MODE_ZPY, MODE_INDIRECTX, MODE_INDIRECTY, MODE_RELATIVE:
		return 1
	case MODE_ABSOLUTE, MODE_ABSOLUTEX, MODE_ABSOLUTEY, MODE_INDIRECT:
		return 2
	}
	return 0
}

// Lookup returns the descriptor for the given opcode byte.
func Lookup(op uint8) Opcode {
	return Table[op]
}

// Table is the dense opcode map for the documented subset this
// platform uses. Entries left zero are invalid opcodes.
var Table = [256]Opcode{
	0xA9: {OP_LDA, MODE_IMMEDIATE},
	0xA5: {OP_LDA, MODE_ZP},
	0xB5: {OP_LDA, MODE_ZPX},
	0xAD: {OP_LDA, MODE_ABSOLUTE},
	0xBD: {OP_LDA, MODE_ABSOLUTEX},
	0xB9: {OP_LDA, MODE_ABSOLUTEY},
	0xA1: {OP_LDA, MODE_INDIRECTX},
	0xB1: {OP_LDA, MODE_INDIRECTY},

	0xA2: {OP_LDX, MODE_IMMEDIATE},
	0xA6: {OP_LDX, MODE_ZP},
	0xB6: {OP_LDX, MODE_ZPY},
	0xAE: {OP_LDX, MODE_ABSOLUTE},
	0xBE: {OP_LDX, MODE_ABSOLUTEY},

	0xA0: {OP_LDY, MODE_IMMEDIATE},
	0xA4: {OP_LDY, MODE_ZP},
	0xB4: {OP_LDY, MODE_ZPX},
	0xAC: {OP_LDY, MODE_ABSOLUTE},
	0xBC: {OP_LDY, MODE_ABSOLUTEX},

	0x85: {OP_STA, MODE_ZP},
	0x95: {OP_STA, MODE_ZPX},
	0x8D: {OP_STA, MODE_ABSOLUTE},
	0x9D: {OP_STA, MODE_ABSOLUTEX},
	0x99: {OP_STA, MODE_ABSOLUTEY},
	0x81: {OP_STA, MODE_INDIRECTX},
	0x91: {OP_STA, MODE_INDIRECTY},

	0x86: {OP_STX, MODE_ZP},
	0x96: {OP_STX, MODE_ZPY},
	0x8E: {OP_STX, MODE_ABSOLUTE},

	0x84: {OP_STY, MODE_ZP},
	0x94: {OP_STY, MODE_ZPX},
	0x8C: {OP_STY, MODE_ABSOLUTE},

	0x4C: {OP_JMP, MODE_ABSOLUTE},
	0x6C: {OP_JMP, MODE_INDIRECT},

	0x20: {OP_JSR, MODE_ABSOLUTE},
	0x60: {OP_RTS, MODE_IMPLIED},

	0xBA: {OP_TSX, MODE_IMPLIED},
	0x9A: {OP_TXS, MODE_IMPLIED},
	0xAA: {OP_TAX, MODE_IMPLIED},
	0xA8: {OP_TAY, MODE_IMPLIED},
	0x8A: {OP_TXA, MODE_IMPLIED},
	0x98: {OP_TYA, MODE_IMPLIED},

	0xE8: {OP_INX, MODE_IMPLIED},
	0xC8: {OP_INY, MODE_IMPLIED},
	0xCA: {OP_DEX, MODE_IMPLIED},
	0x88: {OP_DEY, MODE_IMPLIED},

	0xE6: {OP_INC, MODE_ZP},
	0xF6: {OP_INC, MODE_ZPX},
	0xEE: {OP_INC, MODE_ABSOLUTE},
	0xFE: {OP_INC, MODE_ABSOLUTEX},
	0xC6: {OP_DEC, MODE_ZP},
	0xD6: {OP_DEC, MODE_ZPX},
	0xCE: {OP_DEC, MODE_ABSOLUTE},
	0xDE: {OP_DEC, MODE_ABSOLUTEX},

	0x48: {OP_PHA, MODE_IMPLIED},
	0x08: {OP_PHP, MODE_IMPLIED},
	0x68: {OP_PLA, MODE_IMPLIED},
	0x28: {OP_PLP, MODE_IMPLIED},

	0x29: {OP_AND, MODE_IMMEDIATE},
	0x25: {OP_AND, MODE_ZP},
	0x35: {OP_AND, MODE_ZPX},
	0x2D: {OP_AND, MODE_ABSOLUTE},
	0x3D: {OP_AND, MODE_ABSOLUTEX},
	0x39: {OP_AND, MODE_ABSOLUTEY},
	0x21: {OP_AND, MODE_INDIRECTX},
	0x31: {OP_AND, MODE_INDIRECTY},

	0x49: {OP_EOR, MODE_IMMEDIATE},
	0x45: {OP_EOR, MODE_ZP},
	0x55: {OP_EOR, MODE_ZPX},
	0x4D: {OP_EOR, MODE_ABSOLUTE},
	0x5D: {OP_EOR, MODE_ABSOLUTEX},
	0x59: {OP_EOR, MODE_ABSOLUTEY},
	0x41: {OP_EOR, MODE_INDIRECTX},
	0x51: {OP_EOR, MODE_INDIRECTY},

	0x09: {OP_ORA, MODE_IMMEDIATE},
	0x05: {OP_ORA, MODE_ZP},
	0x15: {OP_ORA, MODE_ZPX},
	0x0D: {OP_ORA, MODE_ABSOLUTE},
	0x1D: {OP_ORA, MODE_ABSOLUTEX},
	0x19: {OP_ORA, MODE_ABSOLUTEY},
	0x01: {OP_ORA, MODE_INDIRECTX},
	0x11: {OP_ORA, MODE_INDIRECTY},

	0x24: {OP_BIT, MODE_ZP},
	0x2C: {OP_BIT, MODE_ABSOLUTE},

	0xF0: {OP_BEQ, MODE_RELATIVE},
	0xD0: {OP_BNE, MODE_RELATIVE},
	0xB0: {OP_BCS, MODE_RELATIVE},
	0x90: {OP_BCC, MODE_RELATIVE},
	0x30: {OP_BMI, MODE_RELATIVE},
	0x10: {OP_BPL, MODE_RELATIVE},
	0x50: {OP_BVC, MODE_RELATIVE},
	0x70: {OP_BVS, MODE_RELATIVE},

	0x18: {OP_CLC, MODE_IMPLIED},
	0x38: {OP_SEC, MODE_IMPLIED},
	0xD8: {OP_CLD, MODE_IMPLIED},
	0xF8: {OP_SED, MODE_IMPLIED},
	0x58: {OP_CLI, MODE_IMPLIED},
	0x78: {OP_SEI, MODE_IMPLIED},
	0xB8: {OP_CLV, MODE_IMPLIED},

	0x69: {OP_ADC, MODE_IMMEDIATE},
	0x65: {OP_ADC, MODE_ZP},
	0x75: {OP_ADC, MODE_ZPX},
	0x6D: {OP_ADC, MODE_ABSOLUTE},
	0x7D: {OP_ADC, MODE_ABSOLUTEX},
	0x79: {OP_ADC, MODE_ABSOLUTEY},
	0x61: {OP_ADC, MODE_INDIRECTX},
	0x71: {OP_ADC, MODE_INDIRECTY},

	0xE9: {OP_SBC, MODE_IMMEDIATE},
	0xE5: {OP_SBC, MODE_ZP},
	0xF5: {OP_SBC, MODE_ZPX},
	0xED: {OP_SBC, MODE_ABSOLUTE},
	0xFD: {OP_SBC, MODE_ABSOLUTEX},
	0xF9: {OP_SBC, MODE_ABSOLUTEY},
	0xE1: {OP_SBC, MODE_INDIRECTX},
	0xF1: {OP_SBC, MODE_INDIRECTY},

	0xC9: {OP_CMP, MODE_IMMEDIATE},
	0xC5: {OP_CMP, MODE_ZP},
	0xD5: {OP_CMP, MODE_ZPX},
	0xCD: {OP_CMP, MODE_ABSOLUTE},
	0xDD: {OP_CMP, MODE_ABSOLUTEX},
	0xD9: {OP_CMP, MODE_ABSOLUTEY},
	0xC1: {OP_CMP, MODE_INDIRECTX},
	0xD1: {OP_CMP, MODE_INDIRECTY},

	0xE0: {OP_CPX, MODE_IMMEDIATE},
	0xE4: {OP_CPX, MODE_ZP},
	0xEC: {OP_CPX, MODE_ABSOLUTE},

	0xC0: {OP_CPY, MODE_IMMEDIATE},
	0xC4: {OP_CPY, MODE_ZP},
	0xCC: {OP_CPY, MODE_ABSOLUTE},

	0x0A: {OP_ASL, MODE_ACCUMULATOR},
	0x06: {OP_ASL, MODE_ZP},
	0x16: {OP_ASL, MODE_ZPX},
	0x0E: {OP_ASL, MODE_ABSOLUTE},
	0x1E: {OP_ASL, MODE_ABSOLUTEX},

	0x4A: {OP_LSR, MODE_ACCUMULATOR},
	0x46: {OP_LSR, MODE_ZP},
	0x56: {OP_LSR, MODE_ZPX},
	0x4E: {OP_LSR, MODE_ABSOLUTE},
	0x5E: {OP_LSR, MODE_ABSOLUTEX},

	0x2A: {OP_ROL, MODE_ACCUMULATOR},
	0x26: {OP_ROL, MODE_ZP},
	0x36: {OP_ROL, MODE_ZPX},
	0x2E: {OP_ROL, MODE_ABSOLUTE},
	0x3E: {OP_ROL, MODE_ABSOLUTEX},

	0x6A: {OP_ROR, MODE_ACCUMULATOR},
	0x66: {OP_ROR, MODE_ZP},
	0x76: {OP_ROR, MODE_ZPX},
	0x6E: {OP_ROR, MODE_ABSOLUTE},
	0x7E: {OP_ROR, MODE_ABSOLUTEX},

	0x00: {OP_BRK, MODE_IMPLIED},
	0x40: {OP_RTI, MODE_IMPLIED},
	0xEA: {OP_NOP, MODE_IMPLIED},
}
