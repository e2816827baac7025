// Package disassemble implements a disassembler for the platform's opcodes.
package disassemble

import (
	"fmt"

	"github.com/phosphor65/phosphor/memory"
	"github.com/phosphor65/phosphor/opcodes"
)

// Step will take the given PC value and disassemble the instruction at that
// location returning a string for the disassembly and the bytes forward the
// PC should move to get to the next instruction. This does not interpret the
// instructions so LDA, JMP, LDA in memory will disassemble as that sequence
// and not follow the JMP.
// This always reads 2 bytes past the current PC so make sure those addresses
// are valid.
func Step(pc uint16, r memory.Bank) (string, int) {
	o := r.Read(pc)
	// All instructions generally read a 2nd byte so just do that now.
	pc1 := r.Read(pc + 1)
	// Setup a 16 bit value so it can be added to the PC for branch offsets.
	// Sign extend it as needed.
	pc116 := uint16(int16(int8(pc1)))
	// And preread the 2nd byte for 3 byte instructions.
	pc2 := r.Read(pc + 2)

	od := opcodes.Lookup(o)
	op := od.Op.String()

	count := 2 // Default byte count, adjusted below.
	out := fmt.Sprintf("%.4X %.2X ", pc, o)
	switch od.Mode {
	case opcodes.MODE_IMMEDIATE:
		out += fmt.Sprintf("%.2X      %s #%.2X       ", pc1, op, pc1)
	case opcodes.MODE_ZP:
		out += fmt.Sprintf("%.2X      %s %.2X        ", pc1, op, pc1)
	case opcodes.MODE_ZPX:
		out += fmt.Sprintf("%.2X      %s %.2X,X      ", pc1, op, pc1)
	case opcodes.MODE_ZPY:
		out += fmt.Sprintf("%.2X      %s %.2X,Y      ", pc1, op, pc1)
	case opcodes.MODE_INDIRECTX:
		out += fmt.Sprintf("%.2X      %s (%.2X,X)    ", pc1, op, pc1)
	case opcodes.MODE_INDIRECTY:
		out += fmt.Sprintf("%.2X      %s (%.2X),Y    ", pc1, op, pc1)
	case opcodes.MODE_ABSOLUTE:
		out += fmt.Sprintf("%.2X %.2X   %s %.2X%.2X      ", pc1, pc2, op, pc2, pc1)
		count++
	case opcodes.MODE_ABSOLUTEX:
		out += fmt.Sprintf("%.2X %.2X   %s %.2X%.2X,X    ", pc1, pc2, op, pc2, pc1)
		count++
	case opcodes.MODE_ABSOLUTEY:
		out += fmt.Sprintf("%.2X %.2X   %s %.2X%.2X,Y    ", pc1, pc2, op, pc2, pc1)
		count++
	case opcodes.MODE_INDIRECT:
		out += fmt.Sprintf("%.2X %.2X   %s (%.2X%.2X)    ", pc1, pc2, op, pc2, pc1)
		count++
	case opcodes.MODE_RELATIVE:
		out += fmt.Sprintf("%.2X      %s %.2X (%.4X) ", pc1, op, pc1, pc+pc116+2)
	case opcodes.MODE_IMPLIED, opcodes.MODE_ACCUMULATOR:
		out += fmt.Sprintf("        %s           ", op)
		count--
	default:
		// Undecodable bytes execute as one byte no-ops.
		out += fmt.Sprintf("        %s           ", op)
		count--
	}
	return out, count
}
