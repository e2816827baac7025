// Package memory defines the basic interfaces for working
// with a 6502 family memory map. Each emulated machine has its
// own mapping (including side effecting regions) so this is
// defined as an interface.
package memory

type Bank interface {
	// Read returns the data byte stored at addr.
	Read(addr uint16) uint8
	// Write updates addr with the new value. For ROM addresses this is simply a no-op without
	// any error.
	Write(addr uint16, val uint8)
	// ReadAddr returns the little endian 16 bit value stored at addr (low byte)
	// and addr+1 (high byte). Bytes straddling regions each come from their own region.
	ReadAddr(addr uint16) uint16
	// WriteAddr stores val little endian at addr/addr+1 with the same per region
	// rules as Write.
	WriteAddr(addr uint16, val uint16)
	// PowerOn performs power on reset of the memory. This is implementation specific as to
	// whether it's randomized or preset to all zeros.
	PowerOn()
}
