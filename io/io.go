// Package io defines the basic interfaces for working
// with an 8 bit I/O port. Implementors (such as the interface
// adapter) sample the input callback (if provided) whenever the
// port register is read so host state shows up without the host
// having to poke the latch directly.
package io

// Port8 defines an 8 bit I/O port input source.
type Port8 interface {
	// Input returns the current value being presented on the port pins.
	Input() uint8
}
