// Package irq defines the basic interfaces for working
// with a 6502 family interrupt. A generator of interrupts (host
// event pump, peripherals) implements Sender and the machine polls
// it, converting edges into delivery calls on the CPU without
// cross coupling component logic.
package irq

type Sender interface {
	// Raised indicates whether the interrupt is currently held high.
	Raised() bool
}

type Receiver interface {
	// Install takes the given sender and stores it for later checks in appropriate logic.
	Install(s Sender)
}
