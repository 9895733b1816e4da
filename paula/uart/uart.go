// Package uart implements Paula's serial port: a 16-bit transmit shift
// register, a 16-bit receive buffer, and TXD/RXD bit-timed clocking, per
// spec.md §4.7.
package uart

// Peer is anything a UART can be wired to: a loopback, a null-modem
// partner, or a retro-shell console. It receives one bit per TXD tick and
// supplies one bit per RXD tick.
type Peer interface {
	RecvBit(bit bool)
	SendBit() bool
}

// UART models one Paula serial port.
type UART struct {
	Serdat  uint16 // transmit shift register contents (9 or 8+stop bits)
	Serper  uint16 // baud rate divisor + 9-bit-mode flag (bit 15)

	txShift   uint16
	txBits    int
	txBusy    bool

	rxShift  uint16
	rxBits   int
	RxBuffer uint16
	RxReady  bool

	Peer Peer
}

func (u *UART) bitsPerWord() int {
	if u.Serper&0x8000 != 0 {
		return 9
	}
	return 8
}

// WriteSerdat loads a new word into the transmit shift register and starts
// shifting it out, per spec.md §4.7's "16-bit shift register".
func (u *UART) WriteSerdat(value uint16) {
	u.Serdat = value
	u.txShift = value
	u.txBits = u.bitsPerWord()
	u.txBusy = true
}

// TickTXD clocks one bit out of the transmit shift register to Peer, at
// the rate Serper selects (the caller is responsible for timing ticks at
// that rate).
func (u *UART) TickTXD() {
	if !u.txBusy {
		return
	}
	bit := u.txShift&(1<<uint(u.bitsPerWord()-1)) != 0
	u.txShift <<= 1
	u.txBits--
	if u.Peer != nil {
		u.Peer.RecvBit(bit)
	}
	if u.txBits <= 0 {
		u.txBusy = false
	}
}

// TickRXD clocks one bit in from Peer into the receive shift register;
// once a full word has been assembled it latches into RxBuffer and sets
// RxReady.
func (u *UART) TickRXD() {
	if u.Peer == nil {
		return
	}
	bit := u.Peer.SendBit()
	u.rxShift <<= 1
	if bit {
		u.rxShift |= 1
	}
	u.rxBits++
	if u.rxBits >= u.bitsPerWord() {
		u.RxBuffer = u.rxShift
		u.RxReady = true
		u.rxShift = 0
		u.rxBits = 0
	}
}

// ReadRxBuffer returns the received word and clears the ready flag.
func (u *UART) ReadRxBuffer() uint16 {
	u.RxReady = false
	return u.RxBuffer
}

// TXBusy reports whether a transmit shift is still in progress.
func (u *UART) TXBusy() bool { return u.txBusy }

// Reset restores power-on state, preserving the Peer wiring.
func (u *UART) Reset() {
	peer := u.Peer
	*u = UART{Peer: peer}
}
