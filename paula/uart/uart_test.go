package uart_test

import (
	"testing"

	"github.com/pixelforge/amigacore/paula/uart"
	"github.com/pixelforge/amigacore/test"
)

type loopback struct {
	bits []bool
	pos  int
}

func (l *loopback) RecvBit(bit bool) { l.bits = append(l.bits, bit) }
func (l *loopback) SendBit() bool {
	if l.pos >= len(l.bits) {
		return false
	}
	b := l.bits[l.pos]
	l.pos++
	return b
}

func TestTransmitThenReceiveLoopback(t *testing.T) {
	lb := &loopback{}
	tx := &uart.UART{Peer: lb}
	rx := &uart.UART{Peer: lb}

	tx.WriteSerdat(0xA5)
	for tx.TXBusy() {
		tx.TickTXD()
	}

	for i := 0; i < 8; i++ {
		rx.TickRXD()
	}

	test.ExpectSuccess(t, rx.RxReady)
	test.Equate(t, rx.ReadRxBuffer(), uint16(0xA5))
}

func TestReadClearsReady(t *testing.T) {
	lb := &loopback{}
	lb.bits = []bool{true, false, true, false, true, false, true, false}
	rx := &uart.UART{Peer: lb}
	for i := 0; i < 8; i++ {
		rx.TickRXD()
	}
	test.ExpectSuccess(t, rx.RxReady)
	rx.ReadRxBuffer()
	test.ExpectFailure(t, rx.RxReady)
}
