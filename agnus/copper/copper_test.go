package copper_test

import (
	"testing"

	"github.com/pixelforge/amigacore/agnus/copper"
	"github.com/pixelforge/amigacore/test"
)

type fakeMem struct {
	words map[uint32]uint16
	regs  map[uint16]uint16
}

func newFakeMem() *fakeMem {
	return &fakeMem{words: map[uint32]uint16{}, regs: map[uint16]uint16{}}
}

func (m *fakeMem) ReadWord(addr uint32) uint16        { return m.words[addr] }
func (m *fakeMem) WriteReg(offset uint16, v uint16)    { m.regs[offset] = v }
func (m *fakeMem) BlitterFinished() bool              { return true }

type fakeBeam struct{ v, h int }

func (b *fakeBeam) VH() (int, int) { return b.v, b.h }

func program(mem *fakeMem, base uint32, words ...uint16) {
	for i, w := range words {
		mem.words[base+uint32(i*2)] = w
	}
}

func TestMoveThenWaitScenario(t *testing.T) {
	mem := newFakeMem()
	beam := &fakeBeam{}
	cop := copper.New(mem, beam)
	cop.Dangerous = true

	// MOVE $100,$1200 ; WAIT (200,0x09),(0xFF,0xFE) ; MOVE $180,$0F00
	program(mem, 0,
		0x0100, 0x1200, // MOVE BPLCON0,0x1200
		(200<<8)|0x09|1, (0xFF<<8)|0xFE, // WAIT v=200 h=0x08(masked even) vm=0xff hm=0xfe, bit0=1
		0x0180, 0x0F00, // MOVE COLOR00,0x0F00
	)

	cop.Cop1LC = 0
	cop.VBlank()

	// run two fetch/decode steps to execute the MOVE
	cop.Step()
	cop.Step()
	test.Equate(t, mem.regs[0x100], uint16(0x1200))

	// fetch the WAIT instruction
	cop.Step()
	cop.Step()
	test.ExpectSuccess(t, cop.Idle())

	// beam not yet at the target: stepping should not advance
	beam.v, beam.h = 100, 0
	cop.Step()
	test.ExpectSuccess(t, cop.Idle())

	// beam reaches the target position
	beam.v, beam.h = 200, 0x0A
	cop.Step()
	test.ExpectFailure(t, cop.Idle())

	// execute the final MOVE
	cop.Step()
	cop.Step()
	test.Equate(t, mem.regs[0x180], uint16(0x0F00))
}

func TestDangerousClampsLowRegisters(t *testing.T) {
	mem := newFakeMem()
	beam := &fakeBeam{}
	cop := copper.New(mem, beam)
	cop.Dangerous = false

	program(mem, 0, 0x0020, 0xABCD) // destination below 0x80
	cop.Cop1LC = 0
	cop.VBlank()
	cop.Step()
	cop.Step()

	_, wroteLow := mem.regs[0x0020]
	test.ExpectFailure(t, wroteLow)
	test.Equate(t, mem.regs[0x00A0], uint16(0xABCD))
}
