package memory_test

import (
	"testing"

	"github.com/pixelforge/amigacore/cia"
	"github.com/pixelforge/amigacore/hardware/memory"
	"github.com/pixelforge/amigacore/hardware/memory/custom"
	"github.com/pixelforge/amigacore/hardware/memory/memorymap"
	"github.com/pixelforge/amigacore/test"
)

func TestChipRAMReadWriteRoundTrip(t *testing.T) {
	m := memory.New(memorymap.A500, 512, 0, 0)
	m.WriteWord(0x1000, 0xABCD)
	test.Equate(t, m.ReadWord(0x1000), uint16(0xABCD))
}

func TestCustomRegisterWindowRoutesToStore(t *testing.T) {
	m := memory.New(memorymap.A500, 512, 0, 0)
	store := &custom.Store{}
	m.Custom = store

	m.WriteReg(uint16(custom.BPLCON0), 0x1200)
	test.Equate(t, m.ReadWord(0xDFF100), uint16(0x1200))
}

func TestPoke8AffectsOnlyOneByte(t *testing.T) {
	m := memory.New(memorymap.A500, 512, 0, 0)
	m.WriteWord(0x2000, 0xAABB)
	m.Poke8(0x2001, 0xFF)
	test.Equate(t, m.ReadWord(0x2000), uint16(0xAAFF))
}

func TestUnmappedReadDefaultsToZero(t *testing.T) {
	m := memory.New(memorymap.A500, 512, 0, 0)
	test.Equate(t, m.ReadWord(0x900000), uint16(0))
}

func TestCIARegisterWriteRoutesToCorrectChip(t *testing.T) {
	m := memory.New(memorymap.A500, 512, 0, 0)
	ciaa := &cia.CIA{Which: cia.A}
	ciab := &cia.CIA{Which: cia.B}
	m.CIAA = ciaa
	m.CIAB = ciab

	test.ExpectSuccess(t, m.Poke8(0xBF1000, 0x42)) // bit12 set -> CIA-A, reg 0 (PRA)
	test.Equate(t, ciaa.PRA, uint8(0x42))
	test.Equate(t, ciab.PRA, uint8(0))

	test.ExpectSuccess(t, m.Poke8(0xBF0000, 0x24)) // bit12 clear -> CIA-B, reg 0 (PRA)
	test.Equate(t, ciab.PRA, uint8(0x24))
}
