package memorymap_test

import (
	"testing"

	"github.com/pixelforge/amigacore/hardware/memory/memorymap"
	"github.com/pixelforge/amigacore/test"
)

func TestChipRAMZoneRespectsConfiguredSize(t *testing.T) {
	m := memorymap.NewMap(memorymap.A500, 512)
	zone, offset := m.Lookup(0x1000)
	test.Equate(t, zone, memorymap.ChipRAM)
	test.Equate(t, offset, uint32(0x1000))

	zone, _ = m.Lookup(0x90000)
	test.Equate(t, zone, memorymap.Unmapped)
}

func TestCustomRegisterWindowIsDFF000(t *testing.T) {
	m := memorymap.NewMap(memorymap.A500, 512)
	zone, offset := m.Lookup(0xDFF100)
	test.Equate(t, zone, memorymap.CustomRegs)
	test.Equate(t, offset, uint32(0x100))
}

func TestCIAWindowIsBF0000(t *testing.T) {
	m := memorymap.NewMap(memorymap.A500, 512)
	zone, offset := m.Lookup(0xBF1D00)
	test.Equate(t, zone, memorymap.CIARegs)
	test.Equate(t, offset, uint32(0x1D00))
}

func TestA1000HasNoRTCWindowMappedAsUnmapped(t *testing.T) {
	m := memorymap.NewMap(memorymap.A1000, 512)
	zone, _ := m.Lookup(0xDC0000)
	test.Equate(t, zone, memorymap.Unmapped)
}
