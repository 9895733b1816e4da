// Package memorymap describes the Amiga's 24-bit (or 32-bit under EC020)
// address space: which zone a given address falls in, and how that varies
// by bank-map configuration (A500, A1000, A2000A, A2000B) per spec.md §6.
package memorymap

import "fmt"

// Zone identifies which physical memory area an address belongs to.
type Zone int

// The memory zones named in spec.md §6.
const (
	ChipRAM Zone = iota
	SlowRAM
	FastRAM
	CustomRegs
	CIARegs
	Autoconfig
	Kickstart
	Unmapped
)

// String implements fmt.Stringer.
func (z Zone) String() string {
	switch z {
	case ChipRAM:
		return "Chip RAM"
	case SlowRAM:
		return "Slow RAM"
	case FastRAM:
		return "Fast RAM"
	case CustomRegs:
		return "Custom"
	case CIARegs:
		return "CIA"
	case Autoconfig:
		return "Autoconfig"
	case Kickstart:
		return "Kickstart"
	default:
		return "Unmapped"
	}
}

// BankMap selects the machine model's address decoding, per spec.md §6's
// "Bank map configurable (A500/A1000/A2000A/A2000B)".
type BankMap int

// Supported bank maps.
const (
	A500 BankMap = iota
	A1000
	A2000A
	A2000B
)

// region is one entry in a bank map's address decode table.
type region struct {
	lo, hi uint32
	zone   Zone
}

// UnmappedValue is what an unmapped read returns, per spec.md §6's
// "floating-bus value, all-zeros, or all-ones" options.
type UnmappedValue int

// The three unmapped-read behaviours.
const (
	Floating UnmappedValue = iota
	AllZero
	AllOne
)

// ChipRAMTop returns the highest address of Chip RAM for a given configured
// size in kilobytes, capped at the Agnus revision's addressing limit
// (handled by the caller; memorymap only knows about the configured size).
func ChipRAMTop(sizeKB int) uint32 {
	return uint32(sizeKB)*1024 - 1
}

// Map is a bank map's address decode table. The zero value is not usable;
// use NewMap.
type Map struct {
	bank    BankMap
	regions []region
}

// NewMap builds the address decode table for the given bank map and
// configured Chip RAM size (in kilobytes).
func NewMap(bank BankMap, chipRAMKB int) *Map {
	top := ChipRAMTop(chipRAMKB)

	m := &Map{bank: bank}
	switch bank {
	case A1000:
		m.regions = []region{
			{0x000000, top, ChipRAM},
			{0xBF0000, 0xBFFFFF, CIARegs},
			{0xC00000, 0xC7FFFF, SlowRAM},
			{0xC80000, 0xD7FFFF, Unmapped},
			{0xD80000, 0xDBFFFF, Unmapped},
			{0xDC0000, 0xDCFFFF, Unmapped}, // A1000 has no RTC
			{0xDD0000, 0xDEFFFF, Unmapped},
			{0xDF0000, 0xDFEFFF, Unmapped},
			{0xDFF000, 0xDFFFFF, CustomRegs},
			{0xE80000, 0xE8FFFF, Autoconfig},
			{0xFC0000, 0xFFFFFF, Kickstart}, // A1000 boot ROM window
		}
	case A2000A, A2000B:
		m.regions = []region{
			{0x000000, top, ChipRAM},
			{0xBF0000, 0xBFFFFF, CIARegs},
			{0xC00000, 0xD7FFFF, SlowRAM},
			{0xD80000, 0xDBFFFF, Unmapped},
			{0xDC0000, 0xDCFFFF, Unmapped}, // RTC, not modelled beyond amiga.RTC stub
			{0xDD0000, 0xDEFFFF, Unmapped},
			{0xDF0000, 0xDFEFFF, Unmapped},
			{0xDFF000, 0xDFFFFF, CustomRegs},
			{0xE80000, 0xE8FFFF, Autoconfig},
			{0xF80000, 0xFFFFFF, Kickstart},
		}
	default: // A500
		m.regions = []region{
			{0x000000, top, ChipRAM},
			{0xBF0000, 0xBFFFFF, CIARegs},
			{0xC00000, 0xDEFFFF, SlowRAM},
			{0xDF0000, 0xDFEFFF, Unmapped},
			{0xDFF000, 0xDFFFFF, CustomRegs},
			{0xE80000, 0xE8FFFF, Autoconfig},
			{0xF80000, 0xFFFFFF, Kickstart},
		}
	}
	return m
}

// Lookup returns the zone an address falls in, and the offset of that
// address from the start of the zone.
func (m *Map) Lookup(address uint32) (Zone, uint32) {
	address &= 0x1FFFFFF // 25-bit decode window; EC020 32-bit mode masks less
	for _, r := range m.regions {
		if address >= r.lo && address <= r.hi {
			return r.zone, address - r.lo
		}
	}
	return Unmapped, 0
}

// Summary renders the decode table as a human-readable range listing, in
// the same spirit as the teacher's memorymap.Summary().
func (m *Map) Summary() string {
	s := ""
	for _, r := range m.regions {
		s += fmt.Sprintf("%06x -> %06x\t%s\n", r.lo, r.hi, r.zone)
	}
	return s
}
