// Package memory implements the Amiga's flat address space: Chip/Slow/Fast
// RAM backing arrays, the custom register window, and the decode/dispatch
// that routes a CPU or Agnus access to the right one, per spec.md §6.
package memory

import (
	"github.com/pixelforge/amigacore/errors"
	"github.com/pixelforge/amigacore/hardware/memory/bus"
	"github.com/pixelforge/amigacore/hardware/memory/custom"
	"github.com/pixelforge/amigacore/hardware/memory/memorymap"
)

// CustomRegisters is the subset of behaviour the memory package needs from
// the custom chip register file: PokeCustom is the CPU-facing write, which
// for some registers records the side effect on a register-change queue
// rather than applying it inline, per spec.md §4.2; PokeCustomImmediate
// bypasses that queue (the copper's own MOVE, Agnus's own internal
// bookkeeping, debugger/snapshot pokes). The queue itself is owned by the
// register file's implementation (amiga.RegisterFile), not Memory.
type CustomRegisters interface {
	PeekCustom(offset custom.Offset) uint16
	PokeCustom(offset custom.Offset, value uint16)
	PokeCustomImmediate(offset custom.Offset, value uint16)
}

// CIARegisters is the register-file surface of one 8520: 16 byte registers
// selected by address lines A8-A11, per spec.md §4.8. CIA-A and CIA-B each
// implement this independently; Memory picks which one a given address
// targets (simplified: real hardware's chip-select decode also depends on
// the data strobe being on the upper or lower byte lane, not modelled here).
type CIARegisters interface {
	ReadCIAReg(reg int) uint8
	WriteCIAReg(reg int, value uint8)
}

// Memory is the Amiga's flat address space.
type Memory struct {
	Map *memorymap.Map

	Chip []uint16 // word-addressed; Chip RAM is always present and even-sized
	Slow []uint16
	Fast []uint16

	Unmapped memorymap.UnmappedValue

	Custom CustomRegisters
	CIAA   CIARegisters
	CIAB   CIARegisters
}

// ciaSelect picks CIA-A or CIA-B and the 0-15 register index from a zone
// offset within the 0xBF0000-0xBFFFFF window.
func ciaSelect(offset uint32) (reg int, selectsA bool) {
	reg = int(offset>>8) & 0xF
	selectsA = offset&0x1000 != 0
	return reg, selectsA
}

// New allocates a Memory with the given Chip/Slow/Fast RAM sizes in
// kilobytes and bank map.
func New(bank memorymap.BankMap, chipKB, slowKB, fastKB int) *Memory {
	return &Memory{
		Map:  memorymap.NewMap(bank, chipKB),
		Chip: make([]uint16, chipKB*1024/2),
		Slow: make([]uint16, slowKB*1024/2),
		Fast: make([]uint16, fastKB*1024/2),
	}
}

func (m *Memory) unmappedWord() uint16 {
	switch m.Unmapped {
	case memorymap.AllOne:
		return 0xFFFF
	default:
		return 0x0000
	}
}

// ReadWord reads one big-endian 16-bit word at a word-aligned address, per
// spec.md §9: "All Amiga registers are 16-bit and word-aligned at even
// addresses."
func (m *Memory) ReadWord(address uint32) uint16 {
	zone, offset := m.Map.Lookup(address & ^uint32(1))
	idx := offset / 2
	switch zone {
	case memorymap.ChipRAM:
		if int(idx) < len(m.Chip) {
			return m.Chip[idx]
		}
	case memorymap.SlowRAM:
		if int(idx) < len(m.Slow) {
			return m.Slow[idx]
		}
	case memorymap.FastRAM:
		if int(idx) < len(m.Fast) {
			return m.Fast[idx]
		}
	case memorymap.CustomRegs:
		if m.Custom != nil {
			return m.Custom.PeekCustom(custom.Offset(offset))
		}
	}
	return m.unmappedWord()
}

// WriteWord writes one word, used by Agnus/the blitter/copper for direct
// Chip RAM access (never the custom register window: register writes go
// through WriteReg instead).
func (m *Memory) WriteWord(address uint32, value uint16) {
	zone, offset := m.Map.Lookup(address & ^uint32(1))
	idx := offset / 2
	switch zone {
	case memorymap.ChipRAM:
		if int(idx) < len(m.Chip) {
			m.Chip[idx] = value
		}
	case memorymap.SlowRAM:
		if int(idx) < len(m.Slow) {
			m.Slow[idx] = value
		}
	case memorymap.FastRAM:
		if int(idx) < len(m.Fast) {
			m.Fast[idx] = value
		}
	}
}

// WriteReg implements agnus.Mem / copper.Bus's register write: a direct,
// undelayed poke, used by the copper (which already executes its MOVE on
// the correct cycle) and by Agnus's own internal bookkeeping.
func (m *Memory) WriteReg(offset uint16, value uint16) {
	if m.Custom != nil {
		m.Custom.PokeCustomImmediate(custom.Offset(offset), value)
	}
}

// Peek8/Poke8 implement bus.AddressBus for byte-granular CPU access.
func (m *Memory) Peek8(address uint32) (uint8, error) {
	zone, offset := m.Map.Lookup(address)
	if zone == memorymap.CIARegs {
		reg, selectsA := ciaSelect(offset)
		if selectsA && m.CIAA != nil {
			return m.CIAA.ReadCIAReg(reg), nil
		}
		if !selectsA && m.CIAB != nil {
			return m.CIAB.ReadCIAReg(reg), nil
		}
		return 0, nil
	}

	word := m.ReadWord(address)
	if address&1 != 0 {
		return uint8(word), nil
	}
	return uint8(word >> 8), nil
}

func (m *Memory) Poke8(address uint32, value uint8) error {
	zone, offset := m.Map.Lookup(address)
	if zone == memorymap.CIARegs {
		reg, selectsA := ciaSelect(offset)
		if selectsA && m.CIAA != nil {
			m.CIAA.WriteCIAReg(reg, value)
		} else if !selectsA && m.CIAB != nil {
			m.CIAB.WriteCIAReg(reg, value)
		}
		return nil
	}

	word := m.ReadWord(address)
	if address&1 != 0 {
		word = word&0xFF00 | uint16(value)
	} else {
		word = word&0x00FF | uint16(value)<<8
	}
	m.WriteWord(address, word)
	return nil
}

func (m *Memory) Peek16(address uint32) (uint16, error) {
	return m.ReadWord(address), nil
}

func (m *Memory) Poke16(address uint32, value uint16) error {
	m.WriteWord(address, value)
	return nil
}

var _ bus.AddressBus = (*Memory)(nil)

// Peek/Poke implement bus.DebugBus: the same byte-granular access as
// Peek8/Poke8, named distinctly so a debugger or snapshot restorer's call
// sites read as deliberately out-of-band rather than a CPU/Agnus access.
func (m *Memory) Peek(address uint32) (uint8, error) { return m.Peek8(address) }
func (m *Memory) Poke(address uint32, value uint8) error { return m.Poke8(address, value) }

var _ bus.DebugBus = (*Memory)(nil)

// LoadKickstart copies a ROM image into the Kickstart zone's backing
// store, failing with errors.RomMissing semantics left to the caller
// (Memory itself only refuses an oversized image).
func (m *Memory) LoadKickstart(words []uint16, dst []uint16) error {
	if len(words) > len(dst) {
		return errors.Errorf(errors.RomMissingMsg, "image larger than Kickstart window")
	}
	copy(dst, words)
	return nil
}

// RegisterName returns the mnemonic for a custom register offset, for
// logging and the debugger.
func RegisterName(offset uint32) string { return custom.Name(custom.Offset(offset)) }
