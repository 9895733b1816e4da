package custom

// windowSize is the number of word-aligned offsets in the custom register
// window (0x000-0x1FE), per spec.md §6: "0xDFF000-0xDFFFFF custom register
// window", a 256-word (512-byte; the chip only decodes the low 9 bits)
// range.
const windowSize = 0x100

// Store is a flat backing array for the custom register file: every
// register's last-written value, readable and writable by raw offset. It
// implements memory.CustomRegisters.
type Store struct {
	words [windowSize]uint16
}

// PeekCustom reads a register's current value directly (no side effects:
// registers with read side effects, like CLXDAT or the Paula/CIA-backed
// ones, are intercepted by the Amiga aggregate before reaching Store).
func (s *Store) PeekCustom(offset Offset) uint16 {
	idx := (offset / 2) % windowSize
	return s.words[idx]
}

// PokeCustom writes a register's value directly, bypassing the
// register-change delay pipeline (used for debugger pokes, snapshot
// restore, and the copper's own MOVE, which already executes on the
// correct cycle).
func (s *Store) PokeCustom(offset Offset, value uint16) {
	idx := (offset / 2) % windowSize
	s.words[idx] = value
}

// PokeCustomImmediate is the same write as PokeCustom: Store has no delay
// pipeline to bypass.
func (s *Store) PokeCustomImmediate(offset Offset, value uint16) { s.PokeCustom(offset, value) }

// Reset clears every register to its power-on value of zero.
func (s *Store) Reset() { s.words = [windowSize]uint16{} }
