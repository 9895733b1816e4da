// Package sequencer builds the per-line display-data-fetch event tables
// described in spec.md §4.3: which bitplane DMA (if any) happens at each
// horizontal DMA-cycle column, and which refresh/disk/audio/sprite DMA
// happens alongside it. Agnus's Execute loop looks the current column up in
// these tables every cycle rather than recomputing the DDF state machine on
// the fly.
package sequencer

// BplEvent is one entry of the per-line bitplane-DMA table. It is either
// EventNone, or a fetch-unit event (which bitplane, which resolution,
// optionally "this is the last fetch of the line, apply the modulo") OR'd
// with draw markers telling Denise to push its shift registers.
type BplEvent uint16

// Draw marker bits, OR'd onto a fetch event or carried alone on a line with
// no bitplane DMA (spec.md §4.3's "fast path").
const (
	DrawOdd  BplEvent = 1 << 0
	DrawEven BplEvent = 1 << 1
)

// Resolution selects how many DMA cycles a fetch unit spans.
type Resolution int

// The three bitplane resolutions, selected by BPLCON0's hires/shres bits.
const (
	Lores Resolution = iota // 1 fetch unit = 8 DMA cycles
	Hires                   // 1 fetch unit = 4 DMA cycles
	Shres                   // 1 fetch unit = 2 DMA cycles (ECS Denise only)
)

// FetchUnitCycles returns the number of DMA cycles per fetch unit.
func (r Resolution) FetchUnitCycles() int {
	switch r {
	case Hires:
		return 4
	case Shres:
		return 2
	default:
		return 8
	}
}

const planeBits = 0x3F  // 6 bitplane flags packed in bits 2..7 for plane 0..5
const planeShift = 2
const modFlag BplEvent = 1 << 8

// EventNone is the zero value: no bitplane DMA and no draw marker.
const EventNone BplEvent = 0

// PlaneEvent builds a fetch-unit event for the given plane index (0..5),
// optionally marking it as the fetch unit that should add the line modulo
// (the last fetch of a disabled-for-this-plane fetch unit sequence).
func PlaneEvent(plane int, lastOfLine bool) BplEvent {
	e := BplEvent(1<<uint(plane)) << planeShift
	if lastOfLine {
		e |= modFlag
	}
	return e
}

// Plane returns the plane index (0..5) encoded in e, and whether e encodes
// a fetch at all.
func (e BplEvent) Plane() (plane int, ok bool) {
	bits := (e >> planeShift) & planeBits
	if bits == 0 {
		return 0, false
	}
	for i := 0; i < 6; i++ {
		if bits&(1<<uint(i)) != 0 {
			return i, true
		}
	}
	return 0, false
}

// IsLastFetchOfLine reports whether the modulo should be added after this
// fetch.
func (e BplEvent) IsLastFetchOfLine() bool { return e&modFlag != 0 }

// WithDraw ORs a draw marker onto e.
func (e BplEvent) WithDraw(odd, even bool) BplEvent {
	if odd {
		e |= DrawOdd
	}
	if even {
		e |= DrawEven
	}
	return e
}

// HasDrawOdd / HasDrawEven report whether e carries the corresponding draw
// marker.
func (e BplEvent) HasDrawOdd() bool  { return e&DrawOdd != 0 }
func (e BplEvent) HasDrawEven() bool { return e&DrawEven != 0 }
