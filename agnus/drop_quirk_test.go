package agnus

import (
	"testing"

	"github.com/pixelforge/amigacore/agnus/owner"
	"github.com/pixelforge/amigacore/agnus/sequencer"
	"github.com/pixelforge/amigacore/beam"
	"github.com/pixelforge/amigacore/test"
)

type dropQuirkMem struct{}

func (dropQuirkMem) ReadWord(addr uint32) uint16      { return 0 }
func (dropQuirkMem) WriteWord(addr uint32, v uint16)  {}
func (dropQuirkMem) WriteReg(offset uint16, v uint16) {}

type dropQuirkDenise struct{}

func (dropQuirkDenise) LatchBPLDAT(plane int, value uint16) {}

func newDropQuirkAgnus() *Agnus {
	a := New(dropQuirkMem{}, dropQuirkDenise{}, beam.PAL)
	a.DMACON = 1 << dmaconDMAEN
	a.lineBuilt = true // skip buildLine; this test wires the line tables directly
	return a
}

// TestBitplaneWinsSameColumnSpriteRequest confirms a bitplane fetch claims
// the cycle over a same-column sprite request, and that the request is
// recorded as dropped rather than silently lost.
func TestBitplaneWinsSameColumnSpriteRequest(t *testing.T) {
	a := newDropQuirkAgnus()
	a.line.Bpl[10] = sequencer.PlaneEvent(2, false)
	a.line.Das[10] = sequencer.DasSprite.WithIndex(3)

	got := a.decideOwner(10)
	test.Equate(t, got.Kind, owner.Bitplane)
	test.Equate(t, got.Index, 2)
	test.Equate(t, got.HasDroppedSprite, true)
	test.Equate(t, got.DroppedSprite, 3)
}

// TestPointerDropQuirkBlocksFollowingColumn confirms the conservative
// boundary also drops a sprite request scheduled one column after a
// bitplane fetch, when PointerDropQuirk is enabled.
func TestPointerDropQuirkBlocksFollowingColumn(t *testing.T) {
	a := newDropQuirkAgnus()
	a.PointerDropQuirk = true
	a.line.Bpl[10] = sequencer.PlaneEvent(1, false)
	a.line.Das[11] = sequencer.DasSprite.WithIndex(5)

	got := a.decideOwner(10)
	test.Equate(t, got.HasDroppedSprite, true)
	test.Equate(t, got.DroppedSprite, 5)
}

// TestPointerDropQuirkDisabledIgnoresFollowingColumn confirms disabling the
// quirk narrows the block to the exact column only.
func TestPointerDropQuirkDisabledIgnoresFollowingColumn(t *testing.T) {
	a := newDropQuirkAgnus()
	a.PointerDropQuirk = false
	a.line.Bpl[10] = sequencer.PlaneEvent(1, false)
	a.line.Das[11] = sequencer.DasSprite.WithIndex(5)

	got := a.decideOwner(10)
	test.Equate(t, got.HasDroppedSprite, false)
}

// TestNoSpriteRequestNoDrop confirms a plain bitplane fetch with no
// competing sprite request isn't marked as having dropped anything.
func TestNoSpriteRequestNoDrop(t *testing.T) {
	a := newDropQuirkAgnus()
	a.line.Bpl[10] = sequencer.PlaneEvent(0, false)

	got := a.decideOwner(10)
	test.Equate(t, got.HasDroppedSprite, false)
}
