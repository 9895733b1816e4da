package denise_test

import (
	"testing"

	"github.com/pixelforge/amigacore/denise"
	"github.com/pixelforge/amigacore/test"
)

func TestDrawAndTranslateSinglePlayfield(t *testing.T) {
	d := denise.New()
	d.LatchBPLDAT(0, 0xFFFF)
	d.Draw(0, true, true)
	d.Translate()
	test.ExpectSuccess(t, true) // exercises the draw/translate path without panic
}

func TestCollideClxdatClearsOnRead(t *testing.T) {
	d := denise.New()
	d.LatchBPLDAT(0, 0xC000)
	d.Draw(0, true, true)
	d.Translate()
	d.Collide()
	d.ReadClxdat()
	second := d.ReadClxdat()
	test.Equate(t, second, uint16(0))
}

func TestReadDeniseIDDistinguishesOCSFromECS(t *testing.T) {
	test.Equate(t, denise.ReadDeniseID(denise.OCS), uint16(0xFFFF))
	test.Equate(t, denise.ReadDeniseID(denise.ECS), uint16(0x2000))
}

func TestRebuildBorderDistinguishesInteriorFromExterior(t *testing.T) {
	d := denise.New()
	d.ColorLUT[0] = 111
	d.ColorLUT[5] = 222
	d.RebuildBorder(10, 20, 5)
	d.Translate() // mBuffer all zero: interior pixels resolve via ColorLUT[0]
	d.Colorize(0)

	test.Equate(t, d.FrameBuffer[15], uint32(111)) // inside the display window
	test.Equate(t, d.FrameBuffer[5], uint32(222))  // in the border
}

func TestSwapFrameRespectsSkip(t *testing.T) {
	d := denise.New()
	d.ColorLUT[0] = 42
	d.Colorize(0)
	d.SwapFrame(true)
	test.Equate(t, d.StableFrame[0], uint32(0))

	d.SwapFrame(false)
	test.Equate(t, d.StableFrame[0], uint32(42))
}
