package beam_test

import (
	"testing"

	"github.com/pixelforge/amigacore/beam"
	"github.com/pixelforge/amigacore/test"
)

func TestEqual(t *testing.T) {
	A := beam.Position{Frame: 0, V: 0, H: 0}
	B := beam.Position{Frame: 0, V: 0, H: 1}

	// clock fields are different (other fields equal)
	test.ExpectFailure(t, beam.Equal(A, B))

	// all fields are equal
	B.H = 0
	test.ExpectSuccess(t, beam.Equal(A, B))

	// scanline fields are different (other fields equal)
	B.V = 1
	test.ExpectFailure(t, beam.Equal(A, B))

	// all fields are equal
	A.V = 1
	test.ExpectSuccess(t, beam.Equal(A, B))

	// frame fields are different
	A.Frame = 1
	test.ExpectFailure(t, beam.Equal(A, B))

	// frame fields are different but one is undefined
	B.Frame = beam.FrameIsUndefined
	test.ExpectSuccess(t, beam.Equal(A, B))
}

// TestLineAndFrameLength covers the boundary behaviors named in the core
// design document: PAL long/short frames and lines, and that toggling LOF
// mid-frame only changes the *next* frame's length.
func TestLineAndFrameLength(t *testing.T) {
	p := beam.NewPosition(beam.PAL)
	test.ExpectEquality(t, p.HCnt(), 227)
	test.ExpectEquality(t, p.VCnt(), 312)

	// flip to long frame/long line mid-frame; current frame/line length is
	// unaffected until the respective wrap happens
	p.LofToggle = true
	p.LolToggle = true

	lines := 0
	for frame := 0; frame < 1; {
		_, newFrame := p.Tick()
		if p.H == 0 {
			lines++
		}
		if newFrame {
			frame++
		}
	}

	// one full PAL short frame is 312 lines
	test.ExpectEquality(t, lines, 312)
}

func TestNTSCAlternatingLineLength(t *testing.T) {
	p := beam.NewPosition(beam.NTSC)
	p.LolToggle = true

	// first line is short (227), second is long (228), per spec.md's
	// "NTSC alternating long/short lines (228/227)"
	first := p.HCnt()
	for p.H < first-1 {
		p.Tick()
	}
	p.Tick() // wraps into the second line, toggling Lol
	second := p.HCnt()

	test.ExpectInequality(t, first, second)
}
