package blitter

// LineParams describes one line-blit (BLTCON1::LINE=1) pass: a Bresenham
// walk of Steps pixels, per spec.md §4.5. decodeLine loads ErrStart from
// bltamod, ErrAdjA from bltbmod and ErrAdjB from bltcmod; the "octant"
// select folds into Sud/Sul/Aul, exactly as BLTCON1 encodes it.
type LineParams struct {
	Minterm       uint16
	ASH           uint
	Steps         int
	SingleBit     bool // BLTCON1 ONEDOT: only the line's first pixel per dot is written
	Sud, Sul, Aul bool // octant selects: swap up/down, swap up/left, always up/left
	UseB, UseC    bool
	ErrStart      int32
	ErrAdjA       int32 // added on steps that do not take the minor step
	ErrAdjB       int32 // added on minor steps (accumulator >= 0, inverted by Aul)
}

// LineResult reports the final pointer and register state a line blit
// leaves behind, mirroring what BLTAPT/BLTCPT/BLTDPT readback would show.
type LineResult struct {
	APtr, DPtr uint32
	Err        int32
}

// RunLine walks the Bresenham line described by p, reading an optional
// texture word through mem via bptr and an optional background word via
// cptr, and writing the composited pixel to dptr each step it decides to
// plot, per spec.md §4.5: "write D to bltdpt if C enabled AND (not
// single-bit mode OR first pixel of the line)... bltdpt <- bltcpt after
// each write."
func RunLine(mem Mem, p LineParams, aptr, bptr, cptr, dptr uint32) LineResult {
	errVal := p.ErrStart
	a := aptr
	d := dptr
	firstPixel := true

	for step := 0; step < p.Steps; step++ {
		var bNew uint16 = 0xFFFF
		if p.UseB {
			bNew = mem.ReadWord(bptr)
		}
		bHold := uint16(0)
		if bNew&1 != 0 {
			bHold = 0xFFFF
		}

		var cNew uint16
		if p.UseC {
			cNew = mem.ReadWord(cptr)
		}

		aHold := shift(1<<p.ASH, 0, 0, false)
		dWord := Minterm(aHold, bHold, cNew, p.Minterm)

		if p.UseC && (!p.SingleBit || firstPixel) {
			mem.WriteWord(d, dWord)
			firstPixel = false
		}
		d = cptr

		minorStep := errVal >= 0
		if p.Aul {
			minorStep = !minorStep
		}

		if minorStep {
			errVal += p.ErrAdjB
			if p.Sul {
				cptr = stepPtr(cptr, false)
			} else {
				cptr = addMod(cptr, 1, false)
			}
		} else {
			errVal += p.ErrAdjA
		}

		if p.Sud {
			cptr = addMod(cptr, 1, false)
		} else {
			a = stepPtr(a, false)
		}
	}

	return LineResult{APtr: a, DPtr: d, Err: errVal}
}
