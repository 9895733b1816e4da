package blitter

// Mem is the word-addressed Chip RAM surface the blitter reads and writes
// through. Agnus supplies an implementation backed by the shared bus.
type Mem interface {
	ReadWord(addr uint32) uint16
	WriteWord(addr uint32, value uint16)
}

// AreaParams fully describes one copy-blit (BLTCON1::LINE=0) pass: the
// channel enables, the minterm and shifts decoded from BLTCON0/1, the word
// masks applied to the first/last column of each row, and the per-row
// modulo added to each active pointer. Width/Height are in words and rows.
type AreaParams struct {
	UseA, UseB, UseC, UseD bool
	Minterm                uint16
	ASH, BSH               uint
	Desc                   bool
	AFWM, ALWM             uint16
	AMod, BMod, CMod, DMod int32
	Width, Height          int
	EFE, IFE               bool
	FCI                    bool
}

// AreaPointers carries the four channel pointers in and returns their final
// values after the blit, for BLTAPT/BLTBPT/BLTCPT/BLTDPT readback.
type AreaPointers struct {
	A, B, C, D uint32
}

func stepPtr(ptr uint32, desc bool) uint32 {
	if desc {
		return ptr - 2
	}
	return ptr + 2
}

func addMod(ptr uint32, mod int32, desc bool) uint32 {
	if desc {
		return ptr - uint32(mod)
	}
	return ptr + uint32(mod)
}

// RunArea computes an entire copy blit and returns the final pointer values.
// The fast blitter (RunToCompletion) calls it; the micro-programmed slow
// blitter's Step repeats the same per-word computation one word at a time
// (stepArea), so for area blits either path yields identical D-buffer
// contents and pointer registers.
func RunArea(mem Mem, p AreaParams, ptrs AreaPointers) AreaPointers {
	a, b, c, d := ptrs.A, ptrs.B, ptrs.C, ptrs.D

	for row := 0; row < p.Height; row++ {
		var aOld, bOld uint16
		carry := p.FCI

		for col := 0; col < p.Width; col++ {
			var aNew, bNew, cNew uint16

			if p.UseA {
				aNew = mem.ReadWord(a)
				a = stepPtr(a, p.Desc)
			}
			mask := uint16(0xFFFF)
			if col == 0 {
				mask &= p.AFWM
			}
			if col == p.Width-1 {
				mask &= p.ALWM
			}
			aMasked := aNew & mask
			aHold := shift(aMasked, aOld, p.ASH, p.Desc)
			aOld = aMasked

			if p.UseB {
				bNew = mem.ReadWord(b)
				b = stepPtr(b, p.Desc)
			}
			bHold := shift(bNew, bOld, p.BSH, p.Desc)
			bOld = bNew

			if p.UseC {
				cNew = mem.ReadWord(c)
				c = stepPtr(c, p.Desc)
			}

			dWord := Minterm(aHold, bHold, cNew, p.Minterm)
			if p.EFE || p.IFE {
				dWord, carry = applyFill(dWord, carry, p.IFE)
			}

			if p.UseD {
				mem.WriteWord(d, dWord)
				d = stepPtr(d, p.Desc)
			}
		}

		if p.UseA {
			a = addMod(a, p.AMod, p.Desc)
		}
		if p.UseB {
			b = addMod(b, p.BMod, p.Desc)
		}
		if p.UseC {
			c = addMod(c, p.CMod, p.Desc)
		}
		if p.UseD {
			d = addMod(d, p.DMod, p.Desc)
		}
	}

	return AreaPointers{A: a, B: b, C: c, D: d}
}
