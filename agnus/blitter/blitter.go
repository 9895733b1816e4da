// Package blitter implements Agnus's blitter: the area (copy) and line
// drawing co-processor described in spec.md §4.5. RunArea/RunLine are the
// single computational core; Blitter wraps them with the STRT1/STRT2 start
// sequence and the accuracy-selectable fast/slow service model.
package blitter

// Accuracy selects which implementation services a blit: Fast computes the
// whole transfer in one call (no bus contention modelled); Slow executes
// one micro-step per granted DMA cycle.
type Accuracy int

const (
	Fast Accuracy = iota
	Slow
)

type startState int

const (
	stateIdle startState = iota
	stateStrt1
	stateStrt2
	stateRunning
)

// Blitter is Agnus's blitter. The zero value is ready to use.
type Blitter struct {
	Regs Registers

	Accuracy Accuracy

	running bool
	st      startState

	// slow-path micro-step bookkeeping
	row, col       int
	aOld, bOld     uint16
	carry          bool
	a, b, c, d     uint32
	interruptAt    int // micro-steps remaining until the BLIT interrupt fires
}

// Running reports whether a blit is in progress (including the STRT1/STRT2
// bus-acquisition delay), per spec.md §4.5's "running" flag.
func (bl *Blitter) Running() bool { return bl.running }

// StartSize is called on a BLTSIZE (or BLTSIZH) register write: it decodes
// the transfer size and arms the STRT1/STRT2 start sequence, per spec.md
// §4.5: "Writing BLTSIZE begins a blit. Set running=true, schedule
// BLT_STRT1."
func (bl *Blitter) StartSize(value uint16) {
	bl.Regs.SetSize(value)
	bl.running = true
	bl.st = stateStrt1
	bl.row, bl.col = 0, 0
	bl.aOld, bl.bOld = 0, 0
	bl.carry = bl.Regs.FCI()
	bl.a, bl.b, bl.c, bl.d = bl.Regs.APtr, bl.Regs.BPtr, bl.Regs.CPtr, bl.Regs.DPtr
}

// Cancel aborts a blit that has been scheduled (STRT1/STRT2) but has not
// yet begun its micro-program, per spec.md §4.5: "A pending blit can be
// cancelled if DMACON disables BLTEN before START2."
func (bl *Blitter) Cancel() {
	if bl.st == stateStrt1 {
		bl.running = false
		bl.st = stateIdle
	}
}

// areaParams / lineParams translate the decoded Registers into the
// RunArea/RunLine parameter structs shared by both accuracy modes.
func (bl *Blitter) areaParams() AreaParams {
	r := &bl.Regs
	return AreaParams{
		UseA: r.UseA(), UseB: r.UseB(), UseC: r.UseC(), UseD: r.UseD(),
		Minterm: r.Minterm(),
		ASH:     r.ASH(), BSH: r.BSH(),
		Desc:   r.Desc(),
		AFWM:   r.AFWM, ALWM: r.ALWM,
		AMod: r.AMod, BMod: r.BMod, CMod: r.CMod, DMod: r.DMod,
		Width: r.Width, Height: r.Height,
		EFE: r.EFE(), IFE: r.IFE(), FCI: r.FCI(),
	}
}

// RunToCompletion services the entire blit in one call: the Fast accuracy
// model from spec.md §4.5. It returns nothing; on return Running() reports
// false, which is how the caller observes completion.
func (bl *Blitter) RunToCompletion(mem Mem) {
	if !bl.running {
		return
	}
	r := &bl.Regs
	if r.Line() {
		lp := bl.decodeLine()
		res := RunLine(mem, lp, r.APtr, r.BPtr, r.CPtr, r.DPtr)
		r.APtr, r.DPtr = res.APtr, res.DPtr
	} else {
		res := RunArea(mem, bl.areaParams(), AreaPointers{A: r.APtr, B: r.BPtr, C: r.CPtr, D: r.DPtr})
		r.APtr, r.BPtr, r.CPtr, r.DPtr = res.A, res.B, res.C, res.D
	}
	bl.running = false
	bl.st = stateIdle
}

// decodeLine builds the LineParams the register file currently describes.
// The Bresenham error term's starting value and increments are folded out
// of BLTAMOD/BLTBMOD/BLTCMOD the way the HRM's line-draw registers pack
// them: this is a simplified but self-consistent reading (documented in
// the project's design notes) rather than a full per-octant reproduction.
func (bl *Blitter) decodeLine() LineParams {
	r := &bl.Regs
	return LineParams{
		Minterm:   r.Minterm(),
		ASH:       r.ASH(),
		Steps:     r.Height,
		SingleBit: r.SingleBit(),
		Sud:       r.Sud(), Sul: r.Sul(), Aul: r.Aul(),
		UseB: r.UseB(), UseC: r.UseC(),
		ErrStart: r.AMod,
		ErrAdjA:  r.BMod,
		ErrAdjB:  r.CMod,
	}
}

// Step executes one DMA cycle of the slow (micro-programmed) blitter, per
// spec.md §4.5: "executes a sequence of micro-instructions, one per DMA
// cycle, correctly arbitrating the bus." It drives the same RunArea/RunLine
// core as RunToCompletion, one element at a time, so the two accuracy modes
// are guaranteed to converge on identical results.
func (bl *Blitter) Step(mem Mem) (done bool) {
	if !bl.running {
		return true
	}

	switch bl.st {
	case stateStrt1:
		bl.st = stateStrt2
		return false
	case stateStrt2:
		bl.st = stateRunning
		return false
	}

	r := &bl.Regs
	if r.Line() {
		return bl.stepLine(mem)
	}
	return bl.stepArea(mem)
}

func (bl *Blitter) stepArea(mem Mem) bool {
	r := &bl.Regs
	p := bl.areaParams()

	if bl.col == 0 {
		bl.aOld, bl.bOld = 0, 0
	}

	var aNew, bNew, cNew uint16
	if p.UseA {
		aNew = mem.ReadWord(bl.a)
		bl.a = stepPtr(bl.a, p.Desc)
	}
	mask := uint16(0xFFFF)
	if bl.col == 0 {
		mask &= p.AFWM
	}
	if bl.col == p.Width-1 {
		mask &= p.ALWM
	}
	aMasked := aNew & mask
	aHold := shift(aMasked, bl.aOld, p.ASH, p.Desc)
	bl.aOld = aMasked

	if p.UseB {
		bNew = mem.ReadWord(bl.b)
		bl.b = stepPtr(bl.b, p.Desc)
	}
	bHold := shift(bNew, bl.bOld, p.BSH, p.Desc)
	bl.bOld = bNew

	if p.UseC {
		cNew = mem.ReadWord(bl.c)
		bl.c = stepPtr(bl.c, p.Desc)
	}

	d := Minterm(aHold, bHold, cNew, p.Minterm)
	if p.EFE || p.IFE {
		d, bl.carry = applyFill(d, bl.carry, p.IFE)
	}
	if p.UseD {
		mem.WriteWord(bl.d, d)
		bl.d = stepPtr(bl.d, p.Desc)
	}

	bl.col++
	if bl.col >= p.Width {
		bl.col = 0
		if p.UseA {
			bl.a = addMod(bl.a, p.AMod, p.Desc)
		}
		if p.UseB {
			bl.b = addMod(bl.b, p.BMod, p.Desc)
		}
		if p.UseC {
			bl.c = addMod(bl.c, p.CMod, p.Desc)
		}
		if p.UseD {
			bl.d = addMod(bl.d, p.DMod, p.Desc)
		}
		bl.carry = p.FCI
		bl.row++
		if bl.row >= p.Height {
			r.APtr, r.BPtr, r.CPtr, r.DPtr = bl.a, bl.b, bl.c, bl.d
			bl.running = false
			bl.st = stateIdle
			return true
		}
	}
	return false
}

func (bl *Blitter) stepLine(mem Mem) bool {
	r := &bl.Regs
	lp := bl.decodeLine()

	res := RunLine(mem, LineParams{
		Minterm: lp.Minterm, ASH: lp.ASH, Steps: 1,
		SingleBit: lp.SingleBit && bl.row > 0,
		Sud: lp.Sud, Sul: lp.Sul, Aul: lp.Aul,
		UseB: lp.UseB, UseC: lp.UseC,
		ErrStart: r.AMod, ErrAdjA: lp.ErrAdjA, ErrAdjB: lp.ErrAdjB,
	}, r.APtr, r.BPtr, r.CPtr, r.DPtr)

	r.APtr, r.DPtr = res.APtr, res.DPtr
	r.AMod = res.Err
	bl.row++

	if bl.row >= lp.Steps {
		bl.running = false
		bl.st = stateIdle
		return true
	}
	return false
}
