// Package scheduler implements the slotted, priority-tiered discrete-event
// simulator described in spec.md §4.1: a fixed array of event slots spread
// across three priority tiers (primary, secondary, tertiary), where each
// tier's "next wakeup" collapses to a single representative slot in the
// tier above it. It is the one package every other hard subsystem in this
// module (Agnus, the register-change queue, Paula, the CIAs) drives its
// own timing through, via amiga.Amiga.Execute's per-cycle ExecuteUntil call.
//
// The three-tier design is grounded in the same idea as the teacher's
// hardware/tia/future.Ticker — a small scheduled-callback primitive — but
// generalised from "a handful of per-scanline delayed writes" to "every
// timed event in the whole machine", which is why it is a flat slot table
// with tier roll-up rather than a ticker per register.
package scheduler

// Cycle is an absolute master-clock tick count, spec.md §3's i64.
type Cycle int64

// Never stands in for "not scheduled" (spec.md §3's i64::MAX).
const Never Cycle = 1<<63 - 1

// Slot identifies one of the fixed event slots. Slots are grouped into three
// contiguous tiers; SlotSEC is the last primary slot and SlotTER is the last
// secondary slot, each acting as the tier below's single representative in
// the tier above.
type Slot int

// Primary tier: checked on every dispatch.
const (
	SlotREG Slot = iota
	SlotCIAA
	SlotCIAB
	SlotBPL
	SlotDAS
	SlotCOP
	SlotBLT
	SlotSEC // represents the secondary tier's earliest trigger

	primaryCount
)

// Secondary tier: checked only when SlotSEC is due.
const (
	SlotCH0 Slot = primaryCount + iota
	SlotCH1
	SlotCH2
	SlotCH3
	SlotDSK
	SlotVBL
	SlotIRQ
	SlotIPL
	SlotKBD
	SlotTXD
	SlotRXD
	SlotPOT
	SlotTER // represents the tertiary tier's earliest trigger

	secondaryEnd
)

// Tertiary tier: checked only when SlotTER is due.
const (
	SlotDC0 Slot = secondaryEnd + iota
	SlotDC1
	SlotDC2
	SlotDC3
	SlotHD0
	SlotHD1
	SlotHD2
	SlotHD3
	SlotMSE1
	SlotMSE2
	SlotRSH
	SlotKEY
	SlotSRV
	SlotSER
	SlotBTR
	SlotALA
	SlotINS

	numSlots
)

const secondaryStart = primaryCount
const tertiaryStart = secondaryEnd
const tertiaryEnd = numSlots

// primaryOrder, secondaryOrder and tertiaryOrder list the dispatch order
// within each tier. Order matters: spec.md §5 requires "REG slot is always
// serviced before other primary slots at the same trigger cycle" and, more
// generally, a fixed enumeration order within each tier.
var primaryOrder = []Slot{SlotREG, SlotCIAA, SlotCIAB, SlotBPL, SlotDAS, SlotCOP, SlotBLT}

var secondaryOrder = []Slot{
	SlotCH0, SlotCH1, SlotCH2, SlotCH3, SlotDSK, SlotVBL, SlotIRQ, SlotIPL,
	SlotKBD, SlotTXD, SlotRXD, SlotPOT, SlotTER,
}

var tertiaryOrder = []Slot{
	SlotDC0, SlotDC1, SlotDC2, SlotDC3, SlotHD0, SlotHD1, SlotHD2, SlotHD3,
	SlotMSE1, SlotMSE2, SlotRSH, SlotKEY, SlotSRV, SlotSER, SlotBTR, SlotALA, SlotINS,
}

// String implements fmt.Stringer for debug output.
func (s Slot) String() string {
	if n, ok := slotNames[s]; ok {
		return n
	}
	return "UNKNOWN"
}

var slotNames = map[Slot]string{
	SlotREG: "REG", SlotCIAA: "CIAA", SlotCIAB: "CIAB", SlotBPL: "BPL",
	SlotDAS: "DAS", SlotCOP: "COP", SlotBLT: "BLT", SlotSEC: "SEC",
	SlotCH0: "CH0", SlotCH1: "CH1", SlotCH2: "CH2", SlotCH3: "CH3",
	SlotDSK: "DSK", SlotVBL: "VBL", SlotIRQ: "IRQ", SlotIPL: "IPL",
	SlotKBD: "KBD", SlotTXD: "TXD", SlotRXD: "RXD", SlotPOT: "POT", SlotTER: "TER",
	SlotDC0: "DC0", SlotDC1: "DC1", SlotDC2: "DC2", SlotDC3: "DC3",
	SlotHD0: "HD0", SlotHD1: "HD1", SlotHD2: "HD2", SlotHD3: "HD3",
	SlotMSE1: "MSE1", SlotMSE2: "MSE2", SlotRSH: "RSH", SlotKEY: "KEY",
	SlotSRV: "SRV", SlotSER: "SER", SlotBTR: "BTR", SlotALA: "ALA", SlotINS: "INS",
}
