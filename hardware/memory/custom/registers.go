// Package custom names the Amiga custom chip registers: the offsets (from
// 0xDFF000) that Agnus, Denise, and Paula expose in the 0xDFF000-0xDFFFFF
// window. It plays the same role the teacher's hardware/memory/addresses
// package played for the TIA/RIOT register set, generalised to the larger
// and chip-attributed Amiga register file (spec.md §2's "~200 hardware
// registers").
package custom

// Offset is a custom register's even byte offset from the base of the
// register window (0xDFF000).
type Offset uint32

// Agnus / DMA control and beam readback.
const (
	BLTDDAT  Offset = 0x000
	DMACONR  Offset = 0x002
	VPOSR    Offset = 0x004
	VHPOSR   Offset = 0x006
	DSKDATR  Offset = 0x008
	JOY0DAT  Offset = 0x00A
	JOY1DAT  Offset = 0x00C
	CLXDAT   Offset = 0x00E
	ADKCONR  Offset = 0x010
	POT0DAT  Offset = 0x012
	POT1DAT  Offset = 0x014
	POTGOR   Offset = 0x016
	SERDATR  Offset = 0x018
	DSKBYTR  Offset = 0x01A
	INTENAR  Offset = 0x01C
	INTREQR  Offset = 0x01E
	DSKPTH   Offset = 0x020
	DSKPTL   Offset = 0x022
	DSKLEN   Offset = 0x024
	DSKDAT   Offset = 0x026
	REFPTR   Offset = 0x028
	VPOSW    Offset = 0x02A
	VHPOSW   Offset = 0x02C
	COPCON   Offset = 0x02E
	SERDAT   Offset = 0x030
	SERPER   Offset = 0x032
	POTGO    Offset = 0x034
	JOYTEST  Offset = 0x036
	STREQU   Offset = 0x038
	STRVBL   Offset = 0x03A
	STRHOR   Offset = 0x03C
	STRLONG  Offset = 0x03E
	BLTCON0  Offset = 0x040
	BLTCON1  Offset = 0x042
	BLTAFWM  Offset = 0x044
	BLTALWM  Offset = 0x046
	BLTCPTH  Offset = 0x048
	BLTCPTL  Offset = 0x04A
	BLTBPTH  Offset = 0x04C
	BLTBPTL  Offset = 0x04E
	BLTAPTH  Offset = 0x050
	BLTAPTL  Offset = 0x052
	BLTDPTH  Offset = 0x054
	BLTDPTL  Offset = 0x056
	BLTSIZE  Offset = 0x058
	BLTCON0L Offset = 0x05A // ECS
	BLTSIZV  Offset = 0x05C // ECS
	BLTSIZH  Offset = 0x05E // ECS
	BLTCMOD  Offset = 0x060
	BLTBMOD  Offset = 0x062
	BLTAMOD  Offset = 0x064
	BLTDMOD  Offset = 0x066
	BLTCDAT  Offset = 0x070
	BLTBDAT  Offset = 0x072
	BLTADAT  Offset = 0x074
	DENISEID Offset = 0x07C // ECS/AGA Denise revision readback (a.k.a. LISAID)
	DSKSYNC  Offset = 0x07E
	COP1LCH  Offset = 0x080
	COP1LCL  Offset = 0x082
	COP2LCH  Offset = 0x084
	COP2LCL  Offset = 0x086
	COPJMP1  Offset = 0x088
	COPJMP2  Offset = 0x08A
	COPINS   Offset = 0x08C
	DIWSTRT  Offset = 0x08E
	DIWSTOP  Offset = 0x090
	DDFSTRT  Offset = 0x092
	DDFSTOP  Offset = 0x094
	DMACON   Offset = 0x096
	CLXCON   Offset = 0x098
	INTENA   Offset = 0x09A
	INTREQ   Offset = 0x09C
	ADKCON   Offset = 0x09E
)

// Audio channel register bases (add 0x10*n for channel n, n in 0..3).
const (
	AUD0LCH Offset = 0x0A0
	AUD0LCL Offset = 0x0A2
	AUD0LEN Offset = 0x0A4
	AUD0PER Offset = 0x0A6
	AUD0VOL Offset = 0x0A8
	AUD0DAT Offset = 0x0AA
)

// AudioChannelOffset returns the register offset for the named audio
// register field on channel ch (0..3).
func AudioChannelOffset(base Offset, ch int) Offset {
	return base + Offset(ch)*0x10
}

// Bitplane pointer/control registers.
const (
	BPL1PTH Offset = 0x0E0
	BPL1PTL Offset = 0x0E2
	BPLCON0 Offset = 0x100
	BPLCON1 Offset = 0x102
	BPLCON2 Offset = 0x104
	BPLCON3 Offset = 0x106 // ECS
	BPL1MOD Offset = 0x108
	BPL2MOD Offset = 0x10A
	BPLCON4 Offset = 0x10C // ECS, sprite/bitplane collision masking
	BPL1DAT Offset = 0x110
)

// BitplanePointerOffset returns the BPLnPTH offset for plane n (0..5).
func BitplanePointerOffset(n int) Offset { return BPL1PTH + Offset(n)*4 }

// BitplaneDataOffset returns the BPLnDAT offset for plane n (0..5).
func BitplaneDataOffset(n int) Offset { return BPL1DAT + Offset(n)*2 }

// Sprite pointer/control registers (add 8*n for sprite n, n in 0..7).
const (
	SPR0PTH  Offset = 0x120
	SPR0PTL  Offset = 0x122
	SPR0POS  Offset = 0x140
	SPR0CTL  Offset = 0x142
	SPR0DATA Offset = 0x144
	SPR0DATB Offset = 0x146
)

// SpritePointerOffset returns the SPRnPTH offset for sprite n (0..7).
func SpritePointerOffset(n int) Offset { return SPR0PTH + Offset(n)*4 }

// SpriteRegOffset returns the offset of one of SPRnPOS/CTL/DATA/DATB for
// sprite n (0..7), given the channel-0 base (SPR0POS etc).
func SpriteRegOffset(base Offset, n int) Offset { return base + Offset(n)*8 }

// Color palette (32 entries, OCS; ECS adds AGA-style extra bank elsewhere
// out of scope).
const COLOR00 Offset = 0x180

// ColorOffset returns the COLORn register offset, n in 0..31.
func ColorOffset(n int) Offset { return COLOR00 + Offset(n)*2 }

// Name returns the canonical register name for a write-side offset, for
// logging and debugger display. Only offsets named above are covered; an
// unknown offset (or a read-only mirror not listed here) returns "".
var names = buildNames()

func buildNames() map[Offset]string {
	m := map[Offset]string{
		BLTDDAT: "BLTDDAT", DMACONR: "DMACONR", VPOSR: "VPOSR", VHPOSR: "VHPOSR",
		DSKDATR: "DSKDATR", JOY0DAT: "JOY0DAT", JOY1DAT: "JOY1DAT", CLXDAT: "CLXDAT",
		ADKCONR: "ADKCONR", POT0DAT: "POT0DAT", POT1DAT: "POT1DAT", POTGOR: "POTGOR",
		SERDATR: "SERDATR", DSKBYTR: "DSKBYTR", INTENAR: "INTENAR", INTREQR: "INTREQR",
		DSKPTH: "DSKPTH", DSKPTL: "DSKPTL", DSKLEN: "DSKLEN", DSKDAT: "DSKDAT",
		REFPTR: "REFPTR", VPOSW: "VPOSW", VHPOSW: "VHPOSW", COPCON: "COPCON",
		SERDAT: "SERDAT", SERPER: "SERPER", POTGO: "POTGO", JOYTEST: "JOYTEST",
		STREQU: "STREQU", STRVBL: "STRVBL", STRHOR: "STRHOR", STRLONG: "STRLONG",
		BLTCON0: "BLTCON0", BLTCON1: "BLTCON1", BLTAFWM: "BLTAFWM", BLTALWM: "BLTALWM",
		BLTCPTH: "BLTCPTH", BLTCPTL: "BLTCPTL", BLTBPTH: "BLTBPTH", BLTBPTL: "BLTBPTL",
		BLTAPTH: "BLTAPTH", BLTAPTL: "BLTAPTL", BLTDPTH: "BLTDPTH", BLTDPTL: "BLTDPTL",
		BLTSIZE: "BLTSIZE", BLTSIZV: "BLTSIZV", BLTSIZH: "BLTSIZH",
		BLTCMOD: "BLTCMOD", BLTBMOD: "BLTBMOD", BLTAMOD: "BLTAMOD", BLTDMOD: "BLTDMOD",
		BLTCDAT: "BLTCDAT", BLTBDAT: "BLTBDAT", BLTADAT: "BLTADAT", DENISEID: "DENISEID", DSKSYNC: "DSKSYNC",
		COP1LCH: "COP1LCH", COP1LCL: "COP1LCL", COP2LCH: "COP2LCH", COP2LCL: "COP2LCL",
		COPJMP1: "COPJMP1", COPJMP2: "COPJMP2", COPINS: "COPINS",
		DIWSTRT: "DIWSTRT", DIWSTOP: "DIWSTOP", DDFSTRT: "DDFSTRT", DDFSTOP: "DDFSTOP",
		DMACON: "DMACON", CLXCON: "CLXCON", INTENA: "INTENA", INTREQ: "INTREQ", ADKCON: "ADKCON",
		BPLCON0: "BPLCON0", BPLCON1: "BPLCON1", BPLCON2: "BPLCON2", BPLCON3: "BPLCON3",
		BPL1MOD: "BPL1MOD", BPL2MOD: "BPL2MOD", BPLCON4: "BPLCON4",
	}
	for ch := 0; ch < 4; ch++ {
		m[AudioChannelOffset(AUD0LCH, ch)] = "AUD" + itoa(ch) + "LCH"
		m[AudioChannelOffset(AUD0LCL, ch)] = "AUD" + itoa(ch) + "LCL"
		m[AudioChannelOffset(AUD0LEN, ch)] = "AUD" + itoa(ch) + "LEN"
		m[AudioChannelOffset(AUD0PER, ch)] = "AUD" + itoa(ch) + "PER"
		m[AudioChannelOffset(AUD0VOL, ch)] = "AUD" + itoa(ch) + "VOL"
		m[AudioChannelOffset(AUD0DAT, ch)] = "AUD" + itoa(ch) + "DAT"
	}
	for n := 0; n < 6; n++ {
		m[BitplanePointerOffset(n)] = "BPL" + itoa(n+1) + "PTH"
		m[BitplanePointerOffset(n)+2] = "BPL" + itoa(n+1) + "PTL"
		m[BitplaneDataOffset(n)] = "BPL" + itoa(n+1) + "DAT"
	}
	for n := 0; n < 8; n++ {
		m[SpritePointerOffset(n)] = "SPR" + itoa(n) + "PTH"
		m[SpritePointerOffset(n)+2] = "SPR" + itoa(n) + "PTL"
		m[SpriteRegOffset(SPR0POS, n)] = "SPR" + itoa(n) + "POS"
		m[SpriteRegOffset(SPR0CTL, n)] = "SPR" + itoa(n) + "CTL"
		m[SpriteRegOffset(SPR0DATA, n)] = "SPR" + itoa(n) + "DATA"
		m[SpriteRegOffset(SPR0DATB, n)] = "SPR" + itoa(n) + "DATB"
	}
	for n := 0; n < 32; n++ {
		m[ColorOffset(n)] = "COLOR" + itoa(n)
	}
	return m
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var b [8]byte
	i := len(b)
	for n > 0 {
		i--
		b[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		b[i] = '-'
	}
	return string(b[i:])
}

// Name returns the canonical register name for offset, or "" if unknown.
func Name(offset Offset) string {
	return names[offset]
}
