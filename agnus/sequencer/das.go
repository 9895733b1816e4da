package sequencer

// DasEvent is one entry of the per-line disk/audio/sprite/refresh DMA
// table, spec.md §4.3's dasEvent[].
type DasEvent int

// The DAS slot kinds. Sprite and audio carry an index (0..7, 0..3) packed
// in the upper bits.
const (
	DasNone DasEvent = iota
	DasRefresh
	DasDisk
	DasAudio
	DasSprite
	DasSDMA // ECS sprite-dma-enable fetch at column 0xDF
)

const dasIndexShift = 8

// WithIndex packs an index (audio channel or sprite number) into a DasEvent.
func (d DasEvent) WithIndex(i int) DasEvent {
	return d | DasEvent(i<<dasIndexShift)
}

// Kind returns the base kind with the index masked off.
func (d DasEvent) Kind() DasEvent { return d &^ (0xFF << dasIndexShift) }

// Index returns the packed index (meaningless for DasNone/DasRefresh/DasDisk).
func (d DasEvent) Index() int { return int(d >> dasIndexShift) }

// dasColumn is one fixed horizontal position in the DAS table, per spec.md
// §4.3: "refresh 0x01; disk 0x07/09/0B; audio 0x0D/0F/11/13; sprites
// 0x15..0x33 paired; SDMA 0xDF; TICK 0x66."
type dasColumn struct {
	h    int
	kind DasEvent
}

func buildDasColumns() []dasColumn {
	cols := []dasColumn{
		{0x01, DasRefresh},
		{0x03, DasRefresh},
		{0x05, DasRefresh},
		{0x07, DasDisk},
		{0x09, DasDisk},
		{0x0B, DasDisk},
	}
	for ch := 0; ch < 4; ch++ {
		cols = append(cols, dasColumn{0x0D + 2*ch, DasAudio.WithIndex(ch)})
	}
	for spr := 0; spr < 8; spr++ {
		cols = append(cols, dasColumn{0x15 + 2*spr, DasSprite.WithIndex(spr)})
		cols = append(cols, dasColumn{0x16 + 2*spr, DasSprite.WithIndex(spr)})
	}
	cols = append(cols, dasColumn{0xDF, DasSDMA})
	return cols
}

var dasColumns = buildDasColumns()

// spriteDMALowLinePAL is the lower bound of the lines where sprite DMA runs
// (vMax, passed to BuildDas, is the upper bound), per spec.md §4.3:
// "sprites suppressed in lines < 25 PAL or >= vMax."
const spriteDMALowLinePAL = 25

// BuildDas fills dasEvent for one scanline. dmaEnabled reports, per
// DasEvent kind and index, whether that class of DMA is enabled in DMACON; line and
// vMax let sprite DMA be suppressed outside the display per spec.md §4.3.
func BuildDas(dasEvent []DasEvent, line, vMax int, dmaEnabled func(kind DasEvent, index int) bool) {
	for i := range dasEvent {
		dasEvent[i] = DasNone
	}

	spritesActive := line >= spriteDMALowLinePAL && line < vMax

	for _, c := range dasColumns {
		if c.h >= len(dasEvent) {
			continue
		}
		kind := c.kind.Kind()
		idx := c.kind.Index()
		if kind == DasSprite && !spritesActive {
			continue
		}
		if dmaEnabled != nil && !dmaEnabled(kind, idx) {
			continue
		}
		dasEvent[c.h] = c.kind
	}
}

// BuildDasJumpTable fills next[] such that next[h] is the column of the
// next nonzero dasEvent at or after h, letting Agnus's hot loop skip
// directly to the next DMA slot in O(1), mirroring bplEvent's
// nextBplEvent[].
func BuildDasJumpTable(dasEvent []DasEvent, next []int) {
	n := len(dasEvent)
	last := n
	for h := n - 1; h >= 0; h-- {
		if dasEvent[h] != DasNone {
			last = h
		}
		next[h] = last
	}
}
