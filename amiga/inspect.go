package amiga

import (
	"io"

	"github.com/bradleyjkemp/memviz"
)

// inspectable is the aggregate view memviz walks: one field per chip, so
// the generated graph mirrors spec.md §2's component table rather than
// Amiga's internal bookkeeping fields (the audio pointer cache, the TOD
// line latch, and so on are left out as noise).
type inspectable struct {
	Agnus      interface{}
	Denise     interface{}
	Audio      [4]interface{}
	Disk       interface{}
	Interrupts interface{}
	UART       interface{}
	CIAA       interface{}
	CIAB       interface{}
}

// Inspect writes a Graphviz dot graph of the machine's current state to w,
// the concrete shape of the "Inspectable" debugger capability mentioned in
// spec.md §9.
func (a *Amiga) Inspect(w io.Writer) {
	memviz.Map(w, &inspectable{
		Agnus:      a.Agnus,
		Denise:     a.Denise,
		Audio:      [4]interface{}{a.Audio[0], a.Audio[1], a.Audio[2], a.Audio[3]},
		Disk:       a.Disk,
		Interrupts: a.Interrupts,
		UART:       a.UART,
		CIAA:       a.CIAA,
		CIAB:       a.CIAB,
	})
}
