package amiga

import (
	"sync/atomic"

	"github.com/go-echarts/statsview"
	"github.com/go-echarts/statsview/viewer"
)

// Profiler is an optional HTTP dashboard of scheduler slot occupancy and
// the DMA-cycle histogram, the concrete shape of the "DMA debugger hook"
// mentioned in spec.md §4.2. It is never started by default; a front end
// opts in explicitly.
type Profiler struct {
	cyclesServiced atomic.Int64
	ownerCounts    [8]atomic.Int64 // indexed by owner.Kind

	addr string
}

// NewProfiler returns a stopped Profiler that will listen on addr (eg.
// ":18066") once Start is called.
func NewProfiler(addr string) *Profiler { return &Profiler{addr: addr} }

// Observe records one DMA cycle's bus owner for the dashboard's histogram.
func (p *Profiler) Observe(ownerKind int) {
	p.cyclesServiced.Add(1)
	if ownerKind >= 0 && ownerKind < len(p.ownerCounts) {
		p.ownerCounts[ownerKind].Add(1)
	}
}

// Start brings up the statsview HTTP dashboard in the background, grounded
// on the teacher's go-echarts/statsview dependency.
func (p *Profiler) Start() {
	statsview.New(viewer.WithAddr(p.addr)).Start()
}
