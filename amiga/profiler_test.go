package amiga_test

import (
	"testing"

	"github.com/pixelforge/amigacore/amiga"
	"github.com/pixelforge/amigacore/test"
)

// TestProfilerObserveDoesNotPanic exercises the counter bookkeeping only;
// Start brings up a real HTTP listener and is left to a running front end
// rather than a unit test.
func TestProfilerObserveDoesNotPanic(t *testing.T) {
	p := amiga.NewProfiler(":0")
	for i := 0; i < 100; i++ {
		p.Observe(i % 8)
	}
	test.Equate(t, true, true)
}

func TestProfilerObserveIgnoresOutOfRangeKind(t *testing.T) {
	p := amiga.NewProfiler(":0")
	p.Observe(-1)
	p.Observe(999)
	test.Equate(t, true, true)
}
