// Package instance defines those parts of the emulation that might change
// from instance to instance of the Amiga type, but is not actually the
// Amiga itself. Particularly useful when running more than one instance of
// the emulation in parallel (A/B snapshot comparisons, the regression test
// harness).
package instance

import (
	"github.com/pixelforge/amigacore/config"
	"github.com/pixelforge/amigacore/random"
)

// Instance defines those parts of the emulation that might change between
// different instantiations of the Amiga type, but are not the Amiga itself.
type Instance struct {
	Options *config.Options
	Random  *random.Random
}

// NewInstance is the preferred method of initialisation for the Instance
// type. poweredOn is forwarded to the option store so that writes are
// refused while the machine is powered on, per spec.md §7's OPT_LOCKED.
func NewInstance(tv random.TV, poweredOn func() bool) *Instance {
	return &Instance{
		Options: config.NewOptions(poweredOn),
		Random:  random.NewRandom(tv),
	}
}

// Normalise puts the instance into a known default state. Useful for
// regression testing where the initial state must be the same for every run
// of the test.
func (ins *Instance) Normalise() {
	ins.Random.ZeroSeed = true
	ins.Options.SetDefaults()
}
