// Package clocks defines the constant clock-unit ratios spec.md §3 names:
// ColorClock, DmaCycle, and CiaCycle, all expressed as a multiple of the
// master clock.
//
// Master clock frequencies (for reference, not used directly by the
// scheduler, which counts master-clock ticks as plain integers):
// NTSC ~28.63636 MHz, PAL ~28.37516 MHz.
package clocks

// MasterClocksPerColorClock is always 1: ColorClock is the master clock
// itself.
const MasterClocksPerColorClock = 1

// MasterClocksPerDmaCycle is Agnus's unit of scheduling: 8 master clocks.
const MasterClocksPerDmaCycle = 8

// MasterClocksPerCiaCycle is the CIA's E-clock period: 40 master clocks
// (master/40).
const MasterClocksPerCiaCycle = 40

// MasterClockHz are the nominal master-clock frequencies per video format.
const (
	MasterClockHzNTSC = 28636360
	MasterClockHzPAL  = 28375160
)

// Never is used in place of a cycle count to mean "not scheduled" (i64::MAX
// in spec.md's vocabulary).
const Never int64 = 1<<63 - 1
