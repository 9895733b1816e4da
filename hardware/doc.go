// Package hardware is the base package for the Amiga emulation. It and its
// sub-packages contain everything required for a headless emulation of the
// execution core: the event scheduler, Agnus, Denise, Paula, the two CIAs,
// and the memory map that ties them together.
//
// The amiga.Amiga type is the root of the emulation and holds references to
// all of the subsystems. From there the emulation can be driven either
// continuously (via amiga.Amiga.Run, with an optional continuation
// callback) or one DMA cycle at a time (amiga.Amiga.Step), which is
// how the debugger and the regression test harness drive it.
package hardware
