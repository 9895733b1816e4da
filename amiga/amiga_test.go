package amiga_test

import (
	"testing"

	"github.com/pixelforge/amigacore/amiga"
	"github.com/pixelforge/amigacore/beam"
	"github.com/pixelforge/amigacore/config"
	"github.com/pixelforge/amigacore/denise"
	"github.com/pixelforge/amigacore/errors"
	"github.com/pixelforge/amigacore/hardware/memory/custom"
	"github.com/pixelforge/amigacore/hardware/memory/memorymap"
	"github.com/pixelforge/amigacore/test"
)

func newTestMachine() *amiga.Amiga {
	return amiga.New(memorymap.A500, 512, 0, 0, beam.PAL)
}

func TestPowerOnFailsWithoutChipRAM(t *testing.T) {
	a := amiga.New(memorymap.A500, 0, 0, 0, beam.PAL)
	err := a.PowerOn()
	test.ExpectFailure(t, err)
	test.Equate(t, errors.Is(err, errors.ChipRamMissingMsg), true)
	test.Equate(t, a.PoweredOn(), false)
}

func TestPowerOnAppliesConfiguredDeniseRevision(t *testing.T) {
	a := newTestMachine()
	test.ExpectSuccess(t, a.Instance.Options.Set(config.DeniseRevision, "ECS"))
	test.ExpectSuccess(t, a.PowerOn())
	test.Equate(t, a.Denise.Revision, denise.ECS)
	test.Equate(t, a.Mem.Custom.PeekCustom(custom.DENISEID), uint16(0x2000))
}

func TestPowerOnRejectsChipRAMAboveAgnusRevisionCeiling(t *testing.T) {
	a := amiga.New(memorymap.A500, 1024, 0, 0, beam.PAL) // 1MB needs at least ECS_1MB Agnus
	err := a.PowerOn()
	test.ExpectFailure(t, err)
	test.Equate(t, errors.Is(err, errors.ChipRamTooLargeMsg), true)
	test.Equate(t, a.PoweredOn(), false)
}

func TestPowerOnSucceedsWithChipRAM(t *testing.T) {
	a := newTestMachine()
	test.ExpectSuccess(t, a.PowerOn())
	test.Equate(t, a.PoweredOn(), true)
}

func TestPowerOffClearsPoweredOn(t *testing.T) {
	a := newTestMachine()
	test.ExpectSuccess(t, a.PowerOn())
	a.PowerOff()
	test.Equate(t, a.PoweredOn(), false)
}

func TestResetSoftPreservesRAM(t *testing.T) {
	a := newTestMachine()
	a.Mem.Chip[0] = 0xDEAD
	a.Reset(false)
	test.Equate(t, a.Mem.Chip[0], uint16(0xDEAD))
}

func TestResetHardZeroesRAM(t *testing.T) {
	a := newTestMachine()
	a.Mem.Chip[0] = 0xDEAD
	a.Reset(true)
	test.Equate(t, a.Mem.Chip[0], uint16(0))
}

func TestResetClearsInterrupts(t *testing.T) {
	a := newTestMachine()
	a.Interrupts.SetIntena(1<<15 | 1<<14)
	a.Interrupts.SetIntreq(1<<15 | 1<<4)
	a.Reset(false)
	test.Equate(t, a.Interrupts.Intreq, uint16(0))
	test.Equate(t, a.Interrupts.Intena, uint16(0))
}

// TestAudioDMAEnableLoadsPointer confirms a DMACON rising edge on an audio
// channel's bit loads that channel's current DMA pointer from AUDxLCH/LCL,
// the same "reload on enable" behaviour real Paula audio channels have.
func TestAudioDMAEnableLoadsPointer(t *testing.T) {
	a := newTestMachine()
	test.ExpectSuccess(t, a.PowerOn())

	a.Mem.Custom.PokeCustom(custom.AUD0LCH, 0x0010)
	a.Mem.Custom.PokeCustom(custom.AUD0LCL, 0x2000)
	a.Mem.Custom.PokeCustom(custom.AUD0PER, 200)
	a.Mem.Custom.PokeCustom(custom.AUD0VOL, 64)

	a.Mem.Custom.PokeCustom(custom.DMACON, 1<<15|1) // set bit15 asserts bit0 (AUD0EN)
	a.Execute()                                     // DMACON goes through the register-change queue

	test.Equate(t, a.Audio[0].Enabled, true)
	test.Equate(t, a.Audio[0].LC, uint32(0x00102000))
}

// TestExecuteAdvancesBeam confirms a single Execute call advances Agnus's
// beam by exactly one DMA cycle.
func TestExecuteAdvancesBeam(t *testing.T) {
	a := newTestMachine()
	test.ExpectSuccess(t, a.PowerOn())
	startH := a.Agnus.Beam.H
	a.Execute()
	test.Equate(t, a.Agnus.Beam.H, startH+1)
}

// TestBlitterDoneRaisesInterrupt confirms the BLIT interrupt is raised on
// the cycle the blitter transitions from running to stopped, matching real
// hardware's "blitter finished" interrupt semantics.
func TestBlitterDoneRaisesInterrupt(t *testing.T) {
	a := newTestMachine()
	test.ExpectSuccess(t, a.PowerOn())
	a.Interrupts.SetIntena(1<<15 | 1<<14 | 1<<6)

	a.Mem.Custom.PokeCustom(custom.DMACON, 1<<15|1<<9) // master DMA enable
	a.Mem.Custom.PokeCustom(custom.BLTCON0, 0x0FF0)     // A,B,C,D enabled, minterm 0xF0 (D = A)
	a.Mem.Custom.PokeCustom(custom.BLTSIZE, 1<<6|1) // height 1, width 1

	for i := 0; i < 200 && a.Agnus.Blitter.Running(); i++ {
		a.Execute()
	}
	test.Equate(t, a.Agnus.Blitter.Running(), false)
	test.ExpectSuccess(t, a.Interrupts.Intreq&(1<<6) != 0) // BLIT
}

func TestStepAdvancesExactlyOneCycle(t *testing.T) {
	a := newTestMachine()
	test.ExpectSuccess(t, a.PowerOn())
	startH := a.Agnus.Beam.H
	a.Step()
	test.Equate(t, a.Agnus.Beam.H, startH+1)
}

func TestRunStopsWhenContinuationReturnsFalse(t *testing.T) {
	a := newTestMachine()
	test.ExpectSuccess(t, a.PowerOn())
	n := 0
	a.Run(func() bool {
		n++
		return n < 10
	})
	test.Equate(t, n, 10)
	test.Equate(t, a.Agnus.Beam.H, 9) // continuation asked 10 times, stepped after the first 9
}

func TestIPLReflectsPendingUnmaskedInterrupt(t *testing.T) {
	a := newTestMachine()
	test.ExpectSuccess(t, a.PowerOn())
	test.Equate(t, a.IPL(), 0)
	a.Interrupts.SetIntena(1<<15 | 1<<14 | 1<<5) // VERTB
	a.Interrupts.SetIntreq(1<<15 | 1<<5)
	test.Equate(t, a.IPL() > 0, true)
}

func TestCIARegisterAccessRoutesThroughMemoryMap(t *testing.T) {
	a := newTestMachine()
	test.ExpectSuccess(t, a.PowerOn())

	test.ExpectSuccess(t, a.Mem.Poke8(0xBF1000, 0x42)) // bit12 set selects CIA-A, reg 0 (PRA)
	test.Equate(t, a.CIAA.PRA, uint8(0x42))
}
