// Package amiga ties every subsystem together into one runnable machine:
// Agnus, Denise, Paula's four audio channels/disk/uart/interrupts, the two
// CIAs, and the flat memory map. It is the Amiga type the hardware package
// doc refers to as "the root of the emulation".
//
// The 68000 CPU core is an external collaborator (spec.md §1's Non-goal):
// Amiga drives the chipset's own DMA cycles via Execute, and expects a
// caller-supplied CPU to drive whatever cycles it doesn't steal.
package amiga

import (
	"github.com/pixelforge/amigacore/agnus"
	"github.com/pixelforge/amigacore/agnus/sequencer"
	"github.com/pixelforge/amigacore/beam"
	"github.com/pixelforge/amigacore/cia"
	"github.com/pixelforge/amigacore/config"
	"github.com/pixelforge/amigacore/denise"
	"github.com/pixelforge/amigacore/errors"
	"github.com/pixelforge/amigacore/hardware/instance"
	"github.com/pixelforge/amigacore/hardware/memory"
	"github.com/pixelforge/amigacore/hardware/memory/memorymap"
	"github.com/pixelforge/amigacore/logger"
	"github.com/pixelforge/amigacore/paula/audio"
	"github.com/pixelforge/amigacore/paula/disk"
	"github.com/pixelforge/amigacore/paula/interrupts"
	"github.com/pixelforge/amigacore/paula/uart"
	"github.com/pixelforge/amigacore/random"
	"github.com/pixelforge/amigacore/regchange"
	"github.com/pixelforge/amigacore/scheduler"
)

// Amiga is the complete execution core: every chip named in spec.md §1,
// wired together, plus the per-instance options/PRNG the rest of the core
// consults. Construct with New.
type Amiga struct {
	Instance *instance.Instance

	Mem  *memory.Memory
	regs *RegisterFile

	Agnus  *agnus.Agnus
	Denise *denise.Denise

	Audio      [4]*audio.Channel
	Disk       *disk.Controller
	Interrupts *interrupts.Controller
	UART       *uart.UART
	RTC        *RTC

	CIAA *cia.CIA
	CIAB *cia.CIA

	poweredOn bool

	audioCur  [4]uint32 // current DMA pointer per audio channel
	diskPtr   uint32    // DSKPT, the current disk DMA pointer

	blitterWasRunning bool
	lastTODLine       int

	// clock is the absolute master DMA-cycle count the scheduler's primary
	// tier is driven from; sched/regq are the execute_until dispatcher and
	// the register-change queue it services via the REG slot, per spec.md
	// §3/§4.1/§4.2.
	clock scheduler.Cycle
	sched *scheduler.Scheduler
	regq  *regchange.Queue

	// cycleH/cycleV are the beam position latched at the start of the
	// current Execute call, before Agnus's BPL slot handler ticks the beam:
	// DAS/CIA slot handlers consult these rather than a.Agnus.Beam directly
	// so every slot handler for a given cycle sees the same column.
	cycleH, cycleV int
}

// beamTV adapts Agnus's beam position to random.TV so the instance PRNG can
// derive its seed from the current beam coordinate.
type beamTV struct{ a *Amiga }

func (b beamTV) GetCoords() random.Coords {
	return random.Coords{Frame: b.a.Agnus.Beam.Frame, V: b.a.Agnus.Beam.V, H: b.a.Agnus.Beam.H}
}

// New returns a powered-off Amiga for the given bank map and RAM sizes (in
// kilobytes), with a fresh Instance (options store + deterministic PRNG).
func New(bank memorymap.BankMap, chipKB, slowKB, fastKB int, format beam.VideoFormat) *Amiga {
	a := &Amiga{
		Disk:       &disk.Controller{},
		Interrupts: &interrupts.Controller{},
		UART:       &uart.UART{},
		RTC:        NewRTC(),
		CIAA:       &cia.CIA{Which: cia.A},
		CIAB:       &cia.CIA{Which: cia.B},
		lastTODLine: -1,
	}
	for i := range a.Audio {
		a.Audio[i] = &audio.Channel{}
	}

	a.Instance = instance.NewInstance(beamTV{a}, func() bool { return a.poweredOn })

	a.Mem = memory.New(bank, chipKB, slowKB, fastKB)
	a.Mem.CIAA = a.CIAA
	a.Mem.CIAB = a.CIAB

	a.Denise = denise.New()
	a.Agnus = agnus.New(a.Mem, a.Denise, format)
	a.Denise.Revision = deniseRevisionFromOptions(a.Instance.Options)
	a.Agnus.Revision = agnusRevisionFromOptions(a.Instance.Options)
	if v, ok := a.Instance.Options.Get(config.PointerDrop); ok {
		a.Agnus.PointerDropQuirk = v != "OFF"
	}

	a.regs = newRegisterFile(a)
	a.Mem.Custom = a.regs

	a.regq = regchange.NewQueue(regchange.DefaultCapacity)
	a.initScheduler()

	return a
}

// initScheduler (re)builds the scheduler and arms its primary tier, per
// spec.md §4.1's execute_until dispatch: REG first (so a register change
// due this cycle is visible to the same cycle's CIA/bitplane/DAS/copper/
// blitter handling), then CIAA, CIAB, BPL, DAS, COP, BLT in the fixed
// enumeration order spec.md §5 requires. Every primary slot here re-arms
// itself for the next cycle, since each one has per-cycle work to do
// (unlike the secondary/tertiary tiers, which stay cancelled: nothing in
// this pass schedules audio-channel/disk/CIA-timer wakeups through them
// yet, see DESIGN.md).
func (a *Amiga) initScheduler() {
	a.sched = scheduler.New()
	a.sched.Bind(scheduler.SlotREG, a.serviceRegSlot)
	a.sched.Bind(scheduler.SlotCIAA, a.serviceCIAASlot)
	a.sched.Bind(scheduler.SlotCIAB, a.serviceCIABSlot)
	a.sched.Bind(scheduler.SlotBPL, a.serviceBPLSlot)
	a.sched.Bind(scheduler.SlotDAS, a.serviceDASSlot)
	a.sched.Bind(scheduler.SlotCOP, a.serviceCOPSlot)
	a.sched.Bind(scheduler.SlotBLT, a.serviceBLTSlot)

	for _, slot := range [...]scheduler.Slot{
		scheduler.SlotREG, scheduler.SlotCIAA, scheduler.SlotCIAB,
		scheduler.SlotBPL, scheduler.SlotDAS, scheduler.SlotCOP, scheduler.SlotBLT,
	} {
		a.sched.ScheduleAbs(slot, a.clock, 0, 0)
	}
}

// deniseRevisionFromOptions translates config.DeniseRevision's stored enum
// value into the denise.Revision ReadDeniseID dispatches on.
func deniseRevisionFromOptions(opts *config.Options) denise.Revision {
	if v, ok := opts.Get(config.DeniseRevision); ok && v == "ECS" {
		return denise.ECS
	}
	return denise.OCS
}

// agnusRevisionFromOptions translates config.AgnusRevision's stored enum
// value into the agnus.Revision PowerOn checks the configured Chip RAM
// size against.
func agnusRevisionFromOptions(opts *config.Options) agnus.Revision {
	v, _ := opts.Get(config.AgnusRevision)
	switch v {
	case "ECS_1MB":
		return agnus.ECS1MB
	case "ECS_2MB":
		return agnus.ECS2MB
	default:
		return agnus.OCS
	}
}

// PowerOn transitions the machine to powered-on, refusing further config
// writes (per config.Options' OPT_LOCKED semantics) until PowerOff, per
// spec.md §7's power-on preconditions. Fails with errors.ChipRamMissing if
// no Chip RAM is configured.
func (a *Amiga) PowerOn() error {
	if len(a.Mem.Chip) == 0 {
		return errors.Errorf(errors.ChipRamMissingMsg)
	}
	a.Denise.Revision = deniseRevisionFromOptions(a.Instance.Options)
	a.Agnus.Revision = agnusRevisionFromOptions(a.Instance.Options)
	if v, ok := a.Instance.Options.Get(config.PointerDrop); ok {
		a.Agnus.PointerDropQuirk = v != "OFF"
	}
	if chipKB := len(a.Mem.Chip) * 2 / 1024; chipKB > a.Agnus.Revision.ChipRAMCeilingKB() {
		return errors.Errorf(errors.ChipRamTooLargeMsg, chipKB, a.Agnus.Revision.ChipRAMCeilingKB())
	}
	a.poweredOn = true
	logger.Log("amiga", "power on")
	return nil
}

// PowerOff transitions the machine to powered-off, re-enabling config
// writes.
func (a *Amiga) PowerOff() {
	a.poweredOn = false
	logger.Log("amiga", "power off")
}

// PoweredOn reports whether the machine is currently powered on.
func (a *Amiga) PoweredOn() bool { return a.poweredOn }

// Reset restores every subsystem to its power-on state. hard also zeroes
// Chip/Slow/Fast RAM (a soft reset, as CTRL-AMIGA-AMIGA performs, leaves RAM
// contents intact).
func (a *Amiga) Reset(hard bool) {
	a.Agnus.Reset()
	rev := a.Denise.Revision
	*a.Denise = *denise.New()
	a.Denise.Revision = rev
	for i := range a.Audio {
		a.Audio[i].Reset()
		a.audioCur[i] = 0
	}
	a.Disk.Reset()
	a.Interrupts.Reset()
	a.UART.Reset()
	a.CIAA.Reset()
	a.CIAB.Reset()
	a.regs.store.Reset()
	a.diskPtr = 0
	a.blitterWasRunning = false
	a.lastTODLine = -1

	a.clock = 0
	a.regq.Reset()
	a.initScheduler()

	if hard {
		for i := range a.Mem.Chip {
			a.Mem.Chip[i] = 0
		}
		for i := range a.Mem.Slow {
			a.Mem.Slow[i] = 0
		}
		for i := range a.Mem.Fast {
			a.Mem.Fast[i] = 0
		}
	}

	logger.Log("amiga", "reset")
}

// Options returns the instance's configuration store, the surface a
// retro-shell front end drives with typed Set/Get calls.
func (a *Amiga) Options() *config.Options { return a.Instance.Options }

// Execute advances the machine by exactly one DMA cycle: latches the beam
// position every slot handler for this cycle will see, advances the master
// clock, and lets the scheduler's execute_until drain this cycle's primary
// tier in spec.md §5's fixed order (REG, CIAA, CIAB, BPL, DAS, COP, BLT) —
// REG first, so a register change due this cycle is visible to the rest of
// the cycle's dispatch.
func (a *Amiga) Execute() {
	a.cycleH = a.Agnus.Beam.H
	a.cycleV = a.Agnus.Beam.V
	a.clock++
	a.sched.ExecuteUntil(a.clock)
}

// serviceRegSlot is the REG primary slot's handler: it applies every
// register change due this cycle, per spec.md §4.2's "a REG event pops it
// at the right cycle and calls the register's setter."
func (a *Amiga) serviceRegSlot(now scheduler.Cycle, id scheduler.EventID, data int64) {
	a.regq.ServiceDue(now)
	a.sched.ScheduleAbs(scheduler.SlotREG, now+1, 0, 0)
}

// serviceCIAASlot is the CIAA primary slot's handler: line-frequency TOD
// tick (shared with CIA-B, so only armed here), CIA-A's own timers/ICR, and
// the PORTS interrupt its IRQ line raises, per spec.md §4.8.
func (a *Amiga) serviceCIAASlot(now scheduler.Cycle, id scheduler.EventID, data int64) {
	if a.cycleH == 0 && a.cycleV != a.lastTODLine {
		a.CIAA.TickTOD()
		a.CIAB.TickTOD()
		a.lastTODLine = a.cycleV
	}
	a.CIAA.Execute()
	if a.CIAA.IRQ() {
		a.Interrupts.SetIntreq(1 << interrupts.PORTS)
	}
	a.sched.ScheduleAbs(scheduler.SlotCIAA, now+1, 0, 0)
}

// serviceCIABSlot is the CIAB primary slot's handler: CIA-B's timers/ICR
// and the EXTER interrupt its IRQ line raises.
func (a *Amiga) serviceCIABSlot(now scheduler.Cycle, id scheduler.EventID, data int64) {
	a.CIAB.Execute()
	if a.CIAB.IRQ() {
		a.Interrupts.SetIntreq(1 << interrupts.EXTER)
	}
	a.sched.ScheduleAbs(scheduler.SlotCIAB, now+1, 0, 0)
}

// serviceBPLSlot is the BPL primary slot's handler: it captures this
// column's draw marker before ticking Agnus (which performs the actual bus
// allocation — decideOwner's bitplane/copper/blitter arbitration — and
// advances the beam), then drives Denise's draw phase from the
// pre-tick marker, per spec.md §5's "bus allocation" step.
func (a *Amiga) serviceBPLSlot(now scheduler.Cycle, id scheduler.EventID, data int64) {
	drawEvt := a.Agnus.BplEventAt(a.cycleH)
	a.Agnus.Execute()
	if drawEvt.HasDrawOdd() || drawEvt.HasDrawEven() {
		a.Denise.Draw(a.cycleH, drawEvt.HasDrawOdd(), drawEvt.HasDrawEven())
	}
	a.sched.ScheduleAbs(scheduler.SlotBPL, now+1, 0, 0)
}

// serviceDASSlot is the DAS primary slot's handler: drains this column's
// disk/audio DAS-table event into the subsystem it targets, ticks every
// audio channel's period counter, and raises the audio/disk interrupts
// those subsystems request, per spec.md §4.2's DAS table and §4.7's DMA
// consumers.
func (a *Amiga) serviceDASSlot(now scheduler.Cycle, id scheduler.EventID, data int64) {
	a.serviceDAS(a.cycleH)

	audioBits := [4]interrupts.Bit{interrupts.AUD0, interrupts.AUD1, interrupts.AUD2, interrupts.AUD3}
	for i := range a.Audio {
		a.Audio[i].Tick()
		if a.Audio[i].InterruptPending {
			a.Interrupts.SetIntreq(1 << audioBits[i])
			a.Audio[i].InterruptPending = false
		}
	}

	if a.Disk.InterruptPending {
		a.Interrupts.SetIntreq(1 << interrupts.DSKBLK)
		a.Disk.InterruptPending = false
	}
	if a.Disk.SyncPending {
		a.Interrupts.SetIntreq(1 << interrupts.DSKSYN)
		a.Disk.SyncPending = false
	}

	a.sched.ScheduleAbs(scheduler.SlotDAS, now+1, 0, 0)
}

// serviceCOPSlot is the COP primary slot's handler. The copper's own
// stepping happens inside the BPL slot's bus-allocation call (decideOwner
// gives it priority over the blitter whenever it isn't idle): real Copper
// hardware has no interrupt source of its own (COPER in INTENA/INTREQ is
// software-set only), so this slot currently has no per-cycle bookkeeping
// to do beyond staying armed as a primary slot, a home for any such
// bookkeeping a later pass adds.
func (a *Amiga) serviceCOPSlot(now scheduler.Cycle, id scheduler.EventID, data int64) {
	a.sched.ScheduleAbs(scheduler.SlotCOP, now+1, 0, 0)
}

// serviceBLTSlot is the BLT primary slot's handler: the blitter's own
// stepping happens inside the BPL slot's bus-allocation call, so this slot
// carries the blitter's own edge-triggered bookkeeping, the BLIT interrupt
// raised the cycle the blitter transitions from running to stopped.
func (a *Amiga) serviceBLTSlot(now scheduler.Cycle, id scheduler.EventID, data int64) {
	if !a.Agnus.Blitter.Running() && a.blitterWasRunning {
		a.Interrupts.SetIntreq(1 << interrupts.BLIT)
	}
	a.blitterWasRunning = a.Agnus.Blitter.Running()
	a.sched.ScheduleAbs(scheduler.SlotBLT, now+1, 0, 0)
}

// serviceDAS drains this column's DAS event, if any, into the audio/disk
// subsystem it targets, per spec.md §4.2's DAS table and §4.7's DMA
// consumers.
func (a *Amiga) serviceDAS(h int) {
	evt, ok := a.Agnus.DasEventAt(h)
	if !ok {
		return
	}
	switch evt.Kind() {
	case sequencer.DasAudio:
		ch := evt.Index()
		if ch < 0 || ch >= 4 || !a.Audio[ch].DMARequested() {
			return
		}
		word := a.Mem.ReadWord(a.audioCur[ch])
		a.Audio[ch].SupplyWord(word)
		a.audioCur[ch] += 2
	case sequencer.DasDisk:
		if word, ok := a.Disk.DrainFIFO(); ok {
			a.Mem.WriteWord(a.diskPtr, word)
			a.diskPtr += 2
		}
	}
}

// audioChannelEnabled is called by the DMACON register handler on a
// rising edge of an AUDxEN bit: it reloads the channel's DMA pointer from
// AUDxLC, per spec.md §4.7's "AUDxLC reloads into the working pointer each
// time DMA is (re)enabled."
func (a *Amiga) audioChannelEnabled(ch int) {
	a.audioCur[ch] = a.Audio[ch].LC
	a.Audio[ch].SetEnabled(true)
}

func (a *Amiga) audioChannelDisabled(ch int) {
	a.Audio[ch].SetEnabled(false)
}

// Step advances the chipset by exactly one DMA cycle (8 master clocks).
// It is the finest granularity the execution core itself exposes; a CPU
// core drives its own instruction boundaries on top of this by calling
// Step once per bus cycle it grants to the chipset.
func (a *Amiga) Step() {
	a.Execute()
}

// Run drives Step in a loop until continue_ returns false, or indefinitely
// if continue_ is nil. It is the continuous-run counterpart to Step, the
// two ways hardware/doc.go says the core can be driven.
func (a *Amiga) Run(continue_ func() bool) {
	for continue_ == nil || continue_() {
		a.Step()
	}
}

// IPL reports the interrupt priority level currently asserted to the CPU,
// the signal an external 68000 core polls to decide whether to service an
// interrupt.
func (a *Amiga) IPL() int {
	return a.Interrupts.IPL()
}
