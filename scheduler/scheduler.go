package scheduler

// EventID distinguishes which event fired within a slot; slots that only
// ever hold one kind of event (eg. SlotCOP) typically ignore it, while
// slots shared by several distinct wakeups (eg. SlotBLT, which fields
// BLT_STRT1, BLT_STRT2 and the micro-instruction steps) switch on it.
type EventID int

// Handler is the callback invoked when a slot's event comes due. now is the
// cycle the scheduler has advanced to; data is whatever payload was passed
// to Schedule. A handler may call Schedule/Reschedule/Cancel on any slot,
// including its own, but must not call Execute (spec.md §4.1: "must not
// re-enter execute_until").
type Handler func(now Cycle, id EventID, data int64)

// event is one slot's pending wakeup.
type event struct {
	trigger Cycle
	id      EventID
	data    int64
}

// Scheduler is the slotted, priority-tiered dispatcher. The zero value is
// not usable; use New.
type Scheduler struct {
	slots       [numSlots]event
	handlers    [numSlots]Handler
	nextTrigger Cycle
	clock       Cycle
}

// New returns a Scheduler with every slot cancelled (trigger set to Never).
func New() *Scheduler {
	s := &Scheduler{nextTrigger: Never}
	for i := range s.slots {
		s.slots[i].trigger = Never
	}
	return s
}

// Bind registers the handler invoked when slot comes due. Must be called
// for every slot the caller intends to schedule before the scheduler is
// first run; an unbound slot that comes due is consumed without any
// handler being called.
func (s *Scheduler) Bind(slot Slot, h Handler) {
	s.handlers[slot] = h
}

// Now returns the cycle the scheduler has advanced to.
func (s *Scheduler) Now() Cycle { return s.clock }

// NextTrigger returns the earliest cycle any primary-tier slot (including
// the SEC aggregate) is due, spec.md §4.1's hot-path single variable.
func (s *Scheduler) NextTrigger() Cycle { return s.nextTrigger }

// ScheduleAbs arms slot to fire at the given absolute cycle, propagating the
// new trigger up to SEC/TER/nextTrigger if it is earlier than what those
// currently hold (spec.md §3 invariant 3).
func (s *Scheduler) ScheduleAbs(slot Slot, cycle Cycle, id EventID, data int64) {
	s.slots[slot] = event{trigger: cycle, id: id, data: data}
	s.percolate(slot, cycle)
}

// ScheduleRel arms slot to fire delta cycles from now.
func (s *Scheduler) ScheduleRel(slot Slot, delta Cycle, id EventID, data int64) {
	s.ScheduleAbs(slot, s.clock+delta, id, data)
}

// RescheduleAbs changes slot's trigger without touching its id/data,
// re-percolating the tier aggregates exactly as ScheduleAbs does.
func (s *Scheduler) RescheduleAbs(slot Slot, cycle Cycle) {
	s.slots[slot].trigger = cycle
	s.percolate(slot, cycle)
}

// Cancel sets slot's trigger to Never. The tier aggregates are recomputed
// lazily (on the next dispatch that visits that tier), matching spec.md
// §4.1's "SEC/TER min-triggers are recomputed on next dispatch."
func (s *Scheduler) Cancel(slot Slot) {
	s.slots[slot].trigger = Never
	if slot < secondaryStart {
		s.recomputePrimary()
	}
}

// IsDue reports whether slot's trigger has been reached.
func (s *Scheduler) IsDue(slot Slot, now Cycle) bool {
	return s.slots[slot].trigger <= now
}

// HasEvent reports whether slot currently holds a live (non-cancelled)
// event.
func (s *Scheduler) HasEvent(slot Slot) bool {
	return s.slots[slot].trigger != Never
}

// Trigger returns slot's current trigger cycle.
func (s *Scheduler) Trigger(slot Slot) Cycle { return s.slots[slot].trigger }

// Data returns slot's current payload.
func (s *Scheduler) Data(slot Slot) int64 { return s.slots[slot].data }

// percolate propagates a newly-armed trigger up through SEC/TER/nextTrigger
// whenever it is earlier than what they currently record. It never has to
// chase the trigger back down (that only happens via Cancel, handled above)
// because a later trigger can never invalidate an aggregate that is already
// earlier.
func (s *Scheduler) percolate(slot Slot, trigger Cycle) {
	switch {
	case slot >= tertiaryStart:
		if trigger < s.slots[SlotTER].trigger {
			s.slots[SlotTER].trigger = trigger
		}
		if trigger < s.slots[SlotSEC].trigger {
			s.slots[SlotSEC].trigger = trigger
		}
		if trigger < s.nextTrigger {
			s.nextTrigger = trigger
		}
	case slot >= secondaryStart:
		if trigger < s.slots[SlotSEC].trigger {
			s.slots[SlotSEC].trigger = trigger
		}
		if trigger < s.nextTrigger {
			s.nextTrigger = trigger
		}
	default:
		if trigger < s.nextTrigger {
			s.nextTrigger = trigger
		}
	}
}

func (s *Scheduler) recomputePrimary() {
	min := Never
	for _, sl := range primaryOrder {
		if s.slots[sl].trigger < min {
			min = s.slots[sl].trigger
		}
	}
	if s.slots[SlotSEC].trigger < min {
		min = s.slots[SlotSEC].trigger
	}
	s.nextTrigger = min
}

func (s *Scheduler) recomputeSecondary() {
	min := Never
	for _, sl := range secondaryOrder {
		if s.slots[sl].trigger < min {
			min = s.slots[sl].trigger
		}
	}
	if s.slots[SlotTER].trigger < min {
		min = s.slots[SlotTER].trigger
	}
	s.slots[SlotSEC].trigger = min
}

func (s *Scheduler) recomputeTertiary() {
	min := Never
	for _, sl := range tertiaryOrder {
		if s.slots[sl].trigger < min {
			min = s.slots[sl].trigger
		}
	}
	s.slots[SlotTER].trigger = min
}

// fire consumes slot's event (its trigger returns to Never) and invokes the
// slot's handler if bound, with the event's id/data; a handler that wants
// to fire again reschedules its slot.
func (s *Scheduler) fire(slot Slot) {
	ev := s.slots[slot]
	s.slots[slot].trigger = Never
	h := s.handlers[slot]
	if h == nil {
		return
	}
	h(s.clock, ev.id, ev.data)
}

// ExecuteUntil advances the scheduler's clock to now and drains every due
// event, implementing spec.md §4.1's four-step dispatch exactly:
//
//  1. primary slots in fixed order (REG first, so same-cycle register
//     writes are visible to same-cycle DMA);
//  2. if SEC is due, secondary slots in fixed order, then SEC recomputed;
//  3. if TER is due (discovered while servicing secondary slots), tertiary
//     slots in fixed order, then TER recomputed;
//  4. nextTrigger recomputed as min(primary 0..SEC).
func (s *Scheduler) ExecuteUntil(now Cycle) {
	s.clock = now

	for _, slot := range primaryOrder {
		if s.IsDue(slot, now) {
			s.fire(slot)
		}
	}

	if s.IsDue(SlotSEC, now) {
		for _, slot := range secondaryOrder {
			if slot == SlotTER {
				if s.IsDue(SlotTER, now) {
					for _, t := range tertiaryOrder {
						if s.IsDue(t, now) {
							s.fire(t)
						}
					}
					s.recomputeTertiary()
				}
				continue
			}
			if s.IsDue(slot, now) {
				s.fire(slot)
			}
		}
		s.recomputeSecondary()
	}

	s.recomputePrimary()
}
