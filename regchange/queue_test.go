package regchange_test

import (
	"testing"

	"github.com/pixelforge/amigacore/hardware/memory/bus"
	"github.com/pixelforge/amigacore/hardware/memory/custom"
	"github.com/pixelforge/amigacore/regchange"
	"github.com/pixelforge/amigacore/scheduler"
	"github.com/pixelforge/amigacore/test"
)

func TestServiceDueAppliesInCycleOrder(t *testing.T) {
	q := regchange.NewQueue(regchange.DefaultCapacity)

	var applied []uint16
	setter := func(v uint16) { applied = append(applied, v) }

	q.Record(10, custom.DMACON, 0x8200, bus.CPU, setter)
	q.Record(5, custom.BPLCON0, 0x1200, bus.CPU, setter)
	q.Record(10, custom.BLTSIZE, 0x0041, bus.Agnus, setter)

	q.ServiceDue(7)
	test.Equate(t, applied, []uint16{0x1200})
	test.Equate(t, q.Len(), 2)

	q.ServiceDue(10)
	test.Equate(t, applied, []uint16{0x1200, 0x8200, 0x0041})
	test.Equate(t, q.Len(), 0)
}

func TestQueueRejectsBeyondCapacity(t *testing.T) {
	q := regchange.NewQueue(2)
	ok1 := q.Record(1, custom.DMACON, 0, bus.CPU, func(uint16) {})
	ok2 := q.Record(2, custom.DMACON, 0, bus.CPU, func(uint16) {})
	ok3 := q.Record(3, custom.DMACON, 0, bus.CPU, func(uint16) {})

	test.ExpectSuccess(t, ok1)
	test.ExpectSuccess(t, ok2)
	test.ExpectFailure(t, ok3)
}

func TestNextCycleEmptyIsNever(t *testing.T) {
	q := regchange.NewQueue(regchange.DefaultCapacity)
	test.Equate(t, q.NextCycle(), scheduler.Never)
}
