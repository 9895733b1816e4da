package amiga_test

import (
	"bytes"
	"testing"

	"github.com/pixelforge/amigacore/amiga"
	"github.com/pixelforge/amigacore/beam"
	"github.com/pixelforge/amigacore/errors"
	"github.com/pixelforge/amigacore/hardware/memory/memorymap"
	"github.com/pixelforge/amigacore/test"
)

func TestSnapshotRoundTripsRAMAndBeamPosition(t *testing.T) {
	a := amiga.New(memorymap.A500, 512, 0, 0, beam.PAL)
	test.ExpectSuccess(t, a.PowerOn())

	a.Mem.Chip[10] = 0xBEEF
	for i := 0; i < 5; i++ {
		a.Execute()
	}

	var buf bytes.Buffer
	test.ExpectSuccess(t, a.SaveSnapshot(&buf))

	b := amiga.New(memorymap.A500, 512, 0, 0, beam.PAL)
	test.ExpectSuccess(t, b.PowerOn())
	test.ExpectSuccess(t, b.LoadSnapshot(&buf))

	test.Equate(t, b.Mem.Chip[10], uint16(0xBEEF))
	test.Equate(t, b.Agnus.Beam.H, a.Agnus.Beam.H)
	test.Equate(t, b.Agnus.Beam.V, a.Agnus.Beam.V)
	test.Equate(t, b.Agnus.Beam.Frame, a.Agnus.Beam.Frame)
}

func TestSnapshotRejectsBadMagic(t *testing.T) {
	a := amiga.New(memorymap.A500, 512, 0, 0, beam.PAL)
	test.ExpectSuccess(t, a.PowerOn())

	err := a.LoadSnapshot(bytes.NewReader([]byte("not a snapshot at all")))
	test.ExpectFailure(t, err)
	test.Equate(t, errors.Is(err, errors.SnapCorruptedMsg), true)
}

func TestSnapshotRejectsNewerMajorVersion(t *testing.T) {
	a := amiga.New(memorymap.A500, 512, 0, 0, beam.PAL)
	test.ExpectSuccess(t, a.PowerOn())

	header := []byte{'V', 'A', 'S', 'N', 'A', 'P', 99, 0, 0, 0}
	err := a.LoadSnapshot(bytes.NewReader(header))
	test.ExpectFailure(t, err)
	test.Equate(t, errors.Is(err, errors.SnapTooNewMsg), true)
}

func TestSnapshotRejectsOlderMajorVersion(t *testing.T) {
	a := amiga.New(memorymap.A500, 512, 0, 0, beam.PAL)
	test.ExpectSuccess(t, a.PowerOn())

	header := []byte{'V', 'A', 'S', 'N', 'A', 'P', 0, 0, 0, 0}
	err := a.LoadSnapshot(bytes.NewReader(header))
	test.ExpectFailure(t, err)
	test.Equate(t, errors.Is(err, errors.SnapTooOldMsg), true)
}

func TestSnapshotMismatchedRAMSizeIsCorrupted(t *testing.T) {
	a := amiga.New(memorymap.A500, 512, 0, 0, beam.PAL)
	test.ExpectSuccess(t, a.PowerOn())

	var buf bytes.Buffer
	test.ExpectSuccess(t, a.SaveSnapshot(&buf))

	b := amiga.New(memorymap.A500, 256, 0, 0, beam.PAL)
	test.ExpectSuccess(t, b.PowerOn())

	err := b.LoadSnapshot(&buf)
	test.ExpectFailure(t, err)
	test.Equate(t, errors.Is(err, errors.SnapCorruptedMsg), true)
}
