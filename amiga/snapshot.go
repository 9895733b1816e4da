package amiga

import (
	"bytes"
	"encoding/binary"
	"io"

	"github.com/pixelforge/amigacore/errors"
)

// snapshot format version. Bumped whenever the binary layout changes in a
// way that breaks compatibility; a snapshot whose version doesn't match is
// rejected rather than partially restored, per spec.md §6.
const (
	snapMajor = 1
	snapMinor = 0
	snapSub   = 0
	snapBeta  = 0 // non-zero marks a development build's snapshot format
)

var snapMagic = [6]byte{'V', 'A', 'S', 'N', 'A', 'P'}

// SaveSnapshot serializes machine state to w: the magic header, version
// quad, then Chip/Slow/Fast RAM, the beam position (frame, line, column),
// DMACON, INTREQ and INTENA, in that order. No other register and no other
// subsystem state (CIAs, blitter, copper, Denise, audio, disk) is saved.
func (a *Amiga) SaveSnapshot(w io.Writer) error {
	var buf bytes.Buffer
	buf.Write(snapMagic[:])
	buf.WriteByte(snapMajor)
	buf.WriteByte(snapMinor)
	buf.WriteByte(snapSub)
	buf.WriteByte(snapBeta)

	write16 := func(v uint16) { binary.Write(&buf, binary.BigEndian, v) }
	write32 := func(v uint32) { binary.Write(&buf, binary.BigEndian, v) }
	writeWords := func(words []uint16) {
		write32(uint32(len(words)))
		for _, w := range words {
			write16(w)
		}
	}

	writeWords(a.Mem.Chip)
	writeWords(a.Mem.Slow)
	writeWords(a.Mem.Fast)

	write32(uint32(a.Agnus.Beam.Frame))
	write32(uint32(a.Agnus.Beam.V))
	write32(uint32(a.Agnus.Beam.H))
	write16(a.Agnus.DMACON)

	write16(a.Interrupts.Intreq)
	write16(a.Interrupts.Intena)

	_, err := w.Write(buf.Bytes())
	return err
}

// LoadSnapshot restores machine state previously written by SaveSnapshot.
// Per spec.md §6/§7, a header mismatch is reported with the matching
// curated error rather than attempting a best-effort partial restore:
// SNAP_CORRUPTED for a bad magic, SNAP_TOO_OLD/SNAP_TOO_NEW for a
// major-version mismatch, SNAP_IS_BETA for a beta-format snapshot when this
// build is not itself a beta build.
func (a *Amiga) LoadSnapshot(r io.Reader) error {
	var header [10]byte
	if _, err := io.ReadFull(r, header[:]); err != nil {
		return errors.Errorf(errors.SnapCorruptedMsg, "truncated header")
	}
	if !bytes.Equal(header[:6], snapMagic[:]) {
		return errors.Errorf(errors.SnapCorruptedMsg, "bad magic")
	}

	major, minor, sub, beta := header[6], header[7], header[8], header[9]
	if major < snapMajor {
		return errors.Errorf(errors.SnapTooOldMsg, major)
	}
	if major > snapMajor {
		return errors.Errorf(errors.SnapTooNewMsg, major)
	}
	if beta != 0 && snapBeta == 0 {
		return errors.Errorf(errors.SnapIsBetaMsg, beta)
	}
	_ = minor
	_ = sub

	readWords := func(dst []uint16) error {
		var n uint32
		if err := binary.Read(r, binary.BigEndian, &n); err != nil {
			return errors.Errorf(errors.SnapCorruptedMsg, "word count")
		}
		if int(n) != len(dst) {
			return errors.Errorf(errors.SnapCorruptedMsg, "RAM size mismatch")
		}
		return binary.Read(r, binary.BigEndian, dst)
	}

	if err := readWords(a.Mem.Chip); err != nil {
		return err
	}
	if err := readWords(a.Mem.Slow); err != nil {
		return err
	}
	if err := readWords(a.Mem.Fast); err != nil {
		return err
	}

	var frame, v, h uint32
	if err := binary.Read(r, binary.BigEndian, &frame); err != nil {
		return errors.Errorf(errors.SnapCorruptedMsg, "beam frame")
	}
	if err := binary.Read(r, binary.BigEndian, &v); err != nil {
		return errors.Errorf(errors.SnapCorruptedMsg, "beam v")
	}
	if err := binary.Read(r, binary.BigEndian, &h); err != nil {
		return errors.Errorf(errors.SnapCorruptedMsg, "beam h")
	}
	a.Agnus.Beam.Frame = int(frame)
	a.Agnus.Beam.V = int(v)
	a.Agnus.Beam.H = int(h)

	if err := binary.Read(r, binary.BigEndian, &a.Agnus.DMACON); err != nil {
		return errors.Errorf(errors.SnapCorruptedMsg, "DMACON")
	}
	if err := binary.Read(r, binary.BigEndian, &a.Interrupts.Intreq); err != nil {
		return errors.Errorf(errors.SnapCorruptedMsg, "INTREQ")
	}
	if err := binary.Read(r, binary.BigEndian, &a.Interrupts.Intena); err != nil {
		return errors.Errorf(errors.SnapCorruptedMsg, "INTENA")
	}

	return nil
}
