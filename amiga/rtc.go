package amiga

import "time"

// RTC is the battery-backed real-time clock peripheral, memory-mapped
// alongside the custom chip window on an A2000/A3000 (the A500/A1000 only
// have it as an add-on). SPEC_FULL.md's supplemented "RTC stub" feature:
// named in spec.md §1's scope but otherwise unspecified, so this models
// only what a guest OS actually reads, six 8-bit BCD date/time registers,
// not the full Ricoh/Oki part number's control bits.
type RTC struct {
	// FixedTime, when non-nil, is returned instead of the host clock —
	// used by regression tests and snapshot round-trips that must not
	// depend on wall-clock time.
	FixedTime *time.Time
}

// NewRTC returns an RTC backed by the host clock.
func NewRTC() *RTC { return &RTC{} }

func (r *RTC) now() time.Time {
	if r.FixedTime != nil {
		return *r.FixedTime
	}
	return time.Now()
}

func bcd(n int) uint8 {
	return uint8(n/10)<<4 | uint8(n%10)
}

// ReadRegister returns one BCD nibble-pair of the clock, indexed the way
// the guest OS's clock.resource driver walks the register file: 0=seconds,
// 1=minutes, 2=hours, 3=day of month, 4=month, 5=year (since 2000).
func (r *RTC) ReadRegister(index int) uint8 {
	t := r.now()
	switch index {
	case 0:
		return bcd(t.Second())
	case 1:
		return bcd(t.Minute())
	case 2:
		return bcd(t.Hour())
	case 3:
		return bcd(t.Day())
	case 4:
		return bcd(int(t.Month()))
	case 5:
		return bcd(t.Year() % 100)
	}
	return 0
}
