package blitter

// shift implements the blitter's barrel shifter: "ahold = shift(anew & mask,
// aold, ASH, desc)" from spec.md §4.5. In ascending mode bits flow in from
// the low end of cur and out through the low end of prev (a logical
// right-shift merging the two words); descending mode mirrors this with a
// left-shift, matching DESC's pointer-decrement direction.
func shift(cur, prev uint16, amount uint, desc bool) uint16 {
	amount &= 0xF
	if amount == 0 {
		return cur
	}
	if !desc {
		return (prev << (16 - amount)) | (cur >> amount)
	}
	return (prev >> (16 - amount)) | (cur << amount)
}
