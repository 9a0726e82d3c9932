package pbt

// maxUnitShrinkSteps bounds the unit-decrement tail of shrinkI32: a
// value this far from zero almost always shrinks below the budget's
// max_shrinks attempt cap before the tail is ever exhausted, and the
// cap just keeps a pathological |v| from allocating an unbounded
// candidate slice up front.
const maxUnitShrinkSteps = 4096

// shrinkI32 proposes, in order: 0, then v halved repeatedly toward 0,
// then v stepped by 1 toward 0 — every candidate unique and excluding
// v itself.
func shrinkI32(v int32) []int32 {
	if v == 0 {
		return nil
	}
	seen := map[int32]bool{v: true}
	out := make([]int32, 0, 8)
	add := func(c int32) {
		if seen[c] {
			return
		}
		seen[c] = true
		out = append(out, c)
	}
	add(0)
	for d := v; d != 0; {
		d /= 2
		if seen[d] {
			break
		}
		add(d)
	}
	step := int32(-1)
	if v < 0 {
		step = 1
	}
	c := v
	for i := 0; i < maxUnitShrinkSteps; i++ {
		c += step
		add(c)
		if c == 0 {
			break
		}
	}
	return out
}

// shrinkBytes proposes progressively shorter prefixes down to empty,
// then for each byte index proposes 0, b[i]/2, b[i]-1 in place — every
// candidate unique and excluding b's own length/byte value.
func shrinkBytes(b []byte) [][]byte {
	out := make([][]byte, 0, len(b))
	for n := len(b) / 2; n > 0; n /= 2 {
		out = append(out, append([]byte(nil), b[:n]...))
	}
	if len(b) > 0 {
		out = append(out, []byte{})
	}
	for i := range b {
		orig := b[i]
		seen := map[byte]bool{orig: true}
		tryReplace := func(repl byte) {
			if seen[repl] {
				return
			}
			seen[repl] = true
			cand := append([]byte(nil), b...)
			cand[i] = repl
			out = append(out, cand)
		}
		tryReplace(0)
		tryReplace(orig / 2)
		if orig > 0 {
			tryReplace(orig - 1)
		}
	}
	return out
}
