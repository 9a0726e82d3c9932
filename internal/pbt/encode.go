package pbt

import "encoding/binary"

// EncodeCase serialises a value tuple into the driver module's binary
// case format: n (u32 LE) · off[0..n+1] (u32 LE each) · payload. Each
// offset demarcates its parameter's byte range within payload; for
// i32 the range is its little-endian bytes, for bytes it is the bytes
// themselves.
func EncodeCase(values []Value) []byte {
	n := len(values)
	segments := make([][]byte, n)
	for i, v := range values {
		switch v.Kind {
		case KindI32:
			seg := make([]byte, 4)
			binary.LittleEndian.PutUint32(seg, uint32(v.I32))
			segments[i] = seg
		case KindBytes:
			segments[i] = v.Bytes
		}
	}

	offsets := make([]uint32, n+1)
	var cursor uint32
	for i, seg := range segments {
		offsets[i] = cursor
		cursor += uint32(len(seg))
	}
	offsets[n] = cursor

	headerLen := 4 + 4*(n+1)
	out := make([]byte, headerLen, headerLen+int(cursor))
	binary.LittleEndian.PutUint32(out[0:4], uint32(n))
	for i, off := range offsets {
		binary.LittleEndian.PutUint32(out[4+4*i:8+4*i], off)
	}
	for _, seg := range segments {
		out = append(out, seg...)
	}
	return out
}
