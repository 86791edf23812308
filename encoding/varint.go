package encoding

import "github.com/arloliu/confpack/bitstream"

// intWidths are the payload widths selected by the unary prefix, biased
// toward smaller values: prefixes 0, 10, 110, 1110, 11110, 111110, 111111.
var intWidths = [7]uint8{3, 7, 9, 15, 24, 45, 64}

// PutVarInt encodes v as a unary-prefixed variable-length integer.
//
// The slot is the smallest k such that v fits in intWidths[k] bits; the final
// slot always fits. The prefix is k one-bits followed by a terminating zero,
// except in the final slot where the six one-bits are unambiguous on their own.
//
// Callers must pass 0 <= v < 2^63. Negative values select slot 0 through the
// signed comparison and do not round-trip; the columnar layer documents this
// contract and leaves sign handling (zigzag) to schemas that need it.
func PutVarInt(w *bitstream.Writer, v int64) {
	slot := varIntSlot(v)

	for range slot {
		w.WriteBit(true)
	}
	if slot < len(intWidths)-1 {
		w.WriteBit(false)
	}

	w.WriteUintWidth(uint64(v), intWidths[slot])
}

// ReadVarInt decodes an integer written by PutVarInt.
func ReadVarInt(r *bitstream.Reader) (int64, bool) {
	slot := 0
	for slot < len(intWidths)-1 {
		bit, ok := r.ReadBit()
		if !ok {
			return 0, false
		}
		if !bit {
			break
		}
		slot++
	}

	v, ok := r.ReadUintWidth(intWidths[slot])
	if !ok {
		return 0, false
	}

	return int64(v), true
}

// VarIntBits returns the exact number of bits PutVarInt emits for v,
// including the prefix. Used by the string driver's cost estimator.
func VarIntBits(v int64) int {
	slot := varIntSlot(v)

	prefix := slot + 1
	if slot == len(intWidths)-1 {
		prefix = slot
	}

	return prefix + int(intWidths[slot])
}

func varIntSlot(v int64) int {
	for k, w := range intWidths {
		if w >= 64 || v < int64(1)<<w {
			return k
		}
	}

	return len(intWidths) - 1
}
