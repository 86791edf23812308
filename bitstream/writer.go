package bitstream

import (
	"fmt"

	"github.com/arloliu/confpack/endian"
)

// Writer appends bits MSB-first to a byte buffer.
//
// The buffer always holds at least one byte after Reset; bitOffset counts the
// bits already written into the last byte (0..8, where 0 means the last byte
// is a zeroed placeholder waiting for its first bit). New bytes are pre-zeroed
// so writes can OR bits in, and unused tail bits stay zero.
type Writer struct {
	buf       []byte
	engine    endian.EndianEngine
	bitOffset uint8
}

// NewWriter creates a Writer emitting into buf, which is reset and reused.
// Pass nil to let the writer allocate. The engine converts multi-byte integer
// payloads to their little-endian wire form.
func NewWriter(buf []byte, engine endian.EndianEngine) *Writer {
	w := &Writer{engine: engine}
	w.Reset(buf)

	return w
}

// Reset discards all written bits and re-arms the writer over buf.
// The previous buffer is abandoned; pass it back in to reuse its capacity.
func (w *Writer) Reset(buf []byte) {
	w.buf = append(buf[:0], 0)
	w.bitOffset = 0
}

// Bytes returns the emitted bytes. The final byte's unused low bits are zero.
// The returned slice aliases the writer's buffer and is valid until the next
// write or Reset.
func (w *Writer) Bytes() []byte {
	return w.buf
}

// BitLen returns the total number of bits written since the last Reset.
func (w *Writer) BitLen() int {
	return (len(w.buf)-1)*8 + int(w.bitOffset)
}

func (w *Writer) ensureSpace() {
	if w.bitOffset == 8 {
		w.buf = append(w.buf, 0)
		w.bitOffset = 0
	}
}

// WriteBit appends a single bit.
func (w *Writer) WriteBit(bit bool) {
	w.ensureSpace()
	if bit {
		w.buf[len(w.buf)-1] |= 1 << (7 - w.bitOffset)
	}
	w.bitOffset++
}

// WriteBits appends the low width bits of bits, MSB-first. width must be in
// 1..8; the value is masked to width bits. Splits across a byte boundary when
// the current byte lacks space.
func (w *Writer) WriteBits(bits uint8, width uint8) {
	if width == 0 || width > 8 {
		panic(fmt.Sprintf("bitstream: WriteBits width %d out of range 1..8", width))
	}

	w.ensureSpace()
	bits &= uint8(uint16(1)<<width - 1)
	space := 8 - w.bitOffset
	last := len(w.buf) - 1

	if width <= space {
		w.buf[last] |= bits << (space - width)
		w.bitOffset += width
	} else {
		overflow := width - space
		w.buf[last] |= bits >> overflow
		w.buf = append(w.buf, bits<<(8-overflow))
		w.bitOffset = overflow
	}
}

// WriteByte appends 8 bits. Fast-paths when the stream is byte-aligned.
func (w *Writer) WriteByte(b byte) {
	w.ensureSpace()
	last := len(w.buf) - 1

	if w.bitOffset == 0 {
		w.buf[last] = b
		w.bitOffset = 8
	} else {
		w.buf[last] |= b >> w.bitOffset
		w.buf = append(w.buf, b<<(8-w.bitOffset))
	}
}

// WriteBytes appends each byte of data in order.
func (w *Writer) WriteBytes(data []byte) {
	for _, b := range data {
		w.WriteByte(b)
	}
}

// WriteUintWidth appends the low width bits of v, width in 1..64.
//
// This is the canonical N-bit integer emitter: the high fragment
// (width mod 8 bits, if any) is written first, then full bytes from most to
// least significant of the little-endian representation of v.
func (w *Writer) WriteUintWidth(v uint64, width uint8) {
	if width == 0 || width > 64 {
		panic(fmt.Sprintf("bitstream: WriteUintWidth width %d out of range 1..64", width))
	}

	var le [8]byte
	w.engine.PutUint64(le[:], v)

	highBits := width % 8
	fullBytes := int(width / 8)

	if highBits > 0 {
		w.WriteBits(le[fullBytes], highBits)
	}
	for i := fullBytes - 1; i >= 0; i-- {
		w.WriteByte(le[i])
	}
}
