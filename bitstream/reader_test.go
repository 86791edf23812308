package bitstream

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/confpack/endian"
)

func TestReader_ReadBit(t *testing.T) {
	r := NewReader([]byte{0b11110000, 0b10101010})

	for i := range 8 {
		bit, ok := r.ReadBit()
		require.True(t, ok)
		require.Equal(t, i < 4, bit, "bit %d", i)
	}

	bits, ok := r.ReadBits(4)
	require.True(t, ok)
	require.Equal(t, uint8(0b1010), bits)

	bits, ok = r.ReadBits(4)
	require.True(t, ok)
	require.Equal(t, uint8(0b1010), bits)

	_, ok = r.ReadBit()
	require.False(t, ok)
}

func TestReader_ReadBits_CrossByte(t *testing.T) {
	r := NewReader([]byte{0b10111110, 0b00000000})

	bits, ok := r.ReadBits(3)
	require.True(t, ok)
	require.Equal(t, uint8(0b101), bits)

	b, ok := r.ReadBits(8)
	require.True(t, ok)
	require.Equal(t, uint8(0b11110000), b)
}

func TestReader_ReadByte(t *testing.T) {
	r := NewReader([]byte{0xDE, 0xAD, 0xBE, 0xEF})

	data, ok := r.ReadBytes(2)
	require.True(t, ok)
	require.Equal(t, []byte{0xDE, 0xAD}, data)

	data, ok = r.ReadBytes(2)
	require.True(t, ok)
	require.Equal(t, []byte{0xBE, 0xEF}, data)

	_, ok = r.ReadByte()
	require.False(t, ok)
}

func TestReader_ReadUintWidth(t *testing.T) {
	r := NewReader([]byte{0xAB, 0xC0})

	v, ok := r.ReadUintWidth(12)
	require.True(t, ok)
	require.Equal(t, uint64(0xABC), v)
}

func TestReader_ReadUintWidth_Truncated(t *testing.T) {
	r := NewReader([]byte{0xAB})

	_, ok := r.ReadUintWidth(12)
	require.False(t, ok)
}

func TestReader_PeekBits(t *testing.T) {
	r := NewReader([]byte{0b10110100, 0b11000000})

	window, avail := r.PeekBits(12)
	require.Equal(t, uint8(12), avail)
	require.Equal(t, uint16(0b101101001100), window)

	// Peeking does not advance.
	bit, ok := r.ReadBit()
	require.True(t, ok)
	require.True(t, bit)
}

func TestReader_PeekBits_ZeroPadsOnUnderflow(t *testing.T) {
	r := NewReader([]byte{0b10100000})
	require.True(t, r.SkipBits(4))

	// Only 4 real bits remain; the low 8 bits of the window must be zero.
	window, avail := r.PeekBits(12)
	require.Equal(t, uint8(4), avail)
	require.Equal(t, uint16(0b000000000000), window)
}

func TestReader_SkipBits(t *testing.T) {
	r := NewReader([]byte{0xFF, 0x0F})

	require.True(t, r.SkipBits(12))
	require.Equal(t, 4, r.BitsRemaining())

	bits, ok := r.ReadBits(4)
	require.True(t, ok)
	require.Equal(t, uint8(0xF), bits)

	require.False(t, r.SkipBits(1))
}

func TestReader_BitsRemaining(t *testing.T) {
	r := NewReader([]byte{0xAA, 0xBB})
	require.Equal(t, 16, r.BitsRemaining())

	_, ok := r.ReadBits(3)
	require.True(t, ok)
	require.Equal(t, 13, r.BitsRemaining())
}

func TestStream_WriteReadInverse(t *testing.T) {
	w := NewWriter(nil, endian.GetLittleEndianEngine())

	w.WriteBits(0b101, 3)
	w.WriteBits(0b11110000, 8)
	w.WriteBit(true)
	w.WriteBytes([]byte{0xAB, 0xCD})
	w.WriteUintWidth(123456789, 45)
	w.WriteUintWidth(5, 3)

	r := NewReader(w.Bytes())

	bits, ok := r.ReadBits(3)
	require.True(t, ok)
	require.Equal(t, uint8(0b101), bits)

	b8, ok := r.ReadBits(8)
	require.True(t, ok)
	require.Equal(t, uint8(0b11110000), b8)

	bit, ok := r.ReadBit()
	require.True(t, ok)
	require.True(t, bit)

	data, ok := r.ReadBytes(2)
	require.True(t, ok)
	require.Equal(t, []byte{0xAB, 0xCD}, data)

	v, ok := r.ReadUintWidth(45)
	require.True(t, ok)
	require.Equal(t, uint64(123456789), v)

	v, ok = r.ReadUintWidth(3)
	require.True(t, ok)
	require.Equal(t, uint64(5), v)

	// The reader is at or just past the last written bit.
	require.Less(t, r.BitsRemaining(), 8)
}
