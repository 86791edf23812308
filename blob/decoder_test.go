package blob

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/confpack/errs"
	"github.com/arloliu/confpack/format"
)

func encodeTestTree(t *testing.T) []byte {
	t.Helper()

	enc, err := NewEncoder()
	require.NoError(t, err)

	enc.Begin()
	enc.WriteArray([]Value{
		StringValue("x"),
		IntValue(1),
		ArrayValue(BoolValue(true), BoolValue(false)),
	})

	return enc.Finish(nil, 1)
}

func TestDecoder_NestedHeterogeneousArray(t *testing.T) {
	payload := encodeTestTree(t)

	dec := NewDecoder()
	require.NoError(t, dec.Decode(payload, 1))

	arr, ok := dec.TakeArray()
	require.True(t, ok)
	require.Len(t, arr, 3)

	require.Equal(t, format.TypeString, arr[0].Kind())
	require.Equal(t, "x", arr[0].Str())

	require.Equal(t, format.TypeInteger, arr[1].Kind())
	require.Equal(t, int64(1), arr[1].Int())

	require.Equal(t, format.TypeArray, arr[2].Kind())
	inner := arr[2].Array()
	require.Len(t, inner, 2)
	require.True(t, inner[0].Bool())
	require.False(t, inner[1].Bool())

	// Every column is fully drained.
	_, ok = dec.TakeInt()
	require.False(t, ok)
	_, ok = dec.TakeTag()
	require.False(t, ok)
}

func TestDecoder_VersionMismatch(t *testing.T) {
	payload := encodeTestTree(t)

	dec := NewDecoder()
	require.ErrorIs(t, dec.Decode(payload, 2), errs.ErrVersionMismatch)
}

func TestDecoder_TruncatedPayload(t *testing.T) {
	payload := encodeTestTree(t)

	dec := NewDecoder()
	err := dec.Decode(payload[:len(payload)-1], 1)
	require.ErrorIs(t, err, errs.ErrTruncatedPayload)
}

func TestDecoder_EmptyInput(t *testing.T) {
	dec := NewDecoder()
	require.ErrorIs(t, dec.Decode(nil, 1), errs.ErrTruncatedPayload)
}

func TestDecoder_CorruptCounts(t *testing.T) {
	// A header announcing more values than the payload can hold must be
	// rejected before any queue is materialized.
	enc, err := NewEncoder()
	require.NoError(t, err)
	enc.Begin()
	payload := append([]byte(nil), enc.Finish(nil, 1)...)

	// Force the integer-count varint to a huge slot: flip the bits after the
	// version byte to the slot-6 prefix (six ones) plus a large payload.
	for i := 1; i < len(payload); i++ {
		payload[i] = 0xFF
	}
	dec := NewDecoder()
	require.Error(t, dec.Decode(payload, 1))
}

func TestDecoder_ColumnExhaustion(t *testing.T) {
	enc, err := NewEncoder()
	require.NoError(t, err)
	enc.Begin()
	enc.WriteInt(7)
	payload := enc.Finish(nil, 1)

	dec := NewDecoder()
	require.NoError(t, dec.Decode(payload, 1))

	v, ok := dec.TakeInt()
	require.True(t, ok)
	require.Equal(t, int64(7), v)

	// The schema reading past the column surfaces "missing".
	_, ok = dec.TakeInt()
	require.False(t, ok)
	_, ok = dec.TakeArray()
	require.False(t, ok)
}

func TestDecoder_TakeArrayLengthBeyondTags(t *testing.T) {
	// An array length larger than the remaining tag column is corruption.
	enc, err := NewEncoder()
	require.NoError(t, err)
	enc.Begin()
	enc.WriteInt(100) // claims 100 elements, but no tags follow
	payload := enc.Finish(nil, 1)

	dec := NewDecoder()
	require.NoError(t, dec.Decode(payload, 1))

	_, ok := dec.TakeArray()
	require.False(t, ok)
}

func TestDecoder_ReuseAcrossPayloads(t *testing.T) {
	dec := NewDecoder()

	for range 3 {
		payload := encodeTestTree(t)
		require.NoError(t, dec.Decode(payload, 1))

		arr, ok := dec.TakeArray()
		require.True(t, ok)
		require.Len(t, arr, 3)
	}
}
