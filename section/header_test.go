package section

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/confpack/bitstream"
	"github.com/arloliu/confpack/endian"
	"github.com/arloliu/confpack/errs"
)

func TestHeader_RoundTrip(t *testing.T) {
	h := Header{
		Version:     1,
		IntCount:    3,
		BoolCount:   2,
		StringCount: 1,
		TagCount:    5,
		AllASCII:    true,
	}

	w := bitstream.NewWriter(nil, endian.GetLittleEndianEngine())
	h.Write(w)

	var got Header
	require.NoError(t, got.Read(bitstream.NewReader(w.Bytes())))
	require.Equal(t, h, got)
}

func TestHeader_EmptyPayloadSize(t *testing.T) {
	// An empty payload is just the header: 8 version bits, four zero varints
	// of 4 bits each, and the all-ASCII bit -> 25 bits -> 4 bytes.
	h := Header{Version: 1, AllASCII: true}

	w := bitstream.NewWriter(nil, endian.GetLittleEndianEngine())
	h.Write(w)
	require.Equal(t, 25, w.BitLen())
	require.Len(t, w.Bytes(), 4)
}

func TestHeader_Truncated(t *testing.T) {
	h := Header{Version: 1, IntCount: 1000, BoolCount: 1000, StringCount: 1000, TagCount: 1000}

	w := bitstream.NewWriter(nil, endian.GetLittleEndianEngine())
	h.Write(w)

	full := w.Bytes()
	for cut := 0; cut < len(full)-1; cut++ {
		var got Header
		require.ErrorIs(t, got.Read(bitstream.NewReader(full[:cut])), errs.ErrTruncatedPayload, "cut %d", cut)
	}
}
