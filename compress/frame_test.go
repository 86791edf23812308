package compress

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/confpack/errs"
	"github.com/arloliu/confpack/format"
)

func TestFrame_RoundTrip(t *testing.T) {
	payload := bytes.Repeat([]byte("bit-packed payload bytes "), 32)

	for _, ct := range codecTypes {
		frame, err := Seal(payload, ct)
		require.NoError(t, err, ct.String())
		require.Equal(t, byte(ct), frame[0])

		restored, err := Open(frame)
		require.NoError(t, err, ct.String())
		require.Equal(t, payload, restored, ct.String())
	}
}

func TestFrame_ChecksumMismatch(t *testing.T) {
	frame, err := Seal([]byte("payload"), format.CompressionNone)
	require.NoError(t, err)

	// Flip one payload byte; the stored digest no longer matches.
	frame[len(frame)-1] ^= 0x01

	_, err = Open(frame)
	require.ErrorIs(t, err, errs.ErrChecksumMismatch)
}

func TestFrame_TooShort(t *testing.T) {
	_, err := Open([]byte{0x01, 0x02})
	require.ErrorIs(t, err, errs.ErrFrameTooShort)
}

func TestFrame_UnknownCodec(t *testing.T) {
	frame, err := Seal([]byte("payload"), format.CompressionNone)
	require.NoError(t, err)

	frame[0] = 0x7F

	_, err = Open(frame)
	require.ErrorIs(t, err, errs.ErrInvalidCompression)
}

func TestSeal_UnknownCodec(t *testing.T) {
	_, err := Seal([]byte("payload"), format.CompressionType(0x7F))
	require.Error(t, err)
}

func TestFrame_EmptyPayload(t *testing.T) {
	for _, ct := range codecTypes {
		frame, err := Seal(nil, ct)
		require.NoError(t, err, ct.String())

		restored, err := Open(frame)
		require.NoError(t, err, ct.String())
		require.Empty(t, restored, ct.String())
	}
}
