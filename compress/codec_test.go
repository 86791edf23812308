package compress

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/confpack/format"
)

var codecTypes = []format.CompressionType{
	format.CompressionNone,
	format.CompressionZstd,
	format.CompressionS2,
	format.CompressionLZ4,
}

func TestGetCodec(t *testing.T) {
	for _, ct := range codecTypes {
		codec, err := GetCodec(ct)
		require.NoError(t, err, ct.String())
		require.NotNil(t, codec)
	}

	_, err := GetCodec(format.CompressionType(0x7F))
	require.Error(t, err)
}

func TestCodec_RoundTrip(t *testing.T) {
	data := bytes.Repeat([]byte("confpack payload with repeated fragments /usr/local/bin "), 64)

	for _, ct := range codecTypes {
		codec, err := GetCodec(ct)
		require.NoError(t, err)

		compressed, err := codec.Compress(data)
		require.NoError(t, err, ct.String())

		restored, err := codec.Decompress(compressed)
		require.NoError(t, err, ct.String())
		require.Equal(t, data, restored, ct.String())
	}
}

func TestCodec_CompressesRedundantData(t *testing.T) {
	data := bytes.Repeat([]byte("aaaaaaaabbbbbbbb"), 256)

	for _, ct := range []format.CompressionType{format.CompressionZstd, format.CompressionS2, format.CompressionLZ4} {
		codec, err := GetCodec(ct)
		require.NoError(t, err)

		compressed, err := codec.Compress(data)
		require.NoError(t, err)
		require.Less(t, len(compressed), len(data), ct.String())
	}
}

func TestCodec_EmptyInput(t *testing.T) {
	for _, ct := range codecTypes {
		codec, err := GetCodec(ct)
		require.NoError(t, err)

		compressed, err := codec.Compress(nil)
		require.NoError(t, err, ct.String())

		restored, err := codec.Decompress(compressed)
		require.NoError(t, err, ct.String())
		require.Empty(t, restored, ct.String())
	}
}
