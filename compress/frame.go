package compress

import (
	"fmt"

	"github.com/arloliu/confpack/endian"
	"github.com/arloliu/confpack/errs"
	"github.com/arloliu/confpack/format"
	"github.com/arloliu/confpack/internal/hash"
	"github.com/arloliu/confpack/internal/pool"
)

// Frame layout: 1 codec byte, 8 checksum bytes, then the compressed payload.
const frameHeaderSize = 1 + 8

// Seal wraps an encoded payload in a self-describing storage frame:
//
//	[u8 codec][u64 xxHash64 of payload, little-endian][compressed payload]
//
// The checksum covers the uncompressed payload, so Open verifies integrity
// end to end, including the decompression itself.
func Seal(payload []byte, compression format.CompressionType) ([]byte, error) {
	codec, err := GetCodec(compression)
	if err != nil {
		return nil, err
	}

	staging := pool.GetPayloadBuffer()
	defer pool.PutPayloadBuffer(staging)

	compressed, err := codec.Compress(payload)
	if err != nil {
		return nil, fmt.Errorf("seal: %w", err)
	}

	engine := endian.GetLittleEndianEngine()
	staging.Grow(frameHeaderSize + len(compressed))
	staging.MustWriteByte(byte(compression))
	staging.B = engine.AppendUint64(staging.B, hash.Checksum(payload))
	staging.MustWrite(compressed)

	out := make([]byte, staging.Len())
	copy(out, staging.Bytes())

	return out, nil
}

// Open unwraps a sealed frame, decompresses the payload and verifies its
// checksum. The returned payload is owned by the caller.
func Open(frame []byte) ([]byte, error) {
	if len(frame) < frameHeaderSize {
		return nil, errs.ErrFrameTooShort
	}

	compression := format.CompressionType(frame[0])
	codec, err := GetCodec(compression)
	if err != nil {
		return nil, fmt.Errorf("%w: 0x%02x", errs.ErrInvalidCompression, frame[0])
	}

	engine := endian.GetLittleEndianEngine()
	want := engine.Uint64(frame[1:frameHeaderSize])

	payload, err := codec.Decompress(frame[frameHeaderSize:])
	if err != nil {
		return nil, fmt.Errorf("open: %w", err)
	}
	if hash.Checksum(payload) != want {
		return nil, errs.ErrChecksumMismatch
	}

	return payload, nil
}
