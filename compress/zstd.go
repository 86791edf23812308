package compress

// ZstdCompressor provides Zstandard compression for stored confpack frames.
//
// Zstd trades compression speed for ratio, which suits configuration
// payloads written once and read many times. The implementation is selected
// at build time: cgo builds use the libzstd bindings, pure-Go builds use
// klauspost/compress.
type ZstdCompressor struct{}

var _ Codec = (*ZstdCompressor)(nil)

// NewZstdCompressor creates a new Zstd compressor with default settings.
func NewZstdCompressor() ZstdCompressor {
	return ZstdCompressor{}
}
