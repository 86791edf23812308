// Package compress provides the optional outer compression stage for
// confpack payloads.
//
// The bit-level codec emits no framing of its own; payloads can be handed to
// any of the codecs here (Zstd, S2, LZ4 or none) as an opaque byte slice.
// Seal and Open add a minimal storage container that records which codec was
// used and an xxHash64 digest of the original payload, so stored frames are
// self-describing and corruption is detected before decode.
package compress
