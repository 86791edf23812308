// Package encoding implements the bit-level codecs that power the confpack
// payload format.
//
// Four codecs live here, all operating on bitstream.Writer/Reader:
//
// VarInt - unary-prefixed variable-length integers:
//   - A prefix of k one-bits followed by a zero selects one of seven payload
//     widths [3, 7, 9, 15, 24, 45, 64], biased toward small values.
//   - Values up to 7 cost 4 bits; up to 127 cost 9; below 2^15 at most 19.
//
// Ultrapack - base-N digit bundling:
//   - Packs k symbols from an alphabet of size M into a single base-M integer
//     and emits it with exactly ceil(log2(M^k)) bits, recovering the
//     fractional bits naive ceil(log2(M))-per-symbol packing wastes.
//
// Huffman - static canonical length-limited codes:
//   - Derived once from a frequency table tuned for configuration text
//     (lowercase English, Benford-weighted digits, path punctuation).
//   - Decoded through a flat 4096-entry prefix window table.
//
// String driver - adaptive per-string selection:
//   - Scans each string once for its character classes, estimates the cost of
//     both encodings without emitting, and writes a 1-bit selector followed by
//     the cheaper form. Strings with bytes outside printable ASCII take a
//     tagged Huffman/raw-byte path that handles arbitrary UTF-8.
package encoding
