// Package bitstream implements the MSB-first bit streams underlying the
// confpack payload format.
//
// Bits are packed most-significant-bit first within each byte: the first bit
// written occupies bit 7 of byte 0. The Writer appends to an owned byte
// buffer and never fails; the Reader walks a caller-provided slice and
// reports exhaustion through (value, ok) returns.
//
// Multi-byte integer payloads cross the stream through WriteUintWidth and
// ReadUintWidth: the width's high fragment (width mod 8 bits, if any) is
// emitted first, followed by full bytes from most to least significant. The
// value itself is treated as little-endian, which keeps the emitted bit
// pattern identical regardless of where the stream is byte-aligned.
//
// Writer and Reader share no state and are not safe for concurrent use.
package bitstream
