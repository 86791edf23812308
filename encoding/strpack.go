package encoding

import (
	"fmt"
	"sync"

	"github.com/arloliu/confpack/bitstream"
	"github.com/arloliu/confpack/internal/pool"
)

// Character set flags for the ultrapack string path. The 4-bit flag is part
// of the wire format; common punctuation is always in the alphabet and sets
// no flag.
const (
	charsetRarePunct uint8 = 1 << 0
	charsetNumeral   uint8 = 1 << 1
	charsetLower     uint8 = 1 << 2
	charsetUpper     uint8 = 1 << 3

	charsetFlagBits = 4
)

// commonPunct is always included in every alphabet, in this order.
var commonPunct = []byte{' ', ',', '-', '.', '/', ':', '_'}

func isCommonPunct(b byte) bool {
	switch b {
	case ' ', ',', '-', '.', '/', ':', '_':
		return true
	default:
		return false
	}
}

func isRarePunct(b byte) bool {
	switch {
	case b >= 0x21 && b <= 0x2F, b >= 0x3A && b <= 0x40, b >= 0x5B && b <= 0x60, b >= 0x7B && b <= 0x7E:
		return !isCommonPunct(b)
	default:
		return false
	}
}

// DetectCharset scans s once and returns the 4-bit charset flag plus whether
// every byte is printable ASCII. Non-ASCII or control bytes force the Unicode
// string path, where the flag is meaningless.
func DetectCharset(s string) (flags uint8, ascii bool) {
	ascii = true
	for i := 0; i < len(s); i++ {
		b := s[i]
		switch {
		case b >= 'A' && b <= 'Z':
			flags |= charsetUpper
		case b >= 'a' && b <= 'z':
			flags |= charsetLower
		case b >= '0' && b <= '9':
			flags |= charsetNumeral
		case isCommonPunct(b):
			// always included, no flag
		case isRarePunct(b):
			flags |= charsetRarePunct
		default:
			ascii = false
		}
	}

	return flags, ascii
}

var (
	charsetOnce  sync.Once
	charsetTable [16][]byte
	// charsetIndex maps an ASCII byte to its position in the alphabet for
	// each flag combination, or -1 when absent.
	charsetIndex [16][128]int16
)

// buildCharset appends character classes in fixed order: common punctuation,
// lowercase, digits, uppercase, rare punctuation. The order is part of the
// wire format.
func buildCharset(flags uint8) []byte {
	chars := make([]byte, 0, 95)
	chars = append(chars, commonPunct...)

	if flags&charsetLower != 0 {
		for c := byte('a'); c <= 'z'; c++ {
			chars = append(chars, c)
		}
	}
	if flags&charsetNumeral != 0 {
		for c := byte('0'); c <= '9'; c++ {
			chars = append(chars, c)
		}
	}
	if flags&charsetUpper != 0 {
		for c := byte('A'); c <= 'Z'; c++ {
			chars = append(chars, c)
		}
	}
	if flags&charsetRarePunct != 0 {
		for c := byte(0x21); c <= 0x7E; c++ {
			if isRarePunct(c) {
				chars = append(chars, c)
			}
		}
	}

	return chars
}

func ensureCharsets() {
	charsetOnce.Do(func() {
		for flags := range charsetTable {
			charset := buildCharset(uint8(flags))
			charsetTable[flags] = charset

			for i := range charsetIndex[flags] {
				charsetIndex[flags][i] = -1
			}
			for idx, c := range charset {
				charsetIndex[flags][c] = int16(idx)
			}
		}
	})
}

// charsetFor returns the alphabet and byte-to-index map for a flag value.
func charsetFor(flags uint8) ([]byte, *[128]int16) {
	ensureCharsets()

	return charsetTable[flags], &charsetIndex[flags]
}

// ultrapackStringBits estimates the exact emitted size of the ultrapack form,
// including the selector bit, without encoding.
func ultrapackStringBits(s string, flags uint8) int {
	charset, _ := charsetFor(flags)
	m := uint64(len(charset))
	k, b := OptimalBundle(m)

	bundles := len(s) / int(k)
	rem := len(s) % int(k)

	total := 1 + charsetFlagBits + VarIntBits(int64(len(s))) + bundles*int(b)
	if rem > 0 {
		total += int(BitsPerBundle(m, uint8(rem)))
	}

	return total
}

// huffmanStringBits estimates the exact emitted size of the Huffman form,
// including the selector bit. In ASCII mode a table miss costs 7 raw bits; in
// Unicode mode every byte carries a 1-bit tag and misses cost 8 raw bits.
func huffmanStringBits(s string, asciiMode bool) int {
	total := 1 + VarIntBits(int64(len(s)))
	for i := 0; i < len(s); i++ {
		codeLen := int(HuffmanCodeLen(s[i]))
		switch {
		case asciiMode && codeLen > 0:
			total += codeLen
		case asciiMode:
			total += 7
		case codeLen > 0:
			total += 1 + codeLen
		default:
			total += 1 + 8
		}
	}

	return total
}

// WriteString emits s in its cheapest form: a 1-bit selector (1 = Huffman,
// 0 = Ultrapack) followed by the chosen payload. asciiColumn selects the
// ASCII or Unicode Huffman flavor and must match the payload header's
// all-ASCII bit. forceHuffman disables the ultrapack branch.
//
// Strings containing bytes outside printable ASCII always take the Unicode
// Huffman path; passing one with asciiColumn set is a contract violation.
func WriteString(w *bitstream.Writer, s string, asciiColumn bool, forceHuffman bool) {
	flags, ascii := DetectCharset(s)
	if !ascii {
		if asciiColumn {
			panic(fmt.Sprintf("encoding: non-ASCII string %q in ASCII column", s))
		}
		w.WriteBit(true)
		writeHuffmanString(w, s, false)

		return
	}

	if forceHuffman || huffmanStringBits(s, asciiColumn) <= ultrapackStringBits(s, flags) {
		w.WriteBit(true)
		writeHuffmanString(w, s, asciiColumn)
	} else {
		w.WriteBit(false)
		writeUltrapackString(w, s, flags)
	}
}

// ReadString decodes a string written by WriteString. asciiColumn must carry
// the payload header's all-ASCII bit.
func ReadString(r *bitstream.Reader, asciiColumn bool) (string, bool) {
	selector, ok := r.ReadBit()
	if !ok {
		return "", false
	}

	if selector {
		return readHuffmanString(r, asciiColumn)
	}

	return readUltrapackString(r)
}

func writeHuffmanString(w *bitstream.Writer, s string, asciiMode bool) {
	PutVarInt(w, int64(len(s)))

	for i := 0; i < len(s); i++ {
		b := s[i]
		if asciiMode {
			if !WriteHuffmanSym(w, b) {
				w.WriteBits(b&0x7F, 7)
			}

			continue
		}

		if _, _, ok := HuffmanCode(b); ok {
			w.WriteBit(false)
			WriteHuffmanSym(w, b)
		} else {
			w.WriteBit(true)
			w.WriteByte(b)
		}
	}
}

func readHuffmanString(r *bitstream.Reader, asciiMode bool) (string, bool) {
	length, ok := ReadVarInt(r)
	if !ok || length < 0 || length > int64(r.BitsRemaining()) {
		return "", false
	}

	buf := pool.GetStringBuffer()
	defer pool.PutStringBuffer(buf)

	for range length {
		var b byte
		if asciiMode {
			sym, ok := ReadHuffmanSym(r)
			if !ok {
				// Escape path: a byte absent from the table was emitted as
				// 7 raw bits.
				raw, rawOK := r.ReadBits(7)
				if !rawOK {
					return "", false
				}
				sym = raw
			}
			b = sym
		} else {
			rawTag, tagOK := r.ReadBit()
			if !tagOK {
				return "", false
			}
			if rawTag {
				raw, rawOK := r.ReadByte()
				if !rawOK {
					return "", false
				}
				b = raw
			} else {
				sym, symOK := ReadHuffmanSym(r)
				if !symOK {
					return "", false
				}
				b = sym
			}
		}
		buf.MustWriteByte(b)
	}

	return string(buf.Bytes()), true
}

func writeUltrapackString(w *bitstream.Writer, s string, flags uint8) {
	charset, index := charsetFor(flags)
	m := uint64(len(charset))
	k, b := OptimalBundle(m)

	w.WriteBits(flags, charsetFlagBits)
	PutVarInt(w, int64(len(s)))

	var digits [maxBundleSize]uint64
	fill := func(start, count int) {
		for i := range count {
			idx := index[s[start+i]]
			if idx < 0 {
				panic(fmt.Sprintf("encoding: byte %q outside charset %04b", s[start+i], flags))
			}
			digits[i] = uint64(idx)
		}
	}

	bundles := len(s) / int(k)
	pos := 0
	for range bundles {
		fill(pos, int(k))
		WriteBundle(w, b, PackBundle(k, m, digits[:k]))
		pos += int(k)
	}

	if rem := len(s) % int(k); rem > 0 {
		fill(pos, rem)
		remBits := BitsPerBundle(m, uint8(rem))
		WriteBundle(w, remBits, PackBundle(uint8(rem), m, digits[:rem]))
	}
}

func readUltrapackString(r *bitstream.Reader) (string, bool) {
	flags, ok := r.ReadBits(charsetFlagBits)
	if !ok {
		return "", false
	}

	charset, _ := charsetFor(flags)
	m := uint64(len(charset))
	k, b := OptimalBundle(m)

	length, ok := ReadVarInt(r)
	if !ok || length < 0 || length > int64(r.BitsRemaining()) {
		return "", false
	}

	buf := pool.GetStringBuffer()
	defer pool.PutStringBuffer(buf)

	var digits [maxBundleSize]uint64
	emit := func(count int) {
		for i := range count {
			buf.MustWriteByte(charset[digits[i]])
		}
	}

	bundles := int(length) / int(k)
	for range bundles {
		bundle, ok := ReadBundle(r, b)
		if !ok {
			return "", false
		}
		UnpackBundle(k, m, bundle, digits[:k])
		emit(int(k))
	}

	if rem := int(length) % int(k); rem > 0 {
		remBits := BitsPerBundle(m, uint8(rem))
		bundle, ok := ReadBundle(r, remBits)
		if !ok {
			return "", false
		}
		UnpackBundle(uint8(rem), m, bundle, digits[:rem])
		emit(rem)
	}

	return string(buf.Bytes()), true
}
