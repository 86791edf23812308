package encoding

import (
	"math"
	"sort"
	"sync"

	"github.com/arloliu/confpack/bitstream"
)

// HuffmanMaxLen is the length limit for Huffman codes. A flat table of
// 2^HuffmanMaxLen entries decodes any code in one lookup.
const HuffmanMaxLen = 12

// charFrequencies is a hand-tuned frequency table for configuration and
// metadata text: lowercase English letter frequencies, digits weighted by
// Benford's law, and punctuation common in paths, timestamps and key=value
// pairs. It covers every printable ASCII byte (0x20..0x7E).
var charFrequencies = [...]struct {
	sym  byte
	freq uint32
}{
	// Lowercase
	{'e', 710}, {'o', 500}, {'a', 470}, {'n', 460}, {'t', 460},
	{'i', 410}, {'r', 380}, {'s', 370}, {'p', 290}, {'c', 240},
	{'l', 240}, {'d', 180}, {'m', 160}, {'u', 120}, {'g', 100},
	{'f', 100}, {'v', 90}, {'h', 70}, {'k', 60}, {'y', 50},
	{'j', 50}, {'w', 40}, {'b', 30}, {'z', 20}, {'q', 10},
	// Digits (Benford's law guess, ahead of capitals and punctuation)
	{'0', 650}, {'1', 360}, {'2', 240}, {'3', 180}, {'4', 160},
	{'5', 140}, {'6', 130}, {'7', 120}, {'8', 100}, {'9', 90},
	// Punctuation
	{'.', 330}, {' ', 200}, {'/', 200}, {':', 180}, {'_', 180},
	{'=', 70}, {'-', 60}, {',', 10}, {'(', 10}, {')', 10},
	{'~', 10}, {'+', 10},
	// Uppercase
	{'E', 230}, {'O', 160}, {'S', 160}, {'T', 150}, {'C', 130},
	{'I', 90}, {'N', 90}, {'P', 80}, {'D', 80}, {'L', 70},
	{'M', 70}, {'A', 70}, {'K', 60}, {'R', 60}, {'x', 70},
	{'B', 50}, {'G', 40}, {'H', 40}, {'V', 30}, {'U', 30},
	{'J', 20}, {'X', 20}, {'F', 20}, {'Y', 20}, {'W', 15},
	{'Q', 5}, {'Z', 5},
	// Rare punctuation
	{';', 8}, {'!', 5}, {'?', 5}, {'\'', 15}, {'"', 10},
	{'[', 8}, {']', 8}, {'{', 6}, {'}', 6}, {'<', 6},
	{'>', 6}, {'*', 6}, {'&', 5}, {'%', 5}, {'$', 4},
	{'#', 5}, {'@', 6}, {'^', 3}, {'`', 3}, {'|', 5},
	{'\\', 8},
}

type huffCode struct {
	bits   uint16
	length uint8
}

type huffEntry struct {
	sym    byte
	length uint8
}

var (
	huffOnce sync.Once

	// huffEncode maps an ASCII byte to its canonical code; length 0 marks
	// bytes absent from the frequency table.
	huffEncode [128]huffCode

	// huffDecode maps every HuffmanMaxLen-bit prefix window to the symbol
	// whose code starts the window, replicated across all suffixes.
	huffDecode [1 << HuffmanMaxLen]huffEntry
)

// ensureHuffmanTables performs the one-shot table construction. The result is
// deterministic from the frequency constants, so concurrent first use is safe.
func ensureHuffmanTables() {
	huffOnce.Do(func() {
		lengths := buildOptimalLengths(HuffmanMaxLen)
		buildCanonicalCodes(lengths)
		buildDecodeTable()
	})
}

type huffSymbol struct {
	sym         byte
	length      uint8
	probability float64
}

func kraftContribution(length uint8) float64 {
	return math.Pow(2, -float64(length))
}

func kraftSum(symbols []huffSymbol) float64 {
	sum := 0.0
	for _, s := range symbols {
		sum += kraftContribution(s.length)
	}

	return sum
}

// buildOptimalLengths computes length-limited code lengths: ideal lengths
// ceil(-log2 p) clamped to maxLen, lengthened on the least-probable symbols
// until the Kraft inequality holds, then shortened on the most-probable
// symbols while slack remains.
func buildOptimalLengths(maxLen uint8) []huffSymbol {
	var total uint64
	for _, cf := range charFrequencies {
		total += uint64(cf.freq)
	}

	symbols := make([]huffSymbol, 0, len(charFrequencies))
	for _, cf := range charFrequencies {
		p := float64(cf.freq) / float64(total)
		ideal := math.Ceil(-math.Log2(p))
		if ideal > float64(maxLen) {
			ideal = float64(maxLen)
		}
		symbols = append(symbols, huffSymbol{sym: cf.sym, length: uint8(ideal), probability: p})
	}

	// Enforce Kraft: lengthen the least-probable symbol that can still grow.
	for kraftSum(symbols) > 1.0+1e-9 {
		lowest := -1
		for i := range symbols {
			if symbols[i].length >= maxLen {
				continue
			}
			if lowest < 0 || symbols[i].probability < symbols[lowest].probability {
				lowest = i
			}
		}
		if lowest < 0 {
			break
		}
		symbols[lowest].length++
	}

	// Reclaim slack: shorten the most-probable symbol whose decrement fits.
	for {
		slack := 1.0 - kraftSum(symbols)

		best := -1
		for i := range symbols {
			if symbols[i].length <= 1 {
				continue
			}
			cost := kraftContribution(symbols[i].length-1) - kraftContribution(symbols[i].length)
			if cost > slack+1e-9 {
				continue
			}
			if best < 0 || symbols[i].probability > symbols[best].probability {
				best = i
			}
		}
		if best < 0 {
			break
		}
		symbols[best].length--
	}

	return symbols
}

// buildCanonicalCodes assigns canonical codes: symbols sorted by
// (length, byte), consecutive codes within a length, and
// firstCode[len] = (firstCode[len-1] + count[len-1]) << 1.
func buildCanonicalCodes(symbols []huffSymbol) {
	sort.Slice(symbols, func(i, j int) bool {
		if symbols[i].length != symbols[j].length {
			return symbols[i].length < symbols[j].length
		}

		return symbols[i].sym < symbols[j].sym
	})

	var countAtLength [HuffmanMaxLen + 1]uint16
	for _, s := range symbols {
		countAtLength[s.length]++
	}

	var nextCode [HuffmanMaxLen + 1]uint16
	for l := 1; l <= HuffmanMaxLen; l++ {
		nextCode[l] = (nextCode[l-1] + countAtLength[l-1]) << 1
	}

	for _, s := range symbols {
		huffEncode[s.sym] = huffCode{bits: nextCode[s.length], length: s.length}
		nextCode[s.length]++
	}
}

// buildDecodeTable replicates each (code, len) across all 2^(maxLen-len)
// suffixes so a single maxLen-bit window lookup finds the symbol.
func buildDecodeTable() {
	for sym, code := range huffEncode {
		if code.length == 0 {
			continue
		}

		suffixCount := 1 << (HuffmanMaxLen - code.length)
		baseIndex := int(code.bits) << (HuffmanMaxLen - code.length)
		for suffix := range suffixCount {
			huffDecode[baseIndex|suffix] = huffEntry{sym: byte(sym), length: code.length}
		}
	}
}

// HuffmanCode returns the canonical code for b. ok is false for bytes absent
// from the frequency table (anything outside printable ASCII).
func HuffmanCode(b byte) (bits uint16, length uint8, ok bool) {
	ensureHuffmanTables()
	if b >= 128 {
		return 0, 0, false
	}

	code := huffEncode[b]

	return code.bits, code.length, code.length != 0
}

// HuffmanCodeLen returns the code length for b, or 0 when b has no code.
// Used by the string driver's cost estimator.
func HuffmanCodeLen(b byte) uint8 {
	ensureHuffmanTables()
	if b >= 128 {
		return 0
	}

	return huffEncode[b].length
}

// WriteHuffmanSym emits the code for b. Returns false, writing nothing, when
// b has no code; the caller decides the escape representation.
func WriteHuffmanSym(w *bitstream.Writer, b byte) bool {
	code, length, ok := HuffmanCode(b)
	if !ok {
		return false
	}

	w.WriteUintWidth(uint64(code), length)

	return true
}

// ReadHuffmanSym decodes one symbol: peek HuffmanMaxLen bits (zero-padded on
// underflow), look up the window, advance by the code's actual length.
// Returns false when the window matches no code or the stream holds fewer
// bits than the matched code's length.
func ReadHuffmanSym(r *bitstream.Reader) (byte, bool) {
	ensureHuffmanTables()

	window, avail := r.PeekBits(HuffmanMaxLen)
	entry := huffDecode[window]
	if entry.length == 0 || entry.length > avail {
		return 0, false
	}

	r.SkipBits(entry.length)

	return entry.sym, true
}
