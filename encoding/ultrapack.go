package encoding

import (
	"fmt"
	"math/bits"

	"github.com/arloliu/confpack/bitstream"
)

// maxBundleSize bounds the bundle search; a 64-bit bundle can never hold more
// than 40 digits of any alphabet with at least three symbols.
const maxBundleSize = 40

// OptimalBundle returns the bundle size k and the bundle width in bits for an
// alphabet of maxValue symbols.
//
// Packing k base-M digits into one integer and emitting ceil(log2(M^k)) bits
// recovers the fractional bits naive per-symbol packing wastes when M is not
// a power of two. The function tries every k whose bundle fits in 64 bits and
// picks the one minimizing bits-per-symbol, preferring the smallest k on ties.
//
// The selection is deterministic and depends only on maxValue: the decoder
// derives partial-tail lengths from the announced symbol count, so both sides
// must agree on k without it ever being written.
func OptimalBundle(maxValue uint64) (bundleSize uint8, bitsPerBundle uint8) {
	if maxValue < 2 {
		return 1, 1
	}

	naiveBits := uint8(bits.Len64(maxValue - 1))

	bestK := uint8(1)
	bestBitsPerVal := float64(naiveBits)

	maxBundle := uint64(1)
	for k := uint8(1); k <= maxBundleSize; k++ {
		var ok bool
		maxBundle, ok = mulNoOverflow(maxBundle, maxValue)
		if !ok {
			break
		}

		bitsNeeded := uint8(bits.Len64(maxBundle - 1))
		bitsPerVal := float64(bitsNeeded) / float64(k)

		if bitsPerVal < bestBitsPerVal {
			bestBitsPerVal = bitsPerVal
			bestK = k
		}
	}

	return bestK, BitsPerBundle(maxValue, bestK)
}

// BitsPerBundle returns the exact width in bits of a bundle of bundleSize
// base-maxValue digits: ceil(log2(maxValue^bundleSize)). Used for partial
// tails, where the remainder length replaces the optimal bundle size.
func BitsPerBundle(maxValue uint64, bundleSize uint8) uint8 {
	maxBundle := uint64(1)
	for range bundleSize {
		maxBundle *= maxValue
	}

	return uint8(bits.Len64(maxBundle - 1))
}

// PackBundle combines bundleSize digits (each < maxValue) into a single
// base-maxValue integer: ((d0*M + d1)*M + ...) + dk-1.
//
// Supplying a digit outside the alphabet is a contract violation and panics.
func PackBundle(bundleSize uint8, maxValue uint64, digits []uint64) uint64 {
	if len(digits) != int(bundleSize) {
		panic(fmt.Sprintf("encoding: bundle of %d digits, want %d", len(digits), bundleSize))
	}

	var bundle uint64
	for _, d := range digits {
		if d >= maxValue {
			panic(fmt.Sprintf("encoding: digit %d outside alphabet of %d", d, maxValue))
		}
		bundle = bundle*maxValue + d
	}

	return bundle
}

// UnpackBundle recovers bundleSize digits from a bundle, filling digits back
// to front by repeated modulo/divide. digits must have length bundleSize.
func UnpackBundle(bundleSize uint8, maxValue uint64, bundle uint64, digits []uint64) {
	for i := int(bundleSize) - 1; i >= 0; i-- {
		digits[i] = bundle % maxValue
		bundle /= maxValue
	}
}

// WriteBundle emits a packed bundle with exactly bitsPerBundle bits.
func WriteBundle(w *bitstream.Writer, bitsPerBundle uint8, bundle uint64) {
	w.WriteUintWidth(bundle, bitsPerBundle)
}

// ReadBundle reads a bundle of bitsPerBundle bits.
func ReadBundle(r *bitstream.Reader, bitsPerBundle uint8) (uint64, bool) {
	return r.ReadUintWidth(bitsPerBundle)
}

func mulNoOverflow(a, b uint64) (uint64, bool) {
	hi, lo := bits.Mul64(a, b)
	if hi != 0 {
		return 0, false
	}

	return lo, true
}
