package blob

import (
	"github.com/arloliu/confpack/bitstream"
	"github.com/arloliu/confpack/encoding"
	"github.com/arloliu/confpack/endian"
	"github.com/arloliu/confpack/format"
	"github.com/arloliu/confpack/internal/options"
	"github.com/arloliu/confpack/section"
)

// Encoder accumulates a property tree into per-type columns and emits the
// bit-packed payload.
//
// The schema drives encoding by calling WriteInt, WriteBool, WriteString and
// WriteArray in its declaration order, then Finish. Column storage is
// retained across payloads: Begin clears without freeing, so a long-lived
// Encoder reaches a steady state with no per-payload allocation.
//
// String values are borrowed; they only need to outlive the Finish call.
// An Encoder is not safe for concurrent use.
type Encoder struct {
	integers []int64
	booleans []bool
	strings  []string
	tags     []format.PropertyType

	engine      endian.EndianEngine
	packStrings bool
}

// Option configures an Encoder.
type Option = options.Option[*Encoder]

// WithInitialCapacity pre-sizes each column for n values, avoiding growth
// during the first payload.
func WithInitialCapacity(n int) Option {
	return options.NoError(func(e *Encoder) {
		if cap(e.integers) < n {
			e.integers = make([]int64, 0, n)
		}
		if cap(e.booleans) < n {
			e.booleans = make([]bool, 0, n)
		}
		if cap(e.strings) < n {
			e.strings = make([]string, 0, n)
		}
		if cap(e.tags) < n {
			e.tags = make([]format.PropertyType, 0, n)
		}
	})
}

// WithoutPackedStrings forces every string onto the Huffman branch. The
// selector bit keeps payloads self-describing, so decoders are unaffected;
// useful when profiling the two string strategies against each other.
func WithoutPackedStrings() Option {
	return options.NoError(func(e *Encoder) {
		e.packStrings = false
	})
}

// NewEncoder creates an Encoder ready for a Begin/Write*/Finish cycle.
func NewEncoder(opts ...Option) (*Encoder, error) {
	enc := &Encoder{
		engine:      endian.GetLittleEndianEngine(),
		packStrings: true,
	}
	if err := options.Apply(enc, opts...); err != nil {
		return nil, err
	}

	return enc, nil
}

// Begin clears the columns for a new payload, retaining their storage.
func (e *Encoder) Begin() {
	e.integers = e.integers[:0]
	e.booleans = e.booleans[:0]
	e.strings = e.strings[:0]
	e.tags = e.tags[:0]
}

// WriteInt appends an integer property. Values must be in [0, 2^63);
// negative values do not round-trip (schemas needing signs zigzag-encode
// before writing).
func (e *Encoder) WriteInt(v int64) {
	e.integers = append(e.integers, v)
}

// WriteBool appends a boolean property.
func (e *Encoder) WriteBool(v bool) {
	e.booleans = append(e.booleans, v)
}

// WriteString appends a string property. The string is borrowed until Finish.
func (e *Encoder) WriteString(s string) {
	e.strings = append(e.strings, s)
}

// WriteValue appends a tagged array element: its 2-bit property tag followed
// by the value routed to the matching column.
func (e *Encoder) WriteValue(v Value) {
	e.tags = append(e.tags, v.kind)

	switch v.kind {
	case format.TypeString:
		e.WriteString(v.str)
	case format.TypeBool:
		e.WriteBool(v.flag)
	case format.TypeInteger:
		e.WriteInt(v.num)
	case format.TypeArray:
		e.WriteArray(v.arr)
	}
}

// WriteArray appends an array property: its length (one integer column slot)
// followed by a tagged value per element. Nested arrays recurse; the single
// tag column is shared across all nesting levels in visitation order.
func (e *Encoder) WriteArray(values []Value) {
	e.WriteInt(int64(len(values)))
	for _, v := range values {
		e.WriteValue(v)
	}
}

// Finish emits the payload into buf (which is reset and reused; pass nil to
// allocate) and returns the encoded bytes. The Encoder keeps its columns;
// call Begin before reusing it.
func (e *Encoder) Finish(buf []byte, version byte) []byte {
	w := bitstream.NewWriter(buf, e.engine)

	allASCII := true
	for _, s := range e.strings {
		if _, ascii := encoding.DetectCharset(s); !ascii {
			allASCII = false
			break
		}
	}

	h := section.Header{
		Version:     version,
		IntCount:    len(e.integers),
		BoolCount:   len(e.booleans),
		StringCount: len(e.strings),
		TagCount:    len(e.tags),
		AllASCII:    allASCII,
	}
	h.Write(w)

	for _, v := range e.integers {
		encoding.PutVarInt(w, v)
	}
	for _, b := range e.booleans {
		w.WriteBit(b)
	}
	for _, s := range e.strings {
		encoding.WriteString(w, s, allASCII, !e.packStrings)
	}
	for _, tag := range e.tags {
		w.WriteBits(uint8(tag), 2)
	}

	return w.Bytes()
}

// NativeSize returns the size of the accumulated columns in their natural
// in-memory representation: 8 bytes per integer, 1 per boolean and tag, and
// the raw string bytes. Useful for reporting packing ratios.
func (e *Encoder) NativeSize() int {
	size := 8*len(e.integers) + len(e.booleans) + len(e.tags)
	for _, s := range e.strings {
		size += len(s)
	}

	return size
}
