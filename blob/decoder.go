package blob

import (
	"fmt"

	"github.com/arloliu/confpack/bitstream"
	"github.com/arloliu/confpack/encoding"
	"github.com/arloliu/confpack/errs"
	"github.com/arloliu/confpack/format"
	"github.com/arloliu/confpack/section"
)

// Decoder refills four FIFO column queues from a payload and hands values
// back to the schema in the order they were written.
//
// Decode validates the version, drains the whole payload into the queues and
// only then returns; the Take* methods never touch the byte stream. On a
// decode error the queues hold arbitrary prefix data and must not be
// consumed. Queue storage is retained across payloads.
//
// A Decoder is not safe for concurrent use.
type Decoder struct {
	integers []int64
	booleans []bool
	strings  []string
	tags     []format.PropertyType

	intHead  int
	boolHead int
	strHead  int
	tagHead  int
}

// NewDecoder creates an empty Decoder.
func NewDecoder() *Decoder {
	return &Decoder{}
}

func (d *Decoder) reset() {
	d.integers = d.integers[:0]
	d.booleans = d.booleans[:0]
	d.strings = d.strings[:0]
	d.tags = d.tags[:0]
	d.intHead = 0
	d.boolHead = 0
	d.strHead = 0
	d.tagHead = 0
}

// Decode parses payload and refills the column queues. version must match
// the payload's leading byte.
func (d *Decoder) Decode(payload []byte, version byte) error {
	d.reset()

	r := bitstream.NewReader(payload)

	var h section.Header
	if err := h.Read(r); err != nil {
		return err
	}
	if h.Version != version {
		return fmt.Errorf("%w: payload version %d, schema version %d", errs.ErrVersionMismatch, h.Version, version)
	}

	// A count can never exceed the remaining bit budget: integers cost at
	// least 4 bits, strings 5, tags 2 and booleans 1. Oversized counts are
	// corruption; rejecting them here also bounds the queue allocations.
	remaining := r.BitsRemaining()
	for _, c := range [...]int{h.IntCount, h.BoolCount, h.StringCount, h.TagCount} {
		if c < 0 || c > remaining {
			return errs.ErrTruncatedPayload
		}
	}

	for range h.IntCount {
		v, ok := encoding.ReadVarInt(r)
		if !ok {
			return errs.ErrTruncatedPayload
		}
		d.integers = append(d.integers, v)
	}

	for range h.BoolCount {
		b, ok := r.ReadBit()
		if !ok {
			return errs.ErrTruncatedPayload
		}
		d.booleans = append(d.booleans, b)
	}

	for range h.StringCount {
		s, ok := encoding.ReadString(r, h.AllASCII)
		if !ok {
			return errs.ErrTruncatedPayload
		}
		d.strings = append(d.strings, s)
	}

	for range h.TagCount {
		bits, ok := r.ReadBits(2)
		if !ok {
			return errs.ErrTruncatedPayload
		}
		tag, valid := format.PropertyTypeFromBits(bits)
		if !valid {
			return errs.ErrInvalidPropertyTag
		}
		d.tags = append(d.tags, tag)
	}

	return nil
}

// TakeInt pops the next integer. ok is false on column exhaustion.
func (d *Decoder) TakeInt() (int64, bool) {
	if d.intHead >= len(d.integers) {
		return 0, false
	}
	v := d.integers[d.intHead]
	d.intHead++

	return v, true
}

// TakeBool pops the next boolean.
func (d *Decoder) TakeBool() (bool, bool) {
	if d.boolHead >= len(d.booleans) {
		return false, false
	}
	v := d.booleans[d.boolHead]
	d.boolHead++

	return v, true
}

// TakeString pops the next string. The returned string is owned by the caller.
func (d *Decoder) TakeString() (string, bool) {
	if d.strHead >= len(d.strings) {
		return "", false
	}
	v := d.strings[d.strHead]
	d.strHead++

	return v, true
}

// TakeTag pops the next property-type tag.
func (d *Decoder) TakeTag() (format.PropertyType, bool) {
	if d.tagHead >= len(d.tags) {
		return 0, false
	}
	v := d.tags[d.tagHead]
	d.tagHead++

	return v, true
}

// TakeArray pops an array: its length from the integer column, then a tag
// per element with the value pulled from the matching column. Nested arrays
// recurse. ok is false on exhaustion of any involved column.
func (d *Decoder) TakeArray() ([]Value, bool) {
	length, ok := d.TakeInt()
	if !ok || length < 0 || int(length) > len(d.tags)-d.tagHead {
		return nil, false
	}

	values := make([]Value, 0, int(length))
	for range length {
		tag, ok := d.TakeTag()
		if !ok {
			return nil, false
		}

		v, ok := d.takeValue(tag)
		if !ok {
			return nil, false
		}
		values = append(values, v)
	}

	return values, true
}

func (d *Decoder) takeValue(tag format.PropertyType) (Value, bool) {
	switch tag {
	case format.TypeString:
		s, ok := d.TakeString()

		return StringValue(s), ok
	case format.TypeBool:
		b, ok := d.TakeBool()

		return BoolValue(b), ok
	case format.TypeInteger:
		v, ok := d.TakeInt()

		return IntValue(v), ok
	case format.TypeArray:
		arr, ok := d.TakeArray()

		return ArrayValue(arr...), ok
	default:
		return Value{}, false
	}
}
