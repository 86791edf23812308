package section

import (
	"github.com/arloliu/confpack/bitstream"
	"github.com/arloliu/confpack/encoding"
	"github.com/arloliu/confpack/errs"
)

// Header carries the payload version, the per-column value counts and the
// all-ASCII string flag.
type Header struct {
	Version     byte
	IntCount    int
	BoolCount   int
	StringCount int
	TagCount    int
	AllASCII    bool
}

// Write emits the header at the start of the bit stream.
//
// Field order is part of the wire format: version byte, integer count,
// boolean count, all-ASCII bit, string count, tag count.
func (h *Header) Write(w *bitstream.Writer) {
	w.WriteByte(h.Version)
	encoding.PutVarInt(w, int64(h.IntCount))
	encoding.PutVarInt(w, int64(h.BoolCount))
	w.WriteBit(h.AllASCII)
	encoding.PutVarInt(w, int64(h.StringCount))
	encoding.PutVarInt(w, int64(h.TagCount))
}

// Read parses the header from the stream position. It returns
// errs.ErrTruncatedPayload when the stream ends inside the header; version
// validation is left to the caller, which knows the expected schema version.
func (h *Header) Read(r *bitstream.Reader) error {
	version, ok := r.ReadByte()
	if !ok {
		return errs.ErrTruncatedPayload
	}
	h.Version = version

	counts := [4]*int{&h.IntCount, &h.BoolCount, &h.StringCount, &h.TagCount}
	for i, dst := range counts {
		if i == 2 {
			ascii, ok := r.ReadBit()
			if !ok {
				return errs.ErrTruncatedPayload
			}
			h.AllASCII = ascii
		}

		v, ok := encoding.ReadVarInt(r)
		if !ok {
			return errs.ErrTruncatedPayload
		}
		*dst = int(v)
	}

	return nil
}
