// Package confpack provides a size-optimized serialization codec for small,
// schema-driven configuration payloads.
//
// A payload is a tree of typed values (integers, booleans, strings and
// nested heterogeneous arrays) emitted in a fixed schema-imposed order. The
// codec destructures the tree into per-type columns, bit-packs each column
// (unary-prefixed varints for integers, single bits for booleans, adaptive
// Huffman/base-N bundling for strings, 2-bit tags for array elements) and
// reconstructs the original tree exactly.
//
// # Basic Usage
//
// A schema implements confpack.Schema by writing its fields in declaration
// order and reading them back in the identical order:
//
//	type ServerConfig struct {
//	    Host    string
//	    Port    int64
//	    Verbose bool
//	}
//
//	func (c *ServerConfig) Version() byte { return 1 }
//
//	func (c *ServerConfig) Serialize(enc *blob.Encoder) {
//	    enc.WriteString(c.Host)
//	    enc.WriteInt(c.Port)
//	    enc.WriteBool(c.Verbose)
//	}
//
//	func (c *ServerConfig) Take(dec *blob.Decoder) error {
//	    var ok bool
//	    if c.Host, ok = dec.TakeString(); !ok {
//	        return errs.ErrColumnExhausted
//	    }
//	    if c.Port, ok = dec.TakeInt(); !ok {
//	        return errs.ErrColumnExhausted
//	    }
//	    if c.Verbose, ok = dec.TakeBool(); !ok {
//	        return errs.ErrColumnExhausted
//	    }
//	    return nil
//	}
//
//	payload, _ := confpack.Marshal(cfg)
//	err := confpack.Unmarshal(payload, &decoded)
//
// Field names are never emitted; the schema carries the structure on both
// sides, and the single leading version byte is the only evolution hook.
//
// # Package Structure
//
// This package provides convenient wrappers around the blob package. For
// fine-grained control (column reuse, batch sets, encoder options), use the
// blob package directly; the compress package adds an optional outer
// compression stage with sealed, checksummed frames.
package confpack

import "github.com/arloliu/confpack/blob"

// Schema is the interface user types implement to drive encoding and
// decoding. See blob.Schema.
type Schema = blob.Schema

// Value is one node of a property tree. See blob.Value.
type Value = blob.Value

// Marshal encodes s into a freshly allocated payload.
func Marshal(s Schema) ([]byte, error) {
	enc, err := blob.NewEncoder()
	if err != nil {
		return nil, err
	}

	enc.Begin()
	s.Serialize(enc)

	return enc.Finish(nil, s.Version()), nil
}

// Unmarshal decodes payload into s. The payload's version byte must match
// s.Version().
func Unmarshal(payload []byte, s Schema) error {
	dec := blob.NewDecoder()
	if err := dec.Decode(payload, s.Version()); err != nil {
		return err
	}

	return s.Take(dec)
}
