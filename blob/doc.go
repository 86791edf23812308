// Package blob implements the columnar serializer and deserializer for
// confpack property trees.
//
// A property tree is an ordered tree of integers, booleans, UTF-8 strings
// and heterogeneous arrays. During encode the tree is destructured, in
// visitation order, into four append-only columns:
//
//	I  integers (array lengths occupy one slot each)
//	B  booleans
//	S  strings
//	T  property-type tags, one per array element
//
// Tags are only emitted for array elements; fixed struct fields are driven by
// the schema, which calls the Write* methods in declaration order and the
// Take* methods in the identical order on decode. Grouping same-typed values
// reduces pointless entropy and keeps the payload friendly to an outer
// general-purpose compressor.
//
// The payload is the section.Header followed by the four columns. On decode
// every column is materialized into a FIFO queue the schema drains
// front-to-back; decoded strings are owned by the caller.
//
// Encoders and Decoders retain their column storage between payloads: Begin
// and Decode clear, they do not free.
package blob
