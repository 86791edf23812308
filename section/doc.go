// Package section defines the fixed leading section of a confpack payload.
//
// The header is bit-packed and immediately precedes the four value columns:
//
//	[u8 version]
//	[varint integer count][varint boolean count]
//	[1-bit all-ASCII flag]
//	[varint string count][varint tag count]
//
// The counts let the decoder drain each column without any in-band
// terminators; the all-ASCII flag selects the Huffman flavor used by every
// string in the payload.
package section
