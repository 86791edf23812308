// Package errs defines the sentinel errors shared across confpack packages.
package errs

import "errors"

var (
	// ErrTruncatedPayload indicates a read operation hit the end of the
	// payload before all announced data was consumed.
	ErrTruncatedPayload = errors.New("truncated payload")

	// ErrVersionMismatch indicates the payload's leading version byte does
	// not match the version the schema expects.
	ErrVersionMismatch = errors.New("payload version mismatch")

	// ErrInvalidPropertyTag indicates a property tag decoded outside the
	// known set. Unreachable with a 2-bit tag width, but guarded.
	ErrInvalidPropertyTag = errors.New("invalid property tag")

	// ErrColumnExhausted indicates a take operation popped from an empty
	// column queue; the schema read more values than were encoded.
	ErrColumnExhausted = errors.New("column exhausted")

	// ErrFrameTooShort indicates a sealed frame is smaller than its fixed
	// header.
	ErrFrameTooShort = errors.New("sealed frame too short")

	// ErrChecksumMismatch indicates a sealed frame's payload checksum does
	// not match the stored digest.
	ErrChecksumMismatch = errors.New("frame checksum mismatch")

	// ErrInvalidCompression indicates an unknown compression codec byte in
	// a sealed frame.
	ErrInvalidCompression = errors.New("invalid compression codec")
)
