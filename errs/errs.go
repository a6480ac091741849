// Package errs defines the sentinel error values returned by the numcodec
// chunk compression pipeline.
//
// Every fallible operation wraps one of these with fmt.Errorf("%w: ...", ...),
// so callers should match with errors.Is rather than comparing error values
// directly.
package errs

import "errors"

var (
	// ErrCompatibility indicates the decoded format version is newer than
	// this implementation supports.
	ErrCompatibility = errors.New("numcodec: incompatible format version")

	// ErrCorruption indicates wire bytes violate a format invariant: bin
	// weights don't sum to 2^size_log, bins overlap, an offset exceeds its
	// bin's range, an ANS state is out of range, or delta moments don't
	// match the page shape.
	ErrCorruption = errors.New("numcodec: corrupted chunk data")

	// ErrInsufficientData indicates fewer bytes were available than the
	// format requires at the current read position. Callers may retry once
	// more bytes are available.
	ErrInsufficientData = errors.New("numcodec: insufficient data")

	// ErrInvalidArgument indicates the caller supplied a configuration or
	// input the encoder rejects outright: an empty chunk, a chunk
	// exceeding the maximum entry count, an out-of-range delta order, a
	// paging spec whose page counts don't sum to the chunk length, etc.
	ErrInvalidArgument = errors.New("numcodec: invalid argument")

	// ErrIO wraps a failure from the underlying byte sink or source.
	ErrIO = errors.New("numcodec: io error")
)
