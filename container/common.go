// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package container implements the parallel chunked driver and the
// top-level self-describing container format: chunking in chunks.go,
// the worker pool in driver.go, and tag/checksum/framing assembly in
// container.go.
package container

// Error identifies an error in container assembly or parsing.
type Error string

func (e Error) Error() string { return "container: " + string(e) }

// Errors returned by this package.
const (
	ErrInvalidTag       = Error("leading container byte is neither 0 nor 1")
	ErrInvalidParameter = Error("chunk-size exponent out of [8, 31]")
	ErrChecksumMismatch = Error("payload checksum does not match the container header")
	ErrTruncatedList    = Error("chunk list ended before its declared length")
)

// Options configures the chunk sizes and worker count used by Compress and
// Decompress. The zero value is not valid; use DefaultOptions as a base.
type Options struct {
	// LZBits is log2 of the LZ77 chunk size in bytes (size = 2^LZBits - 1).
	LZBits int
	// HuffmanBits is log2 of the Huffman chunk size in bytes.
	HuffmanBits int
	// Workers is the number of chunks processed concurrently. Zero means
	// use the local logical core count.
	Workers int
}

// DefaultOptions matches cmd/tmy's own flag defaults.
func DefaultOptions() Options {
	return Options{LZBits: 28, HuffmanBits: 20}
}

func validateBits(bits int) error {
	if bits < 8 || bits > 31 {
		return ErrInvalidParameter
	}
	return nil
}
