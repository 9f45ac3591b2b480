// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package huffman implements a canonical-by-construction Huffman coder over
// the fixed 256-byte alphabet: tree construction and pre-order
// serialisation in tree.go, payload encoding in encoder.go, and table-driven
// decoding in decoder.go.
package huffman

// Error identifies an error in Huffman tree or payload decoding.
type Error string

func (e Error) Error() string { return "huffman: " + string(e) }

// Errors returned by this package.
const (
	ErrMalformedTree  = Error("tree bit stream ended before a complete pre-order tree was read")
	ErrTruncatedInput = Error("payload bits were exhausted mid-code")
)

const numSymbols = 256
