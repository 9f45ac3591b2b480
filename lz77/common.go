// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package lz77 implements the LZ77 factoriser and the position-adaptive
// variable-width bit packer built on top of it. Factorisation finds the
// parse; encoder.go and decoder.go turn a parse into (and back out of) a
// bitbuf.Buffer.
package lz77

import "math/bits"

// Error identifies an error in LZ77 factor encoding or decoding.
type Error string

func (e Error) Error() string { return "lz77: " + string(e) }

// Errors returned by this package.
const (
	ErrOutOfRangeReference = Error("factor references a position at or beyond the current decoded length")
	ErrTruncatedInput      = Error("bit stream ended before the expected number of bytes were decoded")
	ErrCorruptStream       = Error("decoded more bytes than expected for this chunk")
)

// Factor is a single LZ77 parse step.
//
// Two shapes, distinguished by L:
//   - literal: L == 0, C is the literal byte, P is unused.
//   - back-reference: L >= 1, P is the source position (P < the decoded
//     position at the start of this factor), C is unused.
type Factor struct {
	P uint32
	L uint32
	C byte
}

// offsetBits returns the number of bits needed to address any position
// strictly less than d: 32 minus the leading zero count of d. When d is 0,
// no offset field is ever written, since there is nothing to reference yet.
func offsetBits(d uint32) uint {
	if d == 0 {
		return 0
	}
	return uint(32 - bits.LeadingZeros32(d))
}

// lengthBits returns the width, in [1, 8], of the length field used at
// decoded position d. It grows roughly a third as fast as offsetBits, since
// match lengths need far less range than offsets do.
func lengthBits(d uint32) uint {
	lz := bits.LeadingZeros32(d)
	v := (31 - lz) / 3
	if v < 1 {
		v = 1
	}
	if v > 8 {
		v = 8
	}
	return uint(v)
}
