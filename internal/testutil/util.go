// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package testutil is a collection of testing helper methods shared across
// this module's package tests.
package testutil

import "encoding/hex"

// MustDecodeHex must decode a hexadecimal string or else panics. Handy for
// writing malformed/truncated bit-stream test vectors inline.
func MustDecodeHex(s string) []byte {
	b, err := hex.DecodeString(s)
	if err != nil {
		panic(err)
	}
	return b
}
