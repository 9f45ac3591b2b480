// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package lz77

import "github.com/tmyarchive/tmy/internal/bitbuf"

// literalHeavyThreshold is the literal-fraction cutoff above which a chunk
// is packed in literal-heavy mode (explicit tag bit per factor) rather than
// reference-heavy mode (a zero-valued length field doubles as the literal
// tag).
const literalHeavyThreshold = 0.25

// chooseFlagMode reports whether factors should be packed literal-heavy.
func chooseFlagMode(factors []Factor) bool {
	if len(factors) == 0 {
		return false
	}
	lits := 0
	for _, f := range factors {
		if f.L == 0 {
			lits++
		}
	}
	return float64(lits)/float64(len(factors)) > literalHeavyThreshold
}

// Encode packs a parse into a bitbuf.Buffer: one leading flag bit selecting
// the mode, then the factors themselves, each using the length_bits(D)/
// offset_bits(D) field widths current at its own decoded position.
// References longer than the current length field's maximum are split into
// max-length run fragments followed by a (possibly zero-length) remainder.
func Encode(factors []Factor) *bitbuf.Buffer {
	litHeavy := chooseFlagMode(factors)

	buf := bitbuf.New()
	buf.WriteBit(litHeavy)

	var d uint32
	for _, f := range factors {
		lb := lengthBits(d)
		if f.L == 0 {
			if litHeavy {
				buf.WriteBit(false)
			} else {
				buf.WriteBits(0, lb)
			}
			buf.WriteByte(f.C)
			d++
			continue
		}

		l, p := f.L, f.P
		maxLen := uint32(1)<<lb - 1
		if l < maxLen {
			writeReference(buf, litHeavy, lb, d, l, p)
			d += l
			continue
		}
		for l >= maxLen {
			writeReference(buf, litHeavy, lb, d, maxLen, p)
			p += maxLen
			l -= maxLen
			d += maxLen
			lb = lengthBits(d)
			maxLen = uint32(1)<<lb - 1
		}
		if l != 0 {
			writeReference(buf, litHeavy, lb, d, l, p)
			d += l
		}
	}
	return buf
}

// writeReference writes one reference factor (or run fragment) of length l
// starting at source position p, using length field width lb and the
// offset field width current at decoded position d.
func writeReference(buf *bitbuf.Buffer, litHeavy bool, lb uint, d, l, p uint32) {
	if litHeavy {
		buf.WriteBit(true)
	}
	buf.WriteBits(l, lb)
	buf.WriteBits(p, offsetBits(d))
}
