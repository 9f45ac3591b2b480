// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package lz77

import "github.com/tmyarchive/tmy/internal/bitbuf"

// Decode is the exact inverse of Encode: n is the number of decoded bytes
// this chunk must produce, which the caller (container.go) keeps in its
// per-chunk record rather than in the bit stream itself. Decoding
// stops as soon as the running decoded position reaches n; an all-ones
// length field is unambiguous under this rule; there is no separate
// "is this the terminal fragment" test to perform, since reading a
// regular factor on the next iteration handles both cases identically.
func Decode(buf *bitbuf.Buffer, n int) ([]byte, error) {
	litHeavy, ok := buf.ReadBit()
	if !ok {
		if n == 0 {
			return nil, nil
		}
		return nil, ErrTruncatedInput
	}

	var factors []Factor
	var d uint32
	for int(d) < n {
		lb := lengthBits(d)

		if litHeavy {
			tag, ok := buf.ReadBit()
			if !ok {
				return nil, ErrTruncatedInput
			}
			if !tag {
				c, ok := buf.ReadByte()
				if !ok {
					return nil, ErrTruncatedInput
				}
				factors = append(factors, Factor{C: c})
				d++
				continue
			}
			l, ok := buf.ReadBits(lb)
			if !ok {
				return nil, ErrTruncatedInput
			}
			p, ok := buf.ReadBits(offsetBits(d))
			if !ok {
				return nil, ErrTruncatedInput
			}
			factors = append(factors, Factor{P: p, L: l})
			d += l
			continue
		}

		l, ok := buf.ReadBits(lb)
		if !ok {
			return nil, ErrTruncatedInput
		}
		if l == 0 {
			c, ok := buf.ReadByte()
			if !ok {
				return nil, ErrTruncatedInput
			}
			factors = append(factors, Factor{C: c})
			d++
			continue
		}
		p, ok := buf.ReadBits(offsetBits(d))
		if !ok {
			return nil, ErrTruncatedInput
		}
		factors = append(factors, Factor{P: p, L: l})
		d += l
	}
	if int(d) != n {
		return nil, ErrCorruptStream
	}

	return applyFactors(factors, n)
}

// applyFactors replays a factor list into the decoded byte slice. Back
// references may legitimately overlap the bytes they are still producing
// (p < the length of out at the start of the factor is enough; p+l may
// exceed it), which is exactly how a single factor expresses a long run of
// a repeated byte or short pattern.
func applyFactors(factors []Factor, n int) ([]byte, error) {
	out := make([]byte, 0, n)
	for _, f := range factors {
		if f.L == 0 {
			out = append(out, f.C)
			continue
		}
		p := int(f.P)
		if p < 0 || p >= len(out) {
			return nil, ErrOutOfRangeReference
		}
		for i := 0; i < int(f.L); i++ {
			out = append(out, out[p+i])
		}
	}
	return out, nil
}
