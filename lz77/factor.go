// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package lz77

import "github.com/tmyarchive/tmy/internal/suffixarray"

// tinyRefThreshold maps a back-reference length to the decoded position at
// or beyond which it is no longer worth emitting: below this D, the
// reference's own length+offset fields plus flag overhead are smaller than
// l bytes; beyond it, literals are more compact.
var tinyRefThreshold = map[uint32]int{
	1: 128,
	2: 32768,
	3: 8388608,
}

// Factorize computes the greedy LZ77 parse of x: at each position it picks
// the longer of the PSV and NSV candidate matches (favoring NSV on a tie),
// then applies the tiny-reference guard that demotes pathologically short
// references at large D back into literals.
func Factorize(x []byte) []Factor {
	n := len(x)
	if n == 0 {
		return nil
	}
	idx := suffixarray.Build(x)

	var raw []Factor
	for k := 0; k < n; {
		row := idx.ISA[k]
		p1 := idx.SA[idx.PSV[row]]
		p2 := idx.SA[idx.NSV[row]]
		v1 := lcp(x, k, p1)
		v2 := lcp(x, k, p2)

		p, l := p2, v2
		if v1 > v2 {
			p, l = p1, v1
		}

		var c byte
		if k+l < n {
			c = x[k+l]
		}
		raw = append(raw, Factor{P: uint32(p), L: uint32(l), C: c})

		step := l
		if step < 1 {
			step = 1
		}
		k += step
	}

	return guardTinyRefs(x, raw)
}

// lcp returns the length of the common prefix of x[i:] and x[j:]. Either
// position may be n (the virtual sentinel position), in which case the
// bounds check below makes the result 0 without any special casing.
func lcp(x []byte, i, j int) int {
	n := len(x)
	l := 0
	for i+l < n && j+l < n && x[i+l] == x[j+l] {
		l++
	}
	return l
}

// guardTinyRefs walks the raw parse tracking the decoded position D,
// demoting references that are both short and expensive-per-byte at their D
// back into the equivalent run of literals. D advances identically whether
// or not a factor is demoted, since a demoted reference decodes to exactly
// as many bytes as it did before, so this is a single forward pass.
func guardTinyRefs(x []byte, factors []Factor) []Factor {
	out := make([]Factor, 0, len(factors))
	d := 0
	for _, f := range factors {
		if f.L > 0 {
			if threshold, ok := tinyRefThreshold[f.L]; ok && d >= threshold {
				for i := uint32(0); i < f.L; i++ {
					out = append(out, Factor{C: x[d+int(i)]})
				}
				d += int(f.L)
				continue
			}
		}
		out = append(out, f)
		if f.L == 0 {
			d++
		} else {
			d += int(f.L)
		}
	}
	return out
}
