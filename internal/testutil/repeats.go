// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package testutil

import "math/rand"

// GenRepeats deterministically generates size bytes of data that heavily
// favors LZ77-style compression: long runs are mostly copies from some
// earlier distance, with the copied bytes themselves mostly random, so
// Huffman coding alone benefits far less than the LZ77 stage does. Used to
// exercise the "tag picks the smaller form" and long-back-reference paths
// in the container and lz77 package tests.
func GenRepeats(seed int64, size int) []byte {
	var b []byte
	r := rand.New(rand.NewSource(seed))

	randLen := func() (l int) {
		switch p := r.Float32(); {
		case p <= 0.15:
			l = 4 + r.Intn(4)
		case p <= 0.30:
			l = 8 + r.Intn(8)
		case p <= 0.45:
			l = 16 + r.Intn(16)
		case p <= 0.60:
			l = 32 + r.Intn(32)
		case p <= 0.75:
			l = 64 + r.Intn(64)
		case p <= 0.90:
			l = 128 + r.Intn(128)
		default:
			l = 256 + r.Intn(256)
		}
		return l
	}

	randDist := func() (d int) {
		for d == 0 || d > len(b) {
			switch p := r.Float32(); {
			case p <= 0.1:
				d = 1
			case p <= 0.2:
				d = 2 + r.Intn(2)
			case p <= 0.3:
				d = 4 + r.Intn(4)
			case p <= 0.4:
				d = 8 + r.Intn(8)
			case p <= 0.5:
				d = 16 + r.Intn(16)
			case p <= 0.6:
				d = 32 + r.Intn(32)
			case p <= 0.7:
				d = 64 + r.Intn(64)
			case p <= 0.8:
				d = 128 + r.Intn(128)
			case p <= 0.9:
				d = 256 + r.Intn(256)
			default:
				d = 512 + r.Intn(512)
			}
		}
		return d
	}

	writeRand := func(l int) {
		for i := 0; i < l; i++ {
			b = append(b, byte(r.Int()))
		}
	}
	writeCopy := func(d, l int) {
		for i := 0; i < l; i++ {
			b = append(b, b[len(b)-d])
		}
	}

	writeRand(randLen())
	for len(b) < size {
		switch p := r.Float32(); {
		case p <= 0.1:
			writeRand(randLen())
		case p <= 0.9:
			d, l := randDist(), randLen()
			for d <= l {
				d, l = randDist(), randLen()
			}
			writeCopy(d, l)
		default:
			writeCopy(randDist(), randLen())
		}
	}
	return b[:size]
}
