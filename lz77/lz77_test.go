// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package lz77

import (
	"bytes"
	"math/rand"
	"strings"
	"testing"

	"github.com/tmyarchive/tmy/internal/testutil"
)

func roundTrip(t *testing.T, x []byte) []byte {
	t.Helper()
	factors := Factorize(x)
	buf := Encode(factors)
	got, err := Decode(buf, len(x))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	return got
}

func TestRoundTrip(t *testing.T) {
	var vectors = []struct {
		desc string
		in   []byte
	}{
		{desc: "empty", in: nil},
		{desc: "single byte", in: []byte("A")},
		{desc: "long repeated run", in: bytes.Repeat([]byte{'b'}, 1000)},
		{desc: "abracadabra", in: []byte("abracadabra")},
		{desc: "mixed ascii", in: []byte(strings.Repeat("the quick brown fox jumps over the lazy dog. ", 20))},
		{desc: "two byte alphabet", in: bytes.Repeat([]byte{'a', 'b'}, 500)},
	}

	for _, v := range vectors {
		t.Run(v.desc, func(t *testing.T) {
			got := roundTrip(t, v.in)
			if !bytes.Equal(got, v.in) {
				t.Errorf("round-trip mismatch:\ngot:  %q\nwant: %q", got, v.in)
			}
		})
	}
}

func TestRoundTripRandom(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for _, size := range []int{0, 1, 17, 256, 4096} {
		x := make([]byte, size)
		// Small alphabet to encourage matches, like real archive contents.
		for i := range x {
			x[i] = byte('a' + rng.Intn(6))
		}
		got := roundTrip(t, x)
		if !bytes.Equal(got, x) {
			t.Errorf("size %d: round-trip mismatch", size)
		}
	}
}

func TestFactorizeProducesValidParse(t *testing.T) {
	x := []byte("abracadabra abracadabra abracadabra")
	factors := Factorize(x)

	d := 0
	for i, f := range factors {
		if f.L == 0 {
			d++
			continue
		}
		if int(f.P) >= d {
			t.Fatalf("factor %d: reference position %d >= decoded position %d", i, f.P, d)
		}
		d += int(f.L)
	}
	if d != len(x) {
		t.Fatalf("parse covers %d decoded bytes, want %d", d, len(x))
	}
}

func TestTinyReferenceGuard(t *testing.T) {
	// A long period-23 prefix followed by a two-byte match pushes D past the
	// 32768 threshold for length-2 references, so the match must be
	// demoted to two literals rather than packed as a reference.
	prefix := make([]byte, 32800)
	for i := range prefix {
		prefix[i] = byte('a' + i%23)
	}
	x := append(prefix, prefix[0], prefix[1])

	got := roundTrip(t, x)
	if !bytes.Equal(got, x) {
		t.Fatalf("round-trip mismatch after tiny-reference guard")
	}
}

func TestOutOfRangeReference(t *testing.T) {
	factors := []Factor{{L: 0, C: 'a'}, {P: 5, L: 1}}
	buf := Encode(factors)
	if _, err := Decode(buf, 2); err != ErrOutOfRangeReference {
		t.Fatalf("Decode error = %v, want ErrOutOfRangeReference", err)
	}
}

func TestDecodeTruncated(t *testing.T) {
	factors := Factorize([]byte("abracadabra"))
	buf := Encode(factors)
	if _, err := Decode(buf, 1000); err != ErrTruncatedInput {
		t.Fatalf("Decode error = %v, want ErrTruncatedInput", err)
	}
}

// TestRoundTripDeterministicRand exercises the parse against data from the
// module's own AES-based deterministic generator, whose output (unlike
// math/rand's) is guaranteed stable across Go versions, so a failure here
// reproduces identically on any toolchain.
func TestRoundTripDeterministicRand(t *testing.T) {
	rng := testutil.NewRand(99)
	for _, size := range []int{0, 1, 64, 4096} {
		x := rng.Bytes(size)
		got := roundTrip(t, x)
		if !bytes.Equal(got, x) {
			t.Errorf("size %d: round-trip mismatch", size)
		}
	}
}

func TestRoundTripRepeatHeavy(t *testing.T) {
	x := testutil.GenRepeats(1, 1<<15)
	got := roundTrip(t, x)
	if !bytes.Equal(got, x) {
		t.Errorf("round-trip mismatch on repeat-heavy data")
	}
}
