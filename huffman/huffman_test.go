// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package huffman

import (
	"bytes"
	"math/rand"
	"strings"
	"testing"

	"github.com/tmyarchive/tmy/internal/bitbuf"
)

func TestRoundTrip(t *testing.T) {
	var vectors = []struct {
		desc string
		in   []byte
	}{
		{desc: "single byte", in: []byte("A")},
		{desc: "single distinct byte repeated", in: bytes.Repeat([]byte{'x'}, 500)},
		{desc: "two symbols", in: bytes.Repeat([]byte{'a', 'b'}, 300)},
		{desc: "english text", in: []byte(strings.Repeat("the quick brown fox jumps over the lazy dog. ", 50))},
		{desc: "all 256 byte values", in: func() []byte {
			b := make([]byte, 256)
			for i := range b {
				b[i] = byte(i)
			}
			return b
		}()},
	}

	for _, v := range vectors {
		t.Run(v.desc, func(t *testing.T) {
			c := EncodeChunk(v.in)
			got, err := DecodeChunk(c)
			if err != nil {
				t.Fatalf("DecodeChunk: %v", err)
			}
			if !bytes.Equal(got, v.in) {
				t.Errorf("round-trip mismatch:\ngot:  %q\nwant: %q", got, v.in)
			}
		})
	}
}

func TestRoundTripRandom(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	x := make([]byte, 1<<20)
	rng.Read(x)

	c := EncodeChunk(x)
	_, maxLen := walkCodes(mustTree(t, c))
	if maxLen < 7 || maxLen > 9 {
		t.Errorf("max code length = %d, want within 8+-1 for near-uniform random bytes", maxLen)
	}
	c.Tree.Rewind()

	got, err := DecodeChunk(c)
	if err != nil {
		t.Fatalf("DecodeChunk: %v", err)
	}
	if !bytes.Equal(got, x) {
		t.Errorf("round-trip mismatch on random data")
	}
}

func mustTree(t *testing.T, c Chunk) *node {
	t.Helper()
	root, err := deserializeTree(c.Tree)
	if err != nil {
		t.Fatalf("deserializeTree: %v", err)
	}
	return root
}

func TestDegenerateSingleSymbol(t *testing.T) {
	x := bytes.Repeat([]byte{0x42}, 10)
	c := EncodeChunk(x)
	_, maxLen := walkCodes(mustTree(t, c))
	if maxLen == 0 {
		t.Errorf("single-symbol input produced a zero-length code; zero-count seeding should prevent this")
	}
	c.Tree.Rewind()
	got, err := DecodeChunk(c)
	if err != nil {
		t.Fatalf("DecodeChunk: %v", err)
	}
	if !bytes.Equal(got, x) {
		t.Errorf("round-trip mismatch")
	}
}

func TestMalformedTree(t *testing.T) {
	// A lone "internal node" bit (0) with nothing behind it can never be a
	// complete pre-order tree.
	buf := bitbuf.New()
	buf.WriteBit(false)
	if _, err := deserializeTree(buf); err != ErrMalformedTree {
		t.Fatalf("deserializeTree error = %v, want ErrMalformedTree", err)
	}
}
