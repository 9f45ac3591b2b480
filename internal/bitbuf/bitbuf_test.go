// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package bitbuf

import (
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestWriteReadBits(t *testing.T) {
	var vectors = []struct {
		desc string
		ops  []int // widths to write/read, 0 means write/read a single bit
	}{
		{desc: "empty"},
		{desc: "single bit", ops: []int{0}},
		{desc: "one byte", ops: []int{8}},
		{desc: "mixed widths", ops: []int{1, 3, 5, 8, 13, 32, 2}},
		{desc: "many small", ops: []int{1, 1, 1, 1, 1, 1, 1, 1, 1}},
	}

	for _, v := range vectors {
		t.Run(v.desc, func(t *testing.T) {
			rng := rand.New(rand.NewSource(0))
			b := New()
			var vals []uint32
			for _, w := range v.ops {
				if w == 0 {
					bit := rng.Intn(2) == 1
					b.WriteBit(bit)
					if bit {
						vals = append(vals, 1)
					} else {
						vals = append(vals, 0)
					}
					continue
				}
				val := uint32(rng.Int63()) & uint32(1<<uint(w)-1)
				if w == 32 {
					val = uint32(rng.Int63())
				}
				b.WriteBits(val, uint(w))
				vals = append(vals, val)
			}

			for i, w := range v.ops {
				if w == 0 {
					w = 1
				}
				got, ok := b.ReadBits(uint(w))
				if !ok {
					t.Fatalf("op %d: ReadBits(%d) failed unexpectedly", i, w)
				}
				want := vals[i]
				if w < 32 {
					want &= uint32(1<<uint(w) - 1)
				}
				if got != want {
					t.Errorf("op %d: ReadBits(%d) = %d, want %d", i, w, got, want)
				}
			}
			if _, ok := b.ReadBit(); ok {
				t.Errorf("expected exhausted buffer")
			}
		})
	}
}

func TestReadByte(t *testing.T) {
	b := New()
	b.WriteByte(0x00)
	b.WriteByte(0xff)
	b.WriteByte(0x5a)

	want := []byte{0x00, 0xff, 0x5a}
	for i, w := range want {
		got, ok := b.ReadByte()
		if !ok || got != w {
			t.Errorf("byte %d: ReadByte() = (%#x, %v), want (%#x, true)", i, got, ok, w)
		}
	}
	if _, ok := b.ReadByte(); ok {
		t.Errorf("expected ReadByte to fail past the end")
	}
}

func TestShortReadsDoNotAdvance(t *testing.T) {
	b := New()
	b.WriteBits(0x3, 2)

	if _, ok := b.ReadBits(8); ok {
		t.Fatalf("ReadBits(8) succeeded with only 2 bits available")
	}
	got, ok := b.ReadBits(2)
	if !ok || got != 0x3 {
		t.Fatalf("ReadBits(2) = (%d, %v), want (3, true)", got, ok)
	}
}

func TestSerializeDeserialize(t *testing.T) {
	var vectors = [][]uint{
		{},
		{1},
		{8},
		{3, 5, 8, 13, 32},
		{1, 1, 1, 1, 1, 1, 1, 1},
	}

	for _, widths := range vectors {
		rng := rand.New(rand.NewSource(1))
		b := New()
		var vals []uint32
		for _, w := range widths {
			val := uint32(rng.Int63())
			if w < 32 {
				val &= uint32(1<<w - 1)
			}
			b.WriteBits(val, w)
			vals = append(vals, val)
		}

		data := b.Serialize()
		b2 := Deserialize(data)
		if b2.Len() != b.Len() {
			t.Fatalf("Len mismatch: got %d, want %d", b2.Len(), b.Len())
		}

		var got []uint32
		for _, w := range widths {
			v, ok := b2.ReadBits(w)
			if !ok {
				t.Fatalf("ReadBits(%d) failed after deserialize", w)
			}
			got = append(got, v)
		}
		if diff := cmp.Diff(vals, got); diff != "" {
			t.Errorf("round-trip mismatch (-want +got):\n%s", diff)
		}
	}
}

func TestSerializeEmpty(t *testing.T) {
	b := New()
	data := b.Serialize()
	b2 := Deserialize(data)
	if b2.Len() != 0 {
		t.Errorf("Len() = %d, want 0", b2.Len())
	}
	if _, ok := b2.ReadBit(); ok {
		t.Errorf("expected empty buffer to have no bits")
	}
}
