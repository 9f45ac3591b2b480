// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package huffman

import "github.com/tmyarchive/tmy/internal/bitbuf"

// Chunk is the on-the-wire shape of one Huffman-coded chunk: the
// pre-order-serialised tree, the payload's unused trailing bits, and the
// raw payload bytes themselves.
type Chunk struct {
	Tree       *bitbuf.Buffer
	UnusedBits byte
	Data       []byte
}

// EncodeChunk builds the canonical Huffman tree for x and encodes x against
// it. The caller is responsible for not calling this on an empty x; an
// empty chunk has no tree to build (see the degenerate-input design note).
func EncodeChunk(x []byte) Chunk {
	var counts [numSymbols]uint64
	for _, b := range x {
		counts[b]++
	}
	root := buildTree(counts)
	codes, _ := walkCodes(root)

	payload := bitbuf.New()
	for _, b := range x {
		for _, bit := range codes[b].bits {
			payload.WriteBit(bit)
		}
	}

	unused := byte((8 - payload.Len()%8) % 8)
	return Chunk{
		Tree:       serializeTree(root),
		UnusedBits: unused,
		Data:       payload.Bytes(),
	}
}
