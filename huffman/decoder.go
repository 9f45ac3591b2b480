// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package huffman

import "github.com/tmyarchive/tmy/internal/bitbuf"

// noSymbol marks a decode table slot that does not correspond to any
// complete code.
const noSymbol = -1

// decodeTable is the dense "1 || path" lookup table described in the
// design: index by an accumulator that starts at 1 and absorbs one new bit
// per step, MSB-first: acc = acc<<1 | bit. A slot holds the decoded symbol
// once acc exactly matches a leaf's path, or noSymbol otherwise.
type decodeTable struct {
	table  []int16
	maxLen int
}

func buildDecodeTable(codes [numSymbols]code, maxLen int) *decodeTable {
	size := 1 << uint(maxLen+1)
	table := make([]int16, size)
	for i := range table {
		table[i] = noSymbol
	}
	for sym, c := range codes {
		acc := 1
		for _, bit := range c.bits {
			acc <<= 1
			if bit {
				acc |= 1
			}
		}
		table[acc] = int16(sym)
	}
	return &decodeTable{table: table, maxLen: maxLen}
}

// DecodeChunk is the exact inverse of EncodeChunk. totalBits, the number of
// payload bits to consume, is 8*len(c.Data) - c.UnusedBits, not the decoded
// byte count; decoding stops exactly when those bits are exhausted.
func DecodeChunk(c Chunk) ([]byte, error) {
	root, err := deserializeTree(c.Tree)
	if err != nil {
		return nil, err
	}
	codes, maxLen := walkCodes(root)
	dt := buildDecodeTable(codes, maxLen)

	totalBits := len(c.Data)*8 - int(c.UnusedBits)
	if totalBits < 0 {
		totalBits = 0
	}
	payload := bitbuf.FromBytes(c.Data, int(c.UnusedBits))

	var out []byte
	acc := 1
	for consumed := 0; consumed < totalBits; consumed++ {
		bit, ok := payload.ReadBit()
		if !ok {
			return nil, ErrTruncatedInput
		}
		acc <<= 1
		if bit {
			acc |= 1
		}
		if acc >= len(dt.table) {
			return nil, ErrTruncatedInput
		}
		if sym := dt.table[acc]; sym != noSymbol {
			out = append(out, byte(sym))
			acc = 1
		}
	}
	if acc != 1 {
		return nil, ErrTruncatedInput
	}
	return out, nil
}
