// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package huffman

import (
	"container/heap"

	"github.com/dsnet/golib/errs"

	"github.com/tmyarchive/tmy/internal/bitbuf"
)

// node is a Huffman tree node: either a leaf holding one of the 256 byte
// values, or an internal node with two children. seq breaks ties between
// equal-weight nodes deterministically, in creation order, so encoder and
// decoder never need to agree on anything beyond the serialised tree
// itself.
type node struct {
	weight      uint64
	seq         int
	leaf        bool
	sym         byte
	left, right *node
}

// nodeHeap is a container/heap min-heap ordered by (weight, seq).
type nodeHeap []*node

func (h nodeHeap) Len() int { return len(h) }
func (h nodeHeap) Less(i, j int) bool {
	if h[i].weight != h[j].weight {
		return h[i].weight < h[j].weight
	}
	return h[i].seq < h[j].seq
}
func (h nodeHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }
func (h *nodeHeap) Push(x interface{}) { *h = append(*h, x.(*node)) }
func (h *nodeHeap) Pop() interface{} {
	old := *h
	n := len(old)
	v := old[n-1]
	*h = old[:n-1]
	return v
}

// buildTree constructs the canonical tree from per-symbol occurrence
// counts. All 256 symbols are seeded as leaves, including zero-count ones,
// so the tree shape never depends on which bytes happen to be absent from
// a particular chunk.
func buildTree(counts [numSymbols]uint64) *node {
	h := make(nodeHeap, numSymbols)
	for b := 0; b < numSymbols; b++ {
		h[b] = &node{weight: counts[b], seq: b, leaf: true, sym: byte(b)}
	}
	heap.Init(&h)

	seq := numSymbols
	for h.Len() > 1 {
		a := heap.Pop(&h).(*node)
		b := heap.Pop(&h).(*node)
		heap.Push(&h, &node{weight: a.weight + b.weight, seq: seq, left: a, right: b})
		seq++
	}
	return h[0]
}

// code is a single symbol's bit path from the tree root, left = 0, right = 1.
type code struct {
	bits []bool
}

// walkCodes returns the code table and the maximum code length across all
// 256 symbols.
func walkCodes(root *node) (codes [numSymbols]code, maxLen int) {
	var walk func(n *node, path []bool)
	walk = func(n *node, path []bool) {
		if n.leaf {
			p := make([]bool, len(path))
			copy(p, path)
			codes[n.sym] = code{bits: p}
			if len(p) > maxLen {
				maxLen = len(p)
			}
			return
		}
		walk(n.left, append(path, false))
		walk(n.right, append(path, true))
	}
	walk(root, nil)
	return codes, maxLen
}

// serializeTree writes the pre-order, bit-compact tree encoding described in
// the Huffman coder design: one bit per node, 1 = leaf + 8-bit symbol,
// 0 = internal + left subtree + right subtree.
func serializeTree(root *node) *bitbuf.Buffer {
	buf := bitbuf.New()
	var write func(n *node)
	write = func(n *node) {
		if n.leaf {
			buf.WriteBit(true)
			buf.WriteByte(n.sym)
			return
		}
		buf.WriteBit(false)
		write(n.left)
		write(n.right)
	}
	write(root)
	return buf
}

// deserializeTree is the exact inverse of serializeTree. It uses the
// recover-based error idiom for the recursive descent, since a malformed
// tree can bail out from arbitrary depth and threading an error return
// through every recursive call obscures the one-bit-at-a-time shape of the
// format.
func deserializeTree(buf *bitbuf.Buffer) (root *node, err error) {
	defer errs.Recover(&err)

	var read func() *node
	read = func() *node {
		bit, ok := buf.ReadBit()
		errs.Assert(ok, ErrMalformedTree)
		if bit {
			sym, ok := buf.ReadByte()
			errs.Assert(ok, ErrMalformedTree)
			return &node{leaf: true, sym: sym}
		}
		left := read()
		right := read()
		return &node{left: left, right: right}
	}
	return read(), nil
}
