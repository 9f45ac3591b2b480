// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package container

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"

	"github.com/tmyarchive/tmy/huffman"
	"github.com/tmyarchive/tmy/internal/bitbuf"
	"github.com/tmyarchive/tmy/lz77"
)

// Compress runs the full pipeline: chunked LZ77 factorisation, then a
// second chunked Huffman pass over the LZ-serialised bytes, keeping
// whichever of the two serialised forms is smaller.
func Compress(data []byte, opts Options) ([]byte, error) {
	if err := validateBits(opts.LZBits); err != nil {
		return nil, err
	}
	if err := validateBits(opts.HuffmanBits); err != nil {
		return nil, err
	}

	lzBytes, err := lzEncode(data, opts)
	if err != nil {
		return nil, err
	}
	huffBytes, err := huffmanEncode(lzBytes, opts)
	if err != nil {
		return nil, err
	}

	tag := byte(0)
	payload := lzBytes
	if len(huffBytes) < len(lzBytes) {
		tag = 1
		payload = huffBytes
	}

	out := make([]byte, 0, 1+8+len(payload))
	out = append(out, tag)
	var sum [8]byte
	binary.LittleEndian.PutUint64(sum[:], xxhash.Sum64(payload))
	out = append(out, sum[:]...)
	out = append(out, payload...)
	return out, nil
}

// Decompress is the exact inverse of Compress.
func Decompress(data []byte, opts Options) ([]byte, error) {
	if len(data) < 9 {
		return nil, ErrInvalidTag
	}
	tag := data[0]
	if tag != 0 && tag != 1 {
		return nil, ErrInvalidTag
	}
	wantSum := binary.LittleEndian.Uint64(data[1:9])
	payload := data[9:]
	if xxhash.Sum64(payload) != wantSum {
		return nil, ErrChecksumMismatch
	}

	var lzBytes []byte
	var err error
	if tag == 1 {
		lzBytes, err = huffmanDecode(payload, opts)
		if err != nil {
			return nil, err
		}
	} else {
		lzBytes = payload
	}
	return lzDecode(lzBytes, opts)
}

// --- LZ77 stage -------------------------------------------------------

type lzRecord struct {
	decodedLen int
	buf        []byte
}

func lzEncode(data []byte, opts Options) ([]byte, error) {
	chunks := splitChunks(data, opts.LZBits)
	records, err := parallelMap(chunks, opts.Workers, func(c []byte) (lzRecord, error) {
		factors := lz77.Factorize(c)
		buf := lz77.Encode(factors)
		return lzRecord{decodedLen: len(c), buf: buf.Serialize()}, nil
	})
	if err != nil {
		return nil, err
	}
	return encodeList(len(records), func(i int) []byte {
		r := records[i]
		head := make([]byte, 0, 20)
		head = appendUvarint(head, uint64(r.decodedLen))
		head = appendUvarint(head, uint64(len(r.buf)))
		return append(head, r.buf...)
	}), nil
}

func lzDecode(data []byte, opts Options) ([]byte, error) {
	recordBytes, err := decodeList(data)
	if err != nil {
		return nil, err
	}
	results, err := parallelMap(recordBytes, opts.Workers, func(rec []byte) ([]byte, error) {
		decodedLen, n, ok := readUvarint(rec)
		if !ok {
			return nil, ErrTruncatedList
		}
		rec = rec[n:]
		bufLen, n2, ok := readUvarint(rec)
		if !ok {
			return nil, ErrTruncatedList
		}
		rec = rec[n2:]
		if uint64(len(rec)) < bufLen {
			return nil, ErrTruncatedList
		}
		buf := bitbuf.Deserialize(rec[:bufLen])
		return lz77.Decode(buf, int(decodedLen))
	})
	if err != nil {
		return nil, err
	}
	var out []byte
	for _, r := range results {
		out = append(out, r...)
	}
	return out, nil
}

// --- Huffman stage ------------------------------------------------------

func huffmanEncode(data []byte, opts Options) ([]byte, error) {
	chunks := splitChunks(data, opts.HuffmanBits)
	records, err := parallelMap(chunks, opts.Workers, func(c []byte) (huffman.Chunk, error) {
		return huffman.EncodeChunk(c), nil
	})
	if err != nil {
		return nil, err
	}
	return encodeList(len(records), func(i int) []byte {
		r := records[i]
		treeBytes := r.Tree.Serialize()
		head := make([]byte, 0, len(treeBytes)+16)
		head = appendUvarint(head, uint64(len(treeBytes)))
		head = append(head, treeBytes...)
		head = append(head, r.UnusedBits)
		head = appendUvarint(head, uint64(len(r.Data)))
		head = append(head, r.Data...)
		return head
	}), nil
}

func huffmanDecode(data []byte, opts Options) ([]byte, error) {
	recordBytes, err := decodeList(data)
	if err != nil {
		return nil, err
	}
	results, err := parallelMap(recordBytes, opts.Workers, func(rec []byte) ([]byte, error) {
		treeLen, n, ok := readUvarint(rec)
		if !ok {
			return nil, ErrTruncatedList
		}
		rec = rec[n:]
		if uint64(len(rec)) < treeLen {
			return nil, ErrTruncatedList
		}
		tree := bitbuf.Deserialize(rec[:treeLen])
		rec = rec[treeLen:]
		if len(rec) < 1 {
			return nil, ErrTruncatedList
		}
		unusedBits := rec[0]
		rec = rec[1:]
		dataLen, n2, ok := readUvarint(rec)
		if !ok {
			return nil, ErrTruncatedList
		}
		rec = rec[n2:]
		if uint64(len(rec)) < dataLen {
			return nil, ErrTruncatedList
		}
		return huffman.DecodeChunk(huffman.Chunk{
			Tree:       tree,
			UnusedBits: unusedBits,
			Data:       rec[:dataLen],
		})
	})
	if err != nil {
		return nil, err
	}
	var out []byte
	for _, r := range results {
		out = append(out, r...)
	}
	return out, nil
}

// --- list framing ---------------------------------------------------

// encodeList frames n records, each produced by marshal(i), as a
// uvarint record count followed by uvarint-length-prefixed records.
func encodeList(n int, marshal func(i int) []byte) []byte {
	out := appendUvarint(nil, uint64(n))
	for i := 0; i < n; i++ {
		rec := marshal(i)
		out = appendUvarint(out, uint64(len(rec)))
		out = append(out, rec...)
	}
	return out
}

// decodeList is the inverse of encodeList: it returns the raw bytes of
// each record without interpreting them.
func decodeList(data []byte) ([][]byte, error) {
	count, n, ok := readUvarint(data)
	if !ok {
		return nil, ErrTruncatedList
	}
	data = data[n:]
	records := make([][]byte, 0, count)
	for i := uint64(0); i < count; i++ {
		length, n2, ok := readUvarint(data)
		if !ok {
			return nil, ErrTruncatedList
		}
		data = data[n2:]
		if uint64(len(data)) < length {
			return nil, ErrTruncatedList
		}
		records = append(records, data[:length])
		data = data[length:]
	}
	return records, nil
}

func appendUvarint(dst []byte, v uint64) []byte {
	var buf [binary.MaxVarintLen64]byte
	n := binary.PutUvarint(buf[:], v)
	return append(dst, buf[:n]...)
}

func readUvarint(data []byte) (v uint64, n int, ok bool) {
	v, n = binary.Uvarint(data)
	if n <= 0 {
		return 0, 0, false
	}
	return v, n, true
}
