// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package container

// splitChunks splits data into fixed-size pieces of 2^bits - 1 bytes, with
// the final piece possibly shorter. An empty input yields no chunks.
func splitChunks(data []byte, bits int) [][]byte {
	size := 1<<uint(bits) - 1
	if len(data) == 0 {
		return nil
	}
	var chunks [][]byte
	for off := 0; off < len(data); off += size {
		end := off + size
		if end > len(data) {
			end = len(data)
		}
		chunks = append(chunks, data[off:end])
	}
	return chunks
}
