// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package benchmark runs the tmy container codec and a handful of reference
// codecs from the wider Go compression ecosystem over the same input,
// round-tripping each and reporting size, ratio, and timing for the
// --benchmark CLI flag's comparison table.
package benchmark

import (
	"bytes"
	"fmt"
	"io"
	"time"

	"github.com/klauspost/compress/flate"
	"github.com/ulikunitz/xz"

	"github.com/tmyarchive/tmy/container"
)

// Result is one codec's measurement against the same input.
type Result struct {
	Name           string
	CompressedSize int
	Ratio          float64 // CompressedSize / len(input)
	EncodeTime     time.Duration
	DecodeTime     time.Duration
	RoundTripOK    bool
}

// codec is a reference compressor this package knows how to drive.
type codec struct {
	name    string
	encode  func([]byte) ([]byte, error)
	decode  func([]byte) ([]byte, error)
}

func refCodecs() []codec {
	return []codec{
		{
			name: "flate",
			encode: func(x []byte) ([]byte, error) {
				var buf bytes.Buffer
				w, err := flate.NewWriter(&buf, flate.DefaultCompression)
				if err != nil {
					return nil, err
				}
				if _, err := w.Write(x); err != nil {
					return nil, err
				}
				if err := w.Close(); err != nil {
					return nil, err
				}
				return buf.Bytes(), nil
			},
			decode: func(x []byte) ([]byte, error) {
				r := flate.NewReader(bytes.NewReader(x))
				defer r.Close()
				return io.ReadAll(r)
			},
		},
		{
			name: "xz",
			encode: func(x []byte) ([]byte, error) {
				var buf bytes.Buffer
				w, err := xz.NewWriter(&buf)
				if err != nil {
					return nil, err
				}
				if _, err := w.Write(x); err != nil {
					return nil, err
				}
				if err := w.Close(); err != nil {
					return nil, err
				}
				return buf.Bytes(), nil
			},
			decode: func(x []byte) ([]byte, error) {
				r, err := xz.NewReader(bytes.NewReader(x))
				if err != nil {
					return nil, err
				}
				return io.ReadAll(r)
			},
		},
	}
}

// Run round-trips data through tmy's own container codec plus each
// reference codec, returning one Result per codec in a stable order: tmy
// first, then the reference codecs in the order refCodecs declares them.
func Run(data []byte, opts container.Options) ([]Result, error) {
	var results []Result

	t0 := time.Now()
	compressed, err := container.Compress(data, opts)
	if err != nil {
		return nil, fmt.Errorf("benchmark: tmy compress: %w", err)
	}
	encTime := time.Since(t0)

	t0 = time.Now()
	decoded, err := container.Decompress(compressed, opts)
	if err != nil {
		return nil, fmt.Errorf("benchmark: tmy decompress: %w", err)
	}
	decTime := time.Since(t0)

	results = append(results, Result{
		Name:           "tmy",
		CompressedSize: len(compressed),
		Ratio:          ratio(len(compressed), len(data)),
		EncodeTime:     encTime,
		DecodeTime:     decTime,
		RoundTripOK:    bytes.Equal(decoded, data),
	})

	for _, c := range refCodecs() {
		t0 := time.Now()
		enc, err := c.encode(data)
		if err != nil {
			return nil, fmt.Errorf("benchmark: %s encode: %w", c.name, err)
		}
		encTime := time.Since(t0)

		t0 = time.Now()
		dec, err := c.decode(enc)
		if err != nil {
			return nil, fmt.Errorf("benchmark: %s decode: %w", c.name, err)
		}
		decTime := time.Since(t0)

		results = append(results, Result{
			Name:           c.name,
			CompressedSize: len(enc),
			Ratio:          ratio(len(enc), len(data)),
			EncodeTime:     encTime,
			DecodeTime:     decTime,
			RoundTripOK:    bytes.Equal(dec, data),
		})
	}

	return results, nil
}

func ratio(compressed, original int) float64 {
	if original == 0 {
		return 0
	}
	return float64(compressed) / float64(original)
}
