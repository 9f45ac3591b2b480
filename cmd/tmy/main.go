// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Command tmy compresses and decompresses directory trees using the LZ77 +
// Huffman container format implemented by this module.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/tmyarchive/tmy/archive"
	"github.com/tmyarchive/tmy/container"
	"github.com/tmyarchive/tmy/internal/benchmark"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("tmy", flag.ContinueOnError)
	var (
		encrypt      = fs.String("encrypt", "", "compress a file or directory, writing <basename>.tmy")
		decrypt      = fs.String("decrypt", "", "decompress a .tmy archive into the current directory")
		benchmarkFl  = fs.String("benchmark", "", "round-trip a file or directory and print timings/ratio")
		lzBuffer     = fs.Int("lz-buffer", 28, "log2 of the LZ77 chunk size (8-31)")
		huffmanBufer = fs.Int("huffman-buffer", 20, "log2 of the Huffman chunk size (8-31)")
	)
	if err := fs.Parse(args); err != nil {
		return 2
	}

	opts := container.Options{LZBits: *lzBuffer, HuffmanBits: *huffmanBufer}

	switch {
	case *encrypt != "":
		return doEncrypt(*encrypt, opts)
	case *decrypt != "":
		return doDecrypt(*decrypt, opts)
	case *benchmarkFl != "":
		return doBenchmark(*benchmarkFl, opts)
	default:
		fs.Usage()
		return 2
	}
}

func doEncrypt(path string, opts container.Options) int {
	root, err := archive.Read(path)
	if err != nil {
		fmt.Fprintln(os.Stderr, "tmy:", err)
		return 1
	}
	serialized, err := archive.Marshal(root)
	if err != nil {
		fmt.Fprintln(os.Stderr, "tmy:", err)
		return 1
	}
	compressed, err := container.Compress(serialized, opts)
	if err != nil {
		fmt.Fprintln(os.Stderr, "tmy:", err)
		return 1
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		fmt.Fprintln(os.Stderr, "tmy:", err)
		return 1
	}
	outPath := filepath.Base(absPath) + ".tmy"
	if err := os.WriteFile(outPath, compressed, 0o644); err != nil {
		fmt.Fprintln(os.Stderr, "tmy:", err)
		return 1
	}
	fmt.Printf("compressed %s (%d bytes) -> %s (%d bytes)\n", path, len(serialized), outPath, len(compressed))
	return 0
}

func doDecrypt(path string, opts container.Options) int {
	compressed, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintln(os.Stderr, "tmy:", err)
		return 1
	}
	serialized, err := container.Decompress(compressed, opts)
	if err != nil {
		fmt.Fprintln(os.Stderr, "tmy:", err)
		return 1
	}
	root, err := archive.Unmarshal(serialized)
	if err != nil {
		fmt.Fprintln(os.Stderr, "tmy:", err)
		return 1
	}
	if err := archive.Write(root, "."); err != nil {
		fmt.Fprintln(os.Stderr, "tmy:", err)
		return 1
	}
	fmt.Println("decompressed archive successfully")
	return 0
}

func doBenchmark(path string, opts container.Options) int {
	root, err := archive.Read(path)
	if err != nil {
		fmt.Fprintln(os.Stderr, "tmy:", err)
		return 1
	}
	serialized, err := archive.Marshal(root)
	if err != nil {
		fmt.Fprintln(os.Stderr, "tmy:", err)
		return 1
	}

	results, err := benchmark.Run(serialized, opts)
	if err != nil {
		fmt.Fprintln(os.Stderr, "tmy:", err)
		return 1
	}

	fmt.Printf("input size: %d bytes\n", len(serialized))
	fmt.Printf("%-8s %12s %8s %12s %12s %6s\n", "codec", "size", "ratio", "encode", "decode", "ok")
	for _, r := range results {
		fmt.Printf("%-8s %12d %8.3f %12s %12s %6v\n",
			r.Name, r.CompressedSize, r.Ratio,
			r.EncodeTime.Round(time.Microsecond), r.DecodeTime.Round(time.Microsecond), r.RoundTripOK)
	}
	return 0
}
