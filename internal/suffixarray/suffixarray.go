// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package suffixarray implements the prefix-doubling suffix array
// construction used by the lz77 factoriser, plus the PSV/NSV (previous
// and next smaller value) auxiliary arrays it is built from. This mirrors
// the role that bzip2/internal/sais plays for the block-sort transform:
// a small, self-contained, internal algorithm package with its own tests.
package suffixarray

import "sort"

// Index holds the suffix array SA of a chunk of length n, its inverse
// ISA, and the PSV/NSV auxiliary vectors computed from it.
//
// SA is a permutation of {0..n} (n+1 entries: the n real byte positions
// plus one virtual sentinel position, n itself, whose suffix compares as
// smaller than any real suffix). ISA is SA's inverse: ISA[SA[i]] == i.
//
// PSV and NSV are indexed by SA position (not by original string
// position): PSV[i] is the largest j < i with SA[j] < SA[i], or 0 if
// none exists; NSV[i] is the smallest j > i with SA[j] < SA[i], or 0 if
// none exists. The "no predecessor/successor" case is folded to 0 rather
// than some out-of-band sentinel, which is deliberate: row 0 of SA always
// holds the sentinel position n (the lexicographically smallest suffix),
// so folding to 0 means "nearest smaller value is the sentinel itself,"
// which always has LCP 0 with any real suffix. See lz77.Factorize.
type Index struct {
	n   int
	SA  []int
	ISA []int
	PSV []int
	NSV []int
}

// Build constructs the suffix array and PSV/NSV vectors for x.
func Build(x []byte) *Index {
	n := len(x)
	sa := buildSA(x)

	isa := make([]int, n+1)
	for i, s := range sa {
		isa[s] = i
	}

	psv, nsv := buildPSVNSV(sa)

	return &Index{n: n, SA: sa, ISA: isa, PSV: psv, NSV: nsv}
}

// buildSA computes the suffix array of x by prefix doubling: suffixes are
// compared by the pair (rank[i], rank[i+k]), with k doubling each round
// and a virtual sentinel (rank -1) standing in for x[n] and anything past
// the end of x. This is the reference approach named in the design docs;
// any other correct O(n log n) or O(n) construction would also satisfy
// the contract.
func buildSA(x []byte) []int {
	n := len(x)
	rank := make([]int, n+1)
	sa := make([]int, n+1)
	for i := range sa {
		sa[i] = i
		if i < n {
			rank[i] = int(x[i])
		} else {
			rank[i] = -1
		}
	}

	rankAt := func(i, k int) int {
		if i+k > n {
			return -1
		}
		if i+k == n {
			return -1
		}
		return rank[i+k]
	}

	tmp := make([]int, n+1)
	for k := 1; k <= n; k *= 2 {
		less := func(a, b int) bool {
			if rank[a] != rank[b] {
				return rank[a] < rank[b]
			}
			return rankAt(a, k) < rankAt(b, k)
		}
		sort.Slice(sa, func(i, j int) bool { return less(sa[i], sa[j]) })

		tmp[sa[0]] = 0
		for i := 1; i <= n; i++ {
			d := 0
			if less(sa[i-1], sa[i]) {
				d = 1
			}
			tmp[sa[i]] = tmp[sa[i-1]] + d
		}
		rank, tmp = tmp, rank

		if rank[sa[n]] == n {
			break // Every suffix has a distinct rank; fully sorted.
		}
	}
	return sa
}

// buildPSVNSV computes PSV/NSV from sa via a single left-to-right sweep
// with a parent-pointer chain: when sa[i] is considered, every still-open
// chain entry j with sa[j] > sa[i] has its NSV resolved to i and is
// popped; the surviving entry (or the fold-to-zero sentinel) becomes
// PSV[i].
//
// The sweep runs over row indices [1, n]: row 0 always holds the sentinel
// suffix, whose position n is larger than every other SA value, so it is
// never a smaller value for any row and its own PSV/NSV stay at the folded
// zero value.
func buildPSVNSV(sa []int) (psv, nsv []int) {
	n := len(sa) - 1
	nsv = make([]int, n+1)
	psv = make([]int, n+1)
	open := make([]int, n+1) // parent-pointer chain; -1 means "folds to 0"
	for i := range open {
		open[i] = -1
	}

	for i := 1; i <= n; i++ {
		j := i - 1
		for open[j] != -1 && sa[i] < sa[j] {
			nsv[j] = i
			j = open[j]
		}
		open[i] = j
		if j == -1 {
			psv[i] = 0
		} else {
			psv[i] = j
		}
	}
	return psv, nsv
}
