// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package container

import (
	"github.com/klauspost/cpuid/v2"
	"golang.org/x/sync/errgroup"
)

// defaultWorkers returns the local logical core count. cpuid reads this
// from the CPU topology directly, which accounts for SMT sibling counts
// and cgroup-imposed limits that runtime.NumCPU() doesn't always reflect.
func defaultWorkers() int {
	n := cpuid.CPU.LogicalCores
	if n < 1 {
		n = 1
	}
	return n
}

// parallelMap applies fn to each item independently across a bounded
// worker pool, returning results in input order regardless of completion
// order (results are written into a pre-sized slice indexed by position,
// never appended). The first error from any worker is returned and the
// results are discarded; the other workers are not cancelled and still run
// to completion before parallelMap returns.
func parallelMap[T, R any](items []T, workers int, fn func(T) (R, error)) ([]R, error) {
	if workers <= 0 {
		workers = defaultWorkers()
	}
	results := make([]R, len(items))
	var eg errgroup.Group
	eg.SetLimit(workers)
	for i, item := range items {
		i, item := i, item
		eg.Go(func() error {
			r, err := fn(item)
			if err != nil {
				return err
			}
			results[i] = r
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
