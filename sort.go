/*
 *  sort.go
 *  unicanon
 *
 *  Created by Haibao Tang on 10/17/26
 *  Copyright © 2026 Haibao Tang. All rights reserved.
 */

package unicanon

import (
	"bytes"
	"slices"

	"golang.org/x/sync/errgroup"
)

// minSortRun is the smallest chunk worth handing to its own goroutine
const minSortRun = 1 << 12

func compareRecords(a, b *Record) int {
	return bytes.Compare(a.Seq, b.Seq)
}

// SortRecords stable-sorts records by sequence bytes. Chunks are sorted in
// parallel and then merged pairwise, left run first on ties, so the result
// is the same as a sequential stable sort
func SortRecords(records []*Record, workers int) {
	n := len(records)
	if workers < 1 {
		workers = 1
	}
	size := (n + workers - 1) / workers
	if size < minSortRun {
		size = minSortRun
	}
	if size >= n {
		slices.SortStableFunc(records, compareRecords)
		return
	}

	var bounds []int
	for lo := 0; lo < n; lo += size {
		bounds = append(bounds, lo)
	}
	bounds = append(bounds, n)

	var g errgroup.Group
	for i := 0; i+1 < len(bounds); i++ {
		run := records[bounds[i]:bounds[i+1]]
		g.Go(func() error {
			slices.SortStableFunc(run, compareRecords)
			return nil
		})
	}
	g.Wait()

	src, dst := records, make([]*Record, n)
	for len(bounds) > 2 {
		var next []int
		var mg errgroup.Group
		for i := 0; i+1 < len(bounds); i += 2 {
			lo := bounds[i]
			next = append(next, lo)
			if i+2 >= len(bounds) {
				copy(dst[lo:], src[lo:bounds[i+1]])
				continue
			}
			mid, hi := bounds[i+1], bounds[i+2]
			mg.Go(func() error {
				mergeRuns(dst[lo:hi], src[lo:mid], src[mid:hi])
				return nil
			})
		}
		mg.Wait()
		bounds = append(next, n)
		src, dst = dst, src
	}
	if &src[0] != &records[0] {
		copy(records, src)
	}
}

// mergeRuns merges two sorted runs into dst, taking from a on ties
func mergeRuns(dst, a, b []*Record) {
	i, j, k := 0, 0, 0
	for i < len(a) && j < len(b) {
		if compareRecords(b[j], a[i]) < 0 {
			dst[k] = b[j]
			j++
		} else {
			dst[k] = a[i]
			i++
		}
		k++
	}
	k += copy(dst[k:], a[i:])
	copy(dst[k:], b[j:])
}
