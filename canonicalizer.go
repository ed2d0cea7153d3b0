/*
 *  canonicalizer.go
 *  unicanon
 *
 *  Created by Haibao Tang on 10/17/26
 *  Copyright © 2026 Haibao Tang. All rights reserved.
 */

package unicanon

import (
	"context"
	"encoding/hex"
	"io"
	"sync/atomic"

	"github.com/pkg/errors"
	"golang.org/x/crypto/blake2b"
	"golang.org/x/sync/errgroup"
)

// Canonicalizer rewrites a unitig file into its canonical form
type Canonicalizer struct {
	Input  string
	Output string
	K      int
	// Links renumbers the L: tokens in the headers after sorting
	Links   bool
	Workers int
	// Force overwrites an existing output
	Force bool
}

// Result summarizes a finished run
type Result struct {
	Records int
	Kmers   uint64
	// Digest is the blake2b-256 of the uncompressed output
	Digest []byte
	Stats  Stats
}

// Canonicalize runs a canonicalization with default workers, overwriting
// output, and returns the record and k-mer counts
func Canonicalize(input, output string, k int, links bool) (int, uint64, error) {
	c := Canonicalizer{Input: input, Output: output, K: k, Links: links, Force: true}
	res, err := c.Run(context.Background())
	if err != nil {
		return 0, 0, err
	}
	return res.Records, res.Kmers, nil
}

// Run loads, canonicalizes, sorts and writes. The output is only created
// when every record was processed
func (c *Canonicalizer) Run(ctx context.Context) (*Result, error) {
	log.Noticef("Canonicalize `%s` (k=%d, links=%v)", c.Input, c.K, c.Links)
	buf, err := LoadBuffer(c.Input)
	if err != nil {
		return nil, err
	}
	records, kmers, err := c.Process(ctx, buf)
	if err != nil {
		return nil, err
	}

	h, _ := blake2b.New256(nil)
	err = writeAtomically(c.Output, c.Force, func(w io.Writer) error {
		return WriteRecords(io.MultiWriter(w, h), records, c.Links)
	})
	if err != nil {
		return nil, err
	}

	res := &Result{
		Records: len(records),
		Kmers:   kmers,
		Digest:  h.Sum(nil),
		Stats:   StatsOf(records, c.K),
	}
	log.Noticef("Written %d sequences with %d kmers!", res.Records, res.Kmers)
	log.Debugf("Output `%s` blake2b %s", c.Output, hex.EncodeToString(res.Digest))
	return res, nil
}

// Process canonicalizes the records held in buf and returns them in output
// order together with the total k-mer count
func (c *Canonicalizer) Process(ctx context.Context, buf []byte) ([]*Record, uint64, error) {
	if c.K < 1 {
		return nil, 0, errors.Wrapf(ErrInvalidK, "k=%d", c.K)
	}
	workers := c.Workers
	if workers < 1 {
		workers = DefaultWorkers()
	}

	records, err := SplitRecords(buf, c.Links)
	if err != nil {
		return nil, 0, err
	}
	kmers, err := canonicalizeAll(ctx, records, c.K, c.Links, workers)
	if err != nil {
		return nil, 0, err
	}
	SortRecords(records, workers)
	if c.Links {
		if err := NormalizeLinks(records); err != nil {
			return nil, 0, err
		}
	}
	return records, kmers, nil
}

// canonicalizeAll fans the records out to a bounded pool. The first failure
// cancels the rest of the run
func canonicalizeAll(ctx context.Context, records []*Record, k int, linkMode bool, workers int) (uint64, error) {
	var total atomic.Uint64
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	batch := len(records) / (workers * 8)
	if batch < 1 {
		batch = 1
	}
	for lo := 0; lo < len(records); lo += batch {
		if gctx.Err() != nil {
			break
		}
		hi := lo + batch
		if hi > len(records) {
			hi = len(records)
		}
		chunk := records[lo:hi]
		g.Go(func() error {
			sc := &Scratch{}
			for _, r := range chunk {
				if err := gctx.Err(); err != nil {
					return err
				}
				if linkMode {
					index, links, err := ParseHeader(r.Header)
					if err != nil {
						return err
					}
					r.OriginalIndex, r.Links = index, links
				}
				if err := r.Canonicalize(k, sc); err != nil {
					return err
				}
				total.Add(kmersOf(len(r.Seq), k))
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	return total.Load(), nil
}
