/*
 *  compare.go
 *  unicanon
 *
 *  Created by Haibao Tang on 10/17/26
 *  Copyright © 2026 Haibao Tang. All rights reserved.
 */

package unicanon

import (
	"bytes"
	"context"
	"encoding/hex"
)

// Comparer checks whether two unitig files hold the same canonical content
type Comparer struct {
	A, B    string
	K       int
	Links   bool
	Workers int
}

// Run canonicalizes both files in memory and compares the digests of what
// would be written for each
func (r *Comparer) Run(ctx context.Context) (bool, error) {
	da, err := r.digest(ctx, r.A)
	if err != nil {
		return false, err
	}
	db, err := r.digest(ctx, r.B)
	if err != nil {
		return false, err
	}
	log.Noticef("`%s` blake2b %s", r.A, hex.EncodeToString(da))
	log.Noticef("`%s` blake2b %s", r.B, hex.EncodeToString(db))
	return bytes.Equal(da, db), nil
}

func (r *Comparer) digest(ctx context.Context, filename string) ([]byte, error) {
	buf, err := LoadBuffer(filename)
	if err != nil {
		return nil, err
	}
	c := Canonicalizer{K: r.K, Links: r.Links, Workers: r.Workers}
	records, _, err := c.Process(ctx, buf)
	if err != nil {
		return nil, err
	}
	return Digest(records, r.Links)
}
