/*
 *  canonical.go
 *  unicanon
 *
 *  Created by Haibao Tang on 10/17/26
 *  Copyright © 2026 Haibao Tang. All rights reserved.
 */

package unicanon

import (
	"bytes"

	"github.com/pkg/errors"
)

var complement [256]byte

func init() {
	complement['A'] = 'T'
	complement['C'] = 'G'
	complement['G'] = 'C'
	complement['T'] = 'A'
}

// Complement returns the Watson-Crick partner of a base
func Complement(b byte) (byte, error) {
	c := complement[b]
	if c == 0 {
		return 0, errors.Wrapf(ErrInvalidBase, "unknown base %q", b)
	}
	return c, nil
}

// ReverseComplement reverse-complements s in place
func ReverseComplement(s []byte) error {
	if err := validate(s); err != nil {
		return err
	}
	reverseComplement(s)
	return nil
}

// CanonicalOrientation replaces s with its reverse complement when that is
// lexicographically smaller, and reports whether it did
func CanonicalOrientation(s []byte) (bool, error) {
	if err := validate(s); err != nil {
		return false, err
	}
	return orient(s), nil
}

// Scratch holds the buffers a worker reuses across rotation searches
type Scratch struct {
	orig, best, cand []byte
}

// Canonicalize rewrites r.Seq into its canonical form and sets Flipped and
// Circular. Sequences whose first and last k-1 bases agree are treated as
// cycles and every rotation competes for the minimum
func (r *Record) Canonicalize(k int, sc *Scratch) error {
	if k < 1 {
		return errors.Wrapf(ErrInvalidK, "k=%d", k)
	}
	s := r.Seq
	n := len(s)
	if n < k {
		return errors.Wrapf(ErrShortSequence, "sequence `%s` has length %d, k=%d", r, n, k)
	}
	if err := validate(s); err != nil {
		return errors.Wrapf(err, "record `%s`", r)
	}

	o := k - 1
	if isOwnReverseComplement(s[:o]) || isOwnReverseComplement(s[n-o:]) {
		r.Circular = true
	}

	if bytes.Equal(s[:o], s[n-o:]) {
		r.Circular = true
		if sc == nil {
			sc = &Scratch{}
		}
		r.Flipped = sc.canonicalRotation(s, n-o)
		return nil
	}
	r.Flipped = orient(s)
	return nil
}

// canonicalRotation finds the smallest oriented rotation of s, whose bases
// repeat with the given period, and writes it back into s
func (sc *Scratch) canonicalRotation(s []byte, period int) bool {
	n := len(s)
	sc.orig = append(sc.orig[:0], s...)
	sc.best = append(sc.best[:0], s...)
	sc.cand = append(sc.cand[:0], s...)
	bestFlip := orient(sc.best)

	cycle := sc.orig[:period]
	for i := 1; i <= period; i++ {
		idx := (period - i%period) % period
		for j := 0; j < n; j++ {
			sc.cand[j] = cycle[idx]
			idx++
			if idx == period {
				idx = 0
			}
		}
		flip := orient(sc.cand)
		if bytes.Compare(sc.cand, sc.best) < 0 {
			sc.best, sc.cand = sc.cand, sc.best
			bestFlip = flip
		}
	}
	copy(s, sc.best)
	return bestFlip
}

// orient is CanonicalOrientation for an already validated sequence
func orient(s []byte) bool {
	n := len(s)
	for i := 0; i < n; i++ {
		c := complement[s[n-1-i]]
		if s[i] != c {
			if s[i] > c {
				reverseComplement(s)
				return true
			}
			return false
		}
	}
	return false
}

func reverseComplement(s []byte) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = complement[s[j]], complement[s[i]]
	}
	if len(s)%2 == 1 {
		m := len(s) / 2
		s[m] = complement[s[m]]
	}
}

// isOwnReverseComplement checks whether a reads the same on both strands
func isOwnReverseComplement(a []byte) bool {
	for i := range a {
		if a[i] != complement[a[len(a)-1-i]] {
			return false
		}
	}
	return true
}

func validate(s []byte) error {
	for i, b := range s {
		if complement[b] == 0 {
			return errors.Wrapf(ErrInvalidBase, "unknown base %q at position %d", b, i)
		}
	}
	return nil
}
