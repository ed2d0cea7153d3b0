/*
 *  record.go
 *  unicanon
 *
 *  Created by Haibao Tang on 10/17/26
 *  Copyright © 2026 Haibao Tang. All rights reserved.
 */

package unicanon

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrShortSequence is returned for a record shorter than k
	ErrShortSequence = errors.New("sequence shorter than k")
	// ErrInvalidBase is returned for a byte outside ACGT
	ErrInvalidBase = errors.New("invalid nucleotide")
	// ErrMalformedRecord is returned when headers and sequences do not pair up
	ErrMalformedRecord = errors.New("malformed record")
	// ErrMalformedHeader is returned when a link-mode header cannot be parsed
	ErrMalformedHeader = errors.New("malformed header")
	// ErrDanglingLink is returned when a link points at an index not in the file
	ErrDanglingLink = errors.New("link to unknown record")
	// ErrDuplicateIndex is returned when two headers share an index
	ErrDuplicateIndex = errors.New("duplicate record index")
	// ErrInvalidK is returned for a k-mer size below 1
	ErrInvalidK = errors.New("k must be positive")
	// ErrOutputExists is returned when the output is present and not forced
	ErrOutputExists = errors.New("output already exists")
)

// Record is one unitig. Header and Seq are views into the loaded buffer
type Record struct {
	Header        []byte
	Seq           []byte
	OriginalIndex int
	Links         []Link
	// Flipped is true when Seq holds the reverse complement of the input
	Flipped bool
	// Circular is true when the ends of Seq overlap by k-1 bases
	Circular bool
}

// Link is an oriented edge to another record. A true flip means the edge
// leaves or enters that record from its reverse-complemented end
type Link struct {
	FlipHere  bool
	Target    int
	FlipThere bool
}

// String renders the link as a header token
func (l Link) String() string {
	return fmt.Sprintf("L:%c:%d:%c", strand(l.FlipHere), l.Target, strand(l.FlipThere))
}

// Less orders links by (FlipHere, Target, FlipThere) with false before true
func (l Link) Less(o Link) bool {
	if l.FlipHere != o.FlipHere {
		return !l.FlipHere
	}
	if l.Target != o.Target {
		return l.Target < o.Target
	}
	return !l.FlipThere && o.FlipThere
}

// String gives a short label for diagnostics
func (r *Record) String() string {
	if len(r.Header) > 0 {
		return string(r.Header)
	}
	if len(r.Seq) > 60 {
		return string(r.Seq[:57]) + "..."
	}
	return string(r.Seq)
}

func strand(flip bool) byte {
	if flip {
		return '-'
	}
	return '+'
}
