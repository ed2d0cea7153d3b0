/*
 *  links.go
 *  unicanon
 *
 *  Created by Haibao Tang on 10/17/26
 *  Copyright © 2026 Haibao Tang. All rights reserved.
 */

package unicanon

import (
	"bytes"
	"regexp"
	"sort"
	"strconv"

	"github.com/pkg/errors"
)

var (
	identRe = regexp.MustCompile(`^>(\d+)`)
	linkRe  = regexp.MustCompile(`^L:([+-]):(\d+):([+-])$`)
)

// ParseHeader reads the record index and the L:<+|->:<idx>:<+|-> tokens of
// a link-mode header. Other tokens, such as LN:i:, KC:i: or a CIRCULAR
// marker, are skipped; circularity always comes from the sequence
func ParseHeader(header []byte) (int, []Link, error) {
	m := identRe.FindSubmatch(header)
	if m == nil {
		return 0, nil, errors.Wrapf(ErrMalformedHeader, "no record index in `%s`", header)
	}
	index, err := strconv.Atoi(string(m[1]))
	if err != nil {
		return 0, nil, errors.Wrapf(ErrMalformedHeader, "bad record index in `%s`", header)
	}

	var links []Link
	for _, token := range bytes.Fields(header)[1:] {
		if !bytes.HasPrefix(token, []byte("L:")) {
			continue
		}
		lm := linkRe.FindSubmatch(token)
		if lm == nil {
			return 0, nil, errors.Wrapf(ErrMalformedHeader, "bad link `%s` in `%s`", token, header)
		}
		target, err := strconv.Atoi(string(lm[2]))
		if err != nil {
			return 0, nil, errors.Wrapf(ErrMalformedHeader, "bad link target `%s` in `%s`", token, header)
		}
		links = append(links, Link{
			FlipHere:  lm[1][0] == '-',
			Target:    target,
			FlipThere: lm[3][0] == '-',
		})
	}
	return index, links, nil
}

// NormalizeLinks renumbers every link after records has been sorted. Each
// record's new index is its position in the slice, and both orientation
// bits are rebased onto the stored strand of their endpoint
func NormalizeLinks(records []*Record) error {
	newIndex := make(map[int]int, len(records))
	for i, r := range records {
		if j, ok := newIndex[r.OriginalIndex]; ok {
			return errors.Wrapf(ErrDuplicateIndex, "index %d used by `%s` and `%s`",
				r.OriginalIndex, records[j], r)
		}
		newIndex[r.OriginalIndex] = i
	}

	for _, r := range records {
		for j := range r.Links {
			l := &r.Links[j]
			t, ok := newIndex[l.Target]
			if !ok {
				return errors.Wrapf(ErrDanglingLink, "`%s` links to %d", r, l.Target)
			}
			l.FlipHere = l.FlipHere != r.Flipped
			l.Target = t
			l.FlipThere = l.FlipThere != records[t].Flipped
		}
		sort.Slice(r.Links, func(a, b int) bool {
			return r.Links[a].Less(r.Links[b])
		})
	}
	log.Debugf("Renumbered links of %d records", len(records))
	return nil
}

// appendHeader formats a link-mode header for the record at newIndex
func appendHeader(dst []byte, newIndex int, r *Record) []byte {
	dst = append(dst, HeaderMarker)
	dst = strconv.AppendInt(dst, int64(newIndex), 10)
	for _, l := range r.Links {
		dst = append(dst, " L:"...)
		dst = append(dst, strand(l.FlipHere), ':')
		dst = strconv.AppendInt(dst, int64(l.Target), 10)
		dst = append(dst, ':', strand(l.FlipThere))
	}
	if r.Circular {
		dst = append(dst, ' ')
		dst = append(dst, CircularTag...)
	}
	return dst
}
