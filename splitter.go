/*
 *  splitter.go
 *  unicanon
 *
 *  Created by Haibao Tang on 10/17/26
 *  Copyright © 2026 Haibao Tang. All rights reserved.
 */

package unicanon

import (
	"bytes"
	"io"

	"github.com/pkg/errors"
)

// Splitter walks a FASTA buffer once and yields header and sequence fields.
// Multi-line sequences are joined by shifting bytes backward over the line
// breaks, so every field is a slice of the original buffer.
type Splitter struct {
	buf       []byte
	pos       int
	joinLines bool
}

// NewSplitter starts a split over buf. The buffer is modified in place when
// joinLines is set
func NewSplitter(buf []byte, joinLines bool) *Splitter {
	return &Splitter{buf: buf, joinLines: joinLines}
}

// Next returns the next field, or false once the buffer is exhausted. The
// returned slice has its capacity clipped to its length so it can never
// grow into the following field
func (s *Splitter) Next() ([]byte, bool) {
	buf := s.buf
	for s.pos < len(buf) && (buf[s.pos] == '\n' || buf[s.pos] == '\r') {
		s.pos++
	}
	if s.pos >= len(buf) {
		return nil, false
	}

	start := s.pos
	dst := start
	isHeader := buf[start] == HeaderMarker
	for s.pos < len(buf) {
		lineEnd, next := len(buf), len(buf)
		if i := bytes.IndexByte(buf[s.pos:], '\n'); i >= 0 {
			lineEnd = s.pos + i
			next = lineEnd + 1
		}
		if lineEnd > s.pos && buf[lineEnd-1] == '\r' {
			lineEnd--
		}
		dst += copy(buf[dst:], buf[s.pos:lineEnd])
		s.pos = next

		if isHeader || !s.joinLines {
			break
		}
		if s.pos < len(buf) && buf[s.pos] == HeaderMarker {
			break
		}
	}
	return buf[start:dst:dst], true
}

// SplitRecords pairs the fields of buf into records. In link mode every
// record must be exactly one header line followed by one sequence line. A
// plain-mode buffer without headers, as written by WriteRecords, holds one
// record per line
func SplitRecords(buf []byte, linkMode bool) ([]*Record, error) {
	if !linkMode && !hasHeaders(buf) {
		return splitBareLines(buf)
	}

	s := NewSplitter(buf, !linkMode)
	var records []*Record
	var header []byte
	for field, ok := s.Next(); ok; field, ok = s.Next() {
		if field[0] == HeaderMarker {
			if header != nil {
				return nil, errors.Wrapf(ErrMalformedRecord, "header `%s` has no sequence", header)
			}
			header = field
			continue
		}
		if header == nil {
			return nil, errors.Wrapf(ErrMalformedRecord, "sequence line after record %d has no header", len(records))
		}
		records = append(records, &Record{Header: header, Seq: field})
		header = nil
	}
	if header != nil {
		return nil, errors.Wrapf(ErrMalformedRecord, "header `%s` has no sequence", header)
	}
	log.Debugf("Split %d records", len(records))
	return records, nil
}

func splitBareLines(buf []byte) ([]*Record, error) {
	s := NewSplitter(buf, false)
	var records []*Record
	for line, ok := s.Next(); ok; line, ok = s.Next() {
		if line[0] == HeaderMarker {
			return nil, errors.Wrapf(ErrMalformedRecord, "header `%s` in a file without headers", line)
		}
		records = append(records, &Record{Seq: line})
	}
	log.Debugf("Split %d bare records", len(records))
	return records, nil
}

// hasHeaders reports whether the first non-blank byte starts a header
func hasHeaders(buf []byte) bool {
	ok, _ := leadsWithHeader(bytes.NewReader(buf))
	return ok
}

// leadsWithHeader skips the blank lines the Splitter skips and reports
// whether the next byte is a header marker
func leadsWithHeader(r io.ByteReader) (bool, error) {
	for {
		b, err := r.ReadByte()
		if err == io.EOF {
			return false, nil
		}
		if err != nil {
			return false, err
		}
		if b == '\n' || b == '\r' {
			continue
		}
		return b == HeaderMarker, nil
	}
}
