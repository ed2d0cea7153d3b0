/*
 *  codec.go
 *  unicanon
 *
 *  Created by Haibao Tang on 10/17/26
 *  Copyright © 2026 Haibao Tang. All rights reserved.
 */

package unicanon

import (
	"bytes"
	"io"
	"os"
	"runtime"
	"strings"

	"github.com/biogo/hts/bgzf"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
	"github.com/pkg/errors"
	"github.com/shenwei356/xopen"
)

// Codec names a whole-file compression format
type Codec int

const (
	// Auto defers to xopen, which sniffs gzip and reads anything else verbatim
	Auto Codec = iota
	// LZ4 is the lz4 frame format
	LZ4
	// Zstd is the zstandard format
	Zstd
	// BGZF is block-gzip as written by bgzip
	BGZF
)

// CodecOf picks the codec from the filename suffix
func CodecOf(filename string) Codec {
	switch {
	case strings.HasSuffix(filename, ".lz4"):
		return LZ4
	case strings.HasSuffix(filename, ".zst"):
		return Zstd
	case strings.HasSuffix(filename, ".bgz"), strings.HasSuffix(filename, ".bgzf"):
		return BGZF
	}
	return Auto
}

// LoadBuffer reads the entire file into memory, decompressing on the way
func LoadBuffer(filename string) ([]byte, error) {
	fi, err := os.Stat(filename)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot open `%s`", filename)
	}
	if fi.Size() == 0 {
		return []byte{}, nil
	}

	r, err := openInput(filename)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot open `%s`", filename)
	}
	defer r.Close()

	var buf bytes.Buffer
	if CodecOf(filename) == Auto {
		buf.Grow(int(fi.Size()))
	}
	if _, err := buf.ReadFrom(r); err != nil {
		return nil, errors.Wrapf(err, "cannot decode `%s`", filename)
	}
	log.Debugf("Loaded %d bytes from `%s`", buf.Len(), filename)
	return buf.Bytes(), nil
}

// openInput returns a decompressing reader for the given file
func openInput(filename string) (io.ReadCloser, error) {
	codec := CodecOf(filename)
	if codec == Auto {
		return xopen.Ropen(filename)
	}

	fh, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	switch codec {
	case LZ4:
		return &readCloser{Reader: lz4.NewReader(fh), closers: []func() error{fh.Close}}, nil
	case Zstd:
		dec, err := zstd.NewReader(fh)
		if err != nil {
			fh.Close()
			return nil, err
		}
		return &readCloser{Reader: dec, closers: []func() error{
			func() error { dec.Close(); return nil },
			fh.Close,
		}}, nil
	default:
		bz, err := bgzf.NewReader(fh, runtime.NumCPU())
		if err != nil {
			fh.Close()
			return nil, err
		}
		return &readCloser{Reader: bz, closers: []func() error{bz.Close, fh.Close}}, nil
	}
}

// CreateOutput creates filename, compressing with the codec its suffix names
func CreateOutput(filename string) (io.WriteCloser, error) {
	codec := CodecOf(filename)
	if codec == Auto {
		return xopen.Wopen(filename)
	}

	fh, err := os.Create(filename)
	if err != nil {
		return nil, err
	}
	switch codec {
	case LZ4:
		zw := lz4.NewWriter(fh)
		return &writeCloser{Writer: zw, closers: []func() error{zw.Close, fh.Close}}, nil
	case Zstd:
		zw, err := zstd.NewWriter(fh)
		if err != nil {
			fh.Close()
			return nil, err
		}
		return &writeCloser{Writer: zw, closers: []func() error{zw.Close, fh.Close}}, nil
	default:
		zw := bgzf.NewWriter(fh, runtime.NumCPU())
		return &writeCloser{Writer: zw, closers: []func() error{zw.Close, fh.Close}}, nil
	}
}

// readCloser closes a stack of readers in order
type readCloser struct {
	io.Reader
	closers []func() error
}

// Close closes every layer and reports the first failure
func (r *readCloser) Close() error {
	return closeAll(r.closers)
}

// writeCloser flushes a compressor before closing the file under it
type writeCloser struct {
	io.Writer
	closers []func() error
}

// Close closes every layer and reports the first failure
func (w *writeCloser) Close() error {
	return closeAll(w.closers)
}

func closeAll(closers []func() error) error {
	var first error
	for _, c := range closers {
		if err := c(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
