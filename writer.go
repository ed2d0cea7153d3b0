/*
 *  writer.go
 *  unicanon
 *
 *  Created by Haibao Tang on 10/17/26
 *  Copyright © 2026 Haibao Tang. All rights reserved.
 */

package unicanon

import (
	"bufio"
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"golang.org/x/crypto/blake2b"
)

// outputPerm replaces the 0600 that os.CreateTemp gives the staging file
const outputPerm = 0o644

// WriteRecords writes records in their current order. Link mode writes a
// renumbered header before each sequence; plain mode writes bare sequences
func WriteRecords(w io.Writer, records []*Record, linkMode bool) error {
	bw := bufio.NewWriter(w)
	var header []byte
	for i, r := range records {
		if linkMode {
			header = appendHeader(header[:0], i, r)
			header = append(header, '\n')
			if _, err := bw.Write(header); err != nil {
				return err
			}
		}
		if _, err := bw.Write(r.Seq); err != nil {
			return err
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// Digest returns the blake2b-256 sum of what WriteRecords would produce
func Digest(records []*Record, linkMode bool) ([]byte, error) {
	h, _ := blake2b.New256(nil)
	if err := WriteRecords(h, records, linkMode); err != nil {
		return nil, err
	}
	return h.Sum(nil), nil
}

// writeAtomically streams fn's output into a temporary file next to
// filename and renames it into place only when everything succeeded. The
// temporary name ends with the target's name so the codec matches
func writeAtomically(filename string, force bool, fn func(io.Writer) error) error {
	if !force {
		if _, err := os.Stat(filename); err == nil {
			return errors.Wrapf(ErrOutputExists, "`%s`", filename)
		}
	}

	dir, base := filepath.Split(filename)
	if dir == "" {
		dir = "."
	}
	tmp, err := os.CreateTemp(dir, ".tmp-*-"+base)
	if err != nil {
		return errors.Wrapf(err, "cannot create output in `%s`", dir)
	}
	tmpName := tmp.Name()
	tmp.Close()

	committed := false
	defer func() {
		if !committed {
			os.Remove(tmpName)
		}
	}()

	w, err := CreateOutput(tmpName)
	if err != nil {
		return errors.Wrapf(err, "cannot create `%s`", tmpName)
	}
	if err := fn(w); err != nil {
		w.Close()
		return errors.Wrapf(err, "cannot write `%s`", filename)
	}
	if err := w.Close(); err != nil {
		return errors.Wrapf(err, "cannot write `%s`", filename)
	}
	if err := os.Chmod(tmpName, outputPerm); err != nil {
		return errors.Wrapf(err, "cannot set mode of `%s`", tmpName)
	}
	if err := os.Rename(tmpName, filename); err != nil {
		return errors.Wrapf(err, "cannot move output to `%s`", filename)
	}
	committed = true
	return nil
}
