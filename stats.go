/*
 *  stats.go
 *  unicanon
 *
 *  Created by Haibao Tang on 10/17/26
 *  Copyright © 2026 Haibao Tang. All rights reserved.
 */

package unicanon

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/shenwei356/bio/seq"
	"github.com/shenwei356/bio/seqio/fastx"
)

// Stats summarizes the unitigs of one file
type Stats struct {
	Sequences int
	Bases     int64
	Kmers     uint64
	AvgLength float64
	MaxLength int64
	N50       int64
}

// StatsHeader is the column header matching Stats.String
const StatsHeader = "#File\tSequences\tBases\tKmers\tAvgLength\tMaxLength\tN50"

// String outputs the tab-separated representation of Stats
func (r Stats) String() string {
	return fmt.Sprintf("%d\t%d\t%d\t%.2f\t%d\t%d",
		r.Sequences, r.Bases, r.Kmers, r.AvgLength, r.MaxLength, r.N50)
}

// StatsOf computes Stats over records for k-mers of size k
func StatsOf(records []*Record, k int) Stats {
	lengths := make([]int64, len(records))
	for i, r := range records {
		lengths[i] = int64(len(r.Seq))
	}
	return statsOfLengths(lengths, k)
}

// FileStats computes Stats for a FASTA file, or for a file of bare sequence
// lines as written in plain mode
func FileStats(filename string, k int) (Stats, error) {
	codec := CodecOf(filename)
	if codec == Auto || codec == BGZF {
		isFasta, err := startsWithHeader(filename)
		if err != nil {
			return Stats{}, err
		}
		if isFasta {
			lengths, err := fastaLengths(filename)
			if err != nil {
				return Stats{}, err
			}
			return statsOfLengths(lengths, k), nil
		}
	}

	buf, err := LoadBuffer(filename)
	if err != nil {
		return Stats{}, err
	}
	records, err := SplitRecords(buf, false)
	if err != nil {
		return Stats{}, errors.Wrapf(err, "`%s`", filename)
	}
	return StatsOf(records, k), nil
}

// fastaLengths reads sequence lengths with the fastx parser, which handles
// wrapped and gzip'd FASTA
func fastaLengths(filename string) ([]int64, error) {
	reader, err := fastx.NewDefaultReader(filename)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot open `%s`", filename)
	}
	defer reader.Close()
	seq.ValidateSeq = false // This flag makes parsing FASTA much faster

	var lengths []int64
	for {
		rec, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrapf(err, "cannot parse `%s`", filename)
		}
		lengths = append(lengths, int64(rec.Seq.Length()))
	}
	return lengths, nil
}

// startsWithHeader peeks at the first non-blank byte of the decoded file
func startsWithHeader(filename string) (bool, error) {
	fi, err := os.Stat(filename)
	if err != nil {
		return false, errors.Wrapf(err, "cannot open `%s`", filename)
	}
	if fi.Size() == 0 {
		return false, nil
	}
	r, err := openInput(filename)
	if err != nil {
		return false, errors.Wrapf(err, "cannot open `%s`", filename)
	}
	defer r.Close()

	ok, err := leadsWithHeader(bufio.NewReader(r))
	if err != nil {
		return false, errors.Wrapf(err, "cannot decode `%s`", filename)
	}
	return ok, nil
}

func statsOfLengths(lengths []int64, k int) Stats {
	var st Stats
	st.Sequences = len(lengths)
	for _, l := range lengths {
		st.Bases += l
		st.Kmers += kmersOf(int(l), k)
		if l > st.MaxLength {
			st.MaxLength = l
		}
	}
	if st.Sequences > 0 {
		st.AvgLength = float64(st.Bases) / float64(st.Sequences)
	}
	st.N50 = N50(lengths)
	return st
}
