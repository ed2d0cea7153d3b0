/*
 *  stats_test.go
 *  unicanon
 *
 *  Created by Haibao Tang on 10/17/26
 *  Copyright © 2026 Haibao Tang. All rights reserved.
 */

package unicanon_test

import (
	"testing"

	"github.com/tanghaibao/unicanon"
)

func TestN50(t *testing.T) {
	tests := []struct {
		lengths []int64
		want    int64
	}{
		{nil, 0},
		{[]int64{7}, 7},
		{[]int64{2, 5, 3, 4}, 4},
		{[]int64{10, 1, 1, 1}, 10},
	}
	for _, tc := range tests {
		if got := unicanon.N50(tc.lengths); got != tc.want {
			t.Errorf("N50(%v)=%d; want %d", tc.lengths, got, tc.want)
		}
	}
}

func TestFileStats(t *testing.T) {
	want := unicanon.Stats{Sequences: 4, Bases: 14, Kmers: 6, AvgLength: 3.5, MaxLength: 5, N50: 4}
	dir := t.TempDir()
	inputs := map[string]string{
		"wrapped.fa":    ">a\nAC\n>b\nAC\nG\n>c\nACGT\n>d\nAC\nGTA\n",
		"wrapped.fa.gz": ">a\nAC\n>b\nACG\n>c\nACGT\n>d\nACGTA\n",
		"bare.txt":      "AC\nACG\nACGT\nACGTA\n",
		"bare.txt.zst":  "AC\nACG\nACGT\nACGTA\n",
		"fasta.fa.lz4":  ">a\nAC\n>b\nACG\n>c\nACGT\n>d\nACGTA\n",
	}
	for name, content := range inputs {
		filename := writeInput(t, dir, name, content)
		got, err := unicanon.FileStats(filename, 3)
		if err != nil {
			t.Fatalf("FileStats(%s) failed: %v", name, err)
		}
		if got != want {
			t.Errorf("FileStats(%s)=%+v; want %+v", name, got, want)
		}
	}
}

func TestFileStatsAgreesWithSplitter(t *testing.T) {
	// Both readers must treat a space-led first line as a bare sequence
	dir := t.TempDir()
	filename := writeInput(t, dir, "spaced.fa", " >a\nACGT\n")
	st, err := unicanon.FileStats(filename, 3)
	if err != nil || st.Sequences != 2 || st.Bases != 7 {
		t.Errorf("FileStats(spaced.fa)=%+v,%v; want 2 sequences, 7 bases", st, err)
	}
	filename = writeInput(t, dir, "blank.fa", "\n\n>a\nACGT\n>b\nAC\n")
	st, err = unicanon.FileStats(filename, 3)
	if err != nil || st.Sequences != 2 || st.Bases != 6 {
		t.Errorf("FileStats(blank.fa)=%+v,%v; want 2 sequences, 6 bases", st, err)
	}
}

func TestStatsString(t *testing.T) {
	st := unicanon.Stats{Sequences: 2, Bases: 9, Kmers: 5, AvgLength: 4.5, MaxLength: 6, N50: 6}
	if got := st.String(); got != "2\t9\t5\t4.50\t6\t6" {
		t.Errorf("String()=%q", got)
	}
}
