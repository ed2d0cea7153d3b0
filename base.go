/**
 * Filename: /Users/bao/code/unicanon/base.go
 * Path: /Users/bao/code/unicanon
 * Created Date: Saturday, October 17th 2026, 9:12:40 am
 * Author: bao
 *
 * Copyright (c) 2026 Haibao Tang
 */

package unicanon

import (
	"os"
	"runtime"
	"sort"

	logging "github.com/op/go-logging"
)

const (
	// Version is the current version of unicanon
	Version = "0.2.1"
	// DefaultK is the k-mer size used when none is given
	DefaultK = 31
	// HeaderMarker starts every FASTA header line
	HeaderMarker = '>'
	// CircularTag is appended to link-mode headers of circular records
	CircularTag = "CIRCULAR"
)

var log = logging.MustGetLogger("unicanon")
var format = logging.MustStringFormatter(
	`%{color}%{time:15:04:05} %{shortfunc} | %{level:.6s} %{color:reset} %{message}`,
)

// Backend is the default stderr output
var Backend = logging.NewLogBackend(os.Stderr, "", 0)

// BackendFormatter contains the fancy debug formatter
var BackendFormatter = logging.NewBackendFormatter(Backend, format)

// DefaultWorkers is the number of worker goroutines used when none is given
func DefaultWorkers() int {
	return runtime.NumCPU()
}

// kmersOf returns how many k-mers a sequence of the given length holds
func kmersOf(length, k int) uint64 {
	if length < k {
		return 0
	}
	return uint64(length - k + 1)
}

// N50 returns the sequence length L where half of the bases are covered in
// sequences of length >= L
func N50(lengths []int64) int64 {
	if len(lengths) == 0 {
		return 0
	}
	sorted := make([]int64, len(lengths))
	copy(sorted, lengths)
	sortInt64s(sorted)
	total := int64(0)
	for _, length := range sorted {
		total += length
	}
	halfTotal := total / 2
	cumsize := int64(0)
	i := len(sorted) - 1
	for ; i >= 0; i-- {
		cumsize += sorted[i]
		if cumsize > halfTotal {
			break
		}
	}
	if i < 0 {
		i = 0
	}
	return sorted[i]
}

// sortInt64s sorts a slice of int64
func sortInt64s(a []int64) {
	sort.Slice(a, func(i, j int) bool {
		return a[i] < a[j]
	})
}
