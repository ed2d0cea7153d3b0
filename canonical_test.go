/*
 *  canonical_test.go
 *  unicanon
 *
 *  Created by Haibao Tang on 10/17/26
 *  Copyright © 2026 Haibao Tang. All rights reserved.
 */

package unicanon_test

import (
	"math/rand"
	"testing"

	"github.com/pkg/errors"
	"github.com/tanghaibao/unicanon"
)

func canonicalOf(t *testing.T, s string, k int) *unicanon.Record {
	t.Helper()
	r := &unicanon.Record{Seq: []byte(s)}
	if err := r.Canonicalize(k, &unicanon.Scratch{}); err != nil {
		t.Fatalf("Canonicalize(%s, %d) failed: %v", s, k, err)
	}
	return r
}

func randomSeq(rng *rand.Rand, n int) string {
	const bases = "ACGT"
	b := make([]byte, n)
	for i := range b {
		b[i] = bases[rng.Intn(4)]
	}
	return string(b)
}

func revcomp(s string) string {
	b := []byte(s)
	if err := unicanon.ReverseComplement(b); err != nil {
		panic(err)
	}
	return string(b)
}

func TestCanonicalOrientation(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		flipped bool
	}{
		{"AACG", "AACG", false},
		{"CGTT", "AACG", true},
		{"ACGT", "ACGT", false},
		{"GGTTT", "AAACC", true},
		{"A", "A", false},
		{"T", "A", true},
		{"", "", false},
	}
	for _, tc := range tests {
		s := []byte(tc.in)
		flipped, err := unicanon.CanonicalOrientation(s)
		if err != nil {
			t.Fatalf("CanonicalOrientation(%s) failed: %v", tc.in, err)
		}
		if string(s) != tc.want || flipped != tc.flipped {
			t.Errorf("CanonicalOrientation(%s)=%s,%v; want %s,%v", tc.in, s, flipped, tc.want, tc.flipped)
		}
	}
}

func TestReverseComplement(t *testing.T) {
	s := []byte("AACGTTG")
	if err := unicanon.ReverseComplement(s); err != nil {
		t.Fatal(err)
	}
	if string(s) != "CAACGTT" {
		t.Errorf("ReverseComplement(AACGTTG)=%s; want CAACGTT", s)
	}

	bad := []byte("ACNT")
	err := unicanon.ReverseComplement(bad)
	if errors.Cause(err) != unicanon.ErrInvalidBase {
		t.Errorf("ReverseComplement(ACNT) error=%v; want ErrInvalidBase", err)
	}
	if string(bad) != "ACNT" {
		t.Errorf("ReverseComplement(ACNT) modified input to %s", bad)
	}
}

func TestComplement(t *testing.T) {
	for in, want := range map[byte]byte{'A': 'T', 'C': 'G', 'G': 'C', 'T': 'A'} {
		got, err := unicanon.Complement(in)
		if err != nil || got != want {
			t.Errorf("Complement(%c)=%c,%v; want %c", in, got, err, want)
		}
	}
	for _, in := range []byte("acgtN-\n") {
		if _, err := unicanon.Complement(in); errors.Cause(err) != unicanon.ErrInvalidBase {
			t.Errorf("Complement(%q) error=%v; want ErrInvalidBase", in, err)
		}
	}
}

func TestCanonicalizeShortSequence(t *testing.T) {
	r := &unicanon.Record{Seq: []byte("ACG")}
	err := r.Canonicalize(5, nil)
	if errors.Cause(err) != unicanon.ErrShortSequence {
		t.Fatalf("Canonicalize(ACG, 5) error=%v; want ErrShortSequence", err)
	}
}

func TestCanonicalizeInvalidK(t *testing.T) {
	for _, k := range []int{0, -3} {
		r := &unicanon.Record{Seq: []byte("ACGTT")}
		if err := r.Canonicalize(k, nil); errors.Cause(err) != unicanon.ErrInvalidK {
			t.Errorf("Canonicalize(ACGTT, %d) error=%v; want ErrInvalidK", k, err)
		}
		if string(r.Seq) != "ACGTT" {
			t.Errorf("Canonicalize(ACGTT, %d) modified input to %s", k, r.Seq)
		}
	}
}

func TestCanonicalizeInvalidBase(t *testing.T) {
	r := &unicanon.Record{Seq: []byte("TTTNA")}
	err := r.Canonicalize(3, nil)
	if errors.Cause(err) != unicanon.ErrInvalidBase {
		t.Fatalf("Canonicalize(TTTNA) error=%v; want ErrInvalidBase", err)
	}
	if string(r.Seq) != "TTTNA" {
		t.Errorf("Canonicalize(TTTNA) modified input to %s", r.Seq)
	}
}

func TestCanonicalizeLinear(t *testing.T) {
	r := canonicalOf(t, "GGTTT", 3)
	if string(r.Seq) != "AAACC" || !r.Flipped || r.Circular {
		t.Errorf("GGTTT -> %s flipped=%v circular=%v; want AAACC true false", r.Seq, r.Flipped, r.Circular)
	}
}

func TestCanonicalizePalindromicAffixOnlyFlags(t *testing.T) {
	// CG at the end reads the same on both strands, but AA != CG so no
	// rotation search happens
	r := canonicalOf(t, "AACG", 3)
	if string(r.Seq) != "AACG" || r.Flipped || !r.Circular {
		t.Errorf("AACG -> %s flipped=%v circular=%v; want AACG false true", r.Seq, r.Flipped, r.Circular)
	}
}

func TestCanonicalizeCircular(t *testing.T) {
	// Cycle GTCA extended by k-1=2 bases. The smallest oriented rotation is
	// ACTGAC, the reverse complement of GTCAGT
	for _, in := range []string{"GTCAGT", "TCAGTC", "CAGTCA", "AGTCAG", "ACTGAC", "CTGACT"} {
		r := canonicalOf(t, in, 3)
		if string(r.Seq) != "ACTGAC" || !r.Circular {
			t.Errorf("%s -> %s circular=%v; want ACTGAC true", in, r.Seq, r.Circular)
		}
	}
	r := canonicalOf(t, "GTCAGT", 3)
	if !r.Flipped {
		t.Errorf("GTCAGT -> flipped=false; want true")
	}
	r = canonicalOf(t, "ACTGAC", 3)
	if r.Flipped {
		t.Errorf("ACTGAC -> flipped=true; want false")
	}
}

func TestCanonicalizeKOne(t *testing.T) {
	// An empty overlap always matches, so every record is a cycle
	tests := []struct {
		in      string
		want    string
		flipped bool
	}{
		{"ACGT", "ACGT", false},
		{"TTGA", "AATC", true},
		{"G", "C", true},
		{"CAAA", "AAAC", false},
	}
	for _, tc := range tests {
		r := canonicalOf(t, tc.in, 1)
		if string(r.Seq) != tc.want || r.Flipped != tc.flipped || !r.Circular {
			t.Errorf("k=1 %s -> %s flipped=%v circular=%v; want %s %v true",
				tc.in, r.Seq, r.Flipped, r.Circular, tc.want, tc.flipped)
		}
	}
}

func TestOrientationInvariance(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 500; i++ {
		k := 3 + rng.Intn(8)
		s := randomSeq(rng, k+rng.Intn(40))
		a := canonicalOf(t, s, k)
		b := canonicalOf(t, revcomp(s), k)
		if string(a.Seq) != string(b.Seq) {
			t.Fatalf("k=%d: %s -> %s but its reverse complement -> %s", k, s, a.Seq, b.Seq)
		}
	}
}

func TestRotationInvariance(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 200; i++ {
		k := 2 + rng.Intn(6)
		cycle := randomSeq(rng, 1+rng.Intn(20))
		n := len(cycle) + k - 1
		var want string
		for shift := 0; shift < len(cycle); shift++ {
			s := make([]byte, n)
			for j := range s {
				s[j] = cycle[(shift+j)%len(cycle)]
			}
			r := canonicalOf(t, string(s), k)
			if !r.Circular {
				t.Fatalf("k=%d: %s not detected as circular", k, s)
			}
			if shift == 0 {
				want = string(r.Seq)
				continue
			}
			if string(r.Seq) != want {
				t.Fatalf("k=%d cycle=%s: rotation %s -> %s; want %s", k, cycle, s, r.Seq, want)
			}
		}
	}
}

func TestCanonicalizeIdempotent(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	for i := 0; i < 300; i++ {
		k := 2 + rng.Intn(6)
		s := randomSeq(rng, k+rng.Intn(30))
		once := canonicalOf(t, s, k)
		twice := canonicalOf(t, string(once.Seq), k)
		if string(once.Seq) != string(twice.Seq) || twice.Flipped {
			t.Fatalf("k=%d: %s -> %s -> %s (flipped=%v)", k, s, once.Seq, twice.Seq, twice.Flipped)
		}
	}
}
