// fuzzy/fuzzy_test.go
// Copyright(c) 2025 zoaref contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package fuzzy

import "testing"

func TestNormalizeRunways(t *testing.T) {
	for _, tc := range []struct{ in, want string }{
		{"RNAV 4R", "RNAV 04R"},
		{"ILS 28L", "ILS 28L"},
		{"4", "04"},
		{"04L", "04L"},
		{"RWY 4 5", "RWY 04 05"},
		{"CNDEL FIVE", "CNDEL FIVE"},
	} {
		if got := NormalizeRunways(tc.in); got != tc.want {
			t.Errorf("NormalizeRunways(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestLevenshtein(t *testing.T) {
	for _, tc := range []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"ABC", "", 3},
		{"CNDEL", "CNDEL", 0},
		{"CNDEL", "CNDWL", 1},
		{"KITTEN", "SITTING", 3},
	} {
		if got := Levenshtein(tc.a, tc.b); got != tc.want {
			t.Errorf("Levenshtein(%q, %q) = %d, want %d", tc.a, tc.b, got, tc.want)
		}
	}
}

func TestSimilarity(t *testing.T) {
	if got := Similarity("RNAV RWY 04R", "RNAV RWY 04R"); got != 1 {
		t.Errorf("exact match scored %v", got)
	}
	if got := Similarity("RNAV 4R", "rnav rwy 04r"); got < 0.8 {
		t.Errorf("RNAV 4R vs rnav rwy 04r scored %v", got)
	}

	// Typo within edit distance 2 still scores when nothing matches exactly.
	typo := Similarity("CNDWL", "CNDEL")
	if typo < 0.3 {
		t.Errorf("typo similarity %v, want edit-distance bonus", typo)
	}

	// Unrelated strings score at or near zero.
	if got := Similarity("BRIXX", "QUAKE TWO"); got > 0.15 {
		t.Errorf("unrelated similarity %v", got)
	}
}

func TestSimilarityOrdering(t *testing.T) {
	// The right runway should beat the wrong one.
	right := Similarity("ILS 28L", "ILS RWY 28L")
	wrong := Similarity("ILS 28L", "ILS RWY 28R")
	if right <= wrong {
		t.Errorf("ILS RWY 28L scored %v, ILS RWY 28R scored %v", right, wrong)
	}
}

func TestBestExact(t *testing.T) {
	best, matches, ok := Best("ILS RWY 28L", []string{"ILS RWY 28L", "ILS RWY 28R"})
	if !ok || best != "ILS RWY 28L" {
		t.Errorf("got best=%q ok=%v", best, ok)
	}
	if len(matches) == 0 || matches[0].Score != 1 {
		t.Errorf("expected exact score 1, got %+v", matches)
	}
}

func TestBestSingleFullMatch(t *testing.T) {
	// One candidate contains every query token; it wins.
	best, _, ok := Best("ILS 28L", []string{"ILS RWY 28L", "ILS RWY 28R", "RNAV RWY 28L"})
	if !ok || best != "ILS RWY 28L" {
		t.Errorf("got best=%q ok=%v", best, ok)
	}
}

func TestBestAmbiguous(t *testing.T) {
	best, matches, ok := Best("RNAV", []string{"RNAV RWY 28L", "RNAV RWY 28R"})
	if ok {
		t.Errorf("expected ambiguous result, got best=%q", best)
	}
	if len(matches) != 2 {
		t.Errorf("expected both close matches returned, got %+v", matches)
	}
}

func TestBestNoMatch(t *testing.T) {
	if best, matches, ok := Best("ZZZZZ", []string{"ILS RWY 28L"}); ok || matches != nil {
		t.Errorf("expected no match, got best=%q matches=%+v", best, matches)
	}
	if _, _, ok := Best("ANY", nil); ok {
		t.Error("expected no match for empty candidates")
	}
}
