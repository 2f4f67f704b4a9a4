// util/generic_test.go
// Copyright(c) 2025 zoaref contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package util

import (
	"slices"
	"testing"
)

func TestSelect(t *testing.T) {
	if Select(true, 1, 2) != 1 {
		t.Errorf("Select true failed")
	}
	if Select(false, "a", "b") != "b" {
		t.Errorf("Select false failed")
	}
}

func TestSortedMapKeys(t *testing.T) {
	m := map[string]int{"V334": 1, "J501": 2, "T257": 3}
	if got := SortedMapKeys(m); !slices.Equal(got, []string{"J501", "T257", "V334"}) {
		t.Errorf("got %v", got)
	}
}

func TestDedupSlice(t *testing.T) {
	in := []string{"GOLDN", "ARRTU", "GOLDN", "CEDES", "ARRTU"}
	want := []string{"GOLDN", "ARRTU", "CEDES"}
	if got := DedupSlice(in); !slices.Equal(got, want) {
		t.Errorf("got %v, expected %v", got, want)
	}
}

func TestFilterSlice(t *testing.T) {
	in := []int{10, 20, 30, 40}
	got := FilterSlice(in, func(v int) bool { return v > 20 })
	if !slices.Equal(got, []int{30, 40}) {
		t.Errorf("got %v", got)
	}
}
