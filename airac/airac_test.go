// airac/airac_test.go
// Copyright(c) 2025 zoaref contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package airac

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/zoartcc/zoaref/util"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestCycleAt(t *testing.T) {
	for _, tc := range []struct {
		when  time.Time
		id    string
		start time.Time
		end   time.Time
	}{
		{when: date(2025, time.January, 23), id: "2501", start: date(2025, time.January, 23), end: date(2025, time.February, 19)},
		{when: date(2025, time.February, 19), id: "2501", start: date(2025, time.January, 23), end: date(2025, time.February, 19)},
		{when: date(2025, time.February, 20), id: "2502", start: date(2025, time.February, 20), end: date(2025, time.March, 19)},
		{when: date(2025, time.December, 1), id: "2512", start: date(2025, time.November, 27), end: date(2025, time.December, 24)},
		// 13th and last cycle of 2025
		{when: date(2025, time.December, 25), id: "2513", start: date(2025, time.December, 25), end: date(2026, time.January, 21)},
		// year rollover
		{when: date(2026, time.January, 22), id: "2601", start: date(2026, time.January, 22), end: date(2026, time.February, 18)},
	} {
		t.Run(tc.id, func(t *testing.T) {
			c := CycleAt(tc.when)
			if c.ID != tc.id {
				t.Errorf("CycleAt(%v) id = %q, expected %q", tc.when, c.ID, tc.id)
			}
			if !c.Start.Equal(tc.start) {
				t.Errorf("start = %v, expected %v", c.Start, tc.start)
			}
			if !c.End.Equal(tc.end) {
				t.Errorf("end = %v, expected %v", c.End, tc.end)
			}
		})
	}
}

func TestCycleAtMidCycle(t *testing.T) {
	// Time of day within the effective window shouldn't matter.
	c := CycleAt(time.Date(2025, time.August, 31, 23, 59, 0, 0, time.UTC))
	if c.ID != "2508" {
		t.Errorf("got cycle %q, expected 2508", c.ID)
	}
}

func TestFromID(t *testing.T) {
	c, ok := FromID("2501")
	if !ok {
		t.Fatalf("FromID failed")
	}
	if !c.Start.Equal(Epoch) {
		t.Errorf("2501 start = %v, expected epoch", c.Start)
	}

	c, ok = FromID("2601")
	if !ok {
		t.Fatalf("FromID failed")
	}
	if want := date(2026, time.January, 22); !c.Start.Equal(want) {
		t.Errorf("2601 start = %v, expected %v", c.Start, want)
	}

	for _, bad := range []string{"", "25", "25014", "2500", "2514", "25ab"} {
		if _, ok := FromID(bad); ok {
			t.Errorf("FromID(%q) unexpectedly succeeded", bad)
		}
	}
}

func TestFromIDRoundTrip(t *testing.T) {
	// CycleAt of a cycle's start date must reproduce the cycle.
	for _, id := range []string{"2501", "2507", "2513", "2601", "2705"} {
		c, ok := FromID(id)
		if !ok {
			t.Fatalf("FromID(%q) failed", id)
		}
		if got := CycleAt(c.Start); got.ID != id {
			t.Errorf("CycleAt(start of %s) = %s", id, got.ID)
		}
		if got := CycleAt(c.End); got.ID != id {
			t.Errorf("CycleAt(end of %s) = %s", id, got.ID)
		}
	}
}

func TestFromChartURL(t *testing.T) {
	if id, ok := FromChartURL("https://aeronav.faa.gov/d-tpp/2512/00294CNDEL.PDF"); !ok || id != "2512" {
		t.Errorf("got %q, %v", id, ok)
	}
	if _, ok := FromChartURL("https://aeronav.faa.gov/other/00294CNDEL.PDF"); ok {
		t.Errorf("extraction unexpectedly succeeded")
	}
}

func TestForCaching(t *testing.T) {
	if id := ForCaching("https://aeronav.faa.gov/d-tpp/2410/chart.PDF"); id != "2410" {
		t.Errorf("got %q, expected URL cycle to win", id)
	}
	if id := ForCaching(""); id != Current().ID {
		t.Errorf("got %q, expected current cycle %q", id, Current().ID)
	}
}

func TestCleanup(t *testing.T) {
	util.SetCacheRoot(t.TempDir())
	defer util.SetCacheRoot("")

	cacheDir, _ := util.CacheDir()
	current := Current()

	old, ok := FromID(olderID(current.ID, 4))
	if !ok {
		t.Fatalf("bad old cycle id")
	}
	mk := func(parts ...string) string {
		p := filepath.Join(append([]string{cacheDir}, parts...)...)
		if err := os.MkdirAll(filepath.Dir(p), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(p, []byte("x"), 0644); err != nil {
			t.Fatal(err)
		}
		return p
	}

	keep := mk("cifp", "FAACIFP18-"+current.ID)
	cull := mk("cifp", "FAACIFP18-"+old.ID)
	keepParsed := mk("cifp", "parsed-"+current.ID)
	cullParsed := mk("nasr", "parsed-NAV-"+old.ID)
	keepChart := filepath.Join(cacheDir, "charts", current.ID, "OAK")
	os.MkdirAll(keepChart, 0755)
	cullChart := filepath.Join(cacheDir, "charts", old.ID, "OAK")
	os.MkdirAll(cullChart, 0755)

	n, err := Cleanup(2)
	if err != nil {
		t.Fatalf("Cleanup: %v", err)
	}
	if n != 3 {
		t.Errorf("removed %d entries, expected 3", n)
	}
	if _, err := os.Stat(keep); err != nil {
		t.Errorf("current cycle CIFP was removed")
	}
	if _, err := os.Stat(cull); err == nil {
		t.Errorf("old cycle CIFP survived")
	}
	if _, err := os.Stat(keepParsed); err != nil {
		t.Errorf("current cycle parsed CIFP was removed")
	}
	if _, err := os.Stat(cullParsed); err == nil {
		t.Errorf("old cycle parsed navaids survived")
	}
	if _, err := os.Stat(keepChart); err != nil {
		t.Errorf("current cycle charts were removed")
	}
	if _, err := os.Stat(filepath.Join(cacheDir, "charts", old.ID)); err == nil {
		t.Errorf("old cycle charts survived")
	}
}

// olderID returns the id n cycles before the given one, wrapping years.
func olderID(id string, n int) string {
	c, ok := FromID(id)
	if !ok {
		return id
	}
	return CycleAt(c.Start.AddDate(0, 0, -n*CycleDays)).ID
}
