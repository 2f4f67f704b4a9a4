// airac/airac.go
// Copyright(c) 2025 zoaref contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package airac computes AIRAC (Aeronautical Information Regulation And
// Control) cycles. Cycles are 28 days long and follow a fixed schedule, so
// everything can be derived from a single known epoch: cycle 2501 became
// effective January 23, 2025.
package airac

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

const CycleDays = 28

// There are 13 cycles per year (13 * 28 = 364 days).
const cyclesPerYear = 13

var Epoch = time.Date(2025, time.January, 23, 0, 0, 0, 0, time.UTC)

// Cycle identifies a single AIRAC cycle: a two-digit year followed by the
// cycle's ordinal within that year, e.g. "2512".
type Cycle struct {
	ID    string
	Start time.Time // effective date, 00:00 UTC
	End   time.Time // last day the cycle is effective
}

// CycleAt returns the AIRAC cycle in effect at the given time.
func CycleAt(t time.Time) Cycle {
	days := int(t.UTC().Sub(Epoch).Hours()) / 24
	n := floorDiv(days, CycleDays) // 0-indexed from cycle 2501

	year := 2025 + floorDiv(n, cyclesPerYear)
	inYear := floorMod(n, cyclesPerYear) + 1

	start := Epoch.AddDate(0, 0, n*CycleDays)
	return Cycle{
		ID:    fmt.Sprintf("%02d%02d", year%100, inYear),
		Start: start,
		End:   start.AddDate(0, 0, CycleDays-1),
	}
}

func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

func floorMod(a, b int) int {
	return a - floorDiv(a, b)*b
}

// Current returns the AIRAC cycle in effect right now.
func Current() Cycle {
	return CycleAt(time.Now())
}

// FromID reconstructs a Cycle from its four-digit identifier.
func FromID(id string) (Cycle, bool) {
	if len(id) != 4 {
		return Cycle{}, false
	}
	n, err := strconv.Atoi(id)
	if err != nil {
		return Cycle{}, false
	}
	year, inYear := 2000+n/100, n%100
	if inYear < 1 || inYear > cyclesPerYear {
		return Cycle{}, false
	}

	start := Epoch.AddDate(0, 0, ((year-2025)*cyclesPerYear+inYear-1)*CycleDays)
	return Cycle{
		ID:    id,
		Start: start,
		End:   start.AddDate(0, 0, CycleDays-1),
	}, true
}

var chartURLRe = regexp.MustCompile(`/d-tpp/(\d{4})/`)

// FromChartURL extracts the AIRAC cycle identifier from an FAA chart URL;
// these look like https://aeronav.faa.gov/d-tpp/2512/00294CNDEL.PDF.
func FromChartURL(url string) (string, bool) {
	if m := chartURLRe.FindStringSubmatch(url); m != nil {
		return m[1], true
	}
	return "", false
}

// ForCaching returns the cycle identifier to key a cache entry on: the one
// embedded in the URL when present, otherwise the current cycle.
func ForCaching(pdfURL string) string {
	if pdfURL != "" {
		if id, ok := FromChartURL(pdfURL); ok {
			return id
		}
	}
	return Current().ID
}
