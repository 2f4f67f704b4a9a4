// aviation/mea.go
// Copyright(c) 2025 zoaref contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package aviation

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/zoartcc/zoaref/util"
)

// MEASegment is one airway segment with its altitude requirement.
type MEASegment struct {
	Airway string
	Start  string // fix where the segment begins
	End    string // fix where the segment ends
	MEA    int    // feet
	MOCA   int    // feet; 0 if unpublished
}

// MEAResult is the outcome of analyzing a filed route's altitude
// requirements.
type MEAResult struct {
	Route    string
	Altitude int  // filed altitude in feet; 0 if not given
	MaxMEA   int  // highest MEA across the airways used; 0 if none found
	Safe     bool // Altitude >= MaxMEA; meaningless when Altitude is 0
	Segments []MEASegment
}

var airwayTokenRe = regexp.MustCompile(`^[VJTQ]\d+$`)
var procedureTokenRe = regexp.MustCompile(`^[A-Z]+\d+[A-Z]*$`)

func isAirwayToken(s string) bool { return airwayTokenRe.MatchString(s) }

// isRouteFix reports whether a route token names a fix rather than an
// airway, DCT, or a SID/STAR.
func isRouteFix(s string) bool {
	if s == "DCT" || isAirwayToken(s) {
		return false
	}
	if procedureTokenRe.MatchString(s) && len(s) > 5 {
		return false
	}
	return true
}

// AnalyzeRouteMEA parses a filed route ("KSFO V25 SAC J80 RNO KRNO"),
// finds the airways used and the portion of each between the adjacent
// fixes, and reports the MEA requirements. With an altitude (feet),
// Safe reports whether it clears every MEA and Segments keeps only the
// segments above it.
func (ds *DataStore) AnalyzeRouteMEA(route string, altitude int) MEAResult {
	result := MEAResult{Route: route, Altitude: altitude}

	awys, ok := ds.nasrAirwayData()
	if !ok || route == "" {
		return result
	}

	parts := strings.Fields(strings.ToUpper(route))
	for i, part := range parts {
		if !isAirwayToken(part) {
			continue
		}

		var entry, exit string
		for j := i - 1; j >= 0; j-- {
			if isRouteFix(parts[j]) {
				entry = parts[j]
				break
			}
		}
		for j := i + 1; j < len(parts); j++ {
			if isRouteFix(parts[j]) {
				exit = parts[j]
				break
			}
		}

		restrictions := awys.Restrictions[part]
		fixes := awys.Fixes[part]
		if restrictions == nil || fixes == nil {
			continue
		}

		// Sequence numbers of the entry and exit fixes bound the portion
		// of the airway this route actually uses.
		entrySeq, exitSeq := -1, -1
		for _, f := range fixes {
			if entry != "" && f.Fix == entry {
				entrySeq = f.Sequence
			}
			if exit != "" && f.Fix == exit {
				exitSeq = f.Sequence
			}
		}

		for _, seq := range util.SortedMapKeys(restrictions) {
			restr := restrictions[seq]
			if restr.MEA == 0 {
				continue
			}

			if entrySeq >= 0 && exitSeq >= 0 {
				lo, hi := min(entrySeq, exitSeq), max(entrySeq, exitSeq)
				// The restriction at sequence N covers the leg ending at
				// fix N.
				if !(lo < seq && seq <= hi) {
					continue
				}
			}

			seg := MEASegment{Airway: part, MEA: restr.MEA, MOCA: restr.MOCA}
			for _, f := range fixes {
				if f.Sequence == seq {
					seg.End = f.Fix
				} else if f.Sequence == seq-10 { // typical spacing
					seg.Start = f.Fix
				}
			}
			if seg.Start == "" {
				seg.Start = fmt.Sprintf("seq%d", seq-10)
			}
			if seg.End == "" {
				seg.End = fmt.Sprintf("seq%d", seq)
			}

			result.Segments = append(result.Segments, seg)
			if restr.MEA > result.MaxMEA {
				result.MaxMEA = restr.MEA
			}
		}
	}

	if altitude > 0 {
		result.Safe = result.MaxMEA == 0 || altitude >= result.MaxMEA
		result.Segments = filterSegmentsAbove(result.Segments, altitude)
	}
	return result
}

func filterSegmentsAbove(segments []MEASegment, altitude int) []MEASegment {
	var out []MEASegment
	for _, s := range segments {
		if s.MEA > altitude {
			out = append(out, s)
		}
	}
	return out
}
