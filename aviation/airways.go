// aviation/airways.go
// Copyright(c) 2025 zoaref contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package aviation

import (
	"slices"
	"strings"

	"github.com/zoartcc/zoaref/math"
	"github.com/zoartcc/zoaref/util"
)

func sortAirwayFixes(fixes []AirwayFix) {
	slices.SortFunc(fixes, func(a, b AirwayFix) int { return a.Sequence - b.Sequence })
}

// dedupAirwaySequences drops all but the last record at each sequence
// number; the CIFP repeats a fix's record for each leg it terminates.
func dedupAirwaySequences(fixes []AirwayFix) []AirwayFix {
	var out []AirwayFix
	for _, f := range fixes {
		if n := len(out); n > 0 && out[n-1].Sequence == f.Sequence {
			out[n-1] = f
		} else {
			out = append(out, f)
		}
	}
	return out
}

// airwayOrientation reports the display direction for an airway spanning
// the given endpoint displacement and whether the fix order should be
// reversed. Airways are normalized to read west to east, or north to
// south when they run mostly north-south.
func airwayOrientation(first, last math.Point2LL) (string, bool) {
	dlat := last.Latitude() - first.Latitude()
	dlon := last.Longitude() - first.Longitude()

	const threshold = 0.5 // degrees, about 30nm of latitude

	reverse := false
	if abs32(dlon) > threshold {
		reverse = dlon < 0
	} else if abs32(dlat) > threshold {
		reverse = dlat > 0
	}

	if reverse {
		dlat, dlon = -dlat, -dlon
	}
	end := math.CardinalDirection(dlat, dlon)
	start := math.CardinalDirection(-dlat, -dlon)

	return start + " to " + end, reverse
}

func abs32(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}

// Airway assembles the named airway in display order, with coordinates
// attached to every fix we can resolve.
func (ds *DataStore) Airway(id string) (Airway, bool) {
	id = strings.ToUpper(strings.TrimSpace(id))

	cifp, ok := ds.cifpData()
	if !ok {
		return Airway{}, false
	}
	raw, ok := cifp.AirwayFixes[id]
	if !ok || len(raw) == 0 {
		return Airway{}, false
	}

	fixes := make([]AirwayFix, len(raw))
	copy(fixes, raw)
	for i := range fixes {
		if wp, ok := ds.Resolve(fixes[i].Fix); ok {
			fixes[i].Location = wp.Location
			fixes[i].HasLoc = true
		}
	}

	aw := Airway{Id: id, Fixes: fixes}

	located := slices.DeleteFunc(slices.Clone(fixes), func(f AirwayFix) bool { return !f.HasLoc })
	if len(located) >= 2 {
		dir, reverse := airwayOrientation(located[0].Location, located[len(located)-1].Location)
		aw.Direction = dir
		if reverse {
			slices.Reverse(aw.Fixes)
		}
	}

	return aw, true
}

// AirwaySearch wraps Airway, validating the requested highlight fixes
// against the airway's actual fix list.
type AirwaySearchResult struct {
	Query      string
	Airway     Airway
	Found      bool
	Highlights []string
}

func (ds *DataStore) SearchAirway(query string, highlights []string) AirwaySearchResult {
	aw, ok := ds.Airway(query)
	result := AirwaySearchResult{Query: query, Airway: aw, Found: ok}

	if ok {
		names := aw.FixNames()
		for _, h := range highlights {
			h = strings.ToUpper(strings.TrimSpace(h))
			if slices.Contains(names, h) {
				result.Highlights = append(result.Highlights, h)
			}
		}
		result.Highlights = util.DedupSlice(result.Highlights)
	}
	return result
}
