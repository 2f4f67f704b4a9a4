// aviation/waypoints.go
// Copyright(c) 2025 zoaref contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package aviation

import (
	"strings"

	"github.com/zoartcc/zoaref/math"
)

// Resolve looks up coordinates for any named point. The search order is
// navaids, then airport reference points, then terminal waypoints, then
// enroute waypoints; the first hit wins. Hits are memoized.
func (ds *DataStore) Resolve(ident string) (Waypoint, bool) {
	ident = strings.ToUpper(strings.TrimSpace(ident))
	if ident == "" {
		return Waypoint{}, false
	}

	if wp, ok := ds.resolved.Get(ident); ok {
		return wp, true
	}

	if navaids := ds.SearchNavaids(ident); len(navaids) > 0 {
		n := navaids[0]
		wp := Waypoint{Id: n.Id, Name: n.Name, Location: n.Location, Type: PointNavaid}
		ds.resolved.Add(ident, wp)
		return wp, true
	}

	if cifp, ok := ds.cifpData(); ok {
		if p, ok := cifp.Airports[ident]; ok {
			wp := Waypoint{Id: ident, Location: p, Type: PointAirport}
			ds.resolved.Add(ident, wp)
			return wp, true
		}
		if p, ok := cifp.TerminalWaypoints[ident]; ok {
			wp := Waypoint{Id: ident, Location: p, Type: PointFix}
			ds.resolved.Add(ident, wp)
			return wp, true
		}
		if p, ok := cifp.EnrouteWaypoints[ident]; ok {
			wp := Waypoint{Id: ident, Location: p, Type: PointFix}
			ds.resolved.Add(ident, wp)
			return wp, true
		}
	}

	return Waypoint{}, false
}

// Distance returns the great-circle distance in nautical miles between
// two named points, along with the resolved endpoints.
func (ds *DataStore) Distance(from, to string) (float32, Waypoint, Waypoint, bool) {
	a, ok := ds.Resolve(from)
	if !ok {
		return 0, Waypoint{}, Waypoint{}, false
	}
	b, ok := ds.Resolve(to)
	if !ok {
		return 0, a, Waypoint{}, false
	}
	return math.NMDistance2LL(a.Location, b.Location), a, b, true
}
