// aviation/aviation.go
// Copyright(c) 2025 zoaref contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package aviation

import (
	"github.com/zoartcc/zoaref/math"
)

// Navaid is a ground-based navigation facility (VOR, VORTAC, TACAN, NDB,
// ...) from the FAA NASR NAV file.
type Navaid struct {
	Id       string // e.g. "FMG", "OAK"
	Name     string // e.g. "MUSTANG", "OAKLAND"
	Type     string // e.g. "VORTAC", "VOR/DME"
	City     string
	State    string // two-letter P.O. code
	Location math.Point2LL
}

type PointType string

const (
	PointNavaid  PointType = "NAVAID"
	PointAirport PointType = "AIRPORT"
	PointFix     PointType = "FIX"
)

// Waypoint is any named point we can locate: a navaid, an airport
// reference point, or a fix.
type Waypoint struct {
	Id       string
	Name     string // navaid name, if known
	Location math.Point2LL
	Type     PointType
}

// FixRole classifies a fix's role within an approach procedure.
type FixRole string

const (
	RoleNone FixRole = ""
	RoleIAF  FixRole = "IAF"  // initial approach fix
	RoleIF   FixRole = "IF"   // intermediate fix
	RoleFAF  FixRole = "FAF"  // final approach fix
	RoleMAHP FixRole = "MAHP" // missed approach holding point
)

// ProcedureLeg is one sequenced fix in a SID, STAR, or approach.
type ProcedureLeg struct {
	Airport     string // ICAO, e.g. "KRNO"
	ProcedureId string // e.g. "SCOLA1", "H17LZ"
	Transition  string // "" for the common route
	RouteType   byte
	Fix         string
	Role        FixRole
	Sequence    int
	PathTerm    string // e.g. "IF", "TF", "RF"
}

// AirwayFix is one sequenced fix along an enroute airway.
type AirwayFix struct {
	Fix      string
	Sequence int
	IsNavaid bool
	Location math.Point2LL
	HasLoc   bool
}

// Airway is an assembled enroute airway in display order.
type Airway struct {
	Id        string // e.g. "V23", "J60", "T270"
	Fixes     []AirwayFix
	Direction string // e.g. "SE to NW"
}

func (a Airway) FixNames() []string {
	names := make([]string, len(a.Fixes))
	for i, f := range a.Fixes {
		names[i] = f.Fix
	}
	return names
}

// AirwayRestriction carries MEA/MOCA altitudes for the airway segment
// ending at the fix with the matching sequence number.
type AirwayRestriction struct {
	Airway      string
	Sequence    int
	MEA         int // feet; 0 if unpublished
	MEAOpposite int
	MOCA        int
}
