// aviation/arinc424.go
// Copyright(c) 2025 zoaref contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package aviation

import (
	"bufio"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/zoartcc/zoaref/math"
)

// Minimum line lengths for the CIFP record kinds we decode; shorter lines
// are silently skipped.
const (
	sidStarMinLength  = 35
	approachMinLength = 50
	waypointMinLength = 52
	airwayMinLength   = 40
)

// ParseAltitude decodes an ARINC 424 altitude field to feet. Flight
// levels are given as "FL" plus either hundreds of feet ("FL280") or, for
// values under 100, thousands ("FL28"); both of those decode to 28000.
// Anything else is tens of feet with leading zeros ("01700" is 17000).
// Blank fields return ok == false.
func ParseAltitude(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	if rest, found := strings.CutPrefix(s, "FL"); found {
		v, err := strconv.Atoi(strings.TrimSpace(rest))
		if err != nil {
			return 0, false
		}
		if v < 100 {
			return v * 1000, true
		}
		return v * 100, true
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return v * 10, true
}

// ParsePackedLatitude decodes the 9-character ARINC 424 latitude
// encoding: hemisphere plus DDMMSSHH, e.g. "N38573910" is 38°57'39.10".
func ParsePackedLatitude(s string) (float32, bool) {
	if len(s) < 9 || (s[0] != 'N' && s[0] != 'S') {
		return 0, false
	}
	v, ok := packedDegrees(s[1:3], s[3:5], s[5:9])
	if !ok {
		return 0, false
	}
	if s[0] == 'S' {
		v = -v
	}
	return v, true
}

// ParsePackedLongitude decodes the 10-character longitude encoding:
// hemisphere plus DDDMMSSHH, e.g. "W121292540" is -121°29'25.40".
func ParsePackedLongitude(s string) (float32, bool) {
	if len(s) < 10 || (s[0] != 'E' && s[0] != 'W') {
		return 0, false
	}
	v, ok := packedDegrees(s[1:4], s[4:6], s[6:10])
	if !ok {
		return 0, false
	}
	if s[0] == 'W' {
		v = -v
	}
	return v, true
}

func packedDegrees(d, m, sh string) (float32, bool) {
	deg, err0 := strconv.Atoi(d)
	min, err1 := strconv.Atoi(m)
	sec, err2 := strconv.Atoi(sh[:2])
	hund, err3 := strconv.Atoi(sh[2:])
	if err0 != nil || err1 != nil || err2 != nil || err3 != nil {
		return 0, false
	}
	return float32(deg) + float32(min)/60 + (float32(sec)+float32(hund)/100)/3600, true
}

// waypointRoles maps the ARINC 424 waypoint description code (column 43)
// to the fix's role in an approach.
var waypointRoles = map[byte]FixRole{
	'A': RoleIAF, // initial approach fix
	'B': RoleIF,  // intermediate fix
	'C': RoleIAF, // IAF and IF combined
	'D': RoleIAF, // IAF and FAF combined
	'E': RoleFAF, // final approach course fix
	'F': RoleFAF,
	'G': RoleMAHP, // missed approach point
	'I': RoleIF,
	'M': RoleMAHP, // missed approach holding fix
}

// ApproachTypes maps the first character of a CIFP approach id to the
// procedure type as it appears on charts.
var ApproachTypes = map[byte]string{
	'B': "LOC/DME BC",
	'D': "VOR/DME",
	'F': "FMS",
	'G': "IGS",
	'H': "RNAV (GPS)",
	'I': "ILS",
	'J': "GNSS",
	'L': "LOC",
	'N': "NDB",
	'P': "GPS",
	'Q': "NDB/DME",
	'R': "RNAV",
	'S': "VOR",
	'T': "TACAN",
	'U': "SDF",
	'V': "VOR",
	'W': "MLS",
	'X': "LDA",
	'Y': "MLS",
	'Z': "MLS",
}

func ApproachType(id string) string {
	if id == "" {
		return "UNKNOWN"
	}
	if t, ok := ApproachTypes[id[0]]; ok {
		return t
	}
	return "UNKNOWN"
}

var approachRunwayRe = regexp.MustCompile(`^(\d{1,2}[LRC]?)`)

// ApproachRunway extracts the runway from a CIFP approach id: "H17LZ"
// gives "17L". Approaches with no runway (e.g. circling) return "".
func ApproachRunway(id string) string {
	if len(id) < 2 {
		return ""
	}
	// skip the type character; a trailing X/Y/Z/W variant letter may follow
	if m := approachRunwayRe.FindStringSubmatch(id[1:]); m != nil {
		return m[1]
	}
	return ""
}

type procedureKind byte

const (
	kindSID      procedureKind = 'D'
	kindSTAR     procedureKind = 'E'
	kindApproach procedureKind = 'F'
)

// decodeProcedureLeg decodes a SUSAP procedure record of the given kind
// (SID, STAR, or approach subsection).
func decodeProcedureLeg(line string, kind procedureKind) (ProcedureLeg, bool) {
	min := sidStarMinLength
	if kind == kindApproach {
		min = approachMinLength
	}
	if len(line) < min || !strings.HasPrefix(line, "SUSAP") || line[12] != byte(kind) {
		return ProcedureLeg{}, false
	}

	leg := ProcedureLeg{
		Airport:     strings.TrimSpace(line[6:10]),
		ProcedureId: strings.TrimSpace(line[13:19]),
		RouteType:   line[19],
		Transition:  strings.TrimSpace(line[20:25]),
		Fix:         strings.TrimSpace(line[29:34]),
	}
	if leg.Fix == "" || leg.ProcedureId == "" {
		return ProcedureLeg{}, false
	}

	if seq, err := strconv.Atoi(strings.TrimSpace(line[26:29])); err == nil {
		leg.Sequence = seq
	}

	// Approach transitions are flagged by route type 'A'; the main route
	// repeats the approach id there instead.
	if kind == kindApproach && leg.RouteType != 'A' {
		leg.Transition = ""
	}

	if len(line) > 42 {
		leg.Role = waypointRoles[line[42]]
	}
	if len(line) > 48 {
		leg.PathTerm = strings.TrimSpace(line[47:49])
	}

	return leg, true
}

var airwayIdRe = regexp.MustCompile(`^[A-Z]\d+$`)
var airwaySeqRe = regexp.MustCompile(`\d{4}`)

// decodeAirwayFix decodes a SUSAER enroute airway record to the airway id
// and the fix at that sequence number.
func decodeAirwayFix(line string) (string, AirwayFix, bool) {
	if len(line) < airwayMinLength || !strings.HasPrefix(line, "SUSAER") {
		return "", AirwayFix{}, false
	}

	id := strings.TrimSpace(line[6:22])
	if !airwayIdRe.MatchString(id) {
		return "", AirwayFix{}, false
	}

	loc := airwaySeqRe.FindStringIndex(line[18:30])
	if loc == nil {
		return "", AirwayFix{}, false
	}
	seq, err := strconv.Atoi(line[18+loc[0] : 18+loc[1]])
	if err != nil {
		return "", AirwayFix{}, false
	}

	seqEnd := 18 + loc[1]
	if len(line) < seqEnd+5 {
		return "", AirwayFix{}, false
	}
	fix := strings.TrimSpace(line[seqEnd : seqEnd+5])
	if fix == "" {
		return "", AirwayFix{}, false
	}

	// After the fix come the ICAO region and the fix's section code:
	// D for VOR, B for NDB, A for an enroute waypoint.
	isNavaid := false
	if len(line) > seqEnd+8 {
		isNavaid = line[seqEnd+7] == 'D' || line[seqEnd+7] == 'B'
	}

	return id, AirwayFix{Fix: fix, Sequence: seq, IsNavaid: isNavaid}, true
}

// findHemisphere returns the index of the first 'N' or 'S' in line within
// [lo, hi), or -1. CIFP coordinate fields don't sit at one fixed column
// across record kinds, so we locate them by the latitude hemisphere.
func findHemisphere(line string, lo, hi int) int {
	hi = minInt(hi, len(line))
	for i := lo; i < hi; i++ {
		if line[i] == 'N' || line[i] == 'S' {
			return i
		}
	}
	return -1
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func decodeCoordinates(line string, lo, hi int) (math.Point2LL, bool) {
	i := findHemisphere(line, lo, hi)
	if i < 0 || len(line) < i+19 {
		return math.Point2LL{}, false
	}
	lat, ok0 := ParsePackedLatitude(line[i : i+9])
	long, ok1 := ParsePackedLongitude(line[i+9 : i+19])
	if !ok0 || !ok1 {
		return math.Point2LL{}, false
	}
	return math.Point2LL{long, lat}, true
}

// CIFPData holds everything extracted from one pass over a CIFP file.
type CIFPData struct {
	// Airport reference points, keyed both with and without the ICAO 'K'
	// prefix.
	Airports map[string]math.Point2LL
	// Terminal waypoints ('C' subsection); first occurrence wins.
	TerminalWaypoints map[string]math.Point2LL
	// Enroute waypoints (EA section).
	EnrouteWaypoints map[string]math.Point2LL
	// Raw airway fixes keyed by airway id; sequence-ordered.
	AirwayFixes map[string][]AirwayFix
	// Procedure legs grouped airport -> procedure id -> legs, one map per
	// procedure kind.
	SIDs       map[string]map[string][]ProcedureLeg
	STARs      map[string]map[string][]ProcedureLeg
	Approaches map[string]map[string][]ProcedureLeg
}

func addLeg(m map[string]map[string][]ProcedureLeg, leg ProcedureLeg) {
	byProc, ok := m[leg.Airport]
	if !ok {
		byProc = make(map[string][]ProcedureLeg)
		m[leg.Airport] = byProc
	}
	byProc[leg.ProcedureId] = append(byProc[leg.ProcedureId], leg)
}

// ParseCIFP decodes an entire FAA CIFP file. Malformed or unrecognized
// lines are skipped.
func ParseCIFP(r io.Reader) *CIFPData {
	data := &CIFPData{
		Airports:          make(map[string]math.Point2LL),
		TerminalWaypoints: make(map[string]math.Point2LL),
		EnrouteWaypoints:  make(map[string]math.Point2LL),
		AirwayFixes:       make(map[string][]AirwayFix),
		SIDs:              make(map[string]map[string][]ProcedureLeg),
		STARs:             make(map[string]map[string][]ProcedureLeg),
		Approaches:        make(map[string]map[string][]ProcedureLeg),
	}

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 256), 4096)
	for sc.Scan() {
		line := sc.Text()
		if len(line) < 13 || line[0] != 'S' {
			continue
		}

		if strings.HasPrefix(line, "SUSAER") {
			if id, fix, ok := decodeAirwayFix(line); ok {
				data.AirwayFixes[id] = append(data.AirwayFixes[id], fix)
			}
			continue
		}

		if len(line) >= waypointMinLength && line[4:6] == "EA" {
			ident := strings.TrimSpace(line[13:18])
			if ident == "" {
				continue
			}
			if p, ok := decodeCoordinates(line, 28, 40); ok {
				data.EnrouteWaypoints[ident] = p
			}
			continue
		}

		if !strings.HasPrefix(line, "SUSAP") {
			continue
		}

		switch line[12] {
		case 'A': // airport reference point
			if len(line) < waypointMinLength {
				continue
			}
			icao := strings.TrimSpace(line[6:10])
			if icao == "" {
				continue
			}
			if p, ok := decodeCoordinates(line, 28, 35); ok {
				data.Airports[icao] = p
				if rest, found := strings.CutPrefix(icao, "K"); found {
					data.Airports[rest] = p
				} else {
					data.Airports["K"+icao] = p
				}
			}

		case 'C': // terminal waypoint
			if len(line) < waypointMinLength {
				continue
			}
			ident := strings.TrimSpace(line[13:18])
			if ident == "" {
				continue
			}
			if _, ok := data.TerminalWaypoints[ident]; ok {
				continue
			}
			if p, ok := decodeCoordinates(line, 28, 45); ok {
				data.TerminalWaypoints[ident] = p
			}

		case byte(kindSID):
			if leg, ok := decodeProcedureLeg(line, kindSID); ok {
				addLeg(data.SIDs, leg)
			}

		case byte(kindSTAR):
			if leg, ok := decodeProcedureLeg(line, kindSTAR); ok {
				addLeg(data.STARs, leg)
			}

		case byte(kindApproach):
			if leg, ok := decodeProcedureLeg(line, kindApproach); ok {
				addLeg(data.Approaches, leg)
			}
		}
	}

	for id := range data.AirwayFixes {
		fixes := data.AirwayFixes[id]
		sortAirwayFixes(fixes)
		data.AirwayFixes[id] = dedupAirwaySequences(fixes)
	}

	return data
}
