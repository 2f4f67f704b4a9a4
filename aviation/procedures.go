// aviation/procedures.go
// Copyright(c) 2025 zoaref contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package aviation

import (
	"regexp"
	"slices"
	"sort"
	"strings"

	"github.com/zoartcc/zoaref/util"
)

// STAR is an assembled arrival procedure: the common-route waypoints
// followed by the runway transition waypoints, plus the names of the
// enroute transitions that feed it.
type STAR struct {
	Identifier  string
	Waypoints   []string
	Transitions []string
}

// SID is an assembled departure procedure. Unlike an arrival, the runway
// transition comes first: a departure flies runway, common route, then
// enroute transition.
type SID struct {
	Identifier  string
	Waypoints   []string
	Transitions []string
}

// Approach is an instrument approach with its raw legs.
type Approach struct {
	Airport string
	Id      string // CIFP approach id, e.g. "H17LZ"
	Type    string // e.g. "RNAV (GPS)"
	Runway  string // e.g. "17L"; "" for circling approaches
	Legs    []ProcedureLeg
}

func (a Approach) fixesWithRole(role FixRole) []string {
	var fixes []string
	for _, leg := range a.Legs {
		if leg.Role == role && !slices.Contains(fixes, leg.Fix) {
			fixes = append(fixes, leg.Fix)
		}
	}
	sort.Strings(fixes)
	return fixes
}

// IAFs returns the approach's initial approach fixes.
func (a Approach) IAFs() []string { return a.fixesWithRole(RoleIAF) }

// IFs returns the approach's intermediate fixes.
func (a Approach) IFs() []string { return a.fixesWithRole(RoleIF) }

// EntryFixes returns all fixes an aircraft may join the approach at
// without vectors: the IAFs and IFs.
func (a Approach) EntryFixes() []string {
	fixes := a.IAFs()
	for _, f := range a.IFs() {
		if !slices.Contains(fixes, f) {
			fixes = append(fixes, f)
		}
	}
	sort.Strings(fixes)
	return fixes
}

// Transitions returns the approach's transition names.
func (a Approach) Transitions() []string {
	var names []string
	for _, leg := range a.Legs {
		if leg.Transition != "" && !slices.Contains(names, leg.Transition) {
			names = append(names, leg.Transition)
		}
	}
	sort.Strings(names)
	return names
}

// FeederPaths maps each feeder fix to the IAF or IF it leads to. A
// feeder is the first fix of a transition when that fix isn't itself an
// IAF or IF; aircraft over it can join the approach via the transition,
// e.g. FMG feeding ROXJO.
func (a Approach) FeederPaths() map[string]string {
	entry := make(map[string]bool)
	for _, f := range a.IAFs() {
		entry[f] = true
	}
	for _, f := range a.IFs() {
		entry[f] = true
	}

	byTransition := make(map[string][]ProcedureLeg)
	for _, leg := range a.Legs {
		if leg.Transition != "" {
			byTransition[leg.Transition] = append(byTransition[leg.Transition], leg)
		}
	}

	feeders := make(map[string]string)
	for _, legs := range byTransition {
		slices.SortFunc(legs, func(x, y ProcedureLeg) int { return x.Sequence - y.Sequence })

		first := legs[0].Fix
		if entry[first] {
			continue
		}
		for _, leg := range legs {
			if leg.Role == RoleIAF || leg.Role == RoleIF {
				if _, ok := feeders[first]; !ok {
					feeders[first] = leg.Fix
				}
				break
			}
		}
	}
	return feeders
}

// FeederFixes returns the feeder fixes, sorted.
func (a Approach) FeederFixes() []string {
	var fixes []string
	for f := range a.FeederPaths() {
		fixes = append(fixes, f)
	}
	sort.Strings(fixes)
	return fixes
}

// normalizeAirport maps any of "RNO", "KRNO" to the CIFP's "KRNO".
func normalizeAirport(airport string) string {
	airport = strings.TrimLeft(strings.ToUpper(strings.TrimSpace(airport)), "K")
	return "K" + airport
}

// shortAirport is the 3-letter form used to filter airport fixes out of
// waypoint lists.
func shortAirport(airport string) string {
	return strings.TrimLeft(strings.ToUpper(strings.TrimSpace(airport)), "K")
}

var wordNumbers = map[string]string{
	"ONE": "1", "TWO": "2", "THREE": "3", "FOUR": "4", "FIVE": "5",
	"SIX": "6", "SEVEN": "7", "EIGHT": "8", "NINE": "9",
}

var procNameRe = regexp.MustCompile(`^([A-Z]+)\s*(\d|ONE|TWO|THREE|FOUR|FIVE|SIX|SEVEN|EIGHT|NINE)$`)
var rnavSuffixRe = regexp.MustCompile(`\s*\(RNAV\)$`)

// procedureIdPrefixes expands a procedure name to the CIFP id prefixes
// it may be filed under. "SCOLA ONE" gives "SCOLA1"; chart names that
// use a navaid name also try its identifiers, so "CONCORD2" tries
// "CCR2" and "CON2" as well.
func (ds *DataStore) procedureIdPrefixes(name string) []string {
	name = strings.ToUpper(strings.TrimSpace(name))
	name = rnavSuffixRe.ReplaceAllString(name, "")

	m := procNameRe.FindStringSubmatch(name)
	if m == nil {
		return []string{name}
	}

	base, num := m[1], m[2]
	if d, ok := wordNumbers[num]; ok {
		num = d
	}

	prefixes := []string{base + num}
	for _, ident := range ds.NavaidIdentsByName(base) {
		if ident != base {
			prefixes = append(prefixes, ident+num)
		}
	}
	return prefixes
}

// terminalLegs groups a procedure's legs by transition name.
func terminalLegs(byProc map[string][]ProcedureLeg, prefixes []string) map[string][]ProcedureLeg {
	buckets := make(map[string][]ProcedureLeg)
	for id, legs := range byProc {
		match := false
		for _, p := range prefixes {
			if strings.HasPrefix(id, p) {
				match = true
				break
			}
		}
		if !match {
			continue
		}
		for _, leg := range legs {
			buckets[leg.Transition] = append(buckets[leg.Transition], leg)
		}
	}
	for t := range buckets {
		slices.SortFunc(buckets[t], func(a, b ProcedureLeg) int { return a.Sequence - b.Sequence })
	}
	return buckets
}

// commonRouteKey returns the bucket holding the procedure's common
// route, which the CIFP names either "ALL" or leaves blank.
func commonRouteKey(buckets map[string][]ProcedureLeg) (string, bool) {
	if _, ok := buckets["ALL"]; ok {
		return "ALL", true
	}
	if _, ok := buckets[""]; ok {
		return "", true
	}
	return "", false
}

func appendFixes(waypoints []string, seen map[string]bool, legs []ProcedureLeg) []string {
	for _, leg := range legs {
		if !seen[leg.Fix] {
			seen[leg.Fix] = true
			waypoints = append(waypoints, leg.Fix)
		}
	}
	return waypoints
}

// filterProcedureFixes drops runway references and the airport itself
// from a waypoint list.
func filterProcedureFixes(waypoints []string, airport string) []string {
	short := shortAirport(airport)
	return slices.DeleteFunc(waypoints, func(w string) bool {
		return strings.HasPrefix(w, "RW") || strings.HasSuffix(w, short)
	})
}

func enrouteTransitions(buckets map[string][]ProcedureLeg) []string {
	var names []string
	for t := range buckets {
		if t != "" && t != "ALL" && !strings.HasPrefix(t, "RW") {
			names = append(names, t)
		}
	}
	sort.Strings(names)
	return names
}

// ArrivalSource supplies STAR definitions from an external service.
// When one is set on the data store it is consulted first; a miss falls
// back to the local CIFP data.
type ArrivalSource interface {
	GetSTAR(airport, name string) (STAR, bool)
}

// GetSTAR assembles the named arrival for an airport. The name may be a
// CIFP id ("SCOLA1"), a chart name ("SCOLA ONE"), or use a navaid
// identifier where the chart uses the name.
func (ds *DataStore) GetSTAR(airport, name string) (STAR, bool) {
	if ds.arrivals != nil {
		if star, ok := ds.arrivals.GetSTAR(airport, name); ok {
			return star, true
		}
	}

	cifp, ok := ds.cifpData()
	if !ok {
		return STAR{}, false
	}

	prefixes := ds.procedureIdPrefixes(name)
	buckets := terminalLegs(cifp.STARs[normalizeAirport(airport)], prefixes)
	if len(buckets) == 0 {
		return STAR{}, false
	}

	var waypoints []string
	seen := make(map[string]bool)

	// Arrivals read common route first, then the runway transitions
	// that carry the final fixes.
	if key, ok := commonRouteKey(buckets); ok {
		waypoints = appendFixes(waypoints, seen, buckets[key])
	}
	for _, t := range sortedRunwayTransitions(buckets) {
		waypoints = appendFixes(waypoints, seen, buckets[t])
	}

	return STAR{
		Identifier:  prefixes[0],
		Waypoints:   filterProcedureFixes(waypoints, airport),
		Transitions: enrouteTransitions(buckets),
	}, true
}

// GetSID assembles the named departure. Waypoint order is reversed
// relative to arrivals: runway transition, then common route.
func (ds *DataStore) GetSID(airport, name string) (SID, bool) {
	cifp, ok := ds.cifpData()
	if !ok {
		return SID{}, false
	}

	prefixes := ds.procedureIdPrefixes(name)
	buckets := terminalLegs(cifp.SIDs[normalizeAirport(airport)], prefixes)
	if len(buckets) == 0 {
		return SID{}, false
	}

	var waypoints []string
	seen := make(map[string]bool)

	for _, t := range sortedRunwayTransitions(buckets) {
		waypoints = appendFixes(waypoints, seen, buckets[t])
	}
	if key, ok := commonRouteKey(buckets); ok {
		waypoints = appendFixes(waypoints, seen, buckets[key])
	}

	return SID{
		Identifier:  prefixes[0],
		Waypoints:   filterProcedureFixes(waypoints, airport),
		Transitions: enrouteTransitions(buckets),
	}, true
}

func sortedRunwayTransitions(buckets map[string][]ProcedureLeg) []string {
	var names []string
	for t := range buckets {
		if strings.HasPrefix(t, "RW") {
			names = append(names, t)
		}
	}
	sort.Strings(names)
	return names
}

var baseProcIdRe = regexp.MustCompile(`^([A-Z]+\d)`)

// AllSTARs returns every arrival at an airport, keyed by base id
// ("SCOLA14" and "SCOLA15" both collapse to "SCOLA1").
func (ds *DataStore) AllSTARs(airport string) map[string]STAR {
	cifp, ok := ds.cifpData()
	if !ok {
		return nil
	}

	ids := make(map[string]bool)
	for id := range cifp.STARs[normalizeAirport(airport)] {
		if m := baseProcIdRe.FindStringSubmatch(id); m != nil {
			ids[m[1]] = true
		}
	}

	stars := make(map[string]STAR)
	for id := range ids {
		if star, ok := ds.GetSTAR(airport, id); ok {
			stars[id] = star
		}
	}
	return stars
}

// AllSIDs returns every departure at an airport, keyed by base id.
func (ds *DataStore) AllSIDs(airport string) map[string]SID {
	cifp, ok := ds.cifpData()
	if !ok {
		return nil
	}

	ids := make(map[string]bool)
	for id := range cifp.SIDs[normalizeAirport(airport)] {
		if m := baseProcIdRe.FindStringSubmatch(id); m != nil {
			ids[m[1]] = true
		}
	}

	sids := make(map[string]SID)
	for id := range ids {
		if sid, ok := ds.GetSID(airport, id); ok {
			sids[id] = sid
		}
	}
	return sids
}

// Approaches returns every instrument approach at an airport, keyed by
// CIFP approach id.
func (ds *DataStore) Approaches(airport string) map[string]Approach {
	cifp, ok := ds.cifpData()
	if !ok {
		return nil
	}

	icao := normalizeAirport(airport)
	approaches := make(map[string]Approach)
	for id, legs := range cifp.Approaches[icao] {
		sorted := slices.Clone(legs)
		slices.SortFunc(sorted, func(a, b ProcedureLeg) int {
			if a.Transition != b.Transition {
				return strings.Compare(a.Transition, b.Transition)
			}
			return a.Sequence - b.Sequence
		})
		approaches[id] = Approach{
			Airport: shortAirport(airport),
			Id:      id,
			Type:    ApproachType(id),
			Runway:  ApproachRunway(id),
			Legs:    sorted,
		}
	}
	return approaches
}

var chartRunwayRe = regexp.MustCompile(`RWY\s+(\d{1,2}[LRC]?)`)

// RunwayFromChartName extracts the runway from an approach chart name
// like "ILS OR LOC RWY 28R".
func RunwayFromChartName(name string) string {
	if m := chartRunwayRe.FindStringSubmatch(strings.ToUpper(name)); m != nil {
		return m[1]
	}
	return ""
}

// chartTypePrefixes maps keywords in a chart name to candidate CIFP
// approach type characters. RNAV charts may be filed as either 'H' or
// 'R'.
func chartTypePrefixes(name string) []byte {
	switch {
	case strings.Contains(name, "RNAV"), strings.Contains(name, "GPS"), strings.Contains(name, "RNP"):
		return []byte{'H', 'R'}
	case strings.Contains(name, "ILS"):
		return []byte{'I'}
	case strings.Contains(name, "LOC"):
		return []byte{'L'}
	case strings.Contains(name, "VOR/DME"):
		return []byte{'D'}
	case strings.Contains(name, "VOR"):
		return []byte{'V'}
	case strings.Contains(name, "NDB"):
		return []byte{'N'}
	case strings.Contains(name, "TACAN"):
		return []byte{'T'}
	}
	return nil
}

func chartVariant(name string) byte {
	for _, v := range []byte{'X', 'Y', 'Z', 'W'} {
		if strings.Contains(name, " "+string(v)+" ") || strings.HasSuffix(name, " "+string(v)) {
			return v
		}
	}
	return 0
}

// MatchApproach finds the CIFP approach corresponding to an approach
// chart name, matching on runway, approach type, and the X/Y/Z/W
// variant letter when the chart carries one.
func (ds *DataStore) MatchApproach(airport, chartName string) (Approach, bool) {
	approaches := ds.Approaches(airport)
	if len(approaches) == 0 {
		return Approach{}, false
	}

	name := strings.ToUpper(chartName)
	runway := RunwayFromChartName(name)
	if runway == "" {
		return Approach{}, false
	}
	prefixes := chartTypePrefixes(name)
	variant := chartVariant(name)

	var matched Approach
	var found bool
	for _, id := range util.SortedMapKeys(approaches) {
		ap := approaches[id]
		if ap.Runway != runway {
			continue
		}
		if len(prefixes) > 0 && !slices.Contains(prefixes, id[0]) {
			continue
		}

		var apVariant byte
		if last := id[len(id)-1]; last == 'X' || last == 'Y' || last == 'Z' || last == 'W' {
			apVariant = last
		}

		if variant != 0 {
			if apVariant == variant {
				return ap, true
			}
			continue
		}
		if !found {
			matched, found = ap, true
		}
	}
	return matched, found
}

// EntryRole describes how a fix serves as an entry to an approach.
type EntryRole struct {
	ApproachId string
	Runway     string
	Role       string // "IAF", "IF", or "Feeder"
	LeadsTo    string // destination IAF/IF for feeders
}

// ApproachesByEntryFix lists the approaches at an airport reachable
// from a fix, whether as IAF, IF, or feeder.
func (ds *DataStore) ApproachesByEntryFix(airport, fix string) []EntryRole {
	fix = strings.ToUpper(strings.TrimSpace(fix))

	var roles []EntryRole
	approaches := ds.Approaches(airport)
	for _, id := range util.SortedMapKeys(approaches) {
		ap := approaches[id]
		switch {
		case slices.Contains(ap.IAFs(), fix):
			roles = append(roles, EntryRole{ApproachId: id, Runway: ap.Runway, Role: "IAF"})
		case slices.Contains(ap.IFs(), fix):
			roles = append(roles, EntryRole{ApproachId: id, Runway: ap.Runway, Role: "IF"})
		default:
			if dest, ok := ap.FeederPaths()[fix]; ok {
				roles = append(roles, EntryRole{ApproachId: id, Runway: ap.Runway, Role: "Feeder", LeadsTo: dest})
			}
		}
	}
	return roles
}
