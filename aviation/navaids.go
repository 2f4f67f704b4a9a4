// aviation/navaids.go
// Copyright(c) 2025 zoaref contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package aviation

import (
	"regexp"
	"slices"
	"strings"

	"github.com/zoartcc/zoaref/math"
)

func (ds *DataStore) sortByHomeDistance(navaids []Navaid) {
	slices.SortFunc(navaids, func(a, b Navaid) int {
		da := math.NMDistance2LL(ds.home, a.Location)
		db := math.NMDistance2LL(ds.home, b.Location)
		if da < db {
			return -1
		} else if da > db {
			return 1
		}
		return 0
	})
}

func (ds *DataStore) closest(navaids []Navaid) (Navaid, bool) {
	if len(navaids) == 0 {
		return Navaid{}, false
	}
	if len(navaids) == 1 {
		return navaids[0], true
	}
	sorted := slices.Clone(navaids)
	ds.sortByHomeDistance(sorted)
	return sorted[0], true
}

// NavaidByIdent looks up a navaid by identifier. With duplicates, the
// one closest to home wins.
func (ds *DataStore) NavaidByIdent(ident string) (Navaid, bool) {
	if !ds.navaidData() {
		return Navaid{}, false
	}
	return ds.closest(ds.byIdent[strings.ToUpper(strings.TrimSpace(ident))])
}

// NavaidName returns the name for a navaid identifier ("FMG" gives
// "MUSTANG").
func (ds *DataStore) NavaidName(ident string) (string, bool) {
	n, ok := ds.NavaidByIdent(ident)
	return n.Name, ok
}

// NavaidIdent returns the identifier for a navaid name ("MUSTANG" gives
// "FMG"); with duplicates, the closest to home wins.
func (ds *DataStore) NavaidIdent(name string) (string, bool) {
	if !ds.navaidData() {
		return "", false
	}
	n, ok := ds.closest(ds.byName[strings.ToUpper(strings.TrimSpace(name))])
	return n.Id, ok
}

// NavaidIdentsByName returns every identifier carrying the given name;
// "CONCORD" exists as both CCR and CON.
func (ds *DataStore) NavaidIdentsByName(name string) []string {
	if !ds.navaidData() {
		return nil
	}
	var ids []string
	for _, n := range ds.byName[strings.ToUpper(strings.TrimSpace(name))] {
		ids = append(ids, n.Id)
	}
	return ids
}

// SearchNavaids finds navaids by identifier or name: exact identifier
// matches first, then exact name matches, then substring matches on
// either. Multiple results sort by distance from home.
func (ds *DataStore) SearchNavaids(query string) []Navaid {
	if !ds.navaidData() {
		return nil
	}
	q := strings.ToUpper(strings.TrimSpace(query))

	if navaids, ok := ds.byIdent[q]; ok {
		results := slices.Clone(navaids)
		ds.sortByHomeDistance(results)
		return results
	}
	if navaids, ok := ds.byName[q]; ok {
		results := slices.Clone(navaids)
		ds.sortByHomeDistance(results)
		return results
	}

	var partial []Navaid
	for _, n := range ds.navaids {
		if strings.Contains(n.Name, q) || strings.Contains(n.Id, q) {
			partial = append(partial, n)
		}
	}
	ds.sortByHomeDistance(partial)
	return partial
}

var identDigitRe = regexp.MustCompile(`^([A-Z]+)(\d)$`)

// ResolveNavaidAlias rewrites navaid identifiers in a procedure name to
// the navaid's spoken name, which is what chart databases use: "FMG1"
// becomes "MUSTANG1" and "FMG FIVE" becomes "MUSTANG FIVE". Names that
// don't reference a navaid come back unchanged.
func (ds *DataStore) ResolveNavaidAlias(name string) string {
	if m := identDigitRe.FindStringSubmatch(name); m != nil {
		if navName, ok := ds.NavaidName(m[1]); ok {
			return navName + m[2]
		}
	}

	if parts := strings.Fields(name); len(parts) >= 2 {
		if navName, ok := ds.NavaidName(parts[0]); ok {
			return navName + " " + strings.Join(parts[1:], " ")
		}
	}

	if navName, ok := ds.NavaidName(name); ok {
		return navName
	}
	return name
}
