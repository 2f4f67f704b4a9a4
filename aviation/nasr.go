// aviation/nasr.go
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

// NASR fixed-width record minimums; NAV1 records are nominally 805
// characters, AWY records a few hundred.
const (
	nav1MinLength = 420
	awy1MinLength = 110
	awy2MinLength = 120
)

var nasrLatitudeRe = regexp.MustCompile(`(\d{2})-(\d{2})-(\d{2}\.?\d*)([NS])`)
var nasrLongitudeRe = regexp.MustCompile(`(\d{2,3})-(\d{2})-(\d{2}\.?\d*)([EW])`)

// ParseNASRLatitude decodes the dash-delimited NASR coordinate format,
// e.g. "37-43-33.240N".
func ParseNASRLatitude(s string) (float32, bool) {
	return parseDashed(nasrLatitudeRe, s, 'S')
}

// ParseNASRLongitude decodes e.g. "122-13-25.360W".
func ParseNASRLongitude(s string) (float32, bool) {
	return parseDashed(nasrLongitudeRe, s, 'W')
}

func parseDashed(re *regexp.Regexp, s string, negative byte) (float32, bool) {
	m := re.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return 0, false
	}
	deg, err0 := strconv.Atoi(m[1])
	min, err1 := strconv.Atoi(m[2])
	sec, err2 := strconv.ParseFloat(m[3], 32)
	if err0 != nil || err1 != nil || err2 != nil {
		return 0, false
	}
	v := float32(deg) + float32(min)/60 + float32(sec)/3600
	if m[4][0] == negative {
		v = -v
	}
	return v, true
}

var spacesRe = regexp.MustCompile(`\s+`)

// decodeNav1 decodes a NAV1 record from the NASR NAV file.
func decodeNav1(line string) (Navaid, bool) {
	if len(line) < nav1MinLength || line[0:4] != "NAV1" {
		return Navaid{}, false
	}

	n := Navaid{
		Id:    strings.TrimSpace(line[4:8]),
		Type:  spacesRe.ReplaceAllString(strings.TrimSpace(line[8:28]), " "),
		Name:  strings.TrimSpace(line[42:72]),
		City:  strings.TrimSpace(line[72:112]),
		State: strings.TrimSpace(line[142:144]),
	}
	if n.Type == "" {
		n.Type = "UNKNOWN"
	}

	lat, ok0 := ParseNASRLatitude(line[371:385])
	long, ok1 := ParseNASRLongitude(line[396:410])
	if n.Id == "" || !ok0 || !ok1 {
		return Navaid{}, false
	}
	n.Location = math.Point2LL{long, lat}

	return n, true
}

// ParseNavaids decodes all NAV1 records from a NASR NAV file.
func ParseNavaids(r io.Reader) []Navaid {
	var navaids []Navaid
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 1024), 8192)
	for sc.Scan() {
		if n, ok := decodeNav1(sc.Text()); ok {
			navaids = append(navaids, n)
		}
	}
	return navaids
}

// decodeAwy1 decodes an AWY1 record: per-segment MEA/MOCA restrictions.
// Records carrying no altitude data at all are skipped.
func decodeAwy1(line string) (AirwayRestriction, bool) {
	if len(line) < awy1MinLength || line[0:4] != "AWY1" {
		return AirwayRestriction{}, false
	}

	r := AirwayRestriction{Airway: strings.TrimSpace(line[4:9])}
	if r.Airway == "" {
		return AirwayRestriction{}, false
	}

	seq, err := strconv.Atoi(strings.TrimSpace(line[10:15]))
	if err != nil {
		return AirwayRestriction{}, false
	}
	r.Sequence = seq

	digits := func(lo, hi int) int {
		s := strings.TrimSpace(line[lo:hi])
		if v, err := strconv.Atoi(s); err == nil && v > 0 {
			return v
		}
		return 0
	}
	r.MEA = digits(74, 79)
	r.MEAOpposite = digits(85, 90)
	r.MOCA = digits(101, 106)

	if r.MEA == 0 && r.MEAOpposite == 0 && r.MOCA == 0 {
		return AirwayRestriction{}, false
	}
	return r, true
}

var awy2HeaderRe = regexp.MustCompile(`^AWY2([A-Z][A-Z0-9]*)\s*(\d+)`)
var awy2StarFixRe = regexp.MustCompile(`\*([A-Z]{2,5})\*`)

// decodeAwy2 decodes an AWY2 record: a fix along an airway with its
// coordinates. The fix identifier appears either between asterisks or,
// for navaids, as a bare identifier followed by the airway designator.
func decodeAwy2(line string) (string, AirwayFix, bool) {
	if len(line) < awy2MinLength || line[0:4] != "AWY2" {
		return "", AirwayFix{}, false
	}

	hdr := awy2HeaderRe.FindStringSubmatch(line)
	if hdr == nil {
		return "", AirwayFix{}, false
	}
	airway := hdr[1]
	seq, err := strconv.Atoi(hdr[2])
	if err != nil {
		return "", AirwayFix{}, false
	}

	latLoc := nasrLatitudeRe.FindStringIndex(line)
	lonLoc := nasrLongitudeRe.FindStringIndex(line)
	if latLoc == nil || lonLoc == nil {
		return "", AirwayFix{}, false
	}
	lat, _ := ParseNASRLatitude(line[latLoc[0]:latLoc[1]])
	long, _ := ParseNASRLongitude(line[lonLoc[0]:lonLoc[1]])

	rest := line[lonLoc[1]:]
	var fix string
	if m := awy2StarFixRe.FindStringSubmatch(rest); m != nil {
		fix = m[1]
	} else {
		navaidRe := regexp.MustCompile(`\s+([A-Z]{2,5})\s+` + regexp.QuoteMeta(airway))
		if m := navaidRe.FindStringSubmatch(rest); m != nil {
			fix = m[1]
		}
	}
	if fix == "" {
		return "", AirwayFix{}, false
	}

	return airway, AirwayFix{
		Fix:      fix,
		Sequence: seq,
		Location: math.Point2LL{long, lat},
		HasLoc:   true,
	}, true
}

// NASRAirways holds everything extracted from a NASR AWY file.
type NASRAirways struct {
	// Fixes along each airway, sequence-ordered.
	Fixes map[string][]AirwayFix
	// Altitude restrictions keyed airway -> sequence.
	Restrictions map[string]map[int]AirwayRestriction
}

// ParseNASRAirways decodes AWY1 and AWY2 records from a NASR AWY file.
func ParseNASRAirways(r io.Reader) *NASRAirways {
	out := &NASRAirways{
		Fixes:        make(map[string][]AirwayFix),
		Restrictions: make(map[string]map[int]AirwayRestriction),
	}

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 1024), 8192)
	for sc.Scan() {
		line := sc.Text()
		if restr, ok := decodeAwy1(line); ok {
			byseq, ok := out.Restrictions[restr.Airway]
			if !ok {
				byseq = make(map[int]AirwayRestriction)
				out.Restrictions[restr.Airway] = byseq
			}
			byseq[restr.Sequence] = restr
			continue
		}
		if airway, fix, ok := decodeAwy2(line); ok {
			out.Fixes[airway] = append(out.Fixes[airway], fix)
		}
	}

	for id := range out.Fixes {
		sortAirwayFixes(out.Fixes[id])
	}
	return out
}
