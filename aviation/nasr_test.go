// aviation/nasr_test.go
// Copyright(c) 2025 zoaref contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package aviation

import (
	"strings"
	"testing"
)

// nasrRecord builds a fixed-column NASR test record of the given width.
func nasrRecord(width int, fields ...any) string {
	b := []byte(strings.Repeat(" ", width))
	for i := 0; i < len(fields); i += 2 {
		copy(b[fields[i].(int):], fields[i+1].(string))
	}
	return string(b)
}

func TestParseNASRCoordinates(t *testing.T) {
	lat, ok := ParseNASRLatitude("37-43-33.240N")
	if !ok || !near(lat, 37.72590) {
		t.Errorf("latitude = %v, %v", lat, ok)
	}
	long, ok := ParseNASRLongitude("122-13-25.360W")
	if !ok || !near(long, -122.22371) {
		t.Errorf("longitude = %v, %v", long, ok)
	}
	lat, ok = ParseNASRLatitude("10-30-00S")
	if !ok || !near(lat, -10.5) {
		t.Errorf("south latitude = %v, %v", lat, ok)
	}
	if _, ok := ParseNASRLatitude("garbage"); ok {
		t.Error("garbage accepted")
	}
}

func nav1Record(id, typ, name, city, state, lat, long string) string {
	return nasrRecord(420,
		0, "NAV1",
		4, id,
		8, typ,
		42, name,
		72, city,
		142, state,
		371, lat,
		396, long,
	)
}

func TestParseNavaids(t *testing.T) {
	input := strings.Join([]string{
		nav1Record("FMG", "VORTAC", "MUSTANG", "RENO", "NV", "39-31-53.000N", "119-39-21.000W"),
		nav1Record("OAK", "VORTAC", "OAKLAND", "OAKLAND", "CA", "37-43-33.240N", "122-13-25.360W"),
		// no coordinates: skipped
		nav1Record("BAD", "VOR", "BROKEN", "NOWHERE", "XX", "", ""),
		"NAV2 remark line, ignored",
		"",
	}, "\n")

	navaids := ParseNavaids(strings.NewReader(input))
	if len(navaids) != 2 {
		t.Fatalf("got %d navaids", len(navaids))
	}

	fmg := navaids[0]
	if fmg.Id != "FMG" || fmg.Name != "MUSTANG" || fmg.Type != "VORTAC" ||
		fmg.City != "RENO" || fmg.State != "NV" {
		t.Errorf("got %+v", fmg)
	}
	if !near(fmg.Location.Latitude(), 39.53139) || !near(fmg.Location.Longitude(), -119.65583) {
		t.Errorf("FMG location %v", fmg.Location)
	}
}

func awy1Record(airway string, seq, mea, meaOpp, moca string) string {
	return nasrRecord(110,
		0, "AWY1",
		4, airway,
		10, seq,
		74, mea,
		85, meaOpp,
		101, moca,
	)
}

func awy2Record(airway, seq, lat, long, tail string) string {
	return nasrRecord(130,
		0, "AWY2"+airway,
		12, seq,
		20, lat,
		36, long,
		52, tail,
	)
}

func TestParseNASRAirways(t *testing.T) {
	input := strings.Join([]string{
		awy1Record("V25", "10", "06000", "06000", "04500"),
		awy1Record("V25", "20", "08000", "", ""),
		// no altitude data at all: skipped
		awy1Record("V25", "30", "", "", ""),
		awy2Record("V25", "20", "39-01-30.000N", "120-00-00.000W", "*HOMAN*"),
		awy2Record("V25", "10", "38-26-36.000N", "121-33-06.000W", "  SAC      V25"),
		"AWY3 some other record",
	}, "\n")

	awys := ParseNASRAirways(strings.NewReader(input))

	fixes := awys.Fixes["V25"]
	if len(fixes) != 2 {
		t.Fatalf("got %d fixes: %+v", len(fixes), fixes)
	}
	// Sequence-ordered: SAC (10) before HOMAN (20).
	if fixes[0].Fix != "SAC" || fixes[0].Sequence != 10 || !fixes[0].HasLoc {
		t.Errorf("got %+v", fixes[0])
	}
	if fixes[1].Fix != "HOMAN" || !near(fixes[1].Location.Latitude(), 39.025) {
		t.Errorf("got %+v", fixes[1])
	}

	restr := awys.Restrictions["V25"]
	if len(restr) != 2 {
		t.Fatalf("got %d restrictions: %+v", len(restr), restr)
	}
	if r := restr[10]; r.MEA != 6000 || r.MOCA != 4500 {
		t.Errorf("seq 10: %+v", r)
	}
	if r := restr[20]; r.MEA != 8000 || r.MEAOpposite != 0 {
		t.Errorf("seq 20: %+v", r)
	}
}
