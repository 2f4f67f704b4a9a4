// charts/connect_test.go
// Copyright(c) 2025 zoaref contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package charts

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/zoartcc/zoaref/aviation"
	"github.com/zoartcc/zoaref/math"
)

// testDataStore has one STAR at Reno ending at ZONNY and one ILS whose
// IAF is ZONNY, fed from FMG.
func testDataStore() *aviation.DataStore {
	cifp := &aviation.CIFPData{
		Airports:          make(map[string]math.Point2LL),
		TerminalWaypoints: make(map[string]math.Point2LL),
		EnrouteWaypoints:  make(map[string]math.Point2LL),
		AirwayFixes:       make(map[string][]aviation.AirwayFix),
		SIDs:              make(map[string]map[string][]aviation.ProcedureLeg),
		STARs: map[string]map[string][]aviation.ProcedureLeg{
			"KRNO": {
				"SCOLA1": {
					{Airport: "KRNO", ProcedureId: "SCOLA1", Transition: "ALL", Fix: "SCOLA", Sequence: 10},
					{Airport: "KRNO", ProcedureId: "SCOLA1", Transition: "ALL", Fix: "ZONNY", Sequence: 20},
				},
			},
		},
		Approaches: map[string]map[string][]aviation.ProcedureLeg{
			"KRNO": {
				"I16R": {
					{Airport: "KRNO", ProcedureId: "I16R", Transition: "FMG", RouteType: 'A', Fix: "FMG", Sequence: 10},
					{Airport: "KRNO", ProcedureId: "I16R", Transition: "FMG", RouteType: 'A', Fix: "ZONNY", Role: aviation.RoleIAF, Sequence: 20},
					{Airport: "KRNO", ProcedureId: "I16R", Fix: "ZONNY", Role: aviation.RoleIAF, Sequence: 10},
					{Airport: "KRNO", ProcedureId: "I16R", Fix: "HOBOE", Role: aviation.RoleIF, Sequence: 20},
					{Airport: "KRNO", ProcedureId: "I16R", Fix: "DUCKK", Role: aviation.RoleFAF, Sequence: 30},
				},
			},
		},
	}
	return aviation.NewDataStoreFromData(nil, cifp, nil, nil)
}

func chartsServer(t *testing.T) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"RNO": [
			{"chart_name": "SCOLA ONE", "chart_code": "STAR", "pdf_path": "https://aeronav.faa.gov/d-tpp/2508/00346SCOLA.PDF"},
			{"chart_name": "ILS RWY 16R", "chart_code": "IAP", "pdf_path": "https://aeronav.faa.gov/d-tpp/2508/00346I16R.PDF"},
			{"chart_name": "AIRPORT DIAGRAM", "chart_code": "APD", "pdf_path": "https://aeronav.faa.gov/d-tpp/2508/00346AD.PDF"}
		]}`))
	}))
}

func TestFindStarChart(t *testing.T) {
	charts := []ChartInfo{
		{ChartName: "SCOLA ONE", ChartCode: "STAR"},
		{ChartName: "EMZOH FOUR", ChartCode: "STAR"},
		{ChartName: "ILS RWY 16R", ChartCode: "IAP"},
	}

	chart, ok := FindStarChart(charts, "SCOLA1")
	if !ok || chart.ChartName != "SCOLA ONE" {
		t.Errorf("got %q ok=%v", chart.ChartName, ok)
	}

	chart, ok = FindStarChart(charts, "EMZOH FOUR")
	if !ok || chart.ChartName != "EMZOH FOUR" {
		t.Errorf("got %q ok=%v", chart.ChartName, ok)
	}

	if _, ok := FindStarChart(charts[2:], "SCOLA1"); ok {
		t.Error("expected no STAR chart")
	}
}

func TestFindConnectedApproaches(t *testing.T) {
	srv := chartsServer(t)
	defer srv.Close()

	c := NewClient(nil)
	c.APIURL = srv.URL
	ds := testDataStore()

	star, conns, ok := c.FindConnectedApproaches(context.Background(), ds, "RNO", "SCOLA1")
	if !ok {
		t.Fatal("lookup failed")
	}
	if star.Name != "SCOLA1" {
		t.Errorf("star name %q", star.Name)
	}
	if len(conns) != 1 {
		t.Fatalf("got %d connections: %+v", len(conns), conns)
	}
	conn := conns[0]
	if conn.ConnectingFix != "ZONNY" || conn.FixType != aviation.RoleIAF ||
		conn.ApproachName != "ILS RWY 16R" || conn.Runway != "16R" {
		t.Errorf("got %+v", conn)
	}
}

func TestFindApproachesByFix(t *testing.T) {
	srv := chartsServer(t)
	defer srv.Close()

	c := NewClient(nil)
	c.APIURL = srv.URL
	ds := testDataStore()

	for _, tc := range []struct {
		fix     string
		role    string
		leadsTo string
	}{
		{"ZONNY", "IAF", ""},
		{"hoboe", "IF", ""},
		{"FMG", "Feeder", "ZONNY"},
	} {
		result, ok := c.FindApproachesByFix(context.Background(), ds, "RNO", tc.fix)
		if !ok || len(result) != 1 {
			t.Fatalf("%s: got ok=%v result=%+v", tc.fix, ok, result)
		}
		if result[0].Role != tc.role || result[0].LeadsTo != tc.leadsTo {
			t.Errorf("%s: got %+v", tc.fix, result[0])
		}
	}

	// DUCKK is a FAF, not an entry fix.
	result, ok := c.FindApproachesByFix(context.Background(), ds, "RNO", "DUCKK")
	if !ok || len(result) != 0 {
		t.Errorf("DUCKK: got ok=%v result=%+v", ok, result)
	}
}
