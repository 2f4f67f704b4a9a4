// aviation/datastore_test.go
// Copyright(c) 2025 zoaref contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package aviation

import (
	"net/http"
	"net/http/httptest"
	"os"
	"slices"
	"strings"
	"testing"

	"github.com/zoartcc/zoaref/util"
)

func TestDataStoreParsedCIFP(t *testing.T) {
	util.SetCacheRoot(t.TempDir())
	defer util.SetCacheRoot("")

	cycle := testCycle(t)
	cifp := strings.Join([]string{
		starRecord("KRNO", "SCOLA1", "ALL", 10, "SCOLA"),
		starRecord("KRNO", "SCOLA1", "ALL", 20, "ZONNY"),
	}, "\n")

	requests := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		w.Write(zipWith(t, "FAACIFP18", []byte(cifp)))
	}))
	defer srv.Close()

	dl := NewDownloader(nil)
	dl.CIFPBaseURL = srv.URL + "/"

	ds := NewDataStore(nil, dl, cycle)
	if _, ok := ds.GetSTAR("KRNO", "SCOLA1"); !ok {
		t.Fatal("SCOLA1 not found on first load")
	}
	if requests != 1 {
		t.Fatalf("%d requests, expected 1", requests)
	}
	if !util.CacheEntryExists("cifp/parsed-" + cycle.ID) {
		t.Error("parsed CIFP was not cached")
	}

	// Remove the raw file and stop the server; the parsed object alone
	// must satisfy a fresh DataStore.
	raw, err := util.CachePath(cifpCacheName(cycle))
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Remove(raw); err != nil {
		t.Fatal(err)
	}
	srv.Close()

	ds2 := NewDataStore(nil, dl, cycle)
	star, ok := ds2.GetSTAR("KRNO", "SCOLA1")
	if !ok {
		t.Fatal("SCOLA1 not found on second load")
	}
	if want := []string{"SCOLA", "ZONNY"}; !slices.Equal(star.Waypoints, want) {
		t.Errorf("waypoints %v, want %v", star.Waypoints, want)
	}
	if requests != 1 {
		t.Errorf("%d requests, expected the parsed cache to serve the second load", requests)
	}
}

func TestDataStoreParsedNASR(t *testing.T) {
	util.SetCacheRoot(t.TempDir())
	defer util.SetCacheRoot("")

	cycle := testCycle(t)

	navaids := []Navaid{{Id: "FMG", Name: "MUSTANG", Type: "VORTAC"}}
	if err := util.CacheStoreObject("nasr/parsed-NAV-"+cycle.ID, navaids); err != nil {
		t.Fatal(err)
	}
	awys := &NASRAirways{
		Fixes: map[string][]AirwayFix{
			"V25": {{Fix: "SAC", Sequence: 10}, {Fix: "HOMAN", Sequence: 20}},
		},
		Restrictions: map[string]map[int]AirwayRestriction{
			"V25": {20: {Airway: "V25", Sequence: 20, MEA: 6000}},
		},
	}
	if err := util.CacheStoreObject("nasr/parsed-AWY-"+cycle.ID, awys); err != nil {
		t.Fatal(err)
	}

	// A downloader whose server is already gone; any fetch attempt fails.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()
	dl := NewDownloader(nil)
	dl.NASRBaseURL = srv.URL + "/"

	ds := NewDataStore(nil, dl, cycle)
	if n, ok := ds.NavaidByIdent("FMG"); !ok || n.Name != "MUSTANG" {
		t.Errorf("got %+v, %v", n, ok)
	}
	result := ds.AnalyzeRouteMEA("SAC V25 HOMAN", 0)
	if result.MaxMEA != 6000 || len(result.Segments) != 1 {
		t.Errorf("got %+v", result)
	}
}
