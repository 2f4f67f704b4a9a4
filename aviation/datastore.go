// aviation/datastore.go
// Copyright(c) 2025 zoaref contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package aviation

import (
	"context"
	"os"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/zoartcc/zoaref/airac"
	"github.com/zoartcc/zoaref/log"
	"github.com/zoartcc/zoaref/math"
	"github.com/zoartcc/zoaref/util"
)

// OAKVOR is the Oakland VORTAC; when an identifier or name is shared by
// multiple facilities nationwide, we prefer the one closest to home.
var OAKVOR = math.Point2LL{-122.2236, 37.7259}

// DataStore lazily loads CIFP and NASR data for one AIRAC cycle and
// answers lookups against it. Loads happen at most once per source file;
// a failed load stays failed and lookups report ok == false. Safe for
// concurrent use.
type DataStore struct {
	lg    *log.Logger
	dl    *Downloader
	cycle airac.Cycle
	home  math.Point2LL

	cifpOnce sync.Once
	cifp     *CIFPData

	navOnce sync.Once
	navaids []Navaid
	byIdent map[string][]Navaid
	byName  map[string][]Navaid

	awyOnce     sync.Once
	nasrAirways *NASRAirways

	arrivals ArrivalSource

	resolved *expirable.LRU[string, Waypoint]
}

func NewDataStore(lg *log.Logger, dl *Downloader, cycle airac.Cycle) *DataStore {
	return &DataStore{
		lg:       lg,
		dl:       dl,
		cycle:    cycle,
		home:     OAKVOR,
		resolved: expirable.NewLRU[string, Waypoint](512, nil, 4*time.Hour),
	}
}

// NewDataStoreFromData builds a DataStore over already-parsed data; no
// downloads happen. Any of the data arguments may be nil.
func NewDataStoreFromData(lg *log.Logger, cifp *CIFPData, navaids []Navaid, airways *NASRAirways) *DataStore {
	ds := NewDataStore(lg, nil, airac.Current())
	ds.cifp = cifp
	ds.nasrAirways = airways
	if navaids != nil {
		ds.setNavaids(navaids)
	}
	return ds
}

func (ds *DataStore) Cycle() airac.Cycle { return ds.cycle }

// SetHome overrides the home point used to disambiguate duplicate navaid
// identifiers and names.
func (ds *DataStore) SetHome(p math.Point2LL) { ds.home = p }

// SetArrivalSource installs an external provider of STAR definitions,
// preferred over local CIFP parsing when it has the procedure.
func (ds *DataStore) SetArrivalSource(src ArrivalSource) { ds.arrivals = src }

// Parsed data is persisted per cycle so later runs skip the fixed-column
// decode entirely; the raw source files stay cached alongside. The cycle
// id ends the entry name so retention can key on it.
func parsedCacheName(kind string, cycle airac.Cycle) string {
	return kind + "-" + cycle.ID
}

func (ds *DataStore) cifpData() (*CIFPData, bool) {
	ds.cifpOnce.Do(func() {
		if ds.cifp != nil || ds.dl == nil {
			return
		}

		name := parsedCacheName("cifp/parsed", ds.cycle)
		var cached CIFPData
		if _, err := util.CacheRetrieveObject(name, &cached); err == nil {
			ds.cifp = &cached
			return
		}

		path, err := ds.dl.EnsureCIFP(context.Background(), ds.cycle)
		if err != nil {
			ds.lg.Errorf("CIFP unavailable: %v", err)
			return
		}
		f, err := os.Open(path)
		if err != nil {
			ds.lg.Errorf("%s: %v", path, err)
			return
		}
		defer f.Close()

		start := time.Now()
		ds.cifp = ParseCIFP(f)
		ds.lg.Infof("parsed CIFP for cycle %s in %v", ds.cycle.ID, time.Since(start))

		if err := util.CacheStoreObject(name, ds.cifp); err != nil {
			ds.lg.Warnf("%s: %v", name, err)
		}
	})
	return ds.cifp, ds.cifp != nil
}

func (ds *DataStore) setNavaids(navaids []Navaid) {
	ds.navaids = navaids
	ds.byIdent = make(map[string][]Navaid)
	ds.byName = make(map[string][]Navaid)
	for _, n := range navaids {
		ds.byIdent[n.Id] = append(ds.byIdent[n.Id], n)
		ds.byName[n.Name] = append(ds.byName[n.Name], n)
	}
}

func (ds *DataStore) navaidData() bool {
	ds.navOnce.Do(func() {
		if ds.navaids != nil || ds.dl == nil {
			return
		}

		name := parsedCacheName("nasr/parsed-NAV", ds.cycle)
		var cached []Navaid
		if _, err := util.CacheRetrieveObject(name, &cached); err == nil && len(cached) > 0 {
			ds.setNavaids(cached)
			return
		}

		paths, err := ds.dl.EnsureNASR(context.Background(), ds.cycle, []string{"NAV"})
		if err != nil {
			ds.lg.Errorf("NASR NAV unavailable: %v", err)
			return
		}
		f, err := os.Open(paths["NAV"])
		if err != nil {
			ds.lg.Errorf("%s: %v", paths["NAV"], err)
			return
		}
		defer f.Close()

		ds.setNavaids(ParseNavaids(f))
		ds.lg.Infof("loaded %d navaids for cycle %s", len(ds.navaids), ds.cycle.ID)

		if err := util.CacheStoreObject(name, ds.navaids); err != nil {
			ds.lg.Warnf("%s: %v", name, err)
		}
	})
	return ds.navaids != nil
}

func (ds *DataStore) nasrAirwayData() (*NASRAirways, bool) {
	ds.awyOnce.Do(func() {
		if ds.nasrAirways != nil || ds.dl == nil {
			return
		}

		name := parsedCacheName("nasr/parsed-AWY", ds.cycle)
		var cached NASRAirways
		if _, err := util.CacheRetrieveObject(name, &cached); err == nil && len(cached.Fixes) > 0 {
			ds.nasrAirways = &cached
			return
		}

		paths, err := ds.dl.EnsureNASR(context.Background(), ds.cycle, []string{"AWY"})
		if err != nil {
			ds.lg.Errorf("NASR AWY unavailable: %v", err)
			return
		}
		f, err := os.Open(paths["AWY"])
		if err != nil {
			ds.lg.Errorf("%s: %v", paths["AWY"], err)
			return
		}
		defer f.Close()

		ds.nasrAirways = ParseNASRAirways(f)
		ds.lg.Infof("loaded %d NASR airways for cycle %s", len(ds.nasrAirways.Fixes), ds.cycle.ID)

		if err := util.CacheStoreObject(name, ds.nasrAirways); err != nil {
			ds.lg.Warnf("%s: %v", name, err)
		}
	})
	return ds.nasrAirways, ds.nasrAirways != nil
}
