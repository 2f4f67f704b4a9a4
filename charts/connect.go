// charts/connect.go
// Copyright(c) 2025 zoaref contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package charts

import (
	"context"
	"slices"
	"sort"
	"strings"

	"github.com/zoartcc/zoaref/aviation"
	"github.com/zoartcc/zoaref/util"
)

// ApproachConnection is a direct handoff from a STAR to an approach: a
// waypoint the STAR ends at that the approach accepts as an entry fix.
// Aircraft over the fix can join the approach without radar vectors.
type ApproachConnection struct {
	StarName      string
	ApproachName  string
	ConnectingFix string
	FixType       aviation.FixRole
	Runway        string
}

// StarAnalysis is the assembled view of a STAR used for connection
// lookups.
type StarAnalysis struct {
	Name      string
	Waypoints []string
}

// FindStarChart picks the STAR chart matching a name like "SCOLA1" or
// "CCR TWO" from an airport's chart index.
func FindStarChart(charts []ChartInfo, starName string) (ChartInfo, bool) {
	stars := util.FilterSlice(charts, func(c ChartInfo) bool {
		return c.Type() == ChartSTAR && !c.IsContinuation()
	})
	if len(stars) == 0 {
		return ChartInfo{}, false
	}

	query := ChartQuery{
		ChartName: NormalizeChartName(starName),
		ChartType: ChartSTAR,
	}
	chart, _, ok := FindChartByName(stars, query)
	return chart, ok
}

// FindConnectedApproaches finds the approaches an aircraft on a STAR
// can join without vectors. The STAR chart name resolves the user's
// abbreviation (CCR2 matches the CONCORD TWO chart); the procedure data
// itself comes from the CIFP.
func (c *Client) FindConnectedApproaches(ctx context.Context, ds *aviation.DataStore, airport, starName string) (StarAnalysis, []ApproachConnection, bool) {
	charts, err := c.FetchCharts(ctx, airport)
	if err != nil || len(charts) == 0 {
		c.lg.Warnf("%s: no charts: %v", airport, err)
		return StarAnalysis{}, nil, false
	}

	starChart, ok := FindStarChart(charts, starName)
	if !ok {
		return StarAnalysis{}, nil, false
	}

	star, ok := ds.GetSTAR(airport, starChart.ChartName)
	if !ok {
		return StarAnalysis{}, nil, false
	}
	analysis := StarAnalysis{Name: star.Identifier, Waypoints: star.Waypoints}

	onStar := make(map[string]bool)
	for _, wp := range star.Waypoints {
		onStar[wp] = true
	}

	var connections []ApproachConnection
	for _, chart := range charts {
		if chart.Type() != ChartIAP || chart.IsContinuation() {
			continue
		}
		ap, ok := ds.MatchApproach(airport, chart.ChartName)
		if !ok {
			continue
		}

		iafs := make(map[string]bool)
		for _, fix := range ap.IAFs() {
			iafs[fix] = true
			if onStar[fix] {
				connections = append(connections, ApproachConnection{
					StarName:      analysis.Name,
					ApproachName:  chart.ChartName,
					ConnectingFix: fix,
					FixType:       aviation.RoleIAF,
					Runway:        ap.Runway,
				})
			}
		}
		for _, fix := range ap.IFs() {
			if onStar[fix] && !iafs[fix] {
				connections = append(connections, ApproachConnection{
					StarName:      analysis.Name,
					ApproachName:  chart.ChartName,
					ConnectingFix: fix,
					FixType:       aviation.RoleIF,
					Runway:        ap.Runway,
				})
			}
		}
	}

	sort.SliceStable(connections, func(i, j int) bool {
		if connections[i].Runway != connections[j].Runway {
			return connections[i].Runway < connections[j].Runway
		}
		return connections[i].ApproachName < connections[j].ApproachName
	})

	return analysis, connections, true
}

// FixApproach is one approach reachable from a fix, with the role the
// fix plays on it. For a feeder, LeadsTo names the IAF or IF the
// transition delivers the aircraft to.
type FixApproach struct {
	ApproachName string
	Role         string
	LeadsTo      string
}

// FindApproachesByFix lists the approaches at an airport that accept a
// given fix as an entry point, whether as IAF, IF, or feeder.
func (c *Client) FindApproachesByFix(ctx context.Context, ds *aviation.DataStore, airport, fix string) ([]FixApproach, bool) {
	charts, err := c.FetchCharts(ctx, airport)
	if err != nil || len(charts) == 0 {
		c.lg.Warnf("%s: no charts: %v", airport, err)
		return nil, false
	}

	fix = strings.ToUpper(fix)

	var result []FixApproach
	for _, chart := range charts {
		if chart.Type() != ChartIAP || chart.IsContinuation() {
			continue
		}
		ap, ok := ds.MatchApproach(airport, chart.ChartName)
		if !ok {
			continue
		}

		switch {
		case slices.Contains(ap.IAFs(), fix):
			result = append(result, FixApproach{ApproachName: chart.ChartName, Role: "IAF"})
		case slices.Contains(ap.IFs(), fix):
			result = append(result, FixApproach{ApproachName: chart.ChartName, Role: "IF"})
		case slices.Contains(ap.FeederFixes(), fix):
			result = append(result, FixApproach{
				ApproachName: chart.ChartName,
				Role:         "Feeder",
				LeadsTo:      ap.FeederPaths()[fix],
			})
		}
	}

	sort.SliceStable(result, func(i, j int) bool { return result[i].ApproachName < result[j].ApproachName })
	return result, true
}
