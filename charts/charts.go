// charts/charts.go
// Copyright(c) 2025 zoaref contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package charts looks up FAA terminal procedure charts through the ZOA
// charts API and matches free-form queries like "OAK CNDEL5" against
// the published chart names.
package charts

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/zoartcc/zoaref/airac"
	"github.com/zoartcc/zoaref/fuzzy"
	"github.com/zoartcc/zoaref/log"
	"github.com/zoartcc/zoaref/util"
)

// DefaultAPIURL is the charts API endpoint; it returns the d-TPP chart
// index for one airport as JSON.
const DefaultAPIURL = "https://charts-api.oakartcc.org/v1/charts"

// ZOAAirports are the airports the reference site lists by default.
var ZOAAirports = []string{
	"SFO", "OAK", "SJC", "SMF", "RNO", "FAT", "MRY", "BAB", "APC",
	"CCR", "CIC", "HWD", "LVK", "MER", "MHR", "MOD", "NUQ", "PAO",
	"RDD", "RHV", "SAC", "SCK", "SNS", "SQL", "STS", "SUU", "TRK",
}

type ChartType int

const (
	ChartUnknown ChartType = iota
	ChartSID
	ChartSTAR
	ChartIAP
	ChartAPD
)

func (t ChartType) String() string {
	switch t {
	case ChartSID:
		return "SID"
	case ChartSTAR:
		return "STAR"
	case ChartIAP:
		return "IAP"
	case ChartAPD:
		return "APD"
	default:
		return "UNKNOWN"
	}
}

// ChartInfo is one chart from the API index.
type ChartInfo struct {
	ChartName string `json:"chart_name"`
	ChartCode string `json:"chart_code"`
	PDFPath   string `json:"pdf_path"`
	FAAIdent  string `json:"faa_ident"`
	ICAOIdent string `json:"icao_ident"`
}

// Type maps the d-TPP chart_code to a ChartType.
func (c ChartInfo) Type() ChartType {
	switch c.ChartCode {
	case "DP":
		return ChartSID
	case "STAR":
		return ChartSTAR
	case "IAP":
		return ChartIAP
	case "APD":
		return ChartAPD
	default:
		return ChartUnknown
	}
}

// IsContinuation reports whether the chart is a continuation page
// (", CONT.1" etc.) of another chart rather than a chart of its own.
func (c ChartInfo) IsContinuation() bool {
	return strings.Contains(c.ChartName, ", CONT.")
}

// ChartQuery is a parsed lookup like "OAK CNDEL5": the airport, the
// normalized chart name, and the chart type inferred from the name.
type ChartQuery struct {
	Airport   string
	ChartName string
	ChartType ChartType
}

var sidStarNameRe = regexp.MustCompile(`^([A-Z]+)(\d)$`)

var numberWords = map[string]string{
	"1": "ONE", "2": "TWO", "3": "THREE", "4": "FOUR", "5": "FIVE",
	"6": "SIX", "7": "SEVEN", "8": "EIGHT", "9": "NINE",
}

// NormalizeChartName spells out the trailing digit of a SID/STAR
// abbreviation the way charts are titled: CNDEL5 becomes CNDEL FIVE.
// Names that don't fit the pattern pass through unchanged.
func NormalizeChartName(name string) string {
	if m := sidStarNameRe.FindStringSubmatch(name); m != nil {
		if word, ok := numberWords[m[2]]; ok {
			return m[1] + " " + word
		}
	}
	return name
}

func inferChartType(name string) ChartType {
	for _, s := range []string{"ILS", "LOC", "VOR", "RNAV", "RNP", "GPS", "NDB", "RWY"} {
		if strings.Contains(name, s) {
			return ChartIAP
		}
	}
	if strings.Contains(name, "DIAGRAM") {
		return ChartAPD
	}
	if strings.Contains(name, "ARRIVAL") || strings.Contains(name, "ARR") {
		return ChartSTAR
	}
	if strings.Contains(name, "DEPARTURE") || strings.Contains(name, "DEP") {
		return ChartSID
	}
	return ChartUnknown
}

// ParseQuery splits "OAK CNDEL5" into a ChartQuery.
func ParseQuery(query string) (ChartQuery, error) {
	parts := strings.Fields(strings.ToUpper(strings.TrimSpace(query)))
	if len(parts) < 2 {
		return ChartQuery{}, fmt.Errorf("%q: expected \"AIRPORT CHART_NAME\"", query)
	}

	name := NormalizeChartName(strings.Join(parts[1:], " "))
	return ChartQuery{
		Airport:   parts[0],
		ChartName: name,
		ChartType: inferChartType(name),
	}, nil
}

// IsStarName reports whether a name looks like a SID/STAR abbreviation:
// letters followed by a single digit, e.g. SCOLA1 or EMZOH4.
func IsStarName(name string) bool {
	return sidStarNameRe.MatchString(strings.ToUpper(name))
}

///////////////////////////////////////////////////////////////////////////
// API client

// Client fetches chart indices and PDFs.
type Client struct {
	APIURL     string
	HTTPClient *http.Client
	lg         *log.Logger
}

func NewClient(lg *log.Logger) *Client {
	return &Client{
		APIURL:     DefaultAPIURL,
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
		lg:         lg,
	}
}

// FetchCharts returns the chart index for one airport. The API accepts
// either the FAA or ICAO identifier and keys its response by whichever
// codes it knows the airport under.
func (c *Client) FetchCharts(ctx context.Context, airport string) ([]ChartInfo, error) {
	u := c.APIURL + "?apt=" + url.QueryEscape(strings.ToUpper(airport))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "zoaref/1.0")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("charts API: %s: %s", u, resp.Status)
	}

	var index map[string][]ChartInfo
	if err := json.NewDecoder(resp.Body).Decode(&index); err != nil {
		return nil, fmt.Errorf("charts API: decode: %w", err)
	}

	var charts []ChartInfo
	for _, list := range index {
		charts = append(charts, list...)
	}
	c.lg.Debugf("charts API: %s: %d charts", airport, len(charts))
	return charts, nil
}

// FetchPDF downloads a chart PDF, caching it under charts/<cycle>/ so
// repeated lookups within an AIRAC cycle don't refetch.
func (c *Client) FetchPDF(ctx context.Context, pdfURL string) ([]byte, error) {
	cachePath := path.Join("charts", airac.ForCaching(pdfURL), path.Base(pdfURL))
	if b, err := util.CacheRetrieveBytes(cachePath); err == nil {
		return b, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pdfURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "zoaref/1.0")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%s: %s", pdfURL, resp.Status)
	}

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if err := util.CacheStoreBytes(cachePath, b); err != nil {
		c.lg.Warnf("%s: unable to cache chart: %v", cachePath, err)
	}
	return b, nil
}

///////////////////////////////////////////////////////////////////////////
// Matching

// ChartMatch is one scored candidate chart.
type ChartMatch struct {
	Chart ChartInfo
	Score float32
}

// typeMatchBonus nudges charts of the inferred type above same-named
// charts of other types, e.g. the IAP over the minimums page.
const typeMatchBonus = 0.15

var chartTokenRe = regexp.MustCompile(`[A-Z0-9]+`)

func chartTokens(s string) map[string]bool {
	set := make(map[string]bool)
	for _, t := range chartTokenRe.FindAllString(strings.ToUpper(s), -1) {
		set[t] = true
	}
	return set
}

// FindChartByName scores every chart against the query and picks the
// best one. Continuation pages are skipped; they are gathered afterwards
// with FindAllChartPages. The returned ok is false when nothing matched
// or the result is ambiguous; matches carries the scored candidates for
// display either way.
func FindChartByName(charts []ChartInfo, query ChartQuery) (ChartInfo, []ChartMatch, bool) {
	var matches []ChartMatch
	for _, chart := range charts {
		if chart.IsContinuation() {
			continue
		}
		score := fuzzy.Similarity(query.ChartName, chart.ChartName)
		if query.ChartType != ChartUnknown && chart.Type() == query.ChartType {
			score += typeMatchBonus
		}
		if score > fuzzy.MinScore {
			matches = append(matches, ChartMatch{Chart: chart, Score: score})
		}
	}
	if len(matches) == 0 {
		return ChartInfo{}, nil, false
	}

	sort.SliceStable(matches, func(i, j int) bool { return matches[i].Score > matches[j].Score })

	if matches[0].Score >= 1 {
		return matches[0].Chart, matches, true
	}

	// With a multi-token query, a candidate containing every query
	// token beats higher-scoring partial matches: "ILS 28R" should pick
	// the one chart naming both.
	queryTokens := chartTokens(query.ChartName)
	if len(queryTokens) > 1 {
		var full []ChartMatch
		for _, m := range matches {
			ct := chartTokens(m.Chart.ChartName)
			all := true
			for t := range queryTokens {
				if !ct[t] {
					all = false
					break
				}
			}
			if all {
				full = append(full, m)
			}
		}
		if len(full) == 1 {
			return full[0].Chart, matches, true
		}
		if len(full) > 1 {
			if full[0].Score-full[1].Score >= fuzzy.AmbiguityThreshold {
				return full[0].Chart, matches, true
			}
			return ChartInfo{}, full, false
		}
	}

	if len(matches) > 1 && matches[0].Score-matches[1].Score < fuzzy.AmbiguityThreshold {
		var close []ChartMatch
		for _, m := range matches {
			if m.Score >= matches[0].Score-fuzzy.AmbiguityThreshold {
				close = append(close, m)
			}
		}
		return ChartInfo{}, close, false
	}

	return matches[0].Chart, matches, true
}

// FindAllChartPages returns the chart and its continuation pages in
// page order.
func FindAllChartPages(charts []ChartInfo, base ChartInfo) []ChartInfo {
	baseName := base.ChartName
	if i := strings.Index(baseName, ", CONT."); i >= 0 {
		baseName = baseName[:i]
	}

	type page struct {
		n     int
		chart ChartInfo
	}
	var pages []page
	for _, chart := range charts {
		if chart.ChartName == baseName {
			pages = append(pages, page{0, chart})
		} else if rest, ok := strings.CutPrefix(chart.ChartName, baseName+", CONT."); ok {
			n, err := strconv.Atoi(rest)
			if err != nil {
				n = 999
			}
			pages = append(pages, page{n, chart})
		}
	}

	sort.SliceStable(pages, func(i, j int) bool { return pages[i].n < pages[j].n })

	result := make([]ChartInfo, len(pages))
	for i, p := range pages {
		result[i] = p.chart
	}
	return result
}

// LookupChart finds a chart for a query and returns the PDF URLs for
// all of its pages. On an ambiguous or failed match the URLs are nil
// and the matches show what came close.
func (c *Client) LookupChart(ctx context.Context, query ChartQuery) ([]string, ChartInfo, []ChartMatch, error) {
	charts, err := c.FetchCharts(ctx, query.Airport)
	if err != nil {
		return nil, ChartInfo{}, nil, err
	}
	if len(charts) == 0 {
		return nil, ChartInfo{}, nil, errors.New("no charts for " + query.Airport)
	}

	chart, matches, ok := FindChartByName(charts, query)
	if !ok {
		return nil, ChartInfo{}, matches, nil
	}

	urls := util.MapSlice(FindAllChartPages(charts, chart),
		func(c ChartInfo) string { return c.PDFPath })
	return urls, chart, matches, nil
}

// PDFName returns the filename component of a chart's PDF path.
func (c ChartInfo) PDFName() string {
	return path.Base(c.PDFPath)
}
