// aviation/download.go
// Copyright(c) 2025 zoaref contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package aviation

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/zoartcc/zoaref/airac"
	"github.com/zoartcc/zoaref/log"
	"github.com/zoartcc/zoaref/util"
)

const (
	DefaultCIFPBaseURL = "https://aeronav.faa.gov/Upload_313-d/cifp/"
	DefaultNASRBaseURL = "https://nfdc.faa.gov/webContent/28DaySub/"

	cifpTimeout = 60 * time.Second
	nasrTimeout = 120 * time.Second
)

// Downloader fetches FAA data files and caches them per AIRAC cycle. The
// zero value isn't usable; call NewDownloader.
type Downloader struct {
	Client      *http.Client
	CIFPBaseURL string
	NASRBaseURL string
	lg          *log.Logger
}

func NewDownloader(lg *log.Logger) *Downloader {
	return &Downloader{
		Client:      &http.Client{Timeout: nasrTimeout},
		CIFPBaseURL: DefaultCIFPBaseURL,
		NASRBaseURL: DefaultNASRBaseURL,
		lg:          lg,
	}
}

func cifpCacheName(cycle airac.Cycle) string {
	return "cifp/FAACIFP18-" + cycle.ID
}

func nasrCacheName(stem string, cycle airac.Cycle) string {
	return fmt.Sprintf("nasr/NASR-%s-%s", stem, cycle.ID)
}

func (d *Downloader) fetch(ctx context.Context, url string, timeout time.Duration) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "zoaref/1.0")

	resp, err := d.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%s: %s", url, resp.Status)
	}
	return io.ReadAll(resp.Body)
}

// zipMember returns the contents of the first zip member whose name
// passes the match function.
func zipMember(data []byte, match func(string) bool) ([]byte, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, err
	}
	for _, f := range zr.File {
		if !match(f.Name) {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, err
		}
		defer rc.Close()
		return io.ReadAll(rc)
	}
	return nil, fmt.Errorf("no matching file in zip archive")
}

// EnsureCIFP downloads and caches the CIFP file for the given cycle if
// it isn't cached already, returning the absolute path of the cached
// file. CIFP zips are named by the cycle's effective date, e.g.
// CIFP_251127.zip.
func (d *Downloader) EnsureCIFP(ctx context.Context, cycle airac.Cycle) (string, error) {
	name := cifpCacheName(cycle)
	if util.CacheEntryExists(name) {
		return util.CachePath(name)
	}

	url := d.CIFPBaseURL + "CIFP_" + cycle.Start.Format("060102") + ".zip"
	d.lg.Infof("downloading CIFP from %s", url)

	data, err := d.fetch(ctx, url, cifpTimeout)
	if err != nil {
		return "", err
	}

	contents, err := zipMember(data, func(n string) bool { return strings.HasPrefix(n, "FAACIFP") })
	if err != nil {
		return "", err
	}

	if err := util.CacheStoreBytes(name, contents); err != nil {
		return "", err
	}
	d.lg.Infof("CIFP for cycle %s cached (%d bytes)", cycle.ID, len(contents))
	return util.CachePath(name)
}

// EnsureNASR downloads and caches the named NASR files ("NAV", "AWY",
// ...) for the given cycle, returning stem -> absolute path. The files
// are fetched concurrently. NASR zips live under a directory named by
// the cycle's effective date, e.g. 2025-11-27/AWY.zip.
func (d *Downloader) EnsureNASR(ctx context.Context, cycle airac.Cycle, stems []string) (map[string]string, error) {
	paths := make(map[string]string, len(stems))

	var missing []string
	for _, stem := range stems {
		name := nasrCacheName(stem, cycle)
		if util.CacheEntryExists(name) {
			p, err := util.CachePath(name)
			if err != nil {
				return nil, err
			}
			paths[stem] = p
		} else {
			missing = append(missing, stem)
		}
	}
	if len(missing) == 0 {
		return paths, nil
	}

	dateDir := cycle.Start.Format("2006-01-02")

	g, ctx := errgroup.WithContext(ctx)
	results := make([]string, len(missing))
	for i, stem := range missing {
		i, stem := i, stem
		g.Go(func() error {
			url := d.NASRBaseURL + dateDir + "/" + stem + ".zip"
			d.lg.Infof("downloading NASR %s from %s", stem, url)

			data, err := d.fetch(ctx, url, nasrTimeout)
			if err != nil {
				return err
			}

			txt := stem + ".txt"
			contents, err := zipMember(data, func(n string) bool {
				return n == txt || strings.HasSuffix(n, "/"+txt) || strings.HasSuffix(n, txt)
			})
			if err != nil {
				return fmt.Errorf("NASR %s: %w", stem, err)
			}

			name := nasrCacheName(stem, cycle)
			if err := util.CacheStoreBytes(name, contents); err != nil {
				return err
			}
			p, err := util.CachePath(name)
			if err != nil {
				return err
			}
			results[i] = p
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for i, stem := range missing {
		paths[stem] = results[i]
	}
	return paths, nil
}
