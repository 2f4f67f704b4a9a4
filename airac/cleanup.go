// airac/cleanup.go
// Copyright(c) 2025 zoaref contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package airac

import (
	"os"
	"path/filepath"
	"regexp"
	"strconv"

	"github.com/zoartcc/zoaref/util"
)

var cycleDirRe = regexp.MustCompile(`^\d{4}$`)
var cifpFileRe = regexp.MustCompile(`^(?:FAACIFP\d+|parsed)-(\d{4})$`)
var nasrFileRe = regexp.MustCompile(`^(?:NASR-[A-Z0-9]+|parsed-[A-Z]+)-(\d{4})$`)

// Cleanup removes cache entries belonging to AIRAC cycles more than
// keepCycles behind the current one and returns how many were removed.
// Cycle ids are compared as plain integers; at a year boundary the id
// jumps (2513 to 2601), so the cycle just ended can be culled a little
// early there. The data re-downloads on next use.
func Cleanup(keepCycles int) (int, error) {
	cacheDir, err := util.CacheDir()
	if err != nil {
		return 0, err
	}

	current, err := strconv.Atoi(Current().ID)
	if err != nil {
		return 0, err
	}

	removed := 0

	// Per-cycle chart directories: charts/<cycle>/...
	chartsDir := filepath.Join(cacheDir, "charts")
	if entries, err := os.ReadDir(chartsDir); err == nil {
		for _, e := range entries {
			if !e.IsDir() || !cycleDirRe.MatchString(e.Name()) {
				continue
			}
			n, err := strconv.Atoi(e.Name())
			if err != nil {
				continue
			}
			if current-n > keepCycles {
				if os.RemoveAll(filepath.Join(chartsDir, e.Name())) == nil {
					removed++
				}
			}
		}
	}

	// Per-cycle data files, raw and parsed: cifp/FAACIFP18-<cycle>,
	// cifp/parsed-<cycle>, nasr/NASR-<stem>-<cycle>, nasr/parsed-<stem>-<cycle>.
	for dir, re := range map[string]*regexp.Regexp{"cifp": cifpFileRe, "nasr": nasrFileRe} {
		base := filepath.Join(cacheDir, dir)
		entries, err := os.ReadDir(base)
		if err != nil {
			continue
		}
		for _, e := range entries {
			if e.IsDir() {
				continue
			}
			m := re.FindStringSubmatch(e.Name())
			if m == nil {
				continue
			}
			n, err := strconv.Atoi(m[1])
			if err != nil {
				continue
			}
			if current-n > keepCycles {
				if os.Remove(filepath.Join(base, e.Name())) == nil {
					removed++
				}
			}
		}
	}

	return removed, nil
}

// ClearAll removes all per-cycle cache data and returns how many
// top-level entries went away. Time-based caches are left alone.
func ClearAll() (int, error) {
	cacheDir, err := util.CacheDir()
	if err != nil {
		return 0, err
	}

	removed := 0
	for _, dir := range []string{"charts", "cifp", "nasr"} {
		path := filepath.Join(cacheDir, dir)
		if _, err := os.Stat(path); err == nil {
			if os.RemoveAll(path) == nil {
				removed++
			}
		}
	}
	return removed, nil
}
