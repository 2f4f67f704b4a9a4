// config/config.go
// Copyright(c) 2025 zoaref contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package config holds the zoaref configuration, loaded from an
// optional TOML file layered over the defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/zoartcc/zoaref/aviation"
	"github.com/zoartcc/zoaref/charts"
	"github.com/zoartcc/zoaref/math"
)

type Config struct {
	Cache   CacheConfig   `toml:"cache"`
	Logging LoggingConfig `toml:"logging"`
	Data    DataConfig    `toml:"data"`
	Charts  ChartsConfig  `toml:"charts"`
	Home    HomeConfig    `toml:"home"`
}

// CacheConfig controls the on-disk cache of downloaded data.
type CacheConfig struct {
	Dir        string `toml:"dir"`         // "" uses the user cache dir
	KeepCycles int    `toml:"keep_cycles"` // AIRAC cycles of stale data to keep
}

type LoggingConfig struct {
	Level string `toml:"level"` // "debug", "info", "warn", or "error"
	Dir   string `toml:"dir"`   // "" uses the user config dir
}

// DataConfig points at the FAA download servers; override for mirrors
// or tests.
type DataConfig struct {
	CIFPBaseURL string   `toml:"cifp_base_url"`
	NASRBaseURL string   `toml:"nasr_base_url"`
	NASRStems   []string `toml:"nasr_stems"` // NASR files to fetch, e.g. NAV, AWY
}

type ChartsConfig struct {
	APIURL   string   `toml:"api_url"`
	Airports []string `toml:"airports"` // airports offered for tab completion
}

// HomeConfig sets the point navaid searches measure distance from.
type HomeConfig struct {
	Latitude  float32 `toml:"latitude"`
	Longitude float32 `toml:"longitude"`
}

func (h HomeConfig) Location() math.Point2LL {
	return math.Point2LL{h.Longitude, h.Latitude}
}

func Default() *Config {
	return &Config{
		Cache:   CacheConfig{KeepCycles: 2},
		Logging: LoggingConfig{Level: "info"},
		Data: DataConfig{
			CIFPBaseURL: aviation.DefaultCIFPBaseURL,
			NASRBaseURL: aviation.DefaultNASRBaseURL,
			NASRStems:   []string{"NAV", "AWY"},
		},
		Charts: ChartsConfig{
			APIURL:   charts.DefaultAPIURL,
			Airports: charts.ZOAAirports,
		},
		Home: HomeConfig{
			Latitude:  aviation.OAKVOR.Latitude(),
			Longitude: aviation.OAKVOR.Longitude(),
		},
	}
}

// DefaultPath returns the conventional config file location; the file
// need not exist.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "zoaref", "zoaref.toml")
}

// Load reads a config file over the defaults. A missing file at the
// default path is fine; a path given explicitly must exist.
func Load(path string) (*Config, error) {
	c := Default()
	if path == "" {
		path = DefaultPath()
		if path == "" {
			return c, nil
		}
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return c, nil
		}
	}

	if _, err := toml.DecodeFile(path, c); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}
