// config/config_test.go
// Copyright(c) 2025 zoaref contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/zoartcc/zoaref/aviation"
)

func TestDefault(t *testing.T) {
	c := Default()
	if c.Data.CIFPBaseURL != aviation.DefaultCIFPBaseURL {
		t.Errorf("CIFP base URL %q", c.Data.CIFPBaseURL)
	}
	if c.Cache.KeepCycles != 2 {
		t.Errorf("KeepCycles %d", c.Cache.KeepCycles)
	}
	loc := c.Home.Location()
	if loc.IsZero() {
		t.Error("default home location is zero")
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "zoaref.toml")
	err := os.WriteFile(path, []byte(`
[logging]
level = "debug"

[cache]
keep_cycles = 4

[charts]
airports = ["SFO", "OAK"]
`), 0644)
	if err != nil {
		t.Fatal(err)
	}

	c, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if c.Logging.Level != "debug" {
		t.Errorf("level %q", c.Logging.Level)
	}
	if c.Cache.KeepCycles != 4 {
		t.Errorf("KeepCycles %d", c.Cache.KeepCycles)
	}
	if len(c.Charts.Airports) != 2 {
		t.Errorf("airports %v", c.Charts.Airports)
	}
	// Sections absent from the file keep their defaults.
	if c.Data.NASRBaseURL != aviation.DefaultNASRBaseURL {
		t.Errorf("NASR base URL %q", c.Data.NASRBaseURL)
	}
}

func TestLoadMissingExplicitPath(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Error("expected error for missing explicit config path")
	}
}
