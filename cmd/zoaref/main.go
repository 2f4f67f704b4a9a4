// cmd/zoaref/main.go
// Copyright(c) 2025 zoaref contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// zoaref is a command-line reference tool for ZOA virtual air traffic
// controllers: chart lookup, procedure connections, navaid and airway
// queries, and route altitude checks, all driven by the current AIRAC
// cycle's FAA data.
package main

import (
	"fmt"
	"os"

	"github.com/zoartcc/zoaref/airac"
	"github.com/zoartcc/zoaref/aviation"
	"github.com/zoartcc/zoaref/charts"
	"github.com/zoartcc/zoaref/config"
	"github.com/zoartcc/zoaref/log"
	"github.com/zoartcc/zoaref/util"
)

var (
	cfg    *config.Config
	lg     *log.Logger
	ds     *aviation.DataStore
	client *charts.Client
)

// initServices loads the config and stands up the logger, data store,
// and charts client. Called from the root command's PersistentPreRunE
// so every subcommand sees the same state.
func initServices(configPath, logLevel string) error {
	var err error
	cfg, err = config.Load(configPath)
	if err != nil {
		return err
	}

	if logLevel != "" {
		cfg.Logging.Level = logLevel
	}
	lg = log.New(cfg.Logging.Level, cfg.Logging.Dir)

	if cfg.Cache.Dir != "" {
		util.SetCacheRoot(cfg.Cache.Dir)
	}

	dl := aviation.NewDownloader(lg)
	if cfg.Data.CIFPBaseURL != "" {
		dl.CIFPBaseURL = cfg.Data.CIFPBaseURL
	}
	if cfg.Data.NASRBaseURL != "" {
		dl.NASRBaseURL = cfg.Data.NASRBaseURL
	}

	ds = aviation.NewDataStore(lg, dl, airac.Current())
	ds.SetHome(cfg.Home.Location())

	client = charts.NewClient(lg)
	if cfg.Charts.APIURL != "" {
		client.APIURL = cfg.Charts.APIURL
	}

	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
