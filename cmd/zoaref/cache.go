// cmd/zoaref/cache.go
// Copyright(c) 2025 zoaref contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package main

import (
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/zoartcc/zoaref/airac"
	"github.com/zoartcc/zoaref/util"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the downloaded data cache",
}

func init() {
	infoCmd := &cobra.Command{
		Use:   "info",
		Short: "Show the cache location and size",
		Args:  cobra.NoArgs,
		RunE:  runCacheInfo,
	}

	cullCmd := &cobra.Command{
		Use:   "cull",
		Short: "Remove data from old AIRAC cycles",
		Long: `Removes cached charts, CIFP, and NASR data more than --keep cycles
older than the current one. Current-cycle data is never touched.`,
		Args: cobra.NoArgs,
		RunE: runCacheCull,
	}
	cullCmd.Flags().Int("keep", 0, "AIRAC cycles of stale data to keep (default from config)")

	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove all cached chart and navigation data",
		Args:  cobra.NoArgs,
		RunE:  runCacheClear,
	}

	cacheCmd.AddCommand(infoCmd)
	cacheCmd.AddCommand(cullCmd)
	cacheCmd.AddCommand(clearCmd)
}

func runCacheInfo(cmd *cobra.Command, args []string) error {
	dir, err := util.CacheDir()
	if err != nil {
		return err
	}

	var bytes int64
	var files int
	filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err == nil && !d.IsDir() {
			if info, err := d.Info(); err == nil {
				bytes += info.Size()
				files++
			}
		}
		return nil
	})

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Cache: %s\n", dir)
	fmt.Fprintf(out, "%d files, %.1f MB\n", files, float64(bytes)/(1024*1024))
	fmt.Fprintf(out, "Current AIRAC cycle: %s\n", airac.Current().ID)
	return nil
}

func runCacheCull(cmd *cobra.Command, args []string) error {
	keep, _ := cmd.Flags().GetInt("keep")
	if keep <= 0 {
		keep = cfg.Cache.KeepCycles
	}

	removed, err := airac.Cleanup(keep)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Removed %d stale cache entries.\n", removed)
	return nil
}

func runCacheClear(cmd *cobra.Command, args []string) error {
	removed, err := airac.ClearAll()
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Removed %d cache entries.\n", removed)
	return nil
}
