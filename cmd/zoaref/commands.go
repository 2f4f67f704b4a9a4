// cmd/zoaref/commands.go
// Copyright(c) 2025 zoaref contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/zoartcc/zoaref/airac"
	"github.com/zoartcc/zoaref/aviation"
	"github.com/zoartcc/zoaref/charts"
	"github.com/zoartcc/zoaref/util"
)

var rootCmd = &cobra.Command{
	Use:   "zoaref",
	Short: "Reference tool for ZOA virtual air traffic control",
	Long: `zoaref answers the reference questions that come up while controlling:
which chart, which approaches a STAR connects to, where a fix is, what
the MEA is along a filed route. FAA CIFP and NASR data is downloaded
once per AIRAC cycle and cached.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		configPath, _ := cmd.Flags().GetString("config")
		logLevel, _ := cmd.Flags().GetString("log-level")
		return initServices(configPath, logLevel)
	},
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "config file (default zoaref.toml in the user config dir)")
	rootCmd.PersistentFlags().String("log-level", "", "log level: debug, info, warn, error")

	rootCmd.AddCommand(cycleCmd)
	rootCmd.AddCommand(chartCmd)
	rootCmd.AddCommand(starCmd)
	rootCmd.AddCommand(fixCmd)
	rootCmd.AddCommand(navaidCmd)
	rootCmd.AddCommand(airwayCmd)
	rootCmd.AddCommand(meaCmd)
	rootCmd.AddCommand(distCmd)
	rootCmd.AddCommand(descendCmd)
	rootCmd.AddCommand(cacheCmd)
}

var cycleCmd = &cobra.Command{
	Use:   "cycle [id]",
	Short: "Show the current AIRAC cycle, or the dates of a given one",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cycle := airac.Current()
		if len(args) == 1 {
			var ok bool
			if cycle, ok = airac.FromID(args[0]); !ok {
				return fmt.Errorf("%s: invalid AIRAC cycle identifier", args[0])
			}
		}
		fmt.Fprintf(cmd.OutOrStdout(), "AIRAC %s: effective %s through %s\n",
			cycle.ID, cycle.Start.Format("2006-01-02"), cycle.End.Format("2006-01-02"))
		return nil
	},
}

var chartCmd = &cobra.Command{
	Use:   "chart AIRPORT NAME...",
	Short: "Look up a chart and print its PDF URLs",
	Long: `Looks up a chart by airport and name, e.g. "chart OAK CNDEL5" or
"chart SFO ILS 28L". Abbreviated SID/STAR names are spelled out before
matching, and close-but-ambiguous matches are listed instead of
guessed at.`,
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		query, err := charts.ParseQuery(strings.Join(args, " "))
		if err != nil {
			return err
		}

		urls, chart, matches, err := client.LookupChart(cmd.Context(), query)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if urls == nil {
			if len(matches) == 0 {
				fmt.Fprintf(out, "No chart matching %q at %s\n", query.ChartName, query.Airport)
				return nil
			}
			fmt.Fprintf(out, "Ambiguous; did you mean:\n")
			for _, m := range matches {
				fmt.Fprintf(out, "  %-40s (score %.2f)\n", m.Chart.ChartName, m.Score)
			}
			return nil
		}

		fmt.Fprintf(out, "%s %s\n", query.Airport, chart.ChartName)
		for _, u := range urls {
			fmt.Fprintln(out, u)
		}
		return nil
	},
}

var starCmd = &cobra.Command{
	Use:   "star AIRPORT NAME",
	Short: "Show the approaches a STAR connects to without vectors",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		airport, name := args[0], args[1]

		star, conns, ok := client.FindConnectedApproaches(cmd.Context(), ds, airport, name)
		if !ok {
			return fmt.Errorf("%s: STAR %q not found", airport, name)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s\nWaypoints: %s\n\n", star.Name, strings.Join(star.Waypoints, ", "))

		if len(conns) == 0 {
			fmt.Fprintln(out, "No direct approach connections found.")
			fmt.Fprintln(out, "(Vectors to final approach course may be required)")
			return nil
		}

		fmt.Fprintln(out, "Connected approaches (no vectors required):")
		for _, c := range conns {
			fmt.Fprintf(out, "  via %s (%s): %s\n", c.ConnectingFix, c.FixType, c.ApproachName)
		}
		return nil
	},
}

var fixCmd = &cobra.Command{
	Use:   "fix AIRPORT FIX",
	Short: "List the approaches that accept a fix as an entry point",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		airport, fix := args[0], strings.ToUpper(args[1])

		approaches, ok := client.FindApproachesByFix(cmd.Context(), ds, airport, fix)
		if !ok {
			return fmt.Errorf("%s: no charts available", airport)
		}

		out := cmd.OutOrStdout()
		if len(approaches) == 0 {
			fmt.Fprintf(out, "No approaches at %s use %s as an entry fix.\n", strings.ToUpper(airport), fix)
			return nil
		}

		fmt.Fprintf(out, "Approaches via %s:\n", fix)
		for _, a := range approaches {
			if a.LeadsTo != "" {
				fmt.Fprintf(out, "  %-8s %s (to %s)\n", a.Role, a.ApproachName, a.LeadsTo)
			} else {
				fmt.Fprintf(out, "  %-8s %s\n", a.Role, a.ApproachName)
			}
		}
		return nil
	},
}

var navaidCmd = &cobra.Command{
	Use:   "navaid QUERY...",
	Short: "Look up a navaid by identifier or name",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		query := strings.Join(args, " ")

		navaids := ds.SearchNavaids(query)
		if len(navaids) == 0 {
			return fmt.Errorf("%s: no matching navaid", query)
		}

		out := cmd.OutOrStdout()
		for _, n := range navaids {
			fmt.Fprintf(out, "%-4s %-24s %-20s %s, %s  %s\n",
				n.Id, n.Name, n.Type, n.City, n.State, n.Location.DDString())
		}
		return nil
	},
}

var airwayCmd = &cobra.Command{
	Use:   "airway ID [FIX...]",
	Short: "Show an airway's fixes in display order",
	Long: `Shows an airway's fixes ordered for display: west to east, or north
to south when the airway mostly runs that way. Extra arguments name
fixes to highlight, e.g. the segment endpoints you care about.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		result := ds.SearchAirway(args[0], args[1:])
		if !result.Found {
			return fmt.Errorf("%s: airway not found", args[0])
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s (%s)\n", result.Airway.Id, result.Airway.Direction)
		highlight := make(map[string]bool)
		for _, f := range result.Highlights {
			highlight[f] = true
		}
		for _, f := range result.Airway.Fixes {
			marker := util.Select(highlight[f.Fix], "* ", "  ")
			if f.HasLoc {
				fmt.Fprintf(out, "%s%-5s %s\n", marker, f.Fix, f.Location.DDString())
			} else {
				fmt.Fprintf(out, "%s%-5s\n", marker, f.Fix)
			}
		}
		return nil
	},
}

var meaCmd = &cobra.Command{
	Use:   "mea ROUTE... [ALTITUDE]",
	Short: "Check a filed route's MEA requirements",
	Long: `Analyzes the airways in a filed route and reports the minimum enroute
altitudes along the portions flown. A trailing altitude (in feet)
limits the output to the segments above it and says whether the
altitude clears the route.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		altitude := 0
		if n := len(args); n > 1 {
			if v, err := strconv.Atoi(args[n-1]); err == nil {
				altitude = v
				args = args[:n-1]
			}
		}

		result := ds.AnalyzeRouteMEA(strings.Join(args, " "), altitude)

		out := cmd.OutOrStdout()
		if len(result.Segments) == 0 {
			if result.Altitude > 0 && result.Safe {
				fmt.Fprintf(out, "%d ft clears every MEA on the route.\n", result.Altitude)
			} else {
				fmt.Fprintln(out, "No airway MEA data found for this route.")
			}
			return nil
		}

		for _, seg := range result.Segments {
			if seg.MOCA > 0 {
				fmt.Fprintf(out, "%-5s %s - %s: MEA %d, MOCA %d\n", seg.Airway, seg.Start, seg.End, seg.MEA, seg.MOCA)
			} else {
				fmt.Fprintf(out, "%-5s %s - %s: MEA %d\n", seg.Airway, seg.Start, seg.End, seg.MEA)
			}
		}
		if result.MaxMEA > 0 {
			fmt.Fprintf(out, "Highest MEA: %d\n", result.MaxMEA)
		}
		if result.Altitude > 0 && !result.Safe {
			fmt.Fprintf(out, "%d ft is below the MEA on the segments above.\n", result.Altitude)
		}
		return nil
	},
}

var distCmd = &cobra.Command{
	Use:   "dist FROM TO",
	Short: "Distance in nautical miles between two named points",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		nm, from, to, ok := ds.Distance(args[0], args[1])
		if !ok {
			return fmt.Errorf("unable to resolve %s and %s", args[0], args[1])
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s to %s: %.1f nm\n", from.Id, to.Id, nm)
		return nil
	},
}

var descendCmd = &cobra.Command{
	Use:   "descend CURRENT TARGET|DISTANCE",
	Short: "Descent planning on a 3 degree glideslope",
	Long: `Answers either descent question. Altitudes are flight-level style
("100" is 10,000 ft); a short or decimal second argument is a distance:

  descend 100 020   miles needed from 10,000 down to 2,000
  descend 350 25    altitude after descending for 25 nm from FL350`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		result, ok := aviation.CalculateDescent(args[0], args[1])
		if !ok {
			return fmt.Errorf("unable to parse %s %s", args[0], args[1])
		}

		out := cmd.OutOrStdout()
		if result.Mode == aviation.DistanceNeeded {
			fmt.Fprintf(out, "%d ft to %d ft: %.1f nm\n",
				result.CurrentAlt, result.TargetAlt, result.DistanceNeeded)
		} else {
			fmt.Fprintf(out, "From %d ft, after %.1f nm: %d ft (%d ft descended)\n",
				result.CurrentAlt, result.Distance, result.AltitudeAt, result.AltitudeLost)
		}
		return nil
	},
}
