package main

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/lipgloss/table"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"recipe-box/internal/metrics"
)

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Storage write metrics and process health",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := rootCmd.PersistentPreRunE(cmd, args); err != nil {
			return err
		}
		if application.Metrics == nil {
			return errors.New("metrics are disabled (METRICS_ENABLED=false)")
		}
		return nil
	},
}

var metricsUsageCmd = &cobra.Command{
	Use:   "usage",
	Short: "Writes per day and per store",
	Args:  cobra.NoArgs,
	RunE:  runMetricsUsage,
}

var metricsCleanupCmd = &cobra.Command{
	Use:   "cleanup",
	Short: "Remove old metric records",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		affected, err := application.Metrics.Cleanup(cmd.Context(), cleanupDays)
		if err != nil {
			return fmt.Errorf("cleanup failed: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Successfully removed %d old metric records.\n", affected)
		return nil
	},
}

var (
	usageDays   int
	cleanupDays int
)

func init() {
	metricsUsageCmd.Flags().IntVar(&usageDays, "days", 7, "Report the last N days")
	metricsCleanupCmd.Flags().IntVar(&cleanupDays, "days", 30, "Keep records for the last N days")

	metricsCmd.AddCommand(metricsUsageCmd)
	metricsCmd.AddCommand(metricsCleanupCmd)
}

func runMetricsUsage(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	w := cmd.OutOrStdout()
	th := currentTheme()

	daily, err := application.Metrics.GetDailyUsage(ctx, usageDays)
	if err != nil {
		return err
	}
	stores, err := application.Metrics.GetStoreUsage(ctx, usageDays)
	if err != nil {
		return err
	}

	fmt.Fprintln(w, th.Heading.Render("Writes per day"))
	if len(daily) == 0 {
		fmt.Fprintln(w, th.Muted.Render("No data yet"))
	} else {
		t := table.New().Headers("DAY", "WRITES", "BYTES")
		for _, d := range daily {
			t.Row(d.Date, humanize.Comma(int64(d.Writes)), humanize.IBytes(uint64(d.Bytes)))
		}
		fmt.Fprintln(w, t.Render())
	}

	if len(stores) > 0 {
		fmt.Fprintln(w, th.Heading.Render("Writes per store"))
		t := table.New().Headers("STORE", "WRITES", "BYTES", "AVG LATENCY")
		for _, s := range stores {
			t.Row(s.StoreKey, humanize.Comma(int64(s.Writes)), humanize.IBytes(uint64(s.Bytes)), fmt.Sprintf("%.1fms", s.AvgLatencyMS))
		}
		fmt.Fprintln(w, t.Render())
	}

	h := metrics.GetSysHealth(application.DataPath())
	fmt.Fprintln(w, th.Heading.Render("Process"))
	fmt.Fprintf(w, "RAM %s (alloc) / %s (sys), %d goroutines, %d GCs, data dir %s\n",
		h.Alloc, h.Sys, h.Goroutines, h.NumGC, h.DataDiskSize)
	return nil
}
