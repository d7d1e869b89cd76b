package commands

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jmylchreest/athletescrape/internal/logger"
	"github.com/jmylchreest/athletescrape/internal/output"
	"github.com/jmylchreest/athletescrape/pkg/roster"
)

var scrapeCmd = &cobra.Command{
	Use:   "scrape",
	Short: "Scrape the whole roster and export it",
	Long: `Discover every athlete profile on the listing, extract name and image
from each and export the results as CSV (name,image_url) and JSON.

Interrupting the scrape (Ctrl-C) stops after the profiles in flight and
exports everything collected so far.

Examples:
  # Defaults: ufc_fighters.csv and ufc_fighters.json in the current directory
  athletescrape scrape

  # Gentler crawl, custom output paths
  athletescrape scrape --delay 2s --csv out/roster.csv --json out/roster.json

  # CSV only
  athletescrape scrape --json ""`,
	RunE: runScrape,
}

func init() {
	rootCmd.AddCommand(scrapeCmd)

	defaults := output.DefaultPaths()
	flags := scrapeCmd.Flags()

	flags.String("csv", defaults.CSV, "CSV output path (empty to skip)")
	flags.String("json", defaults.JSON, "JSON output path (empty to skip)")
	flags.Bool("summary", true, "print a summary when done")

	_ = viper.BindPFlag("output_csv", flags.Lookup("csv"))
	_ = viper.BindPFlag("output_json", flags.Lookup("json"))
}

func runScrape(cmd *cobra.Command, _ []string) error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	s, err := newScraper()
	if err != nil {
		logger.Error("failed to initialize", "error", err)
		return err
	}
	defer func() { _ = s.Close() }()

	logger.Info("starting scrape",
		"listing", s.ListingURL(),
		"concurrency", s.Config().Concurrency,
		"delay", s.Config().Delay)

	start := time.Now()
	coll := roster.NewCollection()
	runErr := s.Run(ctx, coll)

	switch {
	case errors.Is(runErr, context.Canceled):
		logger.Warn("scrape interrupted, saving partial data", "records", coll.Len())
	case runErr != nil:
		logger.Error("scrape failed", "error", runErr)
		if coll.Len() > 0 {
			logger.Warn("saving partial data", "records", coll.Len())
		}
	default:
		logger.Info("scrape complete",
			"records", coll.Len(),
			"duration", time.Since(start).Round(time.Second))
	}

	paths := output.Paths{
		CSV:  viper.GetString("output_csv"),
		JSON: viper.GetString("output_json"),
	}
	if err := output.Export(coll.Snapshot(), paths); err != nil {
		logger.Error("export failed", "error", err)
		return err
	}

	if summary, _ := cmd.Flags().GetBool("summary"); summary && coll.Len() > 0 {
		if err := printSummary(cmd, coll.Stats(), paths); err != nil {
			return err
		}
	}

	if runErr != nil && !errors.Is(runErr, context.Canceled) {
		return runErr
	}
	return nil
}

func printSummary(cmd *cobra.Command, stats roster.Stats, paths output.Paths) error {
	w := cmd.OutOrStdout()
	if _, err := fmt.Fprintln(w, "\nSCRAPING SUMMARY"); err != nil {
		return err
	}
	if err := stats.WriteSummary(w); err != nil {
		return err
	}
	for _, p := range []string{paths.CSV, paths.JSON} {
		if p != "" {
			if _, err := fmt.Fprintf(w, "Data saved to: %s\n", p); err != nil {
				return err
			}
		}
	}
	return nil
}
