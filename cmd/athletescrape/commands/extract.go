package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/athletescrape/internal/logger"
	"github.com/jmylchreest/athletescrape/internal/output"
	"github.com/jmylchreest/athletescrape/pkg/roster"
)

var extractCmd = &cobra.Command{
	Use:   "extract URL...",
	Short: "Extract records from specific profile pages",
	Long: `Extract name and image from the given profile URLs and print the
records. Useful for checking extraction rules against individual pages;
run with --debug to see which image tier matched.

Examples:
  athletescrape extract https://www.ufc.com/athlete/jon-jones
  athletescrape extract --rules rules.yaml --format csv URL1 URL2`,
	Args: cobra.MinimumNArgs(1),
	RunE: runExtract,
}

func init() {
	rootCmd.AddCommand(extractCmd)

	flags := extractCmd.Flags()
	flags.String("format", "json", "output format: json, jsonl, yaml, csv")
	flags.StringP("output", "o", "", "output file (default: stdout)")
}

func runExtract(cmd *cobra.Command, args []string) error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	formatStr, _ := cmd.Flags().GetString("format")
	format, err := output.ParseFormat(formatStr)
	if err != nil {
		return err
	}

	s, err := newScraper()
	if err != nil {
		logger.Error("failed to initialize", "error", err)
		return err
	}
	defer func() { _ = s.Close() }()

	// Results arrive in completion order; print in argument order.
	results := make([]roster.Result, 0, len(args))
	for res := range s.Scrape(ctx, args) {
		results = append(results, res)
	}
	sort.Slice(results, func(i, j int) bool { return results[i].Index < results[j].Index })

	coll := roster.NewCollection()
	for _, res := range results {
		coll.AddResult(res)
	}
	records := coll.Snapshot()

	out := cmd.OutOrStdout()
	if outPath, _ := cmd.Flags().GetString("output"); outPath != "" {
		f, err := os.Create(outPath) //#nosec G304 -- CLI tool writes to user-specified output file
		if err != nil {
			logger.Error("failed to create output file", "path", outPath, "error", err)
			return err
		}
		defer func() { _ = f.Close() }()
		out = f
	}

	writer, err := output.NewWriter(out, format, output.WithUnwrapSingle(len(args) == 1))
	if err != nil {
		return err
	}
	if err := writer.WriteAll(records); err != nil {
		return err
	}
	if err := writer.Close(); err != nil {
		return err
	}

	if failed := len(args) - len(records); failed > 0 {
		return fmt.Errorf("%d of %d profiles produced no record", failed, len(args))
	}
	return nil
}
