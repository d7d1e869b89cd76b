package commands

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/athletescrape/internal/logger"
)

var discoverCmd = &cobra.Command{
	Use:   "discover",
	Short: "List athlete profile URLs without extracting them",
	Long: `Walk the paginated listing and print every profile URL found, one per
line. Scanning stops at the first page that adds no new profile.

Examples:
  athletescrape discover > profiles.txt
  athletescrape discover --max-pages 3 --format json`,
	RunE: runDiscover,
}

func init() {
	rootCmd.AddCommand(discoverCmd)

	discoverCmd.Flags().String("format", "text", "output format: text, json")
}

func runDiscover(cmd *cobra.Command, _ []string) error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	format, _ := cmd.Flags().GetString("format")
	if format != "text" && format != "json" {
		return fmt.Errorf("unsupported format: %s (use 'text' or 'json')", format)
	}

	s, err := newScraper()
	if err != nil {
		logger.Error("failed to initialize", "error", err)
		return err
	}
	defer func() { _ = s.Close() }()

	urls, err := s.Discover(ctx)
	if err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("discovery failed", "error", err)
		return err
	}

	w := cmd.OutOrStdout()
	if format == "json" {
		if urls == nil {
			urls = []string{}
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(urls)
	}
	for _, u := range urls {
		if _, err := fmt.Fprintln(w, u); err != nil {
			return err
		}
	}
	return nil
}
