// Package commands implements the CLI commands for athletescrape.
package commands

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jmylchreest/athletescrape/internal/logger"
	"github.com/jmylchreest/athletescrape/pkg/extractor"
	"github.com/jmylchreest/athletescrape/pkg/roster"
)

var rootCmd = &cobra.Command{
	Use:   "athletescrape",
	Short: "Scrape athlete names and profile images from a paginated roster",
	Long: `athletescrape walks a paginated athlete listing, visits every profile
it finds and records each athlete's name and main profile image.

Image candidates are checked against the athlete's name so that
thumbnails of other athletes on the same page are not picked up.

Examples:
  # Scrape the full roster into ufc_fighters.csv and ufc_fighters.json
  athletescrape scrape

  # Quick look at the first two listing pages
  athletescrape discover --max-pages 2

  # Debug extraction for a single profile
  athletescrape extract https://www.ufc.com/athlete/jon-jones --debug`,
	SilenceUsage:      true,
	PersistentPreRunE: setupLogging,
	PersistentPostRun: closeLogFile,
}

var logFile *os.File

func init() {
	cobra.OnInitialize(initConfig)

	defaults := roster.DefaultConfig()
	flags := rootCmd.PersistentFlags()

	// Global flags
	flags.String("config", "", "config file (default $HOME/.athletescrape.yaml)")
	flags.Bool("debug", false, "enable debug logging")
	flags.BoolP("quiet", "q", false, "only log errors")
	flags.Bool("log-json", false, "log as JSON")
	flags.String("log-file", "", "also write logs to this file")

	// Site settings
	flags.String("base-url", defaults.BaseURL, "site origin")
	flags.String("listing-path", defaults.ListingPath, "path of the paginated athlete listing")
	flags.String("profile-prefix", defaults.ProfilePrefix, "path prefix of athlete profile links")

	// Fetch settings
	flags.String("fetch-mode", string(defaults.FetchMode), "fetch mode: static, dynamic")
	flags.String("user-agent", defaults.UserAgent, "HTTP user agent")
	flags.Duration("timeout", defaults.Timeout, "request timeout")
	flags.Duration("delay", defaults.Delay, "minimum interval between requests")
	flags.Int("max-retries", defaults.MaxRetries, "retries for transient fetch failures")
	flags.String("max-body-size", "0", "max response size (e.g., 5MB, 0=unlimited)")
	flags.IntP("concurrency", "c", defaults.Concurrency, "profiles extracted in parallel")

	// Crawl bounds
	flags.Int("max-pages", 0, "max listing pages to scan (0=unlimited)")
	flags.Int("max-profiles", 0, "max profiles to extract (0=unlimited)")

	// Extraction settings
	flags.String("rules", "", "JSON or YAML file overriding the extraction rules")

	for _, name := range []string{
		"config", "debug", "quiet", "log-json", "log-file",
		"base-url", "listing-path", "profile-prefix",
		"fetch-mode", "user-agent", "timeout", "delay", "max-retries", "max-body-size", "concurrency",
		"max-pages", "max-profiles", "rules",
	} {
		_ = viper.BindPFlag(configKey(name), flags.Lookup(name))
	}
}

// configKey maps a flag name to its config file key.
func configKey(flag string) string {
	return strings.ReplaceAll(flag, "-", "_")
}

func initConfig() {
	if cfgFile := viper.GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
		}
		viper.AddConfigPath(".")
		viper.SetConfigName(".athletescrape")
		viper.SetConfigType("yaml")
	}

	// ATHLETESCRAPE_BASE_URL, ATHLETESCRAPE_DELAY, ...
	viper.SetEnvPrefix("ATHLETESCRAPE")
	viper.AutomaticEnv()

	// Read config file (ignore error if not found)
	_ = viper.ReadInConfig()
}

func setupLogging(_ *cobra.Command, _ []string) error {
	opts := logger.Options{
		Debug: viper.GetBool("debug"),
		Quiet: viper.GetBool("quiet"),
		JSON:  viper.GetBool("log_json"),
	}

	if path := viper.GetString("log_file"); path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644) //#nosec G304 -- CLI tool writes to user-specified log file
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		logFile = f
		opts.File = f
	}

	logger.Init(opts)

	if used := viper.ConfigFileUsed(); used != "" {
		logger.Debug("config file loaded", "path", used)
	}
	return nil
}

func closeLogFile(_ *cobra.Command, _ []string) {
	if logFile != nil {
		_ = logFile.Close()
		logFile = nil
	}
}

// scraperOptions builds roster options from flags, config file and env.
func scraperOptions() ([]roster.Option, error) {
	opts := []roster.Option{
		roster.WithBaseURL(viper.GetString("base_url")),
		roster.WithListingPath(viper.GetString("listing_path")),
		roster.WithProfilePrefix(viper.GetString("profile_prefix")),
		roster.WithFetchMode(roster.FetchMode(viper.GetString("fetch_mode"))),
		roster.WithTimeout(viper.GetDuration("timeout")),
		roster.WithDelay(viper.GetDuration("delay")),
		roster.WithMaxRetries(viper.GetInt("max_retries")),
		roster.WithConcurrency(viper.GetInt("concurrency")),
		roster.WithMaxPages(viper.GetInt("max_pages")),
		roster.WithMaxProfiles(viper.GetInt("max_profiles")),
	}

	if ua := viper.GetString("user_agent"); ua != "" {
		opts = append(opts, roster.WithUserAgent(ua))
	}

	// 0 or empty means unlimited
	if size := strings.TrimSpace(viper.GetString("max_body_size")); size != "" && size != "0" {
		n, err := humanize.ParseBytes(size)
		if err != nil {
			return nil, fmt.Errorf("invalid max-body-size %q: %w", size, err)
		}
		opts = append(opts, roster.WithMaxBodySize(int(n)))
		logger.Debug("max body size", "bytes", n, "human", humanize.Bytes(n))
	}

	if path := viper.GetString("rules"); path != "" {
		rules, err := extractor.LoadRules(path)
		if err != nil {
			return nil, err
		}
		opts = append(opts, roster.WithRules(rules))
		logger.Debug("extraction rules loaded", "path", path)
	}

	return opts, nil
}

// newScraper creates a Scraper from the current configuration.
func newScraper() (*roster.Scraper, error) {
	opts, err := scraperOptions()
	if err != nil {
		return nil, err
	}
	s, err := roster.New(opts...)
	if err != nil {
		return nil, err
	}
	logger.Debug("scraper ready",
		"listing", s.ListingURL(),
		"fetch_mode", s.Config().FetchMode,
		"delay", s.Config().Delay,
		"timeout", s.Config().Timeout.Round(time.Millisecond))
	return s, nil
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
