// Package cmd implements the sienna CLI commands.
package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/theirongolddev/sienna/internal/catalog"
	"github.com/theirongolddev/sienna/internal/config"
	"github.com/theirongolddev/sienna/internal/estimate"
	"github.com/theirongolddev/sienna/internal/store"

	"github.com/spf13/cobra"
)

var (
	flagCatalog string
	flagPriceDB string
	flagEnvFile string
	flagQuiet   bool

	cfg config.Config
)

var rootCmd = &cobra.Command{
	Use:   "sienna",
	Short: "Parametric construction budgets and project bundles",
	Long: "Estimate construction budgets from built area, finish tier and material preferences,\n" +
		"preview project folder layouts and package everything into a zip bundle.",
	PersistentPreRunE: loadSettings,
	RunE:              runWizard,
	SilenceUsage:      true,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagCatalog, "catalog", "", "Unit-price catalog CSV (overrides config and "+config.EnvCatalog+")")
	rootCmd.PersistentFlags().StringVar(&flagPriceDB, "price-db", "", "SQLite price book written by sienna catalog import")
	rootCmd.PersistentFlags().StringVar(&flagEnvFile, "env-file", ".env", "Environment file to load before reading config")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress progress output")
}

func loadSettings(_ *cobra.Command, _ []string) error {
	if err := config.LoadDotEnv(flagEnvFile); err != nil {
		return err
	}
	loaded, err := config.Load()
	if err != nil {
		return err
	}
	cfg = loaded
	return nil
}

// logf writes progress to stderr unless --quiet is set.
func logf(format string, args ...any) {
	if flagQuiet {
		return
	}
	fmt.Fprintf(os.Stderr, "  "+format+"\n", args...)
}

// catalogSource resolves the catalog path and price book, flags first.
func catalogSource() (path, priceDB string) {
	path = cfg.Catalog.Path
	if flagCatalog != "" {
		path = flagCatalog
	}
	priceDB = cfg.Catalog.PriceDB
	if flagPriceDB != "" {
		priceDB = flagPriceDB
	}
	return path, priceDB
}

// loadCatalog is the shared catalog loading path used by all commands.
// A CSV path wins over a price book, which wins over the bundled list.
// Configured price overrides are applied last.
func loadCatalog() (*catalog.Catalog, catalog.LoadStats, string, error) {
	path, priceDB := catalogSource()

	var (
		cat    *catalog.Catalog
		stats  catalog.LoadStats
		source string
	)

	switch {
	case path != "":
		c, st, err := catalog.LoadFile(path)
		if err != nil {
			return nil, st, path, err
		}
		cat, stats, source = c, st, path

	case priceDB != "":
		pb, err := store.Open(priceDB)
		if err != nil {
			return nil, stats, priceDB, err
		}
		defer pb.Close()

		c, err := pb.Catalog()
		if errors.Is(err, store.ErrEmpty) {
			logf("Price book %s is empty, using bundled catalog", priceDB)
			cat, stats = catalog.Default()
			source = "bundled"
			break
		}
		if err != nil {
			return nil, stats, priceDB, fmt.Errorf("reading price book: %w", err)
		}
		cat, source = c, priceDB
		stats = catalog.LoadStats{Rows: c.Len(), Accepted: c.Len(), Unpriced: len(c.Unpriced())}

	default:
		cat, stats = catalog.Default()
		source = "bundled"
	}

	overrides, err := cfg.Catalog.PriceOverrides()
	if err != nil {
		return nil, stats, source, err
	}
	if len(overrides) > 0 {
		cat = cat.WithOverrides(overrides)
		logf("Applied %d price overrides from config", len(overrides))
	}

	if stats.Dropped > 0 {
		logf("Catalog %s: %d malformed rows dropped", source, stats.Dropped)
	}
	if n := len(cat.Unpriced()); n > 0 {
		logf("Catalog %s: %d entries without a usable price", source, n)
	}
	return cat, stats, source, nil
}

// resolveTier picks the --tier value or the configured default.
func resolveTier(flag string) (estimate.Tier, error) {
	if flag == "" {
		flag = cfg.General.DefaultTier
	}
	return estimate.ParseTier(flag)
}
