package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/theirongolddev/sienna/internal/catalog"
	"github.com/theirongolddev/sienna/internal/cli"
	"github.com/theirongolddev/sienna/internal/config"
	"github.com/theirongolddev/sienna/internal/store"

	"github.com/spf13/cobra"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Inspect and import unit-price catalogs",
}

var catalogListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the effective catalog",
	RunE:  runCatalogList,
}

var catalogShowCmd = &cobra.Command{
	Use:   "show KEY",
	Short: "Show one catalog entry",
	Args:  cobra.ExactArgs(1),
	RunE:  runCatalogShow,
}

var catalogExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Print the bundled price list as CSV",
	Long:  "Print the bundled price list as CSV, a starting point for a custom catalog or price book import.",
	RunE:  runCatalogExport,
}

var catalogImportCmd = &cobra.Command{
	Use:   "import FILE",
	Short: "Import a catalog CSV into the SQLite price book",
	Args:  cobra.ExactArgs(1),
	RunE:  runCatalogImport,
}

func init() {
	catalogListCmd.Flags().BoolVar(&flagJSON, "json", false, "Print entries as JSON")
	catalogCmd.AddCommand(catalogListCmd)
	catalogCmd.AddCommand(catalogShowCmd)
	catalogCmd.AddCommand(catalogExportCmd)
	catalogCmd.AddCommand(catalogImportCmd)
	rootCmd.AddCommand(catalogCmd)
}

func runCatalogList(_ *cobra.Command, _ []string) error {
	cat, stats, source, err := loadCatalog()
	if err != nil {
		return err
	}

	if flagJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(cat.Entries())
	}

	fmt.Println()
	fmt.Print(cli.RenderCatalog(cat.Entries()))
	fmt.Printf("\n  Source: %s  (%s rows, %s accepted, %s dropped, %s unpriced)\n\n",
		source,
		cli.FormatNumber(int64(stats.Rows)),
		cli.FormatNumber(int64(stats.Accepted)),
		cli.FormatNumber(int64(stats.Dropped)),
		cli.FormatNumber(int64(len(cat.Unpriced()))))
	return nil
}

func runCatalogShow(_ *cobra.Command, args []string) error {
	cat, _, _, err := loadCatalog()
	if err != nil {
		return err
	}
	key := args[0]
	if !cat.Has(key) {
		return fmt.Errorf("catalog key %s not found", key)
	}
	e := cat.Lookup(key)

	price := cli.FormatMoney(e.UnitPrice)
	if e.PriceUnavailable {
		price = "n/d"
	}
	fmt.Printf("  Key:         %s\n", e.Key)
	fmt.Printf("  Description: %s\n", e.Description)
	fmt.Printf("  Unit:        %s\n", e.Unit)
	fmt.Printf("  Unit price:  %s\n", price)
	return nil
}

func runCatalogExport(_ *cobra.Command, _ []string) error {
	_, err := fmt.Fprint(os.Stdout, catalog.DefaultCSV())
	return err
}

func priceDBPath() string {
	_, db := catalogSource()
	if db == "" {
		db = config.DefaultPriceDB()
	}
	return db
}

func runCatalogImport(_ *cobra.Command, args []string) error {
	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("opening catalog: %w", err)
	}
	defer func() { _ = f.Close() }()

	entries, stats, err := catalog.Load(f)
	if err != nil {
		return err
	}

	path := priceDBPath()
	pb, err := store.Open(path)
	if err != nil {
		return err
	}
	defer func() { _ = pb.Close() }()

	if err := pb.Import(entries, args[0], time.Now()); err != nil {
		return err
	}

	fmt.Printf("  Imported %d entries into %s\n", len(entries), path)
	if stats.Dropped > 0 {
		fmt.Printf("  %d malformed rows dropped\n", stats.Dropped)
	}
	if stats.Unpriced > 0 {
		fmt.Printf("  %d entries without a usable price\n", stats.Unpriced)
	}
	if cfg.Catalog.PriceDB == "" && flagPriceDB == "" {
		fmt.Printf("  Use it with: sienna --price-db %s estimate ...\n", path)
	}
	return nil
}
