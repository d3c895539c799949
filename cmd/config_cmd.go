package cmd

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/theirongolddev/sienna/internal/config"
	"github.com/theirongolddev/sienna/internal/store"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration",
	RunE:  runConfig,
}

var flagConfigForce bool

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a config file with the default settings",
	RunE:  runConfigInit,
}

func init() {
	configInitCmd.Flags().BoolVar(&flagConfigForce, "force", false, "Overwrite an existing config file")
	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigInit(_ *cobra.Command, _ []string) error {
	if config.Exists() && !flagConfigForce {
		return fmt.Errorf("config file %s already exists (use --force to overwrite)", config.ConfigPath())
	}
	if err := config.Save(config.DefaultConfig()); err != nil {
		return err
	}
	fmt.Printf("  Wrote %s\n", config.ConfigPath())
	return nil
}

func runConfig(_ *cobra.Command, _ []string) error {
	fmt.Printf("  Config file: %s\n", config.ConfigPath())
	if config.Exists() {
		fmt.Println("  Status: loaded")
	} else {
		fmt.Println("  Status: using defaults (no config file)")
	}
	fmt.Println()

	fmt.Println("  [General]")
	fmt.Printf("    Default tier:  %s\n", cfg.General.DefaultTier)
	fmt.Printf("    Output dir:    %s\n", cfg.General.OutputDir)
	fmt.Println()

	path, priceDB := catalogSource()
	fmt.Println("  [Catalog]")
	switch {
	case path != "":
		fmt.Printf("    Source:        %s (CSV)\n", path)
	case priceDB != "":
		fmt.Printf("    Source:        %s (price book)\n", priceDB)
		printLastImport(priceDB)
	default:
		fmt.Println("    Source:        bundled")
	}
	if len(cfg.Catalog.Overrides) > 0 {
		keys := make([]string, 0, len(cfg.Catalog.Overrides))
		for k := range cfg.Catalog.Overrides {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		fmt.Println("    Overrides:")
		for _, k := range keys {
			if p := cfg.Catalog.Overrides[k].UnitPrice; p != nil {
				fmt.Printf("      %-22s %.2f\n", k, *p)
			}
		}
	}
	fmt.Println()

	fmt.Println("  [Server]")
	fmt.Printf("    Address:       %s\n", cfg.Server.Addr)
	return nil
}

func printLastImport(priceDB string) {
	if _, err := os.Stat(priceDB); err != nil {
		fmt.Println("    Imported:      never (file missing)")
		return
	}
	pb, err := store.Open(priceDB)
	if err != nil {
		fmt.Printf("    Imported:      unreadable (%v)\n", err)
		return
	}
	defer func() { _ = pb.Close() }()

	info, err := pb.LastImport()
	switch {
	case errors.Is(err, store.ErrEmpty):
		fmt.Println("    Imported:      never")
	case err != nil:
		fmt.Printf("    Imported:      unreadable (%v)\n", err)
	default:
		fmt.Printf("    Imported:      %s, %d entries from %s\n",
			info.ImportedAt.Local().Format("2006-01-02 15:04"), info.Entries, info.Source)
	}
}
