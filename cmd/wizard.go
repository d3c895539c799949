package cmd

import (
	"fmt"
	"time"

	"github.com/theirongolddev/sienna/internal/wizard"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
)

var flagOutDir string

var wizardCmd = &cobra.Command{
	Use:   "wizard",
	Short: "Launch the interactive project wizard (default)",
	RunE:  runWizard,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagOutDir, "out", "o", "", "Directory for generated bundles (default from config)")
	rootCmd.AddCommand(wizardCmd)
}

func outputDir() string {
	if flagOutDir != "" {
		return flagOutDir
	}
	return cfg.General.OutputDir
}

func runWizard(_ *cobra.Command, _ []string) error {
	cat, _, _, err := loadCatalog()
	if err != nil {
		return err
	}
	tmpl, err := loadTemplate()
	if err != nil {
		return err
	}
	tier, err := resolveTier("")
	if err != nil {
		return err
	}

	lipgloss.SetColorProfile(termenv.TrueColor)

	m := wizard.New(wizard.Deps{
		Catalog:     cat,
		Template:    tmpl,
		OutputDir:   outputDir(),
		DefaultTier: tier,
		Now:         time.Now,
	})
	p := tea.NewProgram(m, tea.WithAltScreen())

	final, err := p.Run()
	if err != nil {
		return fmt.Errorf("wizard error: %w", err)
	}

	fm, ok := final.(wizard.Model)
	if !ok {
		return nil
	}
	switch {
	case fm.Err() != nil:
		fmt.Println("  ERROR: bundle generation failed")
		return fm.Err()
	case fm.OutputPath() != "":
		fmt.Printf("  Bundle written to %s\n", fm.OutputPath())
	case fm.Aborted():
		fmt.Println("  Cancelled.")
	}
	return nil
}
