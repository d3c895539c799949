package cmd

import (
	"fmt"
	"time"

	"github.com/theirongolddev/sienna/internal/bundle"
	"github.com/theirongolddev/sienna/internal/estimate"
	"github.com/theirongolddev/sienna/internal/wizard"

	"github.com/spf13/cobra"
)

var (
	flagBundleName   string
	flagBundleAttach []string
)

var bundleCmd = &cobra.Command{
	Use:   "bundle",
	Short: "Generate a project zip with folders, budget and attachments",
	Example: "  sienna bundle --name \"Casa Norte\" --area 120 --tier medio\n" +
		"  sienna bundle --name \"Escuela 12\" --context \"obra pública\" --attach plano.dwg,contrato.pdf",
	RunE: runBundle,
}

func init() {
	bundleCmd.Flags().StringVar(&flagBundleName, "name", "", "Project name (required)")
	bundleCmd.Flags().StringVar(&flagContext, "context", "", "Project context, e.g. \"obra pública\"")
	bundleCmd.Flags().StringVar(&flagArea, "area", "", "Built area in m²; omit to skip the budget")
	bundleCmd.Flags().StringVar(&flagTier, "tier", "", "Finish tier: basic|medium|luxury")
	bundleCmd.Flags().StringVar(&flagPrefs, "prefs", "", "Free-text material preferences")
	bundleCmd.Flags().StringSliceVar(&flagBundleAttach, "attach", nil, "Files to place inside the project tree")
	bundleCmd.Flags().StringVar(&flagTemplate, "template", "", "YAML folder template")
	_ = bundleCmd.MarkFlagRequired("name")
	rootCmd.AddCommand(bundleCmd)
}

func runBundle(_ *cobra.Command, _ []string) error {
	cat, _, source, err := loadCatalog()
	if err != nil {
		return err
	}
	tmpl, err := loadTemplate()
	if err != nil {
		return err
	}

	var result *estimate.Result
	if flagArea != "" {
		req, err := buildRequest(flagArea, flagTier, flagPrefs)
		if err != nil {
			return err
		}
		res, err := estimate.New(cat).Estimate(req)
		if err != nil {
			return err
		}
		result = &res
		logf("Budget priced against %s catalog", source)
	}

	tree := tmpl.Generate(flagContext)
	if len(tree.Applied) > 0 {
		logf("Context rules applied: %v", tree.Applied)
	}

	deps := wizard.Deps{Catalog: cat, Template: tmpl, OutputDir: outputDir(), Now: time.Now}
	project := bundle.Project{Name: flagBundleName, Context: flagContext}

	path, man, err := wizard.WriteBundle(deps, project, tree, result, flagBundleAttach)
	if err != nil {
		fmt.Println("  ERROR: bundle generation failed")
		return err
	}

	fmt.Printf("  Bundle %s written to %s\n", man.ID, path)
	fmt.Printf("  %d folders, %d files\n", man.Dirs, len(man.Files))
	return nil
}
