package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/theirongolddev/sienna/internal/cli"
	"github.com/theirongolddev/sienna/internal/estimate"

	"github.com/spf13/cobra"
)

var (
	flagArea  string
	flagTier  string
	flagPrefs string
	flagItems bool
	flagJSON  bool
)

var estimateCmd = &cobra.Command{
	Use:   "estimate",
	Short: "Estimate a construction budget",
	Example: "  sienna estimate --area 120 --tier medio --prefs \"piso de mármol, muros de block\"\n" +
		"  sienna estimate --area 85 --tier lujo --items",
	RunE: runEstimate,
}

func init() {
	estimateCmd.Flags().StringVar(&flagArea, "area", "", "Built area in m² (required)")
	estimateCmd.Flags().StringVar(&flagTier, "tier", "", "Finish tier: basic|medium|luxury (básico|medio|lujo)")
	estimateCmd.Flags().StringVar(&flagPrefs, "prefs", "", "Free-text material preferences")
	estimateCmd.Flags().BoolVar(&flagItems, "items", false, "Show every line item")
	estimateCmd.Flags().BoolVar(&flagJSON, "json", false, "Print the result as JSON")
	_ = estimateCmd.MarkFlagRequired("area")
	rootCmd.AddCommand(estimateCmd)
}

func buildRequest(area, tier, prefs string) (estimate.Request, error) {
	a, err := estimate.ParseArea(area)
	if err != nil {
		return estimate.Request{}, err
	}
	t, err := resolveTier(tier)
	if err != nil {
		return estimate.Request{}, err
	}
	req := estimate.Request{Area: a, Tier: t, Preferences: prefs}
	return req, req.Validate()
}

func runEstimate(_ *cobra.Command, _ []string) error {
	req, err := buildRequest(flagArea, flagTier, flagPrefs)
	if err != nil {
		return err
	}

	cat, _, source, err := loadCatalog()
	if err != nil {
		return err
	}
	logf("Pricing against %s catalog (%d entries)", source, cat.Len())

	res, err := estimate.New(cat).Estimate(req)
	if err != nil {
		return err
	}

	if flagJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(struct {
			estimate.Result
			Breakdown []estimate.CategoryBreakdown `json:"breakdown"`
		}{res, res.Breakdown()})
	}

	fmt.Println()
	fmt.Print(cli.RenderBudget(res, flagItems))
	fmt.Println()
	return nil
}
