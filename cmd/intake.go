package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/theirongolddev/sienna/internal/cli"
	"github.com/theirongolddev/sienna/internal/intake"

	"github.com/spf13/cobra"
)

var intakeCmd = &cobra.Command{
	Use:   "intake TEXT",
	Short: "Show what can be inferred from a project description",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runIntake,
}

func init() {
	intakeCmd.Flags().BoolVar(&flagJSON, "json", false, "Print the inference as JSON")
	rootCmd.AddCommand(intakeCmd)
}

func runIntake(_ *cobra.Command, args []string) error {
	in := intake.Parse(strings.Join(args, " "))

	if flagJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(in)
	}

	found := func(ok bool, v string) string {
		if !ok || v == "" {
			return "-"
		}
		return v
	}

	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "Intake",
		Headers: []string{"Field", "Value"},
		Rows: [][]string{
			{"Area", found(in.AreaFound, cli.FormatArea(in.Area))},
			{"Tier", found(in.TierFound, in.Tier.Label())},
			{"Context", found(true, in.Context)},
			{"Materials", found(true, strings.Join(in.Materials, ", "))},
		},
	}))
	fmt.Println()
	return nil
}
