package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/theirongolddev/sienna/internal/cli"
	"github.com/theirongolddev/sienna/internal/structure"

	"github.com/spf13/cobra"
)

var (
	flagContext  string
	flagTemplate string
)

var structureCmd = &cobra.Command{
	Use:   "structure",
	Short: "Preview the project folder tree",
	RunE:  runStructure,
}

func init() {
	structureCmd.Flags().StringVar(&flagContext, "context", "", "Project context, e.g. \"obra pública\" or \"remodelación\"")
	structureCmd.Flags().StringVar(&flagTemplate, "template", "", "YAML folder template (defaults to the bundled master tree)")
	structureCmd.Flags().BoolVar(&flagJSON, "json", false, "Print the tree as JSON")
	rootCmd.AddCommand(structureCmd)
}

func loadTemplate() (*structure.Template, error) {
	if flagTemplate == "" {
		return structure.DefaultTemplate(), nil
	}
	return structure.LoadTemplate(flagTemplate)
}

func runStructure(_ *cobra.Command, _ []string) error {
	tmpl, err := loadTemplate()
	if err != nil {
		return err
	}
	tree := tmpl.Generate(flagContext)

	if flagJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(tree)
	}

	fmt.Println()
	fmt.Println(cli.RenderTree(cli.FolderTree("Proyecto", tree)))
	if len(tree.Applied) > 0 {
		fmt.Printf("\n  Context rules: %v\n", tree.Applied)
	}
	fmt.Printf("  %d folders\n\n", len(tree.Paths()))
	return nil
}
