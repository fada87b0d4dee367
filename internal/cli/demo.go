package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"docqa/internal/app"
	"docqa/internal/demo"
)

func newDemoCmd() *cobra.Command {
	var assetsDir string

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Index the bundled sample documents and answer the demo questions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			assets := demo.NewAssets(assetsDir)
			if missing := assets.Validate(); len(missing) > 0 {
				return fmt.Errorf("demo assets missing: %s", strings.Join(missing, ", "))
			}

			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			demo.ApplyOverrides(cfg)

			a, err := app.New(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer a.Close()

			indexed, failures, err := a.IngestFiles(cmd.Context(), assets.FilePaths())
			if err != nil {
				return err
			}
			if len(failures) > 0 {
				return fmt.Errorf("%d demo file(s) failed to ingest", len(failures))
			}
			fmt.Printf("Indexed %d chunks from the demo documents\n\n", indexed)

			questions, err := assets.LoadQuestions()
			if err != nil {
				return err
			}
			categories := make([]string, 0, len(questions))
			for category := range questions {
				categories = append(categories, category)
			}
			sort.Strings(categories)

			for _, category := range categories {
				fmt.Printf("=== %s ===\n", category)
				for _, question := range questions[category] {
					fmt.Printf("\nQ: %s\n", question)
					resp := a.Ask(cmd.Context(), question)
					fmt.Printf("A: %s\n", resp.Answer)
				}
				fmt.Println()
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&assetsDir, "assets", "demo_assets", "directory containing the demo documents")
	return cmd
}
