package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"docqa/internal/app"
)

func newIngestCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ingest <file>...",
		Short: "Parse, chunk and index documents",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			a, err := app.New(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer a.Close()

			indexed, failures, err := a.IngestFiles(cmd.Context(), args)
			if err != nil {
				return err
			}

			fmt.Printf("Indexed %d chunks from %d file(s)\n", indexed, len(args)-len(failures))
			for _, f := range failures {
				fmt.Printf("  skipped %s: %v\n", f.Filename, f.Err)
			}
			if indexed == 0 && len(failures) == len(args) {
				return fmt.Errorf("no files could be ingested")
			}
			return nil
		},
	}
}
