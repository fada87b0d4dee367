package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"docqa/internal/app"
)

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show what is currently indexed",
		Args:  cobra.NoArgs,
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

			count, err := a.Index.Count(cmd.Context())
			if err != nil {
				return err
			}
			filenames, err := a.Index.ListFilenames(cmd.Context())
			if err != nil {
				return err
			}

			fmt.Printf("Store:    %s\n", cfg.VectorStore.Type)
			fmt.Printf("Provider: %s\n", cfg.Models.Provider)
			fmt.Printf("Chunks:   %d\n", count)
			fmt.Printf("Files:    %d\n", len(filenames))
			for _, name := range filenames {
				fmt.Printf("  - %s\n", name)
			}
			return nil
		},
	}
}
