package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"docqa/internal/app"
)

func newAskCmd() *cobra.Command {
	var noCitations bool

	cmd := &cobra.Command{
		Use:   "ask <question>",
		Short: "Ask a question about the indexed documents",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if noCitations {
				cfg.Features.Citations = false
			}
			a, err := app.New(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer a.Close()

			question := strings.Join(args, " ")
			resp := a.Ask(cmd.Context(), question)
			fmt.Println(resp.Answer)
			return nil
		},
	}

	cmd.Flags().BoolVar(&noCitations, "no-citations", false, "omit the Sources section from the answer")
	return cmd
}
