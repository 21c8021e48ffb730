package root

import (
	"context"

	"github.com/spf13/cobra"

	"retroquest/internal/tui"
)

func newBoardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "board",
		Short: "Open the interactive quest board",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx, nil)
			if err != nil {
				return err
			}
			defer cleanup()

			return tui.RunBoard(ctx, svc)
		},
	}
	return cmd
}
