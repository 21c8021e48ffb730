package root

import (
	"context"

	"github.com/spf13/cobra"

	"retroquest/internal/ui"
)

func newReviveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "revive <quest>",
		Short: "Return an archived quest to the active log",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx, printTo(cmd))
			if err != nil {
				return err
			}
			defer cleanup()

			q, err := resolveQuest(ctx, svc, args[0])
			if err != nil {
				return err
			}
			q, err = svc.ReviveQuest(ctx, q.ID)
			if err != nil {
				return err
			}
			cmd.Printf("%s Revived %s\n", ui.IconRevive, ui.Title.Render(q.Title))
			return nil
		},
	}
	return cmd
}
