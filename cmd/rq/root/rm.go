package root

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"retroquest/internal/ui"
)

func newRemoveCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "rm <quest>",
		Short: "Delete a quest permanently",
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
			if !yes {
				return errors.New("deletion is irreversible; pass --yes to confirm")
			}
			if err := svc.DeleteQuest(ctx, q.ID); err != nil {
				return err
			}
			cmd.Printf("%s Deleted %s\n", ui.IconError, ui.Muted.Render(q.Title))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Confirm deletion")

	return cmd
}
