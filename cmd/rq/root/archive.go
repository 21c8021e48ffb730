package root

import (
	"context"

	"github.com/spf13/cobra"

	"retroquest/internal/ui"
)

func newArchiveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "archive <quest>",
		Short: "Archive a quest (rewards stay applied)",
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
			q, err = svc.ArchiveQuest(ctx, q.ID)
			if err != nil {
				return err
			}
			cmd.Printf("%s Archived %s\n", ui.IconBox, ui.Title.Render(q.Title))
			return nil
		},
	}
	return cmd
}
