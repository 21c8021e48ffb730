package root

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"retroquest/internal/ui"
)

func newResetCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Wipe all data and start over",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return errors.New("this erases your profile, quests, shop, and history; pass --yes to confirm")
			}

			ctx := context.Background()
			svc, cleanup, err := openService(ctx, nil)
			if err != nil {
				return err
			}
			defer cleanup()

			if err := svc.WipeAll(ctx); err != nil {
				return err
			}
			cmd.Println(ui.IconSparkle + " A fresh start. Welcome back, Adventurer.")
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Confirm the wipe")

	return cmd
}
