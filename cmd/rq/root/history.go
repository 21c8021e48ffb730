package root

import (
	"context"
	"strconv"

	"github.com/spf13/cobra"

	"retroquest/internal/ui"
)

func newHistoryCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show purchase history, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx, printTo(cmd))
			if err != nil {
				return err
			}
			defer cleanup()

			purchases, err := svc.PurchaseHistory(ctx, limit)
			if err != nil {
				return err
			}

			cmd.Println(ui.Heading(ui.IconScroll, "Purchase History"))
			if len(purchases) == 0 {
				cmd.Println(ui.Muted.Render("  Nothing purchased yet."))
				return nil
			}
			for _, p := range purchases {
				cmd.Println("  " + ui.Muted.Render(p.PurchasedAt.Format("2006-01-02 15:04")) +
					"  " + p.Title + "  " + ui.IconCoin + ui.Gold.Render(strconv.Itoa(p.Cost)))
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Max entries (0 = all)")

	return cmd
}
