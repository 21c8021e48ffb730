package root

import (
	"context"
	"errors"
	"sort"
	"strconv"

	"github.com/spf13/cobra"

	"retroquest/internal/engine"
	"retroquest/internal/ui"
)

func newShopCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "shop",
		Short: "Browse and manage the reward shop",
	}
	cmd.AddCommand(
		newShopListCmd(),
		newShopAddCmd(),
		newShopBuyCmd(),
		newShopEditCmd(),
		newShopToggleCmd(),
		newShopRemoveCmd(),
	)
	return cmd
}

func newShopListCmd() *cobra.Command {
	var (
		all    bool
		sortBy string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List shop items",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx, printTo(cmd))
			if err != nil {
				return err
			}
			defer cleanup()

			items, err := svc.ItemRepo().ListAll(ctx)
			if err != nil {
				return err
			}
			p, err := svc.Profile(ctx)
			if err != nil {
				return err
			}

			switch sortBy {
			case "price-asc":
				sort.SliceStable(items, func(i, j int) bool { return items[i].Cost < items[j].Cost })
			case "price-desc":
				sort.SliceStable(items, func(i, j int) bool { return items[i].Cost > items[j].Cost })
			}

			cmd.Println(ui.Heading(ui.IconShop, "Shop") + "  " + ui.LabelValue("Coins", p.Coins))
			for i := range items {
				it := &items[i]
				if !it.Visible && !all {
					continue
				}
				line := "  " + ui.Muted.Render(shortID(it.ID)) + "  " + it.Title +
					"  " + ui.IconCoin + ui.Gold.Render(strconv.Itoa(it.Cost)) +
					"  " + ui.Muted.Render(it.Category)
				if !it.Visible {
					line += "  " + ui.Bad.Render("hidden")
				}
				if it.Cost > p.Coins {
					line += "  " + ui.Muted.Render("(can't afford)")
				}
				cmd.Println(line)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Include hidden items")
	cmd.Flags().StringVar(&sortBy, "sort", "none", "Sort order (none|price-asc|price-desc)")

	return cmd
}

func newShopAddCmd() *cobra.Command {
	var (
		desc     string
		cost     int
		category string
		hidden   bool
	)

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a reward to the shop",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx, printTo(cmd))
			if err != nil {
				return err
			}
			defer cleanup()

			it, err := svc.AddItem(ctx, engine.ItemInput{
				Title:       args[0],
				Description: desc,
				Cost:        cost,
				Category:    category,
				Visible:     !hidden,
			})
			if err != nil {
				return err
			}
			cmd.Printf("%s Added %s %s (%s%d, %s)\n", ui.IconShop, ui.Muted.Render(shortID(it.ID)), ui.Title.Render(it.Title), ui.IconCoin, it.Cost, it.Category)
			return nil
		},
	}

	cmd.Flags().StringVarP(&desc, "desc", "d", "", "Item description")
	cmd.Flags().IntVar(&cost, "cost", 0, "Cost in coins")
	cmd.Flags().StringVar(&category, "category", engine.CategoryMisc, "Category (Snack|Entertainment|Experience|Personal Care|Miscellaneous)")
	cmd.Flags().BoolVar(&hidden, "hidden", false, "Create hidden from the shop")

	return cmd
}

func newShopBuyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "buy <item>",
		Short: "Spend coins on a reward",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx, printTo(cmd))
			if err != nil {
				return err
			}
			defer cleanup()

			it, err := resolveItem(ctx, svc, args[0])
			if err != nil {
				return err
			}

			res, err := svc.PurchaseItem(ctx, it.ID)
			if err != nil {
				return err
			}
			cmd.Printf("%s Purchased %s for %s%d — %d coins left. Enjoy!\n",
				ui.IconDone, ui.Title.Render(res.Record.Title), ui.IconCoin, res.Record.Cost, res.Profile.Coins)
			return nil
		},
	}
	return cmd
}

func newShopEditCmd() *cobra.Command {
	var (
		title    string
		desc     string
		cost     int
		category string
	)

	cmd := &cobra.Command{
		Use:   "edit <item>",
		Short: "Edit a shop item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx, printTo(cmd))
			if err != nil {
				return err
			}
			defer cleanup()

			it, err := resolveItem(ctx, svc, args[0])
			if err != nil {
				return err
			}

			in := engine.ItemInput{
				Title:       it.Title,
				Description: it.Description,
				Cost:        it.Cost,
				Category:    it.Category,
				Visible:     it.Visible,
			}
			if cmd.Flags().Changed("title") {
				in.Title = title
			}
			if cmd.Flags().Changed("desc") {
				in.Description = desc
			}
			if cmd.Flags().Changed("cost") {
				in.Cost = cost
			}
			if cmd.Flags().Changed("category") {
				in.Category = category
			}

			it, err = svc.UpdateItem(ctx, it.ID, in)
			if err != nil {
				return err
			}
			cmd.Printf("%s Updated %s (%s%d, %s)\n", ui.IconShop, ui.Title.Render(it.Title), ui.IconCoin, it.Cost, it.Category)
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "New title")
	cmd.Flags().StringVarP(&desc, "desc", "d", "", "New description")
	cmd.Flags().IntVar(&cost, "cost", 0, "New cost")
	cmd.Flags().StringVar(&category, "category", "", "New category")

	return cmd
}

func newShopToggleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "toggle <item>",
		Short: "Show or hide an item in the shop",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx, printTo(cmd))
			if err != nil {
				return err
			}
			defer cleanup()

			it, err := resolveItem(ctx, svc, args[0])
			if err != nil {
				return err
			}
			it, err = svc.SetItemVisibility(ctx, it.ID, !it.Visible)
			if err != nil {
				return err
			}
			state := "visible"
			if !it.Visible {
				state = "hidden"
			}
			cmd.Printf("%s %s is now %s\n", ui.IconShop, ui.Title.Render(it.Title), state)
			return nil
		},
	}
	return cmd
}

func newShopRemoveCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "rm <item>",
		Short: "Delete a shop item (history keeps its purchases)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx, printTo(cmd))
			if err != nil {
				return err
			}
			defer cleanup()

			it, err := resolveItem(ctx, svc, args[0])
			if err != nil {
				return err
			}
			if !yes {
				return errors.New("deletion is irreversible; pass --yes to confirm")
			}
			if err := svc.DeleteItem(ctx, it.ID); err != nil {
				return err
			}
			cmd.Printf("%s Deleted %s\n", ui.IconError, ui.Muted.Render(it.Title))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Confirm deletion")

	return cmd
}
