package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"retroquest/internal/engine"
	"retroquest/internal/storage"
	"retroquest/internal/ui"
)

func newStatusCmd() *cobra.Command {
	var (
		name   string
		class  string
		avatar string
	)

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show profile, level progress, and reward caps",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx, printTo(cmd))
			if err != nil {
				return err
			}
			defer cleanup()

			p, err := svc.Profile(ctx)
			if err != nil {
				return err
			}
			if name != "" || class != "" || avatar != "" {
				p, err = svc.UpdateProfileCosmetics(ctx, name, class, avatar)
				if err != nil {
					return err
				}
			}

			stats := engine.Stats(p.XP)

			cmd.Println(ui.Heading(ui.IconSparkle, "Adventurer Status"))
			cmd.Printf("%s %s the %s\n", p.Avatar, ui.Title.Render(p.DisplayName), p.Class)
			cmd.Println(ui.LabelValue("Level", stats.Level))
			cmd.Println(ui.LabelValue("XP", fmt.Sprintf("%d (%d/%d into level %d)", p.XP, stats.XPIntoLevel, stats.XPNeededForLevel, stats.Level)))
			cmd.Println(ui.ProgressBar(stats.ProgressPercent, 30) + ui.Muted.Render(fmt.Sprintf(" %.0f%%", stats.ProgressPercent)))
			cmd.Println(ui.LabelValue("Coins", p.Coins))
			cmd.Println(ui.LabelValue("Quests completed", p.QuestsCompleted))
			cmd.Println(ui.LabelValue("Lifetime XP", p.TotalXPGained))
			cmd.Println()

			cmd.Println(ui.H2.Render("📊 Caps at this level"))
			cmd.Printf("- %s %d XP, %d coins\n", ui.Key.Render("Per quest:"), engine.MaxQuestXP(stats.Level), engine.MaxQuestCoins(stats.Level))
			cmd.Printf("- %s %d XP, %d coins\n", ui.Key.Render("Global (soft):"), engine.GlobalXPCap(stats.Level), engine.GlobalCoinCap(stats.Level))
			cmd.Println()

			quests, err := svc.QuestRepo().ListByStatus(ctx, storage.StatusActive)
			if err != nil {
				return err
			}
			cmd.Println(ui.LabelValue("Active quests", len(quests)))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Set display name")
	cmd.Flags().StringVar(&class, "class", "", "Set class (Warrior|Mage|Rogue|Cleric)")
	cmd.Flags().StringVar(&avatar, "avatar", "", "Set avatar emoji")

	return cmd
}
