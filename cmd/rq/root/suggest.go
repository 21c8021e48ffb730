package root

import (
	"context"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"retroquest/internal/engine"
	"retroquest/internal/ui"
)

func newSuggestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "suggest [prompt]",
		Short: "Suggest quests and rewards from the built-in templates",
		Long:  "Suggests quest and shop-item templates matching an optional prompt. Suggestions are sized for your level but are not pre-validated; adding one goes through the normal validation, so over-cap rewards are still rejected.",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx, printTo(cmd))
			if err != nil {
				return err
			}
			defer cleanup()

			gctx, err := svc.GeneratorContext(ctx)
			if err != nil {
				return err
			}

			var gen engine.Generator = engine.TemplateGenerator{}
			suggestions, err := gen.Suggest(ctx, strings.Join(args, " "), gctx)
			if err != nil {
				return err
			}

			cmd.Println(ui.Heading(ui.IconSparkle, "Quest Master suggests"))
			cmd.Println(ui.Muted.Render("  (level " + strconv.Itoa(gctx.Level) +
				": quests cap at " + strconv.Itoa(gctx.MaxQuestXP) + " XP / " + strconv.Itoa(gctx.MaxQuestCoins) + " coins)"))
			if len(suggestions) == 0 {
				cmd.Println(ui.Muted.Render("  Nothing matched. Try a broader prompt."))
				return nil
			}

			for _, s := range suggestions {
				switch {
				case s.Quest != nil:
					line := "  " + ui.IconQuest + " " + ui.Title.Render(s.Name) +
						"  " + ui.IconBolt + strconv.Itoa(s.Quest.XPReward) +
						" " + ui.IconCoin + strconv.Itoa(s.Quest.CoinReward)
					if s.Quest.TimerDuration > 0 {
						line += "  " + ui.IconTimer + strconv.Itoa(s.Quest.TimerDuration) + "min"
					}
					cmd.Println(line)
					cmd.Println("    " + ui.Muted.Render(s.Quest.Description))
				case s.Item != nil:
					cmd.Println("  " + ui.IconShop + " " + ui.Title.Render(s.Name) +
						"  " + ui.IconCoin + strconv.Itoa(s.Item.Cost) +
						"  " + ui.Muted.Render(s.Item.Category))
					cmd.Println("    " + ui.Muted.Render(s.Item.Description))
				}
			}

			cmd.Println()
			cmd.Println(ui.Muted.Render("Add one with: rq add --template \"<name>\""))
			return nil
		},
	}
	return cmd
}
