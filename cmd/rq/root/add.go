package root

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"retroquest/internal/engine"
	"retroquest/internal/ui"
)

func newAddCmd() *cobra.Command {
	var (
		desc     string
		xp       int
		coins    int
		deadline string
		tags     string
		timer    int
		template string
		force    bool
	)

	cmd := &cobra.Command{
		Use:   "add [title]",
		Short: "Add a quest",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 && template == "" {
				return errors.New("title is required (or use --template)")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx, printTo(cmd))
			if err != nil {
				return err
			}
			defer cleanup()

			in := engine.QuestInput{
				Description:    desc,
				XPReward:       xp,
				CoinReward:     coins,
				Deadline:       deadline,
				TimerDuration:  timer,
				AllowDuplicate: force,
			}
			if tags != "" {
				in.Tags = strings.Split(tags, ",")
			}
			if len(args) == 1 {
				in.Title = args[0]
			}

			if template != "" {
				s := engine.FindSuggestion(template)
				if s == nil || s.Quest == nil {
					return fmt.Errorf("no quest template named %q", template)
				}
				base := *s.Quest
				base.AllowDuplicate = force
				if in.Title != "" {
					base.Title = in.Title
				}
				if deadline != "" {
					base.Deadline = deadline
				}
				in = base
			}

			q, err := svc.AddQuest(ctx, in)
			if err != nil {
				var dup engine.DuplicateTitleError
				if errors.As(err, &dup) {
					return fmt.Errorf("%w; pass --force to add it anyway", err)
				}
				return err
			}

			cmd.Printf("%s Added quest %s %s\n", ui.IconQuest, ui.Muted.Render(shortID(q.ID)), ui.Title.Render(q.Title))
			cmd.Printf("  %s%d XP  %s%d coins", ui.IconBolt, q.XPReward, ui.IconCoin, q.CoinReward)
			if q.HasTimer() {
				cmd.Printf("  %s%d min", ui.IconTimer, *q.TimerDuration)
			}
			cmd.Println()
			return nil
		},
	}

	cmd.Flags().StringVarP(&desc, "desc", "d", "", "Quest description")
	cmd.Flags().IntVar(&xp, "xp", 0, "XP reward (capped at level*50)")
	cmd.Flags().IntVar(&coins, "coins", 0, "Coin reward (capped at level*20)")
	cmd.Flags().StringVar(&deadline, "deadline", "", "Deadline (YYYY-MM-DD)")
	cmd.Flags().StringVar(&tags, "tags", "", "Comma-separated tags")
	cmd.Flags().IntVar(&timer, "timer", 0, "Countdown timer in minutes (0 = none)")
	cmd.Flags().StringVar(&template, "template", "", "Start from a built-in template (see rq suggest)")
	cmd.Flags().BoolVar(&force, "force", false, "Allow a duplicate title")

	return cmd
}

func printTo(cmd *cobra.Command) func(string) {
	return func(line string) { cmd.Println(line) }
}
