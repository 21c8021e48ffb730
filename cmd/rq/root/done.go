package root

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"retroquest/internal/engine"
	"retroquest/internal/ui"
)

func newDoneCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "done <quest>",
		Short: "Complete a quest and collect its rewards",
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

			confirm := func(check engine.CapCheck) bool {
				if yes {
					return true
				}
				cmd.Printf("%s %s Continue anyway? [y/N] ", ui.IconWarn, check.Message)
				reader := bufio.NewReader(os.Stdin)
				line, _ := reader.ReadString('\n')
				answer := strings.ToLower(strings.TrimSpace(line))
				return answer == "y" || answer == "yes"
			}

			res, err := svc.CompleteQuest(ctx, q.ID, confirm)
			if err != nil {
				var declined engine.CapDeclinedError
				if errors.As(err, &declined) {
					cmd.Println(ui.Muted.Render("Aborted; nothing changed."))
					return nil
				}
				return err
			}

			cmd.Printf("%s Completed %s\n", ui.IconDone, ui.Title.Render(res.Quest.Title))
			cmd.Printf("  +%d XP, +%d coins → %s%d XP, %s%d coins\n",
				res.XPAwarded, res.CoinsAwarded,
				ui.IconBolt, res.Profile.XP, ui.IconCoin, res.Profile.Coins)
			if res.LevelUp {
				cmd.Println(fmt.Sprintf("%s %s You reached level %d!", ui.IconSparkle, ui.BadgeLevelUp, res.LevelAfter))
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Confirm cap warnings without prompting")

	return cmd
}
