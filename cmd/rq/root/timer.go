package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"retroquest/internal/engine"
	"retroquest/internal/ui"
)

func newTimerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "timer <quest> <start|pause|reset>",
		Short: "Control a quest's countdown timer",
		Args:  cobra.ExactArgs(2),
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

			var ev *engine.TimerEvent
			switch args[1] {
			case "start":
				ev, err = svc.StartTimer(ctx, q.ID)
			case "pause":
				ev, err = svc.PauseTimer(ctx, q.ID)
			case "reset":
				ev, err = svc.ResetTimer(ctx, q.ID)
			default:
				return fmt.Errorf("unknown timer action %q (want start, pause, or reset)", args[1])
			}
			if err != nil {
				return err
			}

			t := engine.TimerFromQuest(ev.Quest)
			cmd.Printf("%s %s — %s, %s remaining\n", ui.IconTimer, ui.Title.Render(ev.Quest.Title), ev.Phase, ui.Clock(t.Remaining))
			return nil
		},
	}
	return cmd
}
