package root

import (
	"context"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"retroquest/internal/engine"
	"retroquest/internal/storage"
	"retroquest/internal/ui"
)

func newLogCmd() *cobra.Command {
	var (
		tag    string
		sortBy string
		status string
	)

	cmd := &cobra.Command{
		Use:   "log",
		Short: "Show the quest log",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx, printTo(cmd))
			if err != nil {
				return err
			}
			defer cleanup()

			quests, err := svc.QuestRepo().ListAll(ctx)
			if err != nil {
				return err
			}

			if tag != "" {
				quests = filterByTag(quests, tag)
			}
			switch sortBy {
			case "title":
				sort.SliceStable(quests, func(i, j int) bool {
					return strings.ToLower(quests[i].Title) < strings.ToLower(quests[j].Title)
				})
			case "deadline":
				// Quests without a deadline sink to the end.
				sort.SliceStable(quests, func(i, j int) bool {
					a, b := quests[i].Deadline, quests[j].Deadline
					switch {
					case a == nil:
						return false
					case b == nil:
						return true
					default:
						return a.Before(*b)
					}
				})
			}

			sections := []string{storage.StatusActive, storage.StatusCompleted, storage.StatusArchived}
			if status != "" {
				sections = []string{status}
			}

			cmd.Println(ui.Heading(ui.IconScroll, "Quest Log"))
			for _, st := range sections {
				var any bool
				for i := range quests {
					q := &quests[i]
					if q.Status != st {
						continue
					}
					if !any {
						any = true
						cmd.Println("\n" + ui.H2.Render(strings.ToUpper(st[:1])+st[1:]))
					}
					printQuestLine(cmd, q)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&tag, "tag", "", "Only quests carrying this tag")
	cmd.Flags().StringVar(&sortBy, "sort", "none", "Sort order (none|title|deadline)")
	cmd.Flags().StringVar(&status, "status", "", "Only one section (active|completed|archived)")

	return cmd
}

func filterByTag(quests []storage.Quest, tag string) []storage.Quest {
	var out []storage.Quest
	for _, q := range quests {
		for _, t := range q.Tags {
			if strings.EqualFold(t, tag) {
				out = append(out, q)
				break
			}
		}
	}
	return out
}

func printQuestLine(cmd *cobra.Command, q *storage.Quest) {
	line := "  " + ui.Muted.Render(shortID(q.ID)) + "  " + q.Title +
		"  " + ui.IconBolt + ui.Good.Render(strconv.Itoa(q.XPReward)) +
		" " + ui.IconCoin + ui.Gold.Render(strconv.Itoa(q.CoinReward))
	if len(q.Tags) > 0 {
		line += "  " + ui.Muted.Render("#"+strings.Join(q.Tags, " #"))
	}
	if q.Deadline != nil {
		line += "  " + ui.Warn.Render("due "+q.Deadline.Format(engine.DeadlineLayout))
	}
	if q.HasTimer() {
		t := engine.TimerFromQuest(q)
		line += "  " + ui.IconTimer + ui.Clock(t.Remaining) + " " + ui.Muted.Render(string(t.Phase()))
	}
	cmd.Println(line)
}
