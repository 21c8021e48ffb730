package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"retroquest/internal/engine"
	"retroquest/internal/storage"
	"retroquest/internal/ui"
)

// RunBoard starts the interactive quest board.
func RunBoard(ctx context.Context, svc *engine.Service) error {
	p := tea.NewProgram(newBoardModel(ctx, svc), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

type questRow struct {
	id      string
	section string
}

// rows flattens quests into display order: active, completed, archived.
func (m boardModel) rows() []questRow {
	var out []questRow
	for _, status := range []string{storage.StatusActive, storage.StatusCompleted, storage.StatusArchived} {
		for i := range m.quests {
			if m.quests[i].Status == status {
				out = append(out, questRow{id: m.quests[i].ID, section: status})
			}
		}
	}
	return out
}

func (m boardModel) View() string {
	var b strings.Builder

	b.WriteString(ui.Heading(ui.IconQuest, "RetroQuest Board") + "\n")
	if m.profile != nil {
		stats := engine.Stats(m.profile.XP)
		b.WriteString(fmt.Sprintf("%s %s  %s Lv %d  %s %d XP  %s %d\n",
			m.profile.Avatar, m.profile.DisplayName,
			ui.IconTrophy, stats.Level,
			ui.IconBolt, m.profile.XP,
			ui.IconCoin, m.profile.Coins))
		b.WriteString(ui.ProgressBar(stats.ProgressPercent, 30) +
			ui.Muted.Render(fmt.Sprintf(" %d/%d to next level", stats.XPIntoLevel, stats.XPNeededForLevel)) + "\n")
	}

	if m.bannerLevel > 0 {
		b.WriteString("\n" + ui.Panel.Render(fmt.Sprintf("%s %s  You reached level %d!", ui.IconSparkle, ui.BadgeLevelUp, m.bannerLevel)) + "\n")
	}

	if m.loading {
		b.WriteString("\nLoading…\n")
		return b.String()
	}
	if m.err != nil {
		b.WriteString("\n" + ui.Bad.Render(ui.IconError+" "+m.err.Error()) + "\n")
	}

	rows := m.rows()
	if len(rows) == 0 {
		b.WriteString("\n" + ui.Muted.Render("No quests yet. Add one with: rq add") + "\n")
	}

	lastSection := ""
	for i, row := range rows {
		if row.section != lastSection {
			lastSection = row.section
			b.WriteString("\n" + ui.H2.Render(sectionHeading(row.section)) + "\n")
		}
		q := m.questByID(row.id)
		if q == nil {
			continue
		}
		line := m.questLine(q)
		if i == m.selected {
			line = ui.SelectedRow.Render("> " + line)
		} else {
			line = "  " + line
		}
		b.WriteString(line + "\n")
	}

	b.WriteString("\n" + ui.Muted.Render(m.lastLog) + "\n")
	b.WriteString(ui.Muted.Render("↑/↓ move · c complete · a archive · v revive · t timer start/pause · x timer reset · r refresh · q quit") + "\n")
	return b.String()
}

func (m boardModel) questByID(id string) *storage.Quest {
	for i := range m.quests {
		if m.quests[i].ID == id {
			return &m.quests[i]
		}
	}
	return nil
}

func (m boardModel) questLine(q *storage.Quest) string {
	line := fmt.Sprintf("%s  %s%d XP %s%d", q.Title, ui.IconBolt, q.XPReward, ui.IconCoin, q.CoinReward)
	if len(q.Tags) > 0 {
		line += "  " + ui.Muted.Render("#"+strings.Join(q.Tags, " #"))
	}
	if q.HasTimer() {
		t := engine.TimerFromQuest(q)
		line += fmt.Sprintf("  %s%s (%s)", ui.IconTimer, ui.Clock(t.Remaining), t.Phase())
	}
	if q.Deadline != nil && q.Status == storage.StatusActive {
		line += "  " + ui.Warn.Render("due "+q.Deadline.Format("2006-01-02"))
	}
	return line
}

func sectionHeading(status string) string {
	switch status {
	case storage.StatusActive:
		return ui.IconQuest + " Active Quests"
	case storage.StatusCompleted:
		return ui.IconDone + " Completed"
	case storage.StatusArchived:
		return ui.IconBox + " Archived"
	default:
		return status
	}
}
