package tui

import (
	"context"
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"retroquest/internal/engine"
	"retroquest/internal/storage"
)

// levelUpBannerTTL is how long the level-up banner stays before
// auto-dismissing.
const levelUpBannerTTL = 3 * time.Second

type boardModel struct {
	ctx context.Context
	svc *engine.Service

	width  int
	height int

	profile *storage.Profile
	quests  []storage.Quest

	selected int
	lastLog  string
	loading  bool
	err      error

	// Level-up banner state; zero newLevel means no banner.
	bannerLevel int

	// ticking is true while a 1s tick is scheduled, so only one chain of
	// ticks exists at a time.
	ticking bool
}

type loadedMsg struct {
	profile *storage.Profile
	quests  []storage.Quest
	err     error
}

type completedMsg struct {
	id  string
	res *engine.CompleteResult
	err error
}

type timerActionMsg struct {
	ev  *engine.TimerEvent
	err error
}

type tickMsg time.Time

type bannerExpiredMsg struct{}

func newBoardModel(ctx context.Context, svc *engine.Service) boardModel {
	return boardModel{
		ctx:     ctx,
		svc:     svc,
		loading: true,
		lastLog: "Loaded.",
	}
}

func (m boardModel) Init() tea.Cmd {
	return m.reconcileAndLoadCmd()
}

// reconcileAndLoadCmd corrects running timers for time spent away, then
// loads the board.
func (m boardModel) reconcileAndLoadCmd() tea.Cmd {
	return func() tea.Msg {
		if _, err := m.svc.ReconcileTimers(m.ctx, time.Now().UTC()); err != nil {
			return loadedMsg{err: err}
		}
		return m.load()
	}
}

func (m boardModel) loadCmd() tea.Cmd {
	return func() tea.Msg { return m.load() }
}

func (m boardModel) load() tea.Msg {
	p, err := m.svc.Profile(m.ctx)
	if err != nil {
		return loadedMsg{err: err}
	}
	quests, err := m.svc.QuestRepo().ListAll(m.ctx)
	if err != nil {
		return loadedMsg{err: err}
	}
	return loadedMsg{profile: p, quests: quests}
}

func (m boardModel) completeCmd(id string) tea.Cmd {
	return func() tea.Msg {
		// Cap breaches auto-confirm on the board; the CLI path prompts.
		res, err := m.svc.CompleteQuest(m.ctx, id, func(engine.CapCheck) bool { return true })
		return completedMsg{id: id, res: res, err: err}
	}
}

func (m boardModel) timerCmd(fn func() (*engine.TimerEvent, error)) tea.Cmd {
	return func() tea.Msg {
		ev, err := fn()
		return timerActionMsg{ev: ev, err: err}
	}
}

// tickCmd schedules the next one-second tick. Only scheduled while a
// displayed active quest has a running timer, so orphaned timers never tick.
func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func bannerCmd() tea.Cmd {
	return tea.Tick(levelUpBannerTTL, func(time.Time) tea.Msg { return bannerExpiredMsg{} })
}

// hasRunningTimer reports whether any active quest's timer is running.
func (m boardModel) hasRunningTimer() bool {
	for i := range m.quests {
		q := &m.quests[i]
		if q.Status == storage.StatusActive && q.HasTimer() && q.TimerRunning {
			return true
		}
	}
	return false
}

// maybeTick starts the tick chain if needed.
func (m *boardModel) maybeTick() tea.Cmd {
	if m.ticking || !m.hasRunningTimer() {
		return nil
	}
	m.ticking = true
	return tickCmd()
}

func (m boardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case loadedMsg:
		m.loading = false
		m.err = msg.err
		if msg.err != nil {
			m.lastLog = "Load failed: " + msg.err.Error()
			return m, nil
		}
		m.profile = msg.profile
		m.quests = msg.quests
		if m.selected >= len(m.rows()) {
			m.selected = max(0, len(m.rows())-1)
		}
		cmd := m.maybeTick()
		return m, cmd

	case completedMsg:
		if msg.err != nil {
			if errors.Is(msg.err, engine.ErrGuardSuppressed) {
				// Silent no-op per the guard contract.
				return m, nil
			}
			m.lastLog = "Complete failed: " + msg.err.Error()
			return m, nil
		}
		m.lastLog = fmt.Sprintf("Completed %q: +%d XP, +%d coins", msg.res.Quest.Title, msg.res.XPAwarded, msg.res.CoinsAwarded)
		var cmds []tea.Cmd
		cmds = append(cmds, m.loadCmd())
		if msg.res.LevelUp {
			m.bannerLevel = msg.res.LevelAfter
			cmds = append(cmds, bannerCmd())
		}
		return m, tea.Batch(cmds...)

	case timerActionMsg:
		if msg.err != nil {
			m.lastLog = "Timer: " + msg.err.Error()
			return m, nil
		}
		if msg.ev.Expired {
			m.lastLog = fmt.Sprintf("Timer expired: %q auto-completed", msg.ev.Quest.Title)
			var cmds []tea.Cmd
			cmds = append(cmds, m.loadCmd())
			if msg.ev.Completion != nil && msg.ev.Completion.LevelUp {
				m.bannerLevel = msg.ev.Completion.LevelAfter
				cmds = append(cmds, bannerCmd())
			}
			return m, tea.Batch(cmds...)
		}
		m.lastLog = fmt.Sprintf("Timer %s: %q", msg.ev.Phase, msg.ev.Quest.Title)
		return m, m.loadCmd()

	case tickMsg:
		m.ticking = false
		if !m.hasRunningTimer() {
			// Chain stops as soon as no displayed quest is ticking.
			return m, nil
		}
		cmd := m.tickRunningCmd()
		return m, cmd

	case bannerExpiredMsg:
		m.bannerLevel = 0
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

// tickRunningCmd advances every running timer by one second, then reloads
// and reschedules.
func (m *boardModel) tickRunningCmd() tea.Cmd {
	var ids []string
	for i := range m.quests {
		q := &m.quests[i]
		if q.Status == storage.StatusActive && q.HasTimer() && q.TimerRunning {
			ids = append(ids, q.ID)
		}
	}
	m.ticking = true
	return tea.Batch(
		func() tea.Msg {
			for _, id := range ids {
				ev, err := m.svc.TickTimer(m.ctx, id)
				if err != nil {
					continue
				}
				if ev.Expired {
					return timerActionMsg{ev: ev}
				}
			}
			return m.load()
		},
		tickCmd(),
	)
}

func (m boardModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "r":
		m.loading = true
		m.lastLog = "Refreshing…"
		return m, m.loadCmd()
	case "up", "k":
		if m.selected > 0 {
			m.selected--
		}
		return m, nil
	case "down", "j":
		if m.selected < len(m.rows())-1 {
			m.selected++
		}
		return m, nil
	case "c", " ":
		q := m.selectedQuest()
		if q == nil {
			return m, nil
		}
		if q.Status != storage.StatusActive {
			m.lastLog = "Only active quests can be completed."
			return m, nil
		}
		return m, m.completeCmd(q.ID)
	case "a":
		q := m.selectedQuest()
		if q == nil || q.Status == storage.StatusArchived {
			return m, nil
		}
		id := q.ID
		return m, func() tea.Msg {
			if _, err := m.svc.ArchiveQuest(m.ctx, id); err != nil {
				return loadedMsg{err: err}
			}
			return m.load()
		}
	case "v":
		q := m.selectedQuest()
		if q == nil || q.Status != storage.StatusArchived {
			return m, nil
		}
		id := q.ID
		return m, func() tea.Msg {
			if _, err := m.svc.ReviveQuest(m.ctx, id); err != nil {
				return loadedMsg{err: err}
			}
			return m.load()
		}
	case "t":
		q := m.selectedQuest()
		if q == nil || !q.HasTimer() {
			m.lastLog = "No timer on this quest."
			return m, nil
		}
		id := q.ID
		if q.TimerRunning {
			return m, m.timerCmd(func() (*engine.TimerEvent, error) { return m.svc.PauseTimer(m.ctx, id) })
		}
		return m, m.timerCmd(func() (*engine.TimerEvent, error) { return m.svc.StartTimer(m.ctx, id) })
	case "x":
		q := m.selectedQuest()
		if q == nil || !q.HasTimer() {
			return m, nil
		}
		id := q.ID
		return m, m.timerCmd(func() (*engine.TimerEvent, error) { return m.svc.ResetTimer(m.ctx, id) })
	}
	return m, nil
}

func (m boardModel) selectedQuest() *storage.Quest {
	rows := m.rows()
	if m.selected < 0 || m.selected >= len(rows) {
		return nil
	}
	for i := range m.quests {
		if m.quests[i].ID == rows[m.selected].id {
			return &m.quests[i]
		}
	}
	return nil
}
