// Package ui renders the interactive session screen. The model owns the
// phase controller and drives it from a quarter-second tick so the countdown
// stays anchored to the wall clock even when the terminal is backgrounded.
package ui

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"focusflow/internal/clock"
	"focusflow/internal/domain"
	"focusflow/internal/repository/sqlite"
	"focusflow/internal/session"
)

const tickInterval = 250 * time.Millisecond

type tickMsg time.Time

func tickCmd() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// stampsMsg delivers the current month's earned stamp dates
type stampsMsg []string

// logMsg delivers today's persisted log for the home screen
type logMsg *domain.DailyLog

// formField indexes the start form inputs
type formField int

const (
	fieldTitle formField = iota
	fieldDuration
	fieldSubtasks
	fieldCount
)

// Model is the bubbletea model for the session screen
type Model struct {
	ctrl *session.Controller
	repo sqlite.Repository
	clk  clock.Clock

	width  int
	height int

	inputs  []textinput.Model
	focused formField

	memo     textinput.Model
	memoOpen bool
	showList bool

	last     session.TickResult
	stamps   []string
	todayLog *domain.DailyLog
	errMsg   string
	quitting bool
}

// New creates the session screen model
func New(ctrl *session.Controller, repo sqlite.Repository, clk clock.Clock) Model {
	title := textinput.New()
	title.Placeholder = "What will you focus on?"
	title.CharLimit = 255
	title.Width = 40
	title.Focus()

	duration := textinput.New()
	duration.Placeholder = "25"
	duration.CharLimit = 3
	duration.Width = 6

	subtasks := textinput.New()
	subtasks.Placeholder = "outline, draft, review (optional)"
	subtasks.CharLimit = 255
	subtasks.Width = 40

	memo := textinput.New()
	memo.Placeholder = "What interrupted you?"
	memo.CharLimit = 255
	memo.Width = 40

	return Model{
		ctrl:   ctrl,
		repo:   repo,
		clk:    clk,
		inputs: []textinput.Model{title, duration, subtasks},
		memo:   memo,
	}
}

// Run wires the model into a bubbletea program and blocks until quit
func Run(ctrl *session.Controller, repo sqlite.Repository, clk clock.Clock) error {
	p := tea.NewProgram(New(ctrl, repo, clk), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(tickCmd(), m.loadStampsCmd(), m.loadLogCmd(), textinput.Blink)
}

// loadStampsCmd fetches the earned stamp dates for the current month
func (m Model) loadStampsCmd() tea.Cmd {
	repo, clk := m.repo, m.clk
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		dates, err := repo.ListStamps(ctx, clk.Now().Format("2006-01"))
		if err != nil {
			return stampsMsg(nil)
		}
		return stampsMsg(dates)
	}
}

// loadLogCmd fetches today's log for the home screen summary
func (m Model) loadLogCmd() tea.Cmd {
	repo, clk := m.repo, m.clk
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		log, err := repo.GetDailyLog(ctx, domain.DateKey(clk.Now()))
		if err != nil {
			return logMsg(nil)
		}
		return logMsg(log)
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tickMsg:
		phase := m.ctrl.Phase()
		if phase == session.PhaseTimer || phase == session.PhaseBreak {
			m.last = m.ctrl.Tick(m.clk.Now())
		}
		return m, tickCmd()

	case stampsMsg:
		m.stamps = msg
		return m, nil

	case logMsg:
		m.todayLog = msg
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.quitting = true
			return m, tea.Quit
		}
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.ctrl.Phase() {
	case session.PhaseHome:
		return m.updateHome(msg)
	case session.PhaseTimer:
		return m.updateTimer(msg)
	case session.PhaseChecklist:
		return m.updateChecklist(msg)
	case session.PhaseBreak:
		return m.updateBreak(msg)
	}
	return m, nil
}

func (m Model) updateHome(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc":
		m.quitting = true
		return m, tea.Quit

	case "tab", "down":
		return m.focusField((m.focused + 1) % fieldCount), nil

	case "shift+tab", "up":
		return m.focusField((m.focused + fieldCount - 1) % fieldCount), nil

	case "enter":
		if m.focused != fieldSubtasks {
			return m.focusField(m.focused + 1), nil
		}
		return m.startSession()
	}

	var cmd tea.Cmd
	m.inputs[m.focused], cmd = m.inputs[m.focused].Update(msg)
	return m, cmd
}

func (m Model) focusField(field formField) Model {
	m.focused = field
	for i := range m.inputs {
		if formField(i) == field {
			m.inputs[i].Focus()
		} else {
			m.inputs[i].Blur()
		}
	}
	return m
}

func (m Model) startSession() (tea.Model, tea.Cmd) {
	if !m.ctrl.AudioReady() {
		m.errMsg = "Preparing sounds, one moment..."
		return m, nil
	}

	title := m.inputs[fieldTitle].Value()

	minutes := 25
	if raw := strings.TrimSpace(m.inputs[fieldDuration].Value()); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			m.errMsg = "Duration must be a number of minutes."
			return m, nil
		}
		minutes = parsed
	}

	var subtasks []domain.Subtask
	for _, part := range strings.Split(m.inputs[fieldSubtasks].Value(), ",") {
		if name := strings.TrimSpace(part); name != "" {
			subtasks = append(subtasks, domain.NewSubtask(name))
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := m.ctrl.Start(ctx, title, minutes, subtasks); err != nil {
		m.errMsg = userMessage(err)
		return m, nil
	}

	m.errMsg = ""
	m.last = session.TickResult{Phase: session.PhaseTimer, RemainingSec: minutes * 60}
	for i := range m.inputs {
		m.inputs[i].SetValue("")
	}
	return m.focusField(fieldTitle), nil
}

func (m Model) updateTimer(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.memoOpen {
		switch msg.String() {
		case "enter":
			note := strings.TrimSpace(m.memo.Value())
			if note != "" {
				if err := m.ctrl.AddInterruption(note); err != nil {
					m.errMsg = userMessage(err)
				}
			}
			m.memo.SetValue("")
			m.memo.Blur()
			m.memoOpen = false
			return m, nil
		case "esc":
			m.memo.SetValue("")
			m.memo.Blur()
			m.memoOpen = false
			return m, nil
		}
		var cmd tea.Cmd
		m.memo, cmd = m.memo.Update(msg)
		return m, cmd
	}

	switch msg.String() {
	case "s", "enter":
		if err := m.ctrl.Stop(); err != nil {
			m.errMsg = userMessage(err)
		}
		return m, nil

	case "m":
		m.memoOpen = true
		return m, m.memo.Focus()

	case " ":
		if _, err := m.ctrl.AdvanceSubtask(); err != nil {
			m.errMsg = userMessage(err)
		}
		return m, nil

	case "k":
		if err := m.ctrl.SkipSubtask(); err != nil {
			m.errMsg = userMessage(err)
		}
		return m, nil

	case "f":
		m.showList = !m.showList
		return m, nil
	}

	return m, nil
}

func (m Model) updateChecklist(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "1":
		if err := m.ctrl.CompleteRefresh(); err != nil {
			m.errMsg = userMessage(err)
		}
		return m, nil

	case "2", "enter":
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := m.ctrl.CompleteChecklist(ctx); err != nil {
			m.errMsg = userMessage(err)
			return m, nil
		}
		m.errMsg = ""
		m.last = session.TickResult{
			Phase:        session.PhaseBreak,
			RemainingSec: int(session.BreakDuration / time.Second),
		}
		return m, tea.Batch(m.loadStampsCmd(), m.loadLogCmd())
	}

	return m, nil
}

func (m Model) updateBreak(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter", " ":
		if err := m.ctrl.FinishBreak(); err != nil {
			m.errMsg = userMessage(err)
			return m, nil
		}
		m.errMsg = ""
		m.showList = false
		return m, nil
	}

	return m, nil
}
