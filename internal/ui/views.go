package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"focusflow/internal/domain"
	"focusflow/internal/errors"
	"focusflow/internal/session"
	"focusflow/internal/timer"
	"focusflow/internal/validation"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var body string
	switch m.ctrl.Phase() {
	case session.PhaseHome:
		body = m.viewHome()
	case session.PhaseTimer:
		body = m.viewTimer()
	case session.PhaseChecklist:
		body = m.viewChecklist()
	case session.PhaseBreak:
		body = m.viewBreak()
	}

	header := titleStyle.Render("FocusFlow")

	sections := []string{header, body}
	if m.errMsg != "" {
		sections = append(sections, errorStyle.Render(m.errMsg))
	}
	sections = append(sections, helpStyle.Render(m.helpLine()))

	return lipgloss.JoinVertical(lipgloss.Left, sections...) + "\n"
}

func (m Model) viewHome() string {
	var b strings.Builder

	if m.ctrl.AudioReady() {
		b.WriteString("Start a focus session\n\n")
	} else {
		b.WriteString("Start a focus session " + helpStyle.Render("(preparing sounds...)") + "\n\n")
	}
	b.WriteString("Task:     " + m.inputs[fieldTitle].View() + "\n")
	b.WriteString("Minutes:  " + m.inputs[fieldDuration].View() + "\n")
	b.WriteString("Subtasks: " + m.inputs[fieldSubtasks].View() + "\n")

	form := boxStyle.Render(strings.TrimRight(b.String(), "\n"))

	var summary strings.Builder
	if m.todayLog != nil && len(m.todayLog.Tasks) > 0 {
		total := 0
		for _, task := range m.todayLog.Tasks {
			total += task.DurationMinutes
		}
		fmt.Fprintf(&summary, "Today: %d session(s), %dh %dm focused\n",
			len(m.todayLog.Tasks), total/60, total%60)
		last := m.todayLog.Tasks[len(m.todayLog.Tasks)-1]
		summary.WriteString(praiseStyle.Render(domain.PraiseFor(last.ID)) + "\n")
	}
	if len(m.stamps) > 0 {
		summary.WriteString(stampStyle.Render(fmt.Sprintf("Stamps this month: %s", strings.Repeat("● ", len(m.stamps)))) + "\n")
	}

	if summary.Len() == 0 {
		return form
	}
	return lipgloss.JoinVertical(lipgloss.Left, form, strings.TrimRight(summary.String(), "\n"))
}

func (m Model) viewTimer() string {
	sess := m.ctrl.Session()
	if sess == nil {
		return ""
	}

	var b strings.Builder
	b.WriteString(sess.Title + "\n\n")

	readout := clockStyle.Render(bigClock(timer.FormatSeconds(m.last.RemainingSec)))
	if m.ctrl.TimeUp() {
		readout = timeUpStyle.Render(" TIME'S UP ") + "\n" + readout
	}
	b.WriteString(readout + "\n\n")

	total := sess.DurationMinutes * 60
	b.WriteString(progressBar(total-m.last.RemainingSec, total, barWidth(m.width)) + "\n")

	if focus := m.ctrl.Focus(); focus != nil && len(focus.Subtasks()) > 0 {
		b.WriteString("\n")
		if m.showList {
			for i, st := range focus.Subtasks() {
				line := fmt.Sprintf("[ ] %s", st.Title)
				switch {
				case st.IsCompleted:
					line = doneStyle.Render(fmt.Sprintf("[x] %s", st.Title))
				case i == focus.FocusIndex():
					line = focusStyle.Render("[>] " + st.Title)
				}
				b.WriteString(line + "\n")
			}
		} else if current, ok := focus.Current(); ok {
			b.WriteString("Now: " + focusStyle.Render(current.Title) + "\n")
		} else {
			b.WriteString(focusStyle.Render("All subtasks complete!") + "\n")
		}
	}

	if notes := sess.Interruptions; len(notes) > 0 {
		fmt.Fprintf(&b, "\n%d memo(s) captured\n", len(notes))
	}

	if m.memoOpen {
		b.WriteString("\nMemo: " + m.memo.View() + "\n")
	}

	return boxStyle.Render(strings.TrimRight(b.String(), "\n"))
}

func (m Model) viewChecklist() string {
	var b strings.Builder
	b.WriteString("Session wrap-up\n\n")

	refreshMark := " "
	if m.ctrl.RefreshDone() {
		refreshMark = "x"
	}
	fmt.Fprintf(&b, "[%s] 1. Step away and refresh\n", refreshMark)
	fmt.Fprintf(&b, "[ ] 2. Log the session\n")

	return boxStyle.Render(strings.TrimRight(b.String(), "\n"))
}

func (m Model) viewBreak() string {
	var b strings.Builder
	b.WriteString("Break time\n\n")
	b.WriteString(clockStyle.Render(bigClock(timer.FormatSeconds(m.last.RemainingSec))) + "\n")

	if m.last.BreakOver {
		b.WriteString("\n" + focusStyle.Render("Break's over. Ready for the next round?") + "\n")
	}

	if task := m.ctrl.LastTask(); task != nil {
		b.WriteString("\n" + praiseStyle.Render(domain.PraiseFor(task.ID)) + "\n")
	}
	if m.ctrl.StampNewlyEarned() {
		b.WriteString(stampStyle.Render("You earned today's stamp! ●") + "\n")
	}

	return boxStyle.Render(strings.TrimRight(b.String(), "\n"))
}

func (m Model) helpLine() string {
	switch m.ctrl.Phase() {
	case session.PhaseHome:
		return "tab: next field • enter: start • q: quit"
	case session.PhaseTimer:
		if m.memoOpen {
			return "enter: save memo • esc: cancel"
		}
		return "s: stop • m: memo • space: done subtask • k: skip • f: list"
	case session.PhaseChecklist:
		return "1: refresh done • 2: log the session"
	case session.PhaseBreak:
		return "enter: back to start"
	}
	return ""
}

// bigClock spaces out the MM:SS readout so it reads at a glance
func bigClock(readout string) string {
	return strings.Join(strings.Split(readout, ""), " ")
}

func barWidth(termWidth int) int {
	if termWidth <= 0 {
		return 30
	}
	w := termWidth - 12
	if w < 10 {
		w = 10
	}
	if w > 50 {
		w = 50
	}
	return w
}

func progressBar(done, total, width int) string {
	if total <= 0 {
		total = 1
	}
	pct := (done * 100) / total
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}
	filled := (pct * width) / 100
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	return barStyle.Render(bar) + fmt.Sprintf(" %d%%", pct)
}

// userMessage maps controller errors to a line the screen can show
func userMessage(err error) string {
	if validationErr, ok := err.(*validation.ValidationError); ok {
		return validationErr.GetUserFriendlyMessage()
	}
	if _, ok := errors.AsAppError(err); ok {
		return errors.GetUserMessage(err)
	}
	return err.Error()
}
