// Package export renders a daily log as a Markdown document so the day's
// record can be pasted into a journal or shared outside the tool.
package export

import (
	"fmt"
	"sort"
	"strings"

	"focusflow/internal/domain"
)

// Markdown renders the given daily log as a Markdown document. Events and
// tasks are sorted by their start times; the stored order is left untouched.
func Markdown(log *domain.DailyLog) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", log.Date)

	b.WriteString("## Events\n")
	if len(log.Events) == 0 {
		b.WriteString("- No events recorded.\n")
	} else {
		events := make([]domain.Event, len(log.Events))
		copy(events, log.Events)
		sort.SliceStable(events, func(i, j int) bool {
			return events[i].StartTime < events[j].StartTime
		})
		for _, evt := range events {
			fmt.Fprintf(&b, "- %s - %s : %s\n", evt.StartTime, evt.EndTime, evt.Title)
		}
	}
	b.WriteString("\n")

	b.WriteString("## Tasks\n")
	if len(log.Tasks) == 0 {
		b.WriteString("- No tasks recorded.\n")
		return b.String()
	}

	tasks := make([]domain.Task, len(log.Tasks))
	copy(tasks, log.Tasks)
	sort.SliceStable(tasks, func(i, j int) bool {
		return tasks[i].StartedAt.Before(tasks[j].StartedAt)
	})

	for _, task := range tasks {
		line := fmt.Sprintf("- [x] %s %s", task.StartedAt.Format("15:04"), task.Title)
		if task.DurationMinutes > 0 {
			line += fmt.Sprintf(" (%dm)", task.DurationMinutes)
		}
		b.WriteString(line + "\n")

		if task.Description != "" {
			for _, l := range strings.Split(task.Description, "\n") {
				fmt.Fprintf(&b, "    > %s\n", l)
			}
		}
		if !task.LoggedAt.IsZero() {
			fmt.Fprintf(&b, "    - Refreshed/Logged at: %s\n", task.LoggedAt.Format("15:04"))
		} else if !task.RefreshedAt.IsZero() {
			fmt.Fprintf(&b, "    - Refreshed/Logged at: %s\n", task.RefreshedAt.Format("15:04"))
		}
	}

	return b.String()
}

// Filename returns the suggested file name for an exported log.
func Filename(log *domain.DailyLog) string {
	return log.Date + ".md"
}
