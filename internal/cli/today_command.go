package cli

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"

	"focusflow/internal/repository/sqlite"
)

// TodayCommand prints the daily log for a date in a readable form
type TodayCommand struct {
	repo sqlite.Repository
	out  io.Writer
}

// NewTodayCommand creates a new today command handler
func NewTodayCommand(app *App, out io.Writer) *TodayCommand {
	return &TodayCommand{repo: app.repo, out: out}
}

// Execute runs the today command
func (c *TodayCommand) Execute(ctx context.Context, args []string) error {
	date, err := parseDateArg(args)
	if err != nil {
		return err
	}

	log, err := c.repo.GetDailyLog(ctx, date)
	if err != nil {
		return NewErrorHandler().Handle("load daily log", err)
	}

	fmt.Fprintf(c.out, "%s\n", log.Date)

	if len(log.Events) == 0 && len(log.Tasks) == 0 {
		fmt.Fprintln(c.out, "Nothing recorded yet.")
		return nil
	}

	if len(log.Events) > 0 {
		events := make([]int, len(log.Events))
		for i := range events {
			events[i] = i
		}
		sort.SliceStable(events, func(i, j int) bool {
			return log.Events[events[i]].StartTime < log.Events[events[j]].StartTime
		})
		fmt.Fprintln(c.out, "\nEvents:")
		for _, i := range events {
			evt := log.Events[i]
			fmt.Fprintf(c.out, "  %s - %s  %s\n", evt.StartTime, evt.EndTime, evt.Title)
		}
	}

	if len(log.Tasks) > 0 {
		fmt.Fprintln(c.out, "\nTasks:")
		totalMinutes := 0
		for _, task := range log.Tasks {
			totalMinutes += task.DurationMinutes
			fmt.Fprintf(c.out, "  %s  %s (%dm)  [%s]\n",
				task.StartedAt.Format("15:04"), task.Title, task.DurationMinutes, task.ID)
			for _, st := range task.Subtasks {
				mark := " "
				if st.IsCompleted {
					mark = "x"
				}
				fmt.Fprintf(c.out, "    [%s] %s\n", mark, st.Title)
			}
			if task.Description != "" {
				for _, line := range strings.Split(task.Description, "\n") {
					fmt.Fprintf(c.out, "    %s\n", line)
				}
			}
		}
		fmt.Fprintf(c.out, "\nTotal focus time: %dh %dm over %d session(s)\n",
			totalMinutes/60, totalMinutes%60, len(log.Tasks))
	}

	return nil
}
