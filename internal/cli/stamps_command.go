package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"focusflow/internal/repository/sqlite"
)

// StampsCommand prints a month grid of earned stamp days
type StampsCommand struct {
	repo sqlite.Repository
	out  io.Writer
}

// NewStampsCommand creates a new stamps command handler
func NewStampsCommand(app *App, out io.Writer) *StampsCommand {
	return &StampsCommand{repo: app.repo, out: out}
}

// Execute runs the stamps command
func (c *StampsCommand) Execute(ctx context.Context, args []string) error {
	month, err := parseMonthArg(args)
	if err != nil {
		return err
	}

	dates, err := c.repo.ListStamps(ctx, month.Format("2006-01"))
	if err != nil {
		return NewErrorHandler().Handle("load stamps", err)
	}

	earned := make(map[string]bool, len(dates))
	for _, d := range dates {
		earned[d] = true
	}

	fmt.Fprintf(c.out, "%s\n", month.Format("January 2006"))
	fmt.Fprintln(c.out, "Su  Mo  Tu  We  Th  Fr  Sa")

	var row strings.Builder
	row.WriteString(strings.Repeat("    ", int(month.Weekday())))

	for day := month; day.Month() == month.Month(); day = day.AddDate(0, 0, 1) {
		mark := " "
		if earned[day.Format("2006-01-02")] {
			mark = "*"
		}
		row.WriteString(fmt.Sprintf("%2d%s ", day.Day(), mark))
		if day.Weekday() == time.Saturday {
			fmt.Fprintln(c.out, strings.TrimRight(row.String(), " "))
			row.Reset()
		}
	}
	if row.Len() > 0 {
		fmt.Fprintln(c.out, strings.TrimRight(row.String(), " "))
	}

	fmt.Fprintf(c.out, "\n%d stamp(s) earned.\n", len(dates))
	return nil
}
