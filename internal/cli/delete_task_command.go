package cli

import (
	"context"
	"fmt"
	"io"

	"focusflow/internal/errors"
	"focusflow/internal/repository/sqlite"
)

// DeleteTaskCommand removes a recorded task from a daily log
type DeleteTaskCommand struct {
	repo sqlite.Repository
	out  io.Writer
}

// NewDeleteTaskCommand creates a new delete-task command handler
func NewDeleteTaskCommand(app *App, out io.Writer) *DeleteTaskCommand {
	return &DeleteTaskCommand{repo: app.repo, out: out}
}

// Execute runs the delete-task command. The first argument is the task id;
// an optional second argument selects the date.
func (c *DeleteTaskCommand) Execute(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errors.NewInvalidInputError("task-id", "", "task id is required")
	}
	taskID := args[0]

	date, err := parseDateArg(args[1:])
	if err != nil {
		return err
	}

	log, err := c.repo.GetDailyLog(ctx, date)
	if err != nil {
		return NewErrorHandler().Handle("load daily log", err)
	}

	kept := log.Tasks[:0]
	removed := false
	for _, task := range log.Tasks {
		if task.ID == taskID {
			removed = true
			continue
		}
		kept = append(kept, task)
	}
	if !removed {
		return errors.NewNotFoundError("task", taskID)
	}
	log.Tasks = kept

	if err := c.repo.SaveDailyLog(ctx, log); err != nil {
		return NewErrorHandler().Handle("save daily log", err)
	}

	fmt.Fprintf(c.out, "Deleted task %s from %s\n", taskID, date)
	return nil
}
