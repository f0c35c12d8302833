package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"focusflow/internal/export"
	"focusflow/internal/repository/sqlite"
)

// ExportCommand renders a daily log as Markdown
type ExportCommand struct {
	repo sqlite.Repository
	out  io.Writer

	// ToFile writes <date>.md to the working directory instead of stdout
	ToFile bool
}

// NewExportCommand creates a new export command handler
func NewExportCommand(app *App, out io.Writer) *ExportCommand {
	return &ExportCommand{repo: app.repo, out: out}
}

// Execute runs the export command
func (c *ExportCommand) Execute(ctx context.Context, args []string) error {
	date, err := parseDateArg(args)
	if err != nil {
		return err
	}

	log, err := c.repo.GetDailyLog(ctx, date)
	if err != nil {
		return NewErrorHandler().Handle("load daily log", err)
	}

	content := export.Markdown(log)

	if c.ToFile {
		name := export.Filename(log)
		if err := os.WriteFile(name, []byte(content), 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", name, err)
		}
		fmt.Fprintf(c.out, "Wrote %s\n", name)
		return nil
	}

	fmt.Fprint(c.out, content)
	return nil
}
