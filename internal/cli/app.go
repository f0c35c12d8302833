package cli

import (
	"fmt"
	"time"

	"focusflow/internal/repository/sqlite"
)

// timeNow is a variable that can be replaced in tests
var timeNow = time.Now

// App represents the CLI application and holds the shared repository
type App struct {
	repo sqlite.Repository
}

// NewApp creates a new CLI application instance with dependency injection
func NewApp(repo sqlite.Repository) *App {
	return &App{repo: repo}
}

// parseDateArg interprets an optional date argument. No argument means today.
func parseDateArg(args []string) (string, error) {
	if len(args) == 0 || args[0] == "today" {
		return timeNow().Format("2006-01-02"), nil
	}
	if _, err := time.Parse("2006-01-02", args[0]); err != nil {
		return "", fmt.Errorf("invalid date %q, expected YYYY-MM-DD", args[0])
	}
	return args[0], nil
}

// parseMonthArg interprets an optional month argument. No argument means the
// current month.
func parseMonthArg(args []string) (time.Time, error) {
	if len(args) == 0 {
		now := timeNow()
		return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.Local), nil
	}
	month, err := time.Parse("2006-01", args[0])
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid month %q, expected YYYY-MM", args[0])
	}
	return month, nil
}
