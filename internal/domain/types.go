package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Subtask is one step of a broken-down focus task. Ordering is significant
// and insertion-stable.
type Subtask struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	IsCompleted bool   `json:"isCompleted"`
}

// NewSubtask creates an incomplete subtask with a fresh identifier.
func NewSubtask(title string) Subtask {
	return Subtask{
		ID:    uuid.NewString(),
		Title: title,
	}
}

// Session is the in-progress, not-yet-persisted record of one focus interval.
// It is owned by the phase controller and discarded when the break finishes.
type Session struct {
	Title           string
	DurationMinutes int
	StartedAt       time.Time
	Interruptions   []string
	Subtasks        []Subtask
}

// Task is a persisted, completed focus session. Immutable after creation
// except for external deletion by id.
type Task struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	DurationMinutes int       `json:"durationMinutes"`
	StartedAt       time.Time `json:"startedAt"`
	EndedAt         time.Time `json:"endedAt"`
	RefreshedAt     time.Time `json:"refreshedAt,omitzero"`
	LoggedAt        time.Time `json:"loggedAt,omitzero"`
	Description     string    `json:"description,omitempty"`
	Subtasks        []Subtask `json:"subtasks,omitempty"`
}

// Event is a calendar entry on the daily log. The core never creates these
// during a session; they arrive through the CLI/UI collaborators.
type Event struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	StartTime string `json:"startTime"` // "HH:mm"
	EndTime   string `json:"endTime"`   // "HH:mm"
}

// DailyLog holds everything recorded for one calendar date. Tasks only grow
// via session completion.
type DailyLog struct {
	Date   string  `json:"date"` // "YYYY-MM-DD"
	Events []Event `json:"events"`
	Tasks  []Task  `json:"tasks"`
}

// NewDailyLog returns an empty log for the given date.
func NewDailyLog(date string) *DailyLog {
	return &DailyLog{
		Date:   date,
		Events: []Event{},
		Tasks:  []Task{},
	}
}

// DateKey formats a time as the daily log key.
func DateKey(t time.Time) string {
	return t.Format("2006-01-02")
}

// FormatInterruptions joins interruption notes into the task description
// block. Returns empty when there are no notes.
func FormatInterruptions(notes []string) string {
	if len(notes) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("Interruptions:")
	for _, note := range notes {
		b.WriteString("\n- ")
		b.WriteString(note)
	}
	return b.String()
}
