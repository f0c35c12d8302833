package stamps

import (
	"context"

	"focusflow/internal/domain"
	"focusflow/internal/logging"
)

const (
	// A stamp is earned by 120 focus minutes or 4 completed sessions in one day.
	minutesThreshold  = 120
	sessionsThreshold = 4
)

// Store is the persistence surface the evaluator needs. SetStamp must be
// set-once per date: it returns true only when the stamp was newly created.
type Store interface {
	GetStamp(ctx context.Context, date string) (bool, error)
	SetStamp(ctx context.Context, date string) (bool, error)
	ListStamps(ctx context.Context, monthPrefix string) ([]string, error)
}

// Evaluator decides whether a day's completed sessions have earned its
// reward stamp. Evaluation is idempotent per date: once a stamp exists it is
// never re-signalled as newly earned.
type Evaluator struct {
	store Store
}

// NewEvaluator creates a new achievement evaluator
func NewEvaluator(store Store) *Evaluator {
	return &Evaluator{store: store}
}

// Evaluate checks the day's tasks (already including the newly completed
// one) against the thresholds and records a stamp when met. Returns true
// only when the stamp was newly earned by this call.
func (e *Evaluator) Evaluate(ctx context.Context, date string, tasks []domain.Task) (bool, error) {
	totalMinutes := 0
	for _, task := range tasks {
		totalMinutes += task.DurationMinutes
	}

	if totalMinutes < minutesThreshold && len(tasks) < sessionsThreshold {
		return false, nil
	}

	created, err := e.store.SetStamp(ctx, date)
	if err != nil {
		return false, err
	}
	if created {
		logging.Debugf("stamps: newly earned for %s (%d minutes, %d sessions)\n",
			date, totalMinutes, len(tasks))
	}
	return created, nil
}

// Earned reports whether a stamp already exists for the date
func (e *Evaluator) Earned(ctx context.Context, date string) (bool, error) {
	return e.store.GetStamp(ctx, date)
}

// Month returns the stamped dates in a month ("2026-08")
func (e *Evaluator) Month(ctx context.Context, monthPrefix string) ([]string, error) {
	return e.store.ListStamps(ctx, monthPrefix)
}
