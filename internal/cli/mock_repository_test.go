package cli

import (
	"context"

	"focusflow/internal/domain"
)

// mockRepository is an in-memory Repository used by the command tests
type mockRepository struct {
	logs    map[string]*domain.DailyLog
	stamps  map[string]bool
	getErr  error
	saveErr error
	listErr error
}

func newMockRepository() *mockRepository {
	return &mockRepository{
		logs:   make(map[string]*domain.DailyLog),
		stamps: make(map[string]bool),
	}
}

func (m *mockRepository) GetDailyLog(ctx context.Context, date string) (*domain.DailyLog, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	if log, ok := m.logs[date]; ok {
		return log, nil
	}
	return domain.NewDailyLog(date), nil
}

func (m *mockRepository) SaveDailyLog(ctx context.Context, log *domain.DailyLog) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.logs[log.Date] = log
	return nil
}

func (m *mockRepository) GetStamp(ctx context.Context, date string) (bool, error) {
	return m.stamps[date], nil
}

func (m *mockRepository) SetStamp(ctx context.Context, date string) (bool, error) {
	if m.stamps[date] {
		return false, nil
	}
	m.stamps[date] = true
	return true, nil
}

func (m *mockRepository) ListStamps(ctx context.Context, monthPrefix string) ([]string, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	var dates []string
	for date := range m.stamps {
		if len(date) >= len(monthPrefix) && date[:len(monthPrefix)] == monthPrefix {
			dates = append(dates, date)
		}
	}
	return dates, nil
}

func (m *mockRepository) Close() error {
	return nil
}
