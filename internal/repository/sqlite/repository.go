package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"focusflow/internal/domain"
	"focusflow/internal/errors"
	"focusflow/internal/logging"
	"focusflow/internal/repository/sqlite/migrations"

	_ "modernc.org/sqlite"
)

// Repository defines the interface for daily log and stamp persistence.
// Daily logs are stored as one JSON document per calendar date; stamps are a
// set-once per-date marker.
type Repository interface {
	// Daily log operations
	GetDailyLog(ctx context.Context, date string) (*domain.DailyLog, error)
	SaveDailyLog(ctx context.Context, log *domain.DailyLog) error

	// Stamp operations
	GetStamp(ctx context.Context, date string) (bool, error)
	SetStamp(ctx context.Context, date string) (bool, error)
	ListStamps(ctx context.Context, monthPrefix string) ([]string, error)

	// Utility
	Close() error
}

// SQLiteRepository implements the Repository interface
type SQLiteRepository struct {
	db *sql.DB
}

// New creates a new SQLite repository instance
func New(dbPath string) (*SQLiteRepository, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, errors.NewDatabaseError("open database", err)
	}

	// Run migrations
	if err := migrations.RunMigrations(db); err != nil {
		db.Close()
		return nil, errors.NewDatabaseError("run migrations", err)
	}

	return &SQLiteRepository{db: db}, nil
}

// Close closes the database connection
func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

// GetDailyLog retrieves the daily log for a date. A missing or unreadable
// row degrades to a fresh empty log for that date rather than an error, so a
// running session never fails on a bad read.
func (r *SQLiteRepository) GetDailyLog(ctx context.Context, date string) (*domain.DailyLog, error) {
	query := `
	SELECT document
	FROM daily_logs
	WHERE date = ?`

	var document string
	if err := r.db.QueryRowContext(ctx, query, date).Scan(&document); err != nil {
		err = HandleNoRowsError(err, "daily log", date)
		if errors.IsErrorType(err, errors.ErrorTypeNotFound) {
			return domain.NewDailyLog(date), nil
		}
		return nil, HandleDatabaseError("get daily log", err)
	}

	log := domain.NewDailyLog(date)
	if err := json.Unmarshal([]byte(document), log); err != nil {
		logging.Warnf("sqlite: corrupt daily log document for %s, starting fresh: %v\n", date, err)
		return domain.NewDailyLog(date), nil
	}
	return log, nil
}

// SaveDailyLog upserts the daily log document for its date
func (r *SQLiteRepository) SaveDailyLog(ctx context.Context, log *domain.DailyLog) error {
	document, err := json.Marshal(log)
	if err != nil {
		return HandleDatabaseError("encode daily log", err)
	}

	query := `
	INSERT INTO daily_logs (date, document, updated_at)
	VALUES (?, ?, ?)
	ON CONFLICT(date) DO UPDATE SET document = excluded.document, updated_at = excluded.updated_at`

	_, err = r.db.ExecContext(ctx, query, log.Date, string(document), time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return HandleDatabaseError("save daily log", err)
	}
	return nil
}

// GetStamp reports whether a stamp exists for the date
func (r *SQLiteRepository) GetStamp(ctx context.Context, date string) (bool, error) {
	query := `
	SELECT COUNT(1)
	FROM stamps
	WHERE date = ?`

	var count int
	if err := r.db.QueryRowContext(ctx, query, date).Scan(&count); err != nil {
		return false, HandleDatabaseError("get stamp", err)
	}
	return count > 0, nil
}

// SetStamp records a stamp for the date. Returns true when the stamp was
// newly created; an existing stamp is left untouched and returns false.
func (r *SQLiteRepository) SetStamp(ctx context.Context, date string) (bool, error) {
	query := `
	INSERT OR IGNORE INTO stamps (date, earned_at)
	VALUES (?, ?)`

	result, err := r.db.ExecContext(ctx, query, date, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return false, HandleDatabaseError("set stamp", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, HandleDatabaseError("get rows affected", err)
	}
	return rows > 0, nil
}

// ListStamps returns the stamped dates matching a month prefix ("2026-08"),
// sorted ascending
func (r *SQLiteRepository) ListStamps(ctx context.Context, monthPrefix string) ([]string, error) {
	query := `
	SELECT date
	FROM stamps
	WHERE date LIKE ?
	ORDER BY date ASC`

	rows, err := r.db.QueryContext(ctx, query, monthPrefix+"%")
	if err != nil {
		return nil, HandleDatabaseError("list stamps", err)
	}
	defer rows.Close()

	var dates []string
	for rows.Next() {
		var date string
		if err := rows.Scan(&date); err != nil {
			return nil, HandleDatabaseError("scan stamp", err)
		}
		dates = append(dates, date)
	}
	if err := rows.Err(); err != nil {
		return nil, HandleDatabaseError("list stamps", err)
	}
	return dates, nil
}
