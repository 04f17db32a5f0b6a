package measurement

import (
	"context"
	"database/sql"
	"fmt"
	"math"
	"time"
)

// storedTimeLayout is the canonical created_at format. Fixed-width
// fractional seconds and a literal Z keep lexicographic order equal to
// chronological order, so the column index serves range queries directly.
const storedTimeLayout = "2006-01-02T15:04:05.000Z"

// Repository defines measurement persistence. Callers resolve sensor IDs
// through the inventory chain resolver first; nothing here re-checks the
// hierarchy.
type Repository interface {
	Store(ctx context.Context, sensorID int64, readings []Measurement) error
	ListBySensor(ctx context.Context, sensorID int64, window Window) ([]Measurement, error)
}

// SQLiteRepository implements Repository using SQLite.
type SQLiteRepository struct {
	db *sql.DB
}

// NewSQLiteRepository creates a new SQLite-backed measurement repository.
func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// Store persists a batch of readings in one transaction. The whole batch
// is rejected if any value is NaN or infinite; partial writes never land.
func (r *SQLiteRepository) Store(ctx context.Context, sensorID int64, readings []Measurement) error {
	if len(readings) == 0 {
		return ErrEmptyBatch
	}
	for _, m := range readings {
		if math.IsNaN(m.Value) || math.IsInf(m.Value, 0) {
			return fmt.Errorf("%w: %v at %s", ErrNonFiniteValue, m.Value,
				m.CreatedAt.UTC().Format(time.RFC3339))
		}
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning measurement tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	stmt, err := tx.PrepareContext(ctx,
		"INSERT INTO measurements (sensor_id, value, created_at) VALUES (?, ?, ?)")
	if err != nil {
		return fmt.Errorf("preparing measurement insert: %w", err)
	}
	defer stmt.Close()

	for _, m := range readings {
		createdAt := m.CreatedAt.UTC().Truncate(time.Millisecond).Format(storedTimeLayout)
		if _, err := stmt.ExecContext(ctx, sensorID, m.Value, createdAt); err != nil {
			return fmt.Errorf("inserting measurement: %w", err)
		}
	}
	return tx.Commit()
}

// ListBySensor returns the sensor's readings inside the window, oldest
// first. Equal timestamps fall back to insertion order.
func (r *SQLiteRepository) ListBySensor(ctx context.Context, sensorID int64, window Window) ([]Measurement, error) {
	query := "SELECT id, sensor_id, value, created_at FROM measurements WHERE sensor_id = ?"
	args := []any{sensorID}
	if window.From != nil {
		query += " AND created_at >= ?"
		args = append(args, window.From.UTC().Format(storedTimeLayout))
	}
	if window.To != nil {
		query += " AND created_at <= ?"
		args = append(args, window.To.UTC().Format(storedTimeLayout))
	}
	query += " ORDER BY created_at ASC, id ASC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying measurements: %w", err)
	}
	defer rows.Close()

	var readings []Measurement
	for rows.Next() {
		var m Measurement
		var createdAt string
		if err := rows.Scan(&m.ID, &m.SensorID, &m.Value, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning measurement row: %w", err)
		}
		m.CreatedAt, err = parseStoredTime(createdAt)
		if err != nil {
			return nil, err
		}
		readings = append(readings, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating measurement rows: %w", err)
	}
	return readings, nil
}

// parseStoredTime reads a created_at column value. The canonical layout is
// tried first; plain RFC 3339 covers rows written by external tooling.
func parseStoredTime(s string) (time.Time, error) {
	if t, err := time.Parse(storedTimeLayout, s); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing stored timestamp %q: %w", s, err)
	}
	return t.UTC(), nil
}
