package measurement

import (
	"context"
	"database/sql"
	"errors"
	"math"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// setupTestDB creates an in-memory SQLite database with the hierarchy and
// measurements tables and seeds one network with two sensors. Shared by
// the repository and service tests.
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	schema := `
		CREATE TABLE networks (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			code TEXT NOT NULL UNIQUE,
			name TEXT,
			description TEXT
		);

		CREATE TABLE gateways (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			network_id INTEGER NOT NULL,
			mac_address TEXT NOT NULL UNIQUE,
			name TEXT,
			description TEXT,
			FOREIGN KEY (network_id) REFERENCES networks(id) ON DELETE CASCADE
		);

		CREATE TABLE sensors (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			gateway_id INTEGER NOT NULL,
			mac_address TEXT NOT NULL UNIQUE,
			name TEXT,
			description TEXT,
			variable TEXT,
			unit TEXT,
			FOREIGN KEY (gateway_id) REFERENCES gateways(id) ON DELETE CASCADE
		);

		CREATE TABLE measurements (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			sensor_id INTEGER NOT NULL,
			value REAL NOT NULL,
			created_at TEXT NOT NULL,
			FOREIGN KEY (sensor_id) REFERENCES sensors(id) ON DELETE CASCADE
		);
		CREATE INDEX idx_measurements_sensor_time ON measurements(sensor_id, created_at);

		INSERT INTO networks (id, code, name) VALUES (1, 'NET01', 'Alpine Network');
		INSERT INTO gateways (id, network_id, mac_address) VALUES (1, 1, 'AA:BB:CC:DD:EE:01');
		INSERT INTO sensors (id, gateway_id, mac_address, variable, unit) VALUES
			(1, 1, 'AA:BB:CC:DD:EE:02', 'inclination', 'deg'),
			(2, 1, 'AA:BB:CC:DD:EE:03', 'temperature', 'C');
	`

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		t.Fatalf("failed to create test schema: %v", err)
	}

	t.Cleanup(func() {
		db.Close()
	})

	return db
}

func at(hour, min int) time.Time {
	return time.Date(2025, 2, 18, hour, min, 0, 0, time.UTC)
}

func TestStoreAndListBySensor(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSQLiteRepository(db)
	ctx := context.Background()

	batch := []Measurement{
		{CreatedAt: at(11, 0), Value: 2.5},
		{CreatedAt: at(10, 0), Value: 1.5},
		{CreatedAt: at(12, 0), Value: 3.5},
	}
	if err := repo.Store(ctx, 1, batch); err != nil {
		t.Fatalf("Store: %v", err)
	}

	readings, err := repo.ListBySensor(ctx, 1, Window{})
	if err != nil {
		t.Fatalf("ListBySensor: %v", err)
	}
	if len(readings) != 3 {
		t.Fatalf("expected 3 readings, got %d", len(readings))
	}

	// Oldest first regardless of insertion order.
	for i, want := range []float64{1.5, 2.5, 3.5} {
		if readings[i].Value != want {
			t.Errorf("reading %d: got %v, want %v", i, readings[i].Value, want)
		}
	}
	if !readings[0].CreatedAt.Equal(at(10, 0)) {
		t.Errorf("timestamp round-trip: got %v, want %v", readings[0].CreatedAt, at(10, 0))
	}
	if readings[0].CreatedAt.Location() != time.UTC {
		t.Errorf("stored timestamp not UTC: %v", readings[0].CreatedAt.Location())
	}
}

func TestStoreRejectsNonFiniteAtomically(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSQLiteRepository(db)
	ctx := context.Background()

	for _, bad := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		batch := []Measurement{
			{CreatedAt: at(10, 0), Value: 1.0},
			{CreatedAt: at(11, 0), Value: bad},
		}
		err := repo.Store(ctx, 1, batch)
		if !errors.Is(err, ErrNonFiniteValue) {
			t.Errorf("value %v: expected ErrNonFiniteValue, got %v", bad, err)
		}
	}

	// Nothing from any rejected batch may have landed.
	var count int
	db.QueryRow("SELECT COUNT(*) FROM measurements").Scan(&count)
	if count != 0 {
		t.Errorf("rejected batches left %d rows", count)
	}
}

func TestStoreEmptyBatch(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSQLiteRepository(db)

	if err := repo.Store(context.Background(), 1, nil); !errors.Is(err, ErrEmptyBatch) {
		t.Errorf("expected ErrEmptyBatch, got %v", err)
	}
}

func TestListBySensorWindowInclusive(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSQLiteRepository(db)
	ctx := context.Background()

	batch := []Measurement{
		{CreatedAt: at(9, 0), Value: 1},
		{CreatedAt: at(10, 0), Value: 2},
		{CreatedAt: at(11, 0), Value: 3},
		{CreatedAt: at(12, 0), Value: 4},
	}
	if err := repo.Store(ctx, 1, batch); err != nil {
		t.Fatalf("Store: %v", err)
	}

	from, to := at(10, 0), at(11, 0)
	readings, err := repo.ListBySensor(ctx, 1, Window{From: &from, To: &to})
	if err != nil {
		t.Fatalf("ListBySensor: %v", err)
	}
	if len(readings) != 2 {
		t.Fatalf("expected 2 readings in [10:00, 11:00], got %d", len(readings))
	}
	if readings[0].Value != 2 || readings[1].Value != 3 {
		t.Errorf("window boundaries not inclusive: %+v", readings)
	}

	// Open-ended lower bound.
	readings, err = repo.ListBySensor(ctx, 1, Window{To: &from})
	if err != nil {
		t.Fatalf("ListBySensor: %v", err)
	}
	if len(readings) != 2 {
		t.Errorf("expected 2 readings up to 10:00, got %d", len(readings))
	}
}

func TestListBySensorEqualTimestampsKeepInsertionOrder(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSQLiteRepository(db)
	ctx := context.Background()

	same := at(10, 0)
	batch := []Measurement{
		{CreatedAt: same, Value: 1},
		{CreatedAt: same, Value: 2},
		{CreatedAt: same, Value: 3},
	}
	if err := repo.Store(ctx, 1, batch); err != nil {
		t.Fatalf("Store: %v", err)
	}

	readings, err := repo.ListBySensor(ctx, 1, Window{})
	if err != nil {
		t.Fatalf("ListBySensor: %v", err)
	}
	for i, want := range []float64{1, 2, 3} {
		if readings[i].Value != want {
			t.Errorf("reading %d: got %v, want %v", i, readings[i].Value, want)
		}
	}
}

func TestListBySensorIsolation(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSQLiteRepository(db)
	ctx := context.Background()

	if err := repo.Store(ctx, 1, []Measurement{{CreatedAt: at(10, 0), Value: 1}}); err != nil {
		t.Fatalf("Store: %v", err)
	}
	if err := repo.Store(ctx, 2, []Measurement{{CreatedAt: at(10, 0), Value: 9}}); err != nil {
		t.Fatalf("Store: %v", err)
	}

	readings, err := repo.ListBySensor(ctx, 2, Window{})
	if err != nil {
		t.Fatalf("ListBySensor: %v", err)
	}
	if len(readings) != 1 || readings[0].Value != 9 {
		t.Errorf("sensor isolation broken: %+v", readings)
	}
}
