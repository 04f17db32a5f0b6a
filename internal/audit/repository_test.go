package audit

import (
	"context"
	"database/sql"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	schema := `
		CREATE TABLE audit_logs (
			id TEXT PRIMARY KEY,
			action TEXT NOT NULL,
			entity_type TEXT NOT NULL,
			entity_id TEXT,
			user_id TEXT,
			source TEXT NOT NULL,
			details TEXT,
			created_at TEXT NOT NULL
		) STRICT;
	`
	if _, execErr := db.Exec(schema); execErr != nil {
		db.Close()
		t.Fatalf("failed to create test schema: %v", execErr)
	}

	t.Cleanup(func() { db.Close() })
	return db
}

func TestCreateGeneratesIDAndTimestamp(t *testing.T) {
	repo := NewSQLiteRepository(setupTestDB(t))

	entry := &Entry{
		Action:     ActionCreate,
		EntityType: EntityNetwork,
		EntityID:   "NET01",
		UserID:     "usr-abc12345",
		Source:     "api",
		Details:    map[string]any{"name": "Alpine Network"},
	}
	if err := repo.Create(context.Background(), entry); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if entry.ID == "" {
		t.Error("ID not generated")
	}
	if entry.CreatedAt.IsZero() {
		t.Error("CreatedAt not set")
	}
}

func TestListFiltersAndPaginates(t *testing.T) {
	repo := NewSQLiteRepository(setupTestDB(t))
	ctx := context.Background()

	base := time.Date(2025, 2, 18, 10, 0, 0, 0, time.UTC)
	seed := []Entry{
		{Action: ActionCreate, EntityType: EntityNetwork, EntityID: "NET01", Source: "api", CreatedAt: base},
		{Action: ActionUpdate, EntityType: EntityNetwork, EntityID: "NET01", Source: "api", CreatedAt: base.Add(time.Minute)},
		{Action: ActionCreate, EntityType: EntitySensor, EntityID: "71:B1:CE:01:C6:A9", Source: "api", CreatedAt: base.Add(2 * time.Minute)},
		{Action: ActionLogin, EntityType: EntityUser, EntityID: "usr-abc12345", Source: "api", CreatedAt: base.Add(3 * time.Minute)},
	}
	for i := range seed {
		if err := repo.Create(ctx, &seed[i]); err != nil {
			t.Fatalf("seeding entry %d: %v", i, err)
		}
	}

	// Unfiltered, most recent first.
	result, err := repo.List(ctx, Filter{})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if result.Total != 4 || len(result.Entries) != 4 {
		t.Fatalf("total = %d, entries = %d", result.Total, len(result.Entries))
	}
	if result.Entries[0].Action != ActionLogin {
		t.Errorf("first entry action = %q, want most recent (login)", result.Entries[0].Action)
	}

	// Filter by entity type.
	result, err = repo.List(ctx, Filter{EntityType: EntityNetwork})
	if err != nil {
		t.Fatalf("List(network) error = %v", err)
	}
	if result.Total != 2 {
		t.Errorf("network entries total = %d, want 2", result.Total)
	}

	// Filter by action and entity ID.
	result, err = repo.List(ctx, Filter{Action: ActionCreate, EntityID: "NET01"})
	if err != nil {
		t.Fatalf("List(create NET01) error = %v", err)
	}
	if result.Total != 1 || result.Entries[0].EntityID != "NET01" {
		t.Errorf("filtered result: %+v", result.Entries)
	}

	// Pagination: total counts everything, the page is clipped.
	result, err = repo.List(ctx, Filter{Limit: 2, Offset: 2})
	if err != nil {
		t.Fatalf("List(page) error = %v", err)
	}
	if result.Total != 4 || len(result.Entries) != 2 {
		t.Errorf("page: total = %d, entries = %d", result.Total, len(result.Entries))
	}
}

func TestListEmptyReturnsEmptySlice(t *testing.T) {
	repo := NewSQLiteRepository(setupTestDB(t))

	result, err := repo.List(context.Background(), Filter{})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if result.Entries == nil || len(result.Entries) != 0 {
		t.Errorf("entries = %v, want empty slice", result.Entries)
	}
}

func TestDetailsRoundTrip(t *testing.T) {
	repo := NewSQLiteRepository(setupTestDB(t))
	ctx := context.Background()

	entry := &Entry{
		Action:     ActionUpdate,
		EntityType: EntityGateway,
		EntityID:   "94:3F:BE:4C:4A:79",
		Source:     "api",
		Details:    map[string]any{"field": "name", "from": "old", "to": "new"},
	}
	if err := repo.Create(ctx, entry); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	result, err := repo.List(ctx, Filter{EntityType: EntityGateway})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(result.Entries) != 1 {
		t.Fatalf("entries = %d, want 1", len(result.Entries))
	}
	got := result.Entries[0].Details
	if got["field"] != "name" || got["to"] != "new" {
		t.Errorf("details = %v", got)
	}
}
