// Package database provides SQLite connectivity for GeoControl Core.
//
// It wraps database/sql with:
//   - Connection configuration (WAL mode, foreign keys, busy timeout)
//   - Embedded schema migrations with a schema_migrations ledger
//   - Health checks and lifecycle management
//
// # Usage
//
//	db, err := database.Open(database.Config{
//	    Path:        "./data/geocontrol.db",
//	    WALMode:     true,
//	    BusyTimeout: 5,
//	})
//	if err != nil {
//	    return err
//	}
//	defer db.Close()
//
//	if err := db.Migrate(ctx); err != nil {
//	    return err
//	}
//
// Migrations are embedded by the top-level migrations package via go:embed.
package database
