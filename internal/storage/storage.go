// Package storage persists UserProfile and per-exercise SessionResult
// history to a libSQL database, the way the teacher's Storage wraps
// database/sql over github.com/tursodatabase/libsql-client-go.
package storage

import (
	"database/sql"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	_ "github.com/tursodatabase/libsql-client-go/libsql"
	_ "modernc.org/sqlite"

	"github.com/misterclayt0n/lazaro/internal/logging"
)

type Storage struct {
	DB *sql.DB
}

// NewStorage opens the configured libSQL database and ensures its schema
// exists. It exits the process on a connection failure, matching the
// teacher's fail-fast startup behavior — a CLI with no database is a CLI
// that cannot do anything useful.
func NewStorage() *Storage {
	_ = godotenv.Load()
	return NewStorageAt(os.Getenv("TURSO_DATABASE_URL"))
}

// NewStorageAt opens the database at dsn, falling back to
// TURSO_DATABASE_URL and then a local embedded file when dsn is empty.
// The CLI's --history-path flag threads a bare filesystem path through
// here as "file:<path>", letting each exercise point at its own store.
func NewStorageAt(dsn string) *Storage {
	_ = godotenv.Load()

	url := dsn
	if url == "" {
		url = os.Getenv("TURSO_DATABASE_URL")
	}
	if url == "" {
		url = "file:lazaro.db"
	}

	db, err := sql.Open("libsql", url)
	if err != nil {
		logging.Default.Error("failed to open database", "dsn", url, "error", err)
		fmt.Fprintf(os.Stderr, "failed to open db %s: %s\n", url, err)
		os.Exit(1)
	}

	if err := initializeDB(db); err != nil {
		logging.Default.Error("failed to initialize database schema", "dsn", url, "error", err)
		fmt.Fprintf(os.Stderr, "failed to initialize database: %v\n", err)
		os.Exit(1)
	}

	return &Storage{DB: db}
}

func initializeDB(db *sql.DB) error {
	_, err := db.Exec(`
        CREATE TABLE IF NOT EXISTS user_profile (
            id INTEGER PRIMARY KEY CHECK (id = 1),
            data TEXT NOT NULL
        );

        CREATE TABLE IF NOT EXISTS exercises (
            id TEXT PRIMARY KEY,
            data TEXT NOT NULL
        );

        CREATE TABLE IF NOT EXISTS session_results (
            row_uuid TEXT PRIMARY KEY,
            history_id INTEGER NOT NULL,
            exercise_id TEXT NOT NULL,
            date TEXT NOT NULL,
            session_type TEXT NOT NULL,
            data TEXT NOT NULL,
            UNIQUE (exercise_id, history_id)
        );

        CREATE TABLE IF NOT EXISTS in_progress_sessions (
            exercise_id TEXT PRIMARY KEY,
            data TEXT NOT NULL
        );

        CREATE TABLE IF NOT EXISTS equipment_presets (
            exercise_id TEXT PRIMARY KEY,
            data TEXT NOT NULL
        );
    `)
	return err
}
