package ledger

import (
	"database/sql"
	"testing"

	_ "modernc.org/sqlite"
)

func TestMigrateSQLiteIdempotent(t *testing.T) {
	db, err := sql.Open("sqlite", "file::memory:?cache=shared")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer db.Close()

	if err := Migrate(db, DBSQLite); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if err := Migrate(db, DBSQLite); err != nil {
		t.Fatalf("migrate second: %v", err)
	}

	var name string
	if err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name='applications'`).Scan(&name); err != nil {
		t.Fatalf("expected applications table: %v", err)
	}

	var count int
	if err := db.QueryRow(`SELECT COUNT(*) FROM schema_migrations`).Scan(&count); err != nil {
		t.Fatalf("count migrations: %v", err)
	}
	if count < 1 {
		t.Fatalf("expected at least 1 migration applied, got %d", count)
	}
}

func TestMigrateNilDB(t *testing.T) {
	if err := Migrate(nil, DBSQLite); err == nil {
		t.Fatalf("expected error")
	}
}

func TestMigrationHelpers(t *testing.T) {
	if _, _, err := migrationConfig(DBPostgres); err != nil {
		t.Fatalf("expected postgres config, got %v", err)
	}
	if _, _, err := migrationConfig(DBDriver("nope")); err == nil {
		t.Fatalf("expected error for unsupported driver")
	}

	if err := ensureMigrationsTable(&sql.DB{}, DBDriver("nope"), "t"); err == nil {
		t.Fatalf("expected error for unsupported driver")
	}

	for _, dir := range []string{"migrations/sqlite", "migrations/postgres"} {
		files, err := listMigrationFiles(dir)
		if err != nil {
			t.Fatalf("list %s: %v", dir, err)
		}
		if len(files) == 0 {
			t.Fatalf("expected migrations in %s", dir)
		}
	}
}
