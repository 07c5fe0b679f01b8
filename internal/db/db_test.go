package db

import "testing"

func TestOpen_AppliesMigrationsAndSeedsDesigns(t *testing.T) {
	d, err := Open("file:dbtest_open?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer d.Close()

	var n int
	if err := d.QueryRow(`SELECT COUNT(*) FROM designs`).Scan(&n); err != nil {
		t.Fatalf("count designs: %v", err)
	}
	if n != 4 {
		t.Fatalf("designs seeded = %d, want 4", n)
	}

	// Re-running is a no-op.
	if err := Migrate(d); err != nil {
		t.Fatalf("second migrate: %v", err)
	}
	if err := d.QueryRow(`SELECT COUNT(*) FROM schema_migrations`).Scan(&n); err != nil {
		t.Fatalf("count migrations: %v", err)
	}
	if n != 2 {
		t.Fatalf("applied migrations = %d, want 2", n)
	}
}

func TestRollbackLast_RevertsSeed(t *testing.T) {
	d, err := Open("file:dbtest_rollback?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer d.Close()

	if err := RollbackLast(d); err != nil {
		t.Fatalf("rollback: %v", err)
	}
	var n int
	if err := d.QueryRow(`SELECT COUNT(*) FROM designs`).Scan(&n); err != nil {
		t.Fatalf("count designs: %v", err)
	}
	if n != 0 {
		t.Fatalf("designs after rollback = %d, want 0", n)
	}
	if err := Migrate(d); err != nil {
		t.Fatalf("re-migrate: %v", err)
	}
	if err := d.QueryRow(`SELECT COUNT(*) FROM designs`).Scan(&n); err != nil {
		t.Fatalf("count designs: %v", err)
	}
	if n != 4 {
		t.Fatalf("designs after re-migrate = %d, want 4", n)
	}
}
