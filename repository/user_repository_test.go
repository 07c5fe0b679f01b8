package repository

import (
	"context"
	"errors"
	"testing"

	"tailoringStorefront/internal/testutil"
)

func TestUserRepository_CreateGetAndRole(t *testing.T) {
	d := testutil.OpenTestDB(t)
	users := NewUserRepository(d)
	ctx := context.Background()

	u, err := users.Create(ctx, "meena", "hash", "")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if u.Role != "staff" || u.IsAdmin() {
		t.Fatalf("default role = %q", u.Role)
	}
	if _, err := users.Create(ctx, "meena", "hash", ""); !errors.Is(err, ErrDuplicate) {
		t.Fatalf("duplicate err = %v, want ErrDuplicate", err)
	}

	got, err := users.GetByUsername(ctx, "meena")
	if err != nil || got == nil || got.PasswordHash != "hash" {
		t.Fatalf("GetByUsername = %+v, %v", got, err)
	}
	if err := users.UpdateRoleByUsername(ctx, "meena", "admin"); err != nil {
		t.Fatalf("update role: %v", err)
	}
	got, _ = users.GetByID(ctx, u.ID)
	if !got.IsAdmin() {
		t.Fatalf("expected admin after role update")
	}
	if err := users.UpdatePasswordHash(ctx, "meena", "hash2"); err != nil {
		t.Fatalf("update hash: %v", err)
	}
	if err := users.UpdatePasswordHash(ctx, "nobody", "x"); err == nil {
		t.Fatalf("expected error for unknown username")
	}

	missing, err := users.GetByUsername(ctx, "nobody")
	if err != nil || missing != nil {
		t.Fatalf("unknown user = %v, %v", missing, err)
	}
	list, err := users.List(ctx, 10, 0)
	if err != nil || len(list) != 1 {
		t.Fatalf("List = %v, %v", list, err)
	}
}
