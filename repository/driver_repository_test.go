package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"tailoringStorefront/internal/testutil"
	"tailoringStorefront/models"
)

func TestDriverRepository_CreateAndLookup(t *testing.T) {
	d := testutil.OpenTestDB(t)
	drivers := NewDriverRepository(d)
	ctx := context.Background()

	drv := seedDriver(t, drivers, "DP-1111")
	if drv.Status != models.DriverStatusActive || drv.HasLocation() {
		t.Fatalf("new driver = %+v", drv)
	}
	if _, err := drivers.Create(ctx, &models.Driver{Name: "dup", PersonnelNumber: "DP-1111", PasswordHash: "x"}); !errors.Is(err, ErrDuplicate) {
		t.Fatalf("duplicate number err = %v, want ErrDuplicate", err)
	}

	got, err := drivers.GetByPersonnelNumber(ctx, "DP-1111")
	if err != nil || got == nil || got.ID != drv.ID {
		t.Fatalf("GetByPersonnelNumber = %+v, %v", got, err)
	}
	if got, err := drivers.GetByPersonnelNumber(ctx, "DP-0000"); err != nil || got != nil {
		t.Fatalf("unknown number = %+v, %v", got, err)
	}

	if err := drivers.UpdateLocation(ctx, drv.ID, 11.7, 78.2); err != nil {
		t.Fatalf("UpdateLocation: %v", err)
	}
	got, _ = drivers.GetByID(ctx, drv.ID)
	if !got.HasLocation() || *got.Lat != 11.7 || *got.Lng != 78.2 {
		t.Fatalf("location = %v,%v", got.Lat, got.Lng)
	}
	if err := drivers.UpdateStatus(ctx, 9999, models.DriverStatusBusy); !errors.Is(err, sql.ErrNoRows) {
		t.Fatalf("UpdateStatus unknown err = %v, want sql.ErrNoRows", err)
	}
}

func TestDriverRepository_ListActiveAndAdmin(t *testing.T) {
	d := testutil.OpenTestDB(t)
	drivers := NewDriverRepository(d)
	ctx := context.Background()

	var all []*models.Driver
	for i := 0; i < 4; i++ {
		all = append(all, seedDriver(t, drivers, fmt.Sprintf("DP-%d", 2000+i)))
	}
	if err := drivers.UpdateStatus(ctx, all[1].ID, models.DriverStatusInactive); err != nil {
		t.Fatalf("deactivate: %v", err)
	}

	active, err := drivers.ListActive(ctx)
	if err != nil {
		t.Fatalf("ListActive: %v", err)
	}
	if len(active) != 3 || active[0].ID != all[0].ID || active[1].ID != all[2].ID {
		t.Fatalf("active = %+v", active)
	}

	page, err := drivers.ListAdmin(ctx, ListDriversAdminParams{PageSize: 3})
	if err != nil {
		t.Fatalf("ListAdmin: %v", err)
	}
	if len(page) != 3 || page[0].ID != all[3].ID {
		t.Fatalf("admin page not newest-first: %+v", page)
	}
	rest, _ := drivers.ListAdmin(ctx, ListDriversAdminParams{PageSize: 3, AfterID: page[2].ID})
	if len(rest) != 1 || rest[0].ID != all[0].ID {
		t.Fatalf("second page = %+v", rest)
	}

	st := models.DriverStatusInactive
	inactive, _ := drivers.ListAdmin(ctx, ListDriversAdminParams{Status: &st})
	if len(inactive) != 1 || inactive[0].ID != all[1].ID {
		t.Fatalf("status filter = %+v", inactive)
	}
	q := "2003"
	found, _ := drivers.ListAdmin(ctx, ListDriversAdminParams{NameOrNumberContains: &q})
	if len(found) != 1 || found[0].PersonnelNumber != "DP-2003" {
		t.Fatalf("search = %+v", found)
	}
}
