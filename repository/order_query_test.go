package repository

import (
	"context"
	"fmt"
	"testing"

	"tailoringStorefront/internal/testutil"
	"tailoringStorefront/models"
)

func TestListAdmin_KeysetPaginationNewestFirst(t *testing.T) {
	d := testutil.OpenTestDB(t)
	orders := NewOrderRepository(d)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		o := newCODOrder(fmt.Sprintf("c%d", i))
		if _, err := orders.Create(ctx, o); err != nil {
			t.Fatalf("create %d: %v", i, err)
		}
	}
	// Force distinct, known creation times.
	if _, err := d.Exec(`UPDATE orders SET created_at = '2024-01-0' || substr(customer_name, 2, 1) || ' 10:00:00.000'`); err != nil {
		t.Fatalf("set created_at: %v", err)
	}

	page1, err := orders.ListAdmin(ctx, ListOrdersAdminParams{PageSize: 2})
	if err != nil {
		t.Fatalf("page1: %v", err)
	}
	if len(page1) != 2 || page1[0].CustomerName != "c4" || page1[1].CustomerName != "c3" {
		t.Fatalf("page1 = %v", names(page1))
	}
	last := page1[len(page1)-1]
	page2, err := orders.ListAdmin(ctx, ListOrdersAdminParams{PageSize: 2, AfterCreatedAt: last.CreatedAt, AfterID: last.ID})
	if err != nil {
		t.Fatalf("page2: %v", err)
	}
	if len(page2) != 2 || page2[0].CustomerName != "c2" || page2[1].CustomerName != "c1" {
		t.Fatalf("page2 = %v", names(page2))
	}

	_ = orders.UpdateStatus(ctx, page1[0].ID, models.OrderStatusReadyForDelivery)
	filtered, err := orders.ListAdmin(ctx, ListOrdersAdminParams{Statuses: []models.OrderStatus{models.OrderStatusReadyForDelivery}})
	if err != nil {
		t.Fatalf("filtered: %v", err)
	}
	if len(filtered) != 1 || filtered[0].ID != page1[0].ID {
		t.Fatalf("status filter = %v", names(filtered))
	}
}

func TestListByDriver_ExcludesDelivered(t *testing.T) {
	d := testutil.OpenTestDB(t)
	orders := NewOrderRepository(d)
	drivers := NewDriverRepository(d)
	ctx := context.Background()

	drv := seedDriver(t, drivers, "DP-4001")
	var ids []string
	for i := 0; i < 2; i++ {
		o, _ := orders.Create(ctx, newOnlineOrder(fmt.Sprintf("g%d", i)))
		_ = orders.UpdateStatus(ctx, o.ID, models.OrderStatusReadyForDelivery)
		if err := orders.AssignDriver(ctx, o.ID, drv.ID); err != nil {
			t.Fatalf("assign: %v", err)
		}
		ids = append(ids, o.ID)
	}
	// Unassigned order is never listed.
	_, _ = orders.Create(ctx, newOnlineOrder("unassigned"))

	_, _ = d.Exec(`UPDATE orders SET delivery_status = 'delivered' WHERE id = ?`, ids[0])
	list, err := orders.ListByDriver(ctx, drv.ID)
	if err != nil {
		t.Fatalf("ListByDriver: %v", err)
	}
	if len(list) != 1 || list[0].ID != ids[1] {
		t.Fatalf("driver orders = %v", names(list))
	}
}

func TestListDeliveryLocationsAndStats(t *testing.T) {
	d := testutil.OpenTestDB(t)
	orders := NewOrderRepository(d)
	drivers := NewDriverRepository(d)
	ctx := context.Background()

	drv := seedDriver(t, drivers, "DP-5001")
	moving, _ := orders.Create(ctx, newCODOrder("moving"))
	_ = orders.UpdateStatus(ctx, moving.ID, models.OrderStatusReadyForDelivery)
	_ = orders.AssignDriver(ctx, moving.ID, drv.ID)
	_ = orders.UpdateDeliveryLocation(ctx, moving.ID, models.DeliveryLocation{Lat: 11.7, Lng: 78.2})

	// Assigned without a location is not on the map.
	quiet, _ := orders.Create(ctx, newCODOrder("quiet"))
	_ = orders.UpdateStatus(ctx, quiet.ID, models.OrderStatusReadyForDelivery)
	_ = orders.AssignDriver(ctx, quiet.ID, drv.ID)

	// Pending order.
	_, _ = orders.Create(ctx, newCODOrder("waiting"))

	rows, err := orders.ListDeliveryLocations(ctx)
	if err != nil {
		t.Fatalf("ListDeliveryLocations: %v", err)
	}
	if len(rows) != 1 || rows[0].OrderID != moving.ID {
		t.Fatalf("map rows = %+v", rows)
	}
	if rows[0].PersonnelNumber != "DP-5001" || rows[0].DriverName == "" || rows[0].Location.Lat != 11.7 {
		t.Fatalf("map row = %+v", rows[0])
	}

	stats, err := orders.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if stats.TotalOrders != 3 || stats.PendingDelivery != 1 || stats.ActiveDeliveries != 2 || stats.TotalDrivers != 1 {
		t.Fatalf("stats = %+v", stats)
	}
}

func names(list []models.Order) []string {
	out := make([]string, len(list))
	for i := range list {
		out[i] = list[i].CustomerName
	}
	return out
}
