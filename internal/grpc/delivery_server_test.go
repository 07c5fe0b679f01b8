package grpcserver

import (
	"context"
	"testing"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	deliveryv1 "tailoringStorefront/api/delivery/v1"
	"tailoringStorefront/models"
)

// assignedOrder seeds a ready order of the given payment method and assigns it to d.
func (f *fixture) assignedOrder(t *testing.T, name string, method models.PaymentMethod, d *models.Driver) *models.Order {
	t.Helper()
	o := f.seedOrder(t, name, models.OrderStatusReadyForDelivery, method)
	if err := f.orders.AssignDriver(context.Background(), o.ID, d.ID); err != nil {
		t.Fatalf("assign: %v", err)
	}
	return o
}

func TestDeliveryStatus_OneStepAtATimeWithCOD(t *testing.T) {
	f := newFixture(t)
	d := f.seedDriver(t, "DP-1001")
	o := f.assignedOrder(t, "asha", models.PaymentMethodCOD, d)
	ctx := f.driverCtx(d)

	step := func(to string, cash bool) (*deliveryv1.UpdateDeliveryStatusResponse, error) {
		return f.delivery.UpdateDeliveryStatus(ctx, &deliveryv1.UpdateDeliveryStatusRequest{OrderId: o.ID, DeliveryStatus: to, CashCollected: cash})
	}

	if _, err := step("out_for_delivery", false); status.Code(err) != codes.FailedPrecondition {
		t.Fatalf("skip a step: code = %v", status.Code(err))
	}
	if _, err := step("teleported", false); status.Code(err) != codes.InvalidArgument {
		t.Fatalf("unknown status: code = %v", status.Code(err))
	}
	if _, err := step("picked_up", false); err != nil {
		t.Fatalf("picked_up: %v", err)
	}
	if _, err := step("out_for_delivery", false); err != nil {
		t.Fatalf("out_for_delivery: %v", err)
	}
	if len(f.tracker.started) != 1 || f.tracker.started[0] != o.ID {
		t.Fatalf("tracker started = %v", f.tracker.started)
	}
	if _, err := step("delivered", false); status.Code(err) != codes.FailedPrecondition {
		t.Fatalf("deliver without cash: code = %v", status.Code(err))
	}
	resp, err := step("delivered", true)
	if err != nil {
		t.Fatalf("delivered: %v", err)
	}
	if resp.Order.DeliveryStatus != "delivered" || resp.Order.PaymentStatus != string(models.PaymentStatusPaid) {
		t.Fatalf("delivered order = %+v", resp.Order)
	}
	if len(f.tracker.stopped) != 1 || f.tracker.stopped[0] != o.ID {
		t.Fatalf("tracker stopped = %v", f.tracker.stopped)
	}
	if _, err := step("delivered", true); status.Code(err) != codes.FailedPrecondition {
		t.Fatalf("past delivered: code = %v", status.Code(err))
	}

	list, err := f.delivery.GetAssignedOrders(ctx, &deliveryv1.GetAssignedOrdersRequest{})
	if err != nil {
		t.Fatalf("GetAssignedOrders: %v", err)
	}
	if len(list.Orders) != 0 {
		t.Fatalf("delivered order still listed: %+v", list.Orders)
	}
}

func TestDeliveryStatus_OnlinePaymentUntouched(t *testing.T) {
	f := newFixture(t)
	d := f.seedDriver(t, "DP-1001")
	o := f.assignedOrder(t, "asha", models.PaymentMethodOnline, d)
	ctx := f.driverCtx(d)
	for _, to := range []string{"picked_up", "out_for_delivery", "delivered"} {
		if _, err := f.delivery.UpdateDeliveryStatus(ctx, &deliveryv1.UpdateDeliveryStatusRequest{OrderId: o.ID, DeliveryStatus: to}); err != nil {
			t.Fatalf("%s: %v", to, err)
		}
	}
	got, err := f.orders.GetByID(context.Background(), o.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.PaymentStatus != models.PaymentStatusPendingPayment {
		t.Fatalf("payment status = %s", got.PaymentStatus)
	}
}

func TestDelivery_OnlyOwnOrders(t *testing.T) {
	f := newFixture(t)
	owner := f.seedDriver(t, "DP-1001")
	other := f.seedDriver(t, "DP-1002")
	o := f.assignedOrder(t, "asha", models.PaymentMethodCOD, owner)
	ctx := f.driverCtx(other)

	_, err := f.delivery.UpdateDeliveryStatus(ctx, &deliveryv1.UpdateDeliveryStatusRequest{OrderId: o.ID, DeliveryStatus: "picked_up"})
	if status.Code(err) != codes.PermissionDenied {
		t.Fatalf("foreign order: code = %v", status.Code(err))
	}
	_, err = f.delivery.SaveMeasurements(ctx, &deliveryv1.SaveMeasurementsRequest{OrderId: o.ID, Measurements: map[string]string{"chest": "36"}})
	if status.Code(err) != codes.PermissionDenied {
		t.Fatalf("foreign measurements: code = %v", status.Code(err))
	}
	_, err = f.delivery.UpdateDeliveryStatus(ctx, &deliveryv1.UpdateDeliveryStatusRequest{OrderId: "missing", DeliveryStatus: "picked_up"})
	if status.Code(err) != codes.NotFound {
		t.Fatalf("unknown order: code = %v", status.Code(err))
	}

	list, err := f.delivery.GetAssignedOrders(f.driverCtx(owner), &deliveryv1.GetAssignedOrdersRequest{})
	if err != nil {
		t.Fatalf("GetAssignedOrders: %v", err)
	}
	if len(list.Orders) != 1 || list.Orders[0].Id != o.ID {
		t.Fatalf("owner orders = %+v", list.Orders)
	}
}

func TestDelivery_InactiveDriverRejected(t *testing.T) {
	f := newFixture(t)
	d := f.seedDriver(t, "DP-1001")
	if err := f.drivers.UpdateStatus(context.Background(), d.ID, models.DriverStatusInactive); err != nil {
		t.Fatalf("deactivate: %v", err)
	}
	_, err := f.delivery.GetProfile(f.driverCtx(d), &deliveryv1.GetProfileRequest{})
	if status.Code(err) != codes.PermissionDenied {
		t.Fatalf("inactive driver: code = %v", status.Code(err))
	}
	_, err = f.delivery.GetProfile(f.adminCtx(t), &deliveryv1.GetProfileRequest{})
	if status.Code(err) != codes.PermissionDenied {
		t.Fatalf("admin principal: code = %v", status.Code(err))
	}
}

func TestSaveMeasurements(t *testing.T) {
	f := newFixture(t)
	d := f.seedDriver(t, "DP-1001")
	o := f.assignedOrder(t, "asha", models.PaymentMethodCOD, d)
	ctx := f.driverCtx(d)

	_, err := f.delivery.SaveMeasurements(ctx, &deliveryv1.SaveMeasurementsRequest{OrderId: o.ID, Measurements: map[string]string{"chest": " "}})
	if status.Code(err) != codes.InvalidArgument {
		t.Fatalf("blank values: code = %v", status.Code(err))
	}
	resp, err := f.delivery.SaveMeasurements(ctx, &deliveryv1.SaveMeasurementsRequest{OrderId: o.ID, Measurements: map[string]string{"chest": "36", "sleeve length": "22"}})
	if err != nil {
		t.Fatalf("SaveMeasurements: %v", err)
	}
	if resp.Order.Measurements["chest"] != "36" || resp.Order.Measurements["sleeve length"] != "22" {
		t.Fatalf("measurements = %v", resp.Order.Measurements)
	}
}

func TestUpdateLocation(t *testing.T) {
	f := newFixture(t)
	d := f.seedDriver(t, "DP-1001")
	o := f.assignedOrder(t, "asha", models.PaymentMethodCOD, d)
	ctx := f.driverCtx(d)
	sub, err := f.hub.Subscribe(context.Background())
	if err != nil {
		t.Fatalf("subscribe: %v", err)
	}
	defer sub.Close()

	if _, err := f.delivery.UpdateLocation(ctx, &deliveryv1.UpdateLocationRequest{Lat: 91, Lng: 0}); status.Code(err) != codes.InvalidArgument {
		t.Fatalf("invalid lat: code = %v", status.Code(err))
	}

	resp, err := f.delivery.UpdateLocation(ctx, &deliveryv1.UpdateLocationRequest{Lat: 12.5, Lng: 77.5})
	if err != nil {
		t.Fatalf("driver-only location: %v", err)
	}
	if resp.Order != nil || resp.Driver.Lat == nil || *resp.Driver.Lat != 12.5 {
		t.Fatalf("driver-only response = %+v", resp)
	}

	resp, err = f.delivery.UpdateLocation(ctx, &deliveryv1.UpdateLocationRequest{OrderId: o.ID, Lat: 12.6, Lng: 77.6})
	if err != nil {
		t.Fatalf("order location: %v", err)
	}
	if resp.Order == nil || resp.Order.DeliveryLocation == nil || resp.Order.DeliveryLocation.Lat != 12.6 {
		t.Fatalf("order response = %+v", resp.Order)
	}
	ev := <-sub.Events()
	if ev.OrderID != o.ID || ev.Kind != "order.location" {
		t.Fatalf("event = %+v", ev)
	}
	stored, err := f.drivers.GetByID(context.Background(), d.ID)
	if err != nil || stored.Lat == nil || *stored.Lat != 12.6 {
		t.Fatalf("stored driver = %+v, err %v", stored, err)
	}

	pending := f.seedOrder(t, "other", models.OrderStatusConfirmed, models.PaymentMethodCOD)
	_, err = f.delivery.UpdateLocation(ctx, &deliveryv1.UpdateLocationRequest{OrderId: pending.ID, Lat: 12.6, Lng: 77.6})
	if status.Code(err) != codes.PermissionDenied {
		t.Fatalf("unassigned order: code = %v", status.Code(err))
	}
}
