package grpcserver

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	deliveryv1 "tailoringStorefront/api/delivery/v1"
	"tailoringStorefront/internal/apperr"
	"tailoringStorefront/internal/auth"
	"tailoringStorefront/internal/geo"
	"tailoringStorefront/internal/lifecycle"
	"tailoringStorefront/internal/realtime"
	"tailoringStorefront/models"
	"tailoringStorefront/repository"
)

// DeliveryServer implements delivery.v1.DeliveryService. Every call acts as the signed-in driver.
type DeliveryServer struct {
	deliveryv1.UnimplementedDeliveryServiceServer
	Orders  repository.OrderRepositoryI
	Drivers repository.DriverRepositoryI
	Feed    realtime.Publisher
	Tracker Tracker
	Log     *zap.Logger
}

func (s *DeliveryServer) GetProfile(ctx context.Context, _ *deliveryv1.GetProfileRequest) (*deliveryv1.GetProfileResponse, error) {
	d, err := auth.RequireDriver(ctx, s.Drivers)
	if err != nil {
		return nil, err
	}
	return &deliveryv1.GetProfileResponse{Driver: toProtoDriver(d)}, nil
}

// GetAssignedOrders lists the caller's orders that are not delivered yet, newest first.
func (s *DeliveryServer) GetAssignedOrders(ctx context.Context, _ *deliveryv1.GetAssignedOrdersRequest) (*deliveryv1.GetAssignedOrdersResponse, error) {
	d, err := auth.RequireDriver(ctx, s.Drivers)
	if err != nil {
		return nil, err
	}
	list, err := s.Orders.ListByDriver(ctx, d.ID)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "list orders: %v", err)
	}
	return &deliveryv1.GetAssignedOrdersResponse{Orders: toProtoOrders(list)}, nil
}

// UpdateDeliveryStatus advances one of the caller's orders by one delivery step.
func (s *DeliveryServer) UpdateDeliveryStatus(ctx context.Context, req *deliveryv1.UpdateDeliveryStatusRequest) (*deliveryv1.UpdateDeliveryStatusResponse, error) {
	d, err := auth.RequireDriver(ctx, s.Drivers)
	if err != nil {
		return nil, err
	}
	if req == nil || strings.TrimSpace(req.OrderId) == "" {
		return nil, status.Error(codes.InvalidArgument, "order_id is required")
	}
	o, err := s.ownOrder(ctx, d, req.OrderId)
	if err != nil {
		return nil, err
	}
	plan, err := lifecycle.PlanDeliveryTransition(o, models.DeliveryStatus(strings.TrimSpace(req.DeliveryStatus)), req.CashCollected)
	if err != nil {
		return nil, apperr.GRPCStatus(err)
	}
	if err := s.Orders.TransitionDelivery(ctx, o.ID, d.ID, plan.From, plan.To, plan.MarkPaid); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, status.Error(codes.FailedPrecondition, "order changed since it was loaded; reload and retry")
		}
		return nil, status.Errorf(codes.Internal, "update delivery status: %v", err)
	}

	if s.Tracker != nil {
		switch plan.To {
		case models.DeliveryStatusOutForDelivery:
			s.Tracker.Start(o.ID)
		case models.DeliveryStatusDelivered:
			s.Tracker.Stop(o.ID)
		}
	}

	o, err = s.Orders.GetByID(ctx, o.ID)
	if err != nil || o == nil {
		return nil, status.Errorf(codes.Internal, "reload order: %v", err)
	}
	s.Log.Info("delivery status updated",
		zap.String("order_id", o.ID),
		zap.String("from", string(plan.From)),
		zap.String("to", string(plan.To)),
		zap.Bool("cash_settled", plan.MarkPaid))
	realtime.Announce(ctx, s.Feed, s.Log, o.ID, realtime.KindUpdated)
	return &deliveryv1.UpdateDeliveryStatusResponse{Order: toProtoOrder(o)}, nil
}

// SaveMeasurements records measurements taken at the customer's door.
func (s *DeliveryServer) SaveMeasurements(ctx context.Context, req *deliveryv1.SaveMeasurementsRequest) (*deliveryv1.SaveMeasurementsResponse, error) {
	d, err := auth.RequireDriver(ctx, s.Drivers)
	if err != nil {
		return nil, err
	}
	if req == nil || strings.TrimSpace(req.OrderId) == "" {
		return nil, status.Error(codes.InvalidArgument, "order_id is required")
	}
	m := models.Measurements{}
	for k, v := range req.Measurements {
		k, v = strings.TrimSpace(k), strings.TrimSpace(v)
		if k == "" {
			return nil, status.Error(codes.InvalidArgument, "measurement names must not be empty")
		}
		if v != "" {
			m[k] = v
		}
	}
	if len(m) == 0 {
		return nil, status.Error(codes.InvalidArgument, "at least one measurement is required")
	}
	o, err := s.ownOrder(ctx, d, req.OrderId)
	if err != nil {
		return nil, err
	}
	if err := s.Orders.UpdateMeasurements(ctx, o.ID, m); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, status.Error(codes.NotFound, "order not found")
		}
		return nil, status.Errorf(codes.Internal, "save measurements: %v", err)
	}
	o, err = s.Orders.GetByID(ctx, o.ID)
	if err != nil || o == nil {
		return nil, status.Errorf(codes.Internal, "reload order: %v", err)
	}
	realtime.Announce(ctx, s.Feed, s.Log, o.ID, realtime.KindUpdated)
	return &deliveryv1.SaveMeasurementsResponse{Order: toProtoOrder(o)}, nil
}

// UpdateLocation stores the caller's position and, for an order in transit, the order's position.
func (s *DeliveryServer) UpdateLocation(ctx context.Context, req *deliveryv1.UpdateLocationRequest) (*deliveryv1.UpdateLocationResponse, error) {
	d, err := auth.RequireDriver(ctx, s.Drivers)
	if err != nil {
		return nil, err
	}
	if req == nil || !(geo.Point{Lat: req.Lat, Lng: req.Lng}).Valid() {
		return nil, status.Error(codes.InvalidArgument, "lat must be within [-90,90] and lng within [-180,180]")
	}
	resp := &deliveryv1.UpdateLocationResponse{}
	if id := strings.TrimSpace(req.OrderId); id != "" {
		o, err := s.ownOrder(ctx, d, id)
		if err != nil {
			return nil, err
		}
		if o.DeliveryStatus == models.DeliveryStatusPending || o.DeliveryStatus == models.DeliveryStatusDelivered {
			return nil, status.Errorf(codes.FailedPrecondition, "order is %s; location is only tracked in transit", o.DeliveryStatus)
		}
		loc := models.DeliveryLocation{Lat: req.Lat, Lng: req.Lng, UpdatedAt: time.Now().UTC()}
		if err := s.Orders.UpdateDeliveryLocation(ctx, o.ID, loc); err != nil {
			return nil, status.Errorf(codes.Internal, "update order location: %v", err)
		}
		o.DeliveryLocation = &loc
		resp.Order = toProtoOrder(o)
		realtime.Announce(ctx, s.Feed, s.Log, o.ID, realtime.KindLocation)
	}
	if err := s.Drivers.UpdateLocation(ctx, d.ID, req.Lat, req.Lng); err != nil {
		return nil, status.Errorf(codes.Internal, "update driver location: %v", err)
	}
	lat, lng := req.Lat, req.Lng
	d.Lat, d.Lng = &lat, &lng
	resp.Driver = toProtoDriver(d)
	return resp, nil
}

// ownOrder loads an order and checks it is assigned to d.
func (s *DeliveryServer) ownOrder(ctx context.Context, d *models.Driver, id string) (*models.Order, error) {
	o, err := s.Orders.GetByID(ctx, id)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "get order: %v", err)
	}
	if o == nil {
		return nil, status.Error(codes.NotFound, "order not found")
	}
	if o.AssignedTo == nil || *o.AssignedTo != d.ID {
		return nil, status.Error(codes.PermissionDenied, "order is not assigned to you")
	}
	return o, nil
}
