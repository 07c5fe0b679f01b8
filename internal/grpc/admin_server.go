package grpcserver

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math/rand"
	"strings"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	adminv1 "tailoringStorefront/api/admin/v1"
	commonv1 "tailoringStorefront/api/common/v1"
	"tailoringStorefront/internal/apperr"
	"tailoringStorefront/internal/auth"
	"tailoringStorefront/internal/dispatch"
	"tailoringStorefront/internal/geo"
	"tailoringStorefront/internal/lifecycle"
	"tailoringStorefront/internal/realtime"
	"tailoringStorefront/models"
	"tailoringStorefront/repository"
)

const personnelNumberAttempts = 20

// AdminServer implements admin.v1.AdminService.
type AdminServer struct {
	adminv1.UnimplementedAdminServiceServer
	Users   auth.UserLookup
	Orders  repository.OrderRepositoryI
	Drivers repository.DriverRepositoryI
	Feed    realtime.Feed
	Shop    geo.Point
	Log     *zap.Logger

	// NewPersonnelNumber generates candidate DP-#### numbers; defaults to a random one.
	NewPersonnelNumber func() string
}

// GetOrders lists orders newest first with optional filters and cursor pagination.
func (s *AdminServer) GetOrders(ctx context.Context, req *adminv1.GetOrdersRequest) (*adminv1.GetOrdersResponse, error) {
	if _, err := auth.RequireAdmin(ctx, s.Users); err != nil {
		return nil, err
	}
	if req == nil {
		req = &adminv1.GetOrdersRequest{}
	}
	size := pageSize(req.GetPageSize())

	var afterCreatedAt, afterID string
	if t := strings.TrimSpace(req.GetPageToken()); t != "" {
		var err error
		if afterCreatedAt, afterID, err = decodeCursor(t); err != nil {
			return nil, status.Errorf(codes.InvalidArgument, "invalid page_token: %v", err)
		}
	}

	var statuses []models.OrderStatus
	for _, st := range req.StatusFilter {
		v := models.OrderStatus(strings.TrimSpace(st))
		if !lifecycle.ValidOrderStatus(v) {
			return nil, status.Errorf(codes.InvalidArgument, "unknown status %q", st)
		}
		statuses = append(statuses, v)
	}
	var deliveryStatuses []models.DeliveryStatus
	for _, st := range req.DeliveryStatusFilter {
		v := models.DeliveryStatus(strings.TrimSpace(st))
		if !lifecycle.ValidDeliveryStatus(v) {
			return nil, status.Errorf(codes.InvalidArgument, "unknown delivery status %q", st)
		}
		deliveryStatuses = append(deliveryStatuses, v)
	}

	list, err := s.Orders.ListAdmin(ctx, repository.ListOrdersAdminParams{
		Statuses:         statuses,
		DeliveryStatuses: deliveryStatuses,
		AssignedTo:       req.AssignedTo,
		PageSize:         size,
		AfterCreatedAt:   afterCreatedAt,
		AfterID:          afterID,
	})
	if err != nil {
		return nil, status.Errorf(codes.Internal, "list orders: %v", err)
	}
	resp := &adminv1.GetOrdersResponse{Orders: toProtoOrders(list)}
	if len(list) == size {
		last := list[len(list)-1]
		resp.NextPageToken = encodeCursor(last.CreatedAt, last.ID)
	}
	return resp, nil
}

// UpdateOrderStatus sets the production status. Any valid status is accepted, in any order.
func (s *AdminServer) UpdateOrderStatus(ctx context.Context, req *adminv1.UpdateOrderStatusRequest) (*adminv1.UpdateOrderStatusResponse, error) {
	if _, err := auth.RequireAdmin(ctx, s.Users); err != nil {
		return nil, err
	}
	if req == nil || strings.TrimSpace(req.OrderId) == "" {
		return nil, status.Error(codes.InvalidArgument, "order_id is required")
	}
	st := models.OrderStatus(strings.TrimSpace(req.Status))
	if err := lifecycle.CheckStatusEdit(st); err != nil {
		return nil, apperr.GRPCStatus(err)
	}
	if err := s.Orders.UpdateStatus(ctx, req.OrderId, st); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, status.Error(codes.NotFound, "order not found")
		}
		return nil, status.Errorf(codes.Internal, "update status: %v", err)
	}
	o, err := s.reloadOrder(ctx, req.OrderId)
	if err != nil {
		return nil, err
	}
	realtime.Announce(ctx, s.Feed, s.Log, o.ID, realtime.KindUpdated)
	return &adminv1.UpdateOrderStatusResponse{Order: toProtoOrder(o)}, nil
}

// AssignDriver hands a ready order to a driver.
func (s *AdminServer) AssignDriver(ctx context.Context, req *adminv1.AssignDriverRequest) (*adminv1.AssignDriverResponse, error) {
	if _, err := auth.RequireAdmin(ctx, s.Users); err != nil {
		return nil, err
	}
	if req == nil || strings.TrimSpace(req.OrderId) == "" || req.DriverId == 0 {
		return nil, status.Error(codes.InvalidArgument, "order_id and driver_id are required")
	}
	o, err := s.Orders.GetByID(ctx, req.OrderId)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "get order: %v", err)
	}
	d, err := s.Drivers.GetByID(ctx, req.DriverId)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "get driver: %v", err)
	}
	if err := lifecycle.CheckAssignable(o, d); err != nil {
		return nil, apperr.GRPCStatus(err)
	}
	if err := s.Orders.AssignDriver(ctx, o.ID, d.ID); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, status.Error(codes.FailedPrecondition, "order changed since it was loaded; reload and retry")
		}
		return nil, status.Errorf(codes.Internal, "assign driver: %v", err)
	}
	o, err = s.reloadOrder(ctx, o.ID)
	if err != nil {
		return nil, err
	}
	s.Log.Info("driver assigned", zap.String("order_id", o.ID), zap.Int64("driver_id", d.ID))
	realtime.Announce(ctx, s.Feed, s.Log, o.ID, realtime.KindUpdated)
	return &adminv1.AssignDriverResponse{Order: toProtoOrder(o)}, nil
}

// RankDrivers lists active drivers nearest to the shop first.
func (s *AdminServer) RankDrivers(ctx context.Context, _ *adminv1.RankDriversRequest) (*adminv1.RankDriversResponse, error) {
	if _, err := auth.RequireAdmin(ctx, s.Users); err != nil {
		return nil, err
	}
	list, err := s.Drivers.ListActive(ctx)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "list drivers: %v", err)
	}
	ranked := dispatch.RankDrivers(s.Shop, list)
	resp := &adminv1.RankDriversResponse{
		Origin:  &commonv1.Location{Lat: s.Shop.Lat, Lng: s.Shop.Lng},
		Drivers: make([]*adminv1.RankedDriver, 0, len(ranked)),
	}
	for i := range ranked {
		resp.Drivers = append(resp.Drivers, &adminv1.RankedDriver{
			Driver:     toProtoDriver(&ranked[i].Driver),
			DistanceKm: ranked[i].DistanceKm,
		})
	}
	return resp, nil
}

// CreateDriver registers a driver under a fresh DP-#### personnel number.
func (s *AdminServer) CreateDriver(ctx context.Context, req *adminv1.CreateDriverRequest) (*adminv1.CreateDriverResponse, error) {
	if _, err := auth.RequireAdmin(ctx, s.Users); err != nil {
		return nil, err
	}
	if req == nil || strings.TrimSpace(req.Name) == "" {
		return nil, status.Error(codes.InvalidArgument, "name is required")
	}
	if len(req.Password) < 6 {
		return nil, status.Error(codes.InvalidArgument, "password must be at least 6 characters")
	}
	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "hash password: %v", err)
	}
	gen := s.NewPersonnelNumber
	if gen == nil {
		gen = randomPersonnelNumber
	}
	for i := 0; i < personnelNumberAttempts; i++ {
		d, err := s.Drivers.Create(ctx, &models.Driver{
			Name:            strings.TrimSpace(req.Name),
			Phone:           strings.TrimSpace(req.Phone),
			PersonnelNumber: gen(),
			PasswordHash:    hash,
			Status:          models.DriverStatusActive,
		})
		if errors.Is(err, repository.ErrDuplicate) {
			continue
		}
		if err != nil {
			return nil, status.Errorf(codes.Internal, "create driver: %v", err)
		}
		s.Log.Info("driver created", zap.Int64("driver_id", d.ID), zap.String("personnel_number", d.PersonnelNumber))
		return &adminv1.CreateDriverResponse{Driver: toProtoDriver(d)}, nil
	}
	return nil, status.Error(codes.ResourceExhausted, "could not allocate a personnel number")
}

// GetDrivers lists drivers newest first with optional filters and id-based pagination.
func (s *AdminServer) GetDrivers(ctx context.Context, req *adminv1.GetDriversRequest) (*adminv1.GetDriversResponse, error) {
	if _, err := auth.RequireAdmin(ctx, s.Users); err != nil {
		return nil, err
	}
	if req == nil {
		req = &adminv1.GetDriversRequest{}
	}
	size := pageSize(req.GetPageSize())

	var afterID int64
	if t := strings.TrimSpace(req.GetPageToken()); t != "" {
		if _, err := fmt.Sscanf(t, "%d", &afterID); err != nil || afterID <= 0 {
			return nil, status.Error(codes.InvalidArgument, "invalid page_token")
		}
	}

	var st *models.DriverStatus
	if req.Status != nil {
		v := models.DriverStatus(strings.TrimSpace(*req.Status))
		if !validDriverStatus(v) {
			return nil, status.Errorf(codes.InvalidArgument, "unknown driver status %q", *req.Status)
		}
		st = &v
	}

	list, err := s.Drivers.ListAdmin(ctx, repository.ListDriversAdminParams{
		Status:               st,
		NameOrNumberContains: req.NameOrNumberContains,
		PageSize:             size,
		AfterID:              afterID,
	})
	if err != nil {
		return nil, status.Errorf(codes.Internal, "list drivers: %v", err)
	}
	out := make([]*commonv1.Driver, 0, len(list))
	for i := range list {
		out = append(out, toProtoDriver(&list[i]))
	}
	resp := &adminv1.GetDriversResponse{Drivers: out}
	if len(list) == size {
		resp.NextPageToken = fmt.Sprintf("%d", list[len(list)-1].ID)
	}
	return resp, nil
}

// UpdateDriverStatus sets a driver active, busy or inactive and returns the updated driver.
func (s *AdminServer) UpdateDriverStatus(ctx context.Context, req *adminv1.UpdateDriverStatusRequest) (*adminv1.UpdateDriverStatusResponse, error) {
	if _, err := auth.RequireAdmin(ctx, s.Users); err != nil {
		return nil, err
	}
	if req == nil || req.DriverId == 0 {
		return nil, status.Error(codes.InvalidArgument, "driver_id is required")
	}
	st := models.DriverStatus(strings.TrimSpace(req.Status))
	if !validDriverStatus(st) {
		return nil, status.Error(codes.InvalidArgument, "status must be active, busy or inactive")
	}
	if err := s.Drivers.UpdateStatus(ctx, req.DriverId, st); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, status.Error(codes.NotFound, "driver not found")
		}
		return nil, status.Errorf(codes.Internal, "update status: %v", err)
	}
	d, err := s.Drivers.GetByID(ctx, req.DriverId)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "get driver: %v", err)
	}
	if d == nil {
		return nil, status.Error(codes.NotFound, "driver not found")
	}
	return &adminv1.UpdateDriverStatusResponse{Driver: toProtoDriver(d)}, nil
}

// GetStats returns the dashboard counters.
func (s *AdminServer) GetStats(ctx context.Context, _ *adminv1.GetStatsRequest) (*adminv1.GetStatsResponse, error) {
	if _, err := auth.RequireAdmin(ctx, s.Users); err != nil {
		return nil, err
	}
	st, err := s.Orders.Stats(ctx)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "stats: %v", err)
	}
	return &adminv1.GetStatsResponse{
		TotalOrders:      st.TotalOrders,
		PendingDelivery:  st.PendingDelivery,
		ActiveDeliveries: st.ActiveDeliveries,
		TotalDrivers:     st.TotalDrivers,
	}, nil
}

// GetDeliveryLocations returns the live map markers.
func (s *AdminServer) GetDeliveryLocations(ctx context.Context, _ *adminv1.GetDeliveryLocationsRequest) (*adminv1.GetDeliveryLocationsResponse, error) {
	if _, err := auth.RequireAdmin(ctx, s.Users); err != nil {
		return nil, err
	}
	return s.deliverySnapshot(ctx)
}

// WatchDeliveryLocations sends the live map snapshot, then a fresh snapshot after every order change.
func (s *AdminServer) WatchDeliveryLocations(_ *adminv1.WatchDeliveryLocationsRequest, stream grpc.ServerStreamingServer[adminv1.GetDeliveryLocationsResponse]) error {
	ctx := stream.Context()
	if _, err := auth.RequireAdmin(ctx, s.Users); err != nil {
		return err
	}
	if s.Feed == nil {
		return status.Error(codes.Unavailable, "change feed not configured")
	}
	sub, err := s.Feed.Subscribe(ctx)
	if err != nil {
		return status.Errorf(codes.Unavailable, "subscribe: %v", err)
	}
	defer sub.Close()

	snap, err := s.deliverySnapshot(ctx)
	if err != nil {
		return err
	}
	if err := stream.Send(snap); err != nil {
		return err
	}
	for {
		select {
		case <-ctx.Done():
			return nil
		case _, ok := <-sub.Events():
			if !ok {
				return nil
			}
			snap, err := s.deliverySnapshot(ctx)
			if err != nil {
				return err
			}
			if err := stream.Send(snap); err != nil {
				return err
			}
		}
	}
}

func (s *AdminServer) deliverySnapshot(ctx context.Context) (*adminv1.GetDeliveryLocationsResponse, error) {
	rows, err := s.Orders.ListDeliveryLocations(ctx)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "list delivery locations: %v", err)
	}
	resp := &adminv1.GetDeliveryLocationsResponse{Markers: make([]*adminv1.DeliveryMarker, 0, len(rows))}
	for i := range rows {
		r := &rows[i]
		resp.Markers = append(resp.Markers, &adminv1.DeliveryMarker{
			OrderId:         r.OrderID,
			CustomerName:    r.CustomerName,
			Address:         r.Address,
			DeliveryStatus:  string(r.DeliveryStatus),
			Location:        toProtoLocation(r.Location),
			DriverId:        r.DriverID,
			DriverName:      r.DriverName,
			PersonnelNumber: r.PersonnelNumber,
		})
	}
	return resp, nil
}

func (s *AdminServer) reloadOrder(ctx context.Context, id string) (*models.Order, error) {
	o, err := s.Orders.GetByID(ctx, id)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "get order: %v", err)
	}
	if o == nil {
		return nil, status.Error(codes.NotFound, "order not found")
	}
	return o, nil
}

func validDriverStatus(s models.DriverStatus) bool {
	switch s {
	case models.DriverStatusActive, models.DriverStatusBusy, models.DriverStatusInactive:
		return true
	}
	return false
}

func randomPersonnelNumber() string {
	return fmt.Sprintf("DP-%04d", 1000+rand.Intn(9000))
}
