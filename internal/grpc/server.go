package grpcserver

import (
	"context"
	"net"
	"time"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"

	adminv1 "tailoringStorefront/api/admin/v1"
	deliveryv1 "tailoringStorefront/api/delivery/v1"
	"tailoringStorefront/internal/auth"
	"tailoringStorefront/internal/config"
	"tailoringStorefront/internal/geo"
	"tailoringStorefront/internal/realtime"
	"tailoringStorefront/repository"
)

const (
	healthCheckMethod = "/grpc.health.v1.Health/Check"
	healthWatchMethod = "/grpc.health.v1.Health/Watch"
)

// Tracker starts and stops simulated location pushes for an order.
type Tracker interface {
	Start(orderID string) bool
	Stop(orderID string)
}

// Deps are the collaborators of the back-office services.
type Deps struct {
	Users   auth.UserLookup
	Orders  repository.OrderRepositoryI
	Drivers repository.DriverRepositoryI
	Feed    realtime.Feed
	Tracker Tracker // nil disables simulated tracking
	Shop    geo.Point
}

// NewServer builds the gRPC server with AdminService, DeliveryService and health registered.
func NewServer(cfg *config.Config, deps Deps, log *zap.Logger) *grpc.Server {
	srv := grpc.NewServer(
		grpc.ChainUnaryInterceptor(
			unaryLogInterceptor(log),
			auth.NewUnaryAuthInterceptor(cfg.Auth.JWTSecret, healthCheckMethod),
		),
		grpc.ChainStreamInterceptor(
			streamLogInterceptor(log),
			auth.NewStreamAuthInterceptor(cfg.Auth.JWTSecret, healthWatchMethod),
		),
	)

	as := &AdminServer{Users: deps.Users, Orders: deps.Orders, Drivers: deps.Drivers, Feed: deps.Feed, Shop: deps.Shop, Log: log}
	adminv1.RegisterAdminServiceServer(srv, as)

	ds := &DeliveryServer{Orders: deps.Orders, Drivers: deps.Drivers, Feed: deps.Feed, Tracker: deps.Tracker, Log: log}
	deliveryv1.RegisterDeliveryServiceServer(srv, ds)

	hs := health.NewServer()
	hs.SetServingStatus(adminv1.ServiceName, healthpb.HealthCheckResponse_SERVING)
	hs.SetServingStatus(deliveryv1.ServiceName, healthpb.HealthCheckResponse_SERVING)
	healthpb.RegisterHealthServer(srv, hs)
	return srv
}

// StartGRPC starts the gRPC server on the configured address and returns a shutdown function.
func StartGRPC(cfg *config.Config, deps Deps, log *zap.Logger) (func(context.Context) error, error) {
	if cfg == nil {
		panic("config is required")
	}

	addr := cfg.GRPC.Address
	if addr == "" {
		addr = ":50051"
	}

	lis, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, err
	}

	srv := NewServer(cfg, deps, log)
	go func() {
		if err := srv.Serve(lis); err != nil {
			log.Error("grpc serve", zap.Error(err))
		}
	}()
	log.Info("grpc listening", zap.String("addr", lis.Addr().String()))

	return func(ctx context.Context) error {
		done := make(chan struct{})
		go func() { srv.GracefulStop(); close(done) }()
		select {
		case <-done:
			return nil
		case <-ctx.Done():
			srv.Stop()
			return ctx.Err()
		}
	}, nil
}

func unaryLogInterceptor(log *zap.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		start := time.Now()
		resp, err := handler(ctx, req)
		logCall(log, info.FullMethod, start, err)
		return resp, err
	}
}

func streamLogInterceptor(log *zap.Logger) grpc.StreamServerInterceptor {
	return func(srv any, ss grpc.ServerStream, info *grpc.StreamServerInfo, handler grpc.StreamHandler) error {
		start := time.Now()
		err := handler(srv, ss)
		logCall(log, info.FullMethod, start, err)
		return err
	}
}

func logCall(log *zap.Logger, method string, start time.Time, err error) {
	fields := []zap.Field{
		zap.String("method", method),
		zap.String("code", status.Code(err).String()),
		zap.Duration("latency", time.Since(start)),
	}
	if err != nil {
		log.Warn("grpc call failed", append(fields, zap.Error(err))...)
		return
	}
	log.Debug("grpc call", fields...)
}
