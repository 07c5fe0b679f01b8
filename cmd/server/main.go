package main

import (
	"context"
	"database/sql"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"tailoringStorefront/internal/auth"
	"tailoringStorefront/internal/catalog"
	"tailoringStorefront/internal/checkout"
	"tailoringStorefront/internal/config"
	"tailoringStorefront/internal/db"
	"tailoringStorefront/internal/geo"
	grpcserver "tailoringStorefront/internal/grpc"
	"tailoringStorefront/internal/httpapi"
	"tailoringStorefront/internal/logger"
	"tailoringStorefront/internal/notify"
	"tailoringStorefront/internal/payment"
	"tailoringStorefront/internal/realtime"
	"tailoringStorefront/internal/session"
	"tailoringStorefront/internal/tracker"
	"tailoringStorefront/repository"
)

func main() {
	// Load configuration
	cfg, err := config.LoadWithDefaults()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	zl, err := logger.New(cfg.Log.Level)
	if err != nil {
		log.Fatalf("build logger: %v", err)
	}
	defer func() { _ = zl.Sync() }()
	zl.Info("configuration loaded", zap.Stringer("config", cfg))

	// Open DB
	d, err := db.Open(cfg.Database.Path)
	if err != nil {
		zl.Fatal("open db", zap.Error(err))
	}
	defer func() {
		if err := d.Close(); err != nil {
			zl.Warn("close db", zap.Error(err))
		}
	}()

	if err := run(cfg, d, zl); err != nil {
		zl.Fatal("server stopped", zap.Error(err))
	}
}

func run(cfg *config.Config, d *sql.DB, zl *zap.Logger) error {
	users := repository.NewUserRepository(d)
	orders := repository.NewOrderRepository(d)
	drivers := repository.NewDriverRepository(d)
	reviews := repository.NewReviewRepository(d)
	designs := repository.NewDesignRepository(d)

	ctx := context.Background()
	if err := auth.EnsureAdmin(ctx, users, cfg.Auth.AdminUsername, cfg.Auth.AdminPassword, zl); err != nil {
		return err
	}

	// Change feed and sessions live in Redis when configured, otherwise in process.
	var (
		feed     realtime.Feed
		sessions session.Store
	)
	if cfg.Redis.Addr != "" {
		feedClient := redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
		sessionClient := redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
		defer func() { _ = sessionClient.Close() }()
		pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
		err := feedClient.Ping(pingCtx).Err()
		cancel()
		if err != nil {
			return err
		}
		feed = realtime.NewRedisFeed(feedClient, realtime.DefaultChannel, zl)
		sessions = session.NewRedisStore(sessionClient, cfg.Session.TTL)
		zl.Info("using redis change feed and sessions", zap.String("addr", cfg.Redis.Addr))
	} else {
		feed = realtime.NewHub()
		mem := session.NewMemoryStore(cfg.Session.TTL)
		sweepCtx, stopSweep := context.WithCancel(ctx)
		defer stopSweep()
		go mem.RunSweeper(sweepCtx, time.Hour)
		sessions = mem
	}
	defer func() { _ = feed.Close() }()

	dispatcher := notify.NewDispatcher(notify.NewSender(cfg.SMTP, zl), zl)
	defer dispatcher.Wait()

	var gateway payment.Gateway
	if cfg.Payment.StripeSecretKey != "" {
		gateway = payment.NewStripeGateway(cfg.Payment.StripeSecretKey, cfg.Payment.Currency)
	} else {
		zl.Warn("STRIPE_SECRET_KEY not set; online payment disabled")
	}

	shop := geo.Point{Lat: cfg.Shop.Lat, Lng: cfg.Shop.Lng}
	deps := grpcserver.Deps{Users: users, Orders: orders, Drivers: drivers, Feed: feed, Shop: shop}
	if cfg.Tracking.Enabled {
		sim := tracker.New(orders, feed, shop, cfg.Tracking.Interval, zl)
		defer sim.Close()
		deps.Tracker = sim
	}

	// Start gRPC
	stopGRPC, err := grpcserver.StartGRPC(cfg, deps, zl)
	if err != nil {
		return err
	}

	stopHTTP, err := httpapi.Start(cfg.HTTP.Address, &httpapi.Handler{
		Catalog:    catalog.NewService(designs, zl),
		Checkout:   checkout.NewService(orders, gateway, dispatcher, feed, cfg.Shop.MeasurementSurcharge, zl),
		Verifier:   payment.NewVerifier(gateway, orders, dispatcher, feed, zl),
		Orders:     orders,
		Reviews:    reviews,
		Auth:       &auth.Authenticator{Users: users, Drivers: drivers, Secret: cfg.Auth.JWTSecret, TokenTTL: cfg.Auth.TokenTTL},
		Sessions:   sessions,
		SessionTTL: cfg.Session.TTL,
		PublicURL:  cfg.Shop.PublicURL,
		Log:        zl,
	})
	if err != nil {
		shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		_ = stopGRPC(shutdownCtx)
		return err
	}

	// Wait for signal
	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigc
	zl.Info("shutting down", zap.String("signal", sig.String()))

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := stopHTTP(shutdownCtx); err != nil {
		zl.Warn("http shutdown", zap.Error(err))
	}
	if err := stopGRPC(shutdownCtx); err != nil {
		zl.Warn("grpc shutdown", zap.Error(err))
	}
	return nil
}
