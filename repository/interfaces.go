package repository

import (
	"context"

	"tailoringStorefront/models"
)

// UserRepositoryI defines operations on back-office User entities.
type UserRepositoryI interface {
	Create(ctx context.Context, username, passwordHash, role string) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	List(ctx context.Context, limit, offset int) ([]models.User, error)
}

// OrderRepositoryI defines operations on Order entities.
type OrderRepositoryI interface {
	Create(ctx context.Context, o *models.Order) (*models.Order, error)
	GetByID(ctx context.Context, id string) (*models.Order, error)
	UpdateStatus(ctx context.Context, id string, status models.OrderStatus) error
	AssignDriver(ctx context.Context, id string, driverID int64) error
	TransitionDelivery(ctx context.Context, id string, driverID int64, from, to models.DeliveryStatus, markPaid bool) error
	MarkPaid(ctx context.Context, id, sessionID string) (bool, error)
	UpdateMeasurements(ctx context.Context, id string, m models.Measurements) error
	UpdateDeliveryLocation(ctx context.Context, id string, loc models.DeliveryLocation) error
	ListAdmin(ctx context.Context, p ListOrdersAdminParams) ([]models.Order, error)
	ListByDriver(ctx context.Context, driverID int64) ([]models.Order, error)
	ListDeliveryLocations(ctx context.Context) ([]DeliveryLocationRow, error)
	Stats(ctx context.Context) (*DashboardStats, error)
}

// DriverRepositoryI defines operations on delivery personnel.
type DriverRepositoryI interface {
	Create(ctx context.Context, d *models.Driver) (*models.Driver, error)
	GetByID(ctx context.Context, id int64) (*models.Driver, error)
	GetByPersonnelNumber(ctx context.Context, number string) (*models.Driver, error)
	ListAdmin(ctx context.Context, p ListDriversAdminParams) ([]models.Driver, error)
	ListActive(ctx context.Context) ([]models.Driver, error)
	UpdateStatus(ctx context.Context, id int64, status models.DriverStatus) error
	UpdateLocation(ctx context.Context, id int64, lat, lng float64) error
}

// ReviewRepositoryI defines operations on customer reviews.
type ReviewRepositoryI interface {
	Create(ctx context.Context, r *models.Review) (*models.Review, error)
	List(ctx context.Context, limit int) ([]models.Review, error)
}

// DesignRepositoryI defines read access to the design catalog.
type DesignRepositoryI interface {
	List(ctx context.Context) ([]models.Design, error)
	GetByID(ctx context.Context, id string) (*models.Design, error)
}

var (
	_ UserRepositoryI   = (*UserRepository)(nil)
	_ OrderRepositoryI  = (*OrderRepository)(nil)
	_ DriverRepositoryI = (*DriverRepository)(nil)
	_ ReviewRepositoryI = (*ReviewRepository)(nil)
	_ DesignRepositoryI = (*DesignRepository)(nil)
)
