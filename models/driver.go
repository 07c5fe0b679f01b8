package models

// DriverStatus represents the availability of a delivery driver.
type DriverStatus string

const (
	DriverStatusActive   DriverStatus = "active"
	DriverStatusBusy     DriverStatus = "busy"
	DriverStatusInactive DriverStatus = "inactive"
)

// Driver represents a member of the delivery personnel.
// Lat/Lng are nil until the driver reports a position.
type Driver struct {
	ID              int64        `db:"id" json:"id"`
	Name            string       `db:"name" json:"name"`
	PersonnelNumber string       `db:"personnel_number" json:"personnel_number"`
	Phone           string       `db:"phone" json:"phone"`
	PasswordHash    string       `db:"password_hash" json:"-"`
	Status          DriverStatus `db:"status" json:"status"`
	Lat             *float64     `db:"lat" json:"lat,omitempty"`
	Lng             *float64     `db:"lng" json:"lng,omitempty"`
	CreatedAt       string       `db:"created_at" json:"created_at"`
}

// HasLocation reports whether the driver has a known position.
func (d *Driver) HasLocation() bool {
	return d != nil && d.Lat != nil && d.Lng != nil
}
