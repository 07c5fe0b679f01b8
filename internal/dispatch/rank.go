package dispatch

import (
	"sort"

	"tailoringStorefront/internal/geo"
	"tailoringStorefront/models"
)

// RankedDriver is a driver with its distance from the shop.
// DistanceKm is nil when the driver has not reported a location.
type RankedDriver struct {
	Driver     models.Driver `json:"driver"`
	DistanceKm *float64      `json:"distance_km,omitempty"`
}

// RankDrivers orders drivers nearest-first from origin. Equal distances keep their input
// order; drivers without a location follow the located ones, also in input order.
// The result is advisory: the admin still picks the driver.
func RankDrivers(origin geo.Point, drivers []models.Driver) []RankedDriver {
	out := make([]RankedDriver, 0, len(drivers))
	for i := range drivers {
		rd := RankedDriver{Driver: drivers[i]}
		if drivers[i].HasLocation() {
			d := geo.HaversineKm(origin.Lat, origin.Lng, *drivers[i].Lat, *drivers[i].Lng)
			rd.DistanceKm = &d
		}
		out = append(out, rd)
	}
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i].DistanceKm, out[j].DistanceKm
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		default:
			return *a < *b
		}
	})
	return out
}
