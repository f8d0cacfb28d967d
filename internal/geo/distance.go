// Package geo holds the pure geometric core: great-circle distance, zone containment and danger tiers.
// All points are orb.Point values in GeoJSON order: [longitude, latitude].
package geo

import (
	"fmt"
	"math"

	"github.com/paulmach/orb"

	"disasterAlert/pkg/e"
)

// EarthRadiusKM is the mean Earth radius.
const EarthRadiusKM = 6371.0

// Distance returns the haversine great-circle distance in kilometres.
func Distance(a, b orb.Point) float64 {
	lat1 := deg2rad(a.Lat())
	lat2 := deg2rad(b.Lat())
	dLat := lat2 - lat1
	dLng := deg2rad(b.Lon() - a.Lon())

	sinLat := math.Sin(dLat / 2)
	sinLng := math.Sin(dLng / 2)
	h := sinLat*sinLat + math.Cos(lat1)*math.Cos(lat2)*sinLng*sinLng
	if h > 1 {
		h = 1
	}
	return 2 * EarthRadiusKM * math.Asin(math.Sqrt(h))
}

// ValidatePoint rejects NaN or out-of-range coordinates with e.ErrInvalidCoordinate.
func ValidatePoint(p orb.Point) error {
	lng, lat := p.Lon(), p.Lat()
	if math.IsNaN(lng) || math.IsNaN(lat) || lng < -180 || lng > 180 || lat < -90 || lat > 90 {
		return fmt.Errorf("lng=%v lat=%v: %w", lng, lat, e.ErrInvalidCoordinate)
	}
	return nil
}

func deg2rad(deg float64) float64 {
	return deg * math.Pi / 180.0
}
