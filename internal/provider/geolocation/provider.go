// Package geolocation resolves external place ids against a remote places API.
package geolocation

import (
	"context"
	"errors"
)

// ErrUnavailable covers every failed lookup: transport errors, non-2xx
// responses, undecodable bodies and responses missing required fields.
var ErrUnavailable = errors.New("geolocation provider unavailable")

// Place is a resolved location.
type Place struct {
	ID               string
	Name             string
	Latitude         float64
	Longitude        float64
	FormattedAddress string
}

type Provider interface {
	PlaceDetails(ctx context.Context, externalID string) (*Place, error)
	NearbyRestaurants(ctx context.Context, latitude, longitude float64, radiusMeters int) ([]*Place, error)
}
