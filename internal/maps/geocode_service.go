package maps

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/patrickmn/go-cache"
	"googlemaps.github.io/maps"
)

// ErrNoAddress is returned when the coordinates resolve to nothing.
var ErrNoAddress = errors.New("no address found for coordinates")

// geocoder is the slice of *maps.Client the service needs.
type geocoder interface {
	Geocode(ctx context.Context, r *maps.GeocodingRequest) ([]maps.GeocodingResult, error)
}

// GeocodeService resolves coordinates to a formatted address, caching by rounded position.
type GeocodeService struct {
	client geocoder
	cache  *cache.Cache
}

// NewGeocodeService creates a GeocodeService with the given API Key.
func NewGeocodeService(apiKey string) (*GeocodeService, error) {
	client, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create maps client: %w", err)
	}
	return newGeocodeService(client), nil
}

func newGeocodeService(client geocoder) *GeocodeService {
	return &GeocodeService{client: client, cache: cache.New(24*time.Hour, time.Hour)}
}

// ReverseGeocode returns the first formatted address for lat/lng.
// Positions within roughly ten metres share a cache entry.
func (s *GeocodeService) ReverseGeocode(ctx context.Context, lat, lng float64) (string, error) {
	key := fmt.Sprintf("%.4f,%.4f", lat, lng)
	if v, ok := s.cache.Get(key); ok {
		return v.(string), nil
	}

	// A request carrying only LatLng is a reverse lookup on the geocoding endpoint.
	results, err := s.client.Geocode(ctx, &maps.GeocodingRequest{LatLng: &maps.LatLng{Lat: lat, Lng: lng}})
	if err != nil {
		return "", fmt.Errorf("geocoding api error: %w", err)
	}
	for _, r := range results {
		if r.FormattedAddress != "" {
			s.cache.SetDefault(key, r.FormattedAddress)
			return r.FormattedAddress, nil
		}
	}
	return "", ErrNoAddress
}
