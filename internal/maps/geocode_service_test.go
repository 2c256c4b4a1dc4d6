package maps

import (
	"context"
	"errors"
	"testing"

	"googlemaps.github.io/maps"
)

type stubGeocoder struct {
	results []maps.GeocodingResult
	err     error
	calls   int
	last    *maps.GeocodingRequest
}

func (s *stubGeocoder) Geocode(_ context.Context, r *maps.GeocodingRequest) ([]maps.GeocodingResult, error) {
	s.calls++
	s.last = r
	return s.results, s.err
}

func TestReverseGeocodeCaches(t *testing.T) {
	stub := &stubGeocoder{results: []maps.GeocodingResult{
		{FormattedAddress: ""},
		{FormattedAddress: "Assi Ghat, Varanasi, Uttar Pradesh, India"},
	}}
	svc := newGeocodeService(stub)
	ctx := context.Background()

	addr, err := svc.ReverseGeocode(ctx, 25.28901, 82.99912)
	if err != nil {
		t.Fatalf("reverse geocode: %v", err)
	}
	if addr != "Assi Ghat, Varanasi, Uttar Pradesh, India" {
		t.Fatalf("unexpected address %q", addr)
	}
	if stub.last.LatLng == nil || stub.last.LatLng.Lat != 25.28901 {
		t.Fatalf("coordinates not sent: %+v", stub.last)
	}

	if _, err := svc.ReverseGeocode(ctx, 25.28902, 82.99911); err != nil {
		t.Fatalf("cached lookup: %v", err)
	}
	if stub.calls != 1 {
		t.Fatalf("expected nearby lookup to hit the cache, got %d calls", stub.calls)
	}
}

func TestReverseGeocodeErrors(t *testing.T) {
	svc := newGeocodeService(&stubGeocoder{})
	if _, err := svc.ReverseGeocode(context.Background(), 0, 0); !errors.Is(err, ErrNoAddress) {
		t.Fatalf("expected ErrNoAddress, got %v", err)
	}

	boom := errors.New("quota")
	svc = newGeocodeService(&stubGeocoder{err: boom})
	if _, err := svc.ReverseGeocode(context.Background(), 1, 1); !errors.Is(err, boom) {
		t.Fatalf("expected wrapped api error, got %v", err)
	}
}
