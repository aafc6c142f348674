package routing

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"fuel-route-service/internal/domain"
	"fuel-route-service/internal/platform/obs"
	"fuel-route-service/internal/ports"
)

// Nominatim returns coordinates as JSON strings.
type nominatimResult struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

// Geocode resolves an address via Nominatim (/search). The query is
// suffixed with ", USA" since the catalog only covers US truck stops.
// Transient failures wrap ports.ErrGeocoderUnavailable so the ingestion
// retry policy can classify them; an empty result set wraps
// ports.ErrAddressNotFound.
func (c *Client) Geocode(ctx context.Context, address string) (_ domain.Coordinates, err error) {
	defer obs.Time(ctx, "routing.Geocode")(&err)

	address = strings.Join(strings.Fields(address), " ")
	if address == "" {
		return domain.Coordinates{}, errors.New("geocode: address must be non-empty")
	}

	req, err := c.newRequest(ctx, http.MethodGet, c.geocodeURL+"/search", nil)
	if err != nil {
		return domain.Coordinates{}, fmt.Errorf("geocode request: %w", err)
	}

	q := req.URL.Query()
	q.Set("q", address+", USA")
	q.Set("format", "json")
	q.Set("limit", "1")
	req.URL.RawQuery = q.Encode()

	resp, err := c.do(req)
	if err != nil {
		if isTransient(err) {
			return domain.Coordinates{}, fmt.Errorf("geocode %q: %w: %v", address, ports.ErrGeocoderUnavailable, err)
		}
		return domain.Coordinates{}, fmt.Errorf("geocode %q: %w", address, err)
	}
	defer resp.Body.Close()

	var results []nominatimResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return domain.Coordinates{}, fmt.Errorf("decode geocode response: %w", err)
	}

	if len(results) == 0 {
		return domain.Coordinates{}, fmt.Errorf("geocode %q: %w", address, ports.ErrAddressNotFound)
	}

	lat, err := strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return domain.Coordinates{}, fmt.Errorf("geocode %q: parse latitude: %w", address, err)
	}
	lon, err := strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return domain.Coordinates{}, fmt.Errorf("geocode %q: parse longitude: %w", address, err)
	}

	return domain.Coordinates{Lon: lon, Lat: lat}, nil
}
