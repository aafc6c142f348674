package routing

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"

	"fuel-route-service/internal/domain"
	"fuel-route-service/internal/platform/obs"
	"fuel-route-service/internal/ports"
)

const metersPerMile = 1609.344

type osrmResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Routes  []struct {
		Distance float64           `json:"distance"`
		Duration float64           `json:"duration"`
		Geometry domain.LineString `json:"geometry"`
	} `json:"routes"`
}

// Route fetches the driving route between two points in a single OSRM
// call: full GeoJSON overview, no turn-by-turn steps. Any failure is a
// request-level error wrapping ports.ErrRouteUnavailable; the call is
// never retried here.
func (c *Client) Route(ctx context.Context, start, end domain.Coordinates) (_ ports.RouteResult, err error) {
	defer obs.Time(ctx, "routing.Route")(&err)

	// OSRM expects lon,lat;lon,lat.
	endpoint := fmt.Sprintf(
		"%s/driving/%.6f,%.6f;%.6f,%.6f",
		c.osrmBaseURL, start.Lon, start.Lat, end.Lon, end.Lat,
	)

	req, err := c.newRequest(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return ports.RouteResult{}, fmt.Errorf("route request: %w", err)
	}

	q := req.URL.Query()
	q.Set("overview", "full")
	q.Set("geometries", "geojson")
	q.Set("steps", "false")
	q.Set("annotations", "false")
	req.URL.RawQuery = q.Encode()

	resp, err := c.do(req)
	if err != nil {
		return ports.RouteResult{}, fmt.Errorf("route: %w: %v", ports.ErrRouteUnavailable, err)
	}
	defer resp.Body.Close()

	var decoded osrmResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return ports.RouteResult{}, fmt.Errorf("route: %w: decode response: %v", ports.ErrRouteUnavailable, err)
	}

	if decoded.Code != "Ok" || len(decoded.Routes) == 0 {
		return ports.RouteResult{}, fmt.Errorf(
			"route: %w: code=%q message=%q",
			ports.ErrRouteUnavailable, decoded.Code, decoded.Message,
		)
	}

	r := decoded.Routes[0]
	return ports.RouteResult{
		DistanceMiles: math.Round(r.Distance/metersPerMile*100) / 100,
		DurationHours: math.Round(r.Duration/3600*100) / 100,
		Geometry:      r.Geometry,
	}, nil
}
