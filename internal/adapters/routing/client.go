package routing

import (
	"net/http"
	"time"
)

const (
	defaultOSRMBaseURL      = "https://router.project-osrm.org/route/v1"
	defaultNominatimBaseURL = "https://nominatim.openstreetmap.org"
	defaultUserAgent        = "fuel-route-service/2.0"
)

// Client implements ports.RoutingProvider against the public OSRM route
// API and Nominatim geocoding. Both services are free and keyless;
// Nominatim requires an identifying User-Agent and a strict request rate,
// which the ingestion pipeline enforces.
//
// The client is safe for concurrent use.
type Client struct {
	session     *http.Client
	osrmBaseURL string
	geocodeURL  string
	userAgent   string
}

func NewClient(osrmBaseURL, nominatimBaseURL, userAgent string) *Client {
	if osrmBaseURL == "" {
		osrmBaseURL = defaultOSRMBaseURL
	}
	if nominatimBaseURL == "" {
		nominatimBaseURL = defaultNominatimBaseURL
	}
	if userAgent == "" {
		userAgent = defaultUserAgent
	}

	return &Client{
		// Route calculation over a continental route can be slow; the
		// timeout bounds the single external call per request.
		session:     &http.Client{Timeout: 30 * time.Second},
		osrmBaseURL: osrmBaseURL,
		geocodeURL:  nominatimBaseURL,
		userAgent:   userAgent,
	}
}
