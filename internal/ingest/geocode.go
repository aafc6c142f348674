package ingest

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"fuel-route-service/internal/domain"
	"fuel-route-service/internal/ports"
)

// RetryPolicy controls how often a failed geocoding call is retried.
// Only provider outages are retried; an address the provider does not
// know stays unknown no matter how often it is asked.
type RetryPolicy struct {
	MaxAttempts    int
	InitialBackoff time.Duration
}

func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{MaxAttempts: 3, InitialBackoff: time.Second}
}

// Stats summarizes one geocoding run.
type Stats struct {
	Resolved  int
	Failed    int
	Skipped   int
	CacheHits int
}

// Pipeline resolves coordinates for every station location still pending
// in the store. Lookups run strictly one at a time with Interval between
// provider calls, per the usage policy of public geocoding services.
type Pipeline struct {
	Store    ports.StationStore
	Cache    ports.GeocodeCache
	Geocoder ports.Geocoder
	Policy   RetryPolicy
	Interval time.Duration
}

func NewPipeline(store ports.StationStore, cache ports.GeocodeCache, geocoder ports.Geocoder) *Pipeline {
	return &Pipeline{
		Store:    store,
		Cache:    cache,
		Geocoder: geocoder,
		Policy:   DefaultRetryPolicy(),
		Interval: time.Second,
	}
}

// Run geocodes all pending locations and records the results.
func (p *Pipeline) Run(ctx context.Context) (Stats, error) {
	var stats Stats

	locations, err := p.Store.ListPendingLocations(ctx)
	if err != nil {
		return stats, fmt.Errorf("geocode run: %w", err)
	}

	for _, loc := range locations {
		if err := ctx.Err(); err != nil {
			return stats, err
		}

		if _, skip := canadianProvinces[loc.State]; skip {
			stats.Skipped++
			continue
		}

		coords, hit, err := p.lookup(ctx, loc)
		if hit {
			stats.CacheHits++
		}
		if err != nil {
			if ctx.Err() != nil {
				return stats, ctx.Err()
			}
			stats.Failed++
			log.Printf("geocode failed city=%q state=%s err=%v", loc.City, loc.State, err)
			continue
		}

		if err := p.Store.SetLocation(ctx, loc, coords); err != nil {
			return stats, fmt.Errorf("geocode run: %w", err)
		}
		stats.Resolved++
	}

	return stats, nil
}

// lookup resolves one location, cache first. The bool reports a cache hit.
func (p *Pipeline) lookup(ctx context.Context, loc domain.Location) (domain.Coordinates, bool, error) {
	if p.Cache != nil {
		coords, ok, err := p.Cache.Get(ctx, loc)
		if err != nil {
			log.Printf("geocode cache get failed city=%q state=%s err=%v", loc.City, loc.State, err)
		} else if ok {
			return coords, true, nil
		}
	}

	coords, err := p.geocodeWithRetry(ctx, loc)
	if err != nil {
		return domain.Coordinates{}, false, err
	}

	if p.Cache != nil {
		if err := p.Cache.Put(ctx, loc, coords); err != nil {
			log.Printf("geocode cache put failed city=%q state=%s err=%v", loc.City, loc.State, err)
		}
	}

	return coords, false, nil
}

func (p *Pipeline) geocodeWithRetry(ctx context.Context, loc domain.Location) (domain.Coordinates, error) {
	attempts := p.Policy.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}
	backoff := p.Policy.InitialBackoff

	query := fmt.Sprintf("%s, %s, USA", loc.City, loc.State)

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if attempt > 1 {
			if err := sleepCtx(ctx, backoff); err != nil {
				return domain.Coordinates{}, err
			}
			backoff *= 2
		}

		if err := sleepCtx(ctx, p.Interval); err != nil {
			return domain.Coordinates{}, err
		}

		coords, err := p.Geocoder.Geocode(ctx, query)
		if err == nil {
			return coords, nil
		}
		lastErr = err

		if !errors.Is(err, ports.ErrGeocoderUnavailable) {
			break
		}
	}

	return domain.Coordinates{}, lastErr
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
