package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"fuel-route-service/internal/domain"
)

const geocodeKeyPrefix = "geocode:"

// Redis-backed (city, state) -> coordinates cache, for deployments where
// several ingest runs share one cache.
type RedisGeocodeCache struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewRedisGeocodeCache(client *redis.Client, ttl time.Duration) *RedisGeocodeCache {
	return &RedisGeocodeCache{Client: client, TTL: ttl}
}

type cachedCoords struct {
	Lon float64 `json:"lon"`
	Lat float64 `json:"lat"`
}

func geocodeKey(loc domain.Location) string {
	city := strings.ToLower(strings.TrimSpace(loc.City))
	state := strings.ToLower(strings.TrimSpace(loc.State))
	return geocodeKeyPrefix + city + "|" + state
}

func (c *RedisGeocodeCache) Get(ctx context.Context, loc domain.Location) (domain.Coordinates, bool, error) {
	if c.Client == nil {
		return domain.Coordinates{}, false, errors.New("redis geocode cache: client is nil")
	}

	raw, err := c.Client.Get(ctx, geocodeKey(loc)).Result()
	if errors.Is(err, redis.Nil) {
		return domain.Coordinates{}, false, nil
	}
	if err != nil {
		return domain.Coordinates{}, false, fmt.Errorf("geocode cache get %s, %s: %w", loc.City, loc.State, err)
	}

	var cc cachedCoords
	if err := json.Unmarshal([]byte(raw), &cc); err != nil {
		// A corrupt entry behaves like a miss; the fresh Put overwrites it.
		return domain.Coordinates{}, false, nil
	}

	return domain.Coordinates{Lon: cc.Lon, Lat: cc.Lat}, true, nil
}

func (c *RedisGeocodeCache) Put(ctx context.Context, loc domain.Location, coords domain.Coordinates) error {
	if c.Client == nil {
		return errors.New("redis geocode cache: client is nil")
	}

	raw, err := json.Marshal(cachedCoords{Lon: coords.Lon, Lat: coords.Lat})
	if err != nil {
		return fmt.Errorf("geocode cache put %s, %s: marshal: %w", loc.City, loc.State, err)
	}

	if err := c.Client.Set(ctx, geocodeKey(loc), raw, c.TTL).Err(); err != nil {
		return fmt.Errorf("geocode cache put %s, %s: %w", loc.City, loc.State, err)
	}

	return nil
}
