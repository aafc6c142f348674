package cache

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"fuel-route-service/internal/domain"
)

func newTestRedisCache(t *testing.T) (*RedisGeocodeCache, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewRedisGeocodeCache(client, time.Hour), mr
}

func TestRedisGeocodeCacheRoundTrip(t *testing.T) {
	c, _ := newTestRedisCache(t)
	ctx := context.Background()

	loc := domain.Location{City: "Amarillo", State: "TX"}
	want := domain.Coordinates{Lon: -101.8313, Lat: 35.1991}

	if _, ok, err := c.Get(ctx, loc); err != nil || ok {
		t.Fatalf("Get before Put: ok=%v err=%v, want miss", ok, err)
	}

	if err := c.Put(ctx, loc, want); err != nil {
		t.Fatalf("Put: %v", err)
	}

	got, ok, err := c.Get(ctx, loc)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !ok {
		t.Fatal("Get after Put: expected a hit")
	}
	if math.Abs(got.Lon-want.Lon) > 1e-9 || math.Abs(got.Lat-want.Lat) > 1e-9 {
		t.Fatalf("Get = %+v, want %+v", got, want)
	}
}

func TestRedisGeocodeCacheKeyNormalization(t *testing.T) {
	c, _ := newTestRedisCache(t)
	ctx := context.Background()

	if err := c.Put(ctx, domain.Location{City: " Amarillo ", State: "TX"}, domain.Coordinates{Lon: -101.83, Lat: 35.2}); err != nil {
		t.Fatalf("Put: %v", err)
	}

	_, ok, err := c.Get(ctx, domain.Location{City: "amarillo", State: "tx"})
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !ok {
		t.Fatal("expected hit for case-insensitive lookup")
	}
}

func TestRedisGeocodeCacheCorruptEntryIsMiss(t *testing.T) {
	c, mr := newTestRedisCache(t)
	ctx := context.Background()

	loc := domain.Location{City: "Tulsa", State: "OK"}
	mr.Set(geocodeKey(loc), "not json")

	_, ok, err := c.Get(ctx, loc)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if ok {
		t.Fatal("corrupt entry should read as a miss")
	}
}

func TestRedisGeocodeCacheTTL(t *testing.T) {
	c, mr := newTestRedisCache(t)
	ctx := context.Background()

	loc := domain.Location{City: "Flagstaff", State: "AZ"}
	if err := c.Put(ctx, loc, domain.Coordinates{Lon: -111.65, Lat: 35.2}); err != nil {
		t.Fatalf("Put: %v", err)
	}

	mr.FastForward(2 * time.Hour)

	_, ok, err := c.Get(ctx, loc)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if ok {
		t.Fatal("entry should expire after the TTL")
	}
}
