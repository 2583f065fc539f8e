package history

import (
	"context"
	"errors"
	"math/rand"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func newTestTracker(backfill Backfill) *Tracker {
	return NewTracker(rand.New(rand.NewSource(1)), zerolog.Nop(), backfill)
}

type fixedBackfill struct {
	points []Point
	err    error
}

func (f fixedBackfill) PriceHistory(ctx context.Context, marketID string) ([]Point, error) {
	return f.points, f.err
}

func TestUpdatePriceSeedsSynthetically(t *testing.T) {
	tr := newTestTracker(nil)
	now := time.Now()
	tr.UpdatePrice(context.Background(), "m1", 0.4, now)

	points := tr.Prices("m1")
	if len(points) != 21 {
		t.Fatalf("expected 20 seeded points plus the observation, got %d", len(points))
	}
	for i := 1; i < len(points); i++ {
		if points[i].Ts.Before(points[i-1].Ts) {
			t.Fatalf("series must stay sorted")
		}
	}
	for _, p := range points[:20] {
		if p.Price < 0.01 || p.Price > 0.99 {
			t.Fatalf("seeded price out of clamp range: %f", p.Price)
		}
		if p.Price < 0.35-0.051 || p.Price > 0.45+0.051 {
			t.Fatalf("seeded price strayed past the jitter band: %f", p.Price)
		}
	}
	if points[20].Price != 0.4 {
		t.Fatalf("last point should be the observation")
	}
}

func TestUpdatePriceUsesBackfill(t *testing.T) {
	now := time.Now()
	tr := newTestTracker(fixedBackfill{points: []Point{
		{Ts: now.Add(-2 * time.Hour), Price: 0.30},
		{Ts: now.Add(-1 * time.Hour), Price: 0.32},
	}})
	tr.UpdatePrice(context.Background(), "m1", 0.35, now)

	points := tr.Prices("m1")
	if len(points) != 3 {
		t.Fatalf("expected 2 backfilled points plus the observation, got %d", len(points))
	}
	if points[0].Price != 0.30 || points[2].Price != 0.35 {
		t.Fatalf("unexpected series: %+v", points)
	}
}

func TestUpdatePriceBackfillErrorFallsBack(t *testing.T) {
	tr := newTestTracker(fixedBackfill{err: errors.New("boom")})
	tr.UpdatePrice(context.Background(), "m1", 0.4, time.Now())
	if len(tr.Prices("m1")) != 21 {
		t.Fatalf("backfill error should degrade to synthetic seeding")
	}
}

func TestUpdatePriceCapsSeries(t *testing.T) {
	tr := newTestTracker(nil)
	now := time.Now()
	for i := 0; i < 200; i++ {
		tr.UpdatePrice(context.Background(), "m1", 0.5, now.Add(time.Duration(i)*time.Minute))
	}
	points := tr.Prices("m1")
	if len(points) != maxPricePoints {
		t.Fatalf("expected cap of %d points, got %d", maxPricePoints, len(points))
	}
	// The newest observation survives trimming at the oldest end.
	if !points[len(points)-1].Ts.Equal(now.Add(199 * time.Minute)) {
		t.Fatalf("newest observation missing after trim")
	}
}

func TestUpdateSpeedSeedsAndCaps(t *testing.T) {
	tr := newTestTracker(nil)
	tr.UpdateSpeed("m1", 0.03)

	speeds := tr.Speeds("m1")
	if len(speeds) != seedSpeedSamples+1 {
		t.Fatalf("expected %d seeded samples plus the observation, got %d", seedSpeedSamples, len(speeds))
	}
	for _, s := range speeds[:seedSpeedSamples] {
		if s < 0.005 || s >= 0.08 {
			t.Fatalf("seeded speed out of [0.005, 0.08): %f", s)
		}
	}

	for i := 0; i < 100; i++ {
		tr.UpdateSpeed("m1", 0.01)
	}
	if len(tr.Speeds("m1")) != maxSpeedSamples {
		t.Fatalf("expected speed cap of %d", maxSpeedSamples)
	}
}

func TestVolatility(t *testing.T) {
	tr := newTestTracker(nil)
	if v := tr.Volatility("unknown"); v != defaultVolatility {
		t.Fatalf("unknown market should report the default volatility, got %f", v)
	}

	now := time.Now()
	tr.UpdatePrice(context.Background(), "m1", 0.5, now)
	if v := tr.Volatility("m1"); v < 0 || v > maxVolatility {
		t.Fatalf("volatility out of range: %f", v)
	}

	// A flat series has zero volatility.
	tr2 := newTestTracker(fixedBackfill{points: []Point{
		{Ts: now.Add(-2 * time.Hour), Price: 0.5},
		{Ts: now.Add(-1 * time.Hour), Price: 0.5},
	}})
	tr2.UpdatePrice(context.Background(), "m2", 0.5, now)
	if v := tr2.Volatility("m2"); v != 0 {
		t.Fatalf("flat series should have zero volatility, got %f", v)
	}
}
