// Package history keeps bounded per-market price and convergence-speed series.
//
// All state is in memory; a restart loses it and the tracker reseeds from the
// backfill source or the synthetic generator on the next update.
package history

import (
	"context"
	"math"
	"math/rand"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

const (
	maxPricePoints  = 100
	maxSpeedSamples = 50

	backfillPoints  = 20
	backfillSpacing = time.Hour

	seedSpeedSamples  = 10
	defaultVolatility = 0.02
	maxVolatility     = 0.1
)

// Point is one priced moment in a market's history.
type Point struct {
	Ts    time.Time
	Price float64
}

// Backfill supplies real price history for a market's first observation.
// Errors degrade to the synthetic backfill.
type Backfill interface {
	PriceHistory(ctx context.Context, marketID string) ([]Point, error)
}

// Tracker owns the bounded price and convergence-speed series per market.
type Tracker struct {
	mu       sync.Mutex
	rng      *rand.Rand
	log      zerolog.Logger
	backfill Backfill // may be nil
	prices   map[string][]Point
	speeds   map[string][]float64
}

// NewTracker constructs a tracker. backfill may be nil, in which case first
// observations always seed synthetically.
func NewTracker(rng *rand.Rand, log zerolog.Logger, backfill Backfill) *Tracker {
	return &Tracker{
		rng:      rng,
		log:      log,
		backfill: backfill,
		prices:   make(map[string][]Point),
		speeds:   make(map[string][]float64),
	}
}

// UpdatePrice appends an observation to a market's price series. The first
// observation for a market triggers a backfill: real history when the source
// delivers, otherwise twenty synthetic hourly points jittered around the
// current price. The series stays sorted and capped at the oldest end.
func (t *Tracker) UpdatePrice(ctx context.Context, marketID string, price float64, now time.Time) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if len(t.prices[marketID]) == 0 {
		t.seedPrices(ctx, marketID, price, now)
	}

	series := append(t.prices[marketID], Point{Ts: now, Price: price})
	if len(series) > maxPricePoints {
		series = series[len(series)-maxPricePoints:]
	}
	t.prices[marketID] = series
}

func (t *Tracker) seedPrices(ctx context.Context, marketID string, price float64, now time.Time) {
	if t.backfill != nil {
		points, err := t.backfill.PriceHistory(ctx, marketID)
		if err == nil && len(points) > 0 {
			sort.Slice(points, func(i, j int) bool { return points[i].Ts.Before(points[j].Ts) })
			t.prices[marketID] = points
			t.log.Debug().Str("market", marketID).Int("points", len(points)).Msg("price history backfilled")
			return
		}
		if err != nil {
			t.log.Debug().Err(err).Str("market", marketID).Msg("history backfill failed, seeding synthetically")
		}
	}

	points := make([]Point, 0, backfillPoints)
	for i := 0; i < backfillPoints; i++ {
		jitter := t.rng.Float64()*0.10 - 0.05
		p := price + jitter
		if p < 0.01 {
			p = 0.01
		}
		if p > 0.99 {
			p = 0.99
		}
		points = append(points, Point{
			Ts:    now.Add(-time.Duration(i) * backfillSpacing),
			Price: p,
		})
	}
	sort.Slice(points, func(i, j int) bool { return points[i].Ts.Before(points[j].Ts) })
	t.prices[marketID] = points
}

// UpdateSpeed appends a convergence-speed sample for a market. The first
// sample lazily seeds ten synthetic speeds in [0.005, 0.08). The series is
// capped at the oldest end.
func (t *Tracker) UpdateSpeed(marketID string, speed float64) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if len(t.speeds[marketID]) == 0 {
		seeded := make([]float64, 0, seedSpeedSamples)
		for i := 0; i < seedSpeedSamples; i++ {
			seeded = append(seeded, 0.005+t.rng.Float64()*0.075)
		}
		t.speeds[marketID] = seeded
	}

	series := append(t.speeds[marketID], speed)
	if len(series) > maxSpeedSamples {
		series = series[len(series)-maxSpeedSamples:]
	}
	t.speeds[marketID] = series
}

// Volatility is the standard deviation of successive absolute relative price
// changes, capped at 10%. Markets with fewer than two points report the 2%
// default.
func (t *Tracker) Volatility(marketID string) float64 {
	t.mu.Lock()
	defer t.mu.Unlock()

	series := t.prices[marketID]
	if len(series) < 2 {
		return defaultVolatility
	}

	changes := make([]float64, 0, len(series)-1)
	for i := 1; i < len(series); i++ {
		changes = append(changes, math.Abs(series[i].Price-series[i-1].Price)/series[i-1].Price)
	}

	var mean float64
	for _, c := range changes {
		mean += c
	}
	mean /= float64(len(changes))

	var variance float64
	for _, c := range changes {
		variance += (c - mean) * (c - mean)
	}
	variance /= float64(len(changes))

	vol := math.Sqrt(variance)
	if vol > maxVolatility {
		return maxVolatility
	}
	return vol
}

// Prices returns a copy of a market's price series.
func (t *Tracker) Prices(marketID string) []Point {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]Point, len(t.prices[marketID]))
	copy(out, t.prices[marketID])
	return out
}

// Speeds returns a copy of a market's convergence-speed series.
func (t *Tracker) Speeds(marketID string) []float64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]float64, len(t.speeds[marketID]))
	copy(out, t.speeds[marketID])
	return out
}
