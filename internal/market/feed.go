package market

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

const (
	// ProviderStub returns the deterministic fallback market set (tests/offline work).
	ProviderStub = "stub"
	// ProviderGamma fetches open markets from the Polymarket gamma HTTP API.
	ProviderGamma = "gamma"
)

const (
	defaultGammaURL = "https://gamma-api.polymarket.com/markets"
	defaultWSURL    = "wss://ws-subscriptions-clob.polymarket.com/ws/market"
)

// Feed supplies the per-cycle market snapshot and, optionally, live price
// updates from the CLOB websocket.
type Feed struct {
	provider string
	log      zerolog.Logger
	client   *http.Client
	gammaURL string
	wsURL    string
	clock    func() time.Time
}

// Option configures Feed construction parameters.
type Option func(*Feed)

// WithHTTPClient overrides the HTTP client used for gamma fetches.
func WithHTTPClient(c *http.Client) Option {
	return func(f *Feed) {
		if c != nil {
			f.client = c
		}
	}
}

// WithGammaURL overrides the gamma markets endpoint.
func WithGammaURL(url string) Option {
	return func(f *Feed) {
		if url != "" {
			f.gammaURL = strings.TrimSuffix(url, "/")
		}
	}
}

// WithWSURL overrides the CLOB websocket endpoint.
func WithWSURL(url string) Option {
	return func(f *Feed) {
		if url != "" {
			f.wsURL = url
		}
	}
}

// WithClock injects the time source used for market freshness checks.
func WithClock(clock func() time.Time) Option {
	return func(f *Feed) {
		if clock != nil {
			f.clock = clock
		}
	}
}

// NewFeed constructs a feed backed by the requested provider.
func NewFeed(provider string, log zerolog.Logger, opts ...Option) *Feed {
	if provider == "" {
		provider = ProviderStub
	}
	f := &Feed{
		provider: strings.ToLower(provider),
		log:      log,
		client:   &http.Client{Timeout: 10 * time.Second},
		gammaURL: defaultGammaURL,
		wsURL:    defaultWSURL,
		clock:    time.Now,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fetch returns the open-market snapshot for one cycle. Gamma failures are
// logged and degrade to the stub set rather than aborting the cycle.
func (f *Feed) Fetch(ctx context.Context) ([]Market, error) {
	if f.provider == ProviderStub {
		return Stub(f.clock()), nil
	}

	markets, err := f.fetchGamma(ctx)
	if err != nil {
		f.log.Warn().Err(err).Str("url", f.gammaURL).Msg("gamma fetch failed")
	}
	if len(markets) == 0 {
		f.log.Warn().Msg("no open markets fetched, falling back to stub set")
		markets = Stub(f.clock())
	}
	return markets, nil
}
