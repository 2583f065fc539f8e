package scoring

import (
	"math/rand"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"polyarb-go/internal/market"
	"polyarb-go/internal/signal"
	"polyarb-go/internal/source"
)

func newTestScorer() *Scorer {
	return NewScorer(rand.New(rand.NewSource(1)), zerolog.Nop())
}

func TestRelevanceBounds(t *testing.T) {
	s := newTestScorer()
	m := market.Market{ID: "m1", Domain: market.DomainCrypto}
	sample := source.Sample{
		Status: source.StatusSuccess,
		FoundKeywords: []source.KeywordHit{
			{Keyword: "etf"}, {Keyword: "approval"}, {Keyword: "sec"},
		},
	}
	for i := 0; i < 100; i++ {
		score := s.Relevance(m, "https://www.sec.gov/news/pressreleases.rss", sample)
		if score < 0 || score > 1 {
			t.Fatalf("relevance out of range: %f", score)
		}
		// Affinity 0.4 plus 0.15 keyword boost, jitter at most 0.1 either way.
		if score < 0.45 || score > 0.65 {
			t.Fatalf("relevance outside expected band: %f", score)
		}
	}
}

func TestRelevanceDomainAffinity(t *testing.T) {
	s := newTestScorer()
	sample := source.Sample{Status: source.StatusSuccess}

	// With the jitter band [-0.1, 0.1) the economy/federalreserve pair
	// always outscores the weakest possible baseline pair.
	economy := market.Market{Domain: market.DomainEconomy}
	var minEconomy, maxBase float64 = 2, -2
	for i := 0; i < 200; i++ {
		e := s.Relevance(economy, "https://www.federalreserve.gov/feeds/press_all.xml", sample)
		b := s.Relevance(economy, "https://example.com", sample)
		if e < minEconomy {
			minEconomy = e
		}
		if b > maxBase {
			maxBase = b
		}
	}
	if minEconomy <= maxBase {
		t.Fatalf("affinity pair should dominate baseline: min=%f maxBase=%f", minEconomy, maxBase)
	}
}

func TestTierBoundaries(t *testing.T) {
	cases := []struct {
		score float64
		want  signal.Confidence
	}{
		{0.71, signal.ConfidenceHigh},
		{0.70, signal.ConfidenceMedium},
		{0.41, signal.ConfidenceMedium},
		{0.40, signal.ConfidenceLow},
		{0.0, signal.ConfidenceLow},
	}
	for _, tc := range cases {
		if got := Tier(tc.score); got != tc.want {
			t.Fatalf("Tier(%.2f) = %s, want %s", tc.score, got, tc.want)
		}
	}
}

func TestInformationValueRules(t *testing.T) {
	cases := []struct {
		marketID string
		source   string
		want     bool
	}{
		{"trump-2024", "https://newsapi.org/v2/everything", true},
		{"election-night", "https://gamma-api.polymarket.com/markets", true},
		{"etf-approved-q1", "https://www.sec.gov/news/pressreleases.rss", true},
		{"etf-approved-q1", "https://gamma-api.polymarket.com/markets", false},
		{"fed-raise-march", "https://www.federalreserve.gov/feeds/press_all.xml", false},
		{"fed-cut-june", "https://www.federalreserve.gov/feeds/press_all.xml", true},
	}
	for _, tc := range cases {
		if got := InformationValue(tc.marketID, tc.source); got != tc.want {
			t.Fatalf("InformationValue(%s, %s) = %v, want %v", tc.marketID, tc.source, got, tc.want)
		}
	}
}

func TestInformationValueDeterministicFallback(t *testing.T) {
	a := InformationValue("market-xyz", "https://example.com")
	for i := 0; i < 10; i++ {
		if InformationValue("market-xyz", "https://example.com") != a {
			t.Fatalf("fallback hash must be deterministic")
		}
	}
	// The fallback follows the char-sum residue classes directly.
	want := (CharSum("market-xyz")+CharSum("https://example.com"))%5 == 0 ||
		(CharSum("market-xyz")+CharSum("https://example.com"))%5 == 2
	if a != want {
		t.Fatalf("fallback disagrees with char-sum residue: got %v want %v", a, want)
	}
}

func TestEstimateProbabilityClamps(t *testing.T) {
	low := EstimateProbability(signal.Opportunity{
		MarketID:       "m",
		SourceURL:      "https://newsapi.org",
		RelevanceScore: 0.1,
	})
	if low < 0.1 || low > 0.9 {
		t.Fatalf("probability out of clamp range: %f", low)
	}

	boosted := EstimateProbability(signal.Opportunity{
		MarketID:       "m",
		SourceURL:      "https://www.federalreserve.gov/feeds/press_all.xml",
		RelevanceScore: 0.9,
	})
	plain := EstimateProbability(signal.Opportunity{
		MarketID:       "m",
		SourceURL:      "https://example.com",
		RelevanceScore: 0.9,
	})
	if diff := boosted - plain; diff < 0.099 || diff > 0.101 {
		t.Fatalf("federalreserve boost should add 0.10, got %f", diff)
	}
}

func TestDetectWithWorkingSources(t *testing.T) {
	s := newTestScorer()
	now := time.Now()
	markets := []market.Market{
		{ID: "m1", Question: "Will Bitcoin ETF be approved?", Domain: market.DomainCrypto},
	}
	registry := map[string][]string{
		"crypto": {"https://www.sec.gov/news/pressreleases.rss"},
	}
	samples := map[string]source.Sample{
		"https://www.sec.gov/news/pressreleases.rss": {
			Status:        source.StatusSuccess,
			FoundKeywords: []source.KeywordHit{{Keyword: "etf"}, {Keyword: "approval"}},
		},
	}

	opps := s.Detect(markets, samples, registry, now)
	if len(opps) != 1 {
		t.Fatalf("expected 1 opportunity, got %d", len(opps))
	}
	opp := opps[0]
	if opp.MarketID != "m1" || opp.SourceURL != "https://www.sec.gov/news/pressreleases.rss" {
		t.Fatalf("unexpected opportunity: %+v", opp)
	}
	if opp.Confidence != Tier(opp.RelevanceScore) {
		t.Fatalf("confidence should follow the tier of the relevance score")
	}
}

func TestDetectSimulatedFallback(t *testing.T) {
	s := newTestScorer()
	now := time.Now()
	markets := market.Stub(now)
	samples := map[string]source.Sample{
		"https://www.sec.gov/news/pressreleases.rss": {Status: source.StatusError},
	}

	opps := s.Detect(markets, samples, nil, now)
	if len(opps) != 3 {
		t.Fatalf("simulated fallback should cap at 3, got %d", len(opps))
	}
	for _, opp := range opps {
		if opp.SourceURL != "simulation" {
			t.Fatalf("simulated opportunity should carry the simulation source, got %s", opp.SourceURL)
		}
		if opp.RelevanceScore < 0.15 || opp.RelevanceScore >= 0.45 {
			t.Fatalf("simulated relevance out of [0.15, 0.45): %f", opp.RelevanceScore)
		}
		switch {
		case opp.RelevanceScore > 0.35 && opp.Confidence != signal.ConfidenceHigh:
			t.Fatalf("expected high confidence at %.2f", opp.RelevanceScore)
		case opp.RelevanceScore <= 0.25 && opp.Confidence != signal.ConfidenceLow:
			t.Fatalf("expected low confidence at %.2f", opp.RelevanceScore)
		}
	}
}

func TestDetectNoMarkets(t *testing.T) {
	s := newTestScorer()
	if opps := s.Detect(nil, nil, nil, time.Now()); opps != nil {
		t.Fatalf("expected nil for empty market set")
	}
}
