// Package scoring turns market/source pairs into ranked trading opportunities.
package scoring

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/rs/zerolog"

	"polyarb-go/internal/market"
	"polyarb-go/internal/metrics"
	"polyarb-go/internal/signal"
	"polyarb-go/internal/source"
)

// opportunityThreshold gates how relevant a pair must be before a real
// opportunity is emitted.
const opportunityThreshold = 0.05

const maxSimulatedOpportunities = 3

// Scorer derives opportunity relevance from domain affinity and keyword
// evidence. The rng is injected so the jitter term is reproducible in tests.
type Scorer struct {
	rng *rand.Rand
	log zerolog.Logger
}

// NewScorer constructs a scorer around the given randomness source.
func NewScorer(rng *rand.Rand, log zerolog.Logger) *Scorer {
	return &Scorer{rng: rng, log: log}
}

// Relevance scores how likely a source sample is to carry resolution-relevant
// information for a market. Result is clamped to [0, 1].
func (s *Scorer) Relevance(m market.Market, sourceURL string, sample source.Sample) float64 {
	domainMatch := 0.1
	switch {
	case m.Domain == market.DomainPolitics && contains(sourceURL, "whitehouse"):
		domainMatch = 0.3
	case m.Domain == market.DomainCrypto && contains(sourceURL, "sec.gov"):
		domainMatch = 0.4
	case m.Domain == market.DomainEconomy && contains(sourceURL, "federalreserve"):
		domainMatch = 0.35
	}

	keywordBoost := float64(len(sample.FoundKeywords)) * 0.05
	jitter := s.rng.Float64()*0.2 - 0.1

	relevance := domainMatch + keywordBoost + jitter
	if relevance < 0 {
		return 0
	}
	if relevance > 1 {
		return 1
	}
	return relevance
}

// Tier buckets a relevance score into a confidence label. Both boundaries are
// exclusive: exactly 0.7 is medium, exactly 0.4 is low.
func Tier(score float64) signal.Confidence {
	switch {
	case score > 0.7:
		return signal.ConfidenceHigh
	case score > 0.4:
		return signal.ConfidenceMedium
	default:
		return signal.ConfidenceLow
	}
}

// Detect rebuilds the opportunity list for one cycle. When no source sample
// succeeded, it degrades to a small simulated set so the downstream pipeline
// stays exercised; otherwise each market is paired with every successful
// sample from its relevant sources and kept above the relevance threshold.
func (s *Scorer) Detect(markets []market.Market, samples map[string]source.Sample, registry map[string][]string, now time.Time) []signal.Opportunity {
	if len(markets) == 0 {
		return nil
	}

	if !anySuccess(samples) {
		s.log.Warn().Msg("no working sources, emitting simulated opportunities")
		return s.simulated(markets, now)
	}

	var opportunities []signal.Opportunity
	for _, m := range markets {
		relevant := source.RelevantFor(m.Domain, registry)
		for _, url := range relevant {
			sample, ok := samples[url]
			if !ok || sample.Status != source.StatusSuccess {
				continue
			}
			relevance := s.Relevance(m, url, sample)
			if relevance <= opportunityThreshold {
				continue
			}
			opp := signal.Opportunity{
				MarketID:       m.ID,
				Question:       m.Question,
				SourceURL:      url,
				RelevanceScore: relevance,
				Confidence:     Tier(relevance),
				Reason:         fmt.Sprintf("market %q matched source %s with relevance %.2f", m.Question, url, relevance),
				Domain:         m.Domain,
				Timestamp:      now,
			}
			opportunities = append(opportunities, opp)
			metrics.OpportunitiesTotal.Inc()
			s.log.Info().
				Str("market", m.ID).
				Str("source", url).
				Float64("relevance", relevance).
				Str("confidence", string(opp.Confidence)).
				Msg("opportunity detected")
		}
	}
	return opportunities
}

// simulated creates up to three placeholder opportunities on the narrow
// [0.15, 0.45) relevance range with its own confidence cut points.
func (s *Scorer) simulated(markets []market.Market, now time.Time) []signal.Opportunity {
	n := len(markets)
	if n > maxSimulatedOpportunities {
		n = maxSimulatedOpportunities
	}
	opportunities := make([]signal.Opportunity, 0, n)
	for _, m := range markets[:n] {
		relevance := 0.15 + s.rng.Float64()*0.30
		confidence := signal.ConfidenceLow
		if relevance > 0.35 {
			confidence = signal.ConfidenceHigh
		} else if relevance > 0.25 {
			confidence = signal.ConfidenceMedium
		}
		opportunities = append(opportunities, signal.Opportunity{
			MarketID:       m.ID,
			Question:       m.Question,
			SourceURL:      "simulation",
			RelevanceScore: relevance,
			Confidence:     confidence,
			Reason:         fmt.Sprintf("simulated opportunity for market %q (no working sources)", m.Question),
			Domain:         m.Domain,
			Timestamp:      now,
		})
		metrics.OpportunitiesTotal.Inc()
	}
	return opportunities
}

func anySuccess(samples map[string]source.Sample) bool {
	for _, s := range samples {
		if s.Status == source.StatusSuccess {
			return true
		}
	}
	return false
}
