// Package market models Polymarket listings and the feed providers that supply them.
package market

import (
	"strings"
	"time"
)

// Market is one open Polymarket listing as seen by the pipeline.
type Market struct {
	ID               string
	Question         string
	Description      string
	Domain           string
	Probability      float64 // percent scale once fetched from the gamma API
	ResolutionSource string
	CreatedAt        time.Time
	IsNew            bool // created less than 24h ago
}

const (
	DomainPolitics = "politics"
	DomainCrypto   = "crypto"
	DomainEconomy  = "economy"
	DomainOther    = "other"
)

var domainTerms = []struct {
	domain string
	terms  []string
}{
	{DomainPolitics, []string{"trump", "election", "president", "biden"}},
	{DomainCrypto, []string{"bitcoin", "crypto", "etf", "sec"}},
	{DomainEconomy, []string{"fed", "rate", "inflation", "economy"}},
}

// Classify buckets a market into a domain from its question and description.
// Politics wins over crypto wins over economy when terms overlap.
func Classify(question, description string) string {
	text := strings.ToLower(question + " " + description)
	for _, d := range domainTerms {
		for _, term := range d.terms {
			if strings.Contains(text, term) {
				return d.domain
			}
		}
	}
	return DomainOther
}

// ExtractResolutionSource pulls the "Resolution source: ..." tail out of a
// market description, if present.
func ExtractResolutionSource(description string) (string, bool) {
	idx := strings.Index(strings.ToLower(description), "resolution source")
	if idx < 0 {
		return "", false
	}
	return description[idx:], true
}

// freshFor reports whether a market created at the given time still counts as
// new relative to now.
func freshFor(createdAt, now time.Time) bool {
	return now.Sub(createdAt) < 24*time.Hour
}
