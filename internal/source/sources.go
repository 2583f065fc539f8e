// Package source monitors resolution sources for market-moving information.
package source

import (
	"os"
	"strings"
)

// DomainPredictionMarkets is the cross-cutting source bucket that applies to
// every market domain.
const DomainPredictionMarkets = "prediction_markets"

// Registry returns the per-domain resolution source URLs with API key
// placeholders substituted from the environment. Missing keys substitute as
// empty strings; the monitor surfaces the resulting auth failures per source.
func Registry() map[string][]string {
	sources := rawSources()
	newsKey := os.Getenv("NEWS_API_KEY")
	fredKey := os.Getenv("FRED_API_KEY")
	for domain, urls := range sources {
		for i, url := range urls {
			url = strings.ReplaceAll(url, "{NEWS_API_KEY}", newsKey)
			url = strings.ReplaceAll(url, "{FRED_API_KEY}", fredKey)
			urls[i] = url
		}
		sources[domain] = urls
	}
	return sources
}

func rawSources() map[string][]string {
	return map[string][]string{
		"politics": {
			"https://newsapi.org/v2/everything?domains=whitehouse.gov,reuters.com,bbc.com&apiKey={NEWS_API_KEY}",
			"https://feeds.bbci.co.uk/news/rss.xml",
		},
		"crypto": {
			"https://www.sec.gov/news/pressreleases.rss",
			"https://www.coindesk.com/arc/outboundfeeds/rss/",
		},
		"economy": {
			"https://api.stlouisfed.org/fred/series/observations?series_id=FEDFUNDS&api_key={FRED_API_KEY}",
			"https://www.federalreserve.gov/feeds/press_all.xml",
		},
		DomainPredictionMarkets: {
			"https://gamma-api.polymarket.com/markets",
		},
	}
}

// KeywordsFor returns the keyword bag assigned to a source URL.
func KeywordsFor(url string) []string {
	lower := strings.ToLower(url)
	switch {
	case strings.Contains(lower, "whitehouse.gov") || strings.Contains(lower, "newsapi.org"):
		return []string{"election", "trump", "biden", "president", "victory", "win", "results", "campaign", "vote", "announcement"}
	case strings.Contains(lower, "sec.gov"):
		return []string{"etf", "approval", "sec", "bitcoin", "ethereum", "approved", "rejected", "filing", "application", "decision"}
	case strings.Contains(lower, "federalreserve.gov") || strings.Contains(lower, "stlouisfed.org"):
		return []string{"rate", "fed", "federal", "reserve", "increase", "decrease", "hold", "decision", "fomc", "interest", "cut"}
	case strings.Contains(lower, "polymarket.com"):
		return []string{"market", "prediction", "trade", "price", "volume", "settlement", "bet", "outcome"}
	default:
		return []string{"announcement", "official", "result", "news", "update"}
	}
}

// RelevantFor filters the registry down to the sources that can resolve a
// market of the given domain: the matching domain bucket plus the
// prediction-markets bucket. Unknown domains get no sources.
func RelevantFor(marketDomain string, registry map[string][]string) []string {
	var relevant []string
	for domain, urls := range registry {
		if domain == marketDomain || domain == DomainPredictionMarkets {
			switch marketDomain {
			case "politics", "crypto", "economy":
				relevant = append(relevant, urls...)
			}
		}
	}
	return relevant
}
