package source

import (
	"strings"
	"testing"
)

func TestRegistrySubstitutesKeys(t *testing.T) {
	t.Setenv("NEWS_API_KEY", "news-key-123")
	t.Setenv("FRED_API_KEY", "fred-key-456")

	registry := Registry()
	found := false
	for _, url := range registry["politics"] {
		if strings.Contains(url, "apiKey=news-key-123") {
			found = true
		}
		if strings.Contains(url, "{NEWS_API_KEY}") {
			t.Fatalf("placeholder left unsubstituted: %s", url)
		}
	}
	if !found {
		t.Fatalf("news api key not substituted")
	}

	for _, url := range registry["economy"] {
		if strings.Contains(url, "{FRED_API_KEY}") {
			t.Fatalf("placeholder left unsubstituted: %s", url)
		}
	}
}

func TestKeywordsFor(t *testing.T) {
	cases := []struct {
		url  string
		want string
	}{
		{"https://www.sec.gov/news/pressreleases.rss", "etf"},
		{"https://www.federalreserve.gov/feeds/press_all.xml", "rate"},
		{"https://newsapi.org/v2/everything", "election"},
		{"https://gamma-api.polymarket.com/markets", "market"},
		{"https://example.com/feed", "announcement"},
	}
	for _, tc := range cases {
		kws := KeywordsFor(tc.url)
		if len(kws) == 0 {
			t.Fatalf("no keywords for %s", tc.url)
		}
		if kws[0] != tc.want {
			t.Fatalf("KeywordsFor(%s)[0] = %s, want %s", tc.url, kws[0], tc.want)
		}
	}
}

func TestRelevantFor(t *testing.T) {
	registry := map[string][]string{
		"politics":              {"p1", "p2"},
		"crypto":                {"c1"},
		"economy":               {"e1"},
		DomainPredictionMarkets: {"pm1"},
	}

	got := RelevantFor("crypto", registry)
	if len(got) != 2 {
		t.Fatalf("expected crypto bucket plus prediction markets, got %v", got)
	}
	seen := map[string]bool{}
	for _, url := range got {
		seen[url] = true
	}
	if !seen["c1"] || !seen["pm1"] {
		t.Fatalf("missing expected sources: %v", got)
	}

	if got := RelevantFor("other", registry); len(got) != 0 {
		t.Fatalf("unknown domains should get no sources, got %v", got)
	}
}
