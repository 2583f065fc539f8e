package source

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"polyarb-go/internal/keyword"
	"polyarb-go/internal/metrics"
)

const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// KeywordHit records one keyword found in a source body and its polarity.
type KeywordHit struct {
	Keyword string
	Status  keyword.Status
}

// Sample is the outcome of polling one resolution source. Error samples keep
// the zero content length and no hits; they are recorded, never fatal.
type Sample struct {
	URL           string
	Status        string
	ContentLength int
	FoundKeywords []KeywordHit
	HasChanges    bool
	FetchDuration time.Duration
}

// Recorder receives timestamped fetch lines for the category log files.
type Recorder interface {
	Append(category, line string)
}

// Monitor polls resolution sources and scans their bodies for keyword hits.
type Monitor struct {
	client        *http.Client
	log           zerolog.Logger
	recorder      Recorder
	delay         time.Duration
	maxConcurrent int
}

// MonitorOption configures Monitor construction parameters.
type MonitorOption func(*Monitor)

// WithClient overrides the HTTP client used for source fetches.
func WithClient(c *http.Client) MonitorOption {
	return func(m *Monitor) {
		if c != nil {
			m.client = c
		}
	}
}

// WithRecorder attaches a category log recorder for fetch timings.
func WithRecorder(r Recorder) MonitorOption {
	return func(m *Monitor) { m.recorder = r }
}

// WithInterRequestDelay sets the pause between sequential source fetches.
func WithInterRequestDelay(d time.Duration) MonitorOption {
	return func(m *Monitor) {
		if d >= 0 {
			m.delay = d
		}
	}
}

// WithMaxConcurrent bounds parallel source fetches. Values above one switch
// CheckAll from the paced sequential scan to a semaphore-bounded fan-out.
func WithMaxConcurrent(n int) MonitorOption {
	return func(m *Monitor) {
		if n > 0 {
			m.maxConcurrent = n
		}
	}
}

// NewMonitor constructs a source monitor with the standard pacing defaults.
func NewMonitor(log zerolog.Logger, opts ...MonitorOption) *Monitor {
	m := &Monitor{
		client:        &http.Client{Timeout: 10 * time.Second},
		log:           log,
		delay:         500 * time.Millisecond,
		maxConcurrent: 1,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Check polls one source and scans the body with the phrase detector. Any
// network, HTTP, or read failure degrades to an error sample.
func (m *Monitor) Check(ctx context.Context, url string, keywords []string) Sample {
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return m.errorSample(url, start, err)
	}
	setSourceHeaders(req, url)

	resp, err := m.client.Do(req)
	if err != nil {
		return m.errorSample(url, start, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return m.errorSample(url, start, fmt.Errorf("unexpected status %s", resp.Status))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return m.errorSample(url, start, err)
	}

	content := string(body)
	var hits []KeywordHit
	hasChanges := false
	for _, kw := range keywords {
		found, status := keyword.DetectPhrase(content, kw)
		if !found {
			continue
		}
		hits = append(hits, KeywordHit{Keyword: kw, Status: status})
		if status == keyword.StatusAffirmed {
			hasChanges = true
		}
	}

	sample := Sample{
		URL:           url,
		Status:        StatusSuccess,
		ContentLength: len(content),
		FoundKeywords: hits,
		HasChanges:    hasChanges,
		FetchDuration: time.Since(start),
	}
	metrics.SourcesPolled.WithLabelValues(StatusSuccess).Inc()
	if m.recorder != nil {
		m.recorder.Append("source_fetch_times.log", fmt.Sprintf("SUCCESS | %s | %.3fs | content_length=%d | keywords=%d",
			url, sample.FetchDuration.Seconds(), sample.ContentLength, len(hits)))
	}
	return sample
}

// CheckAll polls every source in the registry and returns samples keyed by
// URL. With maxConcurrent of one (the default), sources are fetched in
// sequence with the inter-request delay between them; higher values fan out
// behind a semaphore and drop the pacing delay.
func (m *Monitor) CheckAll(ctx context.Context, registry map[string][]string) map[string]Sample {
	samples := make(map[string]Sample)

	if m.maxConcurrent <= 1 {
		for domain, urls := range registry {
			m.log.Debug().Str("domain", domain).Int("sources", len(urls)).Msg("monitoring domain sources")
			for _, url := range urls {
				samples[url] = m.Check(ctx, url, KeywordsFor(url))
				select {
				case <-time.After(m.delay):
				case <-ctx.Done():
					return samples
				}
			}
		}
		return samples
	}

	var mu sync.Mutex
	var wg sync.WaitGroup
	sem := make(chan struct{}, m.maxConcurrent)
	for _, urls := range registry {
		for _, url := range urls {
			wg.Add(1)
			go func(url string) {
				defer wg.Done()
				select {
				case sem <- struct{}{}:
				case <-ctx.Done():
					return
				}
				defer func() { <-sem }()
				s := m.Check(ctx, url, KeywordsFor(url))
				mu.Lock()
				samples[url] = s
				mu.Unlock()
			}(url)
		}
	}
	wg.Wait()
	return samples
}

func (m *Monitor) errorSample(url string, start time.Time, err error) Sample {
	m.log.Warn().Err(err).Str("url", url).Msg("source fetch failed")
	metrics.SourcesPolled.WithLabelValues(StatusError).Inc()
	sample := Sample{
		URL:           url,
		Status:        StatusError,
		FetchDuration: time.Since(start),
	}
	if m.recorder != nil {
		m.recorder.Append("source_fetch_times.log", fmt.Sprintf("ERROR | %s | %.3fs | %v", url, sample.FetchDuration.Seconds(), err))
	}
	return sample
}

func setSourceHeaders(req *http.Request, url string) {
	lower := strings.ToLower(url)
	switch {
	case strings.Contains(lower, "sec.gov"):
		// SEC rejects requests without a browser User-Agent.
		req.Header.Set("User-Agent", "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36")
		req.Header.Set("Accept", "application/json")
	case strings.Contains(lower, "newsapi.org"), strings.Contains(lower, "stlouisfed.org"):
		req.Header.Set("Accept", "application/json")
	default:
		req.Header.Set("Accept", "application/json")
		req.Header.Set("User-Agent", "PolymarketBot/1.0")
	}
}
