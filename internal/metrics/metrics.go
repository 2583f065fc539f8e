package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	MarketsFetched = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "markets_fetched_total", Help: "Open markets fetched per cycle"},
	)
	SourcesPolled = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "sources_polled_total", Help: "Resolution source polls by outcome"},
		[]string{"status"},
	)
	OpportunitiesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "opportunities_total", Help: "Opportunities detected"},
	)
	SignalsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "signals_total", Help: "Trading signals by action"},
		[]string{"action"},
	)
	TradesExecuted = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "trades_executed_total", Help: "Executed trades by mode"},
		[]string{"mode"},
	)
	CyclesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "cycles_total", Help: "Completed arbitrage cycles"},
	)
)

func init() {
	prometheus.MustRegister(MarketsFetched, SourcesPolled, OpportunitiesTotal, SignalsTotal, TradesExecuted, CyclesTotal)
}

func Serve(addr string) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{Addr: addr, Handler: mux}
	go func() { _ = srv.ListenAndServe() }()
	return srv
}
