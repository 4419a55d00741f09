package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder exposes application-level metrics for the analysis service.
type Recorder struct {
	providerRequests *prometheus.CounterVec
	providerErrors   *prometheus.CounterVec
	providerLatency  *prometheus.HistogramVec
	cacheHits        *prometheus.CounterVec
	cacheMisses      *prometheus.CounterVec
	lastQuotePrice   *prometheus.GaugeVec
	analysisRuns     *prometheus.CounterVec
}

// NewRecorder registers the metric vectors under the given namespace.
func NewRecorder(namespace string) *Recorder {
	if namespace == "" {
		namespace = "stocklens"
	}
	return &Recorder{
		providerRequests: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "provider_requests_total",
			Help:      "Upstream provider requests by provider and operation",
		}, []string{"provider", "operation"}),
		providerErrors: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "provider_errors_total",
			Help:      "Upstream provider failures by provider and operation",
		}, []string{"provider", "operation"}),
		providerLatency: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "provider_latency_seconds",
			Help:      "Upstream provider call latency",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"provider", "operation"}),
		cacheHits: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_hits_total",
			Help:      "Cache hits by data kind",
		}, []string{"kind"}),
		cacheMisses: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_misses_total",
			Help:      "Cache misses by data kind",
		}, []string{"kind"}),
		lastQuotePrice: promauto.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_quote_price",
			Help:      "Most recent quote price served per ticker",
		}, []string{"ticker"}),
		analysisRuns: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "analysis_runs_total",
			Help:      "Completed analysis operations by kind",
		}, []string{"kind"}),
	}
}

func (r *Recorder) ProviderRequest(provider, operation string, d time.Duration, err error) {
	r.providerRequests.WithLabelValues(provider, operation).Inc()
	r.providerLatency.WithLabelValues(provider, operation).Observe(d.Seconds())
	if err != nil {
		r.providerErrors.WithLabelValues(provider, operation).Inc()
	}
}

func (r *Recorder) CacheHit(kind string)  { r.cacheHits.WithLabelValues(kind).Inc() }
func (r *Recorder) CacheMiss(kind string) { r.cacheMisses.WithLabelValues(kind).Inc() }

func (r *Recorder) QuotePrice(ticker string, price float64) {
	r.lastQuotePrice.WithLabelValues(ticker).Set(price)
}

func (r *Recorder) AnalysisRun(kind string) {
	r.analysisRuns.WithLabelValues(kind).Inc()
}
