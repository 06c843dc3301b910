package metrics

import (
	"net/http"
	"sync"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	once             sync.Once
	buildDuration    prom.Histogram
	artifactDuration *prom.HistogramVec
	artifactResults  *prom.CounterVec
	buildOutcome     *prom.CounterVec
	pagesScanned     prom.Gauge
	validationErrors *prom.CounterVec
}

// NewPrometheusRecorder constructs and registers Prometheus metrics
// (idempotent per recorder).
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{}
	pr.once.Do(func() {
		pr.buildDuration = prom.NewHistogram(prom.HistogramOpts{
			Namespace: "sitedata",
			Name:      "build_duration_seconds",
			Help:      "Total build duration",
			Buckets:   prom.DefBuckets,
		})
		pr.artifactDuration = prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: "sitedata",
			Name:      "artifact_duration_seconds",
			Help:      "Duration of individual artifact generation",
			Buckets:   prom.DefBuckets,
		}, []string{"artifact"})
		pr.artifactResults = prom.NewCounterVec(prom.CounterOpts{
			Namespace: "sitedata",
			Name:      "artifact_results_total",
			Help:      "Artifact generation results by outcome",
		}, []string{"artifact", "result"})
		pr.buildOutcome = prom.NewCounterVec(prom.CounterOpts{
			Namespace: "sitedata",
			Name:      "build_outcomes_total",
			Help:      "Build outcomes by final status",
		}, []string{"outcome"})
		pr.pagesScanned = prom.NewGauge(prom.GaugeOpts{
			Namespace: "sitedata",
			Name:      "pages_scanned",
			Help:      "Content documents scanned in the last build",
		})
		pr.validationErrors = prom.NewCounterVec(prom.CounterOpts{
			Namespace: "sitedata",
			Name:      "validation_errors_total",
			Help:      "Record validation errors by kind",
		}, []string{"kind"})
		reg.MustRegister(pr.buildDuration, pr.artifactDuration, pr.artifactResults,
			pr.buildOutcome, pr.pagesScanned, pr.validationErrors)
	})
	return pr
}

// HTTPHandler serves the registry over HTTP for scraping.
func HTTPHandler(reg *prom.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{EnableOpenMetrics: true})
}

func (p *PrometheusRecorder) ObserveBuildDuration(d time.Duration) {
	if p == nil || p.buildDuration == nil {
		return
	}
	p.buildDuration.Observe(d.Seconds())
}

func (p *PrometheusRecorder) ObserveArtifactDuration(artifact string, d time.Duration) {
	if p == nil || p.artifactDuration == nil {
		return
	}
	p.artifactDuration.WithLabelValues(artifact).Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncArtifactResult(artifact string, result ResultLabel) {
	if p == nil || p.artifactResults == nil {
		return
	}
	p.artifactResults.WithLabelValues(artifact, string(result)).Inc()
}

func (p *PrometheusRecorder) IncBuildOutcome(outcome string) {
	if p == nil || p.buildOutcome == nil {
		return
	}
	p.buildOutcome.WithLabelValues(outcome).Inc()
}

func (p *PrometheusRecorder) SetPagesScanned(n int) {
	if p == nil || p.pagesScanned == nil {
		return
	}
	p.pagesScanned.Set(float64(n))
}

func (p *PrometheusRecorder) IncValidationError(kind string) {
	if p == nil || p.validationErrors == nil {
		return
	}
	p.validationErrors.WithLabelValues(kind).Inc()
}
