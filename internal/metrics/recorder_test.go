package metrics

import (
	"testing"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNoopRecorderIsSafe(t *testing.T) {
	var r Recorder = NoopRecorder{}
	r.ObserveBuildDuration(time.Second)
	r.ObserveArtifactDuration("sitemap", time.Millisecond)
	r.IncArtifactResult("sitemap", ResultSuccess)
	r.IncBuildOutcome("success")
	r.SetPagesScanned(42)
	r.IncValidationError("invalid-value")
}

func TestNilPrometheusRecorderIsSafe(t *testing.T) {
	var p *PrometheusRecorder
	p.ObserveBuildDuration(time.Second)
	p.IncArtifactResult("rss", ResultFailed)
	p.IncBuildOutcome("failed")
}

func TestPrometheusRecorderCounts(t *testing.T) {
	reg := prom.NewRegistry()
	p := NewPrometheusRecorder(reg)

	p.IncArtifactResult("sitemap", ResultSuccess)
	p.IncArtifactResult("sitemap", ResultSuccess)
	p.IncArtifactResult("rss", ResultFailed)
	p.IncBuildOutcome("partial")
	p.SetPagesScanned(7)
	p.IncValidationError("security")

	assert.Equal(t, float64(2), testutil.ToFloat64(p.artifactResults.WithLabelValues("sitemap", "success")))
	assert.Equal(t, float64(1), testutil.ToFloat64(p.artifactResults.WithLabelValues("rss", "failed")))
	assert.Equal(t, float64(1), testutil.ToFloat64(p.buildOutcome.WithLabelValues("partial")))
	assert.Equal(t, float64(7), testutil.ToFloat64(p.pagesScanned))
	assert.Equal(t, float64(1), testutil.ToFloat64(p.validationErrors.WithLabelValues("security")))

	families, err := reg.Gather()
	require.NoError(t, err)
	assert.NotEmpty(t, families)
}
