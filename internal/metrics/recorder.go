// Package metrics defines the observability hooks for builds and artifact
// generation. The Recorder interface decouples the build pipeline from the
// metrics backend; the Prometheus implementation is optional and the noop
// one is the default.
package metrics

import "time"

// ResultLabel enumerates artifact result categories for counters.
type ResultLabel string

const (
	ResultSuccess ResultLabel = "success"
	ResultSkipped ResultLabel = "skipped"
	ResultFailed  ResultLabel = "failed"
)

// Recorder defines the hooks the build pipeline calls. Implementations must
// tolerate nil receivers so the recorder can be injected optionally.
type Recorder interface {
	ObserveBuildDuration(d time.Duration)
	ObserveArtifactDuration(artifact string, d time.Duration)
	IncArtifactResult(artifact string, result ResultLabel)
	IncBuildOutcome(outcome string) // outcome: success|partial|failed
	SetPagesScanned(n int)
	IncValidationError(kind string)
}

// NoopRecorder is a Recorder that does nothing (default when metrics are
// not configured).
type NoopRecorder struct{}

func (NoopRecorder) ObserveBuildDuration(time.Duration)              {}
func (NoopRecorder) ObserveArtifactDuration(string, time.Duration)   {}
func (NoopRecorder) IncArtifactResult(string, ResultLabel)           {}
func (NoopRecorder) IncBuildOutcome(string)                          {}
func (NoopRecorder) SetPagesScanned(int)                             {}
func (NoopRecorder) IncValidationError(string)                       {}
