package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyBuildID    = "build_id"
	KeyArtifact   = "artifact"
	KeyFile       = "file"
	KeyPath       = "path"
	KeyURL        = "url"
	KeyName       = "name"
	KeySubject    = "subject"
	KeyCount      = "count"
	KeyDurationMS = "duration_ms"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func BuildID(id string) slog.Attr     { return slog.String(KeyBuildID, id) }
func Artifact(a string) slog.Attr     { return slog.String(KeyArtifact, a) }
func File(f string) slog.Attr         { return slog.String(KeyFile, f) }
func Path(p string) slog.Attr         { return slog.String(KeyPath, p) }
func URL(u string) slog.Attr          { return slog.String(KeyURL, u) }
func Name(n string) slog.Attr         { return slog.String(KeyName, n) }
func Subject(s string) slog.Attr      { return slog.String(KeySubject, s) }
func Count(n int) slog.Attr           { return slog.Int(KeyCount, n) }
func DurationMS(ms float64) slog.Attr { return slog.Float64(KeyDurationMS, ms) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
