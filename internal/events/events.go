// Package events announces completed builds over NATS so downstream
// consumers (cache purgers, deploy hooks) can react without polling the
// output directory.
package events

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"

	"git.home.luguber.info/inful/sitedata/internal/logfields"
)

// BuildCompleted is the payload published after every build.
type BuildCompleted struct {
	BuildID    string    `json:"build_id"`
	Outcome    string    `json:"outcome"`
	Pages      int       `json:"pages"`
	Artifacts  int       `json:"artifacts"`
	DurationMS float64   `json:"duration_ms"`
	Timestamp  time.Time `json:"timestamp"`
}

// Announcer publishes build events on one subject.
type Announcer struct {
	conn    *nats.Conn
	subject string
}

// NewAnnouncer connects to the NATS server. The connection retries in the
// background so a broker restart does not fail builds.
func NewAnnouncer(url, subject string) (*Announcer, error) {
	if url == "" {
		return nil, fmt.Errorf("events URL is required")
	}
	if subject == "" {
		return nil, fmt.Errorf("events subject is required")
	}
	conn, err := nats.Connect(url,
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("connect to NATS: %w", err)
	}
	slog.Info("build announcer connected", logfields.URL(url), logfields.Subject(subject))
	return &Announcer{conn: conn, subject: subject}, nil
}

// Announce publishes one build-completed event.
func (a *Announcer) Announce(event BuildCompleted) error {
	if a == nil || a.conn == nil {
		return nil
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal build event: %w", err)
	}
	if err := a.conn.Publish(a.subject, data); err != nil {
		return fmt.Errorf("publish build event: %w", err)
	}
	slog.Debug("published build event",
		logfields.BuildID(event.BuildID), logfields.Subject(a.subject))
	return nil
}

// Close drains and closes the connection.
func (a *Announcer) Close() {
	if a == nil || a.conn == nil {
		return
	}
	_ = a.conn.Drain()
}
