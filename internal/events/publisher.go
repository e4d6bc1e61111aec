package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/sirupsen/logrus"
)

// Event subjects
const (
	EventDraftPublished   = "storefront.draft.published"
	EventDraftScheduled   = "storefront.draft.scheduled"
	EventDraftArchived    = "storefront.draft.archived"
	EventThemeUpdated     = "storefront.theme.updated"
	EventVersionRestored  = "storefront.version.restored"
	EventBannersReordered = "storefront.banners.reordered"
)

// DraftEvent is published on draft lifecycle transitions.
type DraftEvent struct {
	EventType       string     `json:"event_type"`
	TenantID        string     `json:"tenant_id"`
	DraftID         string     `json:"draft_id"`
	ConfigurationID string     `json:"configuration_id"`
	Status          string     `json:"status"`
	VersionNumber   int        `json:"version_number,omitempty"`
	ScheduledAt     *time.Time `json:"scheduled_at,omitempty"`
	Timestamp       time.Time  `json:"timestamp"`
}

// ThemeUpdatedEvent is published when a tenant's theme settings change.
type ThemeUpdatedEvent struct {
	EventType string    `json:"event_type"`
	TenantID  string    `json:"tenant_id"`
	Version   int       `json:"version"`
	Timestamp time.Time `json:"timestamp"`
}

// VersionRestoredEvent is published when a version is restored into a draft.
type VersionRestoredEvent struct {
	EventType       string    `json:"event_type"`
	TenantID        string    `json:"tenant_id"`
	ConfigurationID string    `json:"configuration_id"`
	VersionNumber   int       `json:"version_number"`
	DraftID         string    `json:"draft_id"`
	Timestamp       time.Time `json:"timestamp"`
}

// BannersReorderedEvent is published after a successful banner reorder.
type BannersReorderedEvent struct {
	EventType string    `json:"event_type"`
	TenantID  string    `json:"tenant_id"`
	Count     int       `json:"count"`
	Timestamp time.Time `json:"timestamp"`
}

// Publisher wraps the NATS JetStream connection for storefront events.
// All publish methods tolerate a nil publisher so callers can run without
// a broker in local development.
type Publisher struct {
	conn *nats.Conn
	js   nats.JetStreamContext
	log  *logrus.Logger
}

// NewPublisher connects to NATS and ensures the storefront events stream
// exists.
func NewPublisher(url string, log *logrus.Logger) (*Publisher, error) {
	opts := []nats.Option{
		nats.Name("storefront-service"),
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2 * time.Second),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			log.WithError(err).Warn("NATS disconnected")
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			log.WithField("url", nc.ConnectedUrl()).Info("NATS reconnected")
		}),
		nats.ClosedHandler(func(nc *nats.Conn) {
			log.Info("NATS connection closed")
		}),
	}

	conn, err := nats.Connect(url, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	js, err := conn.JetStream()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to create JetStream context: %w", err)
	}

	// LimitsPolicy allows multiple downstream consumers
	_, err = js.AddStream(&nats.StreamConfig{
		Name:        "STOREFRONT_EVENTS",
		Description: "Stream for storefront customization events",
		Subjects:    []string{"storefront.>"},
		Storage:     nats.FileStorage,
		Retention:   nats.LimitsPolicy,
		MaxAge:      24 * time.Hour * 7,
		MaxMsgs:     100000,
		Discard:     nats.DiscardOld,
	})
	if err != nil && err != nats.ErrStreamNameAlreadyInUse {
		log.WithError(err).Warn("Could not create stream (may already exist)")
	}

	log.WithField("url", url).Info("Connected to NATS")

	return &Publisher{conn: conn, js: js, log: log}, nil
}

// Close closes the NATS connection
func (p *Publisher) Close() {
	if p != nil && p.conn != nil {
		p.conn.Close()
	}
}

// PublishDraftEvent publishes a draft lifecycle event.
func (p *Publisher) PublishDraftEvent(ctx context.Context, subject string, event *DraftEvent) error {
	event.EventType = subject
	event.Timestamp = time.Now().UTC()
	return p.publish(ctx, subject, event)
}

// PublishThemeUpdated publishes a theme update event.
func (p *Publisher) PublishThemeUpdated(ctx context.Context, event *ThemeUpdatedEvent) error {
	event.EventType = EventThemeUpdated
	event.Timestamp = time.Now().UTC()
	return p.publish(ctx, EventThemeUpdated, event)
}

// PublishVersionRestored publishes a version restore event.
func (p *Publisher) PublishVersionRestored(ctx context.Context, event *VersionRestoredEvent) error {
	event.EventType = EventVersionRestored
	event.Timestamp = time.Now().UTC()
	return p.publish(ctx, EventVersionRestored, event)
}

// PublishBannersReordered publishes a banner reorder event.
func (p *Publisher) PublishBannersReordered(ctx context.Context, event *BannersReorderedEvent) error {
	event.EventType = EventBannersReordered
	event.Timestamp = time.Now().UTC()
	return p.publish(ctx, EventBannersReordered, event)
}

// publish sends the event via JetStream with retry and exponential backoff.
func (p *Publisher) publish(ctx context.Context, subject string, event interface{}) error {
	if p == nil || p.js == nil {
		return nil
	}

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	maxRetries := 3
	for attempt := 1; attempt <= maxRetries; attempt++ {
		ack, err := p.js.Publish(subject, data)
		if err == nil {
			p.log.WithFields(logrus.Fields{
				"subject": subject,
				"seq":     ack.Sequence,
			}).Debug("Published event")
			return nil
		}
		p.log.WithError(err).WithFields(logrus.Fields{
			"subject": subject,
			"attempt": attempt,
		}).Warn("Failed to publish event")
		if attempt < maxRetries {
			backoff := time.Duration(1<<uint(attempt-1)) * time.Second
			select {
			case <-ctx.Done():
				return fmt.Errorf("context cancelled while retrying publish: %w", ctx.Err())
			case <-time.After(backoff):
			}
		}
	}
	return fmt.Errorf("failed to publish %s after %d attempts", subject, maxRetries)
}
