package natsadapter

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/snaphunt/snaphunt/internal/core/domain"
)

// Subject layout:
//
//	snaphunt.zones.planned.<hunt_id>      — full zone plan payloads
//	snaphunt.checkpoints.<action>.<hunt>  — checkpoint created/updated/deleted
//	snaphunt.updates.broadcast            — fan-out to WebSocket clients
const (
	subjectZonesPrefix       = "snaphunt.zones.planned."
	subjectCheckpointsPrefix = "snaphunt.checkpoints."
	subjectBroadcast         = "snaphunt.updates.broadcast"
)

// Publisher implements ports.EventPublisher using NATS JetStream.
type Publisher struct {
	conn *nats.Conn
	js   nats.JetStreamContext
}

// NewPublisher connects to NATS, enables JetStream and ensures the streams exist.
func NewPublisher(url string) (*Publisher, error) {
	conn, err := nats.Connect(url,
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("nats connect: %w", err)
	}

	js, err := conn.JetStream()
	if err != nil {
		return nil, fmt.Errorf("jetstream: %w", err)
	}

	streams := []nats.StreamConfig{
		{
			Name:      "ZONE_PLANS",
			Subjects:  []string{"snaphunt.zones.>"},
			Retention: nats.LimitsPolicy,
			MaxAge:    24 * time.Hour,
			Storage:   nats.FileStorage,
		},
		{
			Name:      "CHECKPOINT_EVENTS",
			Subjects:  []string{"snaphunt.checkpoints.>"},
			Retention: nats.InterestPolicy,
			MaxAge:    24 * time.Hour,
			Storage:   nats.FileStorage,
		},
	}

	for _, cfg := range streams {
		if _, err := js.AddStream(&cfg); err != nil {
			// Stream may already exist — try update
			if _, err := js.UpdateStream(&cfg); err != nil {
				return nil, fmt.Errorf("ensure stream %s: %w", cfg.Name, err)
			}
		}
	}

	return &Publisher{conn: conn, js: js}, nil
}

// PublishZonePlan publishes a freshly computed plan for a hunt.
func (p *Publisher) PublishZonePlan(ctx context.Context, plan *domain.ZonePlan) error {
	data, err := json.Marshal(plan)
	if err != nil {
		return err
	}
	_, err = p.js.Publish(subjectZonesPrefix+plan.HuntID, data)
	return err
}

// PublishCheckpointChange publishes a checkpoint lifecycle event.
func (p *Publisher) PublishCheckpointChange(ctx context.Context, cp *domain.Checkpoint, action string) error {
	data, err := json.Marshal(cp)
	if err != nil {
		return err
	}
	_, err = p.js.Publish(subjectCheckpointsPrefix+action+"."+cp.HuntID, data)
	return err
}

// PublishBroadcast sends raw data to all WebSocket relays (plain NATS, no stream).
func (p *Publisher) PublishBroadcast(ctx context.Context, data []byte) error {
	return p.conn.Publish(subjectBroadcast, data)
}

// Close drains and closes the connection.
func (p *Publisher) Close() {
	_ = p.conn.Drain()
}

// RawConn creates a plain NATS connection for subscribing (e.g. WebSocket relay).
func RawConn(url string) (*nats.Conn, error) {
	return nats.Connect(url,
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
	)
}
