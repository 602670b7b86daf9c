package natsadapter

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/snaphunt/snaphunt/internal/core/domain"
)

// Subscriber implements ports.EventSubscriber using NATS JetStream.
type Subscriber struct {
	conn *nats.Conn
	js   nats.JetStreamContext
	subs []*nats.Subscription
}

// NewSubscriber creates a subscriber with its own NATS connection.
func NewSubscriber(url string) (*Subscriber, error) {
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
	return &Subscriber{conn: conn, js: js}, nil
}

// SubscribeZonePlans delivers freshly planned zone sets for any hunt.
func (s *Subscriber) SubscribeZonePlans(ctx context.Context, handler func(ctx context.Context, plan *domain.ZonePlan) error) error {
	sub, err := s.js.Subscribe("snaphunt.zones.>", func(msg *nats.Msg) {
		var plan domain.ZonePlan
		if err := json.Unmarshal(msg.Data, &plan); err != nil {
			_ = msg.Nak()
			return
		}
		if err := handler(ctx, &plan); err != nil {
			_ = msg.Nak()
			return
		}
		_ = msg.Ack()
	},
		nats.Durable("zone-plan-processor"),
		nats.ManualAck(),
		nats.MaxDeliver(3),
	)
	if err != nil {
		return err
	}
	s.subs = append(s.subs, sub)
	return nil
}

// SubscribeCheckpointChanges delivers checkpoint lifecycle events.
func (s *Subscriber) SubscribeCheckpointChanges(ctx context.Context, handler func(ctx context.Context, cp *domain.Checkpoint) error) error {
	sub, err := s.js.Subscribe("snaphunt.checkpoints.>", func(msg *nats.Msg) {
		var cp domain.Checkpoint
		if err := json.Unmarshal(msg.Data, &cp); err != nil {
			_ = msg.Nak()
			return
		}
		if err := handler(ctx, &cp); err != nil {
			_ = msg.Nak()
			return
		}
		_ = msg.Ack()
	},
		nats.Durable("checkpoint-processor"),
		nats.ManualAck(),
		nats.MaxDeliver(3),
	)
	if err != nil {
		return err
	}
	s.subs = append(s.subs, sub)
	return nil
}

// Close unsubscribes and drains.
func (s *Subscriber) Close() {
	for _, sub := range s.subs {
		_ = sub.Unsubscribe()
	}
	_ = s.conn.Drain()
}
