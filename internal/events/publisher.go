// Package events moves cart state over Kafka: published snapshots out, and
// checkout completions in.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/fjod/go_cart/storefront/internal/domain"
	"github.com/fjod/go_cart/storefront/internal/platform/logger"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// SnapshotPublisher emits every published cart snapshot, keyed by cart so
// updates of one cart stay ordered within a partition.
type SnapshotPublisher struct {
	writer MessageWriter
	log    *zap.Logger
	now    func() time.Time
}

func NewSnapshotPublisher(brokers []string, topic string, log *zap.Logger) *SnapshotPublisher {
	w := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		Async:                  true,
		AllowAutoTopicCreation: true,
	}
	return NewSnapshotPublisherWithWriter(w, log)
}

func NewSnapshotPublisherWithWriter(w MessageWriter, log *zap.Logger) *SnapshotPublisher {
	return &SnapshotPublisher{
		writer: w,
		log:    logger.OrNop(log).Named("snapshot_publisher"),
		now:    time.Now,
	}
}

type snapshotEvent struct {
	CartKey     string          `json:"cart_key"`
	UserID      string          `json:"user_id,omitempty"`
	Snapshot    domain.Snapshot `json:"snapshot"`
	PublishedAt time.Time       `json:"published_at"`
}

func (p *SnapshotPublisher) Publish(ctx context.Context, snap domain.Snapshot) error {
	payload, err := json.Marshal(snapshotEvent{
		CartKey:     snap.Mode().Key(),
		UserID:      snap.Mode().UserID,
		Snapshot:    snap,
		PublishedAt: p.now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot event: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(snap.Mode().Key()),
		Value: payload,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte("cart_snapshot")},
		},
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("failed to publish snapshot: %w", err)
	}
	return nil
}

// Subscriber adapts Publish to a session subscription. Failures are logged;
// the cart itself is unaffected.
func (p *SnapshotPublisher) Subscriber() func(domain.Snapshot) {
	return func(snap domain.Snapshot) {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := p.Publish(ctx, snap); err != nil {
			p.log.Warn("snapshot not published", zap.String("cart_key", snap.Mode().Key()), zap.Error(err))
		}
	}
}

func (p *SnapshotPublisher) Close() error {
	return p.writer.Close()
}
