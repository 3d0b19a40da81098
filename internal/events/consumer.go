package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/fjod/go_cart/storefront/internal/domain"
	"github.com/fjod/go_cart/storefront/internal/platform/logger"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

type MessageReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
	Close() error
}

// Clearer empties the cart of a mode; lineitem.Store satisfies it.
type Clearer interface {
	Clear(ctx context.Context, mode domain.Mode) error
}

// CheckoutConsumer clears the remote cart of every user whose checkout
// completed, as announced on the checkout outbox topic.
type CheckoutConsumer struct {
	reader  MessageReader
	carts   Clearer
	log     *zap.Logger
	backoff time.Duration
}

func NewCheckoutConsumer(carts Clearer, topic, groupID string, log *zap.Logger, brokers ...string) *CheckoutConsumer {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  brokers,
		Topic:    topic,
		GroupID:  groupID,
		MaxBytes: 10e6, // 10MB
	})
	return NewCheckoutConsumerWithReader(reader, carts, log)
}

func NewCheckoutConsumerWithReader(r MessageReader, carts Clearer, log *zap.Logger) *CheckoutConsumer {
	return &CheckoutConsumer{
		reader:  r,
		carts:   carts,
		log:     logger.OrNop(log).Named("checkout_consumer"),
		backoff: time.Second,
	}
}

// Run consumes until ctx is done.
func (c *CheckoutConsumer) Run(ctx context.Context) error {
	for {
		if ctx.Err() != nil {
			return nil
		}

		m, err := c.reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			c.log.Error("error reading message", zap.Error(err))
			select {
			case <-ctx.Done():
				return nil
			case <-time.After(c.backoff):
			}
			continue
		}

		if err := c.handle(ctx, m); err != nil {
			c.log.Error("failed to process checkout event",
				zap.Int("partition", m.Partition), zap.Int64("offset", m.Offset), zap.Error(err))
		}
	}
}

type checkoutEvent struct {
	CheckoutID string `json:"checkout_id"`
	UserID     string `json:"user_id"`
}

func (c *CheckoutConsumer) handle(ctx context.Context, m kafka.Message) error {
	var ev checkoutEvent
	if err := json.Unmarshal(m.Value, &ev); err != nil {
		return fmt.Errorf("error parsing message: %w", err)
	}
	if ev.UserID == "" {
		return errors.New("missing or invalid user_id")
	}

	if err := c.carts.Clear(ctx, domain.Authenticated(ev.UserID)); err != nil {
		return fmt.Errorf("failed to clear cart of user %s: %w", ev.UserID, err)
	}
	c.log.Info("cart cleared after checkout",
		zap.String("checkout_id", ev.CheckoutID), zap.String("user_id", ev.UserID))
	return nil
}

func (c *CheckoutConsumer) Close() error {
	return c.reader.Close()
}
