package events

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/fjod/go_cart/storefront/internal/domain"
	"github.com/fjod/go_cart/storefront/internal/lineitem"
	kafkaGo "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go/modules/kafka"
)

func setupKafka(t *testing.T) string {
	ctx := context.Background()

	kafkaContainer, err := kafka.Run(ctx, "confluentinc/confluent-local:7.5.0")
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := kafkaContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate kafka container: %v", err)
		}
	})

	brokers, err := kafkaContainer.Brokers(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, brokers, "broker address should not be empty")
	return brokers[0]
}

func createTopic(t *testing.T, brokerAddr, topic string) {
	conn, err := kafkaGo.Dial("tcp", brokerAddr)
	require.NoError(t, err)
	defer conn.Close()

	controller, err := conn.Controller()
	require.NoError(t, err)

	controllerConn, err := kafkaGo.Dial("tcp", fmt.Sprintf("%s:%d", controller.Host, controller.Port))
	require.NoError(t, err)
	defer controllerConn.Close()

	err = controllerConn.CreateTopics(kafkaGo.TopicConfig{
		Topic:             topic,
		NumPartitions:     1,
		ReplicationFactor: 1,
	})
	if err != nil {
		t.Logf("topic creation error (may already exist): %v", err)
	}
}

func TestCheckoutConsumer_Kafka(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping Kafka container test in short mode")
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	broker := setupKafka(t)
	topic := "checkout-outbox"
	createTopic(t, broker, topic)

	store := lineitem.NewLocalStore(lineitem.NewMemorySlots(), nil)
	user := domain.Authenticated("123")
	_, err := store.Insert(ctx, user, "sku-1", 1)
	require.NoError(t, err)

	consumer := NewCheckoutConsumer(store, topic, "storefront-test", nil, broker)
	defer consumer.Close()

	w := &kafkaGo.Writer{
		Addr:                   kafkaGo.TCP(broker),
		Topic:                  topic,
		Balancer:               &kafkaGo.LeastBytes{},
		AllowAutoTopicCreation: true,
	}
	payload, err := json.Marshal(map[string]interface{}{
		"checkout_id":  "chId",
		"user_id":      "123",
		"total_amount": "1",
		"currency":     "USD",
	})
	require.NoError(t, err)
	require.NoError(t, w.WriteMessages(ctx, kafkaGo.Message{Key: []byte("chId"), Value: payload}))
	require.NoError(t, w.Close())

	go func() { _ = consumer.Run(ctx) }()

	require.Eventually(t, func() bool {
		rows, err := store.List(ctx, user)
		return err == nil && len(rows) == 0
	}, 30*time.Second, 500*time.Millisecond)
}
