// Package kafka publishes order integration events to a Kafka topic.
// Publication happens after the owning transaction commits; downstream
// consumers (notifications, analytics, the pharmacy ERP) react to status
// changes without coupling to this service's database.
package kafka

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"pharmacy/internal/core/domain/model/order"

	"github.com/segmentio/kafka-go"
)

// OrderChangedEvent is the wire payload emitted on every order status
// change. Money is carried in cents to avoid float drift in consumers.
type OrderChangedEvent struct {
	OrderID        string    `json:"order_id"`
	OrderNumber    string    `json:"order_number"`
	Status         string    `json:"status"`
	DeliveryWindow string    `json:"delivery_window"`
	TotalCents     int64     `json:"total_cents"`
	OccurredAt     time.Time `json:"occurred_at"`
}

// OrderEventPublisher implements ports.OrderEventPublisher over a Kafka
// writer. Messages are keyed by order ID so all events of one order land
// in the same partition, in order.
type OrderEventPublisher struct {
	writer *kafka.Writer
}

// NewOrderEventPublisher creates a publisher writing to the given topic.
// Brokers is a comma-separated address list.
func NewOrderEventPublisher(brokers, topic string) *OrderEventPublisher {
	addrs := make([]string, 0)
	for _, b := range strings.Split(brokers, ",") {
		if b = strings.TrimSpace(b); b != "" {
			addrs = append(addrs, b)
		}
	}

	return &OrderEventPublisher{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(addrs...),
			Topic:        topic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireOne,
		},
	}
}

// PublishOrderChanged emits an event describing the order's new state.
func (p *OrderEventPublisher) PublishOrderChanged(ctx context.Context, aggregate *order.Order) error {
	event := OrderChangedEvent{
		OrderID:        aggregate.ID().String(),
		OrderNumber:    aggregate.OrderNumber(),
		Status:         aggregate.Status().String(),
		DeliveryWindow: aggregate.DeliveryWindow().String(),
		TotalCents:     aggregate.Total().Cents(),
		OccurredAt:     time.Now().UTC(),
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.OrderID),
		Value: payload,
		Time:  event.OccurredAt,
	})
}

// Close flushes and releases the underlying connection.
func (p *OrderEventPublisher) Close() error {
	return p.writer.Close()
}
