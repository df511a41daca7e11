package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"cloud_kitchen/internal/usecase/interfaces"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
)

const OrdersExchange = "kitchen_orders"

// Channel is the subset of *amqp.Channel the publisher needs.
type Channel interface {
	ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp.Table) error
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// RabbitMQPublisher publishes order events to a durable topic exchange.
// Routing keys: order.created and order.status.<status>, e.g. order.status.out_for_delivery.
type RabbitMQPublisher struct {
	openChannel func() (Channel, error)
	exchange    string
}

var _ interfaces.IOrderEventPublisher = (*RabbitMQPublisher)(nil)

func Connect(url string) (*amqp.Connection, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}
	return conn, nil
}

func NewRabbitMQPublisher(conn *amqp.Connection) *RabbitMQPublisher {
	return newRabbitMQPublisher(func() (Channel, error) {
		ch, err := conn.Channel()
		if err != nil {
			return nil, err
		}
		return ch, nil
	})
}

func newRabbitMQPublisher(open func() (Channel, error)) *RabbitMQPublisher {
	return &RabbitMQPublisher{openChannel: open, exchange: OrdersExchange}
}

func (p *RabbitMQPublisher) Publish(ctx context.Context, event interfaces.OrderEvent) error {
	ch, err := p.openChannel()
	if err != nil {
		return fmt.Errorf("failed to open channel: %w", err)
	}
	defer ch.Close()

	if err := ch.ExchangeDeclare(p.exchange, "topic", true, false, false, false, nil); err != nil {
		return fmt.Errorf("failed to declare exchange: %w", err)
	}

	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	err = ch.PublishWithContext(ctx, p.exchange, RoutingKey(event), false, false, amqp.Publishing{
		DeliveryMode: amqp.Persistent,
		ContentType:  "application/json",
		Timestamp:    event.OccurredAt,
		MessageId:    uuid.NewString(),
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}
	return nil
}

func RoutingKey(event interfaces.OrderEvent) string {
	if event.Type == interfaces.OrderEventCreated {
		return "order.created"
	}
	slug := strings.ToLower(strings.Join(strings.Fields(event.Status), "_"))
	return "order.status." + slug
}
