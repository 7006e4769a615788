package notify

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Message is the wire form published to the delivery queue. A mailer
// service consumes these and performs the actual delivery.
type Message struct {
	Recipient string `json:"recipient"`
	Subject   string `json:"subject"`
	Body      string `json:"body"`
}

// AMQPNotifier implements transit.Notifier by publishing messages to a
// RabbitMQ queue. The connection and channel are established once at
// construction time.
type AMQPNotifier struct {
	connection *amqp.Connection
	channel    *amqp.Channel
	queue      string
}

// NewAMQPNotifier dials the broker, declares the durable delivery
// queue, and returns a ready notifier.
func NewAMQPNotifier(url, queue string) (*AMQPNotifier, error) {
	connection, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("notify: dialing broker: %w", err)
	}

	channel, err := connection.Channel()
	if err != nil {
		_ = connection.Close()
		return nil, fmt.Errorf("notify: opening channel: %w", err)
	}

	_, err = channel.QueueDeclare(
		queue,
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,
	)
	if err != nil {
		_ = channel.Close()
		_ = connection.Close()
		return nil, fmt.Errorf("notify: declaring queue %s: %w", queue, err)
	}

	return &AMQPNotifier{connection: connection, channel: channel, queue: queue}, nil
}

// Send implements transit.Notifier.
func (n *AMQPNotifier) Send(ctx context.Context, recipient, subject, body string) error {
	payload, err := json.Marshal(Message{Recipient: recipient, Subject: subject, Body: body})
	if err != nil {
		return fmt.Errorf("notify: encoding message: %w", err)
	}

	return n.channel.PublishWithContext(ctx,
		"",
		n.queue,
		false,
		false,
		amqp.Publishing{
			DeliveryMode: amqp.Persistent,
			ContentType:  "application/json",
			Body:         payload,
		},
	)
}

// Close closes the channel and the connection.
func (n *AMQPNotifier) Close() error {
	if err := n.channel.Close(); err != nil {
		return fmt.Errorf("notify: closing channel: %w", err)
	}
	if err := n.connection.Close(); err != nil {
		return fmt.Errorf("notify: closing connection: %w", err)
	}

	return nil
}
