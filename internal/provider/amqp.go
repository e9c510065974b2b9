// internal/provider/amqp.go
package provider

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/streadway/amqp"

	"github.com/unclebandit/mailpulse-backend/internal/config"
)

// AMQPSender hands each email to a durable RabbitMQ queue for an external
// gateway to deliver. Success here means the broker accepted the publish,
// not that the email reached the recipient.
type AMQPSender struct {
	conn  *amqp.Connection
	ch    *amqp.Channel
	queue string
}

type outboundEmail struct {
	To       string `json:"to"`
	Subject  string `json:"subject"`
	BodyHTML string `json:"body_html"`
}

func NewAMQPSender(cfg *config.AMQPConfig) (*AMQPSender, error) {
	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open a channel: %w", err)
	}

	q, err := ch.QueueDeclare(
		cfg.Queue, // name
		true,      // durable
		false,     // delete when unused
		false,     // exclusive
		false,     // no-wait
		nil,       // arguments
	)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare queue: %w", err)
	}

	return &AMQPSender{conn: conn, ch: ch, queue: q.Name}, nil
}

func (s *AMQPSender) Send(ctx context.Context, recipientEmail, subject, bodyHTML string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	body, err := json.Marshal(outboundEmail{
		To:       recipientEmail,
		Subject:  subject,
		BodyHTML: bodyHTML,
	})
	if err != nil {
		return err
	}

	return s.ch.Publish(
		"",
		s.queue,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Body:         body,
		},
	)
}

func (s *AMQPSender) Close() error {
	if err := s.ch.Close(); err != nil {
		s.conn.Close()
		return err
	}
	return s.conn.Close()
}
