package mail

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"
)

// Publisher queues messages on RabbitMQ; the worker's Consumer delivers them.
type Publisher struct {
	mu      sync.Mutex
	conn    *amqp.Connection
	channel *amqp.Channel
	queue   amqp.Queue
}

func dialQueue(url, queueName string) (*amqp.Connection, *amqp.Channel, amqp.Queue, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, nil, amqp.Queue{}, fmt.Errorf("amqp dial: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, nil, amqp.Queue{}, fmt.Errorf("amqp channel: %w", err)
	}

	q, err := ch.QueueDeclare(queueName, true, false, false, false, nil)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, nil, amqp.Queue{}, fmt.Errorf("amqp queue declare: %w", err)
	}
	return conn, ch, q, nil
}

func NewPublisher(url, queueName string) (*Publisher, error) {
	conn, ch, q, err := dialQueue(url, queueName)
	if err != nil {
		return nil, err
	}
	return &Publisher{conn: conn, channel: ch, queue: q}, nil
}

func (p *Publisher) Send(ctx context.Context, msg Message) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("encode mail: %w", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	err = p.channel.PublishWithContext(ctx, "", p.queue.Name, false, false, amqp.Publishing{
		ContentType:  "application/json",
		Body:         body,
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now(),
		Type:         string(msg.Kind),
	})
	if err != nil {
		return fmt.Errorf("amqp publish: %w", err)
	}
	return nil
}

func (p *Publisher) Close() {
	_ = p.channel.Close()
	_ = p.conn.Close()
}

// Consumer drains the mail queue and hands each message to a Mailer.
type Consumer struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	queue   string
	mailer  Mailer
	log     zerolog.Logger
}

func NewConsumer(url, queueName string, mailer Mailer, log zerolog.Logger) (*Consumer, error) {
	conn, ch, q, err := dialQueue(url, queueName)
	if err != nil {
		return nil, err
	}
	if err := ch.Qos(10, 0, false); err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("amqp qos: %w", err)
	}
	return &Consumer{conn: conn, channel: ch, queue: q.Name, mailer: mailer, log: log}, nil
}

func (c *Consumer) Start(ctx context.Context) error {
	deliveries, err := c.channel.ConsumeWithContext(ctx, c.queue, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("amqp consume: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case d, ok := <-deliveries:
			if !ok {
				return errors.New("amqp delivery channel closed")
			}
			if err := deliver(ctx, c.mailer, d.Body); err != nil {
				c.log.Error().Err(err).Str("message_id", d.MessageId).Msg("mail delivery failed")
				_ = d.Nack(false, false)
				continue
			}
			_ = d.Ack(false)
		}
	}
}

func (c *Consumer) Close() {
	_ = c.channel.Close()
	_ = c.conn.Close()
}

func deliver(ctx context.Context, mailer Mailer, body []byte) error {
	var msg Message
	if err := json.Unmarshal(body, &msg); err != nil {
		return fmt.Errorf("decode mail: %w", err)
	}
	if msg.To == "" {
		return errors.New("mail without recipient")
	}
	return mailer.Send(ctx, msg)
}
