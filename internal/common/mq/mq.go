package mq

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"grubdash/internal/common/config"
	"grubdash/internal/domain"
)

// Publisher delivers domain events after a store mutation.
type Publisher interface {
	Publish(ctx context.Context, ev domain.Event) error
	Close()
}

// Noop is used when no broker is configured.
type Noop struct{}

func (Noop) Publish(context.Context, domain.Event) error { return nil }
func (Noop) Close()                                      {}

// confirmation is the broker verdict for one published message.
type confirmation interface {
	WaitContext(ctx context.Context) (bool, error)
}

type channel interface {
	publish(ctx context.Context, exchange, key string, msg amqp.Publishing) (confirmation, error)
	Close() error
}

// amqpChannel matches each confirm to its message by delivery tag.
type amqpChannel struct{ *amqp.Channel }

func (c amqpChannel) publish(ctx context.Context, exchange, key string, msg amqp.Publishing) (confirmation, error) {
	dc, err := c.PublishWithDeferredConfirmWithContext(ctx, exchange, key, false, false, msg)
	if err != nil || dc == nil {
		return nil, err
	}
	return dc, nil
}

type Client struct {
	conn     *amqp.Connection
	ch       channel
	exchange string
}

func URL(cfg config.MQ) string {
	vhost := cfg.VHost
	if vhost == "" || vhost == "/" {
		vhost = ""
	}
	return fmt.Sprintf("amqp://%s:%s@%s:%d/%s", cfg.User, cfg.Pass, cfg.Host, cfg.Port, vhost)
}

// Dial connects, declares the fanout exchange and turns on publisher confirms.
func Dial(cfg config.MQ) (*Client, error) {
	conn, err := amqp.Dial(URL(cfg))
	if err != nil {
		return nil, fmt.Errorf("rabbitmq dial: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("rabbitmq channel: %w", err)
	}
	if err := ch.ExchangeDeclare(cfg.Exchange, "fanout", true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("declare %s: %w", cfg.Exchange, err)
	}
	if err := ch.Confirm(false); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("confirm mode: %w", err)
	}
	return &Client{conn: conn, ch: amqpChannel{ch}, exchange: cfg.Exchange}, nil
}

func (c *Client) Close() {
	if c == nil {
		return
	}
	if c.ch != nil {
		_ = c.ch.Close()
	}
	if c.conn != nil {
		_ = c.conn.Close()
	}
}

func (c *Client) Ping() error {
	if c.conn == nil || c.conn.IsClosed() {
		return errors.New("rabbitmq connection is closed")
	}
	return nil
}

// Publish sends ev as persistent JSON and waits for the broker ack.
func (c *Client) Publish(ctx context.Context, ev domain.Event) error {
	body, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	conf, err := c.ch.publish(ctx, c.exchange, ev.Type, amqp.Publishing{
		DeliveryMode:  amqp.Persistent,
		ContentType:   "application/json",
		MessageId:     fmt.Sprintf("%d", time.Now().UnixNano()),
		CorrelationId: ev.ID,
		Timestamp:     ev.OccurredAt,
		Headers:       amqp.Table{"x-source": "grubdash", "x-resource": ev.Resource},
		Body:          body,
	})
	if err != nil {
		return fmt.Errorf("publish %s: %w", ev.Type, err)
	}
	if conf == nil {
		return nil
	}
	ack, err := conf.WaitContext(ctx)
	if err != nil {
		return err
	}
	if !ack {
		return fmt.Errorf("publish %s: NACK from broker", ev.Type)
	}
	return nil
}

// Consumer reads every event from the fanout exchange through an exclusive
// server-named queue that goes away with the connection.
type Consumer struct {
	conn       *amqp.Connection
	ch         *amqp.Channel
	Deliveries <-chan amqp.Delivery
}

func Subscribe(cfg config.MQ, name string, prefetch int) (*Consumer, error) {
	conn, err := amqp.Dial(URL(cfg))
	if err != nil {
		return nil, fmt.Errorf("rabbitmq dial: %w", err)
	}
	c := &Consumer{conn: conn}
	if c.ch, err = conn.Channel(); err != nil {
		c.Close()
		return nil, fmt.Errorf("rabbitmq channel: %w", err)
	}
	if err := c.ch.ExchangeDeclare(cfg.Exchange, "fanout", true, false, false, false, nil); err != nil {
		c.Close()
		return nil, fmt.Errorf("declare %s: %w", cfg.Exchange, err)
	}
	q, err := c.ch.QueueDeclare("", false, true, true, false, nil)
	if err != nil {
		c.Close()
		return nil, fmt.Errorf("declare queue: %w", err)
	}
	if err := c.ch.QueueBind(q.Name, "", cfg.Exchange, false, nil); err != nil {
		c.Close()
		return nil, fmt.Errorf("bind %s: %w", q.Name, err)
	}
	if err := c.ch.Qos(prefetch, 0, false); err != nil {
		c.Close()
		return nil, fmt.Errorf("qos: %w", err)
	}
	if c.Deliveries, err = c.ch.Consume(q.Name, name, false, true, false, false, nil); err != nil {
		c.Close()
		return nil, fmt.Errorf("consume %s: %w", q.Name, err)
	}
	return c, nil
}

func (c *Consumer) Close() {
	if c.ch != nil {
		_ = c.ch.Close()
	}
	if c.conn != nil {
		_ = c.conn.Close()
	}
}
