package service

import (
	"context"
	"encoding/json"
	"errors"

	amqp "github.com/rabbitmq/amqp091-go"

	"grubdash/internal/common/logger"
	"grubdash/internal/domain"
)

var errInvalidEvent = errors.New("event has no type")

// NotificatorService logs every restaurant event it receives.
type NotificatorService struct {
	lg *logger.Logger
}

func NewNotificatorService(lg *logger.Logger) *NotificatorService {
	return &NotificatorService{lg: lg}
}

// Notify drains msgs until ctx is done or the channel closes. Messages that
// are not events are rejected without requeue.
func (ns *NotificatorService) Notify(ctx context.Context, msgs <-chan amqp.Delivery) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-msgs:
			if !ok {
				return nil
			}
			ns.handle(msg)
		}
	}
}

func (ns *NotificatorService) handle(msg amqp.Delivery) {
	var ev domain.Event
	if err := json.Unmarshal(msg.Body, &ev); err != nil || ev.Type == "" {
		if err == nil {
			err = errInvalidEvent
		}
		ns.lg.Error(msg.CorrelationId, "event_rejected", "cannot decode event", err, map[string]any{"routing_key": msg.RoutingKey})
		_ = msg.Nack(false, false)
		return
	}
	ns.lg.Info(ev.ID, "event_received", ev.Type, map[string]any{
		"resource":    ev.Resource,
		"id":          ev.ID,
		"occurred_at": ev.OccurredAt,
	})
	_ = msg.Ack(false)
}
