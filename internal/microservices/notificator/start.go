package notificator

import (
	"context"
	"errors"

	"grubdash/internal/common/config"
	"grubdash/internal/common/logger"
	"grubdash/internal/common/mq"
	"grubdash/internal/microservices/notificator/service"
)

// Start subscribes to the event exchange and logs events until ctx is done.
func Start(ctx context.Context, cfg config.MQ, lg *logger.Logger) error {
	if !cfg.Enabled() {
		return errors.New("notifier needs RABBITMQ_HOST")
	}
	lg = lg.With("notificator")
	c, err := mq.Subscribe(cfg, "notificator", 10)
	if err != nil {
		return err
	}
	defer c.Close()
	lg.Info("", "subscriber_started", "waiting for events", map[string]any{"exchange": cfg.Exchange})
	return service.NewNotificatorService(lg).Notify(ctx, c.Deliveries)
}
