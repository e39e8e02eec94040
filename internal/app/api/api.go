// Package api assembles the dishes and orders resources behind one router.
package api

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/mux"

	"grubdash/internal/common/config"
	"grubdash/internal/common/httpx"
	"grubdash/internal/common/idgen"
	"grubdash/internal/common/logger"
	"grubdash/internal/common/mq"
	"grubdash/internal/microservices/dishes"
	"grubdash/internal/microservices/orders"
)

type Options struct {
	IDMode    string
	Seed      bool
	Publisher mq.Publisher
}

// NewRouter returns the full HTTP handler with middleware applied.
func NewRouter(lg *logger.Logger, opts Options) http.Handler {
	r := mux.NewRouter()
	r.NotFoundHandler = httpx.NotFound(lg)

	r.HandleFunc("/health", health(opts.Publisher)).Methods(http.MethodGet)
	r.Handle("/health", httpx.MethodNotAllowed(lg))

	dishes.Mount(r, lg, dishes.Options{IDs: idgen.FromMode(opts.IDMode), Publisher: opts.Publisher, Seed: opts.Seed})
	orders.Mount(r, lg, orders.Options{IDs: idgen.FromMode(opts.IDMode), Publisher: opts.Publisher, Seed: opts.Seed})

	var h http.Handler = r
	h = httpx.CORS(h)
	h = httpx.RequestLog(lg)(h)
	h = middleware.Recoverer(h)
	h = middleware.RequestID(h)
	return h
}

type pinger interface{ Ping() error }

// health always answers 200; "events" is reported only for a real broker.
func health(pub mq.Publisher) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		body := map[string]string{"status": "ok"}
		if p, ok := pub.(pinger); ok {
			body["events"] = "connected"
			if err := p.Ping(); err != nil {
				body["events"] = "disconnected"
			}
		}
		httpx.WriteJSON(w, http.StatusOK, body)
	}
}

// Run connects the event publisher if configured and serves until ctx ends.
func Run(ctx context.Context, cfg config.App, lg *logger.Logger) error {
	var pub mq.Publisher = mq.Noop{}
	if cfg.Rabbit.Enabled() {
		c, err := mq.Dial(cfg.Rabbit)
		if err != nil {
			return err
		}
		defer c.Close()
		lg.Info("", "rabbitmq_connected", "event publisher ready", map[string]any{
			"host":     cfg.Rabbit.Host,
			"exchange": cfg.Rabbit.Exchange,
		})
		pub = c
	}

	h := NewRouter(lg, Options{IDMode: cfg.IDMode, Seed: cfg.SeedData, Publisher: pub})
	srv := httpx.New(":"+strconv.Itoa(cfg.HTTP.Port), h)
	lg.Info("", "service_started", "listening", map[string]any{"port": cfg.HTTP.Port, "id_mode": cfg.IDMode})
	if err := srv.Run(ctx); err != nil {
		return err
	}
	lg.Info("", "service_stopped", "server shut down", nil)
	return nil
}
