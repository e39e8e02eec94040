package orders

import (
	"context"

	"github.com/gorilla/mux"

	"grubdash/internal/common/idgen"
	"grubdash/internal/common/logger"
	"grubdash/internal/common/mq"
	"grubdash/internal/microservices/orders/handlers"
	"grubdash/internal/microservices/orders/repository"
	"grubdash/internal/microservices/orders/service"
)

type Options struct {
	IDs       idgen.Generator
	Publisher mq.Publisher
	Seed      bool
}

func Mount(r *mux.Router, lg *logger.Logger, opts Options) *repository.OrderRepository {
	lg = lg.With("orders")
	repo := repository.NewOrderRepository(opts.IDs)
	if opts.Seed {
		repo.Seed(context.Background())
		lg.Info("", "orders_seeded", "sample orders loaded", map[string]any{"count": len(repo.List(context.Background()))})
	}
	svc := service.NewOrderService(repo, opts.Publisher, lg)
	handlers.NewOrderHandler(svc, lg).Routes(r)
	return repo
}
