package dishes

import (
	"context"

	"github.com/gorilla/mux"

	"grubdash/internal/common/idgen"
	"grubdash/internal/common/logger"
	"grubdash/internal/common/mq"
	"grubdash/internal/microservices/dishes/handlers"
	"grubdash/internal/microservices/dishes/repository"
	"grubdash/internal/microservices/dishes/service"
)

type Options struct {
	IDs       idgen.Generator
	Publisher mq.Publisher
	Seed      bool
}

// Mount wires repository, service and handler and registers the routes.
func Mount(r *mux.Router, lg *logger.Logger, opts Options) *repository.DishRepository {
	lg = lg.With("dishes")
	repo := repository.NewDishRepository(opts.IDs)
	if opts.Seed {
		repo.Seed(context.Background())
		lg.Info("", "dishes_seeded", "sample dishes loaded", map[string]any{"count": len(repo.List(context.Background()))})
	}
	svc := service.NewDishService(repo, opts.Publisher, lg)
	handlers.NewDishHandler(svc, lg).Routes(r)
	return repo
}
