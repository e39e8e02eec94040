package service

import (
	"context"
	"encoding/json"
	"errors"

	"grubdash/internal/common/apperr"
	"grubdash/internal/common/chain"
	"grubdash/internal/common/logger"
	"grubdash/internal/common/mq"
	"grubdash/internal/common/payload"
	"grubdash/internal/domain"
	"grubdash/internal/microservices/dishes/repository"
)

// DishRequest is the per-request scratch space the steps fill in.
type DishRequest struct {
	Ctx       context.Context
	RequestID string
	DishID    string
	Body      payload.Data

	Name        string
	Description string
	ImageURL    string
	Price       json.RawMessage
	PriceValue  float64

	Matching domain.Dish // set by dishExists
	Result   domain.Dish
}

type DishServiceInterface interface {
	List(ctx context.Context) []domain.Dish
	Read(req *DishRequest) (domain.Dish, error)
	Create(req *DishRequest) (domain.Dish, error)
	Update(req *DishRequest) (domain.Dish, error)
}

type DishService struct {
	repo repository.DishRepositoryInterface
	pub  mq.Publisher
	lg   *logger.Logger

	read   chain.Chain[DishRequest]
	create chain.Chain[DishRequest]
	update chain.Chain[DishRequest]
}

func NewDishService(repo repository.DishRepositoryInterface, pub mq.Publisher, lg *logger.Logger) *DishService {
	if pub == nil {
		pub = mq.Noop{}
	}
	s := &DishService{repo: repo, pub: pub, lg: lg}
	s.read = chain.New[DishRequest](s.dishExists, s.getDish)
	s.create = chain.New[DishRequest](
		bodyHasName,
		bodyHasDescription,
		bodyHasPrice,
		bodyHasValidPrice,
		bodyHasImg,
		s.createDish,
	)
	s.update = chain.New[DishRequest](
		s.dishExists,
		dishIdMatchesDataId,
		bodyHasName,
		bodyHasDescription,
		bodyHasPrice,
		bodyHasValidPriceForUpdate,
		bodyHasImg,
		s.updateDish,
	)
	return s
}

func (s *DishService) List(ctx context.Context) []domain.Dish { return s.repo.List(ctx) }

func (s *DishService) Read(req *DishRequest) (domain.Dish, error)   { return s.run(s.read, req) }
func (s *DishService) Create(req *DishRequest) (domain.Dish, error) { return s.run(s.create, req) }
func (s *DishService) Update(req *DishRequest) (domain.Dish, error) { return s.run(s.update, req) }

func (s *DishService) run(ch chain.Chain[DishRequest], req *DishRequest) (domain.Dish, error) {
	if req.Ctx == nil {
		req.Ctx = context.Background()
	}
	if req.Body == nil {
		req.Body = payload.Data{}
	}
	if err := ch.Run(req); err != nil {
		return domain.Dish{}, err
	}
	return req.Result, nil
}

func (s *DishService) getDish(req *DishRequest) error {
	req.Result = req.Matching
	return nil
}

func (s *DishService) createDish(req *DishRequest) error {
	req.Result = s.repo.Create(req.Ctx, domain.Dish{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.PriceValue,
		ImageURL:    req.ImageURL,
	})
	s.lg.Info(req.RequestID, "dish_created", "dish created", map[string]any{"dish_id": req.Result.ID})
	s.publish(req, domain.EventCreated)
	return nil
}

// updateDish does its own lookup instead of trusting req.Matching.
func (s *DishService) updateDish(req *DishRequest) error {
	d, err := s.repo.Update(req.Ctx, req.DishID, func(d *domain.Dish) {
		d.Name = req.Name
		d.Description = req.Description
		d.Price = req.PriceValue
		d.ImageURL = req.ImageURL
	})
	if errors.Is(err, repository.ErrItemNotFound) {
		return apperr.NotFound("Dish id not found: %s", req.DishID)
	}
	if err != nil {
		return err
	}
	req.Result = d
	s.lg.Info(req.RequestID, "dish_updated", "dish updated", map[string]any{"dish_id": d.ID})
	s.publish(req, domain.EventUpdated)
	return nil
}

func (s *DishService) publish(req *DishRequest, kind string) {
	ev := domain.NewEvent(domain.ResourceDish, kind, req.Result.ID, req.Result)
	if err := s.pub.Publish(req.Ctx, ev); err != nil {
		s.lg.Error(req.RequestID, "event_publish_failed", "cannot publish "+ev.Type, err, map[string]any{"dish_id": ev.ID})
	}
}
