package service

import (
	"context"
	"encoding/json"
	"errors"

	"grubdash/internal/common/chain"
	"grubdash/internal/common/logger"
	"grubdash/internal/common/mq"
	"grubdash/internal/common/payload"
	"grubdash/internal/domain"
	"grubdash/internal/microservices/orders/repository"
)

type OrderRequest struct {
	Ctx       context.Context
	RequestID string
	OrderID   string
	Body      payload.Data

	DeliverTo    string
	MobileNumber string
	Status       string
	Dishes       []domain.OrderDish
	rawDishes    []json.RawMessage

	Matching domain.Order // set by orderExists
	Result   domain.Order
}

type OrderServiceInterface interface {
	List(ctx context.Context) []domain.Order
	Read(req *OrderRequest) (domain.Order, error)
	Create(req *OrderRequest) (domain.Order, error)
	Update(req *OrderRequest) (domain.Order, error)
	Delete(req *OrderRequest) error
}

type OrderService struct {
	repo repository.OrderRepositoryInterface
	pub  mq.Publisher
	lg   *logger.Logger

	read, create, update, remove chain.Chain[OrderRequest]
}

func NewOrderService(repo repository.OrderRepositoryInterface, pub mq.Publisher, lg *logger.Logger) *OrderService {
	if pub == nil {
		pub = mq.Noop{}
	}
	s := &OrderService{repo: repo, pub: pub, lg: lg}

	fields := chain.New[OrderRequest](bodyHasDeliverTo, bodyHasMobileNumber, bodyHasDishes, dishesHaveQuantity)

	s.read = chain.New[OrderRequest](s.orderExists, s.getOrder)
	s.create = fields.Then(statusOrPending, s.createOrder)
	s.update = chain.New[OrderRequest](s.orderExists, orderIdMatchesDataId).
		Then(fields...).
		Then(bodyHasValidStatus, orderNotDelivered, s.updateOrder)
	s.remove = chain.New[OrderRequest](s.orderExists, orderIsPending, s.deleteOrder)
	return s
}

func (s *OrderService) List(ctx context.Context) []domain.Order { return s.repo.List(ctx) }

func (s *OrderService) Read(req *OrderRequest) (domain.Order, error)   { return s.run(s.read, req) }
func (s *OrderService) Create(req *OrderRequest) (domain.Order, error) { return s.run(s.create, req) }
func (s *OrderService) Update(req *OrderRequest) (domain.Order, error) { return s.run(s.update, req) }

func (s *OrderService) Delete(req *OrderRequest) error {
	_, err := s.run(s.remove, req)
	return err
}

func (s *OrderService) run(ch chain.Chain[OrderRequest], req *OrderRequest) (domain.Order, error) {
	if req.Ctx == nil {
		req.Ctx = context.Background()
	}
	if req.Body == nil {
		req.Body = payload.Data{}
	}
	if err := ch.Run(req); err != nil {
		return domain.Order{}, err
	}
	return req.Result, nil
}

func (s *OrderService) getOrder(req *OrderRequest) error {
	req.Result = req.Matching
	return nil
}

func (s *OrderService) createOrder(req *OrderRequest) error {
	req.Result = s.repo.Create(req.Ctx, domain.Order{
		DeliverTo:    req.DeliverTo,
		MobileNumber: req.MobileNumber,
		Status:       req.Status,
		Dishes:       req.Dishes,
	})
	s.lg.Info(req.RequestID, "order_created", "order created", map[string]any{"order_id": req.Result.ID, "dishes": len(req.Result.Dishes)})
	s.publish(req, domain.EventCreated, req.Result.ID, req.Result)
	return nil
}

func (s *OrderService) updateOrder(req *OrderRequest) error {
	o, err := s.repo.Update(req.Ctx, req.OrderID, func(o *domain.Order) {
		o.DeliverTo = req.DeliverTo
		o.MobileNumber = req.MobileNumber
		o.Status = req.Status
		o.Dishes = req.Dishes
	})
	if errors.Is(err, repository.ErrItemNotFound) {
		return notFound(req.OrderID)
	}
	if err != nil {
		return err
	}
	req.Result = o
	s.lg.Info(req.RequestID, "order_updated", "order updated", map[string]any{"order_id": o.ID, "status": o.Status})
	s.publish(req, domain.EventUpdated, o.ID, o)
	return nil
}

// deleteOrder repeats the pending check under the store lock.
func (s *OrderService) deleteOrder(req *OrderRequest) error {
	err := s.repo.Delete(req.Ctx, req.OrderID, pendingGuard)
	if errors.Is(err, repository.ErrItemNotFound) {
		return notFound(req.OrderID)
	}
	if err != nil {
		return err
	}
	s.lg.Info(req.RequestID, "order_deleted", "order deleted", map[string]any{"order_id": req.OrderID})
	s.publish(req, domain.EventDeleted, req.OrderID, nil)
	return nil
}

func (s *OrderService) publish(req *OrderRequest, kind, id string, data any) {
	ev := domain.NewEvent(domain.ResourceOrder, kind, id, data)
	if err := s.pub.Publish(req.Ctx, ev); err != nil {
		s.lg.Error(req.RequestID, "event_publish_failed", "cannot publish "+ev.Type, err, map[string]any{"order_id": ev.ID})
	}
}
