package service

import (
	"errors"
	"math"
	"strings"

	"grubdash/internal/common/apperr"
	"grubdash/internal/common/payload"
	"grubdash/internal/domain"
	"grubdash/internal/microservices/orders/repository"
)

func bodyHasDeliverTo(req *OrderRequest) error {
	v, ok := req.Body.NonEmptyString("deliverTo")
	if !ok {
		return apperr.BadRequest("Order must include a deliverTo")
	}
	req.DeliverTo = v
	return nil
}

func bodyHasMobileNumber(req *OrderRequest) error {
	v, ok := req.Body.NonEmptyString("mobileNumber")
	if !ok {
		return apperr.BadRequest("Order must include a mobileNumber")
	}
	req.MobileNumber = v
	return nil
}

func bodyHasDishes(req *OrderRequest) error {
	if _, ok := req.Body.Raw("dishes"); !ok {
		return apperr.BadRequest("Order must include a dish")
	}
	items, ok := req.Body.Array("dishes")
	if !ok || len(items) == 0 {
		return apperr.BadRequest("Order must include at least one dish")
	}
	req.rawDishes = items
	return nil
}

// dishesHaveQuantity needs bodyHasDishes to have run.
func dishesHaveQuantity(req *OrderRequest) error {
	dishes := make([]domain.OrderDish, 0, len(req.rawDishes))
	for i, raw := range req.rawDishes {
		item := payload.Object(raw)
		q, _ := item.Raw("quantity")
		n, ok := payload.Number(q)
		if !ok || n <= 0 || n != math.Trunc(n) || n > math.MaxInt32 {
			return apperr.BadRequest("Dish %d must have a quantity that is an integer greater than 0", i)
		}
		d := domain.OrderDish{Quantity: int(n)}
		d.ID, _ = item.String("id")
		d.Name, _ = item.String("name")
		d.Description, _ = item.String("description")
		d.ImageURL, _ = item.String("image_url")
		if p, ok := item.Raw("price"); ok {
			d.Price, _ = payload.Number(p)
		}
		dishes = append(dishes, d)
	}
	req.Dishes = dishes
	return nil
}

// statusOrPending keeps a valid incoming status on create.
func statusOrPending(req *OrderRequest) error {
	req.Status = domain.StatusPending
	if s, ok := req.Body.NonEmptyString("status"); ok && domain.ValidOrderStatus(s) {
		req.Status = s
	}
	return nil
}

func bodyHasValidStatus(req *OrderRequest) error {
	s, ok := req.Body.NonEmptyString("status")
	if !ok || !domain.ValidOrderStatus(s) {
		return apperr.BadRequest("Order must have a status of %s", strings.Join(domain.OrderStatuses, ", "))
	}
	req.Status = s
	return nil
}

func orderNotDelivered(req *OrderRequest) error {
	if req.Matching.Status == domain.StatusDelivered {
		return apperr.BadRequest("A delivered order cannot be changed")
	}
	return nil
}

func orderIsPending(req *OrderRequest) error {
	return pendingGuard(req.Matching)
}

func pendingGuard(o domain.Order) error {
	if o.Status != domain.StatusPending {
		return apperr.BadRequest("An order cannot be deleted unless it is pending")
	}
	return nil
}

func orderIdMatchesDataId(req *OrderRequest) error {
	raw, ok := req.Body.Raw("id")
	if !ok || payload.Equal(raw, "") || payload.Equal(raw, req.OrderID) {
		return nil
	}
	return apperr.BadRequest("Order id does not match route id. Order: %s, Route: %s.", payload.Text(raw), req.OrderID)
}

func (s *OrderService) orderExists(req *OrderRequest) error {
	o, err := s.repo.Get(req.Ctx, req.OrderID)
	if errors.Is(err, repository.ErrItemNotFound) {
		return notFound(req.OrderID)
	}
	if err != nil {
		return err
	}
	req.Matching = o
	return nil
}

func notFound(id string) error { return apperr.NotFound("Order does not exist: %s.", id) }
