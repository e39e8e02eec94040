package service

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"grubdash/internal/common/apperr"
	"grubdash/internal/common/idgen"
	"grubdash/internal/common/logger"
	"grubdash/internal/common/payload"
	"grubdash/internal/domain"
	"grubdash/internal/microservices/orders/repository"
)

type recordingPublisher struct{ events []domain.Event }

func (p *recordingPublisher) Publish(_ context.Context, ev domain.Event) error {
	p.events = append(p.events, ev)
	return nil
}

func (p *recordingPublisher) Close() {}

func newTestService(t *testing.T) (*OrderService, *recordingPublisher) {
	t.Helper()
	pub := &recordingPublisher{}
	repo := repository.NewOrderRepository(idgen.NewSequence())
	return NewOrderService(repo, pub, logger.NewWithWriter("orders", &bytes.Buffer{})), pub
}

func body(t *testing.T, s string) payload.Data {
	t.Helper()
	d, err := payload.Parse([]byte(s))
	if err != nil {
		t.Fatalf("parse %s: %v", s, err)
	}
	return d
}

func check(t *testing.T, err error, wantStatus int, wantMsg string) {
	t.Helper()
	if wantStatus == 0 {
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		return
	}
	status, msg := apperr.From(err)
	if status != wantStatus || msg != wantMsg {
		t.Fatalf("got (%d, %q), want (%d, %q)", status, msg, wantStatus, wantMsg)
	}
}

const validOrder = `{"data": {"deliverTo": "308 Negra Arroyo Lane", "mobileNumber": "(505) 143-3369", "dishes": [{"id": "d1", "name": "Soup", "price": 5, "quantity": 2}]}}`

func TestCreateOrderValidation(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		status  int
		wantMsg string
	}{
		{"valid", validOrder, 0, ""},
		{"missing deliverTo", `{"data": {"mobileNumber": "1", "dishes": [{"quantity": 1}]}}`, 400, "Order must include a deliverTo"},
		{"missing mobileNumber", `{"data": {"deliverTo": "a", "dishes": [{"quantity": 1}]}}`, 400, "Order must include a mobileNumber"},
		{"missing dishes", `{"data": {"deliverTo": "a", "mobileNumber": "1"}}`, 400, "Order must include a dish"},
		{"dishes not array", `{"data": {"deliverTo": "a", "mobileNumber": "1", "dishes": "soup"}}`, 400, "Order must include at least one dish"},
		{"empty dishes", `{"data": {"deliverTo": "a", "mobileNumber": "1", "dishes": []}}`, 400, "Order must include at least one dish"},
		{"missing quantity", `{"data": {"deliverTo": "a", "mobileNumber": "1", "dishes": [{"quantity": 1}, {"name": "x"}]}}`, 400, "Dish 1 must have a quantity that is an integer greater than 0"},
		{"zero quantity", `{"data": {"deliverTo": "a", "mobileNumber": "1", "dishes": [{"quantity": 0}]}}`, 400, "Dish 0 must have a quantity that is an integer greater than 0"},
		{"string quantity", `{"data": {"deliverTo": "a", "mobileNumber": "1", "dishes": [{"quantity": "2"}]}}`, 400, "Dish 0 must have a quantity that is an integer greater than 0"},
		{"fractional quantity", `{"data": {"deliverTo": "a", "mobileNumber": "1", "dishes": [{"quantity": 1.5}]}}`, 400, "Dish 0 must have a quantity that is an integer greater than 0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _ := newTestService(t)
			_, err := svc.Create(&OrderRequest{Body: body(t, tt.body)})
			check(t, err, tt.status, tt.wantMsg)
			if tt.status != 0 && len(svc.List(context.Background())) != 0 {
				t.Error("failed create stored an order")
			}
		})
	}
}

func TestCreateOrder(t *testing.T) {
	svc, pub := newTestService(t)
	o, err := svc.Create(&OrderRequest{Body: body(t, validOrder)})
	check(t, err, 0, "")
	if o.ID == "" || o.Status != domain.StatusPending || len(o.Dishes) != 1 || o.Dishes[0].Quantity != 2 || o.Dishes[0].Price != 5 {
		t.Errorf("created = %+v", o)
	}
	if len(pub.events) != 1 || pub.events[0].Type != "order.created" || pub.events[0].ID != o.ID {
		t.Errorf("events = %+v", pub.events)
	}

	withStatus := `{"data": {"deliverTo": "a", "mobileNumber": "1", "status": "preparing", "dishes": [{"quantity": 1}]}}`
	o2, _ := svc.Create(&OrderRequest{Body: body(t, withStatus)})
	if o2.Status != domain.StatusPreparing {
		t.Errorf("valid incoming status dropped: %q", o2.Status)
	}
	bogus := `{"data": {"deliverTo": "a", "mobileNumber": "1", "status": "eaten", "dishes": [{"quantity": 1}]}}`
	o3, _ := svc.Create(&OrderRequest{Body: body(t, bogus)})
	if o3.Status != domain.StatusPending {
		t.Errorf("invalid incoming status kept: %q", o3.Status)
	}
}

func TestReadOrder(t *testing.T) {
	svc, _ := newTestService(t)
	o, _ := svc.Create(&OrderRequest{Body: body(t, validOrder)})

	got, err := svc.Read(&OrderRequest{OrderID: o.ID})
	check(t, err, 0, "")
	if got.ID != o.ID || got.DeliverTo != o.DeliverTo {
		t.Errorf("Read = %+v", got)
	}
	_, err = svc.Read(&OrderRequest{OrderID: "404"})
	check(t, err, 404, "Order does not exist: 404.")
}

func TestUpdateOrder(t *testing.T) {
	svc, pub := newTestService(t)
	o, _ := svc.Create(&OrderRequest{Body: body(t, validOrder)})

	upd := `{"data": {"id": "` + o.ID + `", "deliverTo": "Elsewhere", "mobileNumber": "2", "status": "out-for-delivery", "dishes": [{"quantity": 3}]}}`
	got, err := svc.Update(&OrderRequest{OrderID: o.ID, Body: body(t, upd)})
	check(t, err, 0, "")
	if got.ID != o.ID || got.DeliverTo != "Elsewhere" || got.Status != domain.StatusOutForDelivery || got.Dishes[0].Quantity != 3 {
		t.Errorf("Update = %+v", got)
	}
	if pub.events[len(pub.events)-1].Type != "order.updated" {
		t.Errorf("last event = %+v", pub.events[len(pub.events)-1])
	}
}

func TestUpdateOrderValidation(t *testing.T) {
	svc, _ := newTestService(t)
	o, _ := svc.Create(&OrderRequest{Body: body(t, validOrder)})
	delivered, _ := svc.Create(&OrderRequest{Body: body(t, `{"data": {"deliverTo": "a", "mobileNumber": "1", "status": "delivered", "dishes": [{"quantity": 1}]}}`)})

	base := `"deliverTo": "a", "mobileNumber": "1", "dishes": [{"quantity": 1}]`
	tests := []struct {
		name    string
		id      string
		body    string
		status  int
		wantMsg string
	}{
		{"missing order", "nope", `{"data": {` + base + `, "status": "pending"}}`, 404, "Order does not exist: nope."},
		{"id mismatch", o.ID, `{"data": {"id": "zzz", ` + base + `, "status": "pending"}}`, 400, "Order id does not match route id. Order: zzz, Route: " + o.ID + "."},
		{"missing status", o.ID, `{"data": {` + base + `}}`, 400, "Order must have a status of pending, preparing, out-for-delivery, delivered"},
		{"invalid status", o.ID, `{"data": {` + base + `, "status": "invalid"}}`, 400, "Order must have a status of pending, preparing, out-for-delivery, delivered"},
		{"delivered", delivered.ID, `{"data": {` + base + `, "status": "pending"}}`, 400, "A delivered order cannot be changed"},
		{"missing field", o.ID, `{"data": {"mobileNumber": "1", "status": "pending", "dishes": [{"quantity": 1}]}}`, 400, "Order must include a deliverTo"},
		{"empty id allowed", o.ID, `{"data": {"id": "", ` + base + `, "status": "preparing"}}`, 0, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Update(&OrderRequest{OrderID: tt.id, Body: body(t, tt.body)})
			check(t, err, tt.status, tt.wantMsg)
		})
	}
}

func TestDeleteOrder(t *testing.T) {
	svc, pub := newTestService(t)
	pending, _ := svc.Create(&OrderRequest{Body: body(t, validOrder)})
	preparing, _ := svc.Create(&OrderRequest{Body: body(t, `{"data": {"deliverTo": "a", "mobileNumber": "1", "status": "preparing", "dishes": [{"quantity": 1}]}}`)})

	check(t, svc.Delete(&OrderRequest{OrderID: preparing.ID}), 400, "An order cannot be deleted unless it is pending")
	check(t, svc.Delete(&OrderRequest{OrderID: "missing"}), 404, "Order does not exist: missing.")
	check(t, svc.Delete(&OrderRequest{OrderID: pending.ID}), 0, "")

	if _, err := svc.Read(&OrderRequest{OrderID: pending.ID}); err == nil {
		t.Error("deleted order still readable")
	}
	if last := pub.events[len(pub.events)-1]; last.Type != "order.deleted" || last.ID != pending.ID {
		t.Errorf("last event = %+v", last)
	}
}

// racingRepo flips the order to preparing between the validator and the delete.
type racingRepo struct {
	*repository.OrderRepository
}

func (r racingRepo) Delete(ctx context.Context, id string, guard func(domain.Order) error) error {
	_, _ = r.OrderRepository.Update(ctx, id, func(o *domain.Order) { o.Status = domain.StatusPreparing })
	return r.OrderRepository.Delete(ctx, id, guard)
}

func TestDeleteRechecksUnderLock(t *testing.T) {
	base := repository.NewOrderRepository(idgen.NewSequence())
	o := base.Create(context.Background(), domain.Order{DeliverTo: "a", MobileNumber: "1", Status: domain.StatusPending, Dishes: []domain.OrderDish{{Quantity: 1}}})
	svc := NewOrderService(racingRepo{base}, nil, logger.NewWithWriter("orders", &bytes.Buffer{}))

	err := svc.Delete(&OrderRequest{OrderID: o.ID})
	var e *apperr.Error
	if !errors.As(err, &e) || e.Status != 400 {
		t.Fatalf("Delete = %v, want 400 from guard", err)
	}
	if _, err := base.Get(context.Background(), o.ID); err != nil {
		t.Error("order removed despite failing guard")
	}
}
