package repository

import (
	"context"
	"errors"
	"testing"

	"grubdash/internal/common/idgen"
	"grubdash/internal/domain"
)

func sampleOrder() domain.Order {
	return domain.Order{
		DeliverTo:    "Rick",
		MobileNumber: "555",
		Status:       domain.StatusPending,
		Dishes:       []domain.OrderDish{{Name: "Soup", Quantity: 1}},
	}
}

func TestOrderCreateGetListReturnCopies(t *testing.T) {
	ctx := context.Background()
	r := NewOrderRepository(idgen.NewSequence())
	o := r.Create(ctx, sampleOrder())

	o.Dishes[0].Quantity = 99
	got, err := r.Get(ctx, o.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Dishes[0].Quantity != 1 {
		t.Errorf("caller mutation leaked into store: %d", got.Dishes[0].Quantity)
	}
	if list := r.List(ctx); len(list) != 1 || list[0].ID != o.ID {
		t.Errorf("List = %+v", list)
	}
}

func TestOrderDeleteGuard(t *testing.T) {
	ctx := context.Background()
	r := NewOrderRepository(idgen.NewSequence())
	a := r.Create(ctx, sampleOrder())
	b := r.Create(ctx, sampleOrder())
	c := r.Create(ctx, sampleOrder())

	blocked := errors.New("blocked")
	if err := r.Delete(ctx, b.ID, func(domain.Order) error { return blocked }); !errors.Is(err, blocked) {
		t.Fatalf("guarded Delete = %v", err)
	}
	if err := r.Delete(ctx, b.ID, nil); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	list := r.List(ctx)
	if len(list) != 2 || list[0].ID != a.ID || list[1].ID != c.ID {
		t.Errorf("after delete = %+v", list)
	}
	if err := r.Delete(ctx, b.ID, nil); !errors.Is(err, ErrItemNotFound) {
		t.Errorf("second Delete = %v, want ErrItemNotFound", err)
	}
}

func TestOrderUpdate(t *testing.T) {
	ctx := context.Background()
	r := NewOrderRepository(idgen.NewSequence())
	o := r.Create(ctx, sampleOrder())

	got, err := r.Update(ctx, o.ID, func(x *domain.Order) {
		x.Status = domain.StatusPreparing
		x.ID = "other"
	})
	if err != nil || got.ID != o.ID || got.Status != domain.StatusPreparing {
		t.Fatalf("Update = %+v, %v", got, err)
	}
	if _, err := r.Update(ctx, "missing", func(*domain.Order) {}); !errors.Is(err, ErrItemNotFound) {
		t.Errorf("Update missing = %v", err)
	}
}

func TestOrderSeed(t *testing.T) {
	r := NewOrderRepository(idgen.NewSequence())
	r.Seed(context.Background())
	if n := len(r.List(context.Background())); n != 2 {
		t.Errorf("seeded %d orders, want 2", n)
	}
}
