package repository

import (
	"context"
	"errors"
	"sync"

	"grubdash/internal/common/idgen"
	"grubdash/internal/domain"
)

var ErrItemNotFound = errors.New("item not found")

type OrderRepositoryInterface interface {
	List(ctx context.Context) []domain.Order
	Get(ctx context.Context, id string) (domain.Order, error)
	Create(ctx context.Context, o domain.Order) domain.Order
	Update(ctx context.Context, id string, fn func(*domain.Order)) (domain.Order, error)
	// Delete removes the order if guard, run under the lock, returns nil.
	Delete(ctx context.Context, id string, guard func(domain.Order) error) error
}

type OrderRepository struct {
	mu    sync.Mutex
	items []*domain.Order
	ids   idgen.Generator
}

func NewOrderRepository(ids idgen.Generator) *OrderRepository {
	return &OrderRepository{ids: ids}
}

func (r *OrderRepository) List(_ context.Context) []domain.Order {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]domain.Order, 0, len(r.items))
	for _, o := range r.items {
		out = append(out, o.Clone())
	}
	return out
}

func (r *OrderRepository) Get(_ context.Context, id string) (domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, o := r.find(id)
	if o == nil {
		return domain.Order{}, ErrItemNotFound
	}
	return o.Clone(), nil
}

func (r *OrderRepository) Create(_ context.Context, o domain.Order) domain.Order {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := o.Clone()
	stored.ID = r.ids.Next()
	r.items = append(r.items, &stored)
	return stored.Clone()
}

func (r *OrderRepository) Update(_ context.Context, id string, fn func(*domain.Order)) (domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, o := r.find(id)
	if o == nil {
		return domain.Order{}, ErrItemNotFound
	}
	fn(o)
	o.ID = id
	return o.Clone(), nil
}

func (r *OrderRepository) Delete(_ context.Context, id string, guard func(domain.Order) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i, o := r.find(id)
	if o == nil {
		return ErrItemNotFound
	}
	if guard != nil {
		if err := guard(o.Clone()); err != nil {
			return err
		}
	}
	r.items = append(r.items[:i], r.items[i+1:]...)
	return nil
}

func (r *OrderRepository) find(id string) (int, *domain.Order) {
	for i, o := range r.items {
		if o.ID == id {
			return i, o
		}
	}
	return -1, nil
}

// Seed adds sample orders for local runs.
func (r *OrderRepository) Seed(ctx context.Context) {
	samples := []domain.Order{
		{
			DeliverTo:    "1600 Pennsylvania Avenue NW, Washington, DC 20500",
			MobileNumber: "(202) 456-1111",
			Status:       domain.StatusPending,
			Dishes: []domain.OrderDish{
				{Name: "Falafel and tahini bagel", Description: "A warm bagel filled with falafel and tahini", Price: 6, Quantity: 2},
			},
		},
		{
			DeliverTo:    "308 Negra Arroyo Lane, Albuquerque, NM",
			MobileNumber: "(505) 143-3369",
			Status:       domain.StatusOutForDelivery,
			Dishes: []domain.OrderDish{
				{Name: "Century Eggs", Description: "Whole eggs preserved in clay and ash for a few months", Price: 17, Quantity: 1},
			},
		},
	}
	for _, o := range samples {
		r.Create(ctx, o)
	}
}
