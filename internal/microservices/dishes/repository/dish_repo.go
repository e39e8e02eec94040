package repository

import (
	"context"
	"errors"
	"sync"

	"grubdash/internal/common/idgen"
	"grubdash/internal/domain"
)

var ErrItemNotFound = errors.New("item not found")

type DishRepositoryInterface interface {
	List(ctx context.Context) []domain.Dish
	Get(ctx context.Context, id string) (domain.Dish, error)
	Create(ctx context.Context, d domain.Dish) domain.Dish
	// Update looks the dish up again and applies fn to it under the store
	// lock. fn must not change the id.
	Update(ctx context.Context, id string, fn func(*domain.Dish)) (domain.Dish, error)
}

// DishRepository keeps dishes in memory, in insertion order.
type DishRepository struct {
	mu    sync.Mutex
	items []*domain.Dish
	ids   idgen.Generator
}

func NewDishRepository(ids idgen.Generator) *DishRepository {
	return &DishRepository{ids: ids}
}

func (r *DishRepository) List(_ context.Context) []domain.Dish {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]domain.Dish, 0, len(r.items))
	for _, d := range r.items {
		out = append(out, *d)
	}
	return out
}

func (r *DishRepository) Get(_ context.Context, id string) (domain.Dish, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	d := r.find(id)
	if d == nil {
		return domain.Dish{}, ErrItemNotFound
	}
	return *d, nil
}

// Create assigns a fresh id and appends the dish.
func (r *DishRepository) Create(_ context.Context, d domain.Dish) domain.Dish {
	r.mu.Lock()
	defer r.mu.Unlock()

	d.ID = r.ids.Next()
	r.items = append(r.items, &d)
	return d
}

func (r *DishRepository) Update(_ context.Context, id string, fn func(*domain.Dish)) (domain.Dish, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	d := r.find(id)
	if d == nil {
		return domain.Dish{}, ErrItemNotFound
	}
	fn(d)
	d.ID = id
	return *d, nil
}

func (r *DishRepository) find(id string) *domain.Dish {
	for _, d := range r.items {
		if d.ID == id {
			return d
		}
	}
	return nil
}

// Seed adds sample dishes for local runs.
func (r *DishRepository) Seed(ctx context.Context) {
	samples := []domain.Dish{
		{Name: "Dolcelatte and chickpea spaghetti", Description: "Spaghetti topped with a blend of dolcelatte and fresh chickpeas", Price: 19, ImageURL: "https://images.pexels.com/photos/1279330/pexels-photo-1279330.jpeg"},
		{Name: "Falafel and tahini bagel", Description: "A warm bagel filled with falafel and tahini", Price: 6, ImageURL: "https://images.pexels.com/photos/4560606/pexels-photo-4560606.jpeg"},
		{Name: "Century Eggs", Description: "Whole eggs preserved in clay and ash for a few months", Price: 17, ImageURL: "https://images.pexels.com/photos/5836859/pexels-photo-5836859.jpeg"},
	}
	for _, d := range samples {
		r.Create(ctx, d)
	}
}
