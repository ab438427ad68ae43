package catalog

import (
	"errors"
	"sync"
)

var (
	ErrNotFound        = errors.New("product not found")
	ErrInvalidCategory = errors.New("unknown category")
)

type Repository interface {
	// ListByCategory returns every product of one category, ordered by id.
	ListByCategory(cat Category) ([]Product, error)
	// ListFlagged returns the products of one category with the given
	// boolean flag set, ordered by id.
	ListFlagged(cat Category, flag Flag) ([]Product, error)
	// UpdateQuantity overwrites a product's stock quantity and returns the
	// updated row. Last writer wins.
	UpdateQuantity(cat Category, id, quantity int) (Product, error)
}

// InMemoryRepository is a simple in-memory implementation useful for tests
// and seeding local data.
type InMemoryRepository struct {
	mu      sync.RWMutex
	storage map[Category][]Product

	// FailCategories makes reads of the listed categories fail, simulating a
	// missing or broken table.
	FailCategories map[Category]error
}

func NewInMemoryRepository(seed []Product) *InMemoryRepository {
	r := &InMemoryRepository{storage: map[Category][]Product{}}
	for _, p := range seed {
		r.storage[p.Category] = append(r.storage[p.Category], p)
	}
	return r
}

func (r *InMemoryRepository) ListByCategory(cat Category) ([]Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if err, ok := r.FailCategories[cat]; ok {
		return nil, err
	}
	out := make([]Product, len(r.storage[cat]))
	copy(out, r.storage[cat])
	return out, nil
}

func (r *InMemoryRepository) ListFlagged(cat Category, flag Flag) ([]Product, error) {
	all, err := r.ListByCategory(cat)
	if err != nil {
		return nil, err
	}
	out := make([]Product, 0)
	for _, p := range all {
		if (flag == FlagNew && p.New) || (flag == FlagHot && p.Hot) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *InMemoryRepository) UpdateQuantity(cat Category, id, quantity int) (Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err, ok := r.FailCategories[cat]; ok {
		return Product{}, err
	}
	for i := range r.storage[cat] {
		if r.storage[cat][i].ID == id {
			r.storage[cat][i].Quantity = quantity
			return r.storage[cat][i], nil
		}
	}
	return Product{}, ErrNotFound
}
