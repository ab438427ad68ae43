package order

import (
	"errors"
	"sync"
)

var ErrNotFound = errors.New("order not found")

type Repository interface {
	// Create persists the order and all of its items atomically: either the
	// order row and every item row appear together, or nothing does.
	Create(ord Order, items []Item) (Order, []Item, error)
	GetByID(id int) (Order, []Item, error)
	List() ([]Order, error)
}

// InMemoryRepository is a simple in-memory implementation useful for tests.
type InMemoryRepository struct {
	mu         sync.RWMutex
	orders     []Order
	items      map[int][]Item
	nextID     int
	nextItemID int

	// CreateErr makes Create fail without writing anything, simulating a
	// storage failure.
	CreateErr error
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		items:      map[int][]Item{},
		nextID:     1,
		nextItemID: 1,
	}
}

func (r *InMemoryRepository) Create(ord Order, items []Item) (Order, []Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.CreateErr != nil {
		return Order{}, nil, r.CreateErr
	}

	ord.ID = r.nextID
	r.nextID++
	r.orders = append(r.orders, ord)

	stored := make([]Item, 0, len(items))
	for _, it := range items {
		it.ID = r.nextItemID
		r.nextItemID++
		it.OrderID = ord.ID
		stored = append(stored, it)
	}
	r.items[ord.ID] = stored
	return ord, stored, nil
}

func (r *InMemoryRepository) GetByID(id int) (Order, []Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, ord := range r.orders {
		if ord.ID == id {
			items := make([]Item, len(r.items[id]))
			copy(items, r.items[id])
			return ord, items, nil
		}
	}
	return Order{}, nil, ErrNotFound
}

func (r *InMemoryRepository) List() ([]Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Order, len(r.orders))
	copy(out, r.orders)
	return out, nil
}

// Count reports how many orders have been persisted. Test helper.
func (r *InMemoryRepository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.orders)
}
