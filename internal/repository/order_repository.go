package repository

import (
	"context"
	"errors"
	"sync"

	"github.com/OnSightTeam/ordersvc/internal/models"
)

var (
	ErrOrderNotFound = errors.New("order not found")
)

// OrderRepository defines the interface for order persistence.
type OrderRepository interface {
	// Create inserts a new order record and assigns its ID.
	Create(ctx context.Context, order *models.Order) error
	GetByID(ctx context.Context, id int64) (*models.Order, error)
}

// InMemoryOrderRepository implements OrderRepository with in-memory storage.
// It backs tests and ephemeral runs; production uses the SQLite repository.
type InMemoryOrderRepository struct {
	mu     sync.RWMutex
	orders map[int64]models.Order
	nextID int64
}

// NewInMemoryOrderRepository creates an empty in-memory order repository.
func NewInMemoryOrderRepository() *InMemoryOrderRepository {
	return &InMemoryOrderRepository{
		orders: make(map[int64]models.Order),
	}
}

// Create stores the order under the next sequential id.
func (r *InMemoryOrderRepository) Create(ctx context.Context, order *models.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	order.ID = r.nextID
	r.orders[order.ID] = *order
	return nil
}

// GetByID returns an order by its id.
func (r *InMemoryOrderRepository) GetByID(ctx context.Context, id int64) (*models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	order, exists := r.orders[id]
	if !exists {
		return nil, ErrOrderNotFound
	}
	return &order, nil
}
