package repositories

import (
	"context"
	"time"

	"marketplace/internal/models"
)

// OrderRepository defines the interface for order data access.
type OrderRepository interface {
	// Create inserts the order row and all of its lines. Callers run it inside
	// a Transactor so that either every row is committed or none is.
	Create(ctx context.Context, order *models.Order) error
	// GetByID loads an order with its lines, store and customer.
	GetByID(ctx context.Context, id string) (*models.Order, error)
	// GetForStoreOwner only matches orders of a store owned by ownerID.
	GetForStoreOwner(ctx context.Context, orderID, ownerID string) (*models.Order, error)
	ListByCustomer(ctx context.Context, customerID string) ([]models.Order, error)
	ListByStore(ctx context.Context, storeID string) ([]models.Order, error)
	// UpdateStatus moves the order from one status to another and returns the
	// number of rows changed; zero means the order was not in status from.
	UpdateStatus(ctx context.Context, id string, from, to models.OrderStatus, at time.Time) (int64, error)
}
