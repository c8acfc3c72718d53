package repositories

import (
	"context"

	"marketplace/internal/models"
)

// ProductRepository defines the interface for product data access.
type ProductRepository interface {
	ListByStore(ctx context.Context, storeID string, activeOnly bool) ([]models.Product, error)
	GetByIDForStore(ctx context.Context, id, storeID string) (*models.Product, error)
	// FindPurchasable returns the products among ids that belong to storeID
	// and are active. Ids failing either condition are silently absent.
	FindPurchasable(ctx context.Context, storeID string, ids []string) ([]models.Product, error)
	Create(ctx context.Context, product *models.Product) error
	Update(ctx context.Context, product *models.Product) error
	Delete(ctx context.Context, id, storeID string) error
}
