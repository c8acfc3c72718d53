package repositories

import (
	"context"

	"marketplace/internal/models"
)

// StoreFilter narrows the public store listing.
type StoreFilter struct {
	Category string
	Search   string
}

// StoreRepository defines the interface for store data access.
type StoreRepository interface {
	Create(ctx context.Context, store *models.Store) error
	Update(ctx context.Context, store *models.Store) error
	// Upsert inserts store or, when the owner already has one, overwrites its
	// editable fields. is_active of an existing store is left alone.
	Upsert(ctx context.Context, store *models.Store, withImage bool) error
	GetByID(ctx context.Context, id string) (*models.Store, error)
	// GetActiveByID only matches stores with is_active set.
	GetActiveByID(ctx context.Context, id string) (*models.Store, error)
	GetByOwnerID(ctx context.Context, ownerID string) (*models.Store, error)
	ListActive(ctx context.Context, filter StoreFilter) ([]models.Store, error)
}
