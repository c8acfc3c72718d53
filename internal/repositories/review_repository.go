package repositories

import (
	"context"

	"marketplace/internal/models"
)

// RatingTotals is the raw aggregate of a store's reviews.
type RatingTotals struct {
	Sum   int64
	Count int64
}

// ReviewRepository defines the interface for review data access.
type ReviewRepository interface {
	// Upsert inserts review, or, when the (customer, store) pair already has a
	// review, overwrites its rating and timestamp in a single statement. The
	// comment is only overwritten when review.Comment is non-empty.
	Upsert(ctx context.Context, review *models.Review) error
	GetByCustomerAndStore(ctx context.Context, customerID, storeID string) (*models.Review, error)
	ListByStore(ctx context.Context, storeID string, limit int) ([]models.Review, error)
	ListByCustomer(ctx context.Context, customerID string, limit int) ([]models.Review, error)
	Totals(ctx context.Context, storeID string) (RatingTotals, error)
}
