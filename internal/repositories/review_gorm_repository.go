package repositories

import (
	"context"
	"errors"
	"fmt"

	"marketplace/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GORMReviewRepository is a GORM implementation of ReviewRepository.
type GORMReviewRepository struct {
	db *gorm.DB
}

// NewGORMReviewRepository creates a new instance of GORMReviewRepository.
func NewGORMReviewRepository(db *gorm.DB) *GORMReviewRepository {
	return &GORMReviewRepository{
		db: db,
	}
}

// Upsert implements ReviewRepository with INSERT ... ON CONFLICT DO UPDATE on
// the (customer_id, store_id) unique index.
func (r *GORMReviewRepository) Upsert(ctx context.Context, review *models.Review) error {
	if review.ID == "" {
		review.ID = uuid.New().String()
	}
	columns := []string{"rating", "updated_at"}
	if review.Comment != "" {
		columns = append(columns, "comment")
	}
	err := r.db.WithContext(ctx).
		Omit(clause.Associations).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "customer_id"}, {Name: "store_id"}},
			DoUpdates: clause.AssignmentColumns(columns),
		}).
		Create(review).Error
	if err != nil {
		return fmt.Errorf("failed to upsert review: %w", err)
	}
	return nil
}

// GetByCustomerAndStore retrieves the review a customer left for a store.
func (r *GORMReviewRepository) GetByCustomerAndStore(ctx context.Context, customerID, storeID string) (*models.Review, error) {
	var review models.Review
	err := r.db.WithContext(ctx).
		Preload("Customer").
		Preload("Store").
		First(&review, "customer_id = ? AND store_id = ?", customerID, storeID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("review of customer %s for store %s: %w", customerID, storeID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get review of customer %s for store %s: %w", customerID, storeID, err)
	}
	return &review, nil
}

// ListByStore returns the latest reviews of a store.
func (r *GORMReviewRepository) ListByStore(ctx context.Context, storeID string, limit int) ([]models.Review, error) {
	var reviews []models.Review
	err := r.db.WithContext(ctx).
		Preload("Customer").
		Where("store_id = ?", storeID).
		Order("updated_at DESC").
		Limit(limit).
		Find(&reviews).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews of store %s: %w", storeID, err)
	}
	return reviews, nil
}

// ListByCustomer returns the latest reviews written by a customer.
func (r *GORMReviewRepository) ListByCustomer(ctx context.Context, customerID string, limit int) ([]models.Review, error) {
	var reviews []models.Review
	err := r.db.WithContext(ctx).
		Preload("Store").
		Where("customer_id = ?", customerID).
		Order("updated_at DESC").
		Limit(limit).
		Find(&reviews).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews of customer %s: %w", customerID, err)
	}
	return reviews, nil
}

// Totals sums and counts the ratings of a store.
func (r *GORMReviewRepository) Totals(ctx context.Context, storeID string) (RatingTotals, error) {
	var totals RatingTotals
	err := r.db.WithContext(ctx).Model(&models.Review{}).
		Select("COALESCE(SUM(rating), 0) AS sum, COUNT(*) AS count").
		Where("store_id = ?", storeID).
		Scan(&totals).Error
	if err != nil {
		return RatingTotals{}, fmt.Errorf("failed to aggregate ratings of store %s: %w", storeID, err)
	}
	return totals, nil
}
