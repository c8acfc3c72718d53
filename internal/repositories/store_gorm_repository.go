package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"marketplace/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GORMStoreRepository is a GORM implementation of StoreRepository.
type GORMStoreRepository struct {
	db *gorm.DB
}

// NewGORMStoreRepository creates a new instance of GORMStoreRepository.
func NewGORMStoreRepository(db *gorm.DB) *GORMStoreRepository {
	return &GORMStoreRepository{
		db: db,
	}
}

// Create creates a new store in the database.
func (r *GORMStoreRepository) Create(ctx context.Context, store *models.Store) error {
	if store.ID == "" {
		store.ID = uuid.New().String()
	}
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(store).Error; err != nil {
		return fmt.Errorf("failed to create store: %w", err)
	}
	return nil
}

// Update writes every mutable column of store, including zero values.
func (r *GORMStoreRepository) Update(ctx context.Context, store *models.Store) error {
	res := r.db.WithContext(ctx).Model(store).
		Select("name", "description", "category", "is_active", "min_order_amount",
			"delivery_fee", "profile_image_url", "updated_at").
		Updates(store)
	if res.Error != nil {
		return fmt.Errorf("failed to update store: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("store with ID %s for update: %w", store.ID, ErrNotFound)
	}
	return nil
}

// Upsert implements StoreRepository with INSERT ... ON CONFLICT DO UPDATE on
// the owner_id unique index. profile_image_url is only overwritten when
// withImage is set.
func (r *GORMStoreRepository) Upsert(ctx context.Context, store *models.Store, withImage bool) error {
	if store.ID == "" {
		store.ID = uuid.New().String()
	}
	columns := []string{"name", "description", "category", "min_order_amount", "delivery_fee", "updated_at"}
	if withImage {
		columns = append(columns, "profile_image_url")
	}
	err := r.db.WithContext(ctx).
		Omit(clause.Associations).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "owner_id"}},
			DoUpdates: clause.AssignmentColumns(columns),
		}).
		Create(store).Error
	if err != nil {
		return fmt.Errorf("failed to upsert store: %w", err)
	}
	return nil
}

// GetByID retrieves a single store by its ID from the database.
func (r *GORMStoreRepository) GetByID(ctx context.Context, id string) (*models.Store, error) {
	return r.first(ctx, "store with ID "+id, "id = ?", id)
}

// GetActiveByID retrieves an active store by its ID from the database.
func (r *GORMStoreRepository) GetActiveByID(ctx context.Context, id string) (*models.Store, error) {
	return r.first(ctx, "active store with ID "+id, "id = ? AND is_active = ?", id, true)
}

// GetByOwnerID retrieves the store owned by the given seller.
func (r *GORMStoreRepository) GetByOwnerID(ctx context.Context, ownerID string) (*models.Store, error) {
	return r.first(ctx, "store of owner "+ownerID, "owner_id = ?", ownerID)
}

func (r *GORMStoreRepository) first(ctx context.Context, what string, query string, args ...interface{}) (*models.Store, error) {
	var store models.Store
	if err := r.db.WithContext(ctx).Where(query, args...).First(&store).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%s: %w", what, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get %s: %w", what, err)
	}
	return &store, nil
}

// ListActive returns active stores, newest first.
func (r *GORMStoreRepository) ListActive(ctx context.Context, filter StoreFilter) ([]models.Store, error) {
	q := r.db.WithContext(ctx).Where("is_active = ?", true)
	if filter.Category != "" {
		q = q.Where("category = ?", filter.Category)
	}
	if s := strings.TrimSpace(filter.Search); s != "" {
		like := "%" + strings.ToLower(s) + "%"
		q = q.Where("(LOWER(name) LIKE ? OR LOWER(description) LIKE ?)", like, like)
	}

	var stores []models.Store
	if err := q.Order("created_at DESC").Find(&stores).Error; err != nil {
		return nil, fmt.Errorf("failed to list active stores: %w", err)
	}
	return stores, nil
}
