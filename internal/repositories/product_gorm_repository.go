package repositories

import (
	"context"
	"errors"
	"fmt"

	"marketplace/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMProductRepository is a GORM implementation of ProductRepository.
type GORMProductRepository struct {
	db *gorm.DB
}

// NewGORMProductRepository creates a new instance of GORMProductRepository.
func NewGORMProductRepository(db *gorm.DB) *GORMProductRepository {
	return &GORMProductRepository{
		db: db,
	}
}

// ListByStore retrieves the products of a store. The public storefront lists
// oldest first, the seller's back office newest first.
func (r *GORMProductRepository) ListByStore(ctx context.Context, storeID string, activeOnly bool) ([]models.Product, error) {
	q := r.db.WithContext(ctx).Where("store_id = ?", storeID)
	if activeOnly {
		q = q.Where("is_active = ?", true).Order("created_at ASC")
	} else {
		q = q.Order("created_at DESC")
	}

	var products []models.Product
	if err := q.Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to list products of store %s: %w", storeID, err)
	}
	return products, nil
}

// GetByIDForStore retrieves a single product scoped to its store.
func (r *GORMProductRepository) GetByIDForStore(ctx context.Context, id, storeID string) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).First(&product, "id = ? AND store_id = ?", id, storeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("product with ID %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get product by ID %s: %w", id, err)
	}
	return &product, nil
}

// FindPurchasable implements ProductRepository.
func (r *GORMProductRepository) FindPurchasable(ctx context.Context, storeID string, ids []string) ([]models.Product, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var products []models.Product
	err := r.db.WithContext(ctx).
		Where("id IN ? AND store_id = ? AND is_active = ?", ids, storeID, true).
		Find(&products).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load purchasable products: %w", err)
	}
	return products, nil
}

// Create creates a new product in the database.
func (r *GORMProductRepository) Create(ctx context.Context, product *models.Product) error {
	if product.ID == "" {
		product.ID = uuid.New().String()
	}
	if err := r.db.WithContext(ctx).Create(product).Error; err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

// Update writes every mutable column of product, including zero values.
func (r *GORMProductRepository) Update(ctx context.Context, product *models.Product) error {
	res := r.db.WithContext(ctx).Model(product).
		Where("store_id = ?", product.StoreID).
		Select("name", "description", "price", "image_url", "stock", "is_active", "updated_at").
		Updates(product)
	if res.Error != nil {
		return fmt.Errorf("failed to update product: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("product with ID %s for update: %w", product.ID, ErrNotFound)
	}
	return nil
}

// Delete hard-deletes a product of the given store.
func (r *GORMProductRepository) Delete(ctx context.Context, id, storeID string) error {
	res := r.db.WithContext(ctx).Delete(&models.Product{}, "id = ? AND store_id = ?", id, storeID)
	if res.Error != nil {
		return fmt.Errorf("failed to delete product: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("product with ID %s for deletion: %w", id, ErrNotFound)
	}
	return nil
}
