package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"marketplace/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GORMOrderRepository is a GORM implementation of OrderRepository.
type GORMOrderRepository struct {
	db *gorm.DB
}

// NewGORMOrderRepository creates a new instance of GORMOrderRepository.
func NewGORMOrderRepository(db *gorm.DB) *GORMOrderRepository {
	return &GORMOrderRepository{
		db: db,
	}
}

// Create implements OrderRepository.
func (r *GORMOrderRepository) Create(ctx context.Context, order *models.Order) error {
	if order.ID == "" {
		order.ID = uuid.New().String()
	}
	db := r.db.WithContext(ctx)
	if err := db.Omit(clause.Associations).Create(order).Error; err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}

	if len(order.Lines) == 0 {
		return nil
	}
	for i := range order.Lines {
		if order.Lines[i].ID == "" {
			order.Lines[i].ID = uuid.New().String()
		}
		order.Lines[i].OrderID = order.ID
		order.Lines[i].Position = i
	}
	if err := db.CreateInBatches(&order.Lines, len(order.Lines)).Error; err != nil {
		return fmt.Errorf("failed to create order lines: %w", err)
	}
	return nil
}

func (r *GORMOrderRepository) withDetails(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Lines", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Preload("Store").
		Preload("Customer")
}

// GetByID retrieves a single order by its ID.
func (r *GORMOrderRepository) GetByID(ctx context.Context, id string) (*models.Order, error) {
	var order models.Order
	if err := r.withDetails(ctx).First(&order, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("order with ID %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get order by ID %s: %w", id, err)
	}
	return &order, nil
}

// GetForStoreOwner implements OrderRepository.
func (r *GORMOrderRepository) GetForStoreOwner(ctx context.Context, orderID, ownerID string) (*models.Order, error) {
	var order models.Order
	err := r.withDetails(ctx).
		Select("orders.*").
		Joins("JOIN stores ON stores.id = orders.store_id").
		Where("orders.id = ? AND stores.owner_id = ?", orderID, ownerID).
		First(&order).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("order with ID %s of owner %s: %w", orderID, ownerID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get order %s for owner %s: %w", orderID, ownerID, err)
	}
	return &order, nil
}

// ListByCustomer returns a customer's orders, newest first.
func (r *GORMOrderRepository) ListByCustomer(ctx context.Context, customerID string) ([]models.Order, error) {
	var orders []models.Order
	err := r.withDetails(ctx).
		Where("customer_id = ?", customerID).
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list orders of customer %s: %w", customerID, err)
	}
	return orders, nil
}

// ListByStore returns a store's orders, newest first.
func (r *GORMOrderRepository) ListByStore(ctx context.Context, storeID string) ([]models.Order, error) {
	var orders []models.Order
	err := r.withDetails(ctx).
		Where("store_id = ?", storeID).
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list orders of store %s: %w", storeID, err)
	}
	return orders, nil
}

// UpdateStatus implements OrderRepository.
func (r *GORMOrderRepository) UpdateStatus(ctx context.Context, id string, from, to models.OrderStatus, at time.Time) (int64, error) {
	res := r.db.WithContext(ctx).Model(&models.Order{}).
		Where("id = ? AND status = ?", id, from).
		Updates(map[string]interface{}{"status": to, "updated_at": at})
	if res.Error != nil {
		return 0, fmt.Errorf("failed to update status of order %s: %w", id, res.Error)
	}
	return res.RowsAffected, nil
}
