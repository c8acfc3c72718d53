package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product represents a catalog entry of a store.
// Products are hard-deleted; order lines keep their own snapshot of name and price.
type Product struct {
	ID          string          `json:"id" gorm:"primaryKey;type:varchar(36)"`
	StoreID     string          `json:"store_id" gorm:"type:varchar(36);not null;index"`
	Name        string          `json:"name" gorm:"type:varchar(150);not null"`
	Description string          `json:"description" gorm:"type:text"`
	Price       decimal.Decimal `json:"price" gorm:"type:decimal(10,2);not null"`
	ImageURL    string          `json:"image_url" gorm:"type:varchar(255)"`
	Stock       int             `json:"stock" gorm:"not null"`
	IsActive    bool            `json:"is_active" gorm:"not null"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}
