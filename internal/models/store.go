package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// DefaultStoreCategory is used when a seller saves a store without a category.
const DefaultStoreCategory = "FOOD"

// Store is a seller's shop. Each seller owns at most one store.
type Store struct {
	ID              string          `json:"id" gorm:"primaryKey;type:varchar(36)"`
	OwnerID         string          `json:"owner_id" gorm:"uniqueIndex;type:varchar(36);not null"`
	Owner           User            `json:"-" gorm:"foreignKey:OwnerID"`
	Name            string          `json:"name" gorm:"type:varchar(120);not null"`
	Description     string          `json:"description" gorm:"type:text"`
	Category        string          `json:"category" gorm:"type:varchar(50);not null;index"`
	IsActive        bool            `json:"is_active" gorm:"not null"`
	MinOrderAmount  decimal.Decimal `json:"min_order_amount" gorm:"type:decimal(10,2);not null"`
	DeliveryFee     decimal.Decimal `json:"delivery_fee" gorm:"type:decimal(10,2);not null"`
	ProfileImageURL string          `json:"profile_image_url" gorm:"type:varchar(255)"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}
