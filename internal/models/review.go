package models

import "time"

const (
	MinRating = 1
	MaxRating = 5
)

// Review is a customer's rating of a store. There is at most one review per
// (customer, store); the composite unique index backs the upsert.
type Review struct {
	ID         string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	CustomerID string    `json:"customer_id" gorm:"type:varchar(36);not null;uniqueIndex:idx_reviews_customer_store"`
	Customer   User      `json:"-" gorm:"foreignKey:CustomerID"`
	StoreID    string    `json:"store_id" gorm:"type:varchar(36);not null;uniqueIndex:idx_reviews_customer_store;index"`
	Store      Store     `json:"-" gorm:"foreignKey:StoreID"`
	Rating     int       `json:"rating" gorm:"not null"`
	Comment    string    `json:"comment" gorm:"type:text"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
