package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus is the fulfillment state of an order.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "PENDING"
	OrderStatusAccepted  OrderStatus = "ACCEPTED"
	OrderStatusRejected  OrderStatus = "REJECTED"
	OrderStatusPreparing OrderStatus = "PREPARING"
	OrderStatusOnTheWay  OrderStatus = "ON_THE_WAY"
	OrderStatusDelivered OrderStatus = "DELIVERED"
	OrderStatusCancelled OrderStatus = "CANCELLED"
)

// OrderStatuses lists every status an order may be moved to.
var OrderStatuses = []OrderStatus{
	OrderStatusPending,
	OrderStatusAccepted,
	OrderStatusRejected,
	OrderStatusPreparing,
	OrderStatusOnTheWay,
	OrderStatusDelivered,
	OrderStatusCancelled,
}

// ParseOrderStatus returns the OrderStatus named by s. Matching is exact.
func ParseOrderStatus(s string) (OrderStatus, error) {
	for _, st := range OrderStatuses {
		if string(st) == s {
			return st, nil
		}
	}
	return "", fmt.Errorf("unknown order status %q", s)
}

// DeliveryMethod tells how the customer receives the order.
type DeliveryMethod string

const (
	DeliveryMethodDelivery DeliveryMethod = "DELIVERY"
	DeliveryMethodPickup   DeliveryMethod = "PICKUP"
)

// ParseDeliveryMethod defaults an empty value to DELIVERY.
func ParseDeliveryMethod(s string) (DeliveryMethod, error) {
	switch DeliveryMethod(strings.ToUpper(strings.TrimSpace(s))) {
	case "", DeliveryMethodDelivery:
		return DeliveryMethodDelivery, nil
	case DeliveryMethodPickup:
		return DeliveryMethodPickup, nil
	}
	return "", fmt.Errorf("unknown delivery method %q", s)
}

// Order represents a customer order placed against one store.
// TotalAmount is fixed at creation time and never recomputed.
type Order struct {
	ID             string          `json:"id" gorm:"primaryKey;type:varchar(36)"`
	CustomerID     string          `json:"customer_id" gorm:"type:varchar(36);not null;index"`
	Customer       User            `json:"-" gorm:"foreignKey:CustomerID"`
	StoreID        string          `json:"store_id" gorm:"type:varchar(36);not null;index"`
	Store          Store           `json:"-" gorm:"foreignKey:StoreID"`
	Status         OrderStatus     `json:"status" gorm:"type:varchar(20);not null;index"`
	TotalAmount    decimal.Decimal `json:"total_amount" gorm:"type:decimal(10,2);not null"`
	DeliveryMethod DeliveryMethod  `json:"delivery_method" gorm:"type:varchar(20);not null"`
	Notes          string          `json:"notes" gorm:"type:varchar(255)"`
	Lines          []OrderLine     `json:"items" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt      time.Time       `json:"created_at" gorm:"index"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// OrderLine is a single item within an order. ProductName and UnitPrice are
// snapshots taken when the order was placed.
type OrderLine struct {
	ID          string          `json:"id" gorm:"primaryKey;type:varchar(36)"`
	OrderID     string          `json:"order_id" gorm:"type:varchar(36);not null;index"`
	Position    int             `json:"-" gorm:"not null"`
	ProductID   string          `json:"product_id" gorm:"type:varchar(36);not null;index"`
	ProductName string          `json:"product_name" gorm:"type:varchar(150);not null"`
	UnitPrice   decimal.Decimal `json:"unit_price" gorm:"type:decimal(10,2);not null"`
	Quantity    int             `json:"quantity" gorm:"not null"`
	Subtotal    decimal.Decimal `json:"subtotal" gorm:"type:decimal(10,2);not null"`
}

// LinesTotal sums the subtotals of the order's lines.
func (o *Order) LinesTotal() decimal.Decimal {
	total := decimal.Zero
	for _, l := range o.Lines {
		total = total.Add(l.Subtotal)
	}
	return total
}
