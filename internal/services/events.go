package services

import (
	"encoding/json"
	"log"
	"time"

	"marketplace/internal/models"
)

// Routing keys of order events.
const (
	EventOrderCreated       = "order.created"
	EventOrderStatusChanged = "order.status_changed"
)

// EventPublisher delivers a serialized event under a routing key.
type EventPublisher interface {
	Publish(routingKey string, body []byte) error
}

// OrderEvent is the payload of every order event.
type OrderEvent struct {
	OrderID        string             `json:"order_id"`
	StoreID        string             `json:"store_id"`
	CustomerID     string             `json:"customer_id"`
	Status         models.OrderStatus `json:"status"`
	PreviousStatus models.OrderStatus `json:"previous_status,omitempty"`
	TotalAmount    string             `json:"total_amount"`
	OccurredAt     time.Time          `json:"occurred_at"`
}

func newOrderEvent(order *models.Order, previous models.OrderStatus) OrderEvent {
	return OrderEvent{
		OrderID:        order.ID,
		StoreID:        order.StoreID,
		CustomerID:     order.CustomerID,
		Status:         order.Status,
		PreviousStatus: previous,
		TotalAmount:    order.TotalAmount.StringFixed(2),
		OccurredAt:     order.UpdatedAt,
	}
}

// publishEvent is best effort; failures are logged and never returned.
func publishEvent(publisher EventPublisher, routingKey string, event OrderEvent) {
	if publisher == nil {
		return
	}
	body, err := json.Marshal(event)
	if err != nil {
		log.Printf("Failed to marshal %s event for order %s: %v", routingKey, event.OrderID, err)
		return
	}
	if err := publisher.Publish(routingKey, body); err != nil {
		log.Printf("Warning: Failed to publish %s event for order %s: %v", routingKey, event.OrderID, err)
		return
	}
	log.Printf("Published %s event for order %s", routingKey, event.OrderID)
}
