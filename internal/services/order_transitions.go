package services

import (
	"fmt"
	"strings"

	"marketplace/internal/models"
)

// TransitionPolicy decides whether an order may move from one status to another.
type TransitionPolicy interface {
	Allow(from, to models.OrderStatus) error
}

// PermissiveTransitions accepts any known status as a target from any state.
type PermissiveTransitions struct{}

// Allow implements TransitionPolicy.
func (PermissiveTransitions) Allow(from, to models.OrderStatus) error {
	return nil
}

// StrictTransitions only accepts moves listed in its predecessor table.
type StrictTransitions struct{}

var strictTransitions = map[models.OrderStatus][]models.OrderStatus{
	models.OrderStatusPending:   {models.OrderStatusAccepted, models.OrderStatusRejected, models.OrderStatusCancelled},
	models.OrderStatusAccepted:  {models.OrderStatusPreparing, models.OrderStatusCancelled},
	models.OrderStatusPreparing: {models.OrderStatusOnTheWay},
	models.OrderStatusOnTheWay:  {models.OrderStatusDelivered},
}

// Allow implements TransitionPolicy.
func (StrictTransitions) Allow(from, to models.OrderStatus) error {
	for _, next := range strictTransitions[from] {
		if next == to {
			return nil
		}
	}
	return fmt.Errorf("%w: %s -> %s", ErrIllegalTransition, from, to)
}

// TransitionPolicyByName returns the policy configured under name.
func TransitionPolicyByName(name string) (TransitionPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "permissive":
		return PermissiveTransitions{}, nil
	case "strict":
		return StrictTransitions{}, nil
	}
	return nil, fmt.Errorf("unknown transition policy %q", name)
}
