package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"marketplace/internal/models"
	"marketplace/internal/repositories"

	"github.com/shopspring/decimal"
)

// NewOrder is a customer's checkout request.
type NewOrder struct {
	StoreID        string
	Lines          []LineRequest
	DeliveryMethod string
	Notes          string
}

// OrderService turns carts into orders and drives their status.
type OrderService struct {
	tx        repositories.Transactor
	orderRepo repositories.OrderRepository
	storeRepo repositories.StoreRepository
	publisher EventPublisher
	policy    TransitionPolicy
	now       func() time.Time
}

// NewOrderService creates a new OrderService. publisher may be nil, in which
// case no events are emitted. A nil policy means PermissiveTransitions.
func NewOrderService(tx repositories.Transactor, orderRepo repositories.OrderRepository, storeRepo repositories.StoreRepository, publisher EventPublisher, policy TransitionPolicy) *OrderService {
	if policy == nil {
		policy = PermissiveTransitions{}
	}
	return &OrderService{
		tx:        tx,
		orderRepo: orderRepo,
		storeRepo: storeRepo,
		publisher: publisher,
		policy:    policy,
		now:       time.Now,
	}
}

// CreateOrder prices the cart at current catalog prices and persists the
// order with its lines in one transaction. If any requested product does not
// resolve, nothing is written.
func (s *OrderService) CreateOrder(ctx context.Context, customer *models.User, in NewOrder) (*models.Order, error) {
	if len(in.Lines) == 0 {
		return nil, ErrEmptyCart
	}
	method, err := models.ParseDeliveryMethod(in.DeliveryMethod)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidDeliveryMethod, in.DeliveryMethod)
	}

	var order *models.Order
	err = s.tx.WithinTransaction(ctx, func(repos repositories.Repositories) error {
		reader := NewCatalogReader(repos.Stores, repos.Products)
		store, resolved, err := reader.ResolvePurchasable(ctx, in.StoreID, in.Lines)
		if err != nil {
			return err
		}

		byID := make(map[string]PurchasableLine, len(resolved))
		for _, pl := range resolved {
			byID[pl.Product.ID] = pl
		}

		draft := &models.Order{
			CustomerID:     customer.ID,
			StoreID:        store.ID,
			Status:         models.OrderStatusPending,
			DeliveryMethod: method,
			Notes:          strings.TrimSpace(in.Notes),
			Lines:          make([]models.OrderLine, 0, len(in.Lines)),
		}
		for _, req := range in.Lines {
			pl, ok := byID[req.ProductID]
			if !ok {
				return &ProductUnavailableError{ProductID: req.ProductID}
			}
			quantity := normalizeQuantity(req.Quantity)
			draft.Lines = append(draft.Lines, models.OrderLine{
				ProductID:   pl.Product.ID,
				ProductName: pl.Product.Name,
				UnitPrice:   pl.Product.Price,
				Quantity:    quantity,
				Subtotal:    pl.Product.Price.Mul(decimal.NewFromInt(int64(quantity))),
			})
		}
		draft.TotalAmount = draft.LinesTotal()

		if err := repos.Orders.Create(ctx, draft); err != nil {
			return err
		}
		order, err = repos.Orders.GetByID(ctx, draft.ID)
		return err
	})
	if err != nil {
		return nil, err
	}

	log.Printf("Order %s created by customer %s for store %s, total %s", order.ID, customer.ID, order.StoreID, order.TotalAmount.StringFixed(2))
	publishEvent(s.publisher, EventOrderCreated, newOrderEvent(order, ""))
	return order, nil
}

// TransitionStatus moves an order of the seller's store to status. Orders of
// other stores are reported as ErrNotFound, the same as missing ones.
func (s *OrderService) TransitionStatus(ctx context.Context, seller *models.User, orderID, status string) (*models.Order, error) {
	to, err := models.ParseOrderStatus(status)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}

	var (
		order    *models.Order
		previous models.OrderStatus
	)
	err = s.tx.WithinTransaction(ctx, func(repos repositories.Repositories) error {
		current, err := repos.Orders.GetForStoreOwner(ctx, orderID, seller.ID)
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return ErrNotFound
			}
			return err
		}
		previous = current.Status
		if err := s.policy.Allow(current.Status, to); err != nil {
			return err
		}
		affected, err := repos.Orders.UpdateStatus(ctx, current.ID, current.Status, to, s.now())
		if err != nil {
			return err
		}
		if affected == 0 {
			return ErrTransitionConflict
		}
		order, err = repos.Orders.GetByID(ctx, current.ID)
		return err
	})
	if err != nil {
		return nil, err
	}

	log.Printf("Order %s moved from %s to %s by seller %s", order.ID, previous, order.Status, seller.ID)
	publishEvent(s.publisher, EventOrderStatusChanged, newOrderEvent(order, previous))
	return order, nil
}

// ListCustomerOrders returns the customer's orders, newest first.
func (s *OrderService) ListCustomerOrders(ctx context.Context, customer *models.User) ([]models.Order, error) {
	return s.orderRepo.ListByCustomer(ctx, customer.ID)
}

// ListSellerOrders returns the orders of the seller's store, newest first.
func (s *OrderService) ListSellerOrders(ctx context.Context, seller *models.User) ([]models.Order, error) {
	store, err := s.storeRepo.GetByOwnerID(ctx, seller.ID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrStoreNotCreated
		}
		return nil, err
	}
	return s.orderRepo.ListByStore(ctx, store.ID)
}
