package services

import (
	"context"
	"errors"
	"strings"

	"marketplace/internal/models"
	"marketplace/internal/repositories"

	"github.com/shopspring/decimal"
)

// StoreInput carries the editable fields of a seller's store. Nil pointers
// keep the current value on update.
type StoreInput struct {
	Name            string
	Description     string
	Category        string
	MinOrderAmount  *decimal.Decimal
	DeliveryFee     *decimal.Decimal
	ProfileImageURL *string
}

// RatedStore is a store together with its derived rating.
type RatedStore struct {
	Store  models.Store
	Rating RatingSummary
}

// StoreDetail is the public view of one store.
type StoreDetail struct {
	RatedStore
	Products []models.Product
}

// StoreService manages sellers' stores and public store browsing.
type StoreService struct {
	storeRepo   repositories.StoreRepository
	productRepo repositories.ProductRepository
	reviewRepo  repositories.ReviewRepository
}

// NewStoreService creates a new StoreService.
func NewStoreService(storeRepo repositories.StoreRepository, productRepo repositories.ProductRepository, reviewRepo repositories.ReviewRepository) *StoreService {
	return &StoreService{
		storeRepo:   storeRepo,
		productRepo: productRepo,
		reviewRepo:  reviewRepo,
	}
}

// MyStore returns the seller's store.
func (s *StoreService) MyStore(ctx context.Context, seller *models.User) (*models.Store, error) {
	return ownStore(ctx, s.storeRepo, seller)
}

// SaveMyStore creates the seller's store or overwrites it when it exists.
// New stores are active. created reports whether a store was inserted.
// Concurrent first saves by one seller still yield a single store.
func (s *StoreService) SaveMyStore(ctx context.Context, seller *models.User, in StoreInput) (store *models.Store, created bool, err error) {
	if err := validateStoreInput(in); err != nil {
		return nil, false, err
	}
	draft := &models.Store{
		OwnerID:        seller.ID,
		Name:           strings.TrimSpace(in.Name),
		Description:    strings.TrimSpace(in.Description),
		Category:       strings.TrimSpace(in.Category),
		IsActive:       true,
		MinOrderAmount: decimalOrZero(in.MinOrderAmount),
		DeliveryFee:    decimalOrZero(in.DeliveryFee),
	}
	if draft.Category == "" {
		draft.Category = models.DefaultStoreCategory
	}
	if in.ProfileImageURL != nil {
		draft.ProfileImageURL = strings.TrimSpace(*in.ProfileImageURL)
	}

	if err := s.storeRepo.Upsert(ctx, draft, in.ProfileImageURL != nil); err != nil {
		return nil, false, err
	}
	store, err = s.storeRepo.GetByOwnerID(ctx, seller.ID)
	if err != nil {
		return nil, false, err
	}
	return store, store.ID == draft.ID, nil
}

// UpdateMyStore edits an existing store. An empty category keeps the current
// one; missing amounts reset to zero.
func (s *StoreService) UpdateMyStore(ctx context.Context, seller *models.User, in StoreInput) (*models.Store, error) {
	if err := validateStoreInput(in); err != nil {
		return nil, err
	}
	store, err := ownStore(ctx, s.storeRepo, seller)
	if err != nil {
		return nil, err
	}
	store.Name = strings.TrimSpace(in.Name)
	store.Description = strings.TrimSpace(in.Description)
	if category := strings.TrimSpace(in.Category); category != "" {
		store.Category = category
	}
	store.MinOrderAmount = decimalOrZero(in.MinOrderAmount)
	store.DeliveryFee = decimalOrZero(in.DeliveryFee)
	if in.ProfileImageURL != nil {
		store.ProfileImageURL = strings.TrimSpace(*in.ProfileImageURL)
	}
	if err := s.storeRepo.Update(ctx, store); err != nil {
		return nil, err
	}
	return store, nil
}

// ListStores returns active stores matching filter, each with its rating.
func (s *StoreService) ListStores(ctx context.Context, filter repositories.StoreFilter) ([]RatedStore, error) {
	stores, err := s.storeRepo.ListActive(ctx, filter)
	if err != nil {
		return nil, err
	}
	rated := make([]RatedStore, 0, len(stores))
	for _, store := range stores {
		totals, err := s.reviewRepo.Totals(ctx, store.ID)
		if err != nil {
			return nil, err
		}
		rated = append(rated, RatedStore{Store: store, Rating: summarize(totals)})
	}
	return rated, nil
}

// GetStoreDetail returns an active store with its active products and rating.
func (s *StoreService) GetStoreDetail(ctx context.Context, storeID string) (*StoreDetail, error) {
	store, err := s.storeRepo.GetActiveByID(ctx, storeID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrStoreUnavailable
		}
		return nil, err
	}
	products, err := s.productRepo.ListByStore(ctx, store.ID, true)
	if err != nil {
		return nil, err
	}
	totals, err := s.reviewRepo.Totals(ctx, store.ID)
	if err != nil {
		return nil, err
	}
	return &StoreDetail{
		RatedStore: RatedStore{Store: *store, Rating: summarize(totals)},
		Products:   products,
	}, nil
}

func ownStore(ctx context.Context, stores repositories.StoreRepository, seller *models.User) (*models.Store, error) {
	store, err := stores.GetByOwnerID(ctx, seller.ID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrStoreNotCreated
		}
		return nil, err
	}
	return store, nil
}

func validateStoreInput(in StoreInput) error {
	if strings.TrimSpace(in.Name) == "" {
		return invalidInput("store name is required")
	}
	if in.MinOrderAmount != nil && in.MinOrderAmount.IsNegative() {
		return invalidInput("min_order_amount must not be negative")
	}
	if in.DeliveryFee != nil && in.DeliveryFee.IsNegative() {
		return invalidInput("delivery_fee must not be negative")
	}
	return nil
}

func decimalOrZero(d *decimal.Decimal) decimal.Decimal {
	if d == nil {
		return decimal.Zero
	}
	return *d
}
