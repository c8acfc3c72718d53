package services

import (
	"context"
	"errors"

	"marketplace/internal/models"
	"marketplace/internal/repositories"
)

// LineRequest is one requested cart entry.
type LineRequest struct {
	ProductID string
	Quantity  int
}

// PurchasableLine is a resolved product with the quantity to buy.
type PurchasableLine struct {
	Product  models.Product
	Quantity int
}

// CatalogReader resolves cart entries against the current catalog of a store.
type CatalogReader struct {
	stores   repositories.StoreRepository
	products repositories.ProductRepository
}

// NewCatalogReader creates a new CatalogReader.
func NewCatalogReader(stores repositories.StoreRepository, products repositories.ProductRepository) *CatalogReader {
	return &CatalogReader{
		stores:   stores,
		products: products,
	}
}

// ResolvePurchasable loads the active store and returns the requested entries
// whose product is active and belongs to that store, in request order.
// Entries that do not resolve are left out; callers decide whether that is
// fatal. Non-positive quantities are coerced to 1.
func (r *CatalogReader) ResolvePurchasable(ctx context.Context, storeID string, requested []LineRequest) (*models.Store, []PurchasableLine, error) {
	store, err := r.stores.GetActiveByID(ctx, storeID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, nil, ErrStoreUnavailable
		}
		return nil, nil, err
	}

	ids := make([]string, 0, len(requested))
	seen := make(map[string]bool, len(requested))
	for _, req := range requested {
		if req.ProductID != "" && !seen[req.ProductID] {
			seen[req.ProductID] = true
			ids = append(ids, req.ProductID)
		}
	}
	if len(ids) == 0 {
		return store, nil, nil
	}

	products, err := r.products.FindPurchasable(ctx, store.ID, ids)
	if err != nil {
		return nil, nil, err
	}
	byID := make(map[string]models.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	lines := make([]PurchasableLine, 0, len(requested))
	for _, req := range requested {
		p, ok := byID[req.ProductID]
		if !ok {
			continue
		}
		lines = append(lines, PurchasableLine{Product: p, Quantity: normalizeQuantity(req.Quantity)})
	}
	return store, lines, nil
}

func normalizeQuantity(q int) int {
	if q < 1 {
		return 1
	}
	return q
}
