package services

import (
	"context"
	"errors"
	"strings"

	"marketplace/internal/models"
	"marketplace/internal/repositories"

	"github.com/shopspring/decimal"
)

// ProductInput carries product fields. On update, nil pointers keep the
// current value.
type ProductInput struct {
	Name        *string
	Description *string
	Price       *decimal.Decimal
	ImageURL    *string
	Stock       *int
	IsActive    *bool
}

// ProductService handles a seller's catalog.
type ProductService struct {
	storeRepo   repositories.StoreRepository
	productRepo repositories.ProductRepository
}

// NewProductService creates a new ProductService.
func NewProductService(storeRepo repositories.StoreRepository, productRepo repositories.ProductRepository) *ProductService {
	return &ProductService{
		storeRepo:   storeRepo,
		productRepo: productRepo,
	}
}

// ListMyProducts returns every product of the seller's store, newest first.
func (s *ProductService) ListMyProducts(ctx context.Context, seller *models.User) ([]models.Product, error) {
	store, err := ownStore(ctx, s.storeRepo, seller)
	if err != nil {
		return nil, err
	}
	return s.productRepo.ListByStore(ctx, store.ID, false)
}

// CreateProduct adds a product to the seller's store. Name and price are
// required; products are active unless IsActive says otherwise.
func (s *ProductService) CreateProduct(ctx context.Context, seller *models.User, in ProductInput) (*models.Product, error) {
	store, err := ownStore(ctx, s.storeRepo, seller)
	if err != nil {
		return nil, err
	}
	if in.Name == nil || strings.TrimSpace(*in.Name) == "" {
		return nil, invalidInput("product name is required")
	}
	if in.Price == nil {
		return nil, invalidInput("product price is required")
	}

	product := &models.Product{
		StoreID:  store.ID,
		IsActive: true,
	}
	if err := applyProductInput(product, in); err != nil {
		return nil, err
	}
	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// UpdateProduct patches a product of the seller's store.
func (s *ProductService) UpdateProduct(ctx context.Context, seller *models.User, productID string, in ProductInput) (*models.Product, error) {
	store, err := ownStore(ctx, s.storeRepo, seller)
	if err != nil {
		return nil, err
	}
	product, err := s.productRepo.GetByIDForStore(ctx, productID, store.ID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if err := applyProductInput(product, in); err != nil {
		return nil, err
	}
	if err := s.productRepo.Update(ctx, product); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return product, nil
}

// DeleteProduct removes a product of the seller's store. Existing order
// lines keep their own copy of its name and price.
func (s *ProductService) DeleteProduct(ctx context.Context, seller *models.User, productID string) error {
	store, err := ownStore(ctx, s.storeRepo, seller)
	if err != nil {
		return err
	}
	if err := s.productRepo.Delete(ctx, productID, store.ID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

func applyProductInput(product *models.Product, in ProductInput) error {
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return invalidInput("product name must not be empty")
		}
		product.Name = name
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.Price != nil {
		if in.Price.IsNegative() {
			return invalidInput("product price must not be negative")
		}
		product.Price = *in.Price
	}
	if in.ImageURL != nil {
		product.ImageURL = *in.ImageURL
	}
	if in.Stock != nil {
		product.Stock = *in.Stock
	}
	if in.IsActive != nil {
		product.IsActive = *in.IsActive
	}
	return nil
}
