package services

import (
	"context"
	"errors"
	"strings"

	"marketplace/internal/models"
	"marketplace/internal/repositories"

	"github.com/shopspring/decimal"
)

const (
	storeReviewsLimit    = 50
	customerReviewsLimit = 20
)

// RatingSummary is the derived rating of a store.
type RatingSummary struct {
	Average decimal.Decimal
	Count   int64
}

// ReviewService maintains one review per customer and store and derives
// store ratings from them.
type ReviewService struct {
	tx         repositories.Transactor
	reviewRepo repositories.ReviewRepository
	storeRepo  repositories.StoreRepository
}

// NewReviewService creates a new ReviewService.
func NewReviewService(tx repositories.Transactor, reviewRepo repositories.ReviewRepository, storeRepo repositories.StoreRepository) *ReviewService {
	return &ReviewService{
		tx:         tx,
		reviewRepo: reviewRepo,
		storeRepo:  storeRepo,
	}
}

// UpsertReview records the customer's rating of an active store. A repeated
// submission overwrites the rating and keeps the previous comment when comment
// is empty. created reports whether a new review row was inserted.
func (s *ReviewService) UpsertReview(ctx context.Context, customer *models.User, storeID string, rating int, comment string) (review *models.Review, created bool, err error) {
	if rating < models.MinRating || rating > models.MaxRating {
		return nil, false, ErrInvalidRating
	}
	err = s.tx.WithinTransaction(ctx, func(repos repositories.Repositories) error {
		if _, err := repos.Stores.GetActiveByID(ctx, storeID); err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return ErrStoreUnavailable
			}
			return err
		}
		draft := &models.Review{
			CustomerID: customer.ID,
			StoreID:    storeID,
			Rating:     rating,
			Comment:    strings.TrimSpace(comment),
		}
		if err := repos.Reviews.Upsert(ctx, draft); err != nil {
			return err
		}
		review, err = repos.Reviews.GetByCustomerAndStore(ctx, customer.ID, storeID)
		if err != nil {
			return err
		}
		created = review.ID == draft.ID
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return review, created, nil
}

// StoreRatingSummary returns the mean rating, rounded to one decimal, and the
// number of reviews of a store. The average is zero when there are none.
func (s *ReviewService) StoreRatingSummary(ctx context.Context, storeID string) (RatingSummary, error) {
	totals, err := s.reviewRepo.Totals(ctx, storeID)
	if err != nil {
		return RatingSummary{}, err
	}
	return summarize(totals), nil
}

func summarize(totals repositories.RatingTotals) RatingSummary {
	if totals.Count == 0 {
		return RatingSummary{Average: decimal.Zero}
	}
	avg := decimal.NewFromInt(totals.Sum).Div(decimal.NewFromInt(totals.Count)).Round(1)
	return RatingSummary{Average: avg, Count: totals.Count}
}

// ListStoreReviews returns the latest reviews of an active store.
func (s *ReviewService) ListStoreReviews(ctx context.Context, storeID string) ([]models.Review, error) {
	if _, err := s.storeRepo.GetActiveByID(ctx, storeID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrStoreUnavailable
		}
		return nil, err
	}
	return s.reviewRepo.ListByStore(ctx, storeID, storeReviewsLimit)
}

// ListCustomerReviews returns the latest reviews written by the customer.
func (s *ReviewService) ListCustomerReviews(ctx context.Context, customer *models.User) ([]models.Review, error) {
	return s.reviewRepo.ListByCustomer(ctx, customer.ID, customerReviewsLimit)
}
