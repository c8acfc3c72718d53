package handlers

import (
	"marketplace/internal/middleware"
	"marketplace/internal/models"
	"marketplace/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// ReviewHandler handles HTTP requests for store reviews.
type ReviewHandler struct {
	service  *services.ReviewService
	validate *validator.Validate
}

// NewReviewHandler creates a new ReviewHandler.
func NewReviewHandler(service *services.ReviewService) *ReviewHandler {
	return &ReviewHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the review routes.
func (h *ReviewHandler) RegisterRoutes(router fiber.Router, guard middleware.Guard) {
	router.Get("/stores/:id/reviews", h.HandleListStoreReviews)
	router.Post("/stores/:id/reviews", guard(models.RoleCustomer), h.HandleUpsertReview)
	router.Get("/profile/my-reviews", guard(models.RoleCustomer), h.HandleListMyReviews)
}

// HandleUpsertReview records the customer's rating of a store. It answers
// 201 for a first review and 200 when an existing one was overwritten.
func (h *ReviewHandler) HandleUpsertReview(c *fiber.Ctx) error {
	var req reviewRequest
	if ok, err := parseBody(c, h.validate, &req); !ok {
		return err
	}
	ctx := c.UserContext()
	storeID := c.Params("id")
	review, created, err := h.service.UpsertReview(ctx, middleware.CurrentUser(c), storeID, int(req.Rating), req.Comment)
	if err != nil {
		return respondError(c, err, "save review")
	}
	summary, err := h.service.StoreRatingSummary(ctx, storeID)
	if err != nil {
		return respondError(c, err, "save review")
	}

	status := fiber.StatusOK
	if created {
		status = fiber.StatusCreated
	}
	return c.Status(status).JSON(fiber.Map{
		"message":       "Review saved successfully",
		"review":        presentReview(review),
		"avg_rating":    summary.Average.InexactFloat64(),
		"reviews_count": summary.Count,
	})
}

// HandleListStoreReviews lists the latest reviews of an active store.
func (h *ReviewHandler) HandleListStoreReviews(c *fiber.Ctx) error {
	reviews, err := h.service.ListStoreReviews(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err, "retrieve reviews")
	}
	return c.JSON(presentReviews(reviews))
}

// HandleListMyReviews lists the latest reviews written by the customer.
func (h *ReviewHandler) HandleListMyReviews(c *fiber.Ctx) error {
	reviews, err := h.service.ListCustomerReviews(c.UserContext(), middleware.CurrentUser(c))
	if err != nil {
		return respondError(c, err, "retrieve reviews")
	}
	return c.JSON(presentReviews(reviews))
}
