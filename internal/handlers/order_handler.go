package handlers

import (
	"marketplace/internal/middleware"
	"marketplace/internal/models"
	"marketplace/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// OrderHandler handles HTTP requests for orders.
type OrderHandler struct {
	service  *services.OrderService
	validate *validator.Validate
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(service *services.OrderService) *OrderHandler {
	return &OrderHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the order routes.
func (h *OrderHandler) RegisterRoutes(router fiber.Router, guard middleware.Guard) {
	orderRoutes := router.Group("/orders")
	orderRoutes.Post("/", guard(models.RoleCustomer), h.HandleCreateOrder)
	orderRoutes.Get("/my", guard(models.RoleCustomer), h.HandleListMyOrders)
	orderRoutes.Get("/seller", guard(models.RoleSeller), h.HandleListSellerOrders)
	orderRoutes.Post("/:id/status", guard(models.RoleSeller), h.HandleTransitionStatus)
}

// HandleCreateOrder places an order for the authenticated customer.
func (h *OrderHandler) HandleCreateOrder(c *fiber.Ctx) error {
	var req createOrderRequest
	if ok, err := parseBody(c, h.validate, &req); !ok {
		return err
	}

	lines := make([]services.LineRequest, 0, len(req.Items))
	for _, item := range req.Items {
		lines = append(lines, services.LineRequest{
			ProductID: item.ProductID,
			Quantity:  int(item.Quantity),
		})
	}

	order, err := h.service.CreateOrder(c.UserContext(), middleware.CurrentUser(c), services.NewOrder{
		StoreID:        req.StoreID,
		Lines:          lines,
		DeliveryMethod: req.DeliveryMethod,
		Notes:          req.Notes,
	})
	if err != nil {
		return respondError(c, err, "create order")
	}
	return c.Status(fiber.StatusCreated).JSON(presentOrder(order))
}

// HandleListMyOrders lists the customer's orders, newest first.
func (h *OrderHandler) HandleListMyOrders(c *fiber.Ctx) error {
	orders, err := h.service.ListCustomerOrders(c.UserContext(), middleware.CurrentUser(c))
	if err != nil {
		return respondError(c, err, "retrieve orders")
	}
	return c.JSON(presentOrders(orders))
}

// HandleListSellerOrders lists the orders of the seller's store, newest first.
func (h *OrderHandler) HandleListSellerOrders(c *fiber.Ctx) error {
	orders, err := h.service.ListSellerOrders(c.UserContext(), middleware.CurrentUser(c))
	if err != nil {
		return respondError(c, err, "retrieve orders")
	}
	return c.JSON(presentOrders(orders))
}

// HandleTransitionStatus moves an order of the seller's store to a new status.
func (h *OrderHandler) HandleTransitionStatus(c *fiber.Ctx) error {
	var req statusRequest
	if ok, err := parseBody(c, h.validate, &req); !ok {
		return err
	}
	order, err := h.service.TransitionStatus(c.UserContext(), middleware.CurrentUser(c), c.Params("id"), req.Status)
	if err != nil {
		return respondError(c, err, "update order status")
	}
	return c.JSON(presentOrder(order))
}
