package handlers

import (
	"marketplace/internal/middleware"
	"marketplace/internal/models"
	"marketplace/internal/repositories"
	"marketplace/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// StoreHandler handles HTTP requests for stores and sellers' catalogs.
type StoreHandler struct {
	storeService   *services.StoreService
	productService *services.ProductService
	validate       *validator.Validate
}

// NewStoreHandler creates a new StoreHandler.
func NewStoreHandler(storeService *services.StoreService, productService *services.ProductService) *StoreHandler {
	return &StoreHandler{
		storeService:   storeService,
		productService: productService,
		validate:       validator.New(),
	}
}

// RegisterRoutes registers the store routes. Seller routes under /stores/my
// are registered before the public /stores/:id routes.
func (h *StoreHandler) RegisterRoutes(router fiber.Router, guard middleware.Guard) {
	storeRoutes := router.Group("/stores")

	seller := guard(models.RoleSeller)
	storeRoutes.Get("/my", seller, h.HandleGetMyStore)
	storeRoutes.Post("/my", seller, h.HandleSaveMyStore)
	storeRoutes.Put("/my", seller, h.HandleUpdateMyStore)
	storeRoutes.Get("/my/products", seller, h.HandleListMyProducts)
	storeRoutes.Post("/my/products", seller, h.HandleCreateProduct)
	storeRoutes.Put("/my/products/:id", seller, h.HandleUpdateProduct)
	storeRoutes.Delete("/my/products/:id", seller, h.HandleDeleteProduct)

	storeRoutes.Get("/", h.HandleListStores)
	storeRoutes.Get("/:id", h.HandleGetStore)
}

func (r storeRequest) input() services.StoreInput {
	return services.StoreInput{
		Name:            r.Name,
		Description:     r.Description,
		Category:        r.Category,
		MinOrderAmount:  r.MinOrderAmount,
		DeliveryFee:     r.DeliveryFee,
		ProfileImageURL: r.ProfileImageURL,
	}
}

// HandleGetMyStore returns the seller's store.
func (h *StoreHandler) HandleGetMyStore(c *fiber.Ctx) error {
	store, err := h.storeService.MyStore(c.UserContext(), middleware.CurrentUser(c))
	if err != nil {
		return respondError(c, err, "retrieve store")
	}
	return c.JSON(presentStore(store))
}

// HandleSaveMyStore creates the seller's store or overwrites it.
func (h *StoreHandler) HandleSaveMyStore(c *fiber.Ctx) error {
	var req storeRequest
	if ok, err := parseBody(c, h.validate, &req); !ok {
		return err
	}
	store, created, err := h.storeService.SaveMyStore(c.UserContext(), middleware.CurrentUser(c), req.input())
	if err != nil {
		return respondError(c, err, "save store")
	}
	status := fiber.StatusOK
	if created {
		status = fiber.StatusCreated
	}
	return c.Status(status).JSON(fiber.Map{
		"message": "Store saved successfully",
		"store":   presentStore(store),
	})
}

// HandleUpdateMyStore edits the seller's existing store.
func (h *StoreHandler) HandleUpdateMyStore(c *fiber.Ctx) error {
	var req storeRequest
	if ok, err := parseBody(c, h.validate, &req); !ok {
		return err
	}
	store, err := h.storeService.UpdateMyStore(c.UserContext(), middleware.CurrentUser(c), req.input())
	if err != nil {
		return respondError(c, err, "update store")
	}
	return c.JSON(presentStore(store))
}

// HandleListStores lists active stores, optionally filtered by category and a
// search term.
func (h *StoreHandler) HandleListStores(c *fiber.Ctx) error {
	stores, err := h.storeService.ListStores(c.UserContext(), repositories.StoreFilter{
		Category: c.Query("category"),
		Search:   c.Query("search"),
	})
	if err != nil {
		return respondError(c, err, "list stores")
	}
	views := make([]storeView, 0, len(stores))
	for _, rs := range stores {
		views = append(views, presentRatedStore(rs))
	}
	return c.JSON(views)
}

// HandleGetStore returns an active store with its active products.
func (h *StoreHandler) HandleGetStore(c *fiber.Ctx) error {
	detail, err := h.storeService.GetStoreDetail(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err, "retrieve store")
	}
	return c.JSON(fiber.Map{
		"store":    presentRatedStore(detail.RatedStore),
		"products": presentProducts(detail.Products),
	})
}

func (r productRequest) input() services.ProductInput {
	return services.ProductInput{
		Name:        r.Name,
		Description: r.Description,
		Price:       r.Price,
		ImageURL:    r.ImageURL,
		Stock:       r.Stock.intPtr(),
		IsActive:    r.IsActive,
	}
}

// HandleListMyProducts lists every product of the seller's store.
func (h *StoreHandler) HandleListMyProducts(c *fiber.Ctx) error {
	products, err := h.productService.ListMyProducts(c.UserContext(), middleware.CurrentUser(c))
	if err != nil {
		return respondError(c, err, "list products")
	}
	return c.JSON(presentProducts(products))
}

// HandleCreateProduct adds a product to the seller's store.
func (h *StoreHandler) HandleCreateProduct(c *fiber.Ctx) error {
	var req productRequest
	if ok, err := parseBody(c, h.validate, &req); !ok {
		return err
	}
	product, err := h.productService.CreateProduct(c.UserContext(), middleware.CurrentUser(c), req.input())
	if err != nil {
		return respondError(c, err, "create product")
	}
	return c.Status(fiber.StatusCreated).JSON(presentProduct(product))
}

// HandleUpdateProduct patches a product of the seller's store.
func (h *StoreHandler) HandleUpdateProduct(c *fiber.Ctx) error {
	var req productRequest
	if ok, err := parseBody(c, h.validate, &req); !ok {
		return err
	}
	product, err := h.productService.UpdateProduct(c.UserContext(), middleware.CurrentUser(c), c.Params("id"), req.input())
	if err != nil {
		return respondError(c, err, "update product")
	}
	return c.JSON(presentProduct(product))
}

// HandleDeleteProduct removes a product of the seller's store.
func (h *StoreHandler) HandleDeleteProduct(c *fiber.Ctx) error {
	if err := h.productService.DeleteProduct(c.UserContext(), middleware.CurrentUser(c), c.Params("id")); err != nil {
		return respondError(c, err, "delete product")
	}
	return c.JSON(fiber.Map{
		"message": "Product deleted successfully",
	})
}
