package handlers

import (
	"log"

	"marketplace/internal/middleware"
	"marketplace/internal/models"
	"marketplace/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// AuthHandler handles HTTP requests for accounts and authentication.
type AuthHandler struct {
	authService *services.AuthService
	validate    *validator.Validate
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		validate:    validator.New(),
	}
}

// RegisterRoutes registers the authentication and account administration routes.
func (h *AuthHandler) RegisterRoutes(router fiber.Router, guard middleware.Guard) {
	authRoutes := router.Group("/auth")
	authRoutes.Post("/register", h.HandleRegister)
	authRoutes.Post("/login", h.HandleLogin)
	authRoutes.Get("/me", guard(), h.HandleMe)

	adminRoutes := router.Group("/admin", guard(models.RoleAdmin))
	adminRoutes.Post("/users", h.HandleCreateUser)
}

func (r registerRequest) newUser() services.NewUser {
	return services.NewUser{
		Username:  r.Username,
		FullName:  r.FullName,
		Email:     r.Email,
		Password:  r.Password,
		Phone:     r.Phone,
		Building:  r.Building,
		Floor:     r.Floor,
		Apartment: r.Apartment,
	}
}

// HandleRegister creates a customer account and logs it in.
func (h *AuthHandler) HandleRegister(c *fiber.Ctx) error {
	var req registerRequest
	if ok, err := parseBody(c, h.validate, &req); !ok {
		return err
	}

	user, token, err := h.authService.Register(c.UserContext(), req.newUser())
	if err != nil {
		return respondError(c, err, "register user")
	}

	log.Printf("Registered customer %s (%s)", user.Username, user.ID)
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":      "User registered successfully",
		"access_token": token,
		"user":         presentUser(user),
	})
}

// HandleLogin authenticates by username or email and issues a token.
func (h *AuthHandler) HandleLogin(c *fiber.Ctx) error {
	var req loginRequest
	if ok, err := parseBody(c, h.validate, &req); !ok {
		return err
	}

	user, token, err := h.authService.Login(c.UserContext(), req.UsernameOrEmail, req.Password)
	if err != nil {
		log.Printf("Error during login for %s: %v", req.UsernameOrEmail, err)
		return respondError(c, err, "log in")
	}

	return c.JSON(fiber.Map{
		"message":      "Login successful",
		"access_token": token,
		"user":         presentUser(user),
	})
}

// HandleMe returns the authenticated user.
func (h *AuthHandler) HandleMe(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"user": presentUser(middleware.CurrentUser(c)),
	})
}

// HandleCreateUser lets an administrator create an account with any role.
func (h *AuthHandler) HandleCreateUser(c *fiber.Ctx) error {
	var req createUserRequest
	if ok, err := parseBody(c, h.validate, &req); !ok {
		return err
	}

	role, err := models.ParseRole(req.Role)
	if err != nil {
		return respondError(c, services.ErrInvalidInput, "create user")
	}
	user, err := h.authService.CreateUser(c.UserContext(), req.newUser(), role)
	if err != nil {
		return respondError(c, err, "create user")
	}

	log.Printf("Admin %s created %s account %s", middleware.CurrentUser(c).ID, user.Role, user.Username)
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "User created successfully",
		"user":    presentUser(user),
	})
}
