package repositories

import (
	"context"

	"marketplace/internal/models"
)

// UserRepository defines the interface for user data access.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	// GetByLogin matches either the username or the (lower-cased) email.
	GetByLogin(ctx context.Context, login string) (*models.User, error)
}
