package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"marketplace/internal/models"
	"marketplace/internal/repositories"

	"golang.org/x/crypto/bcrypt"
)

// NewUser carries the fields of an account being created.
type NewUser struct {
	Username  string
	FullName  string
	Email     string
	Password  string
	Phone     string
	Building  string
	Floor     string
	Apartment string
}

// AuthService handles registration, login and request authorization.
type AuthService struct {
	userRepo repositories.UserRepository
	tokens   *TokenService
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repositories.UserRepository, tokens *TokenService) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		tokens:   tokens,
	}
}

// Register creates a CUSTOMER account and returns it with a fresh token.
// The role is never taken from the caller.
func (s *AuthService) Register(ctx context.Context, in NewUser) (*models.User, string, error) {
	user, err := s.CreateUser(ctx, in, models.RoleCustomer)
	if err != nil {
		return nil, "", err
	}
	token, err := s.tokens.Issue(user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// CreateUser creates an account with an explicit role.
func (s *AuthService) CreateUser(ctx context.Context, in NewUser, role models.Role) (*models.User, error) {
	if !role.Valid() {
		return nil, invalidInput("unknown role %q", role)
	}
	username := strings.TrimSpace(in.Username)
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if username == "" || email == "" || in.Password == "" {
		return nil, invalidInput("username, email and password are required")
	}

	if _, err := s.userRepo.GetByUsername(ctx, username); err == nil {
		return nil, ErrUsernameTaken
	} else if !errors.Is(err, repositories.ErrNotFound) {
		return nil, err
	}
	if _, err := s.userRepo.GetByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, repositories.ErrNotFound) {
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username:     username,
		FullName:     strings.TrimSpace(in.FullName),
		Email:        email,
		Role:         role,
		Phone:        in.Phone,
		Building:     in.Building,
		Floor:        in.Floor,
		Apartment:    in.Apartment,
		PasswordHash: string(hashedPassword),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to register user: %w", err)
	}
	return user, nil
}

// EnsureAdmin creates an ADMIN account for email unless one already exists.
func (s *AuthService) EnsureAdmin(ctx context.Context, email, password string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil
	}
	if _, err := s.userRepo.GetByEmail(ctx, email); err == nil {
		return nil
	} else if !errors.Is(err, repositories.ErrNotFound) {
		return err
	}
	username := email
	if i := strings.Index(email, "@"); i > 0 {
		username = email[:i]
	}
	_, err := s.CreateUser(ctx, NewUser{
		Username: username,
		FullName: "Administrator",
		Email:    email,
		Password: password,
	}, models.RoleAdmin)
	if err != nil {
		return fmt.Errorf("failed to seed admin: %w", err)
	}
	log.Printf("Seeded admin account %s", email)
	return nil
}

// Login authenticates by username or email and returns a token.
func (s *AuthService) Login(ctx context.Context, login, password string) (*models.User, string, error) {
	user, err := s.userRepo.GetByLogin(ctx, strings.TrimSpace(login))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}
	token, err := s.tokens.Issue(user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// Authenticate resolves the bearer credential in header to a freshly loaded
// user and checks the token's role against allowed. An empty set admits any
// authenticated role. The role is taken from the token, so a role change is
// only honored after the user logs in again.
func (s *AuthService) Authenticate(ctx context.Context, header string, allowed models.RoleSet) (*models.User, error) {
	tokenString, ok := bearerToken(header)
	if !ok {
		return nil, ErrMissingCredential
	}
	userID, role, err := s.tokens.Verify(tokenString)
	if err != nil {
		return nil, err
	}
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrUnknownUser
		}
		return nil, err
	}
	if !allowed.Admits(role) {
		return nil, ErrForbidden
	}
	user.Role = role
	return user, nil
}

func bearerToken(header string) (string, bool) {
	parts := strings.Fields(header)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	return parts[1], true
}
