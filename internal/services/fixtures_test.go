package services_test

import (
	"context"
	"testing"

	"marketplace/internal/database/dbtest"
	"marketplace/internal/models"
	"marketplace/internal/repositories"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// MockPublisher is a mock implementation of services.EventPublisher
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(routingKey string, body []byte) error {
	args := m.Called(routingKey, body)
	return args.Error(0)
}

type fixture struct {
	t     *testing.T
	ctx   context.Context
	db    *gorm.DB
	repos repositories.Repositories
	tx    repositories.Transactor
}

func newFixture(t *testing.T) *fixture {
	db := dbtest.New(t)
	return &fixture{
		t:     t,
		ctx:   context.Background(),
		db:    db,
		repos: repositories.NewGORMRepositories(db),
		tx:    repositories.NewGORMTransactor(db),
	}
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func (f *fixture) user(username string, role models.Role) *models.User {
	f.t.Helper()
	u := &models.User{
		Username:     username,
		FullName:     username + " full",
		Email:        username + "@example.com",
		Role:         role,
		PasswordHash: "x",
	}
	require.NoError(f.t, f.repos.Users.Create(f.ctx, u))
	return u
}

func (f *fixture) store(owner *models.User, active bool) *models.Store {
	f.t.Helper()
	s := &models.Store{
		OwnerID:        owner.ID,
		Name:           owner.Username + " store",
		Category:       models.DefaultStoreCategory,
		IsActive:       active,
		MinOrderAmount: decimal.Zero,
		DeliveryFee:    dec("5"),
	}
	require.NoError(f.t, f.repos.Stores.Create(f.ctx, s))
	return s
}

func (f *fixture) product(store *models.Store, name, price string, active bool) *models.Product {
	f.t.Helper()
	p := &models.Product{
		StoreID:  store.ID,
		Name:     name,
		Price:    dec(price),
		Stock:    10,
		IsActive: active,
	}
	require.NoError(f.t, f.repos.Products.Create(f.ctx, p))
	return p
}

func (f *fixture) count(model interface{}) int64 {
	f.t.Helper()
	var n int64
	require.NoError(f.t, f.db.Model(model).Count(&n).Error)
	return n
}
