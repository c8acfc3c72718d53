package repositories_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"marketplace/internal/database/dbtest"
	"marketplace/internal/models"
	"marketplace/internal/repositories"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seed(t *testing.T, repos repositories.Repositories) (*models.User, *models.User, *models.Store) {
	t.Helper()
	ctx := context.Background()
	customer := &models.User{Username: "alice", FullName: "Alice", Email: "alice@example.com", Role: models.RoleCustomer, PasswordHash: "x"}
	seller := &models.User{Username: "bob", FullName: "Bob", Email: "bob@example.com", Role: models.RoleSeller, PasswordHash: "x"}
	require.NoError(t, repos.Users.Create(ctx, customer))
	require.NoError(t, repos.Users.Create(ctx, seller))
	store := &models.Store{OwnerID: seller.ID, Name: "Bakery", Category: "FOOD", IsActive: true}
	require.NoError(t, repos.Stores.Create(ctx, store))
	return customer, seller, store
}

func TestUserRepository_Lookups(t *testing.T) {
	repos := repositories.NewGORMRepositories(dbtest.New(t))
	customer, _, _ := seed(t, repos)
	ctx := context.Background()

	byLogin, err := repos.Users.GetByLogin(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, customer.ID, byLogin.ID)

	byLogin, err = repos.Users.GetByLogin(ctx, "ALICE@example.com")
	require.NoError(t, err)
	assert.Equal(t, customer.ID, byLogin.ID)

	_, err = repos.Users.GetByID(ctx, "missing")
	assert.True(t, errors.Is(err, repositories.ErrNotFound))

	dup := &models.User{Username: "alice", Email: "other@example.com", Role: models.RoleCustomer, PasswordHash: "x"}
	assert.Error(t, repos.Users.Create(ctx, dup))
}

func TestReviewRepository_UpsertKeepsOneRowPerPair(t *testing.T) {
	repos := repositories.NewGORMRepositories(dbtest.New(t))
	customer, _, store := seed(t, repos)
	ctx := context.Background()

	require.NoError(t, repos.Reviews.Upsert(ctx, &models.Review{CustomerID: customer.ID, StoreID: store.ID, Rating: 3, Comment: "fine"}))
	first, err := repos.Reviews.GetByCustomerAndStore(ctx, customer.ID, store.ID)
	require.NoError(t, err)

	require.NoError(t, repos.Reviews.Upsert(ctx, &models.Review{CustomerID: customer.ID, StoreID: store.ID, Rating: 5}))
	second, err := repos.Reviews.GetByCustomerAndStore(ctx, customer.ID, store.ID)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 5, second.Rating)
	assert.Equal(t, "fine", second.Comment)

	totals, err := repos.Reviews.Totals(ctx, store.ID)
	require.NoError(t, err)
	assert.Equal(t, repositories.RatingTotals{Sum: 5, Count: 1}, totals)

	totals, err = repos.Reviews.Totals(ctx, "missing")
	require.NoError(t, err)
	assert.Equal(t, repositories.RatingTotals{}, totals)
}

func TestStoreRepository_UpsertKeyedByOwner(t *testing.T) {
	repos := repositories.NewGORMRepositories(dbtest.New(t))
	_, seller, store := seed(t, repos)
	ctx := context.Background()

	draft := &models.Store{OwnerID: seller.ID, Name: "Cafe", Category: "DRINKS", IsActive: true, ProfileImageURL: "ignored"}
	require.NoError(t, repos.Stores.Upsert(ctx, draft, false))

	saved, err := repos.Stores.GetByOwnerID(ctx, seller.ID)
	require.NoError(t, err)
	assert.Equal(t, store.ID, saved.ID)
	assert.Equal(t, "Cafe", saved.Name)
	assert.Equal(t, "DRINKS", saved.Category)
	assert.Empty(t, saved.ProfileImageURL)
}

func TestOrderRepository_GuardedStatusUpdate(t *testing.T) {
	repos := repositories.NewGORMRepositories(dbtest.New(t))
	customer, seller, store := seed(t, repos)
	ctx := context.Background()

	order := &models.Order{
		CustomerID:     customer.ID,
		StoreID:        store.ID,
		Status:         models.OrderStatusPending,
		DeliveryMethod: models.DeliveryMethodDelivery,
		TotalAmount:    decimal.NewFromInt(4),
		Lines: []models.OrderLine{
			{ProductID: "p1", ProductName: "Bread", UnitPrice: decimal.NewFromInt(2), Quantity: 1, Subtotal: decimal.NewFromInt(2)},
			{ProductID: "p2", ProductName: "Milk", UnitPrice: decimal.NewFromInt(1), Quantity: 2, Subtotal: decimal.NewFromInt(2)},
		},
	}
	require.NoError(t, repos.Orders.Create(ctx, order))

	owned, err := repos.Orders.GetForStoreOwner(ctx, order.ID, seller.ID)
	require.NoError(t, err)
	require.Len(t, owned.Lines, 2)
	assert.Equal(t, "Bread", owned.Lines[0].ProductName)
	assert.Equal(t, "Milk", owned.Lines[1].ProductName)

	_, err = repos.Orders.GetForStoreOwner(ctx, order.ID, customer.ID)
	assert.True(t, errors.Is(err, repositories.ErrNotFound))

	n, err := repos.Orders.UpdateStatus(ctx, order.ID, models.OrderStatusPending, models.OrderStatusAccepted, time.Now())
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	// A writer that read the old status loses
	n, err = repos.Orders.UpdateStatus(ctx, order.ID, models.OrderStatusPending, models.OrderStatusCancelled, time.Now())
	require.NoError(t, err)
	assert.Zero(t, n)

	reloaded, err := repos.Orders.GetByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusAccepted, reloaded.Status)
}

func TestTransactor_RollsBackOnError(t *testing.T) {
	db := dbtest.New(t)
	repos := repositories.NewGORMRepositories(db)
	customer, _, store := seed(t, repos)
	tx := repositories.NewGORMTransactor(db)
	boom := errors.New("boom")

	err := tx.WithinTransaction(context.Background(), func(r repositories.Repositories) error {
		if err := r.Reviews.Upsert(context.Background(), &models.Review{CustomerID: customer.ID, StoreID: store.ID, Rating: 4}); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	_, err = repos.Reviews.GetByCustomerAndStore(context.Background(), customer.ID, store.ID)
	assert.True(t, errors.Is(err, repositories.ErrNotFound))
}
