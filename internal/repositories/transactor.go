package repositories

import (
	"context"

	"gorm.io/gorm"
)

// Repositories groups the repositories bound to one database handle, which may
// be a transaction.
type Repositories struct {
	Users    UserRepository
	Stores   StoreRepository
	Products ProductRepository
	Orders   OrderRepository
	Reviews  ReviewRepository
}

// NewGORMRepositories binds every GORM repository to db.
func NewGORMRepositories(db *gorm.DB) Repositories {
	return Repositories{
		Users:    NewGORMUserRepository(db),
		Stores:   NewGORMStoreRepository(db),
		Products: NewGORMProductRepository(db),
		Orders:   NewGORMOrderRepository(db),
		Reviews:  NewGORMReviewRepository(db),
	}
}

// Transactor runs fn against repositories bound to a single transaction.
// The transaction commits when fn returns nil and rolls back otherwise,
// including when ctx is cancelled.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(repos Repositories) error) error
}

// GORMTransactor is a GORM implementation of Transactor.
type GORMTransactor struct {
	db *gorm.DB
}

// NewGORMTransactor creates a new instance of GORMTransactor.
func NewGORMTransactor(db *gorm.DB) *GORMTransactor {
	return &GORMTransactor{db: db}
}

// WithinTransaction implements Transactor.
func (t *GORMTransactor) WithinTransaction(ctx context.Context, fn func(repos Repositories) error) error {
	return t.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewGORMRepositories(tx))
	})
}
