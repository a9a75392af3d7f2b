package repository

import (
	"context"

	"gorm.io/gorm"
)

// TxRepositories bundles the repositories participating in one transaction.
type TxRepositories struct {
	Activities ActivityRepository
	Students   StudentRepository
	Badges     BadgeRepository
}

// UnitOfWork executes a function against a single database transaction.
// The callback's repositories share the transaction; an error rolls
// everything back.
type UnitOfWork interface {
	Do(ctx context.Context, fn func(repos TxRepositories) error) error
}

type gormUnitOfWork struct {
	db *gorm.DB
}

// NewUnitOfWork constructs a unit of work backed by GORM transactions.
func NewUnitOfWork(db *gorm.DB) UnitOfWork {
	return &gormUnitOfWork{db: db}
}

func (u *gormUnitOfWork) Do(ctx context.Context, fn func(repos TxRepositories) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(TxRepositories{
			Activities: NewActivityRepository(tx),
			Students:   NewStudentRepository(tx),
			Badges:     NewBadgeRepository(tx),
		})
	})
}
