package domain

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, db *gorm.DB, customer *Customer) error
	Update(ctx context.Context, db *gorm.DB, customer *Customer) error
	FindByID(ctx context.Context, db *gorm.DB, id int64) (*Customer, error)
	FindByEmail(ctx context.Context, db *gorm.DB, email string) (*Customer, error)
	CreateTransaction(ctx context.Context, db *gorm.DB, trx *PointsTransaction) error
	FindTransactions(ctx context.Context, db *gorm.DB, customerID int64) ([]PointsTransaction, error)
}
