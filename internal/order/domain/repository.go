package domain

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, db *gorm.DB, order *Order) error
	CreateItems(ctx context.Context, db *gorm.DB, items []OrderItem) error
	FindByID(ctx context.Context, db *gorm.DB, id int64) (*Order, error)
	FindByCustomer(ctx context.Context, db *gorm.DB, customerID int64) ([]Order, error)
	FindByFingerprint(ctx context.Context, db *gorm.DB, fingerprint string) (*Order, error)
	FindItems(ctx context.Context, db *gorm.DB, orderID int64) ([]OrderItem, error)
}
