package domain

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, db *gorm.DB, product *EligibleProduct) error
	Update(ctx context.Context, db *gorm.DB, product *EligibleProduct) error
	Delete(ctx context.Context, db *gorm.DB, id int64) error
	FindByID(ctx context.Context, db *gorm.DB, id int64) (*EligibleProduct, error)
	FindByCode(ctx context.Context, db *gorm.DB, code string) (*EligibleProduct, error)
	FindAll(ctx context.Context, db *gorm.DB) ([]EligibleProduct, error)
	FindActive(ctx context.Context, db *gorm.DB) ([]EligibleProduct, error)
	Count(ctx context.Context, db *gorm.DB) (int64, error)
}
