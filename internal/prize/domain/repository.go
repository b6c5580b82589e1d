package domain

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, db *gorm.DB, prize *Prize) error
	Update(ctx context.Context, db *gorm.DB, prize *Prize) error
	Delete(ctx context.Context, db *gorm.DB, id int64) error
	FindByID(ctx context.Context, db *gorm.DB, id int64) (*Prize, error)
	FindByName(ctx context.Context, db *gorm.DB, name string) (*Prize, error)
	FindAll(ctx context.Context, db *gorm.DB, filter ListRequest) ([]Prize, error)
	Count(ctx context.Context, db *gorm.DB) (int64, error)
}
