package domain

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, db *gorm.DB, redemption *Redemption) error
	Update(ctx context.Context, db *gorm.DB, redemption *Redemption) error
	FindByID(ctx context.Context, db *gorm.DB, id int64) (*Redemption, error)
	FindAll(ctx context.Context, db *gorm.DB, filter ListRequest) ([]Redemption, error)
}
