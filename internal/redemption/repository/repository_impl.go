package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/unitycompany/fidelidade-fast/internal/redemption/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Create(ctx context.Context, db *gorm.DB, redemption *domain.Redemption) error {
	return db.WithContext(ctx).Create(redemption).Error
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, redemption *domain.Redemption) error {
	if redemption == nil {
		return gorm.ErrInvalidData
	}
	return db.WithContext(ctx).Save(redemption).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id int64) (*domain.Redemption, error) {
	var rd domain.Redemption
	err := db.WithContext(ctx).Where("id = ?", id).First(&rd).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rd, nil
}

func (r *repo) FindAll(ctx context.Context, db *gorm.DB, filter domain.ListRequest) ([]domain.Redemption, error) {
	q := db.WithContext(ctx).Model(&domain.Redemption{})
	if trimmed := strings.TrimSpace(filter.CustomerID); trimmed != "" {
		id, err := snowflake.ParseString(trimmed)
		if err != nil {
			return nil, domain.ErrInvalidCustomer
		}
		q = q.Where("cliente_id = ?", id.Int64())
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}

	var items []domain.Redemption
	err := q.Order("created_at DESC").Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}
