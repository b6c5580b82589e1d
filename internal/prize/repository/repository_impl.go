package repository

import (
	"context"
	"errors"

	"github.com/unitycompany/fidelidade-fast/internal/prize/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Create(ctx context.Context, db *gorm.DB, prize *domain.Prize) error {
	return db.WithContext(ctx).Create(prize).Error
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, prize *domain.Prize) error {
	if prize == nil {
		return gorm.ErrInvalidData
	}
	return db.WithContext(ctx).Save(prize).Error
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, id int64) error {
	return db.WithContext(ctx).Where("id = ?", id).Delete(&domain.Prize{}).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id int64) (*domain.Prize, error) {
	var p domain.Prize
	err := db.WithContext(ctx).Where("id = ?", id).First(&p).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (r *repo) FindByName(ctx context.Context, db *gorm.DB, name string) (*domain.Prize, error) {
	var p domain.Prize
	err := db.WithContext(ctx).Where("nome = ?", name).First(&p).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (r *repo) FindAll(ctx context.Context, db *gorm.DB, filter domain.ListRequest) ([]domain.Prize, error) {
	q := db.WithContext(ctx).Model(&domain.Prize{})
	if filter.Active != nil {
		q = q.Where("ativo = ?", *filter.Active)
	}
	if filter.Featured != nil {
		q = q.Where("destaque = ?", *filter.Featured)
	}
	if filter.Category != "" {
		q = q.Where("categoria = ?", filter.Category)
	}

	var items []domain.Prize
	err := q.Order("ordem_exibicao ASC").Order("pontos_necessarios ASC").Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repo) Count(ctx context.Context, db *gorm.DB) (int64, error) {
	var count int64
	err := db.WithContext(ctx).Model(&domain.Prize{}).Count(&count).Error
	return count, err
}
