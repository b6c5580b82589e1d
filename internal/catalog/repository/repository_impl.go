package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/unitycompany/fidelidade-fast/internal/catalog/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Create(ctx context.Context, db *gorm.DB, product *domain.EligibleProduct) error {
	return db.WithContext(ctx).Create(product).Error
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, product *domain.EligibleProduct) error {
	if product == nil {
		return gorm.ErrInvalidData
	}
	return db.WithContext(ctx).Save(product).Error
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, id int64) error {
	return db.WithContext(ctx).Where("id = ?", id).Delete(&domain.EligibleProduct{}).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id int64) (*domain.EligibleProduct, error) {
	var p domain.EligibleProduct
	err := db.WithContext(ctx).Where("id = ?", id).First(&p).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (r *repo) FindByCode(ctx context.Context, db *gorm.DB, code string) (*domain.EligibleProduct, error) {
	var p domain.EligibleProduct
	err := db.WithContext(ctx).Where("upper(codigo) = ?", strings.ToUpper(code)).First(&p).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (r *repo) FindAll(ctx context.Context, db *gorm.DB) ([]domain.EligibleProduct, error) {
	var items []domain.EligibleProduct
	err := db.WithContext(ctx).Order("pontos_por_real DESC").Order("categoria ASC").Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repo) FindActive(ctx context.Context, db *gorm.DB) ([]domain.EligibleProduct, error) {
	var items []domain.EligibleProduct
	err := db.WithContext(ctx).Where("ativa = ?", true).Order("nome ASC").Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repo) Count(ctx context.Context, db *gorm.DB) (int64, error) {
	var count int64
	err := db.WithContext(ctx).Model(&domain.EligibleProduct{}).Count(&count).Error
	return count, err
}
