// Package seed bootstraps the eligible-product and prize catalogs so a fresh
// install can process invoices immediately. Seeding is idempotent: a
// non-empty table is left alone.
package seed

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	catalogdomain "github.com/unitycompany/fidelidade-fast/internal/catalog/domain"
	prizedomain "github.com/unitycompany/fidelidade-fast/internal/prize/domain"
	"gorm.io/gorm"
)

// EnsureDefaultProducts inserts the fallback eligible-product table when no
// products exist yet.
func EnsureDefaultProducts(db *gorm.DB, node *snowflake.Node) error {
	if db == nil {
		return errors.New("seed database handle is required")
	}

	ctx := context.Background()
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&catalogdomain.EligibleProduct{}).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return nil
		}

		now := time.Now().UTC()
		products := catalogdomain.DefaultProducts()
		for i := range products {
			products[i].ID = node.Generate()
			products[i].CreatedAt = now
			products[i].UpdatedAt = now
		}
		return tx.Create(&products).Error
	})
}

// EnsureDefaultPrizes inserts the initial prize catalog when no prizes exist
// yet.
func EnsureDefaultPrizes(db *gorm.DB, node *snowflake.Node) error {
	if db == nil {
		return errors.New("seed database handle is required")
	}

	ctx := context.Background()
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&prizedomain.Prize{}).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return nil
		}

		now := time.Now().UTC()
		prizes := prizedomain.DefaultPrizes()
		for i := range prizes {
			prizes[i].ID = node.Generate()
			prizes[i].CreatedAt = now
			prizes[i].UpdatedAt = now
		}
		return tx.Create(&prizes).Error
	})
}
