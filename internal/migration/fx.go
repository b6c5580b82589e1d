package migration

import (
	"github.com/bwmarrin/snowflake"
	catalogdomain "github.com/unitycompany/fidelidade-fast/internal/catalog/domain"
	"github.com/unitycompany/fidelidade-fast/internal/config"
	customerdomain "github.com/unitycompany/fidelidade-fast/internal/customer/domain"
	orderdomain "github.com/unitycompany/fidelidade-fast/internal/order/domain"
	prizedomain "github.com/unitycompany/fidelidade-fast/internal/prize/domain"
	redemptiondomain "github.com/unitycompany/fidelidade-fast/internal/redemption/domain"
	"github.com/unitycompany/fidelidade-fast/internal/seed"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var Module = fx.Module("migrations",
	fx.Invoke(func(conn *gorm.DB, cfg config.Config, node *snowflake.Node) error {
		if cfg.DBType == "postgres" {
			sqlDB, err := conn.DB()
			if err != nil {
				return err
			}
			if err := RunMigrations(sqlDB); err != nil {
				return err
			}
		} else {
			// Versioned migrations target Postgres; other dialects are for
			// local development and tests.
			if err := conn.AutoMigrate(
				&catalogdomain.EligibleProduct{},
				&customerdomain.Customer{},
				&customerdomain.PointsTransaction{},
				&orderdomain.Order{},
				&orderdomain.OrderItem{},
				&prizedomain.Prize{},
				&redemptiondomain.Redemption{},
			); err != nil {
				return err
			}
		}

		if !cfg.SeedDefaults {
			return nil
		}
		if err := seed.EnsureDefaultProducts(conn, node); err != nil {
			return err
		}
		return seed.EnsureDefaultPrizes(conn, node)
	}),
)
