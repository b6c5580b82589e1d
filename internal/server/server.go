package server

import (
	"context"
	"net/http"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/unitycompany/fidelidade-fast/internal/catalog"
	catalogdomain "github.com/unitycompany/fidelidade-fast/internal/catalog/domain"
	"github.com/unitycompany/fidelidade-fast/internal/config"
	"github.com/unitycompany/fidelidade-fast/internal/customer"
	customerdomain "github.com/unitycompany/fidelidade-fast/internal/customer/domain"
	"github.com/unitycompany/fidelidade-fast/internal/observability"
	"github.com/unitycompany/fidelidade-fast/internal/order"
	orderdomain "github.com/unitycompany/fidelidade-fast/internal/order/domain"
	"github.com/unitycompany/fidelidade-fast/internal/prize"
	prizedomain "github.com/unitycompany/fidelidade-fast/internal/prize/domain"
	"github.com/unitycompany/fidelidade-fast/internal/processing"
	"github.com/unitycompany/fidelidade-fast/internal/ratelimit"
	"github.com/unitycompany/fidelidade-fast/internal/redemption"
	redemptiondomain "github.com/unitycompany/fidelidade-fast/internal/redemption/domain"
	"github.com/unitycompany/fidelidade-fast/internal/vision"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var Module = fx.Module("http.server",
	fx.Provide(registerGin),
	catalog.Module,
	processing.Module,
	customer.Module,
	order.Module,
	prize.Module,
	redemption.Module,
	vision.Module,
	ratelimit.Module,
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

func NewEngine(log *zap.Logger, metrics *observability.Metrics) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(observability.RequestLogger(log))
	r.Use(observability.TracingMiddleware())
	r.Use(metrics.GinMiddleware())
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", metrics.Handler())

	return r
}

func registerGin(log *zap.Logger, metrics *observability.Metrics) *gin.Engine {
	return NewEngine(log, metrics)
}

func run(lc fx.Lifecycle, r *gin.Engine, cfg config.Config) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					panic(err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

type Server struct {
	engine        *gin.Engine
	cfg           config.Config
	db            *gorm.DB
	genID         *snowflake.Node
	catalogSvc    catalogdomain.Service
	customerSvc   customerdomain.Service
	orderSvc      orderdomain.Service
	prizeSvc      prizedomain.Service
	redemptionSvc redemptiondomain.Service
	visionSvc     vision.Provider
	uploadLimiter *ratelimit.UploadLimiter
	metrics       *observability.Metrics
}

type ServerParams struct {
	fx.In

	Gin           *gin.Engine
	Cfg           config.Config
	DB            *gorm.DB
	GenID         *snowflake.Node
	CatalogSvc    catalogdomain.Service
	CustomerSvc   customerdomain.Service
	OrderSvc      orderdomain.Service
	PrizeSvc      prizedomain.Service
	RedemptionSvc redemptiondomain.Service
	VisionSvc     vision.Provider
	UploadLimiter *ratelimit.UploadLimiter
	Metrics       *observability.Metrics
}

func NewServer(p ServerParams) *Server {
	svc := &Server{
		engine:        p.Gin,
		cfg:           p.Cfg,
		db:            p.DB,
		genID:         p.GenID,
		catalogSvc:    p.CatalogSvc,
		customerSvc:   p.CustomerSvc,
		orderSvc:      p.OrderSvc,
		prizeSvc:      p.PrizeSvc,
		redemptionSvc: p.RedemptionSvc,
		visionSvc:     p.VisionSvc,
		uploadLimiter: p.UploadLimiter,
		metrics:       p.Metrics,
	}
	svc.registerRoutes()
	return svc
}

func (s *Server) registerRoutes() {
	api := s.engine.Group("/api")

	orders := api.Group("/orders")
	orders.POST("/process", s.ProcessOrder)
	orders.POST("/upload", s.UploadOrder)
	orders.GET("", s.ListOrders)
	orders.GET("/:id", s.GetOrderByID)

	products := api.Group("/products")
	products.POST("", s.CreateProduct)
	products.GET("", s.ListProducts)
	products.GET("/:id", s.GetProductByID)
	products.PATCH("/:id", s.UpdateProduct)
	products.POST("/:id/deactivate", s.DeactivateProduct)
	products.POST("/:id/reactivate", s.ReactivateProduct)
	products.DELETE("/:id", s.DeleteProduct)

	prizes := api.Group("/prizes")
	prizes.POST("", s.CreatePrize)
	prizes.GET("", s.ListPrizes)
	prizes.GET("/:id", s.GetPrizeByID)
	prizes.PATCH("/:id", s.UpdatePrize)
	prizes.POST("/:id/stock", s.AdjustPrizeStock)
	prizes.POST("/:id/deactivate", s.DeactivatePrize)
	prizes.POST("/:id/reactivate", s.ReactivatePrize)
	prizes.DELETE("/:id", s.DeletePrize)

	redemptions := api.Group("/redemptions")
	redemptions.POST("", s.Redeem)
	redemptions.GET("", s.ListRedemptions)
	redemptions.GET("/:id", s.GetRedemptionByID)
	redemptions.POST("/:id/approve", s.ApproveRedemption)
	redemptions.POST("/:id/deliver", s.DeliverRedemption)
	redemptions.POST("/:id/cancel", s.CancelRedemption)

	customers := api.Group("/customers")
	customers.POST("", s.CreateCustomer)
	customers.GET("/:id", s.GetCustomerByID)
	customers.GET("/:id/transactions", s.ListCustomerTransactions)
}
