package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/unitycompany/fidelidade-fast/internal/clock"
	customerdomain "github.com/unitycompany/fidelidade-fast/internal/customer/domain"
	"github.com/unitycompany/fidelidade-fast/internal/order/domain"
	processingdomain "github.com/unitycompany/fidelidade-fast/internal/processing/domain"
	"github.com/unitycompany/fidelidade-fast/pkg/db"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB           *gorm.DB
	Log          *zap.Logger
	GenID        *snowflake.Node
	Clock        clock.Clock
	Repo         domain.Repository
	CustomerRepo customerdomain.Repository
	Processing   processingdomain.Service
}

type Service struct {
	db           *gorm.DB
	log          *zap.Logger
	repo         domain.Repository
	customerRepo customerdomain.Repository
	processing   processingdomain.Service
	genID        *snowflake.Node
	clk          clock.Clock
}

func New(p Params) domain.Service {
	return &Service{
		db:           p.DB,
		log:          p.Log.Named("order.service"),
		repo:         p.Repo,
		customerRepo: p.CustomerRepo,
		processing:   p.Processing,
		genID:        p.GenID,
		clk:          p.Clock,
	}
}

func (s *Service) ProcessInvoice(ctx context.Context, req domain.ProcessRequest) (*domain.ProcessResult, error) {
	customerID, err := snowflake.ParseString(strings.TrimSpace(req.CustomerID))
	if err != nil {
		return nil, domain.ErrInvalidCustomer
	}

	customer, err := s.customerRepo.FindByID(ctx, s.db, customerID.Int64())
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrInvalidCustomer
	}

	normalized := s.processing.Normalize(ctx, req.Payload)
	validation := s.processing.Validate(normalized)

	status := domain.StatusProcessed
	if normalized.TotalPoints <= 0 {
		status = domain.StatusNoPoints
	}

	// Identical content under a different hash is surfaced, not rejected.
	var duplicateOfID string
	if normalized.ContentFingerprint != "" {
		prior, err := s.repo.FindByFingerprint(ctx, s.db, normalized.ContentFingerprint)
		if err != nil {
			return nil, err
		}
		if prior != nil {
			duplicateOfID = prior.ID.String()
			s.log.Warn("invoice content already processed",
				zap.String("customer_id", req.CustomerID),
				zap.String("duplicate_of_id", duplicateOfID),
				zap.String("fingerprint", normalized.ContentFingerprint),
			)
		}
	}

	now := s.clk.Now()
	order := &domain.Order{
		ID:                 s.genID.Generate(),
		CustomerID:         customer.ID,
		OrderNumber:        normalized.OrderNumber,
		IssueDate:          normalized.OrderDate,
		TotalValue:         normalized.TotalValue,
		DocumentHash:       normalized.DocumentHash,
		ContentFingerprint: normalized.ContentFingerprint,
		PointsGenerated:    normalized.TotalPoints,
		Status:             status,
		CreatedAt:          now,
	}

	var balance *customerdomain.Response
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.repo.Create(ctx, tx, order); err != nil {
			if db.IsDuplicateKeyErr(err) {
				return domain.ErrDuplicateHash
			}
			return err
		}

		items := make([]domain.OrderItem, 0, len(normalized.Items))
		for _, it := range normalized.Items {
			items = append(items, domain.OrderItem{
				ID:          s.genID.Generate(),
				OrderID:     order.ID,
				ProductName: it.ProductName,
				ProductCode: it.ProductCode,
				Quantity:    it.Quantity,
				UnitPrice:   it.UnitPrice,
				TotalValue:  it.TotalValue,
				Points:      it.Points,
				Category:    it.Category,
			})
		}
		if err := s.repo.CreateItems(ctx, tx, items); err != nil {
			return err
		}

		if normalized.TotalPoints <= 0 {
			return nil
		}

		c, err := s.customerRepo.FindByID(ctx, tx, customer.ID.Int64())
		if err != nil {
			return err
		}
		if c == nil {
			return domain.ErrInvalidCustomer
		}
		c.Credit(normalized.TotalPoints)
		c.UpdatedAt = s.clk.Now()
		if err := s.customerRepo.Update(ctx, tx, c); err != nil {
			return err
		}
		trx := &customerdomain.PointsTransaction{
			ID:         s.genID.Generate(),
			CustomerID: c.ID,
			Type:       customerdomain.TransactionCredit,
			Points:     normalized.TotalPoints,
			Reason:     "Pedido " + normalized.OrderNumber,
			CreatedAt:  s.clk.Now(),
		}
		if err := s.customerRepo.CreateTransaction(ctx, tx, trx); err != nil {
			return err
		}

		balance = customerResponse(c)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("invoice processed",
		zap.String("order_id", order.ID.String()),
		zap.String("customer_id", req.CustomerID),
		zap.String("order_number", normalized.OrderNumber),
		zap.Int("points", normalized.TotalPoints),
		zap.String("status", status),
	)

	return &domain.ProcessResult{
		OrderID:       order.ID.String(),
		Order:         normalized,
		Validation:    validation,
		Status:        status,
		Balance:       balance,
		DuplicateOfID: duplicateOfID,
	}, nil
}

func (s *Service) List(ctx context.Context, customerID string) ([]domain.Response, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(customerID))
	if err != nil {
		return nil, domain.ErrInvalidCustomer
	}

	orders, err := s.repo.FindByCustomer(ctx, s.db, id.Int64())
	if err != nil {
		return nil, err
	}

	resp := make([]domain.Response, 0, len(orders))
	for i := range orders {
		resp = append(resp, toResponse(&orders[i], nil))
	}
	return resp, nil
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Response, error) {
	orderID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return nil, domain.ErrInvalidID
	}

	order, err := s.repo.FindByID(ctx, s.db, orderID.Int64())
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}

	items, err := s.repo.FindItems(ctx, s.db, order.ID.Int64())
	if err != nil {
		return nil, err
	}

	resp := toResponse(order, items)
	return &resp, nil
}

func toResponse(o *domain.Order, items []domain.OrderItem) domain.Response {
	return domain.Response{
		ID:                 o.ID.String(),
		CustomerID:         o.CustomerID.String(),
		OrderNumber:        o.OrderNumber,
		IssueDate:          o.IssueDate,
		TotalValue:         o.TotalValue,
		DocumentHash:       o.DocumentHash,
		ContentFingerprint: o.ContentFingerprint,
		PointsGenerated:    o.PointsGenerated,
		Status:             o.Status,
		Items:              items,
		CreatedAt:          o.CreatedAt,
	}
}

func customerResponse(c *customerdomain.Customer) *customerdomain.Response {
	return &customerdomain.Response{
		ID:                c.ID.String(),
		Name:              c.Name,
		Email:             c.Email,
		Phone:             c.Phone,
		Document:          c.Document,
		PointsBalance:     c.PointsBalance,
		TotalPointsEarned: c.TotalPointsEarned,
		CreatedAt:         c.CreatedAt,
		UpdatedAt:         c.UpdatedAt,
	}
}
