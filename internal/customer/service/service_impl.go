package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/unitycompany/fidelidade-fast/internal/clock"
	"github.com/unitycompany/fidelidade-fast/internal/customer/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Clock clock.Clock
	Repo  domain.Repository
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	repo  domain.Repository
	genID *snowflake.Node
	clk   clock.Clock
}

func New(p Params) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("customer.service"),
		repo:  p.Repo,
		genID: p.GenID,
		clk:   p.Clock,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateRequest) (*domain.Response, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, domain.ErrInvalidName
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, domain.ErrInvalidEmail
	}

	existing, err := s.repo.FindByEmail(ctx, s.db, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicateEmail
	}

	now := s.clk.Now()
	c := &domain.Customer{
		ID:        s.genID.Generate(),
		Name:      name,
		Email:     email,
		Phone:     strings.TrimSpace(req.Phone),
		Document:  strings.TrimSpace(req.Document),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Create(ctx, s.db, c); err != nil {
		return nil, err
	}

	resp := toResponse(c)
	return &resp, nil
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Response, error) {
	customerID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return nil, domain.ErrInvalidID
	}
	c, err := s.repo.FindByID(ctx, s.db, customerID.Int64())
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	resp := toResponse(c)
	return &resp, nil
}

func (s *Service) AddPoints(ctx context.Context, customerID int64, points int, reason string) (*domain.Response, error) {
	if points <= 0 {
		return nil, domain.ErrInvalidPoints
	}

	var updated *domain.Customer
	err := s.db.Transaction(func(tx *gorm.DB) error {
		c, err := s.repo.FindByID(ctx, tx, customerID)
		if err != nil {
			return err
		}
		if c == nil {
			return domain.ErrNotFound
		}

		c.Credit(points)
		c.UpdatedAt = s.clk.Now()
		if err := s.repo.Update(ctx, tx, c); err != nil {
			return err
		}

		trx := &domain.PointsTransaction{
			ID:         s.genID.Generate(),
			CustomerID: c.ID,
			Type:       domain.TransactionCredit,
			Points:     points,
			Reason:     reason,
			CreatedAt:  s.clk.Now(),
		}
		if err := s.repo.CreateTransaction(ctx, tx, trx); err != nil {
			return err
		}

		updated = c
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("points credited",
		zap.Int64("customer_id", customerID),
		zap.Int("points", points),
		zap.String("reason", reason),
	)
	resp := toResponse(updated)
	return &resp, nil
}

func (s *Service) DebitPoints(ctx context.Context, customerID int64, points int, reason string) (*domain.Response, error) {
	if points <= 0 {
		return nil, domain.ErrInvalidPoints
	}

	var updated *domain.Customer
	err := s.db.Transaction(func(tx *gorm.DB) error {
		c, err := s.repo.FindByID(ctx, tx, customerID)
		if err != nil {
			return err
		}
		if c == nil {
			return domain.ErrNotFound
		}

		if err := c.Debit(points); err != nil {
			return err
		}
		c.UpdatedAt = s.clk.Now()
		if err := s.repo.Update(ctx, tx, c); err != nil {
			return err
		}

		trx := &domain.PointsTransaction{
			ID:         s.genID.Generate(),
			CustomerID: c.ID,
			Type:       domain.TransactionDebit,
			Points:     points,
			Reason:     reason,
			CreatedAt:  s.clk.Now(),
		}
		if err := s.repo.CreateTransaction(ctx, tx, trx); err != nil {
			return err
		}

		updated = c
		return nil
	})
	if err != nil {
		return nil, err
	}

	resp := toResponse(updated)
	return &resp, nil
}

func (s *Service) Transactions(ctx context.Context, customerID string) ([]domain.PointsTransaction, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(customerID))
	if err != nil {
		return nil, domain.ErrInvalidID
	}
	return s.repo.FindTransactions(ctx, s.db, id.Int64())
}

func toResponse(c *domain.Customer) domain.Response {
	return domain.Response{
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
