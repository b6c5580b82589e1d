package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/unitycompany/fidelidade-fast/internal/clock"
	customerdomain "github.com/unitycompany/fidelidade-fast/internal/customer/domain"
	prizedomain "github.com/unitycompany/fidelidade-fast/internal/prize/domain"
	"github.com/unitycompany/fidelidade-fast/internal/redemption/domain"
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
	PrizeRepo    prizedomain.Repository
	CustomerRepo customerdomain.Repository
}

type Service struct {
	db           *gorm.DB
	log          *zap.Logger
	repo         domain.Repository
	prizeRepo    prizedomain.Repository
	customerRepo customerdomain.Repository
	genID        *snowflake.Node
	clk          clock.Clock
}

func New(p Params) domain.Service {
	return &Service{
		db:           p.DB,
		log:          p.Log.Named("redemption.service"),
		repo:         p.Repo,
		prizeRepo:    p.PrizeRepo,
		customerRepo: p.CustomerRepo,
		genID:        p.GenID,
		clk:          p.Clock,
	}
}

func (s *Service) Redeem(ctx context.Context, req domain.RedeemRequest) (*domain.Response, error) {
	customerID, err := snowflake.ParseString(strings.TrimSpace(req.CustomerID))
	if err != nil {
		return nil, domain.ErrInvalidCustomer
	}
	prizeID, err := snowflake.ParseString(strings.TrimSpace(req.PrizeID))
	if err != nil {
		return nil, domain.ErrInvalidPrize
	}

	var created *domain.Redemption
	err = s.db.Transaction(func(tx *gorm.DB) error {
		prize, err := s.prizeRepo.FindByID(ctx, tx, prizeID.Int64())
		if err != nil {
			return err
		}
		if prize == nil {
			return domain.ErrInvalidPrize
		}
		if !prize.Active {
			return domain.ErrPrizeInactive
		}
		if !prize.InStock() {
			return domain.ErrOutOfStock
		}

		customer, err := s.customerRepo.FindByID(ctx, tx, customerID.Int64())
		if err != nil {
			return err
		}
		if customer == nil {
			return domain.ErrInvalidCustomer
		}
		if err := customer.Debit(prize.PointsRequired); err != nil {
			return err
		}
		customer.UpdatedAt = s.clk.Now()
		if err := s.customerRepo.Update(ctx, tx, customer); err != nil {
			return err
		}
		trx := &customerdomain.PointsTransaction{
			ID:         s.genID.Generate(),
			CustomerID: customer.ID,
			Type:       customerdomain.TransactionDebit,
			Points:     prize.PointsRequired,
			Reason:     "Resgate: " + prize.Name,
			CreatedAt:  s.clk.Now(),
		}
		if err := s.customerRepo.CreateTransaction(ctx, tx, trx); err != nil {
			return err
		}

		if !prize.StockUnlimited {
			prize.StockAvailable--
			prize.UpdatedAt = s.clk.Now()
			if err := s.prizeRepo.Update(ctx, tx, prize); err != nil {
				return err
			}
		}

		now := s.clk.Now()
		rd := &domain.Redemption{
			ID:          s.genID.Generate(),
			CustomerID:  customer.ID,
			PrizeID:     prize.ID,
			PrizeName:   prize.Name,
			PointsSpent: prize.PointsRequired,
			Status:      domain.StatusPending,
			Notes:       strings.TrimSpace(req.Notes),
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := s.repo.Create(ctx, tx, rd); err != nil {
			return err
		}
		created = rd
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("prize redeemed",
		zap.String("redemption_id", created.ID.String()),
		zap.String("customer_id", req.CustomerID),
		zap.String("prize", created.PrizeName),
		zap.Int("points_spent", created.PointsSpent),
	)
	resp := toResponse(created)
	return &resp, nil
}

func (s *Service) Approve(ctx context.Context, id string) (*domain.Response, error) {
	return s.transition(ctx, id, domain.StatusApproved)
}

func (s *Service) Deliver(ctx context.Context, id string) (*domain.Response, error) {
	return s.transition(ctx, id, domain.StatusDelivered)
}

// Cancel refunds the spent points to the balance and restores bounded stock.
// The lifetime earned total is untouched.
func (s *Service) Cancel(ctx context.Context, id string, reason string) (*domain.Response, error) {
	redemptionID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return nil, domain.ErrInvalidID
	}

	var updated *domain.Redemption
	err = s.db.Transaction(func(tx *gorm.DB) error {
		rd, err := s.repo.FindByID(ctx, tx, redemptionID.Int64())
		if err != nil {
			return err
		}
		if rd == nil {
			return domain.ErrNotFound
		}
		if !rd.CanTransitionTo(domain.StatusCancelled) {
			return domain.ErrInvalidTransition
		}

		customer, err := s.customerRepo.FindByID(ctx, tx, rd.CustomerID.Int64())
		if err != nil {
			return err
		}
		if customer != nil {
			customer.PointsBalance += rd.PointsSpent
			customer.UpdatedAt = s.clk.Now()
			if err := s.customerRepo.Update(ctx, tx, customer); err != nil {
				return err
			}
			trx := &customerdomain.PointsTransaction{
				ID:         s.genID.Generate(),
				CustomerID: customer.ID,
				Type:       customerdomain.TransactionCredit,
				Points:     rd.PointsSpent,
				Reason:     "Estorno de resgate: " + rd.PrizeName,
				CreatedAt:  s.clk.Now(),
			}
			if err := s.customerRepo.CreateTransaction(ctx, tx, trx); err != nil {
				return err
			}
		}

		prize, err := s.prizeRepo.FindByID(ctx, tx, rd.PrizeID.Int64())
		if err != nil {
			return err
		}
		if prize != nil && !prize.StockUnlimited {
			prize.StockAvailable++
			prize.UpdatedAt = s.clk.Now()
			if err := s.prizeRepo.Update(ctx, tx, prize); err != nil {
				return err
			}
		}

		rd.Status = domain.StatusCancelled
		if reason = strings.TrimSpace(reason); reason != "" {
			rd.Notes = reason
		}
		rd.UpdatedAt = s.clk.Now()
		if err := s.repo.Update(ctx, tx, rd); err != nil {
			return err
		}
		updated = rd
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("redemption cancelled",
		zap.String("redemption_id", id),
		zap.Int("points_refunded", updated.PointsSpent),
	)
	resp := toResponse(updated)
	return &resp, nil
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Response, error) {
	redemptionID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return nil, domain.ErrInvalidID
	}
	rd, err := s.repo.FindByID(ctx, s.db, redemptionID.Int64())
	if err != nil {
		return nil, err
	}
	if rd == nil {
		return nil, domain.ErrNotFound
	}
	resp := toResponse(rd)
	return &resp, nil
}

func (s *Service) List(ctx context.Context, req domain.ListRequest) ([]domain.Response, error) {
	items, err := s.repo.FindAll(ctx, s.db, req)
	if err != nil {
		return nil, err
	}
	resp := make([]domain.Response, 0, len(items))
	for i := range items {
		resp = append(resp, toResponse(&items[i]))
	}
	return resp, nil
}

func (s *Service) transition(ctx context.Context, id string, status string) (*domain.Response, error) {
	redemptionID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return nil, domain.ErrInvalidID
	}

	var updated *domain.Redemption
	err = s.db.Transaction(func(tx *gorm.DB) error {
		rd, err := s.repo.FindByID(ctx, tx, redemptionID.Int64())
		if err != nil {
			return err
		}
		if rd == nil {
			return domain.ErrNotFound
		}
		if !rd.CanTransitionTo(status) {
			return domain.ErrInvalidTransition
		}
		rd.Status = status
		rd.UpdatedAt = s.clk.Now()
		if err := s.repo.Update(ctx, tx, rd); err != nil {
			return err
		}
		updated = rd
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("redemption status changed",
		zap.String("redemption_id", id),
		zap.String("status", status),
	)
	resp := toResponse(updated)
	return &resp, nil
}

func toResponse(rd *domain.Redemption) domain.Response {
	return domain.Response{
		ID:          rd.ID.String(),
		CustomerID:  rd.CustomerID.String(),
		PrizeID:     rd.PrizeID.String(),
		PrizeName:   rd.PrizeName,
		PointsSpent: rd.PointsSpent,
		Status:      rd.Status,
		Notes:       rd.Notes,
		CreatedAt:   rd.CreatedAt,
		UpdatedAt:   rd.UpdatedAt,
	}
}
