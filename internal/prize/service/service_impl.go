package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/unitycompany/fidelidade-fast/internal/clock"
	"github.com/unitycompany/fidelidade-fast/internal/prize/domain"
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
		log:   p.Log.Named("prize.service"),
		repo:  p.Repo,
		genID: p.GenID,
		clk:   p.Clock,
	}
}

func (s *Service) List(ctx context.Context, req domain.ListRequest) ([]domain.Response, error) {
	prizes, err := s.repo.FindAll(ctx, s.db, req)
	if err != nil {
		return nil, err
	}
	resp := make([]domain.Response, 0, len(prizes))
	for i := range prizes {
		resp = append(resp, toResponse(&prizes[i]))
	}
	return resp, nil
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Response, error) {
	p, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := toResponse(p)
	return &resp, nil
}

func (s *Service) Create(ctx context.Context, req domain.CreateRequest) (*domain.Response, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, domain.ErrInvalidName
	}
	if req.PointsRequired <= 0 {
		return nil, domain.ErrInvalidPoints
	}
	if req.StockAvailable < 0 {
		return nil, domain.ErrInvalidStock
	}

	existing, err := s.repo.FindByName(ctx, s.db, name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicateName
	}

	now := s.clk.Now()
	p := &domain.Prize{
		ID:             s.genID.Generate(),
		Name:           name,
		Description:    strings.TrimSpace(req.Description),
		Category:       strings.TrimSpace(req.Category),
		PointsRequired: req.PointsRequired,
		EstimatedValue: req.EstimatedValue,
		StockAvailable: req.StockAvailable,
		StockUnlimited: req.StockUnlimited,
		Active:         true,
		Featured:       req.Featured,
		DisplayOrder:   req.DisplayOrder,
		ImageURL:       strings.TrimSpace(req.ImageURL),
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.repo.Create(ctx, s.db, p); err != nil {
		return nil, err
	}

	s.log.Info("prize created",
		zap.String("prize_id", p.ID.String()),
		zap.String("name", p.Name),
		zap.Int("points_required", p.PointsRequired),
	)
	resp := toResponse(p)
	return &resp, nil
}

func (s *Service) Update(ctx context.Context, req domain.UpdateRequest) (*domain.Response, error) {
	p, err := s.find(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, domain.ErrInvalidName
		}
		if name != p.Name {
			existing, err := s.repo.FindByName(ctx, s.db, name)
			if err != nil {
				return nil, err
			}
			if existing != nil {
				return nil, domain.ErrDuplicateName
			}
		}
		p.Name = name
	}
	if req.Description != nil {
		p.Description = strings.TrimSpace(*req.Description)
	}
	if req.Category != nil {
		p.Category = strings.TrimSpace(*req.Category)
	}
	if req.PointsRequired != nil {
		if *req.PointsRequired <= 0 {
			return nil, domain.ErrInvalidPoints
		}
		p.PointsRequired = *req.PointsRequired
	}
	if req.EstimatedValue != nil {
		p.EstimatedValue = *req.EstimatedValue
	}
	if req.StockAvailable != nil {
		if *req.StockAvailable < 0 {
			return nil, domain.ErrInvalidStock
		}
		p.StockAvailable = *req.StockAvailable
	}
	if req.StockUnlimited != nil {
		p.StockUnlimited = *req.StockUnlimited
	}
	if req.Featured != nil {
		p.Featured = *req.Featured
	}
	if req.DisplayOrder != nil {
		p.DisplayOrder = *req.DisplayOrder
	}
	if req.ImageURL != nil {
		p.ImageURL = strings.TrimSpace(*req.ImageURL)
	}

	p.UpdatedAt = s.clk.Now()
	if err := s.repo.Update(ctx, s.db, p); err != nil {
		return nil, err
	}
	resp := toResponse(p)
	return &resp, nil
}

func (s *Service) AdjustStock(ctx context.Context, id string, delta int) (*domain.Response, error) {
	prizeID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return nil, domain.ErrInvalidID
	}

	var updated *domain.Prize
	err = s.db.Transaction(func(tx *gorm.DB) error {
		p, err := s.repo.FindByID(ctx, tx, prizeID.Int64())
		if err != nil {
			return err
		}
		if p == nil {
			return domain.ErrNotFound
		}
		if p.StockAvailable+delta < 0 {
			return domain.ErrInvalidStock
		}
		p.StockAvailable += delta
		p.UpdatedAt = s.clk.Now()
		if err := s.repo.Update(ctx, tx, p); err != nil {
			return err
		}
		updated = p
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("prize stock adjusted",
		zap.String("prize_id", id),
		zap.Int("delta", delta),
		zap.Int("stock", updated.StockAvailable),
	)
	resp := toResponse(updated)
	return &resp, nil
}

func (s *Service) Deactivate(ctx context.Context, id string) (*domain.Response, error) {
	return s.setActive(ctx, id, false)
}

func (s *Service) Reactivate(ctx context.Context, id string) (*domain.Response, error) {
	return s.setActive(ctx, id, true)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	p, err := s.find(ctx, id)
	if err != nil {
		return err
	}
	return s.repo.Delete(ctx, s.db, p.ID.Int64())
}

func (s *Service) setActive(ctx context.Context, id string, active bool) (*domain.Response, error) {
	p, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	p.Active = active
	p.UpdatedAt = s.clk.Now()
	if err := s.repo.Update(ctx, s.db, p); err != nil {
		return nil, err
	}
	resp := toResponse(p)
	return &resp, nil
}

func (s *Service) find(ctx context.Context, id string) (*domain.Prize, error) {
	prizeID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return nil, domain.ErrInvalidID
	}
	p, err := s.repo.FindByID(ctx, s.db, prizeID.Int64())
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	return p, nil
}

func toResponse(p *domain.Prize) domain.Response {
	return domain.Response{
		ID:             p.ID.String(),
		Name:           p.Name,
		Description:    p.Description,
		Category:       p.Category,
		PointsRequired: p.PointsRequired,
		EstimatedValue: p.EstimatedValue,
		StockAvailable: p.StockAvailable,
		StockUnlimited: p.StockUnlimited,
		Active:         p.Active,
		Featured:       p.Featured,
		DisplayOrder:   p.DisplayOrder,
		ImageURL:       p.ImageURL,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}
