package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/unitycompany/fidelidade-fast/internal/cache"
	"github.com/unitycompany/fidelidade-fast/internal/catalog/domain"
	"github.com/unitycompany/fidelidade-fast/internal/clock"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	activeProductsKey = "active_products"
	activeProductsTTL = 5 * time.Minute
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
	cache cache.Cache[string, map[string]domain.EligibleProduct]
}

func New(p Params) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("catalog.service"),
		repo:  p.Repo,
		genID: p.GenID,
		clk:   p.Clock,
		cache: cache.NewTTLCacheWithNow[string, map[string]domain.EligibleProduct](p.Clock.Now),
	}
}

// ActiveProducts returns the active catalog keyed by uppercase code. Results
// are cached for five minutes; on store failure the hardcoded fallback table
// is returned so matching always has a catalog to work with.
func (s *Service) ActiveProducts(ctx context.Context) (map[string]domain.EligibleProduct, error) {
	if cached, ok := s.cache.Get(activeProductsKey); ok {
		return cached, nil
	}

	items, err := s.repo.FindActive(ctx, s.db)
	if err != nil {
		s.log.Warn("catalog fetch failed, serving fallback table", zap.Error(err))
		return indexByCode(domain.DefaultProducts()), nil
	}

	products := indexByCode(items)
	s.cache.Set(activeProductsKey, products, activeProductsTTL)
	return products, nil
}

func (s *Service) List(ctx context.Context, req domain.ListRequest) ([]domain.Response, error) {
	var items []domain.EligibleProduct
	var err error
	if req.Active != nil && *req.Active {
		items, err = s.repo.FindActive(ctx, s.db)
	} else {
		items, err = s.repo.FindAll(ctx, s.db)
	}
	if err != nil {
		return nil, err
	}

	resp := make([]domain.Response, 0, len(items))
	for _, item := range items {
		if req.Active != nil && item.Active != *req.Active {
			continue
		}
		resp = append(resp, toResponse(&item))
	}
	return resp, nil
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Response, error) {
	item, err := s.findByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := toResponse(item)
	return &resp, nil
}

func (s *Service) Create(ctx context.Context, req domain.CreateRequest) (*domain.Response, error) {
	code := strings.ToUpper(strings.TrimSpace(req.Code))
	if code == "" {
		return nil, domain.ErrInvalidCode
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, domain.ErrInvalidName
	}
	if req.PointsPerReal < 0 {
		return nil, domain.ErrInvalidPoints
	}

	existing, err := s.repo.FindByCode(ctx, s.db, code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicateCode
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}

	now := s.clk.Now()
	p := &domain.EligibleProduct{
		ID:            s.genID.Generate(),
		Code:          code,
		Name:          name,
		PointsPerReal: req.PointsPerReal,
		Category:      strings.TrimSpace(req.Category),
		Description:   strings.TrimSpace(req.Description),
		Active:        active,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.repo.Create(ctx, s.db, p); err != nil {
		return nil, err
	}
	s.invalidate()

	resp := toResponse(p)
	return &resp, nil
}

func (s *Service) Update(ctx context.Context, req domain.UpdateRequest) (*domain.Response, error) {
	item, err := s.findByID(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, domain.ErrInvalidName
		}
		item.Name = name
	}
	if req.PointsPerReal != nil {
		if *req.PointsPerReal < 0 {
			return nil, domain.ErrInvalidPoints
		}
		item.PointsPerReal = *req.PointsPerReal
	}
	if req.Category != nil {
		item.Category = strings.TrimSpace(*req.Category)
	}
	if req.Description != nil {
		item.Description = strings.TrimSpace(*req.Description)
	}
	if req.Active != nil {
		item.Active = *req.Active
	}

	item.UpdatedAt = s.clk.Now()
	if err := s.repo.Update(ctx, s.db, item); err != nil {
		return nil, err
	}
	s.invalidate()

	resp := toResponse(item)
	return &resp, nil
}

func (s *Service) Deactivate(ctx context.Context, id string) (*domain.Response, error) {
	return s.setActive(ctx, id, false)
}

func (s *Service) Reactivate(ctx context.Context, id string) (*domain.Response, error) {
	return s.setActive(ctx, id, true)
}

// Delete removes a product permanently. The normal lifecycle is the active
// toggle; hard delete is an explicit admin action.
func (s *Service) Delete(ctx context.Context, id string) error {
	item, err := s.findByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, s.db, item.ID.Int64()); err != nil {
		return err
	}
	s.invalidate()
	return nil
}

func (s *Service) setActive(ctx context.Context, id string, active bool) (*domain.Response, error) {
	item, err := s.findByID(ctx, id)
	if err != nil {
		return nil, err
	}

	item.Active = active
	item.UpdatedAt = s.clk.Now()
	if err := s.repo.Update(ctx, s.db, item); err != nil {
		return nil, err
	}
	s.invalidate()

	resp := toResponse(item)
	return &resp, nil
}

func (s *Service) findByID(ctx context.Context, id string) (*domain.EligibleProduct, error) {
	productID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return nil, domain.ErrInvalidID
	}
	item, err := s.repo.FindByID(ctx, s.db, productID.Int64())
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	return item, nil
}

func (s *Service) invalidate() {
	s.cache.Delete(activeProductsKey)
}

func indexByCode(items []domain.EligibleProduct) map[string]domain.EligibleProduct {
	products := make(map[string]domain.EligibleProduct, len(items))
	for _, item := range items {
		if !item.Active {
			continue
		}
		products[strings.ToUpper(item.Code)] = item
	}
	return products
}

func toResponse(p *domain.EligibleProduct) domain.Response {
	return domain.Response{
		ID:            p.ID.String(),
		Code:          p.Code,
		Name:          p.Name,
		PointsPerReal: p.PointsPerReal,
		Category:      p.Category,
		Description:   p.Description,
		Active:        p.Active,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}
