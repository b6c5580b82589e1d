package domain

import (
	"context"
	"errors"
	"time"
)

// Service manages the eligible-product catalog. ActiveProducts backs the
// matching pipeline and must never fail: on store errors it serves the
// hardcoded fallback table.
type Service interface {
	ActiveProducts(ctx context.Context) (map[string]EligibleProduct, error)
	List(ctx context.Context, req ListRequest) ([]Response, error)
	Get(ctx context.Context, id string) (*Response, error)
	Create(ctx context.Context, req CreateRequest) (*Response, error)
	Update(ctx context.Context, req UpdateRequest) (*Response, error)
	Deactivate(ctx context.Context, id string) (*Response, error)
	Reactivate(ctx context.Context, id string) (*Response, error)
	Delete(ctx context.Context, id string) error
}

type ListRequest struct {
	Active *bool
}

type CreateRequest struct {
	Code          string  `json:"codigo"`
	Name          string  `json:"nome"`
	PointsPerReal float64 `json:"pontos_por_real"`
	Category      string  `json:"categoria"`
	Description   string  `json:"descricao"`
	Active        *bool   `json:"ativa"`
}

type UpdateRequest struct {
	ID            string   `json:"-"`
	Name          *string  `json:"nome"`
	PointsPerReal *float64 `json:"pontos_por_real"`
	Category      *string  `json:"categoria"`
	Description   *string  `json:"descricao"`
	Active        *bool    `json:"ativa"`
}

type Response struct {
	ID            string    `json:"id"`
	Code          string    `json:"codigo"`
	Name          string    `json:"nome"`
	PointsPerReal float64   `json:"pontos_por_real"`
	Category      string    `json:"categoria"`
	Description   string    `json:"descricao"`
	Active        bool      `json:"ativa"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

var (
	ErrInvalidCode   = errors.New("invalid_code")
	ErrInvalidName   = errors.New("invalid_name")
	ErrInvalidPoints = errors.New("invalid_points_per_real")
	ErrDuplicateCode = errors.New("duplicate_code")
	ErrInvalidID     = errors.New("invalid_id")
	ErrNotFound      = errors.New("not_found")
)
