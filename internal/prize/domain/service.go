package domain

import (
	"context"
	"errors"
	"time"
)

// Service manages the prize catalog shown to customers and edited by admins.
type Service interface {
	List(ctx context.Context, req ListRequest) ([]Response, error)
	Get(ctx context.Context, id string) (*Response, error)
	Create(ctx context.Context, req CreateRequest) (*Response, error)
	Update(ctx context.Context, req UpdateRequest) (*Response, error)
	AdjustStock(ctx context.Context, id string, delta int) (*Response, error)
	Deactivate(ctx context.Context, id string) (*Response, error)
	Reactivate(ctx context.Context, id string) (*Response, error)
	Delete(ctx context.Context, id string) error
}

type ListRequest struct {
	Active   *bool
	Featured *bool
	Category string
}

type CreateRequest struct {
	Name           string  `json:"nome"`
	Description    string  `json:"descricao"`
	Category       string  `json:"categoria"`
	PointsRequired int     `json:"pontos_necessarios"`
	EstimatedValue float64 `json:"valor_estimado"`
	StockAvailable int     `json:"estoque_disponivel"`
	StockUnlimited bool    `json:"estoque_ilimitado"`
	Featured       bool    `json:"destaque"`
	DisplayOrder   int     `json:"ordem_exibicao"`
	ImageURL       string  `json:"imagem_url"`
}

type UpdateRequest struct {
	ID             string   `json:"-"`
	Name           *string  `json:"nome"`
	Description    *string  `json:"descricao"`
	Category       *string  `json:"categoria"`
	PointsRequired *int     `json:"pontos_necessarios"`
	EstimatedValue *float64 `json:"valor_estimado"`
	StockAvailable *int     `json:"estoque_disponivel"`
	StockUnlimited *bool    `json:"estoque_ilimitado"`
	Featured       *bool    `json:"destaque"`
	DisplayOrder   *int     `json:"ordem_exibicao"`
	ImageURL       *string  `json:"imagem_url"`
}

type Response struct {
	ID             string    `json:"id"`
	Name           string    `json:"nome"`
	Description    string    `json:"descricao"`
	Category       string    `json:"categoria"`
	PointsRequired int       `json:"pontos_necessarios"`
	EstimatedValue float64   `json:"valor_estimado"`
	StockAvailable int       `json:"estoque_disponivel"`
	StockUnlimited bool      `json:"estoque_ilimitado"`
	Active         bool      `json:"ativo"`
	Featured       bool      `json:"destaque"`
	DisplayOrder   int       `json:"ordem_exibicao"`
	ImageURL       string    `json:"imagem_url,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

var (
	ErrInvalidName   = errors.New("invalid_name")
	ErrInvalidPoints = errors.New("invalid_points_required")
	ErrInvalidStock  = errors.New("invalid_stock")
	ErrDuplicateName = errors.New("duplicate_name")
	ErrInvalidID     = errors.New("invalid_id")
	ErrNotFound      = errors.New("not_found")
)
