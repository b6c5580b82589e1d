package domain

import (
	"context"
	"errors"
	"time"
)

// Service handles prize redemptions and their lifecycle. Redeem debits the
// customer and reserves stock atomically; Cancel undoes both.
type Service interface {
	Redeem(ctx context.Context, req RedeemRequest) (*Response, error)
	Approve(ctx context.Context, id string) (*Response, error)
	Deliver(ctx context.Context, id string) (*Response, error)
	Cancel(ctx context.Context, id string, reason string) (*Response, error)
	Get(ctx context.Context, id string) (*Response, error)
	List(ctx context.Context, req ListRequest) ([]Response, error)
}

type RedeemRequest struct {
	CustomerID string `json:"cliente_id"`
	PrizeID    string `json:"premio_id"`
	Notes      string `json:"observacoes"`
}

type ListRequest struct {
	CustomerID string
	Status     string
}

type Response struct {
	ID          string    `json:"id"`
	CustomerID  string    `json:"cliente_id"`
	PrizeID     string    `json:"premio_id"`
	PrizeName   string    `json:"nome_premio"`
	PointsSpent int       `json:"pontos_gastos"`
	Status      string    `json:"status"`
	Notes       string    `json:"observacoes,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

var (
	ErrInvalidCustomer   = errors.New("invalid_customer")
	ErrInvalidPrize      = errors.New("invalid_prize")
	ErrInvalidID         = errors.New("invalid_id")
	ErrNotFound          = errors.New("not_found")
	ErrPrizeInactive     = errors.New("prize_inactive")
	ErrOutOfStock        = errors.New("out_of_stock")
	ErrInvalidTransition = errors.New("invalid_status_transition")
)
