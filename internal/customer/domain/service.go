package domain

import (
	"context"
	"errors"
	"time"
)

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Response, error)
	Get(ctx context.Context, id string) (*Response, error)
	// AddPoints credits a customer's balance and lifetime total, recording a
	// transaction. Safe to call inside an enclosing DB transaction via db.
	AddPoints(ctx context.Context, customerID int64, points int, reason string) (*Response, error)
	// DebitPoints removes points from the balance only; lifetime earned is
	// untouched. Fails with ErrInsufficientBalance when the balance is short.
	DebitPoints(ctx context.Context, customerID int64, points int, reason string) (*Response, error)
	Transactions(ctx context.Context, customerID string) ([]PointsTransaction, error)
}

type CreateRequest struct {
	Name     string `json:"nome"`
	Email    string `json:"email"`
	Phone    string `json:"telefone"`
	Document string `json:"cpf_cnpj"`
}

type Response struct {
	ID                string    `json:"id"`
	Name              string    `json:"nome"`
	Email             string    `json:"email"`
	Phone             string    `json:"telefone,omitempty"`
	Document          string    `json:"cpf_cnpj,omitempty"`
	PointsBalance     int       `json:"saldo_pontos"`
	TotalPointsEarned int       `json:"total_pontos_ganhos"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

var (
	ErrInvalidName         = errors.New("invalid_name")
	ErrInvalidEmail        = errors.New("invalid_email")
	ErrInvalidID           = errors.New("invalid_id")
	ErrInvalidPoints       = errors.New("invalid_points")
	ErrNotFound            = errors.New("not_found")
	ErrDuplicateEmail      = errors.New("duplicate_email")
	ErrInsufficientBalance = errors.New("insufficient_balance")
)
