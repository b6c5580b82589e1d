package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

const (
	// StatusPending is the initial state of every redemption.
	StatusPending = "pendente"
	// StatusApproved means an admin confirmed the redemption.
	StatusApproved = "aprovado"
	// StatusDelivered means the prize reached the customer. Terminal.
	StatusDelivered = "entregue"
	// StatusCancelled refunds the points and restores stock. Terminal.
	StatusCancelled = "cancelado"
)

// Redemption records a customer spending points on a prize. Points and the
// prize name are denormalized so history survives catalog edits.
type Redemption struct {
	ID          snowflake.ID `gorm:"primaryKey" json:"id"`
	CustomerID  snowflake.ID `gorm:"column:cliente_id;not null;index" json:"cliente_id"`
	PrizeID     snowflake.ID `gorm:"column:premio_id;not null;index" json:"premio_id"`
	PrizeName   string       `gorm:"column:nome_premio;not null" json:"nome_premio"`
	PointsSpent int          `gorm:"column:pontos_gastos;not null" json:"pontos_gastos"`
	Status      string       `gorm:"column:status;not null;index;default:pendente" json:"status"`
	Notes       string       `gorm:"column:observacoes;type:text" json:"observacoes,omitempty"`
	CreatedAt   time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt   time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (Redemption) TableName() string { return "resgates" }

// CanTransitionTo enforces the redemption lifecycle:
// pendente -> aprovado -> entregue, with cancellation allowed while not
// delivered.
func (r *Redemption) CanTransitionTo(status string) bool {
	switch r.Status {
	case StatusPending:
		return status == StatusApproved || status == StatusCancelled
	case StatusApproved:
		return status == StatusDelivered || status == StatusCancelled
	default:
		return false
	}
}
