package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

type Customer struct {
	ID                snowflake.ID      `gorm:"primaryKey" json:"id"`
	Name              string            `gorm:"column:nome;not null" json:"nome"`
	Email             string            `gorm:"column:email;not null;uniqueIndex" json:"email"`
	Phone             string            `gorm:"column:telefone" json:"telefone,omitempty"`
	Document          string            `gorm:"column:cpf_cnpj" json:"cpf_cnpj,omitempty"`
	PointsBalance     int               `gorm:"column:saldo_pontos;not null;default:0" json:"saldo_pontos"`
	TotalPointsEarned int               `gorm:"column:total_pontos_ganhos;not null;default:0" json:"total_pontos_ganhos"`
	Metadata          datatypes.JSONMap `gorm:"type:jsonb" json:"metadata,omitempty"`
	CreatedAt         time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt         time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (Customer) TableName() string { return "clientes" }

// Credit adds earned points to the current balance and the lifetime total.
func (c *Customer) Credit(points int) {
	c.PointsBalance += points
	c.TotalPointsEarned += points
}

// Debit removes points from the current balance only; the lifetime total is
// a historical figure and never decreases.
func (c *Customer) Debit(points int) error {
	if points > c.PointsBalance {
		return ErrInsufficientBalance
	}
	c.PointsBalance -= points
	return nil
}

const (
	TransactionCredit = "credito"
	TransactionDebit  = "debito"
)

// PointsTransaction is the audit trail for every balance movement.
type PointsTransaction struct {
	ID         snowflake.ID `gorm:"primaryKey" json:"id"`
	CustomerID snowflake.ID `gorm:"column:cliente_id;not null;index" json:"cliente_id"`
	Type       string       `gorm:"column:tipo;type:text;not null" json:"tipo"`
	Points     int          `gorm:"column:pontos;not null" json:"pontos"`
	Reason     string       `gorm:"column:motivo;type:text" json:"motivo"`
	CreatedAt  time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

func (PointsTransaction) TableName() string { return "transacoes_pontos" }
