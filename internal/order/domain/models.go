package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

const (
	// StatusProcessed marks an order that generated points.
	StatusProcessed = "processado"
	// StatusNoPoints marks an order processed without eligible products.
	StatusNoPoints = "sem_pontos"
)

// Order is a persisted processed invoice.
type Order struct {
	ID                 snowflake.ID `gorm:"primaryKey" json:"id"`
	CustomerID         snowflake.ID `gorm:"column:cliente_id;not null;index" json:"cliente_id"`
	OrderNumber        string       `gorm:"column:numero_pedido;type:text;not null" json:"numero_pedido"`
	IssueDate          string       `gorm:"column:data_emissao;type:text;not null" json:"data_emissao"`
	TotalValue         float64      `gorm:"column:valor_total;not null" json:"valor_total"`
	DocumentHash       string       `gorm:"column:hash_documento;type:text;not null;uniqueIndex" json:"hash_documento"`
	ContentFingerprint string       `gorm:"column:fingerprint;type:text;index" json:"fingerprint"`
	PointsGenerated    int          `gorm:"column:pontos_gerados;not null;default:0" json:"pontos_gerados"`
	Status             string       `gorm:"column:status;type:text;not null" json:"status"`
	CreatedAt          time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

func (Order) TableName() string { return "pedidos_vendas" }

// OrderItem is a persisted eligible line of a processed invoice.
type OrderItem struct {
	ID          snowflake.ID `gorm:"primaryKey" json:"id"`
	OrderID     snowflake.ID `gorm:"column:pedido_id;not null;index" json:"pedido_id"`
	ProductName string       `gorm:"column:nome_produto;type:text;not null" json:"nome_produto"`
	ProductCode string       `gorm:"column:codigo_produto;type:text" json:"codigo_produto"`
	Quantity    int          `gorm:"column:quantidade;not null;default:1" json:"quantidade"`
	UnitPrice   float64      `gorm:"column:valor_unitario;not null;default:0" json:"valor_unitario"`
	TotalValue  float64      `gorm:"column:valor_total;not null;default:0" json:"valor_total"`
	Points      int          `gorm:"column:pontos_calculados;not null;default:0" json:"pontos_calculados"`
	Category    string       `gorm:"column:categoria;type:text" json:"categoria"`
	CreatedAt   time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

func (OrderItem) TableName() string { return "itens_pedido" }
