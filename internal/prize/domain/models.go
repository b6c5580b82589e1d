package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

const (
	CategoryTools    = "ferramentas"
	CategoryVoucher  = "vale_compras"
	CategoryGiveaway = "brindes"
)

// Prize is a redeemable reward in the catalog. Stock is tracked per prize
// unless StockUnlimited is set, in which case StockAvailable is ignored.
type Prize struct {
	ID             snowflake.ID `gorm:"primaryKey" json:"id"`
	Name           string       `gorm:"column:nome;not null;uniqueIndex" json:"nome"`
	Description    string       `gorm:"column:descricao;type:text" json:"descricao"`
	Category       string       `gorm:"column:categoria;not null;index" json:"categoria"`
	PointsRequired int          `gorm:"column:pontos_necessarios;not null" json:"pontos_necessarios"`
	EstimatedValue float64      `gorm:"column:valor_estimado;not null;default:0" json:"valor_estimado"`
	StockAvailable int          `gorm:"column:estoque_disponivel;not null;default:0" json:"estoque_disponivel"`
	StockUnlimited bool         `gorm:"column:estoque_ilimitado;not null;default:false" json:"estoque_ilimitado"`
	Active         bool         `gorm:"column:ativo;not null;default:true" json:"ativo"`
	Featured       bool         `gorm:"column:destaque;not null;default:false" json:"destaque"`
	DisplayOrder   int          `gorm:"column:ordem_exibicao;not null;default:0" json:"ordem_exibicao"`
	ImageURL       string       `gorm:"column:imagem_url;type:text" json:"imagem_url,omitempty"`
	CreatedAt      time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt      time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (Prize) TableName() string { return "premios_catalogo" }

// InStock reports whether at least one unit can be redeemed.
func (p *Prize) InStock() bool {
	return p.StockUnlimited || p.StockAvailable > 0
}

// DefaultPrizes is the initial catalog loaded when the table is empty.
func DefaultPrizes() []Prize {
	return []Prize{
		{
			Name:           "Nível Laser",
			Description:    "Nível laser profissional",
			Category:       CategoryTools,
			PointsRequired: 10000,
			EstimatedValue: 500.00,
			StockAvailable: 5,
			Active:         true,
			Featured:       true,
			DisplayOrder:   1,
		},
		{
			Name:           "Parafusadeira",
			Description:    "Parafusadeira elétrica profissional",
			Category:       CategoryTools,
			PointsRequired: 5000,
			EstimatedValue: 300.00,
			StockAvailable: 8,
			Active:         true,
			Featured:       true,
			DisplayOrder:   2,
		},
		{
			Name:           "Trena Digital",
			Description:    "Trena digital de precisão",
			Category:       CategoryTools,
			PointsRequired: 3000,
			EstimatedValue: 200.00,
			StockAvailable: 10,
			Active:         true,
			Featured:       true,
			DisplayOrder:   3,
		},
		{
			Name:           "Kit Brocas SDS (5 unid.)",
			Description:    "Kit com 5 brocas SDS profissionais",
			Category:       CategoryTools,
			PointsRequired: 1500,
			EstimatedValue: 80.00,
			StockAvailable: 15,
			Active:         true,
			DisplayOrder:   4,
		},
		{
			Name:           "Vale-compras em produtos Fast",
			Description:    "Vale para compra de produtos Fast Sistemas",
			Category:       CategoryVoucher,
			PointsRequired: 2000,
			EstimatedValue: 100.00,
			StockUnlimited: true,
			Active:         true,
			Featured:       true,
			DisplayOrder:   5,
		},
		{
			Name:           "Camiseta personalizada Fast",
			Description:    "Camiseta personalizada com logo Fast Sistemas",
			Category:       CategoryGiveaway,
			PointsRequired: 1000,
			EstimatedValue: 50.00,
			StockAvailable: 50,
			Active:         true,
			DisplayOrder:   6,
		},
		{
			Name:           "Boné Fast",
			Description:    "Boné com logo Fast Sistemas",
			Category:       CategoryGiveaway,
			PointsRequired: 800,
			EstimatedValue: 40.00,
			StockAvailable: 60,
			Active:         true,
			DisplayOrder:   7,
		},
	}
}
