package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Product categories used by the matching heuristics. Admin-created products
// may carry any other category string; those fall through to the generic
// keyword matcher.
const (
	CategoryPlacaST      = "placa_st"
	CategoryPlacaRU      = "placa_ru"
	CategoryGlasrocX     = "glasroc_x"
	CategoryPlacomix     = "placomix"
	CategoryMalhaGlasroc = "malha_glasroc"
	CategoryBasecoat     = "basecoat"
)

// EligibleProduct is a catalog entry that earns loyalty points when purchased.
// Code is the unique uppercase canonical key; only active entries participate
// in matching.
type EligibleProduct struct {
	ID            snowflake.ID `gorm:"primaryKey" json:"id"`
	Code          string       `gorm:"column:codigo;type:text;not null;uniqueIndex" json:"codigo"`
	Name          string       `gorm:"column:nome;type:text;not null" json:"nome"`
	PointsPerReal float64      `gorm:"column:pontos_por_real;not null" json:"pontos_por_real"`
	Category      string       `gorm:"column:categoria;type:text;not null" json:"categoria"`
	Description   string       `gorm:"column:descricao;type:text" json:"descricao"`
	Active        bool         `gorm:"column:ativa;not null;default:true" json:"ativa"`
	CreatedAt     time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt     time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (EligibleProduct) TableName() string { return "produtos_elegiveis" }

// DefaultProducts is the hardcoded fallback table used when the store is
// unreachable, and the seed source for an empty catalog. The six official
// program products with their fixed point rates.
func DefaultProducts() []EligibleProduct {
	return []EligibleProduct{
		{Code: "PLACA_ST", Name: "Placa ST", PointsPerReal: 0.5, Category: CategoryPlacaST, Description: "Placas ST para drywall - qualquer espessura", Active: true},
		{Code: "PLACA_RU", Name: "Placa RU", PointsPerReal: 1.0, Category: CategoryPlacaRU, Description: "Placas RU resistentes à umidade - qualquer espessura", Active: true},
		{Code: "PLACA_GLASROC_X", Name: "Placa Glasroc X", PointsPerReal: 2.0, Category: CategoryGlasrocX, Description: "Placas cimentícias Glasroc X para áreas úmidas", Active: true},
		{Code: "PLACOMIX", Name: "Placomix", PointsPerReal: 1.0, Category: CategoryPlacomix, Description: "Massa para rejunte e acabamento Placomix", Active: true},
		{Code: "MALHA_GLASROC_X", Name: "Malha telada para Glasroc X", PointsPerReal: 2.0, Category: CategoryMalhaGlasroc, Description: "Malha telada específica para uso com Glasroc X", Active: true},
		{Code: "BASECOAT_GLASROC_X", Name: "Basecoat (massa para Glasroc X)", PointsPerReal: 2.0, Category: CategoryBasecoat, Description: "Massa base específica para tratamento de juntas Glasroc X", Active: true},
	}
}
