package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"
	catalogdomain "github.com/unitycompany/fidelidade-fast/internal/catalog/domain"
)

func defaultCatalog() map[string]catalogdomain.EligibleProduct {
	products := make(map[string]catalogdomain.EligibleProduct)
	for _, p := range catalogdomain.DefaultProducts() {
		products[p.Code] = p
	}
	return products
}

func TestMatchExactCode(t *testing.T) {
	products := defaultCatalog()

	got := Match("placa_st", "produto qualquer", products)
	assert.NotNil(t, got)
	assert.Equal(t, "PLACA_ST", got.Code)

	got = Match("  Placomix  ", "", products)
	assert.NotNil(t, got)
	assert.Equal(t, "PLACOMIX", got.Code)
}

func TestMatchSubstringName(t *testing.T) {
	products := defaultCatalog()

	got := Match("", "PLACA GLASROC X 12,5MM", products)
	assert.NotNil(t, got)
	assert.Equal(t, "PLACA_GLASROC_X", got.Code)
}

func TestMatchCategoryKeywords(t *testing.T) {
	products := defaultCatalog()

	tests := []struct {
		name     string
		input    string
		wantCode string
	}{
		{"placa st by keywords", "CHAPA PLACA ST 13-1.80 M", "PLACA_ST"},
		{"placa ru", "PLACA RU 12.5 RESISTENTE UMIDADE", "PLACA_RU"},
		{"placomix", "MASSA DRYWALL-25 KG-PLACOMIX", "PLACOMIX"},
		{"malha glasroc", "MALHA TELADA GLASROC X ROLO", "MALHA_GLASROC_X"},
		{"basecoat", "BASECOAT MASSA JUNTAS 20KG", "BASECOAT_GLASROC_X"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Match("", tt.input, products)
			if assert.NotNil(t, got) {
				assert.Equal(t, tt.wantCode, got.Code)
			}
		})
	}
}

func TestMatchStExcludesRuAndGlasroc(t *testing.T) {
	products := defaultCatalog()

	// RU wins over ST when both tokens appear.
	got := Match("", "PLACA DRYWALL ST RU", products)
	if assert.NotNil(t, got) {
		assert.Equal(t, "PLACA_RU", got.Code)
	}
}

func TestMatchKeywordOverlapForCustomCategory(t *testing.T) {
	products := map[string]catalogdomain.EligibleProduct{
		"PERFIL_F530": {
			Code:          "PERFIL_F530",
			Name:          "Perfil Drywall F530",
			PointsPerReal: 1.0,
			Category:      "perfis",
			Active:        true,
		},
	}

	got := Match("", "PERFIL F530 GALVANIZADO 3M", products)
	if assert.NotNil(t, got) {
		assert.Equal(t, "PERFIL_F530", got.Code)
	}
}

func TestMatchNoMatch(t *testing.T) {
	products := defaultCatalog()

	assert.Nil(t, Match("", "PARAFUSO DRYWALL 13-AGULHA", products))
	assert.Nil(t, Match("", "", products))
	assert.Nil(t, Match("XYZ", "FITA CREPE", products))
}

func TestMatchDeterministic(t *testing.T) {
	products := defaultCatalog()

	first := Match("", "PLACA GLASROC X", products)
	for i := 0; i < 50; i++ {
		got := Match("", "PLACA GLASROC X", products)
		if assert.NotNil(t, got) {
			assert.Equal(t, first.Code, got.Code)
		}
	}
}
