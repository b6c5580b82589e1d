package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	catalogdomain "github.com/unitycompany/fidelidade-fast/internal/catalog/domain"
	"github.com/unitycompany/fidelidade-fast/internal/clock"
	"go.uber.org/zap"
)

type catalogStub struct {
	products map[string]catalogdomain.EligibleProduct
	err      error
}

func (c *catalogStub) ActiveProducts(ctx context.Context) (map[string]catalogdomain.EligibleProduct, error) {
	if c.err != nil {
		return nil, c.err
	}
	return c.products, nil
}

func (c *catalogStub) List(ctx context.Context, req catalogdomain.ListRequest) ([]catalogdomain.Response, error) {
	return nil, nil
}

func (c *catalogStub) Get(ctx context.Context, id string) (*catalogdomain.Response, error) {
	return nil, nil
}

func (c *catalogStub) Create(ctx context.Context, req catalogdomain.CreateRequest) (*catalogdomain.Response, error) {
	return nil, nil
}

func (c *catalogStub) Update(ctx context.Context, req catalogdomain.UpdateRequest) (*catalogdomain.Response, error) {
	return nil, nil
}

func (c *catalogStub) Deactivate(ctx context.Context, id string) (*catalogdomain.Response, error) {
	return nil, nil
}

func (c *catalogStub) Reactivate(ctx context.Context, id string) (*catalogdomain.Response, error) {
	return nil, nil
}

func (c *catalogStub) Delete(ctx context.Context, id string) error {
	return nil
}

func defaultProducts() map[string]catalogdomain.EligibleProduct {
	products := make(map[string]catalogdomain.EligibleProduct)
	for _, p := range catalogdomain.DefaultProducts() {
		products[p.Code] = p
	}
	return products
}

func newTestService(clk clock.Clock, catalog catalogdomain.Service) *Service {
	return New(Params{
		Log:     zap.NewNop(),
		Clock:   clk,
		Catalog: catalog,
	}).(*Service)
}

func TestNormalizeNilPayload(t *testing.T) {
	clk := clock.NewFakeClock(time.Date(2024, 3, 20, 12, 0, 0, 0, time.UTC))
	svc := newTestService(clk, &catalogStub{products: defaultProducts()})

	order := svc.Normalize(context.Background(), nil)

	assert.True(t, order.NoEligibleProducts)
	assert.True(t, strings.HasPrefix(order.OrderNumber, "PEDIDO-"))
	assert.Equal(t, "2024-03-20", order.OrderDate)
	assert.Equal(t, "Cliente", order.Customer)
	assert.Equal(t, 0.01, order.TotalValue)
	assert.Empty(t, order.Items)
	assert.NotEmpty(t, order.DocumentHash)
	assert.NotEmpty(t, order.ContentFingerprint)
}

func TestNormalizeEmptyPayload(t *testing.T) {
	clk := clock.NewFakeClock(time.Date(2024, 3, 20, 12, 0, 0, 0, time.UTC))
	svc := newTestService(clk, &catalogStub{products: defaultProducts()})

	order := svc.Normalize(context.Background(), map[string]any{})

	assert.True(t, strings.HasPrefix(order.OrderNumber, "PEDIDO-"))
	assert.Equal(t, "2024-03-20", order.OrderDate)
	assert.Equal(t, 0.01, order.TotalValue)
	assert.True(t, order.NoEligibleProducts)
	assert.False(t, order.ProcessingError)
	assert.NotEmpty(t, order.DocumentHash)
	assert.Contains(t, order.Warnings, "número do pedido ausente, gerado automaticamente")
	assert.Contains(t, order.Warnings, "valor total ausente, ajustado para o mínimo")
}

func TestNormalizeRawProducts(t *testing.T) {
	clk := clock.NewFakeClock(time.Date(2024, 3, 20, 12, 0, 0, 0, time.UTC))
	svc := newTestService(clk, &catalogStub{products: defaultProducts()})

	payload := map[string]any{
		"numeroPedido": "FAST-001",
		"dataEmissao":  "2024-03-15",
		"cliente":      "Construtora Exemplo LTDA",
		"totalValue":   1649.03,
		"products": []any{
			map[string]any{
				"product_name": "PLACA ST 13-1.80 M",
				"product_code": "DW00057",
				"quantity":     35.0,
				"unit_price":   33.20,
				"total_value":  1162.00,
			},
			map[string]any{
				"product_name": "MASSA DRYWALL-25 KG-PLACOMIX",
				"product_code": "DW00078",
				"quantity":     2.0,
				"unit_price":   53.00,
				"total_value":  106.00,
			},
			map[string]any{
				"product_name": "PARAFUSO DRYWALL 13-AGULHA",
				"product_code": "FX00020",
				"quantity":     3.0,
				"unit_price":   4.97,
				"total_value":  14.91,
			},
		},
	}

	order := svc.Normalize(context.Background(), payload)

	assert.Equal(t, "FAST-001", order.OrderNumber)
	assert.Equal(t, "2024-03-15", order.OrderDate)
	assert.Equal(t, "Construtora Exemplo LTDA", order.Customer)
	assert.Equal(t, 1649.03, order.TotalValue)

	// PLACA ST at 0.5/real and Placomix at 1.0/real earn points, the screw
	// line does not.
	if assert.Len(t, order.Items, 2) {
		assert.Equal(t, 581, order.Items[0].Points)
		assert.Equal(t, 106, order.Items[1].Points)
	}
	assert.Equal(t, 687, order.TotalPoints)
	assert.Len(t, order.AllProducts, 3)
	assert.False(t, order.NoEligibleProducts)

	eligible := 0
	for _, p := range order.AllProducts {
		if p.IsEligible {
			eligible++
		}
	}
	assert.Equal(t, 2, eligible)
}

func TestNormalizeFastProducts(t *testing.T) {
	clk := clock.NewFakeClock(time.Date(2024, 3, 20, 12, 0, 0, 0, time.UTC))
	svc := newTestService(clk, &catalogStub{products: defaultProducts()})

	payload := map[string]any{
		"numeroPedido": "PED-42",
		"produtosFast": []any{
			map[string]any{
				"nome":             "Placa ST 13",
				"quantidade":       10.0,
				"valorUnitario":    33.20,
				"valorTotal":       332.00,
				"pontosCalculados": 166.0,
				"categoria":        "placa_st",
			},
			map[string]any{
				"nome":             "Parafuso",
				"valorTotal":       14.91,
				"pontosCalculados": 0.0,
			},
			map[string]any{
				"nome":             "",
				"valorTotal":       50.0,
				"pontosCalculados": 10.0,
			},
		},
	}

	order := svc.Normalize(context.Background(), payload)

	// AI-scored lines are trusted; zero-point and nameless lines are dropped.
	if assert.Len(t, order.Items, 1) {
		assert.Equal(t, "Placa ST 13", order.Items[0].ProductName)
		assert.Equal(t, 166, order.Items[0].Points)
		assert.Equal(t, "FAST-1", order.Items[0].ProductCode)
	}
	assert.Equal(t, 166, order.TotalPoints)
	assert.Equal(t, 332.00, order.TotalValue)
}

func TestNormalizeGeneralProductsAreDisplayOnly(t *testing.T) {
	clk := clock.NewFakeClock(time.Date(2024, 3, 20, 12, 0, 0, 0, time.UTC))
	svc := newTestService(clk, &catalogStub{products: defaultProducts()})

	payload := map[string]any{
		"numeroPedido": "PED-43",
		"produtos": []any{
			map[string]any{
				"nome":       "FITA CREPE",
				"valorTotal": 9.90,
			},
		},
	}

	order := svc.Normalize(context.Background(), payload)

	assert.Empty(t, order.Items)
	assert.Zero(t, order.TotalPoints)
	if assert.Len(t, order.AllProducts, 1) {
		assert.False(t, order.AllProducts[0].IsEligible)
	}
	assert.True(t, order.NoEligibleProducts)
}

func TestNormalizeBrazilianDateFormat(t *testing.T) {
	clk := clock.NewFakeClock(time.Date(2024, 3, 20, 12, 0, 0, 0, time.UTC))
	svc := newTestService(clk, &catalogStub{products: defaultProducts()})

	tests := []struct {
		raw  string
		want string
	}{
		{"15/03/2024", "2024-03-15"},
		{"5/3/2024", "2024-03-05"},
		{"2024-03-15", "2024-03-15"},
		{"2024-03-15T10:30:00Z", "2024-03-15"},
		{"amanhã", "2024-03-20"},
	}
	for _, tt := range tests {
		order := svc.Normalize(context.Background(), map[string]any{
			"numeroPedido": "PED-1",
			"dataEmissao":  tt.raw,
		})
		assert.Equal(t, tt.want, order.OrderDate, "raw date %q", tt.raw)
	}
}

func TestNormalizeDeduplicatesItems(t *testing.T) {
	clk := clock.NewFakeClock(time.Date(2024, 3, 20, 12, 0, 0, 0, time.UTC))
	svc := newTestService(clk, &catalogStub{products: defaultProducts()})

	line := map[string]any{
		"nome":             "Placa RU",
		"valorTotal":       200.0,
		"pontosCalculados": 200.0,
	}
	payload := map[string]any{
		"numeroPedido": "PED-DUP",
		"produtosFast": []any{line, line, line},
	}

	order := svc.Normalize(context.Background(), payload)

	assert.Len(t, order.Items, 1)
	assert.Equal(t, 200, order.TotalPoints)
}

func TestNormalizeTotalValueFromProducts(t *testing.T) {
	clk := clock.NewFakeClock(time.Date(2024, 3, 20, 12, 0, 0, 0, time.UTC))
	svc := newTestService(clk, &catalogStub{products: defaultProducts()})

	payload := map[string]any{
		"numeroPedido": "PED-2",
		"produtosFast": []any{
			map[string]any{
				"nome":             "Placa ST",
				"valorTotal":       100.0,
				"pontosCalculados": 50.0,
			},
		},
	}

	order := svc.Normalize(context.Background(), payload)
	assert.Equal(t, 100.0, order.TotalValue)
}

func TestNormalizePointsInvariant(t *testing.T) {
	clk := clock.NewFakeClock(time.Date(2024, 3, 20, 12, 0, 0, 0, time.UTC))
	svc := newTestService(clk, &catalogStub{products: defaultProducts()})

	payload := map[string]any{
		"numeroPedido": "PED-3",
		"produtosFast": []any{
			map[string]any{"nome": "Placa ST", "valorTotal": 100.0, "pontosCalculados": 50.0},
			map[string]any{"nome": "Placomix", "valorTotal": 60.0, "pontosCalculados": 60.0},
		},
	}

	order := svc.Normalize(context.Background(), payload)

	sum := 0
	for _, item := range order.Items {
		sum += item.Points
	}
	assert.Equal(t, sum, order.TotalPoints)
}

func TestNormalizeCatalogUnavailable(t *testing.T) {
	clk := clock.NewFakeClock(time.Date(2024, 3, 20, 12, 0, 0, 0, time.UTC))
	svc := newTestService(clk, &catalogStub{err: errors.New("store down")})

	payload := map[string]any{
		"numeroPedido": "PED-4",
		"products": []any{
			map[string]any{"product_name": "PLACA ST 13", "total_value": 100.0},
		},
	}

	order := svc.Normalize(context.Background(), payload)

	assert.Empty(t, order.Items)
	assert.True(t, order.NoEligibleProducts)
	assert.False(t, order.ProcessingError)
}

func TestContentFingerprintDeterministic(t *testing.T) {
	clk := clock.NewFakeClock(time.Date(2024, 3, 20, 12, 0, 0, 0, time.UTC))
	svc := newTestService(clk, &catalogStub{products: defaultProducts()})

	payload := map[string]any{
		"numeroPedido": "PED-5",
		"dataEmissao":  "2024-03-15",
		"cliente":      "Cliente X",
		"produtosFast": []any{
			map[string]any{"nome": "Placa ST", "valorTotal": 100.0, "pontosCalculados": 50.0},
		},
	}

	first := svc.Normalize(context.Background(), payload)
	second := svc.Normalize(context.Background(), payload)

	assert.Equal(t, first.ContentFingerprint, second.ContentFingerprint)
	// DocumentHash is an idempotency key, salted per attempt.
	assert.NotEqual(t, first.DocumentHash, second.DocumentHash)
}

func TestComputePoints(t *testing.T) {
	assert.Equal(t, 581, ComputePoints(1162.00, 0.5))
	assert.Equal(t, 106, ComputePoints(106.00, 1.0))
	assert.Equal(t, 199, ComputePoints(99.99, 2.0))
	assert.Zero(t, ComputePoints(0, 1.0))
	assert.Zero(t, ComputePoints(-10, 1.0))
	assert.Zero(t, ComputePoints(100, 0))
}
