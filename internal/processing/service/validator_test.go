package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/unitycompany/fidelidade-fast/internal/clock"
	"github.com/unitycompany/fidelidade-fast/internal/processing/domain"
)

func validatorService(now time.Time) *Service {
	return newTestService(clock.NewFakeClock(now), &catalogStub{products: defaultProducts()})
}

func eligibleItem() domain.OrderItem {
	return domain.OrderItem{
		ProductName: "Placa ST",
		ProductCode: "PLACA_ST",
		Quantity:    10,
		UnitPrice:   33.20,
		TotalValue:  332.00,
		Points:      166,
		Category:    "placa_st",
	}
}

func TestValidateWithinWindow(t *testing.T) {
	svc := validatorService(time.Date(2024, 3, 20, 12, 0, 0, 0, time.UTC))

	result := svc.Validate(domain.NormalizedOrder{
		OrderNumber: "PED-1",
		OrderDate:   "2024-03-01",
		TotalPoints: 166,
		Items:       []domain.OrderItem{eligibleItem()},
	})

	assert.True(t, result.IsValid)
	assert.Empty(t, result.Errors)
	assert.Empty(t, result.Warnings)
}

func TestValidateOldOrderWarns(t *testing.T) {
	svc := validatorService(time.Date(2024, 3, 20, 12, 0, 0, 0, time.UTC))

	result := svc.Validate(domain.NormalizedOrder{
		OrderNumber: "PED-1",
		OrderDate:   "2023-12-01",
		TotalPoints: 166,
		Items:       []domain.OrderItem{eligibleItem()},
	})

	assert.True(t, result.IsValid)
	assert.Contains(t, result.Warnings, "Pedido pode estar fora do prazo de 30 dias")
}

func TestValidateFarFutureOrderWarns(t *testing.T) {
	svc := validatorService(time.Date(2024, 3, 20, 12, 0, 0, 0, time.UTC))

	result := svc.Validate(domain.NormalizedOrder{
		OrderNumber: "PED-1",
		OrderDate:   "2024-06-01",
		TotalPoints: 166,
		Items:       []domain.OrderItem{eligibleItem()},
	})

	assert.Contains(t, result.Warnings, "Pedido pode estar fora do prazo de 30 dias")
}

func TestValidateWindowBoundaries(t *testing.T) {
	now := time.Date(2024, 3, 20, 0, 0, 0, 0, time.UTC)
	svc := validatorService(now)

	tests := []struct {
		date string
		ok   bool
	}{
		{"2024-01-20", true},  // 60 days old
		{"2024-01-19", false}, // 61 days old
		{"2024-04-19", true},  // 30 days ahead
		{"2024-04-20", false}, // 31 days ahead
	}
	for _, tt := range tests {
		result := svc.Validate(domain.NormalizedOrder{
			OrderNumber: "PED-1",
			OrderDate:   tt.date,
			TotalPoints: 166,
			Items:       []domain.OrderItem{eligibleItem()},
		})
		if tt.ok {
			assert.Empty(t, result.Warnings, "date %s", tt.date)
		} else {
			assert.Contains(t, result.Warnings, "Pedido pode estar fora do prazo de 30 dias", "date %s", tt.date)
		}
	}
}

func TestValidateUnparseableDateAccepted(t *testing.T) {
	svc := validatorService(time.Date(2024, 3, 20, 12, 0, 0, 0, time.UTC))

	result := svc.Validate(domain.NormalizedOrder{
		OrderNumber: "PED-1",
		OrderDate:   "data desconhecida",
		TotalPoints: 166,
		Items:       []domain.OrderItem{eligibleItem()},
	})

	assert.True(t, result.IsValid)
	assert.Empty(t, result.Warnings)
}

func TestValidateNoEligibleProducts(t *testing.T) {
	svc := validatorService(time.Date(2024, 3, 20, 12, 0, 0, 0, time.UTC))

	result := svc.Validate(domain.NormalizedOrder{
		OrderNumber:        "PED-1",
		OrderDate:          "2024-03-15",
		NoEligibleProducts: true,
	})

	assert.True(t, result.IsValid)
	assert.Contains(t, result.Warnings, "Nenhum produto elegível encontrado - processamento com 0 pontos")
}

func TestValidateItemFindings(t *testing.T) {
	svc := validatorService(time.Date(2024, 3, 20, 12, 0, 0, 0, time.UTC))

	result := svc.Validate(domain.NormalizedOrder{
		OrderNumber: "PED-1",
		OrderDate:   "2024-03-15",
		TotalPoints: 10,
		Items: []domain.OrderItem{
			{ProductName: "", Quantity: 1, TotalValue: 10, Points: 10},
			{ProductName: "Placa ST", Quantity: 0, TotalValue: 0, Points: 0},
		},
	})

	assert.True(t, result.IsValid)
	assert.Contains(t, result.Warnings, "Item 1: Nome do produto não identificado")
	assert.Contains(t, result.Warnings, "Item 2: Quantidade não especificada")
	assert.Contains(t, result.Warnings, "Item 2: Valor não identificado")
}
