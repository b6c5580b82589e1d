package service

import (
	"fmt"
	"math"
	"time"

	"github.com/unitycompany/fidelidade-fast/internal/processing/domain"
)

// Validate inspects a normalized order and reports advisory findings.
// Fail-open by contract: nothing here blocks persistence, and an internal
// failure yields a valid result with a single warning.
func (s *Service) Validate(order domain.NormalizedOrder) (result domain.ValidationResult) {
	defer func() {
		if r := recover(); r != nil {
			result = domain.ValidationResult{
				IsValid:  true,
				Errors:   []string{},
				Warnings: []string{"Erro interno na validação - processamento continuará"},
			}
		}
	}()

	warnings := []string{}

	if len(order.Items) == 0 {
		if order.NoEligibleProducts || order.TotalPoints == 0 {
			warnings = append(warnings, "Nenhum produto elegível encontrado - processamento com 0 pontos")
		} else {
			warnings = append(warnings, "Pedido processado sem produtos Fast Sistemas identificados")
		}
	}

	if order.OrderDate != "" && !s.withinValidWindow(order.OrderDate) {
		warnings = append(warnings, "Pedido pode estar fora do prazo de 30 dias")
	}

	for i, item := range order.Items {
		if item.ProductName == "" {
			warnings = append(warnings, fmt.Sprintf("Item %d: Nome do produto não identificado", i+1))
		}
		if item.Quantity <= 0 {
			warnings = append(warnings, fmt.Sprintf("Item %d: Quantidade não especificada", i+1))
		}
		if item.TotalValue <= 0 {
			warnings = append(warnings, fmt.Sprintf("Item %d: Valor não identificado", i+1))
		}
	}

	return domain.ValidationResult{
		IsValid:  true,
		Errors:   []string{},
		Warnings: warnings,
	}
}

// withinValidWindow accepts orders up to 60 days old and up to 30 days in the
// future. Unparseable dates are accepted; the window is advisory, not a gate.
func (s *Service) withinValidWindow(orderDate string) bool {
	parsed, err := time.Parse("2006-01-02", orderDate)
	if err != nil {
		return true
	}

	diff := s.clk.Now().Sub(parsed)
	days := int(math.Ceil(diff.Hours() / 24))
	return days <= 60 && days >= -30
}
