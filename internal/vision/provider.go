// Package vision defines the port for invoice extraction backends. The
// pipeline only ever sees the loosely-typed payload a provider returns; every
// fallback default lives downstream in the processing service.
package vision

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/unitycompany/fidelidade-fast/internal/clock"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Provider extracts a raw order payload from an invoice image. The payload
// shape intentionally mirrors what OCR/LLM backends return: string-keyed maps
// with inconsistent field names and types.
type Provider interface {
	ExtractOrder(ctx context.Context, image []byte) (map[string]any, error)
}

type simulated struct {
	log *zap.Logger
	clk clock.Clock
}

type Params struct {
	fx.In

	Log   *zap.Logger
	Clock clock.Clock
}

// NewSimulated returns a provider that fabricates a realistic extraction
// result without calling any external service. Used in development and tests.
func NewSimulated(p Params) Provider {
	return &simulated{
		log: p.Log.Named("vision.simulated"),
		clk: p.Clock,
	}
}

func (s *simulated) ExtractOrder(ctx context.Context, image []byte) (map[string]any, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	now := s.clk.Now()
	orderNumber := fmt.Sprintf("FAST-%d-%s", now.UnixMilli(),
		strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:6]))

	s.log.Info("simulated extraction",
		zap.Int("image_bytes", len(image)),
		zap.String("order_number", orderNumber),
	)

	return map[string]any{
		"orderNumber": orderNumber,
		"orderDate":   now.Format(time.DateOnly),
		"customer":    "Cliente Simulado LTDA",
		"totalValue":  1649.03,
		"products": []any{
			map[string]any{
				"product_name": "PLACA ST 13-1.80 M",
				"product_code": "DW00057",
				"quantity":     35,
				"unit_price":   33.20,
				"total_value":  1162.00,
				"points":       581,
				"category":     "placa_st",
			},
			map[string]any{
				"product_name": "MASSA DRYWALL-25 KG-PLACOMIX",
				"product_code": "DW00078",
				"quantity":     2,
				"unit_price":   53.00,
				"total_value":  106.00,
				"points":       106,
				"category":     "placomix",
			},
			map[string]any{
				"product_name": "PERFIL DRYWALL F530-3.00 M",
				"product_code": "DW00032",
				"quantity":     40,
				"unit_price":   9.15,
				"total_value":  366.12,
				"points":       0,
				"category":     "outros",
			},
			map[string]any{
				"product_name": "PARAFUSO DRYWALL 13-AGULHA",
				"product_code": "FX00020",
				"quantity":     3,
				"unit_price":   4.97,
				"total_value":  14.91,
				"points":       0,
				"category":     "outros",
			},
		},
	}, nil
}
