package vision

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/unitycompany/fidelidade-fast/internal/clock"
	"go.uber.org/zap"
)

func TestSimulatedExtractOrder(t *testing.T) {
	provider := NewSimulated(Params{
		Log:   zap.NewNop(),
		Clock: clock.NewFakeClock(time.Date(2024, 3, 20, 12, 0, 0, 0, time.UTC)),
	})

	payload, err := provider.ExtractOrder(context.Background(), []byte("fake image"))
	require.NoError(t, err)

	number, _ := payload["orderNumber"].(string)
	assert.True(t, strings.HasPrefix(number, "FAST-"))
	assert.Equal(t, "2024-03-20", payload["orderDate"])
	assert.Equal(t, "Cliente Simulado LTDA", payload["customer"])
	assert.Equal(t, 1649.03, payload["totalValue"])

	products, ok := payload["products"].([]any)
	require.True(t, ok)
	assert.Len(t, products, 4)

	first, ok := products[0].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "PLACA ST 13-1.80 M", first["product_name"])
	assert.Equal(t, 1162.00, first["total_value"])
}

func TestSimulatedExtractOrderCancelledContext(t *testing.T) {
	provider := NewSimulated(Params{
		Log:   zap.NewNop(),
		Clock: clock.NewFakeClock(time.Date(2024, 3, 20, 12, 0, 0, 0, time.UTC)),
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := provider.ExtractOrder(ctx, nil)
	assert.ErrorIs(t, err, context.Canceled)
}
