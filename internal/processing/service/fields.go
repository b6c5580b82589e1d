package service

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Field-name resolution for the loosely-typed AI payloads. Extraction output
// mixes Portuguese and English keys depending on which vision backend
// produced it, so every logical field is resolved from an ordered candidate
// list, first present key wins.

var (
	orderNumberKeys = []string{"numeroPedido", "numero", "pedido", "orderNumber"}
	orderDateKeys   = []string{"dataEmissao", "dataPedido", "data"}
	customerKeys    = []string{"cliente", "nomeCliente", "customer"}
	totalValueKeys  = []string{"valorTotalPedido", "valorTotal", "total", "totalValue"}

	itemNameKeys  = []string{"description", "descrição", "product_name", "name"}
	itemCodeKeys  = []string{"code", "codigo", "product_code"}
	itemQtyKeys   = []string{"quantity", "quantidade"}
	itemUnitKeys  = []string{"unit_price", "valorUnitario"}
	itemTotalKeys = []string{"total_price", "valorTotal", "total_value", "value"}
)

func resolveString(payload map[string]any, keys []string) string {
	for _, key := range keys {
		v, ok := payload[key]
		if !ok || v == nil {
			continue
		}
		s := strings.TrimSpace(toString(v))
		if s != "" && s != "undefined" && s != "null" {
			return s
		}
	}
	return ""
}

func resolveFloat(payload map[string]any, keys []string) float64 {
	for _, key := range keys {
		v, ok := payload[key]
		if !ok || v == nil {
			continue
		}
		if f := toFloat(v); f != 0 {
			return f
		}
	}
	return 0
}

func resolveInt(payload map[string]any, keys []string, def int) int {
	for _, key := range keys {
		v, ok := payload[key]
		if !ok || v == nil {
			continue
		}
		if n := toInt(v); n != 0 {
			return n
		}
	}
	return def
}

func resolveList(payload map[string]any, key string) []map[string]any {
	raw, ok := payload[key]
	if !ok {
		return nil
	}
	list, ok := raw.([]any)
	if !ok {
		return nil
	}
	items := make([]map[string]any, 0, len(list))
	for _, entry := range list {
		if m, ok := entry.(map[string]any); ok {
			items = append(items, m)
		}
	}
	return items
}

func toString(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case float64:
		// JSON numbers arrive as float64; format integral values without the
		// trailing ".0" an order number would never carry.
		if s == math.Trunc(s) && math.Abs(s) < 1e15 {
			return strconv.FormatInt(int64(s), 10)
		}
		return strconv.FormatFloat(s, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(s)
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", v)
	}
}

// toFloat mimics parseFloat: a string is read up to its longest numeric
// prefix, anything unparseable coerces to zero.
func toFloat(v any) float64 {
	switch n := v.(type) {
	case float64:
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return 0
		}
		return n
	case int:
		return float64(n)
	case int64:
		return float64(n)
	case string:
		return parseLeadingFloat(n)
	default:
		return 0
	}
}

func toInt(v any) int {
	switch n := v.(type) {
	case float64:
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return 0
		}
		return int(n)
	case int:
		return n
	case int64:
		return int(n)
	case string:
		return int(parseLeadingFloat(n))
	default:
		return 0
	}
}

func parseLeadingFloat(s string) float64 {
	s = strings.TrimSpace(s)
	end := 0
	seenDigit := false
	seenDot := false
	for i, r := range s {
		switch {
		case r >= '0' && r <= '9':
			seenDigit = true
			end = i + 1
		case r == '-' || r == '+':
			if i != 0 {
				goto done
			}
			end = i + 1
		case r == '.':
			if seenDot {
				goto done
			}
			seenDot = true
			end = i + 1
		default:
			goto done
		}
	}
done:
	if !seenDigit {
		return 0
	}
	f, err := strconv.ParseFloat(strings.TrimRight(s[:end], "."), 64)
	if err != nil {
		return 0
	}
	return f
}
