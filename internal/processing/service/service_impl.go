package service

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	catalogdomain "github.com/unitycompany/fidelidade-fast/internal/catalog/domain"
	"github.com/unitycompany/fidelidade-fast/internal/clock"
	"github.com/unitycompany/fidelidade-fast/internal/matching"
	"github.com/unitycompany/fidelidade-fast/internal/processing/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// minTotalValue satisfies the NOT NULL positive-value storage constraint when
// the extraction produced no usable total. A storage workaround, not a
// business rule.
const minTotalValue = 0.01

type Params struct {
	fx.In

	Log     *zap.Logger
	Clock   clock.Clock
	Catalog catalogdomain.Service
}

type Service struct {
	log     *zap.Logger
	clk     clock.Clock
	catalog catalogdomain.Service
}

func New(p Params) domain.Service {
	return &Service{
		log:     p.Log.Named("processing.service"),
		clk:     p.Clock,
		catalog: p.Catalog,
	}
}

// ComputePoints converts a line value into loyalty points. Points are floored,
// never fractional; excess fractional value is forfeited.
func ComputePoints(totalValue, pointsPerReal float64) int {
	if totalValue <= 0 || pointsPerReal <= 0 {
		return 0
	}
	return int(math.Floor(totalValue * pointsPerReal))
}

// Normalize turns a raw extraction payload into a canonical order. It never
// fails: any panic is converted into a fallback order with ProcessingError
// set, and every field-level problem degrades to a safe default plus a
// warning entry.
func (s *Service) Normalize(ctx context.Context, payload map[string]any) (order domain.NormalizedOrder) {
	defer func() {
		if r := recover(); r != nil {
			s.log.Error("order normalization panicked", zap.Any("panic", r))
			order = s.errorFallback(fmt.Sprintf("%v", r))
		}
	}()

	if payload == nil {
		return s.emptyFallback()
	}

	var warnings []string

	order = domain.NormalizedOrder{
		OrderNumber: s.resolveOrderNumber(payload, &warnings),
		OrderDate:   s.resolveOrderDate(payload, &warnings),
		Customer:    resolveCustomer(payload),
		TotalValue:  resolveFloat(payload, totalValueKeys),
		Items:       []domain.OrderItem{},
		AllProducts: []domain.ProductInfo{},
	}

	products, err := s.catalog.ActiveProducts(ctx)
	if err != nil {
		// The catalog contract says this cannot happen; guard anyway so a
		// broken catalog yields a zero-point order instead of a failure.
		s.log.Warn("active products unavailable", zap.Error(err))
		warnings = append(warnings, "catálogo indisponível, nenhum produto elegível identificado")
		products = map[string]catalogdomain.EligibleProduct{}
	}

	switch {
	case len(resolveList(payload, "products")) > 0:
		s.ingestRawProducts(resolveList(payload, "products"), products, &order)
	case len(resolveList(payload, "produtosFast")) > 0:
		ingestFastProducts(resolveList(payload, "produtosFast"), &order)
	}
	ingestGeneralProducts(resolveList(payload, "produtos"), &order)

	s.resolveTotalValue(payload, &order, &warnings)
	dedupItems(&order)
	dedupAllProducts(&order)

	// TotalPoints must equal the item sum. dedupItems already recomputes it;
	// re-assert here so the invariant holds even if an ingestion path drifts.
	if sum := sumPoints(order.Items); order.TotalPoints != sum {
		s.log.Warn("total points mismatch, recomputing from items",
			zap.Int("total_points", order.TotalPoints),
			zap.Int("item_sum", sum),
		)
		order.TotalPoints = sum
	}

	if len(order.Items) == 0 {
		order.NoEligibleProducts = true
	}

	order.DocumentHash = ensureHash(order)
	order.ContentFingerprint = ContentFingerprint(order)
	order.Warnings = warnings
	return order
}

func (s *Service) resolveOrderNumber(payload map[string]any, warnings *[]string) string {
	if number := resolveString(payload, orderNumberKeys); number != "" {
		return number
	}
	*warnings = append(*warnings, "número do pedido ausente, gerado automaticamente")
	return synthesizeOrderNumber()
}

func synthesizeOrderNumber() string {
	return fmt.Sprintf("PEDIDO-%d-%s", time.Now().UnixMilli(), strings.ToUpper(randomToken(6)))
}

func (s *Service) resolveOrderDate(payload map[string]any, warnings *[]string) string {
	today := s.clk.Now().Format("2006-01-02")

	raw := resolveString(payload, orderDateKeys)
	if raw == "" {
		return today
	}

	if strings.Contains(raw, "/") {
		// DD/MM/YYYY
		parts := strings.Split(raw, "/")
		if len(parts) == 3 && len(parts[2]) == 4 {
			iso := parts[2] + "-" + pad2(parts[1]) + "-" + pad2(parts[0])
			if _, err := time.Parse("2006-01-02", iso); err == nil {
				return iso
			}
		}
		*warnings = append(*warnings, "data inválida, usando data atual")
		return today
	}

	if strings.Contains(raw, "-") {
		if _, err := time.Parse("2006-01-02", raw); err == nil {
			return raw
		}
		// Full ISO timestamps are accepted, only the date part is kept.
		if len(raw) > 10 {
			if _, err := time.Parse("2006-01-02", raw[:10]); err == nil {
				return raw[:10]
			}
		}
		*warnings = append(*warnings, "data inválida, usando data atual")
		return today
	}

	*warnings = append(*warnings, "formato de data não reconhecido, usando data atual")
	return today
}

func pad2(s string) string {
	if len(s) == 1 {
		return "0" + s
	}
	return s
}

func resolveCustomer(payload map[string]any) string {
	if customer := resolveString(payload, customerKeys); customer != "" {
		return customer
	}
	return "Cliente"
}

// ingestRawProducts handles the products[] shape: lines straight from the
// extraction, eligibility decided here via the matcher.
func (s *Service) ingestRawProducts(lines []map[string]any, products map[string]catalogdomain.EligibleProduct, order *domain.NormalizedOrder) {
	for _, line := range lines {
		name := resolveString(line, itemNameKeys)
		code := resolveString(line, itemCodeKeys)
		quantity := normalizeQuantity(resolveInt(line, itemQtyKeys, 1))
		unitPrice := normalizePrice(resolveFloat(line, itemUnitKeys))
		totalValue := normalizePrice(resolveFloat(line, itemTotalKeys))

		matched := matching.Match(code, name, products)
		points := 0
		category := "outros"
		if matched != nil {
			points = ComputePoints(totalValue, matched.PointsPerReal)
			category = matched.Category
		}

		productCode := code
		if productCode == "" {
			productCode = "AI-" + name
		}

		order.AllProducts = append(order.AllProducts, domain.ProductInfo{
			ProductName: name,
			ProductCode: productCode,
			Quantity:    quantity,
			UnitPrice:   unitPrice,
			TotalValue:  totalValue,
			IsEligible:  matched != nil,
			Category:    category,
			Points:      points,
		})

		if matched != nil && points > 0 {
			order.Items = append(order.Items, domain.OrderItem{
				ProductName: name,
				ProductCode: productCode,
				Quantity:    quantity,
				UnitPrice:   unitPrice,
				TotalValue:  totalValue,
				Points:      points,
				Category:    category,
			})
			order.TotalPoints += points
		}
	}
}

// ingestFastProducts handles the produtosFast[] shape: lines the AI already
// classified and scored. The AI's point computation is trusted as-is, but
// only entries with a name, a positive value and positive points are
// accepted; anything else is silently dropped.
func ingestFastProducts(lines []map[string]any, order *domain.NormalizedOrder) {
	for i, line := range lines {
		name := resolveString(line, []string{"nome", "produtoOficial"})
		quantity := normalizeQuantity(toInt(line["quantidade"]))
		unitPrice := normalizePrice(toFloat(line["valorUnitario"]))
		totalValue := normalizePrice(toFloat(line["valorTotal"]))
		points := toInt(line["pontosCalculados"])

		if name == "" || totalValue <= 0 || points <= 0 {
			continue
		}

		code := resolveString(line, []string{"codigo"})
		if code == "" {
			code = fmt.Sprintf("FAST-%d", i+1)
		}
		category := resolveString(line, []string{"categoria"})
		if category == "" {
			category = "fast"
		}

		order.Items = append(order.Items, domain.OrderItem{
			ProductName: name,
			ProductCode: code,
			Quantity:    quantity,
			UnitPrice:   unitPrice,
			TotalValue:  totalValue,
			Points:      points,
			Category:    category,
		})
		order.AllProducts = append(order.AllProducts, domain.ProductInfo{
			ProductName: name,
			ProductCode: code,
			Quantity:    quantity,
			UnitPrice:   unitPrice,
			TotalValue:  totalValue,
			IsEligible:  true,
			Category:    category,
			Points:      points,
		})
		order.TotalPoints += points
	}
}

// ingestGeneralProducts handles the produtos[] shape: display-only lines that
// never earn points. Lines already ingested as eligible items are skipped.
func ingestGeneralProducts(lines []map[string]any, order *domain.NormalizedOrder) {
	for _, line := range lines {
		name := resolveString(line, []string{"nome"})
		if name == "" {
			continue
		}
		code := resolveString(line, []string{"codigo"})

		seen := false
		for _, item := range order.Items {
			if (code != "" && item.ProductCode == code) || item.ProductName == name {
				seen = true
				break
			}
		}
		if seen {
			continue
		}

		category := resolveString(line, []string{"categoria"})
		if category == "" {
			category = "outros"
		}

		order.AllProducts = append(order.AllProducts, domain.ProductInfo{
			ProductName: name,
			ProductCode: code,
			Quantity:    normalizeQuantity(toInt(line["quantidade"])),
			UnitPrice:   normalizePrice(toFloat(line["valorUnitario"])),
			TotalValue:  normalizePrice(toFloat(line["valorTotal"])),
			IsEligible:  false,
			Category:    category,
			Points:      0,
		})
	}
}

func (s *Service) resolveTotalValue(payload map[string]any, order *domain.NormalizedOrder, warnings *[]string) {
	// An explicit extraction total wins over anything derived from lines.
	if v := toFloat(payload["totalValue"]); v > 0 {
		order.TotalValue = v
	} else if order.TotalValue <= 0 && len(order.AllProducts) > 0 {
		var sum float64
		for _, p := range order.AllProducts {
			sum += p.TotalValue
		}
		if sum > 0 {
			order.TotalValue = sum
		}
	}

	if order.TotalValue <= 0 {
		order.TotalValue = minTotalValue
		*warnings = append(*warnings, "valor total ausente, ajustado para o mínimo")
	}
}

// dedupItems removes point-earning entries sharing (name, total value,
// points) and recomputes TotalPoints from the surviving set. The recomputed
// sum is authoritative; any partial sum accumulated during ingestion is
// discarded.
func dedupItems(order *domain.NormalizedOrder) {
	seen := make(map[string]bool, len(order.Items))
	unique := make([]domain.OrderItem, 0, len(order.Items))
	for _, item := range order.Items {
		key := item.ProductName + "|" + strconv.FormatFloat(item.TotalValue, 'f', -1, 64) + "|" + strconv.Itoa(item.Points)
		if seen[key] {
			continue
		}
		seen[key] = true
		unique = append(unique, item)
	}
	order.Items = unique
	order.TotalPoints = sumPoints(unique)
}

func dedupAllProducts(order *domain.NormalizedOrder) {
	seen := make(map[string]bool, len(order.AllProducts))
	unique := make([]domain.ProductInfo, 0, len(order.AllProducts))
	for _, p := range order.AllProducts {
		name := strings.Join(strings.Fields(strings.ToUpper(p.ProductName)), " ")
		key := name + "|" + strconv.FormatFloat(p.TotalValue, 'f', -1, 64) + "|" + p.ProductCode
		if seen[key] {
			continue
		}
		seen[key] = true
		unique = append(unique, p)
	}
	order.AllProducts = unique
}

func sumPoints(items []domain.OrderItem) int {
	total := 0
	for _, item := range items {
		total += item.Points
	}
	return total
}

func normalizeQuantity(q int) int {
	if q < 1 {
		return 1
	}
	return q
}

func normalizePrice(v float64) float64 {
	if v < 0 || math.IsNaN(v) {
		return 0
	}
	return v
}

func ensureHash(order domain.NormalizedOrder) string {
	hash := strings.TrimSpace(GenerateDocumentHash(order))
	if hash == "" || hash == "-" {
		return fmt.Sprintf("FALLBACK-%d-%s", time.Now().UnixMilli(), strings.ToUpper(randomToken(6)))
	}
	return hash
}

func (s *Service) emptyFallback() domain.NormalizedOrder {
	order := domain.NormalizedOrder{
		OrderNumber:        synthesizeOrderNumber(),
		OrderDate:          s.clk.Now().Format("2006-01-02"),
		Customer:           "Cliente",
		TotalValue:         minTotalValue,
		Items:              []domain.OrderItem{},
		AllProducts:        []domain.ProductInfo{},
		NoEligibleProducts: true,
	}
	order.DocumentHash = ensureHash(order)
	order.ContentFingerprint = ContentFingerprint(order)
	return order
}

func (s *Service) errorFallback(message string) domain.NormalizedOrder {
	order := domain.NormalizedOrder{
		OrderNumber:     fmt.Sprintf("ERRO-%d-%s", time.Now().UnixMilli(), strings.ToUpper(randomToken(6))),
		OrderDate:       s.clk.Now().Format("2006-01-02"),
		Customer:        "Cliente (erro no processamento)",
		TotalValue:      minTotalValue,
		Items:           []domain.OrderItem{},
		AllProducts:     []domain.ProductInfo{},
		ProcessingError: true,
		ErrorMessage:    message,
	}
	order.DocumentHash = ensureHash(order)
	order.ContentFingerprint = ContentFingerprint(order)
	return order
}
