package service

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
	"unicode/utf16"

	"github.com/google/uuid"
	"github.com/unitycompany/fidelidade-fast/internal/processing/domain"
)

// GenerateDocumentHash produces the per-attempt order identifier. It is an
// idempotency key, not a content checksum: wall-clock time and a random salt
// go into it, so re-processing the same invoice yields a new hash. Three
// fallback tiers guarantee a non-empty result.
func GenerateDocumentHash(order domain.NormalizedOrder) (result string) {
	now := time.Now()
	defer func() {
		if r := recover(); r != nil {
			result = fmt.Sprintf("ERROR-%d-%s", now.UnixMilli(), randomToken(6))
		}
	}()

	orderNumber := order.OrderNumber
	if orderNumber == "" {
		orderNumber = "PEDIDO"
	}
	orderDate := order.OrderDate
	if orderDate == "" {
		orderDate = "HOJE"
	}
	customer := order.Customer
	if customer == "" {
		customer = "CLIENTE"
	}

	salt := randomToken(22)
	data := strings.Join([]string{
		orderNumber,
		orderDate,
		customer,
		formatValue(order.TotalValue),
		strconv.FormatInt(now.UnixMilli(), 10),
		salt,
		strconv.FormatInt(now.UnixNano(), 10),
	}, "|")

	// 32-bit rolling hash over UTF-16 code units, kept wire-compatible with
	// the original implementation: hash = hash*31 + code, wrapped to int32.
	var h int32
	for _, u := range utf16.Encode([]rune(data)) {
		h = (h << 5) - h + int32(u)
	}

	abs := int64(h)
	if abs < 0 {
		abs = -abs
	}
	final := strconv.FormatInt(abs, 16) + "-" + strings.ToLower(salt[:8])

	if strings.TrimSpace(final) == "" || final == "-" {
		return fmt.Sprintf("HASH-%d-%s", now.UnixMilli(), strings.ToUpper(randomToken(6)))
	}
	return final
}

// ContentFingerprint is a deterministic sha256 over the order's business
// fields only (no timestamps, no salt). Two uploads of the same invoice
// content produce the same fingerprint, which makes duplicate submissions
// detectable without changing the DocumentHash contract.
func ContentFingerprint(order domain.NormalizedOrder) string {
	lines := make([]string, 0, len(order.Items)+1)
	lines = append(lines, strings.Join([]string{
		strings.ToUpper(strings.TrimSpace(order.OrderNumber)),
		order.OrderDate,
		strings.ToUpper(strings.TrimSpace(order.Customer)),
		formatValue(order.TotalValue),
	}, "|"))

	for _, item := range order.Items {
		lines = append(lines, strings.Join([]string{
			strings.ToUpper(strings.TrimSpace(item.ProductName)),
			formatValue(item.TotalValue),
			strconv.Itoa(item.Points),
		}, "|"))
	}
	sort.Strings(lines[1:])

	sum := sha256.Sum256([]byte(strings.Join(lines, "\n")))
	return hex.EncodeToString(sum[:])
}

func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func randomToken(n int) string {
	token := strings.ReplaceAll(uuid.NewString(), "-", "")
	for len(token) < n {
		token += strings.ReplaceAll(uuid.NewString(), "-", "")
	}
	return token[:n]
}
