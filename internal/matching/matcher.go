// Package matching identifies which invoice line items correspond to
// eligible catalog products. Matching is heuristic: AI-extracted
// names are noisy, so exact code lookup is backed by substring name matching,
// per-category keyword rules, and a generic token-overlap fallback for
// admin-created categories.
package matching

import (
	"math"
	"sort"
	"strings"

	catalogdomain "github.com/unitycompany/fidelidade-fast/internal/catalog/domain"
)

// Match resolves a raw (code, name) pair against the active catalog.
// Rules are tried in strict priority order; the first hit wins. A nil result
// means "not an eligible product", which is a routine outcome, not an error.
func Match(code, name string, products map[string]catalogdomain.EligibleProduct) *catalogdomain.EligibleProduct {
	// Rule 1: exact code match.
	if trimmed := strings.ToUpper(strings.TrimSpace(code)); trimmed != "" {
		if p, ok := products[trimmed]; ok {
			return &p
		}
	}

	nameUpper := strings.ToUpper(strings.TrimSpace(name))
	if nameUpper == "" {
		return nil
	}

	// Map iteration order is randomized; sort codes so the same input always
	// resolves to the same product.
	codes := make([]string, 0, len(products))
	for c := range products {
		codes = append(codes, c)
	}
	sort.Strings(codes)

	// Rule 2: exact or substring name match, either direction.
	for _, c := range codes {
		p := products[c]
		productName := strings.ToUpper(p.Name)
		if productName == "" {
			continue
		}
		if strings.Contains(nameUpper, productName) || strings.Contains(productName, nameUpper) {
			return &p
		}
	}

	// Rules 3 and 4: category keyword rules, then the generic fallback for
	// categories without hand-coded rules.
	for _, c := range codes {
		p := products[c]
		if matchCategory(nameUpper, p.Category) {
			return &p
		}
		if !knownCategory(p.Category) && matchKeywordOverlap(nameUpper, strings.ToUpper(p.Name)) {
			return &p
		}
	}

	return nil
}

func knownCategory(category string) bool {
	switch category {
	case catalogdomain.CategoryPlacaST,
		catalogdomain.CategoryPlacaRU,
		catalogdomain.CategoryGlasrocX,
		catalogdomain.CategoryPlacomix,
		catalogdomain.CategoryMalhaGlasroc,
		catalogdomain.CategoryBasecoat:
		return true
	}
	return false
}

func matchCategory(nameUpper, category string) bool {
	has := func(s string) bool { return strings.Contains(nameUpper, s) }

	switch category {
	case catalogdomain.CategoryPlacaST:
		return has("PLACA ST") ||
			(has("PLACA") && has("ST") && !has("RU") && !has("GLASROC"))
	case catalogdomain.CategoryPlacaRU:
		return has("PLACA RU") ||
			(has("PLACA") && has("RU") && !has("GLASROC"))
	case catalogdomain.CategoryGlasrocX:
		return has("GLASROC") && has("PLACA")
	case catalogdomain.CategoryPlacomix:
		return has("PLACOMIX")
	case catalogdomain.CategoryMalhaGlasroc:
		return has("MALHA") && has("GLASROC")
	case catalogdomain.CategoryBasecoat:
		return has("BASECOAT") ||
			(has("MASSA") && has("GLASROC") && !has("PLACA"))
	}
	return false
}

// matchKeywordOverlap accepts when at least 60% of the catalog name's tokens
// (length > 2) have a substring match, either direction, in the input tokens.
func matchKeywordOverlap(nameUpper, productNameUpper string) bool {
	productTokens := tokenize(productNameUpper)
	nameTokens := tokenize(nameUpper)
	if len(productTokens) == 0 || len(nameTokens) == 0 {
		return false
	}

	matched := 0
	for _, pt := range productTokens {
		for _, nt := range nameTokens {
			if strings.Contains(nt, pt) || strings.Contains(pt, nt) {
				matched++
				break
			}
		}
	}

	required := int(math.Ceil(float64(len(productTokens)) * 0.6))
	return matched >= required
}

func tokenize(s string) []string {
	fields := strings.Fields(s)
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		if len(f) > 2 {
			tokens = append(tokens, f)
		}
	}
	return tokens
}
