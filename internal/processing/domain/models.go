// Package domain holds the canonical invoice-processing types. A
// NormalizedOrder is the canonical representation of an invoice
// after AI extraction and reconciliation: every field carries a safe value no
// matter how malformed the input was.
package domain

import "context"

// OrderItem is an eligible, point-earning invoice line.
type OrderItem struct {
	ProductName string  `json:"product_name"`
	ProductCode string  `json:"product_code"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
	TotalValue  float64 `json:"total_value"`
	Points      int     `json:"points"`
	Category    string  `json:"category"`
}

// ProductInfo is any recognized invoice line, eligible or not. Shown to the
// customer so they can see what the extraction read.
type ProductInfo struct {
	ProductName string  `json:"product_name"`
	ProductCode string  `json:"product_code"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
	TotalValue  float64 `json:"total_value"`
	IsEligible  bool    `json:"is_eligible"`
	Category    string  `json:"category"`
	Points      int     `json:"points"`
}

// NormalizedOrder is the pipeline output. Invariants: OrderNumber, OrderDate,
// Customer and DocumentHash are never empty, TotalValue > 0, and TotalPoints
// equals the sum of Items points.
type NormalizedOrder struct {
	OrderNumber        string        `json:"order_number"`
	OrderDate          string        `json:"order_date"`
	Customer           string        `json:"customer"`
	TotalValue         float64       `json:"total_value"`
	Items              []OrderItem   `json:"items"`
	AllProducts        []ProductInfo `json:"all_products"`
	TotalPoints        int           `json:"total_points"`
	DocumentHash       string        `json:"document_hash"`
	ContentFingerprint string        `json:"content_fingerprint"`
	NoEligibleProducts bool          `json:"no_eligible_products,omitempty"`
	ProcessingError    bool          `json:"processing_error,omitempty"`
	ErrorMessage       string        `json:"error_message,omitempty"`
	Warnings           []string      `json:"warnings,omitempty"`
}

// ValidationResult carries advisory findings only. Errors is kept for API
// compatibility but never populated: validation warns, it does not gate.
type ValidationResult struct {
	IsValid  bool     `json:"is_valid"`
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

// Service turns a loosely-typed AI extraction payload into a NormalizedOrder.
// Normalize never fails: malformed input degrades into a fallback order with
// ProcessingError set, never into an error return.
type Service interface {
	Normalize(ctx context.Context, payload map[string]any) NormalizedOrder
	Validate(order NormalizedOrder) ValidationResult
}
