package domain

import (
	"context"
	"errors"
	"time"

	customerdomain "github.com/unitycompany/fidelidade-fast/internal/customer/domain"
	processingdomain "github.com/unitycompany/fidelidade-fast/internal/processing/domain"
)

// Service persists processed invoices and credits the earned points.
type Service interface {
	// ProcessInvoice runs the full pipeline on a raw extraction payload:
	// normalize, validate, persist the order and its items, credit the
	// customer. The normalization itself never fails; errors here come from
	// identification or persistence only.
	ProcessInvoice(ctx context.Context, req ProcessRequest) (*ProcessResult, error)
	List(ctx context.Context, customerID string) ([]Response, error)
	Get(ctx context.Context, id string) (*Response, error)
}

type ProcessRequest struct {
	CustomerID string         `json:"cliente_id"`
	Payload    map[string]any `json:"dados"`
}

// ProcessResult is what the customer sees after an upload: the normalized
// order, the advisory validation findings, the stored order id and, when
// points were credited, the refreshed balance.
type ProcessResult struct {
	OrderID       string                            `json:"order_id"`
	Order         processingdomain.NormalizedOrder  `json:"order"`
	Validation    processingdomain.ValidationResult `json:"validation"`
	Status        string                            `json:"status"`
	Balance       *customerdomain.Response          `json:"customer,omitempty"`
	DuplicateOfID string                            `json:"duplicate_of_id,omitempty"`
}

type Response struct {
	ID                 string      `json:"id"`
	CustomerID         string      `json:"cliente_id"`
	OrderNumber        string      `json:"numero_pedido"`
	IssueDate          string      `json:"data_emissao"`
	TotalValue         float64     `json:"valor_total"`
	DocumentHash       string      `json:"hash_documento"`
	ContentFingerprint string      `json:"fingerprint"`
	PointsGenerated    int         `json:"pontos_gerados"`
	Status             string      `json:"status"`
	Items              []OrderItem `json:"items,omitempty"`
	CreatedAt          time.Time   `json:"created_at"`
}

var (
	ErrInvalidCustomer = errors.New("invalid_customer")
	ErrInvalidID       = errors.New("invalid_id")
	ErrNotFound        = errors.New("not_found")
	ErrDuplicateHash   = errors.New("duplicate_document_hash")
)
