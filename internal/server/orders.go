package server

import (
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	orderdomain "github.com/unitycompany/fidelidade-fast/internal/order/domain"
)

type processOrderRequest struct {
	CustomerID string         `json:"cliente_id"`
	Payload    map[string]any `json:"dados"`
}

// ProcessOrder runs the reconciliation pipeline on an already-extracted
// payload and credits the earned points.
func (s *Server) ProcessOrder(c *gin.Context) {
	var req processOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	if strings.TrimSpace(req.CustomerID) == "" {
		AbortWithError(c, newValidationError("cliente_id", "invalid_customer", "invalid customer"))
		return
	}

	s.processAndRespond(c, orderdomain.ProcessRequest{
		CustomerID: req.CustomerID,
		Payload:    req.Payload,
	})
}

// UploadOrder accepts an invoice image, extracts a raw payload through the
// vision provider and feeds it to the same pipeline as ProcessOrder.
func (s *Server) UploadOrder(c *gin.Context) {
	customerID := strings.TrimSpace(c.PostForm("cliente_id"))
	if customerID == "" {
		AbortWithError(c, newValidationError("cliente_id", "invalid_customer", "invalid customer"))
		return
	}

	file, _, err := c.Request.FormFile("arquivo")
	if err != nil {
		AbortWithError(c, newValidationError("arquivo", "invalid_file", "invalid file"))
		return
	}
	defer file.Close()

	image, err := io.ReadAll(file)
	if err != nil {
		AbortWithError(c, newValidationError("arquivo", "invalid_file", "invalid file"))
		return
	}

	payload, err := s.visionSvc.ExtractOrder(c.Request.Context(), image)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.processAndRespond(c, orderdomain.ProcessRequest{
		CustomerID: customerID,
		Payload:    payload,
	})
}

func (s *Server) processAndRespond(c *gin.Context, req orderdomain.ProcessRequest) {
	ctx := c.Request.Context()

	limit, err := s.uploadLimiter.Allow(ctx, req.CustomerID)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	if !limit.Allowed {
		s.metrics.RecordUploadThrottled()
		if limit.RetryAfter > 0 {
			c.Header("Retry-After", limit.RetryAfter.String())
		}
		AbortWithError(c, ErrTooManyRequests)
		return
	}

	token, locked, err := s.uploadLimiter.TryLock(ctx, req.CustomerID)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	if !locked {
		AbortWithError(c, ErrTooManyRequests)
		return
	}
	defer s.uploadLimiter.Unlock(ctx, req.CustomerID, token)

	resp, err := s.orderSvc.ProcessInvoice(ctx, req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.metrics.RecordInvoiceProcessed(resp.Status)
	s.metrics.RecordPointsCredited(resp.Order.TotalPoints)

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListOrders(c *gin.Context) {
	customerID := strings.TrimSpace(c.Query("cliente_id"))
	if customerID == "" {
		AbortWithError(c, newValidationError("cliente_id", "invalid_customer", "invalid customer"))
		return
	}

	resp, err := s.orderSvc.List(c.Request.Context(), customerID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetOrderByID(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	resp, err := s.orderSvc.Get(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}
