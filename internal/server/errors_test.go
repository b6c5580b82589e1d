package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	customerdomain "github.com/unitycompany/fidelidade-fast/internal/customer/domain"
	orderdomain "github.com/unitycompany/fidelidade-fast/internal/order/domain"
	prizedomain "github.com/unitycompany/fidelidade-fast/internal/prize/domain"
	redemptiondomain "github.com/unitycompany/fidelidade-fast/internal/redemption/domain"
)

func TestMapError(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		errType string
	}{
		{"invalid customer", orderdomain.ErrInvalidCustomer, http.StatusBadRequest, "validation_error"},
		{"invalid prize points", prizedomain.ErrInvalidPoints, http.StatusBadRequest, "validation_error"},
		{"rate limited", ErrTooManyRequests, http.StatusTooManyRequests, "rate_limited"},
		{"duplicate hash", orderdomain.ErrDuplicateHash, http.StatusConflict, "conflict"},
		{"insufficient balance", customerdomain.ErrInsufficientBalance, http.StatusConflict, "conflict"},
		{"out of stock", redemptiondomain.ErrOutOfStock, http.StatusConflict, "conflict"},
		{"invalid transition", redemptiondomain.ErrInvalidTransition, http.StatusConflict, "conflict"},
		{"not found", prizedomain.ErrNotFound, http.StatusNotFound, "not_found"},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, "internal_error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, payload := mapError(tt.err)
			assert.Equal(t, tt.status, status)
			assert.Equal(t, tt.errType, payload.Type)
		})
	}
}

func TestMapErrorValidationDetails(t *testing.T) {
	status, payload := mapError(newValidationError("cliente_id", "required", "cliente_id is required"))
	assert.Equal(t, http.StatusBadRequest, status)
	require.Len(t, payload.Errors, 1)
	assert.Equal(t, "cliente_id", payload.Errors[0].Field)

	status, payload = mapError(customerdomain.ErrInvalidEmail)
	assert.Equal(t, http.StatusBadRequest, status)
	require.Len(t, payload.Errors, 1)
	assert.Equal(t, "email", payload.Errors[0].Field)
	assert.Equal(t, "invalid_email", payload.Errors[0].Code)
}

func TestErrorHandlingMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.Use(ErrorHandlingMiddleware())
	engine.GET("/boom", func(c *gin.Context) {
		AbortWithError(c, orderdomain.ErrDuplicateHash)
	})
	engine.GET("/ok", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"data": "ok"})
	})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/boom", nil)
	engine.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)

	var body errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "conflict", body.Error.Type)
	assert.Equal(t, orderdomain.ErrDuplicateHash.Error(), body.Error.Message)

	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/ok", nil)
	engine.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}
