package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	redemptiondomain "github.com/unitycompany/fidelidade-fast/internal/redemption/domain"
)

func (s *Server) Redeem(c *gin.Context) {
	var req redemptiondomain.RedeemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.redemptionSvc.Redeem(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.metrics.RecordRedemption(resp.Status)
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListRedemptions(c *gin.Context) {
	resp, err := s.redemptionSvc.List(c.Request.Context(), redemptiondomain.ListRequest{
		CustomerID: strings.TrimSpace(c.Query("cliente_id")),
		Status:     strings.TrimSpace(c.Query("status")),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetRedemptionByID(c *gin.Context) {
	resp, err := s.redemptionSvc.Get(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ApproveRedemption(c *gin.Context) {
	resp, err := s.redemptionSvc.Approve(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.metrics.RecordRedemption(resp.Status)
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DeliverRedemption(c *gin.Context) {
	resp, err := s.redemptionSvc.Deliver(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.metrics.RecordRedemption(resp.Status)
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) CancelRedemption(c *gin.Context) {
	var req struct {
		Reason string `json:"motivo"`
	}
	if err := c.ShouldBindJSON(&req); err != nil && c.Request.ContentLength > 0 {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.redemptionSvc.Cancel(c.Request.Context(), strings.TrimSpace(c.Param("id")), req.Reason)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.metrics.RecordRedemption(resp.Status)
	c.JSON(http.StatusOK, gin.H{"data": resp})
}
