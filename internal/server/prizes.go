package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	prizedomain "github.com/unitycompany/fidelidade-fast/internal/prize/domain"
)

func (s *Server) CreatePrize(c *gin.Context) {
	var req prizedomain.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.prizeSvc.Create(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListPrizes(c *gin.Context) {
	active, err := parseOptionalBool(c.Query("ativo"))
	if err != nil {
		AbortWithError(c, newValidationError("ativo", "invalid_active", "invalid active"))
		return
	}
	featured, err := parseOptionalBool(c.Query("destaque"))
	if err != nil {
		AbortWithError(c, newValidationError("destaque", "invalid_featured", "invalid featured"))
		return
	}

	resp, err := s.prizeSvc.List(c.Request.Context(), prizedomain.ListRequest{
		Active:   active,
		Featured: featured,
		Category: strings.TrimSpace(c.Query("categoria")),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetPrizeByID(c *gin.Context) {
	resp, err := s.prizeSvc.Get(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) UpdatePrize(c *gin.Context) {
	var req prizedomain.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	req.ID = strings.TrimSpace(c.Param("id"))

	resp, err := s.prizeSvc.Update(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) AdjustPrizeStock(c *gin.Context) {
	var req struct {
		Delta int `json:"delta"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.prizeSvc.AdjustStock(c.Request.Context(), strings.TrimSpace(c.Param("id")), req.Delta)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DeactivatePrize(c *gin.Context) {
	resp, err := s.prizeSvc.Deactivate(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ReactivatePrize(c *gin.Context) {
	resp, err := s.prizeSvc.Reactivate(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DeletePrize(c *gin.Context) {
	if err := s.prizeSvc.Delete(c.Request.Context(), strings.TrimSpace(c.Param("id"))); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"deleted": true}})
}
