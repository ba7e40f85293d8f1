package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/SnigdhoNext27/bliss-store-suite-sub001/internal/domain"
	"github.com/SnigdhoNext27/bliss-store-suite-sub001/internal/repository"
	"github.com/SnigdhoNext27/bliss-store-suite-sub001/internal/service"

	"github.com/gin-gonic/gin"
)

type ABTestHandler struct {
	svc *service.ABTestService
}

func NewABTestHandler(svc *service.ABTestService) *ABTestHandler {
	return &ABTestHandler{svc: svc}
}

func (h *ABTestHandler) Create(c *gin.Context) {
	var in service.CreateABTestInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !domain.ValidNotifType(in.Type) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid notification type"})
		return
	}
	if in.TargetSegment != "" && !domain.ValidSegment(in.TargetSegment) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid target segment"})
		return
	}
	parent, child, err := h.svc.Create(c.Request.Context(), in)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "create failed"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"variant_a": parent, "variant_b": child})
}

func (h *ABTestHandler) List(c *gin.Context) {
	tests, err := h.svc.List()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"tests": tests})
}

func (h *ABTestHandler) Metrics(c *gin.Context) {
	name := c.Param("name")
	m, err := h.svc.Metrics(name)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "a/b test not found"})
		return
	}
	c.JSON(http.StatusOK, m)
}

// Delete removes a whole test by its parent record ID.
func (h *ABTestHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	if err := h.svc.Delete(uint(id)); err != nil {
		if errors.Is(err, repository.ErrChildDeletion) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusNotFound, gin.H{"error": "a/b test not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
