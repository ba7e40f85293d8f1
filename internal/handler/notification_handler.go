package handler

import (
	"net/http"
	"strconv"

	"github.com/SnigdhoNext27/bliss-store-suite-sub001/internal/middleware"
	"github.com/SnigdhoNext27/bliss-store-suite-sub001/internal/repository"
	"github.com/SnigdhoNext27/bliss-store-suite-sub001/internal/service"

	"github.com/gin-gonic/gin"
)

// NotificationHandler serves the customer-facing notification center
// endpoints plus the unauthenticated engagement beacons.
type NotificationHandler struct {
	repo       *repository.NotificationRepository
	notify     *service.NotificationService
	fetchLimit int
}

func NewNotificationHandler(repo *repository.NotificationRepository, notify *service.NotificationService, fetchLimit int) *NotificationHandler {
	return &NotificationHandler{repo: repo, notify: notify, fetchLimit: fetchLimit}
}

func (h *NotificationHandler) List(c *gin.Context) {
	userID := middleware.GetUserID(c)
	limit := h.fetchLimit
	if v, err := strconv.Atoi(c.DefaultQuery("limit", "")); err == nil && v > 0 && v <= 100 {
		limit = v
	}
	list, err := h.repo.ListForUser(userID, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"notifications": list})
}

func (h *NotificationHandler) MarkRead(c *gin.Context) {
	userID := middleware.GetUserID(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	if err := h.repo.MarkRead(uint(id), userID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

type markAllRequest struct {
	IDs []uint `json:"ids" binding:"required"`
}

// MarkAllRead batch-marks the caller's currently-loaded records read.
// The client also writes every ID into its local read set; this endpoint
// covers the server half.
func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	userID := middleware.GetUserID(c)
	var req markAllRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.repo.MarkAllRead(userID, req.IDs); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// ClearAll deletes global broadcast records only; personal records stay
// server-side even though the client empties its visible list.
func (h *NotificationHandler) ClearAll(c *gin.Context) {
	if err := h.repo.DeleteGlobal(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "clear failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Opened and Clicked are beacon-style engagement callbacks; they feed
// the per-variant counters the A/B manager reads.
func (h *NotificationHandler) Opened(c *gin.Context) {
	h.engagement(c, h.notify.RecordOpened)
}

func (h *NotificationHandler) Clicked(c *gin.Context) {
	h.engagement(c, h.notify.RecordClicked)
}

func (h *NotificationHandler) engagement(c *gin.Context, record func(uint) error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	if err := record(uint(id)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
