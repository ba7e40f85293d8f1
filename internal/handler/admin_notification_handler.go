package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/SnigdhoNext27/bliss-store-suite-sub001/internal/domain"
	"github.com/SnigdhoNext27/bliss-store-suite-sub001/internal/repository"
	"github.com/SnigdhoNext27/bliss-store-suite-sub001/internal/service"
	"github.com/SnigdhoNext27/bliss-store-suite-sub001/pkg/cloudinary"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// AdminNotificationHandler is the admin surface for composing, listing
// and purging notification records.
type AdminNotificationHandler struct {
	repo   *repository.NotificationRepository
	notify *service.NotificationService
	cloud  cloudinary.Client
}

func NewAdminNotificationHandler(repo *repository.NotificationRepository, notify *service.NotificationService, cloud cloudinary.Client) *AdminNotificationHandler {
	return &AdminNotificationHandler{repo: repo, notify: notify, cloud: cloud}
}

func (h *AdminNotificationHandler) Create(c *gin.Context) {
	var in service.CreateNotificationInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !domain.ValidNotifType(in.Type) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid notification type"})
		return
	}
	if in.UserID == nil && in.TargetSegment != "" && !domain.ValidSegment(in.TargetSegment) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid target segment"})
		return
	}
	if in.ScheduledAt != nil && in.ScheduledAt.Before(time.Now()) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "scheduled_at must be in the future"})
		return
	}
	n, err := h.notify.Create(c.Request.Context(), in)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "create failed"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"notification": n})
}

func (h *AdminNotificationHandler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	list, err := h.repo.ListAdmin(limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"notifications": list})
}

// Delete purges a record, counters included, cascading to any A/B child.
func (h *AdminNotificationHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	if err := h.repo.DeleteWithVariants(uint(id)); err != nil {
		if errors.Is(err, repository.ErrChildDeletion) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusNotFound, gin.H{"error": "notification not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// UploadImage stores a notification image and returns its delivery URL.
func (h *AdminNotificationHandler) UploadImage(c *gin.Context) {
	if h.cloud == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "image upload not configured"})
		return
	}
	file, _, err := c.Request.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image file required"})
		return
	}
	defer file.Close()
	url, err := h.cloud.UploadImage(c.Request.Context(), file, uuid.NewString())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "upload failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"image_url": url})
}
