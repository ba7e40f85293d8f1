package handler

import (
	"net/http"
	"strconv"

	"github.com/SnigdhoNext27/bliss-store-suite-sub001/internal/domain"
	"github.com/SnigdhoNext27/bliss-store-suite-sub001/internal/models"
	"github.com/SnigdhoNext27/bliss-store-suite-sub001/internal/repository"
	"github.com/SnigdhoNext27/bliss-store-suite-sub001/internal/service"
	"github.com/SnigdhoNext27/bliss-store-suite-sub001/pkg/templates"

	"github.com/gin-gonic/gin"
)

// TriggerHandler serves the automated-trigger configuration surface and
// the cadence-invoked run endpoint.
type TriggerHandler struct {
	repo *repository.TriggerRepository
	svc  *service.TriggerService
}

func NewTriggerHandler(repo *repository.TriggerRepository, svc *service.TriggerService) *TriggerHandler {
	return &TriggerHandler{repo: repo, svc: svc}
}

func (h *TriggerHandler) List(c *gin.Context) {
	list, err := h.repo.List()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"triggers": list})
}

type triggerRequest struct {
	TriggerType     string `json:"trigger_type" binding:"required"`
	IsActive        bool   `json:"is_active"`
	DelayMinutes    int    `json:"delay_minutes"`
	TitleTemplate   string `json:"title_template" binding:"required"`
	MessageTemplate string `json:"message_template" binding:"required"`
	SendEmail       bool   `json:"send_email"`
	SendPush        bool   `json:"send_push"`
}

func (r *triggerRequest) validate() string {
	if !domain.ValidTriggerType(r.TriggerType) {
		return "invalid trigger_type"
	}
	if r.DelayMinutes < 0 {
		return "delay_minutes must not be negative"
	}
	allowed := domain.TemplateVars[r.TriggerType]
	if err := templates.Validate(r.TitleTemplate, allowed); err != nil {
		return "title_template: " + err.Error()
	}
	if err := templates.Validate(r.MessageTemplate, allowed); err != nil {
		return "message_template: " + err.Error()
	}
	return ""
}

func (h *TriggerHandler) Create(c *gin.Context) {
	var req triggerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if msg := req.validate(); msg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}
	t := &models.NotificationTrigger{
		TriggerType:     req.TriggerType,
		IsActive:        req.IsActive,
		DelayMinutes:    req.DelayMinutes,
		TitleTemplate:   req.TitleTemplate,
		MessageTemplate: req.MessageTemplate,
		SendEmail:       req.SendEmail,
		SendPush:        req.SendPush,
	}
	if err := h.repo.Create(t); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "create failed"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"trigger": t})
}

func (h *TriggerHandler) Update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	t, err := h.repo.GetByID(uint(id))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "trigger not found"})
		return
	}
	var req triggerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if msg := req.validate(); msg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}
	t.TriggerType = req.TriggerType
	t.IsActive = req.IsActive
	t.DelayMinutes = req.DelayMinutes
	t.TitleTemplate = req.TitleTemplate
	t.MessageTemplate = req.MessageTemplate
	t.SendEmail = req.SendEmail
	t.SendPush = req.SendPush
	if err := h.repo.Update(t); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"trigger": t})
}

func (h *TriggerHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	if err := h.repo.Delete(uint(id)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "delete failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Run is the external-cadence entrypoint for the trigger engine.
func (h *TriggerHandler) Run(c *gin.Context) {
	res := h.svc.RunOnce(c.Request.Context())
	c.JSON(http.StatusOK, res)
}

type orderStatusEvent struct {
	OrderID uint   `json:"order_id" binding:"required"`
	Status  string `json:"status"`
}

// OrderStatus receives an order status change from the commerce
// collaborator and applies the order_status trigger.
func (h *TriggerHandler) OrderStatus(c *gin.Context) {
	var ev orderStatusEvent
	if err := c.ShouldBindJSON(&ev); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.svc.HandleOrderStatus(c.Request.Context(), ev.OrderID, ev.Status); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "event processing failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
