package handler

import (
	"net/http"

	"github.com/SnigdhoNext27/bliss-store-suite-sub001/internal/service"

	"github.com/gin-gonic/gin"
)

// DispatchHandler exposes the scheduler's cadence-invoked entrypoint.
type DispatchHandler struct {
	svc *service.DispatchService
}

func NewDispatchHandler(svc *service.DispatchService) *DispatchHandler {
	return &DispatchHandler{svc: svc}
}

func (h *DispatchHandler) Run(c *gin.Context) {
	res := h.svc.RunOnce(c.Request.Context())
	c.JSON(http.StatusOK, res)
}
