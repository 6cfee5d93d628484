package controllers

import (
	"github.com/gin-gonic/gin"

	"quizfunnel/internal/services"
	"quizfunnel/pkg/utils"
)

type HealthController struct {
	healthService services.HealthServiceInterface
}

func NewHealthController(healthService services.HealthServiceInterface) *HealthController {
	return &HealthController{
		healthService: healthService,
	}
}

func (h *HealthController) GetHealth(c *gin.Context) {
	report := h.healthService.Check(c.Request.Context())
	utils.RespondSuccess(c, report, "Health report generated")
}
