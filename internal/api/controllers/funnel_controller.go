package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"quizfunnel/internal/models/request_models"
	"quizfunnel/internal/services"
	"quizfunnel/pkg/utils"
)

type FunnelController struct {
	funnelService services.FunnelServiceInterface
}

func NewFunnelController(funnelService services.FunnelServiceInterface) *FunnelController {
	return &FunnelController{
		funnelService: funnelService,
	}
}

func (f *FunnelController) CreateFunnel(c *gin.Context) {
	var req request_models.CreateFunnelRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	funnel, err := f.funnelService.CreateFunnel(c.Request.Context(), req.Name)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, funnel, "Funnel created successfully")
}

func (f *FunnelController) GetFunnel(c *gin.Context) {
	funnelId := c.Param("funnelId")
	if funnelId == "" {
		utils.RespondError(c, http.StatusBadRequest, "Funnel ID is required")
		return
	}

	funnel, err := f.funnelService.GetFunnel(c.Request.Context(), funnelId)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, funnel, "Funnel fetched successfully")
}

func (f *FunnelController) ListFunnels(c *gin.Context) {
	pageStr := c.DefaultQuery("page", "1")
	pageSizeStr := c.DefaultQuery("pageSize", "5")

	page, err := strconv.Atoi(pageStr)
	if err != nil || page < 1 {
		utils.RespondError(c, http.StatusBadRequest, "Invalid page number")
		return
	}

	pageSize, err := strconv.Atoi(pageSizeStr)
	if err != nil || pageSize < 1 || pageSize > 100 {
		utils.RespondError(c, http.StatusBadRequest, "Invalid page size (must be 1-100)")
		return
	}

	funnels, err := f.funnelService.ListFunnels(c.Request.Context(), page, pageSize)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, funnels, "Funnels fetched successfully")
}

func (f *FunnelController) DeleteFunnel(c *gin.Context) {
	funnelId, err := uuid.Parse(c.Param("funnelId"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid funnel ID")
		return
	}

	if err := f.funnelService.DeleteFunnel(c.Request.Context(), funnelId); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Funnel deleted successfully")
}
