package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"quizfunnel/internal/models/request_models"
	"quizfunnel/internal/services"
	"quizfunnel/pkg/utils"
)

type TrackingController struct {
	trackingService services.TrackingServiceInterface
}

func NewTrackingController(trackingService services.TrackingServiceInterface) *TrackingController {
	return &TrackingController{
		trackingService: trackingService,
	}
}

func (t *TrackingController) TrackEvent(c *gin.Context) {
	var req request_models.TrackEventRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.EventType == "" {
		utils.RespondError(c, http.StatusBadRequest, "Event type is required")
		return
	}

	if err := t.trackingService.TrackEvent(c.Request.Context(), req); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Event accepted")
}

func (t *TrackingController) GetSettings(c *gin.Context) {
	settings, err := t.trackingService.Settings(c.Request.Context())
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, settings, "Settings fetched successfully")
}

func (t *TrackingController) UpdateSettings(c *gin.Context) {
	var req request_models.TrackingSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := t.trackingService.UpdateSettings(c.Request.Context(), req.PixelID, req.Enabled); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Settings updated successfully")
}

func (t *TrackingController) GetEventLog(c *gin.Context) {
	pageStr := c.DefaultQuery("page", "1")
	pageSizeStr := c.DefaultQuery("pageSize", "20")

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

	entries, err := t.trackingService.EventLog(c.Request.Context(), page, pageSize, c.Query("type"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, entries, "Event log fetched successfully")
}

func (t *TrackingController) GetSummary(c *gin.Context) {
	summary, err := t.trackingService.Summary(c.Request.Context())
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, summary, "Summary fetched successfully")
}

func (t *TrackingController) ClearMockData(c *gin.Context) {
	if err := t.trackingService.ClearMockData(c.Request.Context()); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Mock data cleared successfully")
}
