package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"quizfunnel/internal/models/request_models"
	"quizfunnel/internal/services"
	"quizfunnel/pkg/utils"
)

type EditorController struct {
	editorService services.EditorServiceInterface
}

func NewEditorController(editorService services.EditorServiceInterface) *EditorController {
	return &EditorController{
		editorService: editorService,
	}
}

// OpenSession godoc
// @Summary Open an editing session
// @Description Opens an editing session for an existing funnel, or a fresh draft when no funnel id is given
// @Tags Editor
// @Accept json
// @Produce json
// @Param request body request_models.OpenEditorRequest true "Funnel ID (optional)"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /editor/sessions [post]
func (e *EditorController) OpenSession(c *gin.Context) {
	var req request_models.OpenEditorRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	session, err := e.editorService.OpenSession(c.Request.Context(), req.FunnelID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, session, "Editor session opened successfully")
}

func (e *EditorController) CloseSession(c *gin.Context) {
	sessionId := c.Param("sessionId")

	if err := e.editorService.CloseSession(c.Request.Context(), sessionId); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Editor session closed successfully")
}

func (e *EditorController) GetDocument(c *gin.Context) {
	sessionId := c.Param("sessionId")

	document, err := e.editorService.Document(c.Request.Context(), sessionId)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, document, "Document fetched successfully")
}

func (e *EditorController) Save(c *gin.Context) {
	sessionId := c.Param("sessionId")

	if err := e.editorService.Save(c.Request.Context(), sessionId); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Funnel saved successfully")
}

func (e *EditorController) AddPage(c *gin.Context) {
	sessionId := c.Param("sessionId")

	var req request_models.AddPageRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Type == "" {
		utils.RespondError(c, http.StatusBadRequest, "Page type is required")
		return
	}

	document, err := e.editorService.AddPage(c.Request.Context(), sessionId, req.Type, req.InsertAfter)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, document, "Page added successfully")
}

func (e *EditorController) DuplicatePage(c *gin.Context) {
	sessionId := c.Param("sessionId")

	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid page index")
		return
	}

	document, svcErr := e.editorService.DuplicatePage(c.Request.Context(), sessionId, index)
	if svcErr != nil {
		utils.HandleServiceError(c, svcErr)
		return
	}

	utils.RespondSuccess(c, document, "Page duplicated successfully")
}

func (e *EditorController) DeletePage(c *gin.Context) {
	sessionId := c.Param("sessionId")

	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid page index")
		return
	}

	document, svcErr := e.editorService.DeletePage(c.Request.Context(), sessionId, index)
	if svcErr != nil {
		utils.HandleServiceError(c, svcErr)
		return
	}

	utils.RespondSuccess(c, document, "Page deleted successfully")
}

func (e *EditorController) ReorderPages(c *gin.Context) {
	sessionId := c.Param("sessionId")

	var req request_models.ReorderPagesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	document, err := e.editorService.ReorderPages(c.Request.Context(), sessionId, req.FromIndex, req.ToIndex)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, document, "Pages reordered successfully")
}

func (e *EditorController) SetActivePage(c *gin.Context) {
	sessionId := c.Param("sessionId")

	var req request_models.SetActivePageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	document, err := e.editorService.SetActivePage(c.Request.Context(), sessionId, req.Index)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, document, "Active page set successfully")
}

func (e *EditorController) AddComponent(c *gin.Context) {
	sessionId := c.Param("sessionId")

	var req request_models.AddComponentRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.PageID == "" || req.Type == "" {
		utils.RespondError(c, http.StatusBadRequest, "PageID and component type are required")
		return
	}

	document, err := e.editorService.AddComponent(c.Request.Context(), sessionId, req.PageID, req.Type, req.InsertIndex)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, document, "Component added successfully")
}

func (e *EditorController) SelectComponent(c *gin.Context) {
	sessionId := c.Param("sessionId")
	componentId := c.Param("componentId")

	document, err := e.editorService.SelectComponent(c.Request.Context(), sessionId, componentId)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, document, "Component selected successfully")
}

func (e *EditorController) UpdateComponent(c *gin.Context) {
	sessionId := c.Param("sessionId")
	componentId := c.Param("componentId")

	var req request_models.UpdateComponentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	document, err := e.editorService.UpdateComponent(c.Request.Context(), sessionId, componentId, req.Data, req.Style)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, document, "Component updated successfully")
}

func (e *EditorController) DuplicateComponent(c *gin.Context) {
	sessionId := c.Param("sessionId")
	componentId := c.Param("componentId")

	document, err := e.editorService.DuplicateComponent(c.Request.Context(), sessionId, componentId)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, document, "Component duplicated successfully")
}

func (e *EditorController) DeleteComponent(c *gin.Context) {
	sessionId := c.Param("sessionId")
	componentId := c.Param("componentId")

	document, err := e.editorService.DeleteComponent(c.Request.Context(), sessionId, componentId)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, document, "Component deleted successfully")
}

func (e *EditorController) MoveComponent(c *gin.Context) {
	sessionId := c.Param("sessionId")
	componentId := c.Param("componentId")

	var req request_models.MoveComponentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	document, err := e.editorService.MoveComponent(c.Request.Context(), sessionId, componentId, req.Direction)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, document, "Component moved successfully")
}
