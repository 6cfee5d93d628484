package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"quizfunnel/internal/models/request_models"
	"quizfunnel/internal/services"
	"quizfunnel/pkg/utils"
)

type QuizController struct {
	quizService   services.QuizServiceInterface
	funnelService services.FunnelServiceInterface
}

func NewQuizController(
	quizService services.QuizServiceInterface,
	funnelService services.FunnelServiceInterface,
) *QuizController {
	return &QuizController{
		quizService:   quizService,
		funnelService: funnelService,
	}
}

// GetQuiz serves the published funnel document the quiz front end renders.
func (q *QuizController) GetQuiz(c *gin.Context) {
	quizId := c.Param("id")
	if quizId == "" {
		utils.RespondError(c, http.StatusBadRequest, "Quiz ID is required")
		return
	}

	document, err := q.funnelService.GetFunnel(c.Request.Context(), quizId)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, document, "Quiz fetched successfully")
}

func (q *QuizController) GetQuizQuestions(c *gin.Context) {
	utils.RespondSuccess(c, q.quizService.Questions(), "Questions fetched successfully")
}

func (q *QuizController) GetStyles(c *gin.Context) {
	utils.RespondSuccess(c, q.quizService.Styles(), "Styles fetched successfully")
}

func (q *QuizController) StartSession(c *gin.Context) {
	var req request_models.StartQuizRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	session, err := q.quizService.StartSession(c.Request.Context(), req.DisplayName)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, session, "Session started successfully")
}

func (q *QuizController) GetSession(c *gin.Context) {
	sessionId := c.Param("sessionId")

	session, err := q.quizService.GetSession(c.Request.Context(), sessionId)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, session, "Session fetched successfully")
}

func (q *QuizController) RecordAnswer(c *gin.Context) {
	sessionId := c.Param("sessionId")

	var req request_models.AnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.QuestionID == "" {
		utils.RespondError(c, http.StatusBadRequest, "QuestionID is required")
		return
	}

	if err := q.quizService.RecordAnswer(c.Request.Context(), sessionId, req.QuestionID, req.OptionIDs); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Answer recorded successfully")
}

func (q *QuizController) RecordStrategicAnswer(c *gin.Context) {
	sessionId := c.Param("sessionId")

	var req request_models.AnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.QuestionID == "" {
		utils.RespondError(c, http.StatusBadRequest, "QuestionID is required")
		return
	}

	if err := q.quizService.RecordStrategicAnswer(c.Request.Context(), sessionId, req.QuestionID, req.OptionIDs); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Answer recorded successfully")
}

func (q *QuizController) Advance(c *gin.Context) {
	sessionId := c.Param("sessionId")

	session, err := q.quizService.Advance(c.Request.Context(), sessionId)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, session, "Advanced successfully")
}

func (q *QuizController) Retreat(c *gin.Context) {
	sessionId := c.Param("sessionId")

	session, err := q.quizService.Retreat(c.Request.Context(), sessionId)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, session, "Retreated successfully")
}

func (q *QuizController) ComputeResult(c *gin.Context) {
	sessionId := c.Param("sessionId")

	var req request_models.ComputeResultRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	result, err := q.quizService.ComputeResult(c.Request.Context(), sessionId, req.ClickOrder)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, result, "Result computed successfully")
}

func (q *QuizController) Reset(c *gin.Context) {
	sessionId := c.Param("sessionId")

	if err := q.quizService.Reset(c.Request.Context(), sessionId); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Session reset successfully")
}
