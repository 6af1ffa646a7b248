package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/tatarby/backend/internal/http/response"
	"github.com/tatarby/backend/internal/services"
)

type QuestionHandler struct {
	questionService services.QuestionService
}

func NewQuestionHandler(questionService services.QuestionService) *QuestionHandler {
	return &QuestionHandler{questionService: questionService}
}

// POST /questions/
func (qh *QuestionHandler) Create(c *gin.Context) {
	var req struct {
		Dialog  *uuid.UUID `json:"dialog"`
		Content string     `json:"content"`
		Initial *bool      `json:"initial"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	question, err := qh.questionService.Create(c.Request.Context(), services.QuestionCreateInput{
		Dialog:  req.Dialog,
		Content: req.Content,
		Initial: req.Initial,
	})
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondCreated(c, question)
}

// GET /questions/
func (qh *QuestionHandler) List(c *gin.Context) {
	questions, err := qh.questionService.List(c.Request.Context())
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, questions)
}

// GET /questions/:id/
func (qh *QuestionHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	question, err := qh.questionService.Get(c.Request.Context(), id)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, question)
}

// PUT/PATCH /questions/:id/
func (qh *QuestionHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req struct {
		Dialog  *uuid.UUID `json:"dialog"`
		Content *string    `json:"content"`
		Initial *bool      `json:"initial"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	question, err := qh.questionService.Update(c.Request.Context(), id, services.QuestionUpdateInput{
		Dialog:  req.Dialog,
		Content: req.Content,
		Initial: req.Initial,
	})
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, question)
}

// DELETE /questions/:id/ removes the question together with the answers
// that reference it and any progress rows pointing at them.
func (qh *QuestionHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := qh.questionService.Delete(c.Request.Context(), id); err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondNoContent(c)
}
