package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/tatarby/backend/internal/http/response"
	"github.com/tatarby/backend/internal/services"
)

type AnswerHandler struct {
	answerService services.AnswerService
}

func NewAnswerHandler(answerService services.AnswerService) *AnswerHandler {
	return &AnswerHandler{answerService: answerService}
}

// POST /answers/
func (ah *AnswerHandler) Create(c *gin.Context) {
	var req struct {
		Question     *uuid.UUID `json:"question"`
		Content      string     `json:"content"`
		NextQuestion *uuid.UUID `json:"next_question"`
		Value        *int       `json:"value"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	answer, err := ah.answerService.Create(c.Request.Context(), services.AnswerCreateInput{
		Question:     req.Question,
		Content:      req.Content,
		NextQuestion: req.NextQuestion,
		Value:        req.Value,
	})
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondCreated(c, answer)
}

// GET /answers/
func (ah *AnswerHandler) List(c *gin.Context) {
	answers, err := ah.answerService.List(c.Request.Context())
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, answers)
}

// GET /answers/:id/
func (ah *AnswerHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	answer, err := ah.answerService.Get(c.Request.Context(), id)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, answer)
}

// PUT/PATCH /answers/:id/
func (ah *AnswerHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req struct {
		Question     *uuid.UUID `json:"question"`
		Content      *string    `json:"content"`
		NextQuestion *uuid.UUID `json:"next_question"`
		Value        *int       `json:"value"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	answer, err := ah.answerService.Update(c.Request.Context(), id, services.AnswerUpdateInput{
		Question:     req.Question,
		Content:      req.Content,
		NextQuestion: req.NextQuestion,
		Value:        req.Value,
	})
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, answer)
}

// DELETE /answers/:id/
func (ah *AnswerHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := ah.answerService.Delete(c.Request.Context(), id); err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondNoContent(c)
}
