package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/tatarby/backend/internal/http/response"
	"github.com/tatarby/backend/internal/services"
)

type UserAnswerHandler struct {
	userAnswerService services.UserAnswerService
}

func NewUserAnswerHandler(userAnswerService services.UserAnswerService) *UserAnswerHandler {
	return &UserAnswerHandler{userAnswerService: userAnswerService}
}

// POST /useranswers/ records that the caller picked an answer. The history
// is append-only, so there is no update route.
func (uh *UserAnswerHandler) Create(c *gin.Context) {
	var req struct {
		User   *uuid.UUID `json:"user"`
		Answer *uuid.UUID `json:"answer"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	record, err := uh.userAnswerService.Create(c.Request.Context(), services.UserAnswerCreateInput{
		User:   req.User,
		Answer: req.Answer,
	})
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondCreated(c, record)
}

// GET /useranswers/
func (uh *UserAnswerHandler) List(c *gin.Context) {
	records, err := uh.userAnswerService.List(c.Request.Context())
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, records)
}

// GET /useranswers/:id/
func (uh *UserAnswerHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	record, err := uh.userAnswerService.Get(c.Request.Context(), id)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, record)
}

// DELETE /useranswers/:id/
func (uh *UserAnswerHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := uh.userAnswerService.Delete(c.Request.Context(), id); err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondNoContent(c)
}

type CursorHandler struct {
	cursorService services.CursorService
}

func NewCursorHandler(cursorService services.CursorService) *CursorHandler {
	return &CursorHandler{cursorService: cursorService}
}

// POST /userdialogquestions/ remembers which question a user is on within
// a dialog.
func (ch *CursorHandler) Create(c *gin.Context) {
	var req struct {
		User     *uuid.UUID `json:"user"`
		Dialog   *uuid.UUID `json:"dialog"`
		Question *uuid.UUID `json:"question"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	cursor, err := ch.cursorService.Create(c.Request.Context(), services.CursorCreateInput{
		User:     req.User,
		Dialog:   req.Dialog,
		Question: req.Question,
	})
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondCreated(c, cursor)
}

// GET /userdialogquestions/
func (ch *CursorHandler) List(c *gin.Context) {
	cursors, err := ch.cursorService.List(c.Request.Context())
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, cursors)
}

// GET /userdialogquestions/:id/
func (ch *CursorHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	cursor, err := ch.cursorService.Get(c.Request.Context(), id)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, cursor)
}

// PUT/PATCH /userdialogquestions/:id/
func (ch *CursorHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req struct {
		User     *uuid.UUID `json:"user"`
		Dialog   *uuid.UUID `json:"dialog"`
		Question *uuid.UUID `json:"question"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	cursor, err := ch.cursorService.Update(c.Request.Context(), id, services.CursorUpdateInput{
		User:     req.User,
		Dialog:   req.Dialog,
		Question: req.Question,
	})
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, cursor)
}

// DELETE /userdialogquestions/:id/
func (ch *CursorHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := ch.cursorService.Delete(c.Request.Context(), id); err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondNoContent(c)
}
