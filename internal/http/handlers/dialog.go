package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/tatarby/backend/internal/http/response"
	"github.com/tatarby/backend/internal/services"
)

type DialogHandler struct {
	dialogService services.DialogService
}

func NewDialogHandler(dialogService services.DialogService) *DialogHandler {
	return &DialogHandler{dialogService: dialogService}
}

// POST /dialogs/
func (dh *DialogHandler) Create(c *gin.Context) {
	var req struct {
		Title       string     `json:"title"`
		Description string     `json:"description"`
		Owner       *uuid.UUID `json:"owner"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	dialog, err := dh.dialogService.Create(c.Request.Context(), services.DialogCreateInput{
		Title:       req.Title,
		Description: req.Description,
		Owner:       req.Owner,
	})
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondCreated(c, dialog)
}

// GET /dialogs/
func (dh *DialogHandler) List(c *gin.Context) {
	dialogs, err := dh.dialogService.List(c.Request.Context())
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, dialogs)
}

// GET /dialogs/:id/
func (dh *DialogHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	dialog, err := dh.dialogService.Get(c.Request.Context(), id)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, dialog)
}

// PUT/PATCH /dialogs/:id/
func (dh *DialogHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req struct {
		Title       *string    `json:"title"`
		Description *string    `json:"description"`
		Owner       *uuid.UUID `json:"owner"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	dialog, err := dh.dialogService.Update(c.Request.Context(), id, services.DialogUpdateInput{
		Title:       req.Title,
		Description: req.Description,
		Owner:       req.Owner,
	})
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, dialog)
}

// DELETE /dialogs/:id/
func (dh *DialogHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := dh.dialogService.Delete(c.Request.Context(), id); err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondNoContent(c)
}
