package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/tatarby/backend/internal/http/response"
	"github.com/tatarby/backend/internal/pkg/apierr"
	"github.com/tatarby/backend/internal/services"
)

type VoteHandler struct {
	voteService services.VoteService
}

func NewVoteHandler(voteService services.VoteService) *VoteHandler {
	return &VoteHandler{voteService: voteService}
}

// POST /votes/ casts or replaces the caller's vote on a dialog.
func (vh *VoteHandler) Create(c *gin.Context) {
	var req struct {
		Dialog   *uuid.UUID `json:"dialog"`
		VoteType *int       `json:"vote_type"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	fields := map[string][]string{}
	if req.Dialog == nil {
		fields["dialog"] = append(fields["dialog"], "This field is required.")
	}
	if req.VoteType == nil {
		fields["vote_type"] = append(fields["vote_type"], "This field is required.")
	}
	if len(fields) > 0 {
		response.RespondAPIError(c, apierr.Validation(fields))
		return
	}
	vote, err := vh.voteService.Cast(c.Request.Context(), *req.Dialog, *req.VoteType)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondCreated(c, vote)
}

// GET /votes/
func (vh *VoteHandler) List(c *gin.Context) {
	votes, err := vh.voteService.List(c.Request.Context())
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, votes)
}

// GET /votes/:id/
func (vh *VoteHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	vote, err := vh.voteService.Get(c.Request.Context(), id)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, vote)
}

// PUT/PATCH /votes/:id/ changes the vote's direction; the score is
// recounted the same way as on create.
func (vh *VoteHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req struct {
		VoteType *int `json:"vote_type"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	if req.VoteType == nil {
		response.RespondAPIError(c, apierr.FieldError("vote_type", "This field is required."))
		return
	}
	vote, err := vh.voteService.Update(c.Request.Context(), id, *req.VoteType)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, vote)
}

// DELETE /votes/:id/ retracts the caller's vote and recounts the score.
func (vh *VoteHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := vh.voteService.Retract(c.Request.Context(), id); err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondNoContent(c)
}
