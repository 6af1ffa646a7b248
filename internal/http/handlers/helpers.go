package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/tatarby/backend/internal/http/response"
	"github.com/tatarby/backend/internal/pkg/apierr"
)

// pathID parses the :id segment. A non-uuid id is indistinguishable from a
// missing row, so it surfaces as 404.
func pathID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondAPIError(c, apierr.NotFound(errors.New("not found")))
		return uuid.Nil, false
	}
	return id, true
}
