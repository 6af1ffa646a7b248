package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tatarby/backend/internal/pkg/apierr"
)

type APIError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

// ValidationEnvelope mirrors the field-error map shape clients already
// consume: {"errors": {"email": ["..."], ...}}.
type ValidationEnvelope struct {
	Errors map[string][]string `json:"errors"`
}

func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}

func RespondCreated(c *gin.Context, payload any) {
	c.JSON(http.StatusCreated, payload)
}

func RespondNoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

func RespondError(c *gin.Context, status int, code string, err error) {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	c.JSON(status, ErrorEnvelope{
		Error: APIError{
			Message: msg,
			Code:    code,
		},
	})
}

// RespondAPIError maps any error to the wire. Validation errors keep their
// field map; unknown errors become an opaque 500.
func RespondAPIError(c *gin.Context, err error) {
	if apiErr := apierr.From(err); apiErr != nil {
		if len(apiErr.Fields) > 0 {
			c.JSON(apiErr.Status, ValidationEnvelope{Errors: apiErr.Fields})
			return
		}
		RespondError(c, apiErr.Status, apiErr.Code, apiErr)
		return
	}
	RespondError(c, http.StatusInternalServerError, "internal_error", err)
}
