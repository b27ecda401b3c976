package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/redmane-backend/internal/platform/apierr"
)

type APIError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

// StatusEnvelope is the acknowledgement body of write endpoints.
type StatusEnvelope struct {
	Status  string `json:"status"`
	Message string `json:"message"`
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

// RespondErr derives status and code from a coded error. Uncoded errors are 500s.
func RespondErr(c *gin.Context, err error) {
	code := string(apierr.CodeOf(err))
	if code == "" {
		code = string(apierr.CodeStore)
	}
	_ = c.Error(err)
	RespondError(c, apierr.HTTPStatus(err), code, err)
}

func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}

func RespondCreated(c *gin.Context, payload any) {
	c.JSON(http.StatusCreated, payload)
}
