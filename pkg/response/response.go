package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	appErrors "github.com/superstudio/showcase-api/pkg/errors"
)

// JSON sends a success payload. The submission frontend consumes flat JSON
// bodies, so no envelope is applied.
func JSON(c *gin.Context, status int, data interface{}) {
	c.Header("Cache-Control", "no-store")
	c.Header("Pragma", "no-cache")
	c.JSON(status, data)
}

// ErrorBody is the JSON shape of error responses.
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error sends an error response. Only the code and message are exposed; the
// wrapped cause stays server-side.
func Error(c *gin.Context, err error) {
	appErr := appErrors.FromError(err)
	c.Header("Cache-Control", "no-store")
	c.Header("Pragma", "no-cache")
	c.JSON(appErr.Status, ErrorBody{Code: appErr.Code, Message: appErr.Message})
}

// NoContent sends a 204 response.
func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}
