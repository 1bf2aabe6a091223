package response

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	appErrors "github.com/noah-isme/tutoring-admin-api/pkg/errors"
)

// Envelope represents the common success contract.
type Envelope struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

// ErrorBody is returned for malformed input and store failures.
type ErrorBody struct {
	Error string `json:"error"`
}

// MessageBody is returned for not-found and unauthorized outcomes.
type MessageBody struct {
	Message string `json:"message"`
}

// JSON sends a {message, data} response.
func JSON(c *gin.Context, status int, message string, data interface{}) {
	noStore(c)
	c.JSON(status, Envelope{Message: message, Data: data})
}

// OK responds with HTTP 200 and a {message, data} body.
func OK(c *gin.Context, message string, data interface{}) {
	JSON(c, http.StatusOK, message, data)
}

// Message sends a body carrying a message plus optional extra top-level fields.
func Message(c *gin.Context, status int, message string, extra ...gin.H) {
	noStore(c)
	body := gin.H{"message": message}
	for _, fields := range extra {
		for k, v := range fields {
			body[k] = v
		}
	}
	c.JSON(status, body)
}

// Error converts err to the common structure. Not-found and unauthorized
// outcomes carry a message; everything else carries an error string.
func Error(c *gin.Context, err error) {
	appErr := appErrors.FromError(err)
	_ = c.Error(err)
	noStore(c)
	switch appErr.Status {
	case http.StatusNotFound, http.StatusUnauthorized:
		c.JSON(appErr.Status, MessageBody{Message: appErr.Message})
	default:
		c.JSON(appErr.Status, ErrorBody{Error: appErr.Error()})
	}
}

// Attachment streams a downloadable file.
func Attachment(c *gin.Context, filename, contentType string, body []byte) {
	noStore(c)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, contentType, body)
}

func noStore(c *gin.Context) {
	c.Header("Cache-Control", "no-store")
	c.Header("Pragma", "no-cache")
}
