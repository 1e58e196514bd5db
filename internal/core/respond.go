package core

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// RespondError writes err as a JSON error body. Storage failures are recorded
// on the context for the request logger and answered with a generic message.
func RespondError(c *gin.Context, err error) {
	_ = c.Error(err)

	status := HTTPStatus(err)
	switch {
	case status == http.StatusBadRequest:
		v, _ := IsValidation(err)
		c.JSON(status, gin.H{"error": v.Message, "code": v.Code})
	case errors.Is(err, ErrNotFound):
		c.JSON(status, gin.H{"error": err.Error()})
	default:
		c.JSON(status, gin.H{"error": "internal server error"})
	}
}
