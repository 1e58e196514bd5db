package location

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ListHandler serves the city directory and the office departments.
func ListHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"cities":      Cities(),
		"departments": Departments(),
	})
}
