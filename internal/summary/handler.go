package summary

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/xtanyr/lunch/internal/core"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Get returns the summary of one address, or of the whole city when no
// address is given. ?grouped=true adds the rows split by category.
func (h *Handler) Get(c *gin.Context) {
	var (
		sum Summary
		err error
	)
	if address, ok := c.GetQuery("address"); ok {
		sum, err = h.service.ForPartition(c.Request.Context(), c.Query("city"), address, c.Param("date"))
	} else {
		sum, err = h.service.ForCity(c.Request.Context(), c.Query("city"), c.Param("date"))
	}
	if err != nil {
		core.RespondError(c, err)
		return
	}

	if c.Query("grouped") == "true" {
		c.JSON(http.StatusOK, gin.H{"summary": sum, "groups": GroupByCategory(sum.Items)})
		return
	}
	c.JSON(http.StatusOK, sum)
}
