package export

import (
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/xtanyr/lunch/internal/core"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Download builds the workbook for ?city=&start=&end=. With totals=true the
// day sheets carry the city-wide dish totals; with upload=true the workbook
// is published to object storage and its URL returned instead.
func (h *Handler) Download(c *gin.Context) {
	req := Request{
		City:       c.Query("city"),
		Start:      c.Query("start"),
		End:        c.DefaultQuery("end", c.Query("start")),
		WithTotals: c.Query("totals") == "true",
	}

	wb, err := h.service.Build(c.Request.Context(), req)
	if err != nil {
		core.RespondError(c, err)
		return
	}

	if c.Query("upload") == "true" && h.service.CanUpload() {
		link, err := h.service.Publish(c.Request.Context(), req.City, wb)
		if err != nil {
			core.RespondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"url": link, "fileName": wb.FileName, "sheets": wb.Sheets})
		return
	}

	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+url.PathEscape(wb.FileName))
	c.Data(http.StatusOK, contentType, wb.Data)
}
