package blackout

import (
	"bytes"
	"encoding/json"
	"io"
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

// Get answers with the range object or JSON null.
func (h *Handler) Get(c *gin.Context) {
	rng, err := h.service.Get(c.Request.Context(), c.Query("city"))
	if err != nil {
		core.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rng)
}

// Put takes a range object, or a null body to clear it.
func (h *Handler) Put(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unreadable body"})
		return
	}

	var rng *Range
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || json.Unmarshal(trimmed, &rng) != nil {
		core.RespondError(c, core.Invalid(core.CodeInvalidRange, "Invalid range format"))
		return
	}

	if err := h.service.Set(c.Request.Context(), c.Query("city"), rng); err != nil {
		core.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Disabled dates updated successfully",
	})
}

func (h *Handler) Check(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		core.RespondError(c, core.Invalid(core.CodeMissingDate, "date is required"))
		return
	}

	status, err := h.service.IsDisabled(c.Request.Context(), c.Query("city"), date)
	if err != nil {
		core.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, status)
}
