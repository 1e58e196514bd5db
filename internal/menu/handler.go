package menu

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

// --------------------------------------------------
// Catalog
// --------------------------------------------------

func (h *Handler) GetItems(c *gin.Context) {
	items, err := h.service.Items(c.Request.Context(), c.Query("city"))
	if err != nil {
		core.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *Handler) GetSides(c *gin.Context) {
	sides, err := h.service.Sides(c.Request.Context(), c.Query("city"))
	if err != nil {
		core.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, sides)
}

// PutItems accepts either a bare array of dishes or {"items": [...]}.
func (h *Handler) PutItems(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unreadable body"})
		return
	}

	items, err := decodeItems(body)
	if err != nil {
		core.RespondError(c, err)
		return
	}

	result, err := h.service.ReplaceItems(c.Request.Context(), c.Query("city"), items)
	if err != nil {
		core.RespondError(c, err)
		return
	}

	resp := gin.H{
		"success":    true,
		"message":    "Menu items updated successfully",
		"addedIds":   nonNil(result.AddedIDs),
		"removedIds": nonNil(result.RemovedIDs),
	}
	if result.SyncError != nil {
		resp["syncError"] = "menu config auto-sync failed"
	}
	c.JSON(http.StatusOK, resp)
}

func decodeItems(body []byte) ([]Dish, error) {
	invalid := core.Invalid(core.CodeInvalidItems, "Items must be an array")

	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return nil, invalid
	}

	if trimmed[0] == '[' {
		var items []Dish
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return nil, core.Invalid(core.CodeInvalidItems, "malformed items: %v", err)
		}
		if items == nil {
			items = []Dish{}
		}
		return items, nil
	}

	var wrapped struct {
		Items []Dish `json:"items"`
	}
	if err := json.Unmarshal(trimmed, &wrapped); err != nil || wrapped.Items == nil {
		return nil, invalid
	}
	return wrapped.Items, nil
}

func nonNil(ids []string) []string {
	if ids == nil {
		return []string{}
	}
	return ids
}

// --------------------------------------------------
// Menu config
// --------------------------------------------------

func (h *Handler) GetConfig(c *gin.Context) {
	cfg, err := h.service.Config(c.Request.Context(), c.Query("city"))
	if err != nil {
		core.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cfg)
}

func (h *Handler) PutConfig(c *gin.Context) {
	var cfg Config
	if err := c.ShouldBindJSON(&cfg); err != nil {
		core.RespondError(c, core.Invalid(core.CodeInvalidConfig, "Config must have categories array"))
		return
	}

	if _, err := h.service.SetConfig(c.Request.Context(), c.Query("city"), cfg); err != nil {
		core.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Menu config updated successfully",
	})
}

func (h *Handler) GetVisible(c *gin.Context) {
	menu, err := h.service.VisibleMenu(c.Request.Context(), c.Query("city"))
	if err != nil {
		core.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, menu)
}
