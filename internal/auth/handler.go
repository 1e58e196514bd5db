package auth

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	gate *Gate
}

func NewHandler(gate *Gate) *Handler {
	return &Handler{gate: gate}
}

type sessionRequest struct {
	Passphrase string `json:"passphrase" binding:"required"`
}

// CreateSession trades the admin passphrase for a bearer token.
func (h *Handler) CreateSession(c *gin.Context) {
	if !h.gate.Enabled() {
		c.JSON(http.StatusOK, gin.H{"enabled": false})
		return
	}

	var req sessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "passphrase is required"})
		return
	}

	token, exp, err := h.gate.Login(req.Passphrase)
	if errors.Is(err, ErrInvalidPassphrase) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid passphrase"})
		return
	}
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create session"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"enabled":   true,
		"token":     token,
		"role":      RoleAdmin,
		"expiresAt": exp,
	})
}
