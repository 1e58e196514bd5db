package order

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

// List returns the orders of one partition for a date.
func (h *Handler) List(c *gin.Context) {
	orders, err := h.service.ListByDate(
		c.Request.Context(),
		c.Query("city"),
		c.Query("address"),
		c.Param("date"),
	)
	if err != nil {
		core.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

func (h *Handler) Create(c *gin.Context) {
	var sub Submission
	if err := c.ShouldBindJSON(&sub); err != nil {
		core.RespondError(c, core.Invalid(core.CodeInvalidBody, "Некорректный формат заказа."))
		return
	}
	sub.ResolveDepartment()

	o, err := h.service.Submit(c.Request.Context(), sub)
	if err != nil {
		core.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, o)
}

func (h *Handler) Delete(c *gin.Context) {
	err := h.service.Delete(
		c.Request.Context(),
		c.Query("city"),
		c.Query("address"),
		c.Param("id"),
	)
	if err != nil {
		core.RespondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
