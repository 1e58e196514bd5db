package router

import (
	"net/http"
	"slices"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/xtanyr/lunch/internal/auth"
	"github.com/xtanyr/lunch/internal/blackout"
	"github.com/xtanyr/lunch/internal/export"
	"github.com/xtanyr/lunch/internal/location"
	"github.com/xtanyr/lunch/internal/logging"
	"github.com/xtanyr/lunch/internal/menu"
	"github.com/xtanyr/lunch/internal/middleware"
	"github.com/xtanyr/lunch/internal/order"
	"github.com/xtanyr/lunch/internal/summary"
)

// Deps is everything the HTTP surface is built from.
type Deps struct {
	Log         logrus.FieldLogger
	CORSOrigins []string

	Gate *auth.Gate

	Menu     *menu.Service
	Blackout *blackout.Service
	Orders   *order.Service
	Summary  *summary.Service
	Export   *export.Service
}

func NewRouter(d Deps) *gin.Engine {
	r := gin.New()
	r.Use(
		logging.GinLogger(d.Log),
		gin.Recovery(),
		cors.New(corsConfig(d.CORSOrigins)),
	)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	menuHandler := menu.NewHandler(d.Menu)
	blackoutHandler := blackout.NewHandler(d.Blackout)
	orderHandler := order.NewHandler(d.Orders)
	summaryHandler := summary.NewHandler(d.Summary)
	exportHandler := export.NewHandler(d.Export)
	authHandler := auth.NewHandler(d.Gate)

	admin := []gin.HandlerFunc{
		middleware.AdminMiddleware(d.Gate),
		middleware.RequireRole(auth.RoleAdmin),
	}
	gated := func(h gin.HandlerFunc) []gin.HandlerFunc {
		return append(slices.Clone(admin), h)
	}

	api := r.Group("/api")
	{
		api.GET("/locations", location.ListHandler)
		api.POST("/admin/session", authHandler.CreateSession)

		// ───────────────────────── ORDERS ─────────────────────────
		api.GET("/orders/:date", orderHandler.List)
		api.POST("/orders", orderHandler.Create)
		api.DELETE("/orders/:id", orderHandler.Delete)

		// ───────────────────────── MENU ─────────────────────────
		api.GET("/menu/items", menuHandler.GetItems)
		api.PUT("/menu/items", gated(menuHandler.PutItems)...)
		api.GET("/menu/sides", menuHandler.GetSides)
		api.GET("/menu/visible", menuHandler.GetVisible)
		api.GET("/menu/config", menuHandler.GetConfig)
		api.PUT("/menu/config", gated(menuHandler.PutConfig)...)

		// ───────────────────────── DISABLED DATES ─────────────────────────
		api.GET("/disabled-dates", blackoutHandler.Get)
		api.PUT("/disabled-dates", gated(blackoutHandler.Put)...)
		api.GET("/disabled-dates/check", blackoutHandler.Check)

		// ───────────────────────── REPORTS ─────────────────────────
		api.GET("/summary/:date", summaryHandler.Get)
		api.GET("/export", gated(exportHandler.Download)...)
	}

	return r
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders: []string{"Content-Disposition"},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 || slices.Contains(origins, "*") {
		cfg.AllowAllOrigins = true
		return cfg
	}
	cfg.AllowOrigins = origins
	cfg.AllowCredentials = true
	return cfg
}
