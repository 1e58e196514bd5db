package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	_ "time/tzdata"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/xtanyr/lunch/internal/auth"
	"github.com/xtanyr/lunch/internal/blackout"
	"github.com/xtanyr/lunch/internal/calendar"
	"github.com/xtanyr/lunch/internal/config"
	"github.com/xtanyr/lunch/internal/db"
	"github.com/xtanyr/lunch/internal/export"
	"github.com/xtanyr/lunch/internal/logging"
	"github.com/xtanyr/lunch/internal/menu"
	"github.com/xtanyr/lunch/internal/order"
	"github.com/xtanyr/lunch/internal/router"
	"github.com/xtanyr/lunch/internal/storage"
	"github.com/xtanyr/lunch/internal/summary"
)

type repositories struct {
	menus     menu.Repository
	blackouts blackout.Repository
	orders    order.Repository
	close     func()
}

func main() {

	// ───────────────────────── CONFIG ─────────────────────────
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("invalid configuration")
	}

	log := logging.New(cfg.Log)
	if cfg.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	clock := calendar.SystemClock{Location: cfg.Location()}

	// ───────────────────────── STORAGE ─────────────────────────
	repos, err := openRepositories(ctx, cfg, log)
	if err != nil {
		log.WithError(err).Fatal("storage init failed")
	}
	defer repos.close()

	var uploader export.Uploader
	if r2 := cfg.R2(); r2.Enabled() {
		client, err := storage.NewR2Client(ctx, r2)
		if err != nil {
			log.WithError(err).Fatal("R2 init failed")
		}
		uploader = client
		log.WithField("bucket", r2.Bucket).Info("export upload enabled")
	}

	// ───────────────────────── SERVICES ─────────────────────────
	menuService := menu.NewService(repos.menus, clock, log.WithField("component", "menu"))
	blackoutService := blackout.NewService(repos.blackouts, log.WithField("component", "disabled-dates"))
	orderService := order.NewService(
		repos.orders,
		blackoutService,
		clock,
		log.WithField("component", "orders"),
	)
	summaryService := summary.NewService(menuService, orderService)
	exportService := export.NewService(
		orderService,
		menuService,
		uploader,
		log.WithField("component", "export"),
	)

	gate, err := auth.NewGate(cfg.AdminPassphrase, cfg.JWTSecret, cfg.AdminTokenTTL, clock)
	if err != nil {
		log.WithError(err).Fatal("admin gate init failed")
	}
	if !gate.Enabled() {
		log.Warn("ADMIN_PASSPHRASE not set, admin routes are open")
	}

	// ───────────────────────── HTTP ─────────────────────────
	r := router.NewRouter(router.Deps{
		Log:         log,
		CORSOrigins: cfg.CORSOrigins,
		Gate:        gate,
		Menu:        menuService,
		Blackout:    blackoutService,
		Orders:      orderService,
		Summary:     summaryService,
		Export:      exportService,
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		log.WithFields(logrus.Fields{
			"port":    cfg.Port,
			"storage": cfg.StorageDriver,
			"tz":      cfg.TimeZone,
		}).Info("API listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("server failed")
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("graceful shutdown failed")
	}
}

func openRepositories(ctx context.Context, cfg config.Config, log logrus.FieldLogger) (repositories, error) {
	if cfg.StorageDriver != config.DriverPostgres {
		log.Warn("using in-memory storage, data is lost on restart")
		return repositories{
			menus:     menu.NewInMemoryRepository(),
			blackouts: blackout.NewInMemoryRepository(),
			orders:    order.NewInMemoryRepository(),
			close:     func() {},
		}, nil
	}

	pool, err := db.Connect(ctx, cfg.DatabaseURL, log)
	if err != nil {
		return repositories{}, err
	}
	return repositories{
		menus:     menu.NewPostgresRepository(pool),
		blackouts: blackout.NewPostgresRepository(pool),
		orders:    order.NewPostgresRepository(pool),
		close:     pool.Close,
	}, nil
}
