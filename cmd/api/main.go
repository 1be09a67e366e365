package main

import (
	"context"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"ticketportal/internal/config"
	handlers "ticketportal/internal/http/handler"
	"ticketportal/internal/http/middleware"
	"ticketportal/internal/logger"
	"ticketportal/internal/otel"
	"ticketportal/internal/recaptcha"
	"ticketportal/internal/service"
	"ticketportal/internal/view"
	"ticketportal/internal/zendesk"
)

func main() {
	// Load configuration from environment variables (.env auto-loaded if present)
	cfg := config.Load()

	log := logger.New(cfg.LogLevel, cfg.LogFormat)
	defer log.Sync()

	shutdown, err := otel.Init(context.Background(), log)
	if err != nil {
		log.Fatal("failed to initialize tracing", zap.Error(err))
	}
	defer shutdown(context.Background())

	// Bot verification runs before any form field is processed.
	var verifier recaptcha.Verifier = recaptcha.NewGoogle(cfg.Recaptcha)
	if !cfg.Recaptcha.Enabled {
		log.Warn("recaptcha verification disabled; accepting all submissions")
		verifier = recaptcha.Disabled{}
	}

	tickets := zendesk.NewClient(cfg.Zendesk)
	svc := service.NewSubmissionService(tickets, verifier, log)

	rend, err := view.NewHTML(cfg.Recaptcha.SiteKey)
	if err != nil {
		log.Fatal("failed to load templates", zap.Error(err))
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler(),
	})

	reg := prometheus.NewRegistry()
	promMW, err := middleware.NewPrometheusMiddleware(reg)
	if err != nil {
		log.Fatal("failed to register metrics", zap.Error(err))
	}

	// Register global middleware
	app.Use(middleware.RequestID())
	app.Use(middleware.Logger(log))
	app.Use(otelfiber.Middleware())
	app.Use(promMW.Handler())

	// Register HTTP routes with injected service and renderer
	handlers.RegisterRoutes(app, svc, rend)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	addr := ":" + cfg.Port
	log.Info("listening", zap.String("addr", addr))

	if err := app.Listen(addr); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}
