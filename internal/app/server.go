package app

import (
	"errors"
	"path/filepath"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"scoreboard/internal/config"
	"scoreboard/internal/event"
	"scoreboard/internal/leaderboard"
	"scoreboard/internal/logger"
	"scoreboard/internal/monitoring"
	"scoreboard/internal/security"
	"scoreboard/internal/ws"
)

type Server struct {
	app     *fiber.App
	cfg     *config.Config
	service *leaderboard.Service
	hub     *ws.Hub
}

func NewServer(cfg *config.Config) (*Server, error) {
	monitoring.Init()

	bus := event.NewBus()
	hub := ws.NewHub()
	store := leaderboard.NewFileStore(cfg.DataFile)
	service := leaderboard.NewService(store, security.NewSecret(cfg.ResetPassword), bus)
	leaderboard.RegisterConsumers(bus, hub)

	if err := service.Init(); err != nil {
		return nil, err
	}

	app := fiber.New(fiber.Config{
		AppName:               "scoreboard",
		DisableStartupMessage: true,
		ErrorHandler:          errorHandler,
	})

	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	app.Use(requestLogger())
	app.Use(monitoring.Middleware())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	api := app.Group("/api")
	leaderboard.RegisterRoutes(api, service)

	app.Use("/ws", func(c *fiber.Ctx) error {
		if !websocket.IsWebSocketUpgrade(c) {
			return fiber.ErrUpgradeRequired
		}
		return c.Next()
	})
	app.Get("/ws/leaderboard", websocket.New(hub.Handler(func() any {
		return service.Snapshot()
	})))

	app.Static("/static", cfg.StaticDir)
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendFile(filepath.Join(cfg.StaticDir, "index.html"))
	})

	return &Server{app: app, cfg: cfg, service: service, hub: hub}, nil
}

func (s *Server) App() *fiber.App {
	return s.app
}

func (s *Server) Start() error {
	logger.Log.Info("listening",
		zap.String("port", s.cfg.Port),
		zap.String("data_file", s.cfg.DataFile),
	)
	return s.app.Listen(":" + s.cfg.Port)
}

func (s *Server) Shutdown() error {
	return s.app.ShutdownWithTimeout(s.cfg.ShutdownTimeout)
}

func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
	}

	if code >= fiber.StatusInternalServerError {
		logger.Log.Error("request failed",
			zap.String("path", c.Path()),
			zap.Error(err),
		)
	}

	return c.Status(code).JSON(fiber.Map{
		"ok":    false,
		"error": err.Error(),
	})
}

func requestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		var fe *fiber.Error
		if errors.As(err, &fe) {
			status = fe.Code
		}

		rid, _ := c.Locals("requestid").(string)
		logger.Log.Info("request",
			zap.String("request_id", rid),
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Int("status", status),
			zap.Duration("latency", time.Since(start)),
		)
		return err
	}
}
