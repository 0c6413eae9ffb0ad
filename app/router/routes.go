// Package router provides HTTP routing, middleware configuration, and server setup for the web application
package router

import (
	"encoding/json"
	"errors"

	"github.com/amirphl/linkhub/app/dto"
	"github.com/amirphl/linkhub/app/handlers"
	"github.com/amirphl/linkhub/app/middleware"
	"github.com/amirphl/linkhub/config"
	_ "github.com/amirphl/linkhub/docs"
	"github.com/amirphl/linkhub/utils"
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/gofiber/fiber/v3/middleware/recover"
	"github.com/gofiber/fiber/v3/middleware/requestid"
	fiberutils "github.com/gofiber/utils/v2"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/swaggo/swag"
	"go.uber.org/zap"
)

// Router interface for HTTP routing
type Router interface {
	SetupRoutes()
	Start(address string) error
	GetApp() *fiber.App
}

// Handlers groups every endpoint the router mounts
type Handlers struct {
	ShortLink   handlers.ShortLinkHandlerInterface
	LandingPage handlers.LandingPageHandlerInterface
	Contact     handlers.ContactHandlerInterface
	Health      handlers.HealthHandlerInterface
}

// FiberRouter implements Router using Fiber v3
type FiberRouter struct {
	app      *fiber.App
	config   *config.Config
	handlers Handlers
	log      *zap.Logger
}

// NewFiberRouter creates a new Fiber router
func NewFiberRouter(cfg *config.Config, h Handlers, log *zap.Logger) *FiberRouter {
	app := fiber.New(fiber.Config{
		AppName:      "linkhub",
		ServerHeader: "linkhub",
		ErrorHandler: errorHandler(log),
		BodyLimit:    cfg.Server.BodyLimit,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
		JSONEncoder:  json.Marshal,
		JSONDecoder:  json.Unmarshal,
	})

	return &FiberRouter{
		app:      app,
		config:   cfg,
		handlers: h,
		log:      log,
	}
}

// SetupRoutes configures all application routes. Every fixed path has a
// length other than the short key length so none of them can shadow a key.
func (r *FiberRouter) SetupRoutes() {
	r.setupMiddleware()

	r.app.Get("/ping", r.handlers.Health.Ping)
	r.app.Get("/healthz", r.handlers.Health.Health)

	if r.config.Metrics.Enabled {
		r.app.Get(r.config.Metrics.Path, adaptor.HTTPHandler(promhttp.Handler()))
	}

	if r.config.Deployment.IsDevelopment() {
		r.app.Get("/swagger.json", r.serveSwaggerJSON)
		r.log.Info("API documentation enabled for development")
	}

	landing := r.app.Group("/landing-page")
	landing.Get("/ping", r.handlers.LandingPage.Ping)
	landing.Get("/:path", r.handlers.LandingPage.Get)
	landing.Post("/:path", r.handlers.LandingPage.Create)

	contact := r.app.Group("/contact")
	contact.Get("/ping", r.handlers.Contact.Ping)
	contact.Post("/topics", r.handlers.Contact.CreateTopic)
	contact.Post("/messages", r.handlers.Contact.CreateMessage)
	contact.Get("/topics/:topic_id/messages", middleware.BearerToken(r.config.Contact.Token), r.handlers.Contact.ListMessages)

	r.mountShortLinks(r.app.Group("/short-link"))
	// Root mount goes last, /:short_key matches any single segment
	r.mountShortLinks(r.app)

	r.app.Use(r.notFoundHandler)

	r.log.Info("Routes configured successfully")
}

func (r *FiberRouter) mountShortLinks(router fiber.Router) {
	router.Post("/gen", r.handlers.ShortLink.Create)
	router.Get("/:short_key", r.handlers.ShortLink.Redirect)
	router.Get("/:short_key/info", r.handlers.ShortLink.Stats)
}

func (r *FiberRouter) setupMiddleware() {
	// Request ID middleware - must be first
	r.app.Use(requestid.New(requestid.Config{
		Header:    "X-Request-ID",
		Generator: uuid.NewString,
	}))

	r.app.Use(recover.New(recover.Config{
		EnableStackTrace: true,
		StackTraceHandler: func(c fiber.Ctx, e any) {
			r.log.Error("panic",
				zap.String("request_id", fiberutils.CopyString(requestid.FromContext(c))),
				zap.Any("error", e),
				zap.String("path", fiberutils.CopyString(c.Path())),
				zap.String("method", fiberutils.CopyString(c.Method())),
				zap.String("ip", fiberutils.CopyString(c.IP())),
			)
		},
	}))

	r.app.Use(middleware.Metrics())
	r.app.Use(middleware.AccessLog(r.log, "/ping", "/healthz", r.config.Metrics.Path))
}

// Start starts the HTTP server
func (r *FiberRouter) Start(address string) error {
	r.log.Info("Starting server", zap.String("address", address))
	return r.app.Listen(address, fiber.ListenConfig{DisableStartupMessage: true})
}

// GetApp returns the Fiber app instance
func (r *FiberRouter) GetApp() *fiber.App {
	return r.app
}

func (r *FiberRouter) serveSwaggerJSON(c fiber.Ctx) error {
	doc, err := swag.ReadDoc()
	if err != nil {
		r.log.Error("Failed to render swagger document", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(dto.APIResponse{
			Success: false,
			Message: "Failed to load Swagger documentation",
			Error: dto.ErrorDetail{
				Code: "SWAGGER_LOAD_ERROR",
			},
		})
	}

	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.SendString(doc)
}

func (r *FiberRouter) notFoundHandler(c fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(dto.APIResponse{
		Success: false,
		Message: "The requested resource was not found",
		Error: dto.ErrorDetail{
			Code: "NOT_FOUND",
			Details: fiber.Map{
				"path":       c.Path(),
				"method":     c.Method(),
				"request_id": requestid.FromContext(c),
			},
		},
	})
}

func errorHandler(log *zap.Logger) fiber.ErrorHandler {
	return func(c fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		message := "An internal server error occurred"
		errorCode := "INTERNAL_ERROR"

		var fe *fiber.Error
		if errors.As(err, &fe) {
			code = fe.Code
			if code < fiber.StatusInternalServerError {
				message = fe.Message
				errorCode = "REQUEST_ERROR"
			}
		}

		requestID := requestid.FromContext(c)
		log.Error("Request failed",
			zap.Int("status", code),
			zap.String("request_id", requestID),
			zap.String("path", c.Path()),
			zap.Error(err),
		)

		return c.Status(code).JSON(dto.APIResponse{
			Success: false,
			Message: message,
			Error: dto.ErrorDetail{
				Code: errorCode,
				Details: fiber.Map{
					"timestamp":  utils.UTCNow().Unix(),
					"request_id": requestID,
				},
			},
		})
	}
}
