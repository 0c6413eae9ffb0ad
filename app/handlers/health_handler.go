package handlers

import (
	"context"
	"time"

	"github.com/amirphl/linkhub/app/dto"
	"github.com/gofiber/fiber/v3"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const healthCheckTimeout = 3 * time.Second

// DBPinger is satisfied by *sql.DB
type DBPinger interface {
	PingContext(ctx context.Context) error
}

// HealthHandlerInterface defines the contract for operational endpoints
type HealthHandlerInterface interface {
	Ping(c fiber.Ctx) error
	Health(c fiber.Ctx) error
}

type HealthHandler struct {
	db      DBPinger
	cache   *redis.Client
	version string
	log     *zap.Logger
}

// NewHealthHandler creates the handler. cache may be nil.
func NewHealthHandler(db DBPinger, cache *redis.Client, version string, log *zap.Logger) HealthHandlerInterface {
	return &HealthHandler{db: db, cache: cache, version: version, log: log}
}

func (h *HealthHandler) Ping(c fiber.Ctx) error {
	return c.SendString("pong")
}

// Health
// @Summary Health Check
// @Tags Operations
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.HealthResponse}
// @Failure 503 {object} dto.APIResponse{data=dto.HealthResponse}
// @Router /healthz [get]
func (h *HealthHandler) Health(c fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(context.Background(), healthCheckTimeout)
	defer cancel()

	status := dto.HealthResponse{
		Status:   "ok",
		Database: "ok",
		Cache:    "disabled",
		Version:  h.version,
	}

	if err := h.db.PingContext(ctx); err != nil {
		h.log.Error("Database health check failed", zap.Error(err))
		status.Status = "degraded"
		status.Database = "down"
	}

	if h.cache != nil {
		status.Cache = "ok"
		if err := h.cache.Ping(ctx).Err(); err != nil {
			h.log.Error("Redis health check failed", zap.Error(err))
			status.Status = "degraded"
			status.Cache = "down"
		}
	}

	if status.Status != "ok" {
		return c.Status(fiber.StatusServiceUnavailable).JSON(dto.APIResponse{
			Success: false,
			Message: "Service is degraded",
			Data:    status,
			Error:   dto.ErrorDetail{Code: "SERVICE_UNAVAILABLE"},
		})
	}

	return c.JSON(dto.APIResponse{
		Success: true,
		Message: "Service is healthy",
		Data:    status,
	})
}
