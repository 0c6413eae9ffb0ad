package handlers

import (
	"github.com/amirphl/linkhub/app/dto"
	businessflow "github.com/amirphl/linkhub/business_flow"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"
)

// ShortLinkHandlerInterface defines the contract for short link endpoints
type ShortLinkHandlerInterface interface {
	Create(c fiber.Ctx) error
	Redirect(c fiber.Ctx) error
	Stats(c fiber.Ctx) error
}

type ShortLinkHandler struct {
	flow      businessflow.ShortLinkFlow
	validator *validator.Validate
	log       *zap.Logger
}

func NewShortLinkHandler(flow businessflow.ShortLinkFlow, log *zap.Logger) ShortLinkHandlerInterface {
	return &ShortLinkHandler{
		flow:      flow,
		validator: validator.New(),
		log:       log,
	}
}

// Create shortens a URL
// @Summary Create Short Link
// @Tags ShortLinks
// @Accept json
// @Produce json
// @Param request body dto.CreateShortLinkRequest true "Destination URL"
// @Success 200 {object} dto.CreateShortLinkResponse
// @Failure 400 {object} dto.APIResponse "Malformed body or missing url"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /gen [post]
func (h *ShortLinkHandler) Create(c fiber.Ctx) error {
	var req dto.CreateShortLinkRequest
	if err := c.Bind().JSON(&req); err != nil {
		return ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}

	if err := h.validator.Struct(&req); err != nil {
		return ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", validationMessages(err))
	}

	ctx, cancel := createRequestContext(c, "/gen")
	defer cancel()

	resp, err := h.flow.Create(ctx, req.URL, c.Host())
	if err != nil {
		h.log.Error("Create short link failed", zap.String("kind", businessflow.KindOf(err).String()), zap.Error(err))
		return flowErrorResponse(c, err)
	}

	return c.JSON(resp)
}

// Redirect sends the visitor to the destination and counts the click
// @Summary Visit Short Link
// @Tags ShortLinks
// @Param short_key path string true "Short key"
// @Success 307 {string} string "Redirect"
// @Failure 404 {object} dto.APIResponse
// @Failure 500 {object} dto.APIResponse
// @Router /{short_key} [get]
func (h *ShortLinkHandler) Redirect(c fiber.Ctx) error {
	shortKey := c.Params("short_key")

	ctx, cancel := createRequestContext(c, "/:short_key")
	defer cancel()

	url, err := h.flow.Redirect(ctx, shortKey)
	if err != nil {
		if !businessflow.IsShortLinkNotFound(err) {
			h.log.Error("Short link redirect failed", zap.String("short_key", shortKey), zap.Error(err))
		}
		return flowErrorResponse(c, err)
	}

	return c.Redirect().Status(fiber.StatusTemporaryRedirect).To(url)
}

// Stats returns the short link record to the holder of its token
// @Summary Short Link Stats
// @Tags ShortLinks
// @Produce json
// @Param short_key path string true "Short key"
// @Param token query string true "Stats token"
// @Success 200 {object} dto.ShortLinkStatsResponse
// @Failure 401 {object} dto.APIResponse "Wrong token"
// @Failure 404 {object} dto.APIResponse "Unknown key or token omitted"
// @Failure 500 {object} dto.APIResponse
// @Router /{short_key}/info [get]
func (h *ShortLinkHandler) Stats(c fiber.Ctx) error {
	shortKey := c.Params("short_key")

	// token= with an empty value still counts as supplied
	var token *string
	if c.Request().URI().QueryArgs().Has("token") {
		t := c.Query("token")
		token = &t
	}

	ctx, cancel := createRequestContext(c, "/:short_key/info")
	defer cancel()

	stats, err := h.flow.GetStats(ctx, shortKey, token)
	if err != nil {
		if businessflow.KindOf(err) == businessflow.KindStore {
			h.log.Error("Short link stats failed", zap.String("short_key", shortKey), zap.Error(err))
		}
		return flowErrorResponse(c, err)
	}

	return c.JSON(stats)
}
