package handlers

import (
	businessflow "github.com/amirphl/linkhub/business_flow"
	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"
)

// LandingPageHandlerInterface defines the contract for landing page endpoints
type LandingPageHandlerInterface interface {
	Create(c fiber.Ctx) error
	Get(c fiber.Ctx) error
	Ping(c fiber.Ctx) error
}

type LandingPageHandler struct {
	flow businessflow.LandingPageFlow
	log  *zap.Logger
}

func NewLandingPageHandler(flow businessflow.LandingPageFlow, log *zap.Logger) LandingPageHandlerInterface {
	return &LandingPageHandler{flow: flow, log: log}
}

func internalServerError(c fiber.Ctx) error {
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal server error"})
}

// Create stores the raw request body as the page at path
// @Summary Create Landing Page
// @Tags LandingPages
// @Accept html
// @Produce json
// @Param path path string true "Page path"
// @Success 200 {object} dto.CreateLandingPageResponse
// @Failure 500 {object} map[string]string
// @Router /landing-page/{path} [post]
func (h *LandingPageHandler) Create(c fiber.Ctx) error {
	path := c.Params("path")
	// fasthttp reuses the request buffer after the handler returns
	html := append([]byte(nil), c.Body()...)

	ctx, cancel := createRequestContext(c, "/landing-page/:path")
	defer cancel()

	resp, err := h.flow.Create(ctx, path, html)
	if err != nil {
		return internalServerError(c)
	}
	return c.JSON(resp)
}

// Get serves a stored page
// @Summary Get Landing Page
// @Tags LandingPages
// @Produce html
// @Param path path string true "Page path"
// @Success 200 {string} string "Page body"
// @Failure 404 {string} string "Page not found"
// @Failure 500 {object} map[string]string
// @Router /landing-page/{path} [get]
func (h *LandingPageHandler) Get(c fiber.Ctx) error {
	path := c.Params("path")

	ctx, cancel := createRequestContext(c, "/landing-page/:path")
	defer cancel()

	html, err := h.flow.Get(ctx, path)
	if err != nil {
		if businessflow.IsLandingPageNotFound(err) {
			c.Set(fiber.HeaderContentType, fiber.MIMETextPlainCharsetUTF8)
			return c.Status(fiber.StatusNotFound).SendString("Page not found")
		}
		return internalServerError(c)
	}

	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.Send(html)
}

func (h *LandingPageHandler) Ping(c fiber.Ctx) error {
	return c.SendString("pong")
}
