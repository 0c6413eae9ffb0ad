package handlers

import (
	"github.com/amirphl/linkhub/app/dto"
	businessflow "github.com/amirphl/linkhub/business_flow"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ContactHandlerInterface defines the contract for contact endpoints
type ContactHandlerInterface interface {
	CreateTopic(c fiber.Ctx) error
	CreateMessage(c fiber.Ctx) error
	ListMessages(c fiber.Ctx) error
	Ping(c fiber.Ctx) error
}

type ContactHandler struct {
	flow      businessflow.ContactFlow
	validator *validator.Validate
	log       *zap.Logger
}

func NewContactHandler(flow businessflow.ContactFlow, log *zap.Logger) ContactHandlerInterface {
	return &ContactHandler{
		flow:      flow,
		validator: validator.New(),
		log:       log,
	}
}

// CreateTopic
// @Summary Create Contact Topic
// @Tags Contact
// @Accept json
// @Produce json
// @Param request body dto.CreateTopicRequest true "Topic"
// @Success 200 {object} dto.CreateTopicResponse
// @Failure 400 {object} dto.APIResponse
// @Failure 500 {object} dto.APIResponse
// @Router /contact/topics [post]
func (h *ContactHandler) CreateTopic(c fiber.Ctx) error {
	var req dto.CreateTopicRequest
	if err := c.Bind().JSON(&req); err != nil {
		return ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}

	if err := h.validator.Struct(&req); err != nil {
		return ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", validationMessages(err))
	}

	ctx, cancel := createRequestContext(c, "/contact/topics")
	defer cancel()

	resp, err := h.flow.CreateTopic(ctx, &req)
	if err != nil {
		return flowErrorResponse(c, err)
	}
	return c.JSON(resp)
}

// CreateMessage
// @Summary Send Contact Message
// @Tags Contact
// @Accept json
// @Param request body dto.CreateMessageRequest true "Message"
// @Success 201
// @Failure 400 {object} dto.APIResponse
// @Failure 404 {object} dto.APIResponse "Unknown topic"
// @Failure 500 {object} dto.APIResponse
// @Router /contact/messages [post]
func (h *ContactHandler) CreateMessage(c fiber.Ctx) error {
	var req dto.CreateMessageRequest
	if err := c.Bind().JSON(&req); err != nil {
		return ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}

	if err := h.validator.Struct(&req); err != nil {
		return ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", validationMessages(err))
	}

	ctx, cancel := createRequestContext(c, "/contact/messages")
	defer cancel()

	if err := h.flow.CreateMessage(ctx, &req); err != nil {
		return flowErrorResponse(c, err)
	}
	c.Status(fiber.StatusCreated)
	return nil
}

// ListMessages
// @Summary List Topic Messages
// @Tags Contact
// @Produce json
// @Security BearerAuth
// @Param topic_id path string true "Topic ID"
// @Success 200 {array} dto.MessageDTO
// @Failure 401 {object} dto.APIResponse
// @Failure 404 {object} dto.APIResponse
// @Failure 500 {object} dto.APIResponse
// @Router /contact/topics/{topic_id}/messages [get]
func (h *ContactHandler) ListMessages(c fiber.Ctx) error {
	topicID, err := uuid.Parse(c.Params("topic_id"))
	if err != nil {
		return flowErrorResponse(c, businessflow.ErrTopicNotFound)
	}

	ctx, cancel := createRequestContext(c, "/contact/topics/:topic_id/messages")
	defer cancel()

	messages, err := h.flow.ListMessages(ctx, topicID)
	if err != nil {
		return flowErrorResponse(c, err)
	}
	return c.JSON(messages)
}

func (h *ContactHandler) Ping(c fiber.Ctx) error {
	return c.SendString("pong")
}
