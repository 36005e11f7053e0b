package handler

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/Afaq499/cms/internal/dto"
	"github.com/Afaq499/cms/internal/service"
	"github.com/Afaq499/cms/internal/utils"
)

// ChatbotHandler wires the academic assistant route.
type ChatbotHandler struct {
	service service.ChatbotService
	logger  zerolog.Logger
}

// NewChatbotHandler constructs the handler.
func NewChatbotHandler(service service.ChatbotService, logger zerolog.Logger) *ChatbotHandler {
	return &ChatbotHandler{
		service: service,
		logger:  logger.With().Str("component", "chatbot_handler").Logger(),
	}
}

// Register attaches the chatbot endpoint to the router group.
func (h *ChatbotHandler) Register(router fiber.Router) {
	router.Post("/ask", h.ask)
}

// ask answers the authenticated student's question against their own data.
func (h *ChatbotHandler) ask(c *fiber.Ctx) error {
	studentID := userIDFromContext(c)
	if studentID == 0 {
		return utils.SendError(c, fiber.StatusUnauthorized, "authentication required")
	}

	var payload dto.ChatbotAskRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	response, err := h.service.Ask(c.Context(), studentID, payload)
	if err != nil {
		var validationErrors validator.ValidationErrors
		switch {
		case errors.Is(err, service.ErrStudentNotFound):
			return utils.SendError(c, fiber.StatusNotFound, "student not found")
		case errors.Is(err, service.ErrAssistantUnavailable):
			return utils.SendError(c, fiber.StatusServiceUnavailable, "assistant is not configured")
		case errors.As(err, &validationErrors):
			return utils.SendError(c, fiber.StatusBadRequest, validationErrors.Error())
		default:
			requestLogger(h.logger, c).Error().Err(err).Msg("assistant request failed")
			return utils.SendError(c, fiber.StatusBadGateway, "assistant request failed")
		}
	}

	return utils.SendSuccess(c, "reply generated", response)
}
