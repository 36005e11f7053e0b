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

// LectureVideoHandler wires lecture video HTTP routes.
type LectureVideoHandler struct {
	service service.LectureVideoService
	logger  zerolog.Logger
}

// NewLectureVideoHandler constructs the handler.
func NewLectureVideoHandler(service service.LectureVideoService, logger zerolog.Logger) *LectureVideoHandler {
	return &LectureVideoHandler{
		service: service,
		logger:  logger.With().Str("component", "lecture_video_handler").Logger(),
	}
}

// Register attaches lecture video endpoints to the router group.
func (h *LectureVideoHandler) Register(router fiber.Router) {
	router.Get("", h.list)
	router.Get("/course/:courseCode", h.listByCourse)
	router.Get("/:id", h.get)
	router.Post("", h.create)
	router.Patch("/:id", h.update)
	router.Delete("/:id", h.delete)
}

func (h *LectureVideoHandler) list(c *fiber.Ctx) error {
	videos, err := h.service.List(c.Context())
	if err != nil {
		return h.internalError(c, err)
	}
	return utils.SendSuccess(c, "videos retrieved", videos)
}

func (h *LectureVideoHandler) listByCourse(c *fiber.Ctx) error {
	videos, err := h.service.ListByCourse(c.Context(), c.Params("courseCode"))
	if err != nil {
		return h.internalError(c, err)
	}
	return utils.SendSuccess(c, "videos retrieved", videos)
}

func (h *LectureVideoHandler) get(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	video, err := h.service.Get(c.Context(), id)
	if err != nil {
		return h.handleError(c, err)
	}
	return utils.SendSuccess(c, "video retrieved", video)
}

func (h *LectureVideoHandler) create(c *fiber.Ctx) error {
	var payload dto.LectureVideoCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	video, err := h.service.Create(c.Context(), payload)
	if err != nil {
		return h.handleError(c, err)
	}
	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "video published", video)
}

func (h *LectureVideoHandler) update(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	var payload dto.LectureVideoUpdateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	video, err := h.service.Update(c.Context(), id, payload)
	if err != nil {
		return h.handleError(c, err)
	}
	return utils.SendSuccess(c, "video updated", video)
}

func (h *LectureVideoHandler) delete(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	if err := h.service.Delete(c.Context(), id); err != nil {
		return h.handleError(c, err)
	}
	return utils.SendSuccess(c, "video deleted", fiber.Map{"id": id})
}

func (h *LectureVideoHandler) handleError(c *fiber.Ctx, err error) error {
	var validationErrors validator.ValidationErrors
	switch {
	case errors.Is(err, service.ErrVideoNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "video not found")
	case errors.As(err, &validationErrors):
		return utils.SendError(c, fiber.StatusBadRequest, validationErrors.Error())
	default:
		return h.internalError(c, err)
	}
}

func (h *LectureVideoHandler) internalError(c *fiber.Ctx, err error) error {
	requestLogger(h.logger, c).Error().Err(err).Msg("internal server error")
	return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
}
