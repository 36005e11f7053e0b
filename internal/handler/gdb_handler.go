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

// GdbHandler wires graded discussion board HTTP routes.
type GdbHandler struct {
	service service.GdbService
	logger  zerolog.Logger
}

// NewGdbHandler constructs the handler.
func NewGdbHandler(service service.GdbService, logger zerolog.Logger) *GdbHandler {
	return &GdbHandler{
		service: service,
		logger:  logger.With().Str("component", "gdb_handler").Logger(),
	}
}

// Register attaches discussion board endpoints to the router group.
func (h *GdbHandler) Register(router fiber.Router) {
	router.Get("", h.list)
	router.Get("/course/:courseCode", h.listByCourse)
	router.Get("/:id", h.get)
	router.Post("", h.create)
	router.Patch("/:id", h.update)
	router.Delete("/:id", h.delete)
}

func (h *GdbHandler) list(c *fiber.Ctx) error {
	gdbs, err := h.service.List(c.Context())
	if err != nil {
		return h.internalError(c, err)
	}
	return utils.SendSuccess(c, "discussion boards retrieved", gdbs)
}

func (h *GdbHandler) listByCourse(c *fiber.Ctx) error {
	gdbs, err := h.service.ListByCourse(c.Context(), c.Params("courseCode"))
	if err != nil {
		return h.internalError(c, err)
	}
	return utils.SendSuccess(c, "discussion boards retrieved", gdbs)
}

func (h *GdbHandler) get(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	gdb, err := h.service.Get(c.Context(), id)
	if err != nil {
		return h.handleError(c, err)
	}
	return utils.SendSuccess(c, "discussion board retrieved", gdb)
}

func (h *GdbHandler) create(c *fiber.Ctx) error {
	var payload dto.GdbCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	gdb, err := h.service.Create(c.Context(), payload)
	if err != nil {
		return h.handleError(c, err)
	}
	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "discussion board created", gdb)
}

func (h *GdbHandler) update(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	var payload dto.GdbUpdateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	gdb, err := h.service.Update(c.Context(), id, payload)
	if err != nil {
		return h.handleError(c, err)
	}
	return utils.SendSuccess(c, "discussion board updated", gdb)
}

func (h *GdbHandler) delete(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	if err := h.service.Delete(c.Context(), id); err != nil {
		return h.handleError(c, err)
	}
	return utils.SendSuccess(c, "discussion board deleted", fiber.Map{"id": id})
}

func (h *GdbHandler) handleError(c *fiber.Ctx, err error) error {
	var validationErrors validator.ValidationErrors
	switch {
	case errors.Is(err, service.ErrGdbNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "discussion board not found")
	case errors.As(err, &validationErrors):
		return utils.SendError(c, fiber.StatusBadRequest, validationErrors.Error())
	default:
		return h.internalError(c, err)
	}
}

func (h *GdbHandler) internalError(c *fiber.Ctx, err error) error {
	requestLogger(h.logger, c).Error().Err(err).Msg("internal server error")
	return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
}
