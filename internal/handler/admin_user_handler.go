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

// AdminUserHandler wires the admin student and teacher roster routes.
type AdminUserHandler struct {
	service service.UserService
	logger  zerolog.Logger
}

// NewAdminUserHandler constructs the handler.
func NewAdminUserHandler(service service.UserService, logger zerolog.Logger) *AdminUserHandler {
	return &AdminUserHandler{
		service: service,
		logger:  logger.With().Str("component", "admin_user_handler").Logger(),
	}
}

// Register attaches roster endpoints to the admin router group.
func (h *AdminUserHandler) Register(router fiber.Router) {
	students := router.Group("/students")
	students.Get("", h.listStudents)
	students.Get("/:id", h.getStudent)
	students.Post("", h.createStudent)
	students.Patch("/:id", h.updateStudent)
	students.Delete("/:id", h.deleteStudent)

	teachers := router.Group("/teachers")
	teachers.Get("", h.listTeachers)
	teachers.Get("/:id", h.getTeacher)
	teachers.Post("", h.createTeacher)
	teachers.Patch("/:id", h.updateTeacher)
	teachers.Delete("/:id", h.deleteTeacher)
}

func (h *AdminUserHandler) listStudents(c *fiber.Ctx) error {
	students, err := h.service.ListStudents(c.Context())
	if err != nil {
		return h.internalError(c, err)
	}
	return utils.SendSuccess(c, "students retrieved", students)
}

func (h *AdminUserHandler) getStudent(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	student, err := h.service.GetStudent(c.Context(), id)
	if err != nil {
		return h.handleError(c, err)
	}
	return utils.SendSuccess(c, "student retrieved", student)
}

func (h *AdminUserHandler) createStudent(c *fiber.Ctx) error {
	var payload dto.StudentCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	result, err := h.service.CreateStudent(c.Context(), payload)
	if err != nil {
		return h.handleError(c, err)
	}

	// 207 signals that the account exists but some enrollments failed.
	status := fiber.StatusCreated
	message := "student created"
	if result.FanOut.Failed > 0 {
		status = fiber.StatusMultiStatus
		message = "student created with partial enrollment"
	}

	return utils.SendSuccessWithStatus(c, status, message, result)
}

func (h *AdminUserHandler) updateStudent(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	var payload dto.StudentUpdateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	student, err := h.service.UpdateStudent(c.Context(), id, payload)
	if err != nil {
		return h.handleError(c, err)
	}
	return utils.SendSuccess(c, "student updated", student)
}

func (h *AdminUserHandler) deleteStudent(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	if err := h.service.DeleteStudent(c.Context(), id); err != nil {
		return h.handleError(c, err)
	}
	return utils.SendSuccess(c, "student deleted", fiber.Map{"id": id})
}

func (h *AdminUserHandler) listTeachers(c *fiber.Ctx) error {
	teachers, err := h.service.ListTeachers(c.Context())
	if err != nil {
		return h.internalError(c, err)
	}
	return utils.SendSuccess(c, "teachers retrieved", teachers)
}

func (h *AdminUserHandler) getTeacher(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	teacher, err := h.service.GetTeacher(c.Context(), id)
	if err != nil {
		return h.handleError(c, err)
	}
	return utils.SendSuccess(c, "teacher retrieved", teacher)
}

func (h *AdminUserHandler) createTeacher(c *fiber.Ctx) error {
	var payload dto.TeacherCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	teacher, err := h.service.CreateTeacher(c.Context(), payload)
	if err != nil {
		return h.handleError(c, err)
	}
	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "teacher created", teacher)
}

func (h *AdminUserHandler) updateTeacher(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	var payload dto.TeacherUpdateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	teacher, err := h.service.UpdateTeacher(c.Context(), id, payload)
	if err != nil {
		return h.handleError(c, err)
	}
	return utils.SendSuccess(c, "teacher updated", teacher)
}

func (h *AdminUserHandler) deleteTeacher(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	if err := h.service.DeleteTeacher(c.Context(), id); err != nil {
		return h.handleError(c, err)
	}
	return utils.SendSuccess(c, "teacher deleted", fiber.Map{"id": id})
}

func (h *AdminUserHandler) handleError(c *fiber.Ctx, err error) error {
	var validationErrors validator.ValidationErrors
	switch {
	case errors.Is(err, service.ErrUserNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "user not found")
	case errors.Is(err, service.ErrEmailTaken):
		return utils.SendError(c, fiber.StatusConflict, "email already registered")
	case errors.Is(err, service.ErrStudentIDTaken):
		return utils.SendError(c, fiber.StatusConflict, "student id already registered")
	case errors.As(err, &validationErrors):
		return utils.SendError(c, fiber.StatusBadRequest, validationErrors.Error())
	default:
		return h.internalError(c, err)
	}
}

func (h *AdminUserHandler) internalError(c *fiber.Ctx, err error) error {
	requestLogger(h.logger, c).Error().Err(err).Msg("internal server error")
	return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
}
