package service

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/Afaq499/cms/internal/dto"
	"github.com/Afaq499/cms/internal/models"
	"github.com/Afaq499/cms/internal/repository"
)

// ErrGdbNotFound indicates the discussion board does not exist.
var ErrGdbNotFound = errors.New("discussion board not found")

// GdbService owns graded discussion boards.
type GdbService interface {
	List(ctx context.Context) ([]dto.GdbResponse, error)
	ListByCourse(ctx context.Context, courseCode string) ([]dto.GdbResponse, error)
	Get(ctx context.Context, id uint) (dto.GdbResponse, error)
	Create(ctx context.Context, payload dto.GdbCreateRequest) (dto.GdbResponse, error)
	Update(ctx context.Context, id uint, payload dto.GdbUpdateRequest) (dto.GdbResponse, error)
	Delete(ctx context.Context, id uint) error
}

type gdbService struct {
	gdbs      repository.GdbRepository
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewGdbService constructs a GdbService instance.
func NewGdbService(gdbs repository.GdbRepository, validate *validator.Validate, logger zerolog.Logger) GdbService {
	return &gdbService{
		gdbs:      gdbs,
		validator: validate,
		logger:    logger.With().Str("component", "gdb_service").Logger(),
	}
}

func (s *gdbService) List(ctx context.Context) ([]dto.GdbResponse, error) {
	gdbs, err := s.gdbs.List(ctx)
	if err != nil {
		return nil, err
	}
	return dto.NewGdbResponseSlice(gdbs), nil
}

func (s *gdbService) ListByCourse(ctx context.Context, courseCode string) ([]dto.GdbResponse, error) {
	gdbs, err := s.gdbs.ListByCourseCode(ctx, courseCode)
	if err != nil {
		return nil, err
	}
	return dto.NewGdbResponseSlice(gdbs), nil
}

func (s *gdbService) Get(ctx context.Context, id uint) (dto.GdbResponse, error) {
	gdb, err := s.gdbs.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.GdbResponse{}, ErrGdbNotFound
		}
		return dto.GdbResponse{}, err
	}
	return dto.NewGdbResponse(gdb), nil
}

func (s *gdbService) Create(ctx context.Context, payload dto.GdbCreateRequest) (dto.GdbResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.GdbResponse{}, err
	}

	totalMarks := payload.TotalMarks
	if totalMarks <= 0 {
		totalMarks = 10
	}

	gdb := models.Gdb{
		Title:       payload.Title,
		Topic:       payload.Topic,
		DueDate:     payload.DueDate,
		Description: payload.Description,
		TotalMarks:  totalMarks,
		Status:      models.GdbStatusOpen,
		CourseCode:  payload.CourseCode,
		CourseName:  payload.CourseName,
		CreatedByID: payload.CreatedByID,
	}

	if err := s.gdbs.Create(ctx, &gdb); err != nil {
		return dto.GdbResponse{}, err
	}

	created, err := s.gdbs.GetByID(ctx, gdb.ID)
	if err != nil {
		return dto.GdbResponse{}, err
	}

	s.logger.Info().Uint("gdb_id", created.ID).Str("course_code", created.CourseCode).Msg("discussion board opened")

	return dto.NewGdbResponse(created), nil
}

func (s *gdbService) Update(ctx context.Context, id uint, payload dto.GdbUpdateRequest) (dto.GdbResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.GdbResponse{}, err
	}

	gdb, err := s.gdbs.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.GdbResponse{}, ErrGdbNotFound
		}
		return dto.GdbResponse{}, err
	}

	if payload.Title != nil {
		gdb.Title = *payload.Title
	}
	if payload.Topic != nil {
		gdb.Topic = *payload.Topic
	}
	if payload.DueDate != nil {
		gdb.DueDate = *payload.DueDate
	}
	if payload.Description != nil {
		gdb.Description = *payload.Description
	}
	if payload.TotalMarks != nil {
		gdb.TotalMarks = *payload.TotalMarks
	}
	if payload.Status != nil {
		gdb.Status = *payload.Status
	}

	if err := s.gdbs.Update(ctx, &gdb); err != nil {
		return dto.GdbResponse{}, err
	}

	return dto.NewGdbResponse(gdb), nil
}

func (s *gdbService) Delete(ctx context.Context, id uint) error {
	if err := s.gdbs.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrGdbNotFound
		}
		return err
	}
	return nil
}
