package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/Afaq499/cms/internal/dto"
	"github.com/Afaq499/cms/internal/models"
	"github.com/Afaq499/cms/internal/repository"
)

// ErrDegreeNotFound indicates the requested degree does not exist.
var ErrDegreeNotFound = errors.New("degree not found")

// ErrDegreeExists indicates a degree with the same name or code exists.
var ErrDegreeExists = errors.New("degree already exists")

// ErrDuplicateCourseCode indicates a degree payload repeats a course code.
var ErrDuplicateCourseCode = errors.New("duplicate course code in degree")

// DegreeService owns degree programs and their embedded course lists.
type DegreeService interface {
	List(ctx context.Context) ([]dto.DegreeResponse, error)
	Get(ctx context.Context, id uint) (dto.DegreeResponse, error)
	Create(ctx context.Context, payload dto.DegreeCreateRequest) (dto.DegreeResponse, error)
	Update(ctx context.Context, id uint, payload dto.DegreeUpdateRequest) (dto.DegreeResponse, error)
	Delete(ctx context.Context, id uint) error
}

type degreeService struct {
	degrees   repository.DegreeRepository
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewDegreeService constructs a DegreeService instance.
func NewDegreeService(degrees repository.DegreeRepository, validate *validator.Validate, logger zerolog.Logger) DegreeService {
	return &degreeService{
		degrees:   degrees,
		validator: validate,
		logger:    logger.With().Str("component", "degree_service").Logger(),
	}
}

func (s *degreeService) List(ctx context.Context) ([]dto.DegreeResponse, error) {
	degrees, err := s.degrees.List(ctx)
	if err != nil {
		return nil, err
	}
	return dto.NewDegreeResponseSlice(degrees), nil
}

func (s *degreeService) Get(ctx context.Context, id uint) (dto.DegreeResponse, error) {
	degree, err := s.degrees.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.DegreeResponse{}, ErrDegreeNotFound
		}
		return dto.DegreeResponse{}, err
	}
	return dto.NewDegreeResponse(degree), nil
}

func (s *degreeService) Create(ctx context.Context, payload dto.DegreeCreateRequest) (dto.DegreeResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.DegreeResponse{}, err
	}
	if err := checkCourseCodes(payload.Courses); err != nil {
		return dto.DegreeResponse{}, err
	}

	if _, err := s.degrees.GetByName(ctx, payload.Name); err == nil {
		return dto.DegreeResponse{}, ErrDegreeExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return dto.DegreeResponse{}, err
	}

	// Degree codes are stored uppercase and must be unique.
	code := strings.ToUpper(payload.Code)
	if _, err := s.degrees.GetByCode(ctx, code); err == nil {
		return dto.DegreeResponse{}, ErrDegreeExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return dto.DegreeResponse{}, err
	}

	duration := payload.Duration
	if duration == 0 {
		duration = 4
	}

	degree := models.Degree{
		Name:        payload.Name,
		Code:        code,
		Description: payload.Description,
		Duration:    duration,
		Courses:     payload.Courses,
	}

	if err := s.degrees.Create(ctx, &degree); err != nil {
		return dto.DegreeResponse{}, err
	}

	s.logger.Info().Uint("degree_id", degree.ID).Str("code", degree.Code).Int("courses", len(degree.Courses)).Msg("degree created")

	return dto.NewDegreeResponse(degree), nil
}

func (s *degreeService) Update(ctx context.Context, id uint, payload dto.DegreeUpdateRequest) (dto.DegreeResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.DegreeResponse{}, err
	}

	degree, err := s.degrees.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.DegreeResponse{}, ErrDegreeNotFound
		}
		return dto.DegreeResponse{}, err
	}

	if payload.Name != nil && *payload.Name != degree.Name {
		if _, err := s.degrees.GetByName(ctx, *payload.Name); err == nil {
			return dto.DegreeResponse{}, ErrDegreeExists
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.DegreeResponse{}, err
		}
		degree.Name = *payload.Name
	}
	if payload.Code != nil {
		code := strings.ToUpper(*payload.Code)
		if code != degree.Code {
			if _, err := s.degrees.GetByCode(ctx, code); err == nil {
				return dto.DegreeResponse{}, ErrDegreeExists
			} else if !errors.Is(err, gorm.ErrRecordNotFound) {
				return dto.DegreeResponse{}, err
			}
		}
		degree.Code = code
	}
	if payload.Description != nil {
		degree.Description = *payload.Description
	}
	if payload.Duration != nil {
		degree.Duration = *payload.Duration
	}
	if payload.Courses != nil {
		if err := checkCourseCodes(payload.Courses); err != nil {
			return dto.DegreeResponse{}, err
		}
		degree.Courses = payload.Courses
	}

	if err := s.degrees.Update(ctx, &degree); err != nil {
		return dto.DegreeResponse{}, err
	}

	return dto.NewDegreeResponse(degree), nil
}

func (s *degreeService) Delete(ctx context.Context, id uint) error {
	if err := s.degrees.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrDegreeNotFound
		}
		return err
	}
	return nil
}

func checkCourseCodes(courses []models.Course) error {
	seen := make(map[string]struct{}, len(courses))
	for _, course := range courses {
		if _, dup := seen[course.Code]; dup {
			return fmt.Errorf("%w: %s", ErrDuplicateCourseCode, course.Code)
		}
		seen[course.Code] = struct{}{}
	}
	return nil
}
