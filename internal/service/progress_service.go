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

// ErrProgressNotFound indicates the progress record does not exist.
var ErrProgressNotFound = errors.New("progress record not found")

// ErrProgressExists indicates the (student, course) pair already has a record.
var ErrProgressExists = errors.New("progress record already exists for this course")

// ProgressService owns per (student, course) academic records.
type ProgressService interface {
	List(ctx context.Context) ([]dto.ProgressResponse, error)
	ListByStudent(ctx context.Context, studentID uint) ([]dto.ProgressResponse, error)
	Get(ctx context.Context, id uint) (dto.ProgressResponse, error)
	Create(ctx context.Context, payload dto.ProgressCreateRequest) (dto.ProgressResponse, error)
	Update(ctx context.Context, id uint, payload dto.ProgressUpdateRequest) (dto.ProgressResponse, error)
	Delete(ctx context.Context, id uint) error
}

type progressService struct {
	progress  repository.ProgressRepository
	dashboard DashboardService
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewProgressService constructs a ProgressService instance. Writes invalidate
// the affected student's cached dashboard.
func NewProgressService(progress repository.ProgressRepository, dashboard DashboardService, validate *validator.Validate, logger zerolog.Logger) ProgressService {
	return &progressService{
		progress:  progress,
		dashboard: dashboard,
		validator: validate,
		logger:    logger.With().Str("component", "progress_service").Logger(),
	}
}

func (s *progressService) List(ctx context.Context) ([]dto.ProgressResponse, error) {
	records, err := s.progress.List(ctx)
	if err != nil {
		return nil, err
	}
	return dto.NewProgressResponseSlice(records), nil
}

func (s *progressService) ListByStudent(ctx context.Context, studentID uint) ([]dto.ProgressResponse, error) {
	records, err := s.progress.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}
	return dto.NewProgressResponseSlice(records), nil
}

func (s *progressService) Get(ctx context.Context, id uint) (dto.ProgressResponse, error) {
	record, err := s.progress.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.ProgressResponse{}, ErrProgressNotFound
		}
		return dto.ProgressResponse{}, err
	}
	return dto.NewProgressResponse(record), nil
}

func (s *progressService) Create(ctx context.Context, payload dto.ProgressCreateRequest) (dto.ProgressResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.ProgressResponse{}, err
	}

	if _, err := s.progress.GetByStudentAndCourse(ctx, payload.StudentID, payload.CourseCode); err == nil {
		return dto.ProgressResponse{}, ErrProgressExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return dto.ProgressResponse{}, err
	}

	record := models.Progress{
		StudentID:    payload.StudentID,
		CourseCode:   payload.CourseCode,
		CourseTitle:  payload.CourseTitle,
		Assignments:  payload.Assignments,
		Quizzes:      payload.Quizzes,
		Midterm:      payload.Midterm,
		Final:        payload.Final,
		OverallGrade: models.GradePlaceholder,
		Status:       models.ProgressInProgress,
		Semester:     payload.Semester,
		Year:         payload.Year,
	}

	if err := s.progress.Create(ctx, &record); err != nil {
		return dto.ProgressResponse{}, err
	}

	if s.dashboard != nil {
		s.dashboard.Invalidate(ctx, record.StudentID)
	}

	s.logger.Info().Uint("progress_id", record.ID).Uint("student_id", record.StudentID).Str("course_code", record.CourseCode).Msg("progress record created")

	return dto.NewProgressResponse(record), nil
}

func (s *progressService) Update(ctx context.Context, id uint, payload dto.ProgressUpdateRequest) (dto.ProgressResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.ProgressResponse{}, err
	}

	record, err := s.progress.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.ProgressResponse{}, ErrProgressNotFound
		}
		return dto.ProgressResponse{}, err
	}

	if payload.Assignments != nil {
		record.Assignments = *payload.Assignments
	}
	if payload.Quizzes != nil {
		record.Quizzes = *payload.Quizzes
	}
	if payload.Midterm != nil {
		record.Midterm = *payload.Midterm
	}
	if payload.Final != nil {
		record.Final = *payload.Final
	}
	if payload.OverallGrade != nil {
		record.OverallGrade = *payload.OverallGrade
	}
	if payload.Status != nil {
		record.Status = *payload.Status
	}

	if err := s.progress.Update(ctx, &record); err != nil {
		return dto.ProgressResponse{}, err
	}

	if s.dashboard != nil {
		s.dashboard.Invalidate(ctx, record.StudentID)
	}

	return dto.NewProgressResponse(record), nil
}

func (s *progressService) Delete(ctx context.Context, id uint) error {
	record, err := s.progress.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProgressNotFound
		}
		return err
	}

	if err := s.progress.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProgressNotFound
		}
		return err
	}

	if s.dashboard != nil {
		s.dashboard.Invalidate(ctx, record.StudentID)
	}
	return nil
}
