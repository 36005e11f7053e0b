package service

import (
	"context"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"gorm.io/gorm"

	"github.com/Afaq499/cms/internal/dto"
	"github.com/Afaq499/cms/internal/models"
	"github.com/Afaq499/cms/internal/repository"
)

// ErrAssignmentNotFound indicates the assignment does not exist.
var ErrAssignmentNotFound = errors.New("assignment not found")

// ErrAlreadySubmitted indicates the assignment was submitted earlier.
var ErrAlreadySubmitted = errors.New("assignment already submitted")

// ErrScoreOutOfRange indicates a grade outside [0, total marks]. Assignment
// and quiz grading share this policy.
var ErrScoreOutOfRange = errors.New("score must be between 0 and total marks")

// AssignmentService owns assignment CRUD, submission and grading.
type AssignmentService interface {
	List(ctx context.Context, filter repository.AssignmentFilter) ([]dto.AssignmentResponse, error)
	ListByCourse(ctx context.Context, courseCode string) ([]dto.AssignmentResponse, error)
	Get(ctx context.Context, id uint) (dto.AssignmentResponse, error)
	Create(ctx context.Context, payload dto.AssignmentCreateRequest) (dto.AssignmentResponse, error)
	Update(ctx context.Context, id uint, payload dto.AssignmentUpdateRequest) (dto.AssignmentResponse, error)
	Delete(ctx context.Context, id uint) error
	Submit(ctx context.Context, id uint, payload dto.AssignmentSubmitRequest) (dto.AssignmentResponse, error)
	Grade(ctx context.Context, id uint, payload dto.AssignmentGradeRequest) (dto.AssignmentResponse, error)
}

type assignmentService struct {
	assignments repository.AssignmentRepository
	validator   *validator.Validate
	sanitizer   *bluemonday.Policy
	logger      zerolog.Logger
	now         func() time.Time
}

// NewAssignmentService constructs an AssignmentService instance. Submission
// text passes through a strict HTML sanitizer before persistence.
func NewAssignmentService(assignments repository.AssignmentRepository, validate *validator.Validate, logger zerolog.Logger) AssignmentService {
	return &assignmentService{
		assignments: assignments,
		validator:   validate,
		sanitizer:   bluemonday.StrictPolicy(),
		logger:      logger.With().Str("component", "assignment_service").Logger(),
		now:         time.Now,
	}
}

func (s *assignmentService) List(ctx context.Context, filter repository.AssignmentFilter) ([]dto.AssignmentResponse, error) {
	assignments, err := s.assignments.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return dto.NewAssignmentResponseSlice(assignments), nil
}

func (s *assignmentService) ListByCourse(ctx context.Context, courseCode string) ([]dto.AssignmentResponse, error) {
	return s.List(ctx, repository.AssignmentFilter{CourseCode: &courseCode})
}

func (s *assignmentService) Get(ctx context.Context, id uint) (dto.AssignmentResponse, error) {
	assignment, err := s.assignments.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.AssignmentResponse{}, ErrAssignmentNotFound
		}
		return dto.AssignmentResponse{}, err
	}
	return dto.NewAssignmentResponse(assignment), nil
}

func (s *assignmentService) Create(ctx context.Context, payload dto.AssignmentCreateRequest) (dto.AssignmentResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.AssignmentResponse{}, err
	}

	assignment := models.Assignment{
		AssignmentNumber: payload.AssignmentNumber,
		Title:            payload.Title,
		DueDate:          payload.DueDate,
		TotalMarks:       payload.TotalMarks,
		Status:           models.AssignmentStatusNotStarted,
		CourseCode:       payload.CourseCode,
		CourseName:       payload.CourseName,
		Description:      payload.Description,
		Instructions:     payload.Instructions,
		Content:          payload.Content,
		StudentID:        payload.StudentID,
		TeacherID:        payload.TeacherID,
	}

	if err := s.assignments.Create(ctx, &assignment); err != nil {
		return dto.AssignmentResponse{}, err
	}

	created, err := s.assignments.GetByID(ctx, assignment.ID)
	if err != nil {
		return dto.AssignmentResponse{}, err
	}

	s.logger.Info().Uint("assignment_id", created.ID).Str("course_code", created.CourseCode).Msg("assignment created")

	return dto.NewAssignmentResponse(created), nil
}

func (s *assignmentService) Update(ctx context.Context, id uint, payload dto.AssignmentUpdateRequest) (dto.AssignmentResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.AssignmentResponse{}, err
	}

	assignment, err := s.assignments.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.AssignmentResponse{}, ErrAssignmentNotFound
		}
		return dto.AssignmentResponse{}, err
	}

	if payload.Title != nil {
		assignment.Title = *payload.Title
	}
	if payload.DueDate != nil {
		assignment.DueDate = *payload.DueDate
	}
	if payload.TotalMarks != nil {
		assignment.TotalMarks = *payload.TotalMarks
	}
	if payload.Description != nil {
		assignment.Description = *payload.Description
	}
	if payload.Instructions != nil {
		assignment.Instructions = *payload.Instructions
	}
	if payload.Content != nil {
		assignment.Content = *payload.Content
	}
	if payload.Status != nil {
		assignment.Status = *payload.Status
	}

	if err := s.assignments.Update(ctx, &assignment); err != nil {
		return dto.AssignmentResponse{}, err
	}

	return dto.NewAssignmentResponse(assignment), nil
}

func (s *assignmentService) Delete(ctx context.Context, id uint) error {
	if err := s.assignments.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAssignmentNotFound
		}
		return err
	}
	return nil
}

// Submit records a student's submission text. A submission after the due date
// is accepted but marked Late instead of Submitted.
func (s *assignmentService) Submit(ctx context.Context, id uint, payload dto.AssignmentSubmitRequest) (dto.AssignmentResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.AssignmentResponse{}, err
	}

	assignment, err := s.assignments.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.AssignmentResponse{}, ErrAssignmentNotFound
		}
		return dto.AssignmentResponse{}, err
	}

	if assignment.Status == models.AssignmentStatusSubmitted || assignment.Status == models.AssignmentStatusLate {
		return dto.AssignmentResponse{}, ErrAlreadySubmitted
	}

	now := s.now()
	assignment.SubmissionText = s.sanitizer.Sanitize(payload.SubmissionText)
	assignment.SubmittedDate = &now
	if assignment.IsPastDue(now) {
		assignment.Status = models.AssignmentStatusLate
	} else {
		assignment.Status = models.AssignmentStatusSubmitted
	}

	if err := s.assignments.Update(ctx, &assignment); err != nil {
		return dto.AssignmentResponse{}, err
	}

	s.logger.Info().Uint("assignment_id", assignment.ID).Str("status", assignment.Status).Msg("assignment submitted")

	return dto.NewAssignmentResponse(assignment), nil
}

// Grade records a teacher's score and remarks. The score must lie in
// [0, assignment total marks].
func (s *assignmentService) Grade(ctx context.Context, id uint, payload dto.AssignmentGradeRequest) (dto.AssignmentResponse, error) {
	tracer := otel.Tracer("github.com/Afaq499/cms/internal/service/assignment")
	ctx, span := tracer.Start(ctx, "assignment.grade")
	span.SetAttributes(attribute.Int64("assignment.id", int64(id)))
	defer span.End()

	if err := s.validator.Struct(payload); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "validation_failed")
		return dto.AssignmentResponse{}, err
	}

	assignment, err := s.assignments.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.AssignmentResponse{}, ErrAssignmentNotFound
		}
		span.RecordError(err)
		return dto.AssignmentResponse{}, err
	}

	if *payload.Score < 0 || *payload.Score > assignment.TotalMarks {
		span.SetStatus(codes.Error, "score_out_of_range")
		return dto.AssignmentResponse{}, ErrScoreOutOfRange
	}

	assignment.Score = payload.Score
	assignment.Remarks = payload.Remarks

	if err := s.assignments.Update(ctx, &assignment); err != nil {
		span.RecordError(err)
		return dto.AssignmentResponse{}, err
	}

	span.SetAttributes(attribute.Float64("assignment.score", *payload.Score))
	s.logger.Info().Uint("assignment_id", assignment.ID).Float64("score", *payload.Score).Msg("assignment graded")

	return dto.NewAssignmentResponse(assignment), nil
}
