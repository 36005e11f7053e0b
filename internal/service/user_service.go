package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/Afaq499/cms/internal/dto"
	"github.com/Afaq499/cms/internal/models"
	"github.com/Afaq499/cms/internal/repository"
)

// ErrUserNotFound indicates the requested account does not exist.
var ErrUserNotFound = errors.New("user not found")

// ErrStudentIDTaken indicates the student registration number is in use.
var ErrStudentIDTaken = errors.New("student id already registered")

// StudentCreateResult pairs the created account with the enrollment fan-out
// outcome so callers can see partial successes.
type StudentCreateResult struct {
	Student dto.UserResponse  `json:"student"`
	FanOut  dto.FanOutSummary `json:"enrollment"`
}

// UserService owns the admin-facing student and teacher rosters.
type UserService interface {
	ListStudents(ctx context.Context) ([]dto.UserResponse, error)
	GetStudent(ctx context.Context, id uint) (dto.UserResponse, error)
	CreateStudent(ctx context.Context, payload dto.StudentCreateRequest) (StudentCreateResult, error)
	UpdateStudent(ctx context.Context, id uint, payload dto.StudentUpdateRequest) (dto.UserResponse, error)
	DeleteStudent(ctx context.Context, id uint) error

	ListTeachers(ctx context.Context) ([]dto.UserResponse, error)
	GetTeacher(ctx context.Context, id uint) (dto.UserResponse, error)
	CreateTeacher(ctx context.Context, payload dto.TeacherCreateRequest) (dto.UserResponse, error)
	UpdateTeacher(ctx context.Context, id uint, payload dto.TeacherUpdateRequest) (dto.UserResponse, error)
	DeleteTeacher(ctx context.Context, id uint) error
}

type userService struct {
	users     repository.UserRepository
	degrees   repository.DegreeRepository
	progress  repository.ProgressRepository
	dashboard DashboardService
	validator *validator.Validate
	logger    zerolog.Logger
	now       func() time.Time
}

// NewUserService constructs a UserService instance. The dashboard service may
// be nil in contexts that have no cache to invalidate.
func NewUserService(
	users repository.UserRepository,
	degrees repository.DegreeRepository,
	progress repository.ProgressRepository,
	dashboard DashboardService,
	validate *validator.Validate,
	logger zerolog.Logger,
) UserService {
	return &userService{
		users:     users,
		degrees:   degrees,
		progress:  progress,
		dashboard: dashboard,
		validator: validate,
		logger:    logger.With().Str("component", "user_service").Logger(),
		now:       time.Now,
	}
}

func (s *userService) ListStudents(ctx context.Context) ([]dto.UserResponse, error) {
	students, err := s.users.ListByRole(ctx, models.RoleStudent)
	if err != nil {
		return nil, err
	}
	return dto.NewUserResponseSlice(students), nil
}

func (s *userService) GetStudent(ctx context.Context, id uint) (dto.UserResponse, error) {
	student, err := s.users.GetByIDAndRole(ctx, id, models.RoleStudent)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.UserResponse{}, ErrUserNotFound
		}
		return dto.UserResponse{}, err
	}
	return dto.NewUserResponse(student), nil
}

// CreateStudent registers a student account and fans out one In Progress
// record per requested course code. The account write is authoritative; the
// fan-out is best-effort and its outcome is reported in the result.
func (s *userService) CreateStudent(ctx context.Context, payload dto.StudentCreateRequest) (StudentCreateResult, error) {
	if err := s.validator.Struct(payload); err != nil {
		return StudentCreateResult{}, err
	}

	if _, err := s.users.GetByEmail(ctx, payload.Email); err == nil {
		return StudentCreateResult{}, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return StudentCreateResult{}, err
	}

	if _, err := s.users.GetByStudentID(ctx, payload.StudentID); err == nil {
		return StudentCreateResult{}, ErrStudentIDTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return StudentCreateResult{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(payload.Password), bcrypt.DefaultCost)
	if err != nil {
		return StudentCreateResult{}, err
	}

	studentID := payload.StudentID
	student := models.User{
		Name:      payload.Name,
		Email:     payload.Email,
		Password:  string(hash),
		Role:      models.RoleStudent,
		Degree:    payload.Degree,
		StudentID: &studentID,
		Address:   payload.Address,
		Contact:   payload.Contact,
		Gender:    payload.Gender,
		Batch:     payload.Batch,
	}

	if err := s.users.Create(ctx, &student); err != nil {
		return StudentCreateResult{}, err
	}

	summary := s.enrollStudent(ctx, student, payload.Courses)

	if s.dashboard != nil {
		s.dashboard.Invalidate(ctx, student.ID)
	}

	s.logger.Info().
		Uint("student_id", student.ID).
		Int("enrollments_created", summary.Created).
		Int("enrollments_failed", summary.Failed).
		Msg("student created")

	return StudentCreateResult{Student: dto.NewUserResponse(student), FanOut: summary}, nil
}

// enrollStudent writes one Progress row per course code. Course titles come
// from the student's degree when the code is listed there.
func (s *userService) enrollStudent(ctx context.Context, student models.User, courseCodes []string) dto.FanOutSummary {
	summary := dto.FanOutSummary{Attempted: len(courseCodes)}
	if len(courseCodes) == 0 {
		return summary
	}

	titles := map[string]string{}
	if student.Degree != "" {
		if degree, err := s.degrees.GetByName(ctx, student.Degree); err == nil {
			for _, course := range degree.Courses {
				titles[course.Code] = course.Title
			}
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Warn().Err(err).Str("degree", student.Degree).Msg("failed to resolve degree for enrollment titles")
		}
	}

	year := s.now().Year()
	for _, code := range courseCodes {
		title := titles[code]
		if title == "" {
			title = code
		}
		record := models.Progress{
			StudentID:    student.ID,
			CourseCode:   code,
			CourseTitle:  title,
			OverallGrade: models.GradePlaceholder,
			Status:       models.ProgressInProgress,
			Semester:     "Fall",
			Year:         year,
		}
		if err := s.progress.Create(ctx, &record); err != nil {
			summary.Failed++
			summary.Errors = append(summary.Errors, fmt.Sprintf("course %s: %v", code, err))
			s.logger.Error().Err(err).Uint("student_id", student.ID).Str("course_code", code).Msg("enrollment write failed")
			continue
		}
		summary.Created++
	}

	return summary
}

func (s *userService) UpdateStudent(ctx context.Context, id uint, payload dto.StudentUpdateRequest) (dto.UserResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.UserResponse{}, err
	}

	student, err := s.users.GetByIDAndRole(ctx, id, models.RoleStudent)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.UserResponse{}, ErrUserNotFound
		}
		return dto.UserResponse{}, err
	}

	if payload.Name != nil {
		student.Name = *payload.Name
	}
	if payload.Email != nil && *payload.Email != student.Email {
		if _, err := s.users.GetByEmail(ctx, *payload.Email); err == nil {
			return dto.UserResponse{}, ErrEmailTaken
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.UserResponse{}, err
		}
		student.Email = *payload.Email
	}
	if payload.Degree != nil {
		student.Degree = *payload.Degree
	}
	if payload.StudentID != nil {
		current := ""
		if student.StudentID != nil {
			current = *student.StudentID
		}
		if *payload.StudentID != current {
			if _, err := s.users.GetByStudentID(ctx, *payload.StudentID); err == nil {
				return dto.UserResponse{}, ErrStudentIDTaken
			} else if !errors.Is(err, gorm.ErrRecordNotFound) {
				return dto.UserResponse{}, err
			}
		}
		student.StudentID = payload.StudentID
	}
	if payload.Address != nil {
		student.Address = *payload.Address
	}
	if payload.Contact != nil {
		student.Contact = *payload.Contact
	}
	if payload.Gender != nil {
		student.Gender = *payload.Gender
	}
	if payload.Batch != nil {
		student.Batch = *payload.Batch
	}

	if err := s.users.Update(ctx, &student); err != nil {
		return dto.UserResponse{}, err
	}

	if s.dashboard != nil {
		s.dashboard.Invalidate(ctx, student.ID)
	}

	return dto.NewUserResponse(student), nil
}

func (s *userService) DeleteStudent(ctx context.Context, id uint) error {
	if err := s.users.Delete(ctx, id, models.RoleStudent); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	if s.dashboard != nil {
		s.dashboard.Invalidate(ctx, id)
	}
	return nil
}

func (s *userService) ListTeachers(ctx context.Context) ([]dto.UserResponse, error) {
	teachers, err := s.users.ListByRole(ctx, models.RoleTeacher)
	if err != nil {
		return nil, err
	}
	return dto.NewUserResponseSlice(teachers), nil
}

func (s *userService) GetTeacher(ctx context.Context, id uint) (dto.UserResponse, error) {
	teacher, err := s.users.GetByIDAndRole(ctx, id, models.RoleTeacher)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.UserResponse{}, ErrUserNotFound
		}
		return dto.UserResponse{}, err
	}
	return dto.NewUserResponse(teacher), nil
}

func (s *userService) CreateTeacher(ctx context.Context, payload dto.TeacherCreateRequest) (dto.UserResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.UserResponse{}, err
	}

	if _, err := s.users.GetByEmail(ctx, payload.Email); err == nil {
		return dto.UserResponse{}, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return dto.UserResponse{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(payload.Password), bcrypt.DefaultCost)
	if err != nil {
		return dto.UserResponse{}, err
	}

	teacher := models.User{
		Name:     payload.Name,
		Email:    payload.Email,
		Password: string(hash),
		Role:     models.RoleTeacher,
		Subject:  payload.Subject,
		Contact:  payload.Contact,
		Gender:   payload.Gender,
		Courses:  payload.Courses,
	}

	if err := s.users.Create(ctx, &teacher); err != nil {
		return dto.UserResponse{}, err
	}

	s.logger.Info().Uint("teacher_id", teacher.ID).Msg("teacher created")

	return dto.NewUserResponse(teacher), nil
}

func (s *userService) UpdateTeacher(ctx context.Context, id uint, payload dto.TeacherUpdateRequest) (dto.UserResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.UserResponse{}, err
	}

	teacher, err := s.users.GetByIDAndRole(ctx, id, models.RoleTeacher)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.UserResponse{}, ErrUserNotFound
		}
		return dto.UserResponse{}, err
	}

	if payload.Name != nil {
		teacher.Name = *payload.Name
	}
	if payload.Email != nil && *payload.Email != teacher.Email {
		if _, err := s.users.GetByEmail(ctx, *payload.Email); err == nil {
			return dto.UserResponse{}, ErrEmailTaken
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.UserResponse{}, err
		}
		teacher.Email = *payload.Email
	}
	if payload.Subject != nil {
		teacher.Subject = *payload.Subject
	}
	if payload.Contact != nil {
		teacher.Contact = *payload.Contact
	}
	if payload.Gender != nil {
		teacher.Gender = *payload.Gender
	}
	if payload.Courses != nil {
		teacher.Courses = payload.Courses
	}

	if err := s.users.Update(ctx, &teacher); err != nil {
		return dto.UserResponse{}, err
	}

	return dto.NewUserResponse(teacher), nil
}

func (s *userService) DeleteTeacher(ctx context.Context, id uint) error {
	if err := s.users.Delete(ctx, id, models.RoleTeacher); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	return nil
}
