package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/Afaq499/cms/internal/dto"
	"github.com/Afaq499/cms/internal/models"
	"github.com/Afaq499/cms/internal/repository"
)

// ErrStudentNotFound indicates the requested student does not exist.
var ErrStudentNotFound = errors.New("student not found")

// Resolution messages for the "no data yet" success cases.
const (
	MessageNoDegree  = "Student degree not found"
	MessageNoCourses = "No courses found for this degree"
)

// CourseCatalog is a student's resolved course list. Courses keeps the order
// of the degree's embedded list. Message is set when the list is empty for a
// benign reason rather than an error.
type CourseCatalog struct {
	Student models.User
	Degree  *models.Degree
	Courses []models.Course
	Message string
}

// CourseCodes returns the codes of the resolved courses, in order.
func (c CourseCatalog) CourseCodes() []string {
	codes := make([]string, 0, len(c.Courses))
	for _, course := range c.Courses {
		codes = append(codes, course.Code)
	}
	return codes
}

// CatalogService resolves degree course lists and course instructors.
type CatalogService interface {
	ResolveCourses(ctx context.Context, studentID uint) (CourseCatalog, error)
	TeacherByCourse(ctx context.Context) (map[string]dto.TeacherInfo, error)
}

type catalogService struct {
	users   repository.UserRepository
	degrees repository.DegreeRepository
	logger  zerolog.Logger
}

// NewCatalogService builds the course catalog resolver.
func NewCatalogService(users repository.UserRepository, degrees repository.DegreeRepository, logger zerolog.Logger) CatalogService {
	return &catalogService{
		users:   users,
		degrees: degrees,
		logger:  logger.With().Str("component", "catalog_service").Logger(),
	}
}

// ResolveCourses looks up the student's declared degree and returns its
// embedded course list. A student with no degree, or a degree with no
// courses, yields an empty list with an explanatory message, not an error.
func (s *catalogService) ResolveCourses(ctx context.Context, studentID uint) (CourseCatalog, error) {
	student, err := s.users.GetByID(ctx, studentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return CourseCatalog{}, ErrStudentNotFound
		}
		return CourseCatalog{}, err
	}

	if student.Degree == "" {
		return CourseCatalog{Student: student, Courses: []models.Course{}, Message: MessageNoDegree}, nil
	}

	degree, err := s.degrees.GetByName(ctx, student.Degree)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return CourseCatalog{Student: student, Courses: []models.Course{}, Message: MessageNoCourses}, nil
		}
		return CourseCatalog{}, err
	}

	if len(degree.Courses) == 0 {
		return CourseCatalog{Student: student, Degree: &degree, Courses: []models.Course{}, Message: MessageNoCourses}, nil
	}

	return CourseCatalog{Student: student, Degree: &degree, Courses: degree.Courses}, nil
}

// TeacherByCourse builds a course code -> instructor index from a single scan
// of all teacher accounts. The first teacher listing a course code wins.
func (s *catalogService) TeacherByCourse(ctx context.Context) (map[string]dto.TeacherInfo, error) {
	teachers, err := s.users.ListByRole(ctx, models.RoleTeacher)
	if err != nil {
		return nil, err
	}

	index := make(map[string]dto.TeacherInfo)
	for _, teacher := range teachers {
		for _, code := range teacher.Courses {
			if _, taken := index[code]; taken {
				continue
			}
			id := teacher.ID
			email := teacher.Email
			gender := teacher.Gender
			if gender == "" {
				gender = "Male"
			}
			index[code] = dto.TeacherInfo{
				ID:      &id,
				Name:    teacher.Name,
				Email:   &email,
				Subject: teacher.Subject,
				Contact: teacher.Contact,
				Gender:  gender,
			}
		}
	}

	return index, nil
}
