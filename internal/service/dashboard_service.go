package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"

	"github.com/Afaq499/cms/internal/dto"
	"github.com/Afaq499/cms/internal/models"
	"github.com/Afaq499/cms/internal/repository"
)

// DashboardService produces the aggregated per-course student dashboard.
type DashboardService interface {
	GetStudentDashboard(ctx context.Context, studentID uint) (dto.StudentDashboardResponse, error)
	Invalidate(ctx context.Context, studentID uint)
}

type dashboardService struct {
	catalog     CatalogService
	assignments repository.AssignmentRepository
	quizzes     repository.QuizRepository
	videos      repository.LectureVideoRepository
	gdbs        repository.GdbRepository
	progress    repository.ProgressRepository
	cache       *redis.Client
	cacheTTL    time.Duration
	logger      zerolog.Logger
}

// NewDashboardService builds the dashboard aggregator.
func NewDashboardService(
	catalog CatalogService,
	assignments repository.AssignmentRepository,
	quizzes repository.QuizRepository,
	videos repository.LectureVideoRepository,
	gdbs repository.GdbRepository,
	progress repository.ProgressRepository,
	cache *redis.Client,
	ttl time.Duration,
	logger zerolog.Logger,
) DashboardService {
	return &dashboardService{
		catalog:     catalog,
		assignments: assignments,
		quizzes:     quizzes,
		videos:      videos,
		gdbs:        gdbs,
		progress:    progress,
		cache:       cache,
		cacheTTL:    ttl,
		logger:      logger.With().Str("component", "dashboard_service").Logger(),
	}
}

func dashboardCacheKey(studentID uint) string {
	return fmt.Sprintf("dashboard:student:%d", studentID)
}

// GetStudentDashboard resolves the student's course list and joins it against
// assignments, quizzes, videos, gdbs and progress records. Every course of
// the degree appears in the output, even with zero related records.
func (s *dashboardService) GetStudentDashboard(ctx context.Context, studentID uint) (dto.StudentDashboardResponse, error) {
	tracer := otel.Tracer("github.com/Afaq499/cms/internal/service/dashboard")
	ctx, span := tracer.Start(ctx, "dashboard.aggregate")
	span.SetAttributes(attribute.Int64("dashboard.student_id", int64(studentID)))
	defer span.End()

	cacheKey := dashboardCacheKey(studentID)
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, cacheKey).Result(); err == nil {
			var response dto.StudentDashboardResponse
			if unmarshalErr := json.Unmarshal([]byte(cached), &response); unmarshalErr == nil {
				s.logger.Debug().Uint("student_id", studentID).Msg("dashboard cache hit")
				return response, nil
			}
		} else if err != redis.Nil {
			s.logger.Warn().Err(err).Msg("failed to read dashboard cache")
		}
	}

	catalog, err := s.catalog.ResolveCourses(ctx, studentID)
	if err != nil {
		span.RecordError(err)
		return dto.StudentDashboardResponse{}, err
	}

	response := dto.StudentDashboardResponse{
		Student: studentSummary(catalog.Student),
		Courses: []dto.CourseView{},
		Message: catalog.Message,
	}

	if len(catalog.Courses) == 0 {
		return response, nil
	}

	codes := catalog.CourseCodes()

	var (
		teacherIndex    map[string]dto.TeacherInfo
		assignments     []models.Assignment
		quizzes         []models.Quiz
		videos          []models.LectureVideo
		gdbs            []models.Gdb
		progressRecords []models.Progress
	)

	// The four record-kind fetches have no ordering dependency; any failure
	// fails the whole aggregation.
	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		var err error
		assignments, err = s.assignments.ListByCourseCodes(groupCtx, codes)
		return err
	})
	group.Go(func() error {
		var err error
		quizzes, err = s.quizzes.ListByCourseCodes(groupCtx, codes)
		return err
	})
	group.Go(func() error {
		var err error
		videos, err = s.videos.ListByCourseCodes(groupCtx, codes)
		return err
	})
	group.Go(func() error {
		var err error
		gdbs, err = s.gdbs.ListByCourseCodes(groupCtx, codes)
		return err
	})
	group.Go(func() error {
		var err error
		progressRecords, err = s.progress.ListByStudent(groupCtx, studentID)
		return err
	})
	group.Go(func() error {
		var err error
		teacherIndex, err = s.catalog.TeacherByCourse(groupCtx)
		return err
	})
	if err := group.Wait(); err != nil {
		span.RecordError(err)
		return dto.StudentDashboardResponse{}, err
	}

	assignmentsByCourse := map[string][]dto.AssignmentResponse{}
	for _, assignment := range assignments {
		assignmentsByCourse[assignment.CourseCode] = append(assignmentsByCourse[assignment.CourseCode], dto.NewAssignmentResponse(assignment))
	}
	quizzesByCourse := map[string][]dto.QuizResponse{}
	for _, quiz := range quizzes {
		quizzesByCourse[quiz.CourseCode] = append(quizzesByCourse[quiz.CourseCode], dto.NewQuizResponse(quiz))
	}
	videosByCourse := map[string][]dto.LectureVideoResponse{}
	for _, video := range videos {
		videosByCourse[video.CourseCode] = append(videosByCourse[video.CourseCode], dto.NewLectureVideoResponse(video))
	}
	gdbsByCourse := map[string][]dto.GdbResponse{}
	for _, gdb := range gdbs {
		gdbsByCourse[gdb.CourseCode] = append(gdbsByCourse[gdb.CourseCode], dto.NewGdbResponse(gdb))
	}
	progressByCourse := map[string]models.Progress{}
	for _, record := range progressRecords {
		progressByCourse[record.CourseCode] = record
	}

	for _, course := range catalog.Courses {
		view := dto.CourseView{
			CourseCode:  course.Code,
			CourseTitle: course.Title,
			CreditHours: course.CreditHours,
			Type:        course.Type,
			Semester:    course.Semester,
			Group:       course.Group,
			DegreeName:  catalog.Degree.Name,
			DegreeCode:  catalog.Degree.Code,
			Teacher:     dto.TBATeacher(),
			Assignments: []dto.AssignmentResponse{},
			Quizzes:     []dto.QuizResponse{},
			Videos:      []dto.LectureVideoResponse{},
			Gdbs:        []dto.GdbResponse{},
		}

		if record, ok := progressByCourse[course.Code]; ok {
			id := record.ID
			view.ProgressID = &id
			view.Progress = &dto.CourseProgress{
				Assignments:  record.Assignments,
				Quizzes:      record.Quizzes,
				Midterm:      record.Midterm,
				Final:        record.Final,
				OverallGrade: record.OverallGrade,
				Status:       record.Status,
				Semester:     record.Semester,
				Year:         record.Year,
			}
		}

		if teacher, ok := teacherIndex[course.Code]; ok {
			view.Teacher = teacher
		}
		if list, ok := assignmentsByCourse[course.Code]; ok {
			view.Assignments = list
		}
		if list, ok := quizzesByCourse[course.Code]; ok {
			view.Quizzes = list
		}
		if list, ok := videosByCourse[course.Code]; ok {
			view.Videos = list
		}
		if list, ok := gdbsByCourse[course.Code]; ok {
			view.Gdbs = list
		}

		view.Counts = dto.CourseCounts{
			Assignments: len(view.Assignments),
			Quizzes:     len(view.Quizzes),
			Videos:      len(view.Videos),
			Gdbs:        len(view.Gdbs),
		}

		response.Courses = append(response.Courses, view)
	}

	if s.cache != nil {
		if payload, err := json.Marshal(response); err == nil {
			if err := s.cache.Set(ctx, cacheKey, payload, s.cacheTTL).Err(); err != nil {
				s.logger.Warn().Err(err).Msg("failed to store dashboard cache")
			}
		}
	}

	return response, nil
}

// Invalidate drops the cached dashboard for one student. Called after
// enrollment or progress writes; other record changes age out via the TTL.
func (s *dashboardService) Invalidate(ctx context.Context, studentID uint) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, dashboardCacheKey(studentID)).Err(); err != nil {
		s.logger.Warn().Err(err).Uint("student_id", studentID).Msg("failed to invalidate dashboard cache")
	}
}

func studentSummary(student models.User) dto.StudentSummary {
	return dto.StudentSummary{
		ID:        student.ID,
		Name:      student.Name,
		Email:     student.Email,
		Degree:    student.Degree,
		StudentID: student.StudentID,
	}
}
