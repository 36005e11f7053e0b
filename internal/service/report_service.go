package service

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/Afaq499/cms/internal/dto"
	"github.com/Afaq499/cms/internal/models"
	"github.com/Afaq499/cms/internal/repository"
)

// gradePoints maps letter grades to 4.0-scale points. Grades outside the map
// do not count toward the GPA.
var gradePoints = map[string]float64{
	"A+": 4.0,
	"A":  4.0,
	"A-": 3.7,
	"B+": 3.3,
	"B":  3.0,
	"B-": 2.7,
	"C+": 2.3,
	"C":  2.0,
	"C-": 1.7,
	"D+": 1.3,
	"D":  1.0,
	"F":  0.0,
}

// ReportService builds academic reports.
type ReportService interface {
	StudentReport(ctx context.Context, studentID uint) (dto.StudentReport, error)
	AllStudentsSummary(ctx context.Context) ([]dto.StudentProgressSummary, error)
}

type reportService struct {
	users       repository.UserRepository
	progress    repository.ProgressRepository
	assignments repository.AssignmentRepository
	logger      zerolog.Logger
	now         func() time.Time
}

// NewReportService constructs a ReportService instance.
func NewReportService(
	users repository.UserRepository,
	progress repository.ProgressRepository,
	assignments repository.AssignmentRepository,
	logger zerolog.Logger,
) ReportService {
	return &reportService{
		users:       users,
		progress:    progress,
		assignments: assignments,
		logger:      logger.With().Str("component", "report_service").Logger(),
		now:         time.Now,
	}
}

// StudentReport assembles the per-student academic report: course outcomes
// with a 4.0-scale GPA over completed courses, plus assignment completion.
func (s *reportService) StudentReport(ctx context.Context, studentID uint) (dto.StudentReport, error) {
	tracer := otel.Tracer("github.com/Afaq499/cms/internal/service/report")
	ctx, span := tracer.Start(ctx, "report.student")
	span.SetAttributes(attribute.Int64("report.student_id", int64(studentID)))
	defer span.End()

	student, err := s.users.GetByIDAndRole(ctx, studentID, models.RoleStudent)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.StudentReport{}, ErrStudentNotFound
		}
		return dto.StudentReport{}, err
	}

	var (
		progressRecords []models.Progress
		assignments     []models.Assignment
	)
	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		var err error
		progressRecords, err = s.progress.ListByStudent(groupCtx, studentID)
		return err
	})
	group.Go(func() error {
		var err error
		// Assignment stats cover every row, including course-level
		// definitions with no student reference.
		assignments, err = s.assignments.List(groupCtx, repository.AssignmentFilter{})
		return err
	})
	if err := group.Wait(); err != nil {
		span.RecordError(err)
		return dto.StudentReport{}, err
	}

	report := dto.StudentReport{
		Student:     studentSummary(student),
		Progress:    buildProgressSection(progressRecords),
		Assignments: buildAssignmentSection(assignments),
		GeneratedAt: s.now(),
	}

	return report, nil
}

func buildProgressSection(records []models.Progress) dto.ReportProgress {
	section := dto.ReportProgress{Courses: make([]dto.ReportCourse, 0, len(records))}

	var points float64
	var graded int
	for _, record := range records {
		section.TotalCourses++
		switch record.Status {
		case models.ProgressCompleted:
			section.CompletedCourses++
			if value, ok := gradePoints[record.OverallGrade]; ok {
				points += value
				graded++
			}
		case models.ProgressInProgress:
			section.InProgressCourses++
		case models.ProgressDropped:
			section.DroppedCourses++
		}

		section.Courses = append(section.Courses, dto.ReportCourse{
			CourseCode:   record.CourseCode,
			CourseTitle:  record.CourseTitle,
			Assignments:  record.Assignments,
			Quizzes:      record.Quizzes,
			Midterm:      record.Midterm,
			Final:        record.Final,
			OverallGrade: record.OverallGrade,
			Status:       record.Status,
			Semester:     record.Semester,
			Year:         record.Year,
		})
	}

	if graded > 0 {
		section.AverageGrade = math.Round(points/float64(graded)*100) / 100
	}

	return section
}

func buildAssignmentSection(assignments []models.Assignment) dto.ReportAssignments {
	section := dto.ReportAssignments{Details: make([]dto.ReportAssignmentDetail, 0, len(assignments))}

	for _, assignment := range assignments {
		section.Total++
		switch assignment.Status {
		case models.AssignmentStatusSubmitted, models.AssignmentStatusLate:
			section.Submitted++
		default:
			section.Pending++
		}

		section.Details = append(section.Details, dto.ReportAssignmentDetail{
			Title:      assignment.Title,
			CourseCode: assignment.CourseCode,
			Status:     assignment.Status,
			Score:      assignment.Score,
			TotalMarks: assignment.TotalMarks,
			DueDate:    assignment.DueDate,
		})
	}

	return section
}

// AllStudentsSummary builds the cross-student overview: one row per student
// with course counts and the rounded mean of the weighted composite score
// across that student's progress rows.
func (s *reportService) AllStudentsSummary(ctx context.Context) ([]dto.StudentProgressSummary, error) {
	tracer := otel.Tracer("github.com/Afaq499/cms/internal/service/report")
	ctx, span := tracer.Start(ctx, "report.all_students")
	defer span.End()

	var (
		students []models.User
		records  []models.Progress
	)
	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		var err error
		students, err = s.users.ListByRole(groupCtx, models.RoleStudent)
		return err
	})
	group.Go(func() error {
		var err error
		records, err = s.progress.List(groupCtx)
		return err
	})
	if err := group.Wait(); err != nil {
		span.RecordError(err)
		return nil, err
	}

	recordsByStudent := map[uint][]models.Progress{}
	for _, record := range records {
		recordsByStudent[record.StudentID] = append(recordsByStudent[record.StudentID], record)
	}

	summaries := make([]dto.StudentProgressSummary, 0, len(students))
	for _, student := range students {
		summary := dto.StudentProgressSummary{
			ID:    student.ID,
			Name:  student.Name,
			Email: student.Email,
		}

		rows := recordsByStudent[student.ID]
		var composite float64
		for _, row := range rows {
			summary.TotalCourses++
			if row.Status == models.ProgressCompleted {
				summary.CompletedCourses++
			}
			composite += row.CompositeScore()
		}
		if len(rows) > 0 {
			summary.Progress = int(math.Round(composite / float64(len(rows))))
		}

		summaries = append(summaries, summary)
	}

	span.SetAttributes(attribute.Int("report.students", len(summaries)))

	return summaries, nil
}
