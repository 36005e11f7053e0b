package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/Afaq499/cms/internal/models"
	"github.com/Afaq499/cms/internal/repository"
	"github.com/Afaq499/cms/internal/service"
)

func newDashboardService(db *gorm.DB, cache *redis.Client) service.DashboardService {
	catalog := service.NewCatalogService(repository.NewUserRepository(db), repository.NewDegreeRepository(db), discardLogger())
	return service.NewDashboardService(
		catalog,
		repository.NewAssignmentRepository(db),
		repository.NewQuizRepository(db),
		repository.NewLectureVideoRepository(db),
		repository.NewGdbRepository(db),
		repository.NewProgressRepository(db),
		cache,
		time.Minute,
		discardLogger(),
	)
}

func seedDashboardStudent(t *testing.T, db *gorm.DB) models.User {
	t.Helper()

	degree := models.Degree{
		Name: "BS Computer Science",
		Code: "BSCS",
		Courses: datatypes.JSONSlice[models.Course]{
			{Code: "CS101", Title: "Programming Fundamentals", CreditHours: 3, Semester: 1},
			{Code: "CS102", Title: "Data Structures", CreditHours: 3, Semester: 2},
		},
	}
	require.NoError(t, db.Create(&degree).Error)

	teacher := models.User{Name: "Dr. Khan", Email: "khan@example.com", Password: "x", Role: models.RoleTeacher, Subject: "Programming", Courses: datatypes.JSONSlice[string]{"CS101"}}
	require.NoError(t, db.Create(&teacher).Error)

	student := models.User{Name: "Ayesha", Email: "ayesha@example.com", Password: "x", Role: models.RoleStudent, Degree: degree.Name, StudentID: strPtr("BC210400001")}
	require.NoError(t, db.Create(&student).Error)

	require.NoError(t, db.Create(&models.Assignment{
		AssignmentNumber: "A-1",
		Title:            "Loops and Arrays",
		DueDate:          time.Now().Add(72 * time.Hour),
		TotalMarks:       20,
		Status:           models.AssignmentStatusNotStarted,
		CourseCode:       "CS101",
		CourseName:       "Programming Fundamentals",
		StudentID:        &student.ID,
		TeacherID:        teacher.ID,
	}).Error)

	require.NoError(t, db.Create(&models.Progress{
		StudentID:    student.ID,
		CourseCode:   "CS101",
		CourseTitle:  "Programming Fundamentals",
		Assignments:  80,
		Quizzes:      70,
		OverallGrade: models.GradePlaceholder,
		Status:       models.ProgressInProgress,
		Semester:     "Fall",
		Year:         2025,
	}).Error)

	return student
}

func TestStudentDashboardIncludesEveryCourse(t *testing.T) {
	db := newTestDB(t)
	student := seedDashboardStudent(t, db)
	svc := newDashboardService(db, nil)

	dashboard, err := svc.GetStudentDashboard(context.Background(), student.ID)
	require.NoError(t, err)
	require.Equal(t, student.ID, dashboard.Student.ID)
	require.Len(t, dashboard.Courses, 2)

	first := dashboard.Courses[0]
	require.Equal(t, "CS101", first.CourseCode)
	require.Equal(t, "Dr. Khan", first.Teacher.Name)
	require.Len(t, first.Assignments, 1)
	require.Equal(t, 1, first.Counts.Assignments)
	require.NotNil(t, first.Progress)
	require.Equal(t, models.GradePlaceholder, first.Progress.OverallGrade)

	// Courses with no records still appear, with placeholders and zero counts.
	second := dashboard.Courses[1]
	require.Equal(t, "CS102", second.CourseCode)
	require.Equal(t, "TBA", second.Teacher.Name)
	require.Nil(t, second.Teacher.ID)
	require.Nil(t, second.Progress)
	require.Empty(t, second.Assignments)
	require.Empty(t, second.Quizzes)
	require.Empty(t, second.Videos)
	require.Empty(t, second.Gdbs)
	require.Zero(t, second.Counts)
}

func TestStudentDashboardWithoutDegree(t *testing.T) {
	db := newTestDB(t)
	student := models.User{Name: "Bilal", Email: "bilal@example.com", Password: "x", Role: models.RoleStudent}
	require.NoError(t, db.Create(&student).Error)
	svc := newDashboardService(db, nil)

	dashboard, err := svc.GetStudentDashboard(context.Background(), student.ID)
	require.NoError(t, err)
	require.Empty(t, dashboard.Courses)
	require.Equal(t, service.MessageNoDegree, dashboard.Message)
}

func TestStudentDashboardUnknownStudent(t *testing.T) {
	db := newTestDB(t)
	svc := newDashboardService(db, nil)

	_, err := svc.GetStudentDashboard(context.Background(), 404)
	require.ErrorIs(t, err, service.ErrStudentNotFound)
}

func TestStudentDashboardCacheHitAndInvalidate(t *testing.T) {
	db := newTestDB(t)
	student := seedDashboardStudent(t, db)

	mr := miniredis.RunT(t)
	cache := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	svc := newDashboardService(db, cache)

	ctx := context.Background()
	first, err := svc.GetStudentDashboard(ctx, student.ID)
	require.NoError(t, err)
	require.Equal(t, 1, first.Courses[0].Counts.Assignments)

	// A write that bypasses invalidation is not visible while the cache holds.
	require.NoError(t, db.Create(&models.Assignment{
		AssignmentNumber: "A-2",
		Title:            "Functions",
		DueDate:          time.Now().Add(96 * time.Hour),
		TotalMarks:       20,
		Status:           models.AssignmentStatusNotStarted,
		CourseCode:       "CS101",
		CourseName:       "Programming Fundamentals",
		StudentID:        &student.ID,
		TeacherID:        1,
	}).Error)

	cached, err := svc.GetStudentDashboard(ctx, student.ID)
	require.NoError(t, err)
	require.Equal(t, 1, cached.Courses[0].Counts.Assignments)

	svc.Invalidate(ctx, student.ID)

	fresh, err := svc.GetStudentDashboard(ctx, student.ID)
	require.NoError(t, err)
	require.Equal(t, 2, fresh.Courses[0].Counts.Assignments)
}
