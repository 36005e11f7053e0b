package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/Afaq499/cms/internal/dto"
	"github.com/Afaq499/cms/internal/models"
	"github.com/Afaq499/cms/internal/repository"
	"github.com/Afaq499/cms/internal/service"
)

func newUserService(db *gorm.DB) service.UserService {
	return service.NewUserService(
		repository.NewUserRepository(db),
		repository.NewDegreeRepository(db),
		repository.NewProgressRepository(db),
		nil,
		newValidator(),
		discardLogger(),
	)
}

func studentCreatePayload() dto.StudentCreateRequest {
	return dto.StudentCreateRequest{
		Name:      "Ayesha",
		Email:     "ayesha@example.com",
		Password:  "secret123",
		Degree:    "BS Computer Science",
		StudentID: "BC210400001",
		Gender:    "Female",
		Courses:   []string{"CS101", "CS102"},
	}
}

func TestCreateStudentEnrollsInCourses(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, db.Create(&models.Degree{
		Name: "BS Computer Science",
		Code: "BSCS",
		Courses: datatypes.JSONSlice[models.Course]{
			{Code: "CS101", Title: "Programming Fundamentals", CreditHours: 3, Semester: 1},
		},
	}).Error)

	svc := newUserService(db)

	result, err := svc.CreateStudent(context.Background(), studentCreatePayload())
	require.NoError(t, err)
	require.Equal(t, models.RoleStudent, result.Student.Role)
	require.Equal(t, 2, result.FanOut.Attempted)
	require.Equal(t, 2, result.FanOut.Created)
	require.Zero(t, result.FanOut.Failed)

	var records []models.Progress
	require.NoError(t, db.Where("student_id = ?", result.Student.ID).Order("course_code").Find(&records).Error)
	require.Len(t, records, 2)

	// Titles resolve from the degree when listed, falling back to the code.
	require.Equal(t, "Programming Fundamentals", records[0].CourseTitle)
	require.Equal(t, "CS102", records[1].CourseTitle)
	for _, record := range records {
		require.Equal(t, models.GradePlaceholder, record.OverallGrade)
		require.Equal(t, models.ProgressInProgress, record.Status)
	}
}

func TestCreateStudentReportsPartialEnrollment(t *testing.T) {
	db := newTestDB(t)
	svc := newUserService(db)

	payload := studentCreatePayload()
	// A repeated code trips the (student, course) unique index on the second
	// write; the account creation must still succeed.
	payload.Courses = []string{"CS101", "CS101"}

	result, err := svc.CreateStudent(context.Background(), payload)
	require.NoError(t, err)
	require.Equal(t, 2, result.FanOut.Attempted)
	require.Equal(t, 1, result.FanOut.Created)
	require.Equal(t, 1, result.FanOut.Failed)
	require.Len(t, result.FanOut.Errors, 1)
	require.True(t, result.FanOut.Partial())
}

func TestCreateStudentDuplicateEmail(t *testing.T) {
	db := newTestDB(t)
	svc := newUserService(db)
	ctx := context.Background()

	_, err := svc.CreateStudent(ctx, studentCreatePayload())
	require.NoError(t, err)

	duplicate := studentCreatePayload()
	duplicate.StudentID = "BC210400002"
	_, err = svc.CreateStudent(ctx, duplicate)
	require.ErrorIs(t, err, service.ErrEmailTaken)
}

func TestCreateStudentDuplicateStudentID(t *testing.T) {
	db := newTestDB(t)
	svc := newUserService(db)
	ctx := context.Background()

	_, err := svc.CreateStudent(ctx, studentCreatePayload())
	require.NoError(t, err)

	duplicate := studentCreatePayload()
	duplicate.Email = "other@example.com"
	_, err = svc.CreateStudent(ctx, duplicate)
	require.ErrorIs(t, err, service.ErrStudentIDTaken)
}

func TestUpdateStudentChecksUniqueness(t *testing.T) {
	db := newTestDB(t)
	svc := newUserService(db)
	ctx := context.Background()

	first, err := svc.CreateStudent(ctx, studentCreatePayload())
	require.NoError(t, err)

	other := studentCreatePayload()
	other.Email = "bilal@example.com"
	other.StudentID = "BC210400002"
	second, err := svc.CreateStudent(ctx, other)
	require.NoError(t, err)

	_, err = svc.UpdateStudent(ctx, second.Student.ID, dto.StudentUpdateRequest{Email: strPtr("ayesha@example.com")})
	require.ErrorIs(t, err, service.ErrEmailTaken)

	_, err = svc.UpdateStudent(ctx, second.Student.ID, dto.StudentUpdateRequest{StudentID: strPtr("BC210400001")})
	require.ErrorIs(t, err, service.ErrStudentIDTaken)

	// Re-submitting the student's own identifiers is not a conflict.
	updated, err := svc.UpdateStudent(ctx, first.Student.ID, dto.StudentUpdateRequest{
		Name:      strPtr("Ayesha Khan"),
		StudentID: strPtr("BC210400001"),
	})
	require.NoError(t, err)
	require.Equal(t, "Ayesha Khan", updated.Name)
}

func TestDeleteStudentIgnoresTeachers(t *testing.T) {
	db := newTestDB(t)
	teacher := models.User{Name: "Dr. Khan", Email: "khan@example.com", Password: "x", Role: models.RoleTeacher}
	require.NoError(t, db.Create(&teacher).Error)

	svc := newUserService(db)

	err := svc.DeleteStudent(context.Background(), teacher.ID)
	require.ErrorIs(t, err, service.ErrUserNotFound)
}

func TestTeacherLifecycle(t *testing.T) {
	db := newTestDB(t)
	svc := newUserService(db)
	ctx := context.Background()

	created, err := svc.CreateTeacher(ctx, dto.TeacherCreateRequest{
		Name:     "Dr. Khan",
		Email:    "khan@example.com",
		Password: "secret123",
		Subject:  "Programming",
		Courses:  []string{"CS101"},
	})
	require.NoError(t, err)
	require.Equal(t, models.RoleTeacher, created.Role)
	require.Equal(t, []string{"CS101"}, created.Courses)

	updated, err := svc.UpdateTeacher(ctx, created.ID, dto.TeacherUpdateRequest{
		Subject: strPtr("Databases"),
		Courses: []string{"CS301", "CS302"},
	})
	require.NoError(t, err)
	require.Equal(t, "Databases", updated.Subject)
	require.Equal(t, []string{"CS301", "CS302"}, updated.Courses)

	teachers, err := svc.ListTeachers(ctx)
	require.NoError(t, err)
	require.Len(t, teachers, 1)

	require.NoError(t, svc.DeleteTeacher(ctx, created.ID))
	require.ErrorIs(t, svc.DeleteTeacher(ctx, created.ID), service.ErrUserNotFound)
}
