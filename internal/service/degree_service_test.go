package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Afaq499/cms/internal/dto"
	"github.com/Afaq499/cms/internal/models"
	"github.com/Afaq499/cms/internal/repository"
	"github.com/Afaq499/cms/internal/service"
)

func newDegreeService(db *gorm.DB) service.DegreeService {
	return service.NewDegreeService(repository.NewDegreeRepository(db), newValidator(), discardLogger())
}

func degreeCreatePayload() dto.DegreeCreateRequest {
	return dto.DegreeCreateRequest{
		Name: "BS Computer Science",
		Code: "BSCS",
		Courses: []models.Course{
			{Code: "CS101", Title: "Programming Fundamentals", Type: models.CourseTypeRequired, CreditHours: 3, Semester: 1},
			{Code: "CS102", Title: "Data Structures", Type: models.CourseTypeRequired, CreditHours: 3, Semester: 2},
		},
	}
}

func TestDegreeCreateDefaultsDuration(t *testing.T) {
	db := newTestDB(t)
	svc := newDegreeService(db)

	created, err := svc.Create(context.Background(), degreeCreatePayload())
	require.NoError(t, err)
	require.Equal(t, 4, created.Duration)
	require.Len(t, created.Courses, 2)
}

func TestDegreeCreateRejectsDuplicateName(t *testing.T) {
	db := newTestDB(t)
	svc := newDegreeService(db)
	ctx := context.Background()

	_, err := svc.Create(ctx, degreeCreatePayload())
	require.NoError(t, err)

	_, err = svc.Create(ctx, degreeCreatePayload())
	require.ErrorIs(t, err, service.ErrDegreeExists)
}

func TestDegreeCreateUppercasesCode(t *testing.T) {
	db := newTestDB(t)
	svc := newDegreeService(db)

	payload := degreeCreatePayload()
	payload.Code = "bscs"

	created, err := svc.Create(context.Background(), payload)
	require.NoError(t, err)
	require.Equal(t, "BSCS", created.Code)
}

func TestDegreeCreateRejectsDuplicateCode(t *testing.T) {
	db := newTestDB(t)
	svc := newDegreeService(db)
	ctx := context.Background()

	_, err := svc.Create(ctx, degreeCreatePayload())
	require.NoError(t, err)

	// Same code under a fresh name still conflicts, regardless of casing.
	duplicate := degreeCreatePayload()
	duplicate.Name = "BS Computing"
	duplicate.Code = "bscs"
	_, err = svc.Create(ctx, duplicate)
	require.ErrorIs(t, err, service.ErrDegreeExists)
}

func TestDegreeUpdateCodeUniquenessAndCasing(t *testing.T) {
	db := newTestDB(t)
	svc := newDegreeService(db)
	ctx := context.Background()

	first, err := svc.Create(ctx, degreeCreatePayload())
	require.NoError(t, err)

	other := degreeCreatePayload()
	other.Name = "BS Software Engineering"
	other.Code = "BSSE"
	second, err := svc.Create(ctx, other)
	require.NoError(t, err)

	_, err = svc.Update(ctx, second.ID, dto.DegreeUpdateRequest{Code: strPtr("bscs")})
	require.ErrorIs(t, err, service.ErrDegreeExists)

	// Resubmitting the degree's own code in lowercase is not a conflict.
	updated, err := svc.Update(ctx, first.ID, dto.DegreeUpdateRequest{Code: strPtr("bscs")})
	require.NoError(t, err)
	require.Equal(t, "BSCS", updated.Code)
}

func TestDegreeCreateRejectsDuplicateCourseCodes(t *testing.T) {
	db := newTestDB(t)
	svc := newDegreeService(db)

	payload := degreeCreatePayload()
	payload.Courses = append(payload.Courses, models.Course{
		Code: "CS101", Title: "Repeat", Type: models.CourseTypeElective, CreditHours: 3, Semester: 3,
	})

	_, err := svc.Create(context.Background(), payload)
	require.ErrorIs(t, err, service.ErrDuplicateCourseCode)
}

func TestDegreeUpdateReplacesCourseList(t *testing.T) {
	db := newTestDB(t)
	svc := newDegreeService(db)
	ctx := context.Background()

	created, err := svc.Create(ctx, degreeCreatePayload())
	require.NoError(t, err)

	updated, err := svc.Update(ctx, created.ID, dto.DegreeUpdateRequest{
		Courses: []models.Course{
			{Code: "CS201", Title: "Algorithms", Type: models.CourseTypeRequired, CreditHours: 3, Semester: 3},
		},
	})
	require.NoError(t, err)
	require.Len(t, updated.Courses, 1)
	require.Equal(t, "CS201", updated.Courses[0].Code)

	// A nil course list leaves the existing one untouched.
	untouched, err := svc.Update(ctx, created.ID, dto.DegreeUpdateRequest{Description: strPtr("four year program")})
	require.NoError(t, err)
	require.Len(t, untouched.Courses, 1)
	require.Equal(t, "four year program", untouched.Description)
}

func TestDegreeDeleteUnknownID(t *testing.T) {
	db := newTestDB(t)
	svc := newDegreeService(db)

	require.ErrorIs(t, svc.Delete(context.Background(), 404), service.ErrDegreeNotFound)
	_, err := svc.Get(context.Background(), 404)
	require.ErrorIs(t, err, service.ErrDegreeNotFound)
}
