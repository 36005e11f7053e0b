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

func newProgressService(db *gorm.DB) service.ProgressService {
	return service.NewProgressService(repository.NewProgressRepository(db), nil, newValidator(), discardLogger())
}

func progressCreatePayload(studentID uint) dto.ProgressCreateRequest {
	return dto.ProgressCreateRequest{
		StudentID:   studentID,
		CourseCode:  "CS101",
		CourseTitle: "Programming Fundamentals",
		Semester:    "Fall",
		Year:        2025,
	}
}

func TestProgressCreateStartsUngraded(t *testing.T) {
	db := newTestDB(t)
	student := models.User{Name: "Ayesha", Email: "ayesha@example.com", Password: "x", Role: models.RoleStudent}
	require.NoError(t, db.Create(&student).Error)
	svc := newProgressService(db)

	created, err := svc.Create(context.Background(), progressCreatePayload(student.ID))
	require.NoError(t, err)
	require.Equal(t, models.GradePlaceholder, created.OverallGrade)
	require.Equal(t, models.ProgressInProgress, created.Status)
}

func TestProgressCreateRejectsDuplicatePair(t *testing.T) {
	db := newTestDB(t)
	student := models.User{Name: "Ayesha", Email: "ayesha@example.com", Password: "x", Role: models.RoleStudent}
	require.NoError(t, db.Create(&student).Error)
	svc := newProgressService(db)
	ctx := context.Background()

	_, err := svc.Create(ctx, progressCreatePayload(student.ID))
	require.NoError(t, err)

	_, err = svc.Create(ctx, progressCreatePayload(student.ID))
	require.ErrorIs(t, err, service.ErrProgressExists)
}

func TestProgressUpdateAppliesPartialChanges(t *testing.T) {
	db := newTestDB(t)
	student := models.User{Name: "Ayesha", Email: "ayesha@example.com", Password: "x", Role: models.RoleStudent}
	require.NoError(t, db.Create(&student).Error)
	svc := newProgressService(db)
	ctx := context.Background()

	created, err := svc.Create(ctx, progressCreatePayload(student.ID))
	require.NoError(t, err)

	updated, err := svc.Update(ctx, created.ID, dto.ProgressUpdateRequest{
		Midterm:      floatPtr(72.5),
		OverallGrade: strPtr("B+"),
		Status:       strPtr(models.ProgressCompleted),
	})
	require.NoError(t, err)
	require.Equal(t, 72.5, updated.Midterm)
	require.Equal(t, "B+", updated.OverallGrade)
	require.Equal(t, models.ProgressCompleted, updated.Status)
	// Untouched fields keep their values.
	require.Zero(t, updated.Final)
	require.Equal(t, "Fall", updated.Semester)
}

func TestProgressUpdateRejectsOutOfRangeScore(t *testing.T) {
	db := newTestDB(t)
	student := models.User{Name: "Ayesha", Email: "ayesha@example.com", Password: "x", Role: models.RoleStudent}
	require.NoError(t, db.Create(&student).Error)
	svc := newProgressService(db)
	ctx := context.Background()

	created, err := svc.Create(ctx, progressCreatePayload(student.ID))
	require.NoError(t, err)

	_, err = svc.Update(ctx, created.ID, dto.ProgressUpdateRequest{Final: floatPtr(101)})
	require.Error(t, err)
}

func TestProgressDelete(t *testing.T) {
	db := newTestDB(t)
	student := models.User{Name: "Ayesha", Email: "ayesha@example.com", Password: "x", Role: models.RoleStudent}
	require.NoError(t, db.Create(&student).Error)
	svc := newProgressService(db)
	ctx := context.Background()

	created, err := svc.Create(ctx, progressCreatePayload(student.ID))
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, created.ID))
	require.ErrorIs(t, svc.Delete(ctx, created.ID), service.ErrProgressNotFound)
}
