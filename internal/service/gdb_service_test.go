package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Afaq499/cms/internal/dto"
	"github.com/Afaq499/cms/internal/models"
	"github.com/Afaq499/cms/internal/repository"
	"github.com/Afaq499/cms/internal/service"
)

func newGdbService(db *gorm.DB) service.GdbService {
	return service.NewGdbService(repository.NewGdbRepository(db), newValidator(), discardLogger())
}

func seedCreator(t *testing.T, db *gorm.DB) models.User {
	t.Helper()
	teacher := models.User{Name: "Dr. Khan", Email: "khan@example.com", Password: "x", Role: models.RoleTeacher}
	require.NoError(t, db.Create(&teacher).Error)
	return teacher
}

func TestGdbCreateOpensWithDefaultMarks(t *testing.T) {
	db := newTestDB(t)
	teacher := seedCreator(t, db)
	svc := newGdbService(db)

	created, err := svc.Create(context.Background(), dto.GdbCreateRequest{
		Title:       "Week 3 Discussion",
		Topic:       "Recursion vs iteration",
		DueDate:     time.Now().Add(96 * time.Hour),
		CourseCode:  "CS101",
		CourseName:  "Programming Fundamentals",
		CreatedByID: teacher.ID,
	})
	require.NoError(t, err)
	require.Equal(t, models.GdbStatusOpen, created.Status)
	require.Equal(t, 10.0, created.TotalMarks)
	require.NotNil(t, created.CreatedBy)
	require.Equal(t, "Dr. Khan", created.CreatedBy.Name)
}

func TestGdbUpdateCloses(t *testing.T) {
	db := newTestDB(t)
	teacher := seedCreator(t, db)
	svc := newGdbService(db)
	ctx := context.Background()

	created, err := svc.Create(ctx, dto.GdbCreateRequest{
		Title:       "Week 3 Discussion",
		Topic:       "Recursion vs iteration",
		DueDate:     time.Now().Add(96 * time.Hour),
		CourseCode:  "CS101",
		CourseName:  "Programming Fundamentals",
		CreatedByID: teacher.ID,
	})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, created.ID, dto.GdbUpdateRequest{Status: strPtr(models.GdbStatusClosed)})
	require.NoError(t, err)
	require.Equal(t, models.GdbStatusClosed, updated.Status)
}

func TestGdbNotFound(t *testing.T) {
	db := newTestDB(t)
	svc := newGdbService(db)

	_, err := svc.Get(context.Background(), 404)
	require.ErrorIs(t, err, service.ErrGdbNotFound)
	require.ErrorIs(t, svc.Delete(context.Background(), 404), service.ErrGdbNotFound)
}
