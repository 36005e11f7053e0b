package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Afaq499/cms/internal/dto"
	"github.com/Afaq499/cms/internal/repository"
	"github.com/Afaq499/cms/internal/service"
)

func TestLectureVideoLifecycle(t *testing.T) {
	db := newTestDB(t)
	teacher := seedCreator(t, db)
	svc := service.NewLectureVideoService(repository.NewLectureVideoRepository(db), newValidator(), discardLogger())
	ctx := context.Background()

	created, err := svc.Create(ctx, dto.LectureVideoCreateRequest{
		Title:       "Lecture 5: Pointers",
		YoutubeURL:  "https://www.youtube.com/watch?v=abc123",
		CourseCode:  "CS101",
		CourseName:  "Programming Fundamentals",
		Duration:    "45:00",
		CreatedByID: teacher.ID,
	})
	require.NoError(t, err)
	require.NotNil(t, created.CreatedBy)

	updated, err := svc.Update(ctx, created.ID, dto.LectureVideoUpdateRequest{Duration: strPtr("47:30")})
	require.NoError(t, err)
	require.Equal(t, "47:30", updated.Duration)

	byCourse, err := svc.ListByCourse(ctx, "CS101")
	require.NoError(t, err)
	require.Len(t, byCourse, 1)

	other, err := svc.ListByCourse(ctx, "CS999")
	require.NoError(t, err)
	require.Empty(t, other)

	require.NoError(t, svc.Delete(ctx, created.ID))
	require.ErrorIs(t, svc.Delete(ctx, created.ID), service.ErrVideoNotFound)
}

func TestLectureVideoCreateRejectsBadURL(t *testing.T) {
	db := newTestDB(t)
	teacher := seedCreator(t, db)
	svc := service.NewLectureVideoService(repository.NewLectureVideoRepository(db), newValidator(), discardLogger())

	_, err := svc.Create(context.Background(), dto.LectureVideoCreateRequest{
		Title:       "Lecture 5: Pointers",
		YoutubeURL:  "not-a-url",
		CourseCode:  "CS101",
		CourseName:  "Programming Fundamentals",
		CreatedByID: teacher.ID,
	})
	require.Error(t, err)
}
