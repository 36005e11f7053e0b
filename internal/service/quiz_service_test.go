package service_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Afaq499/cms/internal/dto"
	"github.com/Afaq499/cms/internal/models"
	"github.com/Afaq499/cms/internal/repository"
	"github.com/Afaq499/cms/internal/service"
)

func newQuizService(db *gorm.DB) service.QuizService {
	return service.NewQuizService(
		repository.NewQuizRepository(db),
		repository.NewQuizSubmissionRepository(db),
		repository.NewAssignmentRepository(db),
		repository.NewProgressRepository(db),
		newValidator(),
		discardLogger(),
	)
}

func seedEnrolledStudents(t *testing.T, db *gorm.DB, courseCode string, count int) []models.User {
	t.Helper()

	students := make([]models.User, 0, count)
	for i := 0; i < count; i++ {
		student := models.User{
			Name:     fmt.Sprintf("Student %d", i+1),
			Email:    fmt.Sprintf("student%d@example.com", i+1),
			Password: "x",
			Role:     models.RoleStudent,
		}
		require.NoError(t, db.Create(&student).Error)
		require.NoError(t, db.Create(&models.Progress{
			StudentID:    student.ID,
			CourseCode:   courseCode,
			CourseTitle:  "Programming Fundamentals",
			OverallGrade: models.GradePlaceholder,
			Status:       models.ProgressInProgress,
			Semester:     "Fall",
			Year:         2025,
		}).Error)
		students = append(students, student)
	}
	return students
}

func quizCreatePayload(courseCode string) dto.QuizCreateRequest {
	return dto.QuizCreateRequest{
		Title:         "Quiz 1",
		CourseCode:    courseCode,
		CourseName:    "Programming Fundamentals",
		ScheduledDate: time.Now().Add(48 * time.Hour),
		ScheduledTime: "10:00",
		Duration:      30,
		Questions: []models.QuizQuestion{
			{QuestionID: "q1", Question: "2 + 2 = ?", Type: models.QuestionTypeMultipleChoice, Options: []string{"3", "4"}, CorrectAnswer: "4", Marks: 5},
			{QuestionID: "q2", Question: "Go has generics.", Type: models.QuestionTypeTrueFalse, CorrectAnswer: "true", Marks: 5},
		},
		CreatedByID: 1,
	}
}

func TestQuizCreateFansOutAssignments(t *testing.T) {
	db := newTestDB(t)
	students := seedEnrolledStudents(t, db, "CS101", 2)
	svc := newQuizService(db)

	created, err := svc.Create(context.Background(), quizCreatePayload("CS101"))
	require.NoError(t, err)
	require.Equal(t, models.QuizStatusScheduled, created.Quiz.Status)
	require.Equal(t, 2, created.FanOut.Attempted)
	require.Equal(t, 2, created.FanOut.Created)
	require.Zero(t, created.FanOut.Failed)

	var assignments []models.Assignment
	require.NoError(t, db.Order("id").Find(&assignments).Error)
	require.Len(t, assignments, 2)

	fannedOut := map[uint]bool{}
	for _, assignment := range assignments {
		require.Equal(t, fmt.Sprintf("QZ-%d", created.Quiz.ID), assignment.AssignmentNumber)
		require.Equal(t, models.AssignmentStatusNotStarted, assignment.Status)
		require.Equal(t, created.Quiz.TotalMarks, assignment.TotalMarks)
		fannedOut[*assignment.StudentID] = true
	}
	for _, student := range students {
		require.True(t, fannedOut[student.ID])
	}
}

func TestQuizCreateWithoutEnrollment(t *testing.T) {
	db := newTestDB(t)
	svc := newQuizService(db)

	created, err := svc.Create(context.Background(), quizCreatePayload("CS999"))
	require.NoError(t, err)
	require.Zero(t, created.FanOut.Attempted)
	require.Zero(t, created.FanOut.Created)
}

func TestQuizCreateDefaultsTotalMarksFromQuestions(t *testing.T) {
	db := newTestDB(t)
	svc := newQuizService(db)

	payload := quizCreatePayload("CS101")
	payload.TotalMarks = 0

	created, err := svc.Create(context.Background(), payload)
	require.NoError(t, err)
	require.Equal(t, 10.0, created.Quiz.TotalMarks)
}

func TestQuizStartIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	students := seedEnrolledStudents(t, db, "CS101", 1)
	svc := newQuizService(db)

	created, err := svc.Create(context.Background(), quizCreatePayload("CS101"))
	require.NoError(t, err)

	start := dto.QuizStartRequest{StudentID: students[0].ID}
	first, err := svc.Start(context.Background(), created.Quiz.ID, start)
	require.NoError(t, err)
	require.Equal(t, models.QuizSubmissionInProgress, first.Status)
	require.Equal(t, created.Quiz.TotalMarks, first.TotalMarks)

	again, err := svc.Start(context.Background(), created.Quiz.ID, start)
	require.NoError(t, err)
	require.Equal(t, first.ID, again.ID)
	require.Equal(t, first.StartedAt.Unix(), again.StartedAt.Unix())
}

func TestQuizStartUnknownQuiz(t *testing.T) {
	db := newTestDB(t)
	svc := newQuizService(db)

	_, err := svc.Start(context.Background(), 42, dto.QuizStartRequest{StudentID: 1})
	require.ErrorIs(t, err, service.ErrQuizNotFound)
}

func TestQuizSubmitRequiresStart(t *testing.T) {
	db := newTestDB(t)
	students := seedEnrolledStudents(t, db, "CS101", 1)
	svc := newQuizService(db)

	created, err := svc.Create(context.Background(), quizCreatePayload("CS101"))
	require.NoError(t, err)

	_, err = svc.Submit(context.Background(), created.Quiz.ID, dto.QuizSubmitRequest{
		StudentID: students[0].ID,
		Answers:   []models.QuizAnswer{{QuestionID: "q1", Answer: "4"}},
	})
	require.ErrorIs(t, err, service.ErrSubmissionNotStarted)
}

func TestQuizSubmitFinalizesOnce(t *testing.T) {
	db := newTestDB(t)
	students := seedEnrolledStudents(t, db, "CS101", 1)
	svc := newQuizService(db)

	created, err := svc.Create(context.Background(), quizCreatePayload("CS101"))
	require.NoError(t, err)

	_, err = svc.Start(context.Background(), created.Quiz.ID, dto.QuizStartRequest{StudentID: students[0].ID})
	require.NoError(t, err)

	submit := dto.QuizSubmitRequest{
		StudentID: students[0].ID,
		Answers: []models.QuizAnswer{
			{QuestionID: "q1", Answer: "4"},
			{QuestionID: "q2", Answer: "false"},
		},
	}

	submitted, err := svc.Submit(context.Background(), created.Quiz.ID, submit)
	require.NoError(t, err)
	require.Equal(t, models.QuizSubmissionSubmitted, submitted.Status)
	require.NotNil(t, submitted.SubmittedAt)
	require.Len(t, submitted.Answers, 2)

	_, err = svc.Submit(context.Background(), created.Quiz.ID, submit)
	require.ErrorIs(t, err, service.ErrSubmissionFinalized)
}

func TestQuizGradeEnforcesScoreBounds(t *testing.T) {
	db := newTestDB(t)
	students := seedEnrolledStudents(t, db, "CS101", 1)
	svc := newQuizService(db)
	ctx := context.Background()

	created, err := svc.Create(ctx, quizCreatePayload("CS101"))
	require.NoError(t, err)

	_, err = svc.Start(ctx, created.Quiz.ID, dto.QuizStartRequest{StudentID: students[0].ID})
	require.NoError(t, err)
	submitted, err := svc.Submit(ctx, created.Quiz.ID, dto.QuizSubmitRequest{
		StudentID: students[0].ID,
		Answers:   []models.QuizAnswer{{QuestionID: "q1", Answer: "4"}},
	})
	require.NoError(t, err)

	_, err = svc.Grade(ctx, created.Quiz.ID, submitted.ID, dto.QuizGradeRequest{Score: floatPtr(created.Quiz.TotalMarks + 1)})
	require.ErrorIs(t, err, service.ErrScoreOutOfRange)

	_, err = svc.Grade(ctx, created.Quiz.ID, submitted.ID, dto.QuizGradeRequest{Score: floatPtr(-1)})
	require.ErrorIs(t, err, service.ErrScoreOutOfRange)

	graded, err := svc.Grade(ctx, created.Quiz.ID, submitted.ID, dto.QuizGradeRequest{Score: floatPtr(8), Remarks: "Good work"})
	require.NoError(t, err)
	require.Equal(t, models.QuizSubmissionGraded, graded.Status)
	require.Equal(t, 8.0, *graded.Score)
	require.Equal(t, "Good work", graded.Remarks)
	require.NotNil(t, graded.GradedAt)
}

func TestQuizGradeRejectsForeignSubmission(t *testing.T) {
	db := newTestDB(t)
	students := seedEnrolledStudents(t, db, "CS101", 1)
	svc := newQuizService(db)
	ctx := context.Background()

	created, err := svc.Create(ctx, quizCreatePayload("CS101"))
	require.NoError(t, err)
	other, err := svc.Create(ctx, quizCreatePayload("CS101"))
	require.NoError(t, err)

	started, err := svc.Start(ctx, created.Quiz.ID, dto.QuizStartRequest{StudentID: students[0].ID})
	require.NoError(t, err)

	_, err = svc.Grade(ctx, other.Quiz.ID, started.ID, dto.QuizGradeRequest{Score: floatPtr(5)})
	require.ErrorIs(t, err, service.ErrSubmissionNotFound)
}

func TestListSubmissionsAnnotatesAutoScore(t *testing.T) {
	db := newTestDB(t)
	students := seedEnrolledStudents(t, db, "CS101", 1)
	svc := newQuizService(db)
	ctx := context.Background()

	created, err := svc.Create(ctx, quizCreatePayload("CS101"))
	require.NoError(t, err)

	_, err = svc.Start(ctx, created.Quiz.ID, dto.QuizStartRequest{StudentID: students[0].ID})
	require.NoError(t, err)
	_, err = svc.Submit(ctx, created.Quiz.ID, dto.QuizSubmitRequest{
		StudentID: students[0].ID,
		Answers: []models.QuizAnswer{
			{QuestionID: "q1", Answer: " 4 "},
			{QuestionID: "q2", Answer: "false"},
		},
	})
	require.NoError(t, err)

	submissions, err := svc.ListSubmissions(ctx, created.Quiz.ID)
	require.NoError(t, err)
	require.Len(t, submissions, 1)
	require.NotNil(t, submissions[0].AutoScore)
	require.Equal(t, 5.0, *submissions[0].AutoScore)
}

func TestAutoScore(t *testing.T) {
	questions := []models.QuizQuestion{
		{QuestionID: "q1", Type: models.QuestionTypeMultipleChoice, CorrectAnswer: "4", Marks: 5},
		{QuestionID: "q2", Type: models.QuestionTypeTrueFalse, CorrectAnswer: "True", Marks: 5},
		{QuestionID: "q3", Type: models.QuestionTypeEssay, CorrectAnswer: "anything", Marks: 10},
	}

	// Whitespace is trimmed, case is not folded, and essays never auto-score.
	score := service.AutoScore(questions, []models.QuizAnswer{
		{QuestionID: "q1", Answer: " 4 "},
		{QuestionID: "q2", Answer: "true"},
		{QuestionID: "q3", Answer: "anything"},
	})
	require.Equal(t, 5.0, score)

	score = service.AutoScore(questions, []models.QuizAnswer{
		{QuestionID: "q1", Answer: "4"},
		{QuestionID: "q2", Answer: "True"},
	})
	require.Equal(t, 10.0, score)

	require.Zero(t, service.AutoScore(questions, nil))
}
