package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"gorm.io/gorm"

	"github.com/Afaq499/cms/internal/dto"
	"github.com/Afaq499/cms/internal/models"
	"github.com/Afaq499/cms/internal/repository"
)

// ErrQuizNotFound indicates the quiz does not exist.
var ErrQuizNotFound = errors.New("quiz not found")

// ErrSubmissionNotFound indicates no submission exists for the lookup.
var ErrSubmissionNotFound = errors.New("submission not found")

// ErrSubmissionNotStarted indicates Submit was called before Start.
var ErrSubmissionNotStarted = errors.New("quiz has not been started")

// ErrSubmissionFinalized indicates the submission already left In Progress.
var ErrSubmissionFinalized = errors.New("quiz already submitted")

// QuizService owns quiz CRUD and the submission lifecycle:
// Start -> Submit -> Grade, never skipping or reversing a step.
type QuizService interface {
	List(ctx context.Context) ([]dto.QuizResponse, error)
	ListByCourse(ctx context.Context, courseCode string) ([]dto.QuizResponse, error)
	Get(ctx context.Context, id uint) (dto.QuizResponse, error)
	Create(ctx context.Context, payload dto.QuizCreateRequest) (dto.QuizCreateResponse, error)
	Update(ctx context.Context, id uint, payload dto.QuizUpdateRequest) (dto.QuizResponse, error)
	Delete(ctx context.Context, id uint) error

	Start(ctx context.Context, quizID uint, payload dto.QuizStartRequest) (dto.QuizSubmissionResponse, error)
	GetSubmission(ctx context.Context, quizID, studentID uint) (dto.QuizSubmissionResponse, error)
	Submit(ctx context.Context, quizID uint, payload dto.QuizSubmitRequest) (dto.QuizSubmissionResponse, error)
	ListSubmissions(ctx context.Context, quizID uint) ([]dto.QuizSubmissionResponse, error)
	Grade(ctx context.Context, quizID, submissionID uint, payload dto.QuizGradeRequest) (dto.QuizSubmissionResponse, error)
}

type quizService struct {
	quizzes     repository.QuizRepository
	submissions repository.QuizSubmissionRepository
	assignments repository.AssignmentRepository
	progress    repository.ProgressRepository
	validator   *validator.Validate
	logger      zerolog.Logger
	now         func() time.Time
}

// NewQuizService constructs a QuizService instance.
func NewQuizService(
	quizzes repository.QuizRepository,
	submissions repository.QuizSubmissionRepository,
	assignments repository.AssignmentRepository,
	progress repository.ProgressRepository,
	validate *validator.Validate,
	logger zerolog.Logger,
) QuizService {
	return &quizService{
		quizzes:     quizzes,
		submissions: submissions,
		assignments: assignments,
		progress:    progress,
		validator:   validate,
		logger:      logger.With().Str("component", "quiz_service").Logger(),
		now:         time.Now,
	}
}

func (s *quizService) List(ctx context.Context) ([]dto.QuizResponse, error) {
	quizzes, err := s.quizzes.List(ctx)
	if err != nil {
		return nil, err
	}
	return dto.NewQuizResponseSlice(quizzes), nil
}

func (s *quizService) ListByCourse(ctx context.Context, courseCode string) ([]dto.QuizResponse, error) {
	quizzes, err := s.quizzes.ListByCourseCode(ctx, courseCode)
	if err != nil {
		return nil, err
	}
	return dto.NewQuizResponseSlice(quizzes), nil
}

func (s *quizService) Get(ctx context.Context, id uint) (dto.QuizResponse, error) {
	quiz, err := s.quizzes.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.QuizResponse{}, ErrQuizNotFound
		}
		return dto.QuizResponse{}, err
	}
	return dto.NewQuizResponse(quiz), nil
}

// Create schedules a quiz and fans out one Not Started assignment per
// enrolled student. The fan-out is best-effort: individual failures are
// logged and reported in the summary but never fail the quiz creation.
func (s *quizService) Create(ctx context.Context, payload dto.QuizCreateRequest) (dto.QuizCreateResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.QuizCreateResponse{}, err
	}

	duration := payload.Duration
	if duration <= 0 {
		duration = 60
	}
	totalMarks := payload.TotalMarks
	if totalMarks <= 0 {
		totalMarks = sumQuestionMarks(payload.Questions)
		if totalMarks <= 0 {
			totalMarks = 100
		}
	}

	quiz := models.Quiz{
		Title:         payload.Title,
		CourseCode:    payload.CourseCode,
		CourseName:    payload.CourseName,
		ScheduledDate: payload.ScheduledDate,
		ScheduledTime: payload.ScheduledTime,
		Duration:      duration,
		TotalMarks:    totalMarks,
		Description:   payload.Description,
		Instructions:  payload.Instructions,
		Status:        models.QuizStatusScheduled,
		Questions:     payload.Questions,
		CreatedByID:   payload.CreatedByID,
	}

	if err := s.quizzes.Create(ctx, &quiz); err != nil {
		return dto.QuizCreateResponse{}, err
	}

	summary := s.fanOutAssignments(ctx, quiz)

	created, err := s.quizzes.GetByID(ctx, quiz.ID)
	if err != nil {
		return dto.QuizCreateResponse{}, err
	}

	s.logger.Info().
		Uint("quiz_id", created.ID).
		Int("fan_out_created", summary.Created).
		Int("fan_out_failed", summary.Failed).
		Msg("quiz created")

	return dto.QuizCreateResponse{Quiz: dto.NewQuizResponse(created), FanOut: summary}, nil
}

// fanOutAssignments creates one per-student assignment row for every student
// enrolled in the quiz's course. There is no transaction across the writes; a
// failure partway through leaves a partial set, which the summary exposes.
func (s *quizService) fanOutAssignments(ctx context.Context, quiz models.Quiz) dto.FanOutSummary {
	summary := dto.FanOutSummary{}

	enrolled, err := s.enrolledStudentIDs(ctx, quiz.CourseCode)
	if err != nil {
		s.logger.Error().Err(err).Str("course_code", quiz.CourseCode).Msg("failed to list enrolled students for quiz fan-out")
		summary.Errors = append(summary.Errors, err.Error())
		return summary
	}

	summary.Attempted = len(enrolled)
	for _, studentID := range enrolled {
		id := studentID
		assignment := models.Assignment{
			AssignmentNumber: fmt.Sprintf("QZ-%d", quiz.ID),
			Title:            quiz.Title,
			DueDate:          quiz.ScheduledDate,
			TotalMarks:       quiz.TotalMarks,
			Status:           models.AssignmentStatusNotStarted,
			CourseCode:       quiz.CourseCode,
			CourseName:       quiz.CourseName,
			Description:      quiz.Description,
			Instructions:     quiz.Instructions,
			StudentID:        &id,
			TeacherID:        quiz.CreatedByID,
		}
		if err := s.assignments.Create(ctx, &assignment); err != nil {
			summary.Failed++
			summary.Errors = append(summary.Errors, fmt.Sprintf("student %d: %v", studentID, err))
			s.logger.Error().Err(err).Uint("quiz_id", quiz.ID).Uint("student_id", studentID).Msg("quiz assignment fan-out write failed")
			continue
		}
		summary.Created++
	}

	return summary
}

func (s *quizService) enrolledStudentIDs(ctx context.Context, courseCode string) ([]uint, error) {
	records, err := s.progress.List(ctx)
	if err != nil {
		return nil, err
	}

	seen := map[uint]struct{}{}
	ids := make([]uint, 0)
	for _, record := range records {
		if record.CourseCode != courseCode {
			continue
		}
		if _, ok := seen[record.StudentID]; ok {
			continue
		}
		seen[record.StudentID] = struct{}{}
		ids = append(ids, record.StudentID)
	}
	return ids, nil
}

func (s *quizService) Update(ctx context.Context, id uint, payload dto.QuizUpdateRequest) (dto.QuizResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.QuizResponse{}, err
	}

	quiz, err := s.quizzes.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.QuizResponse{}, ErrQuizNotFound
		}
		return dto.QuizResponse{}, err
	}

	if payload.Title != nil {
		quiz.Title = *payload.Title
	}
	if payload.ScheduledDate != nil {
		quiz.ScheduledDate = *payload.ScheduledDate
	}
	if payload.ScheduledTime != nil {
		quiz.ScheduledTime = *payload.ScheduledTime
	}
	if payload.Duration != nil {
		quiz.Duration = *payload.Duration
	}
	if payload.TotalMarks != nil {
		quiz.TotalMarks = *payload.TotalMarks
	}
	if payload.Description != nil {
		quiz.Description = *payload.Description
	}
	if payload.Instructions != nil {
		quiz.Instructions = *payload.Instructions
	}
	if payload.Status != nil {
		quiz.Status = *payload.Status
	}
	if payload.Questions != nil {
		quiz.Questions = payload.Questions
	}

	if err := s.quizzes.Update(ctx, &quiz); err != nil {
		return dto.QuizResponse{}, err
	}

	return dto.NewQuizResponse(quiz), nil
}

func (s *quizService) Delete(ctx context.Context, id uint) error {
	if err := s.quizzes.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrQuizNotFound
		}
		return err
	}
	return nil
}

// Start creates an In Progress submission for the (quiz, student) pair, or
// returns the existing one unchanged. Idempotence doubles as resume.
func (s *quizService) Start(ctx context.Context, quizID uint, payload dto.QuizStartRequest) (dto.QuizSubmissionResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.QuizSubmissionResponse{}, err
	}

	existing, err := s.submissions.GetByQuizAndStudent(ctx, quizID, payload.StudentID)
	if err == nil {
		return dto.NewQuizSubmissionResponse(existing), nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return dto.QuizSubmissionResponse{}, err
	}

	quiz, err := s.quizzes.GetByID(ctx, quizID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.QuizSubmissionResponse{}, ErrQuizNotFound
		}
		return dto.QuizSubmissionResponse{}, err
	}

	submission := models.QuizSubmission{
		QuizID:     quiz.ID,
		StudentID:  payload.StudentID,
		Answers:    []models.QuizAnswer{},
		TotalMarks: quiz.TotalMarks,
		Status:     models.QuizSubmissionInProgress,
		StartedAt:  s.now(),
	}

	if err := s.submissions.Create(ctx, &submission); err != nil {
		// A concurrent Start may have won the unique-index race; return the
		// row that made it in.
		if winner, lookupErr := s.submissions.GetByQuizAndStudent(ctx, quizID, payload.StudentID); lookupErr == nil {
			return dto.NewQuizSubmissionResponse(winner), nil
		}
		return dto.QuizSubmissionResponse{}, err
	}

	s.logger.Info().Uint("quiz_id", quizID).Uint("student_id", payload.StudentID).Msg("quiz attempt started")

	return dto.NewQuizSubmissionResponse(submission), nil
}

func (s *quizService) GetSubmission(ctx context.Context, quizID, studentID uint) (dto.QuizSubmissionResponse, error) {
	submission, err := s.submissions.GetByQuizAndStudent(ctx, quizID, studentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.QuizSubmissionResponse{}, ErrSubmissionNotFound
		}
		return dto.QuizSubmissionResponse{}, err
	}
	return dto.NewQuizSubmissionResponse(submission), nil
}

// Submit finalizes an In Progress submission with the buffered answers. The
// quiz duration is a client-observed deadline: a late Submit is accepted
// exactly like an on-time one.
func (s *quizService) Submit(ctx context.Context, quizID uint, payload dto.QuizSubmitRequest) (dto.QuizSubmissionResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.QuizSubmissionResponse{}, err
	}

	submission, err := s.submissions.GetByQuizAndStudent(ctx, quizID, payload.StudentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.QuizSubmissionResponse{}, ErrSubmissionNotStarted
		}
		return dto.QuizSubmissionResponse{}, err
	}

	if submission.IsFinalized() {
		return dto.QuizSubmissionResponse{}, ErrSubmissionFinalized
	}

	now := s.now()
	submission.Answers = payload.Answers
	submission.Status = models.QuizSubmissionSubmitted
	submission.SubmittedAt = &now

	if err := s.submissions.Update(ctx, &submission); err != nil {
		return dto.QuizSubmissionResponse{}, err
	}

	s.logger.Info().Uint("quiz_id", quizID).Uint("student_id", payload.StudentID).Msg("quiz submitted")

	return dto.NewQuizSubmissionResponse(submission), nil
}

// ListSubmissions returns all submissions for a quiz for the grading view,
// most recently submitted first, each annotated with its auto-score.
func (s *quizService) ListSubmissions(ctx context.Context, quizID uint) ([]dto.QuizSubmissionResponse, error) {
	quiz, err := s.quizzes.GetByID(ctx, quizID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrQuizNotFound
		}
		return nil, err
	}

	submissions, err := s.submissions.ListByQuiz(ctx, quizID)
	if err != nil {
		return nil, err
	}

	responses := dto.NewQuizSubmissionResponseSlice(submissions)
	for i := range responses {
		score := AutoScore(quiz.Questions, submissions[i].Answers)
		responses[i].AutoScore = &score
	}
	return responses, nil
}

// Grade finalizes a submitted attempt. The score must lie in
// [0, submission total marks]; quiz and assignment grading share this policy.
func (s *quizService) Grade(ctx context.Context, quizID, submissionID uint, payload dto.QuizGradeRequest) (dto.QuizSubmissionResponse, error) {
	tracer := otel.Tracer("github.com/Afaq499/cms/internal/service/quiz")
	ctx, span := tracer.Start(ctx, "quiz.grade")
	span.SetAttributes(
		attribute.Int64("quiz.id", int64(quizID)),
		attribute.Int64("quiz.submission_id", int64(submissionID)),
	)
	defer span.End()

	if err := s.validator.Struct(payload); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "validation_failed")
		return dto.QuizSubmissionResponse{}, err
	}

	submission, err := s.submissions.GetByID(ctx, submissionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.QuizSubmissionResponse{}, ErrSubmissionNotFound
		}
		span.RecordError(err)
		return dto.QuizSubmissionResponse{}, err
	}

	if submission.QuizID != quizID {
		return dto.QuizSubmissionResponse{}, ErrSubmissionNotFound
	}

	if *payload.Score < 0 || *payload.Score > submission.TotalMarks {
		span.SetStatus(codes.Error, "score_out_of_range")
		return dto.QuizSubmissionResponse{}, ErrScoreOutOfRange
	}

	now := s.now()
	submission.Score = payload.Score
	submission.Remarks = payload.Remarks
	submission.Status = models.QuizSubmissionGraded
	submission.GradedAt = &now

	if err := s.submissions.Update(ctx, &submission); err != nil {
		span.RecordError(err)
		return dto.QuizSubmissionResponse{}, err
	}

	span.SetAttributes(attribute.Float64("quiz.score", *payload.Score))
	s.logger.Info().Uint("submission_id", submission.ID).Float64("score", *payload.Score).Msg("quiz submission graded")

	return dto.NewQuizSubmissionResponse(submission), nil
}

// AutoScore sums the marks of auto-scorable questions whose recorded answer,
// after trimming, exactly matches the correct answer. Short-answer and essay
// questions always contribute 0. The comparison is case-sensitive.
func AutoScore(questions []models.QuizQuestion, answers []models.QuizAnswer) float64 {
	answerByQuestion := make(map[string]string, len(answers))
	for _, answer := range answers {
		answerByQuestion[answer.QuestionID] = answer.Answer
	}

	var total float64
	for _, question := range questions {
		if !question.AutoScorable() {
			continue
		}
		answer, ok := answerByQuestion[question.QuestionID]
		if !ok {
			continue
		}
		if strings.TrimSpace(answer) == strings.TrimSpace(question.CorrectAnswer) {
			total += question.Marks
		}
	}
	return total
}

func sumQuestionMarks(questions []models.QuizQuestion) float64 {
	var total float64
	for _, question := range questions {
		total += question.Marks
	}
	return total
}
