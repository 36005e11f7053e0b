package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/Afaq499/cms/internal/models"
)

// QuizSubmissionRepository defines persistence operations for quiz submissions.
type QuizSubmissionRepository interface {
	GetByID(ctx context.Context, id uint) (models.QuizSubmission, error)
	GetByQuizAndStudent(ctx context.Context, quizID, studentID uint) (models.QuizSubmission, error)
	ListByQuiz(ctx context.Context, quizID uint) ([]models.QuizSubmission, error)
	Create(ctx context.Context, submission *models.QuizSubmission) error
	Update(ctx context.Context, submission *models.QuizSubmission) error
}

type quizSubmissionRepository struct {
	db *gorm.DB
}

// NewQuizSubmissionRepository instantiates a GORM-backed repository.
func NewQuizSubmissionRepository(db *gorm.DB) QuizSubmissionRepository {
	return &quizSubmissionRepository{db: db}
}

func (r *quizSubmissionRepository) baseQuery(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Model(&models.QuizSubmission{}).
		Preload("Quiz").
		Preload("Student")
}

func (r *quizSubmissionRepository) GetByID(ctx context.Context, id uint) (models.QuizSubmission, error) {
	var submission models.QuizSubmission
	if err := r.baseQuery(ctx).First(&submission, id).Error; err != nil {
		return models.QuizSubmission{}, err
	}
	return submission, nil
}

func (r *quizSubmissionRepository) GetByQuizAndStudent(ctx context.Context, quizID, studentID uint) (models.QuizSubmission, error) {
	var submission models.QuizSubmission
	if err := r.baseQuery(ctx).
		Where("quiz_id = ?", quizID).
		Where("student_id = ?", studentID).
		First(&submission).Error; err != nil {
		return models.QuizSubmission{}, err
	}
	return submission, nil
}

func (r *quizSubmissionRepository) ListByQuiz(ctx context.Context, quizID uint) ([]models.QuizSubmission, error) {
	var submissions []models.QuizSubmission
	if err := r.baseQuery(ctx).
		Where("quiz_id = ?", quizID).
		Order("submitted_at DESC").
		Find(&submissions).Error; err != nil {
		return nil, err
	}
	return submissions, nil
}

func (r *quizSubmissionRepository) Create(ctx context.Context, submission *models.QuizSubmission) error {
	return r.db.WithContext(ctx).Create(submission).Error
}

func (r *quizSubmissionRepository) Update(ctx context.Context, submission *models.QuizSubmission) error {
	return r.db.WithContext(ctx).Save(submission).Error
}
