package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/Afaq499/cms/internal/models"
)

// ProgressRepository defines persistence operations for progress records.
type ProgressRepository interface {
	List(ctx context.Context) ([]models.Progress, error)
	ListByStudent(ctx context.Context, studentID uint) ([]models.Progress, error)
	GetByID(ctx context.Context, id uint) (models.Progress, error)
	GetByStudentAndCourse(ctx context.Context, studentID uint, courseCode string) (models.Progress, error)
	Create(ctx context.Context, progress *models.Progress) error
	Update(ctx context.Context, progress *models.Progress) error
	Delete(ctx context.Context, id uint) error
}

type progressRepository struct {
	db *gorm.DB
}

// NewProgressRepository instantiates a GORM-backed repository.
func NewProgressRepository(db *gorm.DB) ProgressRepository {
	return &progressRepository{db: db}
}

func (r *progressRepository) List(ctx context.Context) ([]models.Progress, error) {
	var records []models.Progress
	if err := r.db.WithContext(ctx).
		Preload("Student").
		Order("created_at DESC").
		Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

func (r *progressRepository) ListByStudent(ctx context.Context, studentID uint) ([]models.Progress, error) {
	var records []models.Progress
	if err := r.db.WithContext(ctx).
		Where("student_id = ?", studentID).
		Order("created_at DESC").
		Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

func (r *progressRepository) GetByID(ctx context.Context, id uint) (models.Progress, error) {
	var progress models.Progress
	if err := r.db.WithContext(ctx).First(&progress, id).Error; err != nil {
		return models.Progress{}, err
	}
	return progress, nil
}

func (r *progressRepository) GetByStudentAndCourse(ctx context.Context, studentID uint, courseCode string) (models.Progress, error) {
	var progress models.Progress
	if err := r.db.WithContext(ctx).
		Where("student_id = ?", studentID).
		Where("course_code = ?", courseCode).
		First(&progress).Error; err != nil {
		return models.Progress{}, err
	}
	return progress, nil
}

func (r *progressRepository) Create(ctx context.Context, progress *models.Progress) error {
	return r.db.WithContext(ctx).Create(progress).Error
}

func (r *progressRepository) Update(ctx context.Context, progress *models.Progress) error {
	return r.db.WithContext(ctx).Save(progress).Error
}

func (r *progressRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Progress{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
