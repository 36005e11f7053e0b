package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/Afaq499/cms/internal/models"
)

// LectureVideoRepository defines persistence operations for lecture videos.
type LectureVideoRepository interface {
	List(ctx context.Context) ([]models.LectureVideo, error)
	ListByCourseCode(ctx context.Context, code string) ([]models.LectureVideo, error)
	ListByCourseCodes(ctx context.Context, codes []string) ([]models.LectureVideo, error)
	GetByID(ctx context.Context, id uint) (models.LectureVideo, error)
	Create(ctx context.Context, video *models.LectureVideo) error
	Update(ctx context.Context, video *models.LectureVideo) error
	Delete(ctx context.Context, id uint) error
}

type lectureVideoRepository struct {
	db *gorm.DB
}

// NewLectureVideoRepository instantiates a GORM-backed repository.
func NewLectureVideoRepository(db *gorm.DB) LectureVideoRepository {
	return &lectureVideoRepository{db: db}
}

func (r *lectureVideoRepository) baseQuery(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Model(&models.LectureVideo{}).Preload("CreatedBy")
}

func (r *lectureVideoRepository) List(ctx context.Context) ([]models.LectureVideo, error) {
	var videos []models.LectureVideo
	if err := r.baseQuery(ctx).Order("created_at DESC").Find(&videos).Error; err != nil {
		return nil, err
	}
	return videos, nil
}

func (r *lectureVideoRepository) ListByCourseCode(ctx context.Context, code string) ([]models.LectureVideo, error) {
	var videos []models.LectureVideo
	if err := r.baseQuery(ctx).
		Where("course_code = ?", code).
		Order("created_at DESC").
		Find(&videos).Error; err != nil {
		return nil, err
	}
	return videos, nil
}

func (r *lectureVideoRepository) ListByCourseCodes(ctx context.Context, codes []string) ([]models.LectureVideo, error) {
	if len(codes) == 0 {
		return []models.LectureVideo{}, nil
	}

	var videos []models.LectureVideo
	if err := r.baseQuery(ctx).
		Where("course_code IN ?", codes).
		Order("created_at DESC").
		Find(&videos).Error; err != nil {
		return nil, err
	}
	return videos, nil
}

func (r *lectureVideoRepository) GetByID(ctx context.Context, id uint) (models.LectureVideo, error) {
	var video models.LectureVideo
	if err := r.baseQuery(ctx).First(&video, id).Error; err != nil {
		return models.LectureVideo{}, err
	}
	return video, nil
}

func (r *lectureVideoRepository) Create(ctx context.Context, video *models.LectureVideo) error {
	return r.db.WithContext(ctx).Create(video).Error
}

func (r *lectureVideoRepository) Update(ctx context.Context, video *models.LectureVideo) error {
	return r.db.WithContext(ctx).Save(video).Error
}

func (r *lectureVideoRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.LectureVideo{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
