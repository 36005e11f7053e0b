package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/Afaq499/cms/internal/models"
)

// DegreeRepository defines persistence operations for degree programs.
type DegreeRepository interface {
	List(ctx context.Context) ([]models.Degree, error)
	GetByID(ctx context.Context, id uint) (models.Degree, error)
	GetByName(ctx context.Context, name string) (models.Degree, error)
	GetByCode(ctx context.Context, code string) (models.Degree, error)
	Create(ctx context.Context, degree *models.Degree) error
	Update(ctx context.Context, degree *models.Degree) error
	Delete(ctx context.Context, id uint) error
}

type degreeRepository struct {
	db *gorm.DB
}

// NewDegreeRepository instantiates a GORM-backed repository.
func NewDegreeRepository(db *gorm.DB) DegreeRepository {
	return &degreeRepository{db: db}
}

func (r *degreeRepository) List(ctx context.Context) ([]models.Degree, error) {
	var degrees []models.Degree
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&degrees).Error; err != nil {
		return nil, err
	}
	return degrees, nil
}

func (r *degreeRepository) GetByID(ctx context.Context, id uint) (models.Degree, error) {
	var degree models.Degree
	if err := r.db.WithContext(ctx).First(&degree, id).Error; err != nil {
		return models.Degree{}, err
	}
	return degree, nil
}

func (r *degreeRepository) GetByName(ctx context.Context, name string) (models.Degree, error) {
	var degree models.Degree
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&degree).Error; err != nil {
		return models.Degree{}, err
	}
	return degree, nil
}

func (r *degreeRepository) GetByCode(ctx context.Context, code string) (models.Degree, error) {
	var degree models.Degree
	if err := r.db.WithContext(ctx).Where("code = ?", code).First(&degree).Error; err != nil {
		return models.Degree{}, err
	}
	return degree, nil
}

func (r *degreeRepository) Create(ctx context.Context, degree *models.Degree) error {
	return r.db.WithContext(ctx).Create(degree).Error
}

func (r *degreeRepository) Update(ctx context.Context, degree *models.Degree) error {
	return r.db.WithContext(ctx).Save(degree).Error
}

func (r *degreeRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Degree{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
