package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/Afaq499/cms/internal/models"
)

// GdbRepository defines persistence operations for graded discussion boards.
type GdbRepository interface {
	List(ctx context.Context) ([]models.Gdb, error)
	ListByCourseCode(ctx context.Context, code string) ([]models.Gdb, error)
	ListByCourseCodes(ctx context.Context, codes []string) ([]models.Gdb, error)
	GetByID(ctx context.Context, id uint) (models.Gdb, error)
	Create(ctx context.Context, gdb *models.Gdb) error
	Update(ctx context.Context, gdb *models.Gdb) error
	Delete(ctx context.Context, id uint) error
}

type gdbRepository struct {
	db *gorm.DB
}

// NewGdbRepository instantiates a GORM-backed repository.
func NewGdbRepository(db *gorm.DB) GdbRepository {
	return &gdbRepository{db: db}
}

func (r *gdbRepository) baseQuery(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Model(&models.Gdb{}).Preload("CreatedBy")
}

func (r *gdbRepository) List(ctx context.Context) ([]models.Gdb, error) {
	var gdbs []models.Gdb
	if err := r.baseQuery(ctx).Order("due_date ASC").Find(&gdbs).Error; err != nil {
		return nil, err
	}
	return gdbs, nil
}

func (r *gdbRepository) ListByCourseCode(ctx context.Context, code string) ([]models.Gdb, error) {
	var gdbs []models.Gdb
	if err := r.baseQuery(ctx).
		Where("course_code = ?", code).
		Order("due_date ASC").
		Find(&gdbs).Error; err != nil {
		return nil, err
	}
	return gdbs, nil
}

func (r *gdbRepository) ListByCourseCodes(ctx context.Context, codes []string) ([]models.Gdb, error) {
	if len(codes) == 0 {
		return []models.Gdb{}, nil
	}

	var gdbs []models.Gdb
	if err := r.baseQuery(ctx).
		Where("course_code IN ?", codes).
		Order("due_date ASC").
		Find(&gdbs).Error; err != nil {
		return nil, err
	}
	return gdbs, nil
}

func (r *gdbRepository) GetByID(ctx context.Context, id uint) (models.Gdb, error) {
	var gdb models.Gdb
	if err := r.baseQuery(ctx).First(&gdb, id).Error; err != nil {
		return models.Gdb{}, err
	}
	return gdb, nil
}

func (r *gdbRepository) Create(ctx context.Context, gdb *models.Gdb) error {
	return r.db.WithContext(ctx).Create(gdb).Error
}

func (r *gdbRepository) Update(ctx context.Context, gdb *models.Gdb) error {
	return r.db.WithContext(ctx).Save(gdb).Error
}

func (r *gdbRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Gdb{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
