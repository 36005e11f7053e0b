package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/Afaq499/cms/internal/models"
)

// FeeRepository defines persistence operations for fee records.
type FeeRepository interface {
	List(ctx context.Context) ([]models.Fee, error)
	ListByStudent(ctx context.Context, studentID uint) ([]models.Fee, error)
	GetByID(ctx context.Context, id uint) (models.Fee, error)
	Create(ctx context.Context, fee *models.Fee) error
	Update(ctx context.Context, fee *models.Fee) error
	Delete(ctx context.Context, id uint) error
}

type feeRepository struct {
	db *gorm.DB
}

// NewFeeRepository instantiates a GORM-backed repository.
func NewFeeRepository(db *gorm.DB) FeeRepository {
	return &feeRepository{db: db}
}

func (r *feeRepository) List(ctx context.Context) ([]models.Fee, error) {
	var fees []models.Fee
	if err := r.db.WithContext(ctx).Order("due_date ASC").Find(&fees).Error; err != nil {
		return nil, err
	}
	return fees, nil
}

func (r *feeRepository) ListByStudent(ctx context.Context, studentID uint) ([]models.Fee, error) {
	var fees []models.Fee
	if err := r.db.WithContext(ctx).
		Where("student_id = ?", studentID).
		Order("due_date ASC").
		Find(&fees).Error; err != nil {
		return nil, err
	}
	return fees, nil
}

func (r *feeRepository) GetByID(ctx context.Context, id uint) (models.Fee, error) {
	var fee models.Fee
	if err := r.db.WithContext(ctx).First(&fee, id).Error; err != nil {
		return models.Fee{}, err
	}
	return fee, nil
}

func (r *feeRepository) Create(ctx context.Context, fee *models.Fee) error {
	return r.db.WithContext(ctx).Create(fee).Error
}

func (r *feeRepository) Update(ctx context.Context, fee *models.Fee) error {
	return r.db.WithContext(ctx).Save(fee).Error
}

func (r *feeRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Fee{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
