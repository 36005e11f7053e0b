package service

import (
	"context"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/Afaq499/cms/internal/dto"
	"github.com/Afaq499/cms/internal/models"
	"github.com/Afaq499/cms/internal/repository"
)

// ErrFeeNotFound indicates the fee record does not exist.
var ErrFeeNotFound = errors.New("fee record not found")

// FeeService owns fee records.
type FeeService interface {
	List(ctx context.Context) ([]dto.FeeResponse, error)
	ListByStudent(ctx context.Context, studentID uint) ([]dto.FeeResponse, error)
	Get(ctx context.Context, id uint) (dto.FeeResponse, error)
	Create(ctx context.Context, payload dto.FeeCreateRequest) (dto.FeeResponse, error)
	Update(ctx context.Context, id uint, payload dto.FeeUpdateRequest) (dto.FeeResponse, error)
	Delete(ctx context.Context, id uint) error
}

type feeService struct {
	fees      repository.FeeRepository
	validator *validator.Validate
	logger    zerolog.Logger
	now       func() time.Time
}

// NewFeeService constructs a FeeService instance.
func NewFeeService(fees repository.FeeRepository, validate *validator.Validate, logger zerolog.Logger) FeeService {
	return &feeService{
		fees:      fees,
		validator: validate,
		logger:    logger.With().Str("component", "fee_service").Logger(),
		now:       time.Now,
	}
}

func (s *feeService) List(ctx context.Context) ([]dto.FeeResponse, error) {
	fees, err := s.fees.List(ctx)
	if err != nil {
		return nil, err
	}
	return dto.NewFeeResponseSlice(fees), nil
}

func (s *feeService) ListByStudent(ctx context.Context, studentID uint) ([]dto.FeeResponse, error) {
	fees, err := s.fees.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}
	return dto.NewFeeResponseSlice(fees), nil
}

func (s *feeService) Get(ctx context.Context, id uint) (dto.FeeResponse, error) {
	fee, err := s.fees.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.FeeResponse{}, ErrFeeNotFound
		}
		return dto.FeeResponse{}, err
	}
	return dto.NewFeeResponse(fee), nil
}

func (s *feeService) Create(ctx context.Context, payload dto.FeeCreateRequest) (dto.FeeResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.FeeResponse{}, err
	}

	fee := models.Fee{
		FeeType:   payload.FeeType,
		Amount:    payload.Amount,
		DueDate:   payload.DueDate,
		Status:    models.FeeStatusPending,
		Remarks:   payload.Remarks,
		StudentID: payload.StudentID,
	}

	if err := s.fees.Create(ctx, &fee); err != nil {
		return dto.FeeResponse{}, err
	}

	s.logger.Info().Uint("fee_id", fee.ID).Str("fee_type", fee.FeeType).Msg("fee record created")

	return dto.NewFeeResponse(fee), nil
}

func (s *feeService) Update(ctx context.Context, id uint, payload dto.FeeUpdateRequest) (dto.FeeResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.FeeResponse{}, err
	}

	fee, err := s.fees.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.FeeResponse{}, ErrFeeNotFound
		}
		return dto.FeeResponse{}, err
	}

	if payload.FeeType != nil {
		fee.FeeType = *payload.FeeType
	}
	if payload.Amount != nil {
		fee.Amount = *payload.Amount
	}
	if payload.DueDate != nil {
		fee.DueDate = *payload.DueDate
	}
	if payload.Status != nil {
		fee.Status = *payload.Status
		// Marking a fee paid stamps the payment date unless one was sent.
		if fee.Status == models.FeeStatusPaid && payload.PaidDate == nil && fee.PaidDate == nil {
			now := s.now()
			fee.PaidDate = &now
		}
	}
	if payload.PaidDate != nil {
		fee.PaidDate = payload.PaidDate
	}
	if payload.Remarks != nil {
		fee.Remarks = *payload.Remarks
	}

	if err := s.fees.Update(ctx, &fee); err != nil {
		return dto.FeeResponse{}, err
	}

	return dto.NewFeeResponse(fee), nil
}

func (s *feeService) Delete(ctx context.Context, id uint) error {
	if err := s.fees.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrFeeNotFound
		}
		return err
	}
	return nil
}
