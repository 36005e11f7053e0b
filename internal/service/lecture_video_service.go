package service

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/Afaq499/cms/internal/dto"
	"github.com/Afaq499/cms/internal/models"
	"github.com/Afaq499/cms/internal/repository"
)

// ErrVideoNotFound indicates the lecture video does not exist.
var ErrVideoNotFound = errors.New("lecture video not found")

// LectureVideoService owns course lecture videos.
type LectureVideoService interface {
	List(ctx context.Context) ([]dto.LectureVideoResponse, error)
	ListByCourse(ctx context.Context, courseCode string) ([]dto.LectureVideoResponse, error)
	Get(ctx context.Context, id uint) (dto.LectureVideoResponse, error)
	Create(ctx context.Context, payload dto.LectureVideoCreateRequest) (dto.LectureVideoResponse, error)
	Update(ctx context.Context, id uint, payload dto.LectureVideoUpdateRequest) (dto.LectureVideoResponse, error)
	Delete(ctx context.Context, id uint) error
}

type lectureVideoService struct {
	videos    repository.LectureVideoRepository
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewLectureVideoService constructs a LectureVideoService instance.
func NewLectureVideoService(videos repository.LectureVideoRepository, validate *validator.Validate, logger zerolog.Logger) LectureVideoService {
	return &lectureVideoService{
		videos:    videos,
		validator: validate,
		logger:    logger.With().Str("component", "lecture_video_service").Logger(),
	}
}

func (s *lectureVideoService) List(ctx context.Context) ([]dto.LectureVideoResponse, error) {
	videos, err := s.videos.List(ctx)
	if err != nil {
		return nil, err
	}
	return dto.NewLectureVideoResponseSlice(videos), nil
}

func (s *lectureVideoService) ListByCourse(ctx context.Context, courseCode string) ([]dto.LectureVideoResponse, error) {
	videos, err := s.videos.ListByCourseCode(ctx, courseCode)
	if err != nil {
		return nil, err
	}
	return dto.NewLectureVideoResponseSlice(videos), nil
}

func (s *lectureVideoService) Get(ctx context.Context, id uint) (dto.LectureVideoResponse, error) {
	video, err := s.videos.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.LectureVideoResponse{}, ErrVideoNotFound
		}
		return dto.LectureVideoResponse{}, err
	}
	return dto.NewLectureVideoResponse(video), nil
}

func (s *lectureVideoService) Create(ctx context.Context, payload dto.LectureVideoCreateRequest) (dto.LectureVideoResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.LectureVideoResponse{}, err
	}

	video := models.LectureVideo{
		Title:       payload.Title,
		YoutubeURL:  payload.YoutubeURL,
		Description: payload.Description,
		CourseCode:  payload.CourseCode,
		CourseName:  payload.CourseName,
		Duration:    payload.Duration,
		CreatedByID: payload.CreatedByID,
	}

	if err := s.videos.Create(ctx, &video); err != nil {
		return dto.LectureVideoResponse{}, err
	}

	created, err := s.videos.GetByID(ctx, video.ID)
	if err != nil {
		return dto.LectureVideoResponse{}, err
	}

	s.logger.Info().Uint("video_id", created.ID).Str("course_code", created.CourseCode).Msg("lecture video published")

	return dto.NewLectureVideoResponse(created), nil
}

func (s *lectureVideoService) Update(ctx context.Context, id uint, payload dto.LectureVideoUpdateRequest) (dto.LectureVideoResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.LectureVideoResponse{}, err
	}

	video, err := s.videos.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.LectureVideoResponse{}, ErrVideoNotFound
		}
		return dto.LectureVideoResponse{}, err
	}

	if payload.Title != nil {
		video.Title = *payload.Title
	}
	if payload.YoutubeURL != nil {
		video.YoutubeURL = *payload.YoutubeURL
	}
	if payload.Description != nil {
		video.Description = *payload.Description
	}
	if payload.Duration != nil {
		video.Duration = *payload.Duration
	}

	if err := s.videos.Update(ctx, &video); err != nil {
		return dto.LectureVideoResponse{}, err
	}

	return dto.NewLectureVideoResponse(video), nil
}

func (s *lectureVideoService) Delete(ctx context.Context, id uint) error {
	if err := s.videos.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrVideoNotFound
		}
		return err
	}
	return nil
}
