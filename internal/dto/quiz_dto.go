package dto

import (
	"time"

	"github.com/Afaq499/cms/internal/models"
)

// QuizCreateRequest is the payload for scheduling a quiz.
type QuizCreateRequest struct {
	Title         string                `json:"title" validate:"required,min=3"`
	CourseCode    string                `json:"courseCode" validate:"required"`
	CourseName    string                `json:"courseName" validate:"required"`
	ScheduledDate time.Time             `json:"scheduledDate" validate:"required"`
	ScheduledTime string                `json:"scheduledTime" validate:"required"`
	Duration      int                   `json:"duration" validate:"omitempty,min=1"`
	TotalMarks    float64               `json:"totalMarks" validate:"omitempty,gt=0"`
	Description   string                `json:"description"`
	Instructions  string                `json:"instructions"`
	Questions     []models.QuizQuestion `json:"questions" validate:"dive"`
	CreatedByID   uint                  `json:"createdById" validate:"required"`
}

// QuizUpdateRequest is the payload for editing a quiz.
type QuizUpdateRequest struct {
	Title         *string               `json:"title" validate:"omitempty,min=3"`
	ScheduledDate *time.Time            `json:"scheduledDate"`
	ScheduledTime *string               `json:"scheduledTime"`
	Duration      *int                  `json:"duration" validate:"omitempty,min=1"`
	TotalMarks    *float64              `json:"totalMarks" validate:"omitempty,gt=0"`
	Description   *string               `json:"description"`
	Instructions  *string               `json:"instructions"`
	Status        *string               `json:"status" validate:"omitempty,oneof=Scheduled Active Completed Cancelled"`
	Questions     []models.QuizQuestion `json:"questions" validate:"omitempty,dive"`
}

// QuizResponse is the serialized quiz representation.
type QuizResponse struct {
	ID            uint                  `json:"id"`
	Title         string                `json:"title"`
	CourseCode    string                `json:"courseCode"`
	CourseName    string                `json:"courseName"`
	ScheduledDate time.Time             `json:"scheduledDate"`
	ScheduledTime string                `json:"scheduledTime"`
	Duration      int                   `json:"duration"`
	TotalMarks    float64               `json:"totalMarks"`
	Description   string                `json:"description"`
	Instructions  string                `json:"instructions"`
	Status        string                `json:"status"`
	Questions     []models.QuizQuestion `json:"questions"`
	CreatedBy     *PersonRef            `json:"createdBy"`
	CreatedAt     time.Time             `json:"createdAt"`
	UpdatedAt     time.Time             `json:"updatedAt"`
}

// NewQuizResponse converts a model into a DTO.
func NewQuizResponse(model models.Quiz) QuizResponse {
	response := QuizResponse{
		ID:            model.ID,
		Title:         model.Title,
		CourseCode:    model.CourseCode,
		CourseName:    model.CourseName,
		ScheduledDate: model.ScheduledDate,
		ScheduledTime: model.ScheduledTime,
		Duration:      model.Duration,
		TotalMarks:    model.TotalMarks,
		Description:   model.Description,
		Instructions:  model.Instructions,
		Status:        model.Status,
		Questions:     model.Questions,
		CreatedAt:     model.CreatedAt,
		UpdatedAt:     model.UpdatedAt,
	}

	if model.CreatedBy.ID != 0 {
		creator := NewPersonRef(model.CreatedBy)
		response.CreatedBy = &creator
	}

	return response
}

// NewQuizResponseSlice converts a slice of models into DTOs.
func NewQuizResponseSlice(quizzes []models.Quiz) []QuizResponse {
	responses := make([]QuizResponse, 0, len(quizzes))
	for _, quiz := range quizzes {
		responses = append(responses, NewQuizResponse(quiz))
	}
	return responses
}

// QuizCreateResponse pairs the created quiz with the result of the
// best-effort assignment fan-out so partial failure stays observable.
type QuizCreateResponse struct {
	Quiz   QuizResponse  `json:"quiz"`
	FanOut FanOutSummary `json:"fanOut"`
}

// FanOutSummary reports how a best-effort side-effect went.
type FanOutSummary struct {
	Attempted int      `json:"attempted"`
	Created   int      `json:"created"`
	Failed    int      `json:"failed"`
	Errors    []string `json:"errors,omitempty"`
}

// Partial reports whether some, but not all, side-effect writes succeeded.
func (s FanOutSummary) Partial() bool {
	return s.Failed > 0 && s.Created > 0
}
