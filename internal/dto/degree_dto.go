package dto

import (
	"time"

	"github.com/Afaq499/cms/internal/models"
)

// DegreeCreateRequest is the payload for creating a degree program.
type DegreeCreateRequest struct {
	Name        string          `json:"name" validate:"required,min=2"`
	Code        string          `json:"code" validate:"required,min=2,max=16"`
	Description string          `json:"description"`
	Duration    int             `json:"duration" validate:"omitempty,min=1,max=10"`
	Courses     []models.Course `json:"courses" validate:"dive"`
}

// DegreeUpdateRequest is the payload for updating a degree program. A nil
// Courses field leaves the course list untouched.
type DegreeUpdateRequest struct {
	Name        *string         `json:"name" validate:"omitempty,min=2"`
	Code        *string         `json:"code" validate:"omitempty,min=2,max=16"`
	Description *string         `json:"description"`
	Duration    *int            `json:"duration" validate:"omitempty,min=1,max=10"`
	Courses     []models.Course `json:"courses" validate:"omitempty,dive"`
}

// DegreeResponse is the serialized degree representation.
type DegreeResponse struct {
	ID          uint            `json:"id"`
	Name        string          `json:"name"`
	Code        string          `json:"code"`
	Description string          `json:"description"`
	Duration    int             `json:"duration"`
	Courses     []models.Course `json:"courses"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// NewDegreeResponse converts a model into a DTO.
func NewDegreeResponse(model models.Degree) DegreeResponse {
	return DegreeResponse{
		ID:          model.ID,
		Name:        model.Name,
		Code:        model.Code,
		Description: model.Description,
		Duration:    model.Duration,
		Courses:     model.Courses,
		CreatedAt:   model.CreatedAt,
		UpdatedAt:   model.UpdatedAt,
	}
}

// NewDegreeResponseSlice converts a slice of models into DTOs.
func NewDegreeResponseSlice(degrees []models.Degree) []DegreeResponse {
	responses := make([]DegreeResponse, 0, len(degrees))
	for _, degree := range degrees {
		responses = append(responses, NewDegreeResponse(degree))
	}
	return responses
}
