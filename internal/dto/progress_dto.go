package dto

import (
	"time"

	"github.com/Afaq499/cms/internal/models"
)

// ProgressCreateRequest is the payload for creating a progress record.
type ProgressCreateRequest struct {
	StudentID   uint    `json:"studentId" validate:"required"`
	CourseCode  string  `json:"courseCode" validate:"required"`
	CourseTitle string  `json:"courseTitle" validate:"required"`
	Assignments float64 `json:"assignments" validate:"min=0,max=100"`
	Quizzes     float64 `json:"quizzes" validate:"min=0,max=100"`
	Midterm     float64 `json:"midterm" validate:"min=0,max=100"`
	Final       float64 `json:"final" validate:"min=0,max=100"`
	Semester    string  `json:"semester" validate:"required"`
	Year        int     `json:"year" validate:"required"`
}

// ProgressUpdateRequest is the payload for updating a progress record.
type ProgressUpdateRequest struct {
	Assignments  *float64 `json:"assignments" validate:"omitempty,min=0,max=100"`
	Quizzes      *float64 `json:"quizzes" validate:"omitempty,min=0,max=100"`
	Midterm      *float64 `json:"midterm" validate:"omitempty,min=0,max=100"`
	Final        *float64 `json:"final" validate:"omitempty,min=0,max=100"`
	OverallGrade *string  `json:"overallGrade" validate:"omitempty,oneof=A+ A A- B+ B B- C+ C C- D+ D F —"`
	Status       *string  `json:"status" validate:"omitempty,oneof='In Progress' Completed Dropped"`
}

// ProgressResponse is the serialized progress representation.
type ProgressResponse struct {
	ID           uint      `json:"id"`
	StudentID    uint      `json:"studentId"`
	CourseCode   string    `json:"courseCode"`
	CourseTitle  string    `json:"courseTitle"`
	Assignments  float64   `json:"assignments"`
	Quizzes      float64   `json:"quizzes"`
	Midterm      float64   `json:"midterm"`
	Final        float64   `json:"final"`
	OverallGrade string    `json:"overallGrade"`
	Status       string    `json:"status"`
	Semester     string    `json:"semester"`
	Year         int       `json:"year"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// NewProgressResponse converts a model into a DTO.
func NewProgressResponse(model models.Progress) ProgressResponse {
	return ProgressResponse{
		ID:           model.ID,
		StudentID:    model.StudentID,
		CourseCode:   model.CourseCode,
		CourseTitle:  model.CourseTitle,
		Assignments:  model.Assignments,
		Quizzes:      model.Quizzes,
		Midterm:      model.Midterm,
		Final:        model.Final,
		OverallGrade: model.OverallGrade,
		Status:       model.Status,
		Semester:     model.Semester,
		Year:         model.Year,
		CreatedAt:    model.CreatedAt,
		UpdatedAt:    model.UpdatedAt,
	}
}

// NewProgressResponseSlice converts a slice of models into DTOs.
func NewProgressResponseSlice(records []models.Progress) []ProgressResponse {
	responses := make([]ProgressResponse, 0, len(records))
	for _, record := range records {
		responses = append(responses, NewProgressResponse(record))
	}
	return responses
}
