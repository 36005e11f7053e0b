package dto

import (
	"time"

	"github.com/Afaq499/cms/internal/models"
)

// GdbCreateRequest is the payload for opening a graded discussion board.
type GdbCreateRequest struct {
	Title       string    `json:"title" validate:"required,min=3"`
	Topic       string    `json:"topic" validate:"required"`
	DueDate     time.Time `json:"dueDate" validate:"required"`
	Description string    `json:"description"`
	TotalMarks  float64   `json:"totalMarks" validate:"omitempty,gt=0"`
	CourseCode  string    `json:"courseCode" validate:"required"`
	CourseName  string    `json:"courseName" validate:"required"`
	CreatedByID uint      `json:"createdById" validate:"required"`
}

// GdbUpdateRequest is the payload for editing a graded discussion board.
type GdbUpdateRequest struct {
	Title       *string    `json:"title" validate:"omitempty,min=3"`
	Topic       *string    `json:"topic"`
	DueDate     *time.Time `json:"dueDate"`
	Description *string    `json:"description"`
	TotalMarks  *float64   `json:"totalMarks" validate:"omitempty,gt=0"`
	Status      *string    `json:"status" validate:"omitempty,oneof=Open Closed"`
}

// GdbResponse is the serialized discussion board representation.
type GdbResponse struct {
	ID          uint       `json:"id"`
	Title       string     `json:"title"`
	Topic       string     `json:"topic"`
	DueDate     time.Time  `json:"dueDate"`
	Description string     `json:"description"`
	TotalMarks  float64    `json:"totalMarks"`
	Status      string     `json:"status"`
	CourseCode  string     `json:"courseCode"`
	CourseName  string     `json:"courseName"`
	CreatedBy   *PersonRef `json:"createdBy"`
	CreatedAt   time.Time  `json:"createdAt"`
}

// NewGdbResponse converts a model into a DTO.
func NewGdbResponse(model models.Gdb) GdbResponse {
	response := GdbResponse{
		ID:          model.ID,
		Title:       model.Title,
		Topic:       model.Topic,
		DueDate:     model.DueDate,
		Description: model.Description,
		TotalMarks:  model.TotalMarks,
		Status:      model.Status,
		CourseCode:  model.CourseCode,
		CourseName:  model.CourseName,
		CreatedAt:   model.CreatedAt,
	}
	if model.CreatedBy.ID != 0 {
		creator := NewPersonRef(model.CreatedBy)
		response.CreatedBy = &creator
	}
	return response
}

// NewGdbResponseSlice converts a slice of models into DTOs.
func NewGdbResponseSlice(gdbs []models.Gdb) []GdbResponse {
	responses := make([]GdbResponse, 0, len(gdbs))
	for _, gdb := range gdbs {
		responses = append(responses, NewGdbResponse(gdb))
	}
	return responses
}

// LectureVideoCreateRequest is the payload for publishing a lecture video.
type LectureVideoCreateRequest struct {
	Title       string `json:"title" validate:"required,min=3"`
	YoutubeURL  string `json:"youtubeUrl" validate:"required,url"`
	Description string `json:"description"`
	CourseCode  string `json:"courseCode" validate:"required"`
	CourseName  string `json:"courseName" validate:"required"`
	Duration    string `json:"duration"`
	CreatedByID uint   `json:"createdById" validate:"required"`
}

// LectureVideoUpdateRequest is the payload for editing a lecture video.
type LectureVideoUpdateRequest struct {
	Title       *string `json:"title" validate:"omitempty,min=3"`
	YoutubeURL  *string `json:"youtubeUrl" validate:"omitempty,url"`
	Description *string `json:"description"`
	Duration    *string `json:"duration"`
}

// LectureVideoResponse is the serialized lecture video representation.
type LectureVideoResponse struct {
	ID          uint       `json:"id"`
	Title       string     `json:"title"`
	YoutubeURL  string     `json:"youtubeUrl"`
	Description string     `json:"description"`
	CourseCode  string     `json:"courseCode"`
	CourseName  string     `json:"courseName"`
	Duration    string     `json:"duration"`
	CreatedBy   *PersonRef `json:"createdBy"`
	CreatedAt   time.Time  `json:"createdAt"`
}

// NewLectureVideoResponse converts a model into a DTO.
func NewLectureVideoResponse(model models.LectureVideo) LectureVideoResponse {
	response := LectureVideoResponse{
		ID:          model.ID,
		Title:       model.Title,
		YoutubeURL:  model.YoutubeURL,
		Description: model.Description,
		CourseCode:  model.CourseCode,
		CourseName:  model.CourseName,
		Duration:    model.Duration,
		CreatedAt:   model.CreatedAt,
	}
	if model.CreatedBy.ID != 0 {
		creator := NewPersonRef(model.CreatedBy)
		response.CreatedBy = &creator
	}
	return response
}

// NewLectureVideoResponseSlice converts a slice of models into DTOs.
func NewLectureVideoResponseSlice(videos []models.LectureVideo) []LectureVideoResponse {
	responses := make([]LectureVideoResponse, 0, len(videos))
	for _, video := range videos {
		responses = append(responses, NewLectureVideoResponse(video))
	}
	return responses
}

// FeeCreateRequest is the payload for creating a fee record.
type FeeCreateRequest struct {
	FeeType   string    `json:"feeType" validate:"required"`
	Amount    float64   `json:"amount" validate:"required,gt=0"`
	DueDate   time.Time `json:"dueDate" validate:"required"`
	Remarks   string    `json:"remarks"`
	StudentID *uint     `json:"studentId"`
}

// FeeUpdateRequest is the payload for updating a fee record.
type FeeUpdateRequest struct {
	FeeType  *string    `json:"feeType"`
	Amount   *float64   `json:"amount" validate:"omitempty,gt=0"`
	DueDate  *time.Time `json:"dueDate"`
	Status   *string    `json:"status" validate:"omitempty,oneof=Paid Pending"`
	PaidDate *time.Time `json:"paidDate"`
	Remarks  *string    `json:"remarks"`
}

// FeeResponse is the serialized fee representation.
type FeeResponse struct {
	ID        uint       `json:"id"`
	FeeType   string     `json:"feeType"`
	Amount    float64    `json:"amount"`
	DueDate   time.Time  `json:"dueDate"`
	Status    string     `json:"status"`
	PaidDate  *time.Time `json:"paidDate"`
	Remarks   string     `json:"remarks"`
	StudentID *uint      `json:"studentId"`
	CreatedAt time.Time  `json:"createdAt"`
}

// NewFeeResponse converts a model into a DTO.
func NewFeeResponse(model models.Fee) FeeResponse {
	return FeeResponse{
		ID:        model.ID,
		FeeType:   model.FeeType,
		Amount:    model.Amount,
		DueDate:   model.DueDate,
		Status:    model.Status,
		PaidDate:  model.PaidDate,
		Remarks:   model.Remarks,
		StudentID: model.StudentID,
		CreatedAt: model.CreatedAt,
	}
}

// NewFeeResponseSlice converts a slice of models into DTOs.
func NewFeeResponseSlice(fees []models.Fee) []FeeResponse {
	responses := make([]FeeResponse, 0, len(fees))
	for _, fee := range fees {
		responses = append(responses, NewFeeResponse(fee))
	}
	return responses
}
