package dto

import (
	"time"

	"github.com/Afaq499/cms/internal/models"
)

// PersonRef is a minimal reference to an account, used when resolving
// creator/teacher/student foreign keys to display data.
type PersonRef struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// NewPersonRef builds a reference from a user model.
func NewPersonRef(user models.User) PersonRef {
	return PersonRef{ID: user.ID, Name: user.Name, Email: user.Email}
}

// AssignmentCreateRequest is the payload for creating an assignment.
type AssignmentCreateRequest struct {
	AssignmentNumber string    `json:"assignmentNumber" validate:"required"`
	Title            string    `json:"title" validate:"required,min=3"`
	DueDate          time.Time `json:"dueDate" validate:"required"`
	TotalMarks       float64   `json:"totalMarks" validate:"required,gt=0"`
	CourseCode       string    `json:"courseCode" validate:"required"`
	CourseName       string    `json:"courseName" validate:"required"`
	Description      string    `json:"description"`
	Instructions     string    `json:"instructions"`
	Content          string    `json:"content"`
	StudentID        *uint     `json:"studentId"`
	TeacherID        uint      `json:"teacherId" validate:"required"`
}

// AssignmentUpdateRequest is the payload for updating an assignment.
type AssignmentUpdateRequest struct {
	Title        *string    `json:"title" validate:"omitempty,min=3"`
	DueDate      *time.Time `json:"dueDate"`
	TotalMarks   *float64   `json:"totalMarks" validate:"omitempty,gt=0"`
	Description  *string    `json:"description"`
	Instructions *string    `json:"instructions"`
	Content      *string    `json:"content"`
	Status       *string    `json:"status" validate:"omitempty,oneof='Not Started' Pending Submitted Late"`
}

// AssignmentSubmitRequest carries a student's submission text.
type AssignmentSubmitRequest struct {
	SubmissionText string `json:"submissionText" validate:"required"`
}

// AssignmentGradeRequest carries a teacher's grade. Score is a pointer so a
// missing field is distinguishable from an explicit zero.
type AssignmentGradeRequest struct {
	Score   *float64 `json:"score" validate:"required"`
	Remarks string   `json:"remarks"`
}

// AssignmentResponse is the serialized assignment representation.
type AssignmentResponse struct {
	ID               uint       `json:"id"`
	AssignmentNumber string     `json:"assignmentNumber"`
	Title            string     `json:"title"`
	DueDate          time.Time  `json:"dueDate"`
	TotalMarks       float64    `json:"totalMarks"`
	Status           string     `json:"status"`
	SubmittedDate    *time.Time `json:"submittedDate"`
	SubmissionText   string     `json:"submissionText"`
	Score            *float64   `json:"score"`
	Remarks          string     `json:"remarks"`
	CourseCode       string     `json:"courseCode"`
	CourseName       string     `json:"courseName"`
	Description      string     `json:"description"`
	Instructions     string     `json:"instructions"`
	Teacher          *PersonRef `json:"teacher"`
	Student          *PersonRef `json:"student"`
	CreatedAt        time.Time  `json:"createdAt"`
	UpdatedAt        time.Time  `json:"updatedAt"`
}

// NewAssignmentResponse converts a model into a DTO.
func NewAssignmentResponse(model models.Assignment) AssignmentResponse {
	response := AssignmentResponse{
		ID:               model.ID,
		AssignmentNumber: model.AssignmentNumber,
		Title:            model.Title,
		DueDate:          model.DueDate,
		TotalMarks:       model.TotalMarks,
		Status:           model.Status,
		SubmittedDate:    model.SubmittedDate,
		SubmissionText:   model.SubmissionText,
		Score:            model.Score,
		Remarks:          model.Remarks,
		CourseCode:       model.CourseCode,
		CourseName:       model.CourseName,
		Description:      model.Description,
		Instructions:     model.Instructions,
		CreatedAt:        model.CreatedAt,
		UpdatedAt:        model.UpdatedAt,
	}

	if model.Teacher.ID != 0 {
		teacher := NewPersonRef(model.Teacher)
		response.Teacher = &teacher
	}
	if model.Student != nil && model.Student.ID != 0 {
		student := NewPersonRef(*model.Student)
		response.Student = &student
	}

	return response
}

// NewAssignmentResponseSlice converts a slice of models into DTOs.
func NewAssignmentResponseSlice(assignments []models.Assignment) []AssignmentResponse {
	responses := make([]AssignmentResponse, 0, len(assignments))
	for _, assignment := range assignments {
		responses = append(responses, NewAssignmentResponse(assignment))
	}
	return responses
}
