package dto

import (
	"time"

	"github.com/Afaq499/cms/internal/models"
)

// SignupRequest is the self-service registration payload.
type SignupRequest struct {
	Name     string `json:"name" validate:"required,min=2"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role" validate:"omitempty,oneof=Student Teacher Admin"`
}

// LoginRequest carries login credentials.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse is returned after a successful signup or login. The embedded
// user object is display cache only; the token is the source of identity.
type AuthResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// UserResponse is the public account representation.
type UserResponse struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	Degree    string    `json:"degree,omitempty"`
	StudentID *string   `json:"studentId,omitempty"`
	Address   string    `json:"address,omitempty"`
	Contact   string    `json:"contact,omitempty"`
	Gender    string    `json:"gender,omitempty"`
	Batch     string    `json:"batch,omitempty"`
	Subject   string    `json:"subject,omitempty"`
	Courses   []string  `json:"courses,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// StudentCreateRequest is the admin payload for adding a student. Courses
// lists the course codes to enroll the student in, fanned out as Progress
// records on a best-effort basis.
type StudentCreateRequest struct {
	Name      string   `json:"name" validate:"required,min=2"`
	Email     string   `json:"email" validate:"required,email"`
	Password  string   `json:"password" validate:"required,min=6"`
	Degree    string   `json:"degree" validate:"required"`
	StudentID string   `json:"studentId" validate:"required"`
	Address   string   `json:"address"`
	Contact   string   `json:"contact"`
	Gender    string   `json:"gender" validate:"omitempty,oneof=Male Female Other"`
	Batch     string   `json:"batch"`
	Courses   []string `json:"courses"`
}

// StudentUpdateRequest is the admin payload for editing a student.
type StudentUpdateRequest struct {
	Name      *string  `json:"name" validate:"omitempty,min=2"`
	Email     *string  `json:"email" validate:"omitempty,email"`
	Degree    *string  `json:"degree"`
	StudentID *string  `json:"studentId"`
	Address   *string  `json:"address"`
	Contact   *string  `json:"contact"`
	Gender    *string  `json:"gender" validate:"omitempty,oneof=Male Female Other"`
	Batch     *string  `json:"batch"`
	Courses   []string `json:"courses"`
}

// TeacherCreateRequest is the admin payload for adding a teacher.
type TeacherCreateRequest struct {
	Name     string   `json:"name" validate:"required,min=2"`
	Email    string   `json:"email" validate:"required,email"`
	Password string   `json:"password" validate:"required,min=6"`
	Subject  string   `json:"subject"`
	Contact  string   `json:"contact"`
	Gender   string   `json:"gender" validate:"omitempty,oneof=Male Female Other"`
	Courses  []string `json:"courses"`
}

// TeacherUpdateRequest is the admin payload for editing a teacher.
type TeacherUpdateRequest struct {
	Name    *string  `json:"name" validate:"omitempty,min=2"`
	Email   *string  `json:"email" validate:"omitempty,email"`
	Subject *string  `json:"subject"`
	Contact *string  `json:"contact"`
	Gender  *string  `json:"gender" validate:"omitempty,oneof=Male Female Other"`
	Courses []string `json:"courses"`
}

// NewUserResponse converts a model into a DTO.
func NewUserResponse(model models.User) UserResponse {
	return UserResponse{
		ID:        model.ID,
		Name:      model.Name,
		Email:     model.Email,
		Role:      model.Role,
		Degree:    model.Degree,
		StudentID: model.StudentID,
		Address:   model.Address,
		Contact:   model.Contact,
		Gender:    model.Gender,
		Batch:     model.Batch,
		Subject:   model.Subject,
		Courses:   model.Courses,
		CreatedAt: model.CreatedAt,
	}
}

// NewUserResponseSlice converts a slice of models into DTOs.
func NewUserResponseSlice(users []models.User) []UserResponse {
	responses := make([]UserResponse, 0, len(users))
	for _, user := range users {
		responses = append(responses, NewUserResponse(user))
	}
	return responses
}
