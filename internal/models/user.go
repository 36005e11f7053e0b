package models

import (
	"time"

	"gorm.io/datatypes"
)

// Roles recognised across the API.
const (
	RoleStudent = "Student"
	RoleTeacher = "Teacher"
	RoleAdmin   = "Admin"
)

// User is a single account. Role-specific fields are sparse: student fields
// are populated only for students, teacher fields only for teachers.
type User struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Name     string `gorm:"size:255;not null" json:"name"`
	Email    string `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Password string `gorm:"size:255;not null" json:"-"`
	Role     string `gorm:"size:32;not null;default:Student" json:"role"`

	// Student fields.
	Degree    string  `gorm:"size:255" json:"degree,omitempty"`
	StudentID *string `gorm:"size:64;uniqueIndex" json:"studentId,omitempty"`
	Address   string  `gorm:"size:512" json:"address,omitempty"`
	Contact   string  `gorm:"size:64" json:"contact,omitempty"`
	Gender    string  `gorm:"size:16" json:"gender,omitempty"`
	Batch     string  `gorm:"size:64" json:"batch,omitempty"`

	// Teacher fields.
	Subject string                      `gorm:"size:255" json:"subject,omitempty"`
	Courses datatypes.JSONSlice[string] `gorm:"type:json" json:"courses"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// IsStudent reports whether the account has the student role.
func (u User) IsStudent() bool {
	return u.Role == RoleStudent
}

// IsTeacher reports whether the account has the teacher role.
func (u User) IsTeacher() bool {
	return u.Role == RoleTeacher
}
