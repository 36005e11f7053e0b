package models

import "time"

// Graded discussion board statuses.
const (
	GdbStatusOpen   = "Open"
	GdbStatusClosed = "Closed"
)

// Gdb is a graded discussion board topic for a course.
type Gdb struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"size:255;not null" json:"title"`
	Topic       string    `gorm:"size:255;not null" json:"topic"`
	DueDate     time.Time `gorm:"not null" json:"dueDate"`
	Description string    `gorm:"type:text" json:"description"`
	TotalMarks  float64   `gorm:"not null;default:10" json:"totalMarks"`
	Status      string    `gorm:"size:32;not null;default:Open" json:"status"`
	CourseCode  string    `gorm:"size:64;index;not null" json:"courseCode"`
	CourseName  string    `gorm:"size:255;not null" json:"courseName"`

	CreatedByID uint `gorm:"not null" json:"createdById"`
	CreatedBy   User `gorm:"foreignKey:CreatedByID" json:"createdBy,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
