package models

import (
	"time"

	"gorm.io/datatypes"
)

// Course types within a degree plan.
const (
	CourseTypeRequired = "Required"
	CourseTypeElective = "Elective"
)

// Course is a single entry in a degree's course plan. Courses are embedded in
// their parent degree and are not independently addressable.
type Course struct {
	Code        string `json:"code" validate:"required"`
	Title       string `json:"title" validate:"required"`
	Type        string `json:"type" validate:"required,oneof=Required Elective"`
	CreditHours int    `json:"creditHours" validate:"required,min=1"`
	Semester    int    `json:"semester" validate:"required,min=1"`
	Group       string `json:"group"`
}

// Degree is a named program owning an ordered list of courses. Course codes
// are unique within a single degree's list.
type Degree struct {
	ID          uint                        `gorm:"primaryKey" json:"id"`
	Name        string                      `gorm:"size:255;uniqueIndex;not null" json:"name"`
	Code        string                      `gorm:"size:32;uniqueIndex;not null" json:"code"`
	Description string                      `gorm:"type:text" json:"description"`
	Duration    int                         `gorm:"not null;default:4" json:"duration"`
	Courses     datatypes.JSONSlice[Course] `gorm:"type:json" json:"courses"`
	CreatedAt   time.Time                   `json:"createdAt"`
	UpdatedAt   time.Time                   `json:"updatedAt"`
}

// FindCourse returns the embedded course with the given code.
func (d Degree) FindCourse(code string) (Course, bool) {
	for _, course := range d.Courses {
		if course.Code == code {
			return course, true
		}
	}
	return Course{}, false
}
