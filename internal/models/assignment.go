package models

import "time"

// Assignment lifecycle statuses.
const (
	AssignmentStatusNotStarted = "Not Started"
	AssignmentStatusPending    = "Pending"
	AssignmentStatusSubmitted  = "Submitted"
	AssignmentStatusLate       = "Late"
)

// Assignment is either an assignment definition or, once fanned out from a
// scheduled quiz, a per-student copy carrying that student's submission state.
type Assignment struct {
	ID               uint       `gorm:"primaryKey" json:"id"`
	AssignmentNumber string     `gorm:"size:64;not null" json:"assignmentNumber"`
	Title            string     `gorm:"size:255;not null" json:"title"`
	DueDate          time.Time  `gorm:"not null" json:"dueDate"`
	TotalMarks       float64    `gorm:"not null" json:"totalMarks"`
	Status           string     `gorm:"size:32;not null;default:Not Started" json:"status"`
	SubmittedDate    *time.Time `json:"submittedDate"`
	SubmissionText   string     `gorm:"type:text" json:"submissionText"`
	Score            *float64   `json:"score"`
	Remarks          string     `gorm:"type:text" json:"remarks"`
	CourseCode       string     `gorm:"size:64;index;not null" json:"courseCode"`
	CourseName       string     `gorm:"size:255;not null" json:"courseName"`
	Description      string     `gorm:"type:text" json:"description"`
	Instructions     string     `gorm:"type:text" json:"instructions"`
	Content          string     `gorm:"type:text" json:"content"`

	StudentID *uint `gorm:"index" json:"studentId"`
	TeacherID uint  `gorm:"not null" json:"teacherId"`
	Student   *User `gorm:"foreignKey:StudentID" json:"student,omitempty"`
	Teacher   User  `gorm:"foreignKey:TeacherID" json:"teacher,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// IsPastDue reports whether the deadline has passed at the reference time.
func (a Assignment) IsPastDue(reference time.Time) bool {
	return reference.After(a.DueDate)
}
