package models

import "time"

// Progress statuses.
const (
	ProgressInProgress = "In Progress"
	ProgressCompleted  = "Completed"
	ProgressDropped    = "Dropped"
)

// GradePlaceholder marks a course that has not been graded yet. Rows carrying
// it are excluded from GPA computation.
const GradePlaceholder = "—"

// Progress is the per (student, course) academic record. Component scores are
// percentages in [0, 100].
type Progress struct {
	ID           uint    `gorm:"primaryKey" json:"id"`
	StudentID    uint    `gorm:"not null;index;uniqueIndex:idx_student_course" json:"studentId"`
	CourseCode   string  `gorm:"size:64;not null;uniqueIndex:idx_student_course" json:"courseCode"`
	CourseTitle  string  `gorm:"size:255;not null" json:"courseTitle"`
	Assignments  float64 `gorm:"not null;default:0" json:"assignments"`
	Quizzes      float64 `gorm:"not null;default:0" json:"quizzes"`
	Midterm      float64 `gorm:"not null;default:0" json:"midterm"`
	Final        float64 `gorm:"not null;default:0" json:"final"`
	OverallGrade string  `gorm:"size:4;not null;default:—" json:"overallGrade"`
	Status       string  `gorm:"size:32;not null;default:In Progress" json:"status"`
	Semester     string  `gorm:"size:32;not null" json:"semester"`
	Year         int     `gorm:"not null" json:"year"`

	Student User `gorm:"foreignKey:StudentID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"student,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CompositeScore is the weighted progress percentage used by the
// cross-student summary: 30% assignments, 30% quizzes, 20% midterm, 20% final.
func (p Progress) CompositeScore() float64 {
	return p.Assignments*0.3 + p.Quizzes*0.3 + p.Midterm*0.2 + p.Final*0.2
}
