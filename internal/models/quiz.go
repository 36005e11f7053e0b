package models

import (
	"time"

	"gorm.io/datatypes"
)

// Quiz statuses.
const (
	QuizStatusScheduled = "Scheduled"
	QuizStatusActive    = "Active"
	QuizStatusCompleted = "Completed"
	QuizStatusCancelled = "Cancelled"
)

// Question types. Multiple-choice and true-false answers can be auto-scored;
// short-answer and essay always need manual marking.
const (
	QuestionTypeMultipleChoice = "multiple-choice"
	QuestionTypeTrueFalse      = "true-false"
	QuestionTypeShortAnswer    = "short-answer"
	QuestionTypeEssay          = "essay"
)

// QuizQuestion is one entry in a quiz's embedded question list.
type QuizQuestion struct {
	QuestionID    string   `json:"questionId" validate:"required"`
	Question      string   `json:"question" validate:"required"`
	Type          string   `json:"type" validate:"required,oneof=multiple-choice true-false short-answer essay"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correctAnswer" validate:"required"`
	Marks         float64  `json:"marks" validate:"required,gt=0"`
}

// AutoScorable reports whether the question can be scored by exact match.
func (q QuizQuestion) AutoScorable() bool {
	return q.Type == QuestionTypeMultipleChoice || q.Type == QuestionTypeTrueFalse
}

// Quiz is a scheduled assessment for a course.
type Quiz struct {
	ID            uint                              `gorm:"primaryKey" json:"id"`
	Title         string                            `gorm:"size:255;not null" json:"title"`
	CourseCode    string                            `gorm:"size:64;index;not null" json:"courseCode"`
	CourseName    string                            `gorm:"size:255;not null" json:"courseName"`
	ScheduledDate time.Time                         `gorm:"not null" json:"scheduledDate"`
	ScheduledTime string                            `gorm:"size:16;not null" json:"scheduledTime"`
	Duration      int                               `gorm:"not null;default:60" json:"duration"`
	TotalMarks    float64                           `gorm:"not null;default:100" json:"totalMarks"`
	Description   string                            `gorm:"type:text" json:"description"`
	Instructions  string                            `gorm:"type:text" json:"instructions"`
	Status        string                            `gorm:"size:32;not null;default:Scheduled" json:"status"`
	Questions     datatypes.JSONSlice[QuizQuestion] `gorm:"type:json" json:"questions"`

	CreatedByID uint `gorm:"not null" json:"createdById"`
	CreatedBy   User `gorm:"foreignKey:CreatedByID" json:"createdBy,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// FindQuestion returns the embedded question with the given id.
func (q Quiz) FindQuestion(questionID string) (QuizQuestion, bool) {
	for _, question := range q.Questions {
		if question.QuestionID == questionID {
			return question, true
		}
	}
	return QuizQuestion{}, false
}

// Deadline returns the instant a submission started at startedAt must be
// handed in by. The deadline is advisory: late submits are still accepted.
func (q Quiz) Deadline(startedAt time.Time) time.Time {
	return startedAt.Add(time.Duration(q.Duration) * time.Minute)
}
