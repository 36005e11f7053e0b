package models

import (
	"time"

	"gorm.io/datatypes"
)

// Quiz submission lifecycle statuses. Transitions only move forward:
// In Progress -> Submitted -> Graded.
const (
	QuizSubmissionInProgress = "In Progress"
	QuizSubmissionSubmitted  = "Submitted"
	QuizSubmissionGraded     = "Graded"
)

// QuizAnswer is a student's answer to one question.
type QuizAnswer struct {
	QuestionID string `json:"questionId" validate:"required"`
	Answer     string `json:"answer"`
}

// QuizSubmission joins a quiz and a student. The composite unique index
// guarantees at most one submission per (quiz, student) pair, which guards
// against double-start races.
type QuizSubmission struct {
	ID          uint                            `gorm:"primaryKey" json:"id"`
	QuizID      uint                            `gorm:"not null;uniqueIndex:idx_quiz_student" json:"quizId"`
	StudentID   uint                            `gorm:"not null;uniqueIndex:idx_quiz_student" json:"studentId"`
	Answers     datatypes.JSONSlice[QuizAnswer] `gorm:"type:json" json:"answers"`
	Score       *float64                        `json:"score"`
	TotalMarks  float64                         `gorm:"not null" json:"totalMarks"`
	Status      string                          `gorm:"size:32;not null;default:In Progress" json:"status"`
	StartedAt   time.Time                       `gorm:"not null" json:"startedAt"`
	SubmittedAt *time.Time                      `json:"submittedAt"`
	GradedAt    *time.Time                      `json:"gradedAt"`
	Remarks     string                          `gorm:"type:text" json:"remarks"`

	Quiz    Quiz `gorm:"foreignKey:QuizID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"quiz,omitempty"`
	Student User `gorm:"foreignKey:StudentID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"student,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// IsFinalized reports whether the submission has left the In Progress state.
func (s QuizSubmission) IsFinalized() bool {
	return s.Status == QuizSubmissionSubmitted || s.Status == QuizSubmissionGraded
}
