package dto

import (
	"time"

	"github.com/Afaq499/cms/internal/models"
)

// QuizStartRequest identifies the student starting (or resuming) a quiz.
type QuizStartRequest struct {
	StudentID uint `json:"studentId" validate:"required"`
}

// QuizSubmitRequest carries the final answer set for a quiz attempt. Answers
// are buffered client-side and written atomically here.
type QuizSubmitRequest struct {
	StudentID uint                `json:"studentId" validate:"required"`
	Answers   []models.QuizAnswer `json:"answers" validate:"required,dive"`
}

// QuizGradeRequest carries a teacher's grade for a quiz submission.
type QuizGradeRequest struct {
	Score   *float64 `json:"score" validate:"required"`
	Remarks string   `json:"remarks"`
}

// QuizSubmissionResponse is the serialized submission representation.
type QuizSubmissionResponse struct {
	ID          uint                `json:"id"`
	QuizID      uint                `json:"quizId"`
	StudentID   uint                `json:"studentId"`
	Answers     []models.QuizAnswer `json:"answers"`
	Score       *float64            `json:"score"`
	TotalMarks  float64             `json:"totalMarks"`
	Status      string              `json:"status"`
	StartedAt   time.Time           `json:"startedAt"`
	SubmittedAt *time.Time          `json:"submittedAt"`
	GradedAt    *time.Time          `json:"gradedAt"`
	Remarks     string              `json:"remarks"`
	Student     *PersonRef          `json:"student,omitempty"`
	AutoScore   *float64            `json:"autoScore,omitempty"`
}

// NewQuizSubmissionResponse converts a model into a DTO.
func NewQuizSubmissionResponse(model models.QuizSubmission) QuizSubmissionResponse {
	response := QuizSubmissionResponse{
		ID:          model.ID,
		QuizID:      model.QuizID,
		StudentID:   model.StudentID,
		Answers:     model.Answers,
		Score:       model.Score,
		TotalMarks:  model.TotalMarks,
		Status:      model.Status,
		StartedAt:   model.StartedAt,
		SubmittedAt: model.SubmittedAt,
		GradedAt:    model.GradedAt,
		Remarks:     model.Remarks,
	}

	if model.Student.ID != 0 {
		student := NewPersonRef(model.Student)
		response.Student = &student
	}

	return response
}

// NewQuizSubmissionResponseSlice converts a slice of models into DTOs.
func NewQuizSubmissionResponseSlice(submissions []models.QuizSubmission) []QuizSubmissionResponse {
	responses := make([]QuizSubmissionResponse, 0, len(submissions))
	for _, submission := range submissions {
		responses = append(responses, NewQuizSubmissionResponse(submission))
	}
	return responses
}
