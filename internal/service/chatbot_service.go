package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/Afaq499/cms/internal/dto"
	"github.com/Afaq499/cms/pkg/ai"
)

// ErrAssistantUnavailable indicates no assistant backend is configured.
var ErrAssistantUnavailable = errors.New("assistant is not configured")

// promptDetailLimit caps per-course record lists in the system prompt so the
// context stays within the model's budget.
const promptDetailLimit = 5

// ChatbotService answers student questions grounded in their academic data.
type ChatbotService interface {
	Ask(ctx context.Context, studentID uint, payload dto.ChatbotAskRequest) (dto.ChatbotResponse, error)
}

type chatbotService struct {
	dashboard DashboardService
	assistant ai.Assistant
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewChatbotService constructs a ChatbotService instance. A nil assistant
// makes Ask fail with ErrAssistantUnavailable.
func NewChatbotService(dashboard DashboardService, assistant ai.Assistant, validate *validator.Validate, logger zerolog.Logger) ChatbotService {
	return &chatbotService{
		dashboard: dashboard,
		assistant: assistant,
		validator: validate,
		logger:    logger.With().Str("component", "chatbot_service").Logger(),
	}
}

// Ask resolves the student's dashboard, folds it into a system prompt,
// replays the prior turns and forwards the question to the assistant.
func (s *chatbotService) Ask(ctx context.Context, studentID uint, payload dto.ChatbotAskRequest) (dto.ChatbotResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.ChatbotResponse{}, err
	}
	if s.assistant == nil {
		return dto.ChatbotResponse{}, ErrAssistantUnavailable
	}

	dashboard, err := s.dashboard.GetStudentDashboard(ctx, studentID)
	if err != nil {
		return dto.ChatbotResponse{}, err
	}

	messages := make([]ai.Message, 0, len(payload.History)+2)
	messages = append(messages, ai.Message{Role: ai.RoleSystem, Content: buildStudentContext(dashboard)})
	for _, turn := range payload.History {
		messages = append(messages, ai.Message{Role: turn.Role, Content: turn.Content})
	}
	messages = append(messages, ai.Message{Role: ai.RoleUser, Content: payload.Message})

	reply, err := s.assistant.Chat(ctx, messages)
	if err != nil {
		s.logger.Error().Err(err).Uint("student_id", studentID).Msg("assistant request failed")
		return dto.ChatbotResponse{}, err
	}

	return dto.ChatbotResponse{Reply: reply}, nil
}

// buildStudentContext renders the dashboard into the assistant's system
// prompt. Record lists are truncated to promptDetailLimit entries per course.
func buildStudentContext(dashboard dto.StudentDashboardResponse) string {
	builder := strings.Builder{}
	builder.WriteString("You are an academic advisor for a university course management system. ")
	builder.WriteString("Answer only from the student data below. If the data does not cover the question, say so.\n\n")

	builder.WriteString(fmt.Sprintf("Student: %s (%s)", dashboard.Student.Name, dashboard.Student.Email))
	if dashboard.Student.Degree != "" {
		builder.WriteString(fmt.Sprintf(", degree: %s", dashboard.Student.Degree))
	}
	builder.WriteString("\n")

	if len(dashboard.Courses) == 0 {
		builder.WriteString("The student has no enrolled courses.\n")
		return builder.String()
	}

	for _, course := range dashboard.Courses {
		builder.WriteString(fmt.Sprintf("\n## %s — %s (instructor: %s)\n", course.CourseCode, course.CourseTitle, course.Teacher.Name))

		if course.Progress != nil {
			builder.WriteString(fmt.Sprintf(
				"Progress: assignments %.1f, quizzes %.1f, midterm %.1f, final %.1f, grade %s, status %s\n",
				course.Progress.Assignments, course.Progress.Quizzes, course.Progress.Midterm,
				course.Progress.Final, course.Progress.OverallGrade, course.Progress.Status,
			))
		}

		for i, assignment := range course.Assignments {
			if i == promptDetailLimit {
				builder.WriteString(fmt.Sprintf("...and %d more assignments\n", len(course.Assignments)-promptDetailLimit))
				break
			}
			line := fmt.Sprintf("Assignment: %s, due %s, status %s", assignment.Title, assignment.DueDate.Format("2006-01-02"), assignment.Status)
			if assignment.Score != nil {
				line += fmt.Sprintf(", score %.1f/%.1f", *assignment.Score, assignment.TotalMarks)
			}
			builder.WriteString(line + "\n")
		}

		for i, quiz := range course.Quizzes {
			if i == promptDetailLimit {
				builder.WriteString(fmt.Sprintf("...and %d more quizzes\n", len(course.Quizzes)-promptDetailLimit))
				break
			}
			builder.WriteString(fmt.Sprintf("Quiz: %s, scheduled %s %s, status %s\n", quiz.Title, quiz.ScheduledDate.Format("2006-01-02"), quiz.ScheduledTime, quiz.Status))
		}

		for i, gdb := range course.Gdbs {
			if i == promptDetailLimit {
				builder.WriteString(fmt.Sprintf("...and %d more discussion boards\n", len(course.Gdbs)-promptDetailLimit))
				break
			}
			builder.WriteString(fmt.Sprintf("Discussion: %s, due %s, status %s\n", gdb.Title, gdb.DueDate.Format("2006-01-02"), gdb.Status))
		}

		for i, video := range course.Videos {
			if i == promptDetailLimit {
				builder.WriteString(fmt.Sprintf("...and %d more videos\n", len(course.Videos)-promptDetailLimit))
				break
			}
			builder.WriteString(fmt.Sprintf("Video: %s (%s)\n", video.Title, video.Duration))
		}
	}

	return builder.String()
}
