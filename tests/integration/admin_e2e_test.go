package integration_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/Afaq499/cms/internal/config"
	"github.com/Afaq499/cms/internal/dto"
	"github.com/Afaq499/cms/internal/handler"
	"github.com/Afaq499/cms/internal/middleware"
	"github.com/Afaq499/cms/internal/models"
	"github.com/Afaq499/cms/internal/repository"
	"github.com/Afaq499/cms/internal/router"
	"github.com/Afaq499/cms/internal/service"
)

func setupApp(t *testing.T) *fiber.App {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Degree{},
		&models.Assignment{},
		&models.Quiz{},
		&models.QuizSubmission{},
		&models.Progress{},
		&models.Gdb{},
		&models.LectureVideo{},
		&models.Fee{},
	))

	validate := validator.New(validator.WithRequiredStructEnabled())
	logger := zerolog.New(io.Discard)

	userRepo := repository.NewUserRepository(db)
	degreeRepo := repository.NewDegreeRepository(db)
	assignmentRepo := repository.NewAssignmentRepository(db)
	quizRepo := repository.NewQuizRepository(db)
	submissionRepo := repository.NewQuizSubmissionRepository(db)
	progressRepo := repository.NewProgressRepository(db)
	gdbRepo := repository.NewGdbRepository(db)
	videoRepo := repository.NewLectureVideoRepository(db)
	feeRepo := repository.NewFeeRepository(db)

	catalogService := service.NewCatalogService(userRepo, degreeRepo, logger)
	dashboardService := service.NewDashboardService(catalogService, assignmentRepo, quizRepo, videoRepo, gdbRepo, progressRepo, nil, time.Minute, logger)
	userService := service.NewUserService(userRepo, degreeRepo, progressRepo, dashboardService, validate, logger)
	degreeService := service.NewDegreeService(degreeRepo, validate, logger)
	assignmentService := service.NewAssignmentService(assignmentRepo, validate, logger)
	quizService := service.NewQuizService(quizRepo, submissionRepo, assignmentRepo, progressRepo, validate, logger)
	progressService := service.NewProgressService(progressRepo, dashboardService, validate, logger)
	gdbService := service.NewGdbService(gdbRepo, validate, logger)
	videoService := service.NewLectureVideoService(videoRepo, validate, logger)
	feeService := service.NewFeeService(feeRepo, validate, logger)
	reportService := service.NewReportService(userRepo, progressRepo, assignmentRepo, logger)

	app := fiber.New()
	middleware.Register(app, middleware.Config{Logger: &logger})

	router.Register(app, config.Config{AppName: "Test", JWTSecret: "secret"}, router.Dependencies{
		AdminUserHandler:    handler.NewAdminUserHandler(userService, logger),
		DegreeHandler:       handler.NewDegreeHandler(degreeService, logger),
		AssignmentHandler:   handler.NewAssignmentHandler(assignmentService, logger),
		QuizHandler:         handler.NewQuizHandler(quizService, logger),
		ProgressHandler:     handler.NewProgressHandler(progressService, logger),
		GdbHandler:          handler.NewGdbHandler(gdbService, logger),
		LectureVideoHandler: handler.NewLectureVideoHandler(videoService, logger),
		FeeHandler:          handler.NewFeeHandler(feeService, logger),
		DashboardHandler:    handler.NewDashboardHandler(dashboardService, logger),
		ReportHandler:       handler.NewReportHandler(reportService, logger),
		JWTMiddleware: func(c *fiber.Ctx) error {
			switch {
			case strings.HasPrefix(c.Path(), "/api/admin"):
				c.Locals("user_id", uint(9001))
				c.Locals("user_role", "admin")
			case strings.HasPrefix(c.Path(), "/api/reports"), strings.HasPrefix(c.Path(), "/api/fees"):
				c.Locals("user_id", uint(2))
				c.Locals("user_role", "teacher")
			default:
				c.Locals("user_id", uint(1))
				c.Locals("user_role", "student")
			}
			return c.Next()
		},
	})

	return app
}

func request(t *testing.T, app *fiber.App, method, path string, payload interface{}) *http.Response {
	t.Helper()

	var reader io.Reader
	if payload != nil {
		body, err := json.Marshal(payload)
		require.NoError(t, err)
		reader = bytes.NewReader(body)
	}

	req := httptest.NewRequest(method, path, reader)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode[T any](t *testing.T, resp *http.Response, target *T) {
	t.Helper()
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, target))
}

func TestAdminEndToEndFlow(t *testing.T) {
	app := setupApp(t)

	// Step 1: admin creates the degree program with its course catalog.
	degreeResp := request(t, app, http.MethodPost, "/api/degrees", dto.DegreeCreateRequest{
		Name:        "BS Computer Science",
		Code:        "BSCS",
		Description: "Four year program",
		Duration:    4,
		Courses: []models.Course{
			{Code: "CS101", Title: "Programming Fundamentals", Type: models.CourseTypeRequired, CreditHours: 3, Semester: 1},
			{Code: "CS102", Title: "Data Structures", Type: models.CourseTypeRequired, CreditHours: 3, Semester: 2},
		},
	})
	require.Equal(t, fiber.StatusCreated, degreeResp.StatusCode)
	degreeResp.Body.Close()

	// Step 2: admin registers a teacher covering CS101.
	teacherResp := request(t, app, http.MethodPost, "/api/admin/teachers", dto.TeacherCreateRequest{
		Name:     "Dr. Imran Khan",
		Email:    "imran@example.com",
		Password: "secret123",
		Subject:  "Computer Science",
		Gender:   "Male",
		Courses:  []string{"CS101"},
	})
	require.Equal(t, fiber.StatusCreated, teacherResp.StatusCode)

	var teacherBody struct {
		Success bool             `json:"success"`
		Data    dto.UserResponse `json:"data"`
	}
	decode(t, teacherResp, &teacherBody)
	require.True(t, teacherBody.Success)
	teacherID := teacherBody.Data.ID

	// Step 3: admin creates a student enrolled in both courses.
	studentResp := request(t, app, http.MethodPost, "/api/admin/students", dto.StudentCreateRequest{
		Name:      "Ayesha",
		Email:     "ayesha@example.com",
		Password:  "secret123",
		Degree:    "BS Computer Science",
		StudentID: "BC210400001",
		Gender:    "Female",
		Batch:     "2021",
		Courses:   []string{"CS101", "CS102"},
	})
	require.Equal(t, fiber.StatusCreated, studentResp.StatusCode)

	var studentBody struct {
		Success bool                        `json:"success"`
		Data    service.StudentCreateResult `json:"data"`
	}
	decode(t, studentResp, &studentBody)
	require.True(t, studentBody.Success)
	require.Equal(t, 2, studentBody.Data.FanOut.Created)
	require.Zero(t, studentBody.Data.FanOut.Failed)
	studentID := studentBody.Data.Student.ID

	// Step 4: quiz creation fans out one pending record per enrolled student.
	quizResp := request(t, app, http.MethodPost, "/api/quizzes", dto.QuizCreateRequest{
		Title:         "Quiz 1",
		CourseCode:    "CS101",
		CourseName:    "Programming Fundamentals",
		ScheduledDate: time.Now().Add(48 * time.Hour),
		ScheduledTime: "10:00",
		Duration:      30,
		TotalMarks:    10,
		Questions: []models.QuizQuestion{
			{QuestionID: "q1", Question: "2 + 2 = ?", Type: models.QuestionTypeMultipleChoice, Options: []string{"3", "4"}, CorrectAnswer: "4", Marks: 10},
		},
		CreatedByID: teacherID,
	})
	require.Equal(t, fiber.StatusCreated, quizResp.StatusCode)

	var quizBody struct {
		Success bool                   `json:"success"`
		Data    dto.QuizCreateResponse `json:"data"`
	}
	decode(t, quizResp, &quizBody)
	require.True(t, quizBody.Success)
	require.Equal(t, 1, quizBody.Data.FanOut.Created)

	// Step 5: the student dashboard shows both courses, CS101 with its teacher.
	dashboardResp := request(t, app, http.MethodGet, "/api/dashboard/student/"+strconv.Itoa(int(studentID)), nil)
	require.Equal(t, fiber.StatusOK, dashboardResp.StatusCode)

	var dashboardBody struct {
		Success bool                         `json:"success"`
		Data    dto.StudentDashboardResponse `json:"data"`
	}
	decode(t, dashboardResp, &dashboardBody)
	require.True(t, dashboardBody.Success)
	require.Len(t, dashboardBody.Data.Courses, 2)

	views := map[string]dto.CourseView{}
	for _, view := range dashboardBody.Data.Courses {
		views[view.CourseCode] = view
	}
	require.Equal(t, "Dr. Imran Khan", views["CS101"].Teacher.Name)
	require.NotNil(t, views["CS101"].Progress)
	require.Equal(t, "TBA", views["CS102"].Teacher.Name)

	// Step 6: the teacher assigns coursework directly to the student.
	assignmentResp := request(t, app, http.MethodPost, "/api/assignments", dto.AssignmentCreateRequest{
		AssignmentNumber: "A-1",
		Title:            "Sorting Exercise",
		DueDate:          time.Now().Add(72 * time.Hour),
		TotalMarks:       20,
		CourseCode:       "CS101",
		CourseName:       "Programming Fundamentals",
		StudentID:        &studentID,
		TeacherID:        teacherID,
	})
	require.Equal(t, fiber.StatusCreated, assignmentResp.StatusCode)

	var assignmentBody struct {
		Success bool                   `json:"success"`
		Data    dto.AssignmentResponse `json:"data"`
	}
	decode(t, assignmentResp, &assignmentBody)
	require.True(t, assignmentBody.Success)
	assignmentID := strconv.Itoa(int(assignmentBody.Data.ID))

	// Step 7: student submits before the due date.
	submitResp := request(t, app, http.MethodPatch, "/api/assignments/"+assignmentID+"/submit", dto.AssignmentSubmitRequest{
		SubmissionText: "Merge sort beats bubble sort on large inputs.",
	})
	require.Equal(t, fiber.StatusOK, submitResp.StatusCode)

	var submittedBody struct {
		Success bool                   `json:"success"`
		Data    dto.AssignmentResponse `json:"data"`
	}
	decode(t, submitResp, &submittedBody)
	require.Equal(t, models.AssignmentStatusSubmitted, submittedBody.Data.Status)

	// Step 8: teacher grades the submission.
	score := 17.5
	gradeResp := request(t, app, http.MethodPatch, "/api/assignments/"+assignmentID+"/grade", dto.AssignmentGradeRequest{
		Score:   &score,
		Remarks: "Good work",
	})
	require.Equal(t, fiber.StatusOK, gradeResp.StatusCode)

	var gradedBody struct {
		Success bool                   `json:"success"`
		Data    dto.AssignmentResponse `json:"data"`
	}
	decode(t, gradeResp, &gradedBody)
	require.NotNil(t, gradedBody.Data.Score)
	require.Equal(t, score, *gradedBody.Data.Score)

	// Step 9: the student report reflects enrollment and coursework. The quiz
	// fan-out record is still pending; the graded assignment counts submitted.
	reportResp := request(t, app, http.MethodGet, "/api/reports/student/"+strconv.Itoa(int(studentID)), nil)
	require.Equal(t, fiber.StatusOK, reportResp.StatusCode)

	var reportBody struct {
		Success bool              `json:"success"`
		Data    dto.StudentReport `json:"data"`
	}
	decode(t, reportResp, &reportBody)
	require.True(t, reportBody.Success)
	require.Equal(t, 2, reportBody.Data.Progress.TotalCourses)
	require.Equal(t, 2, reportBody.Data.Progress.InProgressCourses)
	require.Equal(t, 2, reportBody.Data.Assignments.Total)
	require.Equal(t, 1, reportBody.Data.Assignments.Submitted)
	require.Equal(t, 1, reportBody.Data.Assignments.Pending)
}
