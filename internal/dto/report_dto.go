package dto

import "time"

// ReportCourse is one progress row in a student report.
type ReportCourse struct {
	CourseCode   string  `json:"courseCode"`
	CourseTitle  string  `json:"courseTitle"`
	Assignments  float64 `json:"assignments"`
	Quizzes      float64 `json:"quizzes"`
	Midterm      float64 `json:"midterm"`
	Final        float64 `json:"final"`
	OverallGrade string  `json:"overallGrade"`
	Status       string  `json:"status"`
	Semester     string  `json:"semester"`
	Year         int     `json:"year"`
}

// ReportProgress summarises a student's course outcomes. AverageGrade is a
// 4.0-scale GPA over completed courses with a real letter grade.
type ReportProgress struct {
	TotalCourses      int            `json:"totalCourses"`
	CompletedCourses  int            `json:"completedCourses"`
	InProgressCourses int            `json:"inProgressCourses"`
	DroppedCourses    int            `json:"droppedCourses"`
	AverageGrade      float64        `json:"averageGrade"`
	Courses           []ReportCourse `json:"courses"`
}

// ReportAssignmentDetail is one assignment row in a student report.
type ReportAssignmentDetail struct {
	Title      string    `json:"title"`
	CourseCode string    `json:"courseCode"`
	Status     string    `json:"status"`
	Score      *float64  `json:"score"`
	TotalMarks float64   `json:"totalMarks"`
	DueDate    time.Time `json:"dueDate"`
}

// ReportAssignments summarises assignment completion.
type ReportAssignments struct {
	Total     int                      `json:"total"`
	Submitted int                      `json:"submitted"`
	Pending   int                      `json:"pending"`
	Details   []ReportAssignmentDetail `json:"details"`
}

// StudentReport is the full per-student report payload.
type StudentReport struct {
	Student     StudentSummary    `json:"student"`
	Progress    ReportProgress    `json:"progress"`
	Assignments ReportAssignments `json:"assignments"`
	GeneratedAt time.Time         `json:"generatedAt"`
}

// StudentProgressSummary is one row of the cross-student summary shown on the
// teacher dashboard. Progress is the rounded mean of the weighted composite
// score across the student's progress rows.
type StudentProgressSummary struct {
	ID               uint   `json:"id"`
	Name             string `json:"name"`
	Email            string `json:"email"`
	TotalCourses     int    `json:"totalCourses"`
	CompletedCourses int    `json:"completedCourses"`
	Progress         int    `json:"progress"`
}
