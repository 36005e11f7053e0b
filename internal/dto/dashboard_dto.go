package dto

// StudentSummary identifies the student a dashboard or report belongs to.
type StudentSummary struct {
	ID        uint    `json:"id"`
	Name      string  `json:"name"`
	Email     string  `json:"email"`
	Degree    string  `json:"degree"`
	StudentID *string `json:"studentId"`
}

// TeacherInfo is the instructor block of a course view. A course with no
// assigned teacher carries the TBA placeholder with nil id and email.
type TeacherInfo struct {
	ID      *uint   `json:"id"`
	Name    string  `json:"name"`
	Email   *string `json:"email"`
	Subject string  `json:"subject"`
	Contact string  `json:"contact"`
	Gender  string  `json:"gender"`
}

// TBATeacher is the placeholder used when no teacher covers a course code.
func TBATeacher() TeacherInfo {
	return TeacherInfo{Name: "TBA", Gender: "Male"}
}

// CourseProgress is the progress block of a course view.
type CourseProgress struct {
	Assignments  float64 `json:"assignments"`
	Quizzes      float64 `json:"quizzes"`
	Midterm      float64 `json:"midterm"`
	Final        float64 `json:"final"`
	OverallGrade string  `json:"overallGrade"`
	Status       string  `json:"status"`
	Semester     string  `json:"semester"`
	Year         int     `json:"year"`
}

// CourseCounts summarises how many related records each course carries.
type CourseCounts struct {
	Assignments int `json:"assignments"`
	Quizzes     int `json:"quizzes"`
	Videos      int `json:"videos"`
	Gdbs        int `json:"gdbs"`
}

// CourseView is one enriched course entry in the student dashboard. A course
// with no related records still appears, with empty lists and zero counts.
type CourseView struct {
	ProgressID  *uint                  `json:"progressId"`
	CourseCode  string                 `json:"courseCode"`
	CourseTitle string                 `json:"courseTitle"`
	CreditHours int                    `json:"creditHours"`
	Type        string                 `json:"type"`
	Semester    int                    `json:"semester"`
	Group       string                 `json:"group"`
	DegreeName  string                 `json:"degreeName"`
	DegreeCode  string                 `json:"degreeCode"`
	Progress    *CourseProgress        `json:"progress"`
	Teacher     TeacherInfo            `json:"teacher"`
	Assignments []AssignmentResponse   `json:"assignments"`
	Quizzes     []QuizResponse         `json:"quizzes"`
	Videos      []LectureVideoResponse `json:"videos"`
	Gdbs        []GdbResponse          `json:"gdbs"`
	Counts      CourseCounts           `json:"counts"`
}

// StudentDashboardResponse is the full dashboard payload. Message is set only
// for the "no data yet" success cases (no degree assigned, empty degree).
type StudentDashboardResponse struct {
	Student StudentSummary `json:"student"`
	Courses []CourseView   `json:"courses"`
	Message string         `json:"message,omitempty"`
}
