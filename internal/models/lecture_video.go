package models

import "time"

// LectureVideo is a recorded lecture attached to a course.
type LectureVideo struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Title       string `gorm:"size:255;not null" json:"title"`
	YoutubeURL  string `gorm:"size:512;not null" json:"youtubeUrl"`
	Description string `gorm:"type:text" json:"description"`
	CourseCode  string `gorm:"size:64;index;not null" json:"courseCode"`
	CourseName  string `gorm:"size:255;not null" json:"courseName"`
	Duration    string `gorm:"size:32" json:"duration"`

	CreatedByID uint `gorm:"not null" json:"createdById"`
	CreatedBy   User `gorm:"foreignKey:CreatedByID" json:"createdBy,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
