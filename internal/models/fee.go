package models

import "time"

// Fee statuses.
const (
	FeeStatusPaid    = "Paid"
	FeeStatusPending = "Pending"
)

// Fee is a per-account fee record.
type Fee struct {
	ID       uint       `gorm:"primaryKey" json:"id"`
	FeeType  string     `gorm:"size:128;not null" json:"feeType"`
	Amount   float64    `gorm:"not null" json:"amount"`
	DueDate  time.Time  `gorm:"not null" json:"dueDate"`
	Status   string     `gorm:"size:32;not null;default:Pending" json:"status"`
	PaidDate *time.Time `json:"paidDate"`
	Remarks  string     `gorm:"type:text" json:"remarks"`

	StudentID *uint `gorm:"index" json:"studentId"`
	Student   *User `gorm:"foreignKey:StudentID" json:"student,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
