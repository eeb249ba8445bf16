package models

import "time"

// FeeStatus is the payment state of a fee record
type FeeStatus string

const (
	FeeUnpaid FeeStatus = "unpaid"
	FeePaid   FeeStatus = "paid"
)

// Fee represents a fee record raised against a student
type Fee struct {
	ID        int64      `json:"id"`
	StudentID int64      `json:"studentId"`
	FeeType   string     `json:"feeType"`
	Amount    float64    `json:"amount"`
	DueDate   time.Time  `json:"dueDate"`
	Status    FeeStatus  `json:"status"`
	PaidAt    *time.Time `json:"paidAt,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
}
