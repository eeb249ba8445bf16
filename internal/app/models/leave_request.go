package models

import "time"

// LeaveRequest represents a leave application by a student or faculty member
type LeaveRequest struct {
	ID            int64       `json:"id"`
	ApplicantID   int64       `json:"applicantId"`
	ApplicantRole RoleType    `json:"applicantRole"`
	LeaveType     string      `json:"leaveType"`
	FromDate      time.Time   `json:"fromDate"`
	ToDate        time.Time   `json:"toDate"`
	Reason        string      `json:"reason"`
	Status        LeaveStatus `json:"status"`
	Remarks       string      `json:"remarks,omitempty"`
	DecidedByID   *int64      `json:"decidedById,omitempty"`
	DecidedAt     *time.Time  `json:"decidedAt,omitempty"`
	CreatedAt     time.Time   `json:"createdAt"`
}

// LeaveStats aggregates requests per workflow state.
type LeaveStats struct {
	Total    int64 `json:"total"`
	Pending  int64 `json:"pending"`
	Approved int64 `json:"approved"`
	Rejected int64 `json:"rejected"`
}

// LeaveTypeCount is one analytics bucket: requests per leave type.
type LeaveTypeCount struct {
	LeaveType string `json:"leaveType"`
	Count     int64  `json:"count"`
}
