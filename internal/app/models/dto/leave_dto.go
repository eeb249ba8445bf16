package dto

// ApplyLeaveRequest represents a leave application. Dates use YYYY-MM-DD.
type ApplyLeaveRequest struct {
	LeaveType string `json:"leaveType" binding:"required"`
	FromDate  string `json:"fromDate" binding:"required"`
	ToDate    string `json:"toDate" binding:"required"`
	Reason    string `json:"reason" binding:"required"`
}

// LeaveDecisionRequest carries the remarks for an approve/reject decision.
// Remarks are optional on approval and required on rejection.
type LeaveDecisionRequest struct {
	Remarks string `json:"remarks"`
}
