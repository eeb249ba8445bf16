package dto

// CreateFeeRequest represents fee record creation data. DueDate uses
// YYYY-MM-DD.
type CreateFeeRequest struct {
	StudentID int64   `json:"studentId" binding:"required,gt=0"`
	FeeType   string  `json:"feeType" binding:"required"`
	Amount    float64 `json:"amount" binding:"required,gt=0"`
	DueDate   string  `json:"dueDate" binding:"required"`
}
