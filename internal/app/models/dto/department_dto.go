package dto

// CreateDepartmentRequest represents department creation data
type CreateDepartmentRequest struct {
	Name               string `json:"name" binding:"required"`
	Code               string `json:"code" binding:"required"`
	HeadOfDepartmentID *int64 `json:"headOfDepartmentId"`
}

// UpdateDepartmentRequest represents department update data
type UpdateDepartmentRequest struct {
	Name               string `json:"name" binding:"required"`
	Code               string `json:"code" binding:"required"`
	HeadOfDepartmentID *int64 `json:"headOfDepartmentId"`
}

// DependencyConflictResponse is the 409 payload for a blocked delete:
// the per-category dependent counts the caller displays before offering
// deactivation as the recovery action.
type DependencyConflictResponse struct {
	Courses  int64 `json:"courses"`
	Subjects int64 `json:"subjects"`
	Students int64 `json:"students"`
	Faculty  int64 `json:"faculty"`
}
