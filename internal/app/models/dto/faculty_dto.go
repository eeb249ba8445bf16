package dto

// CreateFacultyRequest represents faculty member creation data
type CreateFacultyRequest struct {
	Name         string  `json:"name" binding:"required"`
	Email        string  `json:"email" binding:"required,email"`
	Password     string  `json:"password" binding:"required"`
	EmployeeID   string  `json:"employeeId" binding:"required"`
	DepartmentID int64   `json:"departmentId" binding:"required,gt=0"`
	Designation  string  `json:"designation" binding:"required"`
	SubjectIDs   []int64 `json:"subjectIds"`
}

// UpdateFacultyRequest represents faculty member update data
type UpdateFacultyRequest struct {
	Designation string  `json:"designation" binding:"required"`
	SubjectIDs  []int64 `json:"subjectIds"`
}
