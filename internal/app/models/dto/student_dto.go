package dto

import "github.com/mertdogan/campusdesk/internal/app/models"

// CreateStudentRequest represents student enrollment data
type CreateStudentRequest struct {
	Name         string `json:"name" binding:"required"`
	Email        string `json:"email" binding:"required,email"`
	Password     string `json:"password" binding:"required"`
	RollNo       string `json:"rollNo" binding:"required"`
	DepartmentID int64  `json:"departmentId" binding:"required,gt=0"`
	CourseID     int64  `json:"courseId" binding:"required,gt=0"`
	Year         int    `json:"year" binding:"required,gt=0"`
	Semester     int    `json:"semester" binding:"required,gt=0"`
	Section      string `json:"section"`
}

// UpdateStudentRequest represents student update data
type UpdateStudentRequest struct {
	CourseID int64  `json:"courseId" binding:"required,gt=0"`
	Year     int    `json:"year" binding:"required,gt=0"`
	Semester int    `json:"semester" binding:"required,gt=0"`
	Section  string `json:"section"`
}

// StudentListResponse is a paginated student listing
type StudentListResponse struct {
	Students []*models.Student `json:"students"`
	PaginationInfo
}
