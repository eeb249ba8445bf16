package dto

// CreateCourseRequest represents course creation data
type CreateCourseRequest struct {
	Name          string `json:"name" binding:"required"`
	Code          string `json:"code" binding:"required"`
	DepartmentID  int64  `json:"departmentId" binding:"required,gt=0"`
	DurationValue int    `json:"durationValue" binding:"required,gt=0"`
	DurationUnit  string `json:"durationUnit" binding:"required,oneof=year semester"`
}

// UpdateCourseRequest represents course update data. The owning
// department is not editable once the course exists.
type UpdateCourseRequest struct {
	Name          string `json:"name" binding:"required"`
	Code          string `json:"code" binding:"required"`
	DurationValue int    `json:"durationValue" binding:"required,gt=0"`
	DurationUnit  string `json:"durationUnit" binding:"required,oneof=year semester"`
}

// CourseOptionResponse is one entry of a cascading course picker,
// carrying the semester bound the selection imposes downstream.
type CourseOptionResponse struct {
	ID             int64  `json:"id"`
	Label          string `json:"label"`
	TotalSemesters int    `json:"totalSemesters"`
}
