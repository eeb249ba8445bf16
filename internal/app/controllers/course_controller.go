package controllers

import (
	"github.com/gin-gonic/gin"

	"github.com/mertdogan/campusdesk/internal/app/models"
	"github.com/mertdogan/campusdesk/internal/app/models/dto"
	"github.com/mertdogan/campusdesk/internal/app/services"
	"github.com/mertdogan/campusdesk/internal/middleware"
)

// CourseController handles course-related operations
type CourseController struct {
	courseService *services.CourseService
}

// NewCourseController creates a new CourseController
func NewCourseController(courseService *services.CourseService) *CourseController {
	return &CourseController{courseService: courseService}
}

// CreateCourse handles course creation
// @Summary Create a course
// @Tags courses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateCourseRequest true "Course information"
// @Success 201 {object} dto.APIResponse{data=models.Course} "Course created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 404 {object} dto.ErrorResponse "Department not found"
// @Failure 409 {object} dto.ErrorResponse "Course already exists"
// @Router /courses [post]
func (c *CourseController) CreateCourse(ctx *gin.Context) {
	var req dto.CreateCourseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	course, err := c.courseService.Create(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondCreated(ctx, course)
}

// GetCourseByID retrieves a course by ID
// @Summary Get course by ID
// @Tags courses
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course ID"
// @Success 200 {object} dto.APIResponse{data=models.Course} "Course retrieved"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Router /courses/{id} [get]
func (c *CourseController) GetCourseByID(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	course, err := c.courseService.GetByID(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondOK(ctx, course)
}

// GetAllCourses retrieves courses
// @Summary List courses
// @Tags courses
// @Produce json
// @Security BearerAuth
// @Param departmentId query int false "Filter by department ID"
// @Param status query string false "Filter by status" Enums(active, inactive)
// @Success 200 {object} dto.APIResponse{data=[]models.Course} "Courses retrieved"
// @Router /courses [get]
func (c *CourseController) GetAllCourses(ctx *gin.Context) {
	departmentID := queryInt64(ctx, "departmentId")
	status := models.EntityStatus(ctx.Query("status"))

	courses, err := c.courseService.List(ctx, departmentID, status)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondOK(ctx, courses)
}

// GetCourseOptions resolves the course picker for a department selection
// @Summary List course picker options
// @Description Returns the active courses of a department, each carrying its total semester count
// @Tags courses
// @Produce json
// @Security BearerAuth
// @Param departmentId query int true "Selected department ID"
// @Success 200 {object} dto.APIResponse{data=[]dto.CourseOptionResponse} "Options retrieved"
// @Router /courses/options [get]
func (c *CourseController) GetCourseOptions(ctx *gin.Context) {
	departmentID := queryInt64(ctx, "departmentId")
	options, err := c.courseService.Options(ctx, departmentID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondOK(ctx, options)
}

// GetSemesterBound returns the selectable semester count for a course
// @Summary Get the semester bound of a course
// @Description Returns the number of selectable semesters; without a course the default bound applies
// @Tags courses
// @Produce json
// @Security BearerAuth
// @Param courseId query int false "Selected course ID"
// @Success 200 {object} dto.APIResponse "Bound retrieved"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Router /courses/semester-bound [get]
func (c *CourseController) GetSemesterBound(ctx *gin.Context) {
	courseID := queryInt64(ctx, "courseId")
	bound, err := c.courseService.SemesterBound(ctx, courseID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondOK(ctx, gin.H{"totalSemesters": bound})
}

// UpdateCourse updates a course
// @Summary Update a course
// @Description Updates course fields; the owning department is immutable
// @Tags courses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course ID"
// @Param request body dto.UpdateCourseRequest true "Course information"
// @Success 200 {object} dto.APIResponse{data=models.Course} "Course updated"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Router /courses/{id} [put]
func (c *CourseController) UpdateCourse(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}
	var req dto.UpdateCourseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	course, err := c.courseService.Update(ctx, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondOK(ctx, course)
}

// DeleteCourse hard-deletes a course
// @Summary Delete a course
// @Description Fails with a dependent breakdown when subjects or students still reference the course
// @Tags courses
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Course deleted"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Failure 409 {object} dto.ErrorResponse "Course has dependent records"
// @Router /courses/{id} [delete]
func (c *CourseController) DeleteCourse(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	if err := c.courseService.Delete(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondOK(ctx, dto.SuccessResponse{Message: "Course deleted successfully"})
}

// ToggleCourseStatus flips the active/inactive status
// @Summary Toggle course status
// @Tags courses
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course ID"
// @Success 200 {object} dto.APIResponse "Status toggled"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Router /courses/{id}/toggle [patch]
func (c *CourseController) ToggleCourseStatus(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	status, err := c.courseService.ToggleStatus(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondOK(ctx, gin.H{"status": status})
}
