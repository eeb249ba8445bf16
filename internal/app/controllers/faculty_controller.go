package controllers

import (
	"github.com/gin-gonic/gin"

	"github.com/mertdogan/campusdesk/internal/app/models"
	"github.com/mertdogan/campusdesk/internal/app/models/dto"
	"github.com/mertdogan/campusdesk/internal/app/services"
	"github.com/mertdogan/campusdesk/internal/middleware"
)

// FacultyController handles faculty member operations
type FacultyController struct {
	facultyService *services.FacultyService
}

// NewFacultyController creates a new FacultyController
func NewFacultyController(facultyService *services.FacultyService) *FacultyController {
	return &FacultyController{facultyService: facultyService}
}

// CreateFaculty creates a faculty member
// @Summary Create a faculty member
// @Description Creates a login account, the staff record and its subject assignments
// @Tags faculty
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateFacultyRequest true "Faculty information"
// @Success 201 {object} dto.APIResponse{data=models.FacultyMember} "Faculty member created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 409 {object} dto.ErrorResponse "Employee ID or email already exists"
// @Router /faculty [post]
func (c *FacultyController) CreateFaculty(ctx *gin.Context) {
	var req dto.CreateFacultyRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	faculty, err := c.facultyService.Create(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondCreated(ctx, faculty)
}

// GetFacultyByID retrieves a faculty member by ID
// @Summary Get faculty member by ID
// @Tags faculty
// @Produce json
// @Security BearerAuth
// @Param id path int true "Faculty member ID"
// @Success 200 {object} dto.APIResponse{data=models.FacultyMember} "Faculty member retrieved"
// @Failure 404 {object} dto.ErrorResponse "Faculty member not found"
// @Router /faculty/{id} [get]
func (c *FacultyController) GetFacultyByID(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	faculty, err := c.facultyService.GetByID(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondOK(ctx, faculty)
}

// GetAllFaculty retrieves faculty members
// @Summary List faculty members
// @Tags faculty
// @Produce json
// @Security BearerAuth
// @Param departmentId query int false "Filter by department ID"
// @Param status query string false "Filter by status" Enums(active, inactive)
// @Success 200 {object} dto.APIResponse{data=[]models.FacultyMember} "Faculty members retrieved"
// @Router /faculty [get]
func (c *FacultyController) GetAllFaculty(ctx *gin.Context) {
	departmentID := queryInt64(ctx, "departmentId")
	status := models.EntityStatus(ctx.Query("status"))

	members, err := c.facultyService.List(ctx, departmentID, status)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondOK(ctx, members)
}

// UpdateFaculty updates a faculty member
// @Summary Update a faculty member
// @Description Updates designation and replaces subject assignments
// @Tags faculty
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Faculty member ID"
// @Param request body dto.UpdateFacultyRequest true "Faculty information"
// @Success 200 {object} dto.APIResponse{data=models.FacultyMember} "Faculty member updated"
// @Failure 404 {object} dto.ErrorResponse "Faculty member not found"
// @Router /faculty/{id} [put]
func (c *FacultyController) UpdateFaculty(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}
	var req dto.UpdateFacultyRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	faculty, err := c.facultyService.Update(ctx, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondOK(ctx, faculty)
}

// ToggleFacultyStatus flips the active/inactive status
// @Summary Toggle faculty member status
// @Tags faculty
// @Produce json
// @Security BearerAuth
// @Param id path int true "Faculty member ID"
// @Success 200 {object} dto.APIResponse "Status toggled"
// @Failure 404 {object} dto.ErrorResponse "Faculty member not found"
// @Router /faculty/{id}/toggle [patch]
func (c *FacultyController) ToggleFacultyStatus(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	status, err := c.facultyService.ToggleStatus(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondOK(ctx, gin.H{"status": status})
}

// DeleteFaculty removes a faculty member and its account
// @Summary Delete a faculty member
// @Tags faculty
// @Produce json
// @Security BearerAuth
// @Param id path int true "Faculty member ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Faculty member deleted"
// @Failure 404 {object} dto.ErrorResponse "Faculty member not found"
// @Router /faculty/{id} [delete]
func (c *FacultyController) DeleteFaculty(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	if err := c.facultyService.Delete(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondOK(ctx, dto.SuccessResponse{Message: "Faculty member deleted successfully"})
}
