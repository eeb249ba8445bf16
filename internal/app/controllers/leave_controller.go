package controllers

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/mertdogan/campusdesk/internal/app/models"
	"github.com/mertdogan/campusdesk/internal/app/models/dto"
	"github.com/mertdogan/campusdesk/internal/app/repositories"
	"github.com/mertdogan/campusdesk/internal/app/services"
	"github.com/mertdogan/campusdesk/internal/middleware"
)

// LeaveController handles the leave application and approval workflow
type LeaveController struct {
	leaveService *services.LeaveService
}

// NewLeaveController creates a new LeaveController
func NewLeaveController(leaveService *services.LeaveService) *LeaveController {
	return &LeaveController{leaveService: leaveService}
}

// ApplyLeave files a leave request for the caller
// @Summary Apply for leave
// @Description Files a leave request; the range must start today or later and the reason must be at least 10 characters
// @Tags leaves
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.ApplyLeaveRequest true "Leave application"
// @Success 201 {object} dto.APIResponse{data=models.LeaveRequest} "Leave request filed"
// @Failure 400 {object} dto.ErrorResponse "Invalid dates or reason"
// @Router /leaves [post]
func (c *LeaveController) ApplyLeave(ctx *gin.Context) {
	applicantID, applicantRole, ok := caller(ctx)
	if !ok {
		return
	}
	var req dto.ApplyLeaveRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	leave, err := c.leaveService.Apply(ctx, applicantID, applicantRole, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondCreated(ctx, leave)
}

// GetLeaveByID retrieves a leave request
// @Summary Get leave request by ID
// @Tags leaves
// @Produce json
// @Security BearerAuth
// @Param id path int true "Leave request ID"
// @Success 200 {object} dto.APIResponse{data=models.LeaveRequest} "Leave request retrieved"
// @Failure 404 {object} dto.ErrorResponse "Leave request not found"
// @Router /leaves/{id} [get]
func (c *LeaveController) GetLeaveByID(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}
	viewerID, viewerRole, ok := caller(ctx)
	if !ok {
		return
	}

	leave, err := c.leaveService.GetByID(ctx, id, viewerID, viewerRole)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondOK(ctx, leave)
}

// GetMyLeaves lists the caller's leave requests
// @Summary List own leave requests
// @Tags leaves
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.LeaveRequest} "Leave requests retrieved"
// @Router /leaves/my [get]
func (c *LeaveController) GetMyLeaves(ctx *gin.Context) {
	applicantID, _, ok := caller(ctx)
	if !ok {
		return
	}

	leaves, err := c.leaveService.MyLeaves(ctx, applicantID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondOK(ctx, leaves)
}

// GetAllLeaves lists leave requests for reviewers
// @Summary List leave requests
// @Tags leaves
// @Produce json
// @Security BearerAuth
// @Param status query string false "Filter by status" Enums(pending, approved, rejected)
// @Param applicantRole query string false "Filter by applicant role" Enums(faculty, student)
// @Param leaveType query string false "Filter by leave type"
// @Success 200 {object} dto.APIResponse{data=[]models.LeaveRequest} "Leave requests retrieved"
// @Router /leaves [get]
func (c *LeaveController) GetAllLeaves(ctx *gin.Context) {
	filter := repositories.LeaveListFilter{
		Status:        models.LeaveStatus(ctx.Query("status")),
		ApplicantRole: models.RoleType(ctx.Query("applicantRole")),
		LeaveType:     ctx.Query("leaveType"),
	}

	leaves, err := c.leaveService.List(ctx, filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondOK(ctx, leaves)
}

// ApproveLeave approves a pending leave request
// @Summary Approve a leave request
// @Description Approves a pending request; already decided requests fail with a conflict
// @Tags leaves
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Leave request ID"
// @Param request body dto.LeaveDecisionRequest false "Optional remarks"
// @Success 200 {object} dto.APIResponse{data=models.LeaveRequest} "Leave request approved"
// @Failure 404 {object} dto.ErrorResponse "Leave request not found"
// @Failure 409 {object} dto.ErrorResponse "Leave request already decided"
// @Router /leaves/{id}/approve [patch]
func (c *LeaveController) ApproveLeave(ctx *gin.Context) {
	c.decide(ctx, c.leaveService.Approve)
}

// RejectLeave rejects a pending leave request
// @Summary Reject a leave request
// @Description Rejects a pending request; remarks are mandatory
// @Tags leaves
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Leave request ID"
// @Param request body dto.LeaveDecisionRequest true "Rejection remarks"
// @Success 200 {object} dto.APIResponse{data=models.LeaveRequest} "Leave request rejected"
// @Failure 400 {object} dto.ErrorResponse "Remarks missing"
// @Failure 404 {object} dto.ErrorResponse "Leave request not found"
// @Failure 409 {object} dto.ErrorResponse "Leave request already decided"
// @Router /leaves/{id}/reject [patch]
func (c *LeaveController) RejectLeave(ctx *gin.Context) {
	c.decide(ctx, c.leaveService.Reject)
}

func (c *LeaveController) decide(ctx *gin.Context, decision func(ctx context.Context, id, deciderID int64, remarks string) (*models.LeaveRequest, error)) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}
	deciderID, _, ok := caller(ctx)
	if !ok {
		return
	}
	var req dto.LeaveDecisionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		middleware.HandleValidationError(ctx, err)
		return
	}

	leave, err := decision(ctx, id, deciderID, req.Remarks)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondOK(ctx, leave)
}

// GetLeaveStats aggregates requests per workflow state
// @Summary Leave statistics
// @Tags leaves
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=models.LeaveStats} "Stats retrieved"
// @Router /leaves/stats [get]
func (c *LeaveController) GetLeaveStats(ctx *gin.Context) {
	stats, err := c.leaveService.Stats(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondOK(ctx, stats)
}

// GetLeaveAnalytics returns per-type request counts
// @Summary Leave analytics
// @Tags leaves
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.LeaveTypeCount} "Analytics retrieved"
// @Router /leaves/analytics [get]
func (c *LeaveController) GetLeaveAnalytics(ctx *gin.Context) {
	counts, err := c.leaveService.Analytics(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondOK(ctx, counts)
}
