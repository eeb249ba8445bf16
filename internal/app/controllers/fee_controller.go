package controllers

import (
	"github.com/gin-gonic/gin"

	"github.com/mertdogan/campusdesk/internal/app/models"
	"github.com/mertdogan/campusdesk/internal/app/models/dto"
	"github.com/mertdogan/campusdesk/internal/app/services"
	"github.com/mertdogan/campusdesk/internal/middleware"
)

// FeeController handles fee record operations
type FeeController struct {
	feeService *services.FeeService
}

// NewFeeController creates a new FeeController
func NewFeeController(feeService *services.FeeService) *FeeController {
	return &FeeController{feeService: feeService}
}

// CreateFee raises a fee record against a student
// @Summary Create a fee record
// @Tags fees
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateFeeRequest true "Fee information"
// @Success 201 {object} dto.APIResponse{data=models.Fee} "Fee record created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Router /fees [post]
func (c *FeeController) CreateFee(ctx *gin.Context) {
	var req dto.CreateFeeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	fee, err := c.feeService.Create(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondCreated(ctx, fee)
}

// GetFeeByID retrieves a fee record
// @Summary Get fee record by ID
// @Tags fees
// @Produce json
// @Security BearerAuth
// @Param id path int true "Fee record ID"
// @Success 200 {object} dto.APIResponse{data=models.Fee} "Fee record retrieved"
// @Failure 404 {object} dto.ErrorResponse "Fee record not found"
// @Router /fees/{id} [get]
func (c *FeeController) GetFeeByID(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	fee, err := c.feeService.GetByID(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondOK(ctx, fee)
}

// GetAllFees retrieves fee records
// @Summary List fee records
// @Tags fees
// @Produce json
// @Security BearerAuth
// @Param studentId query int false "Filter by student ID"
// @Param status query string false "Filter by payment status" Enums(paid, unpaid)
// @Success 200 {object} dto.APIResponse{data=[]models.Fee} "Fee records retrieved"
// @Router /fees [get]
func (c *FeeController) GetAllFees(ctx *gin.Context) {
	studentID := queryInt64(ctx, "studentId")
	status := models.FeeStatus(ctx.Query("status"))

	fees, err := c.feeService.List(ctx, studentID, status)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondOK(ctx, fees)
}

// GetMyFees lists the calling student's fee records
// @Summary List own fee records
// @Tags fees
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.Fee} "Fee records retrieved"
// @Router /fees/my [get]
func (c *FeeController) GetMyFees(ctx *gin.Context) {
	userID, _, ok := caller(ctx)
	if !ok {
		return
	}

	fees, err := c.feeService.MyFees(ctx, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondOK(ctx, fees)
}

// MarkFeePaid settles a fee record
// @Summary Mark a fee as paid
// @Description Transitions an unpaid fee to paid; paying twice fails with a conflict
// @Tags fees
// @Produce json
// @Security BearerAuth
// @Param id path int true "Fee record ID"
// @Success 200 {object} dto.APIResponse{data=models.Fee} "Fee marked as paid"
// @Failure 404 {object} dto.ErrorResponse "Fee record not found"
// @Failure 409 {object} dto.ErrorResponse "Fee already paid"
// @Router /fees/{id}/pay [patch]
func (c *FeeController) MarkFeePaid(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	fee, err := c.feeService.MarkPaid(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondOK(ctx, fee)
}

// DeleteFee removes a fee record
// @Summary Delete a fee record
// @Tags fees
// @Produce json
// @Security BearerAuth
// @Param id path int true "Fee record ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Fee record deleted"
// @Failure 404 {object} dto.ErrorResponse "Fee record not found"
// @Router /fees/{id} [delete]
func (c *FeeController) DeleteFee(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	if err := c.feeService.Delete(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondOK(ctx, dto.SuccessResponse{Message: "Fee record deleted successfully"})
}
