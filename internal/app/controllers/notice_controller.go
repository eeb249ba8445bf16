package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mertdogan/campusdesk/internal/app/models"
	"github.com/mertdogan/campusdesk/internal/app/models/dto"
	"github.com/mertdogan/campusdesk/internal/app/services"
	"github.com/mertdogan/campusdesk/internal/middleware"
	"github.com/mertdogan/campusdesk/internal/pkg/helpers"
)

// NoticeController handles notice board operations
type NoticeController struct {
	noticeService *services.NoticeService
}

// NewNoticeController creates a new NoticeController
func NewNoticeController(noticeService *services.NoticeService) *NoticeController {
	return &NoticeController{noticeService: noticeService}
}

func caller(ctx *gin.Context) (int64, models.RoleType, bool) {
	id, okID := middleware.CallerID(ctx)
	role, okRole := middleware.CallerRole(ctx)
	if !okID || !okRole {
		detail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(detail))
		return 0, "", false
	}
	return id, role, true
}

// CreateNotice posts a notice
// @Summary Post a notice
// @Description Posts a notice authored by the caller; faculty-authored notices reach students only
// @Tags notices
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateNoticeRequest true "Notice content"
// @Success 201 {object} dto.APIResponse{data=models.Notice} "Notice posted"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Router /notices [post]
func (c *NoticeController) CreateNotice(ctx *gin.Context) {
	authorID, authorRole, ok := caller(ctx)
	if !ok {
		return
	}
	var req dto.CreateNoticeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	notice, err := c.noticeService.Create(ctx, authorID, authorRole, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondCreated(ctx, notice)
}

// GetNoticeByID retrieves a notice the caller may see
// @Summary Get notice by ID
// @Tags notices
// @Produce json
// @Security BearerAuth
// @Param id path int true "Notice ID"
// @Success 200 {object} dto.APIResponse{data=models.Notice} "Notice retrieved"
// @Failure 404 {object} dto.ErrorResponse "Notice not found"
// @Router /notices/{id} [get]
func (c *NoticeController) GetNoticeByID(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}
	_, role, ok := caller(ctx)
	if !ok {
		return
	}

	notice, err := c.noticeService.GetByID(ctx, id, role)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondOK(ctx, notice)
}

// GetNoticeFeed retrieves the caller's notice feed
// @Summary List notices visible to the caller
// @Description Returns unexpired notices the caller's role may see, important first then newest
// @Tags notices
// @Produce json
// @Security BearerAuth
// @Param priority query string false "Filter by priority" Enums(low, medium, high, urgent)
// @Param important query bool false "Important notices only"
// @Param page query int false "Page number (1-based)"
// @Param size query int false "Page size"
// @Success 200 {object} dto.APIResponse{data=dto.NoticeListResponse} "Notices retrieved"
// @Router /notices [get]
func (c *NoticeController) GetNoticeFeed(ctx *gin.Context) {
	_, role, ok := caller(ctx)
	if !ok {
		return
	}
	priority := models.NoticePriority(ctx.Query("priority"))
	importantOnly := ctx.Query("important") == "true"
	page, size := helpers.ParsePaginationParams(ctx)

	feed, err := c.noticeService.Feed(ctx, role, priority, importantOnly, page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondOK(ctx, feed)
}

// UpdateNotice edits a notice
// @Summary Update a notice
// @Description The author or an admin may edit a notice
// @Tags notices
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Notice ID"
// @Param request body dto.CreateNoticeRequest true "Notice content"
// @Success 200 {object} dto.APIResponse{data=models.Notice} "Notice updated"
// @Failure 403 {object} dto.ErrorResponse "Not the author"
// @Failure 404 {object} dto.ErrorResponse "Notice not found"
// @Router /notices/{id} [put]
func (c *NoticeController) UpdateNotice(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}
	actorID, actorRole, ok := caller(ctx)
	if !ok {
		return
	}
	var req dto.CreateNoticeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	notice, err := c.noticeService.Update(ctx, id, actorID, actorRole, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondOK(ctx, notice)
}

// DeleteNotice removes a notice
// @Summary Delete a notice
// @Description The author or an admin may delete a notice
// @Tags notices
// @Produce json
// @Security BearerAuth
// @Param id path int true "Notice ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Notice deleted"
// @Failure 403 {object} dto.ErrorResponse "Not the author"
// @Failure 404 {object} dto.ErrorResponse "Notice not found"
// @Router /notices/{id} [delete]
func (c *NoticeController) DeleteNotice(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}
	actorID, actorRole, ok := caller(ctx)
	if !ok {
		return
	}

	if err := c.noticeService.Delete(ctx, id, actorID, actorRole); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondOK(ctx, dto.SuccessResponse{Message: "Notice deleted successfully"})
}
