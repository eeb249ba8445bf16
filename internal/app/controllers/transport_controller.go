package controllers

import (
	"github.com/gin-gonic/gin"

	"github.com/mertdogan/campusdesk/internal/app/models"
	"github.com/mertdogan/campusdesk/internal/app/models/dto"
	"github.com/mertdogan/campusdesk/internal/app/services"
	"github.com/mertdogan/campusdesk/internal/middleware"
)

// TransportController handles transport route operations
type TransportController struct {
	transportService *services.TransportService
}

// NewTransportController creates a new TransportController
func NewTransportController(transportService *services.TransportService) *TransportController {
	return &TransportController{transportService: transportService}
}

// CreateRoute creates a transport route
// @Summary Create a transport route
// @Tags transport
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateTransportRouteRequest true "Route information"
// @Success 201 {object} dto.APIResponse{data=models.TransportRoute} "Route created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 409 {object} dto.ErrorResponse "Vehicle number already exists"
// @Router /transport/routes [post]
func (c *TransportController) CreateRoute(ctx *gin.Context) {
	var req dto.CreateTransportRouteRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	route, err := c.transportService.Create(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondCreated(ctx, route)
}

// GetRouteByID retrieves a transport route
// @Summary Get transport route by ID
// @Tags transport
// @Produce json
// @Security BearerAuth
// @Param id path int true "Route ID"
// @Success 200 {object} dto.APIResponse{data=models.TransportRoute} "Route retrieved"
// @Failure 404 {object} dto.ErrorResponse "Route not found"
// @Router /transport/routes/{id} [get]
func (c *TransportController) GetRouteByID(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	route, err := c.transportService.GetByID(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondOK(ctx, route)
}

// GetAllRoutes retrieves transport routes
// @Summary List transport routes
// @Tags transport
// @Produce json
// @Security BearerAuth
// @Param status query string false "Filter by status" Enums(active, inactive)
// @Success 200 {object} dto.APIResponse{data=[]models.TransportRoute} "Routes retrieved"
// @Router /transport/routes [get]
func (c *TransportController) GetAllRoutes(ctx *gin.Context) {
	status := models.EntityStatus(ctx.Query("status"))
	routes, err := c.transportService.List(ctx, status)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondOK(ctx, routes)
}

// UpdateRoute updates a transport route
// @Summary Update a transport route
// @Tags transport
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Route ID"
// @Param request body dto.UpdateTransportRouteRequest true "Route information"
// @Success 200 {object} dto.APIResponse{data=models.TransportRoute} "Route updated"
// @Failure 404 {object} dto.ErrorResponse "Route not found"
// @Router /transport/routes/{id} [put]
func (c *TransportController) UpdateRoute(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}
	var req dto.UpdateTransportRouteRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	route, err := c.transportService.Update(ctx, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondOK(ctx, route)
}

// ToggleRouteStatus flips the active/inactive status
// @Summary Toggle route status
// @Tags transport
// @Produce json
// @Security BearerAuth
// @Param id path int true "Route ID"
// @Success 200 {object} dto.APIResponse "Status toggled"
// @Failure 404 {object} dto.ErrorResponse "Route not found"
// @Router /transport/routes/{id}/toggle [patch]
func (c *TransportController) ToggleRouteStatus(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	status, err := c.transportService.ToggleStatus(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondOK(ctx, gin.H{"status": status})
}

// DeleteRoute removes a transport route
// @Summary Delete a transport route
// @Tags transport
// @Produce json
// @Security BearerAuth
// @Param id path int true "Route ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Route deleted"
// @Failure 404 {object} dto.ErrorResponse "Route not found"
// @Router /transport/routes/{id} [delete]
func (c *TransportController) DeleteRoute(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	if err := c.transportService.Delete(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondOK(ctx, dto.SuccessResponse{Message: "Route deleted successfully"})
}
