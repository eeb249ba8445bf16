package services

import (
	"context"
	"errors"

	"github.com/mertdogan/campusdesk/internal/app/models"
	"github.com/mertdogan/campusdesk/internal/app/models/dto"
	"github.com/mertdogan/campusdesk/internal/app/repositories"
	"github.com/mertdogan/campusdesk/internal/pkg/apperrors"
	"github.com/mertdogan/campusdesk/internal/pkg/workflow"
)

type transportStore interface {
	Create(ctx context.Context, route *models.TransportRoute) error
	GetByID(ctx context.Context, id int64) (*models.TransportRoute, error)
	List(ctx context.Context, status models.EntityStatus) ([]*models.TransportRoute, error)
	Update(ctx context.Context, route *models.TransportRoute) error
	UpdateStatus(ctx context.Context, id int64, status models.EntityStatus) error
	Delete(ctx context.Context, id int64) error
}

// TransportService handles transport route business logic
type TransportService struct {
	routes transportStore
}

// NewTransportService creates a new TransportService
func NewTransportService(routes transportStore) *TransportService {
	return &TransportService{routes: routes}
}

// Create creates a transport route.
func (s *TransportService) Create(ctx context.Context, req *dto.CreateTransportRouteRequest) (*models.TransportRoute, error) {
	route := &models.TransportRoute{
		Name:      req.Name,
		VehicleNo: req.VehicleNo,
		Stops:     req.Stops,
		Fare:      req.Fare,
		Status:    models.StatusActive,
	}
	if err := s.routes.Create(ctx, route); err != nil {
		if errors.Is(err, repositories.ErrRouteAlreadyExists) {
			return nil, apperrors.NewConflictError("A route with this vehicle number already exists")
		}
		return nil, apperrors.NewOperationFailedError("Could not create transport route", err)
	}
	return route, nil
}

// GetByID retrieves a transport route
func (s *TransportService) GetByID(ctx context.Context, id int64) (*models.TransportRoute, error) {
	route, err := s.routes.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.ErrRouteNotFound
		}
		return nil, apperrors.NewOperationFailedError("Could not load transport route", err)
	}
	return route, nil
}

// List retrieves transport routes, optionally filtered by status.
func (s *TransportService) List(ctx context.Context, status models.EntityStatus) ([]*models.TransportRoute, error) {
	routes, err := s.routes.List(ctx, status)
	if err != nil {
		return nil, apperrors.NewOperationFailedError("Could not list transport routes", err)
	}
	return routes, nil
}

// Update updates a transport route.
func (s *TransportService) Update(ctx context.Context, id int64, req *dto.UpdateTransportRouteRequest) (*models.TransportRoute, error) {
	route, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	route.Name = req.Name
	route.VehicleNo = req.VehicleNo
	route.Stops = req.Stops
	route.Fare = req.Fare

	if err := s.routes.Update(ctx, route); err != nil {
		if errors.Is(err, repositories.ErrRouteAlreadyExists) {
			return nil, apperrors.NewConflictError("A route with this vehicle number already exists")
		}
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.ErrRouteNotFound
		}
		return nil, apperrors.NewOperationFailedError("Could not update transport route", err)
	}
	return route, nil
}

// ToggleStatus flips the active/inactive status and returns the new value.
func (s *TransportService) ToggleStatus(ctx context.Context, id int64) (models.EntityStatus, error) {
	route, err := s.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	next := workflow.Toggle(route.Status)
	if err := s.routes.UpdateStatus(ctx, id, next); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return "", apperrors.ErrRouteNotFound
		}
		return "", apperrors.NewOperationFailedError("Could not toggle route status", err)
	}
	return next, nil
}

// Delete removes a transport route.
func (s *TransportService) Delete(ctx context.Context, id int64) error {
	if err := s.routes.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return apperrors.ErrRouteNotFound
		}
		return apperrors.NewOperationFailedError("Could not delete transport route", err)
	}
	return nil
}
