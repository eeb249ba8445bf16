package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mertdogan/campusdesk/internal/app/models"
	"github.com/mertdogan/campusdesk/internal/app/models/dto"
	"github.com/mertdogan/campusdesk/internal/app/repositories"
	"github.com/mertdogan/campusdesk/internal/pkg/apperrors"
)

type fakeTransportStore struct {
	routes map[int64]*models.TransportRoute
	nextID int64
}

func newFakeTransportStore() *fakeTransportStore {
	return &fakeTransportStore{routes: map[int64]*models.TransportRoute{}, nextID: 1}
}

func (f *fakeTransportStore) Create(_ context.Context, route *models.TransportRoute) error {
	for _, r := range f.routes {
		if r.VehicleNo == route.VehicleNo {
			return repositories.ErrRouteAlreadyExists
		}
	}
	route.ID = f.nextID
	f.nextID++
	copied := *route
	f.routes[route.ID] = &copied
	return nil
}

func (f *fakeTransportStore) GetByID(_ context.Context, id int64) (*models.TransportRoute, error) {
	route, ok := f.routes[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	copied := *route
	return &copied, nil
}

func (f *fakeTransportStore) List(_ context.Context, status models.EntityStatus) ([]*models.TransportRoute, error) {
	result := []*models.TransportRoute{}
	for _, route := range f.routes {
		if status != "" && route.Status != status {
			continue
		}
		copied := *route
		result = append(result, &copied)
	}
	return result, nil
}

func (f *fakeTransportStore) Update(_ context.Context, route *models.TransportRoute) error {
	if _, ok := f.routes[route.ID]; !ok {
		return repositories.ErrNotFound
	}
	for _, r := range f.routes {
		if r.ID != route.ID && r.VehicleNo == route.VehicleNo {
			return repositories.ErrRouteAlreadyExists
		}
	}
	copied := *route
	f.routes[route.ID] = &copied
	return nil
}

func (f *fakeTransportStore) UpdateStatus(_ context.Context, id int64, status models.EntityStatus) error {
	route, ok := f.routes[id]
	if !ok {
		return repositories.ErrNotFound
	}
	route.Status = status
	return nil
}

func (f *fakeTransportStore) Delete(_ context.Context, id int64) error {
	if _, ok := f.routes[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(f.routes, id)
	return nil
}

func validRouteRequest() *dto.CreateTransportRouteRequest {
	return &dto.CreateTransportRouteRequest{
		Name:      "North Campus Loop",
		VehicleNo: "KA01AB1234",
		Stops:     []string{"Main Gate", "Library", "Hostel Block C"},
		Fare:      450,
	}
}

func TestTransportServiceCreate(t *testing.T) {
	svc := NewTransportService(newFakeTransportStore())

	route, err := svc.Create(context.Background(), validRouteRequest())
	require.NoError(t, err)
	assert.Equal(t, models.StatusActive, route.Status)
	assert.Equal(t, []string{"Main Gate", "Library", "Hostel Block C"}, route.Stops)

	t.Run("duplicate vehicle number conflicts", func(t *testing.T) {
		req := validRouteRequest()
		req.Name = "South Campus Loop"
		_, err := svc.Create(context.Background(), req)
		assert.ErrorIs(t, err, apperrors.ErrConflict)
	})
}

func TestTransportServiceUpdate(t *testing.T) {
	store := newFakeTransportStore()
	svc := NewTransportService(store)

	first, err := svc.Create(context.Background(), validRouteRequest())
	require.NoError(t, err)

	second := validRouteRequest()
	second.Name = "South Campus Loop"
	second.VehicleNo = "KA01CD5678"
	other, err := svc.Create(context.Background(), second)
	require.NoError(t, err)

	t.Run("applies changes", func(t *testing.T) {
		updated, err := svc.Update(context.Background(), first.ID, &dto.UpdateTransportRouteRequest{
			Name:      "North Campus Express",
			VehicleNo: "KA01AB1234",
			Stops:     []string{"Main Gate", "Library"},
			Fare:      500,
		})
		require.NoError(t, err)
		assert.Equal(t, "North Campus Express", updated.Name)
		assert.Len(t, updated.Stops, 2)
	})

	t.Run("vehicle number taken by another route", func(t *testing.T) {
		_, err := svc.Update(context.Background(), other.ID, &dto.UpdateTransportRouteRequest{
			Name:      other.Name,
			VehicleNo: "KA01AB1234",
			Stops:     other.Stops,
			Fare:      other.Fare,
		})
		assert.ErrorIs(t, err, apperrors.ErrConflict)
	})

	t.Run("unknown route", func(t *testing.T) {
		_, err := svc.Update(context.Background(), 999, &dto.UpdateTransportRouteRequest{
			Name: "Ghost", VehicleNo: "KA00XX0000", Stops: []string{"Nowhere"}, Fare: 1,
		})
		assert.ErrorIs(t, err, apperrors.ErrRouteNotFound)
	})
}

func TestTransportServiceToggleAndList(t *testing.T) {
	svc := NewTransportService(newFakeTransportStore())

	route, err := svc.Create(context.Background(), validRouteRequest())
	require.NoError(t, err)

	status, err := svc.ToggleStatus(context.Background(), route.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusInactive, status)

	active, err := svc.List(context.Background(), models.StatusActive)
	require.NoError(t, err)
	assert.Empty(t, active)

	all, err := svc.List(context.Background(), "")
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestTransportServiceDelete(t *testing.T) {
	store := newFakeTransportStore()
	svc := NewTransportService(store)

	route, err := svc.Create(context.Background(), validRouteRequest())
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), route.ID))
	assert.Empty(t, store.routes)
	assert.ErrorIs(t, svc.Delete(context.Background(), route.ID), apperrors.ErrRouteNotFound)
}
